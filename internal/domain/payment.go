package domain

// PaymentStatus represents the outcome of a charge attempt.
type PaymentStatus string

const (
	PaymentStatusSuccess PaymentStatus = "SUCCESS"
	PaymentStatusFailed  PaymentStatus = "FAILED"
)

// ChargeResult is the outcome reported by the payment service.
type ChargeResult struct {
	Status        PaymentStatus
	TransactionID string
}

// Succeeded reports whether the charge went through.
func (r ChargeResult) Succeeded() bool {
	return r.Status == PaymentStatusSuccess
}
