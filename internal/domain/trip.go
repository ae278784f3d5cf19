package domain

import "time"

// TripStatus represents the current status of a trip.
type TripStatus string

const (
	TripStatusRequested TripStatus = "REQUESTED"
	TripStatusAccepted  TripStatus = "ACCEPTED"
	TripStatusComplete  TripStatus = "COMPLETE"
	TripStatusUnpaid    TripStatus = "UNPAID"
	TripStatusCancelled TripStatus = "CANCELLED"
)

// Terminal reports whether the status admits no further transitions.
func (s TripStatus) Terminal() bool {
	switch s {
	case TripStatusComplete, TripStatusUnpaid, TripStatusCancelled:
		return true
	}
	return false
}

// Trip represents one ride transaction from request to terminal state.
type Trip struct {
	ID             string
	RiderID        string
	DriverID       string // empty until a driver is assigned
	PickupLocation string
	DropLocation   string
	Status         TripStatus
	Fare           *float64 // set together with Distance, exactly once, at completion
	Distance       *float64 // kilometers
	CreatedAt      time.Time
	UpdatedAt      time.Time
}
