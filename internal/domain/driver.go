package domain

// DriverCandidate is a driver offered by the directory service for
// negotiation. Candidates are transient; nothing here is persisted.
type DriverCandidate struct {
	ID     string
	Rating float64
}

// PingOutcome classifies the result of one acceptance ping. Unreachable is
// kept distinct from a declined ping for logging, but both count as
// not-accepted during negotiation.
type PingOutcome int

const (
	PingNotAccepted PingOutcome = iota
	PingAccepted
	PingUnreachable
)

// Accepted reports whether the driver accepted the trip.
func (o PingOutcome) Accepted() bool {
	return o == PingAccepted
}
