package service

import (
	"context"
	"log"

	"trips/internal/domain"
)

// DriverDirectory is the negotiation-side contract of the driver directory
// client. Every method degrades rather than failing: ListAvailable returns
// an empty slice on error, Ping collapses all failures to a non-accepting
// outcome.
type DriverDirectory interface {
	ListAvailable(ctx context.Context) []domain.DriverCandidate
	Ping(ctx context.Context, driverID, tripID string) domain.PingOutcome
	SetActive(ctx context.Context, driverID string, isActive bool) error
}

// Negotiator runs the sequential driver-acceptance protocol: each candidate
// gets one bounded acceptance window, in order, and the first acceptance
// wins. Pinging is strictly sequential, so at most one driver is ever
// mid-acceptance for a given trip and double assignment cannot occur. The
// trade-off is worst-case latency of window × candidate count.
type Negotiator struct {
	directory DriverDirectory
}

// NewNegotiator creates a new Negotiator.
func NewNegotiator(directory DriverDirectory) *Negotiator {
	return &Negotiator{directory: directory}
}

// Negotiate tries each candidate in sequence and returns the ID of the
// first driver to accept. The second return is false when no candidate
// accepted; that is a normal outcome, not an error, and Negotiate has no
// error path at all.
func (n *Negotiator) Negotiate(ctx context.Context, tripID string, candidates []domain.DriverCandidate) (string, bool) {
	for _, candidate := range candidates {
		outcome := n.directory.Ping(ctx, candidate.ID, tripID)
		if outcome == domain.PingUnreachable {
			log.Printf("negotiation %s: driver %s unreachable, skipping", tripID, candidate.ID)
		}
		if outcome.Accepted() {
			return candidate.ID, true
		}
	}

	return "", false
}
