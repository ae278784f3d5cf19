package tests

import (
	"context"
	"testing"

	"trips/internal/domain"
	"trips/internal/service"
)

// ──────────────────────────────────────────────
// SEQUENTIAL NEGOTIATION PROTOCOL
// ──────────────────────────────────────────────

func candidates(ids ...string) []domain.DriverCandidate {
	out := make([]domain.DriverCandidate, 0, len(ids))
	for _, id := range ids {
		out = append(out, domain.DriverCandidate{ID: id})
	}
	return out
}

func TestNegotiate_FirstAcceptorWins_StopsPinging(t *testing.T) {
	t.Parallel()

	directory := NewMockDriverDirectory()
	directory.Outcomes["d2"] = domain.PingAccepted
	directory.Outcomes["d4"] = domain.PingAccepted // must never be reached

	negotiator := service.NewNegotiator(directory)

	driverID, assigned := negotiator.Negotiate(context.Background(), "trip-1", candidates("d1", "d2", "d3", "d4"))
	if !assigned {
		t.Fatal("expected an assignment")
	}
	if driverID != "d2" {
		t.Errorf("expected driver d2, got %s", driverID)
	}

	pings := directory.PingOrder()
	if len(pings) != 2 {
		t.Fatalf("expected exactly 2 pings, got %d", len(pings))
	}
	if pings[0] != "d1" || pings[1] != "d2" {
		t.Errorf("expected ping order [d1 d2], got %v", pings)
	}
}

func TestNegotiate_AllDecline_PingsEveryoneOnce(t *testing.T) {
	t.Parallel()

	directory := NewMockDriverDirectory()
	negotiator := service.NewNegotiator(directory)

	driverID, assigned := negotiator.Negotiate(context.Background(), "trip-1", candidates("d1", "d2", "d3"))
	if assigned {
		t.Fatalf("expected no assignment, got driver %s", driverID)
	}

	pings := directory.PingOrder()
	if len(pings) != 3 {
		t.Fatalf("expected exactly 3 pings, got %d", len(pings))
	}
	for i, want := range []string{"d1", "d2", "d3"} {
		if pings[i] != want {
			t.Errorf("ping %d: expected %s, got %s", i, want, pings[i])
		}
	}
}

func TestNegotiate_EmptyCandidateList_NoPings(t *testing.T) {
	t.Parallel()

	directory := NewMockDriverDirectory()
	negotiator := service.NewNegotiator(directory)

	_, assigned := negotiator.Negotiate(context.Background(), "trip-1", nil)
	if assigned {
		t.Fatal("expected no assignment for empty candidate list")
	}

	if len(directory.PingOrder()) != 0 {
		t.Errorf("expected zero pings, got %v", directory.PingOrder())
	}
}

func TestNegotiate_UnreachableDriverCountsAsDecline(t *testing.T) {
	t.Parallel()

	directory := NewMockDriverDirectory()
	directory.Outcomes["d1"] = domain.PingUnreachable
	directory.Outcomes["d2"] = domain.PingAccepted

	negotiator := service.NewNegotiator(directory)

	driverID, assigned := negotiator.Negotiate(context.Background(), "trip-1", candidates("d1", "d2"))
	if !assigned {
		t.Fatal("expected an assignment despite d1 being unreachable")
	}
	if driverID != "d2" {
		t.Errorf("expected driver d2, got %s", driverID)
	}
}

func TestNegotiate_LastCandidateAccepts(t *testing.T) {
	t.Parallel()

	directory := NewMockDriverDirectory()
	directory.Outcomes["d5"] = domain.PingAccepted

	negotiator := service.NewNegotiator(directory)

	driverID, assigned := negotiator.Negotiate(context.Background(), "trip-1", candidates("d1", "d2", "d3", "d4", "d5"))
	if !assigned || driverID != "d5" {
		t.Fatalf("expected assignment to d5, got %q (assigned=%v)", driverID, assigned)
	}

	if got := len(directory.PingOrder()); got != 5 {
		t.Errorf("expected 5 pings, got %d", got)
	}
}
