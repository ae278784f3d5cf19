package service

import (
	"context"
	"log"
	"time"

	"github.com/google/uuid"

	"trips/internal/domain"
	"trips/internal/redis"
	"trips/internal/repository"
)

// tripLockTTL bounds how long one command may hold a trip's mutation lock.
const tripLockTTL = 60 * time.Second

// PaymentGateway is the controller-side contract of the payment client.
// Charge never errors; any failure is a FAILED result.
type PaymentGateway interface {
	Charge(ctx context.Context, tripID string, amount float64, idempotencyKey string) domain.ChargeResult
}

// TripService orchestrates the trip lifecycle: creation with driver
// negotiation, completion with payment, cancellation, and reads. It is the
// only writer to the trip store; collaborator failures degrade the outcome
// but never fail a command that passed validation.
type TripService struct {
	tripRepo   repository.TripRepository
	directory  DriverDirectory
	negotiator *Negotiator
	payments   PaymentGateway
	lockStore  redis.TripLockStoreInterface
}

// NewTripService creates a new TripService. lockStore may be nil, in which
// case commands against the same trip are not serialized.
func NewTripService(
	tripRepo repository.TripRepository,
	directory DriverDirectory,
	negotiator *Negotiator,
	payments PaymentGateway,
	lockStore redis.TripLockStoreInterface,
) *TripService {
	return &TripService{
		tripRepo:   tripRepo,
		directory:  directory,
		negotiator: negotiator,
		payments:   payments,
		lockStore:  lockStore,
	}
}

// lockTrip acquires the per-trip mutation lock. A Redis outage degrades to
// running unserialized rather than failing the command; a held lock means
// another command is mid-flight on this trip.
func (s *TripService) lockTrip(ctx context.Context, tripID string) (func(), error) {
	if s.lockStore == nil {
		return func() {}, nil
	}

	locked, err := s.lockStore.AcquireTripLock(ctx, tripID, tripLockTTL)
	if err != nil {
		log.Printf("trip %s: lock store unavailable, proceeding unserialized: %v", tripID, err)
		return func() {}, nil
	}
	if !locked {
		return nil, ErrTripBusy
	}

	return func() {
		_ = s.lockStore.ReleaseTripLock(ctx, tripID)
	}, nil
}

// CreateTripRequest contains the parameters for requesting a trip.
type CreateTripRequest struct {
	RiderID        string
	PickupLocation string
	DropLocation   string
}

// CreateTripResult contains the created trip and whether a driver accepted.
type CreateTripResult struct {
	Trip     *domain.Trip
	Assigned bool
}

// CreateTrip persists a REQUESTED trip, then negotiates a driver for it.
// The trip exists regardless of how negotiation goes: an unreachable
// directory or a round of declines leaves it REQUESTED with no driver, and
// the command still succeeds.
func (s *TripService) CreateTrip(ctx context.Context, req CreateTripRequest) (*CreateTripResult, error) {
	if req.RiderID == "" {
		return nil, ErrInvalidRiderID
	}
	if req.PickupLocation == "" {
		return nil, ErrInvalidPickupLocation
	}
	if req.DropLocation == "" {
		return nil, ErrInvalidDropLocation
	}

	now := time.Now()
	trip := &domain.Trip{
		ID:             uuid.New().String(),
		RiderID:        req.RiderID,
		PickupLocation: req.PickupLocation,
		DropLocation:   req.DropLocation,
		Status:         domain.TripStatusRequested,
		CreatedAt:      now,
		UpdatedAt:      now,
	}

	if err := s.tripRepo.Create(ctx, trip); err != nil {
		return nil, err
	}

	unlock, err := s.lockTrip(ctx, trip.ID)
	if err != nil {
		return nil, err
	}
	defer unlock()

	candidates := s.directory.ListAvailable(ctx)
	driverID, assigned := s.negotiator.Negotiate(ctx, trip.ID, candidates)
	if !assigned {
		return &CreateTripResult{Trip: trip}, nil
	}

	accepted := domain.TripStatusAccepted
	if err := s.tripRepo.Update(ctx, trip.ID, repository.TripUpdate{
		Status:   &accepted,
		DriverID: &driverID,
	}); err != nil {
		return nil, err
	}
	trip.Status = accepted
	trip.DriverID = driverID

	if err := s.directory.SetActive(ctx, driverID, false); err != nil {
		log.Printf("trip %s: deactivate driver %s: %v", trip.ID, driverID, err)
	}

	return &CreateTripResult{Trip: trip, Assigned: true}, nil
}

// CompleteTripRequest contains the parameters for completing a trip.
type CompleteTripRequest struct {
	TripID   string
	Distance *float64
}

// CompleteTripResult contains the completed trip and its payment outcome.
type CompleteTripResult struct {
	Trip          *domain.Trip
	PaymentStatus domain.PaymentStatus
}

// CompleteTrip computes the fare, charges the rider, and moves the trip to
// COMPLETE on a successful charge or UNPAID otherwise. Fare and distance
// are persisted in both cases. The assigned driver is reactivated best
// effort afterwards.
func (s *TripService) CompleteTrip(ctx context.Context, req CompleteTripRequest) (*CompleteTripResult, error) {
	if req.TripID == "" {
		return nil, ErrInvalidTripID
	}
	if req.Distance == nil {
		return nil, ErrDistanceRequired
	}
	if *req.Distance < 0 {
		return nil, ErrInvalidDistance
	}

	unlock, err := s.lockTrip(ctx, req.TripID)
	if err != nil {
		return nil, err
	}
	defer unlock()

	trip, err := s.tripRepo.GetByID(ctx, req.TripID)
	if err != nil {
		return nil, err
	}

	if trip.Status.Terminal() {
		return nil, ErrTripAlreadyFinal
	}

	fare := CalculateFare(*req.Distance)
	result := s.payments.Charge(ctx, trip.ID, fare, uuid.New().String())

	status := domain.TripStatusComplete
	if !result.Succeeded() {
		status = domain.TripStatusUnpaid
	}

	if err := s.tripRepo.Update(ctx, trip.ID, repository.TripUpdate{
		Status:   &status,
		Fare:     &fare,
		Distance: req.Distance,
	}); err != nil {
		return nil, err
	}
	trip.Status = status
	trip.Fare = &fare
	trip.Distance = req.Distance

	if trip.DriverID != "" {
		if err := s.directory.SetActive(ctx, trip.DriverID, true); err != nil {
			log.Printf("trip %s: reactivate driver %s: %v", trip.ID, trip.DriverID, err)
		}
	}

	return &CompleteTripResult{Trip: trip, PaymentStatus: result.Status}, nil
}

// CancelTrip moves a non-terminal trip to CANCELLED. The assigned driver is
// deliberately not reactivated here.
func (s *TripService) CancelTrip(ctx context.Context, tripID string) (*domain.Trip, error) {
	if tripID == "" {
		return nil, ErrInvalidTripID
	}

	unlock, err := s.lockTrip(ctx, tripID)
	if err != nil {
		return nil, err
	}
	defer unlock()

	trip, err := s.tripRepo.GetByID(ctx, tripID)
	if err != nil {
		return nil, err
	}

	if trip.Status.Terminal() {
		return nil, ErrTripAlreadyFinal
	}

	cancelled := domain.TripStatusCancelled
	if err := s.tripRepo.Update(ctx, trip.ID, repository.TripUpdate{Status: &cancelled}); err != nil {
		return nil, err
	}
	trip.Status = cancelled

	return trip, nil
}

// GetTrip retrieves a trip by ID.
func (s *TripService) GetTrip(ctx context.Context, tripID string) (*domain.Trip, error) {
	if tripID == "" {
		return nil, ErrInvalidTripID
	}

	return s.tripRepo.GetByID(ctx, tripID)
}

// GetAllTrips retrieves recent trips.
func (s *TripService) GetAllTrips(ctx context.Context) ([]*domain.Trip, error) {
	return s.tripRepo.GetAll(ctx)
}
