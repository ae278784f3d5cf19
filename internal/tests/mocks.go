package tests

import (
	"context"
	"sync"
	"sync/atomic"
	"time"

	"trips/internal/domain"
	"trips/internal/repository"
)

// ──────────────────────────────────────────────
// MOCK TRIP REPOSITORY
// ──────────────────────────────────────────────

// MockTripRepository is a mock implementation of repository.TripRepository.
type MockTripRepository struct {
	mu    sync.RWMutex
	trips map[string]*domain.Trip

	// Counters for verification
	CreateCallCount int32
	UpdateCallCount int32

	// Error injection
	CreateError error
	UpdateError error
}

// NewMockTripRepository creates a new mock trip repository.
func NewMockTripRepository() *MockTripRepository {
	return &MockTripRepository{
		trips: make(map[string]*domain.Trip),
	}
}

// AddTrip adds a trip to the mock repository.
func (m *MockTripRepository) AddTrip(trip *domain.Trip) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.trips[trip.ID] = trip
}

func (m *MockTripRepository) Create(ctx context.Context, trip *domain.Trip) error {
	atomic.AddInt32(&m.CreateCallCount, 1)
	if m.CreateError != nil {
		return m.CreateError
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	if _, ok := m.trips[trip.ID]; ok {
		return repository.ErrDuplicateKey
	}
	copy := *trip
	m.trips[trip.ID] = &copy
	return nil
}

func (m *MockTripRepository) GetByID(ctx context.Context, id string) (*domain.Trip, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	trip, ok := m.trips[id]
	if !ok {
		return nil, repository.ErrNotFound
	}
	// Return a copy to avoid mutation issues.
	copy := *trip
	return &copy, nil
}

func (m *MockTripRepository) GetAll(ctx context.Context) ([]*domain.Trip, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	result := make([]*domain.Trip, 0, len(m.trips))
	for _, t := range m.trips {
		copy := *t
		result = append(result, &copy)
	}
	return result, nil
}

func (m *MockTripRepository) Update(ctx context.Context, id string, update repository.TripUpdate) error {
	atomic.AddInt32(&m.UpdateCallCount, 1)
	if m.UpdateError != nil {
		return m.UpdateError
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	trip, ok := m.trips[id]
	if !ok {
		return repository.ErrNotFound
	}
	if update.Status != nil {
		trip.Status = *update.Status
	}
	if update.DriverID != nil {
		trip.DriverID = *update.DriverID
	}
	if update.Fare != nil {
		fare := *update.Fare
		trip.Fare = &fare
	}
	if update.Distance != nil {
		distance := *update.Distance
		trip.Distance = &distance
	}
	trip.UpdatedAt = time.Now()
	return nil
}

// GetTrip returns the stored trip for test assertions.
func (m *MockTripRepository) GetTrip(id string) *domain.Trip {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return m.trips[id]
}

// CountTrips returns the number of stored trips.
func (m *MockTripRepository) CountTrips() int {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return len(m.trips)
}

// ──────────────────────────────────────────────
// MOCK DRIVER DIRECTORY
// ──────────────────────────────────────────────

// SetActiveCall records one SetActive invocation.
type SetActiveCall struct {
	DriverID string
	IsActive bool
}

// MockDriverDirectory is a scripted implementation of service.DriverDirectory.
type MockDriverDirectory struct {
	mu sync.Mutex

	// Scripted behavior
	Candidates     []domain.DriverCandidate
	Outcomes       map[string]domain.PingOutcome // default: PingNotAccepted
	SetActiveError error

	// Recorded calls
	Pings          []string // driver IDs in ping order
	SetActiveCalls []SetActiveCall

	ListAvailableCallCount int32
}

// NewMockDriverDirectory creates a new mock driver directory.
func NewMockDriverDirectory() *MockDriverDirectory {
	return &MockDriverDirectory{
		Outcomes: make(map[string]domain.PingOutcome),
	}
}

func (m *MockDriverDirectory) ListAvailable(ctx context.Context) []domain.DriverCandidate {
	atomic.AddInt32(&m.ListAvailableCallCount, 1)
	m.mu.Lock()
	defer m.mu.Unlock()
	return append([]domain.DriverCandidate(nil), m.Candidates...)
}

func (m *MockDriverDirectory) Ping(ctx context.Context, driverID, tripID string) domain.PingOutcome {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.Pings = append(m.Pings, driverID)
	return m.Outcomes[driverID]
}

func (m *MockDriverDirectory) SetActive(ctx context.Context, driverID string, isActive bool) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.SetActiveCalls = append(m.SetActiveCalls, SetActiveCall{DriverID: driverID, IsActive: isActive})
	return m.SetActiveError
}

// PingOrder returns the recorded ping sequence.
func (m *MockDriverDirectory) PingOrder() []string {
	m.mu.Lock()
	defer m.mu.Unlock()
	return append([]string(nil), m.Pings...)
}

// ──────────────────────────────────────────────
// MOCK PAYMENT GATEWAY
// ──────────────────────────────────────────────

// ChargeCall records one Charge invocation.
type ChargeCall struct {
	TripID         string
	Amount         float64
	IdempotencyKey string
}

// MockPaymentGateway is a scripted implementation of service.PaymentGateway.
type MockPaymentGateway struct {
	mu sync.Mutex

	Result domain.ChargeResult

	Charges []ChargeCall
}

// NewMockPaymentGateway creates a mock gateway reporting the given status.
func NewMockPaymentGateway(status domain.PaymentStatus) *MockPaymentGateway {
	return &MockPaymentGateway{
		Result: domain.ChargeResult{Status: status, TransactionID: "txn-1"},
	}
}

func (m *MockPaymentGateway) Charge(ctx context.Context, tripID string, amount float64, idempotencyKey string) domain.ChargeResult {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.Charges = append(m.Charges, ChargeCall{TripID: tripID, Amount: amount, IdempotencyKey: idempotencyKey})
	return m.Result
}

// ChargeCount returns the number of charge attempts.
func (m *MockPaymentGateway) ChargeCount() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return len(m.Charges)
}

// ──────────────────────────────────────────────
// MOCK TRIP LOCK STORE
// ──────────────────────────────────────────────

// MockTripLockStore is a mock implementation of redis.TripLockStoreInterface.
type MockTripLockStore struct {
	mu    sync.Mutex
	held  map[string]bool
	Error error // injected on acquire

	AcquireCallCount int32
	ReleaseCallCount int32
}

// NewMockTripLockStore creates a new mock lock store.
func NewMockTripLockStore() *MockTripLockStore {
	return &MockTripLockStore{held: make(map[string]bool)}
}

// Hold marks a trip's lock as already taken.
func (m *MockTripLockStore) Hold(tripID string) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.held[tripID] = true
}

func (m *MockTripLockStore) AcquireTripLock(ctx context.Context, tripID string, ttl time.Duration) (bool, error) {
	atomic.AddInt32(&m.AcquireCallCount, 1)
	if m.Error != nil {
		return false, m.Error
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.held[tripID] {
		return false, nil
	}
	m.held[tripID] = true
	return true, nil
}

func (m *MockTripLockStore) ReleaseTripLock(ctx context.Context, tripID string) error {
	atomic.AddInt32(&m.ReleaseCallCount, 1)
	m.mu.Lock()
	defer m.mu.Unlock()
	delete(m.held, tripID)
	return nil
}
