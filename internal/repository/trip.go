package repository

import (
	"context"

	"trips/internal/domain"
)

// TripUpdate carries the fields of a partial trip update. Nil fields are
// left untouched; updated_at is always refreshed.
type TripUpdate struct {
	Status   *domain.TripStatus
	DriverID *string
	Fare     *float64
	Distance *float64
}

// TripRepository defines the persistence operations for trips.
type TripRepository interface {
	// Create persists a new trip. Returns ErrDuplicateKey if the ID exists.
	Create(ctx context.Context, trip *domain.Trip) error

	// GetByID retrieves a trip by ID. Returns ErrNotFound if absent.
	GetByID(ctx context.Context, id string) (*domain.Trip, error)

	// GetAll retrieves recent trips, newest first.
	GetAll(ctx context.Context) ([]*domain.Trip, error)

	// Update applies a partial update and refreshes updated_at.
	// Returns ErrNotFound if the trip does not exist.
	Update(ctx context.Context, id string, update TripUpdate) error
}
