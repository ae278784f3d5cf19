package redis

import (
	"context"
	"time"
)

// TripLockStoreInterface abstracts the trip lock store for testing.
type TripLockStoreInterface interface {
	AcquireTripLock(ctx context.Context, tripID string, ttl time.Duration) (bool, error)
	ReleaseTripLock(ctx context.Context, tripID string) error
}

var _ TripLockStoreInterface = (*TripLockStore)(nil)
