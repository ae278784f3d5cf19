package redis

import (
	"context"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"
)

// TripLockStore serializes commands against the same trip via Redis locks.
type TripLockStore struct {
	client *redis.Client
}

// NewTripLockStore creates a new TripLockStore.
func NewTripLockStore(client *redis.Client) *TripLockStore {
	return &TripLockStore{client: client}
}

// AcquireTripLock attempts to acquire the mutation lock for the given trip.
// Returns true if the lock was acquired, false if already held.
func (s *TripLockStore) AcquireTripLock(ctx context.Context, tripID string, ttl time.Duration) (bool, error) {
	key := fmt.Sprintf("lock:trip:%s", tripID)

	ok, err := s.client.SetNX(ctx, key, "1", ttl).Result()
	if err != nil {
		return false, err
	}

	return ok, nil
}

// ReleaseTripLock releases the mutation lock for the given trip.
func (s *TripLockStore) ReleaseTripLock(ctx context.Context, tripID string) error {
	key := fmt.Sprintf("lock:trip:%s", tripID)

	return s.client.Del(ctx, key).Err()
}
