package redis

import (
	"context"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"
)

// LockStore handles distributed locking in Redis. Transition handlers
// take a per-haul lock so two concurrent requests on the same haul are
// serialized; the second sees the first one's committed status and fails
// the state-machine check instead of double-applying.
type LockStore struct {
	client *redis.Client
}

// NewLockStore creates a new LockStore.
func NewLockStore(client *redis.Client) *LockStore {
	return &LockStore{client: client}
}

// AcquireHaulLock attempts to acquire the transition lock for a haul.
// Returns true if the lock was acquired, false if already held.
func (s *LockStore) AcquireHaulLock(ctx context.Context, haulID int64, ttl time.Duration) (bool, error) {
	key := fmt.Sprintf("lock:haul:%d", haulID)

	ok, err := s.client.SetNX(ctx, key, "1", ttl).Result()
	if err != nil {
		return false, err
	}

	return ok, nil
}

// ReleaseHaulLock releases the transition lock for a haul.
func (s *LockStore) ReleaseHaulLock(ctx context.Context, haulID int64) error {
	key := fmt.Sprintf("lock:haul:%d", haulID)

	return s.client.Del(ctx, key).Err()
}
