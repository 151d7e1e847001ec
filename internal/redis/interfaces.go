package redis

import (
	"context"
	"time"
)

// CacheStoreInterface defines the interface for haul/report caching.
type CacheStoreInterface interface {
	GetHaul(ctx context.Context, haulID int64) (*CachedHaul, error)
	SetHaul(ctx context.Context, haul *CachedHaul) error
	InvalidateHaul(ctx context.Context, haulID int64) error
	GetReportSummary(ctx context.Context) ([]byte, error)
	SetReportSummary(ctx context.Context, data []byte) error
	InvalidateReportSummary(ctx context.Context) error
}

// LockStoreInterface defines the interface for per-haul transition locks.
type LockStoreInterface interface {
	AcquireHaulLock(ctx context.Context, haulID int64, ttl time.Duration) (bool, error)
	ReleaseHaulLock(ctx context.Context, haulID int64) error
}

// Ensure concrete types implement interfaces.
var (
	_ CacheStoreInterface = (*CacheStore)(nil)
	_ LockStoreInterface  = (*LockStore)(nil)
)
