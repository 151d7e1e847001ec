package redis

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"
)

// CacheStore handles entity and report caching in Redis.
type CacheStore struct {
	client *redis.Client
}

// NewCacheStore creates a new CacheStore.
func NewCacheStore(client *redis.Client) *CacheStore {
	return &CacheStore{client: client}
}

// Cache TTL constants
const (
	HaulCacheTTL   = 10 * time.Second // Haul status changes during dispatch
	ReportCacheTTL = 60 * time.Second // Reports aggregate the whole table; cache harder
)

// Key prefixes
const (
	haulCachePrefix  = "cache:haul:"
	reportSummaryKey = "cache:report:summary"
)

// CachedHaul is the slim haul snapshot kept in cache for list views and
// dispatch polling. Full records always come from Postgres.
type CachedHaul struct {
	ID          int64    `json:"id"`
	Status      string   `json:"status"`
	HaulType    string   `json:"haul_type"`
	UserID      int64    `json:"user_id"`
	DriverID    *int64   `json:"driver_id,omitempty"`
	TruckID     *int64   `json:"truck_id,omitempty"`
	QuotedPrice *float64 `json:"quoted_price,omitempty"`
}

// GetHaul retrieves a haul snapshot from cache. A nil result with nil
// error is a cache miss.
func (s *CacheStore) GetHaul(ctx context.Context, haulID int64) (*CachedHaul, error) {
	key := fmt.Sprintf("%s%d", haulCachePrefix, haulID)
	data, err := s.client.Get(ctx, key).Bytes()
	if err != nil {
		if err == redis.Nil {
			return nil, nil
		}
		return nil, err
	}

	var haul CachedHaul
	if err := json.Unmarshal(data, &haul); err != nil {
		return nil, err
	}
	return &haul, nil
}

// SetHaul stores a haul snapshot in cache.
func (s *CacheStore) SetHaul(ctx context.Context, haul *CachedHaul) error {
	key := fmt.Sprintf("%s%d", haulCachePrefix, haul.ID)
	data, err := json.Marshal(haul)
	if err != nil {
		return err
	}
	return s.client.Set(ctx, key, data, HaulCacheTTL).Err()
}

// InvalidateHaul removes a haul snapshot from cache. Called after every
// transition so stale statuses never outlive a write.
func (s *CacheStore) InvalidateHaul(ctx context.Context, haulID int64) error {
	key := fmt.Sprintf("%s%d", haulCachePrefix, haulID)
	return s.client.Del(ctx, key).Err()
}

// GetReportSummary retrieves the cached report summary JSON, or nil on miss.
func (s *CacheStore) GetReportSummary(ctx context.Context) ([]byte, error) {
	data, err := s.client.Get(ctx, reportSummaryKey).Bytes()
	if err != nil {
		if err == redis.Nil {
			return nil, nil
		}
		return nil, err
	}
	return data, nil
}

// SetReportSummary stores the report summary JSON.
func (s *CacheStore) SetReportSummary(ctx context.Context, data []byte) error {
	return s.client.Set(ctx, reportSummaryKey, data, ReportCacheTTL).Err()
}

// InvalidateReportSummary drops the cached summary; transitions that
// change revenue call this so reports converge within one request.
func (s *CacheStore) InvalidateReportSummary(ctx context.Context) error {
	return s.client.Del(ctx, reportSummaryKey).Err()
}
