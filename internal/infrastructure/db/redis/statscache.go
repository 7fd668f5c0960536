package redis

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/evotodo/todo-backend/internal/core/domain"
)

const statsTTL = 30 * time.Second

// StatsCache caches per-tenant task counters in Redis.
// Key format: stats:<tenant_id>
type StatsCache struct {
	client *redis.Client
}

// NewStatsCache creates a StatsCache wrapping the given Redis client.
func NewStatsCache(client *redis.Client) *StatsCache {
	return &StatsCache{client: client}
}

// Get returns the cached counters for the tenant, or (nil, nil) on a miss.
func (s *StatsCache) Get(ctx context.Context, tenantID string) (*domain.TaskStats, error) {
	raw, err := s.client.Get(ctx, s.key(tenantID)).Bytes()
	if errors.Is(err, redis.Nil) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("stats cache get: %w", err)
	}

	var stats domain.TaskStats
	if err := json.Unmarshal(raw, &stats); err != nil {
		return nil, fmt.Errorf("stats cache decode: %w", err)
	}
	return &stats, nil
}

// Set stores the counters with a short TTL; mutations invalidate eagerly, the
// TTL only bounds staleness after missed invalidations.
func (s *StatsCache) Set(ctx context.Context, tenantID string, stats *domain.TaskStats) error {
	raw, err := json.Marshal(stats)
	if err != nil {
		return fmt.Errorf("stats cache encode: %w", err)
	}
	return s.client.Set(ctx, s.key(tenantID), raw, statsTTL).Err()
}

// Invalidate drops the tenant's cached counters.
func (s *StatsCache) Invalidate(ctx context.Context, tenantID string) error {
	return s.client.Del(ctx, s.key(tenantID)).Err()
}

func (s *StatsCache) key(tenantID string) string {
	return "stats:" + tenantID
}
