package ports

import (
	"context"

	"github.com/evotodo/todo-backend/internal/core/domain"
)

// StatsCache caches per-tenant task counters. The repository remains the
// source of truth: callers treat every error, and a nil result, as a miss.
type StatsCache interface {
	// Get returns the cached counters, or (nil, nil) on a miss.
	Get(ctx context.Context, tenantID string) (*domain.TaskStats, error)
	Set(ctx context.Context, tenantID string, stats *domain.TaskStats) error
	Invalidate(ctx context.Context, tenantID string) error
}
