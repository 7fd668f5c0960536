package ports

import (
	"context"

	"github.com/evotodo/todo-backend/internal/core/domain"
)

// ActivityRecorder accepts events for asynchronous persistence. Recording is
// best-effort: a failure to record never fails the mutation that produced it.
type ActivityRecorder interface {
	Record(event domain.ActivityEvent)
}

// ActivityRepository persists and reads the per-tenant activity feed.
type ActivityRepository interface {
	Insert(ctx context.Context, e *domain.ActivityEvent) error
	// ListRecent returns the tenant's newest events, newest first.
	ListRecent(ctx context.Context, tenantID string, limit int) ([]*domain.ActivityEvent, error)
}

// ActivityService processes queued events and serves the feed.
type ActivityService interface {
	Process(ctx context.Context, e domain.ActivityEvent) error
	Recent(ctx context.Context, tenantID string, limit int) ([]*domain.ActivityEvent, error)
}
