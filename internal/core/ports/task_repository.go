package ports

import (
	"context"
	"time"

	"github.com/evotodo/todo-backend/internal/core/domain"
)

// TaskUpdate carries the full set of mutable content fields for a replace.
// Tenant and creation timestamp are not part of it: they are immutable.
type TaskUpdate struct {
	Title       string
	Description string
	DueDate     *time.Time
	DueDateEnd  *time.Time
	Priority    domain.Priority
	Category    string
}

// TaskRepository is the only path to task storage. Every operation takes the
// verified tenant id as a mandatory argument, and every by-id operation must
// resolve id and tenant in a single storage predicate. Fetching by id alone
// and checking ownership afterwards in application code is not an acceptable
// implementation: a task that exists but belongs to another tenant must be
// indistinguishable from a task that does not exist at all.
type TaskRepository interface {
	// Create assigns a new unique id to t and persists it. The caller sets
	// UserID and timestamps before the call.
	Create(ctx context.Context, t *domain.Task) error

	// FindByID returns domain.ErrTaskNotFound both when no task with that id
	// exists and when it exists under a different tenant.
	FindByID(ctx context.Context, tenantID string, id int64) (*domain.Task, error)

	// List returns all tasks owned by the tenant. An empty result is not an
	// error.
	List(ctx context.Context, tenantID string) ([]*domain.Task, error)

	// Replace overwrites all mutable content fields and refreshes updated_at.
	// Same absence rule as FindByID.
	Replace(ctx context.Context, tenantID string, id int64, upd TaskUpdate, now time.Time) (*domain.Task, error)

	// SetCompleted flips the completion flag and refreshes updated_at. Same
	// absence rule as FindByID.
	SetCompleted(ctx context.Context, tenantID string, id int64, completed bool, now time.Time) (*domain.Task, error)

	// Delete removes the task matching both id and tenant. It reports false,
	// not an error, when nothing matched.
	Delete(ctx context.Context, tenantID string, id int64) (bool, error)

	// Stats aggregates the tenant's task counters.
	Stats(ctx context.Context, tenantID string) (*domain.TaskStats, error)
}
