package ports

import (
	"context"
	"time"

	"github.com/evotodo/todo-backend/internal/core/domain"
)

// CreateTaskInput carries the content fields for a new task. There is
// deliberately no tenant field: the tenant always comes from the verified
// identity, never from the request payload.
type CreateTaskInput struct {
	Title       string
	Description string
	DueDate     *time.Time
	DueDateEnd  *time.Time
	Priority    domain.Priority
	Category    string
}

// UpdateTaskInput carries the replacement content for a full update.
type UpdateTaskInput struct {
	Title       string
	Description string
	DueDate     *time.Time
	DueDateEnd  *time.Time
	Priority    domain.Priority
	Category    string
}

// TaskService defines the use-case operations on tasks. Every method takes
// the tenant id extracted from the verified token; handlers must not pass the
// path parameter here even after reconciliation has proven the two equal.
type TaskService interface {
	Create(ctx context.Context, tenantID string, in CreateTaskInput) (*domain.Task, error)
	List(ctx context.Context, tenantID string) ([]*domain.Task, error)
	Get(ctx context.Context, tenantID string, id int64) (*domain.Task, error)
	Update(ctx context.Context, tenantID string, id int64, in UpdateTaskInput) (*domain.Task, error)
	SetCompleted(ctx context.Context, tenantID string, id int64, completed bool) (*domain.Task, error)
	Delete(ctx context.Context, tenantID string, id int64) error
	Stats(ctx context.Context, tenantID string) (*domain.TaskStats, error)
}
