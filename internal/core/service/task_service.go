package service

import (
	"context"
	"time"

	"github.com/rs/zerolog"

	"github.com/evotodo/todo-backend/internal/api/metrics"
	"github.com/evotodo/todo-backend/internal/core/domain"
	"github.com/evotodo/todo-backend/internal/core/ports"
)

// TaskService implements the tenant-scoped task operations. The tenantID
// argument on every method is the verified token identity; it is folded into
// each repository call and is the only authorization input this layer uses.
type TaskService struct {
	repo     ports.TaskRepository
	stats    ports.StatsCache
	activity ports.ActivityRecorder
	logger   zerolog.Logger
}

// NewTaskService builds a TaskService. stats and activity may be nil, in
// which case caching and feed recording are disabled.
func NewTaskService(repo ports.TaskRepository, stats ports.StatsCache, activity ports.ActivityRecorder, logger zerolog.Logger) *TaskService {
	return &TaskService{repo: repo, stats: stats, activity: activity, logger: logger}
}

// Create persists a new task owned by tenantID. The tenant is taken from the
// argument only; any tenant value a caller smuggled into the payload was
// dropped before this point.
func (s *TaskService) Create(ctx context.Context, tenantID string, in ports.CreateTaskInput) (*domain.Task, error) {
	now := time.Now().UTC()
	task := &domain.Task{
		UserID:      tenantID,
		Title:       in.Title,
		Description: in.Description,
		Completed:   false,
		DueDate:     in.DueDate,
		DueDateEnd:  in.DueDateEnd,
		Priority:    in.Priority,
		Category:    in.Category,
		CreatedAt:   now,
		UpdatedAt:   now,
	}

	if err := s.repo.Create(ctx, task); err != nil {
		s.logger.Error().Err(err).Str("tenant_id", tenantID).Msg("failed to create task")
		return nil, err
	}

	metrics.TasksCreatedTotal.WithLabelValues(priorityLabel(task.Priority)).Inc()
	s.afterMutation(ctx, tenantID, task.ID, domain.ActionCreated, task.Title)
	s.logger.Info().Str("tenant_id", tenantID).Int64("task_id", task.ID).Msg("task created")

	return task, nil
}

// List returns all of the tenant's tasks. An empty result is a normal outcome.
func (s *TaskService) List(ctx context.Context, tenantID string) ([]*domain.Task, error) {
	return s.repo.List(ctx, tenantID)
}

// Get returns a single task, or domain.ErrTaskNotFound when the id does not
// exist or belongs to another tenant. The two cases are indistinguishable.
func (s *TaskService) Get(ctx context.Context, tenantID string, id int64) (*domain.Task, error) {
	return s.repo.FindByID(ctx, tenantID, id)
}

// Update replaces all mutable content fields. Tenant and created_at are
// untouched by contract of the repository.
func (s *TaskService) Update(ctx context.Context, tenantID string, id int64, in ports.UpdateTaskInput) (*domain.Task, error) {
	task, err := s.repo.Replace(ctx, tenantID, id, ports.TaskUpdate{
		Title:       in.Title,
		Description: in.Description,
		DueDate:     in.DueDate,
		DueDateEnd:  in.DueDateEnd,
		Priority:    in.Priority,
		Category:    in.Category,
	}, time.Now().UTC())
	if err != nil {
		return nil, err
	}

	metrics.TaskMutationsTotal.WithLabelValues(string(domain.ActionUpdated)).Inc()
	s.afterMutation(ctx, tenantID, id, domain.ActionUpdated, task.Title)
	return task, nil
}

// SetCompleted flips the completion flag.
func (s *TaskService) SetCompleted(ctx context.Context, tenantID string, id int64, completed bool) (*domain.Task, error) {
	task, err := s.repo.SetCompleted(ctx, tenantID, id, completed, time.Now().UTC())
	if err != nil {
		return nil, err
	}

	action := domain.ActionReopened
	if completed {
		action = domain.ActionCompleted
	}
	metrics.TaskMutationsTotal.WithLabelValues(string(action)).Inc()
	s.afterMutation(ctx, tenantID, id, action, task.Title)
	return task, nil
}

// Delete removes the task. A delete that matched nothing — whether the id
// never existed or belongs to another tenant — reports ErrTaskNotFound.
func (s *TaskService) Delete(ctx context.Context, tenantID string, id int64) error {
	deleted, err := s.repo.Delete(ctx, tenantID, id)
	if err != nil {
		return err
	}
	if !deleted {
		return domain.ErrTaskNotFound
	}

	metrics.TaskMutationsTotal.WithLabelValues(string(domain.ActionDeleted)).Inc()
	s.afterMutation(ctx, tenantID, id, domain.ActionDeleted, "")
	s.logger.Info().Str("tenant_id", tenantID).Int64("task_id", id).Msg("task deleted")
	return nil
}

// Stats returns the tenant's task counters, served from cache when possible.
// Cache failures degrade to a direct repository read.
func (s *TaskService) Stats(ctx context.Context, tenantID string) (*domain.TaskStats, error) {
	if s.stats != nil {
		cached, err := s.stats.Get(ctx, tenantID)
		if err != nil {
			s.logger.Warn().Err(err).Str("tenant_id", tenantID).Msg("stats cache read failed")
		} else if cached != nil {
			metrics.StatsCacheTotal.WithLabelValues("hit").Inc()
			return cached, nil
		}
		metrics.StatsCacheTotal.WithLabelValues("miss").Inc()
	}

	stats, err := s.repo.Stats(ctx, tenantID)
	if err != nil {
		return nil, err
	}

	if s.stats != nil {
		if err := s.stats.Set(ctx, tenantID, stats); err != nil {
			s.logger.Warn().Err(err).Str("tenant_id", tenantID).Msg("stats cache write failed")
		}
	}
	return stats, nil
}

// afterMutation invalidates the tenant's cached counters and emits an
// activity event. Both are best-effort.
func (s *TaskService) afterMutation(ctx context.Context, tenantID string, taskID int64, action domain.ActivityAction, title string) {
	if s.stats != nil {
		if err := s.stats.Invalidate(ctx, tenantID); err != nil {
			s.logger.Warn().Err(err).Str("tenant_id", tenantID).Msg("stats cache invalidation failed")
		}
	}
	if s.activity != nil {
		s.activity.Record(domain.ActivityEvent{
			UserID:    tenantID,
			TaskID:    taskID,
			Action:    action,
			Title:     title,
			CreatedAt: time.Now().UTC(),
		})
	}
}

func priorityLabel(p domain.Priority) string {
	if p == "" {
		return "none"
	}
	return string(p)
}
