package service

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog"

	"github.com/evotodo/todo-backend/internal/core/domain"
	"github.com/evotodo/todo-backend/internal/core/ports"
)

const (
	defaultFeedLimit = 20
	maxFeedLimit     = 100
)

type activityService struct {
	repo ports.ActivityRepository
	log  zerolog.Logger
}

// NewActivityService returns an ActivityService implementation.
func NewActivityService(repo ports.ActivityRepository, log zerolog.Logger) ports.ActivityService {
	return &activityService{repo: repo, log: log}
}

// Process persists a single activity event, assigning an id and timestamp
// when the producer left them unset.
func (s *activityService) Process(ctx context.Context, e domain.ActivityEvent) error {
	if e.ID == "" {
		e.ID = uuid.NewString()
	}
	if e.CreatedAt.IsZero() {
		e.CreatedAt = time.Now().UTC()
	}

	if err := s.repo.Insert(ctx, &e); err != nil {
		return fmt.Errorf("record activity: %w", err)
	}

	s.log.Debug().
		Str("tenant_id", e.UserID).
		Int64("task_id", e.TaskID).
		Str("action", string(e.Action)).
		Msg("activity recorded")
	return nil
}

// Recent returns the tenant's newest events. limit <= 0 falls back to the
// default; values above the cap are clamped.
func (s *activityService) Recent(ctx context.Context, tenantID string, limit int) ([]*domain.ActivityEvent, error) {
	if limit <= 0 {
		limit = defaultFeedLimit
	}
	if limit > maxFeedLimit {
		limit = maxFeedLimit
	}
	return s.repo.ListRecent(ctx, tenantID, limit)
}
