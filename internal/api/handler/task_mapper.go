package handler

import (
	"github.com/evotodo/todo-backend/internal/core/domain"
	"github.com/evotodo/todo-backend/internal/core/ports"
)

func toCreateInput(req createTaskRequest) ports.CreateTaskInput {
	return ports.CreateTaskInput{
		Title:       req.Title,
		Description: req.Description,
		DueDate:     req.DueDate,
		DueDateEnd:  req.DueDateEnd,
		Priority:    domain.Priority(req.Priority),
		Category:    req.Category,
	}
}

func toUpdateInput(req updateTaskRequest) ports.UpdateTaskInput {
	return ports.UpdateTaskInput{
		Title:       req.Title,
		Description: req.Description,
		DueDate:     req.DueDate,
		DueDateEnd:  req.DueDateEnd,
		Priority:    domain.Priority(req.Priority),
		Category:    req.Category,
	}
}

func toTaskResponse(t *domain.Task) taskResponse {
	return taskResponse{
		ID:          t.ID,
		UserID:      t.UserID,
		Title:       t.Title,
		Description: t.Description,
		Completed:   t.Completed,
		DueDate:     t.DueDate,
		DueDateEnd:  t.DueDateEnd,
		Priority:    string(t.Priority),
		Category:    t.Category,
		CreatedAt:   t.CreatedAt,
		UpdatedAt:   t.UpdatedAt,
	}
}

func toActivityEntries(events []*domain.ActivityEvent) []activityEntry {
	entries := make([]activityEntry, 0, len(events))
	for _, e := range events {
		entries = append(entries, activityEntry{
			ID:        e.ID,
			TaskID:    e.TaskID,
			Action:    string(e.Action),
			Title:     e.Title,
			CreatedAt: e.CreatedAt,
		})
	}
	return entries
}
