package domain

import (
	"errors"
	"time"
)

// Priority is the optional importance level of a task.
type Priority string

const (
	PriorityLow    Priority = "low"
	PriorityMedium Priority = "medium"
	PriorityHigh   Priority = "high"
)

var ErrTaskNotFound = errors.New("task not found")
var ErrForbidden = errors.New("access forbidden")

// Task is the unit of tenant-scoped storage. UserID is assigned exactly once,
// at creation, from the verified identity; no operation changes it afterwards.
type Task struct {
	ID          int64      `json:"id" bson:"_id"`
	UserID      string     `json:"user_id" bson:"user_id"`
	Title       string     `json:"title" bson:"title"`
	Description string     `json:"description,omitempty" bson:"description,omitempty"`
	Completed   bool       `json:"completed" bson:"completed"`
	DueDate     *time.Time `json:"due_date,omitempty" bson:"due_date,omitempty"`
	DueDateEnd  *time.Time `json:"due_date_end,omitempty" bson:"due_date_end,omitempty"`
	Priority    Priority   `json:"priority,omitempty" bson:"priority,omitempty"`
	Category    string     `json:"category,omitempty" bson:"category,omitempty"`
	CreatedAt   time.Time  `json:"created_at" bson:"created_at"`
	UpdatedAt   time.Time  `json:"updated_at" bson:"updated_at"`
}

// TaskStats are the per-tenant counters backing the dashboard view.
type TaskStats struct {
	Total               int64 `json:"total"`
	Completed           int64 `json:"completed"`
	Pending             int64 `json:"pending"`
	HighPriorityPending int64 `json:"high_priority_pending"`
}
