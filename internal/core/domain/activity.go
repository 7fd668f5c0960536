package domain

import "time"

// ActivityAction names what happened to a task.
type ActivityAction string

const (
	ActionCreated   ActivityAction = "created"
	ActionUpdated   ActivityAction = "updated"
	ActionCompleted ActivityAction = "completed"
	ActionReopened  ActivityAction = "reopened"
	ActionDeleted   ActivityAction = "deleted"
)

// ActivityEvent records a single task mutation for the tenant's activity feed.
type ActivityEvent struct {
	ID        string         `json:"id" bson:"_id"`
	UserID    string         `json:"user_id" bson:"user_id"`
	TaskID    int64          `json:"task_id" bson:"task_id"`
	Action    ActivityAction `json:"action" bson:"action"`
	Title     string         `json:"title" bson:"title"`
	CreatedAt time.Time      `json:"created_at" bson:"created_at"`
}
