package handler

import "time"

// errorResponse is the standard error envelope returned on all 4xx/5xx responses.
type errorResponse struct {
	Error string `json:"error"`
}

// --- Request types ---
//
// None of the request schemas carries a user_id field. A tenant identifier
// embedded in the JSON body is dropped on bind; the stored tenant always
// comes from the verified token.

type createTaskRequest struct {
	Title       string     `json:"title"        validate:"required,min=1,max=200"`
	Description string     `json:"description"  validate:"omitempty,max=1000"`
	DueDate     *time.Time `json:"due_date"`
	DueDateEnd  *time.Time `json:"due_date_end"`
	Priority    string     `json:"priority"     validate:"omitempty,oneof=low medium high"`
	Category    string     `json:"category"     validate:"omitempty,max=100"`
}

type updateTaskRequest struct {
	Title       string     `json:"title"        validate:"required,min=1,max=200"`
	Description string     `json:"description"  validate:"omitempty,max=1000"`
	DueDate     *time.Time `json:"due_date"`
	DueDateEnd  *time.Time `json:"due_date_end"`
	Priority    string     `json:"priority"     validate:"omitempty,oneof=low medium high"`
	Category    string     `json:"category"     validate:"omitempty,max=100"`
}

// patchTaskRequest is deliberately restricted to the completion flag; partial
// updates of other fields go through PUT.
type patchTaskRequest struct {
	Completed *bool `json:"completed" validate:"required"`
}

// --- Response types ---

type taskResponse struct {
	ID          int64      `json:"id"`
	UserID      string     `json:"user_id"`
	Title       string     `json:"title"`
	Description string     `json:"description,omitempty"`
	Completed   bool       `json:"completed"`
	DueDate     *time.Time `json:"due_date,omitempty"`
	DueDateEnd  *time.Time `json:"due_date_end,omitempty"`
	Priority    string     `json:"priority,omitempty"`
	Category    string     `json:"category,omitempty"`
	CreatedAt   time.Time  `json:"created_at"`
	UpdatedAt   time.Time  `json:"updated_at"`
}

type taskListResponse struct {
	Data []taskResponse `json:"data"`
}

type taskStatsResponse struct {
	Total               int64 `json:"total"`
	Completed           int64 `json:"completed"`
	Pending             int64 `json:"pending"`
	HighPriorityPending int64 `json:"high_priority_pending"`
}

type activityEntry struct {
	ID        string    `json:"id"`
	TaskID    int64     `json:"task_id"`
	Action    string    `json:"action"`
	Title     string    `json:"title,omitempty"`
	CreatedAt time.Time `json:"created_at"`
}

type activityListResponse struct {
	Data []activityEntry `json:"data"`
}
