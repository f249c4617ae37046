package models

import "time"

// TaskStatus enumerates the allowed task states
type TaskStatus string

const (
	StatusPending    TaskStatus = "Pending"
	StatusInProgress TaskStatus = "In Progress"
	StatusCompleted  TaskStatus = "Completed"
)

// Valid reports whether s is one of the closed set of task states
func (s TaskStatus) Valid() bool {
	switch s {
	case StatusPending, StatusInProgress, StatusCompleted:
		return true
	}
	return false
}

// Task represents a task owned by a single user
type Task struct {
	ID          int64      `json:"id"`
	Title       string     `json:"title"`
	Description string     `json:"description"`
	DueDate     *time.Time `json:"due_date,omitempty"`
	Status      TaskStatus `json:"status"`
	CreatedAt   time.Time  `json:"created_at"`
	UpdatedAt   time.Time  `json:"updated_at"`
	UserID      int64      `json:"user_id"`
}

// CreateTaskRequest is the payload for task creation. The owner is always
// taken from the authenticated user, never from the payload.
type CreateTaskRequest struct {
	Title       string     `json:"title"`
	Description string     `json:"description"`
	DueDate     *time.Time `json:"due_date"`
	Status      TaskStatus `json:"status"`
}

// UpdateTaskRequest is the payload for partial task updates. Nil means
// "field not provided"; a pointer to the zero value is an explicit update,
// so a client can clear the description or due date.
type UpdateTaskRequest struct {
	Title       *string     `json:"title"`
	Description *string     `json:"description"`
	DueDate     *time.Time  `json:"due_date"`
	Status      *TaskStatus `json:"status"`
}

// TaskReminder joins a due task with its owner's contact details
type TaskReminder struct {
	TaskID   int64
	Title    string
	DueDate  time.Time
	Username string
	Email    string
}
