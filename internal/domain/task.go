package domain

import (
	"errors"
	"strings"
	"time"

	"github.com/google/uuid"
)

// TaskStatus represents the progress state of a task.
// Transitions between statuses are unrestricted.
type TaskStatus string

// Possible task status values
const (
	TaskStatusPending    TaskStatus = "pending"
	TaskStatusInProgress TaskStatus = "in_progress"
	TaskStatusCompleted  TaskStatus = "completed"
)

// TaskPriority represents how urgent a task is.
type TaskPriority string

// Possible task priority values
const (
	TaskPriorityLow    TaskPriority = "low"
	TaskPriorityMedium TaskPriority = "medium"
	TaskPriorityHigh   TaskPriority = "high"
)

// Common validation errors for Task
var (
	ErrEmptyTaskID       = errors.New("task ID cannot be empty")
	ErrEmptyTaskUserID   = errors.New("task user ID cannot be empty")
	ErrEmptyTaskTitle    = errors.New("task title cannot be empty")
	ErrInvalidTaskStatus = errors.New("invalid task status")
	ErrInvalidPriority   = errors.New("invalid task priority")
)

// Task is a unit of work owned by exactly one user.
// ID, UserID and CreatedAt never change after creation.
type Task struct {
	ID          uuid.UUID    `json:"id"`
	UserID      uuid.UUID    `json:"user_id"`
	Title       string       `json:"title"`
	Description *string      `json:"description"`
	Status      TaskStatus   `json:"status"`
	Priority    TaskPriority `json:"priority"`
	DueDate     *time.Time   `json:"due_date"`
	CreatedAt   time.Time    `json:"created_at"`
	UpdatedAt   time.Time    `json:"updated_at"`
}

// NewTask creates a task owned by userID. Empty status and priority fall back
// to pending and medium.
func NewTask(
	userID uuid.UUID,
	title string,
	description *string,
	status TaskStatus,
	priority TaskPriority,
	dueDate *time.Time,
) (*Task, error) {
	if status == "" {
		status = TaskStatusPending
	}
	if priority == "" {
		priority = TaskPriorityMedium
	}

	now := timestamp()
	task := &Task{
		ID:          uuid.New(),
		UserID:      userID,
		Title:       strings.TrimSpace(title),
		Description: normalizeDescription(description),
		Status:      status,
		Priority:    priority,
		DueDate:     utcPtr(dueDate),
		CreatedAt:   now,
		UpdatedAt:   now,
	}

	if err := task.Validate(); err != nil {
		return nil, err
	}

	return task, nil
}

// Validate checks if the Task has valid data.
func (t *Task) Validate() error {
	if t.ID == uuid.Nil {
		return ErrEmptyTaskID
	}
	if t.UserID == uuid.Nil {
		return ErrEmptyTaskUserID
	}
	if strings.TrimSpace(t.Title) == "" {
		return NewValidationError("title", "is required", ErrEmptyTaskTitle)
	}
	if !t.Status.IsValid() {
		return NewValidationError("status", "must be one of pending, in_progress, completed", ErrInvalidTaskStatus)
	}
	if !t.Priority.IsValid() {
		return NewValidationError("priority", "must be one of low, medium, high", ErrInvalidPriority)
	}
	return nil
}

// IsValid reports whether s is a known status.
func (s TaskStatus) IsValid() bool {
	switch s {
	case TaskStatusPending, TaskStatusInProgress, TaskStatusCompleted:
		return true
	default:
		return false
	}
}

// IsValid reports whether p is a known priority.
func (p TaskPriority) IsValid() bool {
	switch p {
	case TaskPriorityLow, TaskPriorityMedium, TaskPriorityHigh:
		return true
	default:
		return false
	}
}

// TaskUpdate carries a partial task edit. Nil pointers leave the field
// unchanged; the Clear flags null out the optional fields.
type TaskUpdate struct {
	Title            *string
	Description      *string
	ClearDescription bool
	Status           *TaskStatus
	Priority         *TaskPriority
	DueDate          *time.Time
	ClearDueDate     bool
}

// Apply copies the provided fields onto the task and re-validates it.
// The task is left untouched when validation fails.
func (u TaskUpdate) Apply(t *Task) error {
	next := *t

	if u.Title != nil {
		next.Title = strings.TrimSpace(*u.Title)
	}
	if u.ClearDescription {
		next.Description = nil
	} else if u.Description != nil {
		next.Description = normalizeDescription(u.Description)
	}
	if u.Status != nil {
		next.Status = *u.Status
	}
	if u.Priority != nil {
		next.Priority = *u.Priority
	}
	if u.ClearDueDate {
		next.DueDate = nil
	} else if u.DueDate != nil {
		next.DueDate = utcPtr(u.DueDate)
	}

	if err := next.Validate(); err != nil {
		return err
	}

	next.UpdatedAt = timestamp()
	*t = next
	return nil
}

func normalizeDescription(description *string) *string {
	if description == nil {
		return nil
	}
	d := strings.TrimSpace(*description)
	if d == "" {
		return nil
	}
	return &d
}

func utcPtr(t *time.Time) *time.Time {
	if t == nil {
		return nil
	}
	u := t.UTC().Truncate(TimestampPrecision)
	return &u
}

// TimestampPrecision is the coarsest resolution of the backing stores
// (MongoDB keeps milliseconds). Domain timestamps are truncated to it.
const TimestampPrecision = time.Millisecond

func timestamp() time.Time {
	return time.Now().UTC().Truncate(TimestampPrecision)
}
