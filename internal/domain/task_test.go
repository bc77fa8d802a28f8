package domain

import (
	"errors"
	"testing"
	"time"

	"github.com/google/uuid"
)

func TestNewTaskDefaults(t *testing.T) {
	userID := uuid.New()

	task, err := NewTask(userID, "  Buy milk ", nil, "", "", nil)
	if err != nil {
		t.Fatalf("Expected no error, got %v", err)
	}

	if task.ID == uuid.Nil {
		t.Error("Expected non-nil task ID")
	}
	if task.UserID != userID {
		t.Errorf("Expected owner %s, got %s", userID, task.UserID)
	}
	if task.Title != "Buy milk" {
		t.Errorf("Expected trimmed title, got %q", task.Title)
	}
	if task.Status != TaskStatusPending {
		t.Errorf("Expected status %q, got %q", TaskStatusPending, task.Status)
	}
	if task.Priority != TaskPriorityMedium {
		t.Errorf("Expected priority %q, got %q", TaskPriorityMedium, task.Priority)
	}
	if task.DueDate != nil {
		t.Errorf("Expected nil due date, got %v", task.DueDate)
	}
	if task.Description != nil {
		t.Errorf("Expected nil description, got %q", *task.Description)
	}
	if task.CreatedAt.IsZero() {
		t.Error("Expected non-zero CreatedAt")
	}
}

func TestNewTaskValidation(t *testing.T) {
	userID := uuid.New()

	tests := []struct {
		name     string
		userID   uuid.UUID
		title    string
		status   TaskStatus
		priority TaskPriority
		wantErr  error
	}{
		{"missing owner", uuid.Nil, "title", "", "", ErrEmptyTaskUserID},
		{"blank title", userID, "   ", "", "", ErrEmptyTaskTitle},
		{"unknown status", userID, "title", "done", "", ErrInvalidTaskStatus},
		{"unknown priority", userID, "title", "", "urgent", ErrInvalidPriority},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := NewTask(tt.userID, tt.title, nil, tt.status, tt.priority, nil)
			if !errors.Is(err, tt.wantErr) {
				t.Errorf("Expected error %v, got %v", tt.wantErr, err)
			}
		})
	}
}

func TestTaskStatusTransitionsAreUnrestricted(t *testing.T) {
	task, err := NewTask(uuid.New(), "title", nil, TaskStatusCompleted, TaskPriorityHigh, nil)
	if err != nil {
		t.Fatalf("Expected no error, got %v", err)
	}

	for _, status := range []TaskStatus{TaskStatusPending, TaskStatusInProgress, TaskStatusCompleted, TaskStatusPending} {
		s := status
		if err := (TaskUpdate{Status: &s}).Apply(task); err != nil {
			t.Fatalf("Expected transition to %q to succeed, got %v", status, err)
		}
		if task.Status != status {
			t.Errorf("Expected status %q, got %q", status, task.Status)
		}
	}
}

func TestTaskUpdateApply(t *testing.T) {
	due := time.Date(2026, 3, 1, 0, 0, 0, 0, time.UTC)
	desc := "two litres"
	task, err := NewTask(uuid.New(), "Buy milk", &desc, "", "", &due)
	if err != nil {
		t.Fatalf("Expected no error, got %v", err)
	}
	original := *task

	title := "Buy oat milk"
	priority := TaskPriorityHigh
	if err := (TaskUpdate{Title: &title, Priority: &priority}).Apply(task); err != nil {
		t.Fatalf("Expected no error, got %v", err)
	}
	if task.Title != title || task.Priority != priority {
		t.Errorf("Expected fields to be updated, got %+v", task)
	}
	if task.ID != original.ID || task.UserID != original.UserID || !task.CreatedAt.Equal(original.CreatedAt) {
		t.Error("Expected immutable fields to be preserved")
	}
	if task.DueDate == nil || !task.DueDate.Equal(due) {
		t.Errorf("Expected due date to be unchanged, got %v", task.DueDate)
	}

	if err := (TaskUpdate{ClearDueDate: true, ClearDescription: true}).Apply(task); err != nil {
		t.Fatalf("Expected no error, got %v", err)
	}
	if task.DueDate != nil || task.Description != nil {
		t.Errorf("Expected optional fields to be cleared, got due=%v desc=%v", task.DueDate, task.Description)
	}

	blank := ""
	before := *task
	err = (TaskUpdate{Title: &blank}).Apply(task)
	if !errors.Is(err, ErrValidation) {
		t.Errorf("Expected validation error, got %v", err)
	}
	if task.Title != before.Title {
		t.Error("Expected task to be unchanged after failed update")
	}
}

func TestTaskTimestampsTruncatedToStorePrecision(t *testing.T) {
	due := time.Date(2030, 1, 2, 3, 4, 5, 123456789, time.UTC)
	task, err := NewTask(uuid.New(), "Buy milk", nil, "", "", &due)
	if err != nil {
		t.Fatalf("Expected no error, got %v", err)
	}

	for name, ts := range map[string]time.Time{
		"created_at": task.CreatedAt,
		"updated_at": task.UpdatedAt,
		"due_date":   *task.DueDate,
	} {
		if !ts.Equal(ts.Truncate(TimestampPrecision)) {
			t.Errorf("Expected %s truncated to %v, got %v", name, TimestampPrecision, ts)
		}
	}
	if want := time.Date(2030, 1, 2, 3, 4, 5, 123000000, time.UTC); !task.DueDate.Equal(want) {
		t.Errorf("Expected due date %v, got %v", want, task.DueDate)
	}

	status := TaskStatusCompleted
	if err := (TaskUpdate{Status: &status}).Apply(task); err != nil {
		t.Fatalf("Expected no error, got %v", err)
	}
	if !task.UpdatedAt.Equal(task.UpdatedAt.Truncate(TimestampPrecision)) {
		t.Errorf("Expected updated_at truncated to %v, got %v", TimestampPrecision, task.UpdatedAt)
	}
}
