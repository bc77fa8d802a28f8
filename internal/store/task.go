package store

import (
	"context"

	"github.com/google/uuid"
	"github.com/phrazzld/taskboard-api/internal/domain"
)

// TaskStore defines the interface for task persistence.
//
// Every lookup and mutation is scoped by owner: a task that exists but
// belongs to another user is reported as ErrTaskNotFound, exactly like a
// task that does not exist.
type TaskStore interface {
	// Create saves a new task.
	Create(ctx context.Context, task *domain.Task) error

	// ListByUser returns all tasks owned by userID, newest first.
	// Returns an empty slice when the user has no tasks.
	ListByUser(ctx context.Context, userID uuid.UUID) ([]*domain.Task, error)

	// GetForUser retrieves a task by ID if it is owned by userID.
	// Returns ErrTaskNotFound otherwise.
	GetForUser(ctx context.Context, id, userID uuid.UUID) (*domain.Task, error)

	// Update persists the mutable fields of a task owned by task.UserID.
	// Returns ErrTaskNotFound if no such task exists for that owner.
	Update(ctx context.Context, task *domain.Task) error

	// DeleteForUser removes a task by ID if it is owned by userID.
	// Returns ErrTaskNotFound otherwise.
	DeleteForUser(ctx context.Context, id, userID uuid.UUID) error
}
