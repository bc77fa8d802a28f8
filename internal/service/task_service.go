package service

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/google/uuid"
	"github.com/phrazzld/taskboard-api/internal/domain"
	"github.com/phrazzld/taskboard-api/internal/redact"
	"github.com/phrazzld/taskboard-api/internal/store"
)

// CreateTaskParams holds the inputs for a new task. Zero Status and Priority
// select the defaults.
type CreateTaskParams struct {
	Title       string
	Description *string
	Status      domain.TaskStatus
	Priority    domain.TaskPriority
	DueDate     *time.Time
}

// TaskService provides owner-scoped task operations. A task that belongs to
// another user is reported as store.ErrTaskNotFound.
type TaskService interface {
	List(ctx context.Context, userID uuid.UUID) ([]*domain.Task, error)
	Create(ctx context.Context, userID uuid.UUID, params CreateTaskParams) (*domain.Task, error)
	Get(ctx context.Context, userID, taskID uuid.UUID) (*domain.Task, error)
	Update(ctx context.Context, userID, taskID uuid.UUID, update domain.TaskUpdate) (*domain.Task, error)
	Delete(ctx context.Context, userID, taskID uuid.UUID) error
}

type taskService struct {
	taskStore store.TaskStore
	opTimeout time.Duration
	logger    *slog.Logger
}

var _ TaskService = (*taskService)(nil)

// NewTaskService creates a TaskService. opTimeout bounds each store call.
func NewTaskService(taskStore store.TaskStore, opTimeout time.Duration, logger *slog.Logger) TaskService {
	return &taskService{
		taskStore: taskStore,
		opTimeout: opTimeout,
		logger:    logger,
	}
}

func (s *taskService) List(ctx context.Context, userID uuid.UUID) ([]*domain.Task, error) {
	opCtx, cancel := withOpTimeout(ctx, s.opTimeout)
	defer cancel()

	tasks, err := s.taskStore.ListByUser(opCtx, userID)
	if err != nil {
		componentLogger(ctx, s.logger, "task_service").Error("failed to list tasks",
			"error", redact.Error(err),
			"user_id", userID)
		return nil, NewServiceError("task", "list", err)
	}
	if tasks == nil {
		tasks = []*domain.Task{}
	}
	return tasks, nil
}

func (s *taskService) Create(ctx context.Context, userID uuid.UUID, params CreateTaskParams) (*domain.Task, error) {
	log := componentLogger(ctx, s.logger, "task_service")

	task, err := domain.NewTask(userID, params.Title, params.Description, params.Status, params.Priority, params.DueDate)
	if err != nil {
		return nil, err
	}

	opCtx, cancel := withOpTimeout(ctx, s.opTimeout)
	defer cancel()
	if err := s.taskStore.Create(opCtx, task); err != nil {
		log.Error("failed to create task",
			"error", redact.Error(err),
			"user_id", userID)
		return nil, NewServiceError("task", "create", err)
	}

	log.Debug("task created", "task_id", task.ID, "user_id", userID)
	return task, nil
}

func (s *taskService) Get(ctx context.Context, userID, taskID uuid.UUID) (*domain.Task, error) {
	opCtx, cancel := withOpTimeout(ctx, s.opTimeout)
	defer cancel()

	task, err := s.taskStore.GetForUser(opCtx, taskID, userID)
	if err != nil {
		return nil, s.wrap(ctx, "get", taskID, err)
	}
	return task, nil
}

func (s *taskService) Update(
	ctx context.Context,
	userID, taskID uuid.UUID,
	update domain.TaskUpdate,
) (*domain.Task, error) {
	task, err := s.Get(ctx, userID, taskID)
	if err != nil {
		return nil, err
	}

	if err := update.Apply(task); err != nil {
		return nil, err
	}

	opCtx, cancel := withOpTimeout(ctx, s.opTimeout)
	defer cancel()
	if err := s.taskStore.Update(opCtx, task); err != nil {
		return nil, s.wrap(ctx, "update", taskID, err)
	}

	componentLogger(ctx, s.logger, "task_service").Debug("task updated",
		"task_id", taskID,
		"status", task.Status)
	return task, nil
}

func (s *taskService) Delete(ctx context.Context, userID, taskID uuid.UUID) error {
	opCtx, cancel := withOpTimeout(ctx, s.opTimeout)
	defer cancel()

	if err := s.taskStore.DeleteForUser(opCtx, taskID, userID); err != nil {
		return s.wrap(ctx, "delete", taskID, err)
	}

	componentLogger(ctx, s.logger, "task_service").Debug("task deleted", "task_id", taskID)
	return nil
}

// wrap passes not-found through as an expected outcome and logs anything else.
func (s *taskService) wrap(ctx context.Context, op string, taskID uuid.UUID, err error) error {
	if errors.Is(err, store.ErrTaskNotFound) {
		return fmt.Errorf("%s task: %w", op, err)
	}
	componentLogger(ctx, s.logger, "task_service").Error("task store operation failed",
		"operation", op,
		"error", redact.Error(err),
		"task_id", taskID)
	return NewServiceError("task", op, err)
}
