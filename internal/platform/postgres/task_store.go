package postgres

import (
	"context"
	"database/sql"
	"fmt"
	"log/slog"
	"time"

	"github.com/google/uuid"
	"github.com/phrazzld/taskboard-api/internal/domain"
	"github.com/phrazzld/taskboard-api/internal/platform/logger"
	"github.com/phrazzld/taskboard-api/internal/redact"
	"github.com/phrazzld/taskboard-api/internal/store"
)

// PostgresTaskStore implements the store.TaskStore interface using PostgreSQL.
type PostgresTaskStore struct {
	db     store.DBTX
	logger *slog.Logger
}

// NewPostgresTaskStore creates a new PostgresTaskStore.
// If logger is nil, a default logger will be used.
func NewPostgresTaskStore(db store.DBTX, logger *slog.Logger) *PostgresTaskStore {
	if db == nil {
		// ALLOW-PANIC: constructor misuse
		panic("db cannot be nil")
	}
	if logger == nil {
		logger = slog.Default()
	}
	return &PostgresTaskStore{
		db:     db,
		logger: logger.With(slog.String("component", "task_store")),
	}
}

var _ store.TaskStore = (*PostgresTaskStore)(nil)

const taskColumns = `id, user_id, title, description, status, priority, due_date, created_at, updated_at`

type rowScanner interface {
	Scan(dest ...interface{}) error
}

func scanTask(row rowScanner) (*domain.Task, error) {
	var (
		task        domain.Task
		description sql.NullString
		dueDate     sql.NullTime
	)
	if err := row.Scan(
		&task.ID, &task.UserID, &task.Title, &description,
		&task.Status, &task.Priority, &dueDate,
		&task.CreatedAt, &task.UpdatedAt,
	); err != nil {
		return nil, err
	}

	if description.Valid {
		task.Description = &description.String
	}
	if dueDate.Valid {
		due := dueDate.Time.UTC()
		task.DueDate = &due
	}
	task.CreatedAt = task.CreatedAt.UTC()
	task.UpdatedAt = task.UpdatedAt.UTC()
	return &task, nil
}

func nullableDescription(d *string) sql.NullString {
	if d == nil {
		return sql.NullString{}
	}
	return sql.NullString{String: *d, Valid: true}
}

func nullableTime(t *time.Time) sql.NullTime {
	if t == nil {
		return sql.NullTime{}
	}
	return sql.NullTime{Time: t.UTC(), Valid: true}
}

// Create implements store.TaskStore.Create
func (s *PostgresTaskStore) Create(ctx context.Context, task *domain.Task) error {
	if err := task.Validate(); err != nil {
		return fmt.Errorf("%w: %v", store.ErrInvalidEntity, err)
	}

	_, err := s.db.ExecContext(ctx,
		`INSERT INTO tasks (`+taskColumns+`) VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)`,
		task.ID, task.UserID, task.Title, nullableDescription(task.Description),
		string(task.Status), string(task.Priority), nullableTime(task.DueDate),
		task.CreatedAt.UTC(), task.UpdatedAt.UTC(),
	)
	if err != nil {
		err = MapError(err)
		logger.FromContextOrDefault(ctx, s.logger).Error("failed to insert task",
			"error", redact.Error(err),
			"task_id", task.ID)
		return store.NewStoreError("task", "create", "insert failed", err)
	}
	return nil
}

// ListByUser implements store.TaskStore.ListByUser
func (s *PostgresTaskStore) ListByUser(ctx context.Context, userID uuid.UUID) ([]*domain.Task, error) {
	log := logger.FromContextOrDefault(ctx, s.logger)

	rows, err := s.db.QueryContext(ctx,
		`SELECT `+taskColumns+` FROM tasks WHERE user_id = $1 ORDER BY created_at DESC`,
		userID,
	)
	if err != nil {
		log.Error("failed to query tasks", "error", redact.Error(err), "user_id", userID)
		return nil, store.NewStoreError("task", "list", "query failed", MapError(err))
	}
	defer func() { _ = rows.Close() }()

	tasks := make([]*domain.Task, 0)
	for rows.Next() {
		task, err := scanTask(rows)
		if err != nil {
			log.Error("failed to scan task row", "error", redact.Error(err))
			return nil, store.NewStoreError("task", "list", "scan failed", err)
		}
		tasks = append(tasks, task)
	}
	if err := rows.Err(); err != nil {
		return nil, store.NewStoreError("task", "list", "row iteration failed", MapError(err))
	}
	return tasks, nil
}

// GetForUser implements store.TaskStore.GetForUser
func (s *PostgresTaskStore) GetForUser(ctx context.Context, id, userID uuid.UUID) (*domain.Task, error) {
	task, err := scanTask(s.db.QueryRowContext(ctx,
		`SELECT `+taskColumns+` FROM tasks WHERE id = $1 AND user_id = $2`,
		id, userID,
	))
	if err != nil {
		err = MapError(err)
		if store.IsNotFoundError(err) {
			return nil, store.ErrTaskNotFound
		}
		logger.FromContextOrDefault(ctx, s.logger).Error("failed to query task",
			"error", redact.Error(err),
			"task_id", id)
		return nil, store.NewStoreError("task", "get", "query failed", err)
	}
	return task, nil
}

// Update implements store.TaskStore.Update
func (s *PostgresTaskStore) Update(ctx context.Context, task *domain.Task) error {
	if err := task.Validate(); err != nil {
		return fmt.Errorf("%w: %v", store.ErrInvalidEntity, err)
	}

	result, err := s.db.ExecContext(ctx,
		`UPDATE tasks
		 SET title = $1, description = $2, status = $3, priority = $4, due_date = $5, updated_at = $6
		 WHERE id = $7 AND user_id = $8`,
		task.Title, nullableDescription(task.Description),
		string(task.Status), string(task.Priority), nullableTime(task.DueDate),
		task.UpdatedAt.UTC(), task.ID, task.UserID,
	)
	if err != nil {
		err = MapError(err)
		logger.FromContextOrDefault(ctx, s.logger).Error("failed to update task",
			"error", redact.Error(err),
			"task_id", task.ID)
		return store.NewStoreError("task", "update", "update failed", err)
	}
	return checkRowsAffected(result, store.ErrTaskNotFound)
}

// DeleteForUser implements store.TaskStore.DeleteForUser
func (s *PostgresTaskStore) DeleteForUser(ctx context.Context, id, userID uuid.UUID) error {
	result, err := s.db.ExecContext(ctx,
		`DELETE FROM tasks WHERE id = $1 AND user_id = $2`,
		id, userID,
	)
	if err != nil {
		err = MapError(err)
		logger.FromContextOrDefault(ctx, s.logger).Error("failed to delete task",
			"error", redact.Error(err),
			"task_id", id)
		return store.NewStoreError("task", "delete", "delete failed", err)
	}
	return checkRowsAffected(result, store.ErrTaskNotFound)
}
