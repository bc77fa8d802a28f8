package postgres

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	"github.com/google/uuid"
	"github.com/phrazzld/taskboard-api/internal/domain"
	"github.com/phrazzld/taskboard-api/internal/platform/logger"
	"github.com/phrazzld/taskboard-api/internal/redact"
	"github.com/phrazzld/taskboard-api/internal/store"
)

// PostgresUserStore implements the store.UserStore interface
// using a PostgreSQL database as the storage backend.
type PostgresUserStore struct {
	db     store.DBTX
	logger *slog.Logger
}

// NewPostgresUserStore creates a new PostgreSQL implementation of the UserStore interface.
// If logger is nil, a default logger will be used.
func NewPostgresUserStore(db store.DBTX, logger *slog.Logger) *PostgresUserStore {
	if db == nil {
		// ALLOW-PANIC: constructor misuse
		panic("db cannot be nil")
	}
	if logger == nil {
		logger = slog.Default()
	}
	return &PostgresUserStore{
		db:     db,
		logger: logger.With(slog.String("component", "user_store")),
	}
}

// Ensure PostgresUserStore implements store.UserStore interface
var _ store.UserStore = (*PostgresUserStore)(nil)

const userColumns = `id, name, email, password_hash, bio, created_at, updated_at`

// Create implements store.UserStore.Create
func (s *PostgresUserStore) Create(ctx context.Context, user *domain.User) error {
	if err := user.Validate(); err != nil {
		return fmt.Errorf("%w: %v", store.ErrInvalidEntity, err)
	}

	_, err := s.db.ExecContext(ctx,
		`INSERT INTO users (`+userColumns+`) VALUES ($1, $2, $3, $4, $5, $6, $7)`,
		user.ID, user.Name, user.Email, user.HashedPassword, user.Bio,
		user.CreatedAt.UTC(), user.UpdatedAt.UTC(),
	)
	if err != nil {
		err = MapError(err)
		if errors.Is(err, store.ErrEmailExists) {
			return store.ErrEmailExists
		}
		logger.FromContextOrDefault(ctx, s.logger).Error("failed to insert user",
			"error", redact.Error(err),
			"user_id", user.ID)
		return store.NewStoreError("user", "create", "insert failed", err)
	}
	return nil
}

// GetByID implements store.UserStore.GetByID
func (s *PostgresUserStore) GetByID(ctx context.Context, id uuid.UUID) (*domain.User, error) {
	return s.getOne(ctx, "get by id", `SELECT `+userColumns+` FROM users WHERE id = $1`, id)
}

// GetByEmail implements store.UserStore.GetByEmail
func (s *PostgresUserStore) GetByEmail(ctx context.Context, email string) (*domain.User, error) {
	return s.getOne(ctx, "get by email",
		`SELECT `+userColumns+` FROM users WHERE email = $1`, domain.NormalizeEmail(email))
}

func (s *PostgresUserStore) getOne(ctx context.Context, op, query string, arg interface{}) (*domain.User, error) {
	var user domain.User
	err := s.db.QueryRowContext(ctx, query, arg).Scan(
		&user.ID, &user.Name, &user.Email, &user.HashedPassword, &user.Bio,
		&user.CreatedAt, &user.UpdatedAt,
	)
	if err != nil {
		err = MapError(err)
		if store.IsNotFoundError(err) {
			return nil, store.ErrUserNotFound
		}
		logger.FromContextOrDefault(ctx, s.logger).Error("failed to query user",
			"operation", op,
			"error", redact.Error(err))
		return nil, store.NewStoreError("user", op, "query failed", err)
	}

	user.CreatedAt = user.CreatedAt.UTC()
	user.UpdatedAt = user.UpdatedAt.UTC()
	return &user, nil
}

// UpdateProfile implements store.UserStore.UpdateProfile
func (s *PostgresUserStore) UpdateProfile(ctx context.Context, user *domain.User) error {
	result, err := s.db.ExecContext(ctx,
		`UPDATE users SET name = $1, bio = $2, updated_at = $3 WHERE id = $4`,
		user.Name, user.Bio, user.UpdatedAt.UTC(), user.ID,
	)
	if err != nil {
		err = MapError(err)
		logger.FromContextOrDefault(ctx, s.logger).Error("failed to update user profile",
			"error", redact.Error(err),
			"user_id", user.ID)
		return store.NewStoreError("user", "update profile", "update failed", err)
	}
	return checkRowsAffected(result, store.ErrUserNotFound)
}
