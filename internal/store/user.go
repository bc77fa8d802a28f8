package store

import (
	"context"

	"github.com/google/uuid"
	"github.com/phrazzld/taskboard-api/internal/domain"
)

// UserStore defines the interface for user data persistence.
type UserStore interface {
	// Create saves a new user to the store.
	// Returns ErrEmailExists if the email is already taken; implementations
	// must rely on a unique index so concurrent creates are also rejected.
	Create(ctx context.Context, user *domain.User) error

	// GetByID retrieves a user by their unique ID.
	// Returns ErrUserNotFound if the user does not exist.
	GetByID(ctx context.Context, id uuid.UUID) (*domain.User, error)

	// GetByEmail retrieves a user by their (normalized) email address.
	// Returns ErrUserNotFound if the user does not exist.
	GetByEmail(ctx context.Context, email string) (*domain.User, error)

	// UpdateProfile persists the mutable profile fields (name, bio) and
	// UpdatedAt of an existing user.
	// Returns ErrUserNotFound if the user does not exist.
	UpdateProfile(ctx context.Context, user *domain.User) error
}
