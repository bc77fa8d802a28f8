package mocks

import (
	"context"
	"sync"

	"github.com/google/uuid"
	"github.com/phrazzld/taskboard-api/internal/domain"
	"github.com/phrazzld/taskboard-api/internal/store"
)

// MockUserStore implements store.UserStore with an in-memory map keyed by email.
type MockUserStore struct {
	// Function fields for customizable behavior
	CreateFn        func(ctx context.Context, user *domain.User) error
	GetByEmailFn    func(ctx context.Context, email string) (*domain.User, error)
	GetByIDFn       func(ctx context.Context, id uuid.UUID) (*domain.User, error)
	UpdateProfileFn func(ctx context.Context, user *domain.User) error

	// Errors returned by the default implementation when set
	CreateError     error
	GetByEmailError error

	mu    sync.Mutex
	users map[string]*domain.User
}

// NewMockUserStore creates a new mock store with initialized defaults
func NewMockUserStore() *MockUserStore {
	return &MockUserStore{
		users: make(map[string]*domain.User),
	}
}

var _ store.UserStore = (*MockUserStore)(nil)

// Create implements the UserStore interface
func (m *MockUserStore) Create(ctx context.Context, user *domain.User) error {
	if m.CreateFn != nil {
		return m.CreateFn(ctx, user)
	}
	if m.CreateError != nil {
		return m.CreateError
	}

	m.mu.Lock()
	defer m.mu.Unlock()

	if _, exists := m.users[user.Email]; exists {
		return store.ErrEmailExists
	}
	stored := *user
	m.users[user.Email] = &stored
	return nil
}

// GetByEmail implements the UserStore interface
func (m *MockUserStore) GetByEmail(ctx context.Context, email string) (*domain.User, error) {
	if m.GetByEmailFn != nil {
		return m.GetByEmailFn(ctx, email)
	}
	if m.GetByEmailError != nil {
		return nil, m.GetByEmailError
	}

	m.mu.Lock()
	defer m.mu.Unlock()

	user, exists := m.users[email]
	if !exists {
		return nil, store.ErrUserNotFound
	}
	found := *user
	return &found, nil
}

// GetByID implements the UserStore interface
func (m *MockUserStore) GetByID(ctx context.Context, id uuid.UUID) (*domain.User, error) {
	if m.GetByIDFn != nil {
		return m.GetByIDFn(ctx, id)
	}

	m.mu.Lock()
	defer m.mu.Unlock()

	for _, user := range m.users {
		if user.ID == id {
			found := *user
			return &found, nil
		}
	}
	return nil, store.ErrUserNotFound
}

// UpdateProfile implements the UserStore interface
func (m *MockUserStore) UpdateProfile(ctx context.Context, user *domain.User) error {
	if m.UpdateProfileFn != nil {
		return m.UpdateProfileFn(ctx, user)
	}

	m.mu.Lock()
	defer m.mu.Unlock()

	for _, existing := range m.users {
		if existing.ID == user.ID {
			existing.Name = user.Name
			existing.Bio = user.Bio
			existing.UpdatedAt = user.UpdatedAt
			return nil
		}
	}
	return store.ErrUserNotFound
}

// Delete removes a user by ID. It is not part of store.UserStore; tests use it
// to simulate an account disappearing between requests.
func (m *MockUserStore) Delete(id uuid.UUID) {
	m.mu.Lock()
	defer m.mu.Unlock()

	for email, user := range m.users {
		if user.ID == id {
			delete(m.users, email)
			return
		}
	}
}

// Count returns the number of stored users.
func (m *MockUserStore) Count() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return len(m.users)
}
