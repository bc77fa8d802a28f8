package mocks

import (
	"context"
	"sort"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/phrazzld/taskboard-api/internal/domain"
	"github.com/phrazzld/taskboard-api/internal/store"
)

// MockTaskStore implements store.TaskStore with an in-memory map keyed by task ID.
type MockTaskStore struct {
	CreateFn     func(ctx context.Context, task *domain.Task) error
	ListByUserFn func(ctx context.Context, userID uuid.UUID) ([]*domain.Task, error)

	// Clock, when set, stamps created_at and updated_at on Create the way a
	// database default would. It is called with the store lock held.
	Clock func() time.Time

	mu    sync.Mutex
	tasks map[uuid.UUID]*domain.Task
}

// NewMockTaskStore creates an empty in-memory task store.
func NewMockTaskStore() *MockTaskStore {
	return &MockTaskStore{
		tasks: make(map[uuid.UUID]*domain.Task),
	}
}

var _ store.TaskStore = (*MockTaskStore)(nil)

// Create implements the TaskStore interface
func (m *MockTaskStore) Create(ctx context.Context, task *domain.Task) error {
	if m.CreateFn != nil {
		return m.CreateFn(ctx, task)
	}

	m.mu.Lock()
	defer m.mu.Unlock()

	if m.Clock != nil {
		task.CreatedAt = m.Clock()
		task.UpdatedAt = task.CreatedAt
	}
	stored := *task
	m.tasks[task.ID] = &stored
	return nil
}

// ListByUser implements the TaskStore interface
func (m *MockTaskStore) ListByUser(ctx context.Context, userID uuid.UUID) ([]*domain.Task, error) {
	if m.ListByUserFn != nil {
		return m.ListByUserFn(ctx, userID)
	}

	m.mu.Lock()
	defer m.mu.Unlock()

	tasks := make([]*domain.Task, 0)
	for _, task := range m.tasks {
		if task.UserID == userID {
			found := *task
			tasks = append(tasks, &found)
		}
	}
	sort.SliceStable(tasks, func(i, j int) bool {
		return tasks[i].CreatedAt.After(tasks[j].CreatedAt)
	})
	return tasks, nil
}

// GetForUser implements the TaskStore interface
func (m *MockTaskStore) GetForUser(ctx context.Context, id, userID uuid.UUID) (*domain.Task, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	task, ok := m.tasks[id]
	if !ok || task.UserID != userID {
		return nil, store.ErrTaskNotFound
	}
	found := *task
	return &found, nil
}

// Update implements the TaskStore interface
func (m *MockTaskStore) Update(ctx context.Context, task *domain.Task) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	existing, ok := m.tasks[task.ID]
	if !ok || existing.UserID != task.UserID {
		return store.ErrTaskNotFound
	}
	updated := *task
	updated.CreatedAt = existing.CreatedAt
	m.tasks[task.ID] = &updated
	return nil
}

// DeleteForUser implements the TaskStore interface
func (m *MockTaskStore) DeleteForUser(ctx context.Context, id, userID uuid.UUID) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	task, ok := m.tasks[id]
	if !ok || task.UserID != userID {
		return store.ErrTaskNotFound
	}
	delete(m.tasks, id)
	return nil
}

// Count returns the number of stored tasks across all users.
func (m *MockTaskStore) Count() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return len(m.tasks)
}
