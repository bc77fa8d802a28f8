package mongo

import (
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/phrazzld/taskboard-api/internal/domain"
)

type userDocument struct {
	ID           string    `bson:"_id"`
	Name         string    `bson:"name"`
	Email        string    `bson:"email"`
	PasswordHash string    `bson:"password_hash"`
	Bio          string    `bson:"bio"`
	CreatedAt    time.Time `bson:"created_at"`
	UpdatedAt    time.Time `bson:"updated_at"`
}

func newUserDocument(u *domain.User) userDocument {
	return userDocument{
		ID:           u.ID.String(),
		Name:         u.Name,
		Email:        u.Email,
		PasswordHash: u.HashedPassword,
		Bio:          u.Bio,
		CreatedAt:    u.CreatedAt.UTC(),
		UpdatedAt:    u.UpdatedAt.UTC(),
	}
}

func (d userDocument) toDomain() (*domain.User, error) {
	id, err := uuid.Parse(d.ID)
	if err != nil {
		return nil, fmt.Errorf("user document has invalid id %q: %w", d.ID, err)
	}
	return &domain.User{
		ID:             id,
		Name:           d.Name,
		Email:          d.Email,
		HashedPassword: d.PasswordHash,
		Bio:            d.Bio,
		CreatedAt:      d.CreatedAt.UTC(),
		UpdatedAt:      d.UpdatedAt.UTC(),
	}, nil
}

type taskDocument struct {
	ID          string     `bson:"_id"`
	UserID      string     `bson:"user_id"`
	Title       string     `bson:"title"`
	Description *string    `bson:"description"`
	Status      string     `bson:"status"`
	Priority    string     `bson:"priority"`
	DueDate     *time.Time `bson:"due_date"`
	CreatedAt   time.Time  `bson:"created_at"`
	UpdatedAt   time.Time  `bson:"updated_at"`
}

func newTaskDocument(t *domain.Task) taskDocument {
	return taskDocument{
		ID:          t.ID.String(),
		UserID:      t.UserID.String(),
		Title:       t.Title,
		Description: t.Description,
		Status:      string(t.Status),
		Priority:    string(t.Priority),
		DueDate:     t.DueDate,
		CreatedAt:   t.CreatedAt.UTC(),
		UpdatedAt:   t.UpdatedAt.UTC(),
	}
}

func (d taskDocument) toDomain() (*domain.Task, error) {
	id, err := uuid.Parse(d.ID)
	if err != nil {
		return nil, fmt.Errorf("task document has invalid id %q: %w", d.ID, err)
	}
	userID, err := uuid.Parse(d.UserID)
	if err != nil {
		return nil, fmt.Errorf("task document %s has invalid user_id: %w", d.ID, err)
	}

	var due *time.Time
	if d.DueDate != nil {
		u := d.DueDate.UTC()
		due = &u
	}

	return &domain.Task{
		ID:          id,
		UserID:      userID,
		Title:       d.Title,
		Description: d.Description,
		Status:      domain.TaskStatus(d.Status),
		Priority:    domain.TaskPriority(d.Priority),
		DueDate:     due,
		CreatedAt:   d.CreatedAt.UTC(),
		UpdatedAt:   d.UpdatedAt.UTC(),
	}, nil
}
