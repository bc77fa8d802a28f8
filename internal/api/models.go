package api

import (
	"strings"
	"time"

	"github.com/phrazzld/taskboard-api/internal/api/shared"
	"github.com/phrazzld/taskboard-api/internal/domain"
	"github.com/phrazzld/taskboard-api/internal/service"
)

// SignupRequest defines the payload for the signup endpoint. Blank fields
// are reported by the user service so every endpoint shares one message.
type SignupRequest struct {
	Name     string `json:"name"`
	Email    string `json:"email"`
	Password string `json:"password"`
}

// LoginRequest defines the payload for the login endpoint.
type LoginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

// UpdateProfileRequest is a partial profile edit. Absent fields are left
// unchanged.
type UpdateProfileRequest struct {
	Name shared.Optional[string] `json:"name"`
	Bio  shared.Optional[string] `json:"bio"`
}

// AuthResponse is returned by the signup, login and profile endpoints.
// The session token travels only in the cookie.
type AuthResponse struct {
	Success bool              `json:"success"`
	Message string            `json:"message,omitempty"`
	User    domain.PublicUser `json:"user"`
}

// CreateTaskRequest defines the payload for creating a task.
type CreateTaskRequest struct {
	Title       string  `json:"title"       validate:"required"`
	Description *string `json:"description"`
	Status      string  `json:"status"      validate:"omitempty,oneof=pending in_progress completed"`
	Priority    string  `json:"priority"    validate:"omitempty,oneof=low medium high"`
	DueDate     *string `json:"due_date"`
}

// UpdateTaskRequest is a partial task edit. An explicit null clears
// description and due_date.
type UpdateTaskRequest struct {
	Title       shared.Optional[string]              `json:"title"`
	Description shared.Optional[string]              `json:"description"`
	Status      shared.Optional[domain.TaskStatus]   `json:"status"`
	Priority    shared.Optional[domain.TaskPriority] `json:"priority"`
	DueDate     shared.Optional[string]              `json:"due_date"`
}

// TaskResponse is the wire form of a task.
type TaskResponse struct {
	ID          string     `json:"id"`
	UserID      string     `json:"user_id"`
	Title       string     `json:"title"`
	Description *string    `json:"description"`
	Status      string     `json:"status"`
	Priority    string     `json:"priority"`
	DueDate     *time.Time `json:"due_date"`
	CreatedAt   time.Time  `json:"created_at"`
	UpdatedAt   time.Time  `json:"updated_at"`
}

// dueDateLayouts are tried in order. Date-only values are midnight UTC.
var dueDateLayouts = []string{
	time.RFC3339Nano,
	"2006-01-02T15:04:05",
	"2006-01-02T15:04",
	"2006-01-02",
}

// parseDueDate parses a due date. An empty string means no due date.
func parseDueDate(raw string) (*time.Time, error) {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return nil, nil
	}

	for _, layout := range dueDateLayouts {
		if t, err := time.Parse(layout, raw); err == nil {
			t = t.UTC()
			return &t, nil
		}
	}
	return nil, domain.NewValidationError("due_date", "must be an RFC 3339 timestamp or a YYYY-MM-DD date", nil)
}

func (req UpdateProfileRequest) toDomain() domain.ProfileUpdate {
	var update domain.ProfileUpdate
	if req.Name.Set {
		// null is treated as blank, which the domain rejects
		name := req.Name.Value
		update.Name = &name
	}
	if req.Bio.Set {
		bio := req.Bio.Value
		update.Bio = &bio
	}
	return update
}

func (req CreateTaskRequest) toParams() (service.CreateTaskParams, error) {
	params := service.CreateTaskParams{
		Title:       req.Title,
		Description: req.Description,
		Status:      domain.TaskStatus(req.Status),
		Priority:    domain.TaskPriority(req.Priority),
	}
	if req.DueDate != nil {
		due, err := parseDueDate(*req.DueDate)
		if err != nil {
			return service.CreateTaskParams{}, err
		}
		params.DueDate = due
	}
	return params, nil
}

// toDomain converts the request to a domain update. A null title, status or
// priority becomes the zero value, which fails domain validation.
func (req UpdateTaskRequest) toDomain() (domain.TaskUpdate, error) {
	var update domain.TaskUpdate

	if req.Title.Set {
		title := req.Title.Value
		update.Title = &title
	}
	if req.Status.Set {
		status := req.Status.Value
		update.Status = &status
	}
	if req.Priority.Set {
		priority := req.Priority.Value
		update.Priority = &priority
	}

	switch {
	case req.Description.Null:
		update.ClearDescription = true
	case req.Description.Set:
		update.Description = req.Description.Ptr()
	}

	if req.DueDate.Set {
		due, err := parseDueDate(req.DueDate.Value)
		if err != nil {
			return domain.TaskUpdate{}, err
		}
		if due == nil {
			update.ClearDueDate = true
		} else {
			update.DueDate = due
		}
	}

	return update, nil
}

func taskToResponse(task *domain.Task) TaskResponse {
	return TaskResponse{
		ID:          task.ID.String(),
		UserID:      task.UserID.String(),
		Title:       task.Title,
		Description: task.Description,
		Status:      string(task.Status),
		Priority:    string(task.Priority),
		DueDate:     task.DueDate,
		CreatedAt:   task.CreatedAt,
		UpdatedAt:   task.UpdatedAt,
	}
}

func tasksToResponse(tasks []*domain.Task) []TaskResponse {
	out := make([]TaskResponse, 0, len(tasks))
	for _, task := range tasks {
		out = append(out, taskToResponse(task))
	}
	return out
}
