package api

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/phrazzld/taskboard-api/internal/api/shared"
	"github.com/phrazzld/taskboard-api/internal/domain"
	"github.com/phrazzld/taskboard-api/internal/service"
	"github.com/phrazzld/taskboard-api/internal/service/auth"
	"github.com/phrazzld/taskboard-api/internal/store"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMapErrorToStatusCode(t *testing.T) {
	tests := []struct {
		name           string
		err            error
		expectedStatus int
	}{
		{name: "nil error", err: nil, expectedStatus: http.StatusInternalServerError},
		{name: "invalid token", err: auth.ErrInvalidToken, expectedStatus: http.StatusUnauthorized},
		{name: "expired token", err: auth.ErrExpiredToken, expectedStatus: http.StatusUnauthorized},
		{
			name:           "wrapped missing token",
			err:            fmt.Errorf("authenticate: %w", auth.ErrMissingToken),
			expectedStatus: http.StatusUnauthorized,
		},
		{name: "task not found", err: fmt.Errorf("update task: %w", store.ErrTaskNotFound), expectedStatus: http.StatusNotFound},
		{name: "user not found", err: store.ErrUserNotFound, expectedStatus: http.StatusNotFound},
		{name: "email exists", err: fmt.Errorf("signup: %w", store.ErrEmailExists), expectedStatus: http.StatusBadRequest},
		{name: "bad credentials", err: service.ErrInvalidCredentials, expectedStatus: http.StatusBadRequest},
		{
			name:           "missing fields",
			err:            domain.NewValidationError("", "all fields are required", service.ErrMissingFields),
			expectedStatus: http.StatusBadRequest,
		},
		{
			name:           "field validation",
			err:            domain.NewValidationError("status", "must be one of pending, in_progress, completed", domain.ErrInvalidTaskStatus),
			expectedStatus: http.StatusBadRequest,
		},
		{
			name:           "service failure",
			err:            service.NewServiceError("task", "list", errors.New("connection reset")),
			expectedStatus: http.StatusInternalServerError,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expectedStatus, MapErrorToStatusCode(tt.err))
		})
	}
}

func TestGetSafeErrorMessage(t *testing.T) {
	tests := []struct {
		name            string
		err             error
		expectedMessage string
	}{
		{name: "nil error", err: nil, expectedMessage: "An unexpected error occurred"},
		{name: "missing token", err: auth.ErrMissingToken, expectedMessage: "Unauthorized"},
		{name: "expired token", err: auth.ErrExpiredToken, expectedMessage: "Invalid token"},
		{
			name:            "missing fields",
			err:             domain.NewValidationError("", "all fields are required", service.ErrMissingFields),
			expectedMessage: "All fields are required",
		},
		{name: "bad credentials", err: service.ErrInvalidCredentials, expectedMessage: "Incorrect email or password"},
		{name: "email exists", err: fmt.Errorf("signup: %w", store.ErrEmailExists), expectedMessage: "User already exists"},
		{name: "task not found", err: store.ErrTaskNotFound, expectedMessage: "Task not found"},
		{name: "user not found", err: store.ErrUserNotFound, expectedMessage: "User not found"},
		{
			name:            "field validation",
			err:             domain.NewValidationError("title", "is required", domain.ErrEmptyTaskTitle),
			expectedMessage: "Title is required",
		},
		{
			name:            "multi-word field",
			err:             domain.NewValidationError("due_date", "is invalid", nil),
			expectedMessage: "Due date is invalid",
		},
		{
			name:            "internal details hidden",
			err:             errors.New("pq: relation \"tasks\" does not exist in SELECT * FROM tasks"),
			expectedMessage: "An unexpected error occurred",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expectedMessage, GetSafeErrorMessage(tt.err))
		})
	}
}

func TestHandleAPIError(t *testing.T) {
	tests := []struct {
		name            string
		err             error
		fallback        string
		expectedStatus  int
		expectedMessage string
	}{
		{
			name:            "fallback replaces generic 500 message",
			err:             errors.New("mongo: server selection timeout"),
			fallback:        "Failed to fetch tasks",
			expectedStatus:  http.StatusInternalServerError,
			expectedMessage: "Failed to fetch tasks",
		},
		{
			name:            "fallback ignored for mapped errors",
			err:             store.ErrTaskNotFound,
			fallback:        "Failed to delete task",
			expectedStatus:  http.StatusNotFound,
			expectedMessage: "Task not found",
		},
		{
			name:            "no fallback",
			err:             errors.New("boom"),
			expectedStatus:  http.StatusInternalServerError,
			expectedMessage: "An unexpected error occurred",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req := httptest.NewRequest(http.MethodGet, "/tasks", nil)
			rec := httptest.NewRecorder()

			HandleAPIError(rec, req, tt.err, tt.fallback)

			require.Equal(t, tt.expectedStatus, rec.Code)
			var body shared.ErrorResponse
			require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
			assert.False(t, body.Success)
			assert.Equal(t, tt.expectedMessage, body.Message)
		})
	}
}

func TestSanitizeValidationError(t *testing.T) {
	tests := []struct {
		name     string
		req      interface{}
		expected string
	}{
		{
			name:     "required",
			req:      &CreateTaskRequest{},
			expected: "Title is required",
		},
		{
			name:     "oneof",
			req:      &CreateTaskRequest{Title: "Buy milk", Priority: "urgent"},
			expected: "Priority must be one of low, medium, high",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := shared.ValidateRequest(tt.req)
			require.Error(t, err)
			assert.Equal(t, tt.expected, SanitizeValidationError(err))
		})
	}

	t.Run("non-validator error", func(t *testing.T) {
		assert.Equal(t, "Validation error", SanitizeValidationError(errors.New("nope")))
	})
}
