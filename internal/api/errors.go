package api

import (
	"errors"
	"net/http"
	"strings"
	"unicode"
	"unicode/utf8"

	"github.com/go-playground/validator/v10"
	"github.com/phrazzld/taskboard-api/internal/api/shared"
	"github.com/phrazzld/taskboard-api/internal/domain"
	"github.com/phrazzld/taskboard-api/internal/service"
	"github.com/phrazzld/taskboard-api/internal/service/auth"
	"github.com/phrazzld/taskboard-api/internal/store"
)

// Messages returned for expected failures.
const (
	msgUnexpected         = "An unexpected error occurred"
	msgInvalidFormat      = "Invalid request format"
	msgMissingFields      = "All fields are required"
	msgInvalidCredentials = "Incorrect email or password"
	msgUserExists         = "User already exists"
	msgUserNotFound       = "User not found"
	msgTaskNotFound       = "Task not found"
	msgUnauthorized       = "Unauthorized"
	msgInvalidToken       = "Invalid token"
)

// MapErrorToStatusCode maps internal errors to HTTP status codes so that
// internal error types never reach the client.
func MapErrorToStatusCode(err error) int {
	switch {
	case errors.Is(err, auth.ErrInvalidToken),
		errors.Is(err, auth.ErrExpiredToken),
		errors.Is(err, auth.ErrMissingToken),
		errors.Is(err, domain.ErrUnauthorized):
		return http.StatusUnauthorized

	case errors.Is(err, store.ErrUserNotFound),
		errors.Is(err, store.ErrTaskNotFound),
		errors.Is(err, store.ErrNotFound):
		return http.StatusNotFound

	// A taken email is a 400 rather than a 409 to keep the existing client
	// contract.
	case errors.Is(err, store.ErrEmailExists),
		errors.Is(err, service.ErrInvalidCredentials),
		errors.Is(err, domain.ErrValidation),
		errors.Is(err, store.ErrInvalidEntity):
		return http.StatusBadRequest

	default:
		return http.StatusInternalServerError
	}
}

// GetSafeErrorMessage returns a client-safe message for err. Errors without
// a known mapping get a generic message.
func GetSafeErrorMessage(err error) string {
	if err == nil {
		return msgUnexpected
	}

	var validationErr *domain.ValidationError

	switch {
	case errors.Is(err, auth.ErrMissingToken):
		return msgUnauthorized
	case errors.Is(err, auth.ErrInvalidToken),
		errors.Is(err, auth.ErrExpiredToken):
		return msgInvalidToken
	case errors.Is(err, domain.ErrUnauthorized):
		return msgUnauthorized

	case errors.Is(err, service.ErrMissingFields):
		return msgMissingFields
	case errors.Is(err, service.ErrInvalidCredentials):
		return msgInvalidCredentials
	case errors.Is(err, store.ErrEmailExists):
		return msgUserExists

	case errors.Is(err, store.ErrUserNotFound):
		return msgUserNotFound
	case errors.Is(err, store.ErrTaskNotFound):
		return msgTaskNotFound

	case errors.As(err, &validationErr):
		return validationMessage(validationErr.Field, validationErr.Message)
	case errors.Is(err, store.ErrInvalidEntity):
		return "Invalid entity data"

	default:
		return msgUnexpected
	}
}

// HandleAPIError writes the error response for err. fallback replaces the
// generic message on 500 responses so each endpoint can name what failed.
func HandleAPIError(w http.ResponseWriter, r *http.Request, err error, fallback string) {
	status := MapErrorToStatusCode(err)
	message := GetSafeErrorMessage(err)
	if status == http.StatusInternalServerError && fallback != "" {
		message = fallback
	}

	var opts []shared.ResponseOption
	if status == http.StatusUnauthorized {
		opts = append(opts, shared.WithElevatedLogLevel())
	}
	shared.RespondWithErrorAndLog(w, r, status, message, err, opts...)
}

// SanitizeValidationError turns struct-tag validation failures into a
// message naming the first offending field.
func SanitizeValidationError(err error) string {
	var fieldErrs validator.ValidationErrors
	if !errors.As(err, &fieldErrs) || len(fieldErrs) == 0 {
		return "Validation error"
	}

	fe := fieldErrs[0]
	return validationMessage(fe.Field(), getValidationTagMessage(fe.Tag(), fe.Param()))
}

func getValidationTagMessage(tag, param string) string {
	switch tag {
	case "required":
		return "is required"
	case "email":
		return "is not a valid address"
	case "min":
		return "is too short"
	case "max":
		return "is too long"
	case "oneof":
		return "must be one of " + strings.Join(strings.Fields(param), ", ")
	default:
		return "is invalid"
	}
}

// validationMessage renders "due_date", "is invalid" as "Due date is invalid".
func validationMessage(field, message string) string {
	text := message
	if field != "" {
		text = strings.ReplaceAll(field, "_", " ") + " " + message
	}
	return capitalize(text)
}

func capitalize(s string) string {
	r, size := utf8.DecodeRuneInString(s)
	if r == utf8.RuneError {
		return s
	}
	return string(unicode.ToUpper(r)) + s[size:]
}
