package domain

import (
	"errors"
	"strings"
	"time"

	"github.com/google/uuid"
)

// Common validation errors
var (
	ErrEmptyUserID         = errors.New("user ID cannot be empty")
	ErrEmptyUserName       = errors.New("name cannot be empty")
	ErrEmptyEmail          = errors.New("email cannot be empty")
	ErrEmptyHashedPassword = errors.New("hashed password cannot be empty")
)

// User represents a registered account. The password hash is never
// serialized; use PublicUser for anything sent to a client.
type User struct {
	ID             uuid.UUID `json:"id"`
	Name           string    `json:"name"`
	Email          string    `json:"email"`
	HashedPassword string    `json:"-"`
	Bio            string    `json:"bio"`
	CreatedAt      time.Time `json:"created_at"`
	UpdatedAt      time.Time `json:"updated_at"`
}

// PublicUser is the projection of a User that is safe to return to clients.
type PublicUser struct {
	ID        uuid.UUID `json:"id"`
	Name      string    `json:"name"`
	Email     string    `json:"email"`
	Bio       string    `json:"bio"`
	CreatedAt time.Time `json:"created_at"`
}

// NewUser creates a User from already-hashed credentials.
// Name and email are trimmed and the email is lower-cased.
func NewUser(name, email, hashedPassword string) (*User, error) {
	now := timestamp()
	user := &User{
		ID:             uuid.New(),
		Name:           strings.TrimSpace(name),
		Email:          NormalizeEmail(email),
		HashedPassword: hashedPassword,
		CreatedAt:      now,
		UpdatedAt:      now,
	}

	if err := user.Validate(); err != nil {
		return nil, err
	}

	return user, nil
}

// Validate checks if the User has valid data.
func (u *User) Validate() error {
	if u.ID == uuid.Nil {
		return ErrEmptyUserID
	}
	if strings.TrimSpace(u.Name) == "" {
		return ErrEmptyUserName
	}
	if u.Email == "" {
		return ErrEmptyEmail
	}
	if !validateEmailFormat(u.Email) {
		return ErrInvalidEmail
	}
	if u.HashedPassword == "" {
		return ErrEmptyHashedPassword
	}
	return nil
}

// Public returns the client-safe projection of the user.
func (u *User) Public() PublicUser {
	return PublicUser{
		ID:        u.ID,
		Name:      u.Name,
		Email:     u.Email,
		Bio:       u.Bio,
		CreatedAt: u.CreatedAt,
	}
}

// ProfileUpdate carries the optional fields of a profile edit.
// A nil field is left unchanged.
type ProfileUpdate struct {
	Name *string
	Bio  *string
}

// Apply trims and copies the provided fields onto the user.
func (p ProfileUpdate) Apply(u *User) error {
	if p.Name != nil {
		name := strings.TrimSpace(*p.Name)
		if name == "" {
			return NewValidationError("name", "cannot be empty", ErrEmptyUserName)
		}
		u.Name = name
	}
	if p.Bio != nil {
		u.Bio = strings.TrimSpace(*p.Bio)
	}
	u.UpdatedAt = timestamp()
	return nil
}

// NormalizeEmail trims and lower-cases an email address so lookups and the
// uniqueness constraint agree on one spelling.
func NormalizeEmail(email string) string {
	return strings.ToLower(strings.TrimSpace(email))
}

// validateEmailFormat performs a basic check: one '@' with a non-empty local
// part and a dotted domain.
func validateEmailFormat(email string) bool {
	at := strings.LastIndex(email, "@")
	if at <= 0 || at == len(email)-1 {
		return false
	}

	domainPart := email[at+1:]
	dot := strings.Index(domainPart, ".")
	return dot > 0 && dot < len(domainPart)-1
}
