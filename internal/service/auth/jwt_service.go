package auth

import (
	"context"
	"time"

	"github.com/google/uuid"
)

// TokenLifetime is how long an issued session token stays valid.
const TokenLifetime = 24 * time.Hour

// JWTService defines operations for managing JWT session tokens.
type JWTService interface {
	// GenerateToken creates a signed JWT containing the user's ID.
	GenerateToken(ctx context.Context, userID uuid.UUID) (string, error)

	// ValidateToken verifies the token's signature and expiry and extracts its
	// claims. Failures are reported as ErrInvalidToken or ErrExpiredToken.
	ValidateToken(ctx context.Context, tokenString string) (*Claims, error)
}

// Claims represents the validated contents of a session token.
type Claims struct {
	UserID    uuid.UUID `json:"uid"`
	Subject   string    `json:"sub,omitempty"`
	IssuedAt  time.Time `json:"iat,omitempty"`
	ExpiresAt time.Time `json:"exp,omitempty"`
	ID        string    `json:"jti,omitempty"`
}
