package domain

import (
	"time"

	"github.com/google/uuid"

	userDomain "github.com/allisson/tracker/internal/user/domain"
)

// Claims is the verified payload of a signed token.
// The embedded role is a snapshot taken at issuance; it can lag a role change
// by up to the access token lifetime (see LoginOutput.ExpiresIn).
type Claims struct {
	// UserID is the subject of the token.
	UserID uuid.UUID
	// Email is the user's email at issuance.
	Email string
	// Role is the user's role at issuance.
	Role userDomain.Role
	// Kind is the token kind (access or refresh).
	Kind TokenKind
	// TokenID is the unique token identifier (jti) used as revocation key.
	TokenID string
	// IssuedAt is when the token was created.
	IssuedAt time.Time
	// ExpiresAt is when the token stops verifying.
	ExpiresAt time.Time
}

// RemainingLifetime returns how long the token is still valid from now.
// Returns zero for already-expired tokens.
func (c Claims) RemainingLifetime(now time.Time) time.Duration {
	remaining := c.ExpiresAt.Sub(now)
	if remaining < 0 {
		return 0
	}
	return remaining
}

// TokenPair carries a freshly issued access and refresh token.
type TokenPair struct {
	AccessToken  string
	RefreshToken string
	// ExpiresIn is the access token lifetime in seconds, for the API response.
	ExpiresIn int
}

// LoginInput contains the credentials presented at login.
type LoginInput struct {
	Email    string
	Password string
	// ClientIP keys the login rate limiter.
	ClientIP string
}

// ChangePasswordInput contains both passwords for a password change.
type ChangePasswordInput struct {
	CurrentPassword string
	NewPassword     string
}
