// Package domain defines the core user domain entities and types.
package domain

import (
	"time"

	"github.com/google/uuid"

	"github.com/allisson/tracker/internal/errors"
)

// Role is the closed set of roles a user can hold.
// The permission evaluator switches over this type exhaustively; never
// introduce a role without extending the permission tables.
type Role string

const (
	// RoleDeveloper is the default role assigned at registration.
	RoleDeveloper Role = "developer"

	// RoleManager can create projects and manage issues across the board.
	RoleManager Role = "manager"

	// RoleAdmin has the widest role-based grants, but is still subject to
	// ownership-only rules (e.g., editing another author's comment).
	RoleAdmin Role = "admin"
)

// Valid reports whether the role is one of the known roles.
func (r Role) Valid() bool {
	switch r {
	case RoleDeveloper, RoleManager, RoleAdmin:
		return true
	}
	return false
}

// User represents a principal in the system.
// Password holds the Argon2id digest, never the plaintext.
type User struct {
	ID          uuid.UUID
	Username    string
	Email       string
	Password    string
	Role        Role
	IsActive    bool
	LastLoginAt *time.Time
	CreatedAt   time.Time
	UpdatedAt   time.Time
}

// Domain-specific errors for user operations.
var (
	// ErrUserNotFound indicates the requested user does not exist.
	ErrUserNotFound = errors.Wrap(errors.ErrNotFound, "user not found")

	// ErrUserAlreadyExists indicates a user with the same email or username already exists.
	ErrUserAlreadyExists = errors.Wrap(errors.ErrConflict, "user already exists")

	// ErrUserInactive indicates the user account has been deactivated.
	ErrUserInactive = errors.Wrap(errors.ErrForbidden, "user is deactivated")

	// ErrInvalidRole indicates the role value is not part of the closed role set.
	ErrInvalidRole = errors.Wrap(errors.ErrInvalidInput, "invalid role")
)
