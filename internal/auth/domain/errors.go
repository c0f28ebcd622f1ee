package domain

import (
	"github.com/allisson/tracker/internal/errors"
)

// Authentication errors surfaced by the session flows. Each wraps a base
// sentinel so handlers can map it to a stable HTTP status.
var (
	// ErrInvalidCredentials covers both unknown email and wrong password;
	// callers must not be able to tell which.
	ErrInvalidCredentials = errors.Wrap(errors.ErrUnauthorized, "invalid credentials")

	// ErrTokenInvalid collapses every token verification failure (signature,
	// expiry, wrong kind, revoked) into a single undistinguishable error.
	ErrTokenInvalid = errors.Wrap(errors.ErrUnauthorized, "invalid token")

	// ErrAccountLocked indicates too many consecutive failed logins.
	ErrAccountLocked = errors.Wrap(errors.ErrLocked, "account temporarily locked")

	// ErrTooManyRequests indicates the login rate limit was exceeded.
	ErrTooManyRequests = errors.Wrap(errors.ErrRateLimited, "too many requests")
)

// RetryableError carries a retry-after hint alongside a sentinel error.
// Used for lockout and rate limit responses so clients can display a
// meaningful retry time.
type RetryableError struct {
	Err        error
	RetryAfter int // seconds
}

// Error implements the error interface.
func (e *RetryableError) Error() string {
	return e.Err.Error()
}

// Unwrap exposes the wrapped sentinel for errors.Is checks.
func (e *RetryableError) Unwrap() error {
	return e.Err
}
