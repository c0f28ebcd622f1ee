// Package usecase defines business logic interfaces for authentication and session operations.
package usecase

import (
	"context"
	"time"

	"github.com/google/uuid"

	authDomain "github.com/allisson/tracker/internal/auth/domain"
	userDomain "github.com/allisson/tracker/internal/user/domain"
)

// UserRepository defines the user persistence operations the session flows need.
// Implementations must support transaction-aware operations via context propagation.
type UserRepository interface {
	// GetByID retrieves a user by ID. Returns ErrUserNotFound if not found.
	GetByID(ctx context.Context, id uuid.UUID) (*userDomain.User, error)

	// GetByEmail retrieves a user by email. Returns ErrUserNotFound if not found.
	GetByEmail(ctx context.Context, email string) (*userDomain.User, error)

	// UpdateLastLogin records the time of the user's latest successful login.
	UpdateLastLogin(ctx context.Context, id uuid.UUID, loginAt time.Time) error

	// UpdatePassword replaces the stored password digest.
	UpdatePassword(ctx context.Context, id uuid.UUID, hashedPassword string) error
}

// RevocationStore tracks revoked token IDs and active sessions per user.
// Entries carry a TTL so the store self-cleans once tokens expire anyway.
type RevocationStore interface {
	// Revoke blacklists a jti for the given duration. A non-positive TTL is a
	// no-op since the token is already expired.
	Revoke(ctx context.Context, jti string, ttl time.Duration) error

	// RevokeOnce atomically blacklists a jti and reports whether this call was
	// the first to do so. Exactly one concurrent caller wins.
	RevokeOnce(ctx context.Context, jti string, ttl time.Duration) (bool, error)

	// IsRevoked reports whether a jti is blacklisted.
	IsRevoked(ctx context.Context, jti string) (bool, error)

	// TrackSession adds a refresh jti to the user's active session set.
	TrackSession(ctx context.Context, userID uuid.UUID, jti string, ttl time.Duration) error

	// EndSession removes a jti from the user's session set.
	EndSession(ctx context.Context, userID uuid.UUID, jti string) error

	// EndAllSessions revokes every tracked jti for the user and clears the
	// session set. Returns the number of sessions revoked.
	EndAllSessions(ctx context.Context, userID uuid.UUID, ttl time.Duration) (int, error)
}

// RateLimiter throttles login attempts and tracks progressive account lockout.
type RateLimiter interface {
	// Allow reports whether a request for the key fits inside the sliding
	// window. When denied, retryAfter is the number of seconds until the
	// oldest counted request leaves the window.
	Allow(ctx context.Context, key string, limit int, window time.Duration) (allowed bool, retryAfter int, err error)

	// RecordFailure counts a failed login attempt for the account. Reaching
	// the threshold locks the account.
	RecordFailure(ctx context.Context, account string) (failureCount int, locked bool, err error)

	// RecordSuccess resets the account's failure counter.
	RecordSuccess(ctx context.Context, account string) error

	// IsLockedOut reports whether the account is locked and for how many more
	// seconds.
	IsLockedOut(ctx context.Context, account string) (locked bool, retryAfter int, err error)

	// Unlock clears the lockout marker and failure counter for the account.
	Unlock(ctx context.Context, account string) error
}

// SessionUseCase defines the authentication session lifecycle: credential
// login, token refresh with rotation, logout, and password changes.
type SessionUseCase interface {
	// Login authenticates credentials and issues a fresh token pair.
	//
	// Unknown emails and wrong passwords both return ErrInvalidCredentials so
	// callers cannot enumerate accounts. Failed attempts count toward the
	// account lockout threshold; lockout and rate limit denials return a
	// RetryableError carrying the retry-after hint.
	Login(ctx context.Context, input authDomain.LoginInput) (*authDomain.TokenPair, error)

	// Refresh exchanges a valid refresh token for a new token pair. The
	// presented token is revoked first; when two callers race with the same
	// token, exactly one wins and the other gets ErrTokenInvalid.
	Refresh(ctx context.Context, rawRefreshToken string) (*authDomain.TokenPair, error)

	// Logout revokes the current access token and the presented refresh
	// token. The refresh token must belong to the same user as the access
	// claims.
	Logout(ctx context.Context, accessClaims authDomain.Claims, rawRefreshToken string) error

	// LogoutAll revokes every active session for the user. Returns the number
	// of sessions revoked. Outstanding access tokens keep working until they
	// expire.
	LogoutAll(ctx context.Context, userID uuid.UUID) (int, error)

	// ChangePassword verifies the current password, stores a new digest, and
	// ends every active session so all devices must log in again.
	ChangePassword(ctx context.Context, userID uuid.UUID, input authDomain.ChangePasswordInput) error

	// VerifyAccessToken validates an access token's signature, expiry, and
	// revocation status, returning its claims. The role in the claims is the
	// issuance-time snapshot; no database lookup happens here.
	VerifyAccessToken(ctx context.Context, rawAccessToken string) (authDomain.Claims, error)

	// UnlockAccount clears a lockout before its timer expires.
	UnlockAccount(ctx context.Context, email string) error
}
