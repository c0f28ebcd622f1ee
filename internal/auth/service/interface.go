package service

import (
	"time"

	authDomain "github.com/allisson/tracker/internal/auth/domain"
	userDomain "github.com/allisson/tracker/internal/user/domain"
)

// PasswordService provides one-way password hashing and verification.
type PasswordService interface {
	// Hash derives an Argon2id digest from the plaintext password.
	// The digest embeds salt and work-factor parameters.
	Hash(plainPassword string) (string, error)

	// Verify performs a constant-time comparison between a plaintext password
	// and its stored digest. A malformed digest is a verification failure,
	// never a panic.
	Verify(plainPassword string, hashedPassword string) bool
}

// TokenCodec signs and verifies bearer tokens with an RSA key pair.
// The codec holds no mutable state and is safe for unlimited concurrent use
// once the keys are loaded.
type TokenCodec interface {
	// Issue creates a signed token of the given kind for the user, with a
	// fresh random jti and the kind's configured lifetime.
	Issue(user *userDomain.User, kind authDomain.TokenKind, now time.Time) (string, authDomain.Claims, error)

	// Verify checks the signature, expiry, and kind of a raw token.
	// Every failure collapses into domain.ErrTokenInvalid so callers cannot
	// distinguish the cause.
	Verify(rawToken string, kind authDomain.TokenKind, now time.Time) (authDomain.Claims, error)
}
