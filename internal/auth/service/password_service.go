// Package service provides the leaf authentication services: Argon2id password
// hashing and RS256 token signing/verification.
package service

import (
	"github.com/allisson/go-pwdhash"
)

// passwordService implements PasswordService using Argon2id.
type passwordService struct {
	hasher *pwdhash.PasswordHasher
}

// Hash derives an Argon2id digest from the plaintext password.
func (p *passwordService) Hash(plainPassword string) (string, error) {
	return p.hasher.Hash([]byte(plainPassword))
}

// Verify performs a constant-time comparison between a plaintext password and
// its stored digest. Malformed or corrupt digests report false.
func (p *passwordService) Verify(plainPassword string, hashedPassword string) bool {
	ok, err := p.hasher.Verify([]byte(plainPassword), hashedPassword)
	if err != nil {
		return false
	}
	return ok
}

// NewPasswordService creates a PasswordService using Argon2id with the
// interactive policy, the recommended trade-off for user-facing logins.
func NewPasswordService() (PasswordService, error) {
	hasher, err := pwdhash.New(pwdhash.WithPolicy(pwdhash.PolicyInteractive))
	if err != nil {
		return nil, err
	}

	return &passwordService{hasher: hasher}, nil
}
