// Package domain defines authentication domain models: token kinds, claims,
// and the sentinel errors surfaced by the session flows.
package domain

// TokenKind distinguishes access tokens from refresh tokens.
// A token of one kind must never be accepted where the other is required.
type TokenKind string

const (
	// AccessTokenKind marks short-lived tokens presented on every API request.
	AccessTokenKind TokenKind = "access"

	// RefreshTokenKind marks long-lived tokens exchanged for new token pairs.
	RefreshTokenKind TokenKind = "refresh"
)

// Valid reports whether the kind is one of the known token kinds.
func (k TokenKind) Valid() bool {
	return k == AccessTokenKind || k == RefreshTokenKind
}
