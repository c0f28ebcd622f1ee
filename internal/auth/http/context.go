// Package http provides HTTP handlers and middleware for authentication operations.
package http

import (
	"context"

	authDomain "github.com/allisson/tracker/internal/auth/domain"
)

// claimsKey is a context key type for storing verified token claims.
type claimsKey struct{}

// WithClaims stores verified access token claims in the context.
// This is typically called by the authentication middleware after successful token validation.
func WithClaims(ctx context.Context, claims authDomain.Claims) context.Context {
	return context.WithValue(ctx, claimsKey{}, claims)
}

// GetClaims retrieves verified access token claims from the context.
// Returns (claims, true) if claims are present, or a zero value and false if not.
// This is typically called by handlers that need the authenticated user's identity.
func GetClaims(ctx context.Context) (authDomain.Claims, bool) {
	claims, ok := ctx.Value(claimsKey{}).(authDomain.Claims)
	return claims, ok
}
