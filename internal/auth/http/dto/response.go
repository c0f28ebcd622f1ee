// Package dto provides data transfer objects for the authentication HTTP layer.
package dto

import (
	authDomain "github.com/allisson/tracker/internal/auth/domain"
)

// TokenPairResponse represents the API response carrying a fresh token pair
type TokenPairResponse struct {
	AccessToken  string `json:"access_token"`
	RefreshToken string `json:"refresh_token"`
	TokenType    string `json:"token_type"`
	ExpiresIn    int    `json:"expires_in"`
}

// ToTokenPairResponse converts a domain TokenPair to a TokenPairResponse DTO
func ToTokenPairResponse(pair *authDomain.TokenPair) TokenPairResponse {
	return TokenPairResponse{
		AccessToken:  pair.AccessToken,
		RefreshToken: pair.RefreshToken,
		TokenType:    "bearer",
		ExpiresIn:    pair.ExpiresIn,
	}
}

// LogoutAllResponse represents the API response for a logout-all operation
type LogoutAllResponse struct {
	SessionsRevoked int `json:"sessions_revoked"`
}

// MessageResponse represents a simple confirmation message
type MessageResponse struct {
	Message string `json:"message"`
}
