// Package dto provides data transfer objects for the authentication HTTP layer.
package dto

import (
	validation "github.com/jellydator/validation"

	appValidation "github.com/allisson/tracker/internal/validation"
)

// LoginRequest represents the API request for credential login
type LoginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

// Validate validates the LoginRequest using the jellydator/validation library
func (r *LoginRequest) Validate() error {
	err := validation.ValidateStruct(r,
		validation.Field(&r.Email,
			validation.Required.Error("email is required"),
			appValidation.NotBlank,
			appValidation.Email,
		),
		validation.Field(&r.Password,
			validation.Required.Error("password is required"),
		),
	)
	return appValidation.WrapValidationError(err)
}

// RefreshRequest represents the API request for exchanging a refresh token
type RefreshRequest struct {
	RefreshToken string `json:"refresh_token"`
}

// Validate validates the RefreshRequest
func (r *RefreshRequest) Validate() error {
	err := validation.ValidateStruct(r,
		validation.Field(&r.RefreshToken,
			validation.Required.Error("refresh_token is required"),
			appValidation.NotBlank,
		),
	)
	return appValidation.WrapValidationError(err)
}

// LogoutRequest represents the API request for logging out a session
type LogoutRequest struct {
	RefreshToken string `json:"refresh_token"`
}

// Validate validates the LogoutRequest
func (r *LogoutRequest) Validate() error {
	err := validation.ValidateStruct(r,
		validation.Field(&r.RefreshToken,
			validation.Required.Error("refresh_token is required"),
			appValidation.NotBlank,
		),
	)
	return appValidation.WrapValidationError(err)
}

// ChangePasswordRequest represents the API request for changing the password
type ChangePasswordRequest struct {
	CurrentPassword string `json:"current_password"`
	NewPassword     string `json:"new_password"`
}

// Validate validates the ChangePasswordRequest. The new password policy is
// enforced again by the use case; this only checks the request shape.
func (r *ChangePasswordRequest) Validate() error {
	err := validation.ValidateStruct(r,
		validation.Field(&r.CurrentPassword,
			validation.Required.Error("current_password is required"),
		),
		validation.Field(&r.NewPassword,
			validation.Required.Error("new_password is required"),
			validation.Length(8, 128).Error("new_password must be between 8 and 128 characters"),
		),
	)
	return appValidation.WrapValidationError(err)
}
