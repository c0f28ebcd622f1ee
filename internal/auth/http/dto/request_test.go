package dto

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestLoginRequest_Validate(t *testing.T) {
	tests := []struct {
		name    string
		request LoginRequest
		wantErr bool
	}{
		{
			name:    "valid request",
			request: LoginRequest{Email: "alice@example.com", Password: "SecurePass123!"},
			wantErr: false,
		},
		{
			name:    "missing email",
			request: LoginRequest{Password: "SecurePass123!"},
			wantErr: true,
		},
		{
			name:    "invalid email",
			request: LoginRequest{Email: "not-an-email", Password: "SecurePass123!"},
			wantErr: true,
		},
		{
			name:    "blank email",
			request: LoginRequest{Email: "   ", Password: "SecurePass123!"},
			wantErr: true,
		},
		{
			name:    "missing password",
			request: LoginRequest{Email: "alice@example.com"},
			wantErr: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := tt.request.Validate()
			if tt.wantErr {
				assert.Error(t, err)
			} else {
				assert.NoError(t, err)
			}
		})
	}
}

func TestRefreshRequest_Validate(t *testing.T) {
	assert.NoError(t, (&RefreshRequest{RefreshToken: "some-token"}).Validate())
	assert.Error(t, (&RefreshRequest{}).Validate())
	assert.Error(t, (&RefreshRequest{RefreshToken: "   "}).Validate())
}

func TestLogoutRequest_Validate(t *testing.T) {
	assert.NoError(t, (&LogoutRequest{RefreshToken: "some-token"}).Validate())
	assert.Error(t, (&LogoutRequest{}).Validate())
}

func TestChangePasswordRequest_Validate(t *testing.T) {
	tests := []struct {
		name    string
		request ChangePasswordRequest
		wantErr bool
	}{
		{
			name: "valid request",
			request: ChangePasswordRequest{
				CurrentPassword: "OldPass123!",
				NewPassword:     "NewPass456!",
			},
			wantErr: false,
		},
		{
			name:    "missing current password",
			request: ChangePasswordRequest{NewPassword: "NewPass456!"},
			wantErr: true,
		},
		{
			name:    "missing new password",
			request: ChangePasswordRequest{CurrentPassword: "OldPass123!"},
			wantErr: true,
		},
		{
			name: "new password too short",
			request: ChangePasswordRequest{
				CurrentPassword: "OldPass123!",
				NewPassword:     "short",
			},
			wantErr: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := tt.request.Validate()
			if tt.wantErr {
				assert.Error(t, err)
			} else {
				assert.NoError(t, err)
			}
		})
	}
}
