package http

import (
	"log/slog"
	"net/http"

	"github.com/gin-gonic/gin"

	authDomain "github.com/allisson/tracker/internal/auth/domain"
	"github.com/allisson/tracker/internal/auth/http/dto"
	authUseCase "github.com/allisson/tracker/internal/auth/usecase"
	apperrors "github.com/allisson/tracker/internal/errors"
	"github.com/allisson/tracker/internal/httputil"
)

// SessionHandler handles HTTP requests for the authentication session lifecycle.
type SessionHandler struct {
	sessionUseCase authUseCase.SessionUseCase
	logger         *slog.Logger
}

// NewSessionHandler creates a new session handler with required dependencies.
func NewSessionHandler(
	sessionUseCase authUseCase.SessionUseCase,
	logger *slog.Logger,
) *SessionHandler {
	return &SessionHandler{
		sessionUseCase: sessionUseCase,
		logger:         logger,
	}
}

// LoginHandler authenticates credentials and issues a token pair.
// POST /v1/auth/login - No authentication required.
// Returns 200 OK with access and refresh tokens.
func (h *SessionHandler) LoginHandler(c *gin.Context) {
	var req dto.LoginRequest

	// Parse and bind JSON
	if err := c.ShouldBindJSON(&req); err != nil {
		httputil.HandleBadRequestGin(c, err, h.logger)
		return
	}

	// Validate request
	if err := req.Validate(); err != nil {
		httputil.HandleValidationErrorGin(c, err, h.logger)
		return
	}

	input := authDomain.LoginInput{
		Email:    req.Email,
		Password: req.Password,
		ClientIP: c.ClientIP(),
	}

	pair, err := h.sessionUseCase.Login(c.Request.Context(), input)
	if err != nil {
		httputil.HandleErrorGin(c, err, h.logger)
		return
	}

	c.JSON(http.StatusOK, dto.ToTokenPairResponse(pair))
}

// RefreshHandler exchanges a refresh token for a new token pair.
// POST /v1/auth/refresh - No authentication required (the refresh token is the credential).
// Returns 200 OK with a fresh token pair; the presented refresh token is spent.
func (h *SessionHandler) RefreshHandler(c *gin.Context) {
	var req dto.RefreshRequest

	if err := c.ShouldBindJSON(&req); err != nil {
		httputil.HandleBadRequestGin(c, err, h.logger)
		return
	}

	if err := req.Validate(); err != nil {
		httputil.HandleValidationErrorGin(c, err, h.logger)
		return
	}

	pair, err := h.sessionUseCase.Refresh(c.Request.Context(), req.RefreshToken)
	if err != nil {
		httputil.HandleErrorGin(c, err, h.logger)
		return
	}

	c.JSON(http.StatusOK, dto.ToTokenPairResponse(pair))
}

// LogoutHandler revokes the current access token and the presented refresh token.
// POST /v1/auth/logout - Requires authentication.
// Returns 200 OK on success.
func (h *SessionHandler) LogoutHandler(c *gin.Context) {
	claims, ok := GetClaims(c.Request.Context())
	if !ok {
		httputil.HandleErrorGin(c, apperrors.ErrUnauthorized, h.logger)
		return
	}

	var req dto.LogoutRequest

	if err := c.ShouldBindJSON(&req); err != nil {
		httputil.HandleBadRequestGin(c, err, h.logger)
		return
	}

	if err := req.Validate(); err != nil {
		httputil.HandleValidationErrorGin(c, err, h.logger)
		return
	}

	if err := h.sessionUseCase.Logout(c.Request.Context(), claims, req.RefreshToken); err != nil {
		httputil.HandleErrorGin(c, err, h.logger)
		return
	}

	c.JSON(http.StatusOK, dto.MessageResponse{Message: "logged out"})
}

// LogoutAllHandler revokes every active session for the authenticated user.
// POST /v1/auth/logout-all - Requires authentication.
// Returns 200 OK with the number of sessions revoked.
func (h *SessionHandler) LogoutAllHandler(c *gin.Context) {
	claims, ok := GetClaims(c.Request.Context())
	if !ok {
		httputil.HandleErrorGin(c, apperrors.ErrUnauthorized, h.logger)
		return
	}

	count, err := h.sessionUseCase.LogoutAll(c.Request.Context(), claims.UserID)
	if err != nil {
		httputil.HandleErrorGin(c, err, h.logger)
		return
	}

	c.JSON(http.StatusOK, dto.LogoutAllResponse{SessionsRevoked: count})
}

// ChangePasswordHandler verifies the current password and stores a new one.
// POST /v1/auth/change-password - Requires authentication.
// Returns 200 OK; every active session is ended.
func (h *SessionHandler) ChangePasswordHandler(c *gin.Context) {
	claims, ok := GetClaims(c.Request.Context())
	if !ok {
		httputil.HandleErrorGin(c, apperrors.ErrUnauthorized, h.logger)
		return
	}

	var req dto.ChangePasswordRequest

	if err := c.ShouldBindJSON(&req); err != nil {
		httputil.HandleBadRequestGin(c, err, h.logger)
		return
	}

	if err := req.Validate(); err != nil {
		httputil.HandleValidationErrorGin(c, err, h.logger)
		return
	}

	input := authDomain.ChangePasswordInput{
		CurrentPassword: req.CurrentPassword,
		NewPassword:     req.NewPassword,
	}

	if err := h.sessionUseCase.ChangePassword(c.Request.Context(), claims.UserID, input); err != nil {
		httputil.HandleErrorGin(c, err, h.logger)
		return
	}

	c.JSON(http.StatusOK, dto.MessageResponse{Message: "password changed"})
}
