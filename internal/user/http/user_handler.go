// Package http provides HTTP handlers for user-related operations.
package http

import (
	"log/slog"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	authHTTP "github.com/allisson/tracker/internal/auth/http"
	apperrors "github.com/allisson/tracker/internal/errors"
	"github.com/allisson/tracker/internal/httputil"
	"github.com/allisson/tracker/internal/user/http/dto"
	"github.com/allisson/tracker/internal/user/usecase"
)

// UserHandler handles user-related HTTP requests
type UserHandler struct {
	userUseCase usecase.UseCase
	logger      *slog.Logger
}

// NewUserHandler creates a new UserHandler
func NewUserHandler(userUseCase usecase.UseCase, logger *slog.Logger) *UserHandler {
	return &UserHandler{
		userUseCase: userUseCase,
		logger:      logger,
	}
}

// RegisterHandler handles user registration.
// POST /v1/users - No authentication required.
// Returns 201 Created with the new user's public profile.
func (h *UserHandler) RegisterHandler(c *gin.Context) {
	var req dto.RegisterUserRequest

	// Parse and bind JSON
	if err := c.ShouldBindJSON(&req); err != nil {
		httputil.HandleBadRequestGin(c, err, h.logger)
		return
	}

	// Validate request structure
	if err := req.Validate(); err != nil {
		httputil.HandleValidationErrorGin(c, err, h.logger)
		return
	}

	// Convert DTO to use case input
	input := dto.ToRegisterUserInput(req)

	user, err := h.userUseCase.RegisterUser(c.Request.Context(), input)
	if err != nil {
		httputil.HandleErrorGin(c, err, h.logger)
		return
	}

	c.JSON(http.StatusCreated, dto.ToUserResponse(user))
}

// MeHandler returns the authenticated user's profile from the database,
// so is_active and role reflect the current state rather than the token
// snapshot.
// GET /v1/users/me - Requires authentication.
func (h *UserHandler) MeHandler(c *gin.Context) {
	claims, ok := authHTTP.GetClaims(c.Request.Context())
	if !ok {
		httputil.HandleErrorGin(c, apperrors.ErrUnauthorized, h.logger)
		return
	}

	user, err := h.userUseCase.GetUserByID(c.Request.Context(), claims.UserID)
	if err != nil {
		httputil.HandleErrorGin(c, err, h.logger)
		return
	}

	c.JSON(http.StatusOK, dto.ToUserResponse(user))
}

// DeactivateHandler deactivates a user account, blocking future logins and
// token refreshes. Outstanding access tokens keep working until they expire.
// POST /v1/users/:id/deactivate - Requires the admin role.
func (h *UserHandler) DeactivateHandler(c *gin.Context) {
	h.setActive(c, false)
}

// ActivateHandler reactivates a previously deactivated user account.
// POST /v1/users/:id/activate - Requires the admin role.
func (h *UserHandler) ActivateHandler(c *gin.Context) {
	h.setActive(c, true)
}

func (h *UserHandler) setActive(c *gin.Context, active bool) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		httputil.HandleBadRequestGin(c, err, h.logger)
		return
	}

	if err := h.userUseCase.SetUserActive(c.Request.Context(), id, active); err != nil {
		httputil.HandleErrorGin(c, err, h.logger)
		return
	}

	c.JSON(http.StatusOK, gin.H{"id": id.String(), "is_active": active})
}
