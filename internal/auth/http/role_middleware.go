package http

import (
	"log/slog"

	"github.com/gin-gonic/gin"

	apperrors "github.com/allisson/tracker/internal/errors"
	"github.com/allisson/tracker/internal/httputil"
	userDomain "github.com/allisson/tracker/internal/user/domain"
)

// RequireRoles restricts a route to users whose token role is in the allowed
// set. MUST be used after AuthenticationMiddleware.
//
// The role checked is the issuance-time snapshot embedded in the access token,
// so a demotion takes effect when the current token expires.
//
// Returns:
//   - 401 Unauthorized: no verified claims in context
//   - 403 Forbidden: authenticated but role not allowed
func RequireRoles(logger *slog.Logger, roles ...userDomain.Role) gin.HandlerFunc {
	allowed := make(map[userDomain.Role]struct{}, len(roles))
	for _, role := range roles {
		allowed[role] = struct{}{}
	}

	return func(c *gin.Context) {
		claims, ok := GetClaims(c.Request.Context())
		if !ok {
			logger.Error("role middleware: no verified claims in context")
			httputil.HandleErrorGin(c, apperrors.ErrUnauthorized, logger)
			c.Abort()
			return
		}

		if _, ok := allowed[claims.Role]; !ok {
			logger.Debug("role check failed",
				slog.String("user_id", claims.UserID.String()),
				slog.String("role", string(claims.Role)))
			httputil.HandleErrorGin(c, apperrors.ErrForbidden, logger)
			c.Abort()
			return
		}

		c.Next()
	}
}
