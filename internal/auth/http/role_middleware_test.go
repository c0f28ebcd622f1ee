package http

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"

	authDomain "github.com/allisson/tracker/internal/auth/domain"
	userDomain "github.com/allisson/tracker/internal/user/domain"
)

func roleRouter(claims *authDomain.Claims, roles ...userDomain.Role) *gin.Engine {
	gin.SetMode(gin.TestMode)
	router := gin.New()
	if claims != nil {
		router.Use(func(c *gin.Context) {
			c.Request = c.Request.WithContext(WithClaims(c.Request.Context(), *claims))
			c.Next()
		})
	}
	router.Use(RequireRoles(testLogger(), roles...))
	router.GET("/admin", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ok"})
	})
	return router
}

func TestRequireRoles(t *testing.T) {
	t.Run("allowed role passes", func(t *testing.T) {
		claims := testClaims()
		claims.Role = userDomain.RoleAdmin
		router := roleRouter(&claims, userDomain.RoleAdmin)

		req := httptest.NewRequest(http.MethodGet, "/admin", nil)
		w := httptest.NewRecorder()
		router.ServeHTTP(w, req)

		assert.Equal(t, http.StatusOK, w.Code)
	})

	t.Run("multiple allowed roles", func(t *testing.T) {
		claims := testClaims()
		claims.Role = userDomain.RoleManager
		router := roleRouter(&claims, userDomain.RoleManager, userDomain.RoleAdmin)

		req := httptest.NewRequest(http.MethodGet, "/admin", nil)
		w := httptest.NewRecorder()
		router.ServeHTTP(w, req)

		assert.Equal(t, http.StatusOK, w.Code)
	})

	t.Run("disallowed role gets 403", func(t *testing.T) {
		claims := testClaims()
		claims.Role = userDomain.RoleDeveloper
		router := roleRouter(&claims, userDomain.RoleAdmin)

		req := httptest.NewRequest(http.MethodGet, "/admin", nil)
		w := httptest.NewRecorder()
		router.ServeHTTP(w, req)

		assert.Equal(t, http.StatusForbidden, w.Code)
	})

	t.Run("missing claims gets 401", func(t *testing.T) {
		router := roleRouter(nil, userDomain.RoleAdmin)

		req := httptest.NewRequest(http.MethodGet, "/admin", nil)
		w := httptest.NewRecorder()
		router.ServeHTTP(w, req)

		assert.Equal(t, http.StatusUnauthorized, w.Code)
	})
}
