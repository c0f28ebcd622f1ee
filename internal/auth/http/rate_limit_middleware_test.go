package http

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"

	authDomain "github.com/allisson/tracker/internal/auth/domain"
)

// rateLimitedRouter builds a gin engine that injects the given claims and
// applies the per-user rate limit middleware.
func rateLimitedRouter(rps float64, burst int, claims authDomain.Claims) *gin.Engine {
	gin.SetMode(gin.TestMode)
	router := gin.New()
	router.Use(func(c *gin.Context) {
		c.Request = c.Request.WithContext(WithClaims(c.Request.Context(), claims))
		c.Next()
	})
	router.Use(RateLimitMiddleware(rps, burst, testLogger()))
	router.GET("/ping", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ok"})
	})
	return router
}

func TestRateLimitMiddleware(t *testing.T) {
	t.Run("allows requests within burst", func(t *testing.T) {
		router := rateLimitedRouter(1, 3, testClaims())

		for i := 0; i < 3; i++ {
			req := httptest.NewRequest(http.MethodGet, "/ping", nil)
			w := httptest.NewRecorder()
			router.ServeHTTP(w, req)
			assert.Equal(t, http.StatusOK, w.Code)
		}
	})

	t.Run("denies requests over burst", func(t *testing.T) {
		router := rateLimitedRouter(0.1, 2, testClaims())

		for i := 0; i < 2; i++ {
			req := httptest.NewRequest(http.MethodGet, "/ping", nil)
			w := httptest.NewRecorder()
			router.ServeHTTP(w, req)
			assert.Equal(t, http.StatusOK, w.Code)
		}

		req := httptest.NewRequest(http.MethodGet, "/ping", nil)
		w := httptest.NewRecorder()
		router.ServeHTTP(w, req)

		assert.Equal(t, http.StatusTooManyRequests, w.Code)
		assert.NotEmpty(t, w.Header().Get("Retry-After"))
	})

	t.Run("users are limited independently", func(t *testing.T) {
		gin.SetMode(gin.TestMode)
		router := gin.New()

		// Each request carries its own claims via header-selected identity
		first := testClaims()
		second := testClaims()
		current := &first

		router.Use(func(c *gin.Context) {
			c.Request = c.Request.WithContext(WithClaims(c.Request.Context(), *current))
			c.Next()
		})
		router.Use(RateLimitMiddleware(0.1, 1, testLogger()))
		router.GET("/ping", func(c *gin.Context) {
			c.JSON(http.StatusOK, gin.H{"status": "ok"})
		})

		// Exhaust the first user's bucket
		req := httptest.NewRequest(http.MethodGet, "/ping", nil)
		w := httptest.NewRecorder()
		router.ServeHTTP(w, req)
		assert.Equal(t, http.StatusOK, w.Code)

		req = httptest.NewRequest(http.MethodGet, "/ping", nil)
		w = httptest.NewRecorder()
		router.ServeHTTP(w, req)
		assert.Equal(t, http.StatusTooManyRequests, w.Code)

		// The second user is unaffected
		current = &second
		req = httptest.NewRequest(http.MethodGet, "/ping", nil)
		w = httptest.NewRecorder()
		router.ServeHTTP(w, req)
		assert.Equal(t, http.StatusOK, w.Code)
	})

	t.Run("missing claims returns 401", func(t *testing.T) {
		gin.SetMode(gin.TestMode)
		router := gin.New()
		router.Use(RateLimitMiddleware(1, 1, testLogger()))
		router.GET("/ping", func(c *gin.Context) {
			c.JSON(http.StatusOK, gin.H{"status": "ok"})
		})

		req := httptest.NewRequest(http.MethodGet, "/ping", nil)
		w := httptest.NewRecorder()
		router.ServeHTTP(w, req)

		assert.Equal(t, http.StatusUnauthorized, w.Code)
	})
}
