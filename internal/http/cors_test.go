package http

import (
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func quietLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

func TestCreateCORSMiddleware(t *testing.T) {
	tests := []struct {
		name    string
		enabled bool
		origins string
		wantNil bool
	}{
		{name: "disabled", enabled: false, origins: "https://tracker.example.com", wantNil: true},
		{name: "enabled without origins", enabled: true, origins: "", wantNil: true},
		{name: "origins of only separators", enabled: true, origins: " , ,", wantNil: true},
		{name: "single origin", enabled: true, origins: "https://tracker.example.com", wantNil: false},
		{
			name:    "multiple origins with whitespace",
			enabled: true,
			origins: " https://tracker.example.com , https://board.example.com ",
			wantNil: false,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			middleware := createCORSMiddleware(tt.enabled, tt.origins, quietLogger())
			if tt.wantNil {
				assert.Nil(t, middleware)
			} else {
				assert.NotNil(t, middleware)
			}
		})
	}
}

func TestParseOrigins(t *testing.T) {
	t.Run("splits and trims", func(t *testing.T) {
		origins := parseOrigins(" https://tracker.example.com , https://board.example.com ")
		require.Len(t, origins, 2)
		assert.Equal(t, "https://tracker.example.com", origins[0])
		assert.Equal(t, "https://board.example.com", origins[1])
	})

	t.Run("drops empty entries", func(t *testing.T) {
		origins := parseOrigins("https://tracker.example.com,,")
		require.Len(t, origins, 1)
		assert.Equal(t, "https://tracker.example.com", origins[0])
	})

	t.Run("empty input", func(t *testing.T) {
		assert.Nil(t, parseOrigins(""))
	})
}

// newCORSRouter builds a minimal router the way SetupRouter wires the
// middleware: skipped entirely when createCORSMiddleware returns nil.
func newCORSRouter(middleware gin.HandlerFunc) *gin.Engine {
	gin.SetMode(gin.TestMode)
	router := gin.New()
	if middleware != nil {
		router.Use(middleware)
	}
	router.POST("/v1/auth/login", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ok"})
	})
	return router
}

func TestCORSHeaders(t *testing.T) {
	t.Run("allowed origin is echoed", func(t *testing.T) {
		router := newCORSRouter(createCORSMiddleware(true, "https://tracker.example.com", quietLogger()))

		w := httptest.NewRecorder()
		req := httptest.NewRequest(http.MethodPost, "/v1/auth/login", nil)
		req.Header.Set("Origin", "https://tracker.example.com")
		router.ServeHTTP(w, req)

		assert.Equal(t, http.StatusOK, w.Code)
		assert.Equal(t, "https://tracker.example.com", w.Header().Get("Access-Control-Allow-Origin"))
	})

	t.Run("no headers when disabled", func(t *testing.T) {
		router := newCORSRouter(createCORSMiddleware(false, "https://tracker.example.com", quietLogger()))

		w := httptest.NewRecorder()
		req := httptest.NewRequest(http.MethodPost, "/v1/auth/login", nil)
		req.Header.Set("Origin", "https://tracker.example.com")
		router.ServeHTTP(w, req)

		assert.Equal(t, http.StatusOK, w.Code)
		assert.Empty(t, w.Header().Get("Access-Control-Allow-Origin"))
	})

	t.Run("preflight is answered", func(t *testing.T) {
		router := newCORSRouter(createCORSMiddleware(true, "https://tracker.example.com", quietLogger()))

		w := httptest.NewRecorder()
		req := httptest.NewRequest(http.MethodOptions, "/v1/auth/login", nil)
		req.Header.Set("Origin", "https://tracker.example.com")
		req.Header.Set("Access-Control-Request-Method", "POST")
		router.ServeHTTP(w, req)

		assert.Equal(t, http.StatusNoContent, w.Code)
		assert.Equal(t, "https://tracker.example.com", w.Header().Get("Access-Control-Allow-Origin"))
		assert.Contains(t, w.Header().Get("Access-Control-Allow-Methods"), "POST")
	})
}
