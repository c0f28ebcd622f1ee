// Package http provides the HTTP API server and its routing.
package http

import (
	"context"
	"database/sql"
	"fmt"
	"log/slog"
	"net/http"
	"time"

	"github.com/gin-contrib/requestid"
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	authHTTP "github.com/allisson/tracker/internal/auth/http"
	authUsecase "github.com/allisson/tracker/internal/auth/usecase"
	"github.com/allisson/tracker/internal/config"
	"github.com/allisson/tracker/internal/metrics"
	userDomain "github.com/allisson/tracker/internal/user/domain"
	userHTTP "github.com/allisson/tracker/internal/user/http"
)

// Server represents the HTTP API server.
type Server struct {
	server *http.Server
	router *gin.Engine
	db     *sql.DB
	logger *slog.Logger
}

// NewServer creates a new HTTP server. Routes are registered separately
// via SetupRouter.
func NewServer(
	db *sql.DB,
	host string,
	port int,
	logger *slog.Logger,
) *Server {
	return &Server{
		server: &http.Server{
			Addr:         fmt.Sprintf("%s:%d", host, port),
			ReadTimeout:  15 * time.Second,
			WriteTimeout: 15 * time.Second,
			IdleTimeout:  60 * time.Second,
		},
		db:     db,
		logger: logger,
	}
}

// SetupRouter builds the Gin engine and registers all API routes.
func (s *Server) SetupRouter(
	cfg *config.Config,
	sessionUseCase authUsecase.SessionUseCase,
	sessionHandler *authHTTP.SessionHandler,
	userHandler *userHTTP.UserHandler,
	metricsProvider *metrics.Provider,
) {
	router := gin.New()
	router.Use(gin.Recovery())
	router.Use(requestid.New(requestid.WithGenerator(func() string {
		return uuid.Must(uuid.NewV7()).String()
	})))
	router.Use(CustomLoggerMiddleware(s.logger))

	if corsMiddleware := createCORSMiddleware(cfg.CORSEnabled, cfg.CORSAllowOrigins, s.logger); corsMiddleware != nil {
		router.Use(corsMiddleware)
	}

	if metricsProvider != nil {
		router.Use(metrics.HTTPMetricsMiddleware(metricsProvider.MeterProvider(), cfg.MetricsNamespace))
	}

	router.GET("/health", s.healthHandler)
	router.GET("/ready", s.readinessHandler)

	v1 := router.Group("/v1")

	// Public endpoints.
	v1.POST("/users", userHandler.RegisterHandler)
	v1.POST("/auth/login", sessionHandler.LoginHandler)
	v1.POST("/auth/refresh", sessionHandler.RefreshHandler)

	// Endpoints requiring a valid access token.
	authenticated := v1.Group("")
	authenticated.Use(authHTTP.AuthenticationMiddleware(sessionUseCase, s.logger))
	if cfg.RateLimitEnabled {
		authenticated.Use(authHTTP.RateLimitMiddleware(cfg.RateLimitRequestsPerSec, cfg.RateLimitBurst, s.logger))
	}
	authenticated.POST("/auth/logout", sessionHandler.LogoutHandler)
	authenticated.POST("/auth/logout-all", sessionHandler.LogoutAllHandler)
	authenticated.POST("/auth/change-password", sessionHandler.ChangePasswordHandler)
	authenticated.GET("/users/me", userHandler.MeHandler)

	// Endpoints restricted to administrators.
	admin := authenticated.Group("")
	admin.Use(authHTTP.RequireRoles(s.logger, userDomain.RoleAdmin))
	admin.POST("/users/:id/activate", userHandler.ActivateHandler)
	admin.POST("/users/:id/deactivate", userHandler.DeactivateHandler)

	s.router = router
}

// healthHandler reports process liveness.
func (s *Server) healthHandler(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"status": "healthy"})
}

// readinessHandler reports whether the server can serve traffic,
// checking its database connection.
func (s *Server) readinessHandler(c *gin.Context) {
	components := gin.H{"database": "ok"}

	if s.db == nil {
		components["database"] = "error"
		c.JSON(http.StatusServiceUnavailable, gin.H{"status": "not_ready", "components": components})
		return
	}

	ctx, cancel := context.WithTimeout(c.Request.Context(), 2*time.Second)
	defer cancel()

	if err := s.db.PingContext(ctx); err != nil {
		s.logger.Error("readiness check failed", slog.Any("error", err))
		components["database"] = "error"
		c.JSON(http.StatusServiceUnavailable, gin.H{"status": "not_ready", "components": components})
		return
	}

	c.JSON(http.StatusOK, gin.H{"status": "ready", "components": components})
}

// Start starts the HTTP server.
func (s *Server) Start(ctx context.Context) error {
	s.server.Handler = s.router

	s.logger.Info("starting http server", slog.String("addr", s.server.Addr))

	if err := s.server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
		return fmt.Errorf("failed to start server: %w", err)
	}

	return nil
}

// Shutdown gracefully shuts down the HTTP server.
func (s *Server) Shutdown(ctx context.Context) error {
	s.logger.Info("shutting down http server")
	return s.server.Shutdown(ctx)
}
