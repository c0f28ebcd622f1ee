package app

import (
	"fmt"
	"sync"

	authHTTP "github.com/allisson/tracker/internal/auth/http"
	authRepository "github.com/allisson/tracker/internal/auth/repository"
	authService "github.com/allisson/tracker/internal/auth/service"
	authUseCase "github.com/allisson/tracker/internal/auth/usecase"
)

// authComponents groups the authentication dependencies held by the container.
type authComponents struct {
	passwordService authService.PasswordService
	tokenCodec      authService.TokenCodec
	revocationStore *authRepository.RedisRevocationStore
	rateLimiter     *authRepository.RedisRateLimiter
	sessionUseCase  authUseCase.SessionUseCase
	sessionHandler  *authHTTP.SessionHandler

	passwordServiceInit sync.Once
	tokenCodecInit      sync.Once
	revocationStoreInit sync.Once
	rateLimiterInit     sync.Once
	sessionUseCaseInit  sync.Once
	sessionHandlerInit  sync.Once
}

// PasswordService returns the Argon2id password hasher.
func (c *Container) PasswordService() (authService.PasswordService, error) {
	c.auth.passwordServiceInit.Do(func() {
		svc, err := authService.NewPasswordService()
		if err != nil {
			c.initErrors["passwordService"] = err
			return
		}
		c.auth.passwordService = svc
	})
	if storedErr, exists := c.initErrors["passwordService"]; exists {
		return nil, storedErr
	}
	return c.auth.passwordService, nil
}

// TokenCodec returns the RS256 token codec, loading the RSA key pair from the
// configured PEM files on first access.
func (c *Container) TokenCodec() (authService.TokenCodec, error) {
	c.auth.tokenCodecInit.Do(func() {
		codec, err := authService.NewTokenCodecFromFiles(
			c.config.JWTPrivateKeyPath,
			c.config.JWTPublicKeyPath,
			c.config.AccessTokenExpiration,
			c.config.RefreshTokenExpiration,
		)
		if err != nil {
			c.initErrors["tokenCodec"] = err
			return
		}
		c.auth.tokenCodec = codec
	})
	if storedErr, exists := c.initErrors["tokenCodec"]; exists {
		return nil, storedErr
	}
	return c.auth.tokenCodec, nil
}

// RevocationStore returns the redis-backed token revocation and session store.
func (c *Container) RevocationStore() (*authRepository.RedisRevocationStore, error) {
	c.auth.revocationStoreInit.Do(func() {
		client, err := c.Redis()
		if err != nil {
			c.initErrors["revocationStore"] = err
			return
		}
		c.auth.revocationStore = authRepository.NewRedisRevocationStore(client)
	})
	if storedErr, exists := c.initErrors["revocationStore"]; exists {
		return nil, storedErr
	}
	return c.auth.revocationStore, nil
}

// RateLimiter returns the redis-backed login rate limiter and lockout tracker.
func (c *Container) RateLimiter() (*authRepository.RedisRateLimiter, error) {
	c.auth.rateLimiterInit.Do(func() {
		client, err := c.Redis()
		if err != nil {
			c.initErrors["rateLimiter"] = err
			return
		}
		c.auth.rateLimiter = authRepository.NewRedisRateLimiter(
			client,
			c.config.LockoutMaxAttempts,
			c.config.LockoutDuration,
		)
	})
	if storedErr, exists := c.initErrors["rateLimiter"]; exists {
		return nil, storedErr
	}
	return c.auth.rateLimiter, nil
}

// SessionUseCase returns the session use case, wrapped with business metrics
// when metrics are enabled.
func (c *Container) SessionUseCase() (authUseCase.SessionUseCase, error) {
	c.auth.sessionUseCaseInit.Do(func() {
		useCase, err := c.initSessionUseCase()
		if err != nil {
			c.initErrors["sessionUseCase"] = err
			return
		}
		c.auth.sessionUseCase = useCase
	})
	if storedErr, exists := c.initErrors["sessionUseCase"]; exists {
		return nil, storedErr
	}
	return c.auth.sessionUseCase, nil
}

// SessionHandler returns the HTTP handler for session endpoints.
func (c *Container) SessionHandler() (*authHTTP.SessionHandler, error) {
	c.auth.sessionHandlerInit.Do(func() {
		useCase, err := c.SessionUseCase()
		if err != nil {
			c.initErrors["sessionHandler"] = err
			return
		}
		c.auth.sessionHandler = authHTTP.NewSessionHandler(useCase, c.Logger())
	})
	if storedErr, exists := c.initErrors["sessionHandler"]; exists {
		return nil, storedErr
	}
	return c.auth.sessionHandler, nil
}

// initSessionUseCase creates the session use case with all its dependencies.
func (c *Container) initSessionUseCase() (authUseCase.SessionUseCase, error) {
	userRepo, err := c.UserRepository()
	if err != nil {
		return nil, fmt.Errorf("failed to get user repository for session use case: %w", err)
	}

	revocationStore, err := c.RevocationStore()
	if err != nil {
		return nil, fmt.Errorf("failed to get revocation store for session use case: %w", err)
	}

	rateLimiter, err := c.RateLimiter()
	if err != nil {
		return nil, fmt.Errorf("failed to get rate limiter for session use case: %w", err)
	}

	tokenCodec, err := c.TokenCodec()
	if err != nil {
		return nil, fmt.Errorf("failed to get token codec for session use case: %w", err)
	}

	passwordService, err := c.PasswordService()
	if err != nil {
		return nil, fmt.Errorf("failed to get password service for session use case: %w", err)
	}

	useCase := authUseCase.NewSessionUseCase(
		c.config,
		userRepo,
		revocationStore,
		rateLimiter,
		passwordService,
		tokenCodec,
	)

	businessMetrics, err := c.BusinessMetrics()
	if err != nil {
		return nil, fmt.Errorf("failed to get business metrics for session use case: %w", err)
	}

	return authUseCase.NewSessionUseCaseWithMetrics(useCase, businessMetrics), nil
}
