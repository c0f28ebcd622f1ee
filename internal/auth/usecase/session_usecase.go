package usecase

import (
	"context"
	"strings"
	"time"

	validation "github.com/jellydator/validation"

	"github.com/google/uuid"

	authDomain "github.com/allisson/tracker/internal/auth/domain"
	authService "github.com/allisson/tracker/internal/auth/service"
	"github.com/allisson/tracker/internal/config"
	apperrors "github.com/allisson/tracker/internal/errors"
	userDomain "github.com/allisson/tracker/internal/user/domain"
	appValidation "github.com/allisson/tracker/internal/validation"
)

// sessionUseCase implements SessionUseCase.
type sessionUseCase struct {
	config          *config.Config
	userRepo        UserRepository
	revocationStore RevocationStore
	rateLimiter     RateLimiter
	passwordService authService.PasswordService
	tokenCodec      authService.TokenCodec
}

// NewSessionUseCase creates a new SessionUseCase.
func NewSessionUseCase(
	cfg *config.Config,
	userRepo UserRepository,
	revocationStore RevocationStore,
	rateLimiter RateLimiter,
	passwordService authService.PasswordService,
	tokenCodec authService.TokenCodec,
) SessionUseCase {
	return &sessionUseCase{
		config:          cfg,
		userRepo:        userRepo,
		revocationStore: revocationStore,
		rateLimiter:     rateLimiter,
		passwordService: passwordService,
		tokenCodec:      tokenCodec,
	}
}

// Login authenticates a user's credentials and issues a token pair.
//
// The flow is ordered so cheap denials happen before expensive work:
// 1. Lockout check keyed by the submitted email
// 2. Sliding-window rate limit keyed by client IP
// 3. Credential verification (Argon2id compare)
// 4. Failure accounting on wrong credentials, reset on success
// 5. Token pair issuance and session tracking
//
// Failures for unknown emails are counted the same as wrong passwords so the
// lockout behavior does not reveal which emails exist.
func (s *sessionUseCase) Login(
	ctx context.Context,
	input authDomain.LoginInput,
) (*authDomain.TokenPair, error) {
	email := strings.TrimSpace(strings.ToLower(input.Email))

	locked, retryAfter, err := s.rateLimiter.IsLockedOut(ctx, email)
	if err != nil {
		return nil, err
	}
	if locked {
		return nil, &authDomain.RetryableError{Err: authDomain.ErrAccountLocked, RetryAfter: retryAfter}
	}

	if input.ClientIP != "" {
		allowed, retryAfter, err := s.rateLimiter.Allow(
			ctx, input.ClientIP, s.config.LoginRateLimitRequests, s.config.LoginRateLimitWindow,
		)
		if err != nil {
			return nil, err
		}
		if !allowed {
			return nil, &authDomain.RetryableError{Err: authDomain.ErrTooManyRequests, RetryAfter: retryAfter}
		}
	}

	user, err := s.userRepo.GetByEmail(ctx, email)
	if err != nil {
		if !apperrors.Is(err, userDomain.ErrUserNotFound) {
			return nil, err
		}
		return nil, s.failLogin(ctx, email)
	}

	if !user.IsActive {
		return nil, userDomain.ErrUserInactive
	}

	if !s.passwordService.Verify(input.Password, user.Password) {
		return nil, s.failLogin(ctx, email)
	}

	if err := s.rateLimiter.RecordSuccess(ctx, email); err != nil {
		return nil, err
	}

	now := time.Now().UTC()

	pair, refreshClaims, err := s.issuePair(user, now)
	if err != nil {
		return nil, err
	}

	if err := s.revocationStore.TrackSession(
		ctx, user.ID, refreshClaims.TokenID, s.config.RefreshTokenExpiration,
	); err != nil {
		return nil, err
	}

	if err := s.userRepo.UpdateLastLogin(ctx, user.ID, now); err != nil {
		return nil, err
	}

	return pair, nil
}

// failLogin records a failed attempt and reports the outcome: a lockout error
// when this failure crossed the threshold, otherwise invalid credentials.
func (s *sessionUseCase) failLogin(ctx context.Context, email string) error {
	_, locked, err := s.rateLimiter.RecordFailure(ctx, email)
	if err != nil {
		return err
	}
	if locked {
		return &authDomain.RetryableError{
			Err:        authDomain.ErrAccountLocked,
			RetryAfter: int(s.config.LockoutDuration.Seconds()),
		}
	}
	return authDomain.ErrInvalidCredentials
}

// Refresh rotates a refresh token: the presented token is revoked atomically
// before a new pair is issued, so replaying it or racing a concurrent refresh
// yields ErrTokenInvalid for everyone but the single winner.
func (s *sessionUseCase) Refresh(
	ctx context.Context,
	rawRefreshToken string,
) (*authDomain.TokenPair, error) {
	now := time.Now().UTC()

	claims, err := s.tokenCodec.Verify(rawRefreshToken, authDomain.RefreshTokenKind, now)
	if err != nil {
		return nil, err
	}

	won, err := s.revocationStore.RevokeOnce(ctx, claims.TokenID, claims.RemainingLifetime(now))
	if err != nil {
		return nil, err
	}
	if !won {
		return nil, authDomain.ErrTokenInvalid
	}

	if err := s.revocationStore.EndSession(ctx, claims.UserID, claims.TokenID); err != nil {
		return nil, err
	}

	user, err := s.userRepo.GetByID(ctx, claims.UserID)
	if err != nil {
		if apperrors.Is(err, userDomain.ErrUserNotFound) {
			return nil, authDomain.ErrTokenInvalid
		}
		return nil, err
	}
	if !user.IsActive {
		return nil, userDomain.ErrUserInactive
	}

	pair, refreshClaims, err := s.issuePair(user, now)
	if err != nil {
		return nil, err
	}

	if err := s.revocationStore.TrackSession(
		ctx, user.ID, refreshClaims.TokenID, s.config.RefreshTokenExpiration,
	); err != nil {
		return nil, err
	}

	return pair, nil
}

// Logout revokes the caller's access token and refresh token. The refresh
// side is best-effort: an expired, malformed, or foreign refresh token is
// ignored rather than reported, since the caller is ending the session either
// way. Store failures still surface.
func (s *sessionUseCase) Logout(
	ctx context.Context,
	accessClaims authDomain.Claims,
	rawRefreshToken string,
) error {
	now := time.Now().UTC()

	if err := s.revocationStore.Revoke(
		ctx, accessClaims.TokenID, accessClaims.RemainingLifetime(now),
	); err != nil {
		return err
	}

	refreshClaims, err := s.tokenCodec.Verify(rawRefreshToken, authDomain.RefreshTokenKind, now)
	if err != nil {
		return nil
	}
	if refreshClaims.UserID != accessClaims.UserID {
		return nil
	}

	if err := s.revocationStore.Revoke(
		ctx, refreshClaims.TokenID, refreshClaims.RemainingLifetime(now),
	); err != nil {
		return err
	}

	return s.revocationStore.EndSession(ctx, refreshClaims.UserID, refreshClaims.TokenID)
}

// LogoutAll revokes every active session for the user.
func (s *sessionUseCase) LogoutAll(ctx context.Context, userID uuid.UUID) (int, error) {
	return s.revocationStore.EndAllSessions(ctx, userID, s.config.RefreshTokenExpiration)
}

// ChangePassword verifies the current password, stores a new Argon2id digest,
// and ends all sessions so every device must authenticate again.
func (s *sessionUseCase) ChangePassword(
	ctx context.Context,
	userID uuid.UUID,
	input authDomain.ChangePasswordInput,
) error {
	if err := validateNewPassword(input.NewPassword); err != nil {
		return err
	}

	user, err := s.userRepo.GetByID(ctx, userID)
	if err != nil {
		return err
	}

	if !s.passwordService.Verify(input.CurrentPassword, user.Password) {
		return authDomain.ErrInvalidCredentials
	}

	hashedPassword, err := s.passwordService.Hash(input.NewPassword)
	if err != nil {
		return err
	}

	if err := s.userRepo.UpdatePassword(ctx, userID, hashedPassword); err != nil {
		return err
	}

	_, err = s.revocationStore.EndAllSessions(ctx, userID, s.config.RefreshTokenExpiration)
	return err
}

// VerifyAccessToken validates an access token and returns its claims. The
// role inside the claims is the issuance-time snapshot, so a role change
// takes effect on the next token issuance rather than immediately.
func (s *sessionUseCase) VerifyAccessToken(
	ctx context.Context,
	rawAccessToken string,
) (authDomain.Claims, error) {
	now := time.Now().UTC()

	claims, err := s.tokenCodec.Verify(rawAccessToken, authDomain.AccessTokenKind, now)
	if err != nil {
		return authDomain.Claims{}, err
	}

	revoked, err := s.revocationStore.IsRevoked(ctx, claims.TokenID)
	if err != nil {
		return authDomain.Claims{}, err
	}
	if revoked {
		return authDomain.Claims{}, authDomain.ErrTokenInvalid
	}

	return claims, nil
}

// UnlockAccount clears a lockout before its timer expires.
func (s *sessionUseCase) UnlockAccount(ctx context.Context, email string) error {
	return s.rateLimiter.Unlock(ctx, strings.TrimSpace(strings.ToLower(email)))
}

// issuePair signs a fresh access and refresh token for the user.
func (s *sessionUseCase) issuePair(
	user *userDomain.User,
	now time.Time,
) (*authDomain.TokenPair, authDomain.Claims, error) {
	accessToken, _, err := s.tokenCodec.Issue(user, authDomain.AccessTokenKind, now)
	if err != nil {
		return nil, authDomain.Claims{}, err
	}

	refreshToken, refreshClaims, err := s.tokenCodec.Issue(user, authDomain.RefreshTokenKind, now)
	if err != nil {
		return nil, authDomain.Claims{}, err
	}

	return &authDomain.TokenPair{
		AccessToken:  accessToken,
		RefreshToken: refreshToken,
		ExpiresIn:    int(s.config.AccessTokenExpiration.Seconds()),
	}, refreshClaims, nil
}

// validateNewPassword enforces the password policy on password changes.
func validateNewPassword(password string) error {
	err := validation.Validate(password,
		validation.Required.Error("password is required"),
		validation.Length(8, 128).Error("password must be between 8 and 128 characters"),
		appValidation.PasswordStrength{
			MinLength:      8,
			RequireUpper:   true,
			RequireLower:   true,
			RequireNumber:  true,
			RequireSpecial: true,
		},
	)
	return appValidation.WrapValidationError(err)
}
