package usecase

import (
	"context"
	"time"

	"github.com/google/uuid"

	authDomain "github.com/allisson/tracker/internal/auth/domain"
	"github.com/allisson/tracker/internal/metrics"
)

// sessionUseCaseWithMetrics decorates SessionUseCase with metrics instrumentation.
type sessionUseCaseWithMetrics struct {
	next    SessionUseCase
	metrics metrics.BusinessMetrics
}

// NewSessionUseCaseWithMetrics wraps a SessionUseCase with metrics recording.
func NewSessionUseCaseWithMetrics(useCase SessionUseCase, m metrics.BusinessMetrics) SessionUseCase {
	return &sessionUseCaseWithMetrics{
		next:    useCase,
		metrics: m,
	}
}

// record emits the operation counter and duration for an auth operation.
func (s *sessionUseCaseWithMetrics) record(ctx context.Context, operation string, start time.Time, err error) {
	status := "success"
	if err != nil {
		status = "error"
	}

	s.metrics.RecordOperation(ctx, "auth", operation, status)
	s.metrics.RecordDuration(ctx, "auth", operation, time.Since(start), status)
}

// Login records metrics for login operations.
func (s *sessionUseCaseWithMetrics) Login(
	ctx context.Context,
	input authDomain.LoginInput,
) (*authDomain.TokenPair, error) {
	start := time.Now()
	pair, err := s.next.Login(ctx, input)
	s.record(ctx, "login", start, err)
	return pair, err
}

// Refresh records metrics for token refresh operations.
func (s *sessionUseCaseWithMetrics) Refresh(
	ctx context.Context,
	rawRefreshToken string,
) (*authDomain.TokenPair, error) {
	start := time.Now()
	pair, err := s.next.Refresh(ctx, rawRefreshToken)
	s.record(ctx, "refresh", start, err)
	return pair, err
}

// Logout records metrics for logout operations.
func (s *sessionUseCaseWithMetrics) Logout(
	ctx context.Context,
	accessClaims authDomain.Claims,
	rawRefreshToken string,
) error {
	start := time.Now()
	err := s.next.Logout(ctx, accessClaims, rawRefreshToken)
	s.record(ctx, "logout", start, err)
	return err
}

// LogoutAll records metrics for logout-all operations.
func (s *sessionUseCaseWithMetrics) LogoutAll(ctx context.Context, userID uuid.UUID) (int, error) {
	start := time.Now()
	count, err := s.next.LogoutAll(ctx, userID)
	s.record(ctx, "logout_all", start, err)
	return count, err
}

// ChangePassword records metrics for password change operations.
func (s *sessionUseCaseWithMetrics) ChangePassword(
	ctx context.Context,
	userID uuid.UUID,
	input authDomain.ChangePasswordInput,
) error {
	start := time.Now()
	err := s.next.ChangePassword(ctx, userID, input)
	s.record(ctx, "change_password", start, err)
	return err
}

// VerifyAccessToken records metrics for access token verification.
func (s *sessionUseCaseWithMetrics) VerifyAccessToken(
	ctx context.Context,
	rawAccessToken string,
) (authDomain.Claims, error) {
	start := time.Now()
	claims, err := s.next.VerifyAccessToken(ctx, rawAccessToken)
	s.record(ctx, "verify_access_token", start, err)
	return claims, err
}

// UnlockAccount records metrics for administrative unlock operations.
func (s *sessionUseCaseWithMetrics) UnlockAccount(ctx context.Context, email string) error {
	start := time.Now()
	err := s.next.UnlockAccount(ctx, email)
	s.record(ctx, "unlock_account", start, err)
	return err
}
