package commands

import (
	"context"
	"fmt"
	"io"
	"log/slog"

	authUseCase "github.com/allisson/tracker/internal/auth/usecase"
)

// RunUnlockAccount clears the progressive lockout state for an account so the
// user can attempt to log in again immediately.
//
// Requirements: Redis must be accessible.
func RunUnlockAccount(
	ctx context.Context,
	sessionUseCase authUseCase.SessionUseCase,
	logger *slog.Logger,
	writer io.Writer,
	email string,
) error {
	if email == "" {
		return fmt.Errorf("email is required")
	}

	if err := sessionUseCase.UnlockAccount(ctx, email); err != nil {
		return fmt.Errorf("failed to unlock account: %w", err)
	}

	_, _ = fmt.Fprintf(writer, "Account %s unlocked\n", email)

	logger.Info("account unlocked", slog.String("email", email))

	return nil
}
