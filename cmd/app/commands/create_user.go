package commands

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log/slog"

	userDomain "github.com/allisson/tracker/internal/user/domain"
	userUsecase "github.com/allisson/tracker/internal/user/usecase"
)

// createUserOutput is the command output in both text and JSON formats.
type createUserOutput struct {
	ID       string `json:"id"`
	Username string `json:"username"`
	Email    string `json:"email"`
	Role     string `json:"role"`
	IsActive bool   `json:"is_active"`
}

// RunCreateUser registers a new user account from the command line.
// Useful for bootstrapping the first administrator before the API is reachable.
//
// Requirements: Database must be migrated and accessible.
func RunCreateUser(
	ctx context.Context,
	userUseCase userUsecase.UseCase,
	logger *slog.Logger,
	writer io.Writer,
	username string,
	email string,
	password string,
	role string,
	format string,
) error {
	logger.Info("creating new user",
		slog.String("username", username),
		slog.String("role", role),
	)

	user, err := userUseCase.RegisterUser(ctx, userUsecase.RegisterUserInput{
		Username: username,
		Email:    email,
		Password: password,
		Role:     role,
	})
	if err != nil {
		return fmt.Errorf("failed to create user: %w", err)
	}

	output := createUserOutput{
		ID:       user.ID.String(),
		Username: user.Username,
		Email:    user.Email,
		Role:     string(user.Role),
		IsActive: user.IsActive,
	}

	if format == "json" {
		encoder := json.NewEncoder(writer)
		encoder.SetIndent("", "  ")
		if err := encoder.Encode(output); err != nil {
			return fmt.Errorf("failed to encode output: %w", err)
		}
	} else {
		_, _ = fmt.Fprintln(writer, "User created successfully")
		_, _ = fmt.Fprintf(writer, "  ID:       %s\n", output.ID)
		_, _ = fmt.Fprintf(writer, "  Username: %s\n", output.Username)
		_, _ = fmt.Fprintf(writer, "  Email:    %s\n", output.Email)
		_, _ = fmt.Fprintf(writer, "  Role:     %s\n", output.Role)
		if user.Role == userDomain.RoleAdmin {
			_, _ = fmt.Fprintln(writer, "  Note: this account can manage other user accounts")
		}
	}

	logger.Info("user created successfully",
		slog.String("user_id", output.ID),
		slog.String("username", output.Username),
	)

	return nil
}
