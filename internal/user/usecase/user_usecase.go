// Package usecase implements the user business logic and orchestrates user domain operations.
package usecase

import (
	"context"
	"regexp"
	"strings"
	"time"

	validation "github.com/jellydator/validation"

	"github.com/allisson/go-pwdhash"
	"github.com/google/uuid"

	"github.com/allisson/tracker/internal/database"
	apperrors "github.com/allisson/tracker/internal/errors"
	"github.com/allisson/tracker/internal/user/domain"
	appValidation "github.com/allisson/tracker/internal/validation"
)

var usernamePattern = regexp.MustCompile(`^[a-zA-Z0-9_]+$`)

// RegisterUserInput contains the input data for user registration
type RegisterUserInput struct {
	Username string `json:"username"`
	Email    string `json:"email"`
	Password string `json:"password"`
	Role     string `json:"role"`
}

// UseCase defines the interface for user business logic operations
type UseCase interface {
	RegisterUser(ctx context.Context, input RegisterUserInput) (*domain.User, error)
	GetUserByEmail(ctx context.Context, email string) (*domain.User, error)
	GetUserByID(ctx context.Context, id uuid.UUID) (*domain.User, error)
	SetUserActive(ctx context.Context, id uuid.UUID, active bool) error
}

// UserRepository interface defines user repository operations
type UserRepository interface {
	Create(ctx context.Context, user *domain.User) error
	GetByID(ctx context.Context, id uuid.UUID) (*domain.User, error)
	GetByEmail(ctx context.Context, email string) (*domain.User, error)
	GetByUsername(ctx context.Context, username string) (*domain.User, error)
	UpdateLastLogin(ctx context.Context, id uuid.UUID, loginAt time.Time) error
	UpdatePassword(ctx context.Context, id uuid.UUID, hashedPassword string) error
	SetActive(ctx context.Context, id uuid.UUID, active bool) error
}

// UserUseCase handles user-related business logic
type UserUseCase struct {
	txManager      database.TxManager
	userRepo       UserRepository
	passwordHasher *pwdhash.PasswordHasher
}

// NewUserUseCase creates a new UserUseCase
func NewUserUseCase(txManager database.TxManager, userRepo UserRepository) (UseCase, error) {
	// Initialize password hasher with interactive policy for user passwords
	hasher, err := pwdhash.New(pwdhash.WithPolicy(pwdhash.PolicyInteractive))
	if err != nil {
		return nil, apperrors.Wrap(err, "failed to create password hasher")
	}

	return &UserUseCase{
		txManager:      txManager,
		userRepo:       userRepo,
		passwordHasher: hasher,
	}, nil
}

// validateRegisterUserInput validates the registration input using jellydator/validation
// This provides comprehensive validation including:
// - Required field checks
// - Username and email format validation
// - Password strength requirements (min 8 chars, uppercase, lowercase, number, special char)
func (uc *UserUseCase) validateRegisterUserInput(input RegisterUserInput) error {
	err := validation.ValidateStruct(&input,
		validation.Field(&input.Username,
			validation.Required.Error("username is required"),
			appValidation.NotBlank,
			validation.Length(3, 50).Error("username must be between 3 and 50 characters"),
			validation.Match(usernamePattern).Error("username may only contain letters, numbers and underscores"),
		),
		validation.Field(&input.Email,
			validation.Required.Error("email is required"),
			appValidation.NotBlank,
			appValidation.Email,
			validation.Length(5, 255).Error("email must be between 5 and 255 characters"),
		),
		validation.Field(&input.Password,
			validation.Required.Error("password is required"),
			validation.Length(8, 128).Error("password must be between 8 and 128 characters"),
			appValidation.PasswordStrength{
				MinLength:      8,
				RequireUpper:   true,
				RequireLower:   true,
				RequireNumber:  true,
				RequireSpecial: true,
			},
		),
		validation.Field(&input.Role,
			validation.In(
				string(domain.RoleDeveloper), string(domain.RoleManager), string(domain.RoleAdmin),
			).Error("role must be one of: developer, manager, admin"),
		),
	)
	return appValidation.WrapValidationError(err)
}

// RegisterUser registers a new user with a unique username and email
func (uc *UserUseCase) RegisterUser(ctx context.Context, input RegisterUserInput) (*domain.User, error) {
	// Validate input
	if err := uc.validateRegisterUserInput(input); err != nil {
		return nil, err
	}

	role := domain.Role(input.Role)
	if input.Role == "" {
		role = domain.RoleDeveloper
	}

	// Hash the password
	hashedPassword, err := uc.passwordHasher.Hash([]byte(input.Password))
	if err != nil {
		return nil, apperrors.Wrap(err, "failed to hash password")
	}

	user := &domain.User{
		ID:       uuid.Must(uuid.NewV7()),
		Username: strings.TrimSpace(input.Username),
		Email:    strings.TrimSpace(strings.ToLower(input.Email)),
		Password: hashedPassword,
		Role:     role,
		IsActive: true,
	}

	// Execute within a transaction so the duplicate checks and the
	// insert observe a consistent view
	err = uc.txManager.WithTx(ctx, func(ctx context.Context) error {
		if _, err := uc.userRepo.GetByEmail(ctx, user.Email); err == nil {
			return domain.ErrUserAlreadyExists
		} else if !apperrors.Is(err, domain.ErrUserNotFound) {
			return err
		}

		if _, err := uc.userRepo.GetByUsername(ctx, user.Username); err == nil {
			return domain.ErrUserAlreadyExists
		} else if !apperrors.Is(err, domain.ErrUserNotFound) {
			return err
		}

		// Create user - repository will return domain errors
		return uc.userRepo.Create(ctx, user)
	})

	if err != nil {
		return nil, err
	}

	return user, nil
}

// GetUserByEmail retrieves a user by email
func (uc *UserUseCase) GetUserByEmail(ctx context.Context, email string) (*domain.User, error) {
	return uc.userRepo.GetByEmail(ctx, email)
}

// GetUserByID retrieves a user by ID
func (uc *UserUseCase) GetUserByID(ctx context.Context, id uuid.UUID) (*domain.User, error) {
	return uc.userRepo.GetByID(ctx, id)
}

// SetUserActive activates or deactivates a user account
func (uc *UserUseCase) SetUserActive(ctx context.Context, id uuid.UUID, active bool) error {
	return uc.userRepo.SetActive(ctx, id, active)
}
