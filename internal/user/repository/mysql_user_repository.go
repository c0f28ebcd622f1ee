package repository

import (
	"context"
	"database/sql"
	"errors"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/allisson/tracker/internal/database"
	"github.com/allisson/tracker/internal/user/domain"

	apperrors "github.com/allisson/tracker/internal/errors"
)

// MySQLUserRepository handles user persistence for MySQL
type MySQLUserRepository struct {
	db *sql.DB
}

// NewMySQLUserRepository creates a new MySQLUserRepository
func NewMySQLUserRepository(db *sql.DB) *MySQLUserRepository {
	return &MySQLUserRepository{
		db: db,
	}
}

// Create inserts a new user
func (r *MySQLUserRepository) Create(ctx context.Context, user *domain.User) error {
	querier := database.GetTx(ctx, r.db)

	query := `INSERT INTO users (id, username, email, password, role, is_active, created_at, updated_at)
			  VALUES (?, ?, ?, ?, ?, ?, NOW(), NOW())`

	// Convert UUID to bytes for MySQL BINARY(16)
	uuidBytes, err := user.ID.MarshalBinary()
	if err != nil {
		return apperrors.Wrap(err, "failed to marshal UUID")
	}

	_, err = querier.ExecContext(
		ctx, query, uuidBytes, user.Username, user.Email, user.Password, user.Role, user.IsActive,
	)
	if err != nil {
		// Check for unique constraint violation (duplicate email/username)
		if isMySQLUniqueViolation(err) {
			return domain.ErrUserAlreadyExists
		}
		return apperrors.Wrap(err, "failed to create user")
	}
	return nil
}

// GetByID retrieves a user by ID
func (r *MySQLUserRepository) GetByID(ctx context.Context, id uuid.UUID) (*domain.User, error) {
	query := `SELECT id, username, email, password, role, is_active, last_login_at, created_at, updated_at
			  FROM users WHERE id = ?`

	// Convert UUID to bytes for MySQL BINARY(16)
	uuidBytes, err := id.MarshalBinary()
	if err != nil {
		return nil, apperrors.Wrap(err, "failed to marshal UUID")
	}

	return r.getOne(ctx, query, uuidBytes)
}

// GetByEmail retrieves a user by email
func (r *MySQLUserRepository) GetByEmail(ctx context.Context, email string) (*domain.User, error) {
	query := `SELECT id, username, email, password, role, is_active, last_login_at, created_at, updated_at
			  FROM users WHERE email = ?`

	return r.getOne(ctx, query, email)
}

// GetByUsername retrieves a user by username
func (r *MySQLUserRepository) GetByUsername(ctx context.Context, username string) (*domain.User, error) {
	query := `SELECT id, username, email, password, role, is_active, last_login_at, created_at, updated_at
			  FROM users WHERE username = ?`

	return r.getOne(ctx, query, username)
}

// UpdateLastLogin records the time of the user's latest successful login
func (r *MySQLUserRepository) UpdateLastLogin(ctx context.Context, id uuid.UUID, loginAt time.Time) error {
	querier := database.GetTx(ctx, r.db)

	query := `UPDATE users SET last_login_at = ?, updated_at = NOW() WHERE id = ?`

	uuidBytes, err := id.MarshalBinary()
	if err != nil {
		return apperrors.Wrap(err, "failed to marshal UUID")
	}

	_, err = querier.ExecContext(ctx, query, loginAt, uuidBytes)
	if err != nil {
		return apperrors.Wrap(err, "failed to update last login")
	}
	return nil
}

// UpdatePassword replaces the stored password digest
func (r *MySQLUserRepository) UpdatePassword(ctx context.Context, id uuid.UUID, hashedPassword string) error {
	querier := database.GetTx(ctx, r.db)

	query := `UPDATE users SET password = ?, updated_at = NOW() WHERE id = ?`

	uuidBytes, err := id.MarshalBinary()
	if err != nil {
		return apperrors.Wrap(err, "failed to marshal UUID")
	}

	result, err := querier.ExecContext(ctx, query, hashedPassword, uuidBytes)
	if err != nil {
		return apperrors.Wrap(err, "failed to update password")
	}
	return requireRowAffected(result)
}

// SetActive activates or deactivates a user account
func (r *MySQLUserRepository) SetActive(ctx context.Context, id uuid.UUID, active bool) error {
	querier := database.GetTx(ctx, r.db)

	query := `UPDATE users SET is_active = ?, updated_at = NOW() WHERE id = ?`

	uuidBytes, err := id.MarshalBinary()
	if err != nil {
		return apperrors.Wrap(err, "failed to marshal UUID")
	}

	result, err := querier.ExecContext(ctx, query, active, uuidBytes)
	if err != nil {
		return apperrors.Wrap(err, "failed to update active flag")
	}
	return requireRowAffected(result)
}

// getOne runs a single-row query and scans the user
func (r *MySQLUserRepository) getOne(ctx context.Context, query string, arg any) (*domain.User, error) {
	var user domain.User
	querier := database.GetTx(ctx, r.db)

	var idBytes []byte
	err := querier.QueryRowContext(ctx, query, arg).Scan(
		&idBytes,
		&user.Username,
		&user.Email,
		&user.Password,
		&user.Role,
		&user.IsActive,
		&user.LastLoginAt,
		&user.CreatedAt,
		&user.UpdatedAt,
	)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, domain.ErrUserNotFound
		}
		return nil, apperrors.Wrap(err, "failed to get user")
	}

	// Convert bytes back to UUID
	if err := user.ID.UnmarshalBinary(idBytes); err != nil {
		return nil, apperrors.Wrap(err, "failed to unmarshal UUID")
	}

	return &user, nil
}

// isMySQLUniqueViolation checks if the error is a MySQL unique constraint violation
func isMySQLUniqueViolation(err error) bool {
	if err == nil {
		return false
	}
	errMsg := strings.ToLower(err.Error())
	// MySQL: "Error 1062: Duplicate entry"
	return strings.Contains(errMsg, "duplicate entry") || strings.Contains(errMsg, "1062")
}
