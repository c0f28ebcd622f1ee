// Package repository provides data persistence implementations for user entities.
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

// PostgreSQLUserRepository handles user persistence for PostgreSQL
type PostgreSQLUserRepository struct {
	db *sql.DB
}

// NewPostgreSQLUserRepository creates a new PostgreSQLUserRepository
func NewPostgreSQLUserRepository(db *sql.DB) *PostgreSQLUserRepository {
	return &PostgreSQLUserRepository{
		db: db,
	}
}

// Create inserts a new user
func (r *PostgreSQLUserRepository) Create(ctx context.Context, user *domain.User) error {
	querier := database.GetTx(ctx, r.db)

	query := `INSERT INTO users (id, username, email, password, role, is_active, created_at, updated_at)
			  VALUES ($1, $2, $3, $4, $5, $6, NOW(), NOW())`

	_, err := querier.ExecContext(
		ctx, query, user.ID, user.Username, user.Email, user.Password, user.Role, user.IsActive,
	)
	if err != nil {
		// Check for unique constraint violation (duplicate email/username)
		if isPostgreSQLUniqueViolation(err) {
			return domain.ErrUserAlreadyExists
		}
		return apperrors.Wrap(err, "failed to create user")
	}
	return nil
}

// GetByID retrieves a user by ID
func (r *PostgreSQLUserRepository) GetByID(ctx context.Context, id uuid.UUID) (*domain.User, error) {
	query := `SELECT id, username, email, password, role, is_active, last_login_at, created_at, updated_at
			  FROM users WHERE id = $1`

	return r.getOne(ctx, query, id)
}

// GetByEmail retrieves a user by email
func (r *PostgreSQLUserRepository) GetByEmail(ctx context.Context, email string) (*domain.User, error) {
	query := `SELECT id, username, email, password, role, is_active, last_login_at, created_at, updated_at
			  FROM users WHERE email = $1`

	return r.getOne(ctx, query, email)
}

// GetByUsername retrieves a user by username
func (r *PostgreSQLUserRepository) GetByUsername(ctx context.Context, username string) (*domain.User, error) {
	query := `SELECT id, username, email, password, role, is_active, last_login_at, created_at, updated_at
			  FROM users WHERE username = $1`

	return r.getOne(ctx, query, username)
}

// UpdateLastLogin records the time of the user's latest successful login
func (r *PostgreSQLUserRepository) UpdateLastLogin(ctx context.Context, id uuid.UUID, loginAt time.Time) error {
	querier := database.GetTx(ctx, r.db)

	query := `UPDATE users SET last_login_at = $1, updated_at = NOW() WHERE id = $2`

	_, err := querier.ExecContext(ctx, query, loginAt, id)
	if err != nil {
		return apperrors.Wrap(err, "failed to update last login")
	}
	return nil
}

// UpdatePassword replaces the stored password digest
func (r *PostgreSQLUserRepository) UpdatePassword(ctx context.Context, id uuid.UUID, hashedPassword string) error {
	querier := database.GetTx(ctx, r.db)

	query := `UPDATE users SET password = $1, updated_at = NOW() WHERE id = $2`

	result, err := querier.ExecContext(ctx, query, hashedPassword, id)
	if err != nil {
		return apperrors.Wrap(err, "failed to update password")
	}
	return requireRowAffected(result)
}

// SetActive activates or deactivates a user account
func (r *PostgreSQLUserRepository) SetActive(ctx context.Context, id uuid.UUID, active bool) error {
	querier := database.GetTx(ctx, r.db)

	query := `UPDATE users SET is_active = $1, updated_at = NOW() WHERE id = $2`

	result, err := querier.ExecContext(ctx, query, active, id)
	if err != nil {
		return apperrors.Wrap(err, "failed to update active flag")
	}
	return requireRowAffected(result)
}

// getOne runs a single-row query and scans the user
func (r *PostgreSQLUserRepository) getOne(ctx context.Context, query string, arg any) (*domain.User, error) {
	var user domain.User
	querier := database.GetTx(ctx, r.db)

	err := querier.QueryRowContext(ctx, query, arg).Scan(
		&user.ID,
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

	return &user, nil
}

// requireRowAffected turns a zero-row update into ErrUserNotFound
func requireRowAffected(result sql.Result) error {
	affected, err := result.RowsAffected()
	if err != nil {
		return apperrors.Wrap(err, "failed to read affected rows")
	}
	if affected == 0 {
		return domain.ErrUserNotFound
	}
	return nil
}

// isPostgreSQLUniqueViolation checks if the error is a PostgreSQL unique constraint violation
func isPostgreSQLUniqueViolation(err error) bool {
	if err == nil {
		return false
	}
	errMsg := strings.ToLower(err.Error())
	// PostgreSQL: "duplicate key value violates unique constraint" or "pq: duplicate key"
	return strings.Contains(errMsg, "duplicate key") || strings.Contains(errMsg, "unique constraint")
}
