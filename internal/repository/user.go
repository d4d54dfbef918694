package repository

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/jmoiron/sqlx"
	"github.com/lib/pq"

	"islandfeed/internal/model"
)

// userRepository implements UserRepository using sqlx
type userRepository struct {
	db *sqlx.DB
}

// NewUserRepository creates a new user repository
func NewUserRepository(db *sqlx.DB) UserRepository {
	return &userRepository{db: db}
}

// Create inserts a new user into the database
func (r *userRepository) Create(ctx context.Context, u *model.User) error {
	query := `
		INSERT INTO users (username, password_hash, first_name, last_name, email, dob, role, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, NOW(), NOW())
		RETURNING created_at, updated_at
	`

	row := r.db.QueryRowxContext(ctx, query,
		u.Username,
		u.PasswordHash,
		u.FirstName,
		u.LastName,
		u.Email,
		u.DOB,
		u.Role,
	)

	if err := row.Scan(&u.CreatedAt, &u.UpdatedAt); err != nil {
		// Two concurrent signups can both pass the existence check; the
		// primary key settles the race and the loser reports a taken name.
		if isUniqueViolation(err) {
			return model.ErrUsernameExists
		}
		return fmt.Errorf("failed to insert user: %w", err)
	}

	return nil
}

// isUniqueViolation reports whether err is a Postgres unique-constraint
// violation (SQLSTATE 23505).
func isUniqueViolation(err error) bool {
	var pqErr *pq.Error
	return errors.As(err, &pqErr) && pqErr.Code == "23505"
}

// GetByUsername retrieves a user by their username
func (r *userRepository) GetByUsername(ctx context.Context, username string) (*model.User, error) {
	query := `
		SELECT username, password_hash, first_name, last_name, email, dob, role,
		       login_id, section, last_activity, total_activity, created_at, updated_at
		FROM users
		WHERE username = $1
	`

	var u model.User
	err := r.db.GetContext(ctx, &u, query, username)
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, model.ErrUserNotFound
		}
		return nil, fmt.Errorf("failed to get user by username: %w", err)
	}

	return &u, nil
}

// ExistsByUsername checks if a username is already taken
func (r *userRepository) ExistsByUsername(ctx context.Context, username string) (bool, error) {
	query := `SELECT EXISTS(SELECT 1 FROM users WHERE username = $1)`

	var exists bool
	err := r.db.GetContext(ctx, &exists, query, username)
	if err != nil {
		return false, fmt.Errorf("failed to check username existence: %w", err)
	}

	return exists, nil
}

// UpdateProfile sets the mutable profile fields and returns the updated row.
// Nil fields keep their current value (COALESCE on the write side).
func (r *userRepository) UpdateProfile(ctx context.Context, username string, req *model.UpdateProfileRequest) (*model.User, error) {
	query := `
		UPDATE users
		SET first_name = COALESCE($2, first_name),
		    last_name  = COALESCE($3, last_name),
		    email      = COALESCE($4, email),
		    dob        = COALESCE($5, dob),
		    updated_at = NOW()
		WHERE username = $1
		RETURNING username, password_hash, first_name, last_name, email, dob, role,
		          login_id, section, last_activity, total_activity, created_at, updated_at
	`

	var u model.User
	err := r.db.GetContext(ctx, &u, query, username, req.FirstName, req.LastName, req.Email, req.DOB)
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, model.ErrUserNotFound
		}
		return nil, fmt.Errorf("failed to update profile: %w", err)
	}

	return &u, nil
}

// Search finds users whose username, name or email contains the query,
// case-insensitively. The password hash never leaves the struct's json:"-" field.
func (r *userRepository) Search(ctx context.Context, query string, limit int) ([]model.User, error) {
	searchQuery := `
		SELECT username, first_name, last_name, email, dob, role,
		       login_id, section, last_activity, total_activity, created_at, updated_at
		FROM users
		WHERE username ILIKE $1
		   OR first_name ILIKE $1
		   OR last_name ILIKE $1
		   OR email ILIKE $1
		ORDER BY username
		LIMIT $2
	`

	var users []model.User
	err := r.db.SelectContext(ctx, &users, searchQuery, "%"+query+"%", limit)
	if err != nil {
		return nil, fmt.Errorf("failed to search users: %w", err)
	}

	return users, nil
}
