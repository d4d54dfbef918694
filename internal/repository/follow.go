package repository

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/jmoiron/sqlx"
)

type followRepository struct {
	db *sqlx.DB
}

func NewFollowRepository(db *sqlx.DB) FollowRepository {
	return &followRepository{db: db}
}

// Create adds a follow edge, idempotently. ON CONFLICT DO NOTHING gives
// set semantics: following the same user twice never produces a second row.
func (r *followRepository) Create(ctx context.Context, tx *sqlx.Tx, follower, followee string) (bool, error) {
	query := `
		INSERT INTO follows (follower, followee)
		VALUES ($1, $2)
		ON CONFLICT (follower, followee) DO NOTHING
	`
	result, err := tx.ExecContext(ctx, query, follower, followee)
	if err != nil {
		return false, fmt.Errorf("failed to create follow: %w", err)
	}

	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return false, fmt.Errorf("failed to get rows affected: %w", err)
	}

	return rowsAffected > 0, nil
}

// Delete removes a follow edge. A missing edge is not an error; the caller
// decides whether that matters.
func (r *followRepository) Delete(ctx context.Context, tx *sqlx.Tx, follower, followee string) (bool, error) {
	query := `DELETE FROM follows WHERE follower = $1 AND followee = $2`
	result, err := tx.ExecContext(ctx, query, follower, followee)
	if err != nil {
		return false, fmt.Errorf("failed to delete follow: %w", err)
	}

	rows, err := result.RowsAffected()
	if err != nil {
		return false, fmt.Errorf("failed to get rows affected: %w", err)
	}

	return rows > 0, nil
}

// Followers returns the usernames that follow the given user.
func (r *followRepository) Followers(ctx context.Context, username string) ([]string, error) {
	query := `
		SELECT follower
		FROM follows
		WHERE followee = $1
		ORDER BY created_at ASC
	`

	var followers []string
	err := r.db.SelectContext(ctx, &followers, query, username)
	if err != nil && err != sql.ErrNoRows {
		return nil, fmt.Errorf("failed to get followers: %w", err)
	}
	if followers == nil {
		followers = []string{}
	}

	return followers, nil
}

// Following returns the usernames the given user follows.
func (r *followRepository) Following(ctx context.Context, username string) ([]string, error) {
	query := `
		SELECT followee
		FROM follows
		WHERE follower = $1
		ORDER BY created_at ASC
	`

	var following []string
	err := r.db.SelectContext(ctx, &following, query, username)
	if err != nil && err != sql.ErrNoRows {
		return nil, fmt.Errorf("failed to get following: %w", err)
	}
	if following == nil {
		following = []string{}
	}

	return following, nil
}
