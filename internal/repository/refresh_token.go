package repository

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/jmoiron/sqlx"

	"islandfeed/internal/model"
)

// refreshTokenRepository stores one row per issued refresh token, keyed to
// its owner by username. Revocation is a timestamp, not a delete, so reuse
// of a rotated-out token is still detectable afterwards.
type refreshTokenRepository struct {
	db *sqlx.DB
}

func NewRefreshTokenRepository(db *sqlx.DB) RefreshTokenRepository {
	return &refreshTokenRepository{db: db}
}

// Create persists a token record and fills in the generated id and
// creation time. Only the hash of the token is ever written.
func (r *refreshTokenRepository) Create(ctx context.Context, token *model.RefreshToken) error {
	const query = `
		INSERT INTO refresh_tokens (username, token_hash, expires_at, device_info, ip_address)
		VALUES ($1, $2, $3, $4, $5)
		RETURNING id, created_at
	`
	err := r.db.QueryRowxContext(ctx, query,
		token.Username, token.TokenHash, token.ExpiresAt,
		token.DeviceInfo, token.IPAddress,
	).Scan(&token.ID, &token.CreatedAt)
	if err != nil {
		return fmt.Errorf("insert refresh token: %w", err)
	}
	return nil
}

// FindByTokenHash looks up a token record, revoked or not. The caller
// inspects the revocation and expiry state itself.
func (r *refreshTokenRepository) FindByTokenHash(ctx context.Context, tokenHash string) (*model.RefreshToken, error) {
	const query = `
		SELECT id, username, token_hash, expires_at, created_at,
		       revoked_at, replaced_by, device_info, ip_address
		FROM refresh_tokens
		WHERE token_hash = $1
	`
	var token model.RefreshToken
	if err := r.db.GetContext(ctx, &token, query, tokenHash); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, model.ErrRefreshTokenNotFound
		}
		return nil, fmt.Errorf("find refresh token: %w", err)
	}
	return &token, nil
}

// Revoke stamps an active token as revoked, optionally recording which
// token replaced it in the rotation chain. A token that is already revoked
// or unknown reports ErrRefreshTokenNotFound.
func (r *refreshTokenRepository) Revoke(ctx context.Context, id string, replacedBy *string) error {
	const query = `
		UPDATE refresh_tokens
		SET revoked_at = NOW(), replaced_by = $2
		WHERE id = $1 AND revoked_at IS NULL
	`
	result, err := r.db.ExecContext(ctx, query, id, replacedBy)
	if err != nil {
		return fmt.Errorf("revoke refresh token: %w", err)
	}
	affected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("revoke refresh token: %w", err)
	}
	if affected == 0 {
		return model.ErrRefreshTokenNotFound
	}
	return nil
}

// RevokeAllForUser stamps every active token belonging to one user. Used
// when reuse of a rotated-out token suggests the whole chain is compromised.
func (r *refreshTokenRepository) RevokeAllForUser(ctx context.Context, username string) error {
	const query = `
		UPDATE refresh_tokens
		SET revoked_at = NOW()
		WHERE username = $1 AND revoked_at IS NULL
	`
	if _, err := r.db.ExecContext(ctx, query, username); err != nil {
		return fmt.Errorf("revoke tokens for user: %w", err)
	}
	return nil
}

// DeleteExpired drops tokens whose expiry passed more than olderThan ago
// and reports how many rows went. Recently expired tokens are kept so reuse
// detection still has their history.
func (r *refreshTokenRepository) DeleteExpired(ctx context.Context, olderThan time.Duration) (int64, error) {
	cutoff := time.Now().Add(-olderThan)

	result, err := r.db.ExecContext(ctx,
		`DELETE FROM refresh_tokens WHERE expires_at < $1`, cutoff)
	if err != nil {
		return 0, fmt.Errorf("delete expired tokens: %w", err)
	}
	return result.RowsAffected()
}
