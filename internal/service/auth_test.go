package service

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"islandfeed/internal/config"
	"islandfeed/internal/model"
)

func testAuthConfig() *config.Config {
	return &config.Config{
		JWTSecret:          "test-secret",
		AccessTokenMaxAge:  3600,
		RefreshTokenMaxAge: 2592000,
	}
}

func TestAuthService_GenerateTokenPair(t *testing.T) {
	var stored *model.RefreshToken
	mockTokens := &mockRefreshTokenRepository{
		createFn: func(ctx context.Context, token *model.RefreshToken) error {
			stored = token
			return nil
		},
	}
	cfg := testAuthConfig()
	svc := NewAuthService(mockTokens, &mockUserRepository{}, cfg)

	pair, err := svc.GenerateTokenPair(context.Background(), "alice", "user", "test-agent", "10.0.0.1")
	require.NoError(t, err)

	assert.Equal(t, cfg.AccessTokenMaxAge, pair.ExpiresIn)

	// The access token must carry {username, role} and expire per config.
	token, err := jwt.Parse(pair.AccessToken, func(token *jwt.Token) (interface{}, error) {
		return []byte(cfg.JWTSecret), nil
	})
	require.NoError(t, err, "access token should parse with the configured secret")

	claims, ok := token.Claims.(jwt.MapClaims)
	require.True(t, ok)
	assert.Equal(t, "alice", claims["username"])
	assert.Equal(t, "user", claims["role"])

	exp, ok := claims["exp"].(float64)
	require.True(t, ok, "exp claim missing")
	assert.InDelta(t, time.Now().Add(time.Hour).Unix(), int64(exp), 5)

	require.NotNil(t, stored, "refresh token was not persisted")
	assert.Equal(t, "alice", stored.Username)
	// Only the hash goes to storage, never the raw token.
	assert.NotEqual(t, pair.RefreshToken, stored.TokenHash)
	assert.Len(t, stored.TokenHash, 64, "token hash should be sha256 hex")
}

func TestAuthService_RefreshTokens_RotatesPair(t *testing.T) {
	svc := NewAuthService(&mockRefreshTokenRepository{}, &mockUserRepository{}, testAuthConfig())
	oldHash := svc.hashToken("old-refresh-token")

	revoked := map[string]bool{}
	mockTokens := &mockRefreshTokenRepository{
		findByTokenHashFn: func(ctx context.Context, tokenHash string) (*model.RefreshToken, error) {
			if tokenHash == oldHash {
				return &model.RefreshToken{
					ID:        "tok-1",
					Username:  "alice",
					TokenHash: oldHash,
					ExpiresAt: time.Now().Add(time.Hour),
				}, nil
			}
			return &model.RefreshToken{ID: "tok-2", Username: "alice", TokenHash: tokenHash, ExpiresAt: time.Now().Add(time.Hour)}, nil
		},
		revokeFn: func(ctx context.Context, id string, replacedBy *string) error {
			revoked[id] = true
			return nil
		},
	}
	mockUsers := &mockUserRepository{
		getByUsernameFn: func(ctx context.Context, username string) (*model.User, error) {
			return &model.User{Username: username, Role: "admin"}, nil
		},
	}
	svc = NewAuthService(mockTokens, mockUsers, testAuthConfig())

	pair, username, err := svc.RefreshTokens(context.Background(), "old-refresh-token", "", "")
	require.NoError(t, err)

	assert.Equal(t, "alice", username)
	assert.NotEqual(t, "old-refresh-token", pair.RefreshToken, "refresh token should rotate")
	assert.True(t, revoked["tok-1"], "old refresh token should be revoked")

	// The rotated access token carries the role from the user record.
	token, err := jwt.Parse(pair.AccessToken, func(token *jwt.Token) (interface{}, error) {
		return []byte("test-secret"), nil
	})
	require.NoError(t, err)
	assert.Equal(t, "admin", token.Claims.(jwt.MapClaims)["role"])
}

func TestAuthService_RefreshTokens_ReuseRevokesFamily(t *testing.T) {
	revokedAt := time.Now().Add(-time.Minute)
	familyRevoked := false
	mockTokens := &mockRefreshTokenRepository{
		findByTokenHashFn: func(ctx context.Context, tokenHash string) (*model.RefreshToken, error) {
			return &model.RefreshToken{
				ID:        "tok-1",
				Username:  "alice",
				ExpiresAt: time.Now().Add(time.Hour),
				RevokedAt: &revokedAt,
			}, nil
		},
		revokeAllFn: func(ctx context.Context, username string) error {
			if username == "alice" {
				familyRevoked = true
			}
			return nil
		},
	}
	svc := NewAuthService(mockTokens, &mockUserRepository{}, testAuthConfig())

	_, _, err := svc.RefreshTokens(context.Background(), "stolen-token", "", "")
	assert.ErrorIs(t, err, model.ErrRefreshTokenReused)
	assert.True(t, familyRevoked, "token family should be revoked on reuse")
}

func TestAuthService_RefreshTokens_Expired(t *testing.T) {
	mockTokens := &mockRefreshTokenRepository{
		findByTokenHashFn: func(ctx context.Context, tokenHash string) (*model.RefreshToken, error) {
			return &model.RefreshToken{
				ID:        "tok-1",
				Username:  "alice",
				ExpiresAt: time.Now().Add(-time.Hour),
			}, nil
		},
	}
	svc := NewAuthService(mockTokens, &mockUserRepository{}, testAuthConfig())

	_, _, err := svc.RefreshTokens(context.Background(), "expired-token", "", "")
	assert.ErrorIs(t, err, model.ErrRefreshTokenExpired)
}

func TestAuthService_RefreshTokens_Unknown(t *testing.T) {
	mockTokens := &mockRefreshTokenRepository{
		findByTokenHashFn: func(ctx context.Context, tokenHash string) (*model.RefreshToken, error) {
			return nil, model.ErrRefreshTokenNotFound
		},
	}
	svc := NewAuthService(mockTokens, &mockUserRepository{}, testAuthConfig())

	_, _, err := svc.RefreshTokens(context.Background(), "unknown-token", "", "")
	assert.ErrorIs(t, err, model.ErrRefreshTokenNotFound)
}

// A storage failure during lookup is not the same thing as an unknown token;
// it must not collapse into the invalid-credentials path.
func TestAuthService_RefreshTokens_StorageError(t *testing.T) {
	dbError := errors.New("connection refused")
	mockTokens := &mockRefreshTokenRepository{
		findByTokenHashFn: func(ctx context.Context, tokenHash string) (*model.RefreshToken, error) {
			return nil, dbError
		},
	}
	svc := NewAuthService(mockTokens, &mockUserRepository{}, testAuthConfig())

	_, _, err := svc.RefreshTokens(context.Background(), "any-token", "", "")
	assert.ErrorIs(t, err, dbError, "storage error should pass through")
	assert.NotErrorIs(t, err, model.ErrRefreshTokenNotFound)
}
