package database

import (
	"fmt"

	"github.com/jmoiron/sqlx"
)

// RunMigrations creates the schema and seeds the islander catalog. All
// statements are idempotent so the server can run them on every start.
func RunMigrations(db *sqlx.DB) error {
	queries := []string{
		`CREATE TABLE IF NOT EXISTS users (
			username TEXT PRIMARY KEY,
			password_hash TEXT NOT NULL,
			first_name TEXT,
			last_name TEXT,
			email TEXT,
			dob TEXT,
			role TEXT NOT NULL DEFAULT 'user',
			login_id TEXT,
			section TEXT,
			last_activity TEXT,
			total_activity TEXT,
			created_at TIMESTAMPTZ NOT NULL DEFAULT NOW(),
			updated_at TIMESTAMPTZ NOT NULL DEFAULT NOW()
		)`,
		`CREATE TABLE IF NOT EXISTS posts (
			id BIGSERIAL PRIMARY KEY,
			username TEXT NOT NULL REFERENCES users(username),
			name TEXT NOT NULL,
			message TEXT NOT NULL,
			likes INTEGER NOT NULL DEFAULT 0,
			datetime TIMESTAMPTZ NOT NULL DEFAULT NOW()
		)`,
		`CREATE INDEX IF NOT EXISTS idx_posts_username ON posts (username)`,
		`CREATE INDEX IF NOT EXISTS idx_posts_datetime ON posts (datetime DESC)`,
		`CREATE TABLE IF NOT EXISTS replies (
			id BIGSERIAL PRIMARY KEY,
			post_id BIGINT NOT NULL REFERENCES posts(id),
			username TEXT NOT NULL REFERENCES users(username),
			message TEXT NOT NULL,
			datetime TIMESTAMPTZ NOT NULL DEFAULT NOW()
		)`,
		`CREATE INDEX IF NOT EXISTS idx_replies_post_id ON replies (post_id)`,
		`CREATE TABLE IF NOT EXISTS post_reactions (
			post_id BIGINT NOT NULL REFERENCES posts(id),
			username TEXT NOT NULL REFERENCES users(username),
			reaction TEXT NOT NULL CHECK (reaction IN ('up', 'down')),
			PRIMARY KEY (post_id, username)
		)`,
		`CREATE INDEX IF NOT EXISTS idx_post_reactions_username ON post_reactions (username)`,
		`CREATE TABLE IF NOT EXISTS follows (
			follower TEXT NOT NULL REFERENCES users(username),
			followee TEXT NOT NULL REFERENCES users(username),
			created_at TIMESTAMPTZ NOT NULL DEFAULT NOW(),
			PRIMARY KEY (follower, followee)
		)`,
		`CREATE INDEX IF NOT EXISTS idx_follows_followee ON follows (followee)`,
		`CREATE TABLE IF NOT EXISTS refresh_tokens (
			id UUID PRIMARY KEY DEFAULT gen_random_uuid(),
			username TEXT NOT NULL REFERENCES users(username),
			token_hash TEXT NOT NULL UNIQUE,
			expires_at TIMESTAMPTZ NOT NULL,
			created_at TIMESTAMPTZ NOT NULL DEFAULT NOW(),
			revoked_at TIMESTAMPTZ,
			replaced_by UUID,
			device_info TEXT,
			ip_address TEXT
		)`,
		`CREATE INDEX IF NOT EXISTS idx_refresh_tokens_username ON refresh_tokens (username)`,
		`CREATE TABLE IF NOT EXISTS islanders (
			id BIGSERIAL PRIMARY KEY,
			first_name TEXT NOT NULL,
			last_name TEXT NOT NULL,
			age INTEGER NOT NULL,
			astrology_sign TEXT NOT NULL,
			hometown TEXT NOT NULL,
			episode_entered INTEGER NOT NULL,
			episode_left INTEGER,
			image TEXT
		)`,
	}

	for _, query := range queries {
		if _, err := db.Exec(query); err != nil {
			return fmt.Errorf("migration failed: %w", err)
		}
	}

	return seedIslanders(db)
}

// seedIslanders loads the static cast catalog once. The catalog is read-only
// at runtime, so an already-populated table is left alone.
func seedIslanders(db *sqlx.DB) error {
	var count int
	if err := db.Get(&count, `SELECT COUNT(*) FROM islanders`); err != nil {
		return fmt.Errorf("failed to count islanders: %w", err)
	}
	if count > 0 {
		return nil
	}

	type seed struct {
		firstName, lastName, sign, hometown, image string
		age, entered                               int
		left                                       *int
	}

	intp := func(n int) *int { return &n }

	cast := []seed{
		{"Maya", "Reyes", "Leo", "San Diego, CA", "maya_reyes.jpg", 26, 1, nil},
		{"Jake", "Donovan", "Aries", "Austin, TX", "jake_donovan.jpg", 28, 1, nil},
		{"Sophie", "Lam", "Pisces", "Seattle, WA", "sophie_lam.jpg", 24, 1, intp(14)},
		{"Marcus", "Bell", "Taurus", "Atlanta, GA", "marcus_bell.jpg", 27, 1, nil},
		{"Chiara", "Russo", "Gemini", "Miami, FL", "chiara_russo.jpg", 25, 3, nil},
		{"Devon", "Okafor", "Scorpio", "Chicago, IL", "devon_okafor.jpg", 29, 5, intp(21)},
		{"Lena", "Virtanen", "Libra", "Minneapolis, MN", "lena_virtanen.jpg", 23, 8, nil},
		{"Tommy", "Alvarez", "Sagittarius", "Phoenix, AZ", "tommy_alvarez.jpg", 26, 8, nil},
	}

	query := `
		INSERT INTO islanders (first_name, last_name, age, astrology_sign, hometown, episode_entered, episode_left, image)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8)
	`
	for _, c := range cast {
		if _, err := db.Exec(query, c.firstName, c.lastName, c.age, c.sign, c.hometown, c.entered, c.left, c.image); err != nil {
			return fmt.Errorf("failed to seed islanders: %w", err)
		}
	}

	return nil
}
