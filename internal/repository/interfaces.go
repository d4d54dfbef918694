package repository

import (
	"context"
	"time"

	"github.com/jmoiron/sqlx"

	"islandfeed/internal/model"
)

type UserRepository interface {
	Create(ctx context.Context, user *model.User) error
	GetByUsername(ctx context.Context, username string) (*model.User, error)
	ExistsByUsername(ctx context.Context, username string) (bool, error)
	UpdateProfile(ctx context.Context, username string, req *model.UpdateProfileRequest) (*model.User, error)
	Search(ctx context.Context, query string, limit int) ([]model.User, error)
}

type PostRepository interface {
	Create(ctx context.Context, username, name, message string) (*model.Post, error)
	GetByID(ctx context.Context, postID int64) (*model.Post, error)
	List(ctx context.Context) ([]model.Post, error)
	ListByUser(ctx context.Context, username string) ([]model.Post, error)
	ListUpvotedBy(ctx context.Context, username string) ([]model.Post, error)
	Exists(ctx context.Context, postID int64) (bool, error)
	AddReply(ctx context.Context, postID int64, username, message string) (*model.Reply, error)
	GetReplies(ctx context.Context, postIDs []int64) (map[int64][]model.Reply, error)

	// Reaction bookkeeping. The tx-taking methods run inside the engagement
	// service's transaction so the per-user mapping and the aggregate counter
	// move together.
	GetLikesForUpdate(ctx context.Context, tx *sqlx.Tx, postID int64) (int, error)
	SetLikes(ctx context.Context, tx *sqlx.Tx, postID int64, likes int) error
	GetReaction(ctx context.Context, tx *sqlx.Tx, postID int64, username string) (model.Reaction, error)
	SetReaction(ctx context.Context, tx *sqlx.Tx, postID int64, username string, reaction model.Reaction) error
	DeleteReaction(ctx context.Context, tx *sqlx.Tx, postID int64, username string) error
	CheckReactions(ctx context.Context, username string, postIDs []int64) (map[int64]model.Reaction, error)
}

type FollowRepository interface {
	// Create adds a follow edge if absent. Returns true when a row was inserted.
	Create(ctx context.Context, tx *sqlx.Tx, follower, followee string) (bool, error)
	// Delete removes a follow edge. Returns true when a row existed.
	Delete(ctx context.Context, tx *sqlx.Tx, follower, followee string) (bool, error)
	Followers(ctx context.Context, username string) ([]string, error)
	Following(ctx context.Context, username string) ([]string, error)
}

type IslanderRepository interface {
	List(ctx context.Context) ([]model.Islander, error)
	GetByID(ctx context.Context, id int64) (*model.Islander, error)
}

type RefreshTokenRepository interface {
	Create(ctx context.Context, token *model.RefreshToken) error
	FindByTokenHash(ctx context.Context, tokenHash string) (*model.RefreshToken, error)
	Revoke(ctx context.Context, id string, replacedBy *string) error
	RevokeAllForUser(ctx context.Context, username string) error
	DeleteExpired(ctx context.Context, olderThan time.Duration) (int64, error)
}
