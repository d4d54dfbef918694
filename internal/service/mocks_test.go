package service

import (
	"context"
	"time"

	"github.com/jmoiron/sqlx"

	"islandfeed/internal/model"
)

// Hand-rolled mocks: each repository interface gets a struct with function
// fields so every test can define exactly the behavior it needs. Services
// depend on the interfaces, not the sqlx implementations, which is what
// makes this swap possible.

type mockUserRepository struct {
	createFn           func(ctx context.Context, user *model.User) error
	getByUsernameFn    func(ctx context.Context, username string) (*model.User, error)
	existsByUsernameFn func(ctx context.Context, username string) (bool, error)
	updateProfileFn    func(ctx context.Context, username string, req *model.UpdateProfileRequest) (*model.User, error)
	searchFn           func(ctx context.Context, query string, limit int) ([]model.User, error)

	// Track calls for assertions
	createCalls []*model.User
}

func (m *mockUserRepository) Create(ctx context.Context, user *model.User) error {
	m.createCalls = append(m.createCalls, user)
	if m.createFn != nil {
		return m.createFn(ctx, user)
	}
	return nil
}

func (m *mockUserRepository) GetByUsername(ctx context.Context, username string) (*model.User, error) {
	if m.getByUsernameFn != nil {
		return m.getByUsernameFn(ctx, username)
	}
	return nil, model.ErrUserNotFound
}

func (m *mockUserRepository) ExistsByUsername(ctx context.Context, username string) (bool, error) {
	if m.existsByUsernameFn != nil {
		return m.existsByUsernameFn(ctx, username)
	}
	return false, nil
}

func (m *mockUserRepository) UpdateProfile(ctx context.Context, username string, req *model.UpdateProfileRequest) (*model.User, error) {
	if m.updateProfileFn != nil {
		return m.updateProfileFn(ctx, username, req)
	}
	return nil, model.ErrUserNotFound
}

func (m *mockUserRepository) Search(ctx context.Context, query string, limit int) ([]model.User, error) {
	if m.searchFn != nil {
		return m.searchFn(ctx, query, limit)
	}
	return nil, nil
}

type mockFollowRepository struct {
	createFn    func(ctx context.Context, tx *sqlx.Tx, follower, followee string) (bool, error)
	deleteFn    func(ctx context.Context, tx *sqlx.Tx, follower, followee string) (bool, error)
	followersFn func(ctx context.Context, username string) ([]string, error)
	followingFn func(ctx context.Context, username string) ([]string, error)
}

func (m *mockFollowRepository) Create(ctx context.Context, tx *sqlx.Tx, follower, followee string) (bool, error) {
	if m.createFn != nil {
		return m.createFn(ctx, tx, follower, followee)
	}
	return true, nil
}

func (m *mockFollowRepository) Delete(ctx context.Context, tx *sqlx.Tx, follower, followee string) (bool, error) {
	if m.deleteFn != nil {
		return m.deleteFn(ctx, tx, follower, followee)
	}
	return true, nil
}

func (m *mockFollowRepository) Followers(ctx context.Context, username string) ([]string, error) {
	if m.followersFn != nil {
		return m.followersFn(ctx, username)
	}
	return []string{}, nil
}

func (m *mockFollowRepository) Following(ctx context.Context, username string) ([]string, error) {
	if m.followingFn != nil {
		return m.followingFn(ctx, username)
	}
	return []string{}, nil
}

type mockPostRepository struct {
	createFn         func(ctx context.Context, username, name, message string) (*model.Post, error)
	getByIDFn        func(ctx context.Context, postID int64) (*model.Post, error)
	listFn           func(ctx context.Context) ([]model.Post, error)
	listByUserFn     func(ctx context.Context, username string) ([]model.Post, error)
	listUpvotedByFn  func(ctx context.Context, username string) ([]model.Post, error)
	existsFn         func(ctx context.Context, postID int64) (bool, error)
	addReplyFn       func(ctx context.Context, postID int64, username, message string) (*model.Reply, error)
	checkReactionsFn func(ctx context.Context, username string, postIDs []int64) (map[int64]model.Reaction, error)
}

func (m *mockPostRepository) Create(ctx context.Context, username, name, message string) (*model.Post, error) {
	if m.createFn != nil {
		return m.createFn(ctx, username, name, message)
	}
	return &model.Post{Username: username, Name: name, Message: message, Replies: []model.Reply{}}, nil
}

func (m *mockPostRepository) GetByID(ctx context.Context, postID int64) (*model.Post, error) {
	if m.getByIDFn != nil {
		return m.getByIDFn(ctx, postID)
	}
	return nil, model.ErrPostNotFound
}

func (m *mockPostRepository) List(ctx context.Context) ([]model.Post, error) {
	if m.listFn != nil {
		return m.listFn(ctx)
	}
	return []model.Post{}, nil
}

func (m *mockPostRepository) ListByUser(ctx context.Context, username string) ([]model.Post, error) {
	if m.listByUserFn != nil {
		return m.listByUserFn(ctx, username)
	}
	return []model.Post{}, nil
}

func (m *mockPostRepository) ListUpvotedBy(ctx context.Context, username string) ([]model.Post, error) {
	if m.listUpvotedByFn != nil {
		return m.listUpvotedByFn(ctx, username)
	}
	return []model.Post{}, nil
}

func (m *mockPostRepository) Exists(ctx context.Context, postID int64) (bool, error) {
	if m.existsFn != nil {
		return m.existsFn(ctx, postID)
	}
	return false, nil
}

func (m *mockPostRepository) AddReply(ctx context.Context, postID int64, username, message string) (*model.Reply, error) {
	if m.addReplyFn != nil {
		return m.addReplyFn(ctx, postID, username, message)
	}
	return &model.Reply{PostID: postID, Username: username, Message: message}, nil
}

func (m *mockPostRepository) GetReplies(ctx context.Context, postIDs []int64) (map[int64][]model.Reply, error) {
	return map[int64][]model.Reply{}, nil
}

func (m *mockPostRepository) GetLikesForUpdate(ctx context.Context, tx *sqlx.Tx, postID int64) (int, error) {
	return 0, nil
}

func (m *mockPostRepository) SetLikes(ctx context.Context, tx *sqlx.Tx, postID int64, likes int) error {
	return nil
}

func (m *mockPostRepository) GetReaction(ctx context.Context, tx *sqlx.Tx, postID int64, username string) (model.Reaction, error) {
	return model.ReactionNone, nil
}

func (m *mockPostRepository) SetReaction(ctx context.Context, tx *sqlx.Tx, postID int64, username string, reaction model.Reaction) error {
	return nil
}

func (m *mockPostRepository) DeleteReaction(ctx context.Context, tx *sqlx.Tx, postID int64, username string) error {
	return nil
}

func (m *mockPostRepository) CheckReactions(ctx context.Context, username string, postIDs []int64) (map[int64]model.Reaction, error) {
	if m.checkReactionsFn != nil {
		return m.checkReactionsFn(ctx, username, postIDs)
	}
	return map[int64]model.Reaction{}, nil
}

type mockRefreshTokenRepository struct {
	createFn          func(ctx context.Context, token *model.RefreshToken) error
	findByTokenHashFn func(ctx context.Context, tokenHash string) (*model.RefreshToken, error)
	revokeFn          func(ctx context.Context, id string, replacedBy *string) error
	revokeAllFn       func(ctx context.Context, username string) error

	createCalls []*model.RefreshToken
	revokeCalls []string
}

func (m *mockRefreshTokenRepository) Create(ctx context.Context, token *model.RefreshToken) error {
	m.createCalls = append(m.createCalls, token)
	if m.createFn != nil {
		return m.createFn(ctx, token)
	}
	token.ID = "mock-token-id"
	token.CreatedAt = time.Now()
	return nil
}

func (m *mockRefreshTokenRepository) FindByTokenHash(ctx context.Context, tokenHash string) (*model.RefreshToken, error) {
	if m.findByTokenHashFn != nil {
		return m.findByTokenHashFn(ctx, tokenHash)
	}
	return nil, model.ErrRefreshTokenNotFound
}

func (m *mockRefreshTokenRepository) Revoke(ctx context.Context, id string, replacedBy *string) error {
	m.revokeCalls = append(m.revokeCalls, id)
	if m.revokeFn != nil {
		return m.revokeFn(ctx, id, replacedBy)
	}
	return nil
}

func (m *mockRefreshTokenRepository) RevokeAllForUser(ctx context.Context, username string) error {
	if m.revokeAllFn != nil {
		return m.revokeAllFn(ctx, username)
	}
	return nil
}

func (m *mockRefreshTokenRepository) DeleteExpired(ctx context.Context, olderThan time.Duration) (int64, error) {
	return 0, nil
}
