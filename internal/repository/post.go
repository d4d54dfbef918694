package repository

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/jmoiron/sqlx"
	"github.com/lib/pq"

	"islandfeed/internal/model"
)

// postRepository implements PostRepository using sqlx
type postRepository struct {
	db *sqlx.DB
}

// NewPostRepository creates a new post repository
func NewPostRepository(db *sqlx.DB) PostRepository {
	return &postRepository{db: db}
}

// Create inserts a new post with a server-assigned timestamp and zero likes.
func (r *postRepository) Create(ctx context.Context, username, name, message string) (*model.Post, error) {
	query := `
		INSERT INTO posts (username, name, message, likes, datetime)
		VALUES ($1, $2, $3, 0, NOW())
		RETURNING id, username, name, message, likes, datetime
	`

	var p model.Post
	err := r.db.GetContext(ctx, &p, query, username, name, message)
	if err != nil {
		return nil, fmt.Errorf("failed to insert post: %w", err)
	}

	p.Replies = []model.Reply{}
	return &p, nil
}

// GetByID retrieves a post and its replies.
func (r *postRepository) GetByID(ctx context.Context, postID int64) (*model.Post, error) {
	query := `
		SELECT id, username, name, message, likes, datetime
		FROM posts
		WHERE id = $1
	`

	var p model.Post
	err := r.db.GetContext(ctx, &p, query, postID)
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, model.ErrPostNotFound
		}
		return nil, fmt.Errorf("failed to get post by id: %w", err)
	}

	replies, err := r.GetReplies(ctx, []int64{postID})
	if err != nil {
		return nil, err
	}
	p.Replies = replies[postID]
	if p.Replies == nil {
		p.Replies = []model.Reply{}
	}

	return &p, nil
}

// List returns all posts, newest first, with replies attached.
func (r *postRepository) List(ctx context.Context) ([]model.Post, error) {
	query := `
		SELECT id, username, name, message, likes, datetime
		FROM posts
		ORDER BY datetime DESC
	`

	var posts []model.Post
	if err := r.db.SelectContext(ctx, &posts, query); err != nil {
		return nil, fmt.Errorf("failed to list posts: %w", err)
	}

	return r.attachReplies(ctx, posts)
}

// ListByUser returns one user's posts, newest first, with replies attached.
func (r *postRepository) ListByUser(ctx context.Context, username string) ([]model.Post, error) {
	query := `
		SELECT id, username, name, message, likes, datetime
		FROM posts
		WHERE username = $1
		ORDER BY datetime DESC
	`

	var posts []model.Post
	if err := r.db.SelectContext(ctx, &posts, query, username); err != nil {
		return nil, fmt.Errorf("failed to list posts by user: %w", err)
	}

	return r.attachReplies(ctx, posts)
}

// ListUpvotedBy returns the posts the user currently has an up reaction on,
// newest first.
func (r *postRepository) ListUpvotedBy(ctx context.Context, username string) ([]model.Post, error) {
	query := `
		SELECT p.id, p.username, p.name, p.message, p.likes, p.datetime
		FROM posts p
		JOIN post_reactions pr ON pr.post_id = p.id
		WHERE pr.username = $1 AND pr.reaction = 'up'
		ORDER BY p.datetime DESC
	`

	var posts []model.Post
	if err := r.db.SelectContext(ctx, &posts, query, username); err != nil {
		return nil, fmt.Errorf("failed to list upvoted posts: %w", err)
	}

	return r.attachReplies(ctx, posts)
}

// Exists checks if a post exists
func (r *postRepository) Exists(ctx context.Context, postID int64) (bool, error) {
	query := `SELECT EXISTS(SELECT 1 FROM posts WHERE id = $1)`

	var exists bool
	if err := r.db.GetContext(ctx, &exists, query, postID); err != nil {
		return false, fmt.Errorf("failed to check post existence: %w", err)
	}

	return exists, nil
}

// AddReply appends a reply to a post.
func (r *postRepository) AddReply(ctx context.Context, postID int64, username, message string) (*model.Reply, error) {
	query := `
		INSERT INTO replies (post_id, username, message, datetime)
		VALUES ($1, $2, $3, NOW())
		RETURNING id, post_id, username, message, datetime
	`

	var reply model.Reply
	err := r.db.GetContext(ctx, &reply, query, postID, username, message)
	if err != nil {
		return nil, fmt.Errorf("failed to insert reply: %w", err)
	}

	return &reply, nil
}

// GetReplies batch-loads replies for a set of posts in one query, oldest
// first within each post.
func (r *postRepository) GetReplies(ctx context.Context, postIDs []int64) (map[int64][]model.Reply, error) {
	if len(postIDs) == 0 {
		return make(map[int64][]model.Reply), nil
	}

	query := `
		SELECT id, post_id, username, message, datetime
		FROM replies
		WHERE post_id = ANY($1)
		ORDER BY datetime ASC, id ASC
	`

	var replies []model.Reply
	err := r.db.SelectContext(ctx, &replies, query, pq.Array(postIDs))
	if err != nil && err != sql.ErrNoRows {
		return nil, fmt.Errorf("failed to get replies: %w", err)
	}

	result := make(map[int64][]model.Reply)
	for _, reply := range replies {
		result[reply.PostID] = append(result[reply.PostID], reply)
	}

	return result, nil
}

// attachReplies batch-loads replies for the given posts (one query, not N+1)
// and guarantees a non-nil Replies slice on every post.
func (r *postRepository) attachReplies(ctx context.Context, posts []model.Post) ([]model.Post, error) {
	if len(posts) == 0 {
		return []model.Post{}, nil
	}

	postIDs := make([]int64, len(posts))
	for i, p := range posts {
		postIDs[i] = p.ID
	}

	replies, err := r.GetReplies(ctx, postIDs)
	if err != nil {
		return nil, err
	}

	for i := range posts {
		posts[i].Replies = replies[posts[i].ID]
		if posts[i].Replies == nil {
			posts[i].Replies = []model.Reply{}
		}
	}

	return posts, nil
}

// GetLikesForUpdate reads a post's likes counter with a row lock, so the
// engagement transaction's read-modify-write cannot lose concurrent deltas.
func (r *postRepository) GetLikesForUpdate(ctx context.Context, tx *sqlx.Tx, postID int64) (int, error) {
	query := `SELECT likes FROM posts WHERE id = $1 FOR UPDATE`

	var likes int
	err := tx.GetContext(ctx, &likes, query, postID)
	if err != nil {
		if err == sql.ErrNoRows {
			return 0, model.ErrPostNotFound
		}
		return 0, fmt.Errorf("failed to lock post likes: %w", err)
	}

	return likes, nil
}

// SetLikes writes the recomputed aggregate counter.
func (r *postRepository) SetLikes(ctx context.Context, tx *sqlx.Tx, postID int64, likes int) error {
	query := `UPDATE posts SET likes = $2 WHERE id = $1`
	if _, err := tx.ExecContext(ctx, query, postID, likes); err != nil {
		return fmt.Errorf("failed to set likes: %w", err)
	}
	return nil
}

// GetReaction returns the user's current reaction on a post, or ReactionNone.
func (r *postRepository) GetReaction(ctx context.Context, tx *sqlx.Tx, postID int64, username string) (model.Reaction, error) {
	query := `SELECT reaction FROM post_reactions WHERE post_id = $1 AND username = $2`

	var reaction model.Reaction
	err := tx.GetContext(ctx, &reaction, query, postID, username)
	if err != nil {
		if err == sql.ErrNoRows {
			return model.ReactionNone, nil
		}
		return model.ReactionNone, fmt.Errorf("failed to get reaction: %w", err)
	}

	return reaction, nil
}

// SetReaction upserts the user's reaction entry for a post.
func (r *postRepository) SetReaction(ctx context.Context, tx *sqlx.Tx, postID int64, username string, reaction model.Reaction) error {
	query := `
		INSERT INTO post_reactions (post_id, username, reaction)
		VALUES ($1, $2, $3)
		ON CONFLICT (post_id, username) DO UPDATE SET reaction = EXCLUDED.reaction
	`
	if _, err := tx.ExecContext(ctx, query, postID, username, reaction); err != nil {
		return fmt.Errorf("failed to set reaction: %w", err)
	}
	return nil
}

// DeleteReaction removes the user's reaction entry for a post.
func (r *postRepository) DeleteReaction(ctx context.Context, tx *sqlx.Tx, postID int64, username string) error {
	query := `DELETE FROM post_reactions WHERE post_id = $1 AND username = $2`
	if _, err := tx.ExecContext(ctx, query, postID, username); err != nil {
		return fmt.Errorf("failed to delete reaction: %w", err)
	}
	return nil
}

// CheckReactions batch-checks the user's reactions over a set of posts with
// one ANY($2) query. Posts without an entry are simply absent from the map.
func (r *postRepository) CheckReactions(ctx context.Context, username string, postIDs []int64) (map[int64]model.Reaction, error) {
	if len(postIDs) == 0 {
		return make(map[int64]model.Reaction), nil
	}

	query := `SELECT post_id, reaction FROM post_reactions WHERE username = $1 AND post_id = ANY($2)`

	var rows []struct {
		PostID   int64          `db:"post_id"`
		Reaction model.Reaction `db:"reaction"`
	}
	err := r.db.SelectContext(ctx, &rows, query, username, pq.Array(postIDs))
	if err != nil && err != sql.ErrNoRows {
		return nil, fmt.Errorf("failed to check reactions: %w", err)
	}

	result := make(map[int64]model.Reaction, len(rows))
	for _, row := range rows {
		result[row.PostID] = row.Reaction
	}

	return result, nil
}
