package service

import (
	"context"
	"fmt"
	"log/slog"
	"strings"

	"islandfeed/internal/model"
	"islandfeed/internal/repository"
)

// PostService handles feed entries and their replies. Reaction bookkeeping
// lives in EngagementService.
type PostService struct {
	postRepo repository.PostRepository
}

func NewPostService(postRepo repository.PostRepository) *PostService {
	return &PostService{postRepo: postRepo}
}

// Create creates a new post owned by the caller, with a server-assigned
// timestamp, zero likes and no replies.
func (s *PostService) Create(ctx context.Context, username string, req model.CreatePostRequest) (*model.Post, error) {
	if strings.TrimSpace(req.Name) == "" {
		return nil, model.ErrNameRequired
	}
	if strings.TrimSpace(req.Message) == "" {
		return nil, model.ErrMessageRequired
	}

	post, err := s.postRepo.Create(ctx, username, req.Name, req.Message)
	if err != nil {
		return nil, fmt.Errorf("create post: %w", err)
	}

	slog.Info("post created", "post", post.ID, "user", username)
	return post, nil
}

// GetByID retrieves a single post with its replies.
func (s *PostService) GetByID(ctx context.Context, postID int64) (*model.Post, error) {
	return s.postRepo.GetByID(ctx, postID)
}

// List returns all posts newest first. When a viewer is known, their own
// reaction is attached to each post with a single batch query.
func (s *PostService) List(ctx context.Context, viewer *string) ([]model.Post, error) {
	posts, err := s.postRepo.List(ctx)
	if err != nil {
		return nil, err
	}

	if viewer != nil {
		posts = s.attachViewerReactions(ctx, *viewer, posts)
	}

	return posts, nil
}

// ListByUser returns one user's posts, newest first.
func (s *PostService) ListByUser(ctx context.Context, username string) ([]model.Post, error) {
	return s.postRepo.ListByUser(ctx, username)
}

// ListUpvotedBy returns the posts a user currently up-reacts, newest first.
func (s *PostService) ListUpvotedBy(ctx context.Context, username string) ([]model.Post, error) {
	return s.postRepo.ListUpvotedBy(ctx, username)
}

// AddReply appends a reply to a post. Replies are immutable once created.
func (s *PostService) AddReply(ctx context.Context, postID int64, username string, req model.CreateReplyRequest) (*model.Reply, error) {
	if strings.TrimSpace(req.Message) == "" {
		return nil, model.ErrMessageRequired
	}

	exists, err := s.postRepo.Exists(ctx, postID)
	if err != nil {
		return nil, fmt.Errorf("check post exists: %w", err)
	}
	if !exists {
		return nil, model.ErrPostNotFound
	}

	reply, err := s.postRepo.AddReply(ctx, postID, username, req.Message)
	if err != nil {
		return nil, fmt.Errorf("add reply: %w", err)
	}

	return reply, nil
}

// attachViewerReactions batch-checks the viewer's reactions (one ANY query,
// not N+1) and maps them back onto the posts. A failed check degrades to
// posts without reaction markers rather than failing the request.
func (s *PostService) attachViewerReactions(ctx context.Context, viewer string, posts []model.Post) []model.Post {
	if len(posts) == 0 {
		return posts
	}

	postIDs := make([]int64, len(posts))
	for i, p := range posts {
		postIDs[i] = p.ID
	}

	reactions, err := s.postRepo.CheckReactions(ctx, viewer, postIDs)
	if err != nil {
		slog.Error("failed to check viewer reactions", "user", viewer, "error", err)
		return posts
	}

	for i := range posts {
		if reaction, ok := reactions[posts[i].ID]; ok {
			r := reaction
			posts[i].UserReaction = &r
		}
	}

	return posts
}
