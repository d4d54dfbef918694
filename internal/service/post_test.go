package service

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"islandfeed/internal/model"
)

func TestPostService_Create_Validation(t *testing.T) {
	tests := []struct {
		name    string
		req     model.CreatePostRequest
		wantErr error
	}{
		{
			name:    "missing name",
			req:     model.CreatePostRequest{Name: "  ", Message: "hello"},
			wantErr: model.ErrNameRequired,
		},
		{
			name:    "missing message",
			req:     model.CreatePostRequest{Name: "Alice", Message: ""},
			wantErr: model.ErrMessageRequired,
		},
	}

	svc := NewPostService(&mockPostRepository{})
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := svc.Create(context.Background(), "alice", tt.req)
			assert.ErrorIs(t, err, tt.wantErr)
		})
	}
}

func TestPostService_Create(t *testing.T) {
	mockPosts := &mockPostRepository{
		createFn: func(ctx context.Context, username, name, message string) (*model.Post, error) {
			return &model.Post{
				ID:       1,
				Username: username,
				Name:     name,
				Message:  message,
				Likes:    0,
				Datetime: time.Now(),
				Replies:  []model.Reply{},
			}, nil
		},
	}
	svc := NewPostService(mockPosts)

	post, err := svc.Create(context.Background(), "alice", model.CreatePostRequest{
		Name:    "Alice",
		Message: "first post",
	})
	require.NoError(t, err)

	assert.Equal(t, "alice", post.Username)
	assert.Equal(t, 0, post.Likes)
	require.NotNil(t, post.Replies, "new post should have an empty reply list")
	assert.Empty(t, post.Replies)
}

func TestPostService_AddReply_PostNotFound(t *testing.T) {
	mockPosts := &mockPostRepository{
		existsFn: func(ctx context.Context, postID int64) (bool, error) {
			return false, nil
		},
	}
	svc := NewPostService(mockPosts)

	_, err := svc.AddReply(context.Background(), 99, "alice", model.CreateReplyRequest{Message: "hi"})
	assert.ErrorIs(t, err, model.ErrPostNotFound)
}

func TestPostService_AddReply_EmptyMessage(t *testing.T) {
	svc := NewPostService(&mockPostRepository{})

	_, err := svc.AddReply(context.Background(), 1, "alice", model.CreateReplyRequest{Message: "   "})
	assert.ErrorIs(t, err, model.ErrMessageRequired)
}

func TestPostService_List_AttachesViewerReactions(t *testing.T) {
	mockPosts := &mockPostRepository{
		listFn: func(ctx context.Context) ([]model.Post, error) {
			return []model.Post{{ID: 1}, {ID: 2}, {ID: 3}}, nil
		},
		checkReactionsFn: func(ctx context.Context, username string, postIDs []int64) (map[int64]model.Reaction, error) {
			assert.Equal(t, "alice", username)
			assert.Len(t, postIDs, 3, "reactions should be fetched in one batch")
			return map[int64]model.Reaction{
				1: model.ReactionUp,
				3: model.ReactionDown,
			}, nil
		},
	}
	svc := NewPostService(mockPosts)

	viewer := "alice"
	posts, err := svc.List(context.Background(), &viewer)
	require.NoError(t, err)

	require.NotNil(t, posts[0].UserReaction)
	assert.Equal(t, model.ReactionUp, *posts[0].UserReaction)
	assert.Nil(t, posts[1].UserReaction)
	require.NotNil(t, posts[2].UserReaction)
	assert.Equal(t, model.ReactionDown, *posts[2].UserReaction)
}

func TestPostService_List_Anonymous(t *testing.T) {
	checked := false
	mockPosts := &mockPostRepository{
		listFn: func(ctx context.Context) ([]model.Post, error) {
			return []model.Post{{ID: 1}}, nil
		},
		checkReactionsFn: func(ctx context.Context, username string, postIDs []int64) (map[int64]model.Reaction, error) {
			checked = true
			return nil, nil
		},
	}
	svc := NewPostService(mockPosts)

	posts, err := svc.List(context.Background(), nil)
	require.NoError(t, err)

	assert.False(t, checked, "anonymous listing should not look up reactions")
	assert.Nil(t, posts[0].UserReaction)
}

func TestPostService_List_ReactionCheckFailureDegrades(t *testing.T) {
	mockPosts := &mockPostRepository{
		listFn: func(ctx context.Context) ([]model.Post, error) {
			return []model.Post{{ID: 1}}, nil
		},
		checkReactionsFn: func(ctx context.Context, username string, postIDs []int64) (map[int64]model.Reaction, error) {
			return nil, errors.New("connection refused")
		},
	}
	svc := NewPostService(mockPosts)

	viewer := "alice"
	posts, err := svc.List(context.Background(), &viewer)
	require.NoError(t, err, "listing should survive a failed reaction check")
	require.Len(t, posts, 1)
	assert.Nil(t, posts[0].UserReaction, "no reaction should be attached when the check fails")
}
