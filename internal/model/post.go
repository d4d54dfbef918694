package model

import (
	"errors"
	"time"
)

// Post is a feed entry owned by one user (by username). The likes counter is
// maintained by the reaction bookkeeping in the engagement service; it can go
// negative, see Reaction.
type Post struct {
	ID        int64     `db:"id" json:"id"`
	Username  string    `db:"username" json:"username"`
	Name      string    `db:"name" json:"name"`
	Message   string    `db:"message" json:"message"`
	Likes     int       `db:"likes" json:"likes"`
	Datetime  time.Time `db:"datetime" json:"datetime"`

	// Joined fields (not columns on the posts table)
	Replies      []Reply   `json:"replies"`
	UserReaction *Reaction `json:"userReaction,omitempty"`
}

// Reply is an append-only element embedded in a post's thread. Replies are
// never edited or removed once created.
type Reply struct {
	ID       int64     `db:"id" json:"id"`
	PostID   int64     `db:"post_id" json:"-"`
	Username string    `db:"username" json:"username"`
	Message  string    `db:"message" json:"message"`
	Datetime time.Time `db:"datetime" json:"datetime"`
}

// CreatePostRequest is the request body for creating a post.
type CreatePostRequest struct {
	Name    string `json:"name"`
	Message string `json:"message"`
}

// CreateReplyRequest is the request body for appending a reply.
type CreateReplyRequest struct {
	Message string `json:"message"`
}

// Post errors
var (
	ErrPostNotFound    = errors.New("post not found")
	ErrNameRequired    = errors.New("name is required")
	ErrMessageRequired = errors.New("message is required")
)
