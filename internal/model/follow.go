package model

import (
	"errors"
	"time"
)

// Follow is one directed edge in the follow graph. Both the follower and
// following views of a user are derived from this single relation, so the
// two sides can never disagree.
type Follow struct {
	Follower  string    `db:"follower" json:"follower"`
	Followee  string    `db:"followee" json:"followee"`
	CreatedAt time.Time `db:"created_at" json:"created_at"`
}

var (
	// ErrCannotFollowSelf is returned when a user tries to follow themselves
	ErrCannotFollowSelf = errors.New("cannot follow yourself")

	// ErrCannotUnfollowSelf is returned when a user tries to unfollow themselves
	ErrCannotUnfollowSelf = errors.New("cannot unfollow yourself")
)
