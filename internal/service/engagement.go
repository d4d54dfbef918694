package service

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/jmoiron/sqlx"

	"islandfeed/internal/model"
	"islandfeed/internal/repository"
)

// EngagementService owns the reaction bookkeeping on posts: the per-user
// reaction mapping and the aggregate likes counter move together inside one
// transaction.
type EngagementService struct {
	postRepo repository.PostRepository
	db       *sqlx.DB
}

func NewEngagementService(postRepo repository.PostRepository, db *sqlx.DB) *EngagementService {
	return &EngagementService{
		postRepo: postRepo,
		db:       db,
	}
}

// NextReaction applies the toggle/switch rules: requesting the reaction the
// user already has retracts it; anything else becomes the new state.
func NextReaction(prev, requested model.Reaction) model.Reaction {
	if requested == prev {
		return model.ReactionNone
	}
	return requested
}

// ApplyCounter recomputes the aggregate counter for a transition, as two
// reversible deltas: first retract the prior reaction, then apply the new one.
//
// The arithmetic is deliberately asymmetric, matching the historical
// behavior: retracting an up clamps the counter at zero, while applying a
// down decrements without a floor, so the counter can go negative
// (0 -> up -> 1 -> down -> -1).
func ApplyCounter(likes int, prev, next model.Reaction) int {
	switch prev {
	case model.ReactionUp:
		likes--
		if likes < 0 {
			likes = 0
		}
	case model.ReactionDown:
		likes++
	}

	switch next {
	case model.ReactionUp:
		likes++
	case model.ReactionDown:
		likes--
	}

	return likes
}

// React applies a requested reaction from a user to a post and returns the
// post's new counter alongside the caller's resulting reaction.
//
// The whole read-modify-write runs in one transaction with a row lock on the
// post, so concurrent reactions on the same post serialize instead of losing
// deltas.
func (s *EngagementService) React(ctx context.Context, postID int64, username string, requested model.Reaction) (*model.ReactionResult, error) {
	exists, err := s.postRepo.Exists(ctx, postID)
	if err != nil {
		return nil, fmt.Errorf("check post exists: %w", err)
	}
	if !exists {
		return nil, model.ErrPostNotFound
	}

	tx, err := s.db.BeginTxx(ctx, nil)
	if err != nil {
		return nil, fmt.Errorf("begin transaction: %w", err)
	}
	defer tx.Rollback()

	likes, err := s.postRepo.GetLikesForUpdate(ctx, tx, postID)
	if err != nil {
		return nil, err
	}

	prev, err := s.postRepo.GetReaction(ctx, tx, postID, username)
	if err != nil {
		return nil, err
	}

	next := NextReaction(prev, requested)
	likes = ApplyCounter(likes, prev, next)

	if next == model.ReactionNone {
		if err := s.postRepo.DeleteReaction(ctx, tx, postID, username); err != nil {
			return nil, err
		}
	} else {
		if err := s.postRepo.SetReaction(ctx, tx, postID, username, next); err != nil {
			return nil, err
		}
	}

	if err := s.postRepo.SetLikes(ctx, tx, postID, likes); err != nil {
		return nil, err
	}

	if err := tx.Commit(); err != nil {
		return nil, fmt.Errorf("commit transaction: %w", err)
	}

	slog.Debug("reaction applied",
		"post", postID, "user", username,
		"prev", string(prev), "next", string(next), "likes", likes)

	result := &model.ReactionResult{Likes: likes}
	if next != model.ReactionNone {
		result.UserReaction = &next
	}
	return result, nil
}
