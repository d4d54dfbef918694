package service

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/jmoiron/sqlx"

	"islandfeed/internal/model"
	"islandfeed/internal/repository"
)

// FollowService maintains the symmetric follow relation. Each follow or
// unfollow updates both views of the edge inside a single transaction, so a
// user's followers list and the other side's following list cannot diverge.
type FollowService struct {
	followRepo repository.FollowRepository
	userRepo   repository.UserRepository
	db         *sqlx.DB
}

func NewFollowService(
	followRepo repository.FollowRepository,
	userRepo repository.UserRepository,
	db *sqlx.DB,
) *FollowService {
	return &FollowService{
		followRepo: followRepo,
		userRepo:   userRepo,
		db:         db,
	}
}

// Follow makes actor follow target. Following a user twice is a no-op that
// still reports success.
func (s *FollowService) Follow(ctx context.Context, actor, target string) error {
	if actor == target {
		return model.ErrCannotFollowSelf
	}

	if err := s.checkBothExist(ctx, actor, target); err != nil {
		return err
	}

	tx, err := s.db.BeginTxx(ctx, nil)
	if err != nil {
		return fmt.Errorf("begin transaction: %w", err)
	}
	defer tx.Rollback()

	inserted, err := s.followRepo.Create(ctx, tx, actor, target)
	if err != nil {
		return err
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("commit transaction: %w", err)
	}

	if inserted {
		slog.Info("follow created", "actor", actor, "target", target)
	}
	return nil
}

// Unfollow removes the edge. Unfollowing a user who was never followed is a
// no-op success.
func (s *FollowService) Unfollow(ctx context.Context, actor, target string) error {
	if actor == target {
		return model.ErrCannotUnfollowSelf
	}

	if err := s.checkBothExist(ctx, actor, target); err != nil {
		return err
	}

	tx, err := s.db.BeginTxx(ctx, nil)
	if err != nil {
		return fmt.Errorf("begin transaction: %w", err)
	}
	defer tx.Rollback()

	removed, err := s.followRepo.Delete(ctx, tx, actor, target)
	if err != nil {
		return err
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("commit transaction: %w", err)
	}

	if removed {
		slog.Info("follow removed", "actor", actor, "target", target)
	}
	return nil
}

func (s *FollowService) checkBothExist(ctx context.Context, actor, target string) error {
	for _, username := range []string{actor, target} {
		exists, err := s.userRepo.ExistsByUsername(ctx, username)
		if err != nil {
			return fmt.Errorf("check user %q: %w", username, err)
		}
		if !exists {
			return model.ErrUserNotFound
		}
	}
	return nil
}
