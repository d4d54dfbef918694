package repository

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/jmoiron/sqlx"

	"islandfeed/internal/model"
)

type islanderRepository struct {
	db *sqlx.DB
}

func NewIslanderRepository(db *sqlx.DB) IslanderRepository {
	return &islanderRepository{db: db}
}

// List returns the whole cast catalog in entry order.
func (r *islanderRepository) List(ctx context.Context) ([]model.Islander, error) {
	query := `
		SELECT id, first_name, last_name, age, astrology_sign, hometown, episode_entered, episode_left, image
		FROM islanders
		ORDER BY episode_entered ASC, id ASC
	`

	var islanders []model.Islander
	if err := r.db.SelectContext(ctx, &islanders, query); err != nil {
		return nil, fmt.Errorf("failed to list islanders: %w", err)
	}
	if islanders == nil {
		islanders = []model.Islander{}
	}

	return islanders, nil
}

// GetByID retrieves one cast member.
func (r *islanderRepository) GetByID(ctx context.Context, id int64) (*model.Islander, error) {
	query := `
		SELECT id, first_name, last_name, age, astrology_sign, hometown, episode_entered, episode_left, image
		FROM islanders
		WHERE id = $1
	`

	var islander model.Islander
	err := r.db.GetContext(ctx, &islander, query, id)
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, model.ErrIslanderNotFound
		}
		return nil, fmt.Errorf("failed to get islander by id: %w", err)
	}

	return &islander, nil
}
