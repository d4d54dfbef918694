package service

import (
	"context"

	"islandfeed/internal/model"
	"islandfeed/internal/repository"
)

// IslanderService serves the read-only cast catalog.
type IslanderService struct {
	repo repository.IslanderRepository
}

func NewIslanderService(repo repository.IslanderRepository) *IslanderService {
	return &IslanderService{repo: repo}
}

func (s *IslanderService) List(ctx context.Context) ([]model.Islander, error) {
	return s.repo.List(ctx)
}

func (s *IslanderService) GetByID(ctx context.Context, id int64) (*model.Islander, error) {
	return s.repo.GetByID(ctx, id)
}
