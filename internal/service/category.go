package service

import (
	"context"

	"go.uber.org/zap"

	"github.com/zizouhuweidi/trivia/internal/domain"
)

// CategoryService handles category lookups
type CategoryService struct {
	repo  domain.CategoryRepository
	cache CategoryCache
	log   *zap.Logger
}

// NewCategoryService creates a new category service. cache may be nil.
func NewCategoryService(repo domain.CategoryRepository, cache CategoryCache, log *zap.Logger) *CategoryService {
	return &CategoryService{
		repo:  repo,
		cache: cache,
		log:   log,
	}
}

// All returns every category ordered by id, possibly none
func (s *CategoryService) All(ctx context.Context) ([]domain.Category, error) {
	if s.cache != nil {
		categories, err := s.cache.GetCategories(ctx)
		if err == nil {
			return categories, nil
		}
		s.log.Debug("category cache unavailable", zap.Error(err))
	}

	categories, err := s.repo.List(ctx)
	if err != nil {
		return nil, err
	}

	if s.cache != nil && len(categories) > 0 {
		if err := s.cache.StoreCategories(ctx, categories); err != nil {
			// Log error but continue
			s.log.Warn("failed to cache categories", zap.Error(err))
		}
	}

	return categories, nil
}

// List returns every category ordered by id, or ErrCategoryNotFound when
// there are none
func (s *CategoryService) List(ctx context.Context) ([]domain.Category, error) {
	categories, err := s.All(ctx)
	if err != nil {
		return nil, err
	}
	if len(categories) == 0 {
		return nil, domain.ErrCategoryNotFound
	}
	return categories, nil
}

// Get retrieves one category by id
func (s *CategoryService) Get(ctx context.Context, id int) (*domain.Category, error) {
	return s.repo.GetByID(ctx, id)
}
