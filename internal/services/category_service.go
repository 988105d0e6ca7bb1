package services

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog"

	"stockflow/internal/caching"
	"stockflow/internal/common"
	"stockflow/internal/models"
	"stockflow/internal/repositories"
)

const categoryCacheTTL = 30 * time.Minute

type CategoryService interface {
	Create(ctx context.Context, category *models.Category) error
	GetByID(ctx context.Context, id uuid.UUID) (*models.Category, error)
	Update(ctx context.Context, category *models.Category) error
	Delete(ctx context.Context, id uuid.UUID) error
	List(ctx context.Context, limit, offset int) ([]*models.Category, error)
}

type categoryService struct {
	categoryRepo repositories.CategoryRepository
	cache        caching.CacheService
	log          zerolog.Logger
}

func NewCategoryService(categoryRepo repositories.CategoryRepository, cache caching.CacheService, log zerolog.Logger) CategoryService {
	return &categoryService{categoryRepo: categoryRepo, cache: cache, log: log}
}

func (s *categoryService) Create(ctx context.Context, category *models.Category) error {
	if category.Name == "" {
		return common.NewValidationError("name", "This field is required")
	}
	if category.ParentID != nil {
		if _, err := s.categoryRepo.GetByID(ctx, *category.ParentID); err != nil {
			if repositories.IsNoRows(err) {
				return common.NewNotFoundError("Parent category")
			}
			return common.NewInventoryError("failed to check parent category", err)
		}
	}
	category.ID = uuid.New()
	if err := s.categoryRepo.Create(ctx, category); err != nil {
		return common.NewInventoryError("failed to create category", err)
	}
	return nil
}

func (s *categoryService) GetByID(ctx context.Context, id uuid.UUID) (*models.Category, error) {
	if cached, err := s.cache.GetCategory(ctx, id); err == nil && cached != nil {
		return cached, nil
	}
	category, err := s.categoryRepo.GetByID(ctx, id)
	if err != nil {
		if repositories.IsNoRows(err) {
			return nil, common.NewNotFoundError("Category")
		}
		return nil, common.NewInventoryError("failed to fetch category", err)
	}
	if err := s.cache.SetCategory(ctx, category, categoryCacheTTL); err != nil {
		s.log.Warn().Err(err).Str("category_id", id.String()).Msg("category cache write failed")
	}
	return category, nil
}

func (s *categoryService) Update(ctx context.Context, category *models.Category) error {
	if category.Name == "" {
		return common.NewValidationError("name", "This field is required")
	}
	if category.ParentID != nil && *category.ParentID == category.ID {
		return common.NewValidationError("parent_id", "A category cannot be its own parent")
	}
	if err := s.categoryRepo.Update(ctx, category); err != nil {
		return common.NewInventoryError("failed to update category", err)
	}
	if err := s.cache.DeleteCategory(ctx, category.ID); err != nil {
		s.log.Warn().Err(err).Str("category_id", category.ID.String()).Msg("category cache invalidation failed")
	}
	return nil
}

func (s *categoryService) Delete(ctx context.Context, id uuid.UUID) error {
	if err := s.categoryRepo.Delete(ctx, id); err != nil {
		if repositories.IsForeignKeyViolation(err) {
			return common.NewBusinessRuleError("Category is referenced by products and cannot be deleted")
		}
		return common.NewInventoryError("failed to delete category", err)
	}
	if err := s.cache.DeleteCategory(ctx, id); err != nil {
		s.log.Warn().Err(err).Str("category_id", id.String()).Msg("category cache invalidation failed")
	}
	return nil
}

func (s *categoryService) List(ctx context.Context, limit, offset int) ([]*models.Category, error) {
	return s.categoryRepo.List(ctx, limit, offset)
}
