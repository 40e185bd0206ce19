package service

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/Anuj1063/SDLC-Expence-Tracker/internal/cache"
	apperrors "github.com/Anuj1063/SDLC-Expence-Tracker/internal/errors"
	"github.com/Anuj1063/SDLC-Expence-Tracker/internal/model"
	"github.com/Anuj1063/SDLC-Expence-Tracker/internal/repository"
)

const (
	defaultCategoriesCacheKey = "categories:default"
	defaultCategoriesCacheTTL = 10 * time.Minute
)

// CategoryService handles category operations.
type CategoryService interface {
	Create(ctx context.Context, userID uuid.UUID, name string) (*model.Category, error)
	ListMine(ctx context.Context, userID uuid.UUID) ([]model.Category, error)
	ListDefaults(ctx context.Context) ([]model.Category, error)
	Delete(ctx context.Context, userID, categoryID uuid.UUID) error
}

type categoryService struct {
	repo  repository.CategoryRepository
	cache *cache.Client
}

// NewCategoryService creates a new category service.
func NewCategoryService(repo repository.CategoryRepository, cache *cache.Client) CategoryService {
	return &categoryService{repo: repo, cache: cache}
}

// Create adds a user-owned category. Duplicate names per user are rejected.
func (s *categoryService) Create(ctx context.Context, userID uuid.UUID, name string) (*model.Category, error) {
	existing, err := s.repo.FindByUserAndName(ctx, userID, name)
	if err != nil && err != gorm.ErrRecordNotFound {
		return nil, fmt.Errorf("check category existence: %w", err)
	}
	if existing != nil {
		return nil, apperrors.ErrCategoryExists
	}

	category := &model.Category{
		UserID:    &userID,
		Name:      name,
		IsDefault: false,
	}
	if err := s.repo.Create(ctx, category); err != nil {
		return nil, fmt.Errorf("create category: %w", err)
	}
	return category, nil
}

func (s *categoryService) ListMine(ctx context.Context, userID uuid.UUID) ([]model.Category, error) {
	return s.repo.ListByUser(ctx, userID)
}

// ListDefaults returns the shared default categories, cached since the set
// only changes when the seed command runs.
func (s *categoryService) ListDefaults(ctx context.Context) ([]model.Category, error) {
	var cached []model.Category
	if s.cache.GetJSON(ctx, defaultCategoriesCacheKey, &cached) {
		return cached, nil
	}

	categories, err := s.repo.ListDefaults(ctx)
	if err != nil {
		return nil, fmt.Errorf("list default categories: %w", err)
	}
	s.cache.SetJSON(ctx, defaultCategoriesCacheKey, categories, defaultCategoriesCacheTTL)
	return categories, nil
}

// Delete removes a user-owned category. Default categories and categories
// owned by someone else are protected. Budgets for the category are removed
// with it; expenses keep their rows with the category link cleared.
func (s *categoryService) Delete(ctx context.Context, userID, categoryID uuid.UUID) error {
	category, err := s.repo.FindByID(ctx, categoryID)
	if err != nil {
		if err == gorm.ErrRecordNotFound {
			return apperrors.ErrCategoryNotFound
		}
		return fmt.Errorf("find category: %w", err)
	}

	if category.IsDefault || category.UserID == nil || *category.UserID != userID {
		return apperrors.ErrCategoryProtected
	}

	if err := s.repo.Delete(ctx, categoryID); err != nil {
		return fmt.Errorf("delete category: %w", err)
	}
	return nil
}
