package service

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/Anuj1063/SDLC-Expence-Tracker/internal/cache"
	apperrors "github.com/Anuj1063/SDLC-Expence-Tracker/internal/errors"
	"github.com/Anuj1063/SDLC-Expence-Tracker/internal/model"
	"github.com/Anuj1063/SDLC-Expence-Tracker/internal/repository"
)

const budgetListCacheTTL = 5 * time.Minute

// BudgetService handles budget operations. Set is an upsert on the
// (user, category) pair, so re-issuing it updates the limit in place.
type BudgetService interface {
	Set(ctx context.Context, userID, categoryID uuid.UUID, amount decimal.Decimal, frequency model.BudgetFrequency) (*model.Budget, error)
	List(ctx context.Context, userID uuid.UUID) ([]model.Budget, error)
	Update(ctx context.Context, userID, budgetID uuid.UUID, update repository.BudgetUpdate) error
	Delete(ctx context.Context, userID, budgetID uuid.UUID) error
}

type budgetService struct {
	repo  repository.BudgetRepository
	cache *cache.Client
}

// NewBudgetService creates a new budget service.
func NewBudgetService(repo repository.BudgetRepository, cache *cache.Client) BudgetService {
	return &budgetService{repo: repo, cache: cache}
}

func (s *budgetService) cacheKey(userID uuid.UUID) string {
	return fmt.Sprintf("budgets:%s", userID.String())
}

// Set upserts the budget for the (user, category) pair and returns the
// persisted row.
func (s *budgetService) Set(ctx context.Context, userID, categoryID uuid.UUID, amount decimal.Decimal, frequency model.BudgetFrequency) (*model.Budget, error) {
	if frequency == "" {
		frequency = model.BudgetFrequencyMonthly
	}

	budget := &model.Budget{
		UserID:     userID,
		CategoryID: categoryID,
		Amount:     amount,
		Frequency:  frequency,
	}
	if err := s.repo.Upsert(ctx, budget); err != nil {
		return nil, fmt.Errorf("upsert budget: %w", err)
	}
	_ = s.cache.Delete(ctx, s.cacheKey(userID))

	// Re-read so the caller sees the surviving row rather than the
	// insert candidate discarded on conflict.
	persisted, err := s.repo.FindByUserAndCategory(ctx, userID, categoryID)
	if err != nil {
		return nil, fmt.Errorf("load budget: %w", err)
	}
	return persisted, nil
}

// List returns the caller's budgets with their categories, cached per user.
func (s *budgetService) List(ctx context.Context, userID uuid.UUID) ([]model.Budget, error) {
	var cached []model.Budget
	if s.cache.GetJSON(ctx, s.cacheKey(userID), &cached) {
		return cached, nil
	}

	budgets, err := s.repo.ListByUser(ctx, userID)
	if err != nil {
		return nil, fmt.Errorf("list budgets: %w", err)
	}
	s.cache.SetJSON(ctx, s.cacheKey(userID), budgets, budgetListCacheTTL)
	return budgets, nil
}

// Update mutates an owned budget by id. A miss on the ownership-scoped query
// is reported as not found; an update carrying no fields is a no-op.
func (s *budgetService) Update(ctx context.Context, userID, budgetID uuid.UUID, update repository.BudgetUpdate) error {
	if update == (repository.BudgetUpdate{}) {
		return nil
	}
	affected, err := s.repo.UpdateOwned(ctx, userID, budgetID, update)
	if err != nil {
		return fmt.Errorf("update budget: %w", err)
	}
	if affected == 0 {
		return apperrors.ErrBudgetNotFound
	}
	_ = s.cache.Delete(ctx, s.cacheKey(userID))
	return nil
}

// Delete removes an owned budget by id.
func (s *budgetService) Delete(ctx context.Context, userID, budgetID uuid.UUID) error {
	affected, err := s.repo.DeleteOwned(ctx, userID, budgetID)
	if err != nil {
		return fmt.Errorf("delete budget: %w", err)
	}
	if affected == 0 {
		return apperrors.ErrBudgetNotFound
	}
	_ = s.cache.Delete(ctx, s.cacheKey(userID))
	return nil
}
