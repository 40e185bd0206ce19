package repository

import (
	"context"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"github.com/Anuj1063/SDLC-Expence-Tracker/internal/model"
)

// BudgetUpdate carries the mutable budget fields for owner-scoped updates.
// Nil fields are left untouched.
type BudgetUpdate struct {
	Amount    *decimal.Decimal
	Frequency *model.BudgetFrequency
}

// BudgetRepository defines budget persistence operations.
type BudgetRepository interface {
	Upsert(ctx context.Context, budget *model.Budget) error
	FindByUserAndCategory(ctx context.Context, userID, categoryID uuid.UUID) (*model.Budget, error)
	ListByUser(ctx context.Context, userID uuid.UUID) ([]model.Budget, error)
	UpdateOwned(ctx context.Context, userID, id uuid.UUID, update BudgetUpdate) (int64, error)
	DeleteOwned(ctx context.Context, userID, id uuid.UUID) (int64, error)
}

type budgetRepository struct {
	db *gorm.DB
}

// NewBudgetRepository builds a GORM-backed repository.
func NewBudgetRepository(db *gorm.DB) BudgetRepository {
	return &budgetRepository{db: db}
}

// Upsert inserts the budget or, on a (user_id, category_id) conflict, updates
// amount and frequency in place. The database's atomic upsert makes
// concurrent identical set-budget calls last-writer-wins safe.
func (r *budgetRepository) Upsert(ctx context.Context, budget *model.Budget) error {
	return r.db.WithContext(ctx).Clauses(clause.OnConflict{
		Columns:   []clause.Column{{Name: "user_id"}, {Name: "category_id"}},
		DoUpdates: clause.AssignmentColumns([]string{"amount", "frequency", "updated_at"}),
	}).Create(budget).Error
}

func (r *budgetRepository) FindByUserAndCategory(ctx context.Context, userID, categoryID uuid.UUID) (*model.Budget, error) {
	var budget model.Budget
	if err := r.db.WithContext(ctx).
		Where("user_id = ? AND category_id = ?", userID, categoryID).
		First(&budget).Error; err != nil {
		return nil, err
	}
	return &budget, nil
}

func (r *budgetRepository) ListByUser(ctx context.Context, userID uuid.UUID) ([]model.Budget, error) {
	var budgets []model.Budget
	if err := r.db.WithContext(ctx).
		Preload("Category").
		Where("user_id = ?", userID).
		Find(&budgets).Error; err != nil {
		return nil, err
	}
	return budgets, nil
}

func (r *budgetRepository) UpdateOwned(ctx context.Context, userID, id uuid.UUID, update BudgetUpdate) (int64, error) {
	values := map[string]interface{}{}
	if update.Amount != nil {
		values["amount"] = *update.Amount
	}
	if update.Frequency != nil {
		values["frequency"] = *update.Frequency
	}
	if len(values) == 0 {
		return 0, nil
	}

	res := r.db.WithContext(ctx).Model(&model.Budget{}).
		Where("id = ? AND user_id = ?", id, userID).
		Updates(values)
	return res.RowsAffected, res.Error
}

func (r *budgetRepository) DeleteOwned(ctx context.Context, userID, id uuid.UUID) (int64, error) {
	res := r.db.WithContext(ctx).
		Where("id = ? AND user_id = ?", id, userID).
		Delete(&model.Budget{})
	return res.RowsAffected, res.Error
}
