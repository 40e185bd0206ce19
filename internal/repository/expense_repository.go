package repository

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"

	"github.com/Anuj1063/SDLC-Expence-Tracker/internal/model"
)

// ExpenseFilter narrows an expense listing. All bounds are inclusive and
// independently applicable.
type ExpenseFilter struct {
	From       *time.Time
	To         *time.Time
	CategoryID *uuid.UUID
	MinAmount  *decimal.Decimal
	MaxAmount  *decimal.Decimal
}

// ExpenseUpdate carries the mutable expense fields for owner-scoped updates.
// Nil fields are left untouched.
type ExpenseUpdate struct {
	Amount     *decimal.Decimal
	CategoryID *uuid.UUID
	Date       *time.Time
	Note       *string
}

// ExpenseRepository defines expense persistence operations.
type ExpenseRepository interface {
	Create(ctx context.Context, expense *model.Expense) error
	List(ctx context.Context, userID uuid.UUID, filter ExpenseFilter) ([]model.Expense, error)
	SumForPeriod(ctx context.Context, userID, categoryID uuid.UUID, start, end time.Time) (decimal.Decimal, error)
	UpdateOwned(ctx context.Context, userID, id uuid.UUID, update ExpenseUpdate) (int64, error)
	DeleteOwned(ctx context.Context, userID, id uuid.UUID) (int64, error)
}

type expenseRepository struct {
	db *gorm.DB
}

// NewExpenseRepository builds a GORM-backed repository.
func NewExpenseRepository(db *gorm.DB) ExpenseRepository {
	return &expenseRepository{db: db}
}

func (r *expenseRepository) Create(ctx context.Context, expense *model.Expense) error {
	return r.db.WithContext(ctx).Create(expense).Error
}

func (r *expenseRepository) List(ctx context.Context, userID uuid.UUID, filter ExpenseFilter) ([]model.Expense, error) {
	q := r.db.WithContext(ctx).Preload("Category").Where("user_id = ?", userID)

	if filter.From != nil {
		q = q.Where("date >= ?", *filter.From)
	}
	if filter.To != nil {
		q = q.Where("date <= ?", *filter.To)
	}
	if filter.CategoryID != nil {
		q = q.Where("category_id = ?", *filter.CategoryID)
	}
	if filter.MinAmount != nil {
		q = q.Where("amount >= ?", *filter.MinAmount)
	}
	if filter.MaxAmount != nil {
		q = q.Where("amount <= ?", *filter.MaxAmount)
	}

	var expenses []model.Expense
	if err := q.Order("date DESC").Find(&expenses).Error; err != nil {
		return nil, err
	}
	return expenses, nil
}

// SumForPeriod aggregates spend for one (user, category) within [start, end).
// An empty result set sums to zero.
func (r *expenseRepository) SumForPeriod(ctx context.Context, userID, categoryID uuid.UUID, start, end time.Time) (decimal.Decimal, error) {
	var total decimal.Decimal
	row := r.db.WithContext(ctx).Model(&model.Expense{}).
		Select("COALESCE(SUM(amount), 0)").
		Where("user_id = ? AND category_id = ? AND date >= ? AND date < ?", userID, categoryID, start, end).
		Row()
	if err := row.Scan(&total); err != nil {
		return decimal.Zero, err
	}
	return total, nil
}

func (r *expenseRepository) UpdateOwned(ctx context.Context, userID, id uuid.UUID, update ExpenseUpdate) (int64, error) {
	values := map[string]interface{}{}
	if update.Amount != nil {
		values["amount"] = *update.Amount
	}
	if update.CategoryID != nil {
		values["category_id"] = *update.CategoryID
	}
	if update.Date != nil {
		values["date"] = *update.Date
	}
	if update.Note != nil {
		values["note"] = *update.Note
	}
	if len(values) == 0 {
		return 0, nil
	}

	res := r.db.WithContext(ctx).Model(&model.Expense{}).
		Where("id = ? AND user_id = ?", id, userID).
		Updates(values)
	return res.RowsAffected, res.Error
}

func (r *expenseRepository) DeleteOwned(ctx context.Context, userID, id uuid.UUID) (int64, error) {
	res := r.db.WithContext(ctx).
		Where("id = ? AND user_id = ?", id, userID).
		Delete(&model.Expense{})
	return res.RowsAffected, res.Error
}
