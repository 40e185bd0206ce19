package service

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"

	apperrors "github.com/Anuj1063/SDLC-Expence-Tracker/internal/errors"
	"github.com/Anuj1063/SDLC-Expence-Tracker/internal/model"
	"github.com/Anuj1063/SDLC-Expence-Tracker/internal/repository"
)

// AddExpenseInput carries the fields needed to record an expense.
type AddExpenseInput struct {
	CategoryID uuid.UUID
	Amount     decimal.Decimal
	Date       time.Time
	Note       string
}

// BudgetEvaluation is the advisory result of checking a proposed expense
// against the category's budget for the month.
type BudgetEvaluation struct {
	WillExceed   bool            `json:"budget_exceeded"`
	CurrentTotal decimal.Decimal `json:"current_total"`
	Limit        decimal.Decimal `json:"budget_limit"`
}

// ExpenseService handles expense operations and budget evaluation.
type ExpenseService interface {
	Add(ctx context.Context, userID uuid.UUID, in AddExpenseInput) (*model.Expense, *BudgetEvaluation, error)
	Evaluate(ctx context.Context, userID, categoryID uuid.UUID, proposedAmount decimal.Decimal, asOf time.Time) (*BudgetEvaluation, error)
	List(ctx context.Context, userID uuid.UUID, filter repository.ExpenseFilter) ([]model.Expense, error)
	Update(ctx context.Context, userID, expenseID uuid.UUID, update repository.ExpenseUpdate) error
	Delete(ctx context.Context, userID, expenseID uuid.UUID) error
}

type expenseService struct {
	expenseRepo repository.ExpenseRepository
	budgetRepo  repository.BudgetRepository
}

// NewExpenseService creates a new expense service.
func NewExpenseService(expenseRepo repository.ExpenseRepository, budgetRepo repository.BudgetRepository) ExpenseService {
	return &expenseService{
		expenseRepo: expenseRepo,
		budgetRepo:  budgetRepo,
	}
}

// Evaluate computes month-to-date spend for the category and compares the
// proposed expense against the configured limit. A missing budget counts as
// a limit of zero; an empty month sums to zero. The check is side-effect-free
// and purely advisory.
func (s *expenseService) Evaluate(ctx context.Context, userID, categoryID uuid.UUID, proposedAmount decimal.Decimal, asOf time.Time) (*BudgetEvaluation, error) {
	start, end := monthWindow(asOf)

	spent, err := s.expenseRepo.SumForPeriod(ctx, userID, categoryID, start, end)
	if err != nil {
		return nil, fmt.Errorf("sum month-to-date spend: %w", err)
	}

	limit := decimal.Zero
	budget, err := s.budgetRepo.FindByUserAndCategory(ctx, userID, categoryID)
	if err != nil && err != gorm.ErrRecordNotFound {
		return nil, fmt.Errorf("find budget: %w", err)
	}
	if budget != nil {
		limit = budget.Amount
	}

	currentTotal := spent.Add(proposedAmount)
	return &BudgetEvaluation{
		WillExceed:   currentTotal.GreaterThan(limit),
		CurrentTotal: currentTotal,
		Limit:        limit,
	}, nil
}

// Add evaluates the proposed expense against the budget, then persists it
// regardless of the outcome. Exceeding a budget warns, it never blocks.
func (s *expenseService) Add(ctx context.Context, userID uuid.UUID, in AddExpenseInput) (*model.Expense, *BudgetEvaluation, error) {
	date := in.Date
	if date.IsZero() {
		date = time.Now()
	}

	evaluation, err := s.Evaluate(ctx, userID, in.CategoryID, in.Amount, date)
	if err != nil {
		return nil, nil, err
	}

	expense := &model.Expense{
		UserID:     userID,
		CategoryID: &in.CategoryID,
		Amount:     in.Amount,
		Date:       date,
		Note:       in.Note,
	}
	if err := s.expenseRepo.Create(ctx, expense); err != nil {
		return nil, nil, fmt.Errorf("create expense: %w", err)
	}

	return expense, evaluation, nil
}

// List returns the caller's expenses narrowed by the filter.
func (s *expenseService) List(ctx context.Context, userID uuid.UUID, filter repository.ExpenseFilter) ([]model.Expense, error) {
	return s.expenseRepo.List(ctx, userID, filter)
}

// Update mutates an owned expense by id. An update carrying no fields is a
// no-op, not a miss.
func (s *expenseService) Update(ctx context.Context, userID, expenseID uuid.UUID, update repository.ExpenseUpdate) error {
	if update == (repository.ExpenseUpdate{}) {
		return nil
	}
	affected, err := s.expenseRepo.UpdateOwned(ctx, userID, expenseID, update)
	if err != nil {
		return fmt.Errorf("update expense: %w", err)
	}
	if affected == 0 {
		return apperrors.ErrExpenseNotFound
	}
	return nil
}

// Delete removes an owned expense by id.
func (s *expenseService) Delete(ctx context.Context, userID, expenseID uuid.UUID) error {
	affected, err := s.expenseRepo.DeleteOwned(ctx, userID, expenseID)
	if err != nil {
		return fmt.Errorf("delete expense: %w", err)
	}
	if affected == 0 {
		return apperrors.ErrExpenseNotFound
	}
	return nil
}

// monthWindow returns the half-open [start, end) interval covering the
// calendar month that contains t.
func monthWindow(t time.Time) (time.Time, time.Time) {
	start := time.Date(t.Year(), t.Month(), 1, 0, 0, 0, 0, t.Location())
	return start, start.AddDate(0, 1, 0)
}
