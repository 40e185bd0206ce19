package model

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

// BudgetFrequency describes the period a budget limit covers.
type BudgetFrequency string

const (
	BudgetFrequencyMonthly BudgetFrequency = "monthly"
	BudgetFrequencyWeekly  BudgetFrequency = "weekly"
	BudgetFrequencyYearly  BudgetFrequency = "yearly"
)

// Budget holds the spend limit for one (user, category) pair. The unique
// index backs the set-budget upsert: re-issuing set-budget for the same pair
// updates the row in place. Budget rows are removed together with their
// category.
type Budget struct {
	ID         uuid.UUID       `json:"id" gorm:"type:char(36);primaryKey"`
	UserID     uuid.UUID       `json:"user_id" gorm:"type:char(36);not null;uniqueIndex:idx_budget_user_category"`
	CategoryID uuid.UUID       `json:"category_id" gorm:"type:char(36);not null;uniqueIndex:idx_budget_user_category"`
	Amount     decimal.Decimal `json:"amount" gorm:"type:decimal(20,2);not null"`
	Frequency  BudgetFrequency `json:"frequency" gorm:"type:varchar(20);not null;default:'monthly'"`
	CreatedAt  time.Time       `json:"created_at"`
	UpdatedAt  time.Time       `json:"updated_at"`

	// Relations
	Category Category `json:"category,omitempty" gorm:"foreignKey:CategoryID;constraint:OnDelete:CASCADE"`
}

// BeforeCreate sets UUID before creating the record.
func (b *Budget) BeforeCreate(tx *gorm.DB) error {
	if b.ID == uuid.Nil {
		b.ID = uuid.New()
	}
	return nil
}
