package model

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// Category groups expenses. Default categories are shared across all users
// (UserID is nil) and can never be modified or deleted.
type Category struct {
	ID        uuid.UUID  `json:"id" gorm:"type:char(36);primaryKey"`
	UserID    *uuid.UUID `json:"user_id,omitempty" gorm:"type:char(36);index"`
	Name      string     `json:"name" gorm:"size:100;not null"`
	IsDefault bool       `json:"is_default" gorm:"default:false;index"`
	CreatedAt time.Time  `json:"created_at"`
	UpdatedAt time.Time  `json:"updated_at"`
}

// BeforeCreate sets UUID before creating the record.
func (c *Category) BeforeCreate(tx *gorm.DB) error {
	if c.ID == uuid.Nil {
		c.ID = uuid.New()
	}
	return nil
}
