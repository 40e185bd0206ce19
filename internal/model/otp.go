package model

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// OtpRecord is a short-lived email verification code tied to one user.
// Records are deleted after a successful verification and superseded on
// every resend, so at most one record exists per user at a time.
type OtpRecord struct {
	ID        uuid.UUID `json:"id" gorm:"type:char(36);primaryKey"`
	UserID    uuid.UUID `json:"user_id" gorm:"type:char(36);not null;index"`
	Code      string    `json:"-" gorm:"size:8;not null"`
	CreatedAt time.Time `json:"created_at"`

	// Relations
	User User `json:"-" gorm:"foreignKey:UserID"`
}

// BeforeCreate sets UUID before creating the record.
func (o *OtpRecord) BeforeCreate(tx *gorm.DB) error {
	if o.ID == uuid.Nil {
		o.ID = uuid.New()
	}
	return nil
}
