package repository

import (
	"context"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/Anuj1063/SDLC-Expence-Tracker/internal/model"
)

// OtpRepository defines OTP record persistence operations.
type OtpRepository interface {
	Create(ctx context.Context, record *model.OtpRecord) error
	FindByUserAndCode(ctx context.Context, userID uuid.UUID, code string) (*model.OtpRecord, error)
	DeleteByUser(ctx context.Context, userID uuid.UUID) error
}

type otpRepository struct {
	db *gorm.DB
}

// NewOtpRepository builds a GORM-backed repository.
func NewOtpRepository(db *gorm.DB) OtpRepository {
	return &otpRepository{db: db}
}

func (r *otpRepository) Create(ctx context.Context, record *model.OtpRecord) error {
	return r.db.WithContext(ctx).Create(record).Error
}

func (r *otpRepository) FindByUserAndCode(ctx context.Context, userID uuid.UUID, code string) (*model.OtpRecord, error) {
	var record model.OtpRecord
	if err := r.db.WithContext(ctx).
		Where("user_id = ? AND code = ?", userID, code).
		First(&record).Error; err != nil {
		return nil, err
	}
	return &record, nil
}

func (r *otpRepository) DeleteByUser(ctx context.Context, userID uuid.UUID) error {
	return r.db.WithContext(ctx).Where("user_id = ?", userID).Delete(&model.OtpRecord{}).Error
}
