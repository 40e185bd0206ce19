package repository

import (
	"context"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/Anuj1063/SDLC-Expence-Tracker/internal/model"
)

// CategoryRepository defines category persistence operations.
type CategoryRepository interface {
	Create(ctx context.Context, category *model.Category) error
	FindByID(ctx context.Context, id uuid.UUID) (*model.Category, error)
	FindByUserAndName(ctx context.Context, userID uuid.UUID, name string) (*model.Category, error)
	ListByUser(ctx context.Context, userID uuid.UUID) ([]model.Category, error)
	ListDefaults(ctx context.Context) ([]model.Category, error)
	Delete(ctx context.Context, id uuid.UUID) error
	FirstOrCreateDefault(ctx context.Context, name string) (*model.Category, bool, error)
}

type categoryRepository struct {
	db *gorm.DB
}

// NewCategoryRepository builds a GORM-backed repository.
func NewCategoryRepository(db *gorm.DB) CategoryRepository {
	return &categoryRepository{db: db}
}

func (r *categoryRepository) Create(ctx context.Context, category *model.Category) error {
	return r.db.WithContext(ctx).Create(category).Error
}

func (r *categoryRepository) FindByID(ctx context.Context, id uuid.UUID) (*model.Category, error) {
	var category model.Category
	if err := r.db.WithContext(ctx).Where("id = ?", id).First(&category).Error; err != nil {
		return nil, err
	}
	return &category, nil
}

func (r *categoryRepository) FindByUserAndName(ctx context.Context, userID uuid.UUID, name string) (*model.Category, error) {
	var category model.Category
	if err := r.db.WithContext(ctx).
		Where("user_id = ? AND name = ?", userID, name).
		First(&category).Error; err != nil {
		return nil, err
	}
	return &category, nil
}

func (r *categoryRepository) ListByUser(ctx context.Context, userID uuid.UUID) ([]model.Category, error) {
	var categories []model.Category
	if err := r.db.WithContext(ctx).Where("user_id = ?", userID).Find(&categories).Error; err != nil {
		return nil, err
	}
	return categories, nil
}

func (r *categoryRepository) ListDefaults(ctx context.Context) ([]model.Category, error) {
	var categories []model.Category
	if err := r.db.WithContext(ctx).Where("is_default = ?", true).Find(&categories).Error; err != nil {
		return nil, err
	}
	return categories, nil
}

func (r *categoryRepository) Delete(ctx context.Context, id uuid.UUID) error {
	return r.db.WithContext(ctx).Where("id = ?", id).Delete(&model.Category{}).Error
}

// FirstOrCreateDefault returns the shared default category with the given
// name, creating it if missing. It reports whether a row was created.
// Used by the seed command.
func (r *categoryRepository) FirstOrCreateDefault(ctx context.Context, name string) (*model.Category, bool, error) {
	var category model.Category
	res := r.db.WithContext(ctx).
		Where("name = ? AND is_default = ?", name, true).
		FirstOrCreate(&category, model.Category{Name: name, IsDefault: true})
	if res.Error != nil {
		return nil, false, res.Error
	}
	return &category, res.RowsAffected > 0, nil
}
