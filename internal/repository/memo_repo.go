package repository

import (
	"backoffice/internal/model"
	"context"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// MemoTemplateRepository defines the interface for data access of memo templates.
// Listings are always sorted by name, matching the registry's display order.
type MemoTemplateRepository interface {
	Create(ctx context.Context, memo *model.MemoTemplate) error
	Update(ctx context.Context, memo *model.MemoTemplate) error
	Delete(ctx context.Context, id uuid.UUID) error
	FindByID(ctx context.Context, id uuid.UUID) (*model.MemoTemplate, error)
	ListByName(ctx context.Context) ([]model.MemoTemplate, error)
}

type memoTemplateRepository struct {
	db *gorm.DB
}

// NewMemoTemplateRepository returns a new instance of MemoTemplateRepository
func NewMemoTemplateRepository(db *gorm.DB) MemoTemplateRepository {
	return &memoTemplateRepository{db: db}
}

func (r *memoTemplateRepository) Create(ctx context.Context, memo *model.MemoTemplate) error {
	return GetDB(ctx, r.db).Create(memo).Error
}

func (r *memoTemplateRepository) Update(ctx context.Context, memo *model.MemoTemplate) error {
	return GetDB(ctx, r.db).Save(memo).Error
}

func (r *memoTemplateRepository) Delete(ctx context.Context, id uuid.UUID) error {
	return GetDB(ctx, r.db).Where("id = ?", id).Delete(&model.MemoTemplate{}).Error
}

func (r *memoTemplateRepository) FindByID(ctx context.Context, id uuid.UUID) (*model.MemoTemplate, error) {
	var memo model.MemoTemplate
	if err := GetDB(ctx, r.db).First(&memo, "id = ?", id).Error; err != nil {
		return nil, err
	}
	return &memo, nil
}

func (r *memoTemplateRepository) ListByName(ctx context.Context) ([]model.MemoTemplate, error) {
	var memos []model.MemoTemplate
	if err := GetDB(ctx, r.db).Order("name asc").Find(&memos).Error; err != nil {
		return nil, err
	}
	return memos, nil
}
