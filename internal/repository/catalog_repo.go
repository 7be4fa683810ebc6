package repository

import (
	"backoffice/internal/model"
	"context"

	"gorm.io/gorm"
)

// LineItemCatalogRepository reads the line-item catalog that seeds new draft
// rows. The catalog is read-only at runtime; rows come from seeding.
type LineItemCatalogRepository interface {
	List(ctx context.Context, category string) ([]model.LineItemCatalogEntry, error)
	Count(ctx context.Context) (int64, error)
	InsertBatch(ctx context.Context, entries []model.LineItemCatalogEntry) error
}

type lineItemCatalogRepository struct {
	db *gorm.DB
}

// NewLineItemCatalogRepository returns a new instance of LineItemCatalogRepository
func NewLineItemCatalogRepository(db *gorm.DB) LineItemCatalogRepository {
	return &lineItemCatalogRepository{db: db}
}

func (r *lineItemCatalogRepository) List(ctx context.Context, category string) ([]model.LineItemCatalogEntry, error) {
	var entries []model.LineItemCatalogEntry
	db := GetDB(ctx, r.db)
	if category != "" {
		db = db.Where("category = ?", category)
	}
	if err := db.Order("name asc").Find(&entries).Error; err != nil {
		return nil, err
	}
	return entries, nil
}

func (r *lineItemCatalogRepository) Count(ctx context.Context) (int64, error) {
	var count int64
	err := GetDB(ctx, r.db).Model(&model.LineItemCatalogEntry{}).Count(&count).Error
	return count, err
}

func (r *lineItemCatalogRepository) InsertBatch(ctx context.Context, entries []model.LineItemCatalogEntry) error {
	if len(entries) == 0 {
		return nil
	}
	return GetDB(ctx, r.db).Create(&entries).Error
}
