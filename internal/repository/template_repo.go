package repository

import (
	"backoffice/internal/model"
	"context"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// TemplateListFilter narrows template listings. Name is a partial match.
type TemplateListFilter struct {
	Category string
	Name     string
	Prebuilt *bool
	Page     int
	Limit    int
}

// TemplateRepository defines the interface for data access of saved invoice templates
type TemplateRepository interface {
	Create(ctx context.Context, tmpl *model.InvoiceTemplate) error
	Update(ctx context.Context, tmpl *model.InvoiceTemplate) error
	Delete(ctx context.Context, id uuid.UUID) error
	FindByID(ctx context.Context, id uuid.UUID) (*model.InvoiceTemplate, error)
	List(ctx context.Context, filter TemplateListFilter) ([]model.InvoiceTemplate, int64, error)
	ReplaceLineItems(ctx context.Context, templateID uuid.UUID, items []model.TemplateLineItem) error
	CountPrebuilt(ctx context.Context) (int64, error)
}

type templateRepository struct {
	db *gorm.DB
}

// NewTemplateRepository returns a new instance of TemplateRepository
func NewTemplateRepository(db *gorm.DB) TemplateRepository {
	return &templateRepository{db: db}
}

func (r *templateRepository) Create(ctx context.Context, tmpl *model.InvoiceTemplate) error {
	return GetDB(ctx, r.db).Create(tmpl).Error
}

func (r *templateRepository) Update(ctx context.Context, tmpl *model.InvoiceTemplate) error {
	// Line items are replaced separately; don't let Save cascade stale rows
	return GetDB(ctx, r.db).Omit("LineItems").Save(tmpl).Error
}

func (r *templateRepository) Delete(ctx context.Context, id uuid.UUID) error {
	return GetDB(ctx, r.db).Select("LineItems").Delete(&model.InvoiceTemplate{ID: id}).Error
}

func (r *templateRepository) FindByID(ctx context.Context, id uuid.UUID) (*model.InvoiceTemplate, error) {
	var tmpl model.InvoiceTemplate
	err := GetDB(ctx, r.db).
		Preload("LineItems", func(db *gorm.DB) *gorm.DB {
			return db.Order("position asc")
		}).
		First(&tmpl, "id = ?", id).Error
	if err != nil {
		return nil, err
	}
	return &tmpl, nil
}

func (r *templateRepository) List(ctx context.Context, filter TemplateListFilter) ([]model.InvoiceTemplate, int64, error) {
	var templates []model.InvoiceTemplate
	var total int64

	db := GetDB(ctx, r.db).Model(&model.InvoiceTemplate{})
	if filter.Category != "" {
		db = db.Where("category = ?", filter.Category)
	}
	if filter.Name != "" {
		db = db.Where("name ILIKE ?", "%"+filter.Name+"%")
	}
	if filter.Prebuilt != nil {
		db = db.Where("is_prebuilt = ?", *filter.Prebuilt)
	}

	if err := db.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	offset := (filter.Page - 1) * filter.Limit
	err := db.
		Preload("LineItems", func(db *gorm.DB) *gorm.DB {
			return db.Order("position asc")
		}).
		Order("name asc").
		Offset(offset).Limit(filter.Limit).
		Find(&templates).Error
	if err != nil {
		return nil, 0, err
	}

	return templates, total, nil
}

func (r *templateRepository) ReplaceLineItems(ctx context.Context, templateID uuid.UUID, items []model.TemplateLineItem) error {
	db := GetDB(ctx, r.db)
	if err := db.Where("template_id = ?", templateID).Delete(&model.TemplateLineItem{}).Error; err != nil {
		return err
	}
	if len(items) == 0 {
		return nil
	}
	return db.Create(&items).Error
}

func (r *templateRepository) CountPrebuilt(ctx context.Context) (int64, error) {
	var count int64
	err := GetDB(ctx, r.db).Model(&model.InvoiceTemplate{}).Where("is_prebuilt = ?", true).Count(&count).Error
	return count, err
}
