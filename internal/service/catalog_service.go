package service

import (
	"context"
	"fmt"

	"backoffice/internal/draft"
	"backoffice/internal/model"
	"backoffice/internal/repository"
)

// --- DTOs ---

type CategoryResponse struct {
	ID    string `json:"id"`
	Label string `json:"label"`
	Color string `json:"color"`
	Glyph string `json:"glyph"`
}

type LineItemCatalogResponse struct {
	ID          string `json:"id"`
	Name        string `json:"name"`
	Description string `json:"description"`
	Category    string `json:"category"`
	DefaultRate string `json:"default_rate"`
}

// --- Interface ---

// CatalogService serves the read-only collaborator data that seeds the
// wizard: prebuilt templates, the line-item catalog, and the category set.
type CatalogService interface {
	ListPrebuiltTemplates(ctx context.Context) ([]TemplateResponse, error)
	ListLineItemEntries(ctx context.Context, category string) ([]LineItemCatalogResponse, error)
	ListCategories() []CategoryResponse
}

type catalogService struct {
	templateRepo repository.TemplateRepository
	catalogRepo  repository.LineItemCatalogRepository
}

func NewCatalogService(templateRepo repository.TemplateRepository, catalogRepo repository.LineItemCatalogRepository) CatalogService {
	return &catalogService{templateRepo: templateRepo, catalogRepo: catalogRepo}
}

// --- Implementation ---

func (s *catalogService) ListPrebuiltTemplates(ctx context.Context) ([]TemplateResponse, error) {
	prebuilt := true
	templates, _, err := s.templateRepo.List(ctx, repository.TemplateListFilter{
		Prebuilt: &prebuilt,
		Page:     1,
		Limit:    100,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to fetch prebuilt templates: %w", err)
	}

	res := make([]TemplateResponse, 0, len(templates))
	for _, t := range templates {
		res = append(res, toTemplateResponse(t))
	}
	return res, nil
}

func (s *catalogService) ListLineItemEntries(ctx context.Context, category string) ([]LineItemCatalogResponse, error) {
	entries, err := s.catalogRepo.List(ctx, category)
	if err != nil {
		return nil, fmt.Errorf("failed to fetch line item catalog: %w", err)
	}

	res := make([]LineItemCatalogResponse, 0, len(entries))
	for _, e := range entries {
		res = append(res, toLineItemCatalogResponse(e))
	}
	return res, nil
}

func (s *catalogService) ListCategories() []CategoryResponse {
	cats := draft.Categories()
	res := make([]CategoryResponse, 0, len(cats))
	for _, c := range cats {
		style, _ := draft.StyleFor(c)
		res = append(res, CategoryResponse{
			ID:    c,
			Label: style.Label,
			Color: style.Color,
			Glyph: style.Glyph,
		})
	}
	return res
}

// --- Mapping ---

func toLineItemCatalogResponse(e model.LineItemCatalogEntry) LineItemCatalogResponse {
	return LineItemCatalogResponse{
		ID:          e.ID.String(),
		Name:        e.Name,
		Description: e.Description,
		Category:    e.Category,
		DefaultRate: e.DefaultRate.StringFixed(2),
	}
}
