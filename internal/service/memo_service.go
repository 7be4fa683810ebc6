package service

import (
	"context"
	"errors"
	"fmt"
	"time"

	"backoffice/internal/model"
	"backoffice/internal/repository"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// --- DTOs ---

type CreateMemoTemplateRequest struct {
	Name     string `json:"name" binding:"required"`
	Content  string `json:"content" binding:"required"`
	Category string `json:"category"`
}

type UpdateMemoTemplateRequest struct {
	Name     string `json:"name" binding:"required"`
	Content  string `json:"content" binding:"required"`
	Category string `json:"category"`
}

type MemoTemplateResponse struct {
	ID        string `json:"id"`
	Name      string `json:"name"`
	Content   string `json:"content"`
	Category  string `json:"category"`
	CreatedAt string `json:"created_at"`
}

// --- Interface ---

// MemoTemplateService manages the reusable memo registry. Listings are
// always name-sorted; names are not required to be unique.
type MemoTemplateService interface {
	Create(ctx context.Context, req CreateMemoTemplateRequest, userID string) (MemoTemplateResponse, error)
	Update(ctx context.Context, id string, req UpdateMemoTemplateRequest, userID string) (MemoTemplateResponse, error)
	Delete(ctx context.Context, id string, userID string) error
	List(ctx context.Context) ([]MemoTemplateResponse, error)
	GetContent(ctx context.Context, id string) (string, error)
}

type memoTemplateService struct {
	memoRepo repository.MemoTemplateRepository
	audit    AuditService
	notifier Notifier
}

func NewMemoTemplateService(memoRepo repository.MemoTemplateRepository, audit AuditService, notifier Notifier) MemoTemplateService {
	if notifier == nil {
		notifier = NopNotifier{}
	}
	return &memoTemplateService{memoRepo: memoRepo, audit: audit, notifier: notifier}
}

// --- Implementation ---

func (s *memoTemplateService) Create(ctx context.Context, req CreateMemoTemplateRequest, userID string) (MemoTemplateResponse, error) {
	memo := model.MemoTemplate{
		Name:     req.Name,
		Content:  req.Content,
		Category: req.Category,
	}

	if err := s.memoRepo.Create(ctx, &memo); err != nil {
		return MemoTemplateResponse{}, fmt.Errorf("failed to create memo template: %w", err)
	}

	s.audit.Record(ctx, userID, model.ActionCreateMemoTemplate, memo.ID.String(), memo.Name, req)
	s.notifier.BroadcastEvent(EventMemoTemplateChanged, map[string]string{"id": memo.ID.String()})

	return toMemoTemplateResponse(memo), nil
}

func (s *memoTemplateService) Update(ctx context.Context, id string, req UpdateMemoTemplateRequest, userID string) (MemoTemplateResponse, error) {
	memoID, err := uuid.Parse(id)
	if err != nil {
		return MemoTemplateResponse{}, fmt.Errorf("invalid memo template id: %w", err)
	}

	memo, err := s.memoRepo.FindByID(ctx, memoID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return MemoTemplateResponse{}, fmt.Errorf("memo template not found")
		}
		return MemoTemplateResponse{}, fmt.Errorf("failed to fetch memo template: %w", err)
	}

	memo.Name = req.Name
	memo.Content = req.Content
	memo.Category = req.Category

	if err := s.memoRepo.Update(ctx, memo); err != nil {
		return MemoTemplateResponse{}, fmt.Errorf("failed to update memo template: %w", err)
	}

	s.audit.Record(ctx, userID, model.ActionUpdateMemoTemplate, id, memo.Name, req)
	s.notifier.BroadcastEvent(EventMemoTemplateChanged, map[string]string{"id": id})

	return toMemoTemplateResponse(*memo), nil
}

func (s *memoTemplateService) Delete(ctx context.Context, id string, userID string) error {
	memoID, err := uuid.Parse(id)
	if err != nil {
		return fmt.Errorf("invalid memo template id: %w", err)
	}

	memo, err := s.memoRepo.FindByID(ctx, memoID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return fmt.Errorf("memo template not found")
		}
		return fmt.Errorf("failed to fetch memo template: %w", err)
	}

	if err := s.memoRepo.Delete(ctx, memoID); err != nil {
		return fmt.Errorf("failed to delete memo template: %w", err)
	}

	s.audit.Record(ctx, userID, model.ActionDeleteMemoTemplate, id, memo.Name, map[string]string{"deleted_id": id})
	s.notifier.BroadcastEvent(EventMemoTemplateChanged, map[string]string{"id": id})

	return nil
}

func (s *memoTemplateService) List(ctx context.Context) ([]MemoTemplateResponse, error) {
	memos, err := s.memoRepo.ListByName(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to fetch memo templates: %w", err)
	}

	res := make([]MemoTemplateResponse, 0, len(memos))
	for _, m := range memos {
		res = append(res, toMemoTemplateResponse(m))
	}
	return res, nil
}

// GetContent returns the memo body for a one-way copy into a draft.
func (s *memoTemplateService) GetContent(ctx context.Context, id string) (string, error) {
	memoID, err := uuid.Parse(id)
	if err != nil {
		return "", fmt.Errorf("invalid memo template id: %w", err)
	}

	memo, err := s.memoRepo.FindByID(ctx, memoID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return "", fmt.Errorf("memo template not found")
		}
		return "", fmt.Errorf("failed to fetch memo template: %w", err)
	}

	return memo.Content, nil
}

// --- Mapping ---

func toMemoTemplateResponse(m model.MemoTemplate) MemoTemplateResponse {
	return MemoTemplateResponse{
		ID:        m.ID.String(),
		Name:      m.Name,
		Content:   m.Content,
		Category:  m.Category,
		CreatedAt: m.CreatedAt.Format(time.RFC3339),
	}
}
