package service

import (
	"context"
	"errors"
	"fmt"
	"time"

	"backoffice/internal/draft"
	"backoffice/internal/model"
	"backoffice/internal/repository"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

// --- DTOs ---

type LineItemInput struct {
	Name        string `json:"name"`
	Description string `json:"description"`
	Quantity    string `json:"quantity" binding:"required"` // decimal string, e.g. "0.33"
	Rate        string `json:"rate" binding:"required"`     // decimal string, e.g. "150.00"
}

type DiscountInput struct {
	Type  string `json:"type" binding:"required"`
	Value string `json:"value" binding:"required"` // decimal string
}

type RecurrenceInput struct {
	Pattern     string `json:"pattern" binding:"required"`
	Interval    int    `json:"interval"`
	EndType     string `json:"end_type"`
	EndDate     string `json:"end_date"` // YYYY-MM-DD, present iff end_type = date
	Occurrences *int   `json:"occurrences"`
}

// SaveTemplateRequest is a full draft payload. Name/category are checked by
// the draft validation pipeline, not by binding tags, so failures carry the
// proper validation kinds.
type SaveTemplateRequest struct {
	Name        string           `json:"name"`
	Description string           `json:"description"`
	Category    string           `json:"category"`
	Icon        string           `json:"icon"`
	Memo        string           `json:"memo"`
	LineItems   []LineItemInput  `json:"line_items"`
	Discount    *DiscountInput   `json:"discount"`
	Recurrence  *RecurrenceInput `json:"recurrence"`
}

type TemplateFilter struct {
	Category string
	Name     string
	Page     int
	Limit    int
}

type LineItemResponse struct {
	ID          string `json:"id"`
	Name        string `json:"name"`
	Description string `json:"description"`
	Quantity    string `json:"quantity"`
	Rate        string `json:"rate"`
	Amount      string `json:"amount"` // derived, quantity * rate
}

type DiscountResponse struct {
	Type  string `json:"type"`
	Value string `json:"value"`
}

type RecurrenceResponse struct {
	Pattern     string  `json:"pattern"`
	Interval    int     `json:"interval"`
	EndType     string  `json:"end_type"`
	EndDate     *string `json:"end_date"`
	Occurrences *int    `json:"occurrences"`
	Summary     string  `json:"summary"`
}

type TotalsResponse struct {
	Subtotal       string `json:"subtotal"`
	DiscountAmount string `json:"discount_amount"`
	Total          string `json:"total"`
}

type TemplateResponse struct {
	ID          string              `json:"id"`
	Name        string              `json:"name"`
	Description string              `json:"description"`
	Category    string              `json:"category"`
	Color       string              `json:"color"`
	Icon        string              `json:"icon"`
	Memo        string              `json:"memo"`
	IsPrebuilt  bool                `json:"is_prebuilt"`
	LineItems   []LineItemResponse  `json:"line_items"`
	Discount    *DiscountResponse   `json:"discount"`
	Recurrence  *RecurrenceResponse `json:"recurrence"`
	Totals      TotalsResponse      `json:"totals"`
	CreatedAt   string              `json:"created_at"`
}

// --- Interface ---

type TemplateService interface {
	SaveTemplate(ctx context.Context, req SaveTemplateRequest, userID string) (TemplateResponse, error)
	SaveDraft(ctx context.Context, d draft.TemplateDraft, userID string) (TemplateResponse, error)
	ListTemplates(ctx context.Context, filter TemplateFilter) ([]TemplateResponse, int64, error)
	GetTemplate(ctx context.Context, id string) (TemplateResponse, error)
	UpdateTemplate(ctx context.Context, id string, req SaveTemplateRequest, userID string) (TemplateResponse, error)
	DeleteTemplate(ctx context.Context, id string, userID string) error
	PreviewTotals(req SaveTemplateRequest) (TotalsResponse, error)
}

type templateService struct {
	templateRepo repository.TemplateRepository
	txManager    repository.TransactionManager
	audit        AuditService
	notifier     Notifier
}

func NewTemplateService(
	templateRepo repository.TemplateRepository,
	txManager repository.TransactionManager,
	audit AuditService,
	notifier Notifier,
) TemplateService {
	if notifier == nil {
		notifier = NopNotifier{}
	}
	return &templateService{
		templateRepo: templateRepo,
		txManager:    txManager,
		audit:        audit,
		notifier:     notifier,
	}
}

// --- Implementation ---

func (s *templateService) SaveTemplate(ctx context.Context, req SaveTemplateRequest, userID string) (TemplateResponse, error) {
	d, err := buildDraft(req)
	if err != nil {
		return TemplateResponse{}, err
	}
	return s.SaveDraft(ctx, d, userID)
}

// SaveDraft validates a finished draft and persists it. The save callback
// contract: only a fully validated draft ever reaches the repository, and a
// validation failure leaves nothing written.
func (s *templateService) SaveDraft(ctx context.Context, d draft.TemplateDraft, userID string) (TemplateResponse, error) {
	if err := draft.Validate(d); err != nil {
		return TemplateResponse{}, err
	}

	tmpl := modelFromDraft(d)
	if err := s.templateRepo.Create(ctx, &tmpl); err != nil {
		return TemplateResponse{}, fmt.Errorf("failed to save template: %w", err)
	}

	s.audit.Record(ctx, userID, model.ActionSaveTemplate, tmpl.ID.String(), tmpl.Name, d.Totals())
	s.notifier.BroadcastEvent(EventTemplateSaved, map[string]string{"id": tmpl.ID.String(), "name": tmpl.Name})

	return toTemplateResponse(tmpl), nil
}

func (s *templateService) ListTemplates(ctx context.Context, filter TemplateFilter) ([]TemplateResponse, int64, error) {
	if filter.Page <= 0 {
		filter.Page = 1
	}
	if filter.Limit <= 0 {
		filter.Limit = 20
	}

	templates, total, err := s.templateRepo.List(ctx, repository.TemplateListFilter{
		Category: filter.Category,
		Name:     filter.Name,
		Page:     filter.Page,
		Limit:    filter.Limit,
	})
	if err != nil {
		return nil, 0, fmt.Errorf("failed to fetch templates: %w", err)
	}

	result := make([]TemplateResponse, 0, len(templates))
	for _, t := range templates {
		result = append(result, toTemplateResponse(t))
	}
	return result, total, nil
}

func (s *templateService) GetTemplate(ctx context.Context, id string) (TemplateResponse, error) {
	templateID, err := uuid.Parse(id)
	if err != nil {
		return TemplateResponse{}, fmt.Errorf("invalid template id: %w", err)
	}

	tmpl, err := s.templateRepo.FindByID(ctx, templateID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return TemplateResponse{}, fmt.Errorf("template not found")
		}
		return TemplateResponse{}, fmt.Errorf("failed to fetch template: %w", err)
	}

	return toTemplateResponse(*tmpl), nil
}

func (s *templateService) UpdateTemplate(ctx context.Context, id string, req SaveTemplateRequest, userID string) (TemplateResponse, error) {
	templateID, err := uuid.Parse(id)
	if err != nil {
		return TemplateResponse{}, fmt.Errorf("invalid template id: %w", err)
	}

	existing, err := s.templateRepo.FindByID(ctx, templateID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return TemplateResponse{}, fmt.Errorf("template not found")
		}
		return TemplateResponse{}, fmt.Errorf("failed to fetch template: %w", err)
	}

	if existing.IsPrebuilt {
		return TemplateResponse{}, fmt.Errorf("prebuilt catalog templates cannot be modified")
	}

	d, err := buildDraft(req)
	if err != nil {
		return TemplateResponse{}, err
	}
	if err := draft.Validate(d); err != nil {
		return TemplateResponse{}, err
	}

	updated := modelFromDraft(d)
	updated.ID = existing.ID
	updated.CreatedAt = existing.CreatedAt
	items := updated.LineItems
	updated.LineItems = nil
	for i := range items {
		items[i].TemplateID = existing.ID
	}

	err = s.txManager.RunInTx(ctx, func(txCtx context.Context) error {
		if err := s.templateRepo.Update(txCtx, &updated); err != nil {
			return fmt.Errorf("failed to update template: %w", err)
		}
		if err := s.templateRepo.ReplaceLineItems(txCtx, existing.ID, items); err != nil {
			return fmt.Errorf("failed to replace line items: %w", err)
		}
		return nil
	})
	if err != nil {
		return TemplateResponse{}, err
	}

	reloaded, err := s.templateRepo.FindByID(ctx, existing.ID)
	if err != nil {
		return TemplateResponse{}, fmt.Errorf("failed to reload template: %w", err)
	}

	s.audit.Record(ctx, userID, model.ActionUpdateTemplate, existing.ID.String(), updated.Name, req)
	s.notifier.BroadcastEvent(EventTemplateSaved, map[string]string{"id": existing.ID.String(), "name": updated.Name})

	return toTemplateResponse(*reloaded), nil
}

func (s *templateService) DeleteTemplate(ctx context.Context, id string, userID string) error {
	templateID, err := uuid.Parse(id)
	if err != nil {
		return fmt.Errorf("invalid template id: %w", err)
	}

	tmpl, err := s.templateRepo.FindByID(ctx, templateID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return fmt.Errorf("template not found")
		}
		return fmt.Errorf("failed to fetch template: %w", err)
	}

	if tmpl.IsPrebuilt {
		return fmt.Errorf("prebuilt catalog templates cannot be deleted")
	}

	if err := s.templateRepo.Delete(ctx, templateID); err != nil {
		return fmt.Errorf("failed to delete template: %w", err)
	}

	s.audit.Record(ctx, userID, model.ActionDeleteTemplate, id, tmpl.Name, map[string]string{"deleted_id": id})
	s.notifier.BroadcastEvent(EventTemplateDeleted, map[string]string{"id": id})

	return nil
}

// PreviewTotals computes live totals for an unsaved draft payload. Pure —
// no repository access, callable on every keystroke.
func (s *templateService) PreviewTotals(req SaveTemplateRequest) (TotalsResponse, error) {
	items, err := parseLineItems(req.LineItems)
	if err != nil {
		return TotalsResponse{}, err
	}

	var disc *draft.Discount
	if req.Discount != nil {
		value, err := decimal.NewFromString(req.Discount.Value)
		if err != nil {
			return TotalsResponse{}, fmt.Errorf("invalid discount value: %w", err)
		}
		disc, err = draft.NewDiscount(req.Discount.Type, value)
		if err != nil {
			return TotalsResponse{}, err
		}
	}

	return toTotalsResponse(draft.ComputeTotals(items, disc)), nil
}

// --- Mapping ---

func buildDraft(req SaveTemplateRequest) (draft.TemplateDraft, error) {
	d := draft.New().WithBasicInfo(req.Name, req.Description, req.Category, req.Icon)
	if req.Memo != "" {
		d = d.WithMemo(req.Memo)
	}

	items, err := parseLineItems(req.LineItems)
	if err != nil {
		return draft.TemplateDraft{}, err
	}
	d.LineItems = items

	if req.Discount != nil {
		value, err := decimal.NewFromString(req.Discount.Value)
		if err != nil {
			return draft.TemplateDraft{}, fmt.Errorf("invalid discount value: %w", err)
		}
		d, err = d.ApplyDiscount(req.Discount.Type, value)
		if err != nil {
			return draft.TemplateDraft{}, err
		}
	}

	if req.Recurrence != nil {
		rule, err := parseRecurrence(*req.Recurrence)
		if err != nil {
			return draft.TemplateDraft{}, err
		}
		d = d.WithRecurrence(rule)
	}

	return d, nil
}

func parseLineItems(inputs []LineItemInput) ([]draft.LineItem, error) {
	items := make([]draft.LineItem, 0, len(inputs))
	for i, in := range inputs {
		qty, err := decimal.NewFromString(in.Quantity)
		if err != nil {
			return nil, fmt.Errorf("line item %d: invalid quantity: %w", i+1, err)
		}
		rate, err := decimal.NewFromString(in.Rate)
		if err != nil {
			return nil, fmt.Errorf("line item %d: invalid rate: %w", i+1, err)
		}
		if qty.IsNegative() || rate.IsNegative() {
			return nil, fmt.Errorf("line item %d: quantity and rate must not be negative", i+1)
		}
		items = append(items, draft.LineItem{
			ID:          uuid.NewString(),
			Name:        in.Name,
			Description: in.Description,
			Quantity:    qty,
			Rate:        rate,
		})
	}
	return items, nil
}

func parseRecurrence(in RecurrenceInput) (*draft.RecurrenceRule, error) {
	interval := in.Interval
	if interval == 0 {
		interval = 1
	}
	endType := in.EndType
	if endType == "" {
		endType = draft.EndNever
	}

	var endDate *time.Time
	if in.EndDate != "" {
		t, err := time.Parse("2006-01-02", in.EndDate)
		if err != nil {
			return nil, fmt.Errorf("invalid recurrence end date (expected YYYY-MM-DD): %w", err)
		}
		endDate = &t
	}

	return draft.NewRecurrenceRule(in.Pattern, interval, endType, endDate, in.Occurrences)
}

func modelFromDraft(d draft.TemplateDraft) model.InvoiceTemplate {
	tmpl := model.InvoiceTemplate{
		Name:               d.Name,
		Description:        d.Description,
		Category:           d.Category,
		Icon:               d.Icon,
		Memo:               d.Memo,
		RecurrencePattern:  draft.PatternNone,
		RecurrenceInterval: 1,
		RecurrenceEndType:  draft.EndNever,
	}

	if d.Discount != nil {
		t := d.Discount.Type
		v := d.Discount.Value
		tmpl.DiscountType = &t
		tmpl.DiscountValue = &v
	}

	if d.Recurrence.IsActive() {
		tmpl.RecurrencePattern = d.Recurrence.Pattern
		tmpl.RecurrenceInterval = d.Recurrence.Interval
		tmpl.RecurrenceEndType = d.Recurrence.EndType
		tmpl.RecurrenceEndDate = d.Recurrence.EndDate
		tmpl.RecurrenceOccurrences = d.Recurrence.Occurrences
	}

	for i, li := range d.LineItems {
		tmpl.LineItems = append(tmpl.LineItems, model.TemplateLineItem{
			Position:    i,
			Name:        li.Name,
			Description: li.Description,
			Quantity:    li.Quantity,
			Rate:        li.Rate,
		})
	}

	return tmpl
}

func draftFromModel(tmpl model.InvoiceTemplate) draft.TemplateDraft {
	d := draft.TemplateDraft{
		ID:          tmpl.ID.String(),
		Name:        tmpl.Name,
		Description: tmpl.Description,
		Category:    tmpl.Category,
		Icon:        tmpl.Icon,
		Memo:        tmpl.Memo,
	}

	for _, li := range tmpl.LineItems {
		d.LineItems = append(d.LineItems, draft.LineItem{
			ID:          li.ID.String(),
			Name:        li.Name,
			Description: li.Description,
			Quantity:    li.Quantity,
			Rate:        li.Rate,
		})
	}

	if tmpl.DiscountType != nil && tmpl.DiscountValue != nil {
		d.Discount = &draft.Discount{Type: *tmpl.DiscountType, Value: *tmpl.DiscountValue}
	}

	if tmpl.RecurrencePattern != "" && tmpl.RecurrencePattern != draft.PatternNone {
		d.Recurrence = &draft.RecurrenceRule{
			Pattern:     tmpl.RecurrencePattern,
			Interval:    tmpl.RecurrenceInterval,
			EndType:     tmpl.RecurrenceEndType,
			EndDate:     tmpl.RecurrenceEndDate,
			Occurrences: tmpl.RecurrenceOccurrences,
		}
	}

	return d
}

func toTemplateResponse(tmpl model.InvoiceTemplate) TemplateResponse {
	d := draftFromModel(tmpl)

	resp := TemplateResponse{
		ID:          tmpl.ID.String(),
		Name:        tmpl.Name,
		Description: tmpl.Description,
		Category:    tmpl.Category,
		Icon:        tmpl.Icon,
		Memo:        tmpl.Memo,
		IsPrebuilt:  tmpl.IsPrebuilt,
		LineItems:   toLineItemResponses(d.LineItems),
		Totals:      toTotalsResponse(d.Totals()),
		CreatedAt:   tmpl.CreatedAt.Format(time.RFC3339),
	}

	if style, ok := draft.StyleFor(tmpl.Category); ok {
		resp.Color = style.Color
	}

	if d.Discount != nil {
		resp.Discount = &DiscountResponse{
			Type:  d.Discount.Type,
			Value: d.Discount.Value.String(),
		}
	}

	if d.Recurrence.IsActive() {
		resp.Recurrence = toRecurrenceResponse(d.Recurrence)
	}

	return resp
}

func toLineItemResponses(items []draft.LineItem) []LineItemResponse {
	out := make([]LineItemResponse, 0, len(items))
	for _, li := range items {
		out = append(out, LineItemResponse{
			ID:          li.ID,
			Name:        li.Name,
			Description: li.Description,
			Quantity:    li.Quantity.String(),
			Rate:        li.Rate.StringFixed(2),
			Amount:      li.Amount().StringFixed(2),
		})
	}
	return out
}

func toTotalsResponse(t draft.Totals) TotalsResponse {
	return TotalsResponse{
		Subtotal:       t.Subtotal.StringFixed(2),
		DiscountAmount: t.DiscountAmount.StringFixed(2),
		Total:          t.Total.StringFixed(2),
	}
}

func toRecurrenceResponse(r *draft.RecurrenceRule) *RecurrenceResponse {
	resp := &RecurrenceResponse{
		Pattern:     r.Pattern,
		Interval:    r.Interval,
		EndType:     r.EndType,
		Occurrences: r.Occurrences,
		Summary:     r.Summary(),
	}
	if r.EndDate != nil {
		s := r.EndDate.Format("2006-01-02")
		resp.EndDate = &s
	}
	return resp
}
