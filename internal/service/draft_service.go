package service

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"time"

	"backoffice/internal/draft"
	"backoffice/internal/repository"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

// ErrDraftNotFound covers both unknown session ids and sessions owned by
// someone else — callers get the same answer either way.
var ErrDraftNotFound = errors.New("draft session not found")

// Draft sessions live only as long as the composing UI session (there is no
// durable draft storage). Sessions untouched for this long are pruned.
const draftSessionTTL = 24 * time.Hour

// --- DTOs ---

type BasicInfoRequest struct {
	Name        string `json:"name"`
	Description string `json:"description"`
	Category    string `json:"category"`
	Icon        string `json:"icon"`
}

type AddLineItemRequest struct {
	CatalogEntryID string `json:"catalog_entry_id"` // empty means a blank row
}

type UpdateLineItemRequest struct {
	Field string `json:"field" binding:"required"`
	Value string `json:"value"`
}

type StepLineItemRequest struct {
	Field string `json:"field" binding:"required"`
	Step  string `json:"step"` // decimal string, defaults to 1
}

type AdvanceRequest struct {
	FromTemplate bool `json:"from_template"`
}

type SelectSourceRequest struct {
	TemplateID string `json:"template_id" binding:"required"`
}

type DraftView struct {
	ID           string              `json:"id"`
	Step         string              `json:"step"`
	FromTemplate bool                `json:"from_template"`
	Name         string              `json:"name"`
	Description  string              `json:"description"`
	Category     string              `json:"category"`
	Icon         string              `json:"icon"`
	Memo         string              `json:"memo"`
	LineItems    []LineItemResponse  `json:"line_items"`
	Discount     *DiscountResponse   `json:"discount"`
	Recurrence   *RecurrenceResponse `json:"recurrence"`
	Totals       TotalsResponse      `json:"totals"`
}

// --- Interface ---

// DraftSessionService owns the per-user wizard sessions. Every mutation is a
// single synchronous state transition: the wizard value is replaced whole,
// and a rejected operation leaves the stored state untouched.
type DraftSessionService interface {
	Start(userID string) DraftView
	Get(userID, id string) (DraftView, error)
	Discard(userID, id string) error

	SetBasicInfo(userID, id string, req BasicInfoRequest) (DraftView, error)
	SetMemo(userID, id string, memo string) (DraftView, error)
	AddLineItem(ctx context.Context, userID, id string, req AddLineItemRequest) (DraftView, error)
	UpdateLineItem(userID, id, itemID string, req UpdateLineItemRequest) (DraftView, error)
	RemoveLineItem(userID, id, itemID string) (DraftView, error)
	StepLineItem(userID, id, itemID string, req StepLineItemRequest, decrement bool) (DraftView, error)
	ApplyDiscount(userID, id string, req DiscountInput) (DraftView, error)
	RemoveDiscount(userID, id string) (DraftView, error)
	SetRecurrence(userID, id string, req RecurrenceInput) (DraftView, error)

	Advance(userID, id string, req AdvanceRequest) (DraftView, error)
	Back(userID, id string) (DraftView, error)
	SelectSource(ctx context.Context, userID, id string, req SelectSourceRequest) (DraftView, error)
	Save(ctx context.Context, userID, id string) (TemplateResponse, error)
}

type draftSession struct {
	wizard    draft.Wizard
	userID    string
	updatedAt time.Time
}

type draftSessionService struct {
	mu       sync.Mutex
	sessions map[string]*draftSession

	templateRepo repository.TemplateRepository
	catalogRepo  repository.LineItemCatalogRepository
	templates    TemplateService
}

func NewDraftSessionService(
	templateRepo repository.TemplateRepository,
	catalogRepo repository.LineItemCatalogRepository,
	templates TemplateService,
) DraftSessionService {
	return &draftSessionService{
		sessions:     make(map[string]*draftSession),
		templateRepo: templateRepo,
		catalogRepo:  catalogRepo,
		templates:    templates,
	}
}

// --- Implementation ---

func (s *draftSessionService) Start(userID string) DraftView {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.pruneLocked()

	id := uuid.NewString()
	sess := &draftSession{wizard: draft.NewWizard(), userID: userID, updatedAt: time.Now()}
	s.sessions[id] = sess

	return toDraftView(id, sess.wizard)
}

func (s *draftSessionService) Get(userID, id string) (DraftView, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	sess, err := s.lookupLocked(userID, id)
	if err != nil {
		return DraftView{}, err
	}
	return toDraftView(id, sess.wizard), nil
}

func (s *draftSessionService) Discard(userID, id string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, err := s.lookupLocked(userID, id); err != nil {
		return err
	}
	delete(s.sessions, id)
	return nil
}

func (s *draftSessionService) SetBasicInfo(userID, id string, req BasicInfoRequest) (DraftView, error) {
	return s.mutate(userID, id, func(w draft.Wizard) (draft.Wizard, error) {
		w.Draft = w.Draft.WithBasicInfo(req.Name, req.Description, req.Category, req.Icon)
		return w, nil
	})
}

func (s *draftSessionService) SetMemo(userID, id string, memo string) (DraftView, error) {
	return s.mutate(userID, id, func(w draft.Wizard) (draft.Wizard, error) {
		w.Draft = w.Draft.WithMemo(memo)
		return w, nil
	})
}

func (s *draftSessionService) AddLineItem(ctx context.Context, userID, id string, req AddLineItemRequest) (DraftView, error) {
	var seed *draft.Seed
	if req.CatalogEntryID != "" {
		entryID, err := uuid.Parse(req.CatalogEntryID)
		if err != nil {
			return DraftView{}, fmt.Errorf("invalid catalog entry id: %w", err)
		}
		entries, err := s.catalogRepo.List(ctx, "")
		if err != nil {
			return DraftView{}, fmt.Errorf("failed to load line item catalog: %w", err)
		}
		for _, e := range entries {
			if e.ID == entryID {
				seed = &draft.Seed{Name: e.Name, Description: e.Description, DefaultRate: e.DefaultRate}
				break
			}
		}
		if seed == nil {
			return DraftView{}, fmt.Errorf("catalog entry not found")
		}
	}

	return s.mutate(userID, id, func(w draft.Wizard) (draft.Wizard, error) {
		w.Draft = w.Draft.AddLineItem(seed)
		return w, nil
	})
}

func (s *draftSessionService) UpdateLineItem(userID, id, itemID string, req UpdateLineItemRequest) (DraftView, error) {
	return s.mutate(userID, id, func(w draft.Wizard) (draft.Wizard, error) {
		d, err := w.Draft.UpdateLineItem(itemID, req.Field, req.Value)
		if err != nil {
			return w, err
		}
		w.Draft = d
		return w, nil
	})
}

func (s *draftSessionService) RemoveLineItem(userID, id, itemID string) (DraftView, error) {
	return s.mutate(userID, id, func(w draft.Wizard) (draft.Wizard, error) {
		w.Draft = w.Draft.RemoveLineItem(itemID)
		return w, nil
	})
}

func (s *draftSessionService) StepLineItem(userID, id, itemID string, req StepLineItemRequest, decrement bool) (DraftView, error) {
	step := decimal.NewFromInt(1)
	if req.Step != "" {
		parsed, err := decimal.NewFromString(req.Step)
		if err != nil || !parsed.IsPositive() {
			return DraftView{}, fmt.Errorf("step must be a positive number")
		}
		step = parsed
	}
	if decrement {
		step = step.Neg()
	}

	return s.mutate(userID, id, func(w draft.Wizard) (draft.Wizard, error) {
		d, err := w.Draft.StepLineItemField(itemID, req.Field, step)
		if err != nil {
			return w, err
		}
		w.Draft = d
		return w, nil
	})
}

func (s *draftSessionService) ApplyDiscount(userID, id string, req DiscountInput) (DraftView, error) {
	value, err := decimal.NewFromString(req.Value)
	if err != nil {
		return DraftView{}, fmt.Errorf("invalid discount value: %w", err)
	}

	return s.mutate(userID, id, func(w draft.Wizard) (draft.Wizard, error) {
		d, err := w.Draft.ApplyDiscount(req.Type, value)
		if err != nil {
			return w, err
		}
		w.Draft = d
		return w, nil
	})
}

func (s *draftSessionService) RemoveDiscount(userID, id string) (DraftView, error) {
	return s.mutate(userID, id, func(w draft.Wizard) (draft.Wizard, error) {
		w.Draft = w.Draft.RemoveDiscount()
		return w, nil
	})
}

func (s *draftSessionService) SetRecurrence(userID, id string, req RecurrenceInput) (DraftView, error) {
	rule, err := parseRecurrence(req)
	if err != nil {
		return DraftView{}, err
	}

	return s.mutate(userID, id, func(w draft.Wizard) (draft.Wizard, error) {
		w.Draft = w.Draft.WithRecurrence(rule)
		return w, nil
	})
}

func (s *draftSessionService) Advance(userID, id string, req AdvanceRequest) (DraftView, error) {
	return s.mutate(userID, id, func(w draft.Wizard) (draft.Wizard, error) {
		return w.Advance(req.FromTemplate)
	})
}

func (s *draftSessionService) Back(userID, id string) (DraftView, error) {
	return s.mutate(userID, id, func(w draft.Wizard) (draft.Wizard, error) {
		return w.Back(), nil
	})
}

func (s *draftSessionService) SelectSource(ctx context.Context, userID, id string, req SelectSourceRequest) (DraftView, error) {
	templateID, err := uuid.Parse(req.TemplateID)
	if err != nil {
		return DraftView{}, fmt.Errorf("invalid template id: %w", err)
	}

	source, err := s.templateRepo.FindByID(ctx, templateID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return DraftView{}, fmt.Errorf("source template not found")
		}
		return DraftView{}, fmt.Errorf("failed to fetch source template: %w", err)
	}

	items := draftFromModel(*source).LineItems

	return s.mutate(userID, id, func(w draft.Wizard) (draft.Wizard, error) {
		return w.SelectSource(items), nil
	})
}

func (s *draftSessionService) Save(ctx context.Context, userID, id string) (TemplateResponse, error) {
	s.mu.Lock()
	sess, err := s.lookupLocked(userID, id)
	if err != nil {
		s.mu.Unlock()
		return TemplateResponse{}, err
	}
	wizard := sess.wizard
	s.mu.Unlock()

	// Validate outside the lock; the session survives a rejected save.
	done, err := wizard.Finish()
	if err != nil {
		return TemplateResponse{}, err
	}

	resp, err := s.templates.SaveDraft(ctx, done, userID)
	if err != nil {
		return TemplateResponse{}, err
	}

	s.mu.Lock()
	delete(s.sessions, id)
	s.mu.Unlock()

	return resp, nil
}

// --- Helpers ---

func (s *draftSessionService) mutate(userID, id string, fn func(draft.Wizard) (draft.Wizard, error)) (DraftView, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	sess, err := s.lookupLocked(userID, id)
	if err != nil {
		return DraftView{}, err
	}

	next, err := fn(sess.wizard)
	if err != nil {
		return DraftView{}, err
	}

	sess.wizard = next
	sess.updatedAt = time.Now()
	return toDraftView(id, next), nil
}

func (s *draftSessionService) lookupLocked(userID, id string) (*draftSession, error) {
	sess, ok := s.sessions[id]
	if !ok || sess.userID != userID {
		return nil, ErrDraftNotFound
	}
	return sess, nil
}

func (s *draftSessionService) pruneLocked() {
	cutoff := time.Now().Add(-draftSessionTTL)
	for id, sess := range s.sessions {
		if sess.updatedAt.Before(cutoff) {
			delete(s.sessions, id)
		}
	}
}

func toDraftView(id string, w draft.Wizard) DraftView {
	view := DraftView{
		ID:           id,
		Step:         w.Step,
		FromTemplate: w.FromTemplate,
		Name:         w.Draft.Name,
		Description:  w.Draft.Description,
		Category:     w.Draft.Category,
		Icon:         w.Draft.Icon,
		Memo:         w.Draft.Memo,
		LineItems:    toLineItemResponses(w.Draft.LineItems),
		Totals:       toTotalsResponse(w.Draft.Totals()),
	}

	if w.Draft.Discount != nil {
		view.Discount = &DiscountResponse{
			Type:  w.Draft.Discount.Type,
			Value: w.Draft.Discount.Value.String(),
		}
	}
	if w.Draft.Recurrence.IsActive() {
		view.Recurrence = toRecurrenceResponse(w.Draft.Recurrence)
	}

	return view
}
