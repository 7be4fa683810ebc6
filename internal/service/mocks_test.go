package service

import (
	"context"
	"sync"

	"backoffice/internal/model"
	"backoffice/internal/repository"

	"github.com/google/uuid"
	"github.com/stretchr/testify/mock"
)

// Mock repositories

type MockTemplateRepository struct {
	mock.Mock
}

func (m *MockTemplateRepository) Create(ctx context.Context, tmpl *model.InvoiceTemplate) error {
	args := m.Called(ctx, tmpl)
	return args.Error(0)
}

func (m *MockTemplateRepository) Update(ctx context.Context, tmpl *model.InvoiceTemplate) error {
	args := m.Called(ctx, tmpl)
	return args.Error(0)
}

func (m *MockTemplateRepository) Delete(ctx context.Context, id uuid.UUID) error {
	args := m.Called(ctx, id)
	return args.Error(0)
}

func (m *MockTemplateRepository) FindByID(ctx context.Context, id uuid.UUID) (*model.InvoiceTemplate, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.InvoiceTemplate), args.Error(1)
}

func (m *MockTemplateRepository) List(ctx context.Context, filter repository.TemplateListFilter) ([]model.InvoiceTemplate, int64, error) {
	args := m.Called(ctx, filter)
	if args.Get(0) == nil {
		return nil, 0, args.Error(2)
	}
	return args.Get(0).([]model.InvoiceTemplate), args.Get(1).(int64), args.Error(2)
}

func (m *MockTemplateRepository) ReplaceLineItems(ctx context.Context, templateID uuid.UUID, items []model.TemplateLineItem) error {
	args := m.Called(ctx, templateID, items)
	return args.Error(0)
}

func (m *MockTemplateRepository) CountPrebuilt(ctx context.Context) (int64, error) {
	args := m.Called(ctx)
	return args.Get(0).(int64), args.Error(1)
}

type MockMemoTemplateRepository struct {
	mock.Mock
}

func (m *MockMemoTemplateRepository) Create(ctx context.Context, memo *model.MemoTemplate) error {
	args := m.Called(ctx, memo)
	return args.Error(0)
}

func (m *MockMemoTemplateRepository) Update(ctx context.Context, memo *model.MemoTemplate) error {
	args := m.Called(ctx, memo)
	return args.Error(0)
}

func (m *MockMemoTemplateRepository) Delete(ctx context.Context, id uuid.UUID) error {
	args := m.Called(ctx, id)
	return args.Error(0)
}

func (m *MockMemoTemplateRepository) FindByID(ctx context.Context, id uuid.UUID) (*model.MemoTemplate, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.MemoTemplate), args.Error(1)
}

func (m *MockMemoTemplateRepository) ListByName(ctx context.Context) ([]model.MemoTemplate, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]model.MemoTemplate), args.Error(1)
}

type MockLineItemCatalogRepository struct {
	mock.Mock
}

func (m *MockLineItemCatalogRepository) List(ctx context.Context, category string) ([]model.LineItemCatalogEntry, error) {
	args := m.Called(ctx, category)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]model.LineItemCatalogEntry), args.Error(1)
}

func (m *MockLineItemCatalogRepository) Count(ctx context.Context) (int64, error) {
	args := m.Called(ctx)
	return args.Get(0).(int64), args.Error(1)
}

func (m *MockLineItemCatalogRepository) InsertBatch(ctx context.Context, entries []model.LineItemCatalogEntry) error {
	args := m.Called(ctx, entries)
	return args.Error(0)
}

// Test doubles for the ambient collaborators

// fakeTxManager runs the callback directly without a database.
type fakeTxManager struct{}

func (fakeTxManager) RunInTx(ctx context.Context, fn func(txCtx context.Context) error) error {
	return fn(ctx)
}

// stubAudit discards audit entries.
type stubAudit struct{}

func (stubAudit) Record(ctx context.Context, userID, action, entityID, entityName string, details interface{}) {
}

func (stubAudit) GetAuditLogs(ctx context.Context, page, limit int) ([]AuditLogResponse, int64, error) {
	return nil, 0, nil
}

// recordingNotifier captures broadcast events for assertions.
type recordingNotifier struct {
	mu     sync.Mutex
	events []string
}

func (n *recordingNotifier) BroadcastEvent(eventType string, payload interface{}) {
	n.mu.Lock()
	defer n.mu.Unlock()
	n.events = append(n.events, eventType)
}

func (n *recordingNotifier) Events() []string {
	n.mu.Lock()
	defer n.mu.Unlock()
	out := make([]string, len(n.events))
	copy(out, n.events)
	return out
}
