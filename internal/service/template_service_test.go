package service

import (
	"context"
	"testing"

	"backoffice/internal/draft"
	"backoffice/internal/model"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"github.com/stretchr/testify/suite"
)

type TemplateServiceSuite struct {
	suite.Suite
	repo     *MockTemplateRepository
	notifier *recordingNotifier
	svc      TemplateService
}

func (s *TemplateServiceSuite) SetupTest() {
	s.repo = new(MockTemplateRepository)
	s.notifier = &recordingNotifier{}
	s.svc = NewTemplateService(s.repo, fakeTxManager{}, stubAudit{}, s.notifier)
}

func TestTemplateServiceSuite(t *testing.T) {
	suite.Run(t, new(TemplateServiceSuite))
}

func validSaveRequest() SaveTemplateRequest {
	return SaveTemplateRequest{
		Name:     "Monthly Bookkeeping",
		Category: draft.CategoryBookkeeping,
		LineItems: []LineItemInput{
			{Name: "Bookkeeping", Quantity: "1", Rate: "350.00"},
		},
	}
}

func (s *TemplateServiceSuite) TestSaveTemplatePersistsAndBroadcasts() {
	s.repo.On("Create", mock.Anything, mock.AnythingOfType("*model.InvoiceTemplate")).
		Run(func(args mock.Arguments) {
			tmpl := args.Get(1).(*model.InvoiceTemplate)
			tmpl.ID = uuid.New()
		}).
		Return(nil)

	resp, err := s.svc.SaveTemplate(context.Background(), validSaveRequest(), "user-1")

	s.Require().NoError(err)
	s.Equal("Monthly Bookkeeping", resp.Name)
	s.Equal(draft.CategoryBookkeeping, resp.Category)
	s.Equal("350.00", resp.Totals.Subtotal)
	s.Equal("350.00", resp.Totals.Total)
	s.Contains(s.notifier.Events(), EventTemplateSaved)
	s.repo.AssertExpectations(s.T())
}

func (s *TemplateServiceSuite) TestSaveTemplateValidationOrder() {
	cases := []struct {
		name   string
		mutate func(*SaveTemplateRequest)
		kind   draft.ValidationKind
	}{
		{"missing name", func(r *SaveTemplateRequest) { r.Name = "" }, draft.KindMissingName},
		{"unknown category", func(r *SaveTemplateRequest) { r.Category = "landscaping" }, draft.KindMissingCategory},
		{"no line items", func(r *SaveTemplateRequest) { r.LineItems = nil }, draft.KindNoLineItems},
	}

	for _, tc := range cases {
		s.Run(tc.name, func() {
			req := validSaveRequest()
			tc.mutate(&req)

			_, err := s.svc.SaveTemplate(context.Background(), req, "user-1")

			s.Require().Error(err)
			verr, ok := draft.AsValidationError(err)
			s.Require().True(ok)
			s.Equal(tc.kind, verr.Kind)
			// Nothing reached the repository
			s.repo.AssertNotCalled(s.T(), "Create", mock.Anything, mock.Anything)
		})
	}
}

func (s *TemplateServiceSuite) TestSaveTemplateRejectsExcessiveDiscount() {
	req := validSaveRequest()
	req.Discount = &DiscountInput{Type: draft.DiscountPercentage, Value: "150"}

	_, err := s.svc.SaveTemplate(context.Background(), req, "user-1")

	s.Require().Error(err)
	verr, ok := draft.AsValidationError(err)
	s.Require().True(ok)
	s.Equal(draft.KindDiscountExceedsMax, verr.Kind)
	s.Empty(s.notifier.Events())
}

func (s *TemplateServiceSuite) TestUpdateTemplateRejectsPrebuilt() {
	id := uuid.New()
	s.repo.On("FindByID", mock.Anything, id).
		Return(&model.InvoiceTemplate{ID: id, IsPrebuilt: true}, nil)

	_, err := s.svc.UpdateTemplate(context.Background(), id.String(), validSaveRequest(), "user-1")

	s.Require().Error(err)
	s.Contains(err.Error(), "prebuilt")
	s.repo.AssertNotCalled(s.T(), "Update", mock.Anything, mock.Anything)
}

func (s *TemplateServiceSuite) TestDeleteTemplateRejectsPrebuilt() {
	id := uuid.New()
	s.repo.On("FindByID", mock.Anything, id).
		Return(&model.InvoiceTemplate{ID: id, IsPrebuilt: true}, nil)

	err := s.svc.DeleteTemplate(context.Background(), id.String(), "user-1")

	s.Require().Error(err)
	s.Contains(err.Error(), "prebuilt")
	s.repo.AssertNotCalled(s.T(), "Delete", mock.Anything, mock.Anything)
	s.Empty(s.notifier.Events())
}

func (s *TemplateServiceSuite) TestDeleteTemplateBroadcasts() {
	id := uuid.New()
	s.repo.On("FindByID", mock.Anything, id).
		Return(&model.InvoiceTemplate{ID: id, Name: "Old"}, nil)
	s.repo.On("Delete", mock.Anything, id).Return(nil)

	err := s.svc.DeleteTemplate(context.Background(), id.String(), "user-1")

	s.Require().NoError(err)
	s.Contains(s.notifier.Events(), EventTemplateDeleted)
}

func TestPreviewTotals(t *testing.T) {
	svc := NewTemplateService(new(MockTemplateRepository), fakeTxManager{}, stubAudit{}, &recordingNotifier{})

	tests := []struct {
		name     string
		req      SaveTemplateRequest
		subtotal string
		discount string
		total    string
	}{
		{
			name: "no discount",
			req: SaveTemplateRequest{
				LineItems: []LineItemInput{
					{Name: "A", Quantity: "2", Rate: "100"},
					{Name: "B", Quantity: "1", Rate: "50.50"},
				},
			},
			subtotal: "250.50",
			discount: "0.00",
			total:    "250.50",
		},
		{
			name: "percentage discount",
			req: SaveTemplateRequest{
				LineItems: []LineItemInput{{Name: "A", Quantity: "1", Rate: "800"}},
				Discount:  &DiscountInput{Type: draft.DiscountPercentage, Value: "10"},
			},
			subtotal: "800.00",
			discount: "80.00",
			total:    "720.00",
		},
		{
			name: "amount discount larger than subtotal clamps to zero",
			req: SaveTemplateRequest{
				LineItems: []LineItemInput{{Name: "A", Quantity: "1", Rate: "40"}},
				Discount:  &DiscountInput{Type: draft.DiscountAmount, Value: "100"},
			},
			subtotal: "40.00",
			discount: "40.00",
			total:    "0.00",
		},
		{
			name:     "empty draft",
			req:      SaveTemplateRequest{},
			subtotal: "0.00",
			discount: "0.00",
			total:    "0.00",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			totals, err := svc.PreviewTotals(tt.req)
			require.NoError(t, err)
			assert.Equal(t, tt.subtotal, totals.Subtotal)
			assert.Equal(t, tt.discount, totals.DiscountAmount)
			assert.Equal(t, tt.total, totals.Total)
		})
	}
}

func TestPreviewTotalsRejectsBadInput(t *testing.T) {
	svc := NewTemplateService(new(MockTemplateRepository), fakeTxManager{}, stubAudit{}, &recordingNotifier{})

	_, err := svc.PreviewTotals(SaveTemplateRequest{
		LineItems: []LineItemInput{{Name: "A", Quantity: "abc", Rate: "10"}},
	})
	require.Error(t, err)

	_, err = svc.PreviewTotals(SaveTemplateRequest{
		LineItems: []LineItemInput{{Name: "A", Quantity: "1", Rate: "10"}},
		Discount:  &DiscountInput{Type: draft.DiscountAmount, Value: "-5"},
	})
	require.Error(t, err)
	verr, ok := draft.AsValidationError(err)
	require.True(t, ok)
	assert.Equal(t, draft.KindInvalidDiscountValue, verr.Kind)
}

func TestTemplateResponseCarriesCategoryColor(t *testing.T) {
	tmpl := model.InvoiceTemplate{
		ID:       uuid.New(),
		Name:     "Audit Engagement",
		Category: draft.CategoryAudit,
		LineItems: []model.TemplateLineItem{
			{ID: uuid.New(), Name: "Fieldwork", Quantity: decimal.NewFromInt(10), Rate: decimal.NewFromInt(185)},
		},
		RecurrencePattern: draft.PatternNone,
	}

	resp := toTemplateResponse(tmpl)

	style, _ := draft.StyleFor(draft.CategoryAudit)
	assert.Equal(t, style.Color, resp.Color)
	assert.Equal(t, "1850.00", resp.Totals.Subtotal)
	assert.Nil(t, resp.Recurrence)
}

func TestNilNotifierFallsBackToNop(t *testing.T) {
	repo := new(MockTemplateRepository)
	repo.On("Create", mock.Anything, mock.AnythingOfType("*model.InvoiceTemplate")).
		Run(func(args mock.Arguments) {
			args.Get(1).(*model.InvoiceTemplate).ID = uuid.New()
		}).
		Return(nil)

	svc := NewTemplateService(repo, fakeTxManager{}, stubAudit{}, nil)
	_, err := svc.SaveTemplate(context.Background(), validSaveRequest(), "user-1")
	require.NoError(t, err)

	memoRepo := new(MockMemoTemplateRepository)
	memoRepo.On("Create", mock.Anything, mock.AnythingOfType("*model.MemoTemplate")).
		Run(func(args mock.Arguments) {
			args.Get(1).(*model.MemoTemplate).ID = uuid.New()
		}).
		Return(nil)

	memoSvc := NewMemoTemplateService(memoRepo, stubAudit{}, nil)
	_, err = memoSvc.Create(context.Background(), CreateMemoTemplateRequest{
		Name:    "Net 30",
		Content: "Payment is due within 30 days.",
	}, "user-1")
	require.NoError(t, err)
}
