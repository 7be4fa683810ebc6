package draft

import (
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestWizard_StartsAtBasicInfo(t *testing.T) {
	w := NewWizard()
	assert.Equal(t, StepBasicInfo, w.Step)
	assert.Equal(t, DefaultMemo, w.Draft.Memo)
	assert.Empty(t, w.Draft.Category)
}

func TestWizard_AdvanceGuards(t *testing.T) {
	tests := []struct {
		name     string
		draft    func(d TemplateDraft) TemplateDraft
		wantKind ValidationKind
	}{
		{
			"missing name",
			func(d TemplateDraft) TemplateDraft {
				return d.WithBasicInfo("", "", CategoryPayroll, "")
			},
			KindMissingName,
		},
		{
			"missing category",
			func(d TemplateDraft) TemplateDraft {
				return d.WithBasicInfo("Monthly Bookkeeping", "", "", "")
			},
			KindMissingCategory,
		},
		{
			"category outside the closed set",
			func(d TemplateDraft) TemplateDraft {
				return d.WithBasicInfo("Monthly Bookkeeping", "", "landscaping", "")
			},
			KindMissingCategory,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			w := NewWizard()
			w.Draft = tt.draft(w.Draft)

			blocked, err := w.Advance(false)
			require.Error(t, err)

			ve, ok := AsValidationError(err)
			require.True(t, ok)
			assert.Equal(t, tt.wantKind, ve.Kind)
			assert.Equal(t, StepBasicInfo, blocked.Step, "blocked transition leaves the wizard in place")
		})
	}
}

func TestWizard_AdvanceFromScratchSkipsSourceSelection(t *testing.T) {
	w := NewWizard()
	w.Draft = w.Draft.WithBasicInfo("Monthly Bookkeeping", "", CategoryBookkeeping, "")

	w, err := w.Advance(false)
	require.NoError(t, err)
	assert.Equal(t, StepLineItemsAndDetails, w.Step)
	assert.False(t, w.FromTemplate)
}

func TestWizard_SourceSelectionCopiesLineItems(t *testing.T) {
	w := NewWizard()
	w.Draft = w.Draft.WithBasicInfo("Quarterly Tax Package", "", CategoryTaxPreparation, "")

	w, err := w.Advance(true)
	require.NoError(t, err)
	require.Equal(t, StepSourceSelection, w.Step)

	catalog := []LineItem{
		{ID: "cat-1", Name: "Return preparation", Quantity: decimal.NewFromInt(1), Rate: decimal.NewFromInt(450)},
		{ID: "cat-2", Name: "Filing fee", Quantity: decimal.NewFromInt(1), Rate: decimal.NewFromInt(75)},
	}

	w = w.SelectSource(catalog)
	assert.Equal(t, StepLineItemsAndDetails, w.Step)
	require.Len(t, w.Draft.LineItems, 2)

	for i, li := range w.Draft.LineItems {
		assert.Equal(t, catalog[i].Name, li.Name)
		assert.True(t, li.Rate.Equal(catalog[i].Rate))
		assert.NotEqual(t, catalog[i].ID, li.ID, "copied rows get fresh ids")
	}
}

func TestWizard_SelectSourceOutsideStepIsNoOp(t *testing.T) {
	w := NewWizard()
	before := w

	w = w.SelectSource([]LineItem{{ID: "cat-1", Name: "x"}})
	assert.Equal(t, before.Step, w.Step)
	assert.Empty(t, w.Draft.LineItems)
}

func TestWizard_BackFromScratchResetsCategory(t *testing.T) {
	w := NewWizard()
	w.Draft = w.Draft.WithBasicInfo("Advisory Retainer", "", CategoryAdvisory, "")

	w, err := w.Advance(false)
	require.NoError(t, err)

	w = w.Back()
	assert.Equal(t, StepBasicInfo, w.Step)
	assert.Equal(t, DefaultCategory, w.Draft.Category, "destructive back transition resets the category")
	assert.Equal(t, DefaultIcon(DefaultCategory), w.Draft.Icon)
	assert.Equal(t, "Advisory Retainer", w.Draft.Name, "name survives the reset")
}

func TestWizard_BackFromTemplateReturnsToSourceSelection(t *testing.T) {
	w := NewWizard()
	w.Draft = w.Draft.WithBasicInfo("Payroll Package", "", CategoryPayroll, "")

	w, err := w.Advance(true)
	require.NoError(t, err)
	w = w.SelectSource([]LineItem{{ID: "cat-1", Name: "Payroll run", Quantity: decimal.NewFromInt(1), Rate: decimal.NewFromInt(60)}})

	w = w.Back()
	assert.Equal(t, StepSourceSelection, w.Step)
	assert.Equal(t, CategoryPayroll, w.Draft.Category, "category is kept on the template path")
}

func TestWizard_FinishValidates(t *testing.T) {
	w := NewWizard()
	w.Draft = w.Draft.WithBasicInfo("Monthly Bookkeeping", "", CategoryBookkeeping, "")

	_, err := w.Finish()
	ve, ok := AsValidationError(err)
	require.True(t, ok)
	assert.Equal(t, KindNoLineItems, ve.Kind)

	w.Draft = w.Draft.AddLineItem(&Seed{Name: "Bookkeeping", DefaultRate: decimal.NewFromInt(250)})
	done, err := w.Finish()
	require.NoError(t, err)
	assert.Len(t, done.LineItems, 1)
}
