package draft

import (
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func validDraft() TemplateDraft {
	d := New().WithBasicInfo("Monthly Bookkeeping", "Recurring monthly package", CategoryBookkeeping, "")
	return d.AddLineItem(&Seed{Name: "Bookkeeping", DefaultRate: decimal.NewFromInt(250)})
}

func TestValidate_OK(t *testing.T) {
	assert.NoError(t, Validate(validDraft()))
}

func TestValidate_EmptyNameAlwaysFailsFirst(t *testing.T) {
	// Regardless of every other field being valid or invalid.
	d := validDraft()
	d.Name = ""
	d.Category = ""
	d.LineItems = nil

	err := Validate(d)
	ve, ok := AsValidationError(err)
	require.True(t, ok)
	assert.Equal(t, KindMissingName, ve.Kind)
}

func TestValidate_CategoryCheckedBeforeLineItems(t *testing.T) {
	d := New().WithBasicInfo("Monthly Bookkeeping", "", "", "")
	d = d.AddLineItem(nil) // line items present, category missing

	err := Validate(d)
	ve, ok := AsValidationError(err)
	require.True(t, ok)
	assert.Equal(t, KindMissingCategory, ve.Kind)
}

func TestValidate_ZeroLineItems(t *testing.T) {
	d := New().WithBasicInfo("Monthly Bookkeeping", "", CategoryBookkeeping, "")

	err := Validate(d)
	ve, ok := AsValidationError(err)
	require.True(t, ok)
	assert.Equal(t, KindNoLineItems, ve.Kind)
}

func TestValidate_IsPure(t *testing.T) {
	d := New()
	_ = Validate(d)
	assert.Equal(t, New(), d, "validation must not mutate the draft")
}

func TestWithBasicInfo_IconDefaultsToCategoryGlyph(t *testing.T) {
	d := New().WithBasicInfo("Audit Engagement", "", CategoryAudit, "")
	style, ok := StyleFor(CategoryAudit)
	require.True(t, ok)
	assert.Equal(t, style.Glyph, d.Icon)

	d = New().WithBasicInfo("Audit Engagement", "", CategoryAudit, "custom-glyph")
	assert.Equal(t, "custom-glyph", d.Icon, "explicit icon overrides the default")
}

func TestCategories_ClosedSetOfSeven(t *testing.T) {
	cats := Categories()
	assert.Len(t, cats, 7)
	for _, c := range cats {
		assert.True(t, IsValidCategory(c))
		style, ok := StyleFor(c)
		require.True(t, ok)
		assert.NotEmpty(t, style.Color)
		assert.NotEmpty(t, style.Glyph)
	}
	assert.True(t, IsValidCategory(DefaultCategory))
}
