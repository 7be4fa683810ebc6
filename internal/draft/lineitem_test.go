package draft

import (
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestAddLineItem_BlankRowDefaults(t *testing.T) {
	items := AddLineItem(nil, nil)

	require.Len(t, items, 1)
	assert.NotEmpty(t, items[0].ID)
	assert.Empty(t, items[0].Name)
	assert.True(t, items[0].Quantity.Equal(decimal.NewFromInt(1)))
	assert.True(t, items[0].Rate.IsZero())
}

func TestAddLineItem_SeededFromCatalogEntry(t *testing.T) {
	seed := &Seed{
		Name:        "Quarterly VAT Return",
		Description: "Preparation and filing",
		DefaultRate: decimal.NewFromInt(350),
	}

	items := AddLineItem(nil, seed)

	require.Len(t, items, 1)
	assert.Equal(t, "Quarterly VAT Return", items[0].Name)
	assert.Equal(t, "Preparation and filing", items[0].Description)
	assert.True(t, items[0].Rate.Equal(decimal.NewFromInt(350)))
	assert.True(t, items[0].Quantity.Equal(decimal.NewFromInt(1)))
}

func TestAddLineItem_DuplicateNamesAllowed(t *testing.T) {
	seed := &Seed{Name: "Consultation", DefaultRate: decimal.NewFromInt(120)}

	items := AddLineItem(nil, seed)
	items = AddLineItem(items, seed)

	require.Len(t, items, 2)
	assert.Equal(t, items[0].Name, items[1].Name)
	assert.NotEqual(t, items[0].ID, items[1].ID)
}

func TestUpdateLineItem(t *testing.T) {
	items := AddLineItem(nil, nil)
	id := items[0].ID

	updated, err := UpdateLineItem(items, id, FieldName, "Monthly bookkeeping")
	require.NoError(t, err)
	assert.Equal(t, "Monthly bookkeeping", updated[0].Name)
	assert.Empty(t, items[0].Name, "original slice is untouched")

	updated, err = UpdateLineItem(updated, id, FieldQuantity, "2.5")
	require.NoError(t, err)
	assert.True(t, updated[0].Quantity.Equal(decimal.RequireFromString("2.5")))

	updated, err = UpdateLineItem(updated, id, FieldRate, "85")
	require.NoError(t, err)
	assert.True(t, updated[0].Rate.Equal(decimal.NewFromInt(85)))
}

func TestUpdateLineItem_UnknownIDIsNoOp(t *testing.T) {
	items := AddLineItem(nil, nil)

	updated, err := UpdateLineItem(items, "missing", FieldName, "anything")
	require.NoError(t, err)
	assert.Equal(t, items, updated)
}

func TestUpdateLineItem_RejectsBadNumericValues(t *testing.T) {
	items := AddLineItem(nil, nil)
	id := items[0].ID

	_, err := UpdateLineItem(items, id, FieldQuantity, "two")
	assert.Error(t, err)

	_, err = UpdateLineItem(items, id, FieldRate, "-10")
	assert.Error(t, err)

	_, err = UpdateLineItem(items, id, "color", "red")
	assert.Error(t, err)
}

func TestRemoveLineItem_AddThenRemoveRestoresValue(t *testing.T) {
	base := AddLineItem(nil, &Seed{Name: "Payroll run", DefaultRate: decimal.NewFromInt(60)})

	grown := AddLineItem(base, nil)
	require.Len(t, grown, 2)

	shrunk := RemoveLineItem(grown, grown[1].ID)
	require.Len(t, shrunk, 1)

	// Equal by value (ids included, since the surviving row is the same row).
	assert.Equal(t, base, shrunk)
}

func TestRemoveLineItem_UnconditionalAndUnknownIDSafe(t *testing.T) {
	items := AddLineItem(nil, nil)

	out := RemoveLineItem(items, "missing")
	assert.Len(t, out, 1)

	out = RemoveLineItem(out, out[0].ID)
	assert.Empty(t, out)
}

func TestStepFields_ClampAtZero(t *testing.T) {
	items := AddLineItem(nil, nil) // quantity 1, rate 0
	id := items[0].ID
	one := decimal.NewFromInt(1)

	items, err := IncrementField(items, id, FieldQuantity, one)
	require.NoError(t, err)
	assert.True(t, items[0].Quantity.Equal(decimal.NewFromInt(2)))

	items, err = DecrementField(items, id, FieldQuantity, decimal.NewFromInt(5))
	require.NoError(t, err)
	assert.True(t, items[0].Quantity.IsZero(), "quantity clamps at 0, got %s", items[0].Quantity)

	items, err = DecrementField(items, id, FieldRate, one)
	require.NoError(t, err)
	assert.True(t, items[0].Rate.IsZero(), "rate clamps at 0")

	_, err = IncrementField(items, id, FieldName, one)
	assert.Error(t, err, "only quantity and rate can be stepped")
}

func TestLineItemAmount_Derived(t *testing.T) {
	li := item("0.33", "300")
	assert.True(t, li.Amount().Equal(decimal.NewFromInt(99)))
}
