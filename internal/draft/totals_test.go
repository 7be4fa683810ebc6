package draft

import (
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func item(qty, rate string) LineItem {
	return LineItem{
		ID:       "test-" + qty + "-" + rate,
		Name:     "Service",
		Quantity: decimal.RequireFromString(qty),
		Rate:     decimal.RequireFromString(rate),
	}
}

func TestComputeTotals_SubtotalIsSumOfAmounts(t *testing.T) {
	tests := []struct {
		name     string
		items    []LineItem
		expected string
	}{
		{"empty list", nil, "0"},
		{"single item", []LineItem{item("2", "150")}, "300"},
		{"multiple items", []LineItem{item("2", "150"), item("1", "500")}, "800"},
		{"fractional quantity", []LineItem{item("0.33", "300")}, "99"},
		{"zero rate rows ignored in sum", []LineItem{item("5", "0"), item("1", "49.99")}, "49.99"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			totals := ComputeTotals(tt.items, nil)
			assert.True(t, totals.Subtotal.Equal(decimal.RequireFromString(tt.expected)),
				"subtotal = %s, want %s", totals.Subtotal, tt.expected)
			assert.True(t, totals.DiscountAmount.IsZero())
			assert.True(t, totals.Total.Equal(totals.Subtotal))
		})
	}
}

func TestComputeTotals_PercentageDiscount(t *testing.T) {
	items := []LineItem{item("2", "150"), item("1", "500")}

	disc, err := NewDiscount(DiscountPercentage, decimal.NewFromInt(10))
	require.NoError(t, err)

	totals := ComputeTotals(items, disc)
	assert.True(t, totals.Subtotal.Equal(decimal.NewFromInt(800)))
	assert.True(t, totals.DiscountAmount.Equal(decimal.NewFromInt(80)), "discount = %s", totals.DiscountAmount)
	assert.True(t, totals.Total.Equal(decimal.NewFromInt(720)), "total = %s", totals.Total)
}

func TestComputeTotals_FullPercentageZeroesTotal(t *testing.T) {
	items := []LineItem{item("3", "99.95")}

	disc, err := NewDiscount(DiscountPercentage, decimal.NewFromInt(100))
	require.NoError(t, err)

	totals := ComputeTotals(items, disc)
	assert.True(t, totals.Total.IsZero(), "total = %s", totals.Total)
}

func TestComputeTotals_AmountDiscountClampsAtZero(t *testing.T) {
	items := []LineItem{item("2", "150"), item("1", "500")}

	disc, err := NewDiscount(DiscountAmount, decimal.NewFromInt(1000))
	require.NoError(t, err)

	totals := ComputeTotals(items, disc)
	assert.True(t, totals.DiscountAmount.Equal(decimal.NewFromInt(800)), "amount discount is capped at subtotal")
	assert.True(t, totals.Total.IsZero(), "total clamps to 0, got %s", totals.Total)
	assert.False(t, totals.Total.IsNegative())
}

func TestComputeTotals_AmountDiscountWithinSubtotal(t *testing.T) {
	items := []LineItem{item("2", "150"), item("1", "500")}

	disc, err := NewDiscount(DiscountAmount, decimal.NewFromInt(50))
	require.NoError(t, err)

	totals := ComputeTotals(items, disc)
	assert.True(t, totals.DiscountAmount.Equal(decimal.NewFromInt(50)))
	assert.True(t, totals.Total.Equal(decimal.NewFromInt(750)))
}

func TestComputeTotals_IsPure(t *testing.T) {
	items := []LineItem{item("1", "100")}
	disc, err := NewDiscount(DiscountPercentage, decimal.NewFromInt(25))
	require.NoError(t, err)

	first := ComputeTotals(items, disc)
	second := ComputeTotals(items, disc)

	assert.True(t, first.Total.Equal(second.Total))
	assert.True(t, items[0].Quantity.Equal(decimal.NewFromInt(1)), "inputs are not mutated")
	assert.True(t, disc.Value.Equal(decimal.NewFromInt(25)))
}
