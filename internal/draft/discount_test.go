package draft

import (
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewDiscount_RejectsInvalidValues(t *testing.T) {
	tests := []struct {
		name         string
		discountType string
		value        string
		wantKind     ValidationKind
	}{
		{"zero value", DiscountPercentage, "0", KindInvalidDiscountValue},
		{"negative percentage", DiscountPercentage, "-5", KindInvalidDiscountValue},
		{"negative amount", DiscountAmount, "-100", KindInvalidDiscountValue},
		{"percentage over 100", DiscountPercentage, "100.01", KindDiscountExceedsMax},
		{"unknown type", "coupon", "10", KindInvalidDiscountValue},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			disc, err := NewDiscount(tt.discountType, decimal.RequireFromString(tt.value))
			require.Error(t, err)
			assert.Nil(t, disc)

			ve, ok := AsValidationError(err)
			require.True(t, ok, "expected a validation error, got %T", err)
			assert.Equal(t, tt.wantKind, ve.Kind)
		})
	}
}

func TestNewDiscount_BoundaryPercentage(t *testing.T) {
	disc, err := NewDiscount(DiscountPercentage, decimal.NewFromInt(100))
	require.NoError(t, err, "100%% is inside the allowed range")
	assert.True(t, disc.Value.Equal(decimal.NewFromInt(100)))
}

func TestApplyDiscount_RejectionLeavesPriorDiscountUnchanged(t *testing.T) {
	d := New().AddLineItem(nil)

	d, err := d.ApplyDiscount(DiscountPercentage, decimal.NewFromInt(15))
	require.NoError(t, err)

	// A rejected replacement must not disturb the existing discount,
	// no matter how many times it is attempted.
	for i := 0; i < 3; i++ {
		next, err := d.ApplyDiscount(DiscountPercentage, decimal.NewFromInt(250))
		require.Error(t, err)
		require.NotNil(t, next.Discount)
		assert.Equal(t, DiscountPercentage, next.Discount.Type)
		assert.True(t, next.Discount.Value.Equal(decimal.NewFromInt(15)))
		d = next
	}
}

func TestApplyDiscount_ReplacesAtomically(t *testing.T) {
	d := New()

	d, err := d.ApplyDiscount(DiscountPercentage, decimal.NewFromInt(10))
	require.NoError(t, err)

	d, err = d.ApplyDiscount(DiscountAmount, decimal.NewFromInt(50))
	require.NoError(t, err)

	assert.Equal(t, DiscountAmount, d.Discount.Type)
	assert.True(t, d.Discount.Value.Equal(decimal.NewFromInt(50)))
}

func TestRemoveDiscount_Unconditional(t *testing.T) {
	d := New()
	d, err := d.ApplyDiscount(DiscountAmount, decimal.NewFromInt(25))
	require.NoError(t, err)

	d = d.RemoveDiscount()
	assert.Nil(t, d.Discount)

	// Removing again is a no-op, not an error.
	d = d.RemoveDiscount()
	assert.Nil(t, d.Discount)
}

func TestAmountOff_NilDiscountIsZero(t *testing.T) {
	var disc *Discount
	assert.True(t, disc.AmountOff(decimal.NewFromInt(500)).IsZero())
}
