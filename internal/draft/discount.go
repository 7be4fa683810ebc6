package draft

import "github.com/shopspring/decimal"

// DiscountType enum constants
const (
	DiscountPercentage = "percentage"
	DiscountAmount     = "amount"
)

var oneHundred = decimal.NewFromInt(100)

// Discount is a single subtotal-level reduction. It applies once to the sum
// of line-item amounts and never compounds; a nil *Discount means none.
type Discount struct {
	Type  string          `json:"type"`
	Value decimal.Decimal `json:"value"`
}

// NewDiscount validates and builds a discount. The value must be positive,
// and percentage discounts are constrained to (0, 100].
func NewDiscount(discountType string, value decimal.Decimal) (*Discount, error) {
	if discountType != DiscountPercentage && discountType != DiscountAmount {
		return nil, newValidationError(KindInvalidDiscountValue, "discount type must be 'percentage' or 'amount'")
	}
	if !value.IsPositive() {
		return nil, newValidationError(KindInvalidDiscountValue, "discount value must be a positive number")
	}
	if discountType == DiscountPercentage && value.GreaterThan(oneHundred) {
		return nil, newValidationError(KindDiscountExceedsMax, "percentage discount cannot exceed 100")
	}
	return &Discount{Type: discountType, Value: value}, nil
}

// AmountOff returns how much the discount removes from the given subtotal.
// Fixed-amount discounts are capped at the subtotal here, so the
// non-negative-total invariant holds at this boundary.
func (d *Discount) AmountOff(subtotal decimal.Decimal) decimal.Decimal {
	if d == nil {
		return decimal.Zero
	}
	switch d.Type {
	case DiscountPercentage:
		return subtotal.Mul(d.Value).Div(oneHundred)
	case DiscountAmount:
		if d.Value.GreaterThan(subtotal) {
			return subtotal
		}
		return d.Value
	}
	return decimal.Zero
}
