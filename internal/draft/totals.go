package draft

import "github.com/shopspring/decimal"

// Totals is the computed money summary for a set of line items plus an
// optional discount.
type Totals struct {
	Subtotal       decimal.Decimal `json:"subtotal"`
	DiscountAmount decimal.Decimal `json:"discount_amount"`
	Total          decimal.Decimal `json:"total"`
}

// ComputeTotals sums the line-item amounts, applies the discount, and clamps
// the total at zero. Pure and deterministic — safe to call on every
// keystroke for a live preview.
func ComputeTotals(items []LineItem, discount *Discount) Totals {
	subtotal := decimal.Zero
	for _, it := range items {
		subtotal = subtotal.Add(it.Amount())
	}

	off := discount.AmountOff(subtotal)

	total := subtotal.Sub(off)
	if total.IsNegative() {
		total = decimal.Zero
	}

	return Totals{
		Subtotal:       subtotal,
		DiscountAmount: off,
		Total:          total,
	}
}
