package draft

import (
	"fmt"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// LineItem is one billable row (service/product) on a template draft.
// The row amount is always derived from quantity and rate, never stored.
type LineItem struct {
	ID          string          `json:"id"`
	Name        string          `json:"name"`
	Description string          `json:"description"`
	Quantity    decimal.Decimal `json:"quantity"`
	Rate        decimal.Decimal `json:"rate"`
}

// Amount returns quantity * rate for this row.
func (li LineItem) Amount() decimal.Decimal {
	return li.Quantity.Mul(li.Rate)
}

// Seed carries catalog-entry values used to prefill a new row.
type Seed struct {
	Name        string
	Description string
	DefaultRate decimal.Decimal
}

// Editable line-item field names accepted by UpdateLineItem.
const (
	FieldName        = "name"
	FieldDescription = "description"
	FieldQuantity    = "quantity"
	FieldRate        = "rate"
)

// AddLineItem appends a new row and returns the new slice. With no seed the
// row is a blank editable one (quantity 1, rate 0); with a seed it copies the
// catalog entry's name, description, and default rate. Duplicate names are
// allowed; insertion order is display order.
func AddLineItem(items []LineItem, seed *Seed) []LineItem {
	item := LineItem{
		ID:       uuid.NewString(),
		Quantity: decimal.NewFromInt(1),
		Rate:     decimal.Zero,
	}
	if seed != nil {
		item.Name = seed.Name
		item.Description = seed.Description
		item.Rate = seed.DefaultRate
	}

	out := make([]LineItem, 0, len(items)+1)
	out = append(out, items...)
	return append(out, item)
}

// UpdateLineItem replaces one field on the row with the matching id and
// returns the new slice. Unknown ids are a no-op. Quantity and rate values
// are decimal strings and must parse to non-negative numbers.
func UpdateLineItem(items []LineItem, id, field, value string) ([]LineItem, error) {
	idx := indexOf(items, id)
	if idx < 0 {
		return items, nil
	}

	out := make([]LineItem, len(items))
	copy(out, items)

	switch field {
	case FieldName:
		out[idx].Name = value
	case FieldDescription:
		out[idx].Description = value
	case FieldQuantity:
		qty, err := parseNonNegative(value, "quantity")
		if err != nil {
			return items, err
		}
		out[idx].Quantity = qty
	case FieldRate:
		rate, err := parseNonNegative(value, "rate")
		if err != nil {
			return items, err
		}
		out[idx].Rate = rate
	default:
		return items, fmt.Errorf("unknown line item field %q", field)
	}

	return out, nil
}

// RemoveLineItem filters the row out unconditionally and returns the new slice.
func RemoveLineItem(items []LineItem, id string) []LineItem {
	out := make([]LineItem, 0, len(items))
	for _, it := range items {
		if it.ID != id {
			out = append(out, it)
		}
	}
	return out
}

// IncrementField adds step to the row's quantity or rate, clamping at 0.
func IncrementField(items []LineItem, id, field string, step decimal.Decimal) ([]LineItem, error) {
	return stepField(items, id, field, step)
}

// DecrementField subtracts step from the row's quantity or rate, clamping at 0.
func DecrementField(items []LineItem, id, field string, step decimal.Decimal) ([]LineItem, error) {
	return stepField(items, id, field, step.Neg())
}

func stepField(items []LineItem, id, field string, step decimal.Decimal) ([]LineItem, error) {
	idx := indexOf(items, id)
	if idx < 0 {
		return items, nil
	}

	out := make([]LineItem, len(items))
	copy(out, items)

	switch field {
	case FieldQuantity:
		out[idx].Quantity = clampZero(out[idx].Quantity.Add(step))
	case FieldRate:
		out[idx].Rate = clampZero(out[idx].Rate.Add(step))
	default:
		return items, fmt.Errorf("field %q cannot be stepped", field)
	}

	return out, nil
}

func indexOf(items []LineItem, id string) int {
	for i, it := range items {
		if it.ID == id {
			return i
		}
	}
	return -1
}

func clampZero(d decimal.Decimal) decimal.Decimal {
	if d.IsNegative() {
		return decimal.Zero
	}
	return d
}

func parseNonNegative(value, field string) (decimal.Decimal, error) {
	d, err := decimal.NewFromString(value)
	if err != nil {
		return decimal.Zero, fmt.Errorf("invalid %s value: %w", field, err)
	}
	if d.IsNegative() {
		return decimal.Zero, fmt.Errorf("%s must not be negative", field)
	}
	return d, nil
}
