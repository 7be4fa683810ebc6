// Package draft holds the pure invoice-template composition pipeline:
// line items feed a discount rule and a totals calculator, and a wizard
// state machine guards the path from an empty draft to a validated save.
// Everything here is synchronous value-type code with no I/O; persistence
// and transport live in the service and handler layers.
package draft

import "github.com/shopspring/decimal"

// DefaultMemo is the canned payment-terms text new drafts start with.
const DefaultMemo = "Payment is due within 30 days of the invoice date. Thank you for your business."

// TemplateDraft is the in-progress, unsaved invoice template being composed.
// Mutation methods return a new draft rather than mutating in place, so a
// rejected operation always leaves the previous state intact.
type TemplateDraft struct {
	ID          string          `json:"id,omitempty"`
	Name        string          `json:"name"`
	Description string          `json:"description"`
	Category    string          `json:"category"`
	Icon        string          `json:"icon"`
	LineItems   []LineItem      `json:"line_items"`
	Discount    *Discount       `json:"discount,omitempty"`
	Recurrence  *RecurrenceRule `json:"recurrence,omitempty"`
	Memo        string          `json:"memo"`
}

// New returns an empty draft with the canned memo. Name and category start
// blank and must be filled before the wizard lets the draft advance.
func New() TemplateDraft {
	return TemplateDraft{Memo: DefaultMemo}
}

// WithBasicInfo sets the identity fields edited on the first wizard step.
// The icon falls back to the category default when left blank.
func (d TemplateDraft) WithBasicInfo(name, description, category, icon string) TemplateDraft {
	d.Name = name
	d.Description = description
	d.Category = category
	if icon == "" && category != "" {
		icon = DefaultIcon(category)
	}
	d.Icon = icon
	return d
}

// WithMemo replaces the memo text (also used by memo-template apply, which
// is a one-way copy with no live link back to the registry).
func (d TemplateDraft) WithMemo(memo string) TemplateDraft {
	d.Memo = memo
	return d
}

// AddLineItem appends a blank or catalog-seeded row.
func (d TemplateDraft) AddLineItem(seed *Seed) TemplateDraft {
	d.LineItems = AddLineItem(d.LineItems, seed)
	return d
}

// UpdateLineItem edits one field of one row; unknown ids are a no-op.
func (d TemplateDraft) UpdateLineItem(id, field, value string) (TemplateDraft, error) {
	items, err := UpdateLineItem(d.LineItems, id, field, value)
	if err != nil {
		return d, err
	}
	d.LineItems = items
	return d, nil
}

// RemoveLineItem drops one row unconditionally.
func (d TemplateDraft) RemoveLineItem(id string) TemplateDraft {
	d.LineItems = RemoveLineItem(d.LineItems, id)
	return d
}

// StepLineItemField increments (positive step) or decrements (negative step)
// quantity or rate, clamping at zero.
func (d TemplateDraft) StepLineItemField(id, field string, step decimal.Decimal) (TemplateDraft, error) {
	items, err := IncrementField(d.LineItems, id, field, step)
	if err != nil {
		return d, err
	}
	d.LineItems = items
	return d, nil
}

// ApplyDiscount validates and replaces the discount atomically; on a
// validation failure the prior discount is left unchanged.
func (d TemplateDraft) ApplyDiscount(discountType string, value decimal.Decimal) (TemplateDraft, error) {
	disc, err := NewDiscount(discountType, value)
	if err != nil {
		return d, err
	}
	d.Discount = disc
	return d, nil
}

// RemoveDiscount clears the discount unconditionally.
func (d TemplateDraft) RemoveDiscount() TemplateDraft {
	d.Discount = nil
	return d
}

// WithRecurrence replaces the recurrence rule. A "none" rule clears it.
func (d TemplateDraft) WithRecurrence(rule *RecurrenceRule) TemplateDraft {
	if !rule.IsActive() {
		d.Recurrence = nil
		return d
	}
	d.Recurrence = rule
	return d
}

// Totals computes the live subtotal/discount/total for the draft.
func (d TemplateDraft) Totals() Totals {
	return ComputeTotals(d.LineItems, d.Discount)
}
