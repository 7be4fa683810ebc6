package draft

import "errors"

// ValidationKind identifies which pre-save check failed.
type ValidationKind string

const (
	KindMissingName          ValidationKind = "MISSING_NAME"
	KindMissingCategory      ValidationKind = "MISSING_CATEGORY"
	KindNoLineItems          ValidationKind = "NO_LINE_ITEMS"
	KindInvalidDiscountValue ValidationKind = "INVALID_DISCOUNT_VALUE"
	KindDiscountExceedsMax   ValidationKind = "DISCOUNT_EXCEEDS_MAX"
)

// ValidationError is a recoverable, user-facing failure: the triggering
// operation simply does not proceed and no partial mutation occurs.
type ValidationError struct {
	Kind    ValidationKind
	Message string
}

func (e *ValidationError) Error() string {
	return e.Message
}

func newValidationError(kind ValidationKind, message string) *ValidationError {
	return &ValidationError{Kind: kind, Message: message}
}

// AsValidationError unwraps err into a *ValidationError if it is one.
func AsValidationError(err error) (*ValidationError, bool) {
	var ve *ValidationError
	if errors.As(err, &ve) {
		return ve, true
	}
	return nil, false
}

// Validate is the pure pre-save check for a draft. Checks run in a fixed
// order — name, then category, then line items — and the first failure wins.
func Validate(d TemplateDraft) error {
	if d.Name == "" {
		return newValidationError(KindMissingName, "template name is required")
	}
	if d.Category == "" || !IsValidCategory(d.Category) {
		return newValidationError(KindMissingCategory, "a template category is required")
	}
	if len(d.LineItems) == 0 {
		return newValidationError(KindNoLineItems, "a template needs at least one line item")
	}
	return nil
}
