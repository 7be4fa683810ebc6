package draft

// Step enum constants — the wizard's linear composition flow.
const (
	StepBasicInfo           = "basic_info"
	StepSourceSelection     = "source_selection"
	StepLineItemsAndDetails = "line_items_and_details"
)

// Wizard tracks where a draft sits in the composition flow and whether it
// was started from an existing catalog template or from scratch.
type Wizard struct {
	Step         string        `json:"step"`
	FromTemplate bool          `json:"from_template"`
	Draft        TemplateDraft `json:"draft"`
}

// NewWizard starts a fresh wizard at the basic-info step.
func NewWizard() Wizard {
	return Wizard{Step: StepBasicInfo, Draft: New()}
}

// Advance moves forward out of the basic-info step. fromTemplate selects the
// optional source-selection path; otherwise the wizard jumps straight to
// line items. Leaving basic info without a name or category is blocked with
// the matching validation kind and the wizard state is unchanged.
func (w Wizard) Advance(fromTemplate bool) (Wizard, error) {
	if w.Step != StepBasicInfo {
		return w, nil
	}
	if w.Draft.Name == "" {
		return w, newValidationError(KindMissingName, "enter a template name before continuing")
	}
	if w.Draft.Category == "" || !IsValidCategory(w.Draft.Category) {
		return w, newValidationError(KindMissingCategory, "choose a category before continuing")
	}

	w.FromTemplate = fromTemplate
	if fromTemplate {
		w.Step = StepSourceSelection
	} else {
		w.Step = StepLineItemsAndDetails
	}
	return w, nil
}

// SelectSource copies a catalog template's line items into the draft and
// transitions directly to the line-items step. Only valid while the wizard
// sits on source selection. The copied rows get fresh ids so edits never
// touch the catalog entry.
func (w Wizard) SelectSource(items []LineItem) Wizard {
	if w.Step != StepSourceSelection {
		return w
	}

	copied := make([]LineItem, 0, len(items))
	for _, it := range items {
		copied = AddLineItem(copied, &Seed{Name: it.Name, Description: it.Description, DefaultRate: it.Rate})
		copied[len(copied)-1].Quantity = it.Quantity
	}

	w.Draft.LineItems = copied
	w.Step = StepLineItemsAndDetails
	return w
}

// Back navigates one step backward. Going from the line-items step back to
// basic info on a from-scratch draft resets the category to the system
// default — an intentional destructive transition that also discards the
// source-selection choice.
func (w Wizard) Back() Wizard {
	switch w.Step {
	case StepSourceSelection:
		w.Step = StepBasicInfo
	case StepLineItemsAndDetails:
		if w.FromTemplate {
			w.Step = StepSourceSelection
			return w
		}
		w.Step = StepBasicInfo
		w.Draft.Category = DefaultCategory
		w.Draft.Icon = DefaultIcon(DefaultCategory)
	}
	return w
}

// Finish runs the pre-save validation and hands back the completed draft.
// The save itself (persistence, catalog insertion) belongs to the caller.
func (w Wizard) Finish() (TemplateDraft, error) {
	if err := Validate(w.Draft); err != nil {
		return TemplateDraft{}, err
	}
	return w.Draft, nil
}
