package draft

// TemplateCategory enum constants — the closed set of practice service areas
const (
	CategoryBookkeeping    = "bookkeeping"
	CategoryTaxPreparation = "tax_preparation"
	CategoryPayroll        = "payroll"
	CategoryAudit          = "audit"
	CategoryAdvisory       = "advisory"
	CategoryConsulting     = "consulting"
	CategoryOther          = "other"
)

// DefaultCategory is the category the wizard falls back to when a
// from-scratch draft navigates back to the basic-info step.
const DefaultCategory = CategoryBookkeeping

// CategoryStyle is the fixed display color and glyph assigned to a category.
type CategoryStyle struct {
	Label string `json:"label"`
	Color string `json:"color"`
	Glyph string `json:"glyph"`
}

var categoryStyles = map[string]CategoryStyle{
	CategoryBookkeeping:    {Label: "Bookkeeping", Color: "#2563EB", Glyph: "ledger"},
	CategoryTaxPreparation: {Label: "Tax Preparation", Color: "#16A34A", Glyph: "calculator"},
	CategoryPayroll:        {Label: "Payroll", Color: "#9333EA", Glyph: "wallet"},
	CategoryAudit:          {Label: "Audit", Color: "#DC2626", Glyph: "magnifier"},
	CategoryAdvisory:       {Label: "Advisory", Color: "#D97706", Glyph: "compass"},
	CategoryConsulting:     {Label: "Consulting", Color: "#0D9488", Glyph: "briefcase"},
	CategoryOther:          {Label: "Other", Color: "#64748B", Glyph: "folder"},
}

// Categories returns the closed category set in display order.
func Categories() []string {
	return []string{
		CategoryBookkeeping,
		CategoryTaxPreparation,
		CategoryPayroll,
		CategoryAudit,
		CategoryAdvisory,
		CategoryConsulting,
		CategoryOther,
	}
}

// IsValidCategory reports whether c belongs to the closed category set.
func IsValidCategory(c string) bool {
	_, ok := categoryStyles[c]
	return ok
}

// StyleFor returns the display style of a category.
func StyleFor(category string) (CategoryStyle, bool) {
	s, ok := categoryStyles[category]
	return s, ok
}

// DefaultIcon returns the category-associated default glyph. The draft's
// icon starts from this and is freely overridable.
func DefaultIcon(category string) string {
	if s, ok := categoryStyles[category]; ok {
		return s.Glyph
	}
	return categoryStyles[CategoryOther].Glyph
}
