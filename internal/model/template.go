package model

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// InvoiceTemplate is a saved, reusable invoice template. Prebuilt rows form
// the read-only catalog that seeds the wizard's source-selection step.
type InvoiceTemplate struct {
	ID          uuid.UUID          `gorm:"type:uuid;default:gen_random_uuid();primaryKey" json:"id"`
	Name        string             `gorm:"type:varchar(255);not null" json:"name"`
	Description string             `gorm:"type:text" json:"description"`
	Category    string             `gorm:"type:varchar(30);not null;index" json:"category"` // closed set of 7 practice categories
	Icon        string             `gorm:"type:varchar(50);not null" json:"icon"`
	Memo        string             `gorm:"type:text" json:"memo"`
	IsPrebuilt  bool               `gorm:"default:false;index" json:"is_prebuilt"` // catalog entries are not editable or deletable
	LineItems   []TemplateLineItem `gorm:"foreignKey:TemplateID;constraint:OnUpdate:CASCADE,OnDelete:CASCADE;" json:"line_items"`

	// Optional subtotal-level discount, flattened into columns
	DiscountType  *string          `gorm:"type:varchar(20)" json:"discount_type"` // percentage or amount
	DiscountValue *decimal.Decimal `gorm:"type:decimal(18,4)" json:"discount_value"`

	// Recurrence rule — descriptive metadata only, never evaluated into invoices
	RecurrencePattern     string     `gorm:"type:varchar(20);not null;default:'none'" json:"recurrence_pattern"`
	RecurrenceInterval    int        `gorm:"not null;default:1" json:"recurrence_interval"`
	RecurrenceEndType     string     `gorm:"type:varchar(20);not null;default:'never'" json:"recurrence_end_type"`
	RecurrenceEndDate     *time.Time `gorm:"type:date" json:"recurrence_end_date"`
	RecurrenceOccurrences *int       `json:"recurrence_occurrences"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// TemplateLineItem is one billable row of a saved template. The row amount
// (quantity * rate) is derived on read and never stored.
type TemplateLineItem struct {
	ID          uuid.UUID       `gorm:"type:uuid;default:gen_random_uuid();primaryKey" json:"id"`
	TemplateID  uuid.UUID       `gorm:"type:uuid;not null;index" json:"template_id"`
	Position    int             `gorm:"not null" json:"position"` // insertion order is display order
	Name        string          `gorm:"type:varchar(255);not null" json:"name"`
	Description string          `gorm:"type:text" json:"description"`
	Quantity    decimal.Decimal `gorm:"type:decimal(18,4);not null;default:1" json:"quantity"`
	Rate        decimal.Decimal `gorm:"type:decimal(18,4);not null;default:0" json:"rate"`
}
