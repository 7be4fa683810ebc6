package model

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// LineItemCatalogEntry is a read-only catalog row used to seed new line
// items in the wizard. Seeding copies name, description, and default rate
// into a fresh draft row.
type LineItemCatalogEntry struct {
	ID          uuid.UUID       `gorm:"type:uuid;default:gen_random_uuid();primaryKey" json:"id"`
	Name        string          `gorm:"type:varchar(255);not null" json:"name"`
	Description string          `gorm:"type:text" json:"description"`
	Category    string          `gorm:"type:varchar(100);index" json:"category"` // free-form grouping for the picker
	DefaultRate decimal.Decimal `gorm:"type:decimal(18,4);not null;default:0" json:"default_rate"`
	CreatedAt   time.Time       `json:"created_at"`
}
