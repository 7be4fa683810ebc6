package model

import (
	"time"

	"github.com/google/uuid"
)

// MemoTemplate is a reusable payment-terms/notes block. Applying one to a
// draft is a one-way copy of Content into the draft's memo field — there is
// no live link back. Names are not required to be unique.
type MemoTemplate struct {
	ID        uuid.UUID `gorm:"type:uuid;default:gen_random_uuid();primaryKey" json:"id"`
	Name      string    `gorm:"type:varchar(255);not null;index" json:"name"`
	Content   string    `gorm:"type:text;not null" json:"content"`
	Category  string    `gorm:"type:varchar(100)" json:"category"` // free-form, not the template category enum
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}
