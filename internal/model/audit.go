package model

import (
	"time"

	"github.com/google/uuid"
)

const (
	ActionSaveTemplate   = "SAVE_TEMPLATE"
	ActionUpdateTemplate = "UPDATE_TEMPLATE"
	ActionDeleteTemplate = "DELETE_TEMPLATE"

	ActionCreateMemoTemplate = "CREATE_MEMO_TEMPLATE"
	ActionUpdateMemoTemplate = "UPDATE_MEMO_TEMPLATE"
	ActionDeleteMemoTemplate = "DELETE_MEMO_TEMPLATE"

	ActionCreateUser = "CREATE_USER"
)

// AuditLog tracks Who, What, and When for template and memo mutations
type AuditLog struct {
	ID         uuid.UUID  `gorm:"type:uuid;default:gen_random_uuid();primaryKey" json:"id"`
	UserID     *uuid.UUID `gorm:"type:uuid;index" json:"user_id"` // Nullable for system-initiated writes (seeding)
	User       *User      `gorm:"foreignKey:UserID" json:"user"`
	Action     string     `gorm:"type:varchar(50);not null;index" json:"action"`
	EntityID   string     `gorm:"type:varchar(50);index" json:"entity_id"`
	EntityName string     `gorm:"type:varchar(255)" json:"entity_name,omitempty"` // Human readable name
	Details    string     `gorm:"type:jsonb" json:"details"`                      // Serialized JSON payload of the action
	CreatedAt  time.Time  `gorm:"index" json:"created_at"`
}
