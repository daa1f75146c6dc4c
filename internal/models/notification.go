// internal/models/notification.go
package models

import (
	"time"
)

// Notification is an append-only row feeding the admin and creator dashboards.
// It is written after a state change commits, never inside the transaction
// that produced the change.
type Notification struct {
	BaseModel
	Title       string     `json:"title" gorm:"size:255;not null"`
	Description string     `json:"description" gorm:"type:text;not null"`
	Link        string     `json:"link,omitempty" gorm:"size:500"`
	Read        bool       `json:"read" gorm:"default:false;index"`
	ReadAt      *time.Time `json:"read_at,omitempty"`
}
