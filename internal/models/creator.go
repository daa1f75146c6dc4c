// internal/models/creator.go
package models

import (
	"github.com/google/uuid"
)

// CreatorProfile is the per-reseller earnings ledger entry. AuthUserID links
// the profile to the auth identity (users.id); the payout workflow locates the
// profile by equality on this field, not by the profile's own id.
type CreatorProfile struct {
	BaseModel
	AuthUserID   uuid.UUID `json:"auth_user_id" gorm:"type:uuid;uniqueIndex;not null"`
	DisplayName  string    `json:"display_name" gorm:"size:120;not null"`
	ContactEmail string    `json:"contact_email" gorm:"size:255"`
	Phone        string    `json:"phone" gorm:"size:20"`
	UPIID        string    `json:"upi_id,omitempty" gorm:"size:120"`

	// TotalEarnings is mutated only inside the ledger transactions: credited
	// by delivered-order profit, debited by approved withdrawals. Never
	// negative.
	TotalEarnings float64 `json:"total_earnings" gorm:"type:decimal(12,2);default:0;not null"`
}
