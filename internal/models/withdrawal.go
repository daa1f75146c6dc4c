// internal/models/withdrawal.go
package models

import (
	"time"

	"github.com/google/uuid"
)

type WithdrawalRequest struct {
	BaseModel
	CreatorAuthID uuid.UUID `json:"creator_auth_id" gorm:"type:uuid;not null;index"`
	Amount        float64   `json:"amount" gorm:"type:decimal(12,2);not null"`
	// BalanceAtRequest is an informational snapshot; the authoritative balance
	// check happens at approval time.
	BalanceAtRequest float64          `json:"balance_at_request" gorm:"type:decimal(12,2);not null"`
	UPIID            string           `json:"upi_id,omitempty" gorm:"size:120"`
	Status           WithdrawalStatus `json:"status" gorm:"type:varchar(20);default:'pending';index"`
	PaidAt           *time.Time       `json:"paid_at,omitempty"`
}
