// internal/models/store.go
package models

import (
	"github.com/google/uuid"
	"github.com/lib/pq"
)

// Store is a reseller storefront. Orders placed through a store snapshot its
// id, owner and contact email at creation time.
type Store struct {
	BaseModel
	OwnerAuthID  uuid.UUID      `json:"owner_auth_id" gorm:"type:uuid;not null;index"`
	Name         string         `json:"name" gorm:"size:120;not null"`
	Slug         string         `json:"slug" gorm:"size:120;uniqueIndex;not null"`
	ContactEmail string         `json:"contact_email" gorm:"size:255;not null"`
	Description  string         `json:"description" gorm:"type:text"`
	LogoURL      string         `json:"logo_url,omitempty" gorm:"size:500"`
	ProductIDs   pq.StringArray `json:"product_ids" gorm:"type:text[]"`
	Active       bool           `json:"active" gorm:"default:true"`
}
