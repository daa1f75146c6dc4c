// internal/services/store_service.go
package services

import (
	"context"
	"errors"
	"fmt"
	"regexp"
	"strings"

	"github.com/google/uuid"
	"github.com/lib/pq"
	"gorm.io/gorm"

	"github.com/kartloop/dropship-backend/internal/models"
	"github.com/kartloop/dropship-backend/internal/utils"
)

// StoreService manages reseller storefronts. Creating a store also ensures the
// owner has a creator profile so delivered orders have a ledger to credit.
type StoreService struct {
	db *gorm.DB
}

type CreateStoreRequest struct {
	Name         string `json:"name" validate:"required,min=3,max=120"`
	ContactEmail string `json:"contact_email" validate:"required,email"`
	Description  string `json:"description,omitempty"`
	LogoURL      string `json:"logo_url,omitempty"`
	UPIID        string `json:"upi_id,omitempty" validate:"omitempty,upi"`
}

type UpdateStoreRequest struct {
	Name         *string  `json:"name,omitempty" validate:"omitempty,min=3,max=120"`
	ContactEmail *string  `json:"contact_email,omitempty" validate:"omitempty,email"`
	Description  *string  `json:"description,omitempty"`
	LogoURL      *string  `json:"logo_url,omitempty"`
	ProductIDs   []string `json:"product_ids,omitempty"`
	Active       *bool    `json:"active,omitempty"`
}

var slugCleaner = regexp.MustCompile(`[^a-z0-9]+`)

func NewStoreService(db *gorm.DB) *StoreService {
	return &StoreService{db: db}
}

func (s *StoreService) CreateStore(ctx context.Context, ownerAuthID uuid.UUID, ownerEmail string, req *CreateStoreRequest) (*models.Store, error) {
	if err := utils.ValidateStruct(req); err != nil {
		return nil, fmt.Errorf("validation failed: %w", err)
	}

	base := strings.Trim(slugCleaner.ReplaceAllString(strings.ToLower(req.Name), "-"), "-")
	slug, err := utils.GenerateSlug(base)
	if err != nil {
		return nil, fmt.Errorf("failed to generate slug: %w", err)
	}

	store := &models.Store{
		OwnerAuthID:  ownerAuthID,
		Name:         req.Name,
		Slug:         slug,
		ContactEmail: req.ContactEmail,
		Description:  req.Description,
		LogoURL:      req.LogoURL,
		Active:       true,
	}

	if err := s.db.WithContext(ctx).Create(store).Error; err != nil {
		return nil, fmt.Errorf("failed to create store: %w", err)
	}

	// Ensure a ledger entry exists for the owner.
	var profile models.CreatorProfile
	err = s.db.WithContext(ctx).Where("auth_user_id = ?", ownerAuthID).First(&profile).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		profile = models.CreatorProfile{
			AuthUserID:   ownerAuthID,
			DisplayName:  req.Name,
			ContactEmail: ownerEmail,
			UPIID:        req.UPIID,
		}
		if err := s.db.WithContext(ctx).Create(&profile).Error; err != nil {
			return nil, fmt.Errorf("failed to create creator profile: %w", err)
		}
	} else if err != nil {
		return nil, fmt.Errorf("failed to load creator profile: %w", err)
	}

	return store, nil
}

func (s *StoreService) UpdateStore(ctx context.Context, storeID uuid.UUID, ownerAuthID uuid.UUID, req *UpdateStoreRequest) (*models.Store, error) {
	if err := utils.ValidateStruct(req); err != nil {
		return nil, fmt.Errorf("validation failed: %w", err)
	}

	var store models.Store
	if err := s.db.WithContext(ctx).First(&store, "id = ?", storeID).Error; err != nil {
		return nil, notFoundOr(err, "failed to load store")
	}

	if store.OwnerAuthID != ownerAuthID {
		return nil, fmt.Errorf("%w: store %s", ErrNotFound, storeID)
	}

	updates := make(map[string]interface{})
	if req.Name != nil {
		updates["name"] = *req.Name
	}
	if req.ContactEmail != nil {
		updates["contact_email"] = *req.ContactEmail
	}
	if req.Description != nil {
		updates["description"] = *req.Description
	}
	if req.LogoURL != nil {
		updates["logo_url"] = *req.LogoURL
	}
	if req.ProductIDs != nil {
		updates["product_ids"] = pq.StringArray(req.ProductIDs)
	}
	if req.Active != nil {
		updates["active"] = *req.Active
	}

	if len(updates) > 0 {
		if err := s.db.WithContext(ctx).Model(&store).Updates(updates).Error; err != nil {
			return nil, fmt.Errorf("failed to update store: %w", err)
		}
	}

	return &store, nil
}

func (s *StoreService) GetStoreBySlug(ctx context.Context, slug string) (*models.Store, error) {
	var store models.Store
	if err := s.db.WithContext(ctx).Where("slug = ? AND active = ?", slug, true).First(&store).Error; err != nil {
		return nil, notFoundOr(err, "failed to load store")
	}
	return &store, nil
}

func (s *StoreService) ListStoresByOwner(ctx context.Context, ownerAuthID uuid.UUID) ([]models.Store, error) {
	var stores []models.Store
	if err := s.db.WithContext(ctx).Where("owner_auth_id = ?", ownerAuthID).
		Order("created_at DESC").Find(&stores).Error; err != nil {
		return nil, fmt.Errorf("failed to fetch stores: %w", err)
	}
	return stores, nil
}
