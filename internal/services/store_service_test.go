// internal/services/store_service_test.go
package services

import (
	"context"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/kartloop/dropship-backend/internal/models"
)

func TestCreateStoreCreatesLedgerProfile(t *testing.T) {
	db := newTestDB(t)
	svc := NewStoreService(db)
	ctx := context.Background()

	ownerID := uuid.New()
	store, err := svc.CreateStore(ctx, ownerID, "asha@example.com", &CreateStoreRequest{
		Name:         "Asha Collection",
		ContactEmail: "asha@example.com",
		UPIID:        "asha@okaxis",
	})
	require.NoError(t, err)

	assert.True(t, store.Active)
	assert.Contains(t, store.Slug, "asha-collection-")

	var profile models.CreatorProfile
	require.NoError(t, db.First(&profile, "auth_user_id = ?", ownerID).Error)
	assert.Equal(t, "asha@okaxis", profile.UPIID)
	assert.Zero(t, profile.TotalEarnings)
}

func TestCreateSecondStoreKeepsProfile(t *testing.T) {
	db := newTestDB(t)
	svc := NewStoreService(db)
	ctx := context.Background()

	ownerID := uuid.New()
	for _, name := range []string{"Asha Collection", "Asha Outlet"} {
		_, err := svc.CreateStore(ctx, ownerID, "asha@example.com", &CreateStoreRequest{
			Name:         name,
			ContactEmail: "asha@example.com",
		})
		require.NoError(t, err)
	}

	var count int64
	require.NoError(t, db.Model(&models.CreatorProfile{}).
		Where("auth_user_id = ?", ownerID).Count(&count).Error)
	assert.EqualValues(t, 1, count)
}

func TestUpdateStoreOwnershipCheck(t *testing.T) {
	db := newTestDB(t)
	svc := NewStoreService(db)
	ctx := context.Background()

	store := seedStore(t, db)

	name := "Renamed"
	_, err := svc.UpdateStore(ctx, store.ID, uuid.New(), &UpdateStoreRequest{Name: &name})
	assert.ErrorIs(t, err, ErrNotFound)

	updated, err := svc.UpdateStore(ctx, store.ID, store.OwnerAuthID, &UpdateStoreRequest{Name: &name})
	require.NoError(t, err)

	var reloaded models.Store
	require.NoError(t, db.First(&reloaded, "id = ?", updated.ID).Error)
	assert.Equal(t, "Renamed", reloaded.Name)
}

func TestGetStoreBySlugOnlyActive(t *testing.T) {
	db := newTestDB(t)
	svc := NewStoreService(db)
	ctx := context.Background()

	store := seedStore(t, db)

	found, err := svc.GetStoreBySlug(ctx, store.Slug)
	require.NoError(t, err)
	assert.Equal(t, store.ID, found.ID)

	require.NoError(t, db.Model(&models.Store{}).
		Where("id = ?", store.ID).Update("active", false).Error)

	_, err = svc.GetStoreBySlug(ctx, store.Slug)
	assert.ErrorIs(t, err, ErrNotFound)
}
