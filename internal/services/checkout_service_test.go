// internal/services/checkout_service_test.go
package services

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"

	"github.com/kartloop/dropship-backend/internal/models"
)

func newCheckoutService(t *testing.T) (*CheckoutService, *gorm.DB) {
	t.Helper()

	db := newTestDB(t)
	cfg := newTestConfig()
	return NewCheckoutService(db, cfg, NewNotificationService(db, cfg)), db
}

func testCheckoutInput(store *models.Store, items ...CheckoutItemInput) *CheckoutInput {
	return &CheckoutInput{
		StoreSlug:     store.Slug,
		CustomerName:  "Asha Rao",
		CustomerEmail: "asha@example.com",
		CustomerPhone: "9876543210",
		ShippingAddress: map[string]interface{}{
			"line1": "12 MG Road",
			"city":  "Bengaluru",
			"pin":   "560001",
		},
		Items: items,
	}
}

func TestCreateOrderSnapshotsPricesAndStore(t *testing.T) {
	svc, db := newCheckoutService(t)
	ctx := context.Background()

	store := seedStore(t, db)
	kurta := seedProduct(t, db, models.ProductStatusActive, 799.0)
	dupatta := seedProduct(t, db, models.ProductStatusActive, 299.0)

	order, err := svc.CreateOrder(ctx, testCheckoutInput(store,
		CheckoutItemInput{ProductID: kurta.ID, Quantity: 2, Size: "M"},
		CheckoutItemInput{ProductID: dupatta.ID, Quantity: 1},
	))
	require.NoError(t, err)

	assert.Equal(t, models.OrderStatusProcessing, order.Status)
	assert.InDelta(t, 2*799.0+299.0, order.TotalAmount, 0.001)
	assert.NotEmpty(t, order.OrderNumber)
	assert.Nil(t, order.Profit)

	// store attribution is frozen on the order
	assert.Equal(t, store.ID, order.StoreID)
	assert.Equal(t, store.OwnerAuthID, order.StoreOwnerID)
	assert.Equal(t, store.ContactEmail, order.StoreContactEmail)

	require.Len(t, order.Items, 2)
	assert.Equal(t, kurta.Title, order.Items[0].Title)
	assert.InDelta(t, 799.0, order.Items[0].UnitPrice, 0.001)
	assert.Equal(t, 2, order.Items[0].Quantity)

	// checkout appends an order-placed notification
	assert.EqualValues(t, 1, countNotifications(t, db))
}

func TestCreateOrderPriceChangeDoesNotAffectExistingOrder(t *testing.T) {
	svc, db := newCheckoutService(t)
	ctx := context.Background()

	store := seedStore(t, db)
	product := seedProduct(t, db, models.ProductStatusActive, 799.0)

	order, err := svc.CreateOrder(ctx, testCheckoutInput(store,
		CheckoutItemInput{ProductID: product.ID, Quantity: 1},
	))
	require.NoError(t, err)

	require.NoError(t, db.Model(&models.Product{}).
		Where("id = ?", product.ID).
		Update("price", 999.0).Error)

	var reloaded models.Order
	require.NoError(t, db.Preload("Items").First(&reloaded, "id = ?", order.ID).Error)
	assert.InDelta(t, 799.0, reloaded.TotalAmount, 0.001)
	assert.InDelta(t, 799.0, reloaded.Items[0].UnitPrice, 0.001)
}

func TestCreateOrderRejectsInactiveProduct(t *testing.T) {
	svc, db := newCheckoutService(t)

	store := seedStore(t, db)
	draft := seedProduct(t, db, models.ProductStatusDraft, 799.0)

	_, err := svc.CreateOrder(context.Background(), testCheckoutInput(store,
		CheckoutItemInput{ProductID: draft.ID, Quantity: 1},
	))
	assert.Error(t, err)

	var count int64
	require.NoError(t, db.Model(&models.Order{}).Count(&count).Error)
	assert.Zero(t, count)
}

func TestCreateOrderUnknownStore(t *testing.T) {
	svc, db := newCheckoutService(t)

	product := seedProduct(t, db, models.ProductStatusActive, 799.0)
	store := &models.Store{Slug: "no-such-store"}

	_, err := svc.CreateOrder(context.Background(), testCheckoutInput(store,
		CheckoutItemInput{ProductID: product.ID, Quantity: 1},
	))
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestCreateOrderInactiveStore(t *testing.T) {
	svc, db := newCheckoutService(t)

	store := seedStore(t, db)
	require.NoError(t, db.Model(&models.Store{}).
		Where("id = ?", store.ID).
		Update("active", false).Error)

	product := seedProduct(t, db, models.ProductStatusActive, 799.0)

	_, err := svc.CreateOrder(context.Background(), testCheckoutInput(store,
		CheckoutItemInput{ProductID: product.ID, Quantity: 1},
	))
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestCreateOrderValidation(t *testing.T) {
	svc, db := newCheckoutService(t)

	store := seedStore(t, db)
	product := seedProduct(t, db, models.ProductStatusActive, 799.0)

	// no items
	_, err := svc.CreateOrder(context.Background(), testCheckoutInput(store))
	assert.Error(t, err)

	// zero quantity
	_, err = svc.CreateOrder(context.Background(), testCheckoutInput(store,
		CheckoutItemInput{ProductID: product.ID, Quantity: 0},
	))
	assert.Error(t, err)
}
