// internal/handlers/withdrawal_test.go
package handlers

import (
	"net/http"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/kartloop/dropship-backend/internal/models"
)

func TestApproveWithdrawalEndpoint(t *testing.T) {
	env := newTestEnv(t)
	creator := env.seedCreator(t, 500.0)
	request := env.seedWithdrawal(t, creator.AuthUserID, 300.0)

	w, resp := env.do(t, http.MethodPost, "/withdrawals/"+request.ID.String()+"/approve", nil)
	assert.Equal(t, http.StatusOK, w.Code)
	assert.True(t, resp.Success)

	var profile models.CreatorProfile
	require.NoError(t, env.db.First(&profile, "id = ?", creator.ID).Error)
	assert.InDelta(t, 200.0, profile.TotalEarnings, 0.001)

	// second approval is rejected as already processed
	w, resp = env.do(t, http.MethodPost, "/withdrawals/"+request.ID.String()+"/approve", nil)
	assert.Equal(t, http.StatusConflict, w.Code)
	assert.False(t, resp.Success)
}

func TestApproveWithdrawalInsufficientBalance(t *testing.T) {
	env := newTestEnv(t)
	creator := env.seedCreator(t, 100.0)
	request := env.seedWithdrawal(t, creator.AuthUserID, 300.0)

	w, resp := env.do(t, http.MethodPost, "/withdrawals/"+request.ID.String()+"/approve", nil)
	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.False(t, resp.Success)

	// the ledger did not move
	var profile models.CreatorProfile
	require.NoError(t, env.db.First(&profile, "id = ?", creator.ID).Error)
	assert.InDelta(t, 100.0, profile.TotalEarnings, 0.001)
}

func TestApproveMissingWithdrawal(t *testing.T) {
	env := newTestEnv(t)

	w, _ := env.do(t, http.MethodPost, "/withdrawals/"+uuid.NewString()+"/approve", nil)
	assert.Equal(t, http.StatusConflict, w.Code)
}

func TestRejectWithdrawalEndpoint(t *testing.T) {
	env := newTestEnv(t)
	creator := env.seedCreator(t, 500.0)
	request := env.seedWithdrawal(t, creator.AuthUserID, 300.0)

	w, resp := env.do(t, http.MethodPost, "/withdrawals/"+request.ID.String()+"/reject", nil)
	assert.Equal(t, http.StatusOK, w.Code)
	assert.True(t, resp.Success)

	// balance untouched, request gone
	var profile models.CreatorProfile
	require.NoError(t, env.db.First(&profile, "id = ?", creator.ID).Error)
	assert.InDelta(t, 500.0, profile.TotalEarnings, 0.001)

	var count int64
	require.NoError(t, env.db.Model(&models.WithdrawalRequest{}).Count(&count).Error)
	assert.Zero(t, count)
}

func TestCheckoutEndpoint(t *testing.T) {
	env := newTestEnv(t)

	store := &models.Store{
		OwnerAuthID:  uuid.New(),
		Name:         "Asha Collection",
		Slug:         "asha-collection",
		ContactEmail: "asha@example.com",
		Active:       true,
	}
	require.NoError(t, env.db.Create(store).Error)

	product := &models.Product{
		Title:    "Cotton Kurta",
		Category: "apparel",
		Price:    799.0,
		Status:   models.ProductStatusActive,
	}
	require.NoError(t, env.db.Create(product).Error)

	w, resp := env.do(t, http.MethodPost, "/checkout", map[string]interface{}{
		"store_slug":     store.Slug,
		"customer_name":  "Asha Rao",
		"customer_phone": "9876543210",
		"shipping_address": map[string]string{
			"line1": "12 MG Road",
			"city":  "Bengaluru",
		},
		"items": []map[string]interface{}{
			{"product_id": product.ID.String(), "quantity": 2},
		},
	})

	assert.Equal(t, http.StatusCreated, w.Code)
	assert.True(t, resp.Success)

	var order models.Order
	require.NoError(t, env.db.First(&order).Error)
	assert.Equal(t, models.OrderStatusProcessing, order.Status)
	assert.InDelta(t, 1598.0, order.TotalAmount, 0.001)
}

func TestSubmitReviewEndpoint(t *testing.T) {
	env := newTestEnv(t)

	product := &models.Product{
		Title:    "Cotton Kurta",
		Category: "apparel",
		Price:    799.0,
		Status:   models.ProductStatusActive,
	}
	require.NoError(t, env.db.Create(product).Error)

	w, resp := env.do(t, http.MethodPost, "/products/"+product.ID.String()+"/reviews",
		map[string]interface{}{
			"author_name": "Meera",
			"rating":      5,
			"comment":     "Exactly as pictured, fits perfectly.",
		})

	assert.Equal(t, http.StatusCreated, w.Code)
	assert.True(t, resp.Success)

	var reloaded models.Product
	require.NoError(t, env.db.First(&reloaded, "id = ?", product.ID).Error)
	assert.EqualValues(t, 1, reloaded.ReviewCount)
	assert.InDelta(t, 5.0, reloaded.Rating, 0.001)
}
