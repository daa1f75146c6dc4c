// internal/handlers/order_test.go
package handlers

import (
	"net/http"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/kartloop/dropship-backend/internal/models"
)

func TestUpdateStatusEndpoint(t *testing.T) {
	env := newTestEnv(t)
	order := env.seedOrder(t, models.OrderStatusProcessing, uuid.New())

	w, resp := env.do(t, http.MethodPatch, "/orders/"+order.ID.String()+"/status",
		map[string]string{"status": "confirmed"})

	assert.Equal(t, http.StatusOK, w.Code)
	assert.True(t, resp.Success)

	var reloaded models.Order
	require.NoError(t, env.db.First(&reloaded, "id = ?", order.ID).Error)
	assert.Equal(t, models.OrderStatusConfirmed, reloaded.Status)
}

func TestUpdateStatusInvalidTransition(t *testing.T) {
	env := newTestEnv(t)
	order := env.seedOrder(t, models.OrderStatusShipped, uuid.New())

	w, resp := env.do(t, http.MethodPatch, "/orders/"+order.ID.String()+"/status",
		map[string]string{"status": "processing"})

	assert.Equal(t, http.StatusConflict, w.Code)
	assert.False(t, resp.Success)
	require.NotNil(t, resp.Error)
	assert.Equal(t, "CONFLICT", resp.Error.Code)
}

func TestUpdateStatusDeliveredNeedsProfit(t *testing.T) {
	env := newTestEnv(t)
	order := env.seedOrder(t, models.OrderStatusShipped, uuid.New())

	w, resp := env.do(t, http.MethodPatch, "/orders/"+order.ID.String()+"/status",
		map[string]string{"status": "delivered"})

	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.False(t, resp.Success)
}

func TestUpdateStatusUnknownOrder(t *testing.T) {
	env := newTestEnv(t)

	w, _ := env.do(t, http.MethodPatch, "/orders/"+uuid.NewString()+"/status",
		map[string]string{"status": "confirmed"})

	assert.Equal(t, http.StatusNotFound, w.Code)
}

func TestCompleteDeliveryEndpoint(t *testing.T) {
	env := newTestEnv(t)
	creator := env.seedCreator(t, 0)
	order := env.seedOrder(t, models.OrderStatusShipped, creator.AuthUserID)

	w, resp := env.do(t, http.MethodPost, "/orders/"+order.ID.String()+"/delivery/complete",
		map[string]float64{"profit": 250.0})

	assert.Equal(t, http.StatusOK, w.Code)
	assert.True(t, resp.Success)

	var profile models.CreatorProfile
	require.NoError(t, env.db.First(&profile, "id = ?", creator.ID).Error)
	assert.InDelta(t, 250.0, profile.TotalEarnings, 0.001)
}

func TestCompleteDeliveryMissingProfit(t *testing.T) {
	env := newTestEnv(t)
	order := env.seedOrder(t, models.OrderStatusShipped, uuid.New())

	w, _ := env.do(t, http.MethodPost, "/orders/"+order.ID.String()+"/delivery/complete",
		map[string]string{})

	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestCancelEndpointIdempotent(t *testing.T) {
	env := newTestEnv(t)
	order := env.seedOrder(t, models.OrderStatusProcessing, uuid.New())

	w, _ := env.do(t, http.MethodPost, "/orders/"+order.ID.String()+"/cancel", nil)
	assert.Equal(t, http.StatusOK, w.Code)

	// repeated cancel still reports success
	w, resp := env.do(t, http.MethodPost, "/orders/"+order.ID.String()+"/cancel", nil)
	assert.Equal(t, http.StatusOK, w.Code)
	assert.True(t, resp.Success)
}

func TestCancelDeliveredEndpoint(t *testing.T) {
	env := newTestEnv(t)
	order := env.seedOrder(t, models.OrderStatusDelivered, uuid.New())

	w, _ := env.do(t, http.MethodPost, "/orders/"+order.ID.String()+"/cancel", nil)
	assert.Equal(t, http.StatusConflict, w.Code)
}
