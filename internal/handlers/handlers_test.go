// internal/handlers/handlers_test.go
package handlers

import (
	"bytes"
	"encoding/json"
	"fmt"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/glebarez/sqlite"
	"github.com/google/uuid"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"

	"github.com/kartloop/dropship-backend/internal/config"
	"github.com/kartloop/dropship-backend/internal/models"
	"github.com/kartloop/dropship-backend/internal/services"
	"github.com/kartloop/dropship-backend/internal/utils"
)

type testEnv struct {
	db     *gorm.DB
	router *gin.Engine
}

func newTestEnv(t *testing.T) *testEnv {
	t.Helper()
	gin.SetMode(gin.TestMode)

	dsn := fmt.Sprintf("file:%s?mode=memory&cache=shared", uuid.New().String())
	db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	require.NoError(t, err)

	require.NoError(t, db.AutoMigrate(
		&models.User{},
		&models.Store{},
		&models.Product{},
		&models.Review{},
		&models.Order{},
		&models.OrderItem{},
		&models.CreatorProfile{},
		&models.WithdrawalRequest{},
		&models.Notification{},
	))

	cfg := &config.Config{
		Environment: "test",
		Payment: config.PaymentConfig{
			Currency:          "inr",
			MinimumWithdrawal: 100.0,
		},
		Frontend: config.FrontendConfig{BaseURL: "http://localhost:3000"},
	}

	notifications := services.NewNotificationService(db, cfg)
	earnings := services.NewEarningsService(db, cfg, notifications)
	orders := services.NewOrderService(db, notifications, earnings)
	checkout := services.NewCheckoutService(db, cfg, notifications)
	reviews := services.NewReviewService(db)

	orderHandler := NewOrderHandler(orders)
	withdrawalHandler := NewWithdrawalHandler(earnings)
	checkoutHandler := NewCheckoutHandler(checkout)
	reviewHandler := NewReviewHandler(reviews)

	r := gin.New()
	r.POST("/checkout", checkoutHandler.CreateOrder)
	r.POST("/products/:id/reviews", reviewHandler.SubmitReview)
	r.PATCH("/orders/:id/status", orderHandler.UpdateStatus)
	r.POST("/orders/:id/delivery/complete", orderHandler.CompleteDelivery)
	r.POST("/orders/:id/cancel", orderHandler.CancelOrder)
	r.POST("/withdrawals/:id/approve", withdrawalHandler.ApproveWithdrawal)
	r.POST("/withdrawals/:id/reject", withdrawalHandler.RejectWithdrawal)

	return &testEnv{db: db, router: r}
}

func (e *testEnv) do(t *testing.T, method, path string, body interface{}) (*httptest.ResponseRecorder, utils.APIResponse) {
	t.Helper()

	var buf bytes.Buffer
	if body != nil {
		require.NoError(t, json.NewEncoder(&buf).Encode(body))
	}

	req := httptest.NewRequest(method, path, &buf)
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	e.router.ServeHTTP(w, req)

	var resp utils.APIResponse
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	return w, resp
}

func (e *testEnv) seedOrder(t *testing.T, status models.OrderStatus, ownerID uuid.UUID) *models.Order {
	t.Helper()

	order := &models.Order{
		OrderNumber:   "KL-TEST-" + uuid.New().String()[:6],
		TotalAmount:   999.0,
		Status:        status,
		CustomerName:  "Asha Rao",
		CustomerPhone: "9876543210",
		ShippingAddress: models.JSONB{
			"line1": "12 MG Road",
			"city":  "Bengaluru",
		},
		StoreID:           uuid.New(),
		StoreOwnerID:      ownerID,
		StoreContactEmail: "owner@example.com",
	}
	require.NoError(t, e.db.Create(order).Error)
	return order
}

func (e *testEnv) seedCreator(t *testing.T, balance float64) *models.CreatorProfile {
	t.Helper()

	profile := &models.CreatorProfile{
		AuthUserID:    uuid.New(),
		DisplayName:   "Test Creator",
		ContactEmail:  "creator@example.com",
		UPIID:         "creator@upi",
		TotalEarnings: balance,
	}
	require.NoError(t, e.db.Create(profile).Error)
	return profile
}

func (e *testEnv) seedWithdrawal(t *testing.T, creatorAuthID uuid.UUID, amount float64) *models.WithdrawalRequest {
	t.Helper()

	request := &models.WithdrawalRequest{
		CreatorAuthID:    creatorAuthID,
		Amount:           amount,
		BalanceAtRequest: amount,
		UPIID:            "creator@upi",
		Status:           models.WithdrawalStatusPending,
	}
	require.NoError(t, e.db.Create(request).Error)
	return request
}
