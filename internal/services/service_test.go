// internal/services/service_test.go
package services

import (
	"fmt"
	"testing"

	"github.com/glebarez/sqlite"
	"github.com/google/uuid"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"

	"github.com/kartloop/dropship-backend/internal/config"
	"github.com/kartloop/dropship-backend/internal/models"
	"github.com/kartloop/dropship-backend/internal/utils"
)

// newTestDB opens a private in-memory database per test. The services run the
// same code paths against it that they run against postgres.
func newTestDB(t *testing.T) *gorm.DB {
	t.Helper()

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

	return db
}

func newTestConfig() *config.Config {
	return &config.Config{
		Environment: "test",
		Payment: config.PaymentConfig{
			Currency:          "inr",
			MinimumWithdrawal: 100.0,
		},
		Frontend: config.FrontendConfig{
			BaseURL: "http://localhost:3000",
		},
	}
}

func newTestPagination() utils.PaginationParams {
	return utils.PaginationParams{
		Page:  1,
		Limit: 20,
		Sort:  "created_at",
		Order: "desc",
	}
}

func seedCreator(t *testing.T, db *gorm.DB, balance float64) *models.CreatorProfile {
	t.Helper()

	profile := &models.CreatorProfile{
		AuthUserID:    uuid.New(),
		DisplayName:   "Test Creator",
		ContactEmail:  "creator@example.com",
		UPIID:         "creator@upi",
		TotalEarnings: balance,
	}
	require.NoError(t, db.Create(profile).Error)
	return profile
}

func seedOrder(t *testing.T, db *gorm.DB, status models.OrderStatus, ownerID uuid.UUID) *models.Order {
	t.Helper()

	order := &models.Order{
		OrderNumber: "KL-TEST-" + uuid.New().String()[:6],
		TotalAmount: 1499.00,
		Status:      status,
		CustomerName:  "Asha Rao",
		CustomerPhone: "9876543210",
		ShippingAddress: models.JSONB{
			"line1": "12 MG Road",
			"city":  "Bengaluru",
			"pin":   "560001",
		},
		StoreID:           uuid.New(),
		StoreOwnerID:      ownerID,
		StoreContactEmail: "owner@example.com",
	}
	require.NoError(t, db.Create(order).Error)
	return order
}

func seedProduct(t *testing.T, db *gorm.DB, status models.ProductStatus, price float64) *models.Product {
	t.Helper()

	product := &models.Product{
		Title:       "Cotton Kurta",
		Description: "Hand block printed cotton kurta",
		Category:    "apparel",
		Price:       price,
		MRP:         price * 1.5,
		Status:      status,
	}
	require.NoError(t, db.Create(product).Error)
	return product
}

func seedStore(t *testing.T, db *gorm.DB) *models.Store {
	t.Helper()

	store := &models.Store{
		OwnerAuthID:  uuid.New(),
		Name:         "Asha Collection",
		Slug:         "asha-collection-" + uuid.New().String()[:6],
		ContactEmail: "asha@example.com",
		Active:       true,
	}
	require.NoError(t, db.Create(store).Error)
	return store
}

func countNotifications(t *testing.T, db *gorm.DB) int64 {
	t.Helper()

	var count int64
	require.NoError(t, db.Model(&models.Notification{}).Count(&count).Error)
	return count
}
