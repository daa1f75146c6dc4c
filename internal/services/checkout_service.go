// internal/services/checkout_service.go
package services

import (
	"context"
	"fmt"

	"github.com/google/uuid"
	"github.com/stripe/stripe-go/v74"
	"github.com/stripe/stripe-go/v74/paymentintent"
	"gorm.io/gorm"

	"github.com/kartloop/dropship-backend/internal/config"
	"github.com/kartloop/dropship-backend/internal/database"
	"github.com/kartloop/dropship-backend/internal/models"
	"github.com/kartloop/dropship-backend/internal/utils"
)

// CheckoutService produces the initial order document. The total is computed
// once here from line-item snapshots and never recomputed from live product
// prices; store attribution is snapshotted the same way. Every order it
// creates starts in processing.
type CheckoutService struct {
	db            *gorm.DB
	config        *config.Config
	notifications *NotificationService
}

type CheckoutItemInput struct {
	ProductID uuid.UUID `json:"product_id" validate:"required"`
	Quantity  int       `json:"quantity" validate:"required,min=1"`
	Size      string    `json:"size,omitempty"`
	Color     string    `json:"color,omitempty"`
}

type CheckoutInput struct {
	StoreSlug       string                 `json:"store_slug" validate:"required"`
	CustomerName    string                 `json:"customer_name" validate:"required,min=2,max=120"`
	CustomerEmail   string                 `json:"customer_email" validate:"omitempty,email"`
	CustomerPhone   string                 `json:"customer_phone" validate:"required,min=10,max=15"`
	ShippingAddress map[string]interface{} `json:"shipping_address" validate:"required"`
	Items           []CheckoutItemInput    `json:"items" validate:"required,min=1,dive"`
}

type PaymentIntentResponse struct {
	ClientSecret string `json:"client_secret"`
	PaymentID    string `json:"payment_id"`
	Status       string `json:"status"`
}

func NewCheckoutService(db *gorm.DB, config *config.Config, notifications *NotificationService) *CheckoutService {
	if config.Payment.StripeSecretKey != "" {
		stripe.Key = config.Payment.StripeSecretKey
	}

	return &CheckoutService{
		db:            db,
		config:        config,
		notifications: notifications,
	}
}

func (s *CheckoutService) CreateOrder(ctx context.Context, input *CheckoutInput) (*models.Order, error) {
	if err := utils.ValidateStruct(input); err != nil {
		return nil, fmt.Errorf("validation failed: %w", err)
	}

	orderNumber, err := utils.GenerateOrderNumber()
	if err != nil {
		return nil, fmt.Errorf("failed to generate order number: %w", err)
	}

	var order *models.Order
	err = database.WithTransaction(s.db.WithContext(ctx), func(tx *gorm.DB) error {
		var store models.Store
		if err := tx.Where("slug = ? AND active = ?", input.StoreSlug, true).First(&store).Error; err != nil {
			return notFoundOr(err, "failed to load store")
		}

		var items []models.OrderItem
		var total float64
		for _, item := range input.Items {
			var product models.Product
			if err := tx.First(&product, "id = ?", item.ProductID).Error; err != nil {
				return notFoundOr(err, "failed to load product")
			}
			if product.Status != models.ProductStatusActive {
				return fmt.Errorf("product %q is not available", product.Title)
			}

			imageURL := ""
			if len(product.Images) > 0 {
				imageURL = product.Images[0]
			}

			items = append(items, models.OrderItem{
				ProductID: product.ID,
				Title:     product.Title,
				UnitPrice: product.Price,
				Quantity:  item.Quantity,
				Size:      item.Size,
				Color:     item.Color,
				ImageURL:  imageURL,
			})
			total += product.Price * float64(item.Quantity)
		}

		order = &models.Order{
			OrderNumber:       orderNumber,
			TotalAmount:       total,
			Status:            models.OrderStatusProcessing,
			CustomerName:      input.CustomerName,
			CustomerEmail:     input.CustomerEmail,
			CustomerPhone:     input.CustomerPhone,
			ShippingAddress:   models.JSONB(input.ShippingAddress),
			StoreID:           store.ID,
			StoreOwnerID:      store.OwnerAuthID,
			StoreContactEmail: store.ContactEmail,
			Items:             items,
		}

		if err := tx.Create(order).Error; err != nil {
			return fmt.Errorf("failed to create order: %w", err)
		}

		return nil
	})
	if err != nil {
		return nil, err
	}

	return order, sideEffect("order placed notification", s.notifications.NotifyOrderPlaced(order))
}

// CreatePaymentIntent opens a Stripe payment intent for an order and records
// the reference on it. Requires a configured Stripe key.
func (s *CheckoutService) CreatePaymentIntent(ctx context.Context, orderID uuid.UUID) (*PaymentIntentResponse, error) {
	if s.config.Payment.StripeSecretKey == "" {
		return nil, fmt.Errorf("payment provider is not configured")
	}

	var order models.Order
	if err := s.db.WithContext(ctx).First(&order, "id = ?", orderID).Error; err != nil {
		return nil, notFoundOr(err, "failed to load order")
	}

	// Stripe wants the smallest currency unit (paise).
	amount := int64(order.TotalAmount * 100)

	params := &stripe.PaymentIntentParams{
		Amount:   stripe.Int64(amount),
		Currency: stripe.String(s.config.Payment.Currency),
	}
	params.AddMetadata("order_id", order.ID.String())
	params.AddMetadata("order_number", order.OrderNumber)

	pi, err := paymentintent.New(params)
	if err != nil {
		return nil, fmt.Errorf("failed to create payment intent: %w", err)
	}

	if err := s.db.WithContext(ctx).Model(&models.Order{}).
		Where("id = ?", order.ID).
		Update("payment_reference", pi.ID).Error; err != nil {
		return nil, fmt.Errorf("failed to record payment reference: %w", err)
	}

	return &PaymentIntentResponse{
		ClientSecret: pi.ClientSecret,
		PaymentID:    pi.ID,
		Status:       string(pi.Status),
	}, nil
}
