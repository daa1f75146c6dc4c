// internal/services/order_service.go
package services

import (
	"context"
	"fmt"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/kartloop/dropship-backend/internal/database"
	"github.com/kartloop/dropship-backend/internal/models"
	"github.com/kartloop/dropship-backend/internal/utils"
)

// OrderService enforces the order lifecycle:
//
//	processing -> confirmed -> shipped -> delivered
//	                 \________cancelled________/
//
// Status writes happen inside the store transaction with a status-guarded
// conditional update, so a concurrent transition loses by matching zero rows
// and the wrapper re-validates against fresh state. Notifications and emails
// run strictly after commit.
type OrderService struct {
	db            *gorm.DB
	notifications *NotificationService
	earnings      *EarningsService
}

func NewOrderService(db *gorm.DB, notifications *NotificationService, earnings *EarningsService) *OrderService {
	return &OrderService{
		db:            db,
		notifications: notifications,
		earnings:      earnings,
	}
}

func (s *OrderService) GetOrder(ctx context.Context, orderID uuid.UUID) (*models.Order, error) {
	var order models.Order
	if err := s.db.WithContext(ctx).Preload("Items").First(&order, "id = ?", orderID).Error; err != nil {
		return nil, notFoundOr(err, "failed to load order")
	}
	return &order, nil
}

func (s *OrderService) ListOrders(ctx context.Context, params utils.PaginationParams, status *models.OrderStatus, storeID *uuid.UUID) ([]models.Order, int64, error) {
	query := s.db.WithContext(ctx).Model(&models.Order{}).Preload("Items")

	if status != nil {
		query = query.Where("status = ?", *status)
	}
	if storeID != nil {
		query = query.Where("store_id = ?", *storeID)
	}
	if params.Search != "" {
		query = query.Where("order_number = ? OR customer_name LIKE ?", params.Search, "%"+params.Search+"%")
	}

	var total int64
	if err := query.Count(&total).Error; err != nil {
		return nil, 0, fmt.Errorf("failed to count orders: %w", err)
	}

	query = utils.ApplySort(query, params, []string{"created_at", "total_amount", "status"})
	query = utils.ApplyPagination(query, params)

	var orders []models.Order
	if err := query.Find(&orders).Error; err != nil {
		return nil, 0, fmt.Errorf("failed to fetch orders: %w", err)
	}

	return orders, total, nil
}

// Transition moves an order to target. Delivery needs a profit figure the
// caller has not supplied on this path, so it returns ErrProfitRequired;
// cancellation goes through the dedicated Cancel operation.
func (s *OrderService) Transition(ctx context.Context, orderID uuid.UUID, target models.OrderStatus) (*models.Order, error) {
	if !target.IsValid() {
		return nil, fmt.Errorf("%w: unknown status %q", ErrInvalidTransition, target)
	}
	if target == models.OrderStatusCancelled {
		return s.Cancel(ctx, orderID)
	}
	if target == models.OrderStatusDelivered {
		return nil, ErrProfitRequired
	}

	var order models.Order
	err := database.WithTransaction(s.db.WithContext(ctx), func(tx *gorm.DB) error {
		if err := tx.First(&order, "id = ?", orderID).Error; err != nil {
			return notFoundOr(err, "failed to load order")
		}

		if !order.Status.CanTransitionTo(target) {
			return fmt.Errorf("%w: %s -> %s", ErrInvalidTransition, order.Status, target)
		}

		result := tx.Model(&models.Order{}).
			Where("id = ? AND status = ?", order.ID, order.Status).
			Update("status", target)
		if result.Error != nil {
			return fmt.Errorf("failed to update order status: %w", result.Error)
		}
		if result.RowsAffected == 0 {
			return database.ErrTransactionConflict
		}

		order.Status = target
		return nil
	})
	if err != nil {
		return nil, err
	}

	return &order, sideEffect("order status notification", s.notifications.NotifyOrderStatus(&order))
}

// BeginDelivery is phase one of delivery confirmation: it checks eligibility
// so the caller can collect the profit figure out-of-band. No lock is held
// afterwards; CompleteDelivery re-validates at write time.
func (s *OrderService) BeginDelivery(ctx context.Context, orderID uuid.UUID) (*models.Order, error) {
	order, err := s.GetOrder(ctx, orderID)
	if err != nil {
		return nil, err
	}

	if !order.Status.CanTransitionTo(models.OrderStatusDelivered) {
		return nil, fmt.Errorf("%w: %s -> %s", ErrInvalidTransition, order.Status, models.OrderStatusDelivered)
	}

	return order, nil
}

// CompleteDelivery is phase two: in one transaction it re-validates the status,
// writes status=delivered and profit together, and credits the store owner's
// earnings ledger. A concurrent transition in the gap simply fails the
// re-check here.
func (s *OrderService) CompleteDelivery(ctx context.Context, orderID uuid.UUID, profit float64) (*models.Order, error) {
	if profit < 0 {
		return nil, fmt.Errorf("profit must not be negative")
	}

	var order models.Order
	err := database.WithTransaction(s.db.WithContext(ctx), func(tx *gorm.DB) error {
		if err := tx.First(&order, "id = ?", orderID).Error; err != nil {
			return notFoundOr(err, "failed to load order")
		}

		if !order.Status.CanTransitionTo(models.OrderStatusDelivered) {
			return fmt.Errorf("%w: %s -> %s", ErrInvalidTransition, order.Status, models.OrderStatusDelivered)
		}

		// Status and profit are set in the same update; the status guard makes
		// the write conditional on what this transaction read.
		result := tx.Model(&models.Order{}).
			Where("id = ? AND status = ?", order.ID, order.Status).
			Updates(map[string]interface{}{
				"status": models.OrderStatusDelivered,
				"profit": profit,
			})
		if result.Error != nil {
			return fmt.Errorf("failed to mark order delivered: %w", result.Error)
		}
		if result.RowsAffected == 0 {
			return database.ErrTransactionConflict
		}

		if err := s.earnings.CreditProfit(tx, order.StoreOwnerID, profit); err != nil {
			return err
		}

		order.Status = models.OrderStatusDelivered
		order.Profit = &profit
		return nil
	})
	if err != nil {
		return nil, err
	}

	return &order, sideEffect("order status notification", s.notifications.NotifyOrderStatus(&order))
}

// Cancel marks an order cancelled. Cancelling an already-cancelled order is a
// no-op success; cancelling a delivered order is rejected. The status write is
// atomic, so repeated or concurrent cancellations converge on one outcome.
func (s *OrderService) Cancel(ctx context.Context, orderID uuid.UUID) (*models.Order, error) {
	var order models.Order
	var changed bool

	err := database.WithTransaction(s.db.WithContext(ctx), func(tx *gorm.DB) error {
		changed = false

		if err := tx.First(&order, "id = ?", orderID).Error; err != nil {
			return notFoundOr(err, "failed to load order")
		}

		if order.Status == models.OrderStatusCancelled {
			return nil
		}

		if !order.Status.CanTransitionTo(models.OrderStatusCancelled) {
			return fmt.Errorf("%w: %s -> %s", ErrInvalidTransition, order.Status, models.OrderStatusCancelled)
		}

		result := tx.Model(&models.Order{}).
			Where("id = ? AND status = ?", order.ID, order.Status).
			Update("status", models.OrderStatusCancelled)
		if result.Error != nil {
			return fmt.Errorf("failed to cancel order: %w", result.Error)
		}
		if result.RowsAffected == 0 {
			return database.ErrTransactionConflict
		}

		order.Status = models.OrderStatusCancelled
		changed = true
		return nil
	})
	if err != nil {
		return nil, err
	}

	if !changed {
		return &order, nil
	}

	return &order, sideEffect("order status notification", s.notifications.NotifyOrderStatus(&order))
}
