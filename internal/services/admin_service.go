// internal/services/admin_service.go
package services

import (
	"context"
	"fmt"

	"gorm.io/gorm"

	"github.com/kartloop/dropship-backend/internal/models"
)

// AdminService serves the back-office dashboard. All numbers are read-only
// aggregates; nothing here mutates state.
type AdminService struct {
	db *gorm.DB
}

type DashboardStats struct {
	OrdersByStatus     map[string]int64 `json:"orders_by_status"`
	TotalRevenue       float64          `json:"total_revenue"`
	TotalProfit        float64          `json:"total_profit"`
	PendingWithdrawals int64            `json:"pending_withdrawals"`
	PendingAmount      float64          `json:"pending_amount"`
	ActiveProducts     int64            `json:"active_products"`
	ActiveStores       int64            `json:"active_stores"`
}

func NewAdminService(db *gorm.DB) *AdminService {
	return &AdminService{db: db}
}

func (s *AdminService) GetDashboardStats(ctx context.Context) (*DashboardStats, error) {
	stats := &DashboardStats{
		OrdersByStatus: make(map[string]int64),
	}

	type statusCount struct {
		Status string
		Count  int64
	}
	var counts []statusCount
	if err := s.db.WithContext(ctx).Model(&models.Order{}).
		Select("status, COUNT(*) as count").
		Group("status").
		Scan(&counts).Error; err != nil {
		return nil, fmt.Errorf("failed to count orders: %w", err)
	}
	for _, c := range counts {
		stats.OrdersByStatus[c.Status] = c.Count
	}

	// Revenue counts everything that wasn't cancelled; profit only exists on
	// delivered orders.
	if err := s.db.WithContext(ctx).Model(&models.Order{}).
		Where("status <> ?", models.OrderStatusCancelled).
		Select("COALESCE(SUM(total_amount), 0)").
		Scan(&stats.TotalRevenue).Error; err != nil {
		return nil, fmt.Errorf("failed to sum revenue: %w", err)
	}

	if err := s.db.WithContext(ctx).Model(&models.Order{}).
		Where("status = ?", models.OrderStatusDelivered).
		Select("COALESCE(SUM(profit), 0)").
		Scan(&stats.TotalProfit).Error; err != nil {
		return nil, fmt.Errorf("failed to sum profit: %w", err)
	}

	if err := s.db.WithContext(ctx).Model(&models.WithdrawalRequest{}).
		Where("status = ?", models.WithdrawalStatusPending).
		Count(&stats.PendingWithdrawals).Error; err != nil {
		return nil, fmt.Errorf("failed to count withdrawals: %w", err)
	}

	if err := s.db.WithContext(ctx).Model(&models.WithdrawalRequest{}).
		Where("status = ?", models.WithdrawalStatusPending).
		Select("COALESCE(SUM(amount), 0)").
		Scan(&stats.PendingAmount).Error; err != nil {
		return nil, fmt.Errorf("failed to sum withdrawals: %w", err)
	}

	if err := s.db.WithContext(ctx).Model(&models.Product{}).
		Where("status = ?", models.ProductStatusActive).
		Count(&stats.ActiveProducts).Error; err != nil {
		return nil, fmt.Errorf("failed to count products: %w", err)
	}

	if err := s.db.WithContext(ctx).Model(&models.Store{}).
		Where("active = ?", true).
		Count(&stats.ActiveStores).Error; err != nil {
		return nil, fmt.Errorf("failed to count stores: %w", err)
	}

	return stats, nil
}
