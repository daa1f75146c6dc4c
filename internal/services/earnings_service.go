// internal/services/earnings_service.go
package services

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/kartloop/dropship-backend/internal/config"
	"github.com/kartloop/dropship-backend/internal/database"
	"github.com/kartloop/dropship-backend/internal/models"
	"github.com/kartloop/dropship-backend/internal/utils"
)

// EarningsService is the creator earnings ledger. total_earnings moves only
// through the store transaction: up via CreditProfit when an order is
// delivered, down via ApproveWithdrawal. It never goes negative; an approval
// that would make it so aborts the whole transaction.
type EarningsService struct {
	db            *gorm.DB
	config        *config.Config
	notifications *NotificationService
}

type RequestWithdrawalInput struct {
	Amount float64 `json:"amount" validate:"required,gt=0"`
	UPIID  string  `json:"upi_id,omitempty" validate:"omitempty,upi"`
}

func NewEarningsService(db *gorm.DB, config *config.Config, notifications *NotificationService) *EarningsService {
	return &EarningsService{
		db:            db,
		config:        config,
		notifications: notifications,
	}
}

// GetProfile locates the creator ledger entry by the external auth id, not by
// the profile's own document id.
func (s *EarningsService) GetProfile(ctx context.Context, authUserID uuid.UUID) (*models.CreatorProfile, error) {
	var profile models.CreatorProfile
	if err := s.db.WithContext(ctx).Where("auth_user_id = ?", authUserID).First(&profile).Error; err != nil {
		return nil, notFoundOr(err, "failed to load creator profile")
	}
	return &profile, nil
}

// CreditProfit monotonically increases a creator's balance. It runs only
// inside an already-open transaction (delivery confirmation) so the credit
// commits together with the state change that earned it.
func (s *EarningsService) CreditProfit(tx *gorm.DB, authUserID uuid.UUID, amount float64) error {
	if amount < 0 {
		return fmt.Errorf("credit amount must not be negative")
	}
	if amount == 0 {
		return nil
	}

	result := tx.Model(&models.CreatorProfile{}).
		Where("auth_user_id = ?", authUserID).
		UpdateColumn("total_earnings", gorm.Expr("total_earnings + ?", amount))
	if result.Error != nil {
		return fmt.Errorf("failed to credit earnings: %w", result.Error)
	}
	if result.RowsAffected == 0 {
		return fmt.Errorf("%w: creator profile for auth id %s", ErrNotFound, authUserID)
	}

	return nil
}

// RequestWithdrawal validates and inserts a pending request. The balance check
// here is non-authoritative (last-known balance); the authoritative one runs
// at approval time. Only one new document is written, so no transaction is
// needed.
func (s *EarningsService) RequestWithdrawal(ctx context.Context, authUserID uuid.UUID, input *RequestWithdrawalInput) (*models.WithdrawalRequest, error) {
	if err := utils.ValidateStruct(input); err != nil {
		return nil, fmt.Errorf("validation failed: %w", err)
	}

	if input.Amount < s.config.Payment.MinimumWithdrawal {
		return nil, fmt.Errorf("%w: minimum is ₹%.2f", ErrBelowMinimum, s.config.Payment.MinimumWithdrawal)
	}

	profile, err := s.GetProfile(ctx, authUserID)
	if err != nil {
		return nil, err
	}

	if input.Amount > profile.TotalEarnings {
		return nil, fmt.Errorf("%w: requested ₹%.2f, balance ₹%.2f", ErrInsufficientBalance, input.Amount, profile.TotalEarnings)
	}

	upiID := input.UPIID
	if upiID == "" {
		upiID = profile.UPIID
	}

	request := &models.WithdrawalRequest{
		CreatorAuthID:    authUserID,
		Amount:           input.Amount,
		BalanceAtRequest: profile.TotalEarnings,
		UPIID:            upiID,
		Status:           models.WithdrawalStatusPending,
	}

	if err := s.db.WithContext(ctx).Create(request).Error; err != nil {
		return nil, fmt.Errorf("failed to create withdrawal request: %w", err)
	}

	return request, nil
}

// ApproveWithdrawal atomically marks the request paid and debits the creator's
// balance; a reader can never observe one without the other. The creator
// lookup by auth id happens inside the transaction callback, and both writes
// are guarded so a concurrent approval loses and is re-validated on retry.
func (s *EarningsService) ApproveWithdrawal(ctx context.Context, requestID uuid.UUID) (*models.WithdrawalRequest, error) {
	var request models.WithdrawalRequest
	var creator models.CreatorProfile

	err := database.WithTransaction(s.db.WithContext(ctx), func(tx *gorm.DB) error {
		// A rejected request is deleted, so missing and paid collapse into the
		// same answer: there is nothing left to approve.
		if err := tx.First(&request, "id = ?", requestID).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return ErrAlreadyProcessed
			}
			return fmt.Errorf("failed to load withdrawal request: %w", err)
		}
		if request.Status == models.WithdrawalStatusPaid {
			return ErrAlreadyProcessed
		}

		if err := tx.Where("auth_user_id = ?", request.CreatorAuthID).First(&creator).Error; err != nil {
			return notFoundOr(err, "failed to load creator profile")
		}

		newBalance := creator.TotalEarnings - request.Amount
		if newBalance < 0 {
			return fmt.Errorf("%w: requested ₹%.2f, balance ₹%.2f", ErrInsufficientBalance, request.Amount, creator.TotalEarnings)
		}

		// Guarded debit: the balance condition re-checks sufficiency at write
		// time, so two concurrent approvals can never drive it negative.
		debit := tx.Model(&models.CreatorProfile{}).
			Where("id = ? AND total_earnings >= ?", creator.ID, request.Amount).
			UpdateColumn("total_earnings", gorm.Expr("total_earnings - ?", request.Amount))
		if debit.Error != nil {
			return fmt.Errorf("failed to debit earnings: %w", debit.Error)
		}
		if debit.RowsAffected == 0 {
			return database.ErrTransactionConflict
		}

		now := time.Now()
		paid := tx.Model(&models.WithdrawalRequest{}).
			Where("id = ? AND status = ?", request.ID, models.WithdrawalStatusPending).
			Updates(map[string]interface{}{"status": models.WithdrawalStatusPaid, "paid_at": &now})
		if paid.Error != nil {
			return fmt.Errorf("failed to mark request paid: %w", paid.Error)
		}
		if paid.RowsAffected == 0 {
			return database.ErrTransactionConflict
		}

		request.Status = models.WithdrawalStatusPaid
		request.PaidAt = &now
		creator.TotalEarnings = newBalance
		return nil
	})
	if err != nil {
		return nil, err
	}

	return &request, sideEffect("withdrawal paid notification", s.notifications.NotifyWithdrawalPaid(&request, &creator))
}

// RejectWithdrawal deletes the pending request outright; the ledger is left
// untouched. Deliberately irreversible.
func (s *EarningsService) RejectWithdrawal(ctx context.Context, requestID uuid.UUID) error {
	var request models.WithdrawalRequest

	err := database.WithTransaction(s.db.WithContext(ctx), func(tx *gorm.DB) error {
		if err := tx.First(&request, "id = ?", requestID).Error; err != nil {
			return notFoundOr(err, "failed to load withdrawal request")
		}
		if request.Status == models.WithdrawalStatusPaid {
			return ErrAlreadyProcessed
		}

		result := tx.Where("id = ? AND status = ?", request.ID, models.WithdrawalStatusPending).
			Delete(&models.WithdrawalRequest{})
		if result.Error != nil {
			return fmt.Errorf("failed to delete withdrawal request: %w", result.Error)
		}
		if result.RowsAffected == 0 {
			return database.ErrTransactionConflict
		}

		return nil
	})
	if err != nil {
		return err
	}

	return sideEffect("withdrawal rejected notification", s.notifications.NotifyWithdrawalRejected(&request))
}

func (s *EarningsService) ListWithdrawals(ctx context.Context, params utils.PaginationParams, creatorAuthID *uuid.UUID, status *models.WithdrawalStatus) ([]models.WithdrawalRequest, int64, error) {
	query := s.db.WithContext(ctx).Model(&models.WithdrawalRequest{})

	if creatorAuthID != nil {
		query = query.Where("creator_auth_id = ?", *creatorAuthID)
	}
	if status != nil {
		query = query.Where("status = ?", *status)
	}

	var total int64
	if err := query.Count(&total).Error; err != nil {
		return nil, 0, fmt.Errorf("failed to count withdrawal requests: %w", err)
	}

	query = utils.ApplySort(query, params, []string{"created_at", "amount", "status"})
	query = utils.ApplyPagination(query, params)

	var requests []models.WithdrawalRequest
	if err := query.Find(&requests).Error; err != nil {
		return nil, 0, fmt.Errorf("failed to fetch withdrawal requests: %w", err)
	}

	return requests, total, nil
}
