// internal/handlers/withdrawal.go
package handlers

import (
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"github.com/kartloop/dropship-backend/internal/models"
	"github.com/kartloop/dropship-backend/internal/services"
	"github.com/kartloop/dropship-backend/internal/utils"
)

type WithdrawalHandler struct {
	earningsService *services.EarningsService
}

func NewWithdrawalHandler(earningsService *services.EarningsService) *WithdrawalHandler {
	return &WithdrawalHandler{
		earningsService: earningsService,
	}
}

// GET /earnings
func (h *WithdrawalHandler) GetEarnings(c *gin.Context) {
	userID, ok := currentUserID(c)
	if !ok {
		return
	}

	profile, err := h.earningsService.GetProfile(c.Request.Context(), userID)
	if err != nil {
		respondServiceError(c, err)
		return
	}

	utils.SuccessResponse(c, profile)
}

// POST /earnings/withdrawals
func (h *WithdrawalHandler) RequestWithdrawal(c *gin.Context) {
	userID, ok := currentUserID(c)
	if !ok {
		return
	}

	var input services.RequestWithdrawalInput
	if err := c.ShouldBindJSON(&input); err != nil {
		utils.BadRequestResponse(c, "Invalid input", err.Error())
		return
	}

	request, err := h.earningsService.RequestWithdrawal(c.Request.Context(), userID, &input)
	if err != nil {
		respondServiceError(c, err)
		return
	}

	utils.CreatedResponse(c, request)
}

// GET /earnings/withdrawals
func (h *WithdrawalHandler) ListMyWithdrawals(c *gin.Context) {
	userID, ok := currentUserID(c)
	if !ok {
		return
	}

	params := utils.GetPaginationParams(c)
	requests, total, err := h.earningsService.ListWithdrawals(c.Request.Context(), params, &userID, nil)
	if err != nil {
		respondServiceError(c, err)
		return
	}

	utils.PaginatedResponse(c, utils.CreatePaginationResult(requests, total, params))
}

// Admin endpoints

// GET /admin/withdrawals
func (h *WithdrawalHandler) ListWithdrawals(c *gin.Context) {
	params := utils.GetPaginationParams(c)

	var status *models.WithdrawalStatus
	if s := c.Query("status"); s != "" {
		ws := models.WithdrawalStatus(s)
		status = &ws
	}

	var creatorID *uuid.UUID
	if s := c.Query("creator_id"); s != "" {
		id, err := uuid.Parse(s)
		if err != nil {
			utils.BadRequestResponse(c, "Invalid creator_id", nil)
			return
		}
		creatorID = &id
	}

	requests, total, err := h.earningsService.ListWithdrawals(c.Request.Context(), params, creatorID, status)
	if err != nil {
		respondServiceError(c, err)
		return
	}

	utils.PaginatedResponse(c, utils.CreatePaginationResult(requests, total, params))
}

// POST /admin/withdrawals/:id/approve
func (h *WithdrawalHandler) ApproveWithdrawal(c *gin.Context) {
	requestID, ok := parseUUIDParam(c, "id")
	if !ok {
		return
	}

	request, err := h.earningsService.ApproveWithdrawal(c.Request.Context(), requestID)
	respondWithSideEffect(c, request, err)
}

// POST /admin/withdrawals/:id/reject
func (h *WithdrawalHandler) RejectWithdrawal(c *gin.Context) {
	requestID, ok := parseUUIDParam(c, "id")
	if !ok {
		return
	}

	err := h.earningsService.RejectWithdrawal(c.Request.Context(), requestID)
	respondWithSideEffect(c, gin.H{"rejected": true}, err)
}
