// internal/handlers/order.go
package handlers

import (
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"github.com/kartloop/dropship-backend/internal/models"
	"github.com/kartloop/dropship-backend/internal/services"
	"github.com/kartloop/dropship-backend/internal/utils"
)

type OrderHandler struct {
	orderService *services.OrderService
}

type transitionRequest struct {
	Status string `json:"status" binding:"required"`
}

type completeDeliveryRequest struct {
	Profit *float64 `json:"profit" binding:"required"`
}

func NewOrderHandler(orderService *services.OrderService) *OrderHandler {
	return &OrderHandler{
		orderService: orderService,
	}
}

// GET /orders
func (h *OrderHandler) ListOrders(c *gin.Context) {
	params := utils.GetPaginationParams(c)

	var status *models.OrderStatus
	if s := c.Query("status"); s != "" {
		os := models.OrderStatus(s)
		if !os.IsValid() {
			utils.BadRequestResponse(c, "Unknown order status", nil)
			return
		}
		status = &os
	}

	var storeID *uuid.UUID
	if s := c.Query("store_id"); s != "" {
		id, err := uuid.Parse(s)
		if err != nil {
			utils.BadRequestResponse(c, "Invalid store_id", nil)
			return
		}
		storeID = &id
	}

	orders, total, err := h.orderService.ListOrders(c.Request.Context(), params, status, storeID)
	if err != nil {
		respondServiceError(c, err)
		return
	}

	utils.PaginatedResponse(c, utils.CreatePaginationResult(orders, total, params))
}

// GET /orders/:id
func (h *OrderHandler) GetOrder(c *gin.Context) {
	orderID, ok := parseUUIDParam(c, "id")
	if !ok {
		return
	}

	order, err := h.orderService.GetOrder(c.Request.Context(), orderID)
	if err != nil {
		respondServiceError(c, err)
		return
	}

	utils.SuccessResponse(c, order)
}

// PATCH /orders/:id/status
func (h *OrderHandler) UpdateStatus(c *gin.Context) {
	orderID, ok := parseUUIDParam(c, "id")
	if !ok {
		return
	}

	var req transitionRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.BadRequestResponse(c, "Invalid input", err.Error())
		return
	}

	order, err := h.orderService.Transition(c.Request.Context(), orderID, models.OrderStatus(req.Status))
	respondWithSideEffect(c, order, err)
}

// POST /orders/:id/delivery
//
// Phase one of delivery confirmation: validates the order can be delivered
// and returns it so the caller can collect the profit figure.
func (h *OrderHandler) BeginDelivery(c *gin.Context) {
	orderID, ok := parseUUIDParam(c, "id")
	if !ok {
		return
	}

	order, err := h.orderService.BeginDelivery(c.Request.Context(), orderID)
	if err != nil {
		respondServiceError(c, err)
		return
	}

	utils.SuccessResponse(c, order)
}

// POST /orders/:id/delivery/complete
func (h *OrderHandler) CompleteDelivery(c *gin.Context) {
	orderID, ok := parseUUIDParam(c, "id")
	if !ok {
		return
	}

	var req completeDeliveryRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.BadRequestResponse(c, "Profit amount is required", err.Error())
		return
	}

	order, err := h.orderService.CompleteDelivery(c.Request.Context(), orderID, *req.Profit)
	respondWithSideEffect(c, order, err)
}

// POST /orders/:id/cancel
func (h *OrderHandler) CancelOrder(c *gin.Context) {
	orderID, ok := parseUUIDParam(c, "id")
	if !ok {
		return
	}

	order, err := h.orderService.Cancel(c.Request.Context(), orderID)
	respondWithSideEffect(c, order, err)
}
