// internal/handlers/checkout.go
package handlers

import (
	"github.com/gin-gonic/gin"

	"github.com/kartloop/dropship-backend/internal/services"
	"github.com/kartloop/dropship-backend/internal/utils"
)

type CheckoutHandler struct {
	checkoutService *services.CheckoutService
}

func NewCheckoutHandler(checkoutService *services.CheckoutService) *CheckoutHandler {
	return &CheckoutHandler{
		checkoutService: checkoutService,
	}
}

// POST /checkout
//
// Public endpoint: customers check out from a storefront without an account.
func (h *CheckoutHandler) CreateOrder(c *gin.Context) {
	var input services.CheckoutInput
	if err := c.ShouldBindJSON(&input); err != nil {
		utils.BadRequestResponse(c, "Invalid input", err.Error())
		return
	}

	order, err := h.checkoutService.CreateOrder(c.Request.Context(), &input)
	if err == nil {
		utils.CreatedResponse(c, order)
		return
	}

	respondWithSideEffect(c, order, err)
}

// POST /checkout/:id/payment-intent
func (h *CheckoutHandler) CreatePaymentIntent(c *gin.Context) {
	orderID, ok := parseUUIDParam(c, "id")
	if !ok {
		return
	}

	response, err := h.checkoutService.CreatePaymentIntent(c.Request.Context(), orderID)
	if err != nil {
		respondServiceError(c, err)
		return
	}

	utils.SuccessResponse(c, response)
}
