// internal/handlers/store.go
package handlers

import (
	"github.com/gin-gonic/gin"

	"github.com/kartloop/dropship-backend/internal/services"
	"github.com/kartloop/dropship-backend/internal/utils"
)

type StoreHandler struct {
	storeService *services.StoreService
}

func NewStoreHandler(storeService *services.StoreService) *StoreHandler {
	return &StoreHandler{
		storeService: storeService,
	}
}

// POST /stores
func (h *StoreHandler) CreateStore(c *gin.Context) {
	userID, ok := currentUserID(c)
	if !ok {
		return
	}

	var req services.CreateStoreRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.BadRequestResponse(c, "Invalid input", err.Error())
		return
	}

	store, err := h.storeService.CreateStore(c.Request.Context(), userID, req.ContactEmail, &req)
	if err != nil {
		respondServiceError(c, err)
		return
	}

	utils.CreatedResponse(c, store)
}

// PUT /stores/:id
func (h *StoreHandler) UpdateStore(c *gin.Context) {
	userID, ok := currentUserID(c)
	if !ok {
		return
	}

	storeID, ok := parseUUIDParam(c, "id")
	if !ok {
		return
	}

	var req services.UpdateStoreRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.BadRequestResponse(c, "Invalid input", err.Error())
		return
	}

	store, err := h.storeService.UpdateStore(c.Request.Context(), storeID, userID, &req)
	if err != nil {
		respondServiceError(c, err)
		return
	}

	utils.SuccessResponse(c, store)
}

// GET /stores/mine
func (h *StoreHandler) ListMyStores(c *gin.Context) {
	userID, ok := currentUserID(c)
	if !ok {
		return
	}

	stores, err := h.storeService.ListStoresByOwner(c.Request.Context(), userID)
	if err != nil {
		respondServiceError(c, err)
		return
	}

	utils.SuccessResponse(c, stores)
}

// GET /storefront/:slug
//
// Public endpoint backing a customer-facing storefront page.
func (h *StoreHandler) GetStorefront(c *gin.Context) {
	slug := c.Param("slug")
	if slug == "" {
		utils.BadRequestResponse(c, "Store slug is required", nil)
		return
	}

	store, err := h.storeService.GetStoreBySlug(c.Request.Context(), slug)
	if err != nil {
		respondServiceError(c, err)
		return
	}

	utils.SuccessResponse(c, store)
}
