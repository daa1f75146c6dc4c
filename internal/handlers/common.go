// internal/handlers/common.go
package handlers

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"github.com/kartloop/dropship-backend/internal/services"
	"github.com/kartloop/dropship-backend/internal/utils"
)

// respondServiceError maps service sentinel errors onto HTTP responses.
// Transaction conflicts only surface here after the retry budget is spent.
func respondServiceError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, services.ErrNotFound):
		utils.NotFoundResponse(c, "Resource")
	case errors.Is(err, services.ErrInvalidTransition):
		utils.ConflictResponse(c, err.Error())
	case errors.Is(err, services.ErrAlreadyProcessed):
		utils.ConflictResponse(c, err.Error())
	case errors.Is(err, services.ErrTransactionConflict):
		utils.ErrorResponse(c, http.StatusConflict, "TRANSACTION_CONFLICT",
			"Concurrent update conflict, please retry", nil)
	case errors.Is(err, services.ErrInsufficientBalance),
		errors.Is(err, services.ErrBelowMinimum),
		errors.Is(err, services.ErrProfitRequired):
		utils.BadRequestResponse(c, err.Error(), nil)
	default:
		utils.BadRequestResponse(c, err.Error(), nil)
	}
}

// respondWithSideEffect handles the committed-but-notification-failed case:
// the state change succeeded, so the response is a success carrying a warning.
func respondWithSideEffect(c *gin.Context, data interface{}, err error) {
	var se *services.SideEffectError
	if errors.As(err, &se) {
		utils.SuccessResponseWithWarning(c, data, se.Error())
		return
	}
	if err != nil {
		respondServiceError(c, err)
		return
	}
	utils.SuccessResponse(c, data)
}

func parseUUIDParam(c *gin.Context, name string) (uuid.UUID, bool) {
	id, err := uuid.Parse(c.Param(name))
	if err != nil {
		utils.BadRequestResponse(c, "Invalid "+name, nil)
		return uuid.Nil, false
	}
	return id, true
}

func currentUserID(c *gin.Context) (uuid.UUID, bool) {
	userIDStr, exists := utils.GetUserIDFromContext(c)
	if !exists {
		utils.UnauthorizedResponse(c, "")
		return uuid.Nil, false
	}

	userID, err := uuid.Parse(userIDStr)
	if err != nil {
		utils.BadRequestResponse(c, "Invalid user ID", nil)
		return uuid.Nil, false
	}
	return userID, true
}
