package handler

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	domainContainer "vehicle-shipping-backend/internal/domain/container"
	domainInvoice "vehicle-shipping-backend/internal/domain/invoice"
	domainShipment "vehicle-shipping-backend/internal/domain/shipment"
	domainTracking "vehicle-shipping-backend/internal/domain/tracking"
	domainUser "vehicle-shipping-backend/internal/domain/user"
	"vehicle-shipping-backend/internal/logger"
	"vehicle-shipping-backend/internal/middleware"
	appErrors "vehicle-shipping-backend/pkg/errors"
	"vehicle-shipping-backend/pkg/utils"
)

// respondWithError maps domain errors to HTTP status codes. Anything
// unrecognized is logged with its request ID and returned as a generic 500
// so internals never leak to clients.
func respondWithError(c *gin.Context, err error) {
	if err == nil {
		return
	}

	switch {
	case errors.Is(err, appErrors.ErrUserAlreadyExists),
		errors.Is(err, domainShipment.ErrDuplicateTracking),
		errors.Is(err, domainContainer.ErrDuplicateNumber),
		errors.Is(err, domainContainer.ErrShipmentLinkExists),
		errors.Is(err, domainInvoice.ErrDuplicateNumber):
		// Uniqueness conflicts surface as 400 with the conflict-specific
		// message so clients can show it inline.
		utils.ErrorResponse(c, http.StatusBadRequest, err.Error())
	case errors.Is(err, appErrors.ErrInvalidCredentials),
		errors.Is(err, appErrors.ErrInvalidToken),
		errors.Is(err, appErrors.ErrTokenExpired),
		errors.Is(err, appErrors.ErrTokenRevoked),
		errors.Is(err, domainUser.ErrResetTokenInvalid),
		errors.Is(err, appErrors.ErrUnauthorized):
		utils.ErrorResponse(c, http.StatusUnauthorized, err.Error())
	case errors.Is(err, appErrors.ErrUserInactive),
		errors.Is(err, appErrors.ErrInsufficientPermissions),
		errors.Is(err, domainShipment.ErrNotOwner):
		utils.ErrorResponse(c, http.StatusForbidden, err.Error())
	case errors.Is(err, appErrors.ErrUserNotFound),
		errors.Is(err, domainShipment.ErrShipmentNotFound),
		errors.Is(err, domainContainer.ErrContainerNotFound),
		errors.Is(err, domainContainer.ErrItemNotFound),
		errors.Is(err, domainInvoice.ErrInvoiceNotFound),
		errors.Is(err, domainUser.ErrTokenNotFound),
		errors.Is(err, domainTracking.ErrNoData):
		utils.ErrorResponse(c, http.StatusNotFound, err.Error())
	case errors.Is(err, domainShipment.ErrInvalidStatusTransition),
		errors.Is(err, domainShipment.ErrProgressRegression),
		errors.Is(err, domainShipment.ErrShipmentDelivered),
		errors.Is(err, domainShipment.ErrShipmentCancelled),
		errors.Is(err, domainInvoice.ErrAlreadyPaid):
		utils.ErrorResponse(c, http.StatusUnprocessableEntity, err.Error())
	case errors.Is(err, domainTracking.ErrUnavailable):
		utils.ErrorResponse(c, http.StatusBadGateway, err.Error())
	default:
		var appErr *appErrors.AppError
		if errors.As(err, &appErr) {
			switch appErr.Code {
			case "INVALID_STATUS", "INVALID_TRANSITION", "INVALID_PROGRESS":
				utils.ErrorResponse(c, http.StatusUnprocessableEntity, appErr.Message)
			default:
				utils.ErrorResponse(c, http.StatusBadRequest, appErr.Message)
			}
			return
		}

		logger.Error("Internal server error",
			zap.String("request_id", middleware.GetRequestID(c)),
			zap.String("path", c.Request.URL.Path),
			zap.String("method", c.Request.Method),
			zap.Error(err),
		)
		utils.ErrorResponse(c, http.StatusInternalServerError, "Internal server error")
	}
}
