package helpers

import (
	"errors"

	"casemart/logger"
	"casemart/services"

	"github.com/gofiber/fiber/v2"
	"go.uber.org/zap"
)

// ServiceError maps a service failure onto the JSON envelope.
// Business-rule conflicts get specific messages; anything unexpected is
// logged with context and surfaced generically.
func ServiceError(c *fiber.Ctx, err error) error {
	switch {
	case errors.Is(err, services.ErrInvalidInput):
		return JSONError(c, "INVALID_REQUEST")
	case errors.Is(err, services.ErrUserNotFound):
		return JSONErrorStatus(c, fiber.StatusNotFound, "USER_NOT_FOUND")
	case errors.Is(err, services.ErrProductNotFound):
		return JSONErrorStatus(c, fiber.StatusNotFound, "PRODUCT_NOT_FOUND")
	case errors.Is(err, services.ErrCaseNotFound):
		return JSONErrorStatus(c, fiber.StatusNotFound, "CASE_NOT_FOUND")
	case errors.Is(err, services.ErrOrderNotFound):
		return JSONErrorStatus(c, fiber.StatusNotFound, "ORDER_NOT_FOUND")
	case errors.Is(err, services.ErrInsufficientBalance):
		return JSONErrorStatus(c, fiber.StatusUnprocessableEntity, "INSUFFICIENT_BALANCE")
	case errors.Is(err, services.ErrInsufficientStock):
		return JSONErrorStatus(c, fiber.StatusConflict, "INSUFFICIENT_STOCK")
	case errors.Is(err, services.ErrListingUnavailable):
		return JSONErrorStatus(c, fiber.StatusConflict, "LISTING_UNAVAILABLE")
	case errors.Is(err, services.ErrSelfPurchase):
		return JSONErrorStatus(c, fiber.StatusForbidden, "CANNOT_BUY_OWN_LISTING")
	case errors.Is(err, services.ErrEmptyCase):
		return JSONErrorStatus(c, fiber.StatusConflict, "CASE_HAS_NO_ITEMS")
	case errors.Is(err, services.ErrAmountMismatch):
		return JSONErrorStatus(c, fiber.StatusConflict, "AMOUNT_MISMATCH")
	default:
		logger.Log.Error("service call failed",
			zap.String("path", c.Path()),
			zap.Error(err),
		)
		return JSONErrorStatus(c, fiber.StatusInternalServerError, "INTERNAL_ERROR")
	}
}
