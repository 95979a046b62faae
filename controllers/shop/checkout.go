package shop

import (
	"github.com/gofiber/fiber/v2"

	"casemart/helpers"
	"casemart/middlewares"
	"casemart/services"
)

type CheckoutRequest struct {
	Items []services.CheckoutItem `json:"items" validate:"required,min=1,dive"`
}

func Checkout(c *fiber.Ctx) error {
	user, ok := middlewares.CurrentUser(c)
	if !ok {
		return helpers.JSONErrorStatus(c, fiber.StatusUnauthorized, "TOKEN_REQUIRED")
	}

	var req CheckoutRequest
	if err := helpers.BindAndValidate(c, &req); err != nil {
		return helpers.JSONError(c, "INVALID_ITEMS")
	}

	result, err := services.Checkout(user.ID, req.Items)
	if err != nil {
		return helpers.ServiceError(c, err)
	}

	return helpers.JSONSuccess(c, "Order completed", result)
}
