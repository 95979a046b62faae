package user

import (
	"github.com/gofiber/fiber/v2"

	"casemart/helpers"
	"casemart/middlewares"
	"casemart/services"
)

type DepositRequest struct {
	Amount int64  `json:"amount" validate:"required,gt=0"`
	Method string `json:"method" validate:"omitempty,oneof=gateway card"`
}

func RequestDeposit(c *fiber.Ctx) error {
	user, ok := middlewares.CurrentUser(c)
	if !ok {
		return helpers.JSONErrorStatus(c, fiber.StatusUnauthorized, "TOKEN_REQUIRED")
	}

	var req DepositRequest
	if err := helpers.BindAndValidate(c, &req); err != nil {
		return helpers.JSONError(c, "AMOUNT_REQUIRED")
	}
	if req.Method == "" {
		req.Method = "gateway"
	}

	result, err := services.RequestDeposit(user.ID, req.Amount, req.Method)
	if err != nil {
		return helpers.ServiceError(c, err)
	}

	return helpers.JSONSuccess(c, "Deposit created", result)
}
