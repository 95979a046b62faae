package payment

import (
	"github.com/gofiber/fiber/v2"

	"casemart/helpers"
	"casemart/services"
)

type ConfirmRequest struct {
	OrderCode string `json:"order_code" validate:"required"`
	Amount    int64  `json:"amount" validate:"required,gt=0"`
}

// Confirm consumes one gateway confirmation event. Safe under
// duplicate delivery: replays are acknowledged without re-crediting.
func Confirm(c *fiber.Ctx) error {
	var req ConfirmRequest
	if err := helpers.BindAndValidate(c, &req); err != nil {
		return helpers.JSONError(c, "ORDER_CODE_AND_AMOUNT_REQUIRED")
	}

	trx, err := services.ConfirmDeposit(req.OrderCode, req.Amount)
	if err != nil {
		return helpers.ServiceError(c, err)
	}

	return helpers.JSONSuccess(c, "Deposit confirmed", fiber.Map{
		"order_code": trx.OrderCode,
		"amount":     trx.Amount,
		"status":     trx.Status,
	})
}
