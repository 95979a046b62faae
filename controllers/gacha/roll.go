package gacha

import (
	"github.com/gofiber/fiber/v2"

	"casemart/helpers"
	"casemart/middlewares"
	"casemart/services"
)

type RollRequest struct {
	CaseID uint `json:"case_id" validate:"required"`
}

func Roll(c *fiber.Ctx) error {
	user, ok := middlewares.CurrentUser(c)
	if !ok {
		return helpers.JSONErrorStatus(c, fiber.StatusUnauthorized, "TOKEN_REQUIRED")
	}

	var req RollRequest
	if err := helpers.BindAndValidate(c, &req); err != nil {
		return helpers.JSONError(c, "CASE_ID_REQUIRED")
	}

	result, err := services.RollCase(user.ID, req.CaseID)
	if err != nil {
		return helpers.ServiceError(c, err)
	}

	return helpers.JSONSuccess(c, "Roll completed", fiber.Map{
		"won_item":    result.WonItem,
		"visual_item": result.VisualItem,
		"code":        result.History.Code,
		"new_balance": result.NewBalance,
	})
}
