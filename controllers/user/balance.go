package user

import (
	"github.com/gofiber/fiber/v2"

	"casemart/helpers"
	"casemart/middlewares"
)

func Balance(c *fiber.Ctx) error {
	user, ok := middlewares.CurrentUser(c)
	if !ok {
		return helpers.JSONErrorStatus(c, fiber.StatusUnauthorized, "TOKEN_REQUIRED")
	}

	return helpers.JSONSuccess(c, "Balance fetched", fiber.Map{
		"user_id":         user.ID,
		"username":        user.Username,
		"balance":         user.Balance,
		"total_deposited": user.TotalDeposited,
		"role":            user.Role,
	})
}
