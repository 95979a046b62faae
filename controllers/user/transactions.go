package user

import (
	"strconv"

	"github.com/gofiber/fiber/v2"

	"casemart/database"
	"casemart/helpers"
	"casemart/middlewares"
	"casemart/models"
)

const maxHistoryPage = 100

func Transactions(c *fiber.Ctx) error {
	user, ok := middlewares.CurrentUser(c)
	if !ok {
		return helpers.JSONErrorStatus(c, fiber.StatusUnauthorized, "TOKEN_REQUIRED")
	}

	limit, err := strconv.Atoi(c.Query("limit", "50"))
	if err != nil || limit <= 0 || limit > maxHistoryPage {
		limit = 50
	}

	var txs []models.Transaction
	if err := database.DB.
		Where("user_id = ?", user.ID).
		Order("created_at DESC").
		Limit(limit).
		Find(&txs).Error; err != nil {
		return helpers.ServiceError(c, err)
	}

	return helpers.JSONSuccess(c, "Transactions fetched", txs)
}
