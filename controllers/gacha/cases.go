package gacha

import (
	"github.com/gofiber/fiber/v2"

	"casemart/database"
	"casemart/helpers"
	"casemart/middlewares"
	"casemart/models"
)

func ListCases(c *fiber.Ctx) error {
	var cases []models.GachaCase
	if err := database.DB.Preload("Items").Order("price").Find(&cases).Error; err != nil {
		return helpers.ServiceError(c, err)
	}
	return helpers.JSONSuccess(c, "Cases fetched", cases)
}

func History(c *fiber.Ctx) error {
	user, ok := middlewares.CurrentUser(c)
	if !ok {
		return helpers.JSONErrorStatus(c, fiber.StatusUnauthorized, "TOKEN_REQUIRED")
	}

	var rows []models.GachaHistory
	if err := database.DB.
		Where("user_id = ?", user.ID).
		Order("created_at DESC").
		Limit(100).
		Find(&rows).Error; err != nil {
		return helpers.ServiceError(c, err)
	}
	return helpers.JSONSuccess(c, "History fetched", rows)
}
