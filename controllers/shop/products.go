package shop

import (
	"github.com/gofiber/fiber/v2"

	"casemart/database"
	"casemart/helpers"
	"casemart/models"
)

func ListProducts(c *fiber.Ctx) error {
	q := database.DB.Order("category, name")
	if category := c.Query("category"); category != "" {
		q = q.Where("category = ?", category)
	}

	var products []models.Product
	if err := q.Find(&products).Error; err != nil {
		return helpers.ServiceError(c, err)
	}
	return helpers.JSONSuccess(c, "Products fetched", products)
}
