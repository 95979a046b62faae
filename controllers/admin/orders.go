package admin

import (
	"errors"

	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"

	"casemart/database"
	"casemart/helpers"
	"casemart/models"
)

// Admin fulfilment tooling: a buyer presents a redemption code out of
// band, the admin looks the record up here and marks it handled.

func OrderByCode(c *fiber.Ctx) error {
	code := c.Params("code")
	if code == "" {
		return helpers.JSONError(c, "CODE_REQUIRED")
	}

	var order models.Order
	if err := database.DB.Where("secret_code = ?", code).First(&order).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return helpers.JSONErrorStatus(c, fiber.StatusNotFound, "ORDER_NOT_FOUND")
		}
		return helpers.ServiceError(c, err)
	}
	return helpers.JSONSuccess(c, "Order fetched", order)
}

type OrderStatusRequest struct {
	Status models.OrderStatus `json:"status" validate:"required,oneof=pending completed cancelled"`
}

func UpdateOrderStatus(c *fiber.Ctx) error {
	code := c.Params("code")
	if code == "" {
		return helpers.JSONError(c, "CODE_REQUIRED")
	}

	var req OrderStatusRequest
	if err := helpers.BindAndValidate(c, &req); err != nil {
		return helpers.JSONError(c, "INVALID_STATUS")
	}

	res := database.DB.Model(&models.Order{}).
		Where("secret_code = ?", code).
		Update("status", req.Status)
	if res.Error != nil {
		return helpers.ServiceError(c, res.Error)
	}
	if res.RowsAffected == 0 {
		return helpers.JSONErrorStatus(c, fiber.StatusNotFound, "ORDER_NOT_FOUND")
	}
	return helpers.JSONSuccess(c, "Order status updated", nil)
}

// ClaimGachaCode flips a gacha reward to claimed exactly once.
func ClaimGachaCode(c *fiber.Ctx) error {
	code := c.Params("code")
	if code == "" {
		return helpers.JSONError(c, "CODE_REQUIRED")
	}

	res := database.DB.Model(&models.GachaHistory{}).
		Where("code = ? AND status = ?", code, models.GachaUnclaimed).
		Update("status", models.GachaClaimed)
	if res.Error != nil {
		return helpers.ServiceError(c, res.Error)
	}
	if res.RowsAffected == 0 {
		return helpers.JSONErrorStatus(c, fiber.StatusNotFound, "CODE_NOT_FOUND_OR_CLAIMED")
	}
	return helpers.JSONSuccess(c, "Reward claimed", nil)
}
