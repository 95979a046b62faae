package market

import (
	"strconv"

	"github.com/gofiber/fiber/v2"

	"casemart/database"
	"casemart/helpers"
	"casemart/middlewares"
	"casemart/models"
	"casemart/services"
)

func ListActive(c *fiber.Ctx) error {
	var listings []models.MarketListing
	if err := database.DB.
		Where("status = ?", models.ListingActive).
		Order("created_at DESC").
		Find(&listings).Error; err != nil {
		return helpers.ServiceError(c, err)
	}
	return helpers.JSONSuccess(c, "Listings fetched", listings)
}

func Create(c *fiber.Ctx) error {
	user, ok := middlewares.CurrentUser(c)
	if !ok {
		return helpers.JSONErrorStatus(c, fiber.StatusUnauthorized, "TOKEN_REQUIRED")
	}

	var in services.ListingInput
	if err := helpers.BindAndValidate(c, &in); err != nil {
		return helpers.JSONError(c, "NAME_AND_PRICE_REQUIRED")
	}

	listing, err := services.CreateListing(user.ID, in)
	if err != nil {
		return helpers.ServiceError(c, err)
	}
	return helpers.JSONSuccess(c, "Listing created", listing)
}

func Delist(c *fiber.Ctx) error {
	user, ok := middlewares.CurrentUser(c)
	if !ok {
		return helpers.JSONErrorStatus(c, fiber.StatusUnauthorized, "TOKEN_REQUIRED")
	}

	id, err := strconv.ParseUint(c.Params("id"), 10, 64)
	if err != nil {
		return helpers.JSONError(c, "INVALID_LISTING_ID")
	}

	if err := services.DelistListing(user.ID, uint(id)); err != nil {
		return helpers.ServiceError(c, err)
	}
	return helpers.JSONSuccess(c, "Listing removed", nil)
}
