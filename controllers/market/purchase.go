package market

import (
	"github.com/gofiber/fiber/v2"

	"casemart/helpers"
	"casemart/middlewares"
	"casemart/services"
)

type PurchaseRequest struct {
	ListingID uint `json:"listing_id" validate:"required"`
}

func Purchase(c *fiber.Ctx) error {
	user, ok := middlewares.CurrentUser(c)
	if !ok {
		return helpers.JSONErrorStatus(c, fiber.StatusUnauthorized, "TOKEN_REQUIRED")
	}

	var req PurchaseRequest
	if err := helpers.BindAndValidate(c, &req); err != nil {
		return helpers.JSONError(c, "LISTING_ID_REQUIRED")
	}

	result, err := services.PurchaseListing(user.ID, req.ListingID)
	if err != nil {
		return helpers.ServiceError(c, err)
	}

	return helpers.JSONSuccess(c, "Purchase completed", fiber.Map{
		"code":           result.Code,
		"seller_contact": result.SellerContact,
		"new_balance":    result.NewBalance,
	})
}
