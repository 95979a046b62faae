package middlewares

import (
	"crypto/subtle"
	"os"

	"github.com/gofiber/fiber/v2"

	"casemart/helpers"
)

// GatewayAuth gates the payment-gateway confirmation callback behind
// the shared callback key.
func GatewayAuth(c *fiber.Ctx) error {
	key := c.Get("X-Gateway-Key")
	expected := os.Getenv("GATEWAY_CALLBACK_KEY")
	if expected == "" || subtle.ConstantTimeCompare([]byte(key), []byte(expected)) != 1 {
		return helpers.JSONErrorStatus(c, fiber.StatusUnauthorized, "INVALID_GATEWAY_KEY")
	}
	return c.Next()
}
