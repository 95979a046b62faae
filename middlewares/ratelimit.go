package middlewares

import (
	"strconv"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/limiter"

	"casemart/helpers"
)

// PerUserLimit caps how often one user may hit a spending route.
// Defense in depth only: correctness against double-spends comes from
// the ledger's guarded updates, not from this limiter.
func PerUserLimit(max int, window time.Duration) fiber.Handler {
	return limiter.New(limiter.Config{
		Max:        max,
		Expiration: window,
		KeyGenerator: func(c *fiber.Ctx) string {
			if user, ok := CurrentUser(c); ok {
				return strconv.FormatUint(uint64(user.ID), 10)
			}
			return c.IP()
		},
		LimitReached: func(c *fiber.Ctx) error {
			return helpers.JSONErrorStatus(c, fiber.StatusTooManyRequests, "TOO_MANY_REQUESTS")
		},
	})
}
