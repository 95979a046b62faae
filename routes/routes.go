package routes

import (
	"time"

	"github.com/gofiber/fiber/v2"

	"casemart/controllers/admin"
	"casemart/controllers/callback/card"
	"casemart/controllers/callback/payment"
	"casemart/controllers/gacha"
	"casemart/controllers/market"
	"casemart/controllers/shop"
	"casemart/controllers/user"
	"casemart/middlewares"
)

func Setup(app *fiber.App) {
	// Public catalog reads.
	app.Get("/shop/products", shop.ListProducts)
	app.Get("/gacha/cases", gacha.ListCases)
	app.Get("/market/listings", market.ListActive)

	userroutes := app.Group("/user", middlewares.UserAuth)
	userroutes.Get("/balance", user.Balance)
	userroutes.Get("/transactions", user.Transactions)
	userroutes.Post("/deposit", user.RequestDeposit)

	// Spending routes get per-user rate limits on top of the ledger
	// guards: one checkout per second, one roll per reveal window.
	shoproutes := app.Group("/shop", middlewares.UserAuth)
	shoproutes.Post("/checkout",
		middlewares.PerUserLimit(1, time.Second), shop.Checkout)

	gacharoutes := app.Group("/gacha", middlewares.UserAuth)
	gacharoutes.Post("/roll",
		middlewares.PerUserLimit(1, 3*time.Second), gacha.Roll)
	gacharoutes.Get("/history", gacha.History)

	marketroutes := app.Group("/market", middlewares.UserAuth)
	marketroutes.Post("/purchase",
		middlewares.PerUserLimit(1, time.Second), market.Purchase)
	marketroutes.Post("/listings", middlewares.SellerOnly, market.Create)
	marketroutes.Delete("/listings/:id", middlewares.SellerOnly, market.Delist)

	adminroutes := app.Group("/admin", middlewares.UserAuth, middlewares.AdminOnly)
	adminroutes.Get("/orders/:code", admin.OrderByCode)
	adminroutes.Post("/orders/:code/status", admin.UpdateOrderStatus)
	adminroutes.Post("/gacha/:code/claim", admin.ClaimGachaCode)

	// External collaborators.
	app.Post("/callback/payment/confirm", middlewares.GatewayAuth, payment.Confirm)
	app.Post("/callback/card/topup", card.Topup)
}
