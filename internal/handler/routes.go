package handler

import (
	"github.com/gofiber/fiber/v2"
)

func SetupRoutes(
	app *fiber.App,
	authHandler *AuthHandler,
	wishHandler *WishHandler,
	quoteHandler *QuoteHandler,
	statsHandler *StatsHandler,
	healthHandler *HealthHandler,
	requireAuth fiber.Handler,
	optionalAuth fiber.Handler,
	requireWishOwnership fiber.Handler,
) {
	// Health checks (public)
	app.Get("/health", healthHandler.Health)
	app.Get("/ready", healthHandler.Ready)

	api := app.Group("/api")

	// Auth routes
	auth := api.Group("/auth")
	auth.Post("/register", authHandler.Register)
	auth.Post("/login", authHandler.Login)
	auth.Post("/refresh", authHandler.Refresh)
	auth.Get("/verify", requireAuth, authHandler.Verify)
	auth.Put("/profile", requireAuth, authHandler.UpdateProfile)

	// Wish routes (couple-scoped)
	wishes := api.Group("/wishes", requireAuth)
	wishes.Get("/", wishHandler.List)
	wishes.Post("/", wishHandler.Create)
	wishes.Put("/:id", requireWishOwnership, wishHandler.Update)
	wishes.Delete("/:id", requireWishOwnership, wishHandler.Delete)

	// Quotes (shared, identity optional)
	quotes := api.Group("/quotes")
	quotes.Get("/random", optionalAuth, quoteHandler.Random)
	quotes.Get("/daily", quoteHandler.Daily)

	// Dashboard stats
	api.Get("/stats", requireAuth, statsHandler.Overview)
}
