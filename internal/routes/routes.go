package routes

import (
	"github.com/ahmetcoskunkizilkaya/gallery-backend/internal/config"
	"github.com/ahmetcoskunkizilkaya/gallery-backend/internal/handlers"
	"github.com/ahmetcoskunkizilkaya/gallery-backend/internal/middleware"
	"github.com/gofiber/fiber/v2"
)

func Setup(
	app *fiber.App,
	cfg *config.Config,
	verifier middleware.IDTokenVerifier,
	authHandler *handlers.AuthHandler,
	imageHandler *handlers.ImageHandler,
	healthHandler *handlers.HealthHandler,
) {
	api := app.Group("/api")

	api.Get("/health", healthHandler.Check)

	// Exactly one auth variant is routed per deployment; the other
	// endpoint does not exist.
	auth := api.Group("/auth")
	if cfg.AuthProvider == config.ProviderGoogle {
		auth.Post("/google", authHandler.GoogleSignIn)
	} else {
		auth.Post("/login", authHandler.Login)
	}

	api.Get("/images", imageHandler.List)
	api.Delete("/images/:id", middleware.Protected(cfg, verifier), middleware.AdminRequired(), imageHandler.Delete)
}
