package http

import (
	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/adaptor"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/apexautomovers/quote-service/internal/api/http/handlers"
)

// RouteConfig bundles dependencies for route registration.
type RouteConfig struct {
	Health     *handlers.HealthHandler
	Auth       *handlers.AuthHandler
	Quotes     *handlers.QuotesHandler
	Newsletter *handlers.NewsletterHandler
	RateLimit  *RateLimitMiddleware
	Gatherer   prometheus.Gatherer
}

// RegisterRoutes wires HTTP routes.
func RegisterRoutes(app *fiber.App, cfg RouteConfig) {
	app.Get("/health", cfg.Health.Health)
	app.Get("/health/live", cfg.Health.Live)
	app.Get("/health/ready", cfg.Health.Ready)
	if cfg.Gatherer != nil {
		app.Get("/metrics", adaptor.HTTPHandler(promhttp.HandlerFor(cfg.Gatherer, promhttp.HandlerOpts{})))
	}

	authGroup := app.Group("/auth")
	authGroup.Post("/signup", cfg.RateLimit.For("signup"), cfg.Auth.Signup)
	authGroup.Post("/login", cfg.RateLimit.For("login"), cfg.Auth.Login)

	app.Get("/profile", cfg.Auth.Profile)
	app.Post("/newsletter", cfg.RateLimit.For("newsletter"), cfg.Newsletter.Subscribe)
	app.Post("/quote", cfg.RateLimit.For("quote"), cfg.Quotes.Submit)

	quotes := app.Group("/quotes")
	quotes.Get("/my", cfg.Quotes.ListMine)
	quotes.Get("/all", cfg.Quotes.ListAll)
	quotes.Patch("/:id/status", cfg.Quotes.SetStatus)
	quotes.Patch("/:id", cfg.Quotes.UpdateDetails)
	quotes.Post("/:id/send", cfg.Quotes.Send)
}
