package http

import (
	"github.com/gofiber/fiber/v2"
	"go.uber.org/zap"

	"github.com/apexautomovers/quote-service/internal/config"
	"github.com/apexautomovers/quote-service/internal/observability"
)

// ServerConfig carries the ambient settings of the HTTP surface.
type ServerConfig struct {
	App     config.AppConfig
	CORS    config.CORSConfig
	Logger  *zap.Logger
	Metrics *observability.Metrics
}

// NewApp builds the fiber application with middlewares and routes registered.
func NewApp(cfg ServerConfig, routes RouteConfig) *fiber.App {
	app := fiber.New(fiber.Config{
		AppName:               cfg.App.Name,
		BodyLimit:             cfg.App.BodyLimitBytes,
		DisableStartupMessage: true,
		ErrorHandler: func(c *fiber.Ctx, err error) error {
			writeError(c, cfg.Logger, cfg.Metrics, err)
			return nil
		},
	})

	RegisterMiddlewares(app, cfg)
	RegisterRoutes(app, routes)
	return app
}
