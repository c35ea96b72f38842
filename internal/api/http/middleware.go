package http

import (
	"context"
	"runtime/debug"
	"strconv"
	"strings"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/cors"
	"go.uber.org/zap"

	"github.com/apexautomovers/quote-service/internal/api/dto"
	"github.com/apexautomovers/quote-service/internal/auth"
	"github.com/apexautomovers/quote-service/internal/config"
	"github.com/apexautomovers/quote-service/internal/observability"
	apperrors "github.com/apexautomovers/quote-service/pkg/util/errorutil"
)

// RegisterMiddlewares attaches global middlewares such as error handling and logging.
func RegisterMiddlewares(app *fiber.App, cfg ServerConfig) {
	app.Use(cors.New(cors.Config{
		AllowOrigins: strings.Join(cfg.CORS.AllowedOrigins, ","),
		AllowMethods: "GET,POST,PATCH,OPTIONS",
		AllowHeaders: "Authorization,Content-Type,X-Request-ID",
	}))
	app.Use(observability.RequestLogger(cfg.Logger, cfg.Metrics))
	app.Use(errorHandlingMiddleware(cfg.Logger, cfg.Metrics))
	if timeout := cfg.App.RequestTimeout(); timeout > 0 {
		app.Use(requestTimeoutMiddleware(timeout))
	}
	app.Use(auth.CaptureToken())
}

func requestTimeoutMiddleware(timeout time.Duration) fiber.Handler {
	return func(c *fiber.Ctx) error {
		ctx, cancel := context.WithTimeout(c.UserContext(), timeout)
		defer cancel()
		c.SetUserContext(ctx)
		return c.Next()
	}
}

func errorHandlingMiddleware(logger *zap.Logger, metrics *observability.Metrics) fiber.Handler {
	return func(c *fiber.Ctx) (err error) {
		defer func() {
			if r := recover(); r != nil {
				logger.Error("panic recovered", zap.Any("panic", r), zap.ByteString("stack", debug.Stack()))
				err = apperrors.NewInternalError(nil)
			}
			if err != nil {
				writeError(c, logger, metrics, err)
				err = nil
			}
		}()
		return c.Next()
	}
}

// writeError renders err in the failure envelope. Details are never sent to
// unauthenticated callers.
func writeError(c *fiber.Ctx, logger *zap.Logger, metrics *observability.Metrics, err error) {
	domainErr := apperrors.ToDomainError(err)
	metrics.RecordError(observability.RouteLabel(c), c.Method(), domainErr.Code)

	body := dto.ErrorEnvelope{Success: false, Error: domainErr.Message}
	if len(domainErr.Details) > 0 && domainErr.HTTPStatus != fiber.StatusUnauthorized {
		body.Details = domainErr.Details
	}
	if domainErr.HTTPStatus >= fiber.StatusInternalServerError {
		logger.Error("request failed",
			zap.String("request_id", observability.RequestID(c)),
			zap.String("code", domainErr.Code),
			zap.Error(domainErr))
	}
	_ = c.Status(domainErr.HTTPStatus).JSON(body)
}

// RateLimiter counts requests in fixed windows.
type RateLimiter interface {
	FixedWindowAllow(ctx context.Context, scope string, limit int64, window time.Duration) (bool, int64, error)
}

// RateLimitMiddleware throttles public write endpoints per client IP.
type RateLimitMiddleware struct {
	limiter RateLimiter
	cfg     config.RateLimitConfig
	logger  *zap.Logger
}

// NewRateLimitMiddleware returns nil when limiting is disabled or no limiter exists.
func NewRateLimitMiddleware(limiter RateLimiter, cfg config.RateLimitConfig, logger *zap.Logger) *RateLimitMiddleware {
	if limiter == nil || !cfg.Enabled {
		return nil
	}
	return &RateLimitMiddleware{limiter: limiter, cfg: cfg, logger: logger}
}

// For returns a handler limiting scope. Limiter failures let the request through.
func (m *RateLimitMiddleware) For(scope string) fiber.Handler {
	if m == nil {
		return func(c *fiber.Ctx) error { return c.Next() }
	}
	return func(c *fiber.Ctx) error {
		allowed, count, err := m.limiter.FixedWindowAllow(c.UserContext(), scope+":"+c.IP(), m.cfg.Limit, m.cfg.Window)
		if err != nil {
			m.logger.Warn("rate limiter unavailable", zap.String("scope", scope), zap.Error(err))
			return c.Next()
		}
		remaining := m.cfg.Limit - count
		if remaining < 0 {
			remaining = 0
		}
		c.Set("X-RateLimit-Limit", strconv.FormatInt(m.cfg.Limit, 10))
		c.Set("X-RateLimit-Remaining", strconv.FormatInt(remaining, 10))
		if !allowed {
			c.Set(fiber.HeaderRetryAfter, strconv.Itoa(int(m.cfg.Window.Seconds())))
			return apperrors.NewRateLimited()
		}
		return c.Next()
	}
}
