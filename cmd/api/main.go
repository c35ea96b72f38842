package main

import (
	"context"
	"log"
	"os"
	"os/signal"
	"syscall"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"go.uber.org/multierr"
	"go.uber.org/zap"

	httptransport "github.com/apexautomovers/quote-service/internal/api/http"
	"github.com/apexautomovers/quote-service/internal/api/http/handlers"
	"github.com/apexautomovers/quote-service/internal/auth"
	"github.com/apexautomovers/quote-service/internal/config"
	"github.com/apexautomovers/quote-service/internal/events"
	"github.com/apexautomovers/quote-service/internal/observability"
	"github.com/apexautomovers/quote-service/internal/persistence"
	"github.com/apexautomovers/quote-service/internal/repository"
	"github.com/apexautomovers/quote-service/internal/repository/memory"
	"github.com/apexautomovers/quote-service/internal/service"
	"github.com/apexautomovers/quote-service/internal/worker"
)

type stores struct {
	quotes     repository.QuoteRepository
	users      repository.UserRepository
	profiles   repository.ProfileRepository
	newsletter repository.NewsletterRepository
}

func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("failed to load config: %v", err)
	}

	logger, err := observability.NewLogger(cfg.Logger, cfg.App)
	if err != nil {
		log.Fatalf("failed to init logger: %v", err)
	}
	defer logger.Sync() //nolint:errcheck

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	registry := prometheus.NewRegistry()
	registry.MustRegister(
		collectors.NewGoCollector(),
		collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
	)
	metrics := observability.NewMetrics(registry)

	checks := map[string]handlers.Pinger{}

	var (
		pg   *persistence.Postgres
		data stores
	)
	if cfg.Postgres.DSN == "" {
		if cfg.App.IsProduction() {
			logger.Fatal("POSTGRES_DSN is required in production")
		}
		logger.Warn("POSTGRES_DSN not set, using in-memory storage")
		accounts := memory.NewAccounts()
		data = stores{
			quotes:     memory.NewQuoteRepository(),
			users:      accounts,
			profiles:   accounts,
			newsletter: memory.NewNewsletterRepository(),
		}
	} else {
		if cfg.Postgres.RunMigrations {
			if err := persistence.RunMigrations(ctx, cfg.Postgres.DSN, logger); err != nil {
				logger.Fatal("failed to run migrations", zap.Error(err))
			}
		}
		pg, err = persistence.NewPostgres(ctx, cfg.Postgres, logger)
		if err != nil {
			logger.Fatal("failed to connect postgres", zap.Error(err))
		}
		checks["postgres"] = pg
		data = stores{
			quotes:     repository.NewQuoteRepository(pg.Pool),
			users:      repository.NewUserRepository(pg.Pool),
			profiles:   repository.NewProfileRepository(pg.Pool),
			newsletter: repository.NewNewsletterRepository(pg.Pool),
		}
	}

	var limiter httptransport.RateLimiter
	redis := persistence.NewRedis(ctx, cfg.Redis, logger)
	if redis != nil {
		limiter = redis
		checks["redis"] = redis
	} else if cfg.RateLimit.Enabled {
		logger.Warn("REDIS_ADDR not set, rate limiting disabled")
	}

	dispatcher := events.NewInMemoryDispatcher(logger)
	worker.StartActivityWorker(service.NewActivityRecorder(dispatcher, logger, metrics))

	tokens := auth.NewTokenManager(cfg.Auth.JWTSecret, cfg.Auth.AccessTokenTTLMinutes)
	provider := auth.NewLocalProvider(data.users, data.profiles, tokens, auth.LocalProviderConfig{
		BcryptCost:        cfg.Auth.BcryptCost,
		MinPasswordLength: cfg.Auth.MinPasswordLength,
	})
	gate := auth.NewGate(provider, logger)

	quoteService := service.NewQuoteService(service.QuoteDependencies{
		QuoteRepo:  data.quotes,
		Gate:       gate,
		Notifier:   service.NewNotificationService(logger, cfg.Notification),
		Dispatcher: dispatcher,
		Logger:     logger,
	})
	accountService := service.NewAccountService(service.AccountDependencies{
		Provider:    provider,
		Gate:        gate,
		ProfileRepo: data.profiles,
		Logger:      logger,
	})

	app := httptransport.NewApp(httptransport.ServerConfig{
		App:     cfg.App,
		CORS:    cfg.CORS,
		Logger:  logger,
		Metrics: metrics,
	}, httptransport.RouteConfig{
		Health:     handlers.NewHealthHandler(cfg.App.Name, cfg.App.Version, checks),
		Auth:       handlers.NewAuthHandler(accountService),
		Quotes:     handlers.NewQuotesHandler(quoteService),
		Newsletter: handlers.NewNewsletterHandler(service.NewNewsletterService(data.newsletter)),
		RateLimit:  httptransport.NewRateLimitMiddleware(limiter, cfg.RateLimit, logger),
		Gatherer:   registry,
	})

	go func() {
		logger.Info("http server starting", zap.String("addr", cfg.App.Addr()))
		if err := app.Listen(cfg.App.Addr()); err != nil {
			logger.Fatal("fiber listen", zap.Error(err))
		}
	}()

	waitForShutdown(logger)

	err = app.ShutdownWithTimeout(cfg.App.ShutdownTimeout)
	if redis != nil {
		err = multierr.Append(err, redis.Close())
	}
	pg.Close()
	if err != nil {
		logger.Error("shutdown finished with errors", zap.Error(err))
		return
	}
	logger.Info("shutdown complete")
}

func waitForShutdown(logger *zap.Logger) {
	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, syscall.SIGINT, syscall.SIGTERM)

	sig := <-sigCh
	logger.Info("shutting down", zap.String("signal", sig.String()))
}
