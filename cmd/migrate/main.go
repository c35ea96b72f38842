package main

import (
	"context"
	"flag"
	"log"

	"go.uber.org/zap"

	"github.com/apexautomovers/quote-service/internal/config"
	"github.com/apexautomovers/quote-service/internal/observability"
	"github.com/apexautomovers/quote-service/internal/persistence"
)

func main() {
	direction := flag.String("direction", "up", "migration direction: up or down")
	flag.Parse()

	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("failed to load config: %v", err)
	}
	logger, err := observability.NewLogger(cfg.Logger, cfg.App)
	if err != nil {
		log.Fatalf("failed to init logger: %v", err)
	}
	defer logger.Sync() //nolint:errcheck

	if err := cfg.Postgres.RequireDSN(); err != nil {
		logger.Fatal("cannot migrate", zap.Error(err))
	}

	ctx := context.Background()
	switch *direction {
	case "up":
		err = persistence.RunMigrations(ctx, cfg.Postgres.DSN, logger)
	case "down":
		err = persistence.RollbackMigrations(ctx, cfg.Postgres.DSN, logger)
	default:
		logger.Fatal("unknown direction", zap.String("direction", *direction))
	}
	if err != nil {
		logger.Fatal("migration failed", zap.String("direction", *direction), zap.Error(err))
	}
}
