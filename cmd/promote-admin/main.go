// Command promote-admin grants the admin role to an existing account.
package main

import (
	"context"
	"flag"
	"log"
	"strings"

	"go.uber.org/zap"

	"github.com/apexautomovers/quote-service/internal/config"
	"github.com/apexautomovers/quote-service/internal/domain"
	"github.com/apexautomovers/quote-service/internal/observability"
	"github.com/apexautomovers/quote-service/internal/persistence"
	"github.com/apexautomovers/quote-service/internal/repository"
)

func main() {
	email := flag.String("email", "", "email of the account to promote")
	revoke := flag.Bool("revoke", false, "demote the account back to a regular user")
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

	target := strings.ToLower(strings.TrimSpace(*email))
	if target == "" {
		logger.Fatal("-email is required")
	}

	ctx := context.Background()
	pg, err := persistence.NewPostgres(ctx, cfg.Postgres, logger)
	if err != nil {
		logger.Fatal("failed to connect postgres", zap.Error(err))
	}
	defer pg.Close()

	role := domain.RoleAdmin
	if *revoke {
		role = domain.RoleUser
	}

	profile, err := repository.NewProfileRepository(pg.Pool).SetRole(ctx, target, role)
	if err != nil {
		logger.Fatal("failed to update role", zap.Error(err))
	}
	if profile == nil {
		logger.Fatal("no account registered with that email", zap.String("email", target))
	}
	logger.Info("role updated", zap.String("user_id", profile.UserID), zap.String("role", string(profile.Role)))
}
