package auth

import (
	"context"
	"strings"

	"go.uber.org/zap"

	"github.com/apexautomovers/quote-service/internal/domain"
	apperrors "github.com/apexautomovers/quote-service/pkg/util/errorutil"
)

const bearerPrefix = "bearer "

// ExtractBearerToken returns the token of an "Authorization: Bearer <token>" header.
func ExtractBearerToken(header string) (string, bool) {
	if len(header) < len(bearerPrefix) || !strings.EqualFold(header[:len(bearerPrefix)], bearerPrefix) {
		return "", false
	}
	token := strings.TrimSpace(header[len(bearerPrefix):])
	if token == "" {
		return "", false
	}
	return token, true
}

// Gate resolves bearer tokens into callers and enforces the admin role.
type Gate struct {
	provider IdentityProvider
	logger   *zap.Logger
}

// NewGate constructs a gate over provider.
func NewGate(provider IdentityProvider, logger *zap.Logger) *Gate {
	return &Gate{provider: provider, logger: logger}
}

// ResolveUser returns the caller owning token or an UNAUTHORIZED error.
func (g *Gate) ResolveUser(ctx context.Context, token string) (*domain.User, error) {
	if token == "" {
		return nil, apperrors.NewUnauthorized("Unauthorized")
	}
	user, err := g.provider.GetUser(ctx, token)
	if err != nil || user == nil {
		g.logger.Debug("token rejected", zap.Error(err))
		return nil, apperrors.NewUnauthorized("Unauthorized")
	}
	return user, nil
}

// ResolveAdmin returns the caller when it holds the admin role. Unknown callers get
// UNAUTHORIZED and non-admins get FORBIDDEN.
func (g *Gate) ResolveAdmin(ctx context.Context, token string) (*domain.User, error) {
	user, err := g.ResolveUser(ctx, token)
	if err != nil {
		return nil, err
	}
	admin, err := g.provider.IsAdmin(ctx, user.ID)
	if err != nil {
		g.logger.Warn("admin check failed", zap.String("user_id", user.ID), zap.Error(err))
		return nil, apperrors.NewForbidden("Forbidden")
	}
	if !admin {
		return nil, apperrors.NewForbidden("Forbidden")
	}
	return user, nil
}
