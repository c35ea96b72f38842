package service

import (
	"context"
	"fmt"
	"strings"

	"github.com/gofiber/fiber/v2"
	"go.uber.org/multierr"
	"go.uber.org/zap"

	"github.com/apexautomovers/quote-service/internal/config"
	"github.com/apexautomovers/quote-service/internal/domain"
)

// QuoteNotifier delivers a priced quote to the customer. It returns only after the
// delivery succeeded or failed.
type QuoteNotifier interface {
	SendQuoteEmail(ctx context.Context, email domain.QuoteEmail) error
}

// NotificationService logs outgoing quote emails and, when a relay is configured,
// posts them to it.
type NotificationService struct {
	logger *zap.Logger
	cfg    config.NotificationConfig
}

// NewNotificationService creates the service.
func NewNotificationService(logger *zap.Logger, cfg config.NotificationConfig) *NotificationService {
	return &NotificationService{
		logger: logger,
		cfg:    cfg,
	}
}

type relayMessage struct {
	From string `json:"from"`
	domain.QuoteEmail
}

// SendQuoteEmail implements QuoteNotifier.
func (n *NotificationService) SendQuoteEmail(ctx context.Context, email domain.QuoteEmail) error {
	n.logger.Info("sendQuoteEmail",
		zap.String("from", n.cfg.EmailFrom),
		zap.String("to", email.To),
		zap.String("customer_name", email.CustomerName),
		zap.String("quote_amount", email.QuoteAmount.StringFixed(2)),
		zap.String("transport_type", string(email.TransportType)))

	if strings.TrimSpace(n.cfg.WebhookURL) == "" {
		return nil
	}
	if err := ctx.Err(); err != nil {
		return err
	}

	agent := fiber.Post(n.cfg.WebhookURL).
		JSON(relayMessage{From: n.cfg.EmailFrom, QuoteEmail: email}).
		Timeout(n.cfg.WebhookTimeout)
	if n.cfg.WebhookToken != "" {
		agent.Set(fiber.HeaderAuthorization, "Bearer "+n.cfg.WebhookToken)
	}

	status, body, errs := agent.Bytes()
	if len(errs) > 0 {
		return fmt.Errorf("post quote email relay: %w", multierr.Combine(errs...))
	}
	if status < fiber.StatusOK || status >= fiber.StatusMultipleChoices {
		return fmt.Errorf("quote email relay responded %d: %s", status, strings.TrimSpace(string(body)))
	}

	n.logger.Debug("quote email relayed", zap.String("to", email.To), zap.Int("status", status))
	return nil
}
