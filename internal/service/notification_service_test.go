package service

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/apexautomovers/quote-service/internal/config"
	"github.com/apexautomovers/quote-service/internal/domain"
	"github.com/apexautomovers/quote-service/internal/events"
)

func sampleEmail() domain.QuoteEmail {
	return domain.QuoteEmail{
		To:            "jo@example.com",
		CustomerName:  "Jo Lee",
		QuoteAmount:   decimal.RequireFromString("899.50"),
		Pickup:        "Austin, TX",
		Delivery:      "Miami, FL",
		TransportType: domain.TransportOpen,
	}
}

func TestNotificationServiceLogsOnlyWithoutRelay(t *testing.T) {
	n := NewNotificationService(zap.NewNop(), config.NotificationConfig{EmailFrom: "quotes@apex.test"})
	require.NoError(t, n.SendQuoteEmail(context.Background(), sampleEmail()))
}

func TestNotificationServicePostsToRelay(t *testing.T) {
	var received map[string]any
	var auth string
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		auth = r.Header.Get("Authorization")
		_ = json.NewDecoder(r.Body).Decode(&received)
		w.WriteHeader(http.StatusAccepted)
	}))
	defer server.Close()

	n := NewNotificationService(zap.NewNop(), config.NotificationConfig{
		EmailFrom:      "quotes@apex.test",
		WebhookURL:     server.URL,
		WebhookToken:   "relay-secret",
		WebhookTimeout: 2 * time.Second,
	})
	require.NoError(t, n.SendQuoteEmail(context.Background(), sampleEmail()))

	assert.Equal(t, "Bearer relay-secret", auth)
	assert.Equal(t, "jo@example.com", received["to"])
	assert.Equal(t, "quotes@apex.test", received["from"])
	assert.Equal(t, "899.5", received["quote_amount"])
}

func TestNotificationServiceFailsOnRelayError(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		http.Error(w, "mailbox full", http.StatusBadGateway)
	}))
	defer server.Close()

	n := NewNotificationService(zap.NewNop(), config.NotificationConfig{
		WebhookURL:     server.URL,
		WebhookTimeout: 2 * time.Second,
	})
	err := n.SendQuoteEmail(context.Background(), sampleEmail())
	require.Error(t, err)
	assert.Contains(t, err.Error(), "502")
}

type countingMetrics struct {
	counts map[string]int
}

func (c *countingMetrics) RecordLifecycleEvent(eventType string) {
	c.counts[eventType]++
}

func TestActivityRecorderCountsEvents(t *testing.T) {
	dispatcher := events.NewInMemoryDispatcher(zap.NewNop())
	metrics := &countingMetrics{counts: map[string]int{}}
	NewActivityRecorder(dispatcher, zap.NewNop(), metrics).RegisterHandlers()

	ctx := context.Background()
	dispatcher.Publish(ctx, events.NewEvent(events.EventQuoteSubmitted, "q1", events.Actor{}, nil))
	dispatcher.Publish(ctx, events.NewEvent(events.EventQuoteSent, "q1", events.Actor{Admin: true}, nil))
	dispatcher.Publish(ctx, events.NewEvent(events.EventQuoteSent, "q2", events.Actor{Admin: true}, nil))

	assert.Equal(t, 1, metrics.counts["quote.submitted"])
	assert.Equal(t, 2, metrics.counts["quote.sent"])
}
