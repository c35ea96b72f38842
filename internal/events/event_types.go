package events

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/apexautomovers/quote-service/internal/domain"
)

// EventType enumerates supported event identifiers.
type EventType string

const (
	EventQuoteSubmitted     EventType = "quote.submitted"
	EventQuoteStatusChanged EventType = "quote.status_changed"
	EventQuoteUpdated       EventType = "quote.updated"
	EventQuoteSent          EventType = "quote.sent"
)

// Actor identifies who triggered an event. A nil UserID is a guest.
type Actor struct {
	UserID *string `json:"user_id,omitempty"`
	Admin  bool    `json:"admin"`
}

// Event represents a quote lifecycle event emitted by services.
type Event struct {
	ID        string      `json:"id"`
	Type      EventType   `json:"type"`
	QuoteID   string      `json:"quote_id"`
	Actor     Actor       `json:"actor"`
	Timestamp time.Time   `json:"timestamp"`
	Payload   interface{} `json:"payload"`
}

// NewEvent stamps an event with a fresh id and the current time.
func NewEvent(eventType EventType, quoteID string, actor Actor, payload interface{}) Event {
	return Event{
		ID:        uuid.NewString(),
		Type:      eventType,
		QuoteID:   quoteID,
		Actor:     actor,
		Timestamp: time.Now().UTC(),
		Payload:   payload,
	}
}

// QuoteSubmittedPayload payload.
type QuoteSubmittedPayload struct {
	TransportType domain.TransportType `json:"transport_type"`
	Guest         bool                 `json:"guest"`
}

// QuoteStatusChangedPayload payload.
type QuoteStatusChangedPayload struct {
	NewStatus domain.QuoteStatus `json:"new_status"`
}

// QuoteUpdatedPayload lists the columns an admin patch wrote.
type QuoteUpdatedPayload struct {
	Fields []string `json:"fields"`
}

// QuoteSentPayload payload.
type QuoteSentPayload struct {
	QuoteAmount decimal.Decimal `json:"quote_amount"`
	Recipient   string          `json:"recipient"`
}
