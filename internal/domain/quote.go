package domain

import (
	"time"

	"github.com/shopspring/decimal"
)

// QuoteStatus enumerates lifecycle states for quotes.
type QuoteStatus string

const (
	QuoteStatusNew       QuoteStatus = "new"
	QuoteStatusContacted QuoteStatus = "contacted"
	QuoteStatusBooked    QuoteStatus = "booked"
	QuoteStatusCompleted QuoteStatus = "completed"
)

// QuoteStatuses lists the canonical vocabulary in workflow order.
var QuoteStatuses = []QuoteStatus{
	QuoteStatusNew,
	QuoteStatusContacted,
	QuoteStatusBooked,
	QuoteStatusCompleted,
}

// Valid reports whether s belongs to the canonical status vocabulary.
func (s QuoteStatus) Valid() bool {
	for _, candidate := range QuoteStatuses {
		if s == candidate {
			return true
		}
	}
	return false
}

// TransportType is the carrier option requested by the customer.
type TransportType string

const (
	TransportOpen     TransportType = "open"
	TransportEnclosed TransportType = "enclosed"
)

// Quote is a customer's transport request tracked through its status lifecycle.
// Date columns are carried as YYYY-MM-DD strings.
type Quote struct {
	ID                    string
	UserID                *string
	Name                  string
	Email                 string
	Phone                 *string
	Pickup                string
	Delivery              string
	Make                  string
	Model                 string
	TransportType         TransportType
	PickupDate            *string
	EstimatedDeliveryDate *string
	QuoteAmount           *decimal.Decimal
	AdminNotes            *string
	Status                QuoteStatus
	DistanceMiles         *float64
	DurationSeconds       *int32
	CreatedAt             time.Time
	UpdatedAt             time.Time
	EmailSentAt           *time.Time
}

// QuoteEmail is the payload handed to the notification port when a quote is sent.
type QuoteEmail struct {
	To            string          `json:"to"`
	CustomerName  string          `json:"customer_name"`
	QuoteAmount   decimal.Decimal `json:"quote_amount"`
	Pickup        string          `json:"pickup"`
	Delivery      string          `json:"delivery"`
	TransportType TransportType   `json:"transport_type"`
	Message       *string         `json:"message,omitempty"`
}
