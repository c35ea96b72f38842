package dto

import (
	"time"

	"github.com/apexautomovers/quote-service/internal/domain"
)

// QuoteResponse is the wire shape of a quote.
type QuoteResponse struct {
	ID                    string               `json:"id"`
	UserID                *string              `json:"user_id"`
	Name                  string               `json:"name"`
	Email                 string               `json:"email"`
	Phone                 *string              `json:"phone"`
	Pickup                string               `json:"pickup"`
	Delivery              string               `json:"delivery"`
	Make                  string               `json:"make"`
	Model                 string               `json:"model"`
	TransportType         domain.TransportType `json:"transport_type"`
	PickupDate            *string              `json:"pickup_date"`
	EstimatedDeliveryDate *string              `json:"estimated_delivery_date"`
	QuoteAmount           *float64             `json:"quote_amount"`
	AdminNotes            *string              `json:"admin_notes"`
	Status                domain.QuoteStatus   `json:"status"`
	DistanceMiles         *float64             `json:"distance_miles"`
	DurationSeconds       *int32               `json:"duration_seconds"`
	CreatedAt             time.Time            `json:"created_at"`
	UpdatedAt             time.Time            `json:"updated_at"`
	EmailSentAt           *time.Time           `json:"email_sent_at"`
}

// NewQuoteResponse maps a domain quote to its wire shape.
func NewQuoteResponse(q *domain.Quote) QuoteResponse {
	resp := QuoteResponse{
		ID:                    q.ID,
		UserID:                q.UserID,
		Name:                  q.Name,
		Email:                 q.Email,
		Phone:                 q.Phone,
		Pickup:                q.Pickup,
		Delivery:              q.Delivery,
		Make:                  q.Make,
		Model:                 q.Model,
		TransportType:         q.TransportType,
		PickupDate:            q.PickupDate,
		EstimatedDeliveryDate: q.EstimatedDeliveryDate,
		AdminNotes:            q.AdminNotes,
		Status:                q.Status,
		DistanceMiles:         q.DistanceMiles,
		DurationSeconds:       q.DurationSeconds,
		CreatedAt:             q.CreatedAt,
		UpdatedAt:             q.UpdatedAt,
		EmailSentAt:           q.EmailSentAt,
	}
	if q.QuoteAmount != nil {
		amount := q.QuoteAmount.InexactFloat64()
		resp.QuoteAmount = &amount
	}
	return resp
}

// NewQuoteResponses maps a list, never returning nil.
func NewQuoteResponses(quotes []domain.Quote) []QuoteResponse {
	out := make([]QuoteResponse, 0, len(quotes))
	for i := range quotes {
		out = append(out, NewQuoteResponse(&quotes[i]))
	}
	return out
}
