package validation

import (
	"strings"

	"github.com/shopspring/decimal"

	"github.com/apexautomovers/quote-service/internal/domain"
	apperrors "github.com/apexautomovers/quote-service/pkg/util/errorutil"
)

// QuoteInput is a customer's quote request.
type QuoteInput struct {
	Name          string               `json:"name"`
	Email         string               `json:"email"`
	Phone         *string              `json:"phone"`
	Pickup        string               `json:"pickup"`
	Delivery      string               `json:"delivery"`
	Make          string               `json:"make"`
	Model         string               `json:"model"`
	TransportType domain.TransportType `json:"transport_type" validate:"oneof=open enclosed"`
	PickupDate    *string              `json:"pickup_date"`
}

// QuoteUpdate is an admin patch. Only keys present in the body are Set.
type QuoteUpdate struct {
	Status                domain.Optional[domain.QuoteStatus]
	QuoteAmount           domain.Optional[decimal.Decimal]
	AdminNotes            domain.Optional[string]
	PickupDate            domain.Optional[string]
	EstimatedDeliveryDate domain.Optional[string]
}

// QuoteSendInput is the price and optional note sent to the customer.
type QuoteSendInput struct {
	QuoteAmount decimal.Decimal
	Message     *string
}

var updatableFields = map[string]struct{}{
	"status":                  {},
	"quote_amount":            {},
	"admin_notes":             {},
	"pickup_date":             {},
	"estimated_delivery_date": {},
}

// ParseQuote validates a public quote submission.
func ParseQuote(body []byte) (QuoteInput, error) {
	invalid := apperrors.NewInvalidPayload("Invalid quote payload")
	obj, ok := decodeObject(body)
	if !ok {
		return QuoteInput{}, invalid
	}

	var in QuoteInput
	required := map[string]*string{
		"name":     &in.Name,
		"email":    &in.Email,
		"pickup":   &in.Pickup,
		"delivery": &in.Delivery,
		"make":     &in.Make,
		"model":    &in.Model,
	}
	for key, dst := range required {
		value, ok := obj.str(key)
		if !ok {
			return QuoteInput{}, invalid
		}
		*dst = value
	}

	transport, ok := obj.str("transport_type")
	if !ok {
		return QuoteInput{}, invalid
	}
	in.TransportType = domain.TransportType(transport)

	phone, ok := obj.nullableStr("phone")
	if !ok {
		return QuoteInput{}, invalid
	}
	in.Phone = phone.Value

	pickupDate, ok := obj.nullableStr("pickup_date")
	if !ok {
		return QuoteInput{}, invalid
	}
	in.PickupDate = pickupDate.Value

	if err := validate.Struct(in); err != nil {
		return QuoteInput{}, invalid
	}
	return in, nil
}

// ParseStatusChange extracts the status string. Membership is checked by the service.
func ParseStatusChange(body []byte) (domain.QuoteStatus, error) {
	obj, ok := decodeObject(body)
	if !ok {
		return "", apperrors.NewInvalidStatus()
	}
	status, ok := obj.str("status")
	if !ok {
		return "", apperrors.NewInvalidStatus()
	}
	return domain.QuoteStatus(status), nil
}

// ParseQuoteUpdate checks the patch shape and the type of each supplied field.
func ParseQuoteUpdate(body []byte) (QuoteUpdate, error) {
	obj, ok := decodeObject(body)
	if !ok {
		return QuoteUpdate{}, apperrors.NewInvalidPayload("Invalid payload")
	}
	if len(obj) == 0 {
		return QuoteUpdate{}, apperrors.NewNoChanges()
	}
	for key := range obj {
		if _, ok := updatableFields[key]; !ok {
			return QuoteUpdate{}, apperrors.NewInvalidPayload("Invalid payload")
		}
	}

	var update QuoteUpdate
	if obj.has("status") {
		status, ok := obj.str("status")
		if !ok {
			return QuoteUpdate{}, apperrors.NewInvalidStatus()
		}
		update.Status = domain.Some(domain.QuoteStatus(status))
	}
	if raw, present := obj["quote_amount"]; present {
		if isNull(raw) {
			update.QuoteAmount = domain.Null[decimal.Decimal]()
		} else {
			amount, ok := coerceAmount(raw)
			if !ok {
				return QuoteUpdate{}, apperrors.NewInvalidAmount("Invalid quote amount")
			}
			update.QuoteAmount = domain.Some(amount)
		}
	}

	var fieldOK bool
	if update.AdminNotes, fieldOK = obj.nullableStr("admin_notes"); !fieldOK {
		return QuoteUpdate{}, apperrors.NewInvalidField("admin_notes", "Invalid admin notes")
	}
	if update.PickupDate, fieldOK = obj.nullableStr("pickup_date"); !fieldOK {
		return QuoteUpdate{}, apperrors.NewInvalidField("pickup_date", "Invalid pickup date")
	}
	if update.EstimatedDeliveryDate, fieldOK = obj.nullableStr("estimated_delivery_date"); !fieldOK {
		return QuoteUpdate{}, apperrors.NewInvalidField("estimated_delivery_date", "Invalid estimated delivery date")
	}
	return update, nil
}

// ParseQuoteSend coerces the amount and trims the optional message. The positive
// amount rule is enforced by the service.
func ParseQuoteSend(body []byte) (QuoteSendInput, error) {
	invalidAmount := apperrors.NewInvalidAmount("Quote amount must be greater than zero")
	obj, ok := decodeObject(body)
	if !ok {
		return QuoteSendInput{}, invalidAmount
	}
	raw, present := obj["quote_amount"]
	if !present {
		return QuoteSendInput{}, invalidAmount
	}
	amount, ok := coerceAmount(raw)
	if !ok {
		return QuoteSendInput{}, invalidAmount
	}

	in := QuoteSendInput{QuoteAmount: amount}
	if obj.has("message") {
		message, ok := obj.str("message")
		if !ok {
			return QuoteSendInput{}, apperrors.NewInvalidField("message", "Invalid message")
		}
		trimmed := strings.TrimSpace(message)
		in.Message = &trimmed
	}
	return in, nil
}
