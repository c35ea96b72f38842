package validation

import (
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/apexautomovers/quote-service/internal/domain"
	apperrors "github.com/apexautomovers/quote-service/pkg/util/errorutil"
)

const joLeeQuote = `{"name":"Jo Lee","email":"jo@example.com","pickup":"Austin, TX","delivery":"Miami, FL","make":"Toyota","model":"Camry","transport_type":"open"}`

func requireCode(t *testing.T, err error, code string) {
	t.Helper()
	require.Error(t, err)
	require.Equal(t, code, apperrors.CodeOf(err))
	require.Equal(t, apperrors.KindValidation, apperrors.KindOf(err))
}

func TestParseQuote(t *testing.T) {
	in, err := ParseQuote([]byte(joLeeQuote))
	require.NoError(t, err)
	assert.Equal(t, "Jo Lee", in.Name)
	assert.Equal(t, domain.TransportOpen, in.TransportType)
	assert.Nil(t, in.Phone)
	assert.Nil(t, in.PickupDate)

	in, err = ParseQuote([]byte(`{"name":"A","email":"a@b.co","pickup":"X","delivery":"Y","make":"M","model":"N","transport_type":"enclosed","phone":"555","pickup_date":"2025-03-01"}`))
	require.NoError(t, err)
	assert.Equal(t, "555", *in.Phone)
	assert.Equal(t, "2025-03-01", *in.PickupDate)

	invalid := []string{
		``,
		`[]`,
		`not json`,
		`{"name":"A"}`,
		`{"name":"A","email":"a@b.co","pickup":"X","delivery":"Y","make":"M","model":"N","transport_type":"flatbed"}`,
		`{"name":1,"email":"a@b.co","pickup":"X","delivery":"Y","make":"M","model":"N","transport_type":"open"}`,
		`{"name":"A","email":"a@b.co","pickup":"X","delivery":"Y","make":"M","model":"N","transport_type":"open","phone":5}`,
	}
	for _, body := range invalid {
		_, err := ParseQuote([]byte(body))
		requireCode(t, err, apperrors.CodeInvalidPayload)
		assert.Equal(t, "Invalid quote payload", apperrors.ToDomainError(err).Message, body)
	}
}

func TestParseSignupIsPermissive(t *testing.T) {
	in, err := ParseSignup([]byte(`{"email":"","password":"x","name":""}`))
	require.NoError(t, err)
	assert.Equal(t, "x", in.Password)

	_, err = ParseSignup([]byte(`{"email":"a@b.co","password":123,"name":"Ann"}`))
	requireCode(t, err, apperrors.CodeInvalidPayload)
	assert.Equal(t, "Email, password, and name are required", apperrors.ToDomainError(err).Message)
}

func TestParseLoginAndNewsletter(t *testing.T) {
	_, err := ParseLogin([]byte(`{"email":"a@b.co","password":"secret1"}`))
	require.NoError(t, err)
	_, err = ParseLogin([]byte(`{"email":"a@b.co","password":""}`))
	requireCode(t, err, apperrors.CodeInvalidPayload)

	in, err := ParseNewsletter([]byte(`{"email":"n@x.io"}`))
	require.NoError(t, err)
	assert.Equal(t, "n@x.io", in.Email)
	for _, body := range []string{`{}`, `{"email":""}`, `{"email":"   "}`, `{"email":7}`, `nope`} {
		_, err := ParseNewsletter([]byte(body))
		requireCode(t, err, apperrors.CodeInvalidPayload)
		assert.Equal(t, "Email is required", apperrors.ToDomainError(err).Message)
	}
}

func TestIsValidStatus(t *testing.T) {
	for _, s := range []string{"new", "contacted", "booked", "completed"} {
		assert.True(t, IsValidStatus(s), s)
	}
	for _, s := range []string{"", "quoted", "in_transit", "cancelled", "NEW"} {
		assert.False(t, IsValidStatus(s), s)
	}
}

func TestParseStatusChange(t *testing.T) {
	status, err := ParseStatusChange([]byte(`{"status":"booked"}`))
	require.NoError(t, err)
	assert.Equal(t, domain.QuoteStatusBooked, status)

	status, err = ParseStatusChange([]byte(`{"status":"archived"}`))
	require.NoError(t, err, "membership is a service concern")
	assert.Equal(t, domain.QuoteStatus("archived"), status)

	for _, body := range []string{`{}`, `{"status":1}`, `{"status":null}`, ``} {
		_, err := ParseStatusChange([]byte(body))
		requireCode(t, err, apperrors.CodeInvalidStatus)
	}
}

func TestParseQuoteUpdate(t *testing.T) {
	_, err := ParseQuoteUpdate([]byte(`{}`))
	requireCode(t, err, apperrors.CodeNoChanges)
	assert.Equal(t, "No changes provided", apperrors.ToDomainError(err).Message)

	_, err = ParseQuoteUpdate([]byte(`{"status":"booked","color":"red"}`))
	requireCode(t, err, apperrors.CodeInvalidPayload)
	assert.Equal(t, "Invalid payload", apperrors.ToDomainError(err).Message)

	update, err := ParseQuoteUpdate([]byte(`{"quote_amount":null,"admin_notes":"call after 5","pickup_date":null}`))
	require.NoError(t, err)
	assert.True(t, update.QuoteAmount.Set)
	assert.Nil(t, update.QuoteAmount.Value)
	assert.Equal(t, "call after 5", *update.AdminNotes.Value)
	assert.True(t, update.PickupDate.Set)
	assert.Nil(t, update.PickupDate.Value)
	assert.False(t, update.EstimatedDeliveryDate.Set)
	assert.False(t, update.Status.Set)

	update, err = ParseQuoteUpdate([]byte(`{"quote_amount":"1200.50"}`))
	require.NoError(t, err)
	assert.True(t, decimal.RequireFromString("1200.5").Equal(*update.QuoteAmount.Value))

	update, err = ParseQuoteUpdate([]byte(`{"quote_amount":-5}`))
	require.NoError(t, err, "sign is checked by the service")
	assert.True(t, update.QuoteAmount.Value.IsNegative())

	update, err = ParseQuoteUpdate([]byte(`{"quote_amount":"  "}`))
	require.NoError(t, err, "a blank amount reads as zero")
	assert.True(t, update.QuoteAmount.Value.IsZero())

	update, err = ParseQuoteUpdate([]byte(`{"quote_amount":9999999999.99}`))
	require.NoError(t, err)
	assert.Equal(t, "9999999999.99", update.QuoteAmount.Value.StringFixed(2))

	for _, body := range []string{
		`{"quote_amount":"abc"}`,
		`{"quote_amount":true}`,
		`{"quote_amount":[1]}`,
		`{"quote_amount":1e400}`,
		`{"quote_amount":"1e400"}`,
		`{"quote_amount":10000000000}`,
		`{"quote_amount":9999999999.999}`,
		`{"quote_amount":-1e12}`,
	} {
		_, err := ParseQuoteUpdate([]byte(body))
		requireCode(t, err, apperrors.CodeInvalidAmount)
	}

	_, err = ParseQuoteUpdate([]byte(`{"status":5}`))
	requireCode(t, err, apperrors.CodeInvalidStatus)

	cases := map[string]string{
		`{"admin_notes":5}`:              "Invalid admin notes",
		`{"pickup_date":false}`:          "Invalid pickup date",
		`{"estimated_delivery_date":{}}`: "Invalid estimated delivery date",
	}
	for body, message := range cases {
		_, err := ParseQuoteUpdate([]byte(body))
		requireCode(t, err, apperrors.CodeInvalidField)
		assert.Equal(t, message, apperrors.ToDomainError(err).Message)
	}
}

func TestParseQuoteSend(t *testing.T) {
	in, err := ParseQuoteSend([]byte(`{"quote_amount":899.50,"message":"  Thanks!  "}`))
	require.NoError(t, err)
	assert.True(t, decimal.RequireFromString("899.5").Equal(in.QuoteAmount))
	assert.Equal(t, "Thanks!", *in.Message)

	in, err = ParseQuoteSend([]byte(`{"quote_amount":"250"}`))
	require.NoError(t, err)
	assert.Nil(t, in.Message)

	in, err = ParseQuoteSend([]byte(`{"quote_amount":899.555}`))
	require.NoError(t, err)
	assert.Equal(t, "899.56", in.QuoteAmount.StringFixed(2), "amounts are rounded to cents before anything is sent")

	for _, body := range []string{`{}`, `{"quote_amount":null}`, `{"quote_amount":"free"}`, `garbage`, `{"quote_amount":1e400}`, `{"quote_amount":25000000000}`} {
		_, err := ParseQuoteSend([]byte(body))
		requireCode(t, err, apperrors.CodeInvalidAmount)
		assert.Equal(t, "Quote amount must be greater than zero", apperrors.ToDomainError(err).Message)
	}

	_, err = ParseQuoteSend([]byte(`{"quote_amount":100,"message":null}`))
	requireCode(t, err, apperrors.CodeInvalidField)
	assert.Equal(t, "Invalid message", apperrors.ToDomainError(err).Message)
}
