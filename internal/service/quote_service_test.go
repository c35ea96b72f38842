package service

import (
	"context"
	"errors"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/apexautomovers/quote-service/internal/domain"
	"github.com/apexautomovers/quote-service/internal/events"
	"github.com/apexautomovers/quote-service/internal/validation"
	apperrors "github.com/apexautomovers/quote-service/pkg/util/errorutil"
)

func joLee() validation.QuoteInput {
	return validation.QuoteInput{
		Name:          "Jo Lee",
		Email:         "jo@example.com",
		Pickup:        "Austin, TX",
		Delivery:      "Miami, FL",
		Make:          "Toyota",
		Model:         "Camry",
		TransportType: domain.TransportOpen,
	}
}

func submitGuest(t *testing.T, f *quoteFixture) *domain.Quote {
	t.Helper()
	quote, err := f.svc.SubmitQuote(context.Background(), "", joLee())
	require.NoError(t, err)
	return quote
}

func TestSubmitQuoteAsGuest(t *testing.T) {
	f := newQuoteFixture()

	quote := submitGuest(t, f)

	assert.NotEmpty(t, quote.ID)
	assert.Equal(t, domain.QuoteStatusNew, quote.Status)
	assert.Nil(t, quote.UserID)
	assert.Nil(t, quote.QuoteAmount)
	assert.Nil(t, quote.EmailSentAt)
	assert.Nil(t, quote.AdminNotes)
	assert.Equal(t, quote.CreatedAt, quote.UpdatedAt)
	assert.Equal(t, "jo@example.com", quote.Email)
	assert.Equal(t, []events.EventType{events.EventQuoteSubmitted}, f.events.types)
}

func TestSubmitQuoteLinksAuthenticatedCaller(t *testing.T) {
	f := newQuoteFixture()

	quote, err := f.svc.SubmitQuote(context.Background(), userToken, joLee())
	require.NoError(t, err)
	require.NotNil(t, quote.UserID)
	assert.Equal(t, userID, *quote.UserID)
	assert.Equal(t, "ann@example.com", quote.Email)

	guest, err := f.svc.SubmitQuote(context.Background(), "expired-token", joLee())
	require.NoError(t, err)
	assert.Nil(t, guest.UserID)
	assert.Equal(t, "jo@example.com", guest.Email)
}

func TestListMineAndAll(t *testing.T) {
	f := newQuoteFixture()
	ctx := context.Background()
	submitGuest(t, f)
	mine, err := f.svc.SubmitQuote(ctx, userToken, joLee())
	require.NoError(t, err)

	list, err := f.svc.ListMine(ctx, userToken)
	require.NoError(t, err)
	require.Len(t, list, 1)
	assert.Equal(t, mine.ID, list[0].ID)

	_, err = f.svc.ListMine(ctx, "")
	assert.Equal(t, apperrors.KindAuthentication, apperrors.KindOf(err))

	all, err := f.svc.ListAll(ctx, adminToken)
	require.NoError(t, err)
	assert.Len(t, all, 2)
}

func TestAdminOperationsRequireAdmin(t *testing.T) {
	f := newQuoteFixture()
	ctx := context.Background()
	quote := submitGuest(t, f)
	patch := validation.QuoteUpdate{AdminNotes: domain.Some("note")}
	send := validation.QuoteSendInput{QuoteAmount: decimal.NewFromInt(100)}

	ops := map[string]func(token string) error{
		"listAll": func(token string) error {
			_, err := f.svc.ListAll(ctx, token)
			return err
		},
		"setStatus": func(token string) error {
			_, err := f.svc.SetStatus(ctx, token, quote.ID, domain.QuoteStatusBooked)
			return err
		},
		"updateDetails": func(token string) error {
			_, err := f.svc.UpdateDetails(ctx, token, quote.ID, patch)
			return err
		},
		"sendQuote": func(token string) error {
			_, err := f.svc.SendQuote(ctx, token, quote.ID, send)
			return err
		},
	}
	for name, op := range ops {
		assert.Equal(t, apperrors.KindAuthorization, apperrors.KindOf(op(userToken)), name)
		assert.Equal(t, apperrors.KindAuthentication, apperrors.KindOf(op("")), name)
	}
	assert.Equal(t, 0, f.repo.Updates)
	assert.Empty(t, f.notifier.sent)
}

func TestSetStatus(t *testing.T) {
	f := newQuoteFixture()
	ctx := context.Background()
	quote := submitGuest(t, f)

	updated, err := f.svc.SetStatus(ctx, adminToken, quote.ID, domain.QuoteStatusCompleted)
	require.NoError(t, err)
	assert.Equal(t, domain.QuoteStatusCompleted, updated.Status)

	updated, err = f.svc.SetStatus(ctx, adminToken, quote.ID, domain.QuoteStatusNew)
	require.NoError(t, err, "any status may follow any other")
	assert.Equal(t, domain.QuoteStatusNew, updated.Status)

	_, err = f.svc.SetStatus(ctx, adminToken, "00000000-0000-0000-0000-000000000000", domain.QuoteStatusBooked)
	assert.Equal(t, apperrors.CodeNotFound, apperrors.CodeOf(err))
	assert.Equal(t, "Quote not found", apperrors.ToDomainError(err).Message)
}

func TestSetStatusRejectsUnknownStatusWithoutWriting(t *testing.T) {
	f := newQuoteFixture()
	ctx := context.Background()
	quote := submitGuest(t, f)

	for _, status := range []domain.QuoteStatus{"quoted", "in_transit", "cancelled", ""} {
		for _, token := range []string{adminToken, userToken, ""} {
			_, err := f.svc.SetStatus(ctx, token, quote.ID, status)
			assert.Equal(t, apperrors.CodeInvalidStatus, apperrors.CodeOf(err))
		}
	}
	assert.Equal(t, 0, f.repo.Updates)
}

func TestUpdateDetailsPolicy(t *testing.T) {
	f := newQuoteFixture()
	ctx := context.Background()
	quote := submitGuest(t, f)

	for _, token := range []string{adminToken, userToken, ""} {
		_, err := f.svc.UpdateDetails(ctx, token, quote.ID, validation.QuoteUpdate{})
		assert.Equal(t, apperrors.CodeNoChanges, apperrors.CodeOf(err))
		assert.Equal(t, apperrors.KindValidation, apperrors.KindOf(err))

		_, err = f.svc.UpdateDetails(ctx, token, quote.ID, validation.QuoteUpdate{QuoteAmount: domain.Some(decimal.NewFromInt(-5))})
		assert.Equal(t, apperrors.CodeInvalidAmount, apperrors.CodeOf(err))

		_, err = f.svc.UpdateDetails(ctx, token, quote.ID, validation.QuoteUpdate{Status: domain.Some(domain.QuoteStatus("quoted"))})
		assert.Equal(t, apperrors.CodeInvalidStatus, apperrors.CodeOf(err))
	}
	assert.Equal(t, 0, f.repo.Updates)

	updated, err := f.svc.UpdateDetails(ctx, adminToken, quote.ID, validation.QuoteUpdate{
		QuoteAmount:           domain.Some(decimal.RequireFromString("1200.00")),
		AdminNotes:            domain.Some("needs liftgate"),
		EstimatedDeliveryDate: domain.Some("2025-03-09"),
		Status:                domain.Some(domain.QuoteStatusBooked),
	})
	require.NoError(t, err)
	assert.True(t, decimal.NewFromInt(1200).Equal(*updated.QuoteAmount))
	assert.Equal(t, "needs liftgate", *updated.AdminNotes)
	assert.Equal(t, "2025-03-09", *updated.EstimatedDeliveryDate)
	assert.Equal(t, domain.QuoteStatusBooked, updated.Status)
	assert.Nil(t, updated.EmailSentAt)
	assert.False(t, updated.UpdatedAt.Before(updated.CreatedAt))

	cleared, err := f.svc.UpdateDetails(ctx, adminToken, quote.ID, validation.QuoteUpdate{
		QuoteAmount: domain.Null[decimal.Decimal](),
		AdminNotes:  domain.Null[string](),
	})
	require.NoError(t, err)
	assert.Nil(t, cleared.QuoteAmount)
	assert.Nil(t, cleared.AdminNotes)

	zero, err := f.svc.UpdateDetails(ctx, adminToken, quote.ID, validation.QuoteUpdate{QuoteAmount: domain.Some(decimal.Zero)})
	require.NoError(t, err)
	assert.True(t, zero.QuoteAmount.IsZero())

	_, err = f.svc.UpdateDetails(ctx, adminToken, "missing", validation.QuoteUpdate{AdminNotes: domain.Some("x")})
	assert.Equal(t, apperrors.CodeNotFound, apperrors.CodeOf(err))
}

func TestSendQuoteScenario(t *testing.T) {
	f := newQuoteFixture()
	ctx := context.Background()
	quote := submitGuest(t, f)
	amount := decimal.RequireFromString("899.50")

	sent, err := f.svc.SendQuote(ctx, adminToken, quote.ID, validation.QuoteSendInput{QuoteAmount: amount})
	require.NoError(t, err)

	require.Len(t, f.notifier.sent, 1)
	email := f.notifier.sent[0]
	assert.Equal(t, "jo@example.com", email.To)
	assert.Equal(t, "Jo Lee", email.CustomerName)
	assert.Equal(t, "Austin, TX", email.Pickup)
	assert.Equal(t, "Miami, FL", email.Delivery)
	assert.Equal(t, domain.TransportOpen, email.TransportType)
	assert.Nil(t, email.Message)

	assert.True(t, amount.Equal(*sent.QuoteAmount))
	assert.Equal(t, domain.QuoteStatusContacted, sent.Status)
	require.NotNil(t, sent.EmailSentAt)
	assert.Nil(t, sent.AdminNotes)
	assert.Contains(t, f.events.types, events.EventQuoteSent)
}

func TestSendQuoteMessageBecomesAdminNotes(t *testing.T) {
	f := newQuoteFixture()
	ctx := context.Background()
	quote := submitGuest(t, f)
	notes := "keep me"
	_, err := f.svc.UpdateDetails(ctx, adminToken, quote.ID, validation.QuoteUpdate{AdminNotes: domain.Some(notes)})
	require.NoError(t, err)

	empty := ""
	sent, err := f.svc.SendQuote(ctx, adminToken, quote.ID, validation.QuoteSendInput{QuoteAmount: decimal.NewFromInt(500), Message: &empty})
	require.NoError(t, err)
	assert.Equal(t, notes, *sent.AdminNotes)
	firstSentAt := *sent.EmailSentAt

	message := "Price includes insurance"
	sent, err = f.svc.SendQuote(ctx, adminToken, quote.ID, validation.QuoteSendInput{QuoteAmount: decimal.NewFromInt(450), Message: &message})
	require.NoError(t, err)
	assert.Equal(t, message, *sent.AdminNotes)
	assert.Equal(t, message, *f.notifier.sent[1].Message)
	assert.False(t, sent.EmailSentAt.Before(firstSentAt))
}

func TestSendQuoteRejectsNonPositiveAmount(t *testing.T) {
	f := newQuoteFixture()
	quote := submitGuest(t, f)

	for _, amount := range []decimal.Decimal{decimal.Zero, decimal.NewFromInt(-1)} {
		_, err := f.svc.SendQuote(context.Background(), adminToken, quote.ID, validation.QuoteSendInput{QuoteAmount: amount})
		assert.Equal(t, apperrors.CodeInvalidAmount, apperrors.CodeOf(err))
	}
	assert.Empty(t, f.notifier.sent)
	assert.Equal(t, 0, f.repo.Updates)
}

func TestSendQuoteNotificationFailureLeavesQuoteUnchanged(t *testing.T) {
	f := newQuoteFixture()
	ctx := context.Background()
	quote := submitGuest(t, f)
	before, err := f.repo.FindByID(ctx, quote.ID)
	require.NoError(t, err)

	f.notifier.fail = errors.New("smtp unavailable")
	_, err = f.svc.SendQuote(ctx, adminToken, quote.ID, validation.QuoteSendInput{QuoteAmount: decimal.NewFromInt(899)})
	assert.Equal(t, apperrors.CodeNotificationFailed, apperrors.CodeOf(err))
	assert.Equal(t, 500, apperrors.ToDomainError(err).HTTPStatus)

	after, err := f.repo.FindByID(ctx, quote.ID)
	require.NoError(t, err)
	assert.Equal(t, before, after)
	assert.Nil(t, after.EmailSentAt)
	assert.Equal(t, 0, f.repo.Updates)
	assert.NotContains(t, f.events.types, events.EventQuoteSent)
}

func TestSendQuoteUnknownID(t *testing.T) {
	f := newQuoteFixture()
	_, err := f.svc.SendQuote(context.Background(), adminToken, "nope", validation.QuoteSendInput{QuoteAmount: decimal.NewFromInt(10)})
	assert.Equal(t, apperrors.CodeNotFound, apperrors.CodeOf(err))
	assert.Empty(t, f.notifier.sent)
}
