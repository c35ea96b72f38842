package service

import (
	"context"

	"go.uber.org/zap"

	"github.com/apexautomovers/quote-service/internal/auth"
	"github.com/apexautomovers/quote-service/internal/domain"
	"github.com/apexautomovers/quote-service/internal/events"
	"github.com/apexautomovers/quote-service/internal/repository"
	"github.com/apexautomovers/quote-service/internal/validation"
	apperrors "github.com/apexautomovers/quote-service/pkg/util/errorutil"
)

const msgQuoteNotFound = "Quote not found"

// QuoteService owns quote submission, listing and every admin mutation.
type QuoteService struct {
	quotes     repository.QuoteRepository
	gate       *auth.Gate
	notifier   QuoteNotifier
	dispatcher events.Dispatcher
	logger     *zap.Logger
}

// QuoteDependencies bundles the collaborators of QuoteService.
type QuoteDependencies struct {
	QuoteRepo  repository.QuoteRepository
	Gate       *auth.Gate
	Notifier   QuoteNotifier
	Dispatcher events.Dispatcher
	Logger     *zap.Logger
}

// NewQuoteService constructs the service.
func NewQuoteService(deps QuoteDependencies) *QuoteService {
	return &QuoteService{
		quotes:     deps.QuoteRepo,
		gate:       deps.Gate,
		notifier:   deps.Notifier,
		dispatcher: deps.Dispatcher,
		logger:     deps.Logger,
	}
}

// SubmitQuote stores a new quote request. A token that resolves to a user links the
// quote to that account; anything else is a guest submission.
func (s *QuoteService) SubmitQuote(ctx context.Context, token string, in validation.QuoteInput) (*domain.Quote, error) {
	quote := &domain.Quote{
		Name:          in.Name,
		Email:         in.Email,
		Phone:         in.Phone,
		Pickup:        in.Pickup,
		Delivery:      in.Delivery,
		Make:          in.Make,
		Model:         in.Model,
		TransportType: in.TransportType,
		PickupDate:    in.PickupDate,
		Status:        domain.QuoteStatusNew,
	}

	if token != "" {
		if user, err := s.gate.ResolveUser(ctx, token); err == nil {
			userID := user.ID
			quote.UserID = &userID
			if user.Email != "" {
				quote.Email = user.Email
			}
		}
	}

	created, err := s.quotes.Insert(ctx, quote)
	if err != nil {
		return nil, apperrors.NewStorageError(err)
	}

	s.publish(ctx, events.NewEvent(events.EventQuoteSubmitted, created.ID,
		events.Actor{UserID: created.UserID},
		events.QuoteSubmittedPayload{TransportType: created.TransportType, Guest: created.UserID == nil}))
	return created, nil
}

// ListMine returns the caller's own quotes, newest first.
func (s *QuoteService) ListMine(ctx context.Context, token string) ([]domain.Quote, error) {
	user, err := s.gate.ResolveUser(ctx, token)
	if err != nil {
		return nil, err
	}
	quotes, err := s.quotes.ListByUser(ctx, user.ID)
	if err != nil {
		return nil, apperrors.NewStorageError(err)
	}
	return quotes, nil
}

// ListAll returns every quote, newest first. Admin only.
func (s *QuoteService) ListAll(ctx context.Context, token string) ([]domain.Quote, error) {
	if _, err := s.gate.ResolveAdmin(ctx, token); err != nil {
		return nil, err
	}
	quotes, err := s.quotes.ListAll(ctx)
	if err != nil {
		return nil, apperrors.NewStorageError(err)
	}
	return quotes, nil
}

// SetStatus moves a quote to any status of the vocabulary. Admin only.
func (s *QuoteService) SetStatus(ctx context.Context, token, id string, status domain.QuoteStatus) (*domain.Quote, error) {
	if !status.Valid() {
		return nil, apperrors.NewInvalidStatus()
	}
	admin, err := s.gate.ResolveAdmin(ctx, token)
	if err != nil {
		return nil, err
	}

	updated, err := s.update(ctx, id, repository.QuoteChanges{Status: &status})
	if err != nil {
		return nil, err
	}

	s.publish(ctx, events.NewEvent(events.EventQuoteStatusChanged, updated.ID,
		adminActor(admin), events.QuoteStatusChangedPayload{NewStatus: status}))
	return updated, nil
}

// UpdateDetails applies an admin patch. Admin only.
func (s *QuoteService) UpdateDetails(ctx context.Context, token, id string, patch validation.QuoteUpdate) (*domain.Quote, error) {
	changes, fields, err := changesFromPatch(patch)
	if err != nil {
		return nil, err
	}
	admin, err := s.gate.ResolveAdmin(ctx, token)
	if err != nil {
		return nil, err
	}

	updated, err := s.update(ctx, id, changes)
	if err != nil {
		return nil, err
	}

	s.publish(ctx, events.NewEvent(events.EventQuoteUpdated, updated.ID,
		adminActor(admin), events.QuoteUpdatedPayload{Fields: fields}))
	return updated, nil
}

// SendQuote emails the price to the customer and then records it. The quote is left
// untouched when the email cannot be delivered. Admin only.
func (s *QuoteService) SendQuote(ctx context.Context, token, id string, in validation.QuoteSendInput) (*domain.Quote, error) {
	if !in.QuoteAmount.IsPositive() {
		return nil, apperrors.NewInvalidAmount("Quote amount must be greater than zero")
	}
	admin, err := s.gate.ResolveAdmin(ctx, token)
	if err != nil {
		return nil, err
	}

	quote, err := s.quotes.FindByID(ctx, id)
	if err != nil {
		return nil, apperrors.NewStorageError(err)
	}
	if quote == nil {
		return nil, apperrors.NewNotFound(msgQuoteNotFound)
	}

	var message *string
	if in.Message != nil && *in.Message != "" {
		message = in.Message
	}

	email := domain.QuoteEmail{
		To:            quote.Email,
		CustomerName:  quote.Name,
		QuoteAmount:   in.QuoteAmount,
		Pickup:        quote.Pickup,
		Delivery:      quote.Delivery,
		TransportType: quote.TransportType,
		Message:       message,
	}
	if err := s.notifier.SendQuoteEmail(ctx, email); err != nil {
		s.logger.Error("quote email failed", zap.String("quote_id", quote.ID), zap.Error(err))
		return nil, apperrors.NewNotificationFailed(err)
	}

	contacted := domain.QuoteStatusContacted
	changes := repository.QuoteChanges{
		Status:        &contacted,
		QuoteAmount:   domain.Some(in.QuoteAmount),
		MarkEmailSent: true,
	}
	if message != nil {
		changes.AdminNotes = domain.Some(*message)
	}

	updated, err := s.update(ctx, quote.ID, changes)
	if err != nil {
		return nil, err
	}

	s.publish(ctx, events.NewEvent(events.EventQuoteSent, updated.ID,
		adminActor(admin), events.QuoteSentPayload{QuoteAmount: in.QuoteAmount, Recipient: quote.Email}))
	return updated, nil
}

func (s *QuoteService) update(ctx context.Context, id string, changes repository.QuoteChanges) (*domain.Quote, error) {
	updated, err := s.quotes.Update(ctx, id, changes)
	if err != nil {
		return nil, apperrors.NewStorageError(err)
	}
	if updated == nil {
		return nil, apperrors.NewNotFound(msgQuoteNotFound)
	}
	return updated, nil
}

func (s *QuoteService) publish(ctx context.Context, event events.Event) {
	if s.dispatcher != nil {
		s.dispatcher.Publish(ctx, event)
	}
}

func changesFromPatch(patch validation.QuoteUpdate) (repository.QuoteChanges, []string, error) {
	var (
		changes repository.QuoteChanges
		fields  []string
	)
	if patch.Status.Set {
		if patch.Status.Value == nil || !patch.Status.Value.Valid() {
			return changes, nil, apperrors.NewInvalidStatus()
		}
		changes.Status = patch.Status.Value
		fields = append(fields, "status")
	}
	if patch.QuoteAmount.Set {
		if patch.QuoteAmount.Value != nil && patch.QuoteAmount.Value.IsNegative() {
			return changes, nil, apperrors.NewInvalidAmount("Invalid quote amount")
		}
		changes.QuoteAmount = patch.QuoteAmount
		fields = append(fields, "quote_amount")
	}
	if patch.AdminNotes.Set {
		changes.AdminNotes = patch.AdminNotes
		fields = append(fields, "admin_notes")
	}
	if patch.PickupDate.Set {
		changes.PickupDate = patch.PickupDate
		fields = append(fields, "pickup_date")
	}
	if patch.EstimatedDeliveryDate.Set {
		changes.EstimatedDeliveryDate = patch.EstimatedDeliveryDate
		fields = append(fields, "estimated_delivery_date")
	}
	if changes.Empty() {
		return changes, nil, apperrors.NewNoChanges()
	}
	return changes, fields, nil
}

func adminActor(user *domain.User) events.Actor {
	id := user.ID
	return events.Actor{UserID: &id, Admin: true}
}
