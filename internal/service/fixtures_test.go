package service

import (
	"context"
	"errors"
	"sync"

	"go.uber.org/zap"

	"github.com/apexautomovers/quote-service/internal/auth"
	"github.com/apexautomovers/quote-service/internal/domain"
	"github.com/apexautomovers/quote-service/internal/events"
	"github.com/apexautomovers/quote-service/internal/repository/memory"
)

const (
	userToken  = "user-token"
	adminToken = "admin-token"
	userID     = "11111111-1111-1111-1111-111111111111"
	adminID    = "22222222-2222-2222-2222-222222222222"
)

type tokenProvider struct {
	users  map[string]domain.User
	admins map[string]bool
}

func newTokenProvider() *tokenProvider {
	return &tokenProvider{
		users: map[string]domain.User{
			userToken:  {ID: userID, Email: "ann@example.com"},
			adminToken: {ID: adminID, Email: "ops@apexautomovers.com"},
		},
		admins: map[string]bool{adminID: true},
	}
}

func (p *tokenProvider) CreateUser(context.Context, string, string) (*domain.User, error) {
	return nil, errors.New("not supported")
}

func (p *tokenProvider) GetUser(_ context.Context, token string) (*domain.User, error) {
	user, ok := p.users[token]
	if !ok {
		return nil, errors.New("invalid JWT")
	}
	return &user, nil
}

func (p *tokenProvider) IsAdmin(_ context.Context, id string) (bool, error) {
	return p.admins[id], nil
}

func (p *tokenProvider) SignIn(context.Context, string, string) (*domain.Session, error) {
	return nil, domain.ErrInvalidCredentials
}

type recordingNotifier struct {
	mu   sync.Mutex
	sent []domain.QuoteEmail
	fail error
}

func (n *recordingNotifier) SendQuoteEmail(_ context.Context, email domain.QuoteEmail) error {
	n.mu.Lock()
	defer n.mu.Unlock()
	n.sent = append(n.sent, email)
	return n.fail
}

type recordedEvents struct {
	mu    sync.Mutex
	types []events.EventType
}

func (r *recordedEvents) handler(_ context.Context, e events.Event) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.types = append(r.types, e.Type)
	return nil
}

type quoteFixture struct {
	svc      *QuoteService
	repo     *memory.QuoteRepository
	notifier *recordingNotifier
	events   *recordedEvents
}

func newQuoteFixture() *quoteFixture {
	logger := zap.NewNop()
	repo := memory.NewQuoteRepository()
	notifier := &recordingNotifier{}
	recorded := &recordedEvents{}
	dispatcher := events.NewInMemoryDispatcher(logger)
	for _, t := range []events.EventType{
		events.EventQuoteSubmitted,
		events.EventQuoteStatusChanged,
		events.EventQuoteUpdated,
		events.EventQuoteSent,
	} {
		dispatcher.Subscribe(t, recorded.handler)
	}

	svc := NewQuoteService(QuoteDependencies{
		QuoteRepo:  repo,
		Gate:       auth.NewGate(newTokenProvider(), logger),
		Notifier:   notifier,
		Dispatcher: dispatcher,
		Logger:     logger,
	})
	return &quoteFixture{svc: svc, repo: repo, notifier: notifier, events: recorded}
}
