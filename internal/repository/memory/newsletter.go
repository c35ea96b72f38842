package memory

import (
	"context"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/apexautomovers/quote-service/internal/domain"
	"github.com/apexautomovers/quote-service/internal/repository"
)

// NewsletterRepository keeps subscribers keyed by email.
type NewsletterRepository struct {
	mu          sync.Mutex
	subscribers map[string]domain.NewsletterSubscriber
}

// NewNewsletterRepository returns an empty repository.
func NewNewsletterRepository() *NewsletterRepository {
	return &NewsletterRepository{subscribers: make(map[string]domain.NewsletterSubscriber)}
}

var _ repository.NewsletterRepository = (*NewsletterRepository)(nil)

func (r *NewsletterRepository) Subscribe(_ context.Context, email string) (*domain.NewsletterSubscriber, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, exists := r.subscribers[email]; exists {
		return nil, domain.ErrAlreadyExists
	}
	sub := domain.NewsletterSubscriber{ID: uuid.NewString(), Email: email, SubscribedAt: time.Now().UTC()}
	r.subscribers[email] = sub
	return &sub, nil
}

// Count returns the number of stored subscribers.
func (r *NewsletterRepository) Count() int {
	r.mu.Lock()
	defer r.mu.Unlock()
	return len(r.subscribers)
}
