// Package memory provides process-local repositories for development without a
// database and for tests.
package memory

import (
	"context"
	"sort"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/apexautomovers/quote-service/internal/domain"
	"github.com/apexautomovers/quote-service/internal/repository"
)

// QuoteRepository keeps quotes in a map.
type QuoteRepository struct {
	mu      sync.RWMutex
	quotes  map[string]domain.Quote
	now     func() time.Time
	Inserts int
	Updates int
}

// NewQuoteRepository returns an empty repository.
func NewQuoteRepository() *QuoteRepository {
	return &QuoteRepository{
		quotes: make(map[string]domain.Quote),
		now:    func() time.Time { return time.Now().UTC() },
	}
}

var _ repository.QuoteRepository = (*QuoteRepository)(nil)

func (r *QuoteRepository) Insert(_ context.Context, quote *domain.Quote) (*domain.Quote, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	stored := *quote
	stored.ID = uuid.NewString()
	stored.CreatedAt = r.now()
	stored.UpdatedAt = stored.CreatedAt
	r.quotes[stored.ID] = stored
	r.Inserts++

	out := stored
	return &out, nil
}

func (r *QuoteRepository) FindByID(_ context.Context, id string) (*domain.Quote, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	quote, ok := r.quotes[id]
	if !ok {
		return nil, nil
	}
	return &quote, nil
}

func (r *QuoteRepository) ListByUser(_ context.Context, userID string) ([]domain.Quote, error) {
	return r.list(func(q domain.Quote) bool {
		return q.UserID != nil && *q.UserID == userID
	}), nil
}

func (r *QuoteRepository) ListAll(_ context.Context) ([]domain.Quote, error) {
	return r.list(func(domain.Quote) bool { return true }), nil
}

func (r *QuoteRepository) Update(_ context.Context, id string, changes repository.QuoteChanges) (*domain.Quote, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	quote, ok := r.quotes[id]
	if !ok {
		return nil, nil
	}

	now := r.now()
	if changes.Status != nil {
		quote.Status = *changes.Status
	}
	if changes.QuoteAmount.Set {
		quote.QuoteAmount = changes.QuoteAmount.Value
	}
	if changes.AdminNotes.Set {
		quote.AdminNotes = changes.AdminNotes.Value
	}
	if changes.PickupDate.Set {
		quote.PickupDate = changes.PickupDate.Value
	}
	if changes.EstimatedDeliveryDate.Set {
		quote.EstimatedDeliveryDate = changes.EstimatedDeliveryDate.Value
	}
	if changes.MarkEmailSent && (quote.EmailSentAt == nil || now.After(*quote.EmailSentAt)) {
		sentAt := now
		quote.EmailSentAt = &sentAt
	}
	quote.UpdatedAt = now
	r.quotes[quote.ID] = quote
	r.Updates++

	return &quote, nil
}

func (r *QuoteRepository) list(keep func(domain.Quote) bool) []domain.Quote {
	r.mu.RLock()
	defer r.mu.RUnlock()

	result := []domain.Quote{}
	for _, quote := range r.quotes {
		if keep(quote) {
			result = append(result, quote)
		}
	}
	sort.SliceStable(result, func(i, j int) bool {
		return result[i].CreatedAt.After(result[j].CreatedAt)
	})
	return result
}

// Count returns the number of stored quotes.
func (r *QuoteRepository) Count() int {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return len(r.quotes)
}
