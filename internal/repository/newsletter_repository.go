package repository

import (
	"context"

	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/apexautomovers/quote-service/internal/domain"
)

// NewsletterRepository stores newsletter subscriptions.
type NewsletterRepository interface {
	Subscribe(ctx context.Context, email string) (*domain.NewsletterSubscriber, error)
}

type newsletterRepository struct {
	pool *pgxpool.Pool
}

// NewNewsletterRepository returns a Postgres-backed implementation.
func NewNewsletterRepository(pool *pgxpool.Pool) NewsletterRepository {
	return &newsletterRepository{pool: pool}
}

// Subscribe inserts email and returns domain.ErrAlreadyExists when it is already present.
func (r *newsletterRepository) Subscribe(ctx context.Context, email string) (*domain.NewsletterSubscriber, error) {
	const query = `
        INSERT INTO newsletter_subscribers (email)
        VALUES ($1)
        RETURNING id::text, email, subscribed_at`
	var sub domain.NewsletterSubscriber
	if err := r.pool.QueryRow(ctx, query, email).Scan(&sub.ID, &sub.Email, &sub.SubscribedAt); err != nil {
		if isUniqueViolation(err) {
			return nil, domain.ErrAlreadyExists
		}
		return nil, err
	}
	return &sub, nil
}
