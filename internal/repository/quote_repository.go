package repository

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/shopspring/decimal"

	"github.com/apexautomovers/quote-service/internal/domain"
)

const quoteColumns = `id::text, user_id::text, name, email, phone, pickup, delivery, make, model,
               transport_type, pickup_date::text, estimated_delivery_date::text, quote_amount::text,
               admin_notes, status, distance_miles, duration_seconds, created_at, updated_at, email_sent_at`

// QuoteChanges lists the columns an update writes. Unset fields are left untouched.
type QuoteChanges struct {
	Status                *domain.QuoteStatus
	QuoteAmount           domain.Optional[decimal.Decimal]
	AdminNotes            domain.Optional[string]
	PickupDate            domain.Optional[string]
	EstimatedDeliveryDate domain.Optional[string]
	MarkEmailSent         bool
}

// Empty reports whether the changes would write nothing but updated_at.
func (c QuoteChanges) Empty() bool {
	return c.Status == nil &&
		!c.QuoteAmount.Set &&
		!c.AdminNotes.Set &&
		!c.PickupDate.Set &&
		!c.EstimatedDeliveryDate.Set &&
		!c.MarkEmailSent
}

// QuoteRepository encapsulates quote persistence.
type QuoteRepository interface {
	Insert(ctx context.Context, quote *domain.Quote) (*domain.Quote, error)
	FindByID(ctx context.Context, id string) (*domain.Quote, error)
	ListByUser(ctx context.Context, userID string) ([]domain.Quote, error)
	ListAll(ctx context.Context) ([]domain.Quote, error)
	Update(ctx context.Context, id string, changes QuoteChanges) (*domain.Quote, error)
}

type quoteRepository struct {
	pool *pgxpool.Pool
}

// NewQuoteRepository instantiates repository.
func NewQuoteRepository(pool *pgxpool.Pool) QuoteRepository {
	return &quoteRepository{pool: pool}
}

func (r *quoteRepository) Insert(ctx context.Context, quote *domain.Quote) (*domain.Quote, error) {
	query := `
        INSERT INTO quotes (user_id, name, email, phone, pickup, delivery, make, model, transport_type,
                            pickup_date, status, created_at, updated_at)
        VALUES (CAST($1::text AS uuid), $2, $3, $4, $5, $6, $7, $8, $9, CAST($10::text AS date), $11, NOW(), NOW())
        RETURNING ` + quoteColumns
	row := r.pool.QueryRow(ctx, query,
		quote.UserID,
		quote.Name,
		quote.Email,
		quote.Phone,
		quote.Pickup,
		quote.Delivery,
		quote.Make,
		quote.Model,
		string(quote.TransportType),
		quote.PickupDate,
		string(quote.Status),
	)
	return scanQuote(row)
}

func (r *quoteRepository) FindByID(ctx context.Context, id string) (*domain.Quote, error) {
	if _, err := uuid.Parse(id); err != nil {
		return nil, nil
	}
	query := `SELECT ` + quoteColumns + ` FROM quotes WHERE id = CAST($1::text AS uuid)`
	quote, err := scanQuote(r.pool.QueryRow(ctx, query, id))
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, nil
	}
	return quote, err
}

func (r *quoteRepository) ListByUser(ctx context.Context, userID string) ([]domain.Quote, error) {
	if _, err := uuid.Parse(userID); err != nil {
		return []domain.Quote{}, nil
	}
	query := `SELECT ` + quoteColumns + ` FROM quotes WHERE user_id = CAST($1::text AS uuid) ORDER BY created_at DESC`
	rows, err := r.pool.Query(ctx, query, userID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	return scanQuotes(rows)
}

func (r *quoteRepository) ListAll(ctx context.Context) ([]domain.Quote, error) {
	query := `SELECT ` + quoteColumns + ` FROM quotes ORDER BY created_at DESC`
	rows, err := r.pool.Query(ctx, query)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	return scanQuotes(rows)
}

func (r *quoteRepository) Update(ctx context.Context, id string, changes QuoteChanges) (*domain.Quote, error) {
	if _, err := uuid.Parse(id); err != nil {
		return nil, nil
	}

	sets := []string{"updated_at = NOW()"}
	args := []any{}
	add := func(clause string, arg any) {
		args = append(args, arg)
		sets = append(sets, fmt.Sprintf(clause, len(args)))
	}

	if changes.Status != nil {
		add("status = $%d", string(*changes.Status))
	}
	if changes.QuoteAmount.Set {
		var amount *string
		if changes.QuoteAmount.Value != nil {
			s := changes.QuoteAmount.Value.String()
			amount = &s
		}
		add("quote_amount = CAST($%d::text AS numeric)", amount)
	}
	if changes.AdminNotes.Set {
		add("admin_notes = $%d", changes.AdminNotes.Value)
	}
	if changes.PickupDate.Set {
		add("pickup_date = CAST($%d::text AS date)", changes.PickupDate.Value)
	}
	if changes.EstimatedDeliveryDate.Set {
		add("estimated_delivery_date = CAST($%d::text AS date)", changes.EstimatedDeliveryDate.Value)
	}
	if changes.MarkEmailSent {
		sets = append(sets, "email_sent_at = GREATEST(email_sent_at, NOW())")
	}

	args = append(args, id)
	query := fmt.Sprintf(`UPDATE quotes SET %s WHERE id = CAST($%d::text AS uuid) RETURNING %s`,
		strings.Join(sets, ", "), len(args), quoteColumns)

	quote, err := scanQuote(r.pool.QueryRow(ctx, query, args...))
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, nil
	}
	return quote, err
}

func scanQuote(row pgx.Row) (*domain.Quote, error) {
	var (
		quote  domain.Quote
		amount *string
	)
	if err := row.Scan(
		&quote.ID,
		&quote.UserID,
		&quote.Name,
		&quote.Email,
		&quote.Phone,
		&quote.Pickup,
		&quote.Delivery,
		&quote.Make,
		&quote.Model,
		&quote.TransportType,
		&quote.PickupDate,
		&quote.EstimatedDeliveryDate,
		&amount,
		&quote.AdminNotes,
		&quote.Status,
		&quote.DistanceMiles,
		&quote.DurationSeconds,
		&quote.CreatedAt,
		&quote.UpdatedAt,
		&quote.EmailSentAt,
	); err != nil {
		return nil, err
	}
	if amount != nil {
		value, err := decimal.NewFromString(*amount)
		if err != nil {
			return nil, fmt.Errorf("parse quote_amount %q: %w", *amount, err)
		}
		quote.QuoteAmount = &value
	}
	return &quote, nil
}

func scanQuotes(rows pgx.Rows) ([]domain.Quote, error) {
	result := []domain.Quote{}
	for rows.Next() {
		quote, err := scanQuote(rows)
		if err != nil {
			return nil, err
		}
		result = append(result, *quote)
	}
	return result, rows.Err()
}
