package repository

import (
	"context"
	"errors"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/apexautomovers/quote-service/internal/domain"
)

// UserRepository defines persistence access for identity provider accounts.
type UserRepository interface {
	CreateWithProfile(ctx context.Context, user *domain.User) error
	GetByID(ctx context.Context, id string) (*domain.User, error)
	GetByEmail(ctx context.Context, email string) (*domain.User, error)
}

type userRepository struct {
	pool *pgxpool.Pool
}

// NewUserRepository returns a Postgres-backed implementation.
func NewUserRepository(pool *pgxpool.Pool) UserRepository {
	return &userRepository{pool: pool}
}

// CreateWithProfile inserts the account and its default profile in one transaction.
func (r *userRepository) CreateWithProfile(ctx context.Context, user *domain.User) error {
	tx, err := r.pool.Begin(ctx)
	if err != nil {
		return err
	}
	defer func() { _ = tx.Rollback(ctx) }()

	const insertUser = `
        INSERT INTO users (email, password_hash)
        VALUES ($1, $2)
        RETURNING id::text, created_at`
	if err := tx.QueryRow(ctx, insertUser, user.Email, user.PasswordHash).Scan(&user.ID, &user.CreatedAt); err != nil {
		if isUniqueViolation(err) {
			return domain.ErrAlreadyExists
		}
		return err
	}

	const insertProfile = `
        INSERT INTO profiles (user_id, email, role)
        VALUES (CAST($1::text AS uuid), $2, $3)`
	if _, err := tx.Exec(ctx, insertProfile, user.ID, user.Email, string(domain.RoleUser)); err != nil {
		return err
	}

	return tx.Commit(ctx)
}

func (r *userRepository) GetByID(ctx context.Context, id string) (*domain.User, error) {
	if _, err := uuid.Parse(id); err != nil {
		return nil, nil
	}
	const query = `
        SELECT id::text, email, password_hash, created_at
        FROM users WHERE id = CAST($1::text AS uuid)`
	return r.fetchSingle(ctx, query, id)
}

func (r *userRepository) GetByEmail(ctx context.Context, email string) (*domain.User, error) {
	const query = `
        SELECT id::text, email, password_hash, created_at
        FROM users WHERE email = LOWER($1)`
	return r.fetchSingle(ctx, query, email)
}

func (r *userRepository) fetchSingle(ctx context.Context, query string, arg any) (*domain.User, error) {
	var user domain.User
	if err := r.pool.QueryRow(ctx, query, arg).Scan(
		&user.ID,
		&user.Email,
		&user.PasswordHash,
		&user.CreatedAt,
	); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, err
	}
	return &user, nil
}
