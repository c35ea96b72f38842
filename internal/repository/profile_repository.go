package repository

import (
	"context"
	"errors"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/apexautomovers/quote-service/internal/domain"
)

// ProfileRepository exposes the per-account profile rows.
type ProfileRepository interface {
	GetByUserID(ctx context.Context, userID string) (*domain.Profile, error)
	UpdateName(ctx context.Context, userID, name string) error
	IsAdmin(ctx context.Context, userID string) (bool, error)
	SetRole(ctx context.Context, email string, role domain.Role) (*domain.Profile, error)
}

type profileRepository struct {
	pool *pgxpool.Pool
}

// NewProfileRepository returns a Postgres-backed implementation.
func NewProfileRepository(pool *pgxpool.Pool) ProfileRepository {
	return &profileRepository{pool: pool}
}

func (r *profileRepository) GetByUserID(ctx context.Context, userID string) (*domain.Profile, error) {
	if _, err := uuid.Parse(userID); err != nil {
		return nil, nil
	}
	const query = `
        SELECT user_id::text, email, name, role, created_at, updated_at
        FROM profiles WHERE user_id = CAST($1::text AS uuid)`
	profile, err := scanProfile(r.pool.QueryRow(ctx, query, userID))
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, nil
	}
	return profile, err
}

func (r *profileRepository) UpdateName(ctx context.Context, userID, name string) error {
	const query = `
        UPDATE profiles SET name = $1, updated_at = NOW()
        WHERE user_id = CAST($2::text AS uuid)`
	cmd, err := r.pool.Exec(ctx, query, name, userID)
	if err != nil {
		return err
	}
	if cmd.RowsAffected() == 0 {
		return domain.ErrNotFound
	}
	return nil
}

func (r *profileRepository) IsAdmin(ctx context.Context, userID string) (bool, error) {
	if _, err := uuid.Parse(userID); err != nil {
		return false, nil
	}
	var admin bool
	if err := r.pool.QueryRow(ctx, `SELECT is_admin(CAST($1::text AS uuid))`, userID).Scan(&admin); err != nil {
		return false, err
	}
	return admin, nil
}

// SetRole changes the role of the profile registered under email. It returns nil, nil
// when no profile matches.
func (r *profileRepository) SetRole(ctx context.Context, email string, role domain.Role) (*domain.Profile, error) {
	const query = `
        UPDATE profiles SET role = $1, updated_at = NOW()
        WHERE LOWER(email) = LOWER($2)
        RETURNING user_id::text, email, name, role, created_at, updated_at`
	profile, err := scanProfile(r.pool.QueryRow(ctx, query, string(role), email))
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, nil
	}
	return profile, err
}

func scanProfile(row pgx.Row) (*domain.Profile, error) {
	var profile domain.Profile
	if err := row.Scan(
		&profile.UserID,
		&profile.Email,
		&profile.Name,
		&profile.Role,
		&profile.CreatedAt,
		&profile.UpdatedAt,
	); err != nil {
		return nil, err
	}
	return &profile, nil
}
