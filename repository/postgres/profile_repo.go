package postgres

import (
	"context"
	"errors"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/groupfit/backend/domain"
	"github.com/groupfit/backend/repository"
)

type profileRepository struct {
	pool *pgxpool.Pool
}

// NewProfileRepository instantiates a Postgres-backed profile repository.
func NewProfileRepository(pool *pgxpool.Pool) repository.ProfileRepository {
	return &profileRepository{pool: pool}
}

func (r *profileRepository) GetByID(ctx context.Context, id string) (*domain.Profile, error) {
	const query = `
	SELECT id, full_name, COALESCE(avatar_url, ''), created_at, updated_at
	FROM profiles
	WHERE id = $1
	`
	row := r.pool.QueryRow(ctx, query, id)

	var p domain.Profile
	if err := row.Scan(&p.ID, &p.FullName, &p.AvatarURL, &p.CreatedAt, &p.UpdatedAt); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, domain.ErrProfileNotFound
		}
		return nil, err
	}
	return &p, nil
}

func (r *profileRepository) ListByIDs(ctx context.Context, ids []string) ([]domain.Profile, error) {
	if len(ids) == 0 {
		return nil, nil
	}

	const query = `
	SELECT id, full_name, COALESCE(avatar_url, ''), created_at, updated_at
	FROM profiles
	WHERE id = ANY($1)
	`
	rows, err := r.pool.Query(ctx, query, ids)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var profiles []domain.Profile
	for rows.Next() {
		var p domain.Profile
		if err := rows.Scan(&p.ID, &p.FullName, &p.AvatarURL, &p.CreatedAt, &p.UpdatedAt); err != nil {
			return nil, err
		}
		profiles = append(profiles, p)
	}
	return profiles, rows.Err()
}

func (r *profileRepository) Upsert(ctx context.Context, profile *domain.Profile) error {
	if profile == nil || profile.ID == "" {
		return domain.ErrInvalidPayload
	}

	const query = `
	INSERT INTO profiles (id, full_name, avatar_url, created_at, updated_at)
	VALUES ($1, $2, $3, COALESCE($4, NOW()), NOW())
	ON CONFLICT (id) DO UPDATE
	SET full_name = EXCLUDED.full_name,
		avatar_url = EXCLUDED.avatar_url,
		updated_at = NOW()
	RETURNING created_at, updated_at
	`

	var createdAt, updatedAt time.Time
	if err := r.pool.QueryRow(ctx, query,
		profile.ID,
		profile.FullName,
		nullString(profile.AvatarURL),
		nullTime(profile.CreatedAt),
	).Scan(&createdAt, &updatedAt); err != nil {
		return err
	}

	profile.CreatedAt = createdAt
	profile.UpdatedAt = updatedAt
	return nil
}

func nullTime(t time.Time) interface{} {
	if t.IsZero() {
		return nil
	}
	return t
}
