package postgres

import (
	"context"
	"encoding/json"
	"errors"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/groupfit/backend/domain"
	"github.com/groupfit/backend/repository"
)

type filterRepository struct {
	pool *pgxpool.Pool
}

// NewFilterRepository returns a Postgres-backed implementation of FilterRepository.
func NewFilterRepository(pool *pgxpool.Pool) repository.FilterRepository {
	return &filterRepository{pool: pool}
}

func (r *filterRepository) Get(ctx context.Context, userID string) ([]string, error) {
	const query = `SELECT grouping_ids FROM filter_settings WHERE user_id = $1`

	var payload []byte
	if err := r.pool.QueryRow(ctx, query, userID).Scan(&payload); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, domain.ErrFilterNotFound
		}
		return nil, err
	}

	var ids []string
	if err := json.Unmarshal(payload, &ids); err != nil {
		return nil, err
	}
	return ids, nil
}

func (r *filterRepository) Upsert(ctx context.Context, userID string, groupingIDs []string) error {
	if userID == "" {
		return domain.ErrInvalidPayload
	}
	if groupingIDs == nil {
		groupingIDs = []string{}
	}

	payload, err := json.Marshal(groupingIDs)
	if err != nil {
		return err
	}

	const query = `
	INSERT INTO filter_settings (user_id, grouping_ids, updated_at)
	VALUES ($1, $2, NOW())
	ON CONFLICT (user_id) DO UPDATE
	SET grouping_ids = EXCLUDED.grouping_ids,
		updated_at = NOW()
	`
	_, err = r.pool.Exec(ctx, query, userID, payload)
	return err
}
