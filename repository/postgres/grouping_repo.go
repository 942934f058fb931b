package postgres

import (
	"context"
	"errors"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/groupfit/backend/domain"
	"github.com/groupfit/backend/repository"
)

type groupingRepository struct {
	pool *pgxpool.Pool
}

// NewGroupingRepository returns a Postgres-backed implementation of GroupingRepository.
func NewGroupingRepository(pool *pgxpool.Pool) repository.GroupingRepository {
	return &groupingRepository{pool: pool}
}

func (r *groupingRepository) ListByIDs(ctx context.Context, ids []string) ([]domain.Grouping, error) {
	if len(ids) == 0 {
		return nil, nil
	}

	const query = `
	SELECT id, name, default_color, created_by
	FROM groupings
	WHERE id = ANY($1)
	ORDER BY created_at
	`
	rows, err := r.pool.Query(ctx, query, ids)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var groupings []domain.Grouping
	for rows.Next() {
		var g domain.Grouping
		if err := rows.Scan(&g.ID, &g.Name, &g.DefaultColor, &g.CreatedBy); err != nil {
			return nil, err
		}
		groupings = append(groupings, g)
	}
	return groupings, rows.Err()
}

func (r *groupingRepository) Create(ctx context.Context, grouping *domain.Grouping) (*domain.Grouping, error) {
	if grouping == nil {
		return nil, domain.ErrInvalidPayload
	}
	if grouping.ID == "" {
		grouping.ID = uuid.NewString()
	}

	const query = `
	INSERT INTO groupings (id, name, default_color, created_by)
	VALUES ($1, $2, $3, $4)
	RETURNING id
	`
	if err := r.pool.QueryRow(ctx, query,
		grouping.ID,
		grouping.Name,
		grouping.DefaultColor,
		grouping.CreatedBy,
	).Scan(&grouping.ID); err != nil {
		return nil, err
	}

	return grouping, nil
}

func (r *groupingRepository) Rename(ctx context.Context, id, name string) error {
	const query = `UPDATE groupings SET name = $2 WHERE id = $1 RETURNING id`
	var got string
	if err := r.pool.QueryRow(ctx, query, id, name).Scan(&got); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return domain.ErrGroupingNotFound
		}
		return err
	}
	return nil
}

type memberRepository struct {
	pool *pgxpool.Pool
}

// NewMemberRepository returns a Postgres-backed implementation of MemberRepository.
func NewMemberRepository(pool *pgxpool.Pool) repository.MemberRepository {
	return &memberRepository{pool: pool}
}

func (r *memberRepository) GroupingIDs(ctx context.Context, userID string) ([]string, error) {
	const query = `SELECT grouping_id FROM grouping_members WHERE user_id = $1`
	rows, err := r.pool.Query(ctx, query, userID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var ids []string
	for rows.Next() {
		var id string
		if err := rows.Scan(&id); err != nil {
			return nil, err
		}
		ids = append(ids, id)
	}
	return ids, rows.Err()
}

func (r *memberRepository) ListByGrouping(ctx context.Context, groupingID string) ([]domain.Membership, error) {
	const query = `
	SELECT user_id, grouping_id, role
	FROM grouping_members
	WHERE grouping_id = $1
	ORDER BY joined_at
	`
	rows, err := r.pool.Query(ctx, query, groupingID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var members []domain.Membership
	for rows.Next() {
		var m domain.Membership
		if err := rows.Scan(&m.UserID, &m.GroupingID, &m.Role); err != nil {
			return nil, err
		}
		members = append(members, m)
	}
	return members, rows.Err()
}

func (r *memberRepository) Add(ctx context.Context, membership *domain.Membership) error {
	if membership == nil || membership.UserID == "" || membership.GroupingID == "" {
		return domain.ErrInvalidPayload
	}
	role := membership.Role
	if role == "" {
		role = domain.RoleMember
	}

	const query = `
	INSERT INTO grouping_members (grouping_id, user_id, role)
	VALUES ($1, $2, $3)
	ON CONFLICT (grouping_id, user_id) DO NOTHING
	`
	_, err := r.pool.Exec(ctx, query, membership.GroupingID, membership.UserID, role)
	return err
}
