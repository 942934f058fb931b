package repository

import (
	"context"

	"github.com/groupfit/backend/domain"
)

// GroupingRepository reads and creates grouping rows. Row-level entitlement
// is enforced by the store; callers only ever pass ids they obtained from
// their own membership rows.
type GroupingRepository interface {
	ListByIDs(ctx context.Context, ids []string) ([]domain.Grouping, error)
	Create(ctx context.Context, grouping *domain.Grouping) (*domain.Grouping, error)
	Rename(ctx context.Context, id, name string) error
}

// MemberRepository covers the user<->grouping join table.
type MemberRepository interface {
	GroupingIDs(ctx context.Context, userID string) ([]string, error)
	ListByGrouping(ctx context.Context, groupingID string) ([]domain.Membership, error)
	Add(ctx context.Context, membership *domain.Membership) error
}
