package repository

import "context"

// FilterRepository persists the per-user set of visible grouping ids.
// Get returns domain.ErrFilterNotFound when no row exists; the default
// ("all groupings") is computed by the caller, never stored.
type FilterRepository interface {
	Get(ctx context.Context, userID string) ([]string, error)
	Upsert(ctx context.Context, userID string, groupingIDs []string) error
}
