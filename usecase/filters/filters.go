package filters

import (
	"context"

	"go.uber.org/zap"

	"github.com/groupfit/backend/domain"
	"github.com/groupfit/backend/repository"
)

const periodKeyPrefix = "selected_period:"

// PeriodStore is the local key-value capability the period selection
// persists to. Failures are non-fatal; reads degrade to the default.
type PeriodStore interface {
	Get(key string) (string, error)
	Set(key, value string) error
}

// Store manages the user's filter selection (persisted remotely) and the
// display period (persisted locally). Unlike the task cache, the selection
// is optimistic: callers keep their in-memory selection even when the
// persist fails.
type Store struct {
	repo   repository.FilterRepository
	prefs  PeriodStore
	logger *zap.Logger
}

func NewStore(repo repository.FilterRepository, prefs PeriodStore, logger *zap.Logger) *Store {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Store{
		repo:   repo,
		prefs:  prefs,
		logger: logger,
	}
}

// Selected returns the user's persisted selection, or every grouping the
// user belongs to when no row exists. The default is computed from the
// current grouping list, never stored.
func (s *Store) Selected(ctx context.Context, userID string, groupings []domain.Grouping) ([]string, error) {
	ids, err := s.repo.Get(ctx, userID)
	if err != nil {
		if domain.IsDomainError(err, domain.ErrCodeNotFound) {
			all := make([]string, 0, len(groupings))
			for _, g := range groupings {
				all = append(all, g.ID)
			}
			return all, nil
		}
		return nil, domain.GatewayError("fetch filter selection", err)
	}
	return ids, nil
}

// SetSelected overwrites the user's persisted selection.
func (s *Store) SetSelected(ctx context.Context, userID string, groupingIDs []string) error {
	if err := s.repo.Upsert(ctx, userID, groupingIDs); err != nil {
		return domain.GatewayError("persist filter selection", err)
	}
	return nil
}

// Toggle flips one grouping's presence in a selection. Pure; the caller is
// responsible for persisting afterwards.
func Toggle(selection []string, groupingID string) []string {
	out := make([]string, 0, len(selection)+1)
	found := false
	for _, id := range selection {
		if id == groupingID {
			found = true
			continue
		}
		out = append(out, id)
	}
	if !found {
		out = append(out, groupingID)
	}
	return out
}

// Period reads the user's locally stored display period, falling back to
// the default when nothing valid is stored or storage is unavailable.
func (s *Store) Period(userID string) domain.Period {
	value, err := s.prefs.Get(periodKeyPrefix + userID)
	if err != nil {
		s.logger.Warn("period read failed, using default",
			zap.String("user_id", userID), zap.Error(err))
		return domain.DefaultPeriod
	}
	p := domain.Period(value)
	if !p.IsValid() {
		return domain.DefaultPeriod
	}
	return p
}

// SetPeriod stores the user's display period locally.
func (s *Store) SetPeriod(userID string, p domain.Period) error {
	if !p.IsValid() {
		return domain.NewError(domain.ErrCodeInvalid, "unknown period")
	}
	return s.prefs.Set(periodKeyPrefix+userID, string(p))
}
