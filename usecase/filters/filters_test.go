package filters

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/groupfit/backend/domain"
)

type fakeFilterRepo struct {
	selections map[string][]string
	getErr     error
	upsertErr  error
}

func (f *fakeFilterRepo) Get(ctx context.Context, userID string) ([]string, error) {
	if f.getErr != nil {
		return nil, f.getErr
	}
	ids, ok := f.selections[userID]
	if !ok {
		return nil, domain.ErrFilterNotFound
	}
	return ids, nil
}

func (f *fakeFilterRepo) Upsert(ctx context.Context, userID string, groupingIDs []string) error {
	if f.upsertErr != nil {
		return f.upsertErr
	}
	f.selections[userID] = groupingIDs
	return nil
}

type fakePeriodStore struct {
	values map[string]string
	getErr error
	setErr error
}

func (f *fakePeriodStore) Get(key string) (string, error) {
	if f.getErr != nil {
		return "", f.getErr
	}
	return f.values[key], nil
}

func (f *fakePeriodStore) Set(key, value string) error {
	if f.setErr != nil {
		return f.setErr
	}
	f.values[key] = value
	return nil
}

func newTestStore(repo *fakeFilterRepo, prefs *fakePeriodStore) *Store {
	if repo == nil {
		repo = &fakeFilterRepo{selections: map[string][]string{}}
	}
	if prefs == nil {
		prefs = &fakePeriodStore{values: map[string]string{}}
	}
	return NewStore(repo, prefs, nil)
}

func TestSelectedDefaultsToAllGroupings(t *testing.T) {
	store := newTestStore(nil, nil)
	groupings := []domain.Grouping{{ID: "a"}, {ID: "b"}}

	got, err := store.Selected(context.Background(), "user-1", groupings)
	require.NoError(t, err)
	assert.ElementsMatch(t, []string{"a", "b"}, got)
}

func TestSelectedDefaultIsNeverStored(t *testing.T) {
	repo := &fakeFilterRepo{selections: map[string][]string{}}
	store := newTestStore(repo, nil)

	_, err := store.Selected(context.Background(), "user-1", []domain.Grouping{{ID: "a"}})
	require.NoError(t, err)
	assert.NotContains(t, repo.selections, "user-1")
}

func TestSelectedReturnsPersistedSelection(t *testing.T) {
	repo := &fakeFilterRepo{selections: map[string][]string{"user-1": {"b"}}}
	store := newTestStore(repo, nil)

	got, err := store.Selected(context.Background(), "user-1", []domain.Grouping{{ID: "a"}, {ID: "b"}})
	require.NoError(t, err)
	assert.Equal(t, []string{"b"}, got)
}

func TestSelectedGatewayFailure(t *testing.T) {
	repo := &fakeFilterRepo{getErr: errors.New("connection refused")}
	store := newTestStore(repo, nil)

	_, err := store.Selected(context.Background(), "user-1", nil)
	require.Error(t, err)
	assert.True(t, domain.IsDomainError(err, domain.ErrCodeGateway))
}

func TestSetSelected(t *testing.T) {
	repo := &fakeFilterRepo{selections: map[string][]string{}}
	store := newTestStore(repo, nil)

	require.NoError(t, store.SetSelected(context.Background(), "user-1", []string{"a"}))
	assert.Equal(t, []string{"a"}, repo.selections["user-1"])
}

func TestToggle(t *testing.T) {
	tests := []struct {
		name      string
		selection []string
		id        string
		want      []string
	}{
		{name: "adds missing id", selection: []string{"a"}, id: "b", want: []string{"a", "b"}},
		{name: "removes present id", selection: []string{"a", "b"}, id: "a", want: []string{"b"}},
		{name: "empty selection", selection: nil, id: "a", want: []string{"a"}},
		{name: "removing last id empties the selection", selection: []string{"a"}, id: "a", want: []string{}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, Toggle(tt.selection, tt.id))
		})
	}
}

func TestPeriodFallsBackToDefault(t *testing.T) {
	tests := []struct {
		name  string
		prefs *fakePeriodStore
	}{
		{name: "nothing stored", prefs: &fakePeriodStore{values: map[string]string{}}},
		{name: "invalid value stored", prefs: &fakePeriodStore{values: map[string]string{"selected_period:user-1": "fortnight"}}},
		{name: "storage unavailable", prefs: &fakePeriodStore{getErr: errors.New("db closed")}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			store := newTestStore(nil, tt.prefs)
			assert.Equal(t, domain.PeriodWeek, store.Period("user-1"))
		})
	}
}

func TestPeriodRoundTrip(t *testing.T) {
	prefs := &fakePeriodStore{values: map[string]string{}}
	store := newTestStore(nil, prefs)

	require.NoError(t, store.SetPeriod("user-1", domain.PeriodMonth))
	assert.Equal(t, domain.PeriodMonth, store.Period("user-1"))
}

func TestPeriodIsScopedPerUser(t *testing.T) {
	prefs := &fakePeriodStore{values: map[string]string{}}
	store := newTestStore(nil, prefs)

	require.NoError(t, store.SetPeriod("user-a", domain.PeriodDay))

	assert.Equal(t, domain.PeriodDay, store.Period("user-a"))
	assert.Equal(t, domain.DefaultPeriod, store.Period("user-b"),
		"one user's period must not leak into another's default")

	require.NoError(t, store.SetPeriod("user-b", domain.PeriodYear))
	assert.Equal(t, domain.PeriodDay, store.Period("user-a"))
	assert.Equal(t, domain.PeriodYear, store.Period("user-b"))
}

func TestSetPeriodRejectsUnknownValues(t *testing.T) {
	store := newTestStore(nil, nil)
	err := store.SetPeriod("user-1", domain.Period("fortnight"))
	require.Error(t, err)
	assert.True(t, domain.IsDomainError(err, domain.ErrCodeInvalid))
}
