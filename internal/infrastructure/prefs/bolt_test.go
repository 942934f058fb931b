package prefs

import (
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func openTestStore(t *testing.T) *Store {
	t.Helper()
	store, err := Open(filepath.Join(t.TempDir(), "prefs.db"))
	require.NoError(t, err)
	t.Cleanup(func() { store.Close() })
	return store
}

func TestGetAbsentKeyReturnsEmpty(t *testing.T) {
	store := openTestStore(t)

	value, err := store.Get("never_set")
	require.NoError(t, err)
	assert.Empty(t, value)
}

func TestSetGetRoundTrip(t *testing.T) {
	store := openTestStore(t)

	require.NoError(t, store.Set("selected_period", "month"))
	value, err := store.Get("selected_period")
	require.NoError(t, err)
	assert.Equal(t, "month", value)

	require.NoError(t, store.Set("selected_period", "day"))
	value, err = store.Get("selected_period")
	require.NoError(t, err)
	assert.Equal(t, "day", value)
}

func TestDeleteIsIdempotent(t *testing.T) {
	store := openTestStore(t)

	require.NoError(t, store.Set("key", "value"))
	require.NoError(t, store.Delete("key"))
	require.NoError(t, store.Delete("key"))

	value, err := store.Get("key")
	require.NoError(t, err)
	assert.Empty(t, value)
}

func TestSize(t *testing.T) {
	store := openTestStore(t)

	count, err := store.Size()
	require.NoError(t, err)
	assert.Zero(t, count)

	require.NoError(t, store.Set("a", "1"))
	require.NoError(t, store.Set("b", "2"))

	count, err = store.Size()
	require.NoError(t, err)
	assert.Equal(t, 2, count)
}

func TestClosedStoreErrors(t *testing.T) {
	store := openTestStore(t)
	require.NoError(t, store.Close())

	_, err := store.Get("key")
	assert.Error(t, err)
	assert.Error(t, store.Set("key", "value"))
}
