package store

import (
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func openTemp(t *testing.T) (*DB, string) {
	t.Helper()
	path := filepath.Join(t.TempDir(), "nested", "settings.db")
	db, err := Open(path)
	require.NoError(t, err)
	t.Cleanup(func() { db.Close() })
	return db, path
}

func TestGetDefaultsWhenMissing(t *testing.T) {
	db, _ := openTemp(t)
	assert.Equal(t, "grid", db.Get(KeyViewMode, "grid"))
}

func TestSetOverwrites(t *testing.T) {
	db, _ := openTemp(t)
	require.NoError(t, db.Set(KeyLastFolder, "/photos"))
	require.NoError(t, db.Set(KeyLastFolder, "/photos/trip"))
	assert.Equal(t, "/photos/trip", db.Get(KeyLastFolder, ""))

	all, err := db.All()
	require.NoError(t, err)
	assert.Equal(t, map[string]string{KeyLastFolder: "/photos/trip"}, all)
}

func TestValuesSurviveReopen(t *testing.T) {
	db, path := openTemp(t)
	require.NoError(t, db.Set(KeySortKey, "date"))
	require.NoError(t, db.Close())

	again, err := Open(path)
	require.NoError(t, err)
	defer again.Close()
	assert.Equal(t, "date", again.Get(KeySortKey, "name"))
}

func TestClosedDB(t *testing.T) {
	db, _ := openTemp(t)
	require.NoError(t, db.Close())
	assert.Equal(t, "fallback", db.Get(KeySortOrder, "fallback"))
	assert.Error(t, db.Set(KeySortOrder, "desc"))
	assert.NoError(t, db.Close())
}
