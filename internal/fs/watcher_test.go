package fs

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestWatcherReportsDebouncedChange(t *testing.T) {
	dir := t.TempDir()
	w, err := NewDirectoryWatcher(20 * time.Millisecond)
	require.NoError(t, err)
	defer w.Close()

	require.NoError(t, w.Follow(dir))
	for i := 0; i < 3; i++ {
		require.NoError(t, os.WriteFile(filepath.Join(dir, "a.jpg"), []byte{byte(i)}, 0o644))
	}

	select {
	case got := <-w.Changes():
		assert.Equal(t, dir, got)
	case <-time.After(3 * time.Second):
		t.Fatal("no change reported")
	}
}

func TestWatcherIgnoresUnfollowedDirectory(t *testing.T) {
	first, second := t.TempDir(), t.TempDir()
	w, err := NewDirectoryWatcher(20 * time.Millisecond)
	require.NoError(t, err)
	defer w.Close()

	require.NoError(t, w.Follow(first))
	require.NoError(t, w.Follow(second))
	require.NoError(t, os.WriteFile(filepath.Join(first, "a.jpg"), []byte("x"), 0o644))

	select {
	case got := <-w.Changes():
		t.Fatalf("unexpected change for %s", got)
	case <-time.After(200 * time.Millisecond):
	}
}
