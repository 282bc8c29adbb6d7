package app

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/justyntemme/photogeoview/internal/fs"
)

func newTestNavigator(t *testing.T, disc Discoverer) (*Navigator, *Loop, *[]NavEvent) {
	t.Helper()
	l := newTestLoop(t)
	nav := NewNavigator(l, disc, DefaultHistorySize)
	var evs []NavEvent
	nav.OnEvent(func(ev NavEvent) { evs = append(evs, ev) })
	return nav, l, &evs
}

func navState(t *testing.T, l *Loop, nav *Navigator) NavState {
	t.Helper()
	var st NavState
	on(t, l, func() { st = nav.State() })
	return st
}

func entryNames(entries []fs.Entry) []string {
	names := make([]string, len(entries))
	for i, e := range entries {
		names[i] = e.Name
	}
	return names
}

func TestNavigateLoadsEntries(t *testing.T) {
	disc := newFakeDiscoverer()
	disc.add("/photos", "trip", "a.jpg")
	nav, l, _ := newTestNavigator(t, disc)

	on(t, l, func() { require.NoError(t, nav.NavigateTo("/photos")) })
	st := navState(t, l, nav)
	assert.Contains(t, []Status{StatusLoading, StatusLoaded}, st.Status)

	l.Drain()
	st = navState(t, l, nav)
	assert.Equal(t, StatusLoaded, st.Status)
	assert.Equal(t, "/photos", st.CurrentPath)
	assert.Equal(t, []string{"trip", "a.jpg"}, entryNames(st.Entries))
	assert.Equal(t, uint64(1), st.Epoch)
	assert.False(t, st.CanBack)
	assert.True(t, st.CanUp)
}

func TestNavigateEmptyPath(t *testing.T) {
	nav, l, _ := newTestNavigator(t, newFakeDiscoverer())
	on(t, l, func() { assert.ErrorIs(t, nav.NavigateTo(""), ErrEmptyPath) })
	assert.Equal(t, StatusIdle, navState(t, l, nav).Status)
}

// A slow load for an earlier path must never replace a later one.
func TestNavigateStaleResultDiscarded(t *testing.T) {
	disc := newFakeDiscoverer()
	disc.add("/a", "a1.jpg")
	disc.add("/b", "b1.jpg", "b2.jpg")
	disc.hold("/a")
	nav, l, _ := newTestNavigator(t, disc)

	on(t, l, func() {
		require.NoError(t, nav.NavigateTo("/a"))
		require.NoError(t, nav.NavigateTo("/b"))
	})
	require.Eventually(t, func() bool {
		return navState(t, l, nav).CurrentPath == "/b"
	}, time.Second, 5*time.Millisecond)

	disc.release("/a")
	l.Drain()

	st := navState(t, l, nav)
	assert.Equal(t, "/b", st.CurrentPath)
	assert.Equal(t, []string{"b1.jpg", "b2.jpg"}, entryNames(st.Entries))
	assert.Equal(t, StatusLoaded, st.Status)
	assert.False(t, st.CanBack, "the abandoned load must not enter history")
}

func TestNavigateBackForward(t *testing.T) {
	disc := newFakeDiscoverer()
	disc.add("/photos", "trip")
	disc.add("/photos/trip", "x.jpg")
	nav, l, _ := newTestNavigator(t, disc)

	on(t, l, func() { require.NoError(t, nav.NavigateTo("/photos")) })
	l.Drain()
	on(t, l, func() { require.NoError(t, nav.NavigateTo("/photos/trip")) })
	l.Drain()

	on(t, l, func() { assert.True(t, nav.Back()) })
	l.Drain()
	st := navState(t, l, nav)
	assert.Equal(t, "/photos", st.CurrentPath)
	assert.False(t, st.CanBack)
	assert.True(t, st.CanForward)

	on(t, l, func() { assert.True(t, nav.Forward()) })
	l.Drain()
	st = navState(t, l, nav)
	assert.Equal(t, "/photos/trip", st.CurrentPath)
	assert.True(t, st.CanBack)
	assert.False(t, st.CanForward)

	on(t, l, func() { assert.False(t, nav.Forward()) })
}

func TestNavigateFailureKeepsDirectory(t *testing.T) {
	disc := newFakeDiscoverer()
	disc.add("/a", "a1.jpg")
	nav, l, evs := newTestNavigator(t, disc)

	on(t, l, func() { require.NoError(t, nav.NavigateTo("/a")) })
	l.Drain()
	epoch := navState(t, l, nav).Epoch

	on(t, l, func() { require.NoError(t, nav.NavigateTo("/missing")) })
	l.Drain()

	st := navState(t, l, nav)
	assert.Equal(t, StatusError, st.Status)
	assert.Equal(t, "/a", st.CurrentPath)
	assert.Equal(t, []string{"a1.jpg"}, entryNames(st.Entries))
	assert.Empty(t, st.FailedPath)
	assert.Equal(t, epoch, st.Epoch)
	assert.False(t, st.CanBack)
	assert.Equal(t, fs.NotFound, fs.KindOf(st.Err))

	var last NavEvent
	on(t, l, func() { last = (*evs)[len(*evs)-1] })
	assert.Equal(t, NavLoadFailed, last.Kind)
}

func TestNavigateFirstLoadFailureThenRefresh(t *testing.T) {
	disc := newFakeDiscoverer()
	nav, l, _ := newTestNavigator(t, disc)

	on(t, l, func() { require.NoError(t, nav.NavigateTo("/later")) })
	l.Drain()
	st := navState(t, l, nav)
	assert.Equal(t, StatusError, st.Status)
	assert.Empty(t, st.CurrentPath)
	assert.Equal(t, "/later", st.FailedPath)

	disc.add("/later", "x.jpg")
	on(t, l, func() { require.NoError(t, nav.Refresh()) })
	l.Drain()
	st = navState(t, l, nav)
	assert.Equal(t, StatusLoaded, st.Status)
	assert.Equal(t, "/later", st.CurrentPath)
	assert.Empty(t, st.FailedPath)
}

func TestRefreshKeepsHistoryAndEpoch(t *testing.T) {
	disc := newFakeDiscoverer()
	disc.add("/a", "a1.jpg")
	disc.add("/b", "b1.jpg")
	nav, l, evs := newTestNavigator(t, disc)

	on(t, l, func() { require.NoError(t, nav.NavigateTo("/a")) })
	l.Drain()
	on(t, l, func() { require.NoError(t, nav.NavigateTo("/b")) })
	l.Drain()
	before := navState(t, l, nav)

	disc.add("/b", "b1.jpg", "b2.jpg")
	on(t, l, func() { require.NoError(t, nav.Refresh()) })
	l.Drain()
	after := navState(t, l, nav)

	assert.Equal(t, before.Epoch, after.Epoch)
	assert.Equal(t, []string{"b1.jpg", "b2.jpg"}, entryNames(after.Entries))
	assert.True(t, after.CanBack)
	assert.False(t, after.CanForward)

	var last NavEvent
	on(t, l, func() { last = (*evs)[len(*evs)-1] })
	assert.Equal(t, NavEntriesReloaded, last.Kind)

	// Navigating to the open directory is a reload too.
	on(t, l, func() { require.NoError(t, nav.NavigateTo("/b/")) })
	l.Drain()
	assert.Equal(t, before.Epoch, navState(t, l, nav).Epoch)
	on(t, l, func() { assert.True(t, nav.Back()) })
	l.Drain()
	assert.Equal(t, "/a", navState(t, l, nav).CurrentPath)
}

func TestRefreshWithoutDirectory(t *testing.T) {
	nav, l, _ := newTestNavigator(t, newFakeDiscoverer())
	on(t, l, func() { assert.ErrorIs(t, nav.Refresh(), ErrNoDirectory) })
}

func TestNavigateUp(t *testing.T) {
	disc := newFakeDiscoverer()
	disc.add("/", "photos")
	disc.add("/photos", "a.jpg")
	nav, l, _ := newTestNavigator(t, disc)

	on(t, l, func() { assert.ErrorIs(t, nav.Up(), ErrNoDirectory) })

	on(t, l, func() { require.NoError(t, nav.NavigateTo("/photos")) })
	l.Drain()
	on(t, l, func() { require.NoError(t, nav.Up()) })
	l.Drain()
	st := navState(t, l, nav)
	assert.Equal(t, "/", st.CurrentPath)
	assert.False(t, st.CanUp)
	assert.True(t, st.CanBack)

	calls := disc.callCount()
	on(t, l, func() { require.NoError(t, nav.Up()) })
	l.Drain()
	assert.Equal(t, calls, disc.callCount(), "up at a root does nothing")
}

func TestLeaveRemembersDirectory(t *testing.T) {
	disc := newFakeDiscoverer()
	disc.add("/a", "a1.jpg")
	nav, l, evs := newTestNavigator(t, disc)

	on(t, l, func() { require.NoError(t, nav.NavigateTo("/a")) })
	l.Drain()
	on(t, l, func() { nav.Leave() })

	st := navState(t, l, nav)
	assert.Equal(t, StatusIdle, st.Status)
	assert.Empty(t, st.CurrentPath)
	assert.Nil(t, st.Entries)
	assert.True(t, st.CanBack)
	assert.Equal(t, uint64(2), st.Epoch)

	var last NavEvent
	on(t, l, func() { last = (*evs)[len(*evs)-1] })
	assert.Equal(t, NavPathChanged, last.Kind)
	assert.Empty(t, last.Path)

	on(t, l, func() { assert.True(t, nav.Back()) })
	l.Drain()
	assert.Equal(t, "/a", navState(t, l, nav).CurrentPath)
}

func TestLeaveCancelsPendingLoad(t *testing.T) {
	disc := newFakeDiscoverer()
	disc.add("/slow", "x.jpg")
	disc.hold("/slow")
	nav, l, _ := newTestNavigator(t, disc)

	on(t, l, func() {
		require.NoError(t, nav.NavigateTo("/slow"))
		nav.Leave()
	})
	disc.release("/slow")
	l.Drain()

	st := navState(t, l, nav)
	assert.Equal(t, StatusIdle, st.Status)
	assert.Empty(t, st.CurrentPath)
}

func TestStatusString(t *testing.T) {
	assert.Equal(t, "idle", StatusIdle.String())
	assert.Equal(t, "loading", StatusLoading.String())
	assert.Equal(t, "loaded", StatusLoaded.String())
	assert.Equal(t, "error", StatusError.String())
}
