package app

import (
	"context"
	"errors"
	"sync/atomic"

	"gioui.org/io/key"
	"go.uber.org/zap"

	"github.com/justyntemme/photogeoview/internal/config"
	"github.com/justyntemme/photogeoview/internal/debug"
	"github.com/justyntemme/photogeoview/internal/events"
	"github.com/justyntemme/photogeoview/internal/logging"
	"github.com/justyntemme/photogeoview/internal/photo"
	"github.com/justyntemme/photogeoview/internal/store"
	"github.com/justyntemme/photogeoview/internal/view"
	"github.com/justyntemme/photogeoview/internal/virtual"
)

// Settings is the key/value store for persisted state.
type Settings interface {
	Get(key, def string) string
	Set(key, value string) error
}

// DirectoryPicker asks the user for a directory. An empty path means the
// user cancelled.
type DirectoryPicker interface {
	PickDirectory(ctx context.Context) (string, error)
}

// Watcher reports changes to the directory it follows.
type Watcher interface {
	Follow(dir string) error
	Changes() <-chan string
}

// Deps are the collaborators of a Browser. Settings, Picker and Watcher are
// optional.
type Deps struct {
	Discoverer Discoverer
	Resolver   Resolver
	Thumbnails ThumbnailGenerator
	Settings   Settings
	Picker     DirectoryPicker
	Watcher    Watcher
	Config     config.Config
	Overrides  ViewOverrides
}

// ViewOverrides are view settings chosen for this run. Set fields win over
// both the config and persisted settings.
type ViewOverrides struct {
	Mode  *view.Mode
	Key   *view.SortKey
	Order *view.SortOrder
}

// ScrollRequest asks the renderer to scroll. Seq increases with every request.
type ScrollRequest struct {
	Seq    uint64
	Row    int
	Offset int
}

// Snapshot is an immutable copy of everything a renderer needs.
type Snapshot struct {
	Version   uint64
	Nav       NavState
	View      view.State
	Source    view.Source
	Items     []view.Item
	Selection SelectionState
	Cursor    int // index of the cursor in Items, -1 if none
	Geometry  virtual.Geometry
	Window    virtual.Window
	Scroll    ScrollRequest
}

// PhotoMode reports whether the flat photo list is live.
func (s *Snapshot) PhotoMode() bool {
	return s.Nav.CurrentPath == "" && s.Source == view.FromPhotos
}

// Browser wires navigation, selection, ordering, layout and thumbnails
// together. Its exported methods are safe for concurrent use; every mutation
// runs on a single loop goroutine.
type Browser struct {
	loop   *Loop
	nav    *Navigator
	sel    *Selection
	view   *view.Engine
	layout *virtual.Engine
	thumbs *Materializer

	settings  Settings
	picker    DirectoryPicker
	watcher   Watcher
	cfg       config.Config
	overrides ViewOverrides
	log       *zap.Logger

	photoSeq  uint64
	version   uint64
	scroll    ScrollRequest
	lastWidth int
	viewportH int

	snap          atomic.Pointer[Snapshot]
	updates       chan struct{}
	selections    *events.Broadcaster[SelectionState]
	notifications *events.Broadcaster[Notification]
	done          chan struct{}
}

// NewBrowser builds a browser. Persisted view state overrides the
// configured defaults, and d.Overrides override both.
func NewBrowser(d Deps) *Browser {
	cfg := d.Config
	b := &Browser{
		settings:      d.Settings,
		picker:        d.Picker,
		watcher:       d.Watcher,
		cfg:           cfg,
		overrides:     d.Overrides,
		log:           logging.Named("browser"),
		updates:       make(chan struct{}, 1),
		selections:    events.NewBroadcaster[SelectionState](16),
		notifications: events.NewBroadcaster[Notification](16),
		done:          make(chan struct{}),
	}

	state := b.initialViewState()
	b.view = view.NewEngine(state, cfg.Browser.Locale)
	b.layout = virtual.NewEngine(virtual.Config{
		GridItemSize:    cfg.Layout.GridItemSize,
		GridGap:         cfg.Layout.GridGap,
		ListRowHeight:   cfg.Layout.ListRowHeight,
		DetailRowHeight: cfg.Layout.DetailRowHeight,
		Overscan:        cfg.Layout.OverscanRows,
	}, state.Mode)

	b.loop = NewLoop(b.publish)
	b.nav = NewNavigator(b.loop, d.Discoverer, cfg.Browser.HistorySize)
	b.sel = NewSelection(b.loop, d.Resolver, b.notify)
	b.thumbs = NewMaterializer(b.loop, d.Thumbnails, nil)

	b.nav.OnEvent(b.onNavEvent)
	b.view.OnChange(b.onViewChange)
	b.sel.OnChange(b.onSelectionChange)
	b.layout.OnScroll(func(row, offset int) {
		b.scroll = ScrollRequest{Seq: b.scroll.Seq + 1, Row: row, Offset: offset}
	})

	b.publish()
	if b.watcher != nil {
		go b.watch()
	}
	return b
}

func (b *Browser) initialViewState() view.State {
	bc := b.cfg.Browser
	mode, _ := view.ParseMode(bc.ViewMode)
	sortKey, _ := view.ParseSortKey(bc.SortKey)
	order, _ := view.ParseSortOrder(bc.SortOrder)
	if b.settings != nil {
		if m, ok := view.ParseMode(b.settings.Get(store.KeyViewMode, "")); ok {
			mode = m
		}
		if k, ok := view.ParseSortKey(b.settings.Get(store.KeySortKey, "")); ok {
			sortKey = k
		}
		if o, ok := view.ParseSortOrder(b.settings.Get(store.KeySortOrder, "")); ok {
			order = o
		}
	}
	ov := b.overrides
	if ov.Mode != nil {
		mode = *ov.Mode
	}
	if ov.Key != nil {
		sortKey = *ov.Key
	}
	if ov.Order != nil {
		order = *ov.Order
	}
	return view.State{Mode: mode, Key: sortKey, Order: order}
}

// Loop-side wiring.

func (b *Browser) onNavEvent(ev NavEvent) {
	switch ev.Kind {
	case NavPathChanged:
		b.thumbs.Reset()
		b.scrollTop()
		if ev.Path == "" {
			b.follow("")
			return
		}
		b.photoSeq++
		b.sel.EnterDirectory()
		b.view.SetEntries(ev.Entries)
		b.persist(store.KeyLastFolder, ev.Path)
		b.follow(ev.Path)
	case NavEntriesReloaded:
		b.view.SetEntries(ev.Entries)
	case NavLoadFailed:
		if b.nav.Current() == "" && b.view.Source() == view.FromDirectory {
			b.sel.EnterDirectory()
			b.view.SetEntries(nil)
		}
		b.notify(ev.Err)
	}
}

func (b *Browser) onViewChange(ch view.Change) {
	switch ch.Kind {
	case view.ItemsChanged:
		b.sel.ReplaceListing(ch.Items)
		b.layout.SetCount(len(ch.Items))
	case view.ModeChanged:
		b.layout.SetMode(ch.State.Mode)
		if i := view.IndexOf(ch.Items, b.sel.Cursor()); i >= 0 {
			b.layout.ScrollToIndex(i)
		}
	}
	b.reconcile()
}

func (b *Browser) onSelectionChange(st SelectionState) {
	if st.Photo != nil && len(st.Photo.Thumbnail) > 0 {
		b.thumbs.Seed(st.Photo.Path, st.Photo.Thumbnail)
	}
	b.selections.Publish(st)
}

// scrollTop returns the viewport to the first row of a new listing.
func (b *Browser) scrollTop() {
	b.layout.SetViewport(b.viewportH, 0)
	b.scroll = ScrollRequest{Seq: b.scroll.Seq + 1}
}

// reconcile requests thumbnails for the visible window.
func (b *Browser) reconcile() {
	w := b.layout.Window()
	if w.Empty() {
		return
	}
	items := b.view.Items()
	end := min(w.EndIndex, len(items))
	if w.FirstIndex >= end {
		return
	}
	b.thumbs.Reconcile(items[w.FirstIndex:end])
}

func (b *Browser) follow(dir string) {
	if b.watcher == nil || !b.cfg.Watcher.Enabled {
		return
	}
	if err := b.watcher.Follow(dir); err != nil {
		b.log.Warn("cannot watch directory", zap.String("path", dir), zap.Error(err))
	}
}

func (b *Browser) persist(key, value string) {
	if b.settings == nil {
		return
	}
	if err := b.settings.Set(key, value); err != nil {
		b.log.Warn("cannot save setting", zap.String("key", key), zap.Error(err))
	}
}

func (b *Browser) persistView() {
	st := b.view.State()
	b.persist(store.KeyViewMode, st.Mode.String())
	b.persist(store.KeySortKey, st.Key.String())
	b.persist(store.KeySortOrder, st.Order.String())
}

func (b *Browser) notify(err error) {
	if err == nil {
		return
	}
	b.notifications.Publish(notificationFor(err))
}

// publish runs after every loop task.
func (b *Browser) publish() {
	b.version++
	items := b.view.Items()
	s := &Snapshot{
		Version:   b.version,
		Nav:       b.nav.State(),
		View:      b.view.State(),
		Source:    b.view.Source(),
		Items:     items,
		Selection: b.sel.State(),
		Cursor:    view.IndexOf(items, b.sel.Cursor()),
		Geometry:  b.layout.Geometry(),
		Window:    b.layout.Window(),
		Scroll:    b.scroll,
	}
	b.snap.Store(s)
	select {
	case b.updates <- struct{}{}:
	default:
	}
}

func (b *Browser) watch() {
	for {
		select {
		case <-b.done:
			return
		case dir := <-b.watcher.Changes():
			b.loop.Post(func() {
				st := b.nav.State()
				if st.CurrentPath != dir || st.Status == StatusLoading {
					return
				}
				debug.Log(debug.NAV, "auto refresh %s", dir)
				_ = b.nav.Refresh()
			})
		}
	}
}

// call runs fn on the loop and returns its error, or ErrClosed.
func (b *Browser) call(fn func() error) error {
	var err error
	if !b.loop.Call(func() { err = fn() }) {
		return ErrClosed
	}
	return err
}

// Start opens initial, or the last folder when initial is empty and
// restoring is enabled. A missing last folder is not an error.
func (b *Browser) Start(initial string) error {
	if initial != "" {
		return b.NavigateToDirectory(initial)
	}
	if !b.cfg.Browser.RestoreLastPath || b.settings == nil {
		return nil
	}
	last := b.settings.Get(store.KeyLastFolder, "")
	if last == "" {
		return nil
	}
	return b.NavigateToDirectory(last)
}

// NavigateToDirectory starts loading path.
func (b *Browser) NavigateToDirectory(path string) error {
	return b.call(func() error { return b.nav.NavigateTo(path) })
}

// NavigateUp opens the parent directory.
func (b *Browser) NavigateUp() error {
	return b.call(b.nav.Up)
}

// NavigateBack reports false when history is empty.
func (b *Browser) NavigateBack() bool {
	ok := false
	b.loop.Call(func() { ok = b.nav.Back() })
	return ok
}

// NavigateForward reports false when there is no forward history.
func (b *Browser) NavigateForward() bool {
	ok := false
	b.loop.Call(func() { ok = b.nav.Forward() })
	return ok
}

// Refresh lists the current directory again.
func (b *Browser) Refresh() error {
	return b.call(b.nav.Refresh)
}

// SetViewMode switches between list, detail and grid.
func (b *Browser) SetViewMode(m view.Mode) {
	b.loop.Call(func() {
		if b.view.SetViewMode(m) {
			b.persistView()
		}
	})
}

// SetSort changes the ordering.
func (b *Browser) SetSort(k view.SortKey, order view.SortOrder) {
	b.loop.Call(func() {
		if b.view.SetSort(k, order) {
			b.persistView()
		}
	})
}

// OpenFolder asks the picker for a directory and opens it.
func (b *Browser) OpenFolder(ctx context.Context) error {
	if b.picker == nil {
		return ErrNoPicker
	}
	path, err := b.picker.PickDirectory(ctx)
	if err != nil {
		err = &DialogError{Err: err}
		b.notify(err)
		return err
	}
	if path == "" {
		return nil
	}
	return b.NavigateToDirectory(path)
}

// OpenLastFolder opens the folder recorded by the last successful navigation.
func (b *Browser) OpenLastFolder() error {
	last := ""
	if b.settings != nil {
		last = b.settings.Get(store.KeyLastFolder, "")
	}
	if last == "" {
		b.notify(ErrNoLastFolder)
		return ErrNoLastFolder
	}
	return b.NavigateToDirectory(last)
}

// OpenPhotos leaves directory mode and shows paths as a flat photo list.
// Files that fail to resolve are reported and left out.
func (b *Browser) OpenPhotos(paths []string) error {
	if len(paths) == 0 {
		return nil
	}
	return b.call(func() error {
		b.nav.Leave()
		b.photoSeq++
		seq := b.photoSeq
		b.sel.EnterPhotos(nil)
		b.view.SetPhotos(nil)

		resolver := b.sel.resolver
		b.loop.Go(func(ctx context.Context) func() {
			records := make([]*photo.Record, 0, len(paths))
			var errs []error
			for _, p := range paths {
				if ctx.Err() != nil {
					return nil
				}
				r, err := resolver.Resolve(ctx, p)
				if err != nil {
					errs = append(errs, err)
					continue
				}
				records = append(records, r)
			}
			return func() { b.commitPhotos(seq, records, errs) }
		})
		return nil
	})
}

func (b *Browser) commitPhotos(seq uint64, records []*photo.Record, errs []error) {
	if seq != b.photoSeq {
		debug.Log(debug.SELECT, "discarding stale photo list #%d", seq)
		return
	}
	b.sel.EnterPhotos(records)
	b.view.SetPhotos(records)
	for _, r := range records {
		b.thumbs.Seed(r.Path, r.Thumbnail)
	}
	if len(errs) > 0 {
		b.notify(errors.Join(errs...))
	}
}

// SetActiveEntry is a single click on path.
func (b *Browser) SetActiveEntry(path string) bool {
	ok := false
	b.loop.Call(func() { ok = b.sel.SetActiveEntry(path) })
	return ok
}

// Open is a double click: directories are entered, files activated.
func (b *Browser) Open(path string) error {
	return b.call(func() error {
		items := b.view.Items()
		i := view.IndexOf(items, path)
		if i < 0 {
			return nil
		}
		if items[i].IsDir {
			return b.nav.NavigateTo(path)
		}
		b.sel.SetActiveEntry(path)
		return nil
	})
}

// SetSelectedPhoto selects path on behalf of an outside component.
func (b *Browser) SetSelectedPhoto(path string) {
	b.loop.Call(func() {
		b.sel.SetSelectedPhoto(path)
		if i := view.IndexOf(b.view.Items(), path); i >= 0 {
			b.layout.ScrollToIndex(i)
			b.reconcile()
		}
	})
}

// HandleKey applies a navigation key and reports whether it did anything.
func (b *Browser) HandleKey(name key.Name) bool {
	handled := false
	b.loop.Call(func() {
		items := b.view.Items()
		act, target := ResolveKey(KeyInput{
			Name:      name,
			Mode:      b.view.State().Mode,
			Columns:   b.layout.Geometry().Columns,
			Cursor:    view.IndexOf(items, b.sel.Cursor()),
			Items:     items,
			Directory: b.nav.Current() != "",
		})
		debug.Log(debug.HOTKEY, "key %s -> action %d target %d", name, act, target)
		switch act {
		case KeyMove:
			b.sel.MoveCursor(items[target].Path)
			b.layout.ScrollToIndex(target)
			b.reconcile()
			handled = true
		case KeyOpen:
			handled = b.nav.NavigateTo(items[target].Path) == nil
		case KeyUp:
			handled = b.nav.Up() == nil
		}
	})
	return handled
}

// SetViewport reports the container size and scroll offset, in the same
// device-independent units as the layout config.
func (b *Browser) SetViewport(width, height, scroll int) {
	b.loop.Post(func() {
		if width != b.lastWidth {
			b.lastWidth = width
			b.layout.SetWidth(width)
		}
		b.viewportH = height
		b.layout.SetViewport(height, scroll)
		b.reconcile()
	})
}

// Snapshot returns the latest published state.
func (b *Browser) Snapshot() *Snapshot { return b.snap.Load() }

// Thumbnail returns a materialized thumbnail.
func (b *Browser) Thumbnail(path string) (*Thumbnail, bool) { return b.thumbs.Get(path) }

// Updates signals after state changes. Signals coalesce.
func (b *Browser) Updates() <-chan struct{} { return b.updates }

// SubscribeSelection returns a channel of selection changes.
func (b *Browser) SubscribeSelection() <-chan SelectionState { return b.selections.Subscribe() }

// UnsubscribeSelection releases a channel from SubscribeSelection.
func (b *Browser) UnsubscribeSelection(ch <-chan SelectionState) { b.selections.Unsubscribe(ch) }

// Notifications returns a channel of user-visible messages.
func (b *Browser) Notifications() <-chan Notification { return b.notifications.Subscribe() }

// Wait blocks until no work is queued or running.
func (b *Browser) Wait() { b.loop.Drain() }

// Close stops the loop. Pending results are dropped.
func (b *Browser) Close() {
	select {
	case <-b.done:
		return
	default:
	}
	close(b.done)
	b.loop.Close()
	b.selections.Close()
	b.notifications.Close()
}
