package app

import (
	"context"

	"go.uber.org/zap"

	"github.com/justyntemme/photogeoview/internal/debug"
	"github.com/justyntemme/photogeoview/internal/events"
	"github.com/justyntemme/photogeoview/internal/logging"
	"github.com/justyntemme/photogeoview/internal/photo"
	"github.com/justyntemme/photogeoview/internal/view"
)

// Resolver loads a full photo record.
type Resolver interface {
	Resolve(ctx context.Context, path string) (*photo.Record, error)
}

// SelectionState is the read-only selection published to panels and the map.
type SelectionState struct {
	DirectoryMode     bool
	ActiveEntryPath   string
	SelectedPhotoPath string
	Loading           bool
	LoadingPath       string
	Photo             *photo.Record // record for SelectedPhotoPath once resolved
}

// Selection owns the active entry cursor, the selected photo and the
// per-directory record cache. All methods must run on the loop goroutine.
//
// Every activation and every external selection takes a new sequence
// number; a resolution result commits only if its number is still the
// latest, so a slow earlier load can never overwrite a later choice.
type Selection struct {
	loop     *Loop
	resolver Resolver
	log      *zap.Logger
	onError  func(error)

	dirMode  bool
	active   string
	selected string
	loading  string
	seq      uint64

	cache   map[string]*photo.Record
	listing map[string]bool // path -> isDir for the current sequence
	first   string

	observers events.Observers[SelectionState]
}

func NewSelection(loop *Loop, resolver Resolver, onError func(error)) *Selection {
	return &Selection{
		loop:     loop,
		resolver: resolver,
		log:      logging.Named("selection"),
		onError:  onError,
		cache:    make(map[string]*photo.Record),
		listing:  make(map[string]bool),
	}
}

// OnChange registers fn for selection changes.
func (s *Selection) OnChange(fn func(SelectionState)) (remove func()) {
	return s.observers.Add(fn)
}

func (s *Selection) notify() {
	s.observers.Notify(s.State())
}

// State returns the current selection.
func (s *Selection) State() SelectionState {
	st := SelectionState{
		DirectoryMode:     s.dirMode,
		ActiveEntryPath:   s.active,
		SelectedPhotoPath: s.selected,
		Loading:           s.loading != "",
		LoadingPath:       s.loading,
	}
	if s.selected != "" {
		st.Photo = s.cache[s.selected]
	}
	return st
}

// Cursor is the highlighted path: the active entry in directory mode, the
// selected photo otherwise.
func (s *Selection) Cursor() string {
	if s.dirMode {
		return s.active
	}
	return s.selected
}

// Record returns a cached record.
func (s *Selection) Record(path string) (*photo.Record, bool) {
	r, ok := s.cache[path]
	return r, ok
}

// EnterDirectory clears everything tied to the previous directory and
// switches to directory mode. Pending resolutions are invalidated.
func (s *Selection) EnterDirectory() {
	s.reset(true)
}

// EnterPhotos switches to flat photo mode with records already resolved.
// The first record becomes the selection.
func (s *Selection) EnterPhotos(records []*photo.Record) {
	s.reset(false)
	for _, r := range records {
		if r != nil {
			s.cache[r.Path] = r
		}
	}
	if len(records) > 0 && records[0] != nil {
		s.selected = records[0].Path
	}
	s.notify()
}

// AddPhoto caches a record resolved for flat mode. The first photo added to
// an empty selection becomes selected.
func (s *Selection) AddPhoto(r *photo.Record) {
	s.cache[r.Path] = r
	if s.selected == "" {
		s.selected = r.Path
	}
	s.notify()
}

func (s *Selection) reset(dirMode bool) {
	s.seq++
	s.dirMode = dirMode
	s.active = ""
	s.selected = ""
	s.loading = ""
	s.first = ""
	s.cache = make(map[string]*photo.Record)
	s.listing = make(map[string]bool)
	debug.Log(debug.SELECT, "reset (directory mode %v)", dirMode)
}

// ReplaceListing reconciles the cursor with a new ordered sequence. A cursor
// that vanished moves to the first item, or to "" for an empty sequence.
func (s *Selection) ReplaceListing(items []view.Item) {
	s.listing = make(map[string]bool, len(items))
	for _, it := range items {
		s.listing[it.Path] = it.IsDir
	}
	s.first = ""
	if len(items) > 0 {
		s.first = items[0].Path
	}

	cur := &s.selected
	if s.dirMode {
		cur = &s.active
	}
	if _, ok := s.listing[*cur]; ok {
		return
	}
	if *cur == s.first {
		return
	}
	debug.Log(debug.SELECT, "cursor %q gone, resetting to %q", *cur, s.first)
	*cur = s.first
	if !s.dirMode {
		s.seq++
		s.loading = ""
	}
	s.notify()
}

// SetActiveEntry is a click on path. Files are activated; directories only
// move the cursor. It reports false for paths outside the sequence.
func (s *Selection) SetActiveEntry(path string) bool {
	isDir, ok := s.listing[path]
	if !ok {
		return false
	}
	if !s.dirMode {
		s.selectDirect(path)
		return true
	}
	if s.loading == path {
		// Already resolving; its rollback target stays the entry active
		// before the first click.
		if s.active != path {
			s.active = path
			s.notify()
		}
		return true
	}
	prev := s.active
	s.active = path
	if isDir {
		s.notify()
		return true
	}
	s.activate(path, prev)
	return true
}

// MoveCursor moves the cursor without activating anything.
func (s *Selection) MoveCursor(path string) bool {
	if _, ok := s.listing[path]; !ok {
		return false
	}
	if !s.dirMode {
		s.selectDirect(path)
		return true
	}
	if s.active == path {
		return false
	}
	s.active = path
	s.notify()
	return true
}

// activate promotes path to a resolved record and selects it.
func (s *Selection) activate(path, prevActive string) {
	s.seq++
	seq := s.seq

	if _, ok := s.cache[path]; ok {
		s.selected = path
		s.loading = ""
		debug.Log(debug.SELECT, "activate #%d %s (cached)", seq, path)
		s.notify()
		return
	}

	s.loading = path
	debug.Log(debug.SELECT, "activate #%d %s", seq, path)
	s.notify()

	s.loop.Go(func(ctx context.Context) func() {
		rec, err := s.resolver.Resolve(ctx, path)
		return func() { s.commitActivation(seq, path, prevActive, rec, err) }
	})
}

func (s *Selection) commitActivation(seq uint64, path, prevActive string, rec *photo.Record, err error) {
	if seq != s.seq {
		debug.Log(debug.SELECT, "discarding stale resolution #%d %s (latest #%d)", seq, path, s.seq)
		return
	}
	s.loading = ""
	if err != nil {
		s.log.Warn("photo resolution failed", zap.String("path", path), zap.Error(err))
		if s.active == path {
			s.active = prevActive
		}
		s.notify()
		s.reportError(err)
		return
	}
	s.cache[path] = rec
	s.selected = path
	s.notify()
}

// SetSelectedPhoto selects a photo on behalf of an outside component such as
// the map. In directory mode the active entry follows when the photo is part
// of the current sequence.
func (s *Selection) SetSelectedPhoto(path string) {
	s.seq++
	seq := s.seq
	prev, prevActive := s.selected, s.active

	s.selected = path
	s.loading = ""
	if s.dirMode {
		if isDir, ok := s.listing[path]; ok && !isDir {
			s.active = path
		}
	}

	if _, ok := s.cache[path]; ok || path == "" {
		s.notify()
		return
	}

	s.loading = path
	s.notify()
	s.loop.Go(func(ctx context.Context) func() {
		rec, err := s.resolver.Resolve(ctx, path)
		return func() { s.commitExternal(seq, path, prev, prevActive, rec, err) }
	})
}

func (s *Selection) commitExternal(seq uint64, path, prev, prevActive string, rec *photo.Record, err error) {
	if seq != s.seq {
		debug.Log(debug.SELECT, "discarding stale external selection #%d %s", seq, path)
		return
	}
	s.loading = ""
	if err != nil {
		s.log.Warn("photo resolution failed", zap.String("path", path), zap.Error(err))
		if s.selected == path {
			s.selected = prev
		}
		if s.active == path {
			s.active = prevActive
		}
		s.notify()
		s.reportError(err)
		return
	}
	s.cache[path] = rec
	s.notify()
}

// selectDirect selects a photo in flat mode, where records are cached.
func (s *Selection) selectDirect(path string) {
	if s.selected == path {
		return
	}
	s.seq++
	s.selected = path
	s.loading = ""
	s.notify()
}

func (s *Selection) reportError(err error) {
	if s.onError != nil {
		s.onError(err)
	}
}
