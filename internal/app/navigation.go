package app

import (
	"context"
	"path/filepath"

	"go.uber.org/zap"

	"github.com/justyntemme/photogeoview/internal/debug"
	"github.com/justyntemme/photogeoview/internal/events"
	"github.com/justyntemme/photogeoview/internal/fs"
	"github.com/justyntemme/photogeoview/internal/logging"
	"github.com/justyntemme/photogeoview/internal/pathutil"
)

// Status is the navigation state.
type Status int

const (
	StatusIdle Status = iota
	StatusLoading
	StatusLoaded
	StatusError
)

func (s Status) String() string {
	switch s {
	case StatusLoading:
		return "loading"
	case StatusLoaded:
		return "loaded"
	case StatusError:
		return "error"
	default:
		return "idle"
	}
}

// Discoverer lists a directory.
type Discoverer interface {
	Discover(ctx context.Context, path string) ([]fs.Entry, error)
}

// NavEventKind tells observers what the navigator did.
type NavEventKind int

const (
	NavStatusChanged   NavEventKind = iota // a load started
	NavPathChanged                         // a different directory was committed, or directory mode was left
	NavEntriesReloaded                     // the same directory was listed again
	NavLoadFailed                          // discovery failed; previous state kept
)

// NavEvent is delivered on the loop goroutine.
type NavEvent struct {
	Kind    NavEventKind
	Path    string
	Entries []fs.Entry
	Err     error
}

// NavState is a copy of the navigator's state.
type NavState struct {
	Status      Status
	CurrentPath string
	LoadingPath string
	FailedPath  string // set when the first load failed and there is no directory to fall back to
	Entries     []fs.Entry
	Err         error
	Epoch       uint64
	CanBack     bool
	CanForward  bool
	CanUp       bool
}

type navOp int

const (
	opVisit navOp = iota
	opBack
	opForward
	opRefresh
)

// Navigator owns the current directory, its entries and the history. All
// methods must run on the loop goroutine. History and epoch change only when
// a load commits, so a failed load leaves the previous directory untouched.
type Navigator struct {
	loop *Loop
	disc Discoverer
	hist *History
	log  *zap.Logger

	status      Status
	current     string
	entries     []fs.Entry
	err         error
	failedPath  string
	loadingPath string

	seq   uint64 // latest discovery request
	epoch uint64 // bumped whenever current changes

	observers events.Observers[NavEvent]
}

func NewNavigator(loop *Loop, disc Discoverer, historySize int) *Navigator {
	return &Navigator{
		loop: loop,
		disc: disc,
		hist: NewHistory(historySize),
		log:  logging.Named("nav"),
	}
}

// OnEvent registers fn for navigator events.
func (n *Navigator) OnEvent(fn func(NavEvent)) (remove func()) {
	return n.observers.Add(fn)
}

func cleanPath(p string) string {
	if pathutil.IsWindows(p) {
		return pathutil.Clean(p)
	}
	return filepath.Clean(p)
}

// NavigateTo starts loading path. Navigating to the current directory
// reloads it without touching history.
func (n *Navigator) NavigateTo(path string) error {
	if path == "" {
		return ErrEmptyPath
	}
	path = cleanPath(path)
	if path == n.current {
		n.load(path, opRefresh)
		return nil
	}
	n.load(path, opVisit)
	return nil
}

// Up navigates to the parent directory. It is a no-op at a root.
func (n *Navigator) Up() error {
	if n.current == "" {
		return ErrNoDirectory
	}
	parent, ok := pathutil.Parent(n.current)
	if !ok {
		debug.Log(debug.NAV, "up: %s is a root", n.current)
		return nil
	}
	n.load(parent, opVisit)
	return nil
}

// Back reports false when there is nowhere to go back to.
func (n *Navigator) Back() bool {
	target, ok := n.hist.PeekBack()
	if !ok {
		return false
	}
	n.load(target, opBack)
	return true
}

// Forward reports false when there is nowhere to go forward to.
func (n *Navigator) Forward() bool {
	target, ok := n.hist.PeekForward()
	if !ok {
		return false
	}
	n.load(target, opForward)
	return true
}

// Refresh lists the current directory again. After a failed first load it
// retries the failed path.
func (n *Navigator) Refresh() error {
	switch {
	case n.current != "":
		n.load(n.current, opRefresh)
	case n.failedPath != "":
		n.load(n.failedPath, opVisit)
	default:
		return ErrNoDirectory
	}
	return nil
}

// Leave exits directory mode, remembering the directory in history. Any
// load still in flight is discarded.
func (n *Navigator) Leave() {
	n.seq++
	left := n.current
	if left != "" {
		n.hist.Visit(left)
		n.epoch++
	}
	n.current = ""
	n.entries = nil
	n.err = nil
	n.failedPath = ""
	n.loadingPath = ""
	n.status = StatusIdle
	n.observers.Notify(NavEvent{Kind: NavPathChanged})
}

func (n *Navigator) load(path string, op navOp) {
	n.seq++
	seq := n.seq
	n.status = StatusLoading
	n.loadingPath = path
	debug.Log(debug.NAV, "load #%d %s (op %d)", seq, path, op)
	n.observers.Notify(NavEvent{Kind: NavStatusChanged, Path: path})

	n.loop.Go(func(ctx context.Context) func() {
		entries, err := n.disc.Discover(ctx, path)
		return func() { n.commit(seq, path, op, entries, err) }
	})
}

func (n *Navigator) commit(seq uint64, path string, op navOp, entries []fs.Entry, err error) {
	if seq != n.seq {
		debug.Log(debug.NAV, "discarding stale load #%d %s (latest #%d)", seq, path, n.seq)
		return
	}
	n.loadingPath = ""

	if err != nil {
		n.status = StatusError
		n.err = err
		if n.current == "" {
			n.failedPath = path
			n.entries = nil
		}
		n.log.Warn("discovery failed", zap.String("path", path), zap.Error(err))
		n.observers.Notify(NavEvent{Kind: NavLoadFailed, Path: path, Err: err})
		return
	}

	prev := n.current
	switch op {
	case opVisit:
		if path != prev {
			n.hist.Visit(prev)
		}
	case opBack:
		n.hist.Back(prev)
	case opForward:
		n.hist.Forward(prev)
	}

	n.status = StatusLoaded
	n.err = nil
	n.failedPath = ""
	n.entries = entries

	if path == prev {
		n.observers.Notify(NavEvent{Kind: NavEntriesReloaded, Path: path, Entries: entries})
		return
	}
	n.current = path
	n.epoch++
	n.log.Debug("directory loaded", zap.String("path", path), zap.Int("entries", len(entries)))
	n.observers.Notify(NavEvent{Kind: NavPathChanged, Path: path, Entries: entries})
}

// State returns a copy of the navigation state.
func (n *Navigator) State() NavState {
	_, canUp := pathutil.Parent(n.current)
	return NavState{
		Status:      n.status,
		CurrentPath: n.current,
		LoadingPath: n.loadingPath,
		FailedPath:  n.failedPath,
		Entries:     n.entries,
		Err:         n.err,
		Epoch:       n.epoch,
		CanBack:     n.hist.CanBack(),
		CanForward:  n.hist.CanForward(),
		CanUp:       n.current != "" && canUp,
	}
}

// Current returns the open directory, or "".
func (n *Navigator) Current() string { return n.current }

// Epoch returns the directory epoch.
func (n *Navigator) Epoch() uint64 { return n.epoch }
