package app

import (
	"bytes"
	"context"
	"errors"
	"image"
	"image/color"
	"image/png"
	iofs "io/fs"
	"path/filepath"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"github.com/justyntemme/photogeoview/internal/fs"
	"github.com/justyntemme/photogeoview/internal/photo"
)

// gates holds per-path channels that block a fake until released.
type gates struct {
	mu sync.Mutex
	ch map[string]chan struct{}
}

func (g *gates) hold(path string) {
	g.mu.Lock()
	defer g.mu.Unlock()
	if g.ch == nil {
		g.ch = make(map[string]chan struct{})
	}
	g.ch[path] = make(chan struct{})
}

func (g *gates) release(path string) {
	g.mu.Lock()
	defer g.mu.Unlock()
	if c, ok := g.ch[path]; ok {
		close(c)
		delete(g.ch, path)
	}
}

func (g *gates) wait(ctx context.Context, path string) {
	g.mu.Lock()
	c := g.ch[path]
	g.mu.Unlock()
	if c == nil {
		return
	}
	select {
	case <-c:
	case <-ctx.Done():
	}
}

type fakeDiscoverer struct {
	gates
	mu    sync.Mutex
	dirs  map[string][]fs.Entry
	calls []string
}

func newFakeDiscoverer() *fakeDiscoverer {
	return &fakeDiscoverer{dirs: make(map[string][]fs.Entry)}
}

func (f *fakeDiscoverer) add(dir string, names ...string) {
	f.mu.Lock()
	defer f.mu.Unlock()
	var entries []fs.Entry
	for i, n := range names {
		isDir := filepath.Ext(n) == ""
		entries = append(entries, fs.Entry{
			Path:    filepath.Join(dir, n),
			Name:    n,
			IsDir:   isDir,
			Size:    int64(100 * (i + 1)),
			ModTime: time.Date(2024, 1, 1+i, 0, 0, 0, 0, time.UTC),
		})
	}
	f.dirs[dir] = entries
}

func (f *fakeDiscoverer) Discover(ctx context.Context, path string) ([]fs.Entry, error) {
	f.mu.Lock()
	f.calls = append(f.calls, path)
	f.mu.Unlock()

	f.wait(ctx, path)

	f.mu.Lock()
	defer f.mu.Unlock()
	entries, ok := f.dirs[path]
	if !ok {
		return nil, &fs.DiscoveryError{Kind: fs.NotFound, Path: path, Err: iofs.ErrNotExist}
	}
	return append([]fs.Entry(nil), entries...), nil
}

func (f *fakeDiscoverer) callCount() int {
	f.mu.Lock()
	defer f.mu.Unlock()
	return len(f.calls)
}

var errBroken = errors.New("broken file")

type fakeResolver struct {
	gates
	mu    sync.Mutex
	fail  map[string]bool
	calls map[string]int
}

func newFakeResolver() *fakeResolver {
	return &fakeResolver{fail: make(map[string]bool), calls: make(map[string]int)}
}

func (f *fakeResolver) Resolve(ctx context.Context, path string) (*photo.Record, error) {
	f.mu.Lock()
	f.calls[path]++
	fail := f.fail[path]
	f.mu.Unlock()

	f.wait(ctx, path)

	if fail {
		return nil, &photo.ResolutionError{Path: path, Err: errBroken}
	}
	return &photo.Record{Path: path, Filename: filepath.Base(path), FileSize: 1}, nil
}

func (f *fakeResolver) count(path string) int {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.calls[path]
}

type fakeGenerator struct {
	gates
	mu    sync.Mutex
	fail  map[string]bool
	calls map[string]int
	data  []byte
}

func newFakeGenerator(t *testing.T) *fakeGenerator {
	return &fakeGenerator{fail: make(map[string]bool), calls: make(map[string]int), data: tinyPNG(t)}
}

func (f *fakeGenerator) Generate(ctx context.Context, path string) ([]byte, error) {
	f.mu.Lock()
	f.calls[path]++
	fail := f.fail[path]
	f.mu.Unlock()

	f.wait(ctx, path)

	if fail {
		return nil, &photo.ThumbnailError{Path: path, Err: errBroken}
	}
	return f.data, nil
}

func (f *fakeGenerator) count(path string) int {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.calls[path]
}

func (f *fakeGenerator) total() int {
	f.mu.Lock()
	defer f.mu.Unlock()
	n := 0
	for _, c := range f.calls {
		n += c
	}
	return n
}

type memSettings struct {
	mu sync.Mutex
	m  map[string]string
}

func newMemSettings() *memSettings { return &memSettings{m: make(map[string]string)} }

func (s *memSettings) Get(key, def string) string {
	s.mu.Lock()
	defer s.mu.Unlock()
	if v, ok := s.m[key]; ok {
		return v
	}
	return def
}

func (s *memSettings) Set(key, value string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.m[key] = value
	return nil
}

type fakeWatcher struct {
	mu       sync.Mutex
	followed []string
	changes  chan string
}

func newFakeWatcher() *fakeWatcher { return &fakeWatcher{changes: make(chan string, 1)} }

func (w *fakeWatcher) Follow(dir string) error {
	w.mu.Lock()
	defer w.mu.Unlock()
	w.followed = append(w.followed, dir)
	return nil
}

func (w *fakeWatcher) Changes() <-chan string { return w.changes }

func (w *fakeWatcher) last() string {
	w.mu.Lock()
	defer w.mu.Unlock()
	if len(w.followed) == 0 {
		return ""
	}
	return w.followed[len(w.followed)-1]
}

type fakePicker struct {
	path string
	err  error
}

func (p fakePicker) PickDirectory(context.Context) (string, error) { return p.path, p.err }

func tinyPNG(t *testing.T) []byte {
	t.Helper()
	img := image.NewRGBA(image.Rect(0, 0, 2, 2))
	img.Set(0, 0, color.RGBA{R: 255, A: 255})
	var buf bytes.Buffer
	require.NoError(t, png.Encode(&buf, img))
	return buf.Bytes()
}

// newTestLoop returns a loop closed at the end of the test.
func newTestLoop(t *testing.T) *Loop {
	l := NewLoop(nil)
	t.Cleanup(l.Close)
	return l
}

// on runs fn on the loop goroutine.
func on(t *testing.T, l *Loop, fn func()) {
	t.Helper()
	require.True(t, l.Call(fn))
}
