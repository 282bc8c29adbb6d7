package app

import (
	"bytes"
	"context"
	"image"
	"sync"
	"sync/atomic"

	"go.uber.org/zap"

	"github.com/justyntemme/photogeoview/internal/debug"
	"github.com/justyntemme/photogeoview/internal/logging"
	"github.com/justyntemme/photogeoview/internal/view"
)

// ThumbnailGenerator produces an encoded thumbnail for a photo.
type ThumbnailGenerator interface {
	Generate(ctx context.Context, path string) ([]byte, error)
}

// Thumbnail is a decoded lookup table entry.
type Thumbnail struct {
	Data  []byte
	Image image.Image
}

// Materializer requests thumbnails for visible items, at most once per path
// per directory epoch. Reconcile and Reset run on the loop goroutine; Get
// may be called from the render goroutine.
type Materializer struct {
	loop *Loop
	gen  ThumbnailGenerator
	log  *zap.Logger

	mu    sync.RWMutex
	table map[string]*Thumbnail

	epoch    uint64
	inflight map[string]struct{}
	failed   map[string]struct{}
	requests atomic.Int64

	onUpdate func(path string)
}

// NewMaterializer creates a materializer. onUpdate runs on the loop after a
// thumbnail lands in the table.
func NewMaterializer(loop *Loop, gen ThumbnailGenerator, onUpdate func(path string)) *Materializer {
	return &Materializer{
		loop:     loop,
		gen:      gen,
		log:      logging.Named("thumbs"),
		table:    make(map[string]*Thumbnail),
		inflight: make(map[string]struct{}),
		failed:   make(map[string]struct{}),
		onUpdate: onUpdate,
	}
}

// Reconcile requests thumbnails for the files among visible that have
// neither a table entry nor an outstanding request. Failed paths are not
// retried until the next Reset.
func (m *Materializer) Reconcile(visible []view.Item) int {
	issued := 0
	for _, it := range visible {
		if it.IsDir {
			continue
		}
		if m.has(it.Path) {
			continue
		}
		if _, ok := m.inflight[it.Path]; ok {
			continue
		}
		if _, ok := m.failed[it.Path]; ok {
			continue
		}
		m.request(it.Path)
		issued++
	}
	if issued > 0 {
		debug.Log(debug.THUMB, "reconcile: %d requested, %d in flight (epoch %d)", issued, len(m.inflight), m.epoch)
	}
	return issued
}

func (m *Materializer) request(path string) {
	m.inflight[path] = struct{}{}
	m.requests.Add(1)
	epoch := m.epoch

	m.loop.Go(func(ctx context.Context) func() {
		data, err := m.gen.Generate(ctx, path)
		var img image.Image
		if err == nil {
			img, _, err = image.Decode(bytes.NewReader(data))
		}
		return func() { m.commit(epoch, path, data, img, err) }
	})
}

func (m *Materializer) commit(epoch uint64, path string, data []byte, img image.Image, err error) {
	if epoch != m.epoch {
		debug.Log(debug.THUMB, "dropping %s from epoch %d (now %d)", path, epoch, m.epoch)
		return
	}
	delete(m.inflight, path)
	if err != nil {
		m.failed[path] = struct{}{}
		m.log.Debug("thumbnail failed", zap.String("path", path), zap.Error(err))
		return
	}
	if !m.store(path, &Thumbnail{Data: data, Image: img}) {
		return
	}
	if m.onUpdate != nil {
		m.onUpdate(path)
	}
}

// Seed stores an already-encoded thumbnail, such as one carried by a
// resolved photo record. Existing entries win.
func (m *Materializer) Seed(path string, data []byte) {
	if len(data) == 0 || m.has(path) {
		return
	}
	if _, ok := m.inflight[path]; ok {
		return
	}
	m.inflight[path] = struct{}{}
	epoch := m.epoch
	m.loop.Go(func(context.Context) func() {
		img, _, err := image.Decode(bytes.NewReader(data))
		return func() { m.commit(epoch, path, data, img, err) }
	})
}

func (m *Materializer) store(path string, t *Thumbnail) bool {
	m.mu.Lock()
	defer m.mu.Unlock()
	if _, ok := m.table[path]; ok {
		return false
	}
	m.table[path] = t
	return true
}

func (m *Materializer) has(path string) bool {
	m.mu.RLock()
	_, ok := m.table[path]
	m.mu.RUnlock()
	return ok
}

// Reset clears the table and starts a new epoch. Results of requests issued
// before the reset are discarded when they arrive.
func (m *Materializer) Reset() {
	m.epoch++
	m.inflight = make(map[string]struct{})
	m.failed = make(map[string]struct{})
	m.mu.Lock()
	m.table = make(map[string]*Thumbnail)
	m.mu.Unlock()
	debug.Log(debug.THUMB, "reset to epoch %d", m.epoch)
}

// Get returns the thumbnail for path.
func (m *Materializer) Get(path string) (*Thumbnail, bool) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	t, ok := m.table[path]
	return t, ok
}

// Len returns the number of thumbnails in the table.
func (m *Materializer) Len() int {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return len(m.table)
}

// InFlight returns the number of outstanding requests. Loop goroutine only.
func (m *Materializer) InFlight() int { return len(m.inflight) }

// Requests returns how many generator requests were issued in total.
func (m *Materializer) Requests() int64 { return m.requests.Load() }

// Epoch returns the current epoch. Loop goroutine only.
func (m *Materializer) Epoch() uint64 { return m.epoch }
