package fs

import (
	"path/filepath"
	"sync"
	"time"

	"github.com/fsnotify/fsnotify"

	"github.com/justyntemme/photogeoview/internal/debug"
)

// DirectoryWatcher follows a single directory and reports, debounced, when its
// children change. Following a new directory drops the previous one.
type DirectoryWatcher struct {
	watcher  *fsnotify.Watcher
	debounce time.Duration

	mu      sync.Mutex
	current string

	changes chan string
	done    chan struct{}
	wg      sync.WaitGroup
}

// NewDirectoryWatcher starts the event loop. A non-positive debounce uses 200ms.
func NewDirectoryWatcher(debounce time.Duration) (*DirectoryWatcher, error) {
	w, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, err
	}
	if debounce <= 0 {
		debounce = 200 * time.Millisecond
	}
	dw := &DirectoryWatcher{
		watcher:  w,
		debounce: debounce,
		changes:  make(chan string, 4),
		done:     make(chan struct{}),
	}
	dw.wg.Add(1)
	go dw.run()
	return dw, nil
}

func (dw *DirectoryWatcher) run() {
	defer dw.wg.Done()

	var timer *time.Timer
	var fire <-chan time.Time
	pending := ""

	for {
		select {
		case <-dw.done:
			if timer != nil {
				timer.Stop()
			}
			return

		case ev, ok := <-dw.watcher.Events:
			if !ok {
				return
			}
			if !ev.Has(fsnotify.Create) && !ev.Has(fsnotify.Remove) &&
				!ev.Has(fsnotify.Rename) && !ev.Has(fsnotify.Write) {
				continue
			}
			dw.mu.Lock()
			cur := dw.current
			dw.mu.Unlock()
			if cur == "" || (filepath.Dir(ev.Name) != cur && ev.Name != cur) {
				continue
			}
			debug.Log(debug.FS, "watch: %s on %s", ev.Op, ev.Name)
			pending = cur
			if timer == nil {
				timer = time.NewTimer(dw.debounce)
			} else {
				timer.Reset(dw.debounce)
			}
			fire = timer.C

		case err, ok := <-dw.watcher.Errors:
			if !ok {
				return
			}
			debug.Log(debug.FS, "watch: error: %v", err)

		case <-fire:
			fire = nil
			select {
			case dw.changes <- pending:
			default:
			}
		}
	}
}

// Follow switches the watch to dir. An empty dir stops watching.
func (dw *DirectoryWatcher) Follow(dir string) error {
	dw.mu.Lock()
	defer dw.mu.Unlock()

	if dir == dw.current {
		return nil
	}
	if dw.current != "" {
		// The old directory may be gone already.
		_ = dw.watcher.Remove(dw.current)
	}
	dw.current = ""
	if dir == "" {
		return nil
	}
	if err := dw.watcher.Add(dir); err != nil {
		return err
	}
	dw.current = dir
	debug.Log(debug.FS, "watch: following %s", dir)
	return nil
}

// Changes delivers the watched directory path after each debounced burst.
func (dw *DirectoryWatcher) Changes() <-chan string {
	return dw.changes
}

// Close stops the event loop and releases the OS watch.
func (dw *DirectoryWatcher) Close() error {
	close(dw.done)
	err := dw.watcher.Close()
	dw.wg.Wait()
	return err
}
