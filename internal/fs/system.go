// Package fs lists directory contents for the browser and watches the
// current directory for changes.
package fs

import (
	"context"
	"errors"
	"io"
	iofs "io/fs"
	"os"
	"path/filepath"
	"sort"
	"strings"
	"sync"
	"time"

	"github.com/charlievieth/fastwalk"

	"github.com/justyntemme/photogeoview/internal/debug"
)

// Entry is one child of a listed directory.
type Entry struct {
	Path         string
	Name         string
	IsDir        bool
	Size         int64
	ModTime      time.Time
	CapturedTime *time.Time // nil when unknown or not cheaply readable
}

// DefaultExtensions are the photo formats shown in a listing.
var DefaultExtensions = []string{".jpg", ".jpeg", ".png", ".tiff", ".tif", ".webp"}

// Options controls what Discover returns.
type Options struct {
	Extensions       []string // lower-case, dot-prefixed; nil means DefaultExtensions
	ShowHidden       bool
	ReadCapturedTime bool
}

// System discovers directory entries with fastwalk.
type System struct {
	exts     map[string]bool
	opts     Options
	captured func(path string) (time.Time, bool)
}

func NewSystem(opts Options) *System {
	exts := opts.Extensions
	if exts == nil {
		exts = DefaultExtensions
	}
	s := &System{exts: make(map[string]bool, len(exts)), opts: opts, captured: CapturedTime}
	for _, e := range exts {
		s.exts[strings.ToLower(e)] = true
	}
	return s
}

// IsPhoto reports whether name has one of the listed photo extensions.
func (s *System) IsPhoto(name string) bool {
	return s.exts[strings.ToLower(filepath.Ext(name))]
}

// Discover lists the directories and photos directly inside path. Entries come
// back directories first, then by case-insensitive name. Failures are
// *DiscoveryError values.
func (s *System) Discover(ctx context.Context, path string) ([]Entry, error) {
	debug.Log(debug.FS, "discover: reading %q", path)

	if err := checkDir(path); err != nil {
		return nil, classify(path, err)
	}

	var result []Entry
	var mu sync.Mutex
	conf := &fastwalk.Config{Follow: true}
	pathLen := len(path)

	err := fastwalk.Walk(conf, path, func(fullPath string, d iofs.DirEntry, err error) error {
		if ctxErr := ctx.Err(); ctxErr != nil {
			return ctxErr
		}
		if fullPath == path {
			if err != nil {
				return err
			}
			return nil
		}
		if err != nil {
			debug.Log(debug.FS, "discover: walk error at %q: %v", fullPath, err)
			return nil
		}

		// Depth 1 only: anything with a separator past the root is nested.
		relStart := pathLen
		if relStart < len(fullPath) && (fullPath[relStart] == '/' || fullPath[relStart] == '\\') {
			relStart++
		}
		if strings.ContainsAny(fullPath[relStart:], "/\\") {
			if d.IsDir() {
				return fastwalk.SkipDir
			}
			return nil
		}

		name := d.Name()
		if !s.opts.ShowHidden && strings.HasPrefix(name, ".") {
			if d.IsDir() {
				return fastwalk.SkipDir
			}
			return nil
		}

		info, err := fastwalk.StatDirEntry(fullPath, d)
		if err != nil {
			// Broken symlink: fall back to the link itself.
			if info, err = os.Lstat(fullPath); err != nil {
				return nil
			}
		}

		isDir := info.IsDir()
		if !isDir && !s.IsPhoto(name) {
			return nil
		}

		e := Entry{
			Path:    fullPath,
			Name:    name,
			IsDir:   isDir,
			Size:    info.Size(),
			ModTime: info.ModTime(),
		}
		if !isDir && s.opts.ReadCapturedTime && s.captured != nil {
			if t, ok := s.captured(fullPath); ok {
				e.CapturedTime = &t
			}
		}

		mu.Lock()
		result = append(result, e)
		mu.Unlock()

		if d.IsDir() {
			return fastwalk.SkipDir
		}
		return nil
	})
	if err != nil {
		debug.Log(debug.FS, "discover: walk failed: %v", err)
		return nil, classify(path, err)
	}

	sortEntries(result)
	debug.Log(debug.FS, "discover: %d entries in %q", len(result), path)
	return result, nil
}

// checkDir verifies path is a readable directory so failures map to a kind
// before the walk starts.
func checkDir(path string) error {
	info, err := os.Stat(path)
	if err != nil {
		return err
	}
	if !info.IsDir() {
		return ErrNotDirectory
	}
	f, err := os.Open(path)
	if err != nil {
		return err
	}
	defer f.Close()
	if _, err := f.Readdirnames(1); err != nil && !errors.Is(err, io.EOF) {
		return err
	}
	return nil
}

func sortEntries(entries []Entry) {
	sort.SliceStable(entries, func(i, j int) bool {
		if entries[i].IsDir != entries[j].IsDir {
			return entries[i].IsDir
		}
		return strings.ToLower(entries[i].Name) < strings.ToLower(entries[j].Name)
	})
}
