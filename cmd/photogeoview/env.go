package main

import (
	"fmt"
	"path/filepath"
	"time"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/justyntemme/photogeoview/internal/app"
	"github.com/justyntemme/photogeoview/internal/config"
	"github.com/justyntemme/photogeoview/internal/fs"
	"github.com/justyntemme/photogeoview/internal/logging"
	"github.com/justyntemme/photogeoview/internal/photo"
	"github.com/justyntemme/photogeoview/internal/store"
	"github.com/justyntemme/photogeoview/internal/view"
)

// globalFlags are shared by every command.
type globalFlags struct {
	configPath string
	debug      bool
	view       string
	sort       string
	desc       bool
}

// env is the loaded configuration plus the collaborators built from it.
type env struct {
	cfg       config.Config
	overrides app.ViewOverrides
	dir       string
	log       *zap.Logger
	close     []func() error
}

func loadEnv(cmd *cobra.Command, g *globalFlags) (*env, error) {
	m := config.NewManager(g.configPath)
	if err := m.Load(); err != nil {
		return nil, fmt.Errorf("load config: %w", err)
	}
	cfg := m.Get()
	ov, err := applyOverrides(cmd, &cfg, g)
	if err != nil {
		return nil, err
	}
	if g.debug {
		cfg.Logging.Level = "debug"
	}
	if err := logging.Init(logging.Config{
		Level:      cfg.Logging.Level,
		Format:     cfg.Logging.Format,
		OutputPath: cfg.Logging.Output,
	}); err != nil {
		return nil, fmt.Errorf("init logging: %w", err)
	}
	e := &env{cfg: cfg, overrides: ov, dir: m.Dir(), log: logging.Named("cli")}
	if perr := m.ParseError(); perr != nil {
		e.log.Warn("config file ignored", zap.String("path", m.Path()), zap.Error(perr))
	}
	return e, nil
}

// applyOverrides lets explicitly set flags win over the config file. The
// returned overrides also win over view state persisted by earlier runs.
func applyOverrides(cmd *cobra.Command, cfg *config.Config, g *globalFlags) (app.ViewOverrides, error) {
	var ov app.ViewOverrides
	flags := cmd.Flags()
	if flags.Changed("view") {
		m, ok := view.ParseMode(g.view)
		if !ok {
			return ov, fmt.Errorf("unknown view mode %q (want list, detail or grid)", g.view)
		}
		cfg.Browser.ViewMode = g.view
		ov.Mode = &m
	}
	if flags.Changed("sort") {
		k, ok := view.ParseSortKey(g.sort)
		if !ok {
			return ov, fmt.Errorf("unknown sort key %q (want name or date)", g.sort)
		}
		cfg.Browser.SortKey = g.sort
		ov.Key = &k
	}
	if flags.Changed("desc") {
		o := view.Asc
		if g.desc {
			o = view.Desc
		}
		cfg.Browser.SortOrder = o.String()
		ov.Order = &o
	}
	return ov, nil
}

func (e *env) onClose(fn func() error) { e.close = append(e.close, fn) }

// Close releases everything opened through e, newest first.
func (e *env) Close() {
	for i := len(e.close) - 1; i >= 0; i-- {
		if err := e.close[i](); err != nil {
			e.log.Warn("close failed", zap.Error(err))
		}
	}
	e.close = nil
	_ = logging.Sync()
}

func (e *env) system() *fs.System {
	exts := append([]string(nil), fs.DefaultExtensions...)
	if photo.HEICSupported() {
		exts = append(exts, ".heic", ".heif")
	}
	return fs.NewSystem(fs.Options{
		Extensions:       exts,
		ShowHidden:       e.cfg.Browser.ShowHidden,
		ReadCapturedTime: e.cfg.Browser.ReadCapturedTime,
	})
}

// generator builds the thumbnail generator, backed by the disk cache when
// enabled. A cache that cannot be opened is logged and skipped.
func (e *env) generator() *photo.Generator {
	t := e.cfg.Thumbnails
	var cache photo.Cache
	if t.DiskCache {
		path := t.CachePath
		if path == "" {
			path = filepath.Join(e.dir, "thumbs.db")
		}
		dc, err := photo.OpenDiskCache(path)
		if err != nil {
			e.log.Warn("thumbnail cache disabled", zap.String("path", path), zap.Error(err))
		} else {
			cache = dc
			e.onClose(dc.Close)
		}
	}
	return photo.NewGenerator(t.MaxSize, t.Quality, t.Workers, cache)
}

// browserDeps wires the full set of collaborators for the window.
func (e *env) browserDeps(picker app.DirectoryPicker) app.Deps {
	gen := e.generator()
	d := app.Deps{
		Discoverer: e.system(),
		Resolver:   photo.NewResolver(gen),
		Thumbnails: gen,
		Picker:     picker,
		Config:     e.cfg,
		Overrides:  e.overrides,
	}

	if db, err := store.Open(filepath.Join(e.dir, "settings.db")); err != nil {
		e.log.Warn("settings unavailable", zap.Error(err))
	} else {
		d.Settings = db
		e.onClose(db.Close)
	}

	if e.cfg.Watcher.Enabled {
		w, err := fs.NewDirectoryWatcher(time.Duration(e.cfg.Watcher.DebounceMs) * time.Millisecond)
		if err != nil {
			e.log.Warn("directory watcher disabled", zap.Error(err))
		} else {
			d.Watcher = w
			e.onClose(w.Close)
		}
	}
	return d
}
