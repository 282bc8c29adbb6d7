package app

import (
	"context"
	"errors"
	"image"
	"os"
	"sync/atomic"

	"gioui.org/app"
	"gioui.org/op"
	"gioui.org/unit"
	"go.uber.org/zap"

	"github.com/justyntemme/photogeoview/internal/config"
	"github.com/justyntemme/photogeoview/internal/debug"
	"github.com/justyntemme/photogeoview/internal/fs"
	"github.com/justyntemme/photogeoview/internal/logging"
	"github.com/justyntemme/photogeoview/internal/pathutil"
	"github.com/justyntemme/photogeoview/internal/ui"
)

// Options control what the window opens with.
type Options struct {
	Title   string
	Initial string   // directory to open; "" restores the last folder
	Photos  []string // opened as a flat photo list instead of a directory
}

// Orchestrator runs the window. It renders browser snapshots and turns UI
// events into browser calls; it holds no browsing state of its own.
type Orchestrator struct {
	window  *app.Window
	browser *Browser
	ui      *ui.Renderer
	roots   []fs.Root
	log     *zap.Logger

	viewport ui.Viewport
	editPath atomic.Bool
}

// NewOrchestrator prepares a window for b. When picker is non-nil and the
// platform has no folder dialog, the path bar opens instead.
func NewOrchestrator(b *Browser, picker *DialogPicker, cfg config.Config, debugUI bool) *Orchestrator {
	r := ui.NewRenderer(ui.Metrics{
		GridItemSize:    cfg.Layout.GridItemSize,
		GridGap:         cfg.Layout.GridGap,
		ListRowHeight:   cfg.Layout.ListRowHeight,
		DetailRowHeight: cfg.Layout.DetailRowHeight,
	}, config.NewHotkeyMatcher(cfg.Hotkeys))
	r.Debug = debugUI
	r.Thumbs = func(path string) (image.Image, bool) {
		t, ok := b.Thumbnail(path)
		if !ok || t.Image == nil {
			return nil, false
		}
		return t.Image, true
	}

	o := &Orchestrator{
		window:  new(app.Window),
		browser: b,
		ui:      r,
		roots:   fs.Roots(),
		log:     logging.Named("window"),
	}
	if picker != nil {
		picker.Fallback = func() {
			o.editPath.Store(true)
			o.window.Invalidate()
		}
	}
	return o
}

// Run opens the window and blocks until it is closed.
func (o *Orchestrator) Run(opts Options) error {
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	title := opts.Title
	if title == "" {
		title = "PhotoGeoView"
	}
	o.window.Option(app.Title(title), app.Size(unit.Dp(1100), unit.Dp(720)))

	go o.forwardNotifications(ctx, o.browser.Notifications())
	go o.invalidateOnUpdate(ctx)

	var err error
	if len(opts.Photos) > 0 {
		err = o.browser.OpenPhotos(opts.Photos)
	} else {
		err = o.browser.Start(opts.Initial)
	}
	if err != nil {
		o.log.Warn("initial open failed", zap.Error(err))
	}

	var ops op.Ops
	for {
		switch e := o.window.Event().(type) {
		case app.DestroyEvent:
			return e.Err
		case app.FrameEvent:
			snap := o.browser.Snapshot()
			if o.editPath.Swap(false) {
				o.ui.EditPath(snap.Nav.CurrentPath)
			}
			state := stateFor(snap, o.roots)
			gtx := app.NewContext(&ops, e)
			evt := o.ui.Layout(gtx, &state)
			o.syncViewport()
			o.handleUIEvent(ctx, evt)
			e.Frame(gtx.Ops)
		}
	}
}

// syncViewport reports a resized or scrolled body to the layout engine.
func (o *Orchestrator) syncViewport() {
	vp := o.ui.Viewport()
	if vp == o.viewport {
		return
	}
	o.viewport = vp
	debug.Log(debug.LAYOUT, "viewport %dx%d scroll=%d", vp.Width, vp.Height, vp.Scroll)
	o.browser.SetViewport(vp.Width, vp.Height, vp.Scroll)
}

func (o *Orchestrator) handleUIEvent(ctx context.Context, evt ui.UIEvent) {
	b := o.browser
	var err error
	switch evt.Action {
	case ui.ActionNone:
		return
	case ui.ActionNavigate:
		err = b.NavigateToDirectory(evt.Path)
	case ui.ActionBack:
		b.NavigateBack()
	case ui.ActionForward:
		b.NavigateForward()
	case ui.ActionUp:
		err = b.NavigateUp()
	case ui.ActionRefresh:
		err = b.Refresh()
	case ui.ActionSelect:
		b.SetActiveEntry(evt.Path)
	case ui.ActionOpen:
		err = b.Open(evt.Path)
	case ui.ActionKey:
		b.HandleKey(evt.Key)
	case ui.ActionSetMode:
		b.SetViewMode(evt.Mode)
	case ui.ActionSetSort:
		b.SetSort(evt.Sort, evt.Order)
	case ui.ActionOpenLast:
		err = b.OpenLastFolder()
	case ui.ActionOpenFolder:
		// The dialog blocks until the user answers.
		go func() {
			if err := b.OpenFolder(ctx); err != nil && !errors.Is(err, context.Canceled) {
				o.log.Warn("open folder", zap.Error(err))
			}
		}()
	}
	if err != nil && !errors.Is(err, ErrClosed) {
		o.log.Warn("ui action failed", zap.Int("action", int(evt.Action)), zap.String("path", evt.Path), zap.Error(err))
	}
	o.window.Invalidate()
}

func (o *Orchestrator) invalidateOnUpdate(ctx context.Context) {
	for {
		select {
		case <-ctx.Done():
			return
		case <-o.browser.Updates():
			o.window.Invalidate()
		}
	}
}

func (o *Orchestrator) forwardNotifications(ctx context.Context, notes <-chan Notification) {
	for {
		select {
		case <-ctx.Done():
			return
		case n, ok := <-notes:
			if !ok {
				return
			}
			o.ui.ShowToast(n.Title, n.Message, toastType(n.Level))
			o.window.Invalidate()
		}
	}
}

func toastType(l Level) ui.ToastType {
	switch l {
	case LevelError:
		return ui.ToastError
	case LevelWarning:
		return ui.ToastWarning
	default:
		return ui.ToastInfo
	}
}

// stateFor converts a snapshot into what the renderer draws.
func stateFor(s *Snapshot, roots []fs.Root) ui.State {
	st := ui.State{
		CurrentPath:  s.Nav.CurrentPath,
		Loading:      s.Nav.Status == StatusLoading,
		LoadingPath:  s.Nav.LoadingPath,
		CanBack:      s.Nav.CanBack,
		CanForward:   s.Nav.CanForward,
		CanUp:        s.Nav.CanUp,
		PhotoMode:    s.PhotoMode(),
		Mode:         s.View.Mode,
		Sort:         s.View.Key,
		Order:        s.View.Order,
		Items:        s.Items,
		Cursor:       s.Cursor,
		ActivePath:   s.Selection.ActiveEntryPath,
		Selected:     s.Selection.SelectedPhotoPath,
		Columns:      s.Geometry.Columns,
		Rows:         s.Geometry.Rows,
		Window:       s.Window,
		Scroll:       ui.ScrollTarget{Seq: s.Scroll.Seq, Row: s.Scroll.Row, Offset: s.Scroll.Offset},
		Photo:        s.Selection.Photo,
		PhotoLoading: s.Selection.Loading,
		Roots:        roots,
	}
	if st.CurrentPath != "" {
		st.Crumbs = pathutil.Breadcrumbs(st.CurrentPath)
	}
	if s.Nav.FailedPath != "" && s.Nav.Err != nil {
		st.ErrorText = notificationFor(s.Nav.Err).Message
	}
	return st
}

// Main runs o on its own goroutine while Gio owns the main thread, then
// calls cleanup and exits.
func Main(o *Orchestrator, opts Options, cleanup func()) {
	go func() {
		err := o.Run(opts)
		if cleanup != nil {
			cleanup()
		}
		if err != nil {
			logging.L().Error("window closed with error", zap.Error(err))
			_ = logging.Sync()
			os.Exit(1)
		}
		_ = logging.Sync()
		os.Exit(0)
	}()
	app.Main()
}
