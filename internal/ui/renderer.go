package ui

import (
	"image"

	"gioui.org/io/event"
	"gioui.org/io/key"
	"gioui.org/layout"
	"gioui.org/op/clip"
	"gioui.org/op/paint"
	"gioui.org/unit"
	"gioui.org/widget"
	"gioui.org/widget/material"

	"github.com/justyntemme/photogeoview/internal/config"
	"github.com/justyntemme/photogeoview/internal/debug"
	"github.com/justyntemme/photogeoview/internal/view"
)

// navigationKeys go to the browser's key controller.
var navigationKeys = []key.Name{
	key.NameUpArrow, key.NameDownArrow, key.NameLeftArrow, key.NameRightArrow,
	key.NameHome, key.NameEnd, key.NameReturn, key.NameEnter, key.NameDeleteBackward,
}

// Viewport is the body size and scroll offset in dp.
type Viewport struct {
	Width  int
	Height int
	Scroll int
}

type Renderer struct {
	Theme   *material.Theme
	Metrics Metrics
	Hotkeys *config.HotkeyMatcher
	// Thumbs looks up a materialized thumbnail.
	Thumbs func(path string) (image.Image, bool)
	Debug  bool

	keyTag  struct{}
	focused bool

	body      layout.List
	rootsList layout.List

	backBtn    widget.Clickable
	fwdBtn     widget.Clickable
	upBtn      widget.Clickable
	refreshBtn widget.Clickable
	openBtn    widget.Clickable
	lastBtn    widget.Clickable
	listBtn    widget.Clickable
	detailBtn  widget.Clickable
	gridBtn    widget.Clickable
	nameBtn    widget.Clickable
	dateBtn    widget.Clickable
	orderBtn   widget.Clickable

	pathEditor widget.Editor
	pathClick  widget.Clickable
	isEditing  bool
	crumbBtns  []widget.Clickable
	rootBtns   []widget.Clickable

	items    map[string]*widget.Clickable
	itemsFor string

	scrollSeq uint64
	viewport  Viewport
	images    imageCache
	toast     Toast
}

func NewRenderer(m Metrics, hotkeys *config.HotkeyMatcher) *Renderer {
	r := &Renderer{
		Theme:   material.NewTheme(),
		Metrics: m,
		Hotkeys: hotkeys,
		items:   make(map[string]*widget.Clickable),
	}
	r.body.Axis = layout.Vertical
	r.rootsList.Axis = layout.Vertical
	r.pathEditor.SingleLine = true
	r.pathEditor.Submit = true
	return r
}

// Viewport returns the body geometry measured in the last frame.
func (r *Renderer) Viewport() Viewport { return r.viewport }

// EditPath opens the path bar for typing a directory.
func (r *Renderer) EditPath(current string) {
	r.isEditing = true
	r.pathEditor.SetText(current)
	r.pathEditor.SetCaret(len(current), 0)
}

// Layout draws one frame and returns the user's action, if any.
func (r *Renderer) Layout(gtx layout.Context, state *State) UIEvent {
	var ev UIEvent
	r.syncItems(state)

	paint.Fill(gtx.Ops, colWhite)

	area := clip.Rect{Max: gtx.Constraints.Max}.Push(gtx.Ops)
	event.Op(gtx.Ops, &r.keyTag)
	area.Pop()
	if !r.focused && !r.isEditing {
		gtx.Execute(key.FocusCmd{Tag: &r.keyTag})
	}
	r.processGlobalInput(gtx, state, &ev)

	layout.Stack{}.Layout(gtx,
		layout.Expanded(func(gtx layout.Context) layout.Dimensions {
			return layout.Flex{Axis: layout.Vertical}.Layout(gtx,
				layout.Rigid(func(gtx layout.Context) layout.Dimensions {
					return layout.UniformInset(unit.Dp(6)).Layout(gtx, func(gtx layout.Context) layout.Dimensions {
						return r.layoutNavBar(gtx, state, &ev)
					})
				}),
				layout.Rigid(func(gtx layout.Context) layout.Dimensions {
					return layout.Inset{Left: unit.Dp(6), Right: unit.Dp(6), Bottom: unit.Dp(6)}.Layout(gtx, func(gtx layout.Context) layout.Dimensions {
						return r.layoutToolbar(gtx, state, &ev)
					})
				}),
				layout.Rigid(r.divider),
				layout.Flexed(1, func(gtx layout.Context) layout.Dimensions {
					return layout.Flex{Axis: layout.Horizontal}.Layout(gtx,
						layout.Rigid(func(gtx layout.Context) layout.Dimensions {
							return r.layoutSidebar(gtx, state, &ev)
						}),
						layout.Flexed(1, func(gtx layout.Context) layout.Dimensions {
							return r.layoutBody(gtx, state, &ev)
						}),
					)
				}),
				layout.Rigid(r.divider),
				layout.Rigid(func(gtx layout.Context) layout.Dimensions {
					return r.layoutFooter(gtx, state)
				}),
			)
		}),
		layout.Expanded(func(gtx layout.Context) layout.Dimensions {
			return r.layoutToast(gtx, r.Theme)
		}),
	)

	if ev.Action != ActionNone {
		debug.Log(debug.UI, "action %d path=%q key=%q", ev.Action, ev.Path, ev.Key)
	}
	return ev
}

// syncItems drops per-item widgets when the listing changes identity.
func (r *Renderer) syncItems(state *State) {
	id := state.CurrentPath
	if state.PhotoMode {
		id = "\x00photos"
	}
	if id == r.itemsFor {
		return
	}
	r.itemsFor = id
	r.items = make(map[string]*widget.Clickable, len(state.Items))
	r.images.reset()
	r.body.Position = layout.Position{}
	r.viewport.Scroll = 0
}

func (r *Renderer) clickable(path string) *widget.Clickable {
	c, ok := r.items[path]
	if !ok {
		c = new(widget.Clickable)
		r.items[path] = c
	}
	return c
}

// processGlobalInput routes key presses: configured shortcuts first, then
// the navigation keys.
func (r *Renderer) processGlobalInput(gtx layout.Context, state *State, ev *UIEvent) {
	filters := []event.Filter{key.FocusFilter{Target: &r.keyTag}}
	for _, n := range navigationKeys {
		filters = append(filters, key.Filter{Focus: &r.keyTag, Name: n})
	}
	if r.Hotkeys != nil {
		filters = append(filters, r.Hotkeys.Filters(&r.keyTag)...)
	}

	for {
		e, ok := gtx.Event(filters...)
		if !ok {
			break
		}
		switch e := e.(type) {
		case key.FocusEvent:
			r.focused = e.Focus
		case key.Event:
			if e.State != key.Press || r.isEditing {
				continue
			}
			if hot, ok := r.matchHotkey(e, state); ok {
				*ev = hot
				continue
			}
			if e.Modifiers != 0 {
				continue
			}
			*ev = UIEvent{Action: ActionKey, Key: e.Name}
		}
	}
}

func (r *Renderer) matchHotkey(e key.Event, state *State) (UIEvent, bool) {
	h := r.Hotkeys
	if h == nil {
		return UIEvent{}, false
	}
	switch {
	case h.Back.Matches(e):
		return UIEvent{Action: ActionBack}, true
	case h.Forward.Matches(e):
		return UIEvent{Action: ActionForward}, true
	case h.Up.Matches(e):
		return UIEvent{Action: ActionUp}, true
	case h.Refresh.Matches(e):
		return UIEvent{Action: ActionRefresh}, true
	case h.OpenFolder.Matches(e):
		return UIEvent{Action: ActionOpenFolder}, true
	case h.ListView.Matches(e):
		return UIEvent{Action: ActionSetMode, Mode: view.List}, true
	case h.DetailView.Matches(e):
		return UIEvent{Action: ActionSetMode, Mode: view.Detail}, true
	case h.GridView.Matches(e):
		return UIEvent{Action: ActionSetMode, Mode: view.Grid}, true
	case h.SortName.Matches(e):
		return UIEvent{Action: ActionSetSort, Sort: view.ByName, Order: state.Order}, true
	case h.SortDate.Matches(e):
		return UIEvent{Action: ActionSetSort, Sort: view.ByDate, Order: state.Order}, true
	case h.SortOrder.Matches(e):
		return UIEvent{Action: ActionSetSort, Sort: state.Sort, Order: flip(state.Order)}, true
	}
	return UIEvent{}, false
}

func flip(o view.SortOrder) view.SortOrder {
	if o == view.Asc {
		return view.Desc
	}
	return view.Asc
}

func (r *Renderer) divider(gtx layout.Context) layout.Dimensions {
	size := image.Pt(gtx.Constraints.Max.X, gtx.Dp(1))
	paint.FillShape(gtx.Ops, colLightGray, clip.Rect{Max: size}.Op())
	return layout.Dimensions{Size: size}
}

// button draws a flat text button. Disabled buttons ignore clicks.
func (r *Renderer) button(gtx layout.Context, btn *widget.Clickable, label string, enabled, active bool) layout.Dimensions {
	if !enabled {
		gtx = gtx.Disabled()
	}
	b := material.Button(r.Theme, btn, label)
	b.Inset = layout.Inset{Top: unit.Dp(4), Bottom: unit.Dp(4), Left: unit.Dp(10), Right: unit.Dp(10)}
	b.TextSize = unit.Sp(13)
	switch {
	case !enabled:
		b.Background = colSidebar
		b.Color = colDisabled
	case active:
		b.Background = colAccent
		b.Color = colWhite
	default:
		b.Background = colSidebar
		b.Color = colBlack
	}
	return b.Layout(gtx)
}
