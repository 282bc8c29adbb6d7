package ui

import (
	"strings"

	"gioui.org/font"
	"gioui.org/io/key"
	"gioui.org/layout"
	"gioui.org/op/clip"
	"gioui.org/unit"
	"gioui.org/widget"
	"gioui.org/widget/material"

	"github.com/justyntemme/photogeoview/internal/view"
)

// Navigation bar: back/forward/up/refresh, then breadcrumbs or the path editor.

func (r *Renderer) layoutNavBar(gtx layout.Context, state *State, ev *UIEvent) layout.Dimensions {
	if r.backBtn.Clicked(gtx) {
		*ev = UIEvent{Action: ActionBack}
	}
	if r.fwdBtn.Clicked(gtx) {
		*ev = UIEvent{Action: ActionForward}
	}
	if r.upBtn.Clicked(gtx) {
		*ev = UIEvent{Action: ActionUp}
	}
	if r.refreshBtn.Clicked(gtx) {
		*ev = UIEvent{Action: ActionRefresh}
	}

	spacer := layout.Rigid(layout.Spacer{Width: unit.Dp(4)}.Layout)
	return layout.Flex{Axis: layout.Horizontal, Alignment: layout.Middle}.Layout(gtx,
		layout.Rigid(func(gtx layout.Context) layout.Dimensions {
			return r.button(gtx, &r.backBtn, "‹", state.CanBack, false)
		}),
		spacer,
		layout.Rigid(func(gtx layout.Context) layout.Dimensions {
			return r.button(gtx, &r.fwdBtn, "›", state.CanForward, false)
		}),
		spacer,
		layout.Rigid(func(gtx layout.Context) layout.Dimensions {
			return r.button(gtx, &r.upBtn, "↑", state.CanUp, false)
		}),
		spacer,
		layout.Rigid(func(gtx layout.Context) layout.Dimensions {
			return r.button(gtx, &r.refreshBtn, "⟳", state.CurrentPath != "", false)
		}),
		layout.Rigid(layout.Spacer{Width: unit.Dp(12)}.Layout),
		layout.Flexed(1, func(gtx layout.Context) layout.Dimensions {
			defer clip.Rect{Max: gtx.Constraints.Max}.Push(gtx.Ops).Pop()
			if r.isEditing {
				return r.layoutPathEditor(gtx, ev)
			}
			return r.layoutBreadcrumbs(gtx, state, ev)
		}),
	)
}

func (r *Renderer) layoutPathEditor(gtx layout.Context, ev *UIEvent) layout.Dimensions {
	for {
		e, ok := r.pathEditor.Update(gtx)
		if !ok {
			break
		}
		if s, ok := e.(widget.SubmitEvent); ok {
			r.isEditing = false
			if p := strings.TrimSpace(s.Text); p != "" {
				*ev = UIEvent{Action: ActionNavigate, Path: p}
			}
			gtx.Execute(key.FocusCmd{Tag: &r.keyTag})
		}
	}
	// Escape abandons the edit.
	for {
		e, ok := gtx.Event(key.Filter{Focus: &r.pathEditor, Name: key.NameEscape})
		if !ok {
			break
		}
		if k, ok := e.(key.Event); ok && k.State == key.Press {
			r.isEditing = false
			gtx.Execute(key.FocusCmd{Tag: &r.keyTag})
		}
	}
	if r.isEditing {
		gtx.Execute(key.FocusCmd{Tag: &r.pathEditor})
	}
	ed := material.Editor(r.Theme, &r.pathEditor, "Folder path")
	ed.TextSize = unit.Sp(14)
	return ed.Layout(gtx)
}

func (r *Renderer) layoutBreadcrumbs(gtx layout.Context, state *State, ev *UIEvent) layout.Dimensions {
	for len(r.crumbBtns) < len(state.Crumbs) {
		r.crumbBtns = append(r.crumbBtns, widget.Clickable{})
	}
	clicked := false
	for i, c := range state.Crumbs {
		if r.crumbBtns[i].Clicked(gtx) {
			clicked = true
			*ev = UIEvent{Action: ActionNavigate, Path: c.Path}
		}
	}
	if r.pathClick.Clicked(gtx) && !clicked {
		r.EditPath(state.CurrentPath)
	}

	return r.pathClick.Layout(gtx, func(gtx layout.Context) layout.Dimensions {
		gtx.Constraints.Min.X = gtx.Constraints.Max.X
		if len(state.Crumbs) == 0 {
			hint := "Type a folder path…"
			if state.PhotoMode {
				hint = "Photos"
			}
			lbl := material.Body1(r.Theme, hint)
			lbl.Color = colGray
			return lbl.Layout(gtx)
		}

		children := make([]layout.FlexChild, 0, 2*len(state.Crumbs))
		for i, c := range state.Crumbs {
			i, c := i, c
			if i > 0 {
				children = append(children, layout.Rigid(func(gtx layout.Context) layout.Dimensions {
					lbl := material.Body1(r.Theme, "›")
					lbl.Color = colGray
					return layout.Inset{Left: unit.Dp(2), Right: unit.Dp(2)}.Layout(gtx, lbl.Layout)
				}))
			}
			last := i == len(state.Crumbs)-1
			children = append(children, layout.Rigid(func(gtx layout.Context) layout.Dimensions {
				return r.crumbBtns[i].Layout(gtx, func(gtx layout.Context) layout.Dimensions {
					lbl := material.Body1(r.Theme, c.Name)
					lbl.MaxLines = 1
					if last {
						lbl.Font.Weight = font.Bold
					} else {
						lbl.Color = colDirBlue
					}
					return layout.UniformInset(unit.Dp(4)).Layout(gtx, lbl.Layout)
				})
			}))
		}
		if state.Loading {
			children = append(children, layout.Rigid(func(gtx layout.Context) layout.Dimensions {
				lbl := material.Caption(r.Theme, "loading…")
				lbl.Color = colGray
				return layout.Inset{Left: unit.Dp(8)}.Layout(gtx, lbl.Layout)
			}))
		}
		return layout.Flex{Axis: layout.Horizontal, Alignment: layout.Middle}.Layout(gtx, children...)
	})
}

// Toolbar: view mode and sort controls.

func (r *Renderer) layoutToolbar(gtx layout.Context, state *State, ev *UIEvent) layout.Dimensions {
	for btn, m := range map[*widget.Clickable]view.Mode{&r.listBtn: view.List, &r.detailBtn: view.Detail, &r.gridBtn: view.Grid} {
		if btn.Clicked(gtx) {
			*ev = UIEvent{Action: ActionSetMode, Mode: m}
		}
	}
	if r.nameBtn.Clicked(gtx) {
		*ev = UIEvent{Action: ActionSetSort, Sort: view.ByName, Order: state.Order}
	}
	if r.dateBtn.Clicked(gtx) {
		*ev = UIEvent{Action: ActionSetSort, Sort: view.ByDate, Order: state.Order}
	}
	if r.orderBtn.Clicked(gtx) {
		*ev = UIEvent{Action: ActionSetSort, Sort: state.Sort, Order: flip(state.Order)}
	}

	order := "Ascending"
	if state.Order == view.Desc {
		order = "Descending"
	}
	spacer := layout.Rigid(layout.Spacer{Width: unit.Dp(4)}.Layout)
	return layout.Flex{Axis: layout.Horizontal, Alignment: layout.Middle}.Layout(gtx,
		layout.Rigid(func(gtx layout.Context) layout.Dimensions {
			return r.button(gtx, &r.listBtn, "List", true, state.Mode == view.List)
		}),
		spacer,
		layout.Rigid(func(gtx layout.Context) layout.Dimensions {
			return r.button(gtx, &r.detailBtn, "Details", true, state.Mode == view.Detail)
		}),
		spacer,
		layout.Rigid(func(gtx layout.Context) layout.Dimensions {
			return r.button(gtx, &r.gridBtn, "Grid", true, state.Mode == view.Grid)
		}),
		layout.Rigid(layout.Spacer{Width: unit.Dp(16)}.Layout),
		layout.Rigid(func(gtx layout.Context) layout.Dimensions {
			lbl := material.Caption(r.Theme, "Sort:")
			lbl.Color = colGray
			return layout.Inset{Right: unit.Dp(4)}.Layout(gtx, lbl.Layout)
		}),
		layout.Rigid(func(gtx layout.Context) layout.Dimensions {
			return r.button(gtx, &r.nameBtn, "Name", true, state.Sort == view.ByName)
		}),
		spacer,
		layout.Rigid(func(gtx layout.Context) layout.Dimensions {
			return r.button(gtx, &r.dateBtn, "Date", true, state.Sort == view.ByDate)
		}),
		spacer,
		layout.Rigid(func(gtx layout.Context) layout.Dimensions {
			return r.button(gtx, &r.orderBtn, order, true, false)
		}),
	)
}
