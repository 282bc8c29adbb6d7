package ui

import (
	"image"

	"gioui.org/layout"
	"gioui.org/op/clip"
	"gioui.org/op/paint"
	"gioui.org/unit"
	"gioui.org/widget"
	"gioui.org/widget/material"
)

const sidebarWidth = unit.Dp(160)

// layoutSidebar lists the roots and the folder shortcuts.
func (r *Renderer) layoutSidebar(gtx layout.Context, state *State, ev *UIEvent) layout.Dimensions {
	w := gtx.Dp(sidebarWidth)
	gtx.Constraints.Min.X, gtx.Constraints.Max.X = w, w
	paint.FillShape(gtx.Ops, colSidebar, clip.Rect{Max: image.Pt(w, gtx.Constraints.Max.Y)}.Op())

	for len(r.rootBtns) < len(state.Roots) {
		r.rootBtns = append(r.rootBtns, widget.Clickable{})
	}
	for i, root := range state.Roots {
		if r.rootBtns[i].Clicked(gtx) {
			*ev = UIEvent{Action: ActionNavigate, Path: root.Path}
		}
	}
	if r.openBtn.Clicked(gtx) {
		*ev = UIEvent{Action: ActionOpenFolder}
	}
	if r.lastBtn.Clicked(gtx) {
		*ev = UIEvent{Action: ActionOpenLast}
	}

	return layout.UniformInset(unit.Dp(6)).Layout(gtx, func(gtx layout.Context) layout.Dimensions {
		return layout.Flex{Axis: layout.Vertical}.Layout(gtx,
			layout.Rigid(func(gtx layout.Context) layout.Dimensions {
				gtx.Constraints.Min.X = gtx.Constraints.Max.X
				return r.button(gtx, &r.openBtn, "Open folder…", true, false)
			}),
			layout.Rigid(layout.Spacer{Height: unit.Dp(4)}.Layout),
			layout.Rigid(func(gtx layout.Context) layout.Dimensions {
				gtx.Constraints.Min.X = gtx.Constraints.Max.X
				return r.button(gtx, &r.lastBtn, "Open last folder", true, false)
			}),
			layout.Rigid(layout.Spacer{Height: unit.Dp(8)}.Layout),
			layout.Rigid(func(gtx layout.Context) layout.Dimensions {
				lbl := material.Caption(r.Theme, "LOCATIONS")
				lbl.Color = colGray
				return layout.Inset{Bottom: unit.Dp(4)}.Layout(gtx, lbl.Layout)
			}),
			layout.Flexed(1, func(gtx layout.Context) layout.Dimensions {
				return r.rootsList.Layout(gtx, len(state.Roots), func(gtx layout.Context, i int) layout.Dimensions {
					root := state.Roots[i]
					return r.rootBtns[i].Layout(gtx, func(gtx layout.Context) layout.Dimensions {
						gtx.Constraints.Min.X = gtx.Constraints.Max.X
						return layout.Inset{Top: unit.Dp(4), Bottom: unit.Dp(4)}.Layout(gtx, func(gtx layout.Context) layout.Dimensions {
							return layout.Flex{Axis: layout.Horizontal, Alignment: layout.Middle}.Layout(gtx,
								layout.Rigid(func(gtx layout.Context) layout.Dimensions {
									sz := gtx.Dp(10)
									paint.FillShape(gtx.Ops, colDriveIcon, clip.UniformRRect(image.Rect(0, 0, sz, sz), 2).Op(gtx.Ops))
									return layout.Dimensions{Size: image.Pt(sz, sz)}
								}),
								layout.Rigid(layout.Spacer{Width: unit.Dp(6)}.Layout),
								layout.Flexed(1, func(gtx layout.Context) layout.Dimensions {
									lbl := material.Body2(r.Theme, root.Name)
									lbl.MaxLines = 1
									if root.Path == state.CurrentPath {
										lbl.Color = colAccent
									}
									return lbl.Layout(gtx)
								}),
							)
						})
					})
				})
			}),
		)
	})
}
