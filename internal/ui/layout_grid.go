package ui

import (
	"image"

	"gioui.org/font"
	"gioui.org/layout"
	"gioui.org/text"
	"gioui.org/unit"
	"gioui.org/widget/material"
)

// Grid view: the list virtualizes rows; each row holds Columns tiles.

func (r *Renderer) layoutGrid(gtx layout.Context, state *State, ev *UIEvent, rowDp int) layout.Dimensions {
	cols := max(state.Columns, 1)
	rows := state.Rows
	if rows == 0 {
		rows = (len(state.Items) + cols - 1) / cols
	}
	tile := gtx.Dp(unit.Dp(r.Metrics.GridItemSize))
	rowH := gtx.Dp(unit.Dp(rowDp))

	return r.body.Layout(gtx, rows, func(gtx layout.Context, row int) layout.Dimensions {
		gtx.Constraints.Min = image.Pt(gtx.Constraints.Max.X, rowH)
		gtx.Constraints.Max.Y = rowH

		start := row * cols
		end := min(start+cols, len(state.Items))
		children := make([]layout.FlexChild, 0, 2*cols)
		for i := start; i < end; i++ {
			idx := i
			if i > start {
				children = append(children, layout.Rigid(layout.Spacer{Width: unit.Dp(r.Metrics.GridGap)}.Layout))
			}
			children = append(children, layout.Rigid(func(gtx layout.Context) layout.Dimensions {
				return r.layoutTile(gtx, state, idx, tile, ev)
			}))
		}
		layout.Flex{Axis: layout.Horizontal}.Layout(gtx, children...)
		return layout.Dimensions{Size: gtx.Constraints.Min}
	})
}

func (r *Renderer) layoutTile(gtx layout.Context, state *State, i, tile int, ev *UIEvent) layout.Dimensions {
	it := state.Items[i]
	btn := r.clickable(it.Path)
	r.handleItemClicks(gtx, btn, it.Path, ev)

	gtx.Constraints = layout.Exact(image.Pt(tile, tile))
	return btn.Layout(gtx, func(gtx layout.Context) layout.Dimensions {
		highlight(gtx, state, i, it)
		label := gtx.Dp(20)
		return layout.Flex{Axis: layout.Vertical, Alignment: layout.Middle}.Layout(gtx,
			layout.Rigid(func(gtx layout.Context) layout.Dimensions {
				return r.layoutThumb(gtx, it, tile-label)
			}),
			layout.Rigid(func(gtx layout.Context) layout.Dimensions {
				gtx.Constraints = layout.Exact(image.Pt(tile, label))
				lbl := material.Caption(r.Theme, it.Name)
				lbl.MaxLines = 1
				lbl.Alignment = text.Middle
				if it.IsDir {
					lbl.Color = colDirBlue
					lbl.Font.Weight = font.Bold
				}
				return layout.Inset{Left: unit.Dp(4), Right: unit.Dp(4)}.Layout(gtx, lbl.Layout)
			}),
		)
	})
}
