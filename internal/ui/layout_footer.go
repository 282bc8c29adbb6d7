package ui

import (
	"fmt"

	"gioui.org/layout"
	"gioui.org/op/clip"
	"gioui.org/op/paint"
	"gioui.org/unit"
	"gioui.org/widget/material"
)

// layoutFooter shows the selected photo's metadata, or the listing size.
func (r *Renderer) layoutFooter(gtx layout.Context, state *State) layout.Dimensions {
	var lines []string
	switch {
	case state.PhotoLoading:
		lines = []string{"Loading photo…"}
	case state.Photo != nil:
		lines = photoLines(state.Photo)
	default:
		lines = []string{countLine(len(state.Items), state.PhotoMode)}
	}

	inset := layout.UniformInset(unit.Dp(8))
	return layout.Stack{}.Layout(gtx,
		layout.Expanded(func(gtx layout.Context) layout.Dimensions {
			paint.FillShape(gtx.Ops, colFooterBg, clip.Rect{Max: gtx.Constraints.Min}.Op())
			return layout.Dimensions{Size: gtx.Constraints.Min}
		}),
		layout.Stacked(func(gtx layout.Context) layout.Dimensions {
			gtx.Constraints.Min.X = gtx.Constraints.Max.X
			return inset.Layout(gtx, func(gtx layout.Context) layout.Dimensions {
				children := make([]layout.FlexChild, 0, len(lines))
				for i, l := range lines {
					children = append(children, layout.Rigid(func(gtx layout.Context) layout.Dimensions {
						lbl := material.Body2(r.Theme, l)
						lbl.MaxLines = 1
						if i > 0 {
							lbl.Color = colGray
						}
						return layout.Inset{Right: unit.Dp(16)}.Layout(gtx, lbl.Layout)
					}))
				}
				return layout.Flex{Axis: layout.Horizontal, Alignment: layout.Middle}.Layout(gtx, children...)
			})
		}),
	)
}

func countLine(n int, photos bool) string {
	noun := "item"
	if photos {
		noun = "photo"
	}
	if n != 1 {
		noun += "s"
	}
	return fmt.Sprintf("%d %s", n, noun)
}
