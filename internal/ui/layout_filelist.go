package ui

import (
	"image"
	"time"

	"gioui.org/font"
	"gioui.org/io/key"
	"gioui.org/layout"
	"gioui.org/op/clip"
	"gioui.org/op/paint"
	"gioui.org/text"
	"gioui.org/unit"
	"gioui.org/widget"
	"gioui.org/widget/material"

	"github.com/justyntemme/photogeoview/internal/view"
)

// rowHeight is the height of one virtual row in dp.
func (r *Renderer) rowHeight(mode view.Mode) int {
	switch mode {
	case view.Grid:
		return r.Metrics.GridItemSize + r.Metrics.GridGap
	case view.Detail:
		return r.Metrics.DetailRowHeight
	default:
		return r.Metrics.ListRowHeight
	}
}

// layoutBody draws the listing and records the viewport for the layout engine.
func (r *Renderer) layoutBody(gtx layout.Context, state *State, ev *UIEvent) layout.Dimensions {
	size := gtx.Constraints.Max
	rowDp := max(r.rowHeight(state.Mode), 1)

	defer func() {
		r.viewport = Viewport{
			Width:  int(gtx.Metric.PxToDp(size.X)),
			Height: int(gtx.Metric.PxToDp(size.Y)),
			Scroll: r.body.Position.First*rowDp + int(gtx.Metric.PxToDp(r.body.Position.Offset)),
		}
	}()

	if len(state.Items) == 0 {
		return r.layoutPlaceholder(gtx, state)
	}

	if state.Scroll.Seq != r.scrollSeq {
		r.scrollSeq = state.Scroll.Seq
		r.body.Position.First = state.Scroll.Offset / rowDp
		r.body.Position.Offset = gtx.Dp(unit.Dp(state.Scroll.Offset % rowDp))
		r.body.Position.BeforeEnd = true
	}

	defer clip.Rect{Max: size}.Push(gtx.Ops).Pop()
	now := time.Now()
	if state.Mode == view.Grid {
		return r.layoutGrid(gtx, state, ev, rowDp)
	}
	return r.body.Layout(gtx, len(state.Items), func(gtx layout.Context, i int) layout.Dimensions {
		h := gtx.Dp(unit.Dp(rowDp))
		gtx.Constraints.Min = image.Pt(gtx.Constraints.Max.X, h)
		gtx.Constraints.Max.Y = h
		return r.layoutRow(gtx, state, i, now, ev)
	})
}

func (r *Renderer) layoutPlaceholder(gtx layout.Context, state *State) layout.Dimensions {
	msg := "Open a folder to browse photos."
	switch {
	case state.ErrorText != "":
		msg = state.ErrorText
	case state.Loading:
		msg = "Loading " + state.LoadingPath + "…"
	case state.CurrentPath != "":
		msg = "No photos in this folder."
	}
	return layout.Center.Layout(gtx, func(gtx layout.Context) layout.Dimensions {
		lbl := material.Body1(r.Theme, msg)
		lbl.Color = colGray
		if state.ErrorText != "" {
			lbl.Color = colDanger
		}
		lbl.Alignment = text.Middle
		return lbl.Layout(gtx)
	})
}

// handleItemClicks turns clicks on an item into select or open events.
func (r *Renderer) handleItemClicks(gtx layout.Context, btn *widget.Clickable, path string, ev *UIEvent) {
	for {
		c, ok := btn.Update(gtx)
		if !ok {
			break
		}
		if c.NumClicks >= 2 {
			*ev = UIEvent{Action: ActionOpen, Path: path}
		} else {
			*ev = UIEvent{Action: ActionSelect, Path: path}
		}
		gtx.Execute(key.FocusCmd{Tag: &r.keyTag})
	}
}

// highlight paints the cursor background and the selected-photo marker.
func highlight(gtx layout.Context, state *State, i int, it view.Item) {
	size := gtx.Constraints.Min
	if i == state.Cursor {
		paint.FillShape(gtx.Ops, colSelected, clip.Rect{Max: size}.Op())
	}
	if it.Path == state.Selected && !it.IsDir {
		paint.FillShape(gtx.Ops, colCursor, clip.Rect{Max: image.Pt(gtx.Dp(3), size.Y)}.Op())
	}
}

func (r *Renderer) layoutRow(gtx layout.Context, state *State, i int, now time.Time, ev *UIEvent) layout.Dimensions {
	it := state.Items[i]
	btn := r.clickable(it.Path)
	r.handleItemClicks(gtx, btn, it.Path, ev)

	detail := state.Mode == view.Detail
	thumb := unit.Dp(float32(r.Metrics.ListRowHeight - 8))
	if detail {
		thumb = unit.Dp(float32(r.Metrics.DetailRowHeight - 8))
	}

	return btn.Layout(gtx, func(gtx layout.Context) layout.Dimensions {
		highlight(gtx, state, i, it)
		return layout.Inset{Left: unit.Dp(8), Right: unit.Dp(12), Top: unit.Dp(4), Bottom: unit.Dp(4)}.Layout(gtx, func(gtx layout.Context) layout.Dimensions {
			nameCol := func(gtx layout.Context) layout.Dimensions {
				lbl := material.Body1(r.Theme, it.Name)
				lbl.MaxLines = 1
				if it.IsDir {
					lbl.Color = colDirBlue
					lbl.Font.Weight = font.Bold
				}
				if !detail {
					return lbl.Layout(gtx)
				}
				return layout.Flex{Axis: layout.Vertical}.Layout(gtx,
					layout.Rigid(lbl.Layout),
					layout.Rigid(func(gtx layout.Context) layout.Dimensions {
						sub := material.Caption(r.Theme, typeLabel(it))
						sub.Color = colGray
						return sub.Layout(gtx)
					}),
				)
			}
			return layout.Flex{Axis: layout.Horizontal, Alignment: layout.Middle}.Layout(gtx,
				layout.Rigid(func(gtx layout.Context) layout.Dimensions {
					return r.layoutThumb(gtx, it, gtx.Dp(thumb))
				}),
				layout.Rigid(layout.Spacer{Width: unit.Dp(8)}.Layout),
				layout.Flexed(0.55, nameCol),
				layout.Flexed(0.3, func(gtx layout.Context) layout.Dimensions {
					lbl := material.Body2(r.Theme, itemDate(it, now))
					lbl.Color = colGray
					lbl.MaxLines = 1
					return lbl.Layout(gtx)
				}),
				layout.Flexed(0.15, func(gtx layout.Context) layout.Dimensions {
					s := ""
					if !it.IsDir {
						s = formatSize(it.Size)
					}
					lbl := material.Body2(r.Theme, s)
					lbl.Color = colGray
					lbl.Alignment = text.End
					lbl.MaxLines = 1
					return lbl.Layout(gtx)
				}),
			)
		})
	})
}

// layoutThumb draws a square of side px: the thumbnail when materialized,
// otherwise a folder or file placeholder.
func (r *Renderer) layoutThumb(gtx layout.Context, it view.Item, px int) layout.Dimensions {
	sz := image.Pt(px, px)
	gtx.Constraints = layout.Exact(sz)

	if !it.IsDir && r.Thumbs != nil {
		if img, ok := r.Thumbs(it.Path); ok && img != nil {
			op := r.images.get(it.Path, img)
			return widget.Image{Src: op, Fit: widget.Contain, Position: layout.Center}.Layout(gtx)
		}
	}

	bg := colTileBg
	if it.IsDir {
		bg = colFolderBg
	}
	inset := px / 8
	rect := image.Rect(inset, inset, px-inset, px-inset)
	paint.FillShape(gtx.Ops, bg, clip.UniformRRect(rect, px/16).Op(gtx.Ops))
	return layout.Dimensions{Size: sz}
}
