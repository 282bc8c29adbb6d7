package ui

import (
	"image"
	"image/color"
	"sync"
	"time"

	"gioui.org/font"
	"gioui.org/layout"
	"gioui.org/op"
	"gioui.org/op/clip"
	"gioui.org/op/paint"
	"gioui.org/unit"
	"gioui.org/widget"
	"gioui.org/widget/material"
)

// ToastType indicates the severity of a toast.
type ToastType int

const (
	ToastInfo ToastType = iota
	ToastWarning
	ToastError
)

// Toast is a dismissible notification. Errors stay longer than infos.
type Toast struct {
	Title     string
	Message   string
	Type      ToastType
	Visible   bool
	ExpiresAt time.Time
	dismiss   widget.Clickable
	mu        sync.Mutex
}

const (
	toastDuration      = 3 * time.Second
	errorToastDuration = 8 * time.Second
)

// ShowToast displays a notification. It is safe to call from any goroutine.
func (r *Renderer) ShowToast(title, message string, toastType ToastType) {
	r.toast.mu.Lock()
	defer r.toast.mu.Unlock()

	d := toastDuration
	if toastType == ToastError {
		d = errorToastDuration
	}
	r.toast.Title = title
	r.toast.Message = message
	r.toast.Type = toastType
	r.toast.Visible = true
	r.toast.ExpiresAt = time.Now().Add(d)
}

// DismissToast hides the current toast.
func (r *Renderer) DismissToast() {
	r.toast.mu.Lock()
	r.toast.Visible = false
	r.toast.mu.Unlock()
}

// ToastVisible reports whether a toast is showing.
func (r *Renderer) ToastVisible() bool {
	r.toast.mu.Lock()
	defer r.toast.mu.Unlock()
	return r.toast.Visible && time.Now().Before(r.toast.ExpiresAt)
}

func toastColors(t ToastType) (bg, fg color.NRGBA) {
	switch t {
	case ToastError:
		return color.NRGBA{R: 200, G: 50, B: 50, A: 240}, colWhite
	case ToastWarning:
		return color.NRGBA{R: 220, G: 160, B: 40, A: 240}, color.NRGBA{R: 40, G: 40, B: 40, A: 255}
	default:
		return color.NRGBA{R: 60, G: 60, B: 60, A: 240}, colWhite
	}
}

// layoutToast renders the toast at the bottom of the window. Clicking it
// dismisses it.
func (r *Renderer) layoutToast(gtx layout.Context, th *material.Theme) layout.Dimensions {
	if r.toast.dismiss.Clicked(gtx) {
		r.DismissToast()
	}
	if !r.ToastVisible() {
		return layout.Dimensions{}
	}

	r.toast.mu.Lock()
	title, message, toastType, expiresAt := r.toast.Title, r.toast.Message, r.toast.Type, r.toast.ExpiresAt
	r.toast.mu.Unlock()

	gtx.Execute(op.InvalidateCmd{At: expiresAt})
	bgColor, textColor := toastColors(toastType)

	return layout.S.Layout(gtx, func(gtx layout.Context) layout.Dimensions {
		return layout.Inset{Bottom: unit.Dp(48), Left: unit.Dp(20), Right: unit.Dp(20)}.Layout(gtx, func(gtx layout.Context) layout.Dimensions {
			gtx.Constraints.Max.X = min(gtx.Constraints.Max.X, gtx.Dp(unit.Dp(520)))
			return r.toast.dismiss.Layout(gtx, func(gtx layout.Context) layout.Dimensions {
				macro := op.Record(gtx.Ops)
				dims := layout.Inset{Top: unit.Dp(10), Bottom: unit.Dp(10), Left: unit.Dp(16), Right: unit.Dp(16)}.Layout(gtx, func(gtx layout.Context) layout.Dimensions {
					return layout.Flex{Axis: layout.Vertical}.Layout(gtx,
						layout.Rigid(func(gtx layout.Context) layout.Dimensions {
							if title == "" {
								return layout.Dimensions{}
							}
							lbl := material.Body1(th, title)
							lbl.Color = textColor
							lbl.Font.Weight = font.Bold
							return lbl.Layout(gtx)
						}),
						layout.Rigid(func(gtx layout.Context) layout.Dimensions {
							lbl := material.Body2(th, message)
							lbl.Color = textColor
							return lbl.Layout(gtx)
						}),
					)
				})
				call := macro.Stop()

				rr := gtx.Dp(8)
				paint.FillShape(gtx.Ops, bgColor, clip.UniformRRect(image.Rectangle{Max: dims.Size}, rr).Op(gtx.Ops))
				call.Add(gtx.Ops)
				return dims
			})
		})
	})
}
