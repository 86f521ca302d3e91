package widgets

import (
	"fmt"
	"image"
	"image/color"

	"gioui.org/layout"
	"gioui.org/op/clip"
	"gioui.org/op/paint"
	"gioui.org/unit"
	"gioui.org/widget"
	"gioui.org/widget/material"

	"github.com/elektrokombinacija/mediaview/internal/viewer/engine"
)

// Toolbar shows the page position and navigation buttons.
type Toolbar struct {
	engine *engine.Engine
	camera map[int]string

	prevBtn  widget.Clickable
	nextBtn  widget.Clickable
	firstBtn widget.Clickable
	closeBtn widget.Clickable
}

// NewToolbar creates a new toolbar. camera holds optional per-page camera
// names.
func NewToolbar(e *engine.Engine, camera map[int]string) *Toolbar {
	return &Toolbar{
		engine: e,
		camera: camera,
	}
}

// Title returns the toolbar caption for a snapshot.
func Title(snap engine.Snapshot, camera string) string {
	s := fmt.Sprintf("%s   %d / %d   %.0f%%", snap.Page.ID, snap.Index+1, snap.PageCount, snap.Scale*100)
	if camera != "" {
		s += "   " + camera
	}
	return s
}

// Layout renders the toolbar.
func (t *Toolbar) Layout(gtx layout.Context, th *material.Theme) layout.Dimensions {
	height := gtx.Dp(unit.Dp(44))

	rect := image.Rect(0, 0, gtx.Constraints.Max.X, height)
	paint.FillShape(gtx.Ops, color.NRGBA{R: 40, G: 43, B: 48, A: 220}, clip.Rect(rect).Op())

	t.handleClicks(gtx)
	snap := t.engine.Snapshot()

	gtx.Constraints.Min.Y = height
	gtx.Constraints.Max.Y = height
	return layout.Inset{Left: unit.Dp(10), Right: unit.Dp(10)}.Layout(gtx, func(gtx layout.Context) layout.Dimensions {
		return layout.Flex{Axis: layout.Horizontal, Alignment: layout.Middle}.Layout(gtx,
			layout.Rigid(func(gtx layout.Context) layout.Dimensions {
				return t.button(gtx, th, &t.firstBtn, "|<", snap.Index > 0)
			}),
			layout.Rigid(layout.Spacer{Width: unit.Dp(4)}.Layout),
			layout.Rigid(func(gtx layout.Context) layout.Dimensions {
				return t.button(gtx, th, &t.prevBtn, "<", snap.Index > 0)
			}),
			layout.Rigid(layout.Spacer{Width: unit.Dp(4)}.Layout),
			layout.Rigid(func(gtx layout.Context) layout.Dimensions {
				return t.button(gtx, th, &t.nextBtn, ">", snap.Index < snap.PageCount-1)
			}),
			layout.Rigid(layout.Spacer{Width: unit.Dp(12)}.Layout),
			layout.Flexed(1, func(gtx layout.Context) layout.Dimensions {
				label := material.Label(th, 13, Title(snap, t.camera[snap.Index]))
				label.Color = color.NRGBA{R: 220, G: 220, B: 220, A: 255}
				label.MaxLines = 1
				return label.Layout(gtx)
			}),
			layout.Rigid(func(gtx layout.Context) layout.Dimensions {
				return t.button(gtx, th, &t.closeBtn, "X", true)
			}),
		)
	})
}

func (t *Toolbar) button(gtx layout.Context, th *material.Theme, btn *widget.Clickable, text string, enabled bool) layout.Dimensions {
	bg := color.NRGBA{R: 55, G: 58, B: 65, A: 255}
	fg := color.NRGBA{R: 220, G: 220, B: 220, A: 255}
	if !enabled {
		fg = color.NRGBA{R: 110, G: 110, B: 115, A: 255}
	} else if btn.Hovered() {
		bg = color.NRGBA{R: 70, G: 73, B: 80, A: 255}
	}

	return btn.Layout(gtx, func(gtx layout.Context) layout.Dimensions {
		return layout.Background{}.Layout(gtx,
			func(gtx layout.Context) layout.Dimensions {
				gtx.Constraints.Min = image.Point{X: gtx.Dp(32), Y: gtx.Dp(28)}
				rect := image.Rect(0, 0, gtx.Constraints.Min.X, gtx.Constraints.Min.Y)
				paint.FillShape(gtx.Ops, bg, clip.Rect(rect).Op())
				return layout.Dimensions{Size: gtx.Constraints.Min}
			},
			func(gtx layout.Context) layout.Dimensions {
				return layout.Center.Layout(gtx, func(gtx layout.Context) layout.Dimensions {
					label := material.Label(th, 12, text)
					label.Color = fg
					return label.Layout(gtx)
				})
			},
		)
	})
}

func (t *Toolbar) handleClicks(gtx layout.Context) {
	index := t.engine.Snapshot().Index
	for t.firstBtn.Clicked(gtx) {
		t.engine.Dispatch(engine.GoToPage{Index: 0})
	}
	for t.prevBtn.Clicked(gtx) {
		t.engine.Dispatch(engine.GoToPage{Index: index - 1})
	}
	for t.nextBtn.Clicked(gtx) {
		t.engine.Dispatch(engine.GoToPage{Index: index + 1})
	}
	for t.closeBtn.Clicked(gtx) {
		t.engine.Dispatch(engine.DismissRequested{})
	}
}
