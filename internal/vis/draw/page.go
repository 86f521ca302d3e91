// Package draw paints viewer pages and their backdrop with Gio ops.
package draw

import (
	"image"
	"image/color"

	"gioui.org/f32"
	"gioui.org/layout"
	"gioui.org/op"
	"gioui.org/op/clip"
	"gioui.org/op/paint"

	"github.com/elektrokombinacija/mediaview/internal/geom"
	"github.com/elektrokombinacija/mediaview/internal/viewer/engine"
)

var (
	ColorBackdrop    = color.NRGBA{R: 0, G: 0, B: 0, A: 255}
	ColorPlaceholder = color.NRGBA{R: 45, G: 48, B: 54, A: 255}
)

// DismissShrink is how much the current page shrinks at full dismiss
// progress.
const DismissShrink = 0.25

// DismissScale returns the factor the current page is drawn at for a
// dismiss progress.
func DismissScale(progress float64) float64 {
	return 1 - DismissShrink*min(max(progress, 0), 1)
}

// Placement locates a page inside the viewport, in points.
type Placement struct {
	Viewport geom.Size
	Fit      geom.Rect
	Scale    float64
	Offset   geom.Point
}

// Place returns where the page at slot is drawn. Slot 0 is the current
// page with the snapshot's zoom and swipe offset, shrunk and moved by the
// dismiss drag. Slots -1 and +1 are its neighbours, at rest and one
// viewport width away, following the swipe.
func Place(snap engine.Snapshot, page geom.Size, viewport geom.Size, slot int) Placement {
	p := Placement{
		Viewport: viewport,
		Fit:      geom.RenderedRect(page, viewport),
		Scale:    1,
		Offset:   geom.Pt(float64(slot)*viewport.W+snap.SwipeDragOffset, 0),
	}
	if slot == 0 {
		p.Scale = snap.Scale * DismissScale(snap.DismissProgress)
		p.Offset = p.Offset.Add(snap.Offset).Add(geom.Pt(0, snap.DismissTranslationY))
	}
	return p
}

// TopLeft returns the drawn top-left corner in points.
func (p Placement) TopLeft() geom.Point {
	half := geom.Pt(p.Fit.Size.W, p.Fit.Size.H).Mul(p.Scale / 2)
	return geom.Pt(p.Viewport.W/2, p.Viewport.H/2).Add(p.Offset).Sub(half)
}

// Affine maps image pixels of an imgPx sized image to screen pixels.
func (p Placement) Affine(imgPx image.Point, pxPerDp float32) f32.Affine2D {
	if imgPx.X <= 0 || imgPx.Y <= 0 {
		return f32.Affine2D{}
	}
	tl := p.TopLeft()
	sx := float32(p.Fit.Size.W*p.Scale) * pxPerDp / float32(imgPx.X)
	sy := float32(p.Fit.Size.H*p.Scale) * pxPerDp / float32(imgPx.Y)
	return f32.Affine2D{}.
		Scale(f32.Point{}, f32.Pt(sx, sy)).
		Offset(f32.Pt(float32(tl.X)*pxPerDp, float32(tl.Y)*pxPerDp))
}

// BackdropAlpha returns the backdrop opacity for a dismiss progress.
func BackdropAlpha(progress float64) uint8 {
	progress = min(max(progress, 0), 1)
	return uint8(255 * (1 - progress))
}

// Backdrop fills the viewport, fading out as the dismiss drag progresses.
func Backdrop(gtx layout.Context, progress float64) {
	col := ColorBackdrop
	col.A = BackdropAlpha(progress)
	paint.Fill(gtx.Ops, col)
}

// Image paints img at placement p.
func Image(gtx layout.Context, img paint.ImageOp, p Placement) {
	img.Filter = paint.FilterLinear
	defer op.Affine(p.Affine(img.Size(), gtx.Metric.PxPerDp)).Push(gtx.Ops).Pop()
	defer clip.Rect(image.Rectangle{Max: img.Size()}).Push(gtx.Ops).Pop()
	img.Add(gtx.Ops)
	paint.PaintOp{}.Add(gtx.Ops)
}

// Placeholder fills the area an image at placement p would cover.
func Placeholder(gtx layout.Context, p Placement) {
	tl := p.TopLeft()
	px := gtx.Metric.PxPerDp
	r := image.Rect(
		int(float32(tl.X)*px), int(float32(tl.Y)*px),
		int(float32(tl.X+p.Fit.Size.W*p.Scale)*px), int(float32(tl.Y+p.Fit.Size.H*p.Scale)*px),
	)
	paint.FillShape(gtx.Ops, ColorPlaceholder, clip.Rect(r).Op())
}
