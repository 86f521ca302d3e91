// Package widgets provides Gio UI widgets for the media viewer.
package widgets

import (
	"image"
	"image/color"
	"math"

	"gioui.org/io/event"
	"gioui.org/io/pointer"
	"gioui.org/layout"
	"gioui.org/op/clip"
	"gioui.org/op/paint"
	"gioui.org/unit"
	"gioui.org/widget/material"

	"github.com/elektrokombinacija/mediaview/internal/library"
	"github.com/elektrokombinacija/mediaview/internal/viewer/engine"
	"github.com/elektrokombinacija/mediaview/internal/vis/draw"
	"github.com/elektrokombinacija/mediaview/internal/vis/interact"
)

// Viewer shows the current page and its neighbours and feeds pointer
// input to the engine. Pages are decoded by a background loader; a
// placeholder stands in until a page arrives.
type Viewer struct {
	engine *engine.Engine
	loader *library.Loader
	input  *interact.Adapter

	images map[int]paint.ImageOp
	errs   map[int]error
}

// NewViewer creates a viewer widget.
func NewViewer(e *engine.Engine, loader *library.Loader, input *interact.Adapter) *Viewer {
	return &Viewer{
		engine: e,
		loader: loader,
		input:  input,
		images: make(map[int]paint.ImageOp),
		errs:   make(map[int]error),
	}
}

// Layout renders the viewer.
func (v *Viewer) Layout(gtx layout.Context, th *material.Theme) layout.Dimensions {
	bounds := gtx.Constraints.Max
	defer clip.Rect(image.Rect(0, 0, bounds.X, bounds.Y)).Push(gtx.Ops).Pop()

	if ev, ok := v.input.SetViewport(layout.FPt(bounds), gtx.Metric.PxPerDp); ok {
		v.engine.Dispatch(ev)
	}
	v.handlePointerEvents(gtx)
	v.collect()

	snap := v.engine.Snapshot()
	draw.Backdrop(gtx, snap.DismissProgress)

	pages := v.engine.State().Pages
	for _, slot := range []int{-1, 1, 0} {
		i := snap.Index + slot
		if !pages.Valid(i) {
			continue
		}
		// Neighbours are requested before a swipe reveals them.
		img, ok := v.image(i)
		if slot != 0 && snap.SwipeDragOffset == 0 {
			continue
		}
		p := draw.Place(snap, pages.Pages[i].Size, v.input.Viewport(), slot)
		if ok {
			draw.Image(gtx, img, p)
		} else {
			draw.Placeholder(gtx, p)
		}
	}

	if err := v.errs[snap.Index]; err != nil {
		v.layoutError(gtx, th, err)
	}
	return layout.Dimensions{Size: bounds}
}

// collect turns decoded pages delivered by the loader into paint ops.
// Pages that left the window while decoding are discarded.
func (v *Viewer) collect() {
	for _, r := range v.loader.Poll() {
		if !v.loader.Wanted(r.Index) {
			continue
		}
		if r.Err != nil {
			v.errs[r.Index] = r.Err
			engine.Logger().Warn("decode failed", "index", r.Index, "err", r.Err)
			continue
		}
		v.images[r.Index] = paint.NewImageOp(r.Image)
	}
}

// image returns the paint op for page i, requesting a decode when it has
// none yet.
func (v *Viewer) image(i int) (paint.ImageOp, bool) {
	if img, ok := v.images[i]; ok {
		return img, true
	}
	if _, failed := v.errs[i]; !failed {
		v.loader.Request(i)
	}
	return paint.ImageOp{}, false
}

// Retain keeps decoded images for page i and its neighbours only.
func (v *Viewer) Retain(i int) {
	for k := range v.images {
		if k < i-1 || k > i+1 {
			delete(v.images, k)
		}
	}
	v.loader.Retain(i)
}

func (v *Viewer) layoutError(gtx layout.Context, th *material.Theme, err error) {
	layout.Center.Layout(gtx, func(gtx layout.Context) layout.Dimensions {
		return layout.UniformInset(unit.Dp(16)).Layout(gtx, func(gtx layout.Context) layout.Dimensions {
			label := material.Body1(th, err.Error())
			label.Color = color.NRGBA{R: 230, G: 120, B: 110, A: 255}
			return label.Layout(gtx)
		})
	})
}

func (v *Viewer) handlePointerEvents(gtx layout.Context) {
	area := clip.Rect(image.Rect(0, 0, gtx.Constraints.Max.X, gtx.Constraints.Max.Y)).Push(gtx.Ops)
	event.Op(gtx.Ops, v)
	area.Pop()

	for {
		ev, ok := gtx.Event(pointer.Filter{
			Target:  v,
			Kinds:   pointer.Press | pointer.Drag | pointer.Release | pointer.Cancel | pointer.Scroll,
			ScrollY: pointer.ScrollRange{Min: math.MinInt32, Max: math.MaxInt32},
		})
		if !ok {
			break
		}
		if pe, ok := ev.(pointer.Event); ok {
			for _, e := range v.input.Pointer(pe, gtx.Now) {
				v.engine.Dispatch(e)
			}
		}
	}
}
