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

	"github.com/elektrokombinacija/mediaview/internal/viewer/engine"
)

// PageStrip is a scrubber over the page sequence. Pressing or dragging on
// the track jumps to the page under the pointer.
type PageStrip struct {
	engine   *engine.Engine
	dragging bool
}

// NewPageStrip creates a page scrubber.
func NewPageStrip(e *engine.Engine) *PageStrip {
	return &PageStrip{engine: e}
}

// Layout renders the strip. It takes no space for a single page.
func (s *PageStrip) Layout(gtx layout.Context) layout.Dimensions {
	snap := s.engine.Snapshot()
	if snap.PageCount < 2 {
		return layout.Dimensions{}
	}

	height := gtx.Dp(unit.Dp(28))
	margin := gtx.Dp(unit.Dp(20))
	width := gtx.Constraints.Max.X
	trackWidth := width - 2*margin

	rect := image.Rect(0, 0, width, height)
	paint.FillShape(gtx.Ops, color.NRGBA{R: 35, G: 38, B: 42, A: 220}, clip.Rect(rect).Op())

	s.handlePointerEvents(gtx, height, margin, trackWidth, snap.PageCount)

	trackY := height / 2
	trackHeight := gtx.Dp(unit.Dp(4))
	trackRect := image.Rect(margin, trackY-trackHeight/2, margin+trackWidth, trackY+trackHeight/2)
	paint.FillShape(gtx.Ops, color.NRGBA{R: 60, G: 65, B: 70, A: 255}, clip.Rect(trackRect).Op())

	fill := int(float64(trackWidth) * float64(snap.Index) / float64(snap.PageCount-1))
	if fill > 0 {
		fillRect := image.Rect(margin, trackY-trackHeight/2, margin+fill, trackY+trackHeight/2)
		paint.FillShape(gtx.Ops, color.NRGBA{R: 100, G: 180, B: 255, A: 255}, clip.Rect(fillRect).Op())
	}

	headX := margin + fill
	headSize := gtx.Dp(unit.Dp(10))
	headRect := image.Rect(headX-headSize/2, trackY-headSize/2, headX+headSize/2, trackY+headSize/2)
	paint.FillShape(gtx.Ops, color.NRGBA{R: 255, G: 255, B: 255, A: 255}, clip.Rect(headRect).Op())

	return layout.Dimensions{Size: image.Point{X: width, Y: height}}
}

func (s *PageStrip) handlePointerEvents(gtx layout.Context, height, margin, trackWidth, pages int) {
	area := clip.Rect(image.Rect(0, 0, gtx.Constraints.Max.X, height)).Push(gtx.Ops)
	event.Op(gtx.Ops, s)
	area.Pop()

	for {
		ev, ok := gtx.Event(pointer.Filter{
			Target: s,
			Kinds:  pointer.Press | pointer.Drag | pointer.Release | pointer.Cancel,
		})
		if !ok {
			break
		}
		pe, ok := ev.(pointer.Event)
		if !ok {
			continue
		}
		switch pe.Kind {
		case pointer.Press:
			s.dragging = true
			s.seek(pe.Position.X, margin, trackWidth, pages)
		case pointer.Drag:
			if s.dragging {
				s.seek(pe.Position.X, margin, trackWidth, pages)
			}
		case pointer.Release, pointer.Cancel:
			s.dragging = false
		}
	}
}

func (s *PageStrip) seek(x float32, margin, trackWidth, pages int) {
	i := IndexAt(float64(x)-float64(margin), float64(trackWidth), pages)
	if i != s.engine.Snapshot().Index {
		s.engine.Dispatch(engine.GoToPage{Index: i})
	}
}

// IndexAt returns the page nearest to position x along a track of the
// given width.
func IndexAt(x, trackWidth float64, pages int) int {
	if pages < 2 || trackWidth <= 0 {
		return 0
	}
	progress := min(max(x/trackWidth, 0), 1)
	return int(math.Round(progress * float64(pages-1)))
}
