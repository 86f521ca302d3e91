// Package interact turns desktop pointer and key input into viewer
// gesture events.
package interact

import (
	"time"

	"gioui.org/f32"
	"gioui.org/io/key"
	"gioui.org/io/pointer"

	"github.com/elektrokombinacija/mediaview/internal/geom"
	"github.com/elektrokombinacija/mediaview/internal/viewer/engine"
)

const (
	// Second click within this interval and distance is a double tap.
	doubleClickInterval = 300 * time.Millisecond
	doubleClickSlop     = 8.0

	// Ctrl+scroll zooms by this factor per wheel step and ends the
	// synthetic pinch after pinchIdle without scrolling.
	scrollZoomStep = 1.1
	pinchIdle      = 150 * time.Millisecond

	// Release velocity is measured over the trailing window.
	velocityWindow = 100 * time.Millisecond
	maxSamples     = 16
)

type sample struct {
	at  time.Duration
	pos geom.Point
}

// Adapter converts pointer events in pixels to engine events in viewport
// points. Mouse drags become PanChanged/PanEnded with a release velocity,
// double clicks become DoubleTapped and Ctrl+scroll becomes a pinch
// focused on the cursor.
type Adapter struct {
	center   f32.Point
	pxPerDp  float32
	viewport geom.Size

	pressed bool
	dragged bool
	start   geom.Point
	samples []sample

	lastClick    time.Duration
	lastClickPos geom.Point
	clicked      bool

	pinching    bool
	pinchFactor float64
	pinchFocal  geom.Point
	lastScroll  time.Time
}

// NewAdapter creates an adapter with 1 pixel per point.
func NewAdapter() *Adapter {
	return &Adapter{pxPerDp: 1}
}

// SetViewport records the viewport size in pixels and the display density.
// It returns a Resized event when the size in points changed.
func (a *Adapter) SetViewport(sizePx f32.Point, pxPerDp float32) (engine.Event, bool) {
	if pxPerDp <= 0 {
		pxPerDp = 1
	}
	a.pxPerDp = pxPerDp
	a.center = sizePx.Mul(0.5)

	vp := geom.Sz(float64(sizePx.X/pxPerDp), float64(sizePx.Y/pxPerDp))
	if vp == a.viewport {
		return nil, false
	}
	a.viewport = vp
	return engine.Resized{Viewport: vp}, true
}

// Viewport returns the last viewport size in points.
func (a *Adapter) Viewport() geom.Size {
	return a.viewport
}

// toViewport maps a pixel position to points relative to the viewport
// center.
func (a *Adapter) toViewport(p f32.Point) geom.Point {
	d := p.Sub(a.center).Div(a.pxPerDp)
	return geom.Pt(float64(d.X), float64(d.Y))
}

// Pointer converts one pointer event. now is the frame time, used to end
// scroll pinches.
func (a *Adapter) Pointer(ev pointer.Event, now time.Time) []engine.Event {
	var out []engine.Event
	pos := a.toViewport(ev.Position)

	switch ev.Kind {
	case pointer.Press:
		if !ev.Buttons.Contain(pointer.ButtonPrimary) {
			break
		}
		out = append(out, a.endPinch()...)
		a.pressed = true
		a.dragged = false
		a.start = pos
		a.samples = append(a.samples[:0], sample{at: ev.Time, pos: pos})

		if a.clicked && ev.Time-a.lastClick <= doubleClickInterval &&
			pos.Sub(a.lastClickPos).Length() <= doubleClickSlop {
			a.clicked = false
			out = append(out, engine.DoubleTapped{At: pos})
			break
		}
		a.clicked = true
		a.lastClick = ev.Time
		a.lastClickPos = pos

	case pointer.Drag:
		if !a.pressed {
			break
		}
		a.dragged = true
		a.record(ev.Time, pos)
		out = append(out, engine.PanChanged{Translation: pos.Sub(a.start)})

	case pointer.Release, pointer.Cancel:
		if !a.pressed {
			break
		}
		a.pressed = false
		if !a.dragged {
			break
		}
		var v geom.Point
		if ev.Kind == pointer.Release {
			a.record(ev.Time, pos)
			v = a.velocity()
		}
		out = append(out, engine.PanEnded{Velocity: v})

	case pointer.Scroll:
		if !ev.Modifiers.Contain(key.ModShortcut) || ev.Scroll.Y == 0 || a.pressed {
			break
		}
		if !a.pinching {
			a.pinching = true
			a.pinchFactor = 1
			a.pinchFocal = pos
		}
		if ev.Scroll.Y > 0 {
			a.pinchFactor /= scrollZoomStep
		} else {
			a.pinchFactor *= scrollZoomStep
		}
		a.lastScroll = now
		out = append(out, engine.PinchChanged{ScaleFactor: a.pinchFactor, Focal: a.pinchFocal})
	}
	return out
}

// Flush ends a scroll pinch that has been idle long enough.
func (a *Adapter) Flush(now time.Time) []engine.Event {
	if a.pinching && now.Sub(a.lastScroll) >= pinchIdle {
		return a.endPinch()
	}
	return nil
}

// Pending reports whether a scroll pinch is waiting for Flush.
func (a *Adapter) Pending() bool {
	return a.pinching
}

func (a *Adapter) endPinch() []engine.Event {
	if !a.pinching {
		return nil
	}
	a.pinching = false
	return []engine.Event{engine.PinchEnded{}}
}

func (a *Adapter) record(at time.Duration, pos geom.Point) {
	if len(a.samples) == maxSamples {
		copy(a.samples, a.samples[1:])
		a.samples = a.samples[:maxSamples-1]
	}
	a.samples = append(a.samples, sample{at: at, pos: pos})
}

// velocity returns the drag velocity over the trailing window in points
// per second.
func (a *Adapter) velocity() geom.Point {
	if len(a.samples) < 2 {
		return geom.Point{}
	}
	last := a.samples[len(a.samples)-1]
	first := last
	for i := len(a.samples) - 2; i >= 0; i-- {
		if last.at-a.samples[i].at > velocityWindow {
			break
		}
		first = a.samples[i]
	}
	dt := (last.at - first.at).Seconds()
	if dt <= 0 {
		return geom.Point{}
	}
	return last.pos.Sub(first.pos).Div(dt)
}

// Key converts a key press for a viewer showing page index.
func (a *Adapter) Key(ev key.Event, index int) (engine.Event, bool) {
	if ev.State != key.Press {
		return nil, false
	}
	switch ev.Name {
	case key.NameLeftArrow, key.NamePageUp:
		return engine.GoToPage{Index: index - 1}, true
	case key.NameRightArrow, key.NamePageDown, key.NameSpace:
		return engine.GoToPage{Index: index + 1}, true
	case key.NameHome:
		return engine.GoToPage{Index: 0}, true
	case key.NameEscape:
		return engine.DismissRequested{}, true
	}
	return nil, false
}
