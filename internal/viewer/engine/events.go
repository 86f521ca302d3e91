package engine

import (
	"fmt"
	"strings"

	"github.com/elektrokombinacija/mediaview/internal/geom"
)

// Event is an input to the engine. Points are in viewport coordinates
// with the origin at the viewport center; velocities are in points per
// second.
type Event interface {
	isEvent()
}

// PinchChanged is one frame of a two-finger pinch. ScaleFactor is
// cumulative since the pinch began.
type PinchChanged struct {
	ScaleFactor float64
	Focal       geom.Point
}

// PinchEnded ends a pinch.
type PinchEnded struct{}

// PanChanged is one frame of a one-finger drag with the cumulative
// translation since the finger went down. The engine decides whether the
// drag pans, swipes pages or drags to dismiss.
type PanChanged struct {
	Translation geom.Point
}

// PanEnded releases a one-finger drag.
type PanEnded struct {
	Velocity geom.Point
}

// SwipeChanged is a horizontal page drag reported by a host with its own
// recognizer.
type SwipeChanged struct {
	TranslationX float64
}

// SwipeEnded releases a horizontal page drag.
type SwipeEnded struct {
	PredictedTranslationX float64
}

// DismissChanged is a vertical dismiss drag reported by a host with its
// own recognizer.
type DismissChanged struct {
	TranslationY float64
}

// DismissEnded releases a vertical dismiss drag.
type DismissEnded struct {
	VelocityY float64
}

// DoubleTapped toggles zoom around At.
type DoubleTapped struct {
	At geom.Point
}

// GoToPage shows the page at Index.
type GoToPage struct {
	Index int
}

// DismissRequested closes the viewer without a gesture.
type DismissRequested struct{}

// Resized reports a new viewport size.
type Resized struct {
	Viewport geom.Size
}

// ViewDisappeared stops all motion when the owning view goes away.
type ViewDisappeared struct{}

// Tick advances inertia by one fixed step.
type Tick struct{}

// AnimationFinished ends the double-tap animation.
type AnimationFinished struct{}

func (PinchChanged) isEvent()      {}
func (PinchEnded) isEvent()        {}
func (PanChanged) isEvent()        {}
func (PanEnded) isEvent()          {}
func (SwipeChanged) isEvent()      {}
func (SwipeEnded) isEvent()        {}
func (DismissChanged) isEvent()    {}
func (DismissEnded) isEvent()      {}
func (DoubleTapped) isEvent()      {}
func (GoToPage) isEvent()          {}
func (DismissRequested) isEvent()  {}
func (Resized) isEvent()           {}
func (ViewDisappeared) isEvent()   {}
func (Tick) isEvent()              {}
func (AnimationFinished) isEvent() {}

// finite reports whether the coordinates an event carries are finite. End
// events are not checked; their velocities fall back to zero downstream.
func finite(ev Event) bool {
	switch e := ev.(type) {
	case PinchChanged:
		return geom.Finite(e.ScaleFactor) && e.Focal.IsFinite()
	case PanChanged:
		return e.Translation.IsFinite()
	case SwipeChanged:
		return geom.Finite(e.TranslationX)
	case DismissChanged:
		return geom.Finite(e.TranslationY)
	case DoubleTapped:
		return e.At.IsFinite()
	case Resized:
		return geom.Finite(e.Viewport.W) && geom.Finite(e.Viewport.H)
	}
	return true
}

func eventName(ev Event) string {
	return strings.TrimPrefix(fmt.Sprintf("%T", ev), "engine.")
}
