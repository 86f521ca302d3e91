package state

import "github.com/elektrokombinacija/mediaview/internal/geom"

// Direction is the latched direction of a one-finger drag.
type Direction int

const (
	Unclassified Direction = iota
	Vertical
	Horizontal
)

func (d Direction) String() string {
	return [...]string{"Unclassified", "Vertical", "Horizontal"}[d]
}

// Kind is the semantic a gesture session was assigned.
type Kind int

const (
	KindNone Kind = iota
	KindPinch
	KindPan
	KindSwipe
	KindDismiss
	KindDoubleTapAnimation
)

func (k Kind) String() string {
	return [...]string{"None", "Pinch", "Pan", "Swipe", "Dismiss", "DoubleTapAnimation"}[k]
}

// Session is the bookkeeping of one pointer gesture. It only exists while
// Active is set.
type Session struct {
	ID        uint64
	Active    bool
	Direction Direction
	Kind      Kind

	// Last cumulative drag translation seen in this session
	Translation geom.Point
}

// Inertia is the decaying post-release pan velocity.
type Inertia struct {
	Velocity geom.Point
	Active   bool
}

// Stop clears the inertia state.
func (i *Inertia) Stop() {
	*i = Inertia{}
}
