package state

import "github.com/elektrokombinacija/mediaview/internal/geom"

// Mode is the engine's state-machine position.
type Mode int

const (
	Idle Mode = iota
	PinchActive
	PanActive
	SwipeActive
	DismissActive
	DoubleTapAnimating
	InertiaActive
)

func (m Mode) String() string {
	return [...]string{"Idle", "PinchActive", "PanActive", "SwipeActive",
		"DismissActive", "DoubleTapAnimating", "InertiaActive"}[m]
}

// MarshalText encodes the mode by name.
func (m Mode) MarshalText() ([]byte, error) {
	return []byte(m.String()), nil
}

// State holds all viewer state.
type State struct {
	Pages    PageSet
	Viewport geom.Size

	Transform Transform
	Session   Session
	Inertia   Inertia
	Dismiss   Dismiss

	// Horizontal drag of the page strip while a swipe is tracked
	SwipeOffset float64

	Mode      Mode
	Animating bool
	Dismissed bool

	lastSessionID uint64
}

// New creates a viewer state showing pages[start] in viewport.
func New(pages []Page, start int, viewport geom.Size) State {
	return State{
		Pages:     NewPageSet(pages, start),
		Viewport:  viewport,
		Transform: NewTransform(),
	}
}

// ImageSize returns the intrinsic size of the current page.
func (s *State) ImageSize() geom.Size {
	return s.Pages.CurrentPage().Size
}

// Clamp clamps the transform against the current page and viewport.
func (s *State) Clamp() (hitX, hitY bool) {
	return s.Transform.Clamp(s.ImageSize(), s.Viewport)
}

// BeginSession starts a new gesture session and returns it.
func (s *State) BeginSession() *Session {
	s.lastSessionID++
	s.Session = Session{ID: s.lastSessionID, Active: true}
	return &s.Session
}

// EndSession discards the gesture session and returns to Idle.
func (s *State) EndSession() {
	s.Session = Session{}
	s.Mode = Idle
}

// ShowPage makes page i current with the rest transform. It does not
// validate i.
func (s *State) ShowPage(i int) {
	s.Pages.Current = i
	s.Transform.Reset()
	s.Dismiss.Reset()
	s.SwipeOffset = 0
}
