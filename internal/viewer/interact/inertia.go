package interact

import (
	"math"

	"github.com/elektrokombinacija/mediaview/internal/geom"
	"github.com/elektrokombinacija/mediaview/internal/viewer/config"
	"github.com/elektrokombinacija/mediaview/internal/viewer/state"
)

// Damping is the pan gain at scale. Deeper zoom gives a gentler response.
// The same curve scales live drag translation and release velocity.
func Damping(scale float64) float64 {
	return 1 / math.Log2(scale+1)
}

// Pan moves the image by a drag's cumulative translation from the last
// committed offset. A non-finite translation is ignored.
func Pan(s *state.State, translation geom.Point) {
	if !translation.IsFinite() {
		return
	}
	t := &s.Transform
	t.Offset = t.LastOffset.Add(translation.Mul(Damping(t.Scale)))
	s.Clamp()
}

// Release ends a pan with the raw release velocity (points per second).
// It arms inertia and returns true when the damped velocity is fast
// enough and the image is zoomed into pan mode; otherwise the transform is
// clamped and committed. A non-finite velocity counts as a release at rest.
func Release(s *state.State, cfg config.Config, velocity geom.Point) bool {
	if !velocity.IsFinite() {
		velocity = geom.Point{}
	}
	t := &s.Transform
	damped := velocity.Mul(Damping(t.Scale))
	if t.Scale <= cfg.PanModeScale || damped.Length() <= cfg.InertiaMinVelocity {
		s.Clamp()
		t.Commit()
		return false
	}

	s.Inertia = state.Inertia{Velocity: damped, Active: true}
	return true
}

// Step advances inertia by one tick and reports whether it is still
// running. An axis that hits its pan bound loses its velocity. On stop the
// final offset is committed.
func Step(s *state.State, cfg config.Config) bool {
	if !s.Inertia.Active {
		return false
	}

	t := &s.Transform
	v := s.Inertia.Velocity.Mul(cfg.InertiaDecay)
	t.Offset = t.Offset.Add(v.Div(cfg.TicksPerSecond))

	hitX, hitY := s.Clamp()
	if hitX {
		v.X = 0
	}
	if hitY {
		v.Y = 0
	}
	s.Inertia.Velocity = v

	if v.Length() < cfg.InertiaStopVelocity {
		s.Inertia.Stop()
		t.Commit()
		return false
	}
	return true
}

// CancelInertia stops inertia where it is. It reports whether inertia was
// running.
func CancelInertia(s *state.State) bool {
	if !s.Inertia.Active {
		return false
	}
	s.Inertia.Stop()
	s.Transform.Commit()
	return true
}
