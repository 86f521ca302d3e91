// Package interact implements the viewer's gesture semantics: drag
// classification, anchored zoom, pan with inertia, dismiss and paging.
//
// All functions mutate a *state.State in place and never block; timing is
// the caller's business.
package interact

import (
	"math"

	"github.com/elektrokombinacija/mediaview/internal/geom"
	"github.com/elektrokombinacija/mediaview/internal/viewer/config"
	"github.com/elektrokombinacija/mediaview/internal/viewer/state"
)

// Classify returns the direction of a drag with the given cumulative
// translation, or Unclassified while it has not moved beyond threshold.
// Steeper than 45° is vertical.
func Classify(translation geom.Point, threshold float64) state.Direction {
	if translation.Length() <= threshold {
		return state.Unclassified
	}
	angle := math.Atan2(math.Abs(translation.Y), math.Abs(translation.X))
	if angle > math.Pi/4 {
		return state.Vertical
	}
	return state.Horizontal
}

// Route assigns the active drag session its kind, latching it on first
// success. It returns KindNone while the drag is still too short to
// classify; such movement must not be routed anywhere.
//
// Zoomed beyond cfg.PanModeScale every drag pans. Otherwise a vertical
// drag dismisses, and a horizontal drag pages at rest scale or pans a
// barely zoomed image.
func Route(s *state.State, cfg config.Config, translation geom.Point) state.Kind {
	sess := &s.Session
	if sess.Kind != state.KindNone {
		return sess.Kind
	}

	if s.Transform.Scale > cfg.PanModeScale {
		sess.Kind = state.KindPan
		return sess.Kind
	}

	dir := Classify(translation, cfg.ClassifyDistance)
	switch dir {
	case state.Unclassified:
		return state.KindNone
	case state.Vertical:
		sess.Kind = state.KindDismiss
	case state.Horizontal:
		if s.Transform.Scale <= cfg.PagingMaxScale {
			sess.Kind = state.KindSwipe
		} else {
			sess.Kind = state.KindPan
		}
	}
	sess.Direction = dir
	return sess.Kind
}

// Admit reports whether a directly delivered swipe (Horizontal) or dismiss
// (Vertical) event may join the active session, latching the session on
// first admission. Events contradicting a latched direction or another
// latched kind are refused.
func Admit(s *state.State, cfg config.Config, dir state.Direction) bool {
	want := state.KindSwipe
	maxScale := cfg.PagingMaxScale
	if dir == state.Vertical {
		want = state.KindDismiss
		maxScale = cfg.PanModeScale
	}

	sess := &s.Session
	if sess.Kind == want {
		return true
	}
	if sess.Kind != state.KindNone {
		return false
	}
	if sess.Direction != state.Unclassified && sess.Direction != dir {
		return false
	}
	if s.Transform.Scale > maxScale {
		return false
	}
	sess.Direction = dir
	sess.Kind = want
	return true
}
