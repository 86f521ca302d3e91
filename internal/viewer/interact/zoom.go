package interact

import (
	"math"

	"github.com/elektrokombinacija/mediaview/internal/geom"
	"github.com/elektrokombinacija/mediaview/internal/viewer/config"
	"github.com/elektrokombinacija/mediaview/internal/viewer/state"
)

// ImageToViewport maps an image-space point to viewport coordinates
// (origin at the viewport center).
func ImageToViewport(t state.Transform, p geom.Point) geom.Point {
	return p.Mul(t.Scale).Add(t.Offset)
}

// ViewportToImage maps a viewport point (origin at the viewport center) to
// image space.
func ViewportToImage(t state.Transform, p geom.Point) geom.Point {
	return p.Sub(t.Offset).Div(t.Scale)
}

// AnchoredZoom returns t rescaled to target with the offset adjusted so the
// image point under focal stays under focal.
func AnchoredZoom(t state.Transform, focal geom.Point, target float64) state.Transform {
	anchor := ViewportToImage(t, focal)
	t.Scale = target
	t.Offset = focal.Sub(anchor.Mul(target))
	return t
}

// ClampScale limits scale to the configured range. NaN maps to the rest
// scale.
func ClampScale(scale float64, cfg config.Config) float64 {
	if math.IsNaN(scale) {
		return 1
	}
	return min(max(scale, cfg.MinScale), cfg.MaxScale)
}

// PinchChanged applies one pinch frame. scaleFactor is the gesture's
// cumulative factor since it began; focal is in viewport coordinates with
// the origin at the viewport center. Frames with a non-finite factor or
// focal are ignored.
func PinchChanged(s *state.State, cfg config.Config, scaleFactor float64, focal geom.Point) {
	if !geom.Finite(scaleFactor) || !focal.IsFinite() {
		return
	}
	t := &s.Transform
	if !t.Anchored {
		t.Anchor = ViewportToImage(*t, focal)
		t.Anchored = true
	}
	if scaleFactor <= 0 || t.LastScaleFactor <= 0 {
		return
	}

	newScale := ClampScale(t.Scale*(scaleFactor/t.LastScaleFactor), cfg)
	if newScale != t.Scale {
		t.Scale = newScale
		t.Offset = focal.Sub(t.Anchor.Mul(newScale))
	}
	t.LastScaleFactor = scaleFactor

	// Re-anchor on the visible position so the next frame does not snap.
	if hitX, hitY := s.Clamp(); hitX || hitY {
		t.Anchor = ViewportToImage(*t, focal)
	}
}

// PinchEnded finishes a pinch. A pinch that ends nearly at rest snaps back
// to the rest transform.
func PinchEnded(s *state.State, cfg config.Config) {
	t := &s.Transform
	t.LastScaleFactor = 1
	t.ClearAnchor()

	if t.Scale < cfg.RestSnapScale || t.Scale < cfg.MinScale {
		t.Reset()
		return
	}
	s.Clamp()
	t.Commit()
}

// DoubleTap toggles between rest and the double-tap zoom level, zooming in
// around at (viewport coordinates, origin at the center). A non-finite tap
// point is ignored.
func DoubleTap(s *state.State, cfg config.Config, at geom.Point) {
	if !at.IsFinite() {
		return
	}
	t := &s.Transform
	if t.Scale >= cfg.DoubleTapToggleScale {
		t.Reset()
		return
	}

	*t = AnchoredZoom(*t, at, ClampScale(cfg.DoubleTapScale, cfg))
	t.LastScaleFactor = 1
	t.ClearAnchor()
	s.Clamp()
	t.Commit()
}
