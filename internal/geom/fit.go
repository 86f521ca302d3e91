package geom

import "math"

// Size is a width/height pair. Image sizes are intrinsic pixels, viewport
// sizes are viewport points.
type Size struct {
	W float64 `json:"w"`
	H float64 `json:"h"`
}

// Sz is a convenience function to create a Size.
func Sz(w, h float64) Size {
	return Size{W: w, H: h}
}

// Empty reports whether the size has no usable area. Non-finite sizes
// count as empty.
func (s Size) Empty() bool {
	return !(s.W > 0 && s.H > 0) || !Finite(s.W) || !Finite(s.H)
}

// Rect is an axis-aligned rectangle anchored at its top-left corner.
type Rect struct {
	Min  Point
	Size Size
}

// Center returns the center of the rectangle.
func (r Rect) Center() Point {
	return Point{X: r.Min.X + r.Size.W/2, Y: r.Min.Y + r.Size.H/2}
}

// RenderedRect places img inside viewport with aspect-fit ("contain")
// scaling, centered on the axis that does not bind. An empty image or
// viewport yields an empty rectangle.
func RenderedRect(img, viewport Size) Rect {
	if img.Empty() || viewport.Empty() {
		return Rect{}
	}

	imgAspect := img.W / img.H
	viewAspect := viewport.W / viewport.H

	var fitted Size
	if imgAspect > viewAspect {
		// Width binds.
		fitted = Size{W: viewport.W, H: viewport.W / imgAspect}
	} else {
		fitted = Size{W: viewport.H * imgAspect, H: viewport.H}
	}

	return Rect{
		Min: Point{
			X: (viewport.W - fitted.W) / 2,
			Y: (viewport.H - fitted.H) / 2,
		},
		Size: fitted,
	}
}

// MaxPanOffset returns the largest offset magnitude allowed on each axis
// when the fitted image is drawn at scale. The bound is symmetric: legal
// offsets lie in [-max, +max].
func MaxPanOffset(img, viewport Size, scale float64) Point {
	r := RenderedRect(img, viewport)
	if r.Size.Empty() {
		return Point{}
	}
	return Point{
		X: math.Max(0, (r.Size.W*scale-viewport.W)/2),
		Y: math.Max(0, (r.Size.H*scale-viewport.H)/2),
	}
}

// ClampOffset constrains offset so the image edge never pulls inside the
// viewport. At scale <= 1 or a non-finite scale the only legal offset is
// zero. A NaN offset axis clamps to zero. The returned flags report which
// axes were moved by the clamp.
func ClampOffset(offset Point, img, viewport Size, scale float64) (clamped Point, hitX, hitY bool) {
	if !(scale > 1) || !Finite(scale) {
		return Point{}, offset.X != 0, offset.Y != 0
	}
	limit := MaxPanOffset(img, viewport, scale)
	clamped.X, hitX = clampAxis(offset.X, limit.X)
	clamped.Y, hitY = clampAxis(offset.Y, limit.Y)
	return clamped, hitX, hitY
}

func clampAxis(v, limit float64) (float64, bool) {
	switch {
	case math.IsNaN(v):
		return 0, true
	case v > limit:
		return limit, true
	case v < -limit:
		return -limit, true
	}
	return v, false
}
