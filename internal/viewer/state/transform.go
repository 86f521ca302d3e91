// Package state holds the viewer's transform and gesture bookkeeping.
//
// Every type here is a plain value so that a State can be copied by the
// reducer without aliasing.
package state

import "github.com/elektrokombinacija/mediaview/internal/geom"

// Transform is the viewport transform of the current page.
type Transform struct {
	Scale float64
	// Translation of the rendered image center from the viewport center
	Offset geom.Point

	// Base values for the next gesture delta
	LastOffset      geom.Point
	LastScaleFactor float64

	// Pinch focal point in image space, valid while Anchored
	Anchor   geom.Point
	Anchored bool
}

// NewTransform creates the rest transform.
func NewTransform() Transform {
	return Transform{
		Scale:           1,
		LastScaleFactor: 1,
	}
}

// Reset restores the rest transform.
func (t *Transform) Reset() {
	*t = NewTransform()
}

// Clamp constrains the offset to the legal pan range for the image shown
// in viewport at the current scale. It reports which axes were moved.
func (t *Transform) Clamp(img, viewport geom.Size) (hitX, hitY bool) {
	t.Offset, hitX, hitY = geom.ClampOffset(t.Offset, img, viewport, t.Scale)
	return hitX, hitY
}

// Commit records the current offset as the base for the next gesture.
func (t *Transform) Commit() {
	t.LastOffset = t.Offset
}

// ClearAnchor drops the pinch anchor.
func (t *Transform) ClearAnchor() {
	t.Anchor = geom.Point{}
	t.Anchored = false
}

// IsRest reports whether the transform equals the rest transform.
func (t Transform) IsRest() bool {
	return t.Scale == 1 && t.Offset.IsZero()
}
