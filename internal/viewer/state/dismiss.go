package state

import "math"

// Dismiss tracks a vertical drag towards closing the viewer.
type Dismiss struct {
	TranslationY float64
	Progress     float64 // in [0, 1]
}

// Update sets the translation and derives progress against distance.
func (d *Dismiss) Update(translationY, distance float64) {
	d.TranslationY = translationY
	d.Progress = math.Min(math.Abs(translationY)/distance, 1)
}

// Reset springs the drag back to rest.
func (d *Dismiss) Reset() {
	*d = Dismiss{}
}
