package interact

import (
	"math"

	"github.com/elektrokombinacija/mediaview/internal/geom"
	"github.com/elektrokombinacija/mediaview/internal/viewer/config"
	"github.com/elektrokombinacija/mediaview/internal/viewer/state"
)

// DismissChanged tracks a vertical drag. Non-finite frames are ignored.
func DismissChanged(s *state.State, cfg config.Config, translationY float64) {
	if !geom.Finite(translationY) {
		return
	}
	s.Dismiss.Update(translationY, cfg.DismissDistance)
}

// DismissEnded decides a released vertical drag. It returns true when the
// viewer should close; otherwise the drag springs back to rest. A
// non-finite velocity counts as zero.
func DismissEnded(s *state.State, cfg config.Config, velocityY float64) bool {
	if !geom.Finite(velocityY) {
		velocityY = 0
	}
	if math.Abs(velocityY) > cfg.DismissVelocity || s.Dismiss.Progress > cfg.DismissCommitRatio {
		return true
	}
	s.Dismiss.Reset()
	return false
}
