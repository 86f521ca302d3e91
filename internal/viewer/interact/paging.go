package interact

import (
	"github.com/elektrokombinacija/mediaview/internal/geom"
	"github.com/elektrokombinacija/mediaview/internal/viewer/config"
	"github.com/elektrokombinacija/mediaview/internal/viewer/state"
)

// SwipeChanged tracks a horizontal page drag. Non-finite frames are
// ignored.
func SwipeChanged(s *state.State, translationX float64) {
	if !geom.Finite(translationX) {
		return
	}
	s.SwipeOffset = translationX
}

// ProjectSwipe predicts where a released horizontal drag would come to
// rest.
func ProjectSwipe(cfg config.Config, translationX, velocityX float64) float64 {
	return translationX + velocityX*cfg.SwipeProjection
}

// SwipeEnded settles a page drag from its predicted end translation and
// reports whether the current page changed. Positive translation reveals
// the previous page. A non-finite prediction springs back.
func SwipeEnded(s *state.State, cfg config.Config, predictedX float64) bool {
	s.SwipeOffset = 0
	if !geom.Finite(predictedX) {
		return false
	}

	target := s.Pages.Current
	switch {
	case predictedX > cfg.PageSwipeDistance && s.Pages.HasPrev():
		target--
	case predictedX < -cfg.PageSwipeDistance && s.Pages.HasNext():
		target++
	default:
		return false
	}
	s.ShowPage(target)
	return true
}

// GoTo shows page index with the rest transform. Out-of-range indices and
// the current page are ignored; it reports whether the page changed.
func GoTo(s *state.State, index int) bool {
	if !s.Pages.Valid(index) || index == s.Pages.Current {
		return false
	}
	s.ShowPage(index)
	return true
}
