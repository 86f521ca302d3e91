package engine

import (
	"github.com/elektrokombinacija/mediaview/internal/geom"
	"github.com/elektrokombinacija/mediaview/internal/viewer/state"
)

// Snapshot is everything a renderer needs to draw the current page.
type Snapshot struct {
	Index     int        `json:"index"`
	PageCount int        `json:"page_count"`
	Page      state.Page `json:"-"`

	Scale  float64    `json:"scale"`
	Offset geom.Point `json:"offset"`

	DismissProgress     float64 `json:"dismiss_progress"`
	DismissTranslationY float64 `json:"dismiss_translation_y"`
	SwipeDragOffset     float64 `json:"swipe_drag_offset"`

	IsInertiaActive bool       `json:"inertia_active"`
	Animating       bool       `json:"animating"`
	Mode            state.Mode `json:"mode"`
	Dismissed       bool       `json:"dismissed"`
}

func snapshotOf(s *state.State) Snapshot {
	return Snapshot{
		Index:               s.Pages.Current,
		PageCount:           s.Pages.Len(),
		Page:                s.Pages.CurrentPage(),
		Scale:               s.Transform.Scale,
		Offset:              s.Transform.Offset,
		DismissProgress:     s.Dismiss.Progress,
		DismissTranslationY: s.Dismiss.TranslationY,
		SwipeDragOffset:     s.SwipeOffset,
		IsInertiaActive:     s.Inertia.Active,
		Animating:           s.Animating,
		Mode:                s.Mode,
		Dismissed:           s.Dismissed,
	}
}
