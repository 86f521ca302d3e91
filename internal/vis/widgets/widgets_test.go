package widgets

import (
	"testing"

	"github.com/elektrokombinacija/mediaview/internal/geom"
	"github.com/elektrokombinacija/mediaview/internal/viewer/engine"
	"github.com/elektrokombinacija/mediaview/internal/viewer/state"
)

func TestIndexAt(t *testing.T) {
	tests := []struct {
		x     float64
		pages int
		want  int
	}{
		{-50, 5, 0},
		{0, 5, 0},
		{49, 5, 1},
		{150, 5, 3},
		{200, 5, 4},
		{900, 5, 4},
		{100, 1, 0},
	}
	for _, tt := range tests {
		if got := IndexAt(tt.x, 200, tt.pages); got != tt.want {
			t.Errorf("IndexAt(%v, 200, %d) = %d, want %d", tt.x, tt.pages, got, tt.want)
		}
	}
}

func TestTitle(t *testing.T) {
	snap := engine.Snapshot{
		Index:     1,
		PageCount: 4,
		Page:      state.Page{ID: "cat.jpg", Size: geom.Sz(10, 10)},
		Scale:     2.5,
	}
	if got, want := Title(snap, ""), "cat.jpg   2 / 4   250%"; got != want {
		t.Errorf("Title() = %q, want %q", got, want)
	}
	if got, want := Title(snap, "X100V"), "cat.jpg   2 / 4   250%   X100V"; got != want {
		t.Errorf("Title() = %q, want %q", got, want)
	}
}
