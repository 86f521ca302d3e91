package draw

import (
	"image"
	"testing"

	"gioui.org/f32"

	"github.com/elektrokombinacija/mediaview/internal/geom"
	"github.com/elektrokombinacija/mediaview/internal/viewer/engine"
)

func TestPlaceCurrentPage(t *testing.T) {
	tests := []struct {
		name     string
		progress float64
		want     geom.Point
	}{
		// Fitted 400x200, doubled to 800x400 around the viewport center,
		// then shifted by the offset and the dismiss drag.
		{"at rest", 0, geom.Pt(200-400+30, 150-200-10+5)},
		// Drawn at 2*0.875: 700x350.
		{"half dismissed", 0.5, geom.Pt(200-350+30, 150-175-10+5)},
		// Drawn at 2*0.75: 600x300.
		{"fully dismissed", 1, geom.Pt(200-300+30, 150-150-10+5)},
	}

	for _, tt := range tests {
		snap := engine.Snapshot{Scale: 2, Offset: geom.Pt(30, -10), DismissTranslationY: 5, DismissProgress: tt.progress}
		p := Place(snap, geom.Sz(800, 400), geom.Sz(400, 300), 0)
		if got := p.TopLeft(); got != tt.want {
			t.Errorf("%s: TopLeft() = %v, want %v", tt.name, got, tt.want)
		}
		if got, want := p.Scale, 2*DismissScale(tt.progress); got != want {
			t.Errorf("%s: Scale = %v, want %v", tt.name, got, want)
		}
	}

	p := Place(engine.Snapshot{Scale: 2, Offset: geom.Pt(30, -10), DismissTranslationY: 5}, geom.Sz(800, 400), geom.Sz(400, 300), 0)
	aff := p.Affine(image.Pt(1600, 800), 2)
	if got, want := aff.Transform(f32.Pt(0, 0)), f32.Pt(-340, -110); got != want {
		t.Errorf("image origin at %v, want %v", got, want)
	}
	if got, want := aff.Transform(f32.Pt(1600, 800)), f32.Pt(-340+1600, -110+800); got != want {
		t.Errorf("image corner at %v, want %v", got, want)
	}
}

func TestDismissScale(t *testing.T) {
	tests := []struct {
		progress, want float64
	}{
		{-1, 1},
		{0, 1},
		{0.5, 0.875},
		{1, 0.75},
		{3, 0.75},
	}
	for _, tt := range tests {
		if got := DismissScale(tt.progress); got != tt.want {
			t.Errorf("DismissScale(%v) = %v, want %v", tt.progress, got, tt.want)
		}
	}
}

func TestPlaceNeighbours(t *testing.T) {
	snap := engine.Snapshot{Scale: 1, SwipeDragOffset: -120, DismissTranslationY: 50}
	vp := geom.Sz(400, 300)

	next := Place(snap, geom.Sz(400, 300), vp, 1)
	if got, want := next.TopLeft(), geom.Pt(400-120, 0); got != want {
		t.Errorf("next page at %v, want %v", got, want)
	}
	prev := Place(snap, geom.Sz(300, 300), vp, -1)
	if got, want := prev.TopLeft(), geom.Pt(-400-120+50, 0); got != want {
		t.Errorf("previous page at %v, want %v", got, want)
	}
}

func TestAffineEmptyImage(t *testing.T) {
	p := Place(engine.Snapshot{Scale: 1}, geom.Sz(10, 10), geom.Sz(10, 10), 0)
	if got := p.Affine(image.Point{}, 1); got != (f32.Affine2D{}) {
		t.Errorf("Affine of empty image = %v, want identity", got)
	}
}

func TestBackdropAlpha(t *testing.T) {
	tests := []struct {
		progress float64
		want     uint8
	}{
		{-1, 255},
		{0, 255},
		{0.5, 127},
		{1, 0},
		{3, 0},
	}
	for _, tt := range tests {
		if got := BackdropAlpha(tt.progress); got != tt.want {
			t.Errorf("BackdropAlpha(%v) = %d, want %d", tt.progress, got, tt.want)
		}
	}
}
