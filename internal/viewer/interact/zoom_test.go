package interact

import (
	"math"
	"math/rand"
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/google/go-cmp/cmp/cmpopts"

	"github.com/elektrokombinacija/mediaview/internal/geom"
	"github.com/elektrokombinacija/mediaview/internal/viewer/config"
	"github.com/elektrokombinacija/mediaview/internal/viewer/state"
)

const eps = 1e-9

func TestPinchPreservesAnchor(t *testing.T) {
	cfg := config.Default()
	s := newTestState(1, 0)
	focal := geom.Pt(50, 30)

	PinchChanged(&s, cfg, 2.0, focal)

	tr := s.Transform
	if tr.Scale != 2 {
		t.Fatalf("scale = %v, want 2", tr.Scale)
	}
	if want := focal.Sub(tr.Anchor.Mul(2)); !tr.Offset.ApproxEqual(want, eps) {
		t.Errorf("offset = %v, want %v", tr.Offset, want)
	}
	if got := ImageToViewport(tr, geom.Pt(50, 30)); !got.ApproxEqual(focal, eps) {
		t.Errorf("anchor rendered at %v, want %v", got, focal)
	}
}

func TestPinchMultiFrame(t *testing.T) {
	cfg := config.Default()
	s := newTestState(1, 0)
	focal := geom.Pt(-40, 25)

	for _, f := range []float64{1.2, 1.5, 1.9, 2.4} {
		PinchChanged(&s, cfg, f, focal)
	}

	tr := s.Transform
	if math.Abs(tr.Scale-2.4) > eps {
		t.Errorf("scale = %v, want 2.4", tr.Scale)
	}
	if tr.LastScaleFactor != 2.4 {
		t.Errorf("LastScaleFactor = %v, want 2.4", tr.LastScaleFactor)
	}
	if got := ImageToViewport(tr, tr.Anchor); !got.ApproxEqual(focal, 1e-6) {
		t.Errorf("anchor drifted to %v", got)
	}
}

func TestPinchClampsScale(t *testing.T) {
	cfg := config.Default()
	s := newTestState(1, 0)

	PinchChanged(&s, cfg, 10, geom.Pt(0, 0))
	if s.Transform.Scale != cfg.MaxScale {
		t.Errorf("scale = %v, want max %v", s.Transform.Scale, cfg.MaxScale)
	}

	PinchChanged(&s, cfg, 0.1, geom.Pt(0, 0))
	if s.Transform.Scale != cfg.MinScale {
		t.Errorf("scale = %v, want min %v", s.Transform.Scale, cfg.MinScale)
	}
}

func TestPinchReanchorsAfterClamp(t *testing.T) {
	cfg := config.Default()
	s := newTestState(1, 0)
	s.Transform.Scale = 4
	s.Transform.Offset = geom.Pt(600, 0) // right bound at scale 4
	s.Transform.Commit()
	focal := geom.Pt(-100, 0)

	PinchChanged(&s, cfg, 0.5, focal)

	tr := s.Transform
	if tr.Scale != 2 {
		t.Fatalf("scale = %v, want 2", tr.Scale)
	}
	if !tr.Offset.ApproxEqual(geom.Pt(200, 0), eps) {
		t.Errorf("offset = %v, want clamped (200, 0)", tr.Offset)
	}
	if !tr.Anchor.ApproxEqual(geom.Pt(-150, 0), eps) {
		t.Errorf("anchor = %v, want re-anchored (-150, 0)", tr.Anchor)
	}
}

func TestPinchEnded(t *testing.T) {
	cfg := config.Default()

	tests := []struct {
		name   string
		scale  float64
		offset geom.Point
		want   state.Transform
	}{
		{
			name:  "nearly at rest snaps",
			scale: 1.03, offset: geom.Pt(3, 1),
			want: state.NewTransform(),
		},
		{
			name:  "zoomed commits",
			scale: 2, offset: geom.Pt(-50, -30),
			want: state.Transform{
				Scale: 2, Offset: geom.Pt(-50, -30), LastOffset: geom.Pt(-50, -30), LastScaleFactor: 1,
			},
		},
	}

	for _, tt := range tests {
		s := newTestState(1, 0)
		s.Transform.Scale = tt.scale
		s.Transform.Offset = tt.offset
		s.Transform.LastScaleFactor = 1.7
		s.Transform.Anchor = geom.Pt(1, 2)
		s.Transform.Anchored = true

		PinchEnded(&s, cfg)

		if diff := cmp.Diff(tt.want, s.Transform); diff != "" {
			t.Errorf("%s: transform mismatch (-want +got):\n%s", tt.name, diff)
		}
	}
}

func TestPinchEndedWithoutPinch(t *testing.T) {
	s := newTestState(1, 0)
	PinchEnded(&s, config.Default())
	if diff := cmp.Diff(state.NewTransform(), s.Transform); diff != "" {
		t.Errorf("stray PinchEnded changed transform:\n%s", diff)
	}
}

func TestDoubleTapRoundTrip(t *testing.T) {
	cfg := config.Default()
	s := newTestState(1, 0)

	DoubleTap(&s, cfg, geom.Pt(0, 0))
	if s.Transform.Scale != 2.5 || !s.Transform.Offset.IsZero() {
		t.Fatalf("after first tap: scale %v offset %v", s.Transform.Scale, s.Transform.Offset)
	}

	DoubleTap(&s, cfg, geom.Pt(0, 0))
	if s.Transform.Scale != 1.0 || s.Transform.Offset != (geom.Point{}) {
		t.Errorf("after second tap: scale %v offset %v, want 1 (0,0)", s.Transform.Scale, s.Transform.Offset)
	}
}

func TestDoubleTapAnchorsAtTap(t *testing.T) {
	cfg := config.Default()
	s := newTestState(1, 0)

	DoubleTap(&s, cfg, geom.Pt(100, 50))

	want := state.Transform{
		Scale:           2.5,
		Offset:          geom.Pt(-150, -75),
		LastOffset:      geom.Pt(-150, -75),
		LastScaleFactor: 1,
	}
	if diff := cmp.Diff(want, s.Transform, cmpopts.EquateApprox(0, eps)); diff != "" {
		t.Errorf("transform mismatch (-want +got):\n%s", diff)
	}
}

func TestAnchoredZoomIdentity(t *testing.T) {
	tr := state.Transform{Scale: 2, Offset: geom.Pt(13, -7)}
	got := AnchoredZoom(tr, geom.Pt(40, 40), 2)
	if !got.Offset.ApproxEqual(tr.Offset, eps) {
		t.Errorf("zoom to same scale moved offset to %v", got.Offset)
	}
}

// TestBoundInvariant drives random pinch, pan and inertia sequences and
// checks the transform stays legal after every step.
func TestBoundInvariant(t *testing.T) {
	cfg := config.Default()
	rng := rand.New(rand.NewSource(42))
	s := newTestState(1, 0)
	img, vp := s.ImageSize(), s.Viewport

	check := func(step int, op string) {
		t.Helper()
		tr := s.Transform
		if tr.Scale < cfg.MinScale || tr.Scale > cfg.MaxScale {
			t.Fatalf("step %d (%s): scale %v out of range", step, op, tr.Scale)
		}
		if tr.Scale <= 1 && !tr.Offset.IsZero() {
			t.Fatalf("step %d (%s): offset %v at scale %v", step, op, tr.Offset, tr.Scale)
		}
		limit := geom.MaxPanOffset(img, vp, tr.Scale)
		if math.Abs(tr.Offset.X) > limit.X+eps || math.Abs(tr.Offset.Y) > limit.Y+eps {
			t.Fatalf("step %d (%s): offset %v beyond %v", step, op, tr.Offset, limit)
		}
	}

	randPoint := func(r float64) geom.Point {
		return geom.Pt((rng.Float64()*2-1)*r, (rng.Float64()*2-1)*r)
	}

	for step := 0; step < 2000; step++ {
		switch rng.Intn(4) {
		case 0:
			focal := randPoint(200)
			factor := 1.0
			for i := 0; i < 1+rng.Intn(6); i++ {
				factor *= 0.6 + rng.Float64()*0.9
				PinchChanged(&s, cfg, factor, focal)
				check(step, "pinch")
			}
			PinchEnded(&s, cfg)
			check(step, "pinch end")
		case 1:
			Pan(&s, randPoint(500))
			check(step, "pan")
			if Release(&s, cfg, randPoint(8000)) {
				for Step(&s, cfg) {
					check(step, "inertia")
				}
			}
			check(step, "release")
		case 2:
			DoubleTap(&s, cfg, randPoint(200))
			check(step, "double tap")
		case 3:
			s.Viewport = geom.Sz(100+rng.Float64()*800, 100+rng.Float64()*800)
			vp = s.Viewport
			s.Clamp()
			check(step, "resize")
		}
	}
}

func TestNonFiniteInputIgnored(t *testing.T) {
	cfg := config.Default()
	nan, inf := math.NaN(), math.Inf(1)

	tests := []struct {
		name  string
		apply func(s *state.State)
	}{
		{"pinch NaN factor", func(s *state.State) {
			PinchChanged(s, cfg, nan, geom.Pt(10, 10))
			PinchEnded(s, cfg)
		}},
		{"pinch -Inf factor", func(s *state.State) {
			PinchChanged(s, cfg, -inf, geom.Pt(10, 10))
		}},
		{"pinch Inf focal", func(s *state.State) {
			PinchChanged(s, cfg, 2, geom.Pt(inf, 0))
		}},
		{"double tap NaN point", func(s *state.State) {
			DoubleTap(s, cfg, geom.Pt(nan, 0))
		}},
		{"pan NaN translation", func(s *state.State) {
			Pan(s, geom.Pt(nan, 5))
		}},
		{"release NaN velocity", func(s *state.State) {
			if Release(s, cfg, geom.Pt(nan, inf)) {
				t.Error("Release armed inertia")
			}
		}},
		{"dismiss NaN", func(s *state.State) {
			DismissChanged(s, cfg, nan)
		}},
		{"swipe Inf", func(s *state.State) {
			SwipeChanged(s, inf)
			if SwipeEnded(s, cfg, nan) {
				t.Error("SwipeEnded changed page")
			}
		}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			s := newTestState(3, 1)
			PinchChanged(&s, cfg, 2, geom.Pt(30, 20))
			PinchEnded(&s, cfg)
			before := s.Transform

			tt.apply(&s)

			tr := s.Transform
			if tr.Scale != before.Scale || tr.Offset != before.Offset {
				t.Errorf("transform changed: scale %v offset %v, want %v %v", tr.Scale, tr.Offset, before.Scale, before.Offset)
			}
			if s.Inertia.Active || s.Dismiss.Progress != 0 || s.SwipeOffset != 0 || s.Pages.Current != 1 {
				t.Errorf("state disturbed: inertia %v dismiss %v swipe %v page %d",
					s.Inertia.Active, s.Dismiss.Progress, s.SwipeOffset, s.Pages.Current)
			}
		})
	}
}

func TestClampScaleNaN(t *testing.T) {
	if got := ClampScale(math.NaN(), config.Default()); got != 1 {
		t.Errorf("ClampScale(NaN) = %v, want 1", got)
	}
}
