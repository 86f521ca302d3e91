package interact

import (
	"testing"
	"time"

	"gioui.org/f32"
	"gioui.org/io/key"
	"gioui.org/io/pointer"
	"github.com/google/go-cmp/cmp"
	"github.com/google/go-cmp/cmp/cmpopts"

	"github.com/elektrokombinacija/mediaview/internal/geom"
	"github.com/elektrokombinacija/mediaview/internal/viewer/engine"
)

// newTestAdapter returns an adapter for an 800x600 px viewport at 2 px per
// point, so the viewport is 400x300 points centered on (400, 300) px.
func newTestAdapter(t *testing.T) *Adapter {
	t.Helper()
	a := NewAdapter()
	ev, ok := a.SetViewport(f32.Pt(800, 600), 2)
	if !ok {
		t.Fatal("first SetViewport reported no change")
	}
	if diff := cmp.Diff(engine.Event(engine.Resized{Viewport: geom.Sz(400, 300)}), ev); diff != "" {
		t.Errorf("resize event mismatch (-want +got):\n%s", diff)
	}
	return a
}

func press(x, y float32, at time.Duration) pointer.Event {
	return pointer.Event{Kind: pointer.Press, Position: f32.Pt(x, y), Buttons: pointer.ButtonPrimary, Time: at}
}

func drag(x, y float32, at time.Duration) pointer.Event {
	return pointer.Event{Kind: pointer.Drag, Position: f32.Pt(x, y), Buttons: pointer.ButtonPrimary, Time: at}
}

func release(x, y float32, at time.Duration) pointer.Event {
	return pointer.Event{Kind: pointer.Release, Position: f32.Pt(x, y), Time: at}
}

func TestSetViewportUnchanged(t *testing.T) {
	a := newTestAdapter(t)
	if _, ok := a.SetViewport(f32.Pt(800, 600), 2); ok {
		t.Error("same size reported as a resize")
	}
}

func TestDragWithVelocity(t *testing.T) {
	a := newTestAdapter(t)
	now := time.Now()

	var got []engine.Event
	got = append(got, a.Pointer(press(400, 300, 0), now)...)
	got = append(got, a.Pointer(drag(420, 300, 10*time.Millisecond), now)...)
	got = append(got, a.Pointer(drag(440, 310, 20*time.Millisecond), now)...)
	got = append(got, a.Pointer(release(460, 310, 50*time.Millisecond), now)...)

	want := []engine.Event{
		engine.PanChanged{Translation: geom.Pt(10, 0)},
		engine.PanChanged{Translation: geom.Pt(20, 5)},
		// 30 points right and 5 down over 50ms.
		engine.PanEnded{Velocity: geom.Pt(600, 100)},
	}
	if diff := cmp.Diff(want, got, cmpopts.EquateApprox(0, 1e-6)); diff != "" {
		t.Errorf("events mismatch (-want +got):\n%s", diff)
	}
}

func TestVelocityUsesTrailingWindow(t *testing.T) {
	a := newTestAdapter(t)
	now := time.Now()
	a.Pointer(press(400, 300, 0), now)
	a.Pointer(drag(600, 300, 20*time.Millisecond), now)
	// Held still, then a short flick at the end.
	a.Pointer(drag(600, 300, 500*time.Millisecond), now)
	got := a.Pointer(release(620, 300, 550*time.Millisecond), now)

	want := []engine.Event{engine.PanEnded{Velocity: geom.Pt(200, 0)}}
	if diff := cmp.Diff(want, got, cmpopts.EquateApprox(0, 1e-6)); diff != "" {
		t.Errorf("release mismatch (-want +got):\n%s", diff)
	}
}

func TestClickWithoutDragEmitsNothing(t *testing.T) {
	a := newTestAdapter(t)
	now := time.Now()
	if got := a.Pointer(press(100, 100, 0), now); len(got) != 0 {
		t.Errorf("press emitted %v", got)
	}
	if got := a.Pointer(release(100, 100, 50*time.Millisecond), now); len(got) != 0 {
		t.Errorf("release emitted %v", got)
	}
}

func TestDoubleClick(t *testing.T) {
	tests := []struct {
		name   string
		second pointer.Event
		want   bool
	}{
		{"fast and close", press(502, 300, 200*time.Millisecond), true},
		{"too slow", press(500, 300, 400*time.Millisecond), false},
		{"too far", press(540, 300, 100*time.Millisecond), false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			a := newTestAdapter(t)
			now := time.Now()
			a.Pointer(press(500, 300, 0), now)
			a.Pointer(release(500, 300, 50*time.Millisecond), now)

			got := a.Pointer(tt.second, now)
			wantEvents := []engine.Event(nil)
			if tt.want {
				wantEvents = []engine.Event{engine.DoubleTapped{At: geom.Pt(51, 0)}}
			}
			if diff := cmp.Diff(wantEvents, got, cmpopts.EquateEmpty()); diff != "" {
				t.Errorf("second press mismatch (-want +got):\n%s", diff)
			}
		})
	}
}

func TestTripleClickIsOneDoubleTap(t *testing.T) {
	a := newTestAdapter(t)
	now := time.Now()
	taps := 0
	for i := 0; i < 3; i++ {
		at := time.Duration(i) * 100 * time.Millisecond
		for _, ev := range a.Pointer(press(400, 300, at), now) {
			if _, ok := ev.(engine.DoubleTapped); ok {
				taps++
			}
		}
		a.Pointer(release(400, 300, at+20*time.Millisecond), now)
	}
	if taps != 1 {
		t.Errorf("triple click produced %d double taps", taps)
	}
}

func TestScrollPinch(t *testing.T) {
	a := newTestAdapter(t)
	now := time.Now()
	scroll := func(dy float32, mods key.Modifiers) []engine.Event {
		return a.Pointer(pointer.Event{
			Kind:      pointer.Scroll,
			Position:  f32.Pt(600, 400),
			Scroll:    f32.Pt(0, dy),
			Modifiers: mods,
		}, now)
	}

	if got := scroll(-1, 0); len(got) != 0 {
		t.Errorf("plain scroll emitted %v", got)
	}

	var got []engine.Event
	got = append(got, scroll(-1, key.ModShortcut)...)
	got = append(got, scroll(-1, key.ModShortcut)...)
	if !a.Pending() {
		t.Error("pinch not pending after scroll")
	}
	if ev := a.Flush(now.Add(100 * time.Millisecond)); len(ev) != 0 {
		t.Errorf("pinch ended early: %v", ev)
	}
	got = append(got, a.Flush(now.Add(150*time.Millisecond))...)

	focal := geom.Pt(100, 50)
	want := []engine.Event{
		engine.PinchChanged{ScaleFactor: 1.1, Focal: focal},
		engine.PinchChanged{ScaleFactor: 1.21, Focal: focal},
		engine.PinchEnded{},
	}
	if diff := cmp.Diff(want, got, cmpopts.EquateApprox(0, 1e-9)); diff != "" {
		t.Errorf("pinch mismatch (-want +got):\n%s", diff)
	}
	if a.Pending() {
		t.Error("pinch still pending after flush")
	}
}

func TestPressEndsScrollPinch(t *testing.T) {
	a := newTestAdapter(t)
	now := time.Now()
	a.Pointer(pointer.Event{Kind: pointer.Scroll, Scroll: f32.Pt(0, 1), Modifiers: key.ModShortcut}, now)

	got := a.Pointer(press(400, 300, 0), now)
	if diff := cmp.Diff([]engine.Event{engine.PinchEnded{}}, got); diff != "" {
		t.Errorf("press mismatch (-want +got):\n%s", diff)
	}
}

func TestKeys(t *testing.T) {
	a := NewAdapter()
	tests := []struct {
		name key.Name
		want engine.Event
	}{
		{key.NameLeftArrow, engine.GoToPage{Index: 4}},
		{key.NameRightArrow, engine.GoToPage{Index: 6}},
		{key.NameHome, engine.GoToPage{Index: 0}},
		{key.NameEscape, engine.DismissRequested{}},
	}
	for _, tt := range tests {
		got, ok := a.Key(key.Event{Name: tt.name, State: key.Press}, 5)
		if !ok {
			t.Errorf("%s: not handled", tt.name)
			continue
		}
		if diff := cmp.Diff(tt.want, got); diff != "" {
			t.Errorf("%s mismatch (-want +got):\n%s", tt.name, diff)
		}
	}

	if _, ok := a.Key(key.Event{Name: key.NameRightArrow, State: key.Release}, 5); ok {
		t.Error("key release handled")
	}
	if _, ok := a.Key(key.Event{Name: "Q", State: key.Press}, 5); ok {
		t.Error("unbound key handled")
	}
}
