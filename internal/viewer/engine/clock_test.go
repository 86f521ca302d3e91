package engine

import (
	"testing"
	"time"
)

func TestClockTicks(t *testing.T) {
	t0 := time.Unix(1000, 0)
	c := NewClock(16 * time.Millisecond)

	if ticks, fired := c.Advance(t0.Add(time.Second)); ticks != 0 || fired {
		t.Fatalf("idle clock produced ticks=%d fired=%v", ticks, fired)
	}

	c.StartTicking(t0)
	tests := []struct {
		at   time.Duration
		want int
	}{
		{10 * time.Millisecond, 0},
		{16 * time.Millisecond, 1},
		{40 * time.Millisecond, 1},
		{48 * time.Millisecond, 1},
		{47 * time.Millisecond, 0}, // time going backwards
		{96 * time.Millisecond, 3},
	}
	for _, tt := range tests {
		if got, _ := c.Advance(t0.Add(tt.at)); got != tt.want {
			t.Errorf("Advance(+%v) = %d ticks, want %d", tt.at, got, tt.want)
		}
	}

	c.StopTicking()
	c.StopTicking()
	if got, _ := c.Advance(t0.Add(time.Second)); got != 0 {
		t.Errorf("stopped clock produced %d ticks", got)
	}
	if c.Active() {
		t.Error("stopped clock still active")
	}
}

func TestClockCatchUpCap(t *testing.T) {
	t0 := time.Unix(1000, 0)
	c := NewClock(16 * time.Millisecond)
	c.StartTicking(t0)

	if got, _ := c.Advance(t0.Add(5 * time.Second)); got != maxCatchUp {
		t.Errorf("after stall got %d ticks, want %d", got, maxCatchUp)
	}
	// The backlog is dropped, not carried into the next frame.
	if got, _ := c.Advance(t0.Add(5*time.Second + 16*time.Millisecond)); got != 1 {
		t.Errorf("frame after stall got %d ticks, want 1", got)
	}
}

func TestClockTimer(t *testing.T) {
	t0 := time.Unix(1000, 0)
	c := NewClock(16 * time.Millisecond)
	c.StartTimer(t0, 300*time.Millisecond)

	if !c.Active() || c.Ticking() {
		t.Fatalf("armed timer: active=%v ticking=%v", c.Active(), c.Ticking())
	}
	if _, fired := c.Advance(t0.Add(299 * time.Millisecond)); fired {
		t.Error("timer fired early")
	}
	if _, fired := c.Advance(t0.Add(300 * time.Millisecond)); !fired {
		t.Error("timer did not fire at deadline")
	}
	if _, fired := c.Advance(t0.Add(time.Second)); fired {
		t.Error("one-shot timer fired twice")
	}

	c.StartTimer(t0, 300*time.Millisecond)
	c.StopTimer()
	if _, fired := c.Advance(t0.Add(time.Second)); fired {
		t.Error("stopped timer fired")
	}
}
