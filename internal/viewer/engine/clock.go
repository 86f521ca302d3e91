package engine

import "time"

// maxCatchUp bounds the ticks delivered by one Advance after a stall.
const maxCatchUp = 8

// Clock turns frame times into fixed inertia ticks and a one-shot
// animation deadline. It is advanced by the host, usually once per frame,
// and never runs on its own. Stopping is immediate: a stopped ticker
// yields no further ticks, and stopping twice is harmless.
type Clock struct {
	interval time.Duration

	ticking  bool
	lastTick time.Time

	timerSet bool
	deadline time.Time
}

// NewClock creates a clock with the given tick interval.
func NewClock(interval time.Duration) *Clock {
	return &Clock{interval: interval}
}

// StartTicking begins delivering ticks counted from now.
func (c *Clock) StartTicking(now time.Time) {
	c.ticking = true
	c.lastTick = now
}

// StopTicking stops tick delivery.
func (c *Clock) StopTicking() {
	c.ticking = false
}

// StartTimer arms the one-shot timer to fire d after now.
func (c *Clock) StartTimer(now time.Time, d time.Duration) {
	c.timerSet = true
	c.deadline = now.Add(d)
}

// StopTimer disarms the one-shot timer.
func (c *Clock) StopTimer() {
	c.timerSet = false
}

// Ticking reports whether ticks are being delivered.
func (c *Clock) Ticking() bool {
	return c.ticking
}

// Active reports whether the host must keep advancing the clock.
func (c *Clock) Active() bool {
	return c.ticking || c.timerSet
}

// Advance moves the clock to now. It returns the number of whole tick
// intervals elapsed since the last tick and whether the timer fired.
func (c *Clock) Advance(now time.Time) (ticks int, fired bool) {
	if c.ticking {
		if elapsed := now.Sub(c.lastTick); elapsed > 0 {
			ticks = int(elapsed / c.interval)
			c.lastTick = c.lastTick.Add(time.Duration(ticks) * c.interval)
		}
		// Drop the backlog after a stall rather than flinging the image.
		if ticks > maxCatchUp {
			ticks = maxCatchUp
			c.lastTick = now
		}
	}

	if c.timerSet && !now.Before(c.deadline) {
		c.timerSet = false
		fired = true
	}
	return ticks, fired
}
