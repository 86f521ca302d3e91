package engine

import (
	"context"
	"time"
)

// Runner drives an Engine from a single goroutine for hosts that have no
// frame loop of their own. Events sent to it and clock ticks are
// serialised onto the engine; the latest snapshot is published after each
// one.
type Runner struct {
	engine *Engine
	events chan Event
	out    chan Snapshot
}

// NewRunner creates a runner for e. The engine must not be used directly
// while the runner is running.
func NewRunner(e *Engine) *Runner {
	return &Runner{
		engine: e,
		events: make(chan Event, 16),
		out:    make(chan Snapshot, 1),
	}
}

// Send queues ev for the engine, blocking until it is accepted or ctx is
// done.
func (r *Runner) Send(ctx context.Context, ev Event) error {
	select {
	case r.events <- ev:
		return nil
	case <-ctx.Done():
		return ctx.Err()
	}
}

// Snapshots returns the channel carrying the most recent snapshot. Older
// unread snapshots are replaced.
func (r *Runner) Snapshots() <-chan Snapshot {
	return r.out
}

// Run processes events until ctx is done. The ticker only runs while the
// engine is busy. On return all motion is stopped.
func (r *Runner) Run(ctx context.Context) error {
	var ticker *time.Ticker
	defer func() {
		if ticker != nil {
			ticker.Stop()
		}
	}()

	for {
		var tickC <-chan time.Time
		if r.engine.Busy() {
			if ticker == nil {
				ticker = time.NewTicker(r.engine.cfg.TickInterval)
			}
			tickC = ticker.C
		} else if ticker != nil {
			ticker.Stop()
			ticker = nil
		}

		select {
		case <-ctx.Done():
			r.publish(r.engine.Dispatch(ViewDisappeared{}))
			return ctx.Err()
		case ev := <-r.events:
			r.publish(r.engine.Dispatch(ev))
		case now := <-tickC:
			r.publish(r.engine.Advance(now))
		}
	}
}

func (r *Runner) publish(s Snapshot) {
	select {
	case r.out <- s:
		return
	default:
	}
	// Replace the unread snapshot. Run is the only sender, so the second
	// send cannot block.
	select {
	case <-r.out:
	default:
	}
	r.out <- s
}
