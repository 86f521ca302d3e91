// Package engine is the viewer's single entry point: it receives gesture
// events, reduces them into the viewer state, runs timers and emits
// snapshots for the renderer.
//
// An Engine is not safe for concurrent use. Hosts call Dispatch and
// Advance from one goroutine, typically the UI event loop; Runner does
// this for hosts without one.
package engine

import (
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/elektrokombinacija/mediaview/internal/geom"
	"github.com/elektrokombinacija/mediaview/internal/viewer/config"
	"github.com/elektrokombinacija/mediaview/internal/viewer/state"
)

// ErrNoPages is returned by New for an empty page sequence.
var ErrNoPages = errors.New("no pages")

// Engine owns the viewer state of one open viewer.
type Engine struct {
	cfg      config.Config
	st       state.State
	clock    *Clock
	delegate Delegate
	now      func() time.Time
}

// Option configures an Engine.
type Option func(*Engine)

// WithDelegate sets the receiver of dismiss and page-change signals.
func WithDelegate(d Delegate) Option {
	return func(e *Engine) {
		e.delegate = d
	}
}

// WithNow sets the time source used when timers start.
func WithNow(now func() time.Time) Option {
	return func(e *Engine) {
		e.now = now
	}
}

// New creates an engine showing pages[start] in a viewport of the given
// size.
func New(cfg config.Config, pages []state.Page, start int, viewport geom.Size, opts ...Option) (*Engine, error) {
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("engine: %w", err)
	}
	if len(pages) == 0 {
		return nil, fmt.Errorf("engine: %w", ErrNoPages)
	}

	e := &Engine{
		cfg:      cfg,
		st:       state.New(pages, start, viewport),
		clock:    NewClock(cfg.TickInterval),
		delegate: DelegateFuncs{},
		now:      time.Now,
	}
	for _, opt := range opts {
		opt(e)
	}
	return e, nil
}

// Config returns the engine configuration.
func (e *Engine) Config() config.Config {
	return e.cfg
}

// Snapshot returns the current renderer state.
func (e *Engine) Snapshot() Snapshot {
	return snapshotOf(&e.st)
}

// State returns a copy of the full viewer state.
func (e *Engine) State() state.State {
	return e.st
}

// Busy reports whether inertia or an animation needs Advance calls.
func (e *Engine) Busy() bool {
	return e.clock.Active()
}

// Dispatch applies one event and returns the resulting snapshot.
func (e *Engine) Dispatch(ev Event) Snapshot {
	prev := e.st.Mode
	next, effects := Reduce(e.cfg, e.st, ev)
	e.st = next

	log := Logger()
	if _, isTick := ev.(Tick); !isTick || prev != next.Mode {
		log.Debug("event", "event", eventName(ev), "session", next.Session.ID,
			"mode", next.Mode, "scale", next.Transform.Scale)
	}
	if prev != next.Mode {
		log.Debug("mode change", "from", prev, "to", next.Mode)
	}

	for _, fx := range effects {
		e.perform(fx, log)
	}
	return e.Snapshot()
}

func (e *Engine) perform(fx Effect, log *slog.Logger) {
	switch fx.Kind {
	case StartTicker:
		e.clock.StartTicking(e.now())
		log.Debug("inertia started", "velocity", e.st.Inertia.Velocity)
	case StopTicker:
		e.clock.StopTicking()
		log.Debug("inertia stopped", "offset", e.st.Transform.Offset)
	case StartTimer:
		e.clock.StartTimer(e.now(), e.cfg.AnimationDuration)
	case StopTimer:
		e.clock.StopTimer()
	case SignalDismiss:
		log.Info("dismiss")
		e.delegate.OnDismiss()
	case SignalPageChanged:
		log.Info("page changed", "index", fx.Page)
		e.delegate.OnPageChanged(fx.Page)
	case Dropped:
		log.Debug("event dropped", "reason", fx.Reason)
	}
}

// Advance moves the engine's clock to now, delivering inertia ticks and
// finishing an elapsed animation.
func (e *Engine) Advance(now time.Time) Snapshot {
	ticks, fired := e.clock.Advance(now)
	for i := 0; i < ticks && e.clock.Ticking(); i++ {
		e.Dispatch(Tick{})
	}
	if fired {
		e.Dispatch(AnimationFinished{})
	}
	return e.Snapshot()
}

// Reopen shows page index again after a dismiss, with all motion
// stopped. An invalid index keeps the current page.
func (e *Engine) Reopen(index int) Snapshot {
	if !e.st.Pages.Valid(index) {
		index = e.st.Pages.Current
	}
	e.clock.StopTicking()
	e.clock.StopTimer()
	e.st = state.New(e.st.Pages.Pages, index, e.st.Viewport)
	return e.Snapshot()
}
