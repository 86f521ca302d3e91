package engine

import (
	"github.com/elektrokombinacija/mediaview/internal/viewer/config"
	"github.com/elektrokombinacija/mediaview/internal/viewer/interact"
	"github.com/elektrokombinacija/mediaview/internal/viewer/state"
)

// EffectKind identifies a side effect requested by Reduce.
type EffectKind int

const (
	StartTicker EffectKind = iota
	StopTicker
	StartTimer
	StopTimer
	SignalDismiss
	SignalPageChanged
	Dropped
)

func (k EffectKind) String() string {
	return [...]string{"StartTicker", "StopTicker", "StartTimer", "StopTimer",
		"SignalDismiss", "SignalPageChanged", "Dropped"}[k]
}

// Effect is a side effect the engine performs after a reduction.
type Effect struct {
	Kind   EffectKind
	Page   int    // SignalPageChanged
	Reason string // Dropped
}

// Reduce applies ev to s and returns the new state together with the
// effects the caller must perform. It never blocks and never fails: events
// that do not apply are dropped with a Dropped effect.
func Reduce(cfg config.Config, s state.State, ev Event) (state.State, []Effect) {
	r := reducer{cfg: cfg, s: s}
	r.apply(ev)
	return r.s, r.fx
}

type reducer struct {
	cfg config.Config
	s   state.State
	fx  []Effect
}

func (r *reducer) emit(kind EffectKind) {
	r.fx = append(r.fx, Effect{Kind: kind, Page: r.s.Pages.Current})
}

func (r *reducer) drop(reason string) {
	r.fx = append(r.fx, Effect{Kind: Dropped, Reason: reason})
}

// inGesture reports whether a pointer gesture owns the session.
func (r *reducer) inGesture() bool {
	return r.s.Session.Active && r.s.Session.Kind != state.KindDoubleTapAnimation
}

// preempt cancels inertia and the double-tap animation. It runs before
// any new gesture touches the transform.
func (r *reducer) preempt() {
	if interact.CancelInertia(&r.s) {
		r.emit(StopTicker)
	}
	if r.s.Animating {
		r.s.Animating = false
		r.emit(StopTimer)
	}
	if !r.inGesture() {
		r.s.EndSession()
	}
}

// begin starts a new gesture session.
func (r *reducer) begin() {
	r.preempt()
	r.s.BeginSession()
}

// abandon ends the current gesture without release semantics.
func (r *reducer) abandon() {
	t := &r.s.Transform
	t.LastScaleFactor = 1
	t.ClearAnchor()
	if t.Scale < r.cfg.MinScale {
		t.Reset()
	}
	r.s.Clamp()
	t.Commit()
	r.s.Dismiss.Reset()
	r.s.SwipeOffset = 0
	r.s.EndSession()
}

func (r *reducer) apply(ev Event) {
	if !finite(ev) {
		r.drop("non-finite input")
		return
	}
	if r.s.Dismissed {
		if e, ok := ev.(Resized); ok {
			r.s.Viewport = e.Viewport
			return
		}
		r.drop("viewer dismissed")
		return
	}

	switch e := ev.(type) {
	case PinchChanged:
		r.pinchChanged(e)
	case PinchEnded:
		r.pinchEnded()
	case PanChanged:
		r.panChanged(e)
	case PanEnded:
		r.panEnded(e)
	case SwipeChanged:
		r.swipeChanged(e)
	case SwipeEnded:
		r.swipeEnded(e)
	case DismissChanged:
		r.dismissChanged(e)
	case DismissEnded:
		r.dismissEnded(e)
	case DoubleTapped:
		r.doubleTapped(e)
	case GoToPage:
		r.goToPage(e)
	case DismissRequested:
		r.preempt()
		if r.inGesture() {
			r.abandon()
		}
		r.commitDismiss()
	case Resized:
		r.s.Viewport = e.Viewport
		r.s.Clamp()
		if !r.inGesture() && !r.s.Inertia.Active {
			r.s.Transform.Commit()
		}
	case ViewDisappeared:
		r.preempt()
		if r.inGesture() {
			r.abandon()
		}
	case Tick:
		r.tick()
	case AnimationFinished:
		if !r.s.Animating {
			r.drop("stale animation")
			return
		}
		r.s.Animating = false
		r.s.EndSession()
	default:
		r.drop("unknown event")
	}
}

func (r *reducer) pinchChanged(e PinchChanged) {
	sess := &r.s.Session
	if !r.inGesture() || sess.Kind != state.KindPinch {
		if r.inGesture() {
			// A second finger turns a drag into a pinch.
			r.abandon()
		}
		r.begin()
		sess.Kind = state.KindPinch
		r.s.Mode = state.PinchActive
	}
	interact.PinchChanged(&r.s, r.cfg, e.ScaleFactor, e.Focal)
}

func (r *reducer) pinchEnded() {
	if !r.inGesture() || r.s.Session.Kind != state.KindPinch {
		r.drop("pinch end without pinch")
		return
	}
	interact.PinchEnded(&r.s, r.cfg)
	r.s.EndSession()
}

func (r *reducer) panChanged(e PanChanged) {
	if r.inGesture() && r.s.Session.Kind == state.KindPinch {
		r.drop("drag during pinch")
		return
	}
	if !r.inGesture() {
		r.begin()
	}
	r.s.Session.Translation = e.Translation

	switch interact.Route(&r.s, r.cfg, e.Translation) {
	case state.KindPan:
		r.s.Mode = state.PanActive
		interact.Pan(&r.s, e.Translation)
	case state.KindSwipe:
		r.s.Mode = state.SwipeActive
		interact.SwipeChanged(&r.s, e.Translation.X)
	case state.KindDismiss:
		r.s.Mode = state.DismissActive
		interact.DismissChanged(&r.s, r.cfg, e.Translation.Y)
	}
}

func (r *reducer) panEnded(e PanEnded) {
	if !r.inGesture() || r.s.Session.Kind == state.KindPinch {
		r.drop("drag end without drag")
		return
	}

	switch r.s.Session.Kind {
	case state.KindPan:
		if interact.Release(&r.s, r.cfg, e.Velocity) {
			r.s.EndSession()
			r.s.Mode = state.InertiaActive
			r.emit(StartTicker)
			return
		}
	case state.KindSwipe:
		r.settleSwipe(interact.ProjectSwipe(r.cfg, r.s.Session.Translation.X, e.Velocity.X))
	case state.KindDismiss:
		r.settleDismiss(e.Velocity.Y)
	}
	r.s.EndSession()
}

func (r *reducer) swipeChanged(e SwipeChanged) {
	if !r.admit(state.Horizontal) {
		r.drop("swipe not allowed in this session")
		return
	}
	r.s.Mode = state.SwipeActive
	interact.SwipeChanged(&r.s, e.TranslationX)
}

func (r *reducer) swipeEnded(e SwipeEnded) {
	if !r.inGesture() || r.s.Session.Kind != state.KindSwipe {
		r.drop("swipe end without swipe")
		return
	}
	r.settleSwipe(e.PredictedTranslationX)
	r.s.EndSession()
}

func (r *reducer) dismissChanged(e DismissChanged) {
	if !r.admit(state.Vertical) {
		r.drop("dismiss not allowed in this session")
		return
	}
	r.s.Mode = state.DismissActive
	interact.DismissChanged(&r.s, r.cfg, e.TranslationY)
}

func (r *reducer) dismissEnded(e DismissEnded) {
	if !r.inGesture() || r.s.Session.Kind != state.KindDismiss {
		r.drop("dismiss end without dismiss")
		return
	}
	r.settleDismiss(e.VelocityY)
	r.s.EndSession()
}

// admit routes a directly reported swipe or dismiss frame into the drag
// session, starting one if needed.
func (r *reducer) admit(dir state.Direction) bool {
	if r.inGesture() && r.s.Session.Kind == state.KindPinch {
		return false
	}
	began := false
	if !r.inGesture() {
		r.begin()
		began = true
	}
	if !interact.Admit(&r.s, r.cfg, dir) {
		if began {
			r.s.EndSession()
		}
		return false
	}
	return true
}

func (r *reducer) settleSwipe(predictedX float64) {
	if interact.SwipeEnded(&r.s, r.cfg, predictedX) {
		r.emit(SignalPageChanged)
	}
}

func (r *reducer) settleDismiss(velocityY float64) {
	if interact.DismissEnded(&r.s, r.cfg, velocityY) {
		r.commitDismiss()
	}
}

func (r *reducer) commitDismiss() {
	r.s.Dismissed = true
	r.emit(SignalDismiss)
}

func (r *reducer) doubleTapped(e DoubleTapped) {
	if r.s.Animating {
		r.drop("double tap during animation")
		return
	}
	if r.inGesture() {
		r.drop("double tap during gesture")
		return
	}
	r.begin()
	r.s.Session.Kind = state.KindDoubleTapAnimation
	r.s.Mode = state.DoubleTapAnimating
	r.s.Animating = true
	interact.DoubleTap(&r.s, r.cfg, e.At)
	r.emit(StartTimer)
}

func (r *reducer) goToPage(e GoToPage) {
	if !r.s.Pages.Valid(e.Index) || e.Index == r.s.Pages.Current {
		r.drop("page out of range or current")
		return
	}
	r.preempt()
	if r.inGesture() {
		r.abandon()
	}
	interact.GoTo(&r.s, e.Index)
	r.emit(SignalPageChanged)
}

func (r *reducer) tick() {
	if !r.s.Inertia.Active {
		r.drop("stale tick")
		return
	}
	if !interact.Step(&r.s, r.cfg) {
		r.s.Mode = state.Idle
		r.emit(StopTicker)
	}
}
