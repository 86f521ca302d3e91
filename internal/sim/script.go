package sim

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"os"

	"github.com/elektrokombinacija/mediaview/internal/geom"
	"github.com/elektrokombinacija/mediaview/internal/viewer/engine"
	"github.com/elektrokombinacija/mediaview/internal/viewer/state"
)

var (
	// ErrUnknownEvent is returned for a step whose event name is not
	// recognised.
	ErrUnknownEvent = errors.New("unknown event")

	// ErrEmptyViewport is returned for a script without a usable viewport
	// size.
	ErrEmptyViewport = errors.New("empty viewport")
)

// EventWait advances simulated time instead of sending an event.
const EventWait = "wait"

// Script is a recorded gesture session.
type Script struct {
	Viewport geom.Size    `json:"viewport"`
	Pages    []state.Page `json:"pages"`
	Start    int          `json:"start"`
	Steps    []Step       `json:"steps"`
}

// Step is one scripted input. Only the fields used by Event are read.
type Step struct {
	Event string `json:"event"`

	ScaleFactor float64    `json:"scale_factor"`
	Focal       geom.Point `json:"focal"`
	Translation geom.Point `json:"translation"`
	Velocity    geom.Point `json:"velocity"`
	At          geom.Point `json:"at"`
	X           float64    `json:"x"`
	Y           float64    `json:"y"`
	Index       int        `json:"index"`
	Viewport    geom.Size  `json:"viewport"`

	// Milliseconds of simulated time for a wait step
	MS int `json:"ms"`
}

// ToEvent converts the step to an engine event. Wait steps have no event.
func (s Step) ToEvent() (engine.Event, error) {
	switch s.Event {
	case "pinch_changed":
		return engine.PinchChanged{ScaleFactor: s.ScaleFactor, Focal: s.Focal}, nil
	case "pinch_ended":
		return engine.PinchEnded{}, nil
	case "pan_changed":
		return engine.PanChanged{Translation: s.Translation}, nil
	case "pan_ended":
		return engine.PanEnded{Velocity: s.Velocity}, nil
	case "swipe_changed":
		return engine.SwipeChanged{TranslationX: s.X}, nil
	case "swipe_ended":
		return engine.SwipeEnded{PredictedTranslationX: s.X}, nil
	case "dismiss_changed":
		return engine.DismissChanged{TranslationY: s.Y}, nil
	case "dismiss_ended":
		return engine.DismissEnded{VelocityY: s.Y}, nil
	case "double_tap":
		return engine.DoubleTapped{At: s.At}, nil
	case "go_to_page":
		return engine.GoToPage{Index: s.Index}, nil
	case "dismiss":
		return engine.DismissRequested{}, nil
	case "resize":
		return engine.Resized{Viewport: s.Viewport}, nil
	case "disappear":
		return engine.ViewDisappeared{}, nil
	}
	return nil, fmt.Errorf("%w %q", ErrUnknownEvent, s.Event)
}

// DecodeScript reads a JSON script and checks every step.
func DecodeScript(r io.Reader) (*Script, error) {
	var sc Script
	dec := json.NewDecoder(r)
	dec.DisallowUnknownFields()
	if err := dec.Decode(&sc); err != nil {
		return nil, fmt.Errorf("decoding script: %w", err)
	}
	if sc.Viewport.Empty() {
		return nil, ErrEmptyViewport
	}
	for i, st := range sc.Steps {
		if st.Event == EventWait {
			continue
		}
		if _, err := st.ToEvent(); err != nil {
			return nil, fmt.Errorf("step %d: %w", i, err)
		}
	}
	return &sc, nil
}

// LoadScript reads a JSON script file.
func LoadScript(path string) (*Script, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("opening script: %w", err)
	}
	defer f.Close()
	return DecodeScript(f)
}
