// Package sim replays scripted gesture sessions against the viewer engine
// on a simulated clock, recording a snapshot after every step.
//
// Replays are deterministic: time only moves during wait steps, in whole
// frames.
package sim

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"time"

	"github.com/elektrokombinacija/mediaview/internal/viewer/config"
	"github.com/elektrokombinacija/mediaview/internal/viewer/engine"
)

// epoch is the simulated start time.
var epoch = time.Date(2000, 1, 1, 0, 0, 0, 0, time.UTC)

// Record is the outcome of one step.
type Record struct {
	Step     int             `json:"step"`
	Event    string          `json:"event"`
	TimeMS   int64           `json:"t_ms"`
	Snapshot engine.Snapshot `json:"snapshot"`
	Signals  []string        `json:"signals,omitempty"`
}

// Metrics summarises a replay.
type Metrics struct {
	Steps         int     `json:"steps"`
	Frames        int     `json:"frames"`
	InertiaFrames int     `json:"inertia_frames"`
	PageChanges   int     `json:"page_changes"`
	Dismissals    int     `json:"dismissals"`
	PeakScale     float64 `json:"peak_scale"`
	FinalIndex    int     `json:"final_index"`
	SimulatedMS   int64   `json:"simulated_ms"`
}

// Simulator replays one script.
type Simulator struct {
	cfg    config.Config
	script *Script
	engine *engine.Engine

	now     time.Time
	signals []string
	metrics Metrics
}

// NewSimulator prepares a replay of script.
func NewSimulator(cfg config.Config, script *Script) (*Simulator, error) {
	s := &Simulator{
		cfg:    cfg,
		script: script,
		now:    epoch,
	}
	e, err := engine.New(cfg, script.Pages, script.Start, script.Viewport,
		engine.WithNow(func() time.Time { return s.now }),
		engine.WithDelegate(engine.DelegateFuncs{
			Dismiss: func() {
				s.metrics.Dismissals++
				s.signals = append(s.signals, "dismiss")
			},
			PageChanged: func(i int) {
				s.metrics.PageChanges++
				s.signals = append(s.signals, fmt.Sprintf("page_changed:%d", i))
			},
		}))
	if err != nil {
		return nil, fmt.Errorf("sim: %w", err)
	}
	s.engine = e
	s.metrics.PeakScale = e.Snapshot().Scale
	return s, nil
}

// Run executes the script, passing each record to emit. It stops early
// when ctx is done or emit fails.
func (s *Simulator) Run(ctx context.Context, emit func(Record) error) (*Metrics, error) {
	for i, step := range s.script.Steps {
		if err := ctx.Err(); err != nil {
			return nil, err
		}

		s.signals = nil
		var snap engine.Snapshot
		if step.Event == EventWait {
			snap = s.wait(time.Duration(step.MS) * time.Millisecond)
		} else {
			ev, err := step.ToEvent()
			if err != nil {
				return nil, fmt.Errorf("step %d: %w", i, err)
			}
			snap = s.engine.Dispatch(ev)
		}

		s.metrics.Steps++
		s.metrics.PeakScale = max(s.metrics.PeakScale, snap.Scale)
		rec := Record{
			Step:     i,
			Event:    step.Event,
			TimeMS:   s.now.Sub(epoch).Milliseconds(),
			Snapshot: snap,
			Signals:  s.signals,
		}
		if err := emit(rec); err != nil {
			return nil, fmt.Errorf("step %d: %w", i, err)
		}
	}

	final := s.engine.Snapshot()
	s.metrics.FinalIndex = final.Index
	s.metrics.SimulatedMS = s.now.Sub(epoch).Milliseconds()
	m := s.metrics
	return &m, nil
}

// wait advances simulated time by d in frames of the tick interval.
func (s *Simulator) wait(d time.Duration) engine.Snapshot {
	frame := s.cfg.TickInterval
	end := s.now.Add(d)
	for s.now.Before(end) {
		step := min(frame, end.Sub(s.now))
		s.now = s.now.Add(step)
		if s.engine.Snapshot().IsInertiaActive {
			s.metrics.InertiaFrames++
		}
		s.engine.Advance(s.now)
		s.metrics.Frames++
	}
	return s.engine.Snapshot()
}

// ExportMetrics writes metrics to a JSON file.
func ExportMetrics(m *Metrics, path string) error {
	data, err := json.MarshalIndent(m, "", "  ")
	if err != nil {
		return err
	}
	return os.WriteFile(path, data, 0644)
}
