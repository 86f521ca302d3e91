// Package config holds the tunables of the viewer transform engine.
package config

import (
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"time"
)

// Sentinel errors returned by Validate.
var (
	ErrInvalidScale     = errors.New("invalid scale limits")
	ErrInvalidThreshold = errors.New("invalid threshold")
	ErrInvalidTiming    = errors.New("invalid timing")
)

// Config configures gesture arbitration, zoom, inertia, dismiss and paging.
// Distances are in viewport points, velocities in points per second.
type Config struct {
	// Scale limits
	MinScale float64 `json:"min_scale"`
	MaxScale float64 `json:"max_scale"`

	// Double-tap toggles between rest and this level
	DoubleTapScale float64 `json:"double_tap_scale"`
	// Below this scale a double-tap zooms in, otherwise it resets
	DoubleTapToggleScale float64 `json:"double_tap_toggle_scale"`
	// Pinch ending below this scale snaps back to rest
	RestSnapScale float64 `json:"rest_snap_scale"`

	// Above this scale every one-finger drag pans
	PanModeScale float64 `json:"pan_mode_scale"`
	// Paging is tracked only at or below this scale
	PagingMaxScale float64 `json:"paging_max_scale"`

	// Movement needed before a drag direction is latched
	ClassifyDistance float64 `json:"classify_distance"`

	// Inertia
	InertiaMinVelocity  float64       `json:"inertia_min_velocity"`
	InertiaStopVelocity float64       `json:"inertia_stop_velocity"`
	InertiaDecay        float64       `json:"inertia_decay"`
	TickInterval        time.Duration `json:"tick_interval"`
	// Offset advance per tick is velocity / TicksPerSecond
	TicksPerSecond float64 `json:"ticks_per_second"`

	// Dismiss
	DismissDistance    float64 `json:"dismiss_distance"`
	DismissVelocity    float64 `json:"dismiss_velocity"`
	DismissCommitRatio float64 `json:"dismiss_commit_ratio"`

	// Paging
	PageSwipeDistance float64 `json:"page_swipe_distance"`
	// Seconds of velocity projected onto a released horizontal drag
	SwipeProjection float64 `json:"swipe_projection"`

	AnimationDuration time.Duration `json:"animation_duration"`
}

// Default returns the standard engine configuration.
func Default() Config {
	return Config{
		MinScale:             1.0,
		MaxScale:             4.0,
		DoubleTapScale:       2.5,
		DoubleTapToggleScale: 1.5,
		RestSnapScale:        1.05,
		PanModeScale:         1.2,
		PagingMaxScale:       1.0,
		ClassifyDistance:     10,
		InertiaMinVelocity:   300,
		InertiaStopVelocity:  50,
		InertiaDecay:         0.93,
		TickInterval:         16 * time.Millisecond,
		TicksPerSecond:       60,
		DismissDistance:      200,
		DismissVelocity:      1000,
		DismissCommitRatio:   0.5,
		PageSwipeDistance:    100,
		SwipeProjection:      0.499, // 0.998/ms deceleration
		AnimationDuration:    300 * time.Millisecond,
	}
}

// Validate checks that the configuration is internally consistent.
func (c Config) Validate() error {
	// The rest transform sits at scale 1.
	if c.MinScale <= 0 || c.MinScale > 1 || c.MaxScale < 1 {
		return fmt.Errorf("%w: min %v, max %v", ErrInvalidScale, c.MinScale, c.MaxScale)
	}
	if c.DoubleTapScale < c.MinScale || c.DoubleTapScale > c.MaxScale {
		return fmt.Errorf("%w: double-tap level %v outside [%v, %v]",
			ErrInvalidScale, c.DoubleTapScale, c.MinScale, c.MaxScale)
	}
	if c.InertiaDecay <= 0 || c.InertiaDecay >= 1 {
		return fmt.Errorf("%w: inertia decay %v must be in (0, 1)", ErrInvalidThreshold, c.InertiaDecay)
	}
	if c.InertiaStopVelocity <= 0 {
		return fmt.Errorf("%w: inertia stop velocity %v", ErrInvalidThreshold, c.InertiaStopVelocity)
	}
	if c.DismissDistance <= 0 || c.ClassifyDistance < 0 || c.PageSwipeDistance < 0 {
		return fmt.Errorf("%w: dismiss %v, classify %v, swipe %v",
			ErrInvalidThreshold, c.DismissDistance, c.ClassifyDistance,
			c.PageSwipeDistance)
	}
	if c.TickInterval <= 0 || c.TicksPerSecond <= 0 || c.AnimationDuration < 0 {
		return fmt.Errorf("%w: tick %v, rate %v, animation %v",
			ErrInvalidTiming, c.TickInterval, c.TicksPerSecond, c.AnimationDuration)
	}
	return nil
}

// Load reads a JSON configuration file. Fields missing from the file keep
// their Default values.
func Load(path string) (Config, error) {
	cfg := Default()

	data, err := os.ReadFile(path)
	if err != nil {
		return cfg, fmt.Errorf("reading config: %w", err)
	}
	if err := json.Unmarshal(data, &cfg); err != nil {
		return cfg, fmt.Errorf("parsing config %s: %w", path, err)
	}
	if err := cfg.Validate(); err != nil {
		return cfg, fmt.Errorf("config %s: %w", path, err)
	}
	return cfg, nil
}
