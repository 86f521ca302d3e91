package config

import (
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/google/go-cmp/cmp"
)

func TestDefaultValid(t *testing.T) {
	if err := Default().Validate(); err != nil {
		t.Fatalf("Default().Validate() = %v", err)
	}
}

func TestValidate(t *testing.T) {
	tests := []struct {
		name   string
		mutate func(*Config)
		want   error
	}{
		{"max below min", func(c *Config) { c.MaxScale = 0.5 }, ErrInvalidScale},
		{"zero min", func(c *Config) { c.MinScale = 0 }, ErrInvalidScale},
		{"min above rest", func(c *Config) { c.MinScale = 1.5 }, ErrInvalidScale},
		{"double tap too deep", func(c *Config) { c.DoubleTapScale = 10 }, ErrInvalidScale},
		{"decay of one never stops", func(c *Config) { c.InertiaDecay = 1 }, ErrInvalidThreshold},
		{"zero dismiss distance", func(c *Config) { c.DismissDistance = 0 }, ErrInvalidThreshold},
		{"zero tick", func(c *Config) { c.TickInterval = 0 }, ErrInvalidTiming},
	}

	for _, tt := range tests {
		cfg := Default()
		tt.mutate(&cfg)
		if err := cfg.Validate(); !errors.Is(err, tt.want) {
			t.Errorf("%s: Validate() = %v, want %v", tt.name, err, tt.want)
		}
	}
}

func TestLoadOverlaysDefaults(t *testing.T) {
	path := filepath.Join(t.TempDir(), "viewer.json")
	if err := os.WriteFile(path, []byte(`{"max_scale": 6, "double_tap_scale": 3}`), 0o644); err != nil {
		t.Fatal(err)
	}

	got, err := Load(path)
	if err != nil {
		t.Fatalf("Load() error: %v", err)
	}

	want := Default()
	want.MaxScale = 6
	want.DoubleTapScale = 3
	if diff := cmp.Diff(want, got); diff != "" {
		t.Errorf("Load() mismatch (-want +got):\n%s", diff)
	}
}

func TestLoadErrors(t *testing.T) {
	dir := t.TempDir()

	if _, err := Load(filepath.Join(dir, "missing.json")); !errors.Is(err, os.ErrNotExist) {
		t.Errorf("missing file: got %v, want ErrNotExist", err)
	}

	bad := filepath.Join(dir, "bad.json")
	if err := os.WriteFile(bad, []byte(`{"min_scale": 2, "max_scale": 1}`), 0o644); err != nil {
		t.Fatal(err)
	}
	if _, err := Load(bad); !errors.Is(err, ErrInvalidScale) {
		t.Errorf("inconsistent file: got %v, want ErrInvalidScale", err)
	}
}
