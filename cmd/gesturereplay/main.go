// Command gesturereplay replays a JSON gesture script against the viewer
// engine and prints one JSON snapshot record per step.
package main

import (
	"bufio"
	"context"
	"encoding/json"
	"flag"
	"fmt"
	"log/slog"
	"os"
	"os/signal"

	"github.com/elektrokombinacija/mediaview/internal/library"
	"github.com/elektrokombinacija/mediaview/internal/sim"
	"github.com/elektrokombinacija/mediaview/internal/viewer/config"
	"github.com/elektrokombinacija/mediaview/internal/viewer/engine"
)

func main() {
	scriptPath := flag.String("script", "", "Gesture script (JSON)")
	cfgPath := flag.String("config", "", "JSON file overriding viewer tuning")
	dir := flag.String("dir", "", "Take pages from the images in this directory instead of the script")
	metricsPath := flag.String("metrics", "", "Write replay metrics to this JSON file")
	verbose := flag.Bool("v", false, "Log gesture handling to stderr")
	flag.Parse()

	if *scriptPath == "" {
		fmt.Fprintln(os.Stderr, "usage: gesturereplay -script session.json [-config tuning.json] [-dir images]")
		os.Exit(2)
	}
	if *verbose {
		engine.SetLogger(slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: slog.LevelDebug})))
	}

	cfg := config.Default()
	if *cfgPath != "" {
		var err error
		if cfg, err = config.Load(*cfgPath); err != nil {
			fmt.Fprintf(os.Stderr, "Error loading config: %v\n", err)
			os.Exit(1)
		}
	}

	script, err := sim.LoadScript(*scriptPath)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error loading script: %v\n", err)
		os.Exit(1)
	}
	if *dir != "" {
		lib, err := library.Scan(*dir, 0)
		if err != nil {
			fmt.Fprintf(os.Stderr, "Error scanning images: %v\n", err)
			os.Exit(1)
		}
		script.Pages = lib.Pages()
	}

	s, err := sim.NewSimulator(cfg, script)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	out := bufio.NewWriter(os.Stdout)
	enc := json.NewEncoder(out)
	metrics, err := s.Run(ctx, func(r sim.Record) error {
		return enc.Encode(r)
	})
	if ferr := out.Flush(); err == nil {
		err = ferr
	}
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error replaying: %v\n", err)
		os.Exit(1)
	}

	fmt.Fprintf(os.Stderr, "%d steps, %d frames, %d page changes, %d dismissals, peak scale %.2f\n",
		metrics.Steps, metrics.Frames, metrics.PageChanges, metrics.Dismissals, metrics.PeakScale)
	if *metricsPath != "" {
		if err := sim.ExportMetrics(metrics, *metricsPath); err != nil {
			fmt.Fprintf(os.Stderr, "Error writing metrics: %v\n", err)
			os.Exit(1)
		}
	}
}
