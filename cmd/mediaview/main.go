// Command mediaview shows the images in a directory with pinch, pan,
// swipe and drag-to-dismiss gestures mapped onto mouse and keyboard.
package main

import (
	"flag"
	"log"
	"log/slog"
	"os"

	"gioui.org/app"
	"gioui.org/unit"

	"github.com/elektrokombinacija/mediaview/internal/library"
	"github.com/elektrokombinacija/mediaview/internal/viewer/config"
	"github.com/elektrokombinacija/mediaview/internal/viewer/engine"
	"github.com/elektrokombinacija/mediaview/internal/vis"
)

func main() {
	dir := flag.String("dir", ".", "Directory of images to show")
	cfgPath := flag.String("config", "", "JSON file overriding viewer tuning")
	open := flag.String("open", "", "File name to open first")
	maxDim := flag.Int("max-dim", 4096, "Downscale decoded images larger than this (0 = never)")
	verbose := flag.Bool("v", false, "Log gesture handling to stderr")
	flag.Parse()

	if *verbose {
		engine.SetLogger(slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: slog.LevelDebug})))
	}

	cfg := config.Default()
	if *cfgPath != "" {
		var err error
		if cfg, err = config.Load(*cfgPath); err != nil {
			log.Fatal(err)
		}
	}

	lib, err := library.Scan(*dir, *maxDim)
	if err != nil {
		log.Fatal(err)
	}
	for _, err := range lib.Skipped {
		log.Printf("skipping: %v", err)
	}

	start := 0
	if *open != "" {
		if start = lib.Index(*open); start < 0 {
			log.Fatalf("%s: not found in %s", *open, *dir)
		}
	}

	viewer, err := vis.NewApp(cfg, lib, start)
	if err != nil {
		log.Fatal(err)
	}

	go func() {
		window := new(app.Window)
		window.Option(
			app.Title("mediaview"),
			app.Size(unit.Dp(1200), unit.Dp(800)),
		)
		if err := viewer.Run(window); err != nil {
			log.Fatal(err)
		}
		os.Exit(0)
	}()
	app.Main()
}
