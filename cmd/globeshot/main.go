package main

import (
	"context"
	"flag"
	"fmt"
	"image/color"
	"log/slog"
	"os"
	"os/signal"
	"time"

	"globeview/internal/config"
	"globeview/internal/geom"
	"globeview/internal/globe"
	"globeview/internal/raster"
	"globeview/internal/sched"
)

// lastCoordinates keeps the most recent coordinate text for the caption.
type lastCoordinates struct{ c globe.Coordinates }

func (l *lastCoordinates) ShowCoordinates(c globe.Coordinates) { l.c = c }

func main() {
	// CLI flags
	configFile := flag.String("config", "", "Path to config.json file")
	points := flag.String("points", "", "Points dataset (default: xyz_points.json)")
	bookmarks := flag.String("bookmarks", "", "Bookmarks file (default: spots.json)")
	script := flag.String("cmds", "", `Navigation steps, e.g. "up45,right90,rotl,jump:10:20,place:Sydney"`)
	out := flag.String("out", "frame.png", "Output image (.png or .webp)")
	size := flag.Int("size", 720, "Output side in pixels")
	caption := flag.Bool("caption", true, "Print coordinates on the frame")
	realtime := flag.Bool("realtime", false, "Wait out transition timings on the wall clock")
	debug := flag.Bool("debug", false, "Log at debug level")

	flag.Parse()

	level := slog.LevelInfo
	if *debug {
		level = slog.LevelDebug
	}
	logger := slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: level}))

	if err := run(logger, options{
		configFile: *configFile,
		flags:      config.Flags{Points: *points, Bookmarks: *bookmarks, Debug: *debug},
		script:     *script,
		out:        *out,
		size:       *size,
		caption:    *caption,
		realtime:   *realtime,
	}); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

type options struct {
	configFile string
	flags      config.Flags
	script     string
	out        string
	size       int
	caption    bool
	realtime   bool
}

func run(logger *slog.Logger, opts options) error {
	var cfg config.Config
	if opts.configFile != "" {
		var err error
		if cfg, err = config.Load(opts.configFile); err != nil {
			return err
		}
	}
	cfg.Resolve(opts.flags)

	cmds, err := parseScript(opts.script)
	if err != nil {
		return err
	}
	format, err := raster.Format(opts.out)
	if err != nil {
		return err
	}
	if opts.size <= 0 {
		return fmt.Errorf("size must be positive, got %d", opts.size)
	}

	ds, err := geom.LoadDataset(cfg.PointsPath)
	if err != nil {
		return err
	}
	bms, err := geom.LoadBookmarks(cfg.BookmarksPath)
	if err != nil {
		logger.Warn("no bookmarks loaded", "path", cfg.BookmarksPath, "err", err)
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	var clock sched.Clock = sched.NewManualClock(time.Now())
	if opts.realtime {
		clock = sched.SystemClock{}
	}
	loop := sched.NewLoop(clock)
	canvas := raster.New(opts.size, ds.Palette.At(globe.NeutralIndex))
	hud := &lastCoordinates{}
	engine := globe.NewEngine(canvas, loop).WithTiming(cfg.Duration(), cfg.Steps)
	nav := globe.NewNavigator(globe.NewScene(ds, bms), engine).WithDisplay(hud).WithLogger(logger)

	nav.Initialize()
	if err := loop.Run(ctx); err != nil {
		return err
	}
	for _, c := range cmds {
		if err := c.apply(nav); err != nil {
			return err
		}
		if err := loop.Run(ctx); err != nil {
			return err
		}
		logger.Debug("step done", "op", c.op, "lat", hud.c.LatText, "lon", hud.c.LonText)
	}

	if opts.caption {
		canvas.Caption(color.White,
			fmt.Sprintf("lat %s  lon %s", hud.c.LatText, hud.c.LonText),
			hud.c.LatDMS+" "+hud.c.LonDMS)
	}

	f, err := os.Create(opts.out)
	if err != nil {
		return err
	}
	if err := canvas.Encode(f, format); err != nil {
		f.Close()
		return fmt.Errorf("encode %s: %w", opts.out, err)
	}
	if err := f.Close(); err != nil {
		return err
	}
	logger.Info("frame written", "path", opts.out, "format", format, "lat", hud.c.LatText, "lon", hud.c.LonText)
	return nil
}
