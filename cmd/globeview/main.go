package main

import (
	"flag"
	"fmt"
	"log"
	"log/slog"
	"os"

	tea "github.com/charmbracelet/bubbletea"

	"globeview/internal/config"
	"globeview/internal/geom"
	"globeview/internal/tui"
)

func main() {
	// CLI flags
	configFile := flag.String("config", "", "Path to config.json file")
	points := flag.String("points", "", "Points dataset (default: xyz_points.json)")
	bookmarks := flag.String("bookmarks", "", "Bookmarks file (default: spots.json)")
	duration := flag.Int("duration", 0, "Transition duration in ms (default: 144)")
	steps := flag.Int("steps", 0, "Transition batches (default: 13)")
	logFile := flag.String("log", "", "Write logs to this file")
	debug := flag.Bool("debug", false, "Log at debug level")

	flag.Parse()

	var cfg config.Config
	if *configFile != "" {
		var err error
		cfg, err = config.Load(*configFile)
		if err != nil {
			fmt.Fprintf(os.Stderr, "Error loading config: %v\n", err)
			os.Exit(1)
		}
	}
	cfg.Resolve(config.Flags{
		Points:     *points,
		Bookmarks:  *bookmarks,
		LogFile:    *logFile,
		DurationMS: *duration,
		Steps:      *steps,
		Debug:      *debug,
	})

	// the alt screen owns stdout, so logs go to a file or nowhere
	logger := slog.New(slog.DiscardHandler)
	if cfg.LogFile != "" {
		f, err := tea.LogToFile(cfg.LogFile, "globeview")
		if err != nil {
			fmt.Fprintf(os.Stderr, "Error opening log: %v\n", err)
			os.Exit(1)
		}
		defer f.Close()
		level := slog.LevelInfo
		if cfg.Debug {
			level = slog.LevelDebug
		}
		logger = slog.New(slog.NewTextHandler(f, &slog.HandlerOptions{Level: level}))
	}

	ds, err := geom.LoadDataset(cfg.PointsPath)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error loading points: %v\n", err)
		fmt.Fprintln(os.Stderr, "Generate a dataset with globegen or pass -points.")
		os.Exit(1)
	}
	bms, err := geom.LoadBookmarks(cfg.BookmarksPath)
	if err != nil {
		logger.Warn("no bookmarks loaded", "path", cfg.BookmarksPath, "err", err)
	}
	logger.Info("dataset loaded", "points", len(ds.Points), "bookmarks", len(bms))

	m := tui.New(tui.Options{
		Dataset:   ds,
		Bookmarks: bms,
		Duration:  cfg.Duration(),
		Steps:     cfg.Steps,
		Logger:    logger,
	})
	if _, err := tea.NewProgram(m, tea.WithAltScreen()).Run(); err != nil {
		log.Fatal(err)
	}
}
