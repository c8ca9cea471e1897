package config

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"time"
)

const (
	DefaultPoints    = "xyz_points.json"
	DefaultBookmarks = "spots.json"
	DefaultDuration  = 144
	DefaultSteps     = 13
)

// Config holds dataset paths and transition settings.
type Config struct {
	// Paths
	PointsPath    string `json:"points"`
	BookmarksPath string `json:"bookmarks"`
	LogFile       string `json:"log_file"`

	// Transitions
	DurationMS int `json:"duration_ms"`
	Steps      int `json:"steps"`

	Debug bool `json:"debug"`
}

// Load reads a JSON config file and returns Config.
// Fields not set in the file keep their zero values; relative paths are
// taken relative to the file's directory.
func Load(path string) (Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return Config{}, fmt.Errorf("config: read %s: %w", path, err)
	}

	var cfg Config
	if err := json.Unmarshal(data, &cfg); err != nil {
		return Config{}, fmt.Errorf("config: parse %s: %w", path, err)
	}

	dir := filepath.Dir(path)
	for _, p := range []*string{&cfg.PointsPath, &cfg.BookmarksPath, &cfg.LogFile} {
		if *p != "" && !filepath.IsAbs(*p) {
			*p = filepath.Join(dir, *p)
		}
	}
	return cfg, nil
}

// Resolve applies CLI overrides, then fills empty fields with defaults.
// Flags win when non-zero/non-empty.
func (c *Config) Resolve(flags Flags) {
	if flags.Points != "" {
		c.PointsPath = flags.Points
	}
	if flags.Bookmarks != "" {
		c.BookmarksPath = flags.Bookmarks
	}
	if flags.LogFile != "" {
		c.LogFile = flags.LogFile
	}
	if flags.DurationMS > 0 {
		c.DurationMS = flags.DurationMS
	}
	if flags.Steps > 0 {
		c.Steps = flags.Steps
	}
	if flags.Debug {
		c.Debug = true
	}

	if c.PointsPath == "" {
		c.PointsPath = DefaultPoints
	}
	if c.BookmarksPath == "" {
		c.BookmarksPath = DefaultBookmarks
	}
	if c.DurationMS <= 0 {
		c.DurationMS = DefaultDuration
	}
	if c.Steps <= 0 {
		c.Steps = DefaultSteps
	}
}

func (c Config) Duration() time.Duration {
	return time.Duration(c.DurationMS) * time.Millisecond
}

// Flags holds CLI flag values that override config file settings.
type Flags struct {
	Points     string
	Bookmarks  string
	LogFile    string
	DurationMS int
	Steps      int
	Debug      bool
}
