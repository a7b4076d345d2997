package main

import (
	"fmt"
	"log/slog"
	"os"
	"runtime"
	"strings"

	"github.com/lucasb-eyer/go-colorful"
	"gopkg.in/yaml.v3"

	"github.com/gogpu/lottie"
	"github.com/gogpu/lottie/backend"
)

// Config controls one export. Zero values take their defaults from
// applyDefaults; command-line flags override file values.
type Config struct {
	Input  string `yaml:"input"`
	Output string `yaml:"output"`

	// Backend is a registered backend name: "raster" writes PNG files,
	// "recording" writes command listings.
	Backend string `yaml:"backend"`

	// Width and Height default to the composition size times Scale.
	Width  int     `yaml:"width"`
	Height int     `yaml:"height"`
	Scale  float64 `yaml:"scale"`

	// Segment names a marker whose frames are exported instead of the
	// whole animation.
	Segment string `yaml:"segment"`

	// Background is a "#rrggbb" color. Empty means transparent.
	Background string `yaml:"background"`

	Workers  int    `yaml:"workers"`
	LogLevel string `yaml:"log_level"`
}

// loadConfig reads a YAML configuration file.
func loadConfig(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	var cfg Config
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return nil, fmt.Errorf("config %s: %w", path, err)
	}
	return &cfg, nil
}

func (c *Config) applyDefaults() {
	if c.Output == "" {
		c.Output = "frames"
	}
	if c.Backend == "" {
		c.Backend = "raster"
	}
	if c.Scale <= 0 {
		c.Scale = 1
	}
	if c.Workers <= 0 {
		c.Workers = runtime.GOMAXPROCS(0)
	}
	if c.LogLevel == "" {
		c.LogLevel = "info"
	}
}

func (c *Config) validate() error {
	if c.Input == "" {
		return fmt.Errorf("no input document")
	}
	if !backend.IsRegistered(c.Backend) {
		return fmt.Errorf("backend %q is not one of %s", c.Backend, strings.Join(backend.Available(), ", "))
	}
	if c.Width < 0 || c.Height < 0 {
		return fmt.Errorf("negative size %dx%d", c.Width, c.Height)
	}
	if _, err := c.background(); err != nil {
		return err
	}
	return nil
}

// size returns the surface size for a.
func (c *Config) size(a *lottie.Animation) (int, int) {
	w, h := c.Width, c.Height
	if w == 0 {
		w = int(a.Width*c.Scale + 0.5)
	}
	if h == 0 {
		h = int(a.Height*c.Scale + 0.5)
	}
	return max(w, 1), max(h, 1)
}

func (c *Config) background() (backend.Color, error) {
	if c.Background == "" {
		return backend.Transparent, nil
	}
	col, err := colorful.Hex(c.Background)
	if err != nil {
		return backend.Color{}, fmt.Errorf("background: %w", err)
	}
	return backend.Color{R: col.R, G: col.G, B: col.B, A: 1}, nil
}

func (c *Config) playerOptions() []lottie.Option {
	bg, _ := c.background()
	opts := []lottie.Option{lottie.WithLoop(false), lottie.WithBackground(bg)}
	if c.Segment != "" {
		opts = append(opts, lottie.WithSegment(c.Segment))
	}
	return opts
}

func (c *Config) level() slog.Level {
	switch strings.ToLower(c.LogLevel) {
	case "debug":
		return slog.LevelDebug
	case "warn":
		return slog.LevelWarn
	case "error":
		return slog.LevelError
	}
	return slog.LevelInfo
}
