package main

import (
	"log/slog"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/gogpu/lottie"
	"github.com/gogpu/lottie/backend"
)

func TestLoadConfig(t *testing.T) {
	path := filepath.Join(t.TempDir(), "render.yaml")
	data := "input: anim.json\noutput: out\nbackend: recording\nscale: 2\nsegment: intro\nbackground: \"#ff0000\"\nworkers: 3\nlog_level: debug\n"
	require.NoError(t, os.WriteFile(path, []byte(data), 0o644))

	cfg, err := loadConfig(path)
	require.NoError(t, err)
	cfg.applyDefaults()

	assert.Equal(t, "anim.json", cfg.Input)
	assert.Equal(t, "out", cfg.Output)
	assert.Equal(t, "recording", cfg.Backend)
	assert.Equal(t, 2.0, cfg.Scale)
	assert.Equal(t, "intro", cfg.Segment)
	assert.Equal(t, 3, cfg.Workers)
	assert.Equal(t, slog.LevelDebug, cfg.level())
	require.NoError(t, cfg.validate())

	bg, err := cfg.background()
	require.NoError(t, err)
	assert.Equal(t, backend.Color{R: 1, A: 1}, bg)
}

func TestLoadConfigErrors(t *testing.T) {
	_, err := loadConfig(filepath.Join(t.TempDir(), "missing.yaml"))
	assert.Error(t, err)

	path := filepath.Join(t.TempDir(), "bad.yaml")
	require.NoError(t, os.WriteFile(path, []byte("workers: [1"), 0o644))
	_, err = loadConfig(path)
	assert.Error(t, err)
}

func TestConfigDefaults(t *testing.T) {
	cfg := &Config{Input: "a.json"}
	cfg.applyDefaults()

	assert.Equal(t, "frames", cfg.Output)
	assert.Equal(t, "raster", cfg.Backend)
	assert.Equal(t, 1.0, cfg.Scale)
	assert.Positive(t, cfg.Workers)
	assert.Equal(t, slog.LevelInfo, cfg.level())

	bg, err := cfg.background()
	require.NoError(t, err)
	assert.Equal(t, backend.Transparent, bg)
}

func TestConfigValidate(t *testing.T) {
	tests := []struct {
		name string
		cfg  Config
	}{
		{"no input", Config{}},
		{"unknown backend", Config{Input: "a.json", Backend: "plotter"}},
		{"negative size", Config{Input: "a.json", Width: -1}},
		{"bad background", Config{Input: "a.json", Background: "red"}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := tt.cfg
			cfg.applyDefaults()
			assert.Error(t, cfg.validate())
		})
	}
}

func TestConfigSize(t *testing.T) {
	a := &lottie.Animation{Width: 100, Height: 50}
	tests := []struct {
		name  string
		cfg   Config
		wantW int
		wantH int
	}{
		{"composition size", Config{Scale: 1}, 100, 50},
		{"scaled", Config{Scale: 1.5}, 150, 75},
		{"explicit width", Config{Scale: 1, Width: 20}, 20, 50},
		{"explicit both", Config{Scale: 2, Width: 20, Height: 30}, 20, 30},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			w, h := tt.cfg.size(a)
			assert.Equal(t, tt.wantW, w)
			assert.Equal(t, tt.wantH, h)
		})
	}
}
