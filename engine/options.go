package engine

import (
	"runtime"

	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
)

// ============================================================================
// ENGINE OPTIONS — Functional options for ComputeAll() and Render()
// ============================================================================

// Option configures engine behavior via functional options pattern.
type Option func(*config)

type config struct {
	Workers int            // questions computed concurrently
	Logger  zerolog.Logger // per-question progress and failures
}

// WithWorkers bounds how many questions are computed at once.
// n <= 0 keeps the default (GOMAXPROCS).
func WithWorkers(n int) Option {
	return func(c *config) {
		if n > 0 {
			c.Workers = n
		}
	}
}

// WithLogger sets the logger ComputeAll reports to.
func WithLogger(l zerolog.Logger) Option {
	return func(c *config) {
		c.Logger = l
	}
}

// applyOptions creates a config from functional options.
func applyOptions(opts []Option) *config {
	cfg := &config{
		Workers: runtime.GOMAXPROCS(0),
		Logger:  log.Logger,
	}
	for _, opt := range opts {
		opt(cfg)
	}
	return cfg
}

// RenderOption configures a chart description.
type RenderOption func(*renderConfig)

type renderConfig struct {
	XAxis string
	YAxis string
	Color string
	Grid  bool
}

// WithAxes sets the axis labels.
func WithAxes(x, y string) RenderOption {
	return func(c *renderConfig) {
		c.XAxis = x
		c.YAxis = y
	}
}

// WithColor sets the series color. Empty keeps the palette default.
func WithColor(color string) RenderOption {
	return func(c *renderConfig) {
		if color != "" {
			c.Color = color
		}
	}
}

// WithoutGrid turns grid lines off.
func WithoutGrid() RenderOption {
	return func(c *renderConfig) {
		c.Grid = false
	}
}

func applyRenderOptions(opts []RenderOption) *renderConfig {
	cfg := &renderConfig{Grid: true}
	for _, opt := range opts {
		opt(cfg)
	}
	return cfg
}
