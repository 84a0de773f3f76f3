package app

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"maps"

	"github.com/vk/sweepgridgo/internal/ctxlog"
	"github.com/vk/sweepgridgo/internal/executor"
	"github.com/vk/sweepgridgo/internal/gridfile"
	"github.com/vk/sweepgridgo/internal/model"
	"github.com/vk/sweepgridgo/internal/sweep"
)

// App encapsulates the application's dependencies, configuration, and lifecycle.
type App struct {
	outW      io.Writer
	logger    *slog.Logger
	config    *Config
	axes      sweep.AxisSet
	overrides model.Overrides
	runner    executor.Runner
}

// Option adjusts an App at construction.
type Option func(*App)

// WithRunner substitutes the simulation entry point, primarily for tests.
func WithRunner(r executor.Runner) Option {
	return func(a *App) { a.runner = r }
}

// New is the constructor for the main application. It builds the app's
// isolated logger, loads the sweep definition file when one is configured,
// and merges it under the command-line axes and overrides (flags win).
func New(outW io.Writer, cfg *Config, opts ...Option) (*App, error) {
	logger := newLogger(cfg.LogLevel, cfg.LogFormat, outW)
	ctx := ctxlog.WithLogger(context.Background(), logger)
	logger.Debug("Logger configured successfully.")

	axes := sweep.AxisSet{}
	overrides := cfg.Overrides

	if cfg.GridPath != "" {
		loaded, err := gridfile.Load(ctx, cfg.GridPath)
		if err != nil {
			return nil, fmt.Errorf("failed to load sweep definition: %w", err)
		}
		maps.Copy(axes, loaded.Axes)
		overrides = cfg.Overrides.Merge(loaded.Overrides)
		logger.Debug("Sweep definition loaded.", "path", cfg.GridPath, "axes", len(loaded.Axes))
	}
	maps.Copy(axes, cfg.Axes)

	a := &App{
		outW:      outW,
		logger:    logger,
		config:    cfg,
		axes:      axes,
		overrides: overrides,
	}
	for _, opt := range opts {
		opt(a)
	}
	return a, nil
}

// Logger returns the application's logger. This is primarily for testing.
func (a *App) Logger() *slog.Logger {
	return a.logger
}
