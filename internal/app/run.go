package app

import (
	"context"
	"fmt"

	"github.com/vk/sweepgridgo/internal/ctxlog"
	"github.com/vk/sweepgridgo/internal/executor"
	"github.com/vk/sweepgridgo/internal/model"
	"github.com/vk/sweepgridgo/internal/results"
	"github.com/vk/sweepgridgo/internal/sim"
	"github.com/vk/sweepgridgo/internal/sweep"
)

// Run executes one full batch: expand the sweep against the base
// configuration, open a fresh results handle, and dispatch every job.
func (a *App) Run(ctx context.Context) error {
	ctx = ctxlog.WithLogger(ctx, a.logger)
	a.logger.Debug("App.Run method started.")

	base := model.Defaults()
	a.overrides.Apply(&base)

	jobs, err := sweep.Expand(base, a.axes)
	if err != nil {
		return fmt.Errorf("sweep expansion failed: %w", err)
	}
	a.logger.Info("Sweep expanded.", "jobs", len(jobs), "axes", len(a.axes))

	res, err := results.Open(a.config.ResultsPath)
	if err != nil {
		return err
	}
	defer res.Close()
	a.logger.Debug("Results file truncated.", "path", res.Path())

	runner := a.runner
	if runner == nil {
		runner = sim.New(res)
	}

	mode := executor.Parallel
	if a.config.Serial {
		mode = executor.Sequential
	}

	exec := executor.New(jobs, runner, mode, executor.WithWorkerCap(a.config.Workers))
	a.logger.Info("🚀 Starting dispatch.", "jobs", len(jobs), "serial", a.config.Serial)
	if err := exec.Run(ctx); err != nil {
		return fmt.Errorf("execution failed: %w", err)
	}
	a.logger.Info("🏁 Dispatch finished.", "jobs", len(jobs))

	a.logger.Debug("App.Run method finished.")
	return nil
}
