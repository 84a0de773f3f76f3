package executor

import (
	"context"
	"fmt"
	"runtime"

	"github.com/vk/sweepgridgo/internal/ctxlog"
	"github.com/vk/sweepgridgo/internal/model"
)

// Mode selects the dispatch strategy for one batch.
type Mode int

const (
	// Sequential runs jobs one at a time, in job-list order, in the
	// calling goroutine.
	Sequential Mode = iota
	// Parallel distributes jobs across a bounded worker pool; completions
	// are unordered.
	Parallel
)

// Runner is the external simulation entry point: one call per configuration,
// nil on success. Implementations must be safe for concurrent calls with
// distinct configurations.
type Runner interface {
	Run(ctx context.Context, p model.Params) error
}

// RunnerFunc adapts a plain function to the Runner interface.
type RunnerFunc func(ctx context.Context, p model.Params) error

// Run implements Runner.
func (f RunnerFunc) Run(ctx context.Context, p model.Params) error {
	return f(ctx, p)
}

// Executor consumes one job list to completion. Its pool lives for exactly
// one Run call: workers are created after sizing and torn down on every exit
// path before Run returns.
type Executor struct {
	jobs      []model.Params
	runner    Runner
	mode      Mode
	workerCap int
	hostUnits func() int
}

// Option adjusts an Executor at construction.
type Option func(*Executor)

// WithWorkerCap bounds the parallel pool below the automatic size. Zero or
// negative means no extra cap.
func WithWorkerCap(n int) Option {
	return func(e *Executor) { e.workerCap = n }
}

// WithHostUnits overrides how the host's processing-unit count is read.
func WithHostUnits(fn func() int) Option {
	return func(e *Executor) { e.hostUnits = fn }
}

// New builds an Executor over jobs. The runner must not be nil.
func New(jobs []model.Params, runner Runner, mode Mode, opts ...Option) *Executor {
	e := &Executor{
		jobs:      jobs,
		runner:    runner,
		mode:      mode,
		hostUnits: runtime.NumCPU,
	}
	for _, opt := range opts {
		opt(e)
	}
	return e
}

// workerCount sizes the parallel pool: never more workers than jobs, never
// more than the host has processing units, optionally capped lower.
func (e *Executor) workerCount() int {
	n := min(len(e.jobs), e.hostUnits())
	if e.workerCap > 0 && e.workerCap < n {
		n = e.workerCap
	}
	if n < 1 {
		n = 1
	}
	return n
}

// Run dispatches the whole job list and blocks until every job has completed
// or one has failed. It returns nil only when the runner returned nil for
// every job.
func (e *Executor) Run(ctx context.Context) error {
	logger := ctxlog.FromContext(ctx)
	if len(e.jobs) == 0 {
		logger.Warn("Job list is empty, nothing to dispatch.")
		return nil
	}

	switch e.mode {
	case Sequential:
		return e.runSequential(ctx)
	case Parallel:
		return e.runParallel(ctx)
	default:
		return fmt.Errorf("unknown execution mode %d", e.mode)
	}
}

// runSequential runs jobs in list order in the calling goroutine. The first
// failure propagates immediately; later jobs are never attempted.
func (e *Executor) runSequential(ctx context.Context) error {
	logger := ctxlog.FromContext(ctx)
	logger.Debug("Dispatching sequentially.", "jobs", len(e.jobs))

	for i, job := range e.jobs {
		if err := ctx.Err(); err != nil {
			return err
		}
		logger.Debug("Job starting.", "jobIndex", i)
		if err := e.runner.Run(ctx, job); err != nil {
			logger.Error("Job failed.", "jobIndex", i, "error", err)
			return fmt.Errorf("job %d failed: %w", i, err)
		}
		logger.Debug("Job completed.", "jobIndex", i)
	}
	return nil
}
