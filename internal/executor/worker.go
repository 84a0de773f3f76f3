package executor

import (
	"context"
	"fmt"
	"sync"

	"github.com/vk/sweepgridgo/internal/affinity"
	"github.com/vk/sweepgridgo/internal/ctxlog"
	"github.com/vk/sweepgridgo/internal/model"
)

// indexedJob pairs a configuration with its job-list position for reporting.
type indexedJob struct {
	index  int
	params model.Params
}

// failure records the first job error of a batch.
type failure struct {
	once  sync.Once
	index int
	err   error
}

func (f *failure) record(index int, err error) {
	f.once.Do(func() {
		f.index = index
		f.err = err
	})
}

// runParallel distributes the job list across a pool sized by workerCount.
// Each worker pulls the next unassigned job from a shared channel, so
// completion order is unconstrained. The first failure cancels the run
// context: queued jobs are skipped, in-flight jobs finish, and the pool is
// joined before the error is returned.
func (e *Executor) runParallel(ctx context.Context) error {
	logger := ctxlog.FromContext(ctx)

	workers := e.workerCount()
	affinity.Pin(ctx)

	jobChan := make(chan indexedJob, len(e.jobs))
	runCtx, cancel := context.WithCancel(ctx)
	defer cancel()

	var fail failure
	var wg sync.WaitGroup
	wg.Add(workers)

	logger.Debug("Starting worker pool.", "workers", workers, "jobs", len(e.jobs))
	for i := 0; i < workers; i++ {
		go func(workerID int) {
			defer wg.Done()
			e.worker(runCtx, jobChan, cancel, &fail, workerID)
		}(i)
	}

	for i, job := range e.jobs {
		jobChan <- indexedJob{index: i, params: job}
	}
	close(jobChan)

	wg.Wait()
	logger.Debug("Worker pool drained and released.")

	if fail.err != nil {
		return fmt.Errorf("job %d failed: %w", fail.index, fail.err)
	}
	return ctx.Err()
}

// worker is the processing loop for a single pool worker. It drains jobChan
// so a cancelled run still consumes (and skips) every queued job.
func (e *Executor) worker(ctx context.Context, jobChan <-chan indexedJob, cancel context.CancelFunc, fail *failure, workerID int) {
	logger := ctxlog.FromContext(ctx)
	logger.Debug("Worker started.", "workerID", workerID)

	for job := range jobChan {
		workerLogger := logger.With("workerID", workerID, "jobIndex", job.index)

		if ctx.Err() != nil {
			workerLogger.Warn("Run canceled, skipping job.")
			continue
		}

		workerLogger.Debug("Worker picked up job.")
		if err := e.runner.Run(ctx, job.params); err != nil {
			workerLogger.Error("Job failed.", "error", err)
			fail.record(job.index, err)
			cancel()
			continue
		}
		workerLogger.Debug("Job completed.")
	}

	logger.Debug("Worker finished.", "workerID", workerID)
}
