package executor

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"github.com/vk/sweepgridgo/internal/model"
)

// countingRunner records dispatched jobs (identified by DiffK) and its
// concurrency high-water mark.
type countingRunner struct {
	mu        sync.Mutex
	order     []float64
	active    int
	maxActive int
	failOn    float64
	failErr   error
	gate      chan struct{} // when non-nil, jobs block here until it closes
}

func (r *countingRunner) Run(ctx context.Context, p model.Params) error {
	r.mu.Lock()
	r.order = append(r.order, p.DiffK)
	r.active++
	if r.active > r.maxActive {
		r.maxActive = r.active
	}
	r.mu.Unlock()

	defer func() {
		r.mu.Lock()
		r.active--
		r.mu.Unlock()
	}()

	if r.gate != nil {
		<-r.gate
	}
	if r.failErr != nil && p.DiffK == r.failOn {
		return r.failErr
	}
	return nil
}

func (r *countingRunner) ran() []float64 {
	r.mu.Lock()
	defer r.mu.Unlock()
	out := make([]float64, len(r.order))
	copy(out, r.order)
	return out
}

func jobList(n int) []model.Params {
	jobs := make([]model.Params, n)
	for i := range jobs {
		jobs[i] = model.Defaults()
		jobs[i].DiffK = float64(i)
	}
	return jobs
}

func TestWorkerCount(t *testing.T) {
	t.Parallel()

	cases := []struct {
		name  string
		jobs  int
		units int
		cap   int
		want  int
	}{
		{"more jobs than units", 5, 2, 0, 2},
		{"more units than jobs", 2, 8, 0, 2},
		{"single job", 1, 8, 0, 1},
		{"cap below min", 6, 4, 3, 3},
		{"cap above min is ignored", 6, 4, 10, 4},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			t.Parallel()
			e := New(jobList(tc.jobs), &countingRunner{}, Parallel,
				WithWorkerCap(tc.cap),
				WithHostUnits(func() int { return tc.units }))
			require.Equal(t, tc.want, e.workerCount())
		})
	}
}

func TestSequential_RunsInOrder(t *testing.T) {
	t.Parallel()

	runner := &countingRunner{}
	err := New(jobList(4), runner, Sequential).Run(context.Background())

	require.NoError(t, err)
	require.Equal(t, []float64{0, 1, 2, 3}, runner.ran())
	require.Equal(t, 1, runner.maxActive)
}

func TestSequential_FailFast(t *testing.T) {
	t.Parallel()

	// The 2nd of 3 jobs fails: job 1 completed, job 3 never attempted.
	boom := errors.New("boom")
	runner := &countingRunner{failOn: 1, failErr: boom}

	err := New(jobList(3), runner, Sequential).Run(context.Background())

	require.ErrorIs(t, err, boom)
	require.ErrorContains(t, err, "job 1 failed")
	require.Equal(t, []float64{0, 1}, runner.ran())
}

func TestSequential_CanceledContext(t *testing.T) {
	t.Parallel()

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	runner := &countingRunner{}
	err := New(jobList(3), runner, Sequential).Run(ctx)

	require.ErrorIs(t, err, context.Canceled)
	require.Empty(t, runner.ran())
}

func TestParallel_CompletesAllJobsWithBoundedPool(t *testing.T) {
	t.Parallel()

	// 5 jobs on a host reporting 2 processing units: both workers must be
	// saturated at some point, never more than 2 jobs in flight, and all 5
	// jobs complete before Run returns.
	runner := &countingRunner{gate: make(chan struct{})}
	e := New(jobList(5), runner, Parallel, WithHostUnits(func() int { return 2 }))

	done := make(chan error, 1)
	go func() { done <- e.Run(context.Background()) }()

	// Let both workers pick up a job, then release everything.
	for {
		runner.mu.Lock()
		saturated := runner.active == 2
		runner.mu.Unlock()
		if saturated {
			break
		}
		time.Sleep(time.Millisecond)
	}
	close(runner.gate)

	require.NoError(t, <-done)
	require.Len(t, runner.ran(), 5)
	require.Equal(t, 2, runner.maxActive)
}

func TestParallel_SingleJobSingleWorker(t *testing.T) {
	t.Parallel()

	runner := &countingRunner{}
	e := New(jobList(1), runner, Parallel, WithHostUnits(func() int { return 8 }))

	require.Equal(t, 1, e.workerCount())
	require.NoError(t, e.Run(context.Background()))
	require.Len(t, runner.ran(), 1)
}

func TestParallel_FailFastSkipsQueuedJobs(t *testing.T) {
	t.Parallel()

	// With a single worker the dispatch order is deterministic: job 0
	// succeeds, job 1 fails and cancels the run, job 2 is drained but
	// skipped.
	boom := errors.New("boom")
	runner := &countingRunner{failOn: 1, failErr: boom}
	e := New(jobList(3), runner, Parallel, WithHostUnits(func() int { return 1 }))

	err := e.Run(context.Background())

	require.ErrorIs(t, err, boom)
	require.ErrorContains(t, err, "job 1 failed")
	require.Equal(t, []float64{0, 1}, runner.ran())
}

func TestRun_EmptyJobList(t *testing.T) {
	t.Parallel()

	require.NoError(t, New(nil, &countingRunner{}, Parallel).Run(context.Background()))
	require.NoError(t, New(nil, &countingRunner{}, Sequential).Run(context.Background()))
}

func TestRun_UnknownMode(t *testing.T) {
	t.Parallel()

	err := New(jobList(1), &countingRunner{}, Mode(42)).Run(context.Background())
	require.ErrorContains(t, err, "unknown execution mode")
}
