// Package testutil provides shared helpers for exercising the sweep
// dispatcher in tests.
package testutil

import (
	"bytes"
	"context"
	"sync"

	"github.com/vk/sweepgridgo/internal/model"
)

// SafeBuffer is a thread-safe buffer for capturing log output in tests.
type SafeBuffer struct {
	b  bytes.Buffer
	mu sync.Mutex
}

// Write implements the io.Writer interface for SafeBuffer.
func (b *SafeBuffer) Write(p []byte) (int, error) {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.b.Write(p)
}

// String implements the fmt.Stringer interface for SafeBuffer.
func (b *SafeBuffer) String() string {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.b.String()
}

// RecordingRunner is an executor.Runner that records every configuration it
// is dispatched with and tracks its concurrency high-water mark. FailOn, when
// set, decides per configuration whether the job fails.
type RecordingRunner struct {
	mu        sync.Mutex
	runs      []model.Params
	active    int
	maxActive int

	// FailOn returns a non-nil error for configurations whose job should
	// fail. Read without locking; set it before dispatch.
	FailOn func(p model.Params) error

	// Block, when non-nil, is called between bookkeeping and return so
	// tests can hold jobs in flight.
	Block func(ctx context.Context, p model.Params)
}

// Run implements executor.Runner.
func (r *RecordingRunner) Run(ctx context.Context, p model.Params) error {
	r.mu.Lock()
	r.runs = append(r.runs, p)
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

	if r.Block != nil {
		r.Block(ctx, p)
	}
	if r.FailOn != nil {
		return r.FailOn(p)
	}
	return nil
}

// Runs returns a copy of the dispatched configurations in dispatch order.
func (r *RecordingRunner) Runs() []model.Params {
	r.mu.Lock()
	defer r.mu.Unlock()
	out := make([]model.Params, len(r.runs))
	copy(out, r.runs)
	return out
}

// MaxActive returns the highest number of concurrently running jobs observed.
func (r *RecordingRunner) MaxActive() int {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.maxActive
}
