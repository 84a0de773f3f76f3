//go:build linux

// Package affinity pins the dispatching process to the host's processing
// units before a parallel batch starts. The pin is a best-effort hint to the
// scheduler: failures are logged and swallowed, never fatal to the run.
package affinity

import (
	"context"
	"runtime"

	"golang.org/x/sys/unix"

	"github.com/vk/sweepgridgo/internal/ctxlog"
)

// Pin constrains the current process to every online processing unit.
func Pin(ctx context.Context) {
	logger := ctxlog.FromContext(ctx)

	var set unix.CPUSet
	units := runtime.NumCPU()
	for i := 0; i < units; i++ {
		set.Set(i)
	}

	if err := unix.SchedSetaffinity(0, &set); err != nil {
		logger.Warn("Could not set processor affinity, continuing without it.", "error", err)
		return
	}
	logger.Debug("Processor affinity set.", "units", units)
}
