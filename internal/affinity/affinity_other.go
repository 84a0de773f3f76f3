//go:build !linux

// Package affinity pins the dispatching process to the host's processing
// units before a parallel batch starts. The pin is a best-effort hint to the
// scheduler: failures are logged and swallowed, never fatal to the run.
package affinity

import (
	"context"

	"github.com/vk/sweepgridgo/internal/ctxlog"
)

// Pin is a no-op on platforms without processor-affinity control.
func Pin(ctx context.Context) {
	ctxlog.FromContext(ctx).Debug("Processor affinity not supported on this platform.")
}
