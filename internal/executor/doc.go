// Package executor dispatches an expanded job list to the simulation runner,
// either sequentially in the calling goroutine or across a worker pool capped
// at the host's processing-unit count.
//
// The batch is fail-fast: the first job error aborts the remainder and
// surfaces to the caller. There is no per-job retry, timeout, or cancellation
// of an in-flight job; a hung job hangs the whole batch in both modes. Run
// honors an already-cancelled context between jobs, nothing more.
package executor
