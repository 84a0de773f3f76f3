// Package results owns the shared results file: one handle per invocation,
// truncated on open, appended to by every simulation run.
package results

import (
	"fmt"
	"os"
	"sync"
)

// File is an append-only handle to the batch results file. Its lifetime is
// scoped to one dispatch: opened before the first job, closed after the last.
type File struct {
	mu   sync.Mutex
	f    *os.File
	path string
}

// Open truncates or creates the results file at path, establishing a clean
// append target for the runs of a single invocation. The file is never
// reopened or rotated within that invocation.
func Open(path string) (*File, error) {
	f, err := os.OpenFile(path, os.O_CREATE|os.O_WRONLY|os.O_TRUNC, 0o644)
	if err != nil {
		return nil, fmt.Errorf("failed to open results file: %w", err)
	}
	return &File{f: f, path: path}, nil
}

// Appendf appends one formatted line. Appends from concurrent jobs are
// serialized so lines never interleave.
func (r *File) Appendf(format string, args ...any) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, err := fmt.Fprintf(r.f, format+"\n", args...); err != nil {
		return fmt.Errorf("failed to append to results file: %w", err)
	}
	return nil
}

// Path returns the location the handle was opened at.
func (r *File) Path() string {
	return r.path
}

// Close releases the handle.
func (r *File) Close() error {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.f.Close()
}
