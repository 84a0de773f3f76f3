// Package app wires the application together: logger construction, sweep
// definition loading and merging, job-list expansion, and dispatch.
package app
