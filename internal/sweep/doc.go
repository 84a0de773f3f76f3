// Package sweep expands a base configuration and a set of per-axis candidate
// lists into the Cartesian product of runnable configurations.
package sweep
