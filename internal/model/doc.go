// Package model defines the simulation parameter set: the full configuration
// for one run of the toy moisture-diffusion model, its defaults, and the
// declared sweep axes that may vary across a batch.
package model
