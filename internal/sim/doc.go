// Package sim is the simulation collaborator: a reduced rendition of the toy
// 2D moisture model. Column relative humidity evolves on a doubly periodic
// grid under dR/dt = C - D - S, where C is fast convective moistening at
// stochastically chosen locations, D is down-gradient diffusion with constant
// coefficient, and S is subsidence drying toward a dry atmosphere.
//
// Each run appends one summary line to the shared results file and writes a
// per-run time-series artifact named from its swept parameter values, so
// concurrent runs with distinct configurations never collide.
package sim
