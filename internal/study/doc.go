// Package study turns a declarative configuration into a full convergence
// run: it assembles the physical operators, builds the requested integrator,
// and drives a trajectory batch through the grid-convergence analyzer.
package study
