// Package gridconv estimates the empirical strong convergence order of a
// master-equation integrator by grid refinement.
//
// A trajectory is integrated on a fine grid and on the grids with doubled
// and quadrupled intervals, driven by *correlated* noise: the coarser
// increments are deterministic recombinations of the finer ones
// ([Coarsen]), so all three runs follow the same underlying Brownian path.
// The log-ratio of successive endpoint differences then estimates the
// exponent p in the strong error O(Δt^p) ([CalcRate]); [StrongConvergence]
// repeats this over a batch of independent trajectories, optionally in
// parallel.
package gridconv
