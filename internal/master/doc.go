// Package master integrates vectorized quantum master equations.
//
// Unconditional evolution (vacuum or Gaussian bath, no monitoring) is a
// linear time-independent ODE handed to the internal/ode solvers.
// Conditional evolution under homodyne monitoring is a nonlinear SDE whose
// drift is a = Qρ and whose diffusion is b = (k·ρ)ρ + Gρ; the Milstein,
// strong-1.5 Taylor and (negative-control) faulty-Milstein variants delegate
// stepping to internal/sde.
//
// All operator matrices and their products are computed once at integrator
// construction and shared read-only across steps and trajectories. Every
// variant exposes the same Integrate(ρ0, times, U1s, U2s) contract so the
// grid-convergence analyzer can treat them polymorphically; variants that do
// not consume noise accept and ignore it.
package master
