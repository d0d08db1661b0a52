// Package ode solves the deterministic linear systems dx/dt = A·x that
// unconditional master equations reduce to. A is constant and is its own
// exact Jacobian, which the Crank–Nicolson solver exploits: one LU
// factorization of the implicit operator serves the entire grid. The RK4
// solver is the explicit alternative for loosely spaced output points.
package ode
