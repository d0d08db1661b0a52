// Package sde provides the stochastic stepping primitives for vectorized
// master equations driven by a single Wiener process:
//
//   - [State]: real coefficient vector of the vectorized density operator
//   - [System]: drift/diffusion fields of the SDE (dρ = a dt + b dW)
//   - [EulerMaruyama], [Milstein], [Taylor15]: one-step schemes of strong
//     order 0.5, 1.0 and 1.5
//   - [FaultyMilstein]: negative-control scheme kept for validating the
//     grid-convergence analysis
//   - [Integrate]: drives a stepper across a full time grid
//
// Noise enters as pairs of standard-normal samples (U1, U2) per interval;
// the Wiener increment is U1·√Δt and the multiple-Itô increment ΔZ is built
// from both. Higher-order schemes require the directional derivative terms
// of the drift and diffusion fields, expressed as capability interfaces so a
// system only implements what its scheme consumes.
package sde
