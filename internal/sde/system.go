package sde

// System exposes the drift and diffusion fields of an SDE
// dρ = a(ρ)dt + b(ρ)dW in the vectorized coefficient basis.
type System interface {
	Drift(rho State) State
	Diffusion(rho State) State
	Dim() int
}

// MilsteinSystem additionally provides the diffusion directional derivative
// of the diffusion field, b·∇b, needed by the order-1.0 correction term.
type MilsteinSystem interface {
	System
	BDxB(rho State) State
}

// Taylor15System provides the full set of directional derivative terms
// consumed by the strong order-1.5 Taylor scheme. The fields of a quantum
// filtering equation are nonlinear in ρ, so these are genuine functions of
// the current state, recomputed every step.
type Taylor15System interface {
	MilsteinSystem
	BDxA(rho State) State
	ADxB(rho State) State
	ADxA(rho State) State
	BDxBDxB(rho State) State
}

// Stepper advances a state vector across one interval given that interval's
// standard-normal samples u1 and u2. Schemes that do not consume u2 accept
// and ignore it so all steppers can be driven uniformly.
type Stepper interface {
	Step(rho State, t, dt, u1, u2 float64) State
}
