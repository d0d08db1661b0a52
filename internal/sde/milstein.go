package sde

import "math"

// Milstein is the strong order-1.0 scheme
//
//	ρ' = ρ + aΔt + bΔW + ½(b·∇b)(ΔW² − Δt)
type Milstein struct {
	sys MilsteinSystem
}

func NewMilstein(sys MilsteinSystem) *Milstein {
	return &Milstein{sys: sys}
}

func (m *Milstein) Step(rho State, t, dt, u1, u2 float64) State {
	dW := u1 * math.Sqrt(dt)
	a := m.sys.Drift(rho)
	b := m.sys.Diffusion(rho)
	bdb := m.sys.BDxB(rho)

	corr := 0.5 * (dW*dW - dt)
	next := make(State, len(rho))
	for i := range rho {
		next[i] = rho[i] + a[i]*dt + b[i]*dW + bdb[i]*corr
	}
	return next
}

// FaultyMilstein omits the ½ factor on the Milstein correction term. It is
// kept deliberately as a negative control: grid-convergence analysis run
// against it must report an order visibly below 1.0, which is how the
// analyzer itself is validated. Do not fix it.
type FaultyMilstein struct {
	sys MilsteinSystem
}

func NewFaultyMilstein(sys MilsteinSystem) *FaultyMilstein {
	return &FaultyMilstein{sys: sys}
}

func (m *FaultyMilstein) Step(rho State, t, dt, u1, u2 float64) State {
	dW := u1 * math.Sqrt(dt)
	a := m.sys.Drift(rho)
	b := m.sys.Diffusion(rho)
	bdb := m.sys.BDxB(rho)

	corr := dW*dW - dt
	next := make(State, len(rho))
	for i := range rho {
		next[i] = rho[i] + a[i]*dt + b[i]*dW + bdb[i]*corr
	}
	return next
}
