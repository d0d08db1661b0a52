package sde

import "math"

// EulerMaruyama is the strong order-0.5 baseline scheme.
type EulerMaruyama struct {
	sys System
}

func NewEulerMaruyama(sys System) *EulerMaruyama {
	return &EulerMaruyama{sys: sys}
}

func (e *EulerMaruyama) Step(rho State, t, dt, u1, u2 float64) State {
	dW := u1 * math.Sqrt(dt)
	a := e.sys.Drift(rho)
	b := e.sys.Diffusion(rho)

	next := make(State, len(rho))
	for i := range rho {
		next[i] = rho[i] + a[i]*dt + b[i]*dW
	}
	return next
}
