package sde

import "math"

// Taylor15 is the explicit strong order-1.5 Taylor scheme for scalar noise
// (Kloeden–Platen). Beyond the Milstein terms it carries
//
//	(b·∇a)ΔZ + ½(a·∇a)Δt² + (a·∇b)(ΔWΔt − ΔZ) + ½(b·∇b·∇b)(⅓ΔW² − Δt)ΔW
//
// where ΔZ = ½Δt^{3/2}(U1 + U2/√3) is the multiple-Itô integral built from
// the second normal sample.
type Taylor15 struct {
	sys Taylor15System
}

func NewTaylor15(sys Taylor15System) *Taylor15 {
	return &Taylor15{sys: sys}
}

func (s *Taylor15) Step(rho State, t, dt, u1, u2 float64) State {
	sqrtDt := math.Sqrt(dt)
	dW := u1 * sqrtDt
	dZ := 0.5 * dt * sqrtDt * (u1 + u2/math.Sqrt(3))

	a := s.sys.Drift(rho)
	b := s.sys.Diffusion(rho)
	bdb := s.sys.BDxB(rho)
	bda := s.sys.BDxA(rho)
	adb := s.sys.ADxB(rho)
	ada := s.sys.ADxA(rho)
	bdbdb := s.sys.BDxBDxB(rho)

	cMil := 0.5 * (dW*dW - dt)
	cBDA := dZ
	cADA := 0.5 * dt * dt
	cADB := dW*dt - dZ
	cTriple := 0.5 * (dW*dW/3.0 - dt) * dW

	next := make(State, len(rho))
	for i := range rho {
		next[i] = rho[i] + a[i]*dt + b[i]*dW +
			bdb[i]*cMil + bda[i]*cBDA + ada[i]*cADA +
			adb[i]*cADB + bdbdb[i]*cTriple
	}
	return next
}
