package ode

import (
	"gonum.org/v1/gonum/mat"

	"github.com/avasek/smesim/internal/sde"
)

// RK4 integrates dx/dt = A·x with the classical fourth-order Runge–Kutta
// scheme, taking a fixed number of substeps per output interval.
type RK4 struct {
	a        *mat.Dense
	substeps int

	k1, k2, k3, k4 []float64
	scratch        []float64
}

func NewRK4(a *mat.Dense, substeps int) *RK4 {
	if substeps < 1 {
		substeps = 1
	}
	return &RK4{a: a, substeps: substeps}
}

func (r *RK4) ensureScratch(n int) {
	if len(r.k1) != n {
		r.k1 = make([]float64, n)
		r.k2 = make([]float64, n)
		r.k3 = make([]float64, n)
		r.k4 = make([]float64, n)
		r.scratch = make([]float64, n)
	}
}

func (r *RK4) SolveAt(x0 sde.State, times []float64) ([]sde.State, error) {
	if err := sde.CheckGrid(times); err != nil {
		return nil, err
	}
	if err := checkState(r.a, x0); err != nil {
		return nil, err
	}

	n := len(x0)
	r.ensureScratch(n)

	out := make([]sde.State, 0, len(times))
	x := x0.Clone()
	out = append(out, x.Clone())

	for i := 1; i < len(times); i++ {
		h := (times[i] - times[i-1]) / float64(r.substeps)
		for s := 0; s < r.substeps; s++ {
			x = r.step(x, h)
		}
		out = append(out, x.Clone())
	}
	return out, nil
}

func (r *RK4) step(x sde.State, h float64) sde.State {
	n := len(x)

	copy(r.k1, matVec(r.a, x))
	for i := 0; i < n; i++ {
		r.scratch[i] = x[i] + h*0.5*r.k1[i]
	}
	copy(r.k2, matVec(r.a, r.scratch))
	for i := 0; i < n; i++ {
		r.scratch[i] = x[i] + h*0.5*r.k2[i]
	}
	copy(r.k3, matVec(r.a, r.scratch))
	for i := 0; i < n; i++ {
		r.scratch[i] = x[i] + h*r.k3[i]
	}
	copy(r.k4, matVec(r.a, r.scratch))

	next := make(sde.State, n)
	h6 := h / 6.0
	for i := 0; i < n; i++ {
		next[i] = x[i] + h6*(r.k1[i]+2*r.k2[i]+2*r.k3[i]+r.k4[i])
	}
	return next
}
