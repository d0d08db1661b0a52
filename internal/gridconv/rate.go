package gridconv

import (
	"fmt"
	"math"
	"math/rand"
	"time"

	"github.com/avasek/smesim/internal/sde"
)

// Integrator is the contract gridconv requires of its subject: any
// master-equation integrator exposing the uniform trajectory call.
type Integrator interface {
	Integrate(rho0 sde.State, times []float64, u1s, u2s []float64) ([]sde.State, error)
}

// CalcRate estimates the strong convergence order of an integrator on one
// noise realization. The grid must define a number of intervals divisible
// by 4 so it can be coarsened twice; the three runs share the same Brownian
// path through Coarsen. Nil noise is drawn from a time-seeded source — for
// reproducible batches use StrongConvergence or pass explicit samples.
func CalcRate(integ Integrator, rho0 sde.State, times []float64, u1s, u2s []float64) (float64, error) {
	if err := sde.CheckGrid(times); err != nil {
		return 0, err
	}
	n := len(times) - 1
	if n%4 != 0 {
		return 0, fmt.Errorf("%w: %d intervals, need a multiple of 4 for double coarsening", sde.ErrInvalidGrid, n)
	}

	if u1s == nil || u2s == nil {
		rng := rand.New(rand.NewSource(time.Now().UnixNano()))
		if u1s == nil {
			u1s = drawNormal(rng, n)
		}
		if u2s == nil {
			u2s = drawNormal(rng, n)
		}
	}

	times2, u1s2, u2s2, err := Coarsen(times, u1s, u2s)
	if err != nil {
		return 0, err
	}
	times4, u1s4, u2s4, err := Coarsen(times2, u1s2, u2s2)
	if err != nil {
		return 0, err
	}

	rhos, err := integ.Integrate(rho0, times, u1s, u2s)
	if err != nil {
		return 0, err
	}
	rhos2, err := integ.Integrate(rho0, times2, u1s2, u2s2)
	if err != nil {
		return 0, err
	}
	rhos4, err := integ.Integrate(rho0, times4, u1s4, u2s4)
	if err != nil {
		return 0, err
	}

	errFine := sde.L1Dist(rhos2[len(rhos2)-1], rhos[len(rhos)-1])
	errCoarse := sde.L1Dist(rhos4[len(rhos4)-1], rhos2[len(rhos2)-1])
	if !isPositiveFinite(errFine) || !isPositiveFinite(errCoarse) {
		return 0, fmt.Errorf("%w: endpoint differences %g and %g leave the rate undefined", sde.ErrDegenerate, errCoarse, errFine)
	}

	return (math.Log(errCoarse) - math.Log(errFine)) / math.Ln2, nil
}

func isPositiveFinite(v float64) bool {
	return v > 0 && !math.IsInf(v, 1) && !math.IsNaN(v)
}

func drawNormal(rng *rand.Rand, n int) []float64 {
	out := make([]float64, n)
	for i := range out {
		out[i] = rng.NormFloat64()
	}
	return out
}
