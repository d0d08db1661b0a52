package ode

import (
	"fmt"

	"gonum.org/v1/gonum/mat"

	"github.com/avasek/smesim/internal/sde"
)

// Solver samples the solution of a fixed linear system at requested time
// points, starting from x0 at times[0].
type Solver interface {
	SolveAt(x0 sde.State, times []float64) ([]sde.State, error)
}

func checkState(a *mat.Dense, x0 sde.State) error {
	r, _ := a.Dims()
	if len(x0) != r {
		return fmt.Errorf("%w: state dimension %d, operator dimension %d", sde.ErrDimensionMismatch, len(x0), r)
	}
	return nil
}

func matVec(a *mat.Dense, x []float64) []float64 {
	r, c := a.Dims()
	out := make([]float64, r)
	for i := 0; i < r; i++ {
		sum := 0.0
		for j := 0; j < c; j++ {
			sum += a.At(i, j) * x[j]
		}
		out[i] = sum
	}
	return out
}
