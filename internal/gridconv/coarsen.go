package gridconv

import (
	"fmt"
	"math"

	"github.com/avasek/smesim/internal/sde"
)

// Coarsen halves the resolution of an evenly spaced time grid and
// recombines its per-interval standard-normal samples into statistically
// equivalent samples for the doubled intervals:
//
//	U1'_i = (U1_{2i} + U1_{2i+1}) / √2
//	U2'_i = (√3·(U1_{2i} − U1_{2i+1}) + U2_{2i} + U2_{2i+1}) / (2√2)
//
// This is the unique affine recombination that preserves the joint
// second-moment structure of the Wiener and multiple-Itô increments under
// dyadic coarsening, which is what lets convergence analysis compare the
// same Brownian path at different resolutions. u2s may be nil, in which
// case only the U1 samples are coarsened and the returned U2 slice is nil.
func Coarsen(times, u1s, u2s []float64) ([]float64, []float64, []float64, error) {
	if err := sde.CheckGrid(times); err != nil {
		return nil, nil, nil, err
	}
	n := len(times) - 1
	if n%2 != 0 {
		return nil, nil, nil, fmt.Errorf("%w: %d intervals, need an even number to coarsen", sde.ErrInvalidGrid, n)
	}
	if len(u1s) != n {
		return nil, nil, nil, fmt.Errorf("%w: %d U1 samples for %d intervals", sde.ErrDimensionMismatch, len(u1s), n)
	}
	if u2s != nil && len(u2s) != n {
		return nil, nil, nil, fmt.Errorf("%w: %d U2 samples for %d intervals", sde.ErrDimensionMismatch, len(u2s), n)
	}

	half := n / 2
	newTimes := make([]float64, half+1)
	for i := range newTimes {
		newTimes[i] = times[2*i]
	}

	sqrt2 := math.Sqrt2
	newU1s := make([]float64, half)
	for i := 0; i < half; i++ {
		newU1s[i] = (u1s[2*i] + u1s[2*i+1]) / sqrt2
	}

	if u2s == nil {
		return newTimes, newU1s, nil, nil
	}

	sqrt3 := math.Sqrt(3)
	newU2s := make([]float64, half)
	for i := 0; i < half; i++ {
		newU2s[i] = (sqrt3*(u1s[2*i]-u1s[2*i+1]) + u2s[2*i] + u2s[2*i+1]) / (2 * sqrt2)
	}
	return newTimes, newU1s, newU2s, nil
}
