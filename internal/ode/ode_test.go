package ode

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gonum.org/v1/gonum/mat"

	"github.com/avasek/smesim/internal/sde"
)

// decoupled exponential decay/growth with known solution.
func testOperator() *mat.Dense {
	return mat.NewDense(2, 2, []float64{-0.5, 0, 0, -2.0})
}

func exactAt(t float64) sde.State {
	return sde.State{math.Exp(-0.5 * t), 3 * math.Exp(-2.0*t)}
}

func grid(n int, horizon float64) []float64 {
	times := make([]float64, n+1)
	for i := range times {
		times[i] = horizon * float64(i) / float64(n)
	}
	return times
}

func TestRK4AgainstClosedForm(t *testing.T) {
	// 8 substeps leave the λ=−2 component ~1.2e-8 off the closed form.
	solver := NewRK4(testOperator(), 16)
	times := grid(10, 2.0)

	xs, err := solver.SolveAt(sde.State{1, 3}, times)
	require.NoError(t, err)
	require.Len(t, xs, len(times))

	for i, tm := range times {
		want := exactAt(tm)
		assert.InDelta(t, want[0], xs[i][0], 1e-8)
		assert.InDelta(t, want[1], xs[i][1], 1e-8)
	}
}

func TestCrankNicolsonAgainstClosedForm(t *testing.T) {
	solver := NewCrankNicolson(testOperator(), 64)
	times := grid(10, 2.0)

	xs, err := solver.SolveAt(sde.State{1, 3}, times)
	require.NoError(t, err)

	for i, tm := range times {
		want := exactAt(tm)
		assert.InDelta(t, want[0], xs[i][0], 1e-5)
		assert.InDelta(t, want[1], xs[i][1], 1e-5)
	}
}

func TestCrankNicolsonCoupledRotation(t *testing.T) {
	// x'' = −x as a first-order system; CN must preserve the amplitude.
	a := mat.NewDense(2, 2, []float64{0, 1, -1, 0})
	solver := NewCrankNicolson(a, 32)
	times := grid(20, 2*math.Pi)

	xs, err := solver.SolveAt(sde.State{1, 0}, times)
	require.NoError(t, err)

	last := xs[len(xs)-1]
	assert.InDelta(t, 1.0, last[0], 1e-3)
	assert.InDelta(t, 0.0, last[1], 1e-3)
	// Trapezoidal rule conserves the quadratic invariant exactly.
	for _, x := range xs {
		assert.InDelta(t, 1.0, x[0]*x[0]+x[1]*x[1], 1e-10)
	}
}

func TestSolverValidation(t *testing.T) {
	solver := NewCrankNicolson(testOperator(), 4)

	_, err := solver.SolveAt(sde.State{1}, grid(4, 1))
	assert.ErrorIs(t, err, sde.ErrDimensionMismatch)

	_, err = solver.SolveAt(sde.State{1, 1}, []float64{0, 0.1, 0.3, 0.35})
	assert.ErrorIs(t, err, sde.ErrInvalidGrid)

	rk := NewRK4(testOperator(), 4)
	_, err = rk.SolveAt(sde.State{1, 1}, []float64{0})
	assert.ErrorIs(t, err, sde.ErrInvalidGrid)
}
