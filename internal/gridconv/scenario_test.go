package gridconv

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gonum.org/v1/gonum/mat"
	"gonum.org/v1/gonum/stat"

	"github.com/avasek/smesim/internal/liouville"
	"github.com/avasek/smesim/internal/master"
	"github.com/avasek/smesim/internal/sde"
)

// End-to-end check on the physical problem the package exists for: a decaying
// qubit under vacuum homodyne detection, starting from the excited state.
func TestQubitHomodyneConvergence(t *testing.T) {
	if testing.Short() {
		t.Skip("full trajectory batch")
	}

	basis := liouville.GellMann(2)
	c := liouville.Annihilation(2)
	excited := mat.NewCDense(2, 2, []complex128{0, 0, 0, 1})
	rho0 := liouville.Vectorize(excited, basis)

	times := uniformGrid(64, 1.0)
	opts := Options{Trajectories: 256, Workers: 1, Seed: 2026}

	milstein, err := master.NewMilsteinHomodyne(c, 0, 0, nil, basis)
	require.NoError(t, err)
	taylor, err := master.NewTaylor15Homodyne(c, 0, 0, nil, basis)
	require.NoError(t, err)

	milRate := batchMean(t, milstein, rho0, times, opts)
	taylorRate := batchMean(t, taylor, rho0, times, opts)

	assert.Greater(t, milRate, 0.8)
	assert.Less(t, milRate, 1.2)
	assert.Greater(t, taylorRate, 1.2)
	assert.Less(t, taylorRate, 1.8)
}

func batchMean(t *testing.T, integ Integrator, rho0 sde.State, times []float64, opts Options) float64 {
	t.Helper()
	results, err := StrongConvergence(integ, rho0, times, opts)
	require.NoError(t, err)
	rates := Rates(results)
	require.NotEmpty(t, rates)
	return stat.Mean(rates, nil)
}
