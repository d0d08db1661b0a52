package gridconv

import (
	"math/rand"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gonum.org/v1/gonum/stat"

	"github.com/avasek/smesim/internal/sde"
)

func newRand(seed int64) *rand.Rand {
	return rand.New(rand.NewSource(seed))
}

func uniformGrid(n int, horizon float64) []float64 {
	times := make([]float64, n+1)
	for i := range times {
		times[i] = horizon * float64(i) / float64(n)
	}
	return times
}

func TestCoarsenTimesStride(t *testing.T) {
	times := uniformGrid(16, 1.0)
	rng := rand.New(rand.NewSource(1))
	u1s := drawNormal(rng, 16)
	u2s := drawNormal(rng, 16)

	times2, u1s2, u2s2, err := Coarsen(times, u1s, u2s)
	require.NoError(t, err)
	require.Len(t, times2, 9)
	require.Len(t, u1s2, 8)
	require.Len(t, u2s2, 8)

	times4, _, _, err := Coarsen(times2, u1s2, u2s2)
	require.NoError(t, err)

	// Coarsening twice must sample the original grid at stride 4.
	require.Len(t, times4, 5)
	for i, tm := range times4 {
		assert.Equal(t, times[4*i], tm)
	}
}

func TestCoarsenWienerOnly(t *testing.T) {
	times := uniformGrid(4, 1.0)
	u1s := []float64{1, 2, 3, 4}

	_, u1s2, u2s2, err := Coarsen(times, u1s, nil)
	require.NoError(t, err)
	assert.Nil(t, u2s2)

	// (1+2)/√2, (3+4)/√2
	assert.InDelta(t, 3.0/1.4142135623730951, u1s2[0], 1e-12)
	assert.InDelta(t, 7.0/1.4142135623730951, u1s2[1], 1e-12)
}

func TestCoarsenRejectsOddIntervals(t *testing.T) {
	times := uniformGrid(5, 1.0)
	u1s := make([]float64, 5)

	_, _, _, err := Coarsen(times, u1s, nil)
	assert.ErrorIs(t, err, sde.ErrInvalidGrid)
}

func TestCoarsenRejectsMismatchedNoise(t *testing.T) {
	times := uniformGrid(4, 1.0)

	_, _, _, err := Coarsen(times, make([]float64, 3), nil)
	assert.ErrorIs(t, err, sde.ErrDimensionMismatch)

	_, _, _, err = Coarsen(times, make([]float64, 4), make([]float64, 2))
	assert.ErrorIs(t, err, sde.ErrDimensionMismatch)
}

// The recombined increments must stay standard normal and uncorrelated —
// the second-moment structure is what makes cross-resolution comparison
// statistically valid.
func TestCoarsenedNoiseMoments(t *testing.T) {
	const n = 200000
	rng := rand.New(rand.NewSource(42))
	times := uniformGrid(n, 1.0)
	u1s := drawNormal(rng, n)
	u2s := drawNormal(rng, n)

	_, u1s2, u2s2, err := Coarsen(times, u1s, u2s)
	require.NoError(t, err)

	assert.InDelta(t, 0.0, stat.Mean(u1s2, nil), 0.02)
	assert.InDelta(t, 0.0, stat.Mean(u2s2, nil), 0.02)
	assert.InDelta(t, 1.0, stat.Variance(u1s2, nil), 0.03)
	assert.InDelta(t, 1.0, stat.Variance(u2s2, nil), 0.03)
	assert.InDelta(t, 0.0, stat.Covariance(u1s2, u2s2, nil), 0.02)
}
