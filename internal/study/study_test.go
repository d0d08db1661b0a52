package study

import (
	"testing"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/avasek/smesim/internal/config"
	"github.com/avasek/smesim/internal/gridconv"
	"github.com/avasek/smesim/internal/liouville"
	"github.com/avasek/smesim/internal/sde"
)

func smallStudy() *config.Config {
	cfg := config.DefaultConfig()
	cfg.Steps = 16
	cfg.Trajectories = 8
	cfg.Seed = 11
	return cfg
}

func TestRunProducesOrderedBatch(t *testing.T) {
	res, err := Run(smallStudy(), zerolog.Nop())
	require.NoError(t, err)

	require.Len(t, res.Results, 8)
	for i, r := range res.Results {
		assert.Equal(t, i, r.Index)
		require.NoError(t, r.Err)
	}
	assert.Equal(t, "milstein", res.Scheme)
	assert.Len(t, gridconv.Rates(res.Results), 8)
}

func TestRunDeterministicForSeed(t *testing.T) {
	a, err := Run(smallStudy(), zerolog.Nop())
	require.NoError(t, err)
	b, err := Run(smallStudy(), zerolog.Nop())
	require.NoError(t, err)

	for i := range a.Results {
		assert.Equal(t, a.Results[i].Rate, b.Results[i].Rate)
	}
}

func TestRunRejectsInvalidConfig(t *testing.T) {
	cfg := smallStudy()
	cfg.Steps = 10
	_, err := Run(cfg, zerolog.Nop())
	assert.ErrorIs(t, err, sde.ErrInvalidGrid)
}

func TestRunRejectsUnknownScheme(t *testing.T) {
	cfg := smallStudy()
	cfg.Scheme = "heun"
	_, err := Run(cfg, zerolog.Nop())
	assert.ErrorIs(t, err, sde.ErrUnknownScheme)
}

func TestInitialStates(t *testing.T) {
	basis := liouville.GellMann(2)

	excited, err := initialState("excited", 2, basis)
	require.NoError(t, err)
	assert.InDeltaSlice(t, []float64{0, 0, -0.5, 0.5}, excited, 1e-15)

	ground, err := initialState("ground", 2, basis)
	require.NoError(t, err)
	assert.InDeltaSlice(t, []float64{0, 0, 0.5, 0.5}, ground, 1e-15)

	plus, err := initialState("plus", 2, basis)
	require.NoError(t, err)
	assert.InDeltaSlice(t, []float64{0.5, 0, 0, 0.5}, plus, 1e-15)

	mixed, err := initialState("mixed", 2, basis)
	require.NoError(t, err)
	assert.InDeltaSlice(t, []float64{0, 0, 0, 0.5}, mixed, 1e-15)

	_, err = initialState("cat", 2, basis)
	assert.ErrorIs(t, err, sde.ErrUnknownScheme)
}
