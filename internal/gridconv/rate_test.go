package gridconv

import (
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gonum.org/v1/gonum/stat"

	"github.com/avasek/smesim/internal/sde"
)

// driftless geometric Brownian motion dX = σX dW: the classic test
// equation with a closed-form solution and exact derivative terms.
type gbmSystem struct {
	sigma float64
}

func (g *gbmSystem) Dim() int                      { return 1 }
func (g *gbmSystem) Drift(rho sde.State) sde.State { return sde.State{0} }
func (g *gbmSystem) Diffusion(rho sde.State) sde.State {
	return sde.State{g.sigma * rho[0]}
}
func (g *gbmSystem) BDxB(rho sde.State) sde.State {
	return sde.State{g.sigma * g.sigma * rho[0]}
}
func (g *gbmSystem) BDxA(rho sde.State) sde.State { return sde.State{0} }
func (g *gbmSystem) ADxB(rho sde.State) sde.State { return sde.State{0} }
func (g *gbmSystem) ADxA(rho sde.State) sde.State { return sde.State{0} }
func (g *gbmSystem) BDxBDxB(rho sde.State) sde.State {
	return sde.State{g.sigma * g.sigma * g.sigma * rho[0]}
}

// gbmIntegrator adapts the raw steppers to the Integrate contract.
type gbmIntegrator struct {
	scheme string
	sys    *gbmSystem
}

func (g *gbmIntegrator) Integrate(rho0 sde.State, times []float64, u1s, u2s []float64) ([]sde.State, error) {
	var st sde.Stepper
	switch g.scheme {
	case "euler":
		st = sde.NewEulerMaruyama(g.sys)
	case "milstein":
		st = sde.NewMilstein(g.sys)
	case "faulty-milstein":
		st = sde.NewFaultyMilstein(g.sys)
	case "taylor15":
		st = sde.NewTaylor15(g.sys)
	default:
		return nil, fmt.Errorf("unknown test scheme %q", g.scheme)
	}
	return sde.Integrate(st, rho0, times, u1s, u2s)
}

func meanRate(t *testing.T, scheme string, steps, trajectories int) float64 {
	t.Helper()
	integ := &gbmIntegrator{scheme: scheme, sys: &gbmSystem{sigma: 1.0}}
	results, err := StrongConvergence(integ, sde.State{1.0}, uniformGrid(steps, 1.0), Options{
		Trajectories: trajectories,
		Workers:      1,
		Seed:         1234,
	})
	require.NoError(t, err)
	rates := Rates(results)
	require.Len(t, rates, trajectories, "no trajectory may fail on this problem")
	return stat.Mean(rates, nil)
}

func TestMilsteinStrongOrderOne(t *testing.T) {
	rate := meanRate(t, "milstein", 64, 256)
	assert.Greater(t, rate, 0.8)
	assert.Less(t, rate, 1.2)
}

// The higher-order scheme needs a finer grid before its estimated order
// clears the pre-asymptotic regime; at 64 intervals the mean estimate still
// sits just below 1.2.
func TestTaylor15StrongOrderOnePointFive(t *testing.T) {
	rate := meanRate(t, "taylor15", 256, 256)
	assert.Greater(t, rate, 1.2)
	assert.Less(t, rate, 1.8)
}

// The deliberately broken Milstein variant is the analyzer's negative
// control: its estimated order must sit measurably below the correct
// scheme's.
func TestFaultyMilsteinDetected(t *testing.T) {
	faulty := meanRate(t, "faulty-milstein", 64, 256)
	correct := meanRate(t, "milstein", 64, 256)

	assert.LessOrEqual(t, faulty, 0.6)
	assert.Greater(t, correct-faulty, 0.2)
}

func TestCalcRateWithExplicitNoise(t *testing.T) {
	integ := &gbmIntegrator{scheme: "milstein", sys: &gbmSystem{sigma: 1.0}}
	times := uniformGrid(16, 1.0)
	u1s := drawNormal(newRand(9), 16)
	u2s := drawNormal(newRand(10), 16)

	a, err := CalcRate(integ, sde.State{1.0}, times, u1s, u2s)
	require.NoError(t, err)
	b, err := CalcRate(integ, sde.State{1.0}, times, u1s, u2s)
	require.NoError(t, err)
	assert.Equal(t, a, b, "explicit noise must make the estimate deterministic")
}

func TestCalcRateGridValidation(t *testing.T) {
	integ := &gbmIntegrator{scheme: "milstein", sys: &gbmSystem{sigma: 1.0}}

	_, err := CalcRate(integ, sde.State{1.0}, uniformGrid(6, 1.0), nil, nil)
	assert.ErrorIs(t, err, sde.ErrInvalidGrid)

	_, err = CalcRate(integ, sde.State{1.0}, []float64{0}, nil, nil)
	assert.ErrorIs(t, err, sde.ErrInvalidGrid)
}

// Zero diffusion collapses all three resolutions onto the same trajectory;
// the rate formula would go through log(0) and must fail loudly instead.
func TestCalcRateDegenerateProblem(t *testing.T) {
	integ := &gbmIntegrator{scheme: "milstein", sys: &gbmSystem{sigma: 0.0}}

	_, err := CalcRate(integ, sde.State{1.0}, uniformGrid(8, 1.0), nil, nil)
	assert.ErrorIs(t, err, sde.ErrDegenerate)
}
