package gridconv

import (
	"fmt"
	"math/rand"
	"sync"

	"github.com/avasek/smesim/internal/sde"
)

// DefaultTrajectories is the batch size used when Options does not specify
// one.
const DefaultTrajectories = 256

// Options configures a strong-convergence batch.
type Options struct {
	// Trajectories is the number of independent rate estimates. Ignored
	// when explicit noise matrices are supplied.
	Trajectories int

	// Workers bounds the number of concurrent trajectory tasks; 1 or less
	// means strictly sequential execution. Results are identical for every
	// worker count.
	Workers int

	// Seed derives the per-trajectory RNG streams (seed + index). Only used
	// when noise is auto-generated.
	Seed int64

	// U1s and U2s optionally fix the noise, one row per trajectory, each of
	// length len(times)−1.
	U1s, U2s [][]float64
}

// TrajectoryRate is one batch entry: the estimated order for trajectory
// Index, or the error that spoiled it. A failed trajectory never aborts the
// batch and never surfaces as NaN.
type TrajectoryRate struct {
	Index int
	Rate  float64
	Err   error
}

// StrongConvergence estimates the strong convergence order for a batch of
// independent trajectories. Trajectories are embarrassingly parallel: the
// integrator's operator matrices are read-only, every task draws from its
// own seeded RNG, and the returned slice preserves trajectory order
// regardless of scheduling.
func StrongConvergence(integ Integrator, rho0 sde.State, times []float64, opts Options) ([]TrajectoryRate, error) {
	if err := sde.CheckGrid(times); err != nil {
		return nil, err
	}
	n := len(times) - 1
	if n%4 != 0 {
		return nil, fmt.Errorf("%w: %d intervals, need a multiple of 4 for double coarsening", sde.ErrInvalidGrid, n)
	}

	trajectories := opts.Trajectories
	switch {
	case opts.U1s != nil:
		trajectories = len(opts.U1s)
		if opts.U2s != nil && len(opts.U2s) != trajectories {
			return nil, fmt.Errorf("%w: %d U1 rows but %d U2 rows", sde.ErrDimensionMismatch, trajectories, len(opts.U2s))
		}
	case opts.U2s != nil:
		trajectories = len(opts.U2s)
	}
	if trajectories <= 0 {
		trajectories = DefaultTrajectories
	}

	results := make([]TrajectoryRate, trajectories)
	task := func(idx int) {
		u1s, u2s := trajectoryNoise(opts, idx, n)
		rate, err := CalcRate(integ, rho0, times, u1s, u2s)
		results[idx] = TrajectoryRate{Index: idx, Rate: rate, Err: err}
	}

	if opts.Workers <= 1 {
		for i := 0; i < trajectories; i++ {
			task(i)
		}
		return results, nil
	}

	var wg sync.WaitGroup
	sem := make(chan struct{}, opts.Workers)
	for i := 0; i < trajectories; i++ {
		wg.Add(1)
		sem <- struct{}{}
		go func(idx int) {
			defer wg.Done()
			defer func() { <-sem }()
			task(idx)
		}(i)
	}
	wg.Wait()

	return results, nil
}

// trajectoryNoise returns the noise rows for one trajectory, drawing any
// missing ones from an RNG seeded per task so streams stay independent and
// worker count never changes the result.
func trajectoryNoise(opts Options, idx, n int) ([]float64, []float64) {
	var u1s, u2s []float64
	if opts.U1s != nil {
		u1s = opts.U1s[idx]
	}
	if opts.U2s != nil {
		u2s = opts.U2s[idx]
	}
	if u1s == nil || u2s == nil {
		rng := rand.New(rand.NewSource(opts.Seed + int64(idx)))
		if u1s == nil {
			u1s = drawNormal(rng, n)
		}
		if u2s == nil {
			u2s = drawNormal(rng, n)
		}
	}
	return u1s, u2s
}

// Rates extracts the successful estimates from a batch, preserving order.
func Rates(results []TrajectoryRate) []float64 {
	out := make([]float64, 0, len(results))
	for _, r := range results {
		if r.Err == nil {
			out = append(out, r.Rate)
		}
	}
	return out
}
