package study

import (
	"fmt"
	"math/rand"
	"time"

	"github.com/rs/zerolog"
	"gonum.org/v1/gonum/mat"

	"github.com/avasek/smesim/internal/config"
	"github.com/avasek/smesim/internal/gridconv"
	"github.com/avasek/smesim/internal/liouville"
	"github.com/avasek/smesim/internal/master"
	"github.com/avasek/smesim/internal/sde"
)

// Result bundles one finished study with the configuration that produced it.
type Result struct {
	Config  *config.Config
	Scheme  string
	Results []gridconv.TrajectoryRate
	Elapsed time.Duration
}

// build assembles the integrator, initial state, and grid for one study.
func build(cfg *config.Config, opts ...master.Option) (master.Integrator, sde.State, []float64, error) {
	if err := cfg.Validate(); err != nil {
		return nil, nil, nil, err
	}

	basis := liouville.GellMann(cfg.Dim)
	c := scaled(cfg.Coupling, liouville.Annihilation(cfg.Dim))
	var h *mat.CDense
	if cfg.Omega != 0 {
		h = scaled(cfg.Omega, liouville.Number(cfg.Dim))
	}

	integ, err := master.New(cfg.Scheme, master.Params{
		Coupling: c,
		Msq:      cfg.MSq(),
		N:        cfg.NTherm,
		H:        h,
		Basis:    basis,
	}, opts...)
	if err != nil {
		return nil, nil, nil, err
	}

	rho0, err := initialState(cfg.InitState, cfg.Dim, basis)
	if err != nil {
		return nil, nil, nil, err
	}

	times := make([]float64, cfg.Steps+1)
	for i := range times {
		times[i] = cfg.Horizon * float64(i) / float64(cfg.Steps)
	}
	return integ, rho0, times, nil
}

// Run executes the study described by cfg.
func Run(cfg *config.Config, log zerolog.Logger) (*Result, error) {
	integ, rho0, times, err := build(cfg)
	if err != nil {
		return nil, err
	}

	log.Info().
		Str("scheme", cfg.Scheme).
		Int("dim", cfg.Dim).
		Int("steps", cfg.Steps).
		Int("trajectories", cfg.Trajectories).
		Int("workers", cfg.Workers).
		Msg("starting convergence study")

	start := time.Now()
	results, err := gridconv.StrongConvergence(integ, rho0, times, gridconv.Options{
		Trajectories: cfg.Trajectories,
		Workers:      cfg.Workers,
		Seed:         cfg.Seed,
	})
	if err != nil {
		return nil, err
	}
	elapsed := time.Since(start)

	failed := len(results) - len(gridconv.Rates(results))
	log.Info().
		Dur("elapsed", elapsed).
		Int("failed", failed).
		Msg("study complete")
	if failed > 0 {
		log.Warn().Int("failed", failed).Msg("some trajectories produced no rate")
	}

	return &Result{
		Config:  cfg,
		Scheme:  cfg.Scheme,
		Results: results,
		Elapsed: elapsed,
	}, nil
}

// Trajectory integrates a single seeded sample path and returns the grid
// with the coefficient vectors along it.
func Trajectory(cfg *config.Config, log zerolog.Logger) ([]float64, []sde.State, error) {
	integ, rho0, times, err := build(cfg, master.WithRand(rand.New(rand.NewSource(cfg.Seed))))
	if err != nil {
		return nil, nil, err
	}

	log.Debug().Str("scheme", cfg.Scheme).Int("steps", cfg.Steps).Msg("integrating sample path")
	rhos, err := integ.Integrate(rho0, times, nil, nil)
	if err != nil {
		return nil, nil, err
	}
	return times, rhos, nil
}

// initialState vectorizes one of the named density matrices over the basis.
// "excited" is the top level, "ground" the bottom, "plus" the equal
// superposition of the two lowest levels.
func initialState(name string, dim int, basis liouville.Basis) (sde.State, error) {
	rho := mat.NewCDense(dim, dim, nil)
	switch name {
	case "excited":
		rho.Set(dim-1, dim-1, 1)
	case "ground", "":
		rho.Set(0, 0, 1)
	case "plus":
		half := complex(0.5, 0)
		rho.Set(0, 0, half)
		rho.Set(0, 1, half)
		rho.Set(1, 0, half)
		rho.Set(1, 1, half)
	case "mixed":
		p := complex(1/float64(dim), 0)
		for i := 0; i < dim; i++ {
			rho.Set(i, i, p)
		}
	default:
		return nil, fmt.Errorf("%w: initial state %q (known: excited, ground, plus, mixed)", sde.ErrUnknownScheme, name)
	}
	return liouville.Vectorize(rho, basis), nil
}

func scaled(s float64, op *mat.CDense) *mat.CDense {
	if s == 1 {
		return op
	}
	r, c := op.Dims()
	out := mat.NewCDense(r, c, nil)
	z := complex(s, 0)
	for i := 0; i < r; i++ {
		for j := 0; j < c; j++ {
			out.Set(i, j, z*op.At(i, j))
		}
	}
	return out
}

