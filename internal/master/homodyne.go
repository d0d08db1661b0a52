package master

import (
	"fmt"
	"math/rand"
	"time"

	"gonum.org/v1/gonum/mat"

	"github.com/avasek/smesim/internal/liouville"
	"github.com/avasek/smesim/internal/sde"
)

// Integrator is the uniform contract all master-equation integrators
// expose. Missing noise is generated internally; variants that never
// consume noise accept the arguments anyway.
type Integrator interface {
	Integrate(rho0 sde.State, times []float64, u1s, u2s []float64) ([]sde.State, error)
}

// Option configures integrator construction.
type Option func(*homodyne)

// WithRand sets the RNG used to draw noise when Integrate is called without
// explicit samples. The default is time-seeded; supply a seeded source for
// reproducible runs.
func WithRand(rng *rand.Rand) Option {
	return func(h *homodyne) { h.rng = rng }
}

// homodyne carries the shared state of the conditional integrators: the
// precomputed kernel and the fallback RNG. The RNG is only touched when
// noise is auto-generated, so integrators fed explicit noise are safe to
// share across goroutines.
type homodyne struct {
	k   *kernel
	rng *rand.Rand
}

func newHomodyne(c *mat.CDense, msq complex128, nTh float64, h *mat.CDense, basis liouville.Basis, opts []Option) (homodyne, error) {
	k, err := newKernel(c, msq, nTh, h, basis)
	if err != nil {
		return homodyne{}, err
	}
	hd := homodyne{k: k, rng: rand.New(rand.NewSource(time.Now().UnixNano()))}
	for _, opt := range opts {
		opt(&hd)
	}
	return hd, nil
}

func (h *homodyne) checkState(rho0 sde.State) error {
	if len(rho0) != h.k.dim {
		return fmt.Errorf("%w: state dimension %d, operator dimension %d", sde.ErrDimensionMismatch, len(rho0), h.k.dim)
	}
	return nil
}

func (h *homodyne) fillNoise(n int, us []float64) []float64 {
	if us != nil {
		return us
	}
	out := make([]float64, n)
	for i := range out {
		out[i] = h.rng.NormFloat64()
	}
	return out
}

// MilsteinHomodyne integrates the conditional Gaussian master equation with
// the strong order-1.0 Milstein scheme. U2 samples are accepted for
// signature uniformity and ignored.
type MilsteinHomodyne struct {
	homodyne
}

func NewMilsteinHomodyne(c *mat.CDense, msq complex128, nTh float64, h *mat.CDense, basis liouville.Basis, opts ...Option) (*MilsteinHomodyne, error) {
	hd, err := newHomodyne(c, msq, nTh, h, basis, opts)
	if err != nil {
		return nil, err
	}
	return &MilsteinHomodyne{homodyne: hd}, nil
}

func (m *MilsteinHomodyne) Integrate(rho0 sde.State, times []float64, u1s, u2s []float64) ([]sde.State, error) {
	if err := m.checkState(rho0); err != nil {
		return nil, err
	}
	if err := sde.CheckGrid(times); err != nil {
		return nil, err
	}
	u1s = m.fillNoise(len(times)-1, u1s)
	return sde.Integrate(sde.NewMilstein(m.k), rho0, times, u1s, nil)
}

// Taylor15Homodyne integrates the conditional Gaussian master equation with
// the strong order-1.5 Taylor scheme.
type Taylor15Homodyne struct {
	homodyne
}

func NewTaylor15Homodyne(c *mat.CDense, msq complex128, nTh float64, h *mat.CDense, basis liouville.Basis, opts ...Option) (*Taylor15Homodyne, error) {
	hd, err := newHomodyne(c, msq, nTh, h, basis, opts)
	if err != nil {
		return nil, err
	}
	return &Taylor15Homodyne{homodyne: hd}, nil
}

func (t *Taylor15Homodyne) Integrate(rho0 sde.State, times []float64, u1s, u2s []float64) ([]sde.State, error) {
	if err := t.checkState(rho0); err != nil {
		return nil, err
	}
	if err := sde.CheckGrid(times); err != nil {
		return nil, err
	}
	u1s = t.fillNoise(len(times)-1, u1s)
	u2s = t.fillNoise(len(times)-1, u2s)
	return sde.Integrate(sde.NewTaylor15(t.k), rho0, times, u1s, u2s)
}

// FaultyMilsteinHomodyne is the negative-control variant: same constructor
// and kernel as MilsteinHomodyne, but stepped with the deliberately broken
// scheme (missing ½ on the correction term). Grid-convergence analysis must
// flag it as sub-order-1.0; that is its entire purpose.
type FaultyMilsteinHomodyne struct {
	homodyne
}

func NewFaultyMilsteinHomodyne(c *mat.CDense, msq complex128, nTh float64, h *mat.CDense, basis liouville.Basis, opts ...Option) (*FaultyMilsteinHomodyne, error) {
	hd, err := newHomodyne(c, msq, nTh, h, basis, opts)
	if err != nil {
		return nil, err
	}
	return &FaultyMilsteinHomodyne{homodyne: hd}, nil
}

func (f *FaultyMilsteinHomodyne) Integrate(rho0 sde.State, times []float64, u1s, u2s []float64) ([]sde.State, error) {
	if err := f.checkState(rho0); err != nil {
		return nil, err
	}
	if err := sde.CheckGrid(times); err != nil {
		return nil, err
	}
	u1s = f.fillNoise(len(times)-1, u1s)
	return sde.Integrate(sde.NewFaultyMilstein(f.k), rho0, times, u1s, nil)
}
