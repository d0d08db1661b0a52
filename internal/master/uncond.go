package master

import (
	"fmt"

	"gonum.org/v1/gonum/mat"

	"github.com/avasek/smesim/internal/liouville"
	"github.com/avasek/smesim/internal/ode"
	"github.com/avasek/smesim/internal/sde"
)

// substeps per output interval for the unconditional solvers. The implicit
// scheme is unconditionally stable, so this only controls accuracy.
const uncondSubsteps = 16

// uncond solves the deterministic linear master equation dρ/dt = Lρ. The
// generator is its own exact Jacobian, handed to a Crank-Nicolson solver.
// Noise arguments are accepted for signature uniformity and never consumed.
type uncond struct {
	l   *mat.Dense
	dim int
}

func (u *uncond) Integrate(rho0 sde.State, times []float64, u1s, u2s []float64) ([]sde.State, error) {
	if len(rho0) != u.dim {
		return nil, fmt.Errorf("%w: state dimension %d, generator dimension %d", sde.ErrDimensionMismatch, len(rho0), u.dim)
	}
	return ode.NewCrankNicolson(u.l, uncondSubsteps).SolveAt(rho0, times)
}

// Vacuum is the unconditional vacuum master-equation integrator:
// dρ/dt = D[c]ρ.
type Vacuum struct {
	uncond
}

func NewVacuum(c *mat.CDense, basis liouville.Basis) (*Vacuum, error) {
	if err := basis.Validate(); err != nil {
		return nil, err
	}
	if err := checkOperator(c, basis, "coupling operator"); err != nil {
		return nil, err
	}
	return &Vacuum{uncond{l: liouville.DiffusionOp(c, basis), dim: len(basis)}}, nil
}

// Gaussian is the unconditional Gaussian (squeezed/thermal bath)
// master-equation integrator.
type Gaussian struct {
	uncond
}

func NewGaussian(c *mat.CDense, msq complex128, nTh float64, h *mat.CDense, basis liouville.Basis) (*Gaussian, error) {
	if err := basis.Validate(); err != nil {
		return nil, err
	}
	if err := checkOperator(c, basis, "coupling operator"); err != nil {
		return nil, err
	}
	if h != nil {
		if err := checkOperator(h, basis, "Hamiltonian"); err != nil {
			return nil, err
		}
	}
	if nTh < 0 {
		return nil, fmt.Errorf("%w: thermal parameter N = %g must be non-negative", sde.ErrDegenerate, nTh)
	}
	return &Gaussian{uncond{l: gaussianGenerator(c, msq, nTh, h, basis), dim: len(basis)}}, nil
}
