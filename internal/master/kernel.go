package master

import (
	"fmt"
	"math"
	"math/cmplx"

	"gonum.org/v1/gonum/floats"
	"gonum.org/v1/gonum/mat"

	"github.com/avasek/smesim/internal/liouville"
	"github.com/avasek/smesim/internal/sde"
)

// kernel holds the vectorized operators of one homodyne integrator and
// every product the derivative-term algebra consumes. Built once at
// construction, read-only afterwards; safe to share across trajectories.
type kernel struct {
	dim int

	q  *mat.Dense
	g  *mat.Dense
	kT []float64

	q2, g2, g3, qg, gq *mat.Dense
	kTG, kTG2, kTQ     []float64
}

// gaussianGenerator assembles the unconditional Gaussian generator
// (N+1)D[c] + N·D[c†] + doubleComm(c, M) + ham(H) as a real matrix over the
// coefficient basis. H may be nil.
func gaussianGenerator(c *mat.CDense, msq complex128, nTh float64, h *mat.CDense, basis liouville.Basis) *mat.Dense {
	m := len(basis)
	q := mat.NewDense(m, m, nil)

	add := func(scale float64, term *mat.Dense) {
		if scale == 0 {
			return
		}
		var scaled mat.Dense
		scaled.Scale(scale, term)
		q.Add(q, &scaled)
	}

	add(nTh+1, liouville.DiffusionOp(c, basis))
	add(nTh, liouville.DiffusionOp(liouville.Dag(c), basis))
	if msq != 0 {
		add(1, liouville.DoubleCommOp(c, msq, basis))
	}
	if h != nil {
		add(1, liouville.HamiltonianOp(h, basis))
	}
	return q
}

// homodyneCoupling returns the effective measurement operator
// ((N+M*+1)c − (N+M)c†)/√(2(Re M+N)+1) for homodyne detection of a
// squeezed/thermal bath.
func homodyneCoupling(c *mat.CDense, msq complex128, nTh float64) (*mat.CDense, error) {
	norm := 2*(real(msq)+nTh) + 1
	if norm <= 0 {
		return nil, fmt.Errorf("%w: 2(Re M + N) + 1 = %g must be positive", sde.ErrDegenerate, norm)
	}
	inv := complex(1/math.Sqrt(norm), 0)

	n := complex(nTh, 0)
	r, cols := c.Dims()
	out := mat.NewCDense(r, cols, nil)
	addCScaled(out, (n+cmplx.Conj(msq)+1)*inv, c)
	addCScaled(out, -(n+msq)*inv, liouville.Dag(c))
	return out, nil
}

func addCScaled(dst *mat.CDense, z complex128, a *mat.CDense) {
	r, c := a.Dims()
	for i := 0; i < r; i++ {
		for j := 0; j < c; j++ {
			dst.Set(i, j, dst.At(i, j)+z*a.At(i, j))
		}
	}
}

func newKernel(c *mat.CDense, msq complex128, nTh float64, h *mat.CDense, basis liouville.Basis) (*kernel, error) {
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

	cEff, err := homodyneCoupling(c, msq, nTh)
	if err != nil {
		return nil, err
	}

	k := &kernel{dim: len(basis)}
	k.q = gaussianGenerator(c, msq, nTh, h, basis)
	k.g, k.kT = liouville.WienerOp(cEff, basis)

	mul := func(a, b *mat.Dense) *mat.Dense {
		var out mat.Dense
		out.Mul(a, b)
		return &out
	}
	k.q2 = mul(k.q, k.q)
	k.g2 = mul(k.g, k.g)
	k.g3 = mul(k.g2, k.g)
	k.qg = mul(k.q, k.g)
	k.gq = mul(k.g, k.q)
	k.kTG = rowMat(k.kT, k.g)
	k.kTG2 = rowMat(k.kT, k.g2)
	k.kTQ = rowMat(k.kT, k.q)

	return k, nil
}

func checkOperator(op *mat.CDense, basis liouville.Basis, name string) error {
	n := basis.Dim()
	r, c := op.Dims()
	if r != n || c != n {
		return fmt.Errorf("%w: %s is %dx%d, basis dimension is %d", sde.ErrDimensionMismatch, name, r, c, n)
	}
	return nil
}

// The kernel implements sde.Taylor15System.

func (k *kernel) Dim() int { return k.dim }

func (k *kernel) Drift(rho sde.State) sde.State {
	return matVec(k.q, rho)
}

func (k *kernel) Diffusion(rho sde.State) sde.State {
	s := floats.Dot(k.kT, rho)
	gRho := matVec(k.g, rho)
	out := make(sde.State, len(rho))
	for i := range rho {
		out[i] = s*rho[i] + gRho[i]
	}
	return out
}

func (k *kernel) BDxB(rho sde.State) sde.State {
	return bDxB(k.g2, k.kTG, k.g, k.kT, rho)
}

func (k *kernel) BDxA(rho sde.State) sde.State {
	return bDxA(k.qg, k.kT, k.q, rho)
}

func (k *kernel) ADxB(rho sde.State) sde.State {
	return aDxB(k.gq, k.kT, k.q, k.kTQ, rho)
}

func (k *kernel) ADxA(rho sde.State) sde.State {
	return aDxA(k.q2, rho)
}

func (k *kernel) BDxBDxB(rho sde.State) sde.State {
	return bDxBDxB(k.g3, k.g2, k.g, k.kT, k.kTG, k.kTG2, rho)
}
