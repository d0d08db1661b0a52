package liouville

import (
	"fmt"
	"math"
	"math/cmplx"

	"gonum.org/v1/gonum/mat"

	"github.com/avasek/smesim/internal/sde"
)

// Basis is an ordered orthogonal Hermitian operator basis. The element
// proportional to the identity must come last; all other elements are
// traceless.
type Basis []*mat.CDense

// Dim returns the Hilbert-space dimension the basis operators act on.
func (b Basis) Dim() int {
	if len(b) == 0 {
		return 0
	}
	r, _ := b[len(b)-1].Dims()
	return r
}

// Validate checks squareness, matching dimensions, completeness
// (len = dim²), and that the final element is proportional to the identity.
func (b Basis) Validate() error {
	if len(b) == 0 {
		return fmt.Errorf("%w: empty basis", sde.ErrDimensionMismatch)
	}
	n := b.Dim()
	if len(b) != n*n {
		return fmt.Errorf("%w: %d basis elements for dimension %d (want %d)", sde.ErrDimensionMismatch, len(b), n, n*n)
	}
	for i, el := range b {
		r, c := el.Dims()
		if r != n || c != n {
			return fmt.Errorf("%w: basis element %d is %dx%d, want %dx%d", sde.ErrDimensionMismatch, i, r, c, n, n)
		}
	}
	last := b[len(b)-1]
	scale := last.At(0, 0)
	for i := 0; i < n; i++ {
		for j := 0; j < n; j++ {
			want := complex(0, 0)
			if i == j {
				want = scale
			}
			if cmplx.Abs(last.At(i, j)-want) > 1e-12 {
				return fmt.Errorf("%w: last basis element is not proportional to the identity", sde.ErrDegenerate)
			}
		}
	}
	return nil
}

// GellMann returns the generalized Gell-Mann basis for an n-dimensional
// Hilbert space: symmetric and antisymmetric off-diagonal families, the
// diagonal family, and √(2/n)·I in last place. Every element satisfies
// Tr(Λ²) = 2; for n = 2 this is exactly {σx, σy, σz, I}.
func GellMann(n int) Basis {
	if n < 2 {
		panic("liouville: GellMann requires dimension >= 2")
	}
	basis := make(Basis, 0, n*n)

	for k := 1; k < n; k++ {
		for j := 0; j < k; j++ {
			sym := mat.NewCDense(n, n, nil)
			sym.Set(j, k, 1)
			sym.Set(k, j, 1)
			basis = append(basis, sym)

			asym := mat.NewCDense(n, n, nil)
			asym.Set(j, k, complex(0, -1))
			asym.Set(k, j, complex(0, 1))
			basis = append(basis, asym)
		}
	}

	for l := 1; l < n; l++ {
		diag := mat.NewCDense(n, n, nil)
		scale := complex(math.Sqrt(2.0/float64(l*(l+1))), 0)
		for j := 0; j < l; j++ {
			diag.Set(j, j, scale)
		}
		diag.Set(l, l, -complex(float64(l), 0)*scale)
		basis = append(basis, diag)
	}

	id := mat.NewCDense(n, n, nil)
	idScale := complex(math.Sqrt(2.0/float64(n)), 0)
	for j := 0; j < n; j++ {
		id.Set(j, j, idScale)
	}
	basis = append(basis, id)

	return basis
}
