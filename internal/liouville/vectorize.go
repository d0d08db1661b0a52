package liouville

import (
	"gonum.org/v1/gonum/mat"

	"github.com/avasek/smesim/internal/sde"
)

// Vectorize expands a Hermitian operator in the basis, returning the real
// coefficient vector x with x_j = Tr(Λ_j ρ)/Tr(Λ_j²). Imaginary residue from
// a non-Hermitian input is discarded.
func Vectorize(op *mat.CDense, basis Basis) sde.State {
	x := make(sde.State, len(basis))
	for j, el := range basis {
		x[j] = real(traceMul(el, op)) / real(traceMul(el, el))
	}
	return x
}

// Unvectorize reassembles the operator Σ_j x_j Λ_j from a coefficient
// vector.
func Unvectorize(x sde.State, basis Basis) *mat.CDense {
	n := basis.Dim()
	out := mat.NewCDense(n, n, nil)
	for j, el := range basis {
		addScaled(out, complex(x[j], 0), el)
	}
	return out
}
