package liouville

import (
	"gonum.org/v1/gonum/mat"
)

// buildSuperop projects a superoperator onto the coefficient basis, column
// by column. Trace-preserving generators get an exactly-zero identity row so
// the conserved component never drifts during integration.
func buildSuperop(apply func(*mat.CDense) *mat.CDense, basis Basis, tracePreserving bool) *mat.Dense {
	m := len(basis)
	norms := make([]float64, m)
	for j, el := range basis {
		norms[j] = real(traceMul(el, el))
	}

	out := mat.NewDense(m, m, nil)
	for i, el := range basis {
		img := apply(el)
		rows := m
		if tracePreserving {
			rows = m - 1
		}
		for j := 0; j < rows; j++ {
			out.Set(j, i, real(traceMul(basis[j], img))/norms[j])
		}
	}
	return out
}

// DiffusionOp returns the matrix of the Lindblad dissipator
// D[c]ρ = cρc† − ½(c†cρ + ρc†c) over the coefficient basis.
func DiffusionOp(c *mat.CDense, basis Basis) *mat.Dense {
	cDag := Dag(c)
	cDagC := mulC(cDag, c)
	return buildSuperop(func(rho *mat.CDense) *mat.CDense {
		out := mulC(mulC(c, rho), cDag)
		addScaled(out, -0.5, mulC(cDagC, rho))
		addScaled(out, -0.5, mulC(rho, cDagC))
		return out
	}, basis, true)
}

// DoubleCommOp returns the matrix of the squeezed-bath generator
// (M*/2)[c,[c,ρ]] + (M/2)[c†,[c†,ρ]] for squeezing parameter M.
func DoubleCommOp(c *mat.CDense, msq complex128, basis Basis) *mat.Dense {
	cDag := Dag(c)
	return buildSuperop(func(rho *mat.CDense) *mat.CDense {
		out := scaleC(cmplxConj(msq)/2, commutator(c, commutator(c, rho)))
		addScaled(out, msq/2, commutator(cDag, commutator(cDag, rho)))
		return out
	}, basis, true)
}

// HamiltonianOp returns the matrix of ρ ↦ −i[H, ρ].
func HamiltonianOp(h *mat.CDense, basis Basis) *mat.Dense {
	return buildSuperop(func(rho *mat.CDense) *mat.CDense {
		return scaleC(complex(0, -1), commutator(h, rho))
	}, basis, true)
}

// WienerOp returns the linear matrix G of ρ ↦ cρ + ρc† together with the row
// vector k such that the homodyne diffusion field is b(ρ) = (k·ρ)ρ + Gρ.
// G keeps its identity row: its trace leak is cancelled exactly by the
// nonlinear (k·ρ)ρ term, not by construction.
func WienerOp(c *mat.CDense, basis Basis) (*mat.Dense, []float64) {
	cDag := Dag(c)
	g := buildSuperop(func(rho *mat.CDense) *mat.CDense {
		out := mulC(c, rho)
		addScaled(out, 1, mulC(rho, cDag))
		return out
	}, basis, false)

	// k_j = −Tr((c + c†)Λ_j): contracts directly with coefficients, so no
	// norm division here.
	sum := scaleC(1, c)
	addScaled(sum, 1, cDag)
	k := make([]float64, len(basis))
	for j, el := range basis {
		k[j] = -real(traceMul(sum, el))
	}
	return g, k
}
