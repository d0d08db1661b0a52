package liouville

import (
	"math"

	"gonum.org/v1/gonum/mat"
)

// Annihilation returns the truncated harmonic-oscillator lowering operator
// on an n-dimensional Hilbert space: a|k⟩ = √k |k−1⟩. For n = 2 this is the
// qubit lowering operator σ₋.
func Annihilation(n int) *mat.CDense {
	a := mat.NewCDense(n, n, nil)
	for k := 1; k < n; k++ {
		a.Set(k-1, k, complex(math.Sqrt(float64(k)), 0))
	}
	return a
}

// Number returns the occupation-number operator diag(0, 1, …, n−1).
func Number(n int) *mat.CDense {
	num := mat.NewCDense(n, n, nil)
	for k := 0; k < n; k++ {
		num.Set(k, k, complex(float64(k), 0))
	}
	return num
}

// Dag returns the conjugate transpose.
func Dag(a *mat.CDense) *mat.CDense {
	r, c := a.Dims()
	out := mat.NewCDense(c, r, nil)
	for i := 0; i < r; i++ {
		for j := 0; j < c; j++ {
			out.Set(j, i, cmplxConj(a.At(i, j)))
		}
	}
	return out
}

func cmplxConj(z complex128) complex128 {
	return complex(real(z), -imag(z))
}

func mulC(a, b *mat.CDense) *mat.CDense {
	ra, ca := a.Dims()
	_, cb := b.Dims()
	out := mat.NewCDense(ra, cb, nil)
	for i := 0; i < ra; i++ {
		for j := 0; j < cb; j++ {
			var sum complex128
			for k := 0; k < ca; k++ {
				sum += a.At(i, k) * b.At(k, j)
			}
			out.Set(i, j, sum)
		}
	}
	return out
}

func addScaled(out *mat.CDense, z complex128, a *mat.CDense) {
	r, c := a.Dims()
	for i := 0; i < r; i++ {
		for j := 0; j < c; j++ {
			out.Set(i, j, out.At(i, j)+z*a.At(i, j))
		}
	}
}

func scaleC(z complex128, a *mat.CDense) *mat.CDense {
	r, c := a.Dims()
	out := mat.NewCDense(r, c, nil)
	addScaled(out, z, a)
	return out
}

// traceMul computes Tr(a·b) without forming the product.
func traceMul(a, b *mat.CDense) complex128 {
	r, c := a.Dims()
	sum := complex(0, 0)
	for i := 0; i < r; i++ {
		for j := 0; j < c; j++ {
			sum += a.At(i, j) * b.At(j, i)
		}
	}
	return sum
}

// commutator returns ab − ba.
func commutator(a, b *mat.CDense) *mat.CDense {
	out := mulC(a, b)
	addScaled(out, -1, mulC(b, a))
	return out
}
