package master

import (
	"gonum.org/v1/gonum/floats"
	"gonum.org/v1/gonum/mat"

	"github.com/avasek/smesim/internal/sde"
)

// Derivative-term algebra for the homodyne filtering SDE with
// a(ρ) = Qρ and b(ρ) = (k·ρ)ρ + Gρ. The fields are quadratic in ρ, so the
// directional derivatives below are state-dependent and recomputed each
// step from the precomputed operator products. They are Taylor-expansion
// coefficients, not estimates: each is an exact closed form.

func matVec(a *mat.Dense, x sde.State) sde.State {
	r, c := a.Dims()
	out := make(sde.State, r)
	for i := 0; i < r; i++ {
		sum := 0.0
		for j := 0; j < c; j++ {
			sum += a.At(i, j) * x[j]
		}
		out[i] = sum
	}
	return out
}

// rowMat returns the row vector k^T·M.
func rowMat(k []float64, m *mat.Dense) []float64 {
	r, c := m.Dims()
	out := make([]float64, c)
	for j := 0; j < c; j++ {
		sum := 0.0
		for i := 0; i < r; i++ {
			sum += k[i] * m.At(i, j)
		}
		out[j] = sum
	}
	return out
}

// bDxB computes (b·∇)b = (k^TGρ + 2(k·ρ)²)ρ + (G² + 2(k·ρ)G)ρ.
func bDxB(g2 *mat.Dense, kTG []float64, g *mat.Dense, kT []float64, rho sde.State) sde.State {
	s := floats.Dot(kT, rho)
	kgr := floats.Dot(kTG, rho)

	gRho := matVec(g, rho)
	g2Rho := matVec(g2, rho)

	out := make(sde.State, len(rho))
	scalar := kgr + 2*s*s
	for i := range rho {
		out[i] = scalar*rho[i] + g2Rho[i] + 2*s*gRho[i]
	}
	return out
}

// bDxA computes (b·∇)a = (QG + (k·ρ)Q)ρ.
func bDxA(qg *mat.Dense, kT []float64, q *mat.Dense, rho sde.State) sde.State {
	s := floats.Dot(kT, rho)
	qgRho := matVec(qg, rho)
	qRho := matVec(q, rho)

	out := make(sde.State, len(rho))
	for i := range rho {
		out[i] = qgRho[i] + s*qRho[i]
	}
	return out
}

// aDxB computes (a·∇)b = (GQ + (k·ρ)Q)ρ + (k^TQρ)ρ.
func aDxB(gq *mat.Dense, kT []float64, q *mat.Dense, kTQ []float64, rho sde.State) sde.State {
	s := floats.Dot(kT, rho)
	kqr := floats.Dot(kTQ, rho)

	gqRho := matVec(gq, rho)
	qRho := matVec(q, rho)

	out := make(sde.State, len(rho))
	for i := range rho {
		out[i] = gqRho[i] + s*qRho[i] + kqr*rho[i]
	}
	return out
}

// aDxA computes (a·∇)a = Q²ρ.
func aDxA(q2 *mat.Dense, rho sde.State) sde.State {
	return matVec(q2, rho)
}

// bDxBDxB computes (b·∇)²b =
//
//	(G³ + 3(k·ρ)G² + 3(k^TGρ + 2(k·ρ)²)G)ρ + (k^TG²ρ + 6(k·ρ)k^TGρ + 6(k·ρ)³)ρ.
func bDxBDxB(g3, g2, g *mat.Dense, kT, kTG, kTG2 []float64, rho sde.State) sde.State {
	s := floats.Dot(kT, rho)
	kgr := floats.Dot(kTG, rho)
	kg2r := floats.Dot(kTG2, rho)

	gRho := matVec(g, rho)
	g2Rho := matVec(g2, rho)
	g3Rho := matVec(g3, rho)

	out := make(sde.State, len(rho))
	gCoeff := 3 * (kgr + 2*s*s)
	scalar := kg2r + 6*s*kgr + 6*s*s*s
	for i := range rho {
		out[i] = g3Rho[i] + 3*s*g2Rho[i] + gCoeff*gRho[i] + scalar*rho[i]
	}
	return out
}
