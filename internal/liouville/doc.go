// Package liouville builds the vectorized superoperator matrices that drive
// master-equation integration.
//
// Density operators are expanded in an orthogonal Hermitian operator basis
// whose last element is proportional to the identity; the expansion
// coefficients form a real vector (an sde.State) with the conserved identity
// component last. Superoperators acting on density operators then become
// real matrices acting on coefficient vectors:
//
//   - [DiffusionOp]: Lindblad dissipator D[c]ρ = cρc† − ½{c†c, ρ}
//   - [DoubleCommOp]: squeezed-bath double-commutator terms
//   - [HamiltonianOp]: −i[H, ρ]
//   - [WienerOp]: linear matrix G and row vector k of the homodyne
//     measurement term b(ρ) = (k·ρ)ρ + Gρ
//
// [GellMann] supplies the standard basis (generalized Gell-Mann matrices
// plus a scaled identity) for any finite Hilbert-space dimension.
package liouville
