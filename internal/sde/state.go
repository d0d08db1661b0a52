package sde

import "math"

// State is the real coefficient vector of a vectorized density operator.
// The traceless components come first; the conserved identity component is
// the last entry.
type State []float64

func (s State) Clone() State {
	c := make(State, len(s))
	copy(c, s)
	return c
}

func (s State) IsValid() bool {
	for _, v := range s {
		if math.IsNaN(v) || math.IsInf(v, 0) {
			return false
		}
	}
	return true
}

// L1Norm is the entrywise absolute-value sum.
func (s State) L1Norm() float64 {
	sum := 0.0
	for _, v := range s {
		sum += math.Abs(v)
	}
	return sum
}

// L1Dist returns the entrywise-L1 distance between two states of equal
// dimension.
func L1Dist(a, b State) float64 {
	sum := 0.0
	for i := range a {
		sum += math.Abs(a[i] - b[i])
	}
	return sum
}
