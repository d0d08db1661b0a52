package sde

import "fmt"

// Integrate drives a stepper across the whole time grid, returning one state
// per time point with the initial state in first place. u2s may be nil for
// schemes that only consume the Wiener sample; u1s must cover every interval.
func Integrate(st Stepper, rho0 State, times []float64, u1s, u2s []float64) ([]State, error) {
	if err := CheckGrid(times); err != nil {
		return nil, err
	}
	n := len(times) - 1
	if len(u1s) < n {
		return nil, fmt.Errorf("%w: %d U1 samples for %d intervals", ErrDimensionMismatch, len(u1s), n)
	}
	if u2s != nil && len(u2s) < n {
		return nil, fmt.Errorf("%w: %d U2 samples for %d intervals", ErrDimensionMismatch, len(u2s), n)
	}

	rhos := make([]State, 0, n+1)
	rho := rho0.Clone()
	rhos = append(rhos, rho)

	for i := 0; i < n; i++ {
		u2 := 0.0
		if u2s != nil {
			u2 = u2s[i]
		}
		rho = st.Step(rho, times[i], times[i+1]-times[i], u1s[i], u2)
		rhos = append(rhos, rho)
	}
	return rhos, nil
}

// CheckGrid validates that a time grid has at least one interval and strictly
// increasing points.
func CheckGrid(times []float64) error {
	if len(times) < 2 {
		return fmt.Errorf("%w: need at least 2 time points, got %d", ErrInvalidGrid, len(times))
	}
	for i := 1; i < len(times); i++ {
		if times[i] <= times[i-1] {
			return fmt.Errorf("%w: times not strictly increasing at index %d", ErrInvalidGrid, i)
		}
	}
	return nil
}
