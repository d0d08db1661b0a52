package sde

import "errors"

// Domain errors for stochastic integration and convergence analysis.
var (
	// ErrInvalidGrid indicates a time grid whose interval count is not
	// compatible with the requested operation (non-monotonic, too short, or
	// not divisible by the required coarsening factor).
	ErrInvalidGrid = errors.New("sde: invalid time grid")

	// ErrDimensionMismatch indicates noise arrays or state vectors whose
	// lengths do not match the time grid or the operator dimension.
	ErrDimensionMismatch = errors.New("sde: dimension mismatch")

	// ErrDegenerate indicates numerically degenerate input, such as a zero
	// trajectory difference that would send the rate formula through log(0).
	ErrDegenerate = errors.New("sde: numerically degenerate input")

	// ErrUnknownScheme indicates an integrator name with no registered
	// constructor.
	ErrUnknownScheme = errors.New("sde: unknown integration scheme")
)
