package ode

import (
	"errors"
	"fmt"
)

// Domain errors for trace operations.
var (
	// ErrInvalidConfig indicates a configuration rejected before stepping.
	ErrInvalidConfig = errors.New("ode: invalid trace configuration")

	// ErrNonFiniteSeed indicates a seed with NaN or Inf coordinates.
	ErrNonFiniteSeed = errors.New("ode: seed point is not finite")

	// ErrNilField indicates a missing vector field.
	ErrNilField = errors.New("ode: vector field is nil")

	// ErrInvalidDirection indicates a direction other than Forward/Backward.
	ErrInvalidDirection = errors.New("ode: direction must be +1 or -1")

	// ErrNonFiniteStep indicates a step produced a NaN or Inf coordinate;
	// the trajectory is truncated at the last valid point.
	ErrNonFiniteStep = errors.New("ode: step produced a non-finite coordinate")

	// ErrStepUnderflow indicates the adaptive step shrank below MinStep
	// and was accepted with degraded accuracy.
	ErrStepUnderflow = errors.New("ode: adaptive step below minimum, accepted anyway")
)

// TraceError wraps an error with the step at which it occurred.
type TraceError struct {
	Step    int
	Time    float64
	Wrapped error
}

func (e *TraceError) Error() string {
	return fmt.Sprintf("step %d (t=%.4f): %v", e.Step, e.Time, e.Wrapped)
}

func (e *TraceError) Unwrap() error {
	return e.Wrapped
}
