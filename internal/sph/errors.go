package sph

import (
	"errors"
	"fmt"
)

// Domain errors for engine operations.
var (
	// ErrInvalidParameter indicates a non-positive, non-finite, or otherwise
	// degenerate input value. The call that introduced it fails synchronously
	// and existing particle state is left untouched.
	ErrInvalidParameter = errors.New("sph: invalid parameter")

	// ErrUnstable indicates the simulation produced a non-finite density or
	// position, usually from a runaway time step or coincident particles.
	ErrUnstable = errors.New("sph: numeric instability (NaN or Inf in particle state)")
)

// StepError wraps an error with the step index and simulation time at which
// it was detected.
type StepError struct {
	Step int
	Time float64
	Err  error
}

func (e *StepError) Error() string {
	return fmt.Sprintf("step %d (t=%.4f): %v", e.Step, e.Time, e.Err)
}

func (e *StepError) Unwrap() error {
	return e.Err
}
