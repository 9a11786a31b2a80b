package sph

import (
	"fmt"
	"math"
)

const (
	// DefaultSmoothingRadius is the kernel cutoff h in world units. It is a
	// fixed engine constant, not derived from particle spacing; callers must
	// keep seeding spacing at or below h for meaningful neighbor counts.
	DefaultSmoothingRadius = 0.1

	// StiffnessPerFlowRate converts the caller-facing flow rate into the
	// pressure stiffness of the linear equation of state. The original model
	// buried this as an inline ×50; it is deliberately a named, tunable
	// constant here.
	StiffnessPerFlowRate = 50.0

	// WallDamping is the factor applied to the velocity component on an axis
	// where a particle hit the bounding wall. Negative: the wall reflects and
	// dissipates, it does not absorb.
	WallDamping = -0.5
)

// Parameters describes the fluid. Immutable per step; swapped as a whole by
// Engine.SetParameters.
type Parameters struct {
	// RestDensity is the equilibrium density in kg/m³.
	RestDensity float64

	// Viscosity scales the pairwise velocity-difference viscosity term.
	Viscosity float64

	// FlowRate drives the pressure stiffness via StiffnessPerFlowRate.
	FlowRate float64

	// TimeStep is the default Δt in seconds for callers that do not choose
	// their own cadence.
	TimeStep float64
}

// Stiffness returns the equation-of-state coefficient k in
// p = k (ρ − ρ0).
func (p Parameters) Stiffness() float64 {
	return p.FlowRate * StiffnessPerFlowRate
}

func (p Parameters) Validate() error {
	if !finite(p.RestDensity) || p.RestDensity <= 0 {
		return fmt.Errorf("%w: rest density must be positive and finite, got %v", ErrInvalidParameter, p.RestDensity)
	}
	if !finite(p.Viscosity) || p.Viscosity < 0 {
		return fmt.Errorf("%w: viscosity must be non-negative and finite, got %v", ErrInvalidParameter, p.Viscosity)
	}
	if !finite(p.FlowRate) || p.FlowRate < 0 {
		return fmt.Errorf("%w: flow rate must be non-negative and finite, got %v", ErrInvalidParameter, p.FlowRate)
	}
	if !finite(p.TimeStep) || p.TimeStep <= 0 {
		return fmt.Errorf("%w: time step must be positive and finite, got %v", ErrInvalidParameter, p.TimeStep)
	}
	return nil
}

func finite(v float64) bool {
	return !math.IsNaN(v) && !math.IsInf(v, 0)
}
