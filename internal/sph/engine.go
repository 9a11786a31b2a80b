// Package sph implements a smoothed particle hydrodynamics engine for fluid
// flow through a bounded volume. The engine owns its particle array and a
// plain-data axis-aligned bounding box; it knows nothing about geometry
// files, rendering, or UI.
//
// Each Step runs four phases in strict order with a barrier between them:
// density estimation, the equation of state, pairwise force accumulation,
// and integration with boundary enforcement. Every phase reads the particle
// snapshot taken at the start of the step.
//
// Particles carry implicit unit mass: accumulated forces are applied as
// direct velocity increments, with no separate acceleration pass. This is
// the convention throughout; no code path mixes in mass-weighted kernel
// sums.
package sph

import (
	"fmt"
	"math"
	"runtime"

	"github.com/san-kum/pipeflow/internal/geom"
)

// Particle is one simulated fluid element. Density and pressure are derived
// fields, recomputed from the current position snapshot every step.
type Particle struct {
	Position geom.Vec3
	Velocity geom.Vec3
	Density  float64 // kg/m³
	Pressure float64 // Pa
}

// Engine holds the particle state and advances it one time step at a time.
// It is not safe for concurrent use; a step runs to completion before
// returning and callers schedule steps at their own cadence.
type Engine struct {
	bounds    geom.Box
	params    Parameters
	stiffness float64
	kernel    Poly6
	workers   int

	particles []Particle
	grid      *grid

	// per-step force accumulators, applied after the force-phase barrier so
	// the pass reads only start-of-step velocities
	fPressure []geom.Vec3
	fViscous  []geom.Vec3

	steps int
	time  float64
}

// New constructs an engine over the given bounding volume. The box is both
// the default seeding region and the rigid collision boundary.
func New(bounds geom.Box, params Parameters) (*Engine, error) {
	if !bounds.Valid() {
		return nil, fmt.Errorf("%w: bounding volume is degenerate or inverted: min=%v max=%v",
			ErrInvalidParameter, bounds.Min, bounds.Max)
	}
	if err := params.Validate(); err != nil {
		return nil, err
	}
	e := &Engine{
		bounds:    bounds,
		params:    params,
		stiffness: params.Stiffness(),
		kernel:    NewPoly6(DefaultSmoothingRadius),
		workers:   runtime.GOMAXPROCS(0),
	}
	e.grid = newGrid(bounds, e.kernel.Radius())
	return e, nil
}

// SetParameters replaces rest density, viscosity, and pressure stiffness.
// The smoothing radius and existing particles are untouched; densities and
// pressures reflect the new values from the next step on.
func (e *Engine) SetParameters(params Parameters) error {
	if err := params.Validate(); err != nil {
		return err
	}
	e.params = params
	e.stiffness = params.Stiffness()
	return nil
}

// SetSmoothingRadius retunes the kernel cutoff h. Takes effect on the next
// step; Reset also uses it as the re-seeding spacing.
func (e *Engine) SetSmoothingRadius(h float64) error {
	if !finite(h) || h <= 0 {
		return fmt.Errorf("%w: smoothing radius must be positive and finite, got %v", ErrInvalidParameter, h)
	}
	e.kernel = NewPoly6(h)
	e.grid = newGrid(e.bounds, h)
	return nil
}

// SetWorkers limits the goroutines used by the density and force passes.
func (e *Engine) SetWorkers(n int) {
	if n < 1 {
		n = 1
	}
	e.workers = n
}

func (e *Engine) Params() Parameters       { return e.params }
func (e *Engine) Bounds() geom.Box         { return e.bounds }
func (e *Engine) SmoothingRadius() float64 { return e.kernel.Radius() }
func (e *Engine) Len() int                 { return len(e.particles) }
func (e *Engine) Steps() int               { return e.steps }
func (e *Engine) Time() float64            { return e.time }

// SeedParticles appends one resting particle per lattice point of the
// half-open region [region.Min, region.Max), stepped by spacing on each
// axis. Enumeration order is x-outer, z-inner, so identical seeds produce
// identical particle ordering and therefore identical trajectories.
func (e *Engine) SeedParticles(region geom.Box, spacing float64) error {
	if !finite(spacing) || spacing <= 0 {
		return fmt.Errorf("%w: spacing must be positive and finite, got %v", ErrInvalidParameter, spacing)
	}
	if !region.Valid() {
		return fmt.Errorf("%w: seed region is degenerate or inverted: min=%v max=%v",
			ErrInvalidParameter, region.Min, region.Max)
	}

	size := region.Size()
	nx := latticePoints(size.X, spacing)
	ny := latticePoints(size.Y, spacing)
	nz := latticePoints(size.Z, spacing)

	for ix := 0; ix < nx; ix++ {
		for iy := 0; iy < ny; iy++ {
			for iz := 0; iz < nz; iz++ {
				e.particles = append(e.particles, Particle{
					Position: geom.Vec3{
						X: region.Min.X + float64(ix)*spacing,
						Y: region.Min.Y + float64(iy)*spacing,
						Z: region.Min.Z + float64(iz)*spacing,
					},
					Density: e.params.RestDensity,
				})
			}
		}
	}

	e.fPressure = make([]geom.Vec3, len(e.particles))
	e.fViscous = make([]geom.Vec3, len(e.particles))
	return nil
}

// latticePoints is the count per axis under half-open interval semantics:
// ⌈extent/spacing⌉ points at min, min+s, ... strictly below max. Indexed
// multiplication rather than accumulation keeps the far bound exclusive
// under float rounding.
func latticePoints(extent, spacing float64) int {
	return int(math.Ceil(extent / spacing))
}

// Reset clears all particles and re-seeds the full bounding volume with the
// smoothing radius as spacing, restoring the initial condition
// deterministically.
func (e *Engine) Reset() error {
	e.particles = e.particles[:0]
	e.steps = 0
	e.time = 0
	return e.SeedParticles(e.bounds, e.kernel.Radius())
}

// Positions returns a fresh copy of all particle positions, index-aligned
// with Velocities.
func (e *Engine) Positions() []geom.Vec3 {
	out := make([]geom.Vec3, len(e.particles))
	for i := range e.particles {
		out[i] = e.particles[i].Position
	}
	return out
}

// Velocities returns a fresh copy of all particle velocities.
func (e *Engine) Velocities() []geom.Vec3 {
	out := make([]geom.Vec3, len(e.particles))
	for i := range e.particles {
		out[i] = e.particles[i].Velocity
	}
	return out
}

// Densities returns a fresh copy of the per-particle densities from the
// most recent step (rest density before the first step).
func (e *Engine) Densities() []float64 {
	out := make([]float64, len(e.particles))
	for i := range e.particles {
		out[i] = e.particles[i].Density
	}
	return out
}

// Step advances the simulation by dt seconds, running all four phases to
// completion. There is no partial-step resumability.
func (e *Engine) Step(dt float64) error {
	if !finite(dt) || dt <= 0 {
		return fmt.Errorf("%w: dt must be positive and finite, got %v", ErrInvalidParameter, dt)
	}
	if len(e.particles) == 0 {
		e.steps++
		e.time += dt
		return nil
	}

	e.grid.rebuild(e.particles)

	e.computeDensity()
	e.computePressure()
	e.accumulateForces()
	e.integrateAndBound(dt)

	e.steps++
	e.time += dt

	if err := e.checkFinite(); err != nil {
		return err
	}
	return nil
}

// computeDensity sums kernel weights over all neighbors within h, self
// included. The self term W(0) > 0 keeps every density strictly positive,
// which is what makes the 1/ρ_j in the force pass safe.
func (e *Engine) computeDensity() {
	h2 := e.kernel.h2
	parallelRange(len(e.particles), e.workers, func(i int) {
		pos := e.particles[i].Position
		rho := 0.0
		e.grid.forEachNeighbor(pos, func(j int) {
			r2 := e.particles[j].Position.Sub(pos).LenSq()
			if r2 < h2 {
				rho += e.kernel.W2(r2)
			}
		})
		e.particles[i].Density = rho
	})
}

// computePressure applies the linear equation of state. Pressure below rest
// density goes negative on purpose; the attractive branch is part of the
// model and must not be clamped.
func (e *Engine) computePressure() {
	k := e.stiffness
	rho0 := e.params.RestDensity
	parallelRange(len(e.particles), e.workers, func(i int) {
		e.particles[i].Pressure = k * (e.particles[i].Density - rho0)
	})
}

// accumulateForces gathers the pairwise pressure and viscosity terms into
// the scratch accumulators. The pressure term points along (pos_j − pos_i)
// scaled by (p_i + p_j) / (2 ρ_j) — the denominator is ρ_j alone, which is
// asymmetric but intentional in this model. The viscosity term is the raw
// pairwise velocity difference.
func (e *Engine) accumulateForces() {
	h2 := e.kernel.h2
	parallelRange(len(e.particles), e.workers, func(i int) {
		p := &e.particles[i]
		var fp, fv geom.Vec3
		e.grid.forEachNeighbor(p.Position, func(j int) {
			if j == i {
				return
			}
			q := &e.particles[j]
			dir := q.Position.Sub(p.Position)
			if dir.LenSq() >= h2 {
				return
			}
			fp = fp.Add(dir.Scale((p.Pressure + q.Pressure) / (2 * q.Density)))
			fv = fv.Add(q.Velocity.Sub(p.Velocity))
		})
		e.fPressure[i] = fp
		e.fViscous[i] = fv
	})
}

// integrateAndBound applies the accumulated forces as velocity increments,
// advances positions semi-implicitly, and resolves wall collisions per axis:
// clamp the position and damp-reflect the velocity component.
func (e *Engine) integrateAndBound(dt float64) {
	mu := e.params.Viscosity
	min, max := e.bounds.Min, e.bounds.Max
	parallelRange(len(e.particles), e.workers, func(i int) {
		p := &e.particles[i]
		p.Velocity = p.Velocity.
			Add(e.fPressure[i].Scale(dt)).
			Add(e.fViscous[i].Scale(mu * dt))
		p.Position = p.Position.Add(p.Velocity.Scale(dt))

		if p.Position.X < min.X {
			p.Position.X = min.X
			p.Velocity.X *= WallDamping
		} else if p.Position.X > max.X {
			p.Position.X = max.X
			p.Velocity.X *= WallDamping
		}
		if p.Position.Y < min.Y {
			p.Position.Y = min.Y
			p.Velocity.Y *= WallDamping
		} else if p.Position.Y > max.Y {
			p.Position.Y = max.Y
			p.Velocity.Y *= WallDamping
		}
		if p.Position.Z < min.Z {
			p.Position.Z = min.Z
			p.Velocity.Z *= WallDamping
		} else if p.Position.Z > max.Z {
			p.Position.Z = max.Z
			p.Velocity.Z *= WallDamping
		}
	})
}

func (e *Engine) checkFinite() error {
	for i := range e.particles {
		p := &e.particles[i]
		if !p.Position.IsFinite() || !finite(p.Density) {
			return &StepError{
				Step: e.steps,
				Time: e.time,
				Err:  fmt.Errorf("%w: particle %d", ErrUnstable, i),
			}
		}
	}
	return nil
}
