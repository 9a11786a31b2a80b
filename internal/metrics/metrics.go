// Package metrics provides run-level observables for the SPH engine. All of
// them assume the engine's unit-mass convention.
package metrics

import (
	"github.com/san-kum/pipeflow/internal/geom"
	"github.com/san-kum/pipeflow/internal/sim"
)

// Kinetic returns the total kinetic energy ½ Σ |v|² of a velocity snapshot.
func Kinetic(velocities []geom.Vec3) float64 {
	ke := 0.0
	for _, v := range velocities {
		ke += 0.5 * v.LenSq()
	}
	return ke
}

// KineticEnergy reports the mean total kinetic energy over observed frames.
type KineticEnergy struct {
	samples int
	total   float64
}

func NewKineticEnergy() *KineticEnergy { return &KineticEnergy{} }

func (k *KineticEnergy) Name() string { return "kinetic_energy" }

func (k *KineticEnergy) Observe(f sim.Frame) {
	k.total += Kinetic(f.Velocities)
	k.samples++
}

func (k *KineticEnergy) Value() float64 {
	if k.samples == 0 {
		return 0
	}
	return k.total / float64(k.samples)
}

func (k *KineticEnergy) Reset() {
	k.samples = 0
	k.total = 0
}

// MaxSpeed reports the largest particle speed seen across all frames.
type MaxSpeed struct {
	max float64
}

func NewMaxSpeed() *MaxSpeed { return &MaxSpeed{} }

func (m *MaxSpeed) Name() string { return "max_speed" }

func (m *MaxSpeed) Observe(f sim.Frame) {
	for _, v := range f.Velocities {
		if s := v.Len(); s > m.max {
			m.max = s
		}
	}
}

func (m *MaxSpeed) Value() float64 { return m.max }

func (m *MaxSpeed) Reset() { m.max = 0 }

// Containment reports the fraction of observed frames in which every
// particle lay inside the bounding volume. Anything below 1.0 means the
// boundary handler leaked.
type Containment struct {
	bounds    geom.Box
	frames    int
	contained int
}

func NewContainment(bounds geom.Box) *Containment {
	return &Containment{bounds: bounds}
}

func (c *Containment) Name() string { return "containment" }

func (c *Containment) Observe(f sim.Frame) {
	c.frames++
	for _, p := range f.Positions {
		if !c.bounds.Contains(p) {
			return
		}
	}
	c.contained++
}

func (c *Containment) Value() float64 {
	if c.frames == 0 {
		return 1
	}
	return float64(c.contained) / float64(c.frames)
}

func (c *Containment) Reset() {
	c.frames = 0
	c.contained = 0
}
