package sim

import (
	"fmt"

	"github.com/san-kum/pipeflow/internal/geom"
)

// Frame is a read-only snapshot of engine state handed to metrics and
// observers. Positions and velocities are copies owned by the frame.
type Frame struct {
	Step       int
	Time       float64
	Positions  []geom.Vec3
	Velocities []geom.Vec3
}

type Metric interface {
	Name() string
	Observe(f Frame)
	Value() float64
	Reset()
}

type Observer interface {
	OnStep(f Frame)
}

// Config controls one run of the engine.
type Config struct {
	Dt    float64
	Steps int

	// SampleEvery thins the recorded kinetic-energy series; 1 (or 0)
	// records every step.
	SampleEvery int
}

func (c Config) Validate() error {
	if c.Dt <= 0 {
		return fmt.Errorf("dt must be positive, got %f", c.Dt)
	}
	if c.Steps <= 0 {
		return fmt.Errorf("steps must be positive, got %d", c.Steps)
	}
	if c.SampleEvery < 0 {
		return fmt.Errorf("sample interval must be non-negative, got %d", c.SampleEvery)
	}
	return nil
}

type Result struct {
	Times         []float64
	KineticEnergy []float64
	Metrics       map[string]float64
	StepsTaken    int
}
