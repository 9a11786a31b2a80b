package sim

import (
	"context"

	"github.com/san-kum/pipeflow/internal/geom"
	"github.com/san-kum/pipeflow/internal/sph"
)

// Runner drives an engine for a fixed number of steps, sampling metrics and
// notifying observers between steps. Cancellation is honored between steps
// only; a step in flight always runs to completion.
type Runner struct {
	eng       *sph.Engine
	metrics   []Metric
	observers []Observer
}

func NewRunner(eng *sph.Engine) *Runner {
	return &Runner{eng: eng}
}

func (r *Runner) AddMetric(m Metric)     { r.metrics = append(r.metrics, m) }
func (r *Runner) AddObserver(o Observer) { r.observers = append(r.observers, o) }

func (r *Runner) Run(ctx context.Context, cfg Config) (*Result, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	sample := cfg.SampleEvery
	if sample < 1 {
		sample = 1
	}

	result := &Result{
		Times:         make([]float64, 0, cfg.Steps/sample+1),
		KineticEnergy: make([]float64, 0, cfg.Steps/sample+1),
		Metrics:       make(map[string]float64),
	}

	for _, m := range r.metrics {
		m.Reset()
	}

	for i := 0; i < cfg.Steps; i++ {
		select {
		case <-ctx.Done():
			r.finalize(result)
			return result, ctx.Err()
		default:
		}

		frame := r.snapshot()
		for _, m := range r.metrics {
			m.Observe(frame)
		}
		for _, obs := range r.observers {
			obs.OnStep(frame)
		}
		if i%sample == 0 {
			result.Times = append(result.Times, frame.Time)
			result.KineticEnergy = append(result.KineticEnergy, kinetic(frame.Velocities))
		}

		if err := r.eng.Step(cfg.Dt); err != nil {
			r.finalize(result)
			return result, err
		}
		result.StepsTaken++
	}

	// closing sample after the final step
	frame := r.snapshot()
	result.Times = append(result.Times, frame.Time)
	result.KineticEnergy = append(result.KineticEnergy, kinetic(frame.Velocities))

	r.finalize(result)
	return result, nil
}

func (r *Runner) snapshot() Frame {
	return Frame{
		Step:       r.eng.Steps(),
		Time:       r.eng.Time(),
		Positions:  r.eng.Positions(),
		Velocities: r.eng.Velocities(),
	}
}

func (r *Runner) finalize(result *Result) {
	for _, m := range r.metrics {
		result.Metrics[m.Name()] = m.Value()
	}
}

func kinetic(velocities []geom.Vec3) float64 {
	ke := 0.0
	for _, v := range velocities {
		ke += 0.5 * v.LenSq()
	}
	return ke
}
