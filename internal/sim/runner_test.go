package sim

import (
	"context"
	"testing"

	"github.com/san-kum/pipeflow/internal/geom"
	"github.com/san-kum/pipeflow/internal/sph"
)

func newEngine(t *testing.T) *sph.Engine {
	t.Helper()
	bounds := geom.Box{Min: geom.Vec3{}, Max: geom.Vec3{X: 1, Y: 1, Z: 1}}
	eng, err := sph.New(bounds, sph.Parameters{
		RestDensity: 1000,
		Viscosity:   0.1,
		FlowRate:    1,
		TimeStep:    0.01,
	})
	if err != nil {
		t.Fatalf("sph.New failed: %v", err)
	}
	if err := eng.SeedParticles(bounds, 0.25); err != nil {
		t.Fatalf("SeedParticles failed: %v", err)
	}
	return eng
}

type countMetric struct {
	count int
}

func (c *countMetric) Name() string    { return "count" }
func (c *countMetric) Observe(f Frame) { c.count++ }
func (c *countMetric) Value() float64  { return float64(c.count) }
func (c *countMetric) Reset()          { c.count = 0 }

func TestRunner_Run(t *testing.T) {
	r := NewRunner(newEngine(t))
	m := &countMetric{}
	r.AddMetric(m)

	result, err := r.Run(context.Background(), Config{Dt: 0.01, Steps: 10})
	if err != nil {
		t.Fatalf("Run failed: %v", err)
	}

	if result.StepsTaken != 10 {
		t.Errorf("StepsTaken = %d, want 10", result.StepsTaken)
	}
	if len(result.KineticEnergy) != 11 {
		t.Errorf("expected 11 samples, got %d", len(result.KineticEnergy))
	}
	if len(result.Times) != len(result.KineticEnergy) {
		t.Errorf("times and series lengths differ: %d vs %d", len(result.Times), len(result.KineticEnergy))
	}
	if m.count != 10 {
		t.Errorf("metric observed %d frames, want 10", m.count)
	}
	if _, ok := result.Metrics["count"]; !ok {
		t.Error("metric missing from result")
	}
}

func TestRunner_SampleEvery(t *testing.T) {
	r := NewRunner(newEngine(t))
	result, err := r.Run(context.Background(), Config{Dt: 0.01, Steps: 10, SampleEvery: 5})
	if err != nil {
		t.Fatalf("Run failed: %v", err)
	}
	// steps 0 and 5, plus the closing sample
	if len(result.KineticEnergy) != 3 {
		t.Errorf("expected 3 samples, got %d", len(result.KineticEnergy))
	}
}

func TestRunner_InvalidConfig(t *testing.T) {
	tests := []struct {
		name string
		cfg  Config
	}{
		{"zero dt", Config{Dt: 0, Steps: 10}},
		{"negative dt", Config{Dt: -0.1, Steps: 10}},
		{"zero steps", Config{Dt: 0.01, Steps: 0}},
		{"negative sampling", Config{Dt: 0.01, Steps: 10, SampleEvery: -1}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			r := NewRunner(newEngine(t))
			if _, err := r.Run(context.Background(), tt.cfg); err == nil {
				t.Error("expected error, got nil")
			}
		})
	}
}

func TestRunner_ContextCancellation(t *testing.T) {
	r := NewRunner(newEngine(t))
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	result, err := r.Run(ctx, Config{Dt: 0.01, Steps: 100})
	if err != context.Canceled {
		t.Fatalf("expected context.Canceled, got %v", err)
	}
	if result.StepsTaken != 0 {
		t.Errorf("no steps should run after cancellation, got %d", result.StepsTaken)
	}
}
