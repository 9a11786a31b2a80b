package storage

import (
	"math"
	"testing"

	"github.com/san-kum/pipeflow/internal/geom"
	"github.com/san-kum/pipeflow/internal/sim"
)

func TestStore_SaveLoad(t *testing.T) {
	s := New(t.TempDir())
	if err := s.Init(); err != nil {
		t.Fatalf("Init failed: %v", err)
	}

	result := &sim.Result{
		Times:         []float64{0, 0.01, 0.02},
		KineticEnergy: []float64{0, 1.5, 2.25},
		Metrics:       map[string]float64{"max_speed": 3.5},
		StepsTaken:    2,
	}
	positions := []geom.Vec3{{X: 0.1, Y: 0.2, Z: 0.3}, {X: 0.4, Y: 0.5, Z: 0.6}}

	runID, err := s.Save(sim.Config{Dt: 0.01, Steps: 2}, len(positions), result, positions)
	if err != nil {
		t.Fatalf("Save failed: %v", err)
	}

	meta, err := s.Load(runID)
	if err != nil {
		t.Fatalf("Load failed: %v", err)
	}
	if meta.ID != runID || meta.Particles != 2 || meta.Steps != 2 {
		t.Errorf("metadata mismatch: %+v", meta)
	}
	if meta.Metrics["max_speed"] != 3.5 {
		t.Errorf("metrics not persisted: %+v", meta.Metrics)
	}

	times, ke, err := s.LoadSeries(runID)
	if err != nil {
		t.Fatalf("LoadSeries failed: %v", err)
	}
	if len(times) != 3 || len(ke) != 3 {
		t.Fatalf("series lengths = %d, %d, want 3", len(times), len(ke))
	}
	for i := range times {
		if math.Abs(times[i]-result.Times[i]) > 1e-12 || math.Abs(ke[i]-result.KineticEnergy[i]) > 1e-12 {
			t.Errorf("series row %d mismatch: (%v, %v)", i, times[i], ke[i])
		}
	}
}

func TestStore_List(t *testing.T) {
	s := New(t.TempDir())
	if err := s.Init(); err != nil {
		t.Fatalf("Init failed: %v", err)
	}

	runs, err := s.List()
	if err != nil {
		t.Fatalf("List on empty store failed: %v", err)
	}
	if len(runs) != 0 {
		t.Errorf("empty store listed %d runs", len(runs))
	}

	result := &sim.Result{Times: []float64{0}, KineticEnergy: []float64{0}, Metrics: map[string]float64{}}
	if _, err := s.Save(sim.Config{Dt: 0.01, Steps: 1}, 1, result, nil); err != nil {
		t.Fatalf("Save failed: %v", err)
	}

	runs, err = s.List()
	if err != nil {
		t.Fatalf("List failed: %v", err)
	}
	if len(runs) != 1 {
		t.Errorf("listed %d runs, want 1", len(runs))
	}
}
