package experiment

import (
	"context"
	"math"
	"testing"
)

func TestRegistryLookups(t *testing.T) {
	r := NewRegistry()

	if _, err := r.GetModel("duffing"); err != nil {
		t.Errorf("duffing: %v", err)
	}
	if _, err := r.GetModel("nonexistent"); err == nil {
		t.Error("expected error for unknown model")
	}

	for _, name := range []string{"euler", "rk4"} {
		if _, err := r.GetIntegrator(name); err != nil {
			t.Errorf("%s: %v", name, err)
		}
	}
	if _, err := r.GetIntegrator("nonexistent"); err == nil {
		t.Error("expected error for unknown integrator")
	}

	if len(r.ListModels()) == 0 {
		t.Error("no models registered")
	}
	if len(r.ListIntegrators()) != 2 {
		t.Errorf("integrators = %v", r.ListIntegrators())
	}
}

func TestExperimentRun(t *testing.T) {
	r := NewRegistry()
	dyn, err := r.GetModel("duffing")
	if err != nil {
		t.Fatal(err)
	}
	integ, err := r.GetIntegrator("rk4")
	if err != nil {
		t.Fatal(err)
	}

	exp := New(Config{
		Model:      "duffing",
		Integrator: "rk4",
		InitState:  []float64{-0.9999, 1.0001, 0, 0},
		Dt:         0.01,
		Duration:   1.0,
		Seed:       42,
	})
	if err := exp.Setup(dyn, integ, r.DefaultMetrics(dyn)); err != nil {
		t.Fatal(err)
	}

	result, err := exp.Run(context.Background())
	if err != nil {
		t.Fatalf("run: %v", err)
	}

	if result.StepsTaken != 100 {
		t.Errorf("steps = %d", result.StepsTaken)
	}
	if len(result.States) != 101 {
		t.Errorf("states = %d", len(result.States))
	}
	for _, v := range result.States[len(result.States)-1] {
		if math.IsNaN(v) {
			t.Fatal("NaN in final state")
		}
	}
	if _, ok := result.Metrics["energy_drift"]; !ok {
		t.Errorf("metrics = %v", result.Metrics)
	}
}

func TestExperimentRunWithoutSetup(t *testing.T) {
	exp := New(Config{Model: "duffing", Dt: 0.01, Duration: 1})
	if _, err := exp.Run(context.Background()); err == nil {
		t.Error("expected error for run before setup")
	}
}
