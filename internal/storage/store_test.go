package storage

import (
	"bytes"
	"encoding/json"
	"math"
	"strings"
	"testing"

	"github.com/sansuarezs055/gaslab/internal/dynamo"
	"github.com/sansuarezs055/gaslab/internal/gas"
)

func testResult() *dynamo.Result {
	return &dynamo.Result{
		States:     []dynamo.State{{1.0, 0.0}, {0.9, -0.1}, {0.8, -0.2}},
		Times:      []float64{0, 0.01, 0.02},
		Metrics:    map[string]float64{"stability": 1.0},
		StepsTaken: 2,
	}
}

func TestSaveAndLoadResult(t *testing.T) {
	store := New(t.TempDir())
	if err := store.Init(); err != nil {
		t.Fatal(err)
	}

	runID, err := store.SaveResult("duffing", "rk4", 0.01, 42, testResult())
	if err != nil {
		t.Fatalf("save: %v", err)
	}

	meta, err := store.Load(runID)
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	if meta.Model != "duffing" {
		t.Errorf("model = %s", meta.Model)
	}
	if meta.Seed != 42 {
		t.Errorf("seed = %d", meta.Seed)
	}
	if meta.Metrics["stability"] != 1.0 {
		t.Errorf("metrics = %v", meta.Metrics)
	}

	states, times, err := store.LoadStates(runID)
	if err != nil {
		t.Fatalf("load states: %v", err)
	}
	if len(states) != 3 || len(times) != 3 {
		t.Fatalf("got %d states, %d times", len(states), len(times))
	}
	if math.Abs(states[1][1]-(-0.1)) > 1e-6 {
		t.Errorf("states[1][1] = %f", states[1][1])
	}
	if math.Abs(times[2]-0.02) > 1e-9 {
		t.Errorf("times[2] = %f", times[2])
	}
}

func TestSaveAndLoadGasRun(t *testing.T) {
	store := New(t.TempDir())
	if err := store.Init(); err != nil {
		t.Fatal(err)
	}

	frames := []gas.Frame{
		{Step: 0, Time: 0, Particles: []gas.FrameParticle{{X: 1, Y: 2, Speed: 3}}},
		{Step: 1, Time: 0.01, Particles: []gas.FrameParticle{{X: 1.03, Y: 2, Speed: 3}}},
	}
	times := []float64{0, 0.01}
	pressures := []float64{0, 1.5}

	cfg := gas.Config{Side: 10, N: 1, VMax: 2, Radius: 0.5, Dt: 0.01, Steps: 2, Seed: 7}
	runID, err := store.SaveGasRun(cfg, frames, times, pressures)
	if err != nil {
		t.Fatalf("save: %v", err)
	}

	meta, err := store.Load(runID)
	if err != nil {
		t.Fatal(err)
	}
	if meta.Particles != 1 {
		t.Errorf("particles = %d", meta.Particles)
	}
	if meta.Metrics["final_pressure"] != 1.5 {
		t.Errorf("final_pressure = %f", meta.Metrics["final_pressure"])
	}

	gotTimes, gotPressures, err := store.LoadPressure(runID)
	if err != nil {
		t.Fatal(err)
	}
	if len(gotPressures) != 2 || math.Abs(gotPressures[1]-1.5) > 1e-6 {
		t.Errorf("pressures = %v", gotPressures)
	}
	if len(gotTimes) != 2 {
		t.Errorf("times = %v", gotTimes)
	}

	last, err := store.LoadLastFrame(runID)
	if err != nil {
		t.Fatal(err)
	}
	if len(last) != 1 || math.Abs(last[0].X-1.03) > 1e-6 {
		t.Errorf("last frame = %v", last)
	}
}

func TestList(t *testing.T) {
	store := New(t.TempDir())
	if err := store.Init(); err != nil {
		t.Fatal(err)
	}

	runs, err := store.List()
	if err != nil {
		t.Fatal(err)
	}
	if len(runs) != 0 {
		t.Errorf("expected empty store, got %d runs", len(runs))
	}

	if _, err := store.SaveResult("duffing", "rk4", 0.01, 1, testResult()); err != nil {
		t.Fatal(err)
	}

	runs, err = store.List()
	if err != nil {
		t.Fatal(err)
	}
	if len(runs) != 1 {
		t.Fatalf("expected 1 run, got %d", len(runs))
	}
}

func TestLoadMissingRun(t *testing.T) {
	store := New(t.TempDir())
	if _, err := store.Load("no_such_run"); err == nil {
		t.Error("expected error for missing run")
	}
}

func TestRecorders(t *testing.T) {
	var fr FrameRecorder
	var pr PressureRecorder

	if err := fr.OnFrame(gas.Frame{Step: 0}); err != nil {
		t.Fatal(err)
	}
	if err := fr.OnFrame(gas.Frame{Step: 1}); err != nil {
		t.Fatal(err)
	}
	if len(fr.Frames) != 2 || fr.Frames[1].Step != 1 {
		t.Errorf("frames = %v", fr.Frames)
	}

	if err := pr.OnPressure(0.01, 2.5); err != nil {
		t.Fatal(err)
	}
	if len(pr.Times) != 1 || pr.Pressures[0] != 2.5 {
		t.Errorf("series = %v %v", pr.Times, pr.Pressures)
	}
}

func TestExportJSON(t *testing.T) {
	store := New(t.TempDir())
	if err := store.Init(); err != nil {
		t.Fatal(err)
	}

	runID, err := store.SaveResult("duffing", "rk4", 0.01, 1, testResult())
	if err != nil {
		t.Fatal(err)
	}

	var buf bytes.Buffer
	if err := store.ExportJSON(runID, &buf); err != nil {
		t.Fatalf("export: %v", err)
	}

	var export RunExport
	if err := json.Unmarshal(buf.Bytes(), &export); err != nil {
		t.Fatalf("unmarshal: %v", err)
	}
	if export.Metadata.Model != "duffing" {
		t.Errorf("model = %s", export.Metadata.Model)
	}
	if len(export.States) != 3 {
		t.Errorf("states = %d", len(export.States))
	}
	if !strings.Contains(buf.String(), "\"metadata\"") {
		t.Error("expected metadata key in output")
	}
}

func TestFrameDB(t *testing.T) {
	path := t.TempDir() + "/frames.db"
	db, err := OpenFrameDB(path)
	if err != nil {
		t.Fatalf("open: %v", err)
	}
	defer db.Close()

	frames := []gas.Frame{
		{Step: 0, Time: 0, Energy: 4.5, Pressure: 0,
			Particles: []gas.FrameParticle{{X: 1, Y: 2, Speed: 3}, {X: -1, Y: -2, Speed: 1}}},
		{Step: 1, Time: 0.01, Energy: 4.5, Pressure: 2.0,
			Particles: []gas.FrameParticle{{X: 1.03, Y: 2, Speed: 3}, {X: -1.01, Y: -2, Speed: 1}}},
	}
	for _, f := range frames {
		if err := db.OnFrame(f); err != nil {
			t.Fatalf("insert frame %d: %v", f.Step, err)
		}
	}

	particles, err := db.LoadFrame(1)
	if err != nil {
		t.Fatalf("load frame: %v", err)
	}
	if len(particles) != 2 {
		t.Fatalf("got %d particles", len(particles))
	}
	if math.Abs(particles[0].X-1.03) > 1e-9 {
		t.Errorf("particle 0 x = %f", particles[0].X)
	}

	times, pressures, err := db.LoadPressureSeries()
	if err != nil {
		t.Fatalf("load series: %v", err)
	}
	if len(times) != 2 || pressures[1] != 2.0 {
		t.Errorf("series = %v %v", times, pressures)
	}

	if _, err := db.LoadFrame(99); err == nil {
		t.Error("expected error for missing frame")
	}
}
