package physics

import (
	"math"
	"testing"

	"github.com/sansuarezs055/gaslab/internal/dynamo"
	"github.com/sansuarezs055/gaslab/internal/integrators"
)

func TestCoupledDuffingDerive(t *testing.T) {
	d := NewCoupledDuffing()

	// At rest on a well bottom with no forcing, acceleration vanishes.
	d.Gamma = 0
	wellX := math.Sqrt(-d.Alpha / d.Beta)
	dx := d.Derive(dynamo.State{wellX, -wellX, 0, 0}, 0)

	for i, v := range dx {
		if math.Abs(v) > 1e-12 {
			t.Errorf("component %d: expected 0 at well bottom, got %g", i, v)
		}
	}
}

func TestCoupledDuffingForcingAsymmetry(t *testing.T) {
	// The periodic forcing acts on oscillator 1 only.
	d := NewCoupledDuffing()
	dx := d.Derive(dynamo.State{0, 0, 0, 0}, 0)

	if math.Abs(dx[2]-(-d.Gamma)) > 1e-12 {
		t.Errorf("oscillator 1 acceleration: got %g, want %g", dx[2], -d.Gamma)
	}
	if dx[3] != 0 {
		t.Errorf("oscillator 2 should feel no forcing, got %g", dx[3])
	}
}

func TestCoupledDuffingCouplingSymmetry(t *testing.T) {
	d := NewCoupledDuffing()
	d.Gamma = 0
	d.Alpha = 0
	d.Beta = 0
	d.Damping = [2]float64{0, 0}
	d.Coupling = 2.0

	dx := d.Derive(dynamo.State{1, -1, 0, 0}, 0)

	// Spring pulls the oscillators together with equal and opposite force.
	if math.Abs(dx[2]+dx[3]) > 1e-12 {
		t.Errorf("coupling forces not opposite: %g vs %g", dx[2], dx[3])
	}
	if math.Abs(dx[2]-(-4.0)) > 1e-12 {
		t.Errorf("coupling force: got %g, want -4", dx[2])
	}
}

// TestCoupledDuffingGoldenTrajectory pins the deterministic RK4 trajectory
// for the reference parameter set. The system is chaotic, so any change to
// the derivative arithmetic or stage ordering shows up here.
func TestCoupledDuffingGoldenTrajectory(t *testing.T) {
	d := NewCoupledDuffing()
	integ := integrators.NewRK4()

	x := dynamo.State{-0.9999, 1.0001, 0.0, 0.0}
	dt := 0.01

	golden := map[int]struct {
		state dynamo.State
		tol   float64
	}{
		1:    {dynamo.State{-0.999875045593612, 0.999999983337209, 0.00499017782180832, -0.02000033229183}, 1e-9},
		10:   {dynamo.State{-0.997422453232233, 0.990178753696362, 0.0492248949120811, -0.1969473026798}, 1e-9},
		100:  {dynamo.State{-0.854359425202514, 0.396154344755963, 0.149640738674024, -0.760521013907645}, 1e-9},
		1000: {dynamo.State{-1.27802133814423, -0.766213523918529, -0.435433336468814, -0.484264805090475}, 1e-6},
	}

	tm := 0.0
	for step := 1; step <= 1000; step++ {
		x = integ.Step(d, x, tm, dt)
		tm += dt

		want, ok := golden[step]
		if !ok {
			continue
		}
		for i := range want.state {
			if math.Abs(x[i]-want.state[i]) > want.tol {
				t.Errorf("step %d component %d: got %.15g, want %.15g", step, i, x[i], want.state[i])
			}
		}
	}
}

func TestCoupledDuffingSetParam(t *testing.T) {
	d := NewCoupledDuffing()

	if err := d.SetParam("coupling", 1.5); err != nil {
		t.Fatalf("SetParam: %v", err)
	}
	if d.Coupling != 1.5 {
		t.Errorf("coupling not set: %f", d.Coupling)
	}
	if err := d.SetParam("bogus", 1.0); err == nil {
		t.Error("expected error for unknown parameter")
	}
}
