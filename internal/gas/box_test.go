package gas

import (
	"math"
	"testing"
)

func TestNewBoxValidation(t *testing.T) {
	tests := []struct {
		name                   string
		xmin, xmax, ymin, ymax float64
		wantErr                bool
	}{
		{"valid", -5, 5, -5, 5, false},
		{"flat x", 5, 5, -5, 5, true},
		{"inverted x", 5, -5, -5, 5, true},
		{"inverted y", -5, 5, 5, -5, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := NewBox(tt.xmin, tt.xmax, tt.ymin, tt.ymax)
			if (err != nil) != tt.wantErr {
				t.Errorf("NewBox error = %v, wantErr %v", err, tt.wantErr)
			}
		})
	}
}

func TestPressureAccumulation(t *testing.T) {
	box, err := NewSquareBox(10)
	if err != nil {
		t.Fatal(err)
	}

	box.ResetAccumulators()
	impacts := []float64{1.0, 2.0, 4.5}
	sum := 0.0
	for _, mv2 := range impacts {
		box.AccumulateImpact(mv2)
		sum += mv2 / 3
	}
	box.FinalizePressure()

	want := sum / float64(len(impacts))
	if math.Abs(box.Pressure()-want) > 1e-15 {
		t.Errorf("pressure = %.15f, want %.15f", box.Pressure(), want)
	}
	if box.Impacts() != 3 {
		t.Errorf("impacts = %d, want 3", box.Impacts())
	}
}

func TestPressureZeroImpactRetainsPrevious(t *testing.T) {
	box, err := NewSquareBox(10)
	if err != nil {
		t.Fatal(err)
	}

	box.ResetAccumulators()
	box.AccumulateImpact(3.0)
	box.FinalizePressure()
	prev := box.Pressure()
	if prev != 1.0 {
		t.Fatalf("pressure = %f, want 1", prev)
	}

	// A quiet window must not disturb the finalized value.
	box.ResetAccumulators()
	box.FinalizePressure()
	if box.Pressure() != prev {
		t.Errorf("pressure after empty window = %f, want %f", box.Pressure(), prev)
	}
}

func TestResetClearsAccumulatorsOnly(t *testing.T) {
	box, _ := NewSquareBox(10)

	box.ResetAccumulators()
	box.AccumulateImpact(6.0)
	box.FinalizePressure()

	box.ResetAccumulators()
	if box.Impacts() != 0 {
		t.Errorf("impacts after reset = %d", box.Impacts())
	}
	if box.Pressure() != 2.0 {
		t.Errorf("finalized pressure should survive reset, got %f", box.Pressure())
	}
}
