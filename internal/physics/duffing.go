package physics

import (
	"fmt"
	"math"

	"github.com/sansuarezs055/gaslab/internal/dynamo"
)

// CoupledDuffing models two Duffing oscillators joined by a linear spring.
// State layout: [x1, x2, y1, y2] (positions then velocities).
//
// Oscillator 1 carries the periodic forcing term gamma*cos(omega*t);
// oscillator 2 is driven only through the coupling.
type CoupledDuffing struct {
	Alpha    float64    // linear restoring term (negative = double well)
	Beta     float64    // cubic nonlinearity
	Gamma    float64    // forcing amplitude
	Omega    float64    // forcing frequency
	Coupling float64    // spring constant between the oscillators
	Mass     [2]float64 // oscillator masses
	Damping  [2]float64 // friction coefficients
}

// NewCoupledDuffing returns the double-well configuration with weak damping
// and no coupling.
func NewCoupledDuffing() *CoupledDuffing {
	return &CoupledDuffing{
		Alpha:    -1.0,
		Beta:     3.0,
		Gamma:    1.5,
		Omega:    0.6,
		Coupling: 0.0,
		Mass:     [2]float64{1.0, 1.0},
		Damping:  [2]float64{0.05, 0.05},
	}
}

func (d *CoupledDuffing) StateDim() int { return 4 }

func (d *CoupledDuffing) Derive(s dynamo.State, t float64) dynamo.State {
	if len(s) < 4 {
		return make(dynamo.State, 4)
	}
	x1, x2, y1, y2 := s[0], s[1], s[2], s[3]

	dy1 := -(y1*d.Damping[0] + d.Mass[0]*d.Alpha*x1 + d.Beta*x1*x1*x1 + d.Coupling*(x1-x2) + d.Gamma*math.Cos(d.Omega*t)) / d.Mass[0]
	dy2 := -(y2*d.Damping[1] + d.Mass[1]*d.Alpha*x2 + d.Beta*x2*x2*x2 + d.Coupling*(x2-x1)) / d.Mass[1]

	return dynamo.State{y1, y2, dy1, dy2}
}

// DefaultState displaces each oscillator slightly off a well bottom.
func (d *CoupledDuffing) DefaultState() dynamo.State {
	return dynamo.State{-0.9999, 1.0001, 0.0, 0.0}
}

// Energy is the conservative part of the Hamiltonian (kinetic + double-well
// potential + coupling spring). Damping and forcing make it drift; it is
// tracked diagnostically, not conserved.
func (d *CoupledDuffing) Energy(s dynamo.State) float64 {
	if len(s) < 4 {
		return 0
	}
	x1, x2, y1, y2 := s[0], s[1], s[2], s[3]
	e := 0.5*d.Mass[0]*y1*y1 + 0.5*d.Mass[0]*d.Alpha*x1*x1 + 0.25*d.Beta*x1*x1*x1*x1
	e += 0.5*d.Mass[1]*y2*y2 + 0.5*d.Mass[1]*d.Alpha*x2*x2 + 0.25*d.Beta*x2*x2*x2*x2
	e += 0.5 * d.Coupling * (x1 - x2) * (x1 - x2)
	return e
}

func (d *CoupledDuffing) GetParams() map[string]float64 {
	return map[string]float64{
		"alpha":    d.Alpha,
		"beta":     d.Beta,
		"gamma":    d.Gamma,
		"omega":    d.Omega,
		"coupling": d.Coupling,
	}
}

func (d *CoupledDuffing) SetParam(name string, v float64) error {
	switch name {
	case "alpha":
		d.Alpha = v
	case "beta":
		d.Beta = v
	case "gamma":
		d.Gamma = v
	case "omega":
		d.Omega = v
	case "coupling":
		d.Coupling = v
	default:
		return fmt.Errorf("duffing: unknown parameter %q", name)
	}
	return nil
}
