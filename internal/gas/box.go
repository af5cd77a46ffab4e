package gas

import "fmt"

// Box is the fixed rectangular container plus its pressure bookkeeping.
// Wall impacts feed the accumulators during a step; FinalizePressure turns
// them into the step's average. Extents never change after construction.
type Box struct {
	XMin, XMax float64
	YMin, YMax float64

	impulseSum float64 // running sum of m·v²/3 contributions this window
	impacts    int     // wall-impact events this window
	pressure   float64 // last finalized average
}

func NewBox(xmin, xmax, ymin, ymax float64) (*Box, error) {
	if xmin >= xmax || ymin >= ymax {
		return nil, fmt.Errorf("gas: degenerate box extents [%g,%g]x[%g,%g]", xmin, xmax, ymin, ymax)
	}
	return &Box{XMin: xmin, XMax: xmax, YMin: ymin, YMax: ymax}, nil
}

// NewSquareBox builds a box of the given side centered on the origin.
func NewSquareBox(side float64) (*Box, error) {
	half := side / 2.0
	return NewBox(-half, half, -half, half)
}

// ResetAccumulators zeroes the impact sum and count for a new window.
// The last finalized pressure is deliberately left intact so it survives
// windows with no impacts.
func (b *Box) ResetAccumulators() {
	b.impulseSum = 0
	b.impacts = 0
}

// AccumulateImpact records one wall-impact event. mv2 is the particle's
// mass times its squared speed; each axis of a reflection reports once, so
// a corner hit contributes twice.
func (b *Box) AccumulateImpact(mv2 float64) {
	b.impulseSum += mv2 / 3
	b.impacts++
}

// FinalizePressure averages the window's impact contributions. A window
// with no impacts keeps the previous finalized value rather than dividing
// by zero.
func (b *Box) FinalizePressure() {
	if b.impacts == 0 {
		return
	}
	b.pressure = b.impulseSum / float64(b.impacts)
}

func (b *Box) Pressure() float64 { return b.pressure }

// Impacts reports the number of wall-impact events in the current window.
func (b *Box) Impacts() int { return b.impacts }

func (b *Box) Width() float64  { return b.XMax - b.XMin }
func (b *Box) Height() float64 { return b.YMax - b.YMin }
