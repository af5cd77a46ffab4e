package analysis

import "math"

// SpeedHistogram bins a set of particle speeds into equal-width buckets
// over [min, max]. Non-finite and non-positive speeds are dropped, the way
// the rendering pipeline expects.
type SpeedHistogram struct {
	Bins  []float64 // counts per bucket
	Min   float64
	Max   float64
	Width float64
	Total int // speeds actually binned
}

// NewSpeedHistogram builds a histogram with the given number of buckets.
func NewSpeedHistogram(speeds []float64, bins int) *SpeedHistogram {
	if bins <= 0 {
		bins = 1
	}

	min, max := math.Inf(1), math.Inf(-1)
	kept := make([]float64, 0, len(speeds))
	for _, v := range speeds {
		if !isUsableSpeed(v) {
			continue
		}
		kept = append(kept, v)
		if v < min {
			min = v
		}
		if v > max {
			max = v
		}
	}

	h := &SpeedHistogram{Bins: make([]float64, bins)}
	if len(kept) == 0 {
		return h
	}
	if max-min <= 1e-9 {
		max = min + 1e-9
	}

	h.Min = min
	h.Max = max
	h.Width = (max - min) / float64(bins)

	for _, v := range kept {
		idx := int((v - min) / h.Width)
		if idx >= bins {
			idx = bins - 1
		}
		h.Bins[idx]++
		h.Total++
	}
	return h
}

// BinCenter returns the speed at the middle of bucket i.
func (h *SpeedHistogram) BinCenter(i int) float64 {
	return h.Min + (float64(i)+0.5)*h.Width
}

func isUsableSpeed(v float64) bool {
	return !math.IsNaN(v) && !math.IsInf(v, 0) && v > 0
}

// EstimateKT estimates the temperature parameter kT from the mean kinetic
// energy. In 2D each particle carries two quadratic degrees of freedom, so
// <KE> = kT.
func EstimateKT(speeds []float64, mass float64) float64 {
	n := 0
	sum := 0.0
	for _, v := range speeds {
		if !isUsableSpeed(v) {
			continue
		}
		sum += 0.5 * mass * v * v
		n++
	}
	if n == 0 {
		return 0
	}
	return sum / float64(n)
}

// MaxwellBoltzmann2D is the equilibrium speed density for a 2D gas:
// P(v) = (m v / kT) exp(-m v² / 2kT).
func MaxwellBoltzmann2D(v, mass, kT float64) float64 {
	if kT <= 0 || v < 0 {
		return 0
	}
	return (mass * v / kT) * math.Exp(-mass*v*v/(2*kT))
}
