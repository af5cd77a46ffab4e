package gas

import "math"

// Particle is one hard disk. Velocity changes only through collisions and
// wall reflections; there is no force field.
type Particle struct {
	Mass   float64
	X, Y   float64
	VX, VY float64
	Radius float64
}

func NewParticle(mass, x, y, vx, vy, radius float64) Particle {
	return Particle{Mass: mass, X: x, Y: y, VX: vx, VY: vy, Radius: radius}
}

// Speed is always recomputed from the velocity components.
func (p *Particle) Speed() float64 {
	return math.Sqrt(p.VX*p.VX + p.VY*p.VY)
}

// Heading is the velocity angle relative to the x-axis. Purely derived;
// never stored, so it cannot go stale.
func (p *Particle) Heading() float64 {
	return math.Atan2(p.VY, p.VX)
}

// Advance translates the particle by one Euler step.
func (p *Particle) Advance(dt float64) {
	p.X += p.VX * dt
	p.Y += p.VY * dt
}

// ReflectWalls checks both axes independently against the box walls. An
// edge within Radius of a wall flips that axis's velocity component and
// reports m·(vx²+vy²) to the box's pressure accumulator. A particle deep in
// a corner reflects on both axes and reports twice.
func (p *Particle) ReflectWalls(box *Box) {
	if (p.X-box.XMin) <= p.Radius || (box.XMax-p.X) <= p.Radius {
		p.VX = -p.VX
		box.AccumulateImpact(p.Mass * (p.VX*p.VX + p.VY*p.VY))
	}
	if (p.Y-box.YMin) <= p.Radius || (box.YMax-p.Y) <= p.Radius {
		p.VY = -p.VY
		box.AccumulateImpact(p.Mass * (p.VX*p.VX + p.VY*p.VY))
	}
}

// Collide resolves an elastic collision with another disk when the centers
// are within the sum of the radii. The normal-direction velocity components
// are fully exchanged, which is the equal-mass exchange rule; tangential
// components are untouched. Masses are ignored by the exchange on purpose:
// the model assumes uniform unit masses.
//
// Each unordered pair must be resolved at most once per step; resolving the
// same overlapping pair twice swaps the normal components back.
func (p *Particle) Collide(other *Particle) {
	dx := other.X - p.X
	dy := other.Y - p.Y
	dist2 := dx*dx + dy*dy
	rsum := p.Radius + other.Radius

	if dist2 > rsum*rsum {
		return
	}

	dist := math.Sqrt(dist2)
	if dist == 0 {
		// Perfectly overlapping centers: the contact normal is undefined.
		return
	}

	nx := dx / dist
	ny := dy / dist

	vn1 := p.VX*nx + p.VY*ny
	vn2 := other.VX*nx + other.VY*ny

	p.VX += (vn2 - vn1) * nx
	p.VY += (vn2 - vn1) * ny
	other.VX += (vn1 - vn2) * nx
	other.VY += (vn1 - vn2) * ny
}

// KineticEnergy of this particle alone.
func (p *Particle) KineticEnergy() float64 {
	return 0.5 * p.Mass * (p.VX*p.VX + p.VY*p.VY)
}
