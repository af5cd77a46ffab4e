package gas

import (
	"context"
	"fmt"
	"math"
	"math/rand"
)

// Config holds the parameters of one gas run.
type Config struct {
	Side          float64 // box side length, box centered on the origin
	N             int     // particle count
	VMax          float64 // initial speeds sampled uniformly from [0, VMax)
	Radius        float64 // disk radius, must fit inside a grid cell
	Mass          float64 // per-particle mass (uniform); 0 means 1.0
	Dt            float64
	Steps         int
	Seed          int64
	ValidateState bool
}

// GridCells is the side of the initialization grid: ceil(sqrt(n)).
func GridCells(n int) int {
	return int(math.Ceil(math.Sqrt(float64(n))))
}

// MaxRadius is the largest admissible disk radius: half a grid cell.
func MaxRadius(side float64, n int) float64 {
	return side / (2.0 * float64(GridCells(n)))
}

// SuggestedRadius is the conventional safe choice, 90% of the maximum.
func SuggestedRadius(side float64, n int) float64 {
	return 0.9 * MaxRadius(side, n)
}

func (c Config) validate() error {
	if c.Side <= 0 {
		return fmt.Errorf("gas: box side must be positive, got %g", c.Side)
	}
	if c.N <= 0 {
		return fmt.Errorf("gas: particle count must be positive, got %d", c.N)
	}
	if c.VMax < 0 {
		return fmt.Errorf("gas: max speed must be non-negative, got %g", c.VMax)
	}
	if c.Dt <= 0 {
		return fmt.Errorf("gas: dt must be positive, got %g", c.Dt)
	}
	if c.Steps <= 0 {
		return fmt.Errorf("gas: steps must be positive, got %d", c.Steps)
	}
	if maxR := MaxRadius(c.Side, c.N); c.Radius <= 0 || c.Radius >= maxR {
		return fmt.Errorf("gas: radius %g out of range (0, %g); suggested %g",
			c.Radius, maxR, SuggestedRadius(c.Side, c.N))
	}
	return nil
}

// FrameParticle is one particle's contribution to a frame snapshot.
type FrameParticle struct {
	X, Y  float64
	Speed float64
}

// Frame is the per-step snapshot handed to frame sinks. Particle order is
// stable across frames (creation index).
type Frame struct {
	Step      int
	Time      float64
	Particles []FrameParticle
	Energy    float64
	Pressure  float64 // last finalized value at frame time
}

// FrameSink receives one full snapshot per step, in step order.
type FrameSink interface {
	OnFrame(f Frame) error
}

// SeriesSink receives one (time, pressure) point per step, in increasing
// time order.
type SeriesSink interface {
	OnPressure(t, p float64) error
}

// Simulation drives n hard disks inside one box for a fixed number of
// steps. All state is owned by a single goroutine for the whole run.
type Simulation struct {
	cfg       Config
	box       *Box
	particles []Particle
	step      int
	frames    []FrameSink
	series    []SeriesSink
}

// New validates the configuration, builds the box, and places the
// particles on a centered ceil(sqrt(n))×ceil(sqrt(n)) grid with seeded
// uniform random speed and heading.
func New(cfg Config) (*Simulation, error) {
	if err := cfg.validate(); err != nil {
		return nil, err
	}
	if cfg.Mass == 0 {
		cfg.Mass = 1.0
	}

	box, err := NewSquareBox(cfg.Side)
	if err != nil {
		return nil, err
	}

	rng := rand.New(rand.NewSource(cfg.Seed))
	cells := GridCells(cfg.N)
	half := cfg.Side / 2.0
	cell := cfg.Side / float64(cells)

	particles := make([]Particle, 0, cfg.N)
	for i := 0; i < cells && len(particles) < cfg.N; i++ {
		for j := 0; j < cells && len(particles) < cfg.N; j++ {
			x := -half + (float64(i)+0.5)*cell
			y := -half + (float64(j)+0.5)*cell

			ang := 2 * math.Pi * rng.Float64()
			v := cfg.VMax * rng.Float64()

			particles = append(particles,
				NewParticle(cfg.Mass, x, y, v*math.Cos(ang), v*math.Sin(ang), cfg.Radius))
		}
	}

	return &Simulation{
		cfg:       cfg,
		box:       box,
		particles: particles,
	}, nil
}

func (s *Simulation) AddFrameSink(f FrameSink)   { s.frames = append(s.frames, f) }
func (s *Simulation) AddSeriesSink(e SeriesSink) { s.series = append(s.series, e) }

func (s *Simulation) Box() *Box             { return s.box }
func (s *Simulation) Particles() []Particle { return s.particles }
func (s *Simulation) Config() Config        { return s.cfg }
func (s *Simulation) StepCount() int        { return s.step }
func (s *Simulation) Time() float64         { return float64(s.step) * s.cfg.Dt }

// KineticEnergy is the total kinetic energy. Diagnostic only; it does not
// feed back into the dynamics.
func (s *Simulation) KineticEnergy() float64 {
	total := 0.0
	for i := range s.particles {
		total += s.particles[i].KineticEnergy()
	}
	return total
}

// Step runs one pass: snapshot, reset accumulators, resolve every unordered
// pair once (i<j), reflect off walls, advance, finalize pressure, emit the
// pressure sample.
func (s *Simulation) Step() error {
	t := s.Time()

	if err := s.emitFrame(t); err != nil {
		return err
	}

	s.box.ResetAccumulators()

	n := len(s.particles)
	for i := 0; i < n; i++ {
		for j := i + 1; j < n; j++ {
			s.particles[i].Collide(&s.particles[j])
		}
		s.particles[i].ReflectWalls(s.box)
		s.particles[i].Advance(s.cfg.Dt)
	}

	s.box.FinalizePressure()

	if s.cfg.ValidateState {
		if err := s.checkFinite(t); err != nil {
			return err
		}
	}

	for _, sink := range s.series {
		if err := sink.OnPressure(t, s.box.Pressure()); err != nil {
			return err
		}
	}

	s.step++
	return nil
}

// Run executes cfg.Steps steps, checking for cancellation between steps.
func (s *Simulation) Run(ctx context.Context) error {
	for i := 0; i < s.cfg.Steps; i++ {
		select {
		case <-ctx.Done():
			return ctx.Err()
		default:
		}
		if err := s.Step(); err != nil {
			return err
		}
	}
	return nil
}

func (s *Simulation) emitFrame(t float64) error {
	if len(s.frames) == 0 {
		return nil
	}

	frame := Frame{
		Step:      s.step,
		Time:      t,
		Particles: make([]FrameParticle, len(s.particles)),
		Energy:    s.KineticEnergy(),
		Pressure:  s.box.Pressure(),
	}
	for i := range s.particles {
		p := &s.particles[i]
		frame.Particles[i] = FrameParticle{X: p.X, Y: p.Y, Speed: p.Speed()}
	}

	for _, sink := range s.frames {
		if err := sink.OnFrame(frame); err != nil {
			return err
		}
	}
	return nil
}

func (s *Simulation) checkFinite(t float64) error {
	for i := range s.particles {
		p := &s.particles[i]
		for _, v := range [4]float64{p.X, p.Y, p.VX, p.VY} {
			if math.IsNaN(v) || math.IsInf(v, 0) {
				return fmt.Errorf("gas: non-finite state for particle %d at step %d (t=%.4f)", i, s.step, t)
			}
		}
	}
	return nil
}
