package config

import (
	"os"

	"gopkg.in/yaml.v3"

	"github.com/sansuarezs055/gaslab/internal/gas"
	"github.com/sansuarezs055/gaslab/internal/physics"
)

const (
	DefaultDt    = 0.01
	DefaultSteps = 300
	DefaultSide  = 10.0
	DefaultN     = 16
	DefaultVMax  = 2.0
)

// Config describes one run of either simulation. Zero fields fall back to
// the defaults; CLI flags override file values at the command layer.
type Config struct {
	Model      string        `yaml:"model"` // "gas" or "duffing"
	Integrator string        `yaml:"integrator"`
	Dt         float64       `yaml:"dt"`
	Steps      int           `yaml:"steps"`
	Seed       int64         `yaml:"seed"`
	Gas        GasConfig     `yaml:"gas"`
	Duffing    DuffingConfig `yaml:"duffing"`
}

type GasConfig struct {
	Side   float64 `yaml:"side"`
	N      int     `yaml:"particles"`
	VMax   float64 `yaml:"vmax"`
	Radius float64 `yaml:"radius"`
	Mass   float64 `yaml:"mass"`
}

type DuffingConfig struct {
	Alpha    float64    `yaml:"alpha"`
	Beta     float64    `yaml:"beta"`
	Gamma    float64    `yaml:"gamma"`
	Omega    float64    `yaml:"omega"`
	Coupling float64    `yaml:"coupling"`
	Mass     [2]float64 `yaml:"mass"`
	Damping  [2]float64 `yaml:"damping"`
	X1       float64    `yaml:"x1"`
	X2       float64    `yaml:"x2"`
	Y1       float64    `yaml:"y1"`
	Y2       float64    `yaml:"y2"`
}

func DefaultConfig() *Config {
	return &Config{
		Model:      "gas",
		Integrator: "rk4",
		Dt:         DefaultDt,
		Steps:      DefaultSteps,
		Gas: GasConfig{
			Side:   DefaultSide,
			N:      DefaultN,
			VMax:   DefaultVMax,
			Radius: gas.SuggestedRadius(DefaultSide, DefaultN),
			Mass:   1.0,
		},
		Duffing: DuffingConfig{
			Alpha:   -1.0,
			Beta:    3.0,
			Gamma:   1.5,
			Omega:   0.6,
			Mass:    [2]float64{1, 1},
			Damping: [2]float64{0.05, 0.05},
			X1:      -0.9999,
			X2:      1.0001,
		},
	}
}

func Load(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	cfg := DefaultConfig()
	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, err
	}
	return cfg, nil
}

func Save(path string, cfg *Config) error {
	data, err := yaml.Marshal(cfg)
	if err != nil {
		return err
	}
	return os.WriteFile(path, data, 0644)
}

// GasConfig converts to the gas package's run configuration.
func (c *Config) GasConfig() gas.Config {
	return gas.Config{
		Side:          c.Gas.Side,
		N:             c.Gas.N,
		VMax:          c.Gas.VMax,
		Radius:        c.Gas.Radius,
		Mass:          c.Gas.Mass,
		Dt:            c.Dt,
		Steps:         c.Steps,
		Seed:          c.Seed,
		ValidateState: true,
	}
}

// DuffingSystem builds the oscillator pair from the config.
func (c *Config) DuffingSystem() *physics.CoupledDuffing {
	d := physics.NewCoupledDuffing()
	d.Alpha = c.Duffing.Alpha
	d.Beta = c.Duffing.Beta
	d.Gamma = c.Duffing.Gamma
	d.Omega = c.Duffing.Omega
	d.Coupling = c.Duffing.Coupling
	d.Mass = c.Duffing.Mass
	d.Damping = c.Duffing.Damping
	return d
}

// DuffingInitState returns the [x1, x2, y1, y2] initial state.
func (c *Config) DuffingInitState() []float64 {
	return []float64{c.Duffing.X1, c.Duffing.X2, c.Duffing.Y1, c.Duffing.Y2}
}
