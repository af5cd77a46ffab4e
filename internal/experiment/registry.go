package experiment

import (
	"fmt"

	"github.com/sansuarezs055/gaslab/internal/dynamo"
	"github.com/sansuarezs055/gaslab/internal/integrators"
	"github.com/sansuarezs055/gaslab/internal/metrics"
	"github.com/sansuarezs055/gaslab/internal/physics"
)

// Registry maps names to trajectory model and integrator constructors.
type Registry struct {
	models      map[string]func() dynamo.System
	integrators map[string]func() dynamo.Integrator
}

func NewRegistry() *Registry {
	r := &Registry{
		models:      make(map[string]func() dynamo.System),
		integrators: make(map[string]func() dynamo.Integrator),
	}

	r.models["duffing"] = func() dynamo.System { return physics.NewCoupledDuffing() }

	r.integrators["euler"] = func() dynamo.Integrator { return integrators.NewEuler() }
	r.integrators["rk4"] = func() dynamo.Integrator { return integrators.NewRK4() }

	return r
}

func (r *Registry) GetModel(name string) (dynamo.System, error) {
	fn, ok := r.models[name]
	if !ok {
		return nil, fmt.Errorf("unknown model: %s", name)
	}
	return fn(), nil
}

func (r *Registry) GetIntegrator(name string) (dynamo.Integrator, error) {
	fn, ok := r.integrators[name]
	if !ok {
		return nil, fmt.Errorf("unknown integrator: %s", name)
	}
	return fn(), nil
}

func (r *Registry) ListModels() []string {
	names := make([]string, 0, len(r.models))
	for name := range r.models {
		names = append(names, name)
	}
	return names
}

func (r *Registry) ListIntegrators() []string {
	names := make([]string, 0, len(r.integrators))
	for name := range r.integrators {
		names = append(names, name)
	}
	return names
}

// DefaultMetrics is the metric set attached to every trajectory run.
func (r *Registry) DefaultMetrics(dyn dynamo.System) []dynamo.Metric {
	return []dynamo.Metric{
		metrics.NewEnergyDrift(dyn),
		metrics.NewStability(10.0),
	}
}
