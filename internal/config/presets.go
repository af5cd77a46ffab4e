package config

// Presets maps model -> preset name -> configuration.
var Presets = map[string]map[string]*Config{
	"gas": {
		"dilute": {
			Model: "gas", Dt: 0.01, Steps: 300,
			Gas: GasConfig{Side: 20, N: 9, VMax: 2, Radius: 0.5, Mass: 1},
		},
		"dense": {
			Model: "gas", Dt: 0.005, Steps: 600,
			Gas: GasConfig{Side: 10, N: 64, VMax: 2, Radius: 0.55, Mass: 1},
		},
		"hot": {
			Model: "gas", Dt: 0.002, Steps: 1000,
			Gas: GasConfig{Side: 10, N: 25, VMax: 8, Radius: 0.9, Mass: 1},
		},
	},
	"duffing": {
		"chaotic": {
			Model: "duffing", Integrator: "rk4", Dt: 0.01, Steps: 7000,
			Duffing: DuffingConfig{
				Alpha: -1, Beta: 3, Gamma: 1.5, Omega: 0.6,
				Mass: [2]float64{1, 1}, Damping: [2]float64{0.05, 0.05},
				X1: -0.9999, X2: 1.0001,
			},
		},
		"coupled": {
			Model: "duffing", Integrator: "rk4", Dt: 0.01, Steps: 7000,
			Duffing: DuffingConfig{
				Alpha: -1, Beta: 3, Gamma: 1.5, Omega: 0.6, Coupling: 0.5,
				Mass: [2]float64{1, 1}, Damping: [2]float64{0.05, 0.05},
				X1: -0.9999, X2: 1.0001,
			},
		},
		"gentle": {
			Model: "duffing", Integrator: "rk4", Dt: 0.01, Steps: 3000,
			Duffing: DuffingConfig{
				Alpha: 1, Beta: 0.2, Gamma: 0.3, Omega: 1.0,
				Mass: [2]float64{1, 1}, Damping: [2]float64{0.1, 0.1},
				X1: 0.5, X2: -0.5,
			},
		},
	},
}

func GetPreset(model, preset string) *Config {
	modelPresets, ok := Presets[model]
	if !ok {
		return nil
	}
	cfg, ok := modelPresets[preset]
	if !ok {
		return nil
	}
	return cfg
}

func ListPresets(model string) []string {
	modelPresets, ok := Presets[model]
	if !ok {
		return nil
	}
	names := make([]string, 0, len(modelPresets))
	for name := range modelPresets {
		names = append(names, name)
	}
	return names
}
