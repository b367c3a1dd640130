package config

import "sort"

var Presets = map[string]map[string]*Config{
	"rotation": {
		"unit": {
			Field: "rotation", Seed: SeedConfig{X: 1, Y: 0}, MaxSteps: 1000,
		},
		"wide": {
			Field: "rotation", Seed: SeedConfig{X: 5, Y: 0}, MaxSteps: 2000,
		},
	},
	"spiral_sink": {
		"inward": {
			Field: "spiral_sink", Seed: SeedConfig{X: 8, Y: 0}, MaxSteps: 3000,
		},
		"near_origin": {
			Field: "spiral_sink", Seed: SeedConfig{X: 0.5, Y: 0.5}, MaxSteps: 1500,
		},
	},
	"saddle": {
		"off_axis": {
			Field: "saddle", Seed: SeedConfig{X: 0.1, Y: 3}, MaxSteps: 1000,
		},
		"stable_manifold": {
			Field: "saddle", Seed: SeedConfig{X: 0, Y: 5}, MaxSteps: 1000,
		},
	},
	"vanderpol": {
		"limit_cycle": {
			Field: "vanderpol", Seed: SeedConfig{X: 0.1, Y: 0}, MaxSteps: 3000,
			Bounds: BoundsConfig{MinX: -4, MinY: -4, MaxX: 4, MaxY: 4},
		},
		"stiff": {
			Field: "vanderpol", Params: map[string]float64{"mu": 5},
			Seed: SeedConfig{X: 0.1, Y: 0}, MaxSteps: 5000,
			Bounds: BoundsConfig{MinX: -8, MinY: -8, MaxX: 8, MaxY: 8},
		},
	},
	"pendulum": {
		"libration": {
			Field: "pendulum", Seed: SeedConfig{X: 0.5, Y: 0}, MaxSteps: 2000,
			Bounds: BoundsConfig{MinX: -7, MinY: -4, MaxX: 7, MaxY: 4},
		},
		"separatrix": {
			Field: "pendulum", Seed: SeedConfig{X: 3.1, Y: 0}, MaxSteps: 3000,
			Bounds: BoundsConfig{MinX: -7, MinY: -4, MaxX: 7, MaxY: 4},
		},
		"damped": {
			Field: "pendulum", Params: map[string]float64{"damping": 0.3},
			Seed: SeedConfig{X: 2.5, Y: 0}, MaxSteps: 3000,
			Bounds: BoundsConfig{MinX: -7, MinY: -4, MaxX: 7, MaxY: 4},
		},
	},
	"duffing": {
		"two_wells": {
			Field: "duffing", Seed: SeedConfig{X: 0.1, Y: 0.1}, MaxSteps: 3000,
			Bounds: BoundsConfig{MinX: -3, MinY: -3, MaxX: 3, MaxY: 3},
		},
	},
}

// GetPreset returns a copy of the named preset with defaults filled, or
// nil if it does not exist.
func GetPreset(fieldName, presetName string) *Config {
	group, ok := Presets[fieldName]
	if !ok {
		return nil
	}
	p, ok := group[presetName]
	if !ok {
		return nil
	}

	cfg := DefaultConfig()
	cfg.Field = p.Field
	cfg.Seed = p.Seed
	if p.MaxSteps != 0 {
		cfg.MaxSteps = p.MaxSteps
	}
	if p.Bounds != (BoundsConfig{}) {
		cfg.Bounds = p.Bounds
	}
	if len(p.Params) > 0 {
		cfg.Params = p.Params
	}
	return cfg
}

// ListPresets names the presets available for a field.
func ListPresets(fieldName string) []string {
	group, ok := Presets[fieldName]
	if !ok {
		return nil
	}
	names := make([]string, 0, len(group))
	for name := range group {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}
