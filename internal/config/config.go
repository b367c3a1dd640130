package config

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"

	"github.com/shelvean/phaseflow/internal/field"
	"github.com/shelvean/phaseflow/internal/ode"
)

const (
	DefaultField     = "rotation"
	DefaultMaxSteps  = 2000
	DefaultTolerance = 1e-6
	DefaultSeedX     = 1.0
	DefaultSeedY     = 0.0
	DefaultExtent    = 10.0
)

type Config struct {
	Field     string             `yaml:"field"`
	Params    map[string]float64 `yaml:"params"`
	Seed      SeedConfig         `yaml:"seed"`
	MaxSteps  int                `yaml:"max_steps"`
	MinStep   float64            `yaml:"min_step"`
	MaxStep   float64            `yaml:"max_step"`
	Tolerance float64            `yaml:"tolerance"`
	Bounds    BoundsConfig       `yaml:"bounds"`
}

type SeedConfig struct {
	X float64 `yaml:"x"`
	Y float64 `yaml:"y"`
}

type BoundsConfig struct {
	MinX float64 `yaml:"min_x"`
	MinY float64 `yaml:"min_y"`
	MaxX float64 `yaml:"max_x"`
	MaxY float64 `yaml:"max_y"`
}

func DefaultConfig() *Config {
	return &Config{
		Field:     DefaultField,
		Seed:      SeedConfig{X: DefaultSeedX, Y: DefaultSeedY},
		MaxSteps:  DefaultMaxSteps,
		Tolerance: DefaultTolerance,
		Bounds: BoundsConfig{
			MinX: -DefaultExtent, MinY: -DefaultExtent,
			MaxX: DefaultExtent, MaxY: DefaultExtent,
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

// MakeField constructs the configured vector field and applies params.
func (c *Config) MakeField() (ode.VectorField, error) {
	f, err := field.New(c.Field)
	if err != nil {
		return nil, err
	}
	if len(c.Params) > 0 {
		tunable, ok := f.(field.Configurable)
		if !ok {
			return nil, fmt.Errorf("config: field %q takes no parameters", c.Field)
		}
		for name, value := range c.Params {
			if err := tunable.SetParam(name, value); err != nil {
				return nil, fmt.Errorf("config: field %q: %w", c.Field, err)
			}
		}
	}
	return f, nil
}

// TraceConfig converts the file shape into tracer parameters,
// filling anything unset from the tracer defaults.
func (c *Config) TraceConfig() ode.Config {
	tc := ode.Config{
		MaxSteps:  c.MaxSteps,
		MinStep:   c.MinStep,
		MaxStep:   c.MaxStep,
		Tolerance: c.Tolerance,
		Bounds: ode.Rect{
			MinX: c.Bounds.MinX, MinY: c.Bounds.MinY,
			MaxX: c.Bounds.MaxX, MaxY: c.Bounds.MaxY,
		},
	}
	return tc.Normalize()
}

// SeedPoint returns the configured seed as a phase-space point.
func (c *Config) SeedPoint() ode.Vec2 {
	return ode.Vec2{X: c.Seed.X, Y: c.Seed.Y}
}
