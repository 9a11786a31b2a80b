package config

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"

	"github.com/san-kum/pipeflow/internal/geom"
	"github.com/san-kum/pipeflow/internal/sph"
)

const (
	DefaultDt          = 0.01
	DefaultSteps       = 100
	DefaultSpacing     = 0.2
	DefaultRestDensity = 1000.0
	DefaultViscosity   = 0.1
	DefaultFlowRate    = 1.0
)

// Config is a YAML scenario description: the pipe segment, the fluid, and
// the run schedule.
type Config struct {
	Bounds BoxConfig `yaml:"bounds"`

	// SeedRegion is the lattice sub-volume; empty means the full bounds.
	SeedRegion *BoxConfig `yaml:"seed_region,omitempty"`
	Spacing    float64    `yaml:"spacing"`

	RestDensity float64 `yaml:"rest_density"`
	Viscosity   float64 `yaml:"viscosity"`
	FlowRate    float64 `yaml:"flow_rate"`

	// SmoothingRadius of 0 keeps the engine default.
	SmoothingRadius float64 `yaml:"smoothing_radius,omitempty"`

	Dt      float64 `yaml:"dt"`
	Steps   int     `yaml:"steps"`
	Workers int     `yaml:"workers,omitempty"`
}

type BoxConfig struct {
	Min [3]float64 `yaml:"min"`
	Max [3]float64 `yaml:"max"`
}

func (b BoxConfig) Box() geom.Box {
	return geom.Box{
		Min: geom.Vec3{X: b.Min[0], Y: b.Min[1], Z: b.Min[2]},
		Max: geom.Vec3{X: b.Max[0], Y: b.Max[1], Z: b.Max[2]},
	}
}

// DefaultConfig is the reference scenario: a 1 m³ segment seeded at 0.2 m
// spacing with water-like rest density.
func DefaultConfig() *Config {
	return &Config{
		Bounds:      BoxConfig{Max: [3]float64{1, 1, 1}},
		Spacing:     DefaultSpacing,
		RestDensity: DefaultRestDensity,
		Viscosity:   DefaultViscosity,
		FlowRate:    DefaultFlowRate,
		Dt:          DefaultDt,
		Steps:       DefaultSteps,
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

func (c *Config) Validate() error {
	if !c.Bounds.Box().Valid() {
		return fmt.Errorf("config: bounds are degenerate or inverted")
	}
	if c.SeedRegion != nil && !c.SeedRegion.Box().Valid() {
		return fmt.Errorf("config: seed region is degenerate or inverted")
	}
	if c.Spacing <= 0 {
		return fmt.Errorf("config: spacing must be positive, got %v", c.Spacing)
	}
	if c.Dt <= 0 {
		return fmt.Errorf("config: dt must be positive, got %v", c.Dt)
	}
	if c.Steps <= 0 {
		return fmt.Errorf("config: steps must be positive, got %d", c.Steps)
	}
	return nil
}

func (c *Config) Parameters() sph.Parameters {
	return sph.Parameters{
		RestDensity: c.RestDensity,
		Viscosity:   c.Viscosity,
		FlowRate:    c.FlowRate,
		TimeStep:    c.Dt,
	}
}

// Engine builds and seeds an engine from the scenario.
func (c *Config) Engine() (*sph.Engine, error) {
	if err := c.Validate(); err != nil {
		return nil, err
	}
	eng, err := sph.New(c.Bounds.Box(), c.Parameters())
	if err != nil {
		return nil, err
	}
	if c.SmoothingRadius > 0 {
		if err := eng.SetSmoothingRadius(c.SmoothingRadius); err != nil {
			return nil, err
		}
	}
	if c.Workers > 0 {
		eng.SetWorkers(c.Workers)
	}
	region := c.Bounds.Box()
	if c.SeedRegion != nil {
		region = c.SeedRegion.Box()
	}
	if err := eng.SeedParticles(region, c.Spacing); err != nil {
		return nil, err
	}
	return eng, nil
}
