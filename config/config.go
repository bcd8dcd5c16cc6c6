// Package config provides configuration loading and access for the simulation.
package config

import (
	_ "embed"
	"errors"
	"fmt"
	"math"
	"os"
	"runtime"

	"gopkg.in/yaml.v3"
)

//go:embed defaults.yaml
var defaultsYAML []byte

// ErrUnknownTrigger is returned when flocking.separation_trigger is not a known mode.
var ErrUnknownTrigger = errors.New("unknown separation trigger")

// Separation trigger modes.
const (
	TriggerBeyond = "beyond" // literal comparison: skip neighbours closer than min distance
	TriggerWithin = "within" // skip neighbours at or beyond min distance
)

// Config holds all simulation configuration parameters.
type Config struct {
	Screen      ScreenConfig      `yaml:"screen"`
	Simulation  SimulationConfig  `yaml:"simulation"`
	Population  PopulationConfig  `yaml:"population"`
	Fish        FishConfig        `yaml:"fish"`
	Flocking    FlockingConfig    `yaml:"flocking"`
	Speed       SpeedConfig       `yaml:"speed"`
	Boundary    BoundaryConfig    `yaml:"boundary"`
	Containment ContainmentConfig `yaml:"containment"`
	Telemetry   TelemetryConfig   `yaml:"telemetry"`
	Stream      StreamConfig      `yaml:"stream"`

	// Derived values computed after loading
	Derived DerivedConfig `yaml:"-"`
}

// Range is an inclusive [Min, Max] interval sampled uniformly at spawn.
type Range struct {
	Min float64 `yaml:"min"`
	Max float64 `yaml:"max"`
}

// ScreenConfig holds display settings.
type ScreenConfig struct {
	Width     int `yaml:"width"`
	Height    int `yaml:"height"`
	TargetFPS int `yaml:"target_fps"`
}

// SimulationConfig holds tick and scheduling parameters.
type SimulationConfig struct {
	DT       float64 `yaml:"dt"`
	Workers  int     `yaml:"workers"`   // 0 = GOMAXPROCS
	MinBatch int     `yaml:"min_batch"` // Smallest batch handed to one worker
	Seed     int64   `yaml:"seed"`      // 0 = time-based
}

// PopulationConfig holds initial school placement.
type PopulationConfig struct {
	Initial       int     `yaml:"initial"`
	SpawnRadius   float64 `yaml:"spawn_radius"`    // Horizontal radius around the origin
	SpawnDepthMin float64 `yaml:"spawn_depth_min"` // Lowest spawn y
	SpawnDepthMax float64 `yaml:"spawn_depth_max"` // Highest spawn y
}

// FishConfig holds the ranges each fish's steering attributes are drawn from.
type FishConfig struct {
	BaseSpeed                Range `yaml:"base_speed"`
	SpeedMaxDecrease         Range `yaml:"speed_max_decrease"`
	SpeedMaxIncrease         Range `yaml:"speed_max_increase"`
	WanderHorizontalMaxDelta Range `yaml:"wander_horizontal_max_delta"`
	WanderVerticalMaxDelta   Range `yaml:"wander_vertical_max_delta"`
	WanderSphereDistance     Range `yaml:"wander_sphere_distance"`
	WanderSphereRadius       Range `yaml:"wander_sphere_radius"`
	ViewAngleDeg             Range `yaml:"view_angle_deg"`
	ViewDistance             Range `yaml:"view_distance"`
	MinDistance              Range `yaml:"min_distance"`
}

// FlockingConfig holds shared flocking parameters.
type FlockingConfig struct {
	SeparationEpsilon float64 `yaml:"separation_epsilon"`
	SeparationTrigger string  `yaml:"separation_trigger"` // beyond | within
}

// SpeedConfig holds speed regulation parameters.
type SpeedConfig struct {
	RegulationTolerance float64 `yaml:"regulation_tolerance"`
}

// BoundaryConfig holds the vertical operating band.
type BoundaryConfig struct {
	Upper       float64 `yaml:"upper"`        // Above this y, quadratic downward push
	Lower       float64 `yaml:"lower"`        // Below this y, linear upward push
	UpperBias   float64 `yaml:"upper_bias"`   // Constant added to y² above the band
	VerticalCap float64 `yaml:"vertical_cap"` // Max |v.y| inside the band
}

// ContainmentConfig holds optional horizontal containment.
type ContainmentConfig struct {
	Enabled bool    `yaml:"enabled"`
	Radius  float64 `yaml:"radius"`
}

// TelemetryConfig holds telemetry parameters.
type TelemetryConfig struct {
	StatsWindow float64 `yaml:"stats_window"`
	PerfWindow  int     `yaml:"perf_window"`
}

// StreamConfig holds observer stream parameters.
type StreamConfig struct {
	Addr       string `yaml:"addr"`
	EveryTicks int    `yaml:"every_ticks"`
}

// DerivedConfig holds computed values derived from the loaded config.
type DerivedConfig struct {
	DT32             float32 // Simulation.DT as float32
	Workers          int     // Effective worker count
	MinBatch         int     // Effective minimum batch size
	SeparationWithin bool    // Separation trigger is "within"
}

// global holds the loaded configuration.
var global *Config

// Init loads configuration from the given path, or uses embedded defaults if path is empty.
// Must be called before Cfg().
func Init(path string) error {
	cfg, err := Load(path)
	if err != nil {
		return err
	}
	global = cfg
	return nil
}

// MustInit is like Init but panics on error.
func MustInit(path string) {
	if err := Init(path); err != nil {
		panic(fmt.Sprintf("config: failed to initialize: %v", err))
	}
}

// Cfg returns the global configuration. Panics if Init was not called.
func Cfg() *Config {
	if global == nil {
		panic("config: Cfg() called before Init()")
	}
	return global
}

// Load loads configuration from a YAML file, merging with embedded defaults.
// If path is empty, only embedded defaults are used.
func Load(path string) (*Config, error) {
	cfg := &Config{}
	if err := yaml.Unmarshal(defaultsYAML, cfg); err != nil {
		return nil, fmt.Errorf("parsing embedded defaults: %w", err)
	}

	if path != "" {
		data, err := os.ReadFile(path)
		if err != nil {
			return nil, fmt.Errorf("reading config file: %w", err)
		}
		// Unmarshal into same struct - only overwrites fields present in file
		if err := yaml.Unmarshal(data, cfg); err != nil {
			return nil, fmt.Errorf("parsing config file: %w", err)
		}
	}

	if err := cfg.computeDerived(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// Parse builds a configuration from YAML bytes layered over the embedded defaults.
func Parse(data []byte) (*Config, error) {
	cfg := &Config{}
	if err := yaml.Unmarshal(defaultsYAML, cfg); err != nil {
		return nil, fmt.Errorf("parsing embedded defaults: %w", err)
	}
	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("parsing config: %w", err)
	}
	if err := cfg.computeDerived(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// Clone returns an independent copy with derived values recomputed.
func (c *Config) Clone() *Config {
	cp := *c
	// Clone is only called on configs that already passed validation.
	_ = cp.computeDerived()
	return &cp
}

// Refresh recomputes derived values after fields were changed in code.
func (c *Config) Refresh() error {
	return c.computeDerived()
}

// computeDerived calculates values derived from loaded config.
func (c *Config) computeDerived() error {
	c.Derived.DT32 = float32(c.Simulation.DT)

	c.Derived.Workers = c.Simulation.Workers
	if c.Derived.Workers <= 0 {
		c.Derived.Workers = runtime.GOMAXPROCS(0)
	}
	c.Derived.MinBatch = c.Simulation.MinBatch
	if c.Derived.MinBatch < 1 {
		c.Derived.MinBatch = 1
	}

	switch c.Flocking.SeparationTrigger {
	case TriggerBeyond, "":
		c.Flocking.SeparationTrigger = TriggerBeyond
		c.Derived.SeparationWithin = false
	case TriggerWithin:
		c.Derived.SeparationWithin = true
	default:
		return fmt.Errorf("flocking.separation_trigger %q: %w", c.Flocking.SeparationTrigger, ErrUnknownTrigger)
	}

	if c.Stream.EveryTicks < 1 {
		c.Stream.EveryTicks = 1
	}
	return nil
}

// ViewAngleRadians converts the configured view angle range to radians.
func (c *Config) ViewAngleRadians() Range {
	return Range{
		Min: c.Fish.ViewAngleDeg.Min * math.Pi / 180,
		Max: c.Fish.ViewAngleDeg.Max * math.Pi / 180,
	}
}

// WriteYAML writes the configuration to a YAML file.
func (c *Config) WriteYAML(path string) error {
	data, err := yaml.Marshal(c)
	if err != nil {
		return fmt.Errorf("marshaling config: %w", err)
	}
	if err := os.WriteFile(path, data, 0644); err != nil {
		return fmt.Errorf("writing config file: %w", err)
	}
	return nil
}
