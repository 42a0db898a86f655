// Package config provides configuration loading and access for the
// falling-sand tick engine, following the embedded-defaults-plus-
// override-file pattern used throughout this codebase.
package config

import (
	_ "embed"
	"fmt"
	"os"

	"gopkg.in/yaml.v3"
)

//go:embed defaults.yaml
var defaultsYAML []byte

// Config holds every tunable parameter of the tick engine. Values not
// present in a user-supplied override file fall back to the embedded
// defaults, which carry the authoritative values from the material and
// stage tables.
type Config struct {
	Grid      GridConfig       `yaml:"grid"`
	Tick      TickConfig       `yaml:"tick"`
	Physics   PhysicsConfig    `yaml:"physics"`
	Thermal   ThermalConfig    `yaml:"thermal"`
	Powder    PowderConfig     `yaml:"powder"`
	Fluid     FluidConfig      `yaml:"fluid"`
	Fire      FireConfig       `yaml:"fire"`
	Gas       GasConfig        `yaml:"gas"`
	Acid      AcidConfig       `yaml:"acid"`
	Materials []MaterialConfig `yaml:"materials"`

	// Derived values computed after loading.
	Derived DerivedConfig `yaml:"-"`
}

// GridConfig holds grid dimensions and chunking granularity.
type GridConfig struct {
	Width     int `yaml:"width"`
	Height    int `yaml:"height"`
	ChunkSize int `yaml:"chunk_size"`
}

// TickConfig holds the fixed-tick driver's rate.
type TickConfig struct {
	Hz                  float64 `yaml:"hz"`
	AccumulatorCapTicks float64 `yaml:"accumulator_cap_ticks"`
}

// PhysicsConfig holds global physics and temperature bounds.
type PhysicsConfig struct {
	GravityAccel       float64 `yaml:"gravity_accel"`
	MinTemperature     float64 `yaml:"min_temperature"`
	MaxTemperature     float64 `yaml:"max_temperature"`
	AmbientTemperature float64 `yaml:"ambient_temperature"`
}

// ThermalConfig holds the two-pass diffusion stage's rates.
type ThermalConfig struct {
	DiffusionRate      float64 `yaml:"diffusion_rate"`
	AmbientCoolingRate float64 `yaml:"ambient_cooling_rate"`
	FireTemperature    float64 `yaml:"fire_temperature"`
}

// PowderConfig holds the powder stage's splash parameters.
type PowderConfig struct {
	SplashVelocityThreshold float64 `yaml:"splash_velocity_threshold"`
	SplashVelX              float64 `yaml:"splash_vel_x"`
	SplashVelY              float64 `yaml:"splash_vel_y"`
}

// FluidConfig holds the fluid stage's pass count and probabilities.
type FluidConfig struct {
	Passes                 int     `yaml:"passes"`
	FlowTryProbability     float64 `yaml:"flow_try_probability"`
	PressureTryProbability float64 `yaml:"pressure_try_probability"`
	PressureThreshold      int     `yaml:"pressure_threshold"`
}

// FireConfig holds the fire stage's lifetime and spread probabilities.
type FireConfig struct {
	DieChance       float64 `yaml:"die_chance"`
	MaxLifetime     int     `yaml:"max_lifetime"`
	AshChance       float64 `yaml:"ash_chance"`
	SmokeChance     float64 `yaml:"smoke_chance"`
	SmokeEmitChance float64 `yaml:"smoke_emit_chance"`
	SpreadChance    float64 `yaml:"spread_chance"`
	RiseChance      float64 `yaml:"rise_chance"`
}

// GasConfig holds the gas stage's dissipation/condensation/rise rates.
type GasConfig struct {
	SmokeDissipateBase     float64 `yaml:"smoke_dissipate_base"`
	SteamCondenseBase      float64 `yaml:"steam_condense_base"`
	SteamCondenseThreshold float64 `yaml:"steam_condense_threshold"`
	SteamRiseChance        float64 `yaml:"steam_rise_chance"`
	SmokeRiseChance        float64 `yaml:"smoke_rise_chance"`
	SpreadChance           float64 `yaml:"spread_chance"`
}

// AcidConfig holds the acid stage's corrosion probabilities.
type AcidConfig struct {
	CorrosionChance      float64 `yaml:"corrosion_chance"`
	SmokeByproductChance float64 `yaml:"smoke_byproduct_chance"`
	SurviveChance        float64 `yaml:"survive_chance"`
}

// MaterialConfig is the YAML shape of one material property record
// (spec.md §6). Color is [r, g, b, a].
type MaterialConfig struct {
	ID                  int     `yaml:"id"`
	Name                string  `yaml:"name"`
	State               string  `yaml:"state"`
	Color               [4]int  `yaml:"color"`
	ColorVariation      int     `yaml:"color_variation"`
	Density             float64 `yaml:"density"`
	Friction            float64 `yaml:"friction"`
	Restitution         float64 `yaml:"restitution"`
	Cohesion            float64 `yaml:"cohesion"`
	Viscosity           float64 `yaml:"viscosity"`
	GravityScale        float64 `yaml:"gravity_scale"`
	Drag                float64 `yaml:"drag"`
	TerminalVelocity    float64 `yaml:"terminal_velocity"`
	FlowRate            float64 `yaml:"flow_rate"`
	SettleProbability   float64 `yaml:"settle_probability"`
	SlideBias           float64 `yaml:"slide_bias"`
	ThermalConductivity float64 `yaml:"thermal_conductivity"`
	HeatCapacity        float64 `yaml:"heat_capacity"`
	IgnitionTemperature float64 `yaml:"ignition_temperature"`
	BurnRate            float64 `yaml:"burn_rate"`
	SmokeRate           float64 `yaml:"smoke_rate"`
	MeltingTemperature  float64 `yaml:"melting_temperature"`
	BoilingTemperature  float64 `yaml:"boiling_temperature"`
}

// DerivedConfig holds values computed once after loading.
type DerivedConfig struct {
	DT float64 // 1 / Tick.Hz
}

// global holds the process-wide configuration.
var global *Config

// Init loads configuration from the given path, or uses embedded
// defaults if path is empty. Must be called before Cfg().
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

// Load loads configuration from a YAML file, merging with embedded
// defaults. If path is empty, only embedded defaults are used.
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
		if err := yaml.Unmarshal(data, cfg); err != nil {
			return nil, fmt.Errorf("parsing config file: %w", err)
		}
	}

	cfg.computeDerived()
	return cfg, nil
}

// computeDerived calculates values derived from the loaded config.
func (c *Config) computeDerived() {
	c.Derived.DT = 1.0 / c.Tick.Hz
}

// WriteYAML saves the configuration to path, for telemetry snapshots.
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
