// Command optimize searches the tick engine's tunable probabilities
// for a config that settles quickly without destroying the world it
// starts from, via gonum's CMA-ES optimizer.
package main

import "github.com/sandtick/engine/config"

// ParamSpec defines a single optimizable parameter.
type ParamSpec struct {
	Name    string
	Min     float64
	Max     float64
	Default float64
}

// ParamVector holds the set of all optimizable parameters.
type ParamVector struct {
	Specs []ParamSpec
}

// NewParamVector creates the standard set of optimizable parameters:
// the probabilities and rates governing how quickly cells move,
// settle, and react, grounded on the teacher's NewParamVector (a flat
// min/max/default spec per tunable) but drawn from config.FluidConfig,
// config.ThermalConfig, config.FireConfig, config.AcidConfig, and
// config.PowderConfig instead of the teacher's energy/reproduction
// knobs.
func NewParamVector() *ParamVector {
	return &ParamVector{
		Specs: []ParamSpec{
			{Name: "fluid_flow_try_probability", Min: 0.1, Max: 1.0, Default: 0.6},
			{Name: "fluid_pressure_try_probability", Min: 0.05, Max: 0.8, Default: 0.3},
			{Name: "thermal_diffusion_rate", Min: 0.02, Max: 0.5, Default: 0.15},
			{Name: "thermal_ambient_cooling_rate", Min: 0.0001, Max: 0.01, Default: 0.001},
			{Name: "fire_die_chance", Min: 0.005, Max: 0.2, Default: 0.02},
			{Name: "fire_spread_chance", Min: 0.05, Max: 0.9, Default: 0.3},
			{Name: "acid_corrosion_chance", Min: 0.02, Max: 0.6, Default: 0.15},
			{Name: "powder_splash_velocity_threshold", Min: 0.5, Max: 5.0, Default: 2.0},
		},
	}
}

// Dim returns the number of parameters.
func (pv *ParamVector) Dim() int { return len(pv.Specs) }

// DefaultVector returns the default parameter values.
func (pv *ParamVector) DefaultVector() []float64 {
	v := make([]float64, len(pv.Specs))
	for i, spec := range pv.Specs {
		v[i] = spec.Default
	}
	return v
}

// Normalize converts raw parameter values to [0,1].
func (pv *ParamVector) Normalize(raw []float64) []float64 {
	normalized := make([]float64, len(pv.Specs))
	for i, spec := range pv.Specs {
		normalized[i] = (raw[i] - spec.Min) / (spec.Max - spec.Min)
	}
	return normalized
}

// Denormalize converts [0,1] values back to raw parameter values.
func (pv *ParamVector) Denormalize(normalized []float64) []float64 {
	raw := make([]float64, len(pv.Specs))
	for i, spec := range pv.Specs {
		raw[i] = spec.Min + normalized[i]*(spec.Max-spec.Min)
	}
	return raw
}

// Clamp ensures all values are within bounds.
func (pv *ParamVector) Clamp(v []float64) []float64 {
	clamped := make([]float64, len(pv.Specs))
	for i, spec := range pv.Specs {
		val := v[i]
		if val < spec.Min {
			val = spec.Min
		}
		if val > spec.Max {
			val = spec.Max
		}
		clamped[i] = val
	}
	return clamped
}

// ApplyToConfig writes clamped parameter values into cfg's stage
// sections.
func (pv *ParamVector) ApplyToConfig(cfg *config.Config, values []float64) {
	c := pv.Clamp(values)
	cfg.Fluid.FlowTryProbability = c[0]
	cfg.Fluid.PressureTryProbability = c[1]
	cfg.Thermal.DiffusionRate = c[2]
	cfg.Thermal.AmbientCoolingRate = c[3]
	cfg.Fire.DieChance = c[4]
	cfg.Fire.SpreadChance = c[5]
	cfg.Acid.CorrosionChance = c[6]
	cfg.Powder.SplashVelocityThreshold = c[7]
}
