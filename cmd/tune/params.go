// Package main provides CMA-ES optimization for generation and
// validation thresholds.
package main

import (
	"github.com/pthm-cable/antfarm/config"
)

// ParamSpec defines a single optimizable parameter.
type ParamSpec struct {
	Name    string  // Human-readable name
	Path    string  // Config path for logging
	Min     float64 // Lower bound
	Max     float64 // Upper bound
	Default float64 // Default value
}

// ParamVector holds the set of all optimizable parameters.
type ParamVector struct {
	Specs []ParamSpec
}

// NewParamVector creates the standard set of optimizable parameters.
// Structural bounds (dimension maxima, window sizes) stay locked; the
// tuner only moves probabilities and activity thresholds.
func NewParamVector() *ParamVector {
	return &ParamVector{
		Specs: []ParamSpec{
			// Generation strategy split
			{Name: "fresh_prob", Path: "generate.fresh_prob", Min: 0.1, Max: 0.7, Default: 0.35},
			{Name: "pool_prob", Path: "generate.pool_prob", Min: 0.1, Max: 0.7, Default: 0.45},
			{Name: "preset_prob", Path: "generate.preset_prob", Min: 0.05, Max: 0.5, Default: 0.20},
			{Name: "ca_random_cell", Path: "generate.ca_random_cell", Min: 0.0, Max: 0.3, Default: 0.08},
			// Diversification
			{Name: "add_color_prob", Path: "diversify.add_color_prob", Min: 0.05, Max: 0.8, Default: 0.40},
			{Name: "add_state_prob", Path: "diversify.add_state_prob", Min: 0.05, Max: 0.8, Default: 0.30},
			{Name: "reroute_write_prob", Path: "diversify.reroute_write_prob", Min: 0.05, Max: 0.6, Default: 0.25},
			{Name: "reroute_state_prob", Path: "diversify.reroute_state_prob", Min: 0.05, Max: 0.6, Default: 0.20},
			// Activity booster
			{Name: "max_no_turn", Path: "boost.max_no_turn", Min: 0.3, Max: 0.9, Default: 0.60},
			{Name: "min_write_change", Path: "boost.min_write_change", Min: 0.1, Max: 0.5, Default: 0.25},
			// Static validation gate
			{Name: "val_min_write_change", Path: "validate.min_write_change", Min: 0.05, Max: 0.4, Default: 0.15},
			{Name: "val_max_no_turn", Path: "validate.max_no_turn", Min: 0.5, Max: 0.95, Default: 0.80},
			{Name: "val_max_self_state", Path: "validate.max_self_state", Min: 0.6, Max: 0.99, Default: 0.95},
		},
	}
}

// Dim returns the number of parameters.
func (pv *ParamVector) Dim() int {
	return len(pv.Specs)
}

// DefaultVector returns the default parameter values as a slice.
func (pv *ParamVector) DefaultVector() []float64 {
	v := make([]float64, len(pv.Specs))
	for i, spec := range pv.Specs {
		v[i] = spec.Default
	}
	return v
}

// Normalize converts raw parameter values to [0,1] range.
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

// ApplyToConfig applies parameter values to a fresh Config copy.
// Order must match Specs order.
func (pv *ParamVector) ApplyToConfig(cfg *config.Config, values []float64) {
	v := pv.Clamp(values)

	cfg.Generate.FreshProb = v[0]
	cfg.Generate.PoolProb = v[1]
	cfg.Generate.PresetProb = v[2]
	cfg.Generate.CARandomCell = v[3]

	cfg.Diversify.AddColorProb = v[4]
	cfg.Diversify.AddStateProb = v[5]
	cfg.Diversify.RerouteWriteProb = v[6]
	cfg.Diversify.RerouteStateProb = v[7]

	cfg.Boost.MaxNoTurn = v[8]
	cfg.Boost.MinWriteChange = v[9]

	cfg.Validate.MinWriteChange = v[10]
	cfg.Validate.MaxNoTurn = v[11]
	cfg.Validate.MaxSelfState = v[12]
}
