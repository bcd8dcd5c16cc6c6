package main

import (
	"github.com/pthm-cable/shoal/config"
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
// Each value is the centre of a per-fish range; the range keeps the half-width of the base config.
type ParamVector struct {
	Specs []ParamSpec
}

// NewParamVector creates the standard set of perception parameters.
func NewParamVector() *ParamVector {
	return &ParamVector{
		Specs: []ParamSpec{
			{Name: "view_distance", Path: "fish.view_distance", Min: 1.0, Max: 20.0, Default: 5.0},
			{Name: "view_angle_deg", Path: "fish.view_angle_deg", Min: 60.0, Max: 300.0, Default: 180.0},
			{Name: "min_distance", Path: "fish.min_distance", Min: 0.2, Max: 5.0, Default: 1.25},
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
		clamped[i] = min(max(v[i], spec.Min), spec.Max)
	}
	return clamped
}

// ApplyToConfig recentres the perception ranges on the given values.
func (pv *ParamVector) ApplyToConfig(cfg *config.Config, values []float64) {
	clamped := pv.Clamp(values)

	// Order must match Specs order
	cfg.Fish.ViewDistance = recentre(cfg.Fish.ViewDistance, clamped[0])
	cfg.Fish.ViewAngleDeg = recentre(cfg.Fish.ViewAngleDeg, clamped[1])
	cfg.Fish.MinDistance = recentre(cfg.Fish.MinDistance, clamped[2])

	// Keep the angle inside a full circle and distances positive
	cfg.Fish.ViewAngleDeg.Max = min(cfg.Fish.ViewAngleDeg.Max, 360)
	cfg.Fish.ViewDistance.Min = max(cfg.Fish.ViewDistance.Min, 0)
	cfg.Fish.MinDistance.Min = max(cfg.Fish.MinDistance.Min, 0)
}

// ExtractFromConfig extracts the current range centres from a Config struct.
func (pv *ParamVector) ExtractFromConfig(cfg *config.Config) []float64 {
	return []float64{
		centre(cfg.Fish.ViewDistance),
		centre(cfg.Fish.ViewAngleDeg),
		centre(cfg.Fish.MinDistance),
	}
}

func centre(r config.Range) float64 {
	return (r.Min + r.Max) / 2
}

// recentre moves r so its centre is c, keeping its width.
func recentre(r config.Range, c float64) config.Range {
	half := (r.Max - r.Min) / 2
	return config.Range{Min: c - half, Max: c + half}
}
