package main

import (
	"math"

	"github.com/pthm-cable/ambient/config"
)

// ParamSpec defines a single tunable parameter.
type ParamSpec struct {
	Name    string  // Human-readable name
	Path    string  // Config path for logging
	Min     float64 // Lower bound
	Max     float64 // Upper bound
	Default float64 // Default value
	Integer bool    // Rounded before use
}

// ParamVector holds the set of tunable parameters.
type ParamVector struct {
	Specs []ParamSpec
}

// NewParamVector creates the parameter set for one capability profile,
// seeded with that profile's current values.
func NewParamVector(caps config.Capabilities, attractForce float64) *ParamVector {
	return &ParamVector{
		Specs: []ParamSpec{
			{Name: "particle_count", Path: "profiles.<profile>.particle_count", Min: 10, Max: 200, Default: float64(caps.ParticleCount), Integer: true},
			{Name: "connect_distance", Path: "profiles.<profile>.connect_distance", Min: 40, Max: 250, Default: caps.ConnectDistance},
			{Name: "attract_force", Path: "particles.attract_force", Min: 0, Max: 2, Default: attractForce},
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

// Clamp ensures all values are within bounds and rounds integer parameters.
func (pv *ParamVector) Clamp(v []float64) []float64 {
	clamped := make([]float64, len(pv.Specs))
	for i, spec := range pv.Specs {
		val := math.Max(spec.Min, math.Min(spec.Max, v[i]))
		if spec.Integer {
			val = math.Round(val)
		}
		clamped[i] = val
	}
	return clamped
}

// ApplyToConfig writes parameter values into the named profile of cfg.
// Order must match Specs order.
func (pv *ParamVector) ApplyToConfig(cfg *config.Config, class config.DeviceClass, values []float64) {
	clamped := pv.Clamp(values)

	caps := &cfg.Profiles.Desktop
	if class == config.DeviceConstrained {
		caps = &cfg.Profiles.Constrained
	}
	caps.ParticleCount = int(clamped[0])
	caps.ConnectDistance = clamped[1]
	cfg.Particles.AttractForce = clamped[2]
}
