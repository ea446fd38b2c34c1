// Package config loads and validates the JSON tuning file that controls
// terrain sampling and spiral planning. Every field is optional; the Get*
// accessors fall back to the built-in defaults, so a partial file only
// overrides what it names.
package config

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"

	"github.com/HansenHomeAI/v0-spaceport-website-sub007/internal/pathscan"
	"github.com/HansenHomeAI/v0-spaceport-website-sub007/internal/spiral"
)

// DefaultConfigPath is the path to the canonical tuning defaults file.
const DefaultConfigPath = "config/tuning.defaults.json"

// TuningConfig represents the root configuration for tuning parameters.
// The schema matches the /api/config endpoint so the same JSON can be used
// for both startup configuration and runtime updates.
type TuningConfig struct {
	// Terrain sampling params
	DiscoveryIntervalFt  *float64 `json:"discovery_interval_ft,omitempty"`
	DenseIntervalFt      *float64 `json:"dense_interval_ft,omitempty"`
	MediumIntervalFt     *float64 `json:"medium_interval_ft,omitempty"`
	SparseIntervalFt     *float64 `json:"sparse_interval_ft,omitempty"`
	GradMediumFtPer100   *float64 `json:"grad_medium_ft_per_100,omitempty"`
	GradHighFtPer100     *float64 `json:"grad_high_ft_per_100,omitempty"`
	GradCriticalFtPer100 *float64 `json:"grad_critical_ft_per_100,omitempty"`
	DiscoveryFraction    *float64 `json:"discovery_fraction,omitempty"`
	MinSafetySpacingFt   *float64 `json:"min_safety_spacing_ft,omitempty"`
	SafetyBufferFt       *float64 `json:"safety_buffer_ft,omitempty"`

	// Spiral planner params
	DefaultSlices         *int     `json:"default_slices,omitempty"`
	DefaultBounces        *int     `json:"default_bounces,omitempty"`
	DefaultStartRadiusFt  *float64 `json:"default_start_radius_ft,omitempty"`
	DefaultHoldRadiusFt   *float64 `json:"default_hold_radius_ft,omitempty"`
	DefaultAltitudeFt     *float64 `json:"default_altitude_ft,omitempty"`
	DefaultBatteryMinutes *float64 `json:"default_battery_minutes,omitempty"`
}

// EmptyTuningConfig returns a TuningConfig with all fields set to nil.
// Use LoadTuningConfig to load actual values from a file.
func EmptyTuningConfig() *TuningConfig {
	return &TuningConfig{}
}

// LoadTuningConfig loads a TuningConfig from a JSON file. The file must have
// a .json extension and stay under 1MB. Fields omitted from the JSON retain
// their defaults, so partial configs are safe.
func LoadTuningConfig(path string) (*TuningConfig, error) {
	cleanPath := filepath.Clean(path)
	if ext := filepath.Ext(cleanPath); ext != ".json" {
		return nil, fmt.Errorf("config file must have .json extension, got %q", ext)
	}

	fileInfo, err := os.Stat(cleanPath)
	if err != nil {
		return nil, fmt.Errorf("failed to stat config file: %w", err)
	}
	const maxFileSize = 1 * 1024 * 1024
	if fileInfo.Size() > maxFileSize {
		return nil, fmt.Errorf("config file too large: %d bytes (max %d)", fileInfo.Size(), maxFileSize)
	}

	data, err := os.ReadFile(cleanPath)
	if err != nil {
		return nil, fmt.Errorf("failed to read config file: %w", err)
	}

	cfg := EmptyTuningConfig()
	if err := json.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("failed to parse config JSON: %w", err)
	}

	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid configuration: %w", err)
	}

	return cfg, nil
}

// Validate checks that any set values are usable. Nil fields are always
// valid; they resolve to defaults. Cross-field ordering (sampling intervals,
// gradient tiers) is checked on the resolved values so a partial override
// cannot silently invert a tier against a default.
func (c *TuningConfig) Validate() error {
	positives := []struct {
		name string
		v    *float64
	}{
		{"discovery_interval_ft", c.DiscoveryIntervalFt},
		{"dense_interval_ft", c.DenseIntervalFt},
		{"medium_interval_ft", c.MediumIntervalFt},
		{"sparse_interval_ft", c.SparseIntervalFt},
		{"grad_medium_ft_per_100", c.GradMediumFtPer100},
		{"grad_high_ft_per_100", c.GradHighFtPer100},
		{"grad_critical_ft_per_100", c.GradCriticalFtPer100},
		{"min_safety_spacing_ft", c.MinSafetySpacingFt},
		{"safety_buffer_ft", c.SafetyBufferFt},
		{"default_start_radius_ft", c.DefaultStartRadiusFt},
		{"default_hold_radius_ft", c.DefaultHoldRadiusFt},
		{"default_altitude_ft", c.DefaultAltitudeFt},
		{"default_battery_minutes", c.DefaultBatteryMinutes},
	}
	for _, p := range positives {
		if p.v != nil && *p.v <= 0 {
			return fmt.Errorf("%s must be positive, got %f", p.name, *p.v)
		}
	}

	if c.DiscoveryFraction != nil {
		if *c.DiscoveryFraction <= 0 || *c.DiscoveryFraction > 1 {
			return fmt.Errorf("discovery_fraction must be in (0, 1], got %f", *c.DiscoveryFraction)
		}
	}
	if c.DefaultSlices != nil && *c.DefaultSlices < 1 {
		return fmt.Errorf("default_slices must be at least 1, got %d", *c.DefaultSlices)
	}
	if c.DefaultBounces != nil && *c.DefaultBounces < 1 {
		return fmt.Errorf("default_bounces must be at least 1, got %d", *c.DefaultBounces)
	}

	// Resolved cross-field checks.
	return c.Pathscan().Validate()
}

// Pathscan resolves the terrain sampling fields into a pathscan.Config,
// filling unset fields from pathscan.DefaultConfig.
func (c *TuningConfig) Pathscan() pathscan.Config {
	out := pathscan.DefaultConfig()
	if c.DiscoveryIntervalFt != nil {
		out.DiscoveryIntervalFt = *c.DiscoveryIntervalFt
	}
	if c.DenseIntervalFt != nil {
		out.DenseIntervalFt = *c.DenseIntervalFt
	}
	if c.MediumIntervalFt != nil {
		out.MediumIntervalFt = *c.MediumIntervalFt
	}
	if c.SparseIntervalFt != nil {
		out.SparseIntervalFt = *c.SparseIntervalFt
	}
	if c.GradMediumFtPer100 != nil {
		out.GradMediumFtPer100 = *c.GradMediumFtPer100
	}
	if c.GradHighFtPer100 != nil {
		out.GradHighFtPer100 = *c.GradHighFtPer100
	}
	if c.GradCriticalFtPer100 != nil {
		out.GradCriticalFtPer100 = *c.GradCriticalFtPer100
	}
	if c.DiscoveryFraction != nil {
		out.DiscoveryFraction = *c.DiscoveryFraction
	}
	if c.MinSafetySpacingFt != nil {
		out.MinSafetySpacingFt = *c.MinSafetySpacingFt
	}
	if c.SafetyBufferFt != nil {
		out.SafetyBufferFt = *c.SafetyBufferFt
	}
	return out
}

// FlightParams resolves the spiral planner fields into a spiral.FlightParams
// baseline. Request-level overrides are applied on top by the API layer.
func (c *TuningConfig) FlightParams() spiral.FlightParams {
	return spiral.FlightParams{
		Slices:         c.GetDefaultSlices(),
		Bounces:        c.GetDefaultBounces(),
		StartRadiusFt:  c.GetDefaultStartRadiusFt(),
		HoldRadiusFt:   c.GetDefaultHoldRadiusFt(),
		AltitudeFt:     c.GetDefaultAltitudeFt(),
		BatteryMinutes: c.GetDefaultBatteryMinutes(),
	}
}

// GetDefaultSlices returns the default_slices value or the default.
func (c *TuningConfig) GetDefaultSlices() int {
	if c.DefaultSlices == nil {
		return 1
	}
	return *c.DefaultSlices
}

// GetDefaultBounces returns the default_bounces value or the default.
func (c *TuningConfig) GetDefaultBounces() int {
	if c.DefaultBounces == nil {
		return 6
	}
	return *c.DefaultBounces
}

// GetDefaultStartRadiusFt returns the default_start_radius_ft value or the default.
func (c *TuningConfig) GetDefaultStartRadiusFt() float64 {
	if c.DefaultStartRadiusFt == nil {
		return 100
	}
	return *c.DefaultStartRadiusFt
}

// GetDefaultHoldRadiusFt returns the default_hold_radius_ft value or the default.
func (c *TuningConfig) GetDefaultHoldRadiusFt() float64 {
	if c.DefaultHoldRadiusFt == nil {
		return 1000
	}
	return *c.DefaultHoldRadiusFt
}

// GetDefaultAltitudeFt returns the default_altitude_ft value or the default.
func (c *TuningConfig) GetDefaultAltitudeFt() float64 {
	if c.DefaultAltitudeFt == nil {
		return 400
	}
	return *c.DefaultAltitudeFt
}

// GetDefaultBatteryMinutes returns the default_battery_minutes value or the default.
func (c *TuningConfig) GetDefaultBatteryMinutes() float64 {
	if c.DefaultBatteryMinutes == nil {
		return 20
	}
	return *c.DefaultBatteryMinutes
}
