package pathscan

import "fmt"

// Config tunes the two-pass sampling strategy. All distances are feet;
// gradient thresholds are ft of rise per 100 ft of travel.
//
// Validation happens eagerly at the pipeline entry points (Analyze and the
// service config loader); the individual stage functions trust their inputs.
type Config struct {
	// DiscoveryIntervalFt is the fixed spacing of the coarse first pass.
	DiscoveryIntervalFt float64 `json:"discoveryIntervalFt"`

	// Refinement resample intervals by severity tier.
	DenseIntervalFt  float64 `json:"denseIntervalFt"`
	MediumIntervalFt float64 `json:"mediumIntervalFt"`
	SparseIntervalFt float64 `json:"sparseIntervalFt"`

	// Gradient severity thresholds, strictly increasing.
	GradMediumFtPer100   float64 `json:"gradMediumFtPer100"`
	GradHighFtPer100     float64 `json:"gradHighFtPer100"`
	GradCriticalFtPer100 float64 `json:"gradCriticalFtPer100"`

	// DiscoveryFraction caps refinement breadth: of the ranked risk
	// segments, at most ceil(fraction * count) are refined (never fewer
	// than one when any segment is flagged). Keeps probe cost bounded on
	// pathological terrain.
	DiscoveryFraction float64 `json:"discoveryFraction"`

	// MinSafetySpacingFt is the minimum straight-line and along-path
	// separation between accepted safety waypoints.
	MinSafetySpacingFt float64 `json:"minSafetySpacingFt"`

	// SafetyBufferFt is the AGL clearance enforced at safety waypoints when
	// no stricter minimum AGL constraint applies.
	SafetyBufferFt float64 `json:"safetyBufferFt"`
}

// DefaultConfig returns the production default tuning.
func DefaultConfig() Config {
	return Config{
		DiscoveryIntervalFt:  450,
		DenseIntervalFt:      30,
		MediumIntervalFt:     140,
		SparseIntervalFt:     300,
		GradMediumFtPer100:   10,
		GradHighFtPer100:     20,
		GradCriticalFtPer100: 40,
		DiscoveryFraction:    0.25,
		MinSafetySpacingFt:   50,
		SafetyBufferFt:       100,
	}
}

// Validate checks interval positivity and threshold monotonicity.
func (c Config) Validate() error {
	intervals := []struct {
		name string
		v    float64
	}{
		{"discoveryIntervalFt", c.DiscoveryIntervalFt},
		{"denseIntervalFt", c.DenseIntervalFt},
		{"mediumIntervalFt", c.MediumIntervalFt},
		{"sparseIntervalFt", c.SparseIntervalFt},
		{"minSafetySpacingFt", c.MinSafetySpacingFt},
		{"safetyBufferFt", c.SafetyBufferFt},
	}
	for _, iv := range intervals {
		if iv.v <= 0 {
			return fmt.Errorf("%s must be positive, got %v", iv.name, iv.v)
		}
	}
	if !(c.GradMediumFtPer100 > 0 && c.GradMediumFtPer100 < c.GradHighFtPer100 && c.GradHighFtPer100 < c.GradCriticalFtPer100) {
		return fmt.Errorf("gradient thresholds must be strictly increasing and positive, got %v/%v/%v",
			c.GradMediumFtPer100, c.GradHighFtPer100, c.GradCriticalFtPer100)
	}
	if c.DiscoveryFraction <= 0 || c.DiscoveryFraction > 1 {
		return fmt.Errorf("discoveryFraction must be in (0,1], got %v", c.DiscoveryFraction)
	}
	return nil
}
