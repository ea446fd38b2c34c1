// Package units provides shared constants and conversions for distance and
// gradient units used across the planning engine.
//
// All core geometry works in feet. Gradients are expressed in feet of rise
// per 100 feet of travel, which is how the sampler thresholds are configured.
package units

// Distance unit constants.
const (
	Feet   = "ft"
	Metres = "m"
)

// FeetPerMetre is the exact international-foot conversion factor.
const FeetPerMetre = 1.0 / 0.3048

// ValidUnits contains all valid distance unit values accepted by the API.
var ValidUnits = []string{Feet, Metres}

// IsValid checks if the given unit is in the list of valid units.
func IsValid(unit string) bool {
	for _, u := range ValidUnits {
		if unit == u {
			return true
		}
	}
	return false
}

// ToFeet converts a distance in the given unit to feet.
// Unknown units are treated as feet, since the core stores feet.
func ToFeet(v float64, unit string) float64 {
	switch unit {
	case Metres:
		return v * FeetPerMetre
	default:
		return v
	}
}

// FromFeet converts a distance in feet to the target unit.
func FromFeet(v float64, unit string) float64 {
	switch unit {
	case Metres:
		return v / FeetPerMetre
	default:
		return v
	}
}

// GradientPer100 converts a rise over a run into ft-per-100ft gradient units.
// A zero run yields zero rather than an infinity that would poison the
// severity ranking downstream.
func GradientPer100(riseFt, runFt float64) float64 {
	if runFt == 0 {
		return 0
	}
	return riseFt / runFt * 100
}
