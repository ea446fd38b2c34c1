// Package spiral generates battery-sliced spiral coverage geometry. A mission
// is divided into equal angular wedges ("slices"), one per battery; each
// slice's flight segment spirals outward from the start radius, holds across
// the wedge, then spirals back while zig-zagging between the wedge's bounding
// rays so consecutive slices tile a full revolution.
package spiral

import (
	"fmt"
	"math"
)

// Flight phases tagged onto generated waypoints.
const (
	PhaseOutbound = "outbound"
	PhaseHold     = "hold"
	PhaseInbound  = "inbound"
)

// FlightParams describes one multi-battery spiral mission. One BuildSlice
// call per slice produces that battery's flight segment.
type FlightParams struct {
	// Slices is the number of equal angular wedges the mission is divided into.
	Slices int `json:"slices"`

	// Bounces is the lateral oscillation count N; each slice emits 2N+5 waypoints.
	Bounces int `json:"bounces"`

	// StartRadiusFt is the spiral start radius r0.
	StartRadiusFt float64 `json:"startRadiusFt"`

	// HoldRadiusFt is the nominal target radius rHold. The achieved maximum
	// radius differs because the growth rate is blended; see maxRadius.
	HoldRadiusFt float64 `json:"holdRadiusFt"`

	// AltitudeFt is the constant flight altitude assigned to waypoint Z.
	AltitudeFt float64 `json:"altitudeFt"`

	// BatteryMinutes is carried through as mission metadata for downstream
	// consumers; the geometry itself does not depend on it.
	BatteryMinutes float64 `json:"batteryMinutes"`
}

// Waypoint is one generated flight position.
type Waypoint struct {
	X     float64 `json:"x"`
	Y     float64 `json:"y"`
	Z     float64 `json:"z"`
	Phase string  `json:"phase"`
	Seq   int     `json:"seq"`
}

// Validate checks the parameters eagerly. Geometry code below trusts its
// inputs; this is the single validation point.
func (p FlightParams) Validate() error {
	if p.Slices < 1 {
		return fmt.Errorf("slices must be at least 1, got %d", p.Slices)
	}
	if p.Bounces < 1 {
		return fmt.Errorf("bounces must be at least 1, got %d", p.Bounces)
	}
	if p.StartRadiusFt <= 0 {
		return fmt.Errorf("start radius must be positive, got %v", p.StartRadiusFt)
	}
	if p.HoldRadiusFt <= p.StartRadiusFt {
		return fmt.Errorf("hold radius %v must exceed start radius %v", p.HoldRadiusFt, p.StartRadiusFt)
	}
	return nil
}

// growthRegime holds the early/late density multipliers applied to the
// exponential growth rate. Kept as an ordered rule table so the regime
// thresholds stay auditable.
type growthRegime struct {
	minRatio float64 // applies when rHold/r0 > minRatio
	early    float64 // multiplier for the first 40% of outbound travel
	late     float64 // multiplier for the remainder
}

// growthRegimes is evaluated in order; the first matching row wins.
// Wide-area missions (large rHold/r0) front-load growth harder: uniform
// exponential growth either under-samples the near field or over-extends
// the far field.
var growthRegimes = []growthRegime{
	{minRatio: 20, early: 1.35, late: 0.75},
	{minRatio: 10, early: 1.25, late: 0.85},
	{minRatio: 0, early: 1.15, late: 0.95},
}

// earlyFraction is the portion of outbound travel flown at the early rate.
const earlyFraction = 0.4

func densityFactors(ratio float64) (early, late float64) {
	for _, g := range growthRegimes {
		if ratio > g.minRatio {
			return g.early, g.late
		}
	}
	last := growthRegimes[len(growthRegimes)-1]
	return last.early, last.late
}

// radiusAt evaluates the blended exponential radius at outbound progress
// t in [0,1]. k is ln(rHold/r0), the rate that would reach rHold exactly
// under uniform growth.
func radiusAt(t, r0, k, early, late float64) float64 {
	a := early * math.Min(t, earlyFraction)
	if t > earlyFraction {
		a += late * (t - earlyFraction)
	}
	return r0 * math.Exp(k*a)
}

// maxRadius is the analytically achieved maximum radius at t=1. It is not
// rHold: the blended rates land above or below depending on the regime.
func maxRadius(r0, k, early, late float64) float64 {
	return r0 * math.Exp(k*(early*earlyFraction+late*(1-earlyFraction)))
}

// BuildSlice generates the ordered waypoint sequence for one slice of the
// mission: start, midpoint+bounce-point for each outbound oscillation,
// midpoint+end of the hold arc, then midpoint+bounce-point for each inbound
// oscillation, 2N+5 waypoints in total. All points are rotated by
// pi/2 + sliceIndex*wedgeAngle so the slices tile a full revolution.
//
// Known degeneracy: at Slices=1 the wedge angle is 2*pi, the bounding rays
// coincide, and the waypoints collapse onto a single radial line. Preserved
// for parity with the existing planner; pinned by a regression test.
func BuildSlice(sliceIndex int, p FlightParams) ([]Waypoint, error) {
	if err := p.Validate(); err != nil {
		return nil, err
	}
	if sliceIndex < 0 || sliceIndex >= p.Slices {
		return nil, fmt.Errorf("slice index %d out of range [0,%d)", sliceIndex, p.Slices)
	}

	wedge := 2 * math.Pi / float64(p.Slices)
	rotation := math.Pi/2 + float64(sliceIndex)*wedge

	k := math.Log(p.HoldRadiusFt / p.StartRadiusFt)
	early, late := densityFactors(p.HoldRadiusFt / p.StartRadiusFt)
	rMax := maxRadius(p.StartRadiusFt, k, early, late)

	// The N+1 oscillations are split across the legs; outbound takes the
	// extra one when N is even.
	nOut := (p.Bounces + 2) / 2
	nIn := p.Bounces + 1 - nOut

	wps := make([]Waypoint, 0, 2*p.Bounces+5)
	emit := func(r, angle float64, phase string) {
		theta := rotation + angle
		wps = append(wps, Waypoint{
			X:     r * math.Cos(theta),
			Y:     r * math.Sin(theta),
			Z:     p.AltitudeFt,
			Phase: phase,
			Seq:   len(wps),
		})
	}

	// rayFor returns the bounding ray an oscillation ends on; consecutive
	// oscillations alternate, producing the triangle-wave bounce.
	rayFor := func(i int) float64 {
		if i%2 == 0 {
			return wedge
		}
		return 0
	}

	// Start on the wedge's first bounding ray at r0.
	emit(p.StartRadiusFt, 0, PhaseOutbound)

	// Outbound: radius grows along the blended exponential while the
	// angular phase sweeps ray to ray.
	for i := 0; i < nOut; i++ {
		tMid := (float64(i) + 0.5) / float64(nOut)
		tEnd := float64(i+1) / float64(nOut)
		emit(radiusAt(tMid, p.StartRadiusFt, k, early, late), wedge/2, PhaseOutbound)
		emit(radiusAt(tEnd, p.StartRadiusFt, k, early, late), rayFor(i), PhaseOutbound)
	}

	// Hold: sweep the wedge at the achieved maximum radius, from the ray
	// the outbound leg ended on to the opposite ray.
	holdStart := rayFor(nOut - 1)
	holdEnd := wedge - holdStart
	emit(rMax, wedge/2, PhaseHold)
	emit(rMax, holdEnd, PhaseHold)

	// Inbound: mirror of the outbound leg, radius decaying back to r0.
	for i := 0; i < nIn; i++ {
		tMid := (float64(i) + 0.5) / float64(nIn)
		tEnd := float64(i+1) / float64(nIn)
		// The hold arc finished on holdEnd, so the first inbound
		// oscillation sweeps back to the opposite ray.
		endRay := holdEnd
		if i%2 == 0 {
			endRay = holdStart
		}
		// Reuse the outbound profile reversed so the leg lands exactly on r0.
		emit(radiusAt(1-tMid, p.StartRadiusFt, k, early, late), wedge/2, PhaseInbound)
		emit(radiusAt(1-tEnd, p.StartRadiusFt, k, early, late), endRay, PhaseInbound)
	}

	return wps, nil
}

// MaxRadiusFt exposes the analytically achieved maximum radius for the given
// parameters, for callers that need the real coverage extent (it differs
// from HoldRadiusFt).
func MaxRadiusFt(p FlightParams) (float64, error) {
	if err := p.Validate(); err != nil {
		return 0, err
	}
	k := math.Log(p.HoldRadiusFt / p.StartRadiusFt)
	early, late := densityFactors(p.HoldRadiusFt / p.StartRadiusFt)
	return maxRadius(p.StartRadiusFt, k, early, late), nil
}

// PlanMission generates every slice of the mission in order.
func PlanMission(p FlightParams) ([][]Waypoint, error) {
	if err := p.Validate(); err != nil {
		return nil, err
	}
	slices := make([][]Waypoint, p.Slices)
	for i := 0; i < p.Slices; i++ {
		wps, err := BuildSlice(i, p)
		if err != nil {
			return nil, err
		}
		slices[i] = wps
	}
	return slices, nil
}
