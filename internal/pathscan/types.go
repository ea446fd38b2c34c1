// Package pathscan analyzes flight paths against a terrain elevation model.
// A coarse discovery pass walks the whole path at a fixed interval, a risk
// ranker orders the resulting segments by hazard severity, a refinement pass
// resamples the worst segments at adaptive density, and a synthesizer turns
// the flagged hazards into a minimal set of AGL-enforcing safety waypoints.
//
// Every function here is a pure function of its inputs: all values are fresh
// per invocation and the only shared state, the elevation model, is read-only.
// Concurrent analyses over the same model are safe.
package pathscan

// Sample provenance values.
const (
	ProvenanceDiscovery  = "discovery"
	ProvenanceRefinement = "refinement"
)

// Hazard cause values.
const (
	CausePeakSearch         = "peak_search"
	CauseRefinementProbe    = "refinement_probe"
	CauseDiscoveryGradient  = "discovery_gradient"
	CauseDiscoveryCurvature = "discovery_curvature"
)

// Tier classifies a risk segment's severity against the configured
// gradient thresholds.
type Tier string

const (
	TierMedium   Tier = "medium"
	TierHigh     Tier = "high"
	TierCritical Tier = "critical"
)

// PathVertex is one vertex of the flight path polyline. The ordered vertex
// sequence defines the path; consecutive vertices must not coincide (the
// sampler drops zero-length segments while building its distance
// parametrization, so degenerate input degrades rather than breaks).
type PathVertex struct {
	X          float64 `json:"x"`
	Y          float64 `json:"y"`
	AltitudeFt float64 `json:"altitudeFt"`
	Phase      string  `json:"phase,omitempty"`
}

// SampledPoint is one elevation probe along the path.
type SampledPoint struct {
	X               float64 `json:"x"`
	Y               float64 `json:"y"`
	DistanceFt      float64 `json:"distanceFt"`
	GroundFt        float64 `json:"groundFt"`
	Provenance      string  `json:"provenance"`
	GradientPer100  float64 `json:"gradientPer100"`
	CurvaturePer100 float64 `json:"curvaturePer100"`
	SegmentIndex    int     `json:"segmentIndex"`
}

// SegmentRisk scores the span between two consecutive discovery samples.
// Produced by RankSegments, consumed by Refine; not part of the final result.
type SegmentRisk struct {
	StartIndex   int // index into the discovery sample slice
	EndIndex     int
	StartDistFt  float64
	EndDistFt    float64
	Severity     float64
	MaxGradient  float64
	MaxCurvature float64
	Tier         Tier
}

// Hazard is a flagged location where gradient or curvature exceeded a
// configured threshold. Hazards are ephemeral analysis artifacts: they feed
// the safety synthesizer and the result payload, nothing persists them.
type Hazard struct {
	X               float64 `json:"x"`
	Y               float64 `json:"y"`
	DistanceFt      float64 `json:"distanceFt"`
	GroundFt        float64 `json:"groundFt"`
	Severity        float64 `json:"severity"`
	GradientPer100  float64 `json:"gradientPer100"`
	CurvaturePer100 float64 `json:"curvaturePer100"`
	SegmentIndex    int     `json:"segmentIndex"`
	Cause           string  `json:"cause"`
}

// SafetyWaypoint is an inserted waypoint enforcing AGL constraints near a
// hazard. Output order follows acceptance order (severity descending);
// callers needing path order must re-sort by DistanceFt.
type SafetyWaypoint struct {
	X            float64 `json:"x"`
	Y            float64 `json:"y"`
	AltitudeFt   float64 `json:"altitudeFt"`
	GroundFt     float64 `json:"groundFt"`
	SegmentIndex int     `json:"segmentIndex"`
	DistanceFt   float64 `json:"distanceFt"`
	Reason       string  `json:"reason"`
	Severity     float64 `json:"severity"`
}

// AglConstraints bounds a waypoint's clearance above ground level. Either
// bound may be nil, meaning unconstrained.
type AglConstraints struct {
	MinAglFt *float64 `json:"minAglFt,omitempty"`
	MaxAglFt *float64 `json:"maxAglFt,omitempty"`
}

// Metrics summarizes the probe cost and findings of one analysis run.
// RefinementPointsUsed counts elevation queries made by the refinement pass
// (including interior bisection probes), since probe count is the cost the
// two-pass strategy exists to minimize.
type Metrics struct {
	DiscoveryPointsUsed  int `json:"discoveryPointsUsed"`
	RefinementPointsUsed int `json:"refinementPointsUsed"`
	TotalPointsUsed      int `json:"totalPointsUsed"`
	HazardsDetected      int `json:"hazardsDetected"`
	SafetyWaypointCount  int `json:"safetyWaypointCount"`
}

// Result is the full output of one analysis run.
type Result struct {
	DiscoverySamples  []SampledPoint   `json:"discoverySamples"`
	RefinementSamples []SampledPoint   `json:"refinementSamples"`
	Hazards           []Hazard         `json:"hazards"`
	SafetyWaypoints   []SafetyWaypoint `json:"safetyWaypoints"`
	Metrics           Metrics          `json:"metrics"`
}
