package pathscan

import (
	"fmt"
	"math"

	"github.com/HansenHomeAI/v0-spaceport-website-sub007/internal/monitoring"
	"github.com/HansenHomeAI/v0-spaceport-website-sub007/internal/terrain"
)

// PromoteDiscoveryHazards flags discovery samples whose own gradient or
// curvature already exceeds the medium threshold. Hazards can originate from
// either pass: coarse discovery catches broad hazards refinement might step
// over, while refinement catches sharp local peaks invisible at discovery
// resolution.
func PromoteDiscoveryHazards(samples []SampledPoint, cfg Config) []Hazard {
	var hazards []Hazard
	for _, s := range samples {
		grad := math.Abs(s.GradientPer100)
		curv := math.Abs(s.CurvaturePer100)
		cause := ""
		switch {
		case grad >= cfg.GradMediumFtPer100:
			cause = CauseDiscoveryGradient
		case curv >= cfg.GradMediumFtPer100:
			cause = CauseDiscoveryCurvature
		default:
			continue
		}
		hazards = append(hazards, Hazard{
			X:               s.X,
			Y:               s.Y,
			DistanceFt:      s.DistanceFt,
			GroundFt:        s.GroundFt,
			Severity:        gradientWeight*grad + curvatureWeight*curv,
			GradientPer100:  s.GradientPer100,
			CurvaturePer100: s.CurvaturePer100,
			SegmentIndex:    s.SegmentIndex,
			Cause:           cause,
		})
	}
	return hazards
}

// warnOutsideGrid logs when the path leaves the elevation grid's footprint.
// The model clamps out-of-range queries to the edge cells, so the run still
// completes, but the elevations under that stretch are repeats of the grid
// edge and the caller should know. The footprint is a rectangle, so
// checking vertices covers the straight segments between them.
func warnOutsideGrid(path []PathVertex, model *terrain.ElevationModel) {
	minX, minY, maxX, maxY := model.Bounds()
	for _, v := range path {
		if v.X < minX || v.X > maxX || v.Y < minY || v.Y > maxY {
			monitoring.Logf("pathscan: path vertex (%.0f, %.0f) outside grid x[%.0f,%.0f] y[%.0f,%.0f]; edge elevations repeat",
				v.X, v.Y, minX, maxX, minY, maxY)
			return
		}
	}
}

// Analyze runs the full linear pipeline: discovery scan, risk ranking,
// refinement, discovery-hazard promotion, and safety waypoint synthesis.
// The config is validated here, the single eager validation point; the
// stage functions trust their inputs.
//
// A degenerate path (fewer than two distinct vertices, zero length) yields a
// zero-value Result with empty slices and zero metrics, not an error;
// callers check emptiness. There is no internal probe cap or timeout: cost
// scales with path length over discovery interval, and a caller at a
// request boundary must impose its own deadline.
func Analyze(path []PathVertex, model *terrain.ElevationModel, agl AglConstraints, cfg Config) (Result, error) {
	if err := cfg.Validate(); err != nil {
		return Result{}, fmt.Errorf("invalid sampler config: %w", err)
	}

	warnOutsideGrid(path, model)

	discovery := SparseScan(path, model, cfg)
	if len(discovery) == 0 {
		return Result{}, nil
	}

	risks := RankSegments(discovery, cfg)
	refSamples, refHazards, refProbes := Refine(risks, path, model, cfg)

	hazards := append(PromoteDiscoveryHazards(discovery, cfg), refHazards...)
	safety := Synthesize(hazards, agl, cfg)

	monitoring.Logf("pathscan: %d discovery, %d refinement probes, %d hazards, %d safety waypoints",
		len(discovery), refProbes, len(hazards), len(safety))

	return Result{
		DiscoverySamples:  discovery,
		RefinementSamples: refSamples,
		Hazards:           hazards,
		SafetyWaypoints:   safety,
		Metrics: Metrics{
			DiscoveryPointsUsed:  len(discovery),
			RefinementPointsUsed: refProbes,
			TotalPointsUsed:      len(discovery) + refProbes,
			HazardsDetected:      len(hazards),
			SafetyWaypointCount:  len(safety),
		},
	}, nil
}
