package pathscan

import (
	"math"
	"sort"

	"github.com/HansenHomeAI/v0-spaceport-website-sub007/internal/units"
)

// Severity blend weights. Gradient dominates because sustained climb rate is
// the direct AGL threat; curvature flags the sharp crests that a coarse
// gradient estimate smears out.
const (
	gradientWeight  = 0.7
	curvatureWeight = 0.3
)

// RankSegments scores the span between each consecutive pair of discovery
// samples and returns the spans whose gradient reaches the medium threshold,
// ordered by descending blended severity. The sort is stable so
// equal-severity segments keep path order and reruns are deterministic.
//
// The segment gradient is the larger of the raw cross-segment slope and the
// two endpoint sample gradients. The endpoint gradients come from the
// smoothed series and catch broad ascents; the raw slope is what sees an
// isolated spike the smoothing filter suppressed. Tier cuts compare the
// gradient against the ft-per-100ft thresholds directly (the blended
// severity only orders the refinement queue, since it mixes units).
func RankSegments(samples []SampledPoint, cfg Config) []SegmentRisk {
	if len(samples) < 2 {
		return nil
	}
	var risks []SegmentRisk
	for i := 0; i+1 < len(samples); i++ {
		a, b := samples[i], samples[i+1]
		rawSlope := math.Abs(units.GradientPer100(b.GroundFt-a.GroundFt, b.DistanceFt-a.DistanceFt))
		maxGrad := math.Max(rawSlope, math.Max(math.Abs(a.GradientPer100), math.Abs(b.GradientPer100)))
		maxCurv := math.Max(math.Abs(a.CurvaturePer100), math.Abs(b.CurvaturePer100))
		if maxGrad < cfg.GradMediumFtPer100 {
			continue
		}
		risks = append(risks, SegmentRisk{
			StartIndex:   i,
			EndIndex:     i + 1,
			StartDistFt:  a.DistanceFt,
			EndDistFt:    b.DistanceFt,
			Severity:     gradientWeight*maxGrad + curvatureWeight*maxCurv,
			MaxGradient:  maxGrad,
			MaxCurvature: maxCurv,
			Tier:         tierFor(maxGrad, cfg),
		})
	}
	sort.SliceStable(risks, func(i, j int) bool {
		return risks[i].Severity > risks[j].Severity
	})
	return risks
}

func tierFor(gradient float64, cfg Config) Tier {
	switch {
	case gradient >= cfg.GradCriticalFtPer100:
		return TierCritical
	case gradient >= cfg.GradHighFtPer100:
		return TierHigh
	default:
		return TierMedium
	}
}
