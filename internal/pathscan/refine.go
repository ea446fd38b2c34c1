package pathscan

import (
	"math"
	"sort"

	"github.com/HansenHomeAI/v0-spaceport-website-sub007/internal/monitoring"
	"github.com/HansenHomeAI/v0-spaceport-website-sub007/internal/terrain"
)

// peakSearchIterations is the fixed bisection depth used for critical
// segments. Four iterations with interval halving pin the peak to 1/16 of
// the original segment at a deterministic cost of eight probes; a
// tolerance-based stop would be tighter on gentle terrain but makes probe
// cost input-dependent.
const peakSearchIterations = 4

// refineRule maps a severity tier to its resample interval. Ordered table,
// first match wins; keeps the tier-to-interval mapping auditable in one
// place. Anything below the tiers falls back to 1.5x the discovery interval.
type refineRule struct {
	tier     Tier
	interval func(Config) float64
}

var refineRules = []refineRule{
	{TierCritical, func(c Config) float64 { return c.DenseIntervalFt }},
	{TierHigh, func(c Config) float64 { return c.MediumIntervalFt }},
	{TierMedium, func(c Config) float64 { return c.SparseIntervalFt }},
}

func refineInterval(tier Tier, cfg Config) float64 {
	for _, r := range refineRules {
		if tier == r.tier {
			return r.interval(cfg)
		}
	}
	return 1.5 * cfg.DiscoveryIntervalFt
}

// Refine resamples the top-ranked risk segments at adaptive density and
// returns the refinement samples, the hazards they imply, and the number of
// elevation probes spent. Critical segments get a bisection peak search;
// lower tiers get evenly spaced probes strictly inside the segment (the
// endpoints were already sampled by discovery).
//
// At most ceil(DiscoveryFraction * len(risks)) segments are refined. The
// ranking already put the worst first, so the cap trims the tail, never the
// head. A critical-tier severity tie at the cutoff widens the budget instead
// of splitting the tie, and critical segments that share a discovery sample
// are searched as one interval.
func Refine(risks []SegmentRisk, path []PathVertex, model *terrain.ElevationModel, cfg Config) (samples []SampledPoint, hazards []Hazard, probes int) {
	if len(risks) == 0 {
		return nil, nil, 0
	}
	pl, ok := newPolyline(path)
	if !ok {
		return nil, nil, 0
	}

	budget := int(math.Ceil(cfg.DiscoveryFraction * float64(len(risks))))
	if budget < 1 {
		budget = 1
	}
	if budget > len(risks) {
		budget = len(risks)
	}
	// Tied critical segments usually bracket one peak sitting on their
	// shared discovery sample; admitting only the first would search the
	// wrong flank.
	for budget < len(risks) &&
		risks[budget].Tier == TierCritical && risks[budget-1].Tier == TierCritical &&
		risks[budget].Severity == risks[budget-1].Severity {
		budget++
	}

	for _, risk := range mergeAdjacentCritical(risks[:budget]) {
		if risk.Tier == TierCritical {
			s, h, n := refineCritical(risk, pl, model)
			samples = append(samples, s)
			hazards = append(hazards, h)
			probes += n
			continue
		}
		step := refineInterval(risk.Tier, cfg)
		segLen := risk.EndDistFt - risk.StartDistFt
		n := int(segLen / step)
		if n < 1 {
			continue
		}
		spacing := segLen / float64(n+1)
		for k := 1; k <= n; k++ {
			dist := risk.StartDistFt + float64(k)*spacing
			x, y, seg := pl.at(dist)
			ground := model.ElevationAt(x, y)
			probes++
			sp := SampledPoint{
				X:               x,
				Y:               y,
				DistanceFt:      dist,
				GroundFt:        ground,
				Provenance:      ProvenanceRefinement,
				GradientPer100:  risk.MaxGradient,
				CurvaturePer100: risk.MaxCurvature,
				SegmentIndex:    seg,
			}
			samples = append(samples, sp)
			hazards = append(hazards, Hazard{
				X:               x,
				Y:               y,
				DistanceFt:      dist,
				GroundFt:        ground,
				Severity:        risk.Severity,
				GradientPer100:  risk.MaxGradient,
				CurvaturePer100: risk.MaxCurvature,
				SegmentIndex:    seg,
				Cause:           CauseRefinementProbe,
			})
		}
		monitoring.Tracef("refined segment [%.0f,%.0f]ft tier=%s probes=%d", risk.StartDistFt, risk.EndDistFt, risk.Tier, n)
	}
	return samples, hazards, probes
}

// mergeAdjacentCritical coalesces critical segments that share a discovery
// sample into a single peak-search interval. A peak sitting on the shared
// sample flags both neighbours; bisecting each half separately converges on
// the flanks and can step over the apex, so the whole run is searched at
// once. Lower tiers pass through unchanged.
func mergeAdjacentCritical(risks []SegmentRisk) []SegmentRisk {
	var crit, rest []SegmentRisk
	for _, r := range risks {
		if r.Tier == TierCritical {
			crit = append(crit, r)
		} else {
			rest = append(rest, r)
		}
	}
	if len(crit) < 2 {
		return risks
	}
	sort.SliceStable(crit, func(i, j int) bool {
		return crit[i].StartDistFt < crit[j].StartDistFt
	})
	merged := []SegmentRisk{crit[0]}
	for _, r := range crit[1:] {
		last := &merged[len(merged)-1]
		if r.StartDistFt == last.EndDistFt {
			last.EndIndex = r.EndIndex
			last.EndDistFt = r.EndDistFt
			last.Severity = math.Max(last.Severity, r.Severity)
			last.MaxGradient = math.Max(last.MaxGradient, r.MaxGradient)
			last.MaxCurvature = math.Max(last.MaxCurvature, r.MaxCurvature)
			continue
		}
		merged = append(merged, r)
	}
	out := append(merged, rest...)
	sort.SliceStable(out, func(i, j int) bool {
		return out[i].Severity > out[j].Severity
	})
	return out
}

// refineCritical runs the fixed-depth peak search: each iteration probes the
// quarter points of the live interval and narrows to the half holding the
// higher probe. The best elevation seen across all probes becomes the
// refinement sample and hazard.
func refineCritical(risk SegmentRisk, pl polyline, model *terrain.ElevationModel) (SampledPoint, Hazard, int) {
	lo, hi := risk.StartDistFt, risk.EndDistFt
	bestDist := lo
	bestElev := math.Inf(-1)
	probes := 0

	probe := func(dist float64) float64 {
		x, y, _ := pl.at(dist)
		e := model.ElevationAt(x, y)
		probes++
		if e > bestElev {
			bestElev = e
			bestDist = dist
		}
		return e
	}

	for i := 0; i < peakSearchIterations; i++ {
		w := hi - lo
		mid := lo + w/2
		e1 := probe(lo + w/4)
		e2 := probe(hi - w/4)
		if e1 >= e2 {
			hi = mid
		} else {
			lo = mid
		}
	}

	x, y, seg := pl.at(bestDist)
	monitoring.Tracef("peak search [%.0f,%.0f]ft converged at %.0fft elev=%.0f", risk.StartDistFt, risk.EndDistFt, bestDist, bestElev)
	sp := SampledPoint{
		X:               x,
		Y:               y,
		DistanceFt:      bestDist,
		GroundFt:        bestElev,
		Provenance:      ProvenanceRefinement,
		GradientPer100:  risk.MaxGradient,
		CurvaturePer100: risk.MaxCurvature,
		SegmentIndex:    seg,
	}
	hz := Hazard{
		X:               x,
		Y:               y,
		DistanceFt:      bestDist,
		GroundFt:        bestElev,
		Severity:        risk.Severity,
		GradientPer100:  risk.MaxGradient,
		CurvaturePer100: risk.MaxCurvature,
		SegmentIndex:    seg,
		Cause:           CausePeakSearch,
	}
	return sp, hz, probes
}
