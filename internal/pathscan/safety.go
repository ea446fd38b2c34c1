package pathscan

import (
	"math"
	"sort"

	"github.com/dhconnelly/rtreego"
)

// acceptedEntry wraps an accepted safety waypoint for R-tree storage.
type acceptedEntry struct {
	wp   SafetyWaypoint
	rect rtreego.Rect
}

// Bounds implements rtreego.Spatial.
func (e *acceptedEntry) Bounds() rtreego.Rect {
	return e.rect
}

// pointRect builds a degenerate rectangle around a point; rtreego requires
// strictly positive extents.
func pointRect(x, y float64) rtreego.Rect {
	r, err := rtreego.NewRect(rtreego.Point{x, y}, []float64{1e-6, 1e-6})
	if err != nil {
		// Only reachable with non-finite coordinates, which the sampler
		// never produces.
		panic(err)
	}
	return r
}

// Synthesize converts ranked hazards into a minimal, de-duplicated set of
// AGL-enforcing safety waypoints. Hazards are visited in descending severity
// (stable, so reruns on identical input produce identical output) and a
// hazard is accepted only if it is farther than MinSafetySpacingFt from every
// already-accepted hazard both straight-line and along the path. The double
// condition kills spatial duplicates and along-path duplicates in one pass.
//
// Each accepted hazard's target altitude is ground + max(minAGL,
// SafetyBufferFt), clamped to ground + maxAGL when that bound is set. Output
// follows acceptance order; callers needing path order re-sort by DistanceFt.
func Synthesize(hazards []Hazard, agl AglConstraints, cfg Config) []SafetyWaypoint {
	if len(hazards) == 0 {
		return nil
	}
	ranked := make([]Hazard, len(hazards))
	copy(ranked, hazards)
	sort.SliceStable(ranked, func(i, j int) bool {
		return ranked[i].Severity > ranked[j].Severity
	})

	spacing := cfg.MinSafetySpacingFt
	tree := rtreego.NewTree(2, 2, 8)
	var out []SafetyWaypoint

	for _, hz := range ranked {
		if tooClose(tree, hz, spacing) {
			continue
		}

		enforced := cfg.SafetyBufferFt
		if agl.MinAglFt != nil && *agl.MinAglFt > enforced {
			enforced = *agl.MinAglFt
		}
		alt := hz.GroundFt + enforced
		if agl.MaxAglFt != nil && alt > hz.GroundFt+*agl.MaxAglFt {
			alt = hz.GroundFt + *agl.MaxAglFt
		}

		wp := SafetyWaypoint{
			X:            hz.X,
			Y:            hz.Y,
			AltitudeFt:   alt,
			GroundFt:     hz.GroundFt,
			SegmentIndex: hz.SegmentIndex,
			DistanceFt:   hz.DistanceFt,
			Reason:       hz.Cause,
			Severity:     hz.Severity,
		}
		out = append(out, wp)
		tree.Insert(&acceptedEntry{wp: wp, rect: pointRect(hz.X, hz.Y)})
	}
	return out
}

// tooClose reports whether the hazard violates the spacing rule against any
// accepted waypoint. The R-tree narrows the candidates to the spacing
// neighborhood; anything outside it is beyond the spacing both straight-line
// and along the path (along-path proximity implies straight-line proximity,
// since the straight line is the shortest route between two path points).
func tooClose(tree *rtreego.Rtree, hz Hazard, spacing float64) bool {
	query, err := rtreego.NewRect(
		rtreego.Point{hz.X - spacing, hz.Y - spacing},
		[]float64{2 * spacing, 2 * spacing},
	)
	if err != nil {
		return false
	}
	for _, item := range tree.SearchIntersect(query) {
		wp := item.(*acceptedEntry).wp
		straight := math.Hypot(hz.X-wp.X, hz.Y-wp.Y)
		alongPath := math.Abs(hz.DistanceFt - wp.DistanceFt)
		if straight <= spacing || alongPath <= spacing {
			return true
		}
	}
	return false
}
