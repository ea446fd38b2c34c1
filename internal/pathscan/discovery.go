package pathscan

import (
	"math"
	"sort"

	"gonum.org/v1/gonum/stat"

	"github.com/HansenHomeAI/v0-spaceport-website-sub007/internal/terrain"
	"github.com/HansenHomeAI/v0-spaceport-website-sub007/internal/units"
)

// smoothWindow is the odd window width of the median/mean filter applied to
// the raw discovery elevations before derivative estimation.
const smoothWindow = 5

// polyline is the cumulative-distance parametrization of a path. Zero-length
// segments are dropped at construction so repeated vertices cannot break the
// parametrization.
type polyline struct {
	verts []PathVertex
	cum   []float64 // cum[i] is the path distance of verts[i]
}

func newPolyline(path []PathVertex) (polyline, bool) {
	if len(path) < 2 {
		return polyline{}, false
	}
	verts := make([]PathVertex, 0, len(path))
	cum := make([]float64, 0, len(path))
	verts = append(verts, path[0])
	cum = append(cum, 0)
	for _, v := range path[1:] {
		prev := verts[len(verts)-1]
		d := math.Hypot(v.X-prev.X, v.Y-prev.Y)
		if d == 0 {
			continue
		}
		verts = append(verts, v)
		cum = append(cum, cum[len(cum)-1]+d)
	}
	if len(verts) < 2 {
		return polyline{}, false
	}
	return polyline{verts: verts, cum: cum}, true
}

func (pl polyline) total() float64 {
	return pl.cum[len(pl.cum)-1]
}

// at interpolates the world position at the given path distance and reports
// the polyline segment it falls on. The path endpoints are returned exactly,
// with no interpolation rounding.
func (pl polyline) at(dist float64) (x, y float64, segment int) {
	if dist <= 0 {
		return pl.verts[0].X, pl.verts[0].Y, 0
	}
	if dist >= pl.total() {
		last := len(pl.verts) - 1
		return pl.verts[last].X, pl.verts[last].Y, last - 1
	}
	// First vertex with cumulative distance beyond the target.
	hi := sort.SearchFloat64s(pl.cum, dist)
	if pl.cum[hi] == dist {
		return pl.verts[hi].X, pl.verts[hi].Y, hi - 1
	}
	lo := hi - 1
	f := (dist - pl.cum[lo]) / (pl.cum[hi] - pl.cum[lo])
	a, b := pl.verts[lo], pl.verts[hi]
	return a.X + f*(b.X-a.X), a.Y + f*(b.Y-a.Y), lo
}

// SparseScan walks the path's distance parametrization at the configured
// discovery interval and probes the elevation model at each step. Interior
// samples sit at k*interval for every k with k*interval <= total-interval;
// the endpoint is always sampled, so the final span may run up to twice the
// interval rather than leaving a sliver sample hugging the endpoint. Both
// path endpoints appear exactly.
//
// The raw elevation series is smoothed with a combined median/mean filter,
// then per-sample gradient (windowed central difference over a 2x-interval
// lookout, ft per 100 ft) and curvature (discrete gradient derivative over
// the local distance span) are estimated.
//
// A path with fewer than two distinct vertices or zero total length yields
// an empty slice; degenerate input is not an error.
func SparseScan(path []PathVertex, model *terrain.ElevationModel, cfg Config) []SampledPoint {
	pl, ok := newPolyline(path)
	if !ok {
		return nil
	}
	total := pl.total()
	d := cfg.DiscoveryIntervalFt

	targets := []float64{0}
	for k := 1; float64(k)*d <= total-d; k++ {
		targets = append(targets, float64(k)*d)
	}
	targets = append(targets, total)

	samples := make([]SampledPoint, len(targets))
	raw := make([]float64, len(targets))
	for i, t := range targets {
		x, y, seg := pl.at(t)
		raw[i] = model.ElevationAt(x, y)
		samples[i] = SampledPoint{
			X:            x,
			Y:            y,
			DistanceFt:   t,
			GroundFt:     raw[i],
			Provenance:   ProvenanceDiscovery,
			SegmentIndex: seg,
		}
	}

	smoothed := smoothElevations(raw)
	attachDerivatives(samples, smoothed, d)
	return samples
}

// smoothElevations applies a centered filter blending the window median and
// mean in equal parts. The median half rejects single-probe spikes, the mean
// half keeps the response from going flat across real ridgelines. Edge
// values repeat at the series boundaries, mirroring the elevation model's
// clamp semantics, so every position sees a full window.
//
// Only the derivative estimates read the smoothed series; segment risk
// scoring works on the raw elevations, since an isolated spike a median
// filter suppresses is exactly what the refinement pass must not miss.
func smoothElevations(raw []float64) []float64 {
	out := make([]float64, len(raw))
	half := smoothWindow / 2
	buf := make([]float64, 0, smoothWindow)
	for i := range raw {
		buf = buf[:0]
		for j := i - half; j <= i+half; j++ {
			k := j
			if k < 0 {
				k = 0
			}
			if k > len(raw)-1 {
				k = len(raw) - 1
			}
			buf = append(buf, raw[k])
		}
		mean := stat.Mean(buf, nil)
		sort.Float64s(buf)
		median := buf[len(buf)/2]
		out[i] = 0.5*median + 0.5*mean
	}
	return out
}

// attachDerivatives fills gradient and curvature on the samples from the
// smoothed elevation series. The gradient lookout spans at most two
// discovery intervals to either side.
func attachDerivatives(samples []SampledPoint, elev []float64, interval float64) {
	n := len(samples)
	grads := make([]float64, n)
	lookout := 2 * interval
	for i := 0; i < n; i++ {
		lo, hi := i, i
		for lo > 0 && samples[i].DistanceFt-samples[lo-1].DistanceFt <= lookout {
			lo--
		}
		for hi < n-1 && samples[hi+1].DistanceFt-samples[i].DistanceFt <= lookout {
			hi++
		}
		grads[i] = units.GradientPer100(elev[hi]-elev[lo], samples[hi].DistanceFt-samples[lo].DistanceFt)
		samples[i].GradientPer100 = grads[i]
	}
	for i := 0; i < n; i++ {
		lo, hi := i-1, i+1
		if lo < 0 {
			lo = 0
		}
		if hi > n-1 {
			hi = n - 1
		}
		if hi == lo {
			continue
		}
		run := samples[hi].DistanceFt - samples[lo].DistanceFt
		samples[i].CurvaturePer100 = units.GradientPer100(grads[hi]-grads[lo], run)
	}
}
