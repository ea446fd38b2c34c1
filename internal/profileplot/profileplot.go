// Package profileplot renders elevation profile charts for analyzed flight
// paths: ground elevation against along-path distance, with hazard and safety
// waypoint markers overlaid.
package profileplot

import (
	"fmt"
	"image/color"
	"io"
	"sort"

	"gonum.org/v1/plot"
	"gonum.org/v1/plot/plotter"
	"gonum.org/v1/plot/vg"
	"gonum.org/v1/plot/vg/draw"

	"github.com/HansenHomeAI/v0-spaceport-website-sub007/internal/pathscan"
)

var (
	groundColor = color.RGBA{R: 0x31, G: 0x68, B: 0x8e, A: 0xff}
	hazardColor = color.RGBA{R: 0xd6, G: 0x2f, B: 0x2f, A: 0xff}
	safetyColor = color.RGBA{R: 0x35, G: 0xb7, B: 0x79, A: 0xff}
)

// Build assembles the profile plot from an analysis result. Discovery and
// refinement samples are merged and sorted by distance so the ground line is
// monotone in x even though refinement samples arrive out of order.
func Build(res pathscan.Result) (*plot.Plot, error) {
	p := plot.New()
	p.Title.Text = "Elevation profile"
	p.X.Label.Text = "Along-path distance (ft)"
	p.Y.Label.Text = "Elevation (ft)"
	p.Add(plotter.NewGrid())

	samples := make([]pathscan.SampledPoint, 0, len(res.DiscoverySamples)+len(res.RefinementSamples))
	samples = append(samples, res.DiscoverySamples...)
	samples = append(samples, res.RefinementSamples...)
	sort.Slice(samples, func(i, j int) bool {
		return samples[i].DistanceFt < samples[j].DistanceFt
	})

	groundPts := make(plotter.XYs, len(samples))
	for i, s := range samples {
		groundPts[i] = plotter.XY{X: s.DistanceFt, Y: s.GroundFt}
	}
	groundLine, err := plotter.NewLine(groundPts)
	if err != nil {
		return nil, fmt.Errorf("building ground line: %w", err)
	}
	groundLine.Color = groundColor
	groundLine.Width = vg.Points(1.5)
	p.Add(groundLine)
	p.Legend.Add("ground", groundLine)

	if len(res.Hazards) > 0 {
		hazardPts := make(plotter.XYs, len(res.Hazards))
		for i, h := range res.Hazards {
			hazardPts[i] = plotter.XY{X: h.DistanceFt, Y: h.GroundFt}
		}
		hazardScatter, err := plotter.NewScatter(hazardPts)
		if err != nil {
			return nil, fmt.Errorf("building hazard markers: %w", err)
		}
		hazardScatter.Color = hazardColor
		hazardScatter.Radius = vg.Points(3)
		p.Add(hazardScatter)
		p.Legend.Add("hazard", hazardScatter)
	}

	if len(res.SafetyWaypoints) > 0 {
		safetyPts := make(plotter.XYs, len(res.SafetyWaypoints))
		for i, wp := range res.SafetyWaypoints {
			safetyPts[i] = plotter.XY{X: wp.DistanceFt, Y: wp.AltitudeFt}
		}
		safetyScatter, err := plotter.NewScatter(safetyPts)
		if err != nil {
			return nil, fmt.Errorf("building safety markers: %w", err)
		}
		safetyScatter.Color = safetyColor
		safetyScatter.Radius = vg.Points(4)
		safetyScatter.Shape = draw.TriangleGlyph{}
		p.Add(safetyScatter)
		p.Legend.Add("safety waypoint", safetyScatter)
	}

	p.Legend.Top = true
	return p, nil
}

// WritePNG renders the profile as a PNG to w.
func WritePNG(res pathscan.Result, w io.Writer) error {
	p, err := Build(res)
	if err != nil {
		return err
	}
	wt, err := p.WriterTo(14*vg.Inch, 6*vg.Inch, "png")
	if err != nil {
		return fmt.Errorf("rendering profile png: %w", err)
	}
	if _, err := wt.WriteTo(w); err != nil {
		return fmt.Errorf("writing profile png: %w", err)
	}
	return nil
}

// SavePNG renders the profile as a PNG file at path.
func SavePNG(res pathscan.Result, path string) error {
	p, err := Build(res)
	if err != nil {
		return err
	}
	if err := p.Save(14*vg.Inch, 6*vg.Inch, path); err != nil {
		return fmt.Errorf("saving profile png: %w", err)
	}
	return nil
}
