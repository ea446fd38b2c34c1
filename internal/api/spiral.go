package api

import (
	"fmt"
	"net/http"
	"strconv"
	"strings"

	"github.com/go-echarts/go-echarts/v2/charts"
	"github.com/go-echarts/go-echarts/v2/opts"

	"github.com/HansenHomeAI/v0-spaceport-website-sub007/internal/httputil"
	"github.com/HansenHomeAI/v0-spaceport-website-sub007/internal/spiral"
	"github.com/HansenHomeAI/v0-spaceport-website-sub007/internal/units"
)

// spiralRequest overrides the configured defaults; zero-valued fields keep
// the tuning file's values. Units picks the distance unit of the response
// waypoints; the request radii and altitude are always feet.
type spiralRequest struct {
	Slices         int     `json:"slices,omitempty"`
	Bounces        int     `json:"bounces,omitempty"`
	StartRadiusFt  float64 `json:"start_radius_ft,omitempty"`
	HoldRadiusFt   float64 `json:"hold_radius_ft,omitempty"`
	AltitudeFt     float64 `json:"altitude_ft,omitempty"`
	BatteryMinutes float64 `json:"battery_minutes,omitempty"`
	Units          string  `json:"units,omitempty"`
}

// spiralResponse echoes the resolved parameters, always in feet, and carries
// the waypoints and max radius in the requested unit.
type spiralResponse struct {
	Params    spiral.FlightParams `json:"params"`
	Units     string              `json:"units"`
	MaxRadius float64             `json:"max_radius"`
	Slices    [][]spiral.Waypoint `json:"slices"`
}

// convertMission maps the mission coordinates from feet into the given unit.
// Feet passes through unchanged.
func convertMission(mission [][]spiral.Waypoint, unit string) [][]spiral.Waypoint {
	if unit == units.Feet {
		return mission
	}
	out := make([][]spiral.Waypoint, len(mission))
	for i, wps := range mission {
		out[i] = make([]spiral.Waypoint, len(wps))
		for j, wp := range wps {
			wp.X = units.FromFeet(wp.X, unit)
			wp.Y = units.FromFeet(wp.Y, unit)
			wp.Z = units.FromFeet(wp.Z, unit)
			out[i][j] = wp
		}
	}
	return out
}

func (s *Server) resolveFlightParams(req spiralRequest) spiral.FlightParams {
	p := s.cfg.FlightParams()
	if req.Slices != 0 {
		p.Slices = req.Slices
	}
	if req.Bounces != 0 {
		p.Bounces = req.Bounces
	}
	if req.StartRadiusFt != 0 {
		p.StartRadiusFt = req.StartRadiusFt
	}
	if req.HoldRadiusFt != 0 {
		p.HoldRadiusFt = req.HoldRadiusFt
	}
	if req.AltitudeFt != 0 {
		p.AltitudeFt = req.AltitudeFt
	}
	if req.BatteryMinutes != 0 {
		p.BatteryMinutes = req.BatteryMinutes
	}
	return p
}

func (s *Server) handleSpiral(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		httputil.MethodNotAllowed(w)
		return
	}
	var req spiralRequest
	if err := httputil.DecodeJSON(r, &req); err != nil {
		httputil.BadRequest(w, err.Error())
		return
	}
	unit := req.Units
	if unit == "" {
		unit = units.Feet
	}
	if !units.IsValid(unit) {
		httputil.BadRequest(w, fmt.Sprintf("unknown units %q (want one of %s)", unit, strings.Join(units.ValidUnits, ", ")))
		return
	}
	p := s.resolveFlightParams(req)

	slices, err := spiral.PlanMission(p)
	if err != nil {
		httputil.BadRequest(w, err.Error())
		return
	}
	rMax, err := spiral.MaxRadiusFt(p)
	if err != nil {
		httputil.BadRequest(w, err.Error())
		return
	}
	httputil.WriteJSONOK(w, spiralResponse{
		Params:    p,
		Units:     unit,
		MaxRadius: units.FromFeet(rMax, unit),
		Slices:    convertMission(slices, unit),
	})
}

// handleSpiralChart renders the planned mission as an interactive scatter
// chart, one series per battery slice. Parameters come from the query string
// so the chart is linkable from a browser.
func (s *Server) handleSpiralChart(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		httputil.MethodNotAllowed(w)
		return
	}
	req, err := spiralRequestFromQuery(r)
	if err != nil {
		httputil.BadRequest(w, err.Error())
		return
	}
	p := s.resolveFlightParams(req)

	slices, err := spiral.PlanMission(p)
	if err != nil {
		httputil.BadRequest(w, err.Error())
		return
	}
	rMax, err := spiral.MaxRadiusFt(p)
	if err != nil {
		httputil.BadRequest(w, err.Error())
		return
	}
	pad := rMax * 1.1

	scatter := charts.NewScatter()
	scatter.SetGlobalOptions(
		charts.WithInitializationOpts(opts.Initialization{PageTitle: "Spiral mission", Theme: "dark", Width: "900px", Height: "900px"}),
		charts.WithTitleOpts(opts.Title{Title: "Spiral mission", Subtitle: fmt.Sprintf("slices=%d bounces=%d rMax=%.0fft", p.Slices, p.Bounces, rMax)}),
		charts.WithTooltipOpts(opts.Tooltip{Show: opts.Bool(true)}),
		charts.WithXAxisOpts(opts.XAxis{Min: -pad, Max: pad, Name: "X (ft)", NameLocation: "middle", NameGap: 25}),
		charts.WithYAxisOpts(opts.YAxis{Min: -pad, Max: pad, Name: "Y (ft)", NameLocation: "middle", NameGap: 30}),
	)
	for i, wps := range slices {
		data := make([]opts.ScatterData, len(wps))
		for j, wp := range wps {
			data[j] = opts.ScatterData{Value: []interface{}{wp.X, wp.Y, wp.Phase}}
		}
		scatter.AddSeries(fmt.Sprintf("slice %d", i), data,
			charts.WithScatterChartOpts(opts.ScatterChart{SymbolSize: 6}))
	}

	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	if err := scatter.Render(w); err != nil {
		httputil.InternalServerError(w, fmt.Sprintf("failed to render chart: %v", err))
	}
}

func spiralRequestFromQuery(r *http.Request) (spiralRequest, error) {
	var req spiralRequest
	q := r.URL.Query()
	ints := []struct {
		key string
		dst *int
	}{
		{"slices", &req.Slices},
		{"bounces", &req.Bounces},
	}
	for _, f := range ints {
		if v := q.Get(f.key); v != "" {
			n, err := strconv.Atoi(v)
			if err != nil {
				return req, fmt.Errorf("invalid %q parameter", f.key)
			}
			*f.dst = n
		}
	}
	floats := []struct {
		key string
		dst *float64
	}{
		{"start_radius_ft", &req.StartRadiusFt},
		{"hold_radius_ft", &req.HoldRadiusFt},
		{"altitude_ft", &req.AltitudeFt},
		{"battery_minutes", &req.BatteryMinutes},
	}
	for _, f := range floats {
		if v := q.Get(f.key); v != "" {
			x, err := strconv.ParseFloat(v, 64)
			if err != nil {
				return req, fmt.Errorf("invalid %q parameter", f.key)
			}
			*f.dst = x
		}
	}
	return req, nil
}
