package api

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"strconv"

	"github.com/google/uuid"
	"github.com/paulmach/orb"
	"github.com/paulmach/orb/geojson"

	"github.com/HansenHomeAI/v0-spaceport-website-sub007/internal/demstore"
	"github.com/HansenHomeAI/v0-spaceport-website-sub007/internal/httputil"
	"github.com/HansenHomeAI/v0-spaceport-website-sub007/internal/monitoring"
	"github.com/HansenHomeAI/v0-spaceport-website-sub007/internal/pathscan"
	"github.com/HansenHomeAI/v0-spaceport-website-sub007/internal/profileplot"
	"github.com/HansenHomeAI/v0-spaceport-website-sub007/internal/terrain"
)

// analyzeRequest is the body of POST /api/analyze. The path is a GeoJSON
// LineString whose coordinates are in the DEM's site-local frame, in feet.
// Either dem_id references a stored model or grid carries one inline.
type analyzeRequest struct {
	DemID    string          `json:"dem_id,omitempty"`
	Grid     *demUpload      `json:"grid,omitempty"`
	Path     json.RawMessage `json:"path"`
	MinAglFt *float64        `json:"min_agl_ft,omitempty"`
	MaxAglFt *float64        `json:"max_agl_ft,omitempty"`
}

type analyzeResponse struct {
	RunID string `json:"run_id"`
	pathscan.Result
}

// parsePath decodes the GeoJSON LineString into path vertices.
func parsePath(raw json.RawMessage) ([]pathscan.PathVertex, error) {
	if len(raw) == 0 {
		return nil, errors.New("path is required")
	}
	geom, err := geojson.UnmarshalGeometry(raw)
	if err != nil {
		return nil, fmt.Errorf("parsing path geometry: %w", err)
	}
	ls, ok := geom.Geometry().(orb.LineString)
	if !ok {
		return nil, fmt.Errorf("path must be a LineString, got %s", geom.Type)
	}
	if len(ls) < 2 {
		return nil, errors.New("path needs at least two vertices")
	}
	verts := make([]pathscan.PathVertex, len(ls))
	for i, pt := range ls {
		verts[i] = pathscan.PathVertex{X: pt.X(), Y: pt.Y()}
	}
	return verts, nil
}

// runAnalysis parses and executes an analyze request body, shared by the JSON
// and PNG endpoints.
func (s *Server) runAnalysis(r *http.Request) (pathscan.Result, string, int, error) {
	var req analyzeRequest
	if err := httputil.DecodeJSON(r, &req); err != nil {
		return pathscan.Result{}, "", http.StatusBadRequest, err
	}
	verts, err := parsePath(req.Path)
	if err != nil {
		return pathscan.Result{}, "", http.StatusBadRequest, err
	}
	var model *terrain.ElevationModel
	switch {
	case req.Grid != nil:
		model, err = req.Grid.model()
		if err != nil {
			return pathscan.Result{}, "", http.StatusBadRequest, err
		}
	case req.DemID != "":
		model, err = s.store.Get(r.Context(), req.DemID)
		if errors.Is(err, demstore.ErrNotFound) {
			return pathscan.Result{}, "", http.StatusNotFound, fmt.Errorf("dem %s not found", req.DemID)
		}
		if err != nil {
			return pathscan.Result{}, "", http.StatusInternalServerError, err
		}
	default:
		return pathscan.Result{}, "", http.StatusBadRequest, errors.New("dem_id or grid is required")
	}

	agl := pathscan.AglConstraints{MinAglFt: req.MinAglFt, MaxAglFt: req.MaxAglFt}
	res, err := pathscan.Analyze(verts, model, agl, s.cfg.Pathscan())
	if err != nil {
		return pathscan.Result{}, "", http.StatusBadRequest, err
	}

	runID := uuid.NewString()
	if req.DemID != "" {
		if err := s.store.RecordAnalysis(r.Context(), runID, req.DemID, res.Metrics); err != nil {
			// History is advisory; the analysis result is still good.
			monitoring.Logf("failed to record analysis %s: %v", runID, err)
		}
	}
	return res, runID, http.StatusOK, nil
}

func (s *Server) handleAnalyze(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		httputil.MethodNotAllowed(w)
		return
	}
	res, runID, status, err := s.runAnalysis(r)
	if err != nil {
		httputil.WriteJSONError(w, status, err.Error())
		return
	}
	httputil.WriteJSONOK(w, analyzeResponse{RunID: runID, Result: res})
}

// handleAnalyzeProfile runs the same analysis but responds with a rendered
// elevation profile PNG instead of JSON.
func (s *Server) handleAnalyzeProfile(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		httputil.MethodNotAllowed(w)
		return
	}
	res, _, status, err := s.runAnalysis(r)
	if err != nil {
		httputil.WriteJSONError(w, status, err.Error())
		return
	}
	w.Header().Set("Content-Type", "image/png")
	if err := profileplot.WritePNG(res, w); err != nil {
		monitoring.Logf("profile render failed: %v", err)
	}
}

func (s *Server) handleAnalysisHistory(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		httputil.MethodNotAllowed(w)
		return
	}
	demID := r.URL.Query().Get("dem_id")
	if demID == "" {
		httputil.BadRequest(w, "dem_id is required")
		return
	}
	limit := 100
	if l := r.URL.Query().Get("limit"); l != "" {
		parsed, err := strconv.Atoi(l)
		if err != nil || parsed < 1 {
			httputil.BadRequest(w, "invalid 'limit' parameter")
			return
		}
		limit = parsed
	}
	recs, err := s.store.ListAnalyses(r.Context(), demID, limit)
	if err != nil {
		httputil.InternalServerError(w, fmt.Sprintf("failed to list analyses: %v", err))
		return
	}
	if recs == nil {
		recs = []demstore.AnalysisRecord{}
	}
	httputil.WriteJSONOK(w, recs)
}
