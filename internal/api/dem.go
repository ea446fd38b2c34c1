package api

import (
	"errors"
	"fmt"
	"net/http"
	"strings"

	"github.com/google/uuid"

	"github.com/HansenHomeAI/v0-spaceport-website-sub007/internal/demstore"
	"github.com/HansenHomeAI/v0-spaceport-website-sub007/internal/httputil"
	"github.com/HansenHomeAI/v0-spaceport-website-sub007/internal/terrain"
	"github.com/HansenHomeAI/v0-spaceport-website-sub007/internal/units"
)

// demUpload is the body of PUT /api/dem. Elevations are row-major,
// south-west origin, one value per grid node. Units declares the distance
// unit of cell_size, origin and elevations; empty means feet. The store only
// ever holds feet.
type demUpload struct {
	ID         string    `json:"id,omitempty"`
	Name       string    `json:"name"`
	CellSize   float64   `json:"cell_size"`
	Cols       int       `json:"cols"`
	Rows       int       `json:"rows"`
	OriginX    float64   `json:"origin_x"`
	OriginY    float64   `json:"origin_y"`
	Elevations []float64 `json:"elevations"`
	Units      string    `json:"units,omitempty"`
}

// model validates the upload and converts it into an elevation model,
// normalising all distances to feet.
func (u *demUpload) model() (*terrain.ElevationModel, error) {
	unit := u.Units
	if unit == "" {
		unit = units.Feet
	}
	if !units.IsValid(unit) {
		return nil, fmt.Errorf("unknown units %q (want one of %s)", unit, strings.Join(units.ValidUnits, ", "))
	}
	elevs := u.Elevations
	if unit != units.Feet {
		elevs = make([]float64, len(u.Elevations))
		for i, v := range u.Elevations {
			elevs[i] = units.ToFeet(v, unit)
		}
	}
	return terrain.NewElevationModel(
		units.ToFeet(u.CellSize, unit), u.Cols, u.Rows,
		units.ToFeet(u.OriginX, unit), units.ToFeet(u.OriginY, unit), elevs)
}

func (s *Server) handleDem(w http.ResponseWriter, r *http.Request) {
	switch r.Method {
	case http.MethodPut:
		s.putDem(w, r)
	case http.MethodGet:
		s.getDem(w, r)
	case http.MethodDelete:
		s.deleteDem(w, r)
	default:
		httputil.MethodNotAllowed(w)
	}
}

func (s *Server) putDem(w http.ResponseWriter, r *http.Request) {
	var req demUpload
	if err := httputil.DecodeJSON(r, &req); err != nil {
		httputil.BadRequest(w, err.Error())
		return
	}

	model, err := req.model()
	if err != nil {
		httputil.BadRequest(w, err.Error())
		return
	}

	id := req.ID
	if id == "" {
		id = uuid.NewString()
	}
	if err := s.store.Put(r.Context(), id, req.Name, model); err != nil {
		httputil.InternalServerError(w, fmt.Sprintf("failed to store dem: %v", err))
		return
	}
	httputil.WriteJSONOK(w, map[string]string{"id": id})
}

func (s *Server) getDem(w http.ResponseWriter, r *http.Request) {
	id := r.URL.Query().Get("id")
	if id == "" {
		infos, err := s.store.List(r.Context())
		if err != nil {
			httputil.InternalServerError(w, fmt.Sprintf("failed to list dems: %v", err))
			return
		}
		if infos == nil {
			infos = []demstore.ModelInfo{}
		}
		httputil.WriteJSONOK(w, infos)
		return
	}

	info, err := s.store.Info(r.Context(), id)
	if errors.Is(err, demstore.ErrNotFound) {
		httputil.NotFound(w, fmt.Sprintf("dem %s not found", id))
		return
	}
	if err != nil {
		httputil.InternalServerError(w, fmt.Sprintf("failed to load dem: %v", err))
		return
	}
	httputil.WriteJSONOK(w, info)
}

func (s *Server) deleteDem(w http.ResponseWriter, r *http.Request) {
	id := r.URL.Query().Get("id")
	if id == "" {
		httputil.BadRequest(w, "id is required")
		return
	}
	err := s.store.Delete(r.Context(), id)
	if errors.Is(err, demstore.ErrNotFound) {
		httputil.NotFound(w, fmt.Sprintf("dem %s not found", id))
		return
	}
	if err != nil {
		httputil.InternalServerError(w, fmt.Sprintf("failed to delete dem: %v", err))
		return
	}
	httputil.WriteJSONOK(w, map[string]string{"deleted": id})
}
