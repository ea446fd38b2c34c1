// Package terrain provides read-only access to a normalized digital elevation
// model (DEM). The grid is loaded once by the caller and queried through
// bilinear interpolation; the package never mutates it, so a single model may
// be shared across concurrent planning runs.
package terrain

import (
	"fmt"
	"math"
)

// ElevationModel is an immutable, row-major elevation grid. World coordinates
// map onto the grid through the origin offset and cell size. The model is
// owned by the caller; everything downstream treats it as read-only.
type ElevationModel struct {
	// CellSizeFt is the edge length of one grid cell in feet.
	CellSizeFt float64

	// Cols and Rows are the grid dimensions. Elevations holds Cols*Rows
	// values in row-major order: Elevations[row*Cols+col].
	Cols int
	Rows int

	// OriginX and OriginY locate grid cell (0,0) in world coordinates (feet).
	OriginX float64
	OriginY float64

	// Elevations are ground elevations in feet above MSL.
	Elevations []float64
}

// NewElevationModel validates the grid shape and returns a model. The
// elevation matrix length must match cols*rows and the cell size must be
// positive; a malformed grid caught here is far cheaper than a silent
// misindex during a planning run.
func NewElevationModel(cellSizeFt float64, cols, rows int, originX, originY float64, elevations []float64) (*ElevationModel, error) {
	if cellSizeFt <= 0 {
		return nil, fmt.Errorf("cell size must be positive, got %v", cellSizeFt)
	}
	if cols < 2 || rows < 2 {
		return nil, fmt.Errorf("grid must be at least 2x2, got %dx%d", cols, rows)
	}
	if len(elevations) != cols*rows {
		return nil, fmt.Errorf("elevation matrix length %d does not match %dx%d grid", len(elevations), cols, rows)
	}
	return &ElevationModel{
		CellSizeFt: cellSizeFt,
		Cols:       cols,
		Rows:       rows,
		OriginX:    originX,
		OriginY:    originY,
		Elevations: elevations,
	}, nil
}

// ElevationAt returns the interpolated ground elevation at world position
// (x, y). Coordinates are converted to fractional grid coordinates, clamped
// to the grid bounds (edge cells repeat; no extrapolation), and bilinearly
// interpolated across the four enclosing cells.
//
// Out-of-range queries never fail: clamping trades boundary accuracy for
// availability, since a planning pass must always produce an answer.
func (m *ElevationModel) ElevationAt(x, y float64) float64 {
	gx := (x - m.OriginX) / m.CellSizeFt
	gy := (y - m.OriginY) / m.CellSizeFt

	gx = clamp(gx, 0, float64(m.Cols-1))
	gy = clamp(gy, 0, float64(m.Rows-1))

	col0 := int(math.Floor(gx))
	row0 := int(math.Floor(gy))
	if col0 > m.Cols-2 {
		col0 = m.Cols - 2
	}
	if row0 > m.Rows-2 {
		row0 = m.Rows - 2
	}
	col1 := col0 + 1
	row1 := row0 + 1

	fx := gx - float64(col0)
	fy := gy - float64(row0)

	p00 := m.Elevations[row0*m.Cols+col0]
	p10 := m.Elevations[row0*m.Cols+col1]
	p01 := m.Elevations[row1*m.Cols+col0]
	p11 := m.Elevations[row1*m.Cols+col1]

	top := p00*(1-fx) + p10*fx
	bottom := p01*(1-fx) + p11*fx
	return top*(1-fy) + bottom*fy
}

// Bounds returns the world-coordinate extent covered by the grid.
func (m *ElevationModel) Bounds() (minX, minY, maxX, maxY float64) {
	return m.OriginX, m.OriginY,
		m.OriginX + float64(m.Cols-1)*m.CellSizeFt,
		m.OriginY + float64(m.Rows-1)*m.CellSizeFt
}

func clamp(v, lo, hi float64) float64 {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}
