package terrain

import (
	"math"
	"testing"
)

// rampModel builds a 4x4 grid with elevation = 10*col, so the surface is a
// plane rising east. Cell size 100ft, origin at (0,0).
func rampModel(t *testing.T) *ElevationModel {
	t.Helper()
	elev := make([]float64, 16)
	for r := 0; r < 4; r++ {
		for c := 0; c < 4; c++ {
			elev[r*4+c] = 10 * float64(c)
		}
	}
	m, err := NewElevationModel(100, 4, 4, 0, 0, elev)
	if err != nil {
		t.Fatalf("NewElevationModel: %v", err)
	}
	return m
}

func TestNewElevationModelValidation(t *testing.T) {
	tests := []struct {
		name       string
		cellSize   float64
		cols, rows int
		elevLen    int
	}{
		{"zero cell size", 0, 4, 4, 16},
		{"negative cell size", -1, 4, 4, 16},
		{"too few cols", 100, 1, 4, 4},
		{"matrix length mismatch", 100, 4, 4, 15},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := NewElevationModel(tt.cellSize, tt.cols, tt.rows, 0, 0, make([]float64, tt.elevLen))
			if err == nil {
				t.Error("expected error, got nil")
			}
		})
	}
}

func TestElevationAtGridNodes(t *testing.T) {
	m := rampModel(t)
	for c := 0; c < 4; c++ {
		got := m.ElevationAt(float64(c)*100, 150)
		want := 10 * float64(c)
		if math.Abs(got-want) > 1e-9 {
			t.Errorf("ElevationAt(%d00, 150) = %v, want %v", c, got, want)
		}
	}
}

func TestElevationAtInterpolates(t *testing.T) {
	m := rampModel(t)
	// Halfway between col 1 (elev 10) and col 2 (elev 20).
	got := m.ElevationAt(150, 50)
	if math.Abs(got-15) > 1e-9 {
		t.Errorf("ElevationAt(150, 50) = %v, want 15", got)
	}
	// Quarter of the way across a cell.
	got = m.ElevationAt(125, 200)
	if math.Abs(got-12.5) > 1e-9 {
		t.Errorf("ElevationAt(125, 200) = %v, want 12.5", got)
	}
}

// TestElevationAtContinuity approaches an interior grid node from several
// directions and checks that the interpolated surface has no jump there.
func TestElevationAtContinuity(t *testing.T) {
	m := rampModel(t)
	const eps = 1e-6
	center := m.ElevationAt(200, 200)
	for _, d := range [][2]float64{{eps, 0}, {-eps, 0}, {0, eps}, {0, -eps}, {eps, eps}, {-eps, -eps}} {
		got := m.ElevationAt(200+d[0], 200+d[1])
		if math.Abs(got-center) > 1e-3 {
			t.Errorf("discontinuity approaching node from (%v,%v): %v vs %v", d[0], d[1], got, center)
		}
	}
}

func TestElevationAtClampsOutOfRange(t *testing.T) {
	m := rampModel(t)
	tests := []struct {
		name string
		x, y float64
		want float64
	}{
		{"west of grid", -500, 150, 0},
		{"east of grid", 5000, 150, 30},
		{"north of grid", 150, 5000, 15},
		{"far corner", 9999, -9999, 30},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := m.ElevationAt(tt.x, tt.y)
			if math.Abs(got-tt.want) > 1e-9 {
				t.Errorf("ElevationAt(%v, %v) = %v, want %v (nearest in-bounds value)", tt.x, tt.y, got, tt.want)
			}
		})
	}
}

func TestBounds(t *testing.T) {
	m := rampModel(t)
	minX, minY, maxX, maxY := m.Bounds()
	if minX != 0 || minY != 0 || maxX != 300 || maxY != 300 {
		t.Errorf("Bounds() = (%v,%v,%v,%v), want (0,0,300,300)", minX, minY, maxX, maxY)
	}
}
