package pathscan

import (
	"math"
	"testing"

	"github.com/HansenHomeAI/v0-spaceport-website-sub007/internal/terrain"
)

// straightPath returns a straight east-west path along y=0.
func straightPath(lengthFt float64) []PathVertex {
	return []PathVertex{
		{X: 0, Y: 0, AltitudeFt: 400},
		{X: lengthFt, Y: 0, AltitudeFt: 400},
	}
}

// flatModel covers x in [-500, 2700], y in [-500, 500] at constant 1000 ft.
func flatModel(t *testing.T) *terrain.ElevationModel {
	t.Helper()
	const cols, rows = 17, 6
	elev := make([]float64, cols*rows)
	for i := range elev {
		elev[i] = 1000
	}
	m, err := terrain.NewElevationModel(200, cols, rows, -500, -500, elev)
	if err != nil {
		t.Fatalf("flatModel: %v", err)
	}
	return m
}

// spikeModel is flat at 0 ft with a 500 ft conical spike of radius 300 ft
// centered at (1000, 0). The grid cell size (25 ft) puts nodes exactly on
// the apex and the cone rim, so along y=0 the bilinear surface reproduces
// the cone profile without discretization error.
func spikeModel(t *testing.T) *terrain.ElevationModel {
	t.Helper()
	const cell = 25.0
	const cols, rows = 81, 9 // x in [0,2000], y in [-100,100]
	elev := make([]float64, cols*rows)
	for r := 0; r < rows; r++ {
		for c := 0; c < cols; c++ {
			x := float64(c) * cell
			y := -100 + float64(r)*cell
			d := math.Hypot(x-1000, y)
			if d < 300 {
				elev[r*cols+c] = 500 * (1 - d/300)
			}
		}
	}
	m, err := terrain.NewElevationModel(cell, cols, rows, 0, -100, elev)
	if err != nil {
		t.Fatalf("spikeModel: %v", err)
	}
	return m
}

// rampModel rises east at 50 ft per 100 ft, covering x in [-100, 4400].
func rampModel(t *testing.T) *terrain.ElevationModel {
	t.Helper()
	const cols, rows = 46, 7
	elev := make([]float64, cols*rows)
	for r := 0; r < rows; r++ {
		for c := 0; c < cols; c++ {
			x := -100 + float64(c)*100
			elev[r*cols+c] = 0.5 * x
		}
	}
	m, err := terrain.NewElevationModel(100, cols, rows, -100, -300, elev)
	if err != nil {
		t.Fatalf("rampModel: %v", err)
	}
	return m
}
