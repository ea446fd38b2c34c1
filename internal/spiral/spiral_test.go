package spiral

import (
	"math"
	"testing"
)

func baseParams() FlightParams {
	return FlightParams{
		Slices:        4,
		Bounces:       6,
		StartRadiusFt: 100,
		HoldRadiusFt:  1000,
		AltitudeFt:    400,
	}
}

func radius(w Waypoint) float64 {
	return math.Hypot(w.X, w.Y)
}

func TestValidate(t *testing.T) {
	tests := []struct {
		name   string
		mutate func(*FlightParams)
	}{
		{"zero slices", func(p *FlightParams) { p.Slices = 0 }},
		{"zero bounces", func(p *FlightParams) { p.Bounces = 0 }},
		{"zero start radius", func(p *FlightParams) { p.StartRadiusFt = 0 }},
		{"hold not beyond start", func(p *FlightParams) { p.HoldRadiusFt = p.StartRadiusFt }},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			p := baseParams()
			tt.mutate(&p)
			if err := p.Validate(); err == nil {
				t.Error("expected validation error, got nil")
			}
		})
	}
	if err := baseParams().Validate(); err != nil {
		t.Errorf("valid params rejected: %v", err)
	}
}

func TestBuildSliceWaypointCount(t *testing.T) {
	for _, n := range []int{1, 2, 3, 6, 11} {
		p := baseParams()
		p.Bounces = n
		wps, err := BuildSlice(0, p)
		if err != nil {
			t.Fatalf("BuildSlice(N=%d): %v", n, err)
		}
		if want := 2*n + 5; len(wps) != want {
			t.Errorf("N=%d: got %d waypoints, want %d", n, len(wps), want)
		}
		for i, w := range wps {
			if w.Seq != i {
				t.Errorf("N=%d: waypoint %d has Seq %d", n, i, w.Seq)
			}
		}
	}
}

// TestBuildSliceGeometry pins the sanity scenario: N=6 gives 17 waypoints,
// the first sits at the start radius, and the hold-arc waypoints sit at the
// analytically achieved maximum radius rather than raw HoldRadiusFt.
func TestBuildSliceGeometry(t *testing.T) {
	p := baseParams()
	wps, err := BuildSlice(0, p)
	if err != nil {
		t.Fatalf("BuildSlice: %v", err)
	}
	if len(wps) != 17 {
		t.Fatalf("got %d waypoints, want 17", len(wps))
	}

	if r := radius(wps[0]); math.Abs(r-100) > 1e-6 {
		t.Errorf("first waypoint radius = %v, want 100", r)
	}

	// rHold/r0 = 10 falls in the baseline regime (1.15 early, 0.95 late).
	wantMax := 100 * math.Exp(math.Log(10)*(1.15*0.4+0.95*0.6))
	gotMax, err := MaxRadiusFt(p)
	if err != nil {
		t.Fatalf("MaxRadiusFt: %v", err)
	}
	if math.Abs(gotMax-wantMax) > 1e-6 {
		t.Errorf("MaxRadiusFt = %v, want %v", gotMax, wantMax)
	}
	if math.Abs(gotMax-p.HoldRadiusFt) < 1 {
		t.Error("achieved max radius should differ from raw HoldRadiusFt")
	}

	holdCount := 0
	for _, w := range wps {
		if w.Phase == PhaseHold {
			holdCount++
			if r := radius(w); math.Abs(r-wantMax) > 1e-6 {
				t.Errorf("hold waypoint radius = %v, want %v", r, wantMax)
			}
		}
		if w.Z != p.AltitudeFt {
			t.Errorf("waypoint Z = %v, want %v", w.Z, p.AltitudeFt)
		}
	}
	if holdCount != 2 {
		t.Errorf("hold waypoint count = %d, want 2", holdCount)
	}

	// Inbound leg must land back on the start radius.
	if r := radius(wps[len(wps)-1]); math.Abs(r-100) > 1e-6 {
		t.Errorf("final waypoint radius = %v, want 100", r)
	}
}

func TestBuildSliceRadiusMonotoneOutbound(t *testing.T) {
	wps, err := BuildSlice(0, baseParams())
	if err != nil {
		t.Fatalf("BuildSlice: %v", err)
	}
	prev := 0.0
	for _, w := range wps {
		if w.Phase != PhaseOutbound {
			break
		}
		r := radius(w)
		if r < prev-1e-9 {
			t.Errorf("outbound radius decreased: %v after %v", r, prev)
		}
		prev = r
	}
}

func TestBuildSliceRotation(t *testing.T) {
	p := baseParams()
	a, err := BuildSlice(0, p)
	if err != nil {
		t.Fatalf("BuildSlice(0): %v", err)
	}
	b, err := BuildSlice(1, p)
	if err != nil {
		t.Fatalf("BuildSlice(1): %v", err)
	}
	// Slice 1 is slice 0 rotated by the wedge angle (pi/2 for 4 slices).
	wedge := math.Pi / 2
	for i := range a {
		wantX := a[i].X*math.Cos(wedge) - a[i].Y*math.Sin(wedge)
		wantY := a[i].X*math.Sin(wedge) + a[i].Y*math.Cos(wedge)
		if math.Abs(b[i].X-wantX) > 1e-6 || math.Abs(b[i].Y-wantY) > 1e-6 {
			t.Fatalf("waypoint %d: got (%v,%v), want rotated (%v,%v)", i, b[i].X, b[i].Y, wantX, wantY)
		}
	}
}

// TestBuildSliceSingleSliceCollapse is a regression guard, not a statement of
// correctness: with one slice the wedge angle is a full revolution, the
// bounding rays coincide, and every waypoint collapses onto a single radial
// line. Documented as a known degeneracy of the generator.
func TestBuildSliceSingleSliceCollapse(t *testing.T) {
	p := baseParams()
	p.Slices = 1
	wps, err := BuildSlice(0, p)
	if err != nil {
		t.Fatalf("BuildSlice: %v", err)
	}
	// With the pi/2 base rotation the collapsed line is the Y axis: rays sit
	// at angle 0 (mod 2*pi) and midpoints at pi, both mapping to |X| ~ 0.
	for i, w := range wps {
		if math.Abs(w.X) > 1e-6*math.Max(1, math.Abs(w.Y)) {
			t.Errorf("waypoint %d strayed off the collapsed ray: (%v, %v)", i, w.X, w.Y)
		}
	}
}

func TestPlanMission(t *testing.T) {
	p := baseParams()
	slices, err := PlanMission(p)
	if err != nil {
		t.Fatalf("PlanMission: %v", err)
	}
	if len(slices) != p.Slices {
		t.Fatalf("got %d slices, want %d", len(slices), p.Slices)
	}
	for i, wps := range slices {
		if len(wps) != 2*p.Bounces+5 {
			t.Errorf("slice %d: %d waypoints, want %d", i, len(wps), 2*p.Bounces+5)
		}
	}
}

func TestBuildSliceIndexRange(t *testing.T) {
	p := baseParams()
	if _, err := BuildSlice(-1, p); err == nil {
		t.Error("negative slice index accepted")
	}
	if _, err := BuildSlice(p.Slices, p); err == nil {
		t.Error("out-of-range slice index accepted")
	}
}
