package units

import (
	"math"
	"testing"
)

func TestIsValid(t *testing.T) {
	for _, u := range []string{"ft", "m"} {
		if !IsValid(u) {
			t.Errorf("IsValid(%q) = false, want true", u)
		}
	}
	if IsValid("furlongs") {
		t.Error("IsValid(furlongs) = true, want false")
	}
}

func TestToFeetRoundTrip(t *testing.T) {
	got := ToFeet(100, Metres)
	if math.Abs(got-328.084) > 0.001 {
		t.Errorf("ToFeet(100m) = %v, want ~328.084", got)
	}
	back := FromFeet(got, Metres)
	if math.Abs(back-100) > 1e-9 {
		t.Errorf("round trip = %v, want 100", back)
	}
	// Unknown units pass through as feet.
	if ToFeet(42, "unknown") != 42 {
		t.Error("unknown unit should pass through unchanged")
	}
}

func TestGradientPer100(t *testing.T) {
	if g := GradientPer100(50, 100); g != 50 {
		t.Errorf("GradientPer100(50, 100) = %v, want 50", g)
	}
	if g := GradientPer100(10, 1000); g != 1 {
		t.Errorf("GradientPer100(10, 1000) = %v, want 1", g)
	}
	// Zero run must not produce Inf.
	if g := GradientPer100(10, 0); g != 0 {
		t.Errorf("GradientPer100 with zero run = %v, want 0", g)
	}
}
