package lens

import (
	"math"
	"testing"
)

func TestNFWMassKnownValues(t *testing.T) {
	tests := []struct {
		x        float64
		expected float64
	}{
		{1.0, math.Log(0.5) + 1},
		{2.0, math.Acos(0.5) / math.Sqrt(3)},
		{0.5, math.Log(0.25) + math.Log((1+math.Sqrt(0.75))/0.5)/math.Sqrt(0.75)},
	}

	for _, tt := range tests {
		if got := NFWMass(tt.x); math.Abs(got-tt.expected) > 1e-12 {
			t.Errorf("NFWMass(%v) = %v, want %v", tt.x, got, tt.expected)
		}
	}
}

func TestNFWContinuousAcrossUnity(t *testing.T) {
	g1 := NFWMass(1.0)

	// One-sided steps of 1e-3 move g by about g'(1)·1e-3 ≈ 3.3e-4; the
	// symmetric mean cancels the slope and isolates any jump at the branch.
	lo, hi := NFWMass(0.999), NFWMass(1.001)
	if mid := 0.5 * (lo + hi); math.Abs(mid-g1) > 1e-4 {
		t.Errorf("jump at x=1: g(1)=%v, mean of neighbours %v", g1, mid)
	}
	if math.Abs(lo-g1) > 1e-3 || math.Abs(hi-g1) > 1e-3 {
		t.Errorf("neighbours too far: g(0.999)=%v g(1)=%v g(1.001)=%v", lo, g1, hi)
	}

	for _, eps := range []float64{1e-5, 1e-6, 1e-7, 1e-9} {
		for _, x := range []float64{1 - eps, 1 + eps} {
			g := NFWMass(x)
			if math.IsNaN(g) || math.Abs(g-g1) > 1e-4 {
				t.Errorf("NFWMass(%v) = %v, want within 1e-4 of %v", x, g, g1)
			}
		}
	}
}

func TestNFWGeometricUnityBranch(t *testing.T) {
	if got := nfwGeometric(1.0); got != 1 {
		t.Errorf("F(1) = %v, want exactly 1", got)
	}
}

func TestNFWSmallXLimit(t *testing.T) {
	for _, x := range []float64{0, 1e-12, 1e-8, 1e-6, 1e-4} {
		v := nfwMassOverX(x)
		if math.IsNaN(v) || math.IsInf(v, 0) {
			t.Fatalf("g(x)/x at x=%v is not finite: %v", x, v)
		}
		if v < 0 || v > 1e-2 {
			t.Errorf("g(x)/x at x=%v = %v, want small and non-negative", x, v)
		}
	}

	// Series and closed form agree where they meet.
	x := nfwSeriesX
	series := 0.25 * x * x * (2*math.Log(2/x) - 1)
	closed := math.Log(x/2) + nfwGeometric(x)
	if math.Abs(series-closed) > 1e-12 {
		t.Errorf("series %v and closed form %v disagree at x=%v", series, closed, x)
	}
}

func TestNFWMassIncreasing(t *testing.T) {
	prev := 0.0
	for i := 1; i <= 400; i++ {
		x := float64(i) * 0.025
		g := NFWMass(x)
		if g <= prev {
			t.Fatalf("g not increasing at x=%v: %v <= %v", x, g, prev)
		}
		prev = g
	}
}
