package lens

import (
	"math"
	"testing"
)

func TestVoidProfileTotalMassRegression(t *testing.T) {
	v := NewVoidProfile(0.2, 0.05, 0.05)

	const expected = 0.064625
	if got := v.TotalMass(); math.Abs(got-expected) > 1e-12 {
		t.Errorf("total mass = %.12f, want %.12f", got, expected)
	}
	if got := v.Mass(100); got != v.TotalMass() {
		t.Errorf("M(100) = %v, want total %v", got, v.TotalMass())
	}

	// Zone integrals at their upper bounds.
	core := 0.5 * 0.2 * VoidCoreEdge * VoidCoreEdge
	rise := 0.2*(1-VoidCoreEdge*VoidCoreEdge)/2 + (0.05-0.2)*(0.95*0.95/4+0.05*0.95/3)
	wall := 0.05 * 0.05 * ((1+0.05)/3 - 0.05/4)
	if got := core + rise + wall; math.Abs(got-v.TotalMass()) > 1e-12 {
		t.Errorf("zone sum %v != total %v", got, v.TotalMass())
	}
}

func TestVoidProfileContinuousAtBoundaries(t *testing.T) {
	contrasts := []float64{-1, -0.8, -0.3, 0, 0.2, 0.7, 1}
	widths := []float64{0.01, 0.05, 0.2, 0.35, 0.5}
	const h = 1e-9

	for _, dIn := range contrasts {
		for _, dWall := range contrasts {
			for _, w := range widths {
				v := NewVoidProfile(dIn, dWall, w)
				for _, edge := range []float64{VoidCoreEdge, VoidWallStart, VoidWallStart + w} {
					below, above := v.Mass(edge-h), v.Mass(edge+h)
					if math.Abs(above-below) > 1e-6 {
						t.Errorf("d_in=%v d_wall=%v w=%v: jump %v at x=%v",
							dIn, dWall, w, above-below, edge)
					}
				}
			}
		}
	}
}

func TestVoidProfileMatchesNumericIntegral(t *testing.T) {
	v := NewVoidProfile(-0.8, 0.3, 0.25)
	const steps = 200000
	upper := 1.6
	dx := upper / steps

	numeric := 0.0
	for i := 0; i < steps; i++ {
		x := (float64(i) + 0.5) * dx
		numeric += v.Density(x) * x * dx
		if (i+1)%20000 == 0 {
			at := float64(i+1) * dx
			if got := v.Mass(at); math.Abs(got-numeric) > 1e-6 {
				t.Errorf("M(%v) = %v, numeric %v", at, got, numeric)
			}
		}
	}
}

func TestVoidProfileDensityZones(t *testing.T) {
	v := NewVoidProfile(-0.8, 0.3, 0.2)

	tests := []struct {
		x        float64
		expected float64
	}{
		{0.0, -0.8},
		{0.04, -0.8},
		{VoidCoreEdge, -0.8},
		{1.0, 0.3},
		{1.1, 0.3 * 0.25},
		{1.2, 0},
		{5.0, 0},
	}
	for _, tt := range tests {
		if got := v.Density(tt.x); math.Abs(got-tt.expected) > 1e-12 {
			t.Errorf("Density(%v) = %v, want %v", tt.x, got, tt.expected)
		}
	}
	if got := v.Density(0.999999); math.Abs(got-0.3) > 1e-5 {
		t.Errorf("rise should reach d_wall at x=1, got %v", got)
	}
}

func TestVoidProfileFloorsWallWidth(t *testing.T) {
	v := NewVoidProfile(-0.5, 0.2, 0)
	if v.W != MinWallWidth {
		t.Errorf("expected wall width floored to %v, got %v", MinWallWidth, v.W)
	}
	if math.IsNaN(v.TotalMass()) {
		t.Error("total mass is NaN")
	}
}

func TestVoidProfileMassOverXSmall(t *testing.T) {
	v := NewVoidProfile(-0.8, 0.2, 0.1)
	for _, x := range []float64{0, 1e-9, 1e-6, 1e-3} {
		got := v.MassOverX(x)
		if want := 0.5 * -0.8 * x; math.Abs(got-want) > 1e-15 {
			t.Errorf("MassOverX(%v) = %v, want %v", x, got, want)
		}
	}
}
