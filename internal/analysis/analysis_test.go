package analysis

import (
	"math"
	"testing"

	"github.com/san-kum/lensim/internal/lens"
)

func TestRadialProfilePointMass(t *testing.T) {
	ev := lens.NewEvaluator(lens.DefaultParams(lens.PointMass), nil)
	prof := RadialProfile(ev, 1.0, 100)

	if len(prof.Points) != 100 {
		t.Fatalf("expected 100 points, got %d", len(prof.Points))
	}
	if prof.Model != lens.PointMass {
		t.Errorf("model = %s", prof.Model)
	}
	for i := 1; i < len(prof.Points); i++ {
		if prof.Points[i].Magnitude >= prof.Points[i-1].Magnitude {
			t.Fatalf("point mass profile not decreasing at %d", i)
		}
	}
	if prof.Peak != prof.Points[0] {
		t.Errorf("peak = %+v, want first point", prof.Peak)
	}
	if _, ok := prof.CompensationRadius(); ok {
		t.Error("point mass should have no compensation radius")
	}
	if prof.Diverging() {
		t.Error("point mass should be attractive")
	}
	if math.Abs(prof.Points[99].R-1.0) > 1e-12 {
		t.Errorf("last radius = %v, want 1", prof.Points[99].R)
	}
}

func TestRadialProfileCompensatedVoid(t *testing.T) {
	p := lens.Params{Model: lens.VoidToy, Mass: 0.9, Spread: 1, WallDensity: 1, WallWidth: 0.5}
	prof := RadialProfile(lens.NewEvaluator(p, nil), 0.5, 2000)

	if !prof.Diverging() {
		t.Error("void interior should be repulsive")
	}
	r, ok := prof.CompensationRadius()
	if !ok {
		t.Fatal("expected a compensation radius")
	}
	// Crossing happens inside the rise zone.
	if r < lens.VoidCoreEdge*p.Scale() || r > p.Scale() {
		t.Errorf("compensation radius %v outside the rise zone", r)
	}
}

func TestZeroCrossings(t *testing.T) {
	pts := []ProfilePoint{
		{R: 0, Magnitude: -1},
		{R: 1, Magnitude: 1},
		{R: 2, Magnitude: 0},
		{R: 3, Magnitude: 2},
		{R: 4, Magnitude: -2},
	}
	got := zeroCrossings(pts)
	if len(got) != 2 {
		t.Fatalf("expected 2 crossings, got %v", got)
	}
	if math.Abs(got[0]-0.5) > 1e-12 || math.Abs(got[1]-3.5) > 1e-12 {
		t.Errorf("crossings = %v, want [0.5 3.5]", got)
	}
}

func TestSummarizeTable(t *testing.T) {
	if s := SummarizeTable(nil); s != (TableStats{}) {
		t.Errorf("nil table stats = %+v", s)
	}

	p := lens.DefaultParams(lens.HSWVoid)
	tbl, err := lens.BuildTable(p, lens.TableConfig{Bins: 256, Steps: 100})
	if err != nil {
		t.Fatal(err)
	}
	s := SummarizeTable(tbl)

	if s.Bins != 256 || s.RMax != tbl.RMax() {
		t.Errorf("unexpected header %+v", s)
	}
	if s.NonFinite != 0 {
		t.Errorf("%d non-finite bins", s.NonFinite)
	}
	if s.Min >= 0 {
		t.Errorf("underdense void should have a negative minimum, got %v", s.Min)
	}
	if s.MinR <= 0 || s.MinR > s.RMax {
		t.Errorf("min radius %v out of range", s.MinR)
	}
	if s.Max < s.Min {
		t.Error("max below min")
	}
}

func TestSpectrumPeak(t *testing.T) {
	const n, k = 256, 16
	data := make([]float64, n)
	for i := range data {
		data[i] = math.Sin(2*math.Pi*k*float64(i)/n) + 3
	}
	power := Spectrum(data)
	if len(power) != n/2+1 {
		t.Fatalf("spectrum length %d", len(power))
	}

	peak := 0
	for i, m := range power {
		if m > power[peak] {
			peak = i
		}
	}
	if peak != k {
		t.Errorf("peak at bin %d, want %d", peak, k)
	}
	if Spectrum(data[:1]) != nil {
		t.Error("expected nil spectrum for a single sample")
	}
}

func TestRoughness(t *testing.T) {
	const n = 256
	smooth := make([]float64, n)
	rough := make([]float64, n)
	for i := range smooth {
		smooth[i] = math.Sin(2 * math.Pi * 4 * float64(i) / n)
		rough[i] = float64(1 - 2*(i%2))
	}

	if r := Roughness(smooth, 0.5); r > 0.01 {
		t.Errorf("smooth roughness = %v", r)
	}
	if r := Roughness(rough, 0.5); r < 0.9 {
		t.Errorf("alternating roughness = %v", r)
	}
	if r := Roughness(make([]float64, n), 0.5); r != 0 {
		t.Errorf("flat roughness = %v, want 0", r)
	}
}

func TestTableSmoothness(t *testing.T) {
	p := lens.DefaultParams(lens.HSWVoid)
	tbl, err := lens.BuildTable(p, lens.TableConfig{Bins: 512, Steps: 200})
	if err != nil {
		t.Fatal(err)
	}
	if r := Roughness(tbl.Values(), 0.5); r > 0.05 {
		t.Errorf("table roughness %v suggests sampling artifacts", r)
	}
}
