package lens

import (
	"math"
	"testing"
)

func testTable(t *testing.T, p Params) *Table {
	t.Helper()
	tbl, err := BuildTable(p, TableConfig{Bins: 1024, Steps: 200})
	if err != nil {
		t.Fatalf("build table: %v", err)
	}
	return tbl
}

func allModelParams() []Params {
	params := make([]Params, 0, 4)
	for _, m := range Models() {
		params = append(params, DefaultParams(m))
	}
	return params
}

func TestPointMassEndToEnd(t *testing.T) {
	p := Params{Model: PointMass, Mass: 1.0, Spread: 1.0}
	ev := NewEvaluator(p, nil)

	got := ev.Deflect(Vec2{X: 0.5, Y: 0}, 1.0)
	expected := 0.03 / 0.505
	if math.Abs(got.Len()-expected) > 1e-6 {
		t.Errorf("magnitude = %.9f, want %.9f", got.Len(), expected)
	}
	if math.Abs(got.X-expected) > 1e-12 || got.Y != 0 {
		t.Errorf("deflection should point along +x, got %v", got)
	}

	diag := ev.Deflect(Vec2{X: 0.3, Y: 0.4}, 1.0)
	if math.Abs(diag.Len()-expected) > 1e-12 {
		t.Errorf("magnitude depends on direction: %v", diag.Len())
	}
	if math.Abs(diag.X/diag.Y-0.75) > 1e-12 {
		t.Errorf("deflection not radial: %v", diag)
	}
}

func TestDeflectionBoundedNearCenter(t *testing.T) {
	for _, p := range allModelParams() {
		tbl := testTable(t, p)
		ev := NewEvaluator(p, tbl)

		for _, r := range []float64{0, 1e-6, 1e-4} {
			d := ev.Deflect(Vec2{X: r, Y: 0}, 1.0)
			if !d.IsFinite() {
				t.Fatalf("%s: non-finite deflection at r=%v: %v", p.Model, r, d)
			}
			limit := 1e-3
			if p.Model == PointMass {
				// The softened point lens is bounded, not vanishing, off center.
				limit = PointMassStrength * p.Mass / PointMassSoftening
			}
			if d.Len() > limit+1e-12 {
				t.Errorf("%s: |d|=%v at r=%v exceeds %v", p.Model, d.Len(), r, limit)
			}
		}

		if d := ev.Deflect(Vec2{}, 1.0); d != (Vec2{}) {
			t.Errorf("%s: deflection at the center = %v, want zero", p.Model, d)
		}
	}
}

func TestExtendedModelsVanishAtCenter(t *testing.T) {
	for _, m := range []Model{NFW, VoidToy, HSWVoid} {
		p := DefaultParams(m)
		ev := NewEvaluator(p, testTable(t, p))
		prev := math.Inf(1)
		for _, r := range []float64{1e-4, 1e-6, 1e-8} {
			mag := math.Abs(ev.Magnitude(r, 1.0))
			if mag > prev {
				t.Errorf("%s: |mag| grew toward center: %v at r=%v", m, mag, r)
			}
			prev = mag
		}
		if mag := ev.Magnitude(0, 1.0); mag != 0 {
			t.Errorf("%s: Magnitude(0) = %v, want 0", m, mag)
		}
	}
}

func TestDeflectionNeverNaN(t *testing.T) {
	weird := []Params{
		{Model: NFW, Mass: 2, Spread: 0},
		{Model: NFW, Mass: 2, Spread: -1},
		{Model: VoidToy, Mass: 0, Spread: 0, WallDensity: 1, WallWidth: 0},
		{Model: PointMass, Mass: 2, Spread: math.NaN()},
		{Model: HSWVoid, Mass: 1, Spread: 0, HSWDeltaC: -1, HSWRs: 0, HSWAlpha: 4, HSWBeta: 15},
	}
	radii := []float64{0, 1e-300, 1e-12, 1e-3, 0.01, 0.5, 1, 10, 1e6, math.Inf(1)}

	for _, p := range weird {
		ev := NewEvaluator(p, testTable(t, p))
		for _, r := range radii {
			d := ev.Deflect(Vec2{X: r, Y: -r}, 1.0)
			if !d.IsFinite() {
				t.Errorf("%s %+v: non-finite deflection at r=%v: %v", p.Model, p, r, d)
			}
			if d.Len() > MaxDeflection*math.Sqrt2 {
				t.Errorf("%s: deflection %v exceeds bound", p.Model, d)
			}
		}
	}
}

func TestPointMassExactOverSliderRange(t *testing.T) {
	ev := NewEvaluator(Params{Model: PointMass, Mass: MassMax, Spread: 1}, nil)

	want := PointMassStrength * MassMax / (0.001 + PointMassSoftening)
	if got := ev.Magnitude(0.001, 1.0); math.Abs(got-want) > 1e-12 {
		t.Errorf("Magnitude(0.001) = %v, want %v", got, want)
	}
	if got := ev.Magnitude(0, 1.0); math.Abs(got-MaxDeflection) > 1e-12 {
		t.Errorf("Magnitude(0) = %v, want the peak %v", got, MaxDeflection)
	}

	heavy := NewEvaluator(Params{Model: PointMass, Mass: 4, Spread: 1}, nil)
	if got := heavy.Magnitude(0, 1.0); got != MaxDeflection {
		t.Errorf("mass above the slider range = %v, want cap %v", got, MaxDeflection)
	}
}

func TestDepthScalesLinearly(t *testing.T) {
	for _, p := range allModelParams() {
		ev := NewEvaluator(p, testTable(t, p))
		offset := Vec2{X: 0.15, Y: 0.1}
		full := ev.Deflect(offset, 1.0)
		for _, depth := range []float64{0.88, 0.52, 0.16} {
			scaled := ev.Deflect(offset, depth)
			if !scaled.Equal(full.Scale(depth), 1e-12) {
				t.Errorf("%s depth %v: got %v, want %v", p.Model, depth, scaled, full.Scale(depth))
			}
		}
	}
}

func TestVoidModelsDiverge(t *testing.T) {
	offset := Vec2{X: 0.1, Y: 0}

	toy := NewEvaluator(DefaultParams(VoidToy), nil)
	if d := toy.Deflect(offset, 1.0); d.X >= 0 {
		t.Errorf("underdense toy void should be repulsive (negative magnitude), got %v", d)
	}

	hsw := DefaultParams(HSWVoid)
	ev := NewEvaluator(hsw, testTable(t, hsw))
	if d := ev.Deflect(offset, 1.0); d.X >= 0 {
		t.Errorf("underdense HSW void should be repulsive (negative magnitude), got %v", d)
	}

	for _, m := range []Model{PointMass, NFW} {
		if d := NewEvaluator(DefaultParams(m), nil).Deflect(offset, 1.0); d.X <= 0 {
			t.Errorf("%s should be attractive (positive magnitude), got %v", m, d)
		}
	}
}

func TestHSWEndToEnd(t *testing.T) {
	if testing.Short() {
		t.Skip("full-size table build")
	}
	p := Params{
		Model:     HSWVoid,
		Mass:      0.2,
		Spread:    1.0,
		HSWDeltaC: -0.8,
		HSWRs:     0.9,
		HSWAlpha:  4.0,
		HSWBeta:   15.0,
	}
	tbl, err := BuildTable(p, DefaultTableConfig())
	if err != nil {
		t.Fatalf("build: %v", err)
	}
	ev := NewEvaluator(p, tbl)

	if d := ev.Deflect(Vec2{}, 1.0); d.Len() != 0 {
		t.Errorf("deflection at r=0 = %v, want 0", d.Len())
	}

	beyond := TableExtent*1.0*SpreadToScale + 1e-3
	if d := ev.Deflect(Vec2{X: beyond}, 1.0); d.Len() != 0 {
		t.Errorf("deflection at r=%v = %v, want 0", beyond, d.Len())
	}

	inside := ev.Deflect(Vec2{X: 0.1}, 1.0)
	if inside.Len() == 0 {
		t.Error("expected non-zero deflection inside the void")
	}
}

func TestHSWWithoutTable(t *testing.T) {
	ev := NewEvaluator(DefaultParams(HSWVoid), nil)
	if d := ev.Deflect(Vec2{X: 0.1}, 1.0); d != (Vec2{}) {
		t.Errorf("expected zero deflection without a table, got %v", d)
	}
}

func TestHSWRejectsStaleTable(t *testing.T) {
	p := DefaultParams(HSWVoid)
	tbl := testTable(t, p)

	changed := p
	changed.HSWAlpha = 2.0
	if d := NewEvaluator(changed, tbl).Deflect(Vec2{X: 0.1}, 1.0); d != (Vec2{}) {
		t.Errorf("stale table was consumed: %v", d)
	}
}

func TestUnknownModelFallsBackToPointMass(t *testing.T) {
	if debugContracts {
		t.Skip("contract violations panic in lensdebug builds")
	}
	p := Params{Model: Model(42), Mass: 1, Spread: 1}
	ev := NewEvaluator(p, nil)
	if ev.Model() != PointMass {
		t.Errorf("expected point mass fallback, got %s", ev.Model())
	}
	want := NewEvaluator(Params{Model: PointMass, Mass: 1, Spread: 1}, nil).Deflect(Vec2{X: 0.2}, 1)
	if got := ev.Deflect(Vec2{X: 0.2}, 1); got != want {
		t.Errorf("fallback deflection %v, want %v", got, want)
	}
}

func TestEvaluateMatchesEvaluator(t *testing.T) {
	p := DefaultParams(NFW)
	offset := Vec2{X: -0.2, Y: 0.05}
	if a, b := Evaluate(p, nil, offset), NewEvaluator(p, nil).Deflect(offset, 1); a != b {
		t.Errorf("Evaluate = %v, evaluator = %v", a, b)
	}
}
