package lens

import (
	"fmt"
	"math"
)

// Model selects one of the four supported mass profiles.
type Model int

const (
	PointMass Model = iota
	NFW
	VoidToy
	HSWVoid
)

func (m Model) String() string {
	switch m {
	case PointMass:
		return "point"
	case NFW:
		return "nfw"
	case VoidToy:
		return "void"
	case HSWVoid:
		return "hsw"
	default:
		return fmt.Sprintf("model(%d)", int(m))
	}
}

// Valid reports whether m is one of the four known variants.
func (m Model) Valid() bool {
	return m >= PointMass && m <= HSWVoid
}

// Parameter ingestion constants.
const (
	// SpreadToScale converts the 0..2 spread control into a physical radius.
	SpreadToScale = 0.24
	// MinScale floors every characteristic radius.
	MinScale = 0.01
	// MinSpread floors the raw spread control.
	MinSpread = 0.01
	// MinWallWidth floors the void-toy wall width.
	MinWallWidth = 0.01
)

// Params is the full lens parameter set consumed by the evaluator.
//
// Mass is reinterpreted per model: a strength scale for PointMass and NFW, and
// d_in = Mass-1 for VoidToy. HSWVoid reads HSWDeltaC directly.
type Params struct {
	Model       Model
	Mass        float64
	Spread      float64
	WallDensity float64
	WallWidth   float64
	HSWDeltaC   float64
	HSWRs       float64
	HSWAlpha    float64
	HSWBeta     float64
}

// DefaultParams returns a visually reasonable parameter set for m.
func DefaultParams(m Model) Params {
	p := Params{
		Model:       m,
		Mass:        1.0,
		Spread:      1.0,
		WallDensity: 0.3,
		WallWidth:   0.3,
		HSWDeltaC:   -0.8,
		HSWRs:       0.9,
		HSWAlpha:    4.0,
		HSWBeta:     15.0,
	}
	if m == VoidToy {
		p.Mass = 0.2
	}
	return p
}

// Normalize clamps Spread and WallWidth to their positive floors and replaces
// non-finite fields with the model defaults. It is applied at every ingestion
// boundary so no division downstream sees a zero scale and no NaN reaches a
// table key.
func (p Params) Normalize() Params {
	if !p.Model.Valid() {
		p.Model = PointMass
	}
	d := DefaultParams(p.Model)
	for _, f := range []struct {
		v   *float64
		def float64
	}{
		{&p.Mass, d.Mass},
		{&p.WallDensity, d.WallDensity},
		{&p.HSWDeltaC, d.HSWDeltaC},
		{&p.HSWRs, d.HSWRs},
		{&p.HSWAlpha, d.HSWAlpha},
		{&p.HSWBeta, d.HSWBeta},
	} {
		if !isFinite(*f.v) {
			*f.v = f.def
		}
	}
	if math.IsInf(p.Spread, 1) {
		p.Spread = d.Spread
	}
	if math.IsInf(p.WallWidth, 1) {
		p.WallWidth = d.WallWidth
	}
	if !(p.Spread >= MinSpread) {
		p.Spread = MinSpread
	}
	if !(p.WallWidth >= MinWallWidth) {
		p.WallWidth = MinWallWidth
	}
	return p
}

// Scale returns the characteristic physical radius, never below MinScale.
func (p Params) Scale() float64 {
	s := p.Spread * SpreadToScale
	if !(s >= MinScale) {
		return MinScale
	}
	return s
}

// InnerContrast returns the void-toy core density contrast d_in.
func (p Params) InnerContrast() float64 {
	return p.Mass - 1.0
}

// tableKey returns the subset of parameters the HSW table depends on.
func (p Params) tableKey() tableKey {
	n := p.Normalize()
	return tableKey{
		deltaC: n.HSWDeltaC,
		rs:     n.HSWRs,
		alpha:  n.HSWAlpha,
		beta:   n.HSWBeta,
		spread: n.Spread,
	}
}

type tableKey struct {
	deltaC, rs, alpha, beta, spread float64
}

// Vec2 is a 2D offset in aspect-corrected normalized sky coordinates. It is
// used both for sample points (offset from the lens center) and for
// deflection vectors.
type Vec2 struct {
	X, Y float64
}

func (v Vec2) Add(o Vec2) Vec2      { return Vec2{v.X + o.X, v.Y + o.Y} }
func (v Vec2) Sub(o Vec2) Vec2      { return Vec2{v.X - o.X, v.Y - o.Y} }
func (v Vec2) Scale(f float64) Vec2 { return Vec2{v.X * f, v.Y * f} }
func (v Vec2) Len() float64         { return math.Hypot(v.X, v.Y) }
func (v Vec2) IsFinite() bool       { return isFinite(v.X) && isFinite(v.Y) }
func (v Vec2) String() string       { return fmt.Sprintf("(%.6f, %.6f)", v.X, v.Y) }

func (v Vec2) Equal(o Vec2, tol float64) bool {
	return math.Abs(v.X-o.X) <= tol && math.Abs(v.Y-o.Y) <= tol
}

// Dir returns the unit vector along v, or the zero vector when v has zero
// length.
func (v Vec2) Dir() Vec2 {
	r := v.Len()
	if r == 0 {
		return Vec2{}
	}
	return Vec2{v.X / r, v.Y / r}
}

func isFinite(x float64) bool {
	return !math.IsNaN(x) && !math.IsInf(x, 0)
}
