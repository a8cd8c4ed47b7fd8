package lens

// VoidToyStrength is the calibrated visual multiplier for the toy void.
const VoidToyStrength = 3.0

// Zone edges of the toy void, in units of the void radius.
const (
	VoidCoreEdge  = 0.05
	VoidWallStart = 1.0
)

// VoidProfile is the piecewise density-contrast profile of the toy void:
//
//	core      x < 0.05        δ = d_in
//	rise      0.05 <= x < 1   δ = d_in + (d_wall-d_in)·t²,  t = (x-0.05)/0.95
//	wall      1 <= x < 1+w    δ = d_wall·(1-s)²,            s = (x-1)/w
//	exterior  x >= 1+w        δ = 0
//
// Mass integrates δ·x exactly per zone and accumulates across zones, so it is
// continuous at every boundary.
type VoidProfile struct {
	DIn   float64
	DWall float64
	W     float64

	massCore float64 // M(0.05)
	massRise float64 // M(1)
	massWall float64 // M(1+w), the total
}

// NewVoidProfile builds a profile; w is floored to MinWallWidth.
func NewVoidProfile(dIn, dWall, w float64) VoidProfile {
	if !(w >= MinWallWidth) {
		w = MinWallWidth
	}
	v := VoidProfile{DIn: dIn, DWall: dWall, W: w}
	v.massCore = v.coreMass(VoidCoreEdge)
	v.massRise = v.massCore + v.riseMass(VoidWallStart)
	v.massWall = v.massRise + v.wallMass(VoidWallStart+w)
	return v
}

// Density returns δ(x).
func (v VoidProfile) Density(x float64) float64 {
	switch {
	case x < VoidCoreEdge:
		return v.DIn
	case x < VoidWallStart:
		t := (x - VoidCoreEdge) / (VoidWallStart - VoidCoreEdge)
		return v.DIn + (v.DWall-v.DIn)*t*t
	case x < VoidWallStart+v.W:
		s := 1 - (x-VoidWallStart)/v.W
		return v.DWall * s * s
	default:
		return 0
	}
}

// Mass returns M(x) = ∫₀ˣ δ(x')·x' dx'.
func (v VoidProfile) Mass(x float64) float64 {
	switch {
	case !(x > 0):
		return 0
	case x < VoidCoreEdge:
		return v.coreMass(x)
	case x < VoidWallStart:
		return v.massCore + v.riseMass(x)
	case x < VoidWallStart+v.W:
		return v.massRise + v.wallMass(x)
	default:
		return v.massWall
	}
}

// TotalMass returns M(x) for x beyond the wall.
func (v VoidProfile) TotalMass() float64 {
	return v.massWall
}

// MassOverX returns M(x)/x with the core limit d_in·x/2 evaluated directly.
func (v VoidProfile) MassOverX(x float64) float64 {
	if !(x > 0) {
		return 0
	}
	if x < VoidCoreEdge {
		return 0.5 * v.DIn * x
	}
	return v.Mass(x) / x
}

func (v VoidProfile) coreMass(x float64) float64 {
	return 0.5 * v.DIn * x * x
}

// riseMass integrates the rise zone from its start to x. With u = x-a and
// L = 1-a: d_in·(u²/2 + a·u) + (Δ/L²)·(u⁴/4 + a·u³/3).
func (v VoidProfile) riseMass(x float64) float64 {
	const a = VoidCoreEdge
	const l = VoidWallStart - VoidCoreEdge
	u := x - a
	delta := v.DWall - v.DIn
	u2 := u * u
	return v.DIn*(0.5*u2+a*u) + delta/(l*l)*(0.25*u2*u2+a*u2*u/3)
}

// wallMass integrates the wall zone from x=1 to x. With s = (x-1)/w and
// q = 1-s: w·d_wall·((1+w)(1-q³)/3 - w(1-q⁴)/4).
func (v VoidProfile) wallMass(x float64) float64 {
	w := v.W
	q := 1 - (x-VoidWallStart)/w
	q3 := q * q * q
	return w * v.DWall * ((1+w)*(1-q3)/3 - w*(1-q3*q)/4)
}

type voidToyEvaluator struct {
	profile VoidProfile
	scale   float64
}

func newVoidToy(p Params) voidToyEvaluator {
	return voidToyEvaluator{
		profile: NewVoidProfile(p.InnerContrast(), p.WallDensity, p.WallWidth),
		scale:   p.Scale(),
	}
}

func (voidToyEvaluator) Model() Model { return VoidToy }

func (e voidToyEvaluator) Magnitude(r, depth float64) float64 {
	return clampMagnitude(VoidToyStrength * depth * e.profile.MassOverX(r/e.scale))
}

func (e voidToyEvaluator) Deflect(offset Vec2, depth float64) Vec2 {
	return radial(offset, e.Magnitude(offset.Len(), depth))
}
