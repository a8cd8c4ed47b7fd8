package lens

import "math"

// MaxDeflection bounds every deflection magnitude. It equals the point-mass
// peak at the top of the mass slider, so slider-reachable point masses are
// never clipped.
const MaxDeflection = PointMassStrength * MassMax / PointMassSoftening

// Evaluator computes deflections for one fixed model and parameter set. The
// model is resolved once by NewEvaluator; per-sample calls do not branch on it.
type Evaluator interface {
	Model() Model
	// Magnitude returns the signed radial deflection at distance r from the
	// lens center. Positive values point away from the center and belong to
	// attractive (converging) lenses; underdense voids are repulsive
	// (diverging) and come out negative.
	Magnitude(r, depth float64) float64
	// Deflect returns the deflection vector for an offset from the lens
	// center, scaled by depth (1 for the nearest layer).
	Deflect(offset Vec2, depth float64) Vec2
}

// NewEvaluator resolves p.Model to its concrete evaluator. table is consumed
// only by HSWVoid and may be nil, in which case HSWVoid deflects nothing.
//
// An unrecognized model is a contract violation: it panics in builds tagged
// lensdebug and falls back to PointMass otherwise.
func NewEvaluator(p Params, table *Table) Evaluator {
	if !p.Model.Valid() {
		if debugContracts {
			panic("lens: unrecognized model " + p.Model.String())
		}
		Logger().Warn("unrecognized model, using point mass", "model", int(p.Model))
		p.Model = PointMass
	}
	p = p.Normalize()

	switch p.Model {
	case NFW:
		return newNFW(p)
	case VoidToy:
		return newVoidToy(p)
	case HSWVoid:
		if !table.Matches(p) {
			table = nil
		}
		return newHSW(table)
	default:
		return newPointMass(p)
	}
}

// Evaluate is the one-shot form of NewEvaluator(p, table).Deflect(offset, 1).
func Evaluate(p Params, table *Table, offset Vec2) Vec2 {
	return NewEvaluator(p, table).Deflect(offset, 1.0)
}

// radial turns a signed magnitude into a vector along offset. The zero offset
// has no direction and yields the zero vector.
func radial(offset Vec2, mag float64) Vec2 {
	if mag == 0 {
		return Vec2{}
	}
	d := offset.Dir().Scale(mag)
	if !d.IsFinite() {
		return Vec2{}
	}
	return d
}

func clampMagnitude(m float64) float64 {
	if math.IsNaN(m) {
		return 0
	}
	return math.Max(-MaxDeflection, math.Min(MaxDeflection, m))
}
