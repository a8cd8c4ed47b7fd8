package lens

// Point-mass tunables. PointMassStrength is a calibrated visual multiplier, not
// a physical constant. PointMassSoftening is added to r so the center shows no
// delta-function spike. Over the mass slider range the magnitude is exactly
// PointMassStrength·mass/(r+PointMassSoftening); masses above MassMax saturate
// at MaxDeflection.
const (
	PointMassStrength  = 0.03
	PointMassSoftening = 0.005
)

type pointMassEvaluator struct {
	amp float64
}

func newPointMass(p Params) pointMassEvaluator {
	return pointMassEvaluator{amp: PointMassStrength * p.Mass}
}

func (pointMassEvaluator) Model() Model { return PointMass }

func (e pointMassEvaluator) Magnitude(r, depth float64) float64 {
	if !(r >= 0) {
		return 0
	}
	return clampMagnitude(e.amp * depth / (r + PointMassSoftening))
}

func (e pointMassEvaluator) Deflect(offset Vec2, depth float64) Vec2 {
	return radial(offset, e.Magnitude(offset.Len(), depth))
}
