package lens

import "math"

// HSWStrength is the calibrated visual multiplier applied to table values.
const HSWStrength = 0.33

// HSWDensity returns the Hamaus-Sutter-Wandelt density contrast at radius x
// (in units of the void radius):
//
//	δ(x) = δc·(1 - (x/rs)^α) / (1 + x^β)
func HSWDensity(x, deltaC, rs, alpha, beta float64) float64 {
	if !(x >= 0) {
		return 0
	}
	if !(rs > 0) {
		rs = MinScale
	}
	return deltaC * (1 - math.Pow(x/rs, alpha)) / (1 + math.Pow(x, beta))
}

// hswEvaluator reads the signed projected mass/R from a lookup table. A nil
// table (never built, or stale while a rebuild runs) yields zero deflection.
type hswEvaluator struct {
	table *Table
}

func newHSW(t *Table) hswEvaluator {
	return hswEvaluator{table: t}
}

func (hswEvaluator) Model() Model { return HSWVoid }

func (e hswEvaluator) Magnitude(r, depth float64) float64 {
	if e.table == nil {
		return 0
	}
	return clampMagnitude(HSWStrength * depth * e.table.Lookup(r))
}

func (e hswEvaluator) Deflect(offset Vec2, depth float64) Vec2 {
	return radial(offset, e.Magnitude(offset.Len(), depth))
}
