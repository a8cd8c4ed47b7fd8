package lens

import "math"

// NFWStrength is the calibrated visual multiplier for the NFW halo.
const NFWStrength = 0.15

const (
	// nfwUnityBand is the half-width around x=1 where the geometric term
	// returns its limit instead of evaluating 0/0.
	nfwUnityBand = 1e-6
	// nfwSeriesX is the radius below which g(x) uses its small-x expansion.
	nfwSeriesX = 1e-4
)

// NFWMass returns the dimensionless projected NFW mass
//
//	g(x) = ln(x/2) + F(x)
//
// with F(x) = acosh(1/x)/sqrt(1-x²) for x<1, acos(1/x)/sqrt(x²-1) for x>1
// and F(1) = 1.
func NFWMass(x float64) float64 {
	if !(x > 0) {
		return 0
	}
	if x < nfwSeriesX {
		return 0.25 * x * x * (2*math.Log(2/x) - 1)
	}
	return math.Log(x/2) + nfwGeometric(x)
}

// nfwGeometric is F(x). The x<1 branch writes acosh(1/x) as
// ln((1+sqrt(1-x²))/x), which has no domain restriction at 1/x > 1.
func nfwGeometric(x float64) float64 {
	switch {
	case math.Abs(x-1) < nfwUnityBand:
		return 1
	case x < 1:
		s := math.Sqrt(1 - x*x)
		return math.Log((1+s)/x) / s
	default:
		s := math.Sqrt(x*x - 1)
		return math.Acos(1/x) / s
	}
}

// nfwMassOverX returns g(x)/x with the analytic limit 0 at x -> 0.
func nfwMassOverX(x float64) float64 {
	if !(x > 0) {
		return 0
	}
	if x < nfwSeriesX {
		return 0.25 * x * (2*math.Log(2/x) - 1)
	}
	return NFWMass(x) / x
}

type nfwEvaluator struct {
	amp float64
	rs  float64
}

func newNFW(p Params) nfwEvaluator {
	return nfwEvaluator{amp: NFWStrength * p.Mass, rs: p.Scale()}
}

func (nfwEvaluator) Model() Model { return NFW }

func (e nfwEvaluator) Magnitude(r, depth float64) float64 {
	return clampMagnitude(e.amp * depth * nfwMassOverX(r/e.rs))
}

func (e nfwEvaluator) Deflect(offset Vec2, depth float64) Vec2 {
	return radial(offset, e.Magnitude(offset.Len(), depth))
}
