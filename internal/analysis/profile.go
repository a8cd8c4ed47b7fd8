package analysis

import (
	"math"

	"github.com/san-kum/lensim/internal/lens"
)

// ProfilePoint is one radial sample.
type ProfilePoint struct {
	R         float64 `json:"r"`
	Magnitude float64 `json:"magnitude"`
}

// Profile is the signed radial deflection of one evaluator. Positive
// magnitudes point away from the lens center.
type Profile struct {
	Model         lens.Model
	Points        []ProfilePoint
	Peak          ProfilePoint
	ZeroCrossings []float64
}

// RadialProfile samples ev at n radii spread evenly over (0, rMax] at full
// depth.
func RadialProfile(ev lens.Evaluator, rMax float64, n int) *Profile {
	if n < 2 {
		n = 2
	}
	if !(rMax > 0) {
		rMax = 1
	}

	prof := &Profile{
		Model:  ev.Model(),
		Points: make([]ProfilePoint, n),
	}
	for i := range prof.Points {
		r := rMax * float64(i+1) / float64(n)
		prof.Points[i] = ProfilePoint{R: r, Magnitude: ev.Magnitude(r, 1.0)}
	}
	return Summarize(prof)
}

// Summarize recomputes Peak and ZeroCrossings from prof.Points in place and
// returns prof.
func Summarize(prof *Profile) *Profile {
	prof.Peak = ProfilePoint{}
	for _, pt := range prof.Points {
		if math.Abs(pt.Magnitude) > math.Abs(prof.Peak.Magnitude) {
			prof.Peak = pt
		}
	}
	prof.ZeroCrossings = zeroCrossings(prof.Points)
	return prof
}

func (p *Profile) Radii() []float64 {
	out := make([]float64, len(p.Points))
	for i, pt := range p.Points {
		out[i] = pt.R
	}
	return out
}

func (p *Profile) Magnitudes() []float64 {
	out := make([]float64, len(p.Points))
	for i, pt := range p.Points {
		out[i] = pt.Magnitude
	}
	return out
}

// CompensationRadius returns the first radius where the deflection changes
// sign.
func (p *Profile) CompensationRadius() (float64, bool) {
	if len(p.ZeroCrossings) == 0 {
		return 0, false
	}
	return p.ZeroCrossings[0], true
}

// Diverging reports whether the inner profile is repulsive, as underdense
// voids are. Repulsive profiles carry negative magnitudes.
func (p *Profile) Diverging() bool {
	for _, pt := range p.Points {
		if pt.Magnitude != 0 {
			return pt.Magnitude < 0
		}
	}
	return false
}

// zeroCrossings linearly interpolates the radii of strict sign changes.
func zeroCrossings(pts []ProfilePoint) []float64 {
	var out []float64
	for i := 1; i < len(pts); i++ {
		a, b := pts[i-1], pts[i]
		if a.Magnitude == 0 || b.Magnitude == 0 || (a.Magnitude < 0) == (b.Magnitude < 0) {
			continue
		}
		t := a.Magnitude / (a.Magnitude - b.Magnitude)
		out = append(out, a.R+t*(b.R-a.R))
	}
	return out
}
