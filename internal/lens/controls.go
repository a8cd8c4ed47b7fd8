package lens

import (
	"fmt"
	"math"
)

// Slider ranges of the interactive controls.
const (
	MassMax   = 2.0
	SpreadMax = 2.0
)

// Controls is the raw interactive state: every slider in its UI range. Params
// performs the per-model reinterpretation.
type Controls struct {
	Model       Model
	Mass        float64
	Spread      float64
	WallDensity float64
	WallWidth   float64
	HSWRs       float64
	HSWAlpha    float64
	HSWBeta     float64
}

// DefaultControls returns the controls matching DefaultParams(m).
func DefaultControls(m Model) Controls {
	return ControlsFor(DefaultParams(m))
}

// ControlsFor returns the slider positions that reproduce p. For HSWVoid the
// mass slider is recovered from δc.
func ControlsFor(p Params) Controls {
	c := Controls{
		Model:       p.Model,
		Mass:        p.Mass,
		Spread:      p.Spread,
		WallDensity: p.WallDensity,
		WallWidth:   p.WallWidth,
		HSWRs:       p.HSWRs,
		HSWAlpha:    p.HSWAlpha,
		HSWBeta:     p.HSWBeta,
	}
	if p.Model == HSWVoid {
		c.Mass = p.HSWDeltaC + 1.0
	}
	return c
}

// Params ingests the controls. Mass and Spread are clamped to their slider
// ranges; for HSWVoid the mass slider becomes δc = clamp(mass, 0, 1) - 1.
func (c Controls) Params() Params {
	mass := clamp(c.Mass, 0, MassMax)
	p := Params{
		Model:       c.Model,
		Mass:        mass,
		Spread:      clamp(c.Spread, 0, SpreadMax),
		WallDensity: clamp(c.WallDensity, -1, 1),
		WallWidth:   c.WallWidth,
		HSWDeltaC:   clamp(mass, 0, 1) - 1.0,
		HSWRs:       c.HSWRs,
		HSWAlpha:    c.HSWAlpha,
		HSWBeta:     c.HSWBeta,
	}
	return p.Normalize()
}

// GetParams returns the sliders the current model responds to.
func (c *Controls) GetParams() map[string]float64 {
	params := map[string]float64{
		"mass":   c.Mass,
		"spread": c.Spread,
	}
	switch c.Model {
	case VoidToy:
		params["wall_density"] = c.WallDensity
		params["wall_width"] = c.WallWidth
	case HSWVoid:
		params["hsw_rs"] = c.HSWRs
		params["hsw_alpha"] = c.HSWAlpha
		params["hsw_beta"] = c.HSWBeta
	}
	return params
}

// ParamKeys returns GetParams keys in stable order.
func (c *Controls) ParamKeys() []string {
	return sortedKeys(c.GetParams())
}

var sliderRanges = map[string][2]float64{
	"mass":         {0, MassMax},
	"spread":       {0, SpreadMax},
	"wall_density": {-1, 1},
	"wall_width":   {MinWallWidth, 0.5},
	"hsw_rs":       {0.05, 5},
	"hsw_alpha":    {0.1, 20},
	"hsw_beta":     {0.1, 30},
}

// SliderRange returns the UI range of a slider.
func SliderRange(name string) (lo, hi float64, ok bool) {
	r, ok := sliderRanges[name]
	return r[0], r[1], ok
}

// SetParam sets a slider by name, clamped to its range.
func (c *Controls) SetParam(name string, value float64) error {
	if math.IsNaN(value) || math.IsInf(value, 0) {
		return fmt.Errorf("%s: non-finite value %v", name, value)
	}
	r, ok := sliderRanges[name]
	if !ok {
		return fmt.Errorf("%w: %s", ErrUnknownParam, name)
	}
	value = clamp(value, r[0], r[1])
	switch name {
	case "mass":
		c.Mass = value
	case "spread":
		c.Spread = value
	case "wall_density":
		c.WallDensity = value
	case "wall_width":
		c.WallWidth = value
	case "hsw_rs":
		c.HSWRs = value
	case "hsw_alpha":
		c.HSWAlpha = value
	case "hsw_beta":
		c.HSWBeta = value
	}
	return nil
}

// Nudge moves a slider by steps fortieths of its range.
func (c *Controls) Nudge(name string, steps float64) error {
	lo, hi, ok := SliderRange(name)
	if !ok {
		return fmt.Errorf("%w: %s", ErrUnknownParam, name)
	}
	v, ok := c.GetParams()[name]
	if !ok {
		return fmt.Errorf("%w: %s does not use %s", ErrUnknownParam, c.Model, name)
	}
	return c.SetParam(name, v+steps*(hi-lo)/40)
}

func clamp(v, lo, hi float64) float64 {
	if math.IsNaN(v) {
		return lo
	}
	return math.Max(lo, math.Min(hi, v))
}
