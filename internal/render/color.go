package render

import (
	"image/color"
	"math"
)

// RGB is a linear color with channels nominally in [0, 1]. Accumulation may
// exceed 1 until Clamp.
type RGB struct {
	R, G, B float64
}

func (c RGB) Add(o RGB) RGB       { return RGB{c.R + o.R, c.G + o.G, c.B + o.B} }
func (c RGB) Scale(f float64) RGB { return RGB{c.R * f, c.G * f, c.B * f} }
func (c RGB) Luma() float64       { return 0.2126*c.R + 0.7152*c.G + 0.0722*c.B }

func (c RGB) Lerp(o RGB, t float64) RGB {
	return RGB{c.R + (o.R-c.R)*t, c.G + (o.G-c.G)*t, c.B + (o.B-c.B)*t}
}

// Clamp limits every channel to [0, 1].
func (c RGB) Clamp() RGB {
	return RGB{clamp01(c.R), clamp01(c.G), clamp01(c.B)}
}

// RGBA converts to an opaque 8-bit color.
func (c RGB) RGBA() color.RGBA {
	c = c.Clamp()
	return color.RGBA{R: to8(c.R), G: to8(c.G), B: to8(c.B), A: 255}
}

func fromColor(c color.Color) RGB {
	r, g, b, _ := c.RGBA()
	return RGB{float64(r) / 0xffff, float64(g) / 0xffff, float64(b) / 0xffff}
}

func clamp01(v float64) float64 {
	if !(v > 0) {
		return 0
	}
	if v > 1 {
		return 1
	}
	return v
}

func to8(v float64) uint8 {
	return uint8(math.Round(v * 255))
}
