package render

import (
	"image"
	"image/color"
	"math"

	"golang.org/x/image/font"
	"golang.org/x/image/font/basicfont"
	"golang.org/x/image/math/fixed"

	"github.com/san-kum/lensim/internal/lens"
)

// Overlay selects the annotations drawn over a finished frame.
type Overlay struct {
	Halo     bool
	Boundary bool
	Cross    bool
	Caption  string
	Color    color.RGBA
}

func DefaultOverlay() Overlay {
	return Overlay{
		Halo:     true,
		Boundary: true,
		Cross:    true,
		Color:    color.RGBA{R: 120, G: 220, B: 255, A: 255},
	}
}

// DrawOverlay annotates img, which must have been rendered by r with the lens
// at center. Mass profiles get a halo ring at the characteristic radius; void
// profiles get the boundary ring at one void radius and, for the toy void, the
// outer wall edge.
func DrawOverlay(img *image.RGBA, r *Renderer, p lens.Params, center lens.Vec2, o Overlay) {
	p = p.Normalize()
	scale := p.Scale()
	cx, cy := r.ToPixel(lens.Vec2{}, center)
	pxPerUnit := float64(r.height)

	switch p.Model {
	case lens.PointMass, lens.NFW:
		if o.Halo {
			drawRing(img, cx, cy, scale*pxPerUnit, o.Color, 0)
		}
	case lens.VoidToy:
		if o.Boundary {
			drawRing(img, cx, cy, scale*pxPerUnit, o.Color, 0)
			drawRing(img, cx, cy, (1+p.WallWidth)*scale*pxPerUnit, o.Color, 6)
		}
	case lens.HSWVoid:
		if o.Boundary {
			drawRing(img, cx, cy, scale*pxPerUnit, o.Color, 0)
		}
	}

	if o.Cross {
		drawCross(img, cx, cy, 6, o.Color)
	}
	if o.Caption != "" {
		DrawCaption(img, o.Caption, 6, 16, o.Color)
	}
}

// DrawCaption writes text with its baseline at (x, y).
func DrawCaption(img *image.RGBA, text string, x, y int, c color.RGBA) {
	d := &font.Drawer{
		Dst:  img,
		Src:  image.NewUniform(c),
		Face: basicfont.Face7x13,
		Dot:  fixed.P(x, y),
	}
	d.DrawString(text)
}

// drawRing plots a circle outline. dash > 0 skips every other dash-pixel run.
func drawRing(img *image.RGBA, cx, cy, radius float64, c color.RGBA, dash int) {
	if !(radius > 0.5) {
		return
	}
	steps := int(2*math.Pi*radius) + 8
	for i := 0; i < steps; i++ {
		if dash > 0 && (i/dash)%2 == 1 {
			continue
		}
		a := 2 * math.Pi * float64(i) / float64(steps)
		blend(img, int(math.Round(cx+radius*math.Cos(a))), int(math.Round(cy+radius*math.Sin(a))), c)
	}
}

func drawCross(img *image.RGBA, cx, cy float64, arm int, c color.RGBA) {
	x0, y0 := int(math.Round(cx)), int(math.Round(cy))
	for d := -arm; d <= arm; d++ {
		blend(img, x0+d, y0, c)
		if d != 0 {
			blend(img, x0, y0+d, c)
		}
	}
}

// blend mixes c over the pixel at 60% opacity.
func blend(img *image.RGBA, x, y int, c color.RGBA) {
	if !(image.Point{X: x, Y: y}.In(img.Bounds())) {
		return
	}
	const a = 0.6
	dst := img.RGBAAt(x, y)
	mix := func(d, s uint8) uint8 {
		return uint8(math.Round(float64(d)*(1-a) + float64(s)*a))
	}
	img.SetRGBA(x, y, color.RGBA{R: mix(dst.R, c.R), G: mix(dst.G, c.G), B: mix(dst.B, c.B), A: 255})
}
