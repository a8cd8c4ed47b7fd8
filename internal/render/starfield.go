package render

import (
	"image"
	"math"
	"math/rand"
)

var (
	starfieldSky = RGB{0.008, 0.01, 0.025}
	starTints    = []RGB{
		{0.75, 0.82, 1.0},
		{1.0, 1.0, 1.0},
		{1.0, 0.93, 0.78},
		{1.0, 0.78, 0.6},
	}
)

// NewStarfield generates a seeded, seamlessly tileable size×size star texture.
// density is the expected number of stars per texel.
func NewStarfield(size int, density float64, seed int64) *Texture {
	if size < 1 {
		size = 1
	}
	t := &Texture{w: size, h: size, wrap: WrapRepeat}
	t.pix = make([]RGB, size*size)
	for i := range t.pix {
		t.pix[i] = starfieldSky
	}

	rng := rand.New(rand.NewSource(seed))
	count := int(density * float64(size*size))
	for i := 0; i < count; i++ {
		x := rng.Float64() * float64(size)
		y := rng.Float64() * float64(size)
		// Power-law magnitudes: most stars are faint.
		brightness := math.Pow(rng.Float64(), 4)*0.9 + 0.1
		radius := 0.6 + 1.4*brightness
		tint := starTints[rng.Intn(len(starTints))]
		t.splat(x, y, radius, tint.Scale(brightness))
	}

	for i := range t.pix {
		t.pix[i] = t.pix[i].Clamp()
	}
	return t
}

// splat adds a gaussian star. Indices wrap so stars crossing an edge continue
// on the opposite side.
func (t *Texture) splat(cx, cy, radius float64, c RGB) {
	reach := int(math.Ceil(radius * 2.5))
	inv := 1 / (2 * radius * radius * 0.25)
	x0, y0 := int(cx), int(cy)
	for dy := -reach; dy <= reach; dy++ {
		for dx := -reach; dx <= reach; dx++ {
			px := float64(x0+dx) + 0.5 - cx
			py := float64(y0+dy) + 0.5 - cy
			w := math.Exp(-(px*px + py*py) * inv)
			if w < 1e-3 {
				continue
			}
			x := t.wrapIndex(x0+dx, t.w)
			y := t.wrapIndex(y0+dy, t.h)
			t.pix[y*t.w+x] = t.pix[y*t.w+x].Add(c.Scale(w))
		}
	}
}

// Image converts the texture back to an 8-bit image.
func (t *Texture) Image() *image.RGBA {
	img := image.NewRGBA(image.Rect(0, 0, t.w, t.h))
	for y := 0; y < t.h; y++ {
		for x := 0; x < t.w; x++ {
			img.SetRGBA(x, y, t.pix[y*t.w+x].RGBA())
		}
	}
	return img
}
