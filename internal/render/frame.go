package render

import (
	"image"
	"time"

	"github.com/san-kum/lensim/internal/compute"
	"github.com/san-kum/lensim/internal/lens"
)

// Renderer maps frame pixels to compositor samples.
type Renderer struct {
	comp   *Compositor
	width  int
	height int
}

func NewRenderer(comp *Compositor, width, height int) *Renderer {
	if width < 1 {
		width = 1
	}
	if height < 1 {
		height = 1
	}
	return &Renderer{comp: comp, width: width, height: height}
}

func (r *Renderer) Size() (int, int)        { return r.width, r.height }
func (r *Renderer) Compositor() *Compositor { return r.comp }

// Aspect returns width over height.
func (r *Renderer) Aspect() float64 {
	return float64(r.width) / float64(r.height)
}

// PixelUV returns the frame coordinate of pixel (x, y)'s center.
func (r *Renderer) PixelUV(x, y int) lens.Vec2 {
	return lens.Vec2{
		X: (float64(x) + 0.5) / float64(r.width),
		Y: (float64(y) + 0.5) / float64(r.height),
	}
}

// SkyOffset converts a frame coordinate into the aspect-corrected offset from
// a lens centered at center (also a frame coordinate). One unit is the frame
// height.
func (r *Renderer) SkyOffset(uv, center lens.Vec2) lens.Vec2 {
	return lens.Vec2{X: (uv.X - center.X) * r.Aspect(), Y: uv.Y - center.Y}
}

// ToPixel maps a sky offset from center back to pixel coordinates.
func (r *Renderer) ToPixel(offset, center lens.Vec2) (float64, float64) {
	u := center.X + offset.X/r.Aspect()
	v := center.Y + offset.Y
	return u * float64(r.width), v * float64(r.height)
}

// Render composites a full frame. Rows are split across compute workers; each
// pixel is written by exactly one worker.
func (r *Renderer) Render(ev lens.Evaluator, center lens.Vec2) *image.RGBA {
	img := image.NewRGBA(image.Rect(0, 0, r.width, r.height))
	r.RenderInto(img, ev, center)
	return img
}

// RenderInto composites into img, which must be at least the renderer size.
func (r *Renderer) RenderInto(img *image.RGBA, ev lens.Evaluator, center lens.Vec2) {
	start := time.Now()
	aspect := r.Aspect()

	compute.ParallelFor(r.height, 8, func(lo, hi int) {
		for y := lo; y < hi; y++ {
			row := img.Pix[y*img.Stride:]
			for x := 0; x < r.width; x++ {
				uv := r.PixelUV(x, y)
				c := r.comp.Sample(ev, uv, r.SkyOffset(uv, center), aspect).RGBA()
				i := x * 4
				row[i], row[i+1], row[i+2], row[i+3] = c.R, c.G, c.B, c.A
			}
		}
	})

	lens.Logger().Debug("frame rendered",
		"model", ev.Model().String(),
		"size", [2]int{r.width, r.height},
		"layers", r.comp.LayerCount(),
		"elapsed", time.Since(start))
}

// Luminance returns the per-pixel luma of img in row-major order.
func Luminance(img *image.RGBA) []float64 {
	b := img.Bounds()
	out := make([]float64, 0, b.Dx()*b.Dy())
	for y := b.Min.Y; y < b.Max.Y; y++ {
		for x := b.Min.X; x < b.Max.X; x++ {
			out = append(out, fromColor(img.RGBAAt(x, y)).Luma())
		}
	}
	return out
}
