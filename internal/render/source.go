package render

import (
	"fmt"
	"image"
	_ "image/gif"
	_ "image/jpeg"
	_ "image/png"
	"math"
	"os"

	xdraw "golang.org/x/image/draw"
	_ "golang.org/x/image/webp"
)

// Source is a layer background. Sample takes texture coordinates where
// [0, 1)² spans the source once.
type Source interface {
	Sample(u, v float64) RGB
}

// WrapMode controls sampling outside [0, 1).
type WrapMode int

const (
	// WrapRepeat tiles the texture; used by procedural sources.
	WrapRepeat WrapMode = iota
	// WrapClamp repeats edge texels; used by full-frame images.
	WrapClamp
)

// Texture is an in-memory Source with bilinear filtering. Texel centers sit at
// ((x+0.5)/w, (y+0.5)/h).
type Texture struct {
	w, h int
	pix  []RGB
	wrap WrapMode
}

// NewTexture copies img into a texture.
func NewTexture(img image.Image, wrap WrapMode) *Texture {
	b := img.Bounds()
	t := &Texture{w: b.Dx(), h: b.Dy(), wrap: wrap}
	t.pix = make([]RGB, t.w*t.h)
	for y := 0; y < t.h; y++ {
		for x := 0; x < t.w; x++ {
			t.pix[y*t.w+x] = fromColor(img.At(b.Min.X+x, b.Min.Y+y))
		}
	}
	return t
}

func (t *Texture) Size() (int, int) { return t.w, t.h }

// At returns texel (x, y) after applying the wrap mode.
func (t *Texture) At(x, y int) RGB {
	if len(t.pix) == 0 {
		return RGB{}
	}
	x = t.wrapIndex(x, t.w)
	y = t.wrapIndex(y, t.h)
	return t.pix[y*t.w+x]
}

func (t *Texture) Sample(u, v float64) RGB {
	if len(t.pix) == 0 || math.IsNaN(u) || math.IsNaN(v) || math.IsInf(u, 0) || math.IsInf(v, 0) {
		return RGB{}
	}
	fx := u*float64(t.w) - 0.5
	fy := v*float64(t.h) - 0.5
	x0 := math.Floor(fx)
	y0 := math.Floor(fy)
	tx := fx - x0
	ty := fy - y0

	ix, iy := int(x0), int(y0)
	top := t.At(ix, iy).Lerp(t.At(ix+1, iy), tx)
	bottom := t.At(ix, iy+1).Lerp(t.At(ix+1, iy+1), tx)
	return top.Lerp(bottom, ty)
}

func (t *Texture) wrapIndex(i, n int) int {
	if t.wrap == WrapRepeat {
		i %= n
		if i < 0 {
			i += n
		}
		return i
	}
	if i < 0 {
		return 0
	}
	if i >= n {
		return n - 1
	}
	return i
}

// LoadImage decodes a PNG, JPEG, GIF or WebP file.
func LoadImage(path string) (image.Image, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()

	img, _, err := image.Decode(f)
	if err != nil {
		return nil, fmt.Errorf("decode %s: %w", path, err)
	}
	return img, nil
}

// NewImageSource scales img to fill a w×h frame and wraps it as a clamped
// texture.
func NewImageSource(img image.Image, w, h int) (*Texture, error) {
	if w <= 0 || h <= 0 {
		return nil, fmt.Errorf("%w: %dx%d", ErrInvalidSize, w, h)
	}
	dst := image.NewRGBA(image.Rect(0, 0, w, h))
	xdraw.CatmullRom.Scale(dst, dst.Bounds(), img, img.Bounds(), xdraw.Src, nil)
	return NewTexture(dst, WrapClamp), nil
}

// LoadSources loads every path as a full-frame image source.
func LoadSources(paths []string, w, h int) ([]Source, error) {
	sources := make([]Source, 0, len(paths))
	for _, p := range paths {
		img, err := LoadImage(p)
		if err != nil {
			return nil, err
		}
		src, err := NewImageSource(img, w, h)
		if err != nil {
			return nil, err
		}
		sources = append(sources, src)
	}
	return sources, nil
}
