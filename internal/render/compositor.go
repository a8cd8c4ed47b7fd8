package render

import (
	"fmt"
	"math"

	"github.com/san-kum/lensim/internal/lens"
)

// MaxLayers bounds the depth stack.
const MaxLayers = 8

// Per-layer depth tunables. Layer i has brightness decay exp(-LayerDecayRate·i),
// zoom 1+LayerZoomStep·i and deflection scale 1-LayerDepthStep·i.
const (
	LayerDecayRate = 0.45
	LayerZoomStep  = 0.18
	LayerDepthStep = 0.12
)

// LayerParallax is the fixed source-plane shift added per depth index.
var LayerParallax = lens.Vec2{X: 0.137, Y: -0.083}

// Layer is one background plane of the stack.
type Layer struct {
	DepthIndex int
	Decay      float64
	Brightness float64
	Zoom       float64
	Offset     lens.Vec2
	Depth      float64
	Source     Source
}

// NewLayer returns layer i with its decay, zoom, parallax and depth derived
// from the index. Layer 0 is the identity transform at full strength.
func NewLayer(i int, src Source) Layer {
	return Layer{
		DepthIndex: i,
		Decay:      math.Exp(-LayerDecayRate * float64(i)),
		Brightness: 1.0,
		Zoom:       1 + LayerZoomStep*float64(i),
		Offset:     LayerParallax.Scale(float64(i)),
		Depth:      1 - LayerDepthStep*float64(i),
		Source:     src,
	}
}

// Weight is the layer's contribution factor.
func (l Layer) Weight() float64 {
	return l.Decay * l.Brightness
}

// Transform maps a frame coordinate into this layer's source coordinate:
// zoom about the frame center, then shift by the parallax offset.
func (l Layer) Transform(uv lens.Vec2) lens.Vec2 {
	if l.Zoom != 1 {
		c := lens.Vec2{X: 0.5, Y: 0.5}
		uv = uv.Sub(c).Scale(1 / l.Zoom).Add(c)
	}
	return uv.Add(l.Offset)
}

// Compositor blends a stack of deflected layers.
//
// With a single source the layer count is a free scalar in [1, MaxLayers] and
// every layer repeats that source. With several sources the count is pinned to
// the number of sources and SetLayerCount fails.
type Compositor struct {
	sources []Source
	layers  []Layer
	pinned  bool
}

// NewCompositor builds a compositor. count is used only for a single source.
func NewCompositor(sources []Source, count int) (*Compositor, error) {
	if len(sources) == 0 {
		return nil, ErrNoSources
	}
	if len(sources) > MaxLayers {
		return nil, fmt.Errorf("%w: %d sources", ErrTooManyLayers, len(sources))
	}

	c := &Compositor{sources: sources, pinned: len(sources) > 1}
	if c.pinned {
		count = len(sources)
	}
	if err := c.build(count); err != nil {
		return nil, err
	}
	return c, nil
}

// Pinned reports whether the sources fix the layer count.
func (c *Compositor) Pinned() bool { return c.pinned }

// LayerCount returns the number of active layers.
func (c *Compositor) LayerCount() int { return len(c.layers) }

// Layers returns a copy of the layer stack.
func (c *Compositor) Layers() []Layer {
	out := make([]Layer, len(c.layers))
	copy(out, c.layers)
	return out
}

// SetLayerCount changes the count of a single-source compositor.
func (c *Compositor) SetLayerCount(n int) error {
	if c.pinned {
		return ErrLayersPinned
	}
	return c.build(n)
}

// SetBrightness scales every layer's contribution.
func (c *Compositor) SetBrightness(b float64) {
	if !(b >= 0) {
		b = 0
	}
	for i := range c.layers {
		c.layers[i].Brightness = b
	}
}

func (c *Compositor) build(n int) error {
	if n > MaxLayers {
		return fmt.Errorf("%w: %d > %d", ErrTooManyLayers, n, MaxLayers)
	}
	if n < 1 {
		n = 1
	}
	brightness := 1.0
	if len(c.layers) > 0 {
		brightness = c.layers[0].Brightness
	}
	c.layers = make([]Layer, n)
	for i := range c.layers {
		src := c.sources[0]
		if c.pinned {
			src = c.sources[i]
		}
		c.layers[i] = NewLayer(i, src)
		c.layers[i].Brightness = brightness
	}
	return nil
}

// Sample composites one output sample.
//
// uv is the frame coordinate in [0, 1]², offset the aspect-corrected sky
// offset of that sample from the lens center, aspect the frame width over
// height. Deflections are in offset units and converted back to frame
// coordinates before they are subtracted.
func (c *Compositor) Sample(ev lens.Evaluator, uv, offset lens.Vec2, aspect float64) RGB {
	if !(aspect > 0) {
		aspect = 1
	}
	var acc RGB
	for _, l := range c.layers {
		d := ev.Deflect(offset, l.Depth)
		q := l.Transform(uv).Sub(lens.Vec2{X: d.X / aspect, Y: d.Y})
		acc = acc.Add(l.Source.Sample(q.X, q.Y).Scale(l.Weight()))
	}
	return acc.Clamp()
}
