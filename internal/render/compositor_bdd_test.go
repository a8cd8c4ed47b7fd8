package render_test

import (
	"math"

	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"

	"github.com/san-kum/lensim/internal/lens"
	"github.com/san-kum/lensim/internal/render"
)

var _ = Describe("Compositor", func() {
	var (
		src    *render.Texture
		points []lens.Vec2
	)

	BeforeEach(func() {
		src = render.NewStarfield(64, 0.05, 7)
		points = []lens.Vec2{
			{X: 0.5, Y: 0.5},
			{X: 0.31, Y: 0.62},
			{X: 0.9, Y: 0.1},
			{X: 0.52, Y: 0.47},
		}
	})

	Context("with a single layer", func() {
		var comp *render.Compositor

		BeforeEach(func() {
			var err error
			comp, err = render.NewCompositor([]render.Source{src}, 1)
			Expect(err).NotTo(HaveOccurred())
		})

		DescribeTable("equals the single deflected sample exactly",
			func(m lens.Model) {
				p := lens.DefaultParams(m)
				var table *lens.Table
				if m == lens.HSWVoid {
					var err error
					table, err = lens.BuildTable(p, lens.TableConfig{Bins: 256, Steps: 64})
					Expect(err).NotTo(HaveOccurred())
				}
				ev := lens.NewEvaluator(p, table)
				center := lens.Vec2{X: 0.5, Y: 0.5}
				aspect := 16.0 / 9.0

				for _, uv := range points {
					offset := lens.Vec2{X: (uv.X - center.X) * aspect, Y: uv.Y - center.Y}
					d := ev.Deflect(offset, 1.0)
					q := uv.Sub(lens.Vec2{X: d.X / aspect, Y: d.Y})
					want := src.Sample(q.X, q.Y).Clamp()

					Expect(comp.Sample(ev, uv, offset, aspect)).To(Equal(want))
				}
			},
			Entry("point mass", lens.PointMass),
			Entry("nfw", lens.NFW),
			Entry("toy void", lens.VoidToy),
			Entry("hsw void", lens.HSWVoid),
		)
	})

	Context("with a repeating procedural source", func() {
		It("accepts any count up to the maximum", func() {
			comp, err := render.NewCompositor([]render.Source{src}, 5)
			Expect(err).NotTo(HaveOccurred())
			Expect(comp.Pinned()).To(BeFalse())
			Expect(comp.LayerCount()).To(Equal(5))

			Expect(comp.SetLayerCount(render.MaxLayers)).To(Succeed())
			Expect(comp.SetLayerCount(render.MaxLayers + 1)).To(MatchError(render.ErrTooManyLayers))
		})

		It("decays brightness and deflection with depth", func() {
			comp, err := render.NewCompositor([]render.Source{src}, render.MaxLayers)
			Expect(err).NotTo(HaveOccurred())

			layers := comp.Layers()
			for i := 1; i < len(layers); i++ {
				Expect(layers[i].Decay).To(BeNumerically("<", layers[i-1].Decay))
				Expect(layers[i].Depth).To(BeNumerically("<", layers[i-1].Depth))
				Expect(layers[i].Zoom).To(BeNumerically(">", layers[i-1].Zoom))
			}
			Expect(layers[len(layers)-1].Depth).To(BeNumerically("~", 1-0.12*7, 1e-12))
		})

		It("stays within [0, 1] when layers pile up", func() {
			white := render.NewTexture(solid(4, 4), render.WrapRepeat)
			comp, err := render.NewCompositor([]render.Source{white}, render.MaxLayers)
			Expect(err).NotTo(HaveOccurred())

			ev := lens.NewEvaluator(lens.DefaultParams(lens.NFW), nil)
			c := comp.Sample(ev, lens.Vec2{X: 0.4, Y: 0.4}, lens.Vec2{X: -0.1, Y: -0.1}, 1)
			Expect(c.R).To(Equal(1.0))
			Expect(c.G).To(Equal(1.0))
			Expect(c.B).To(Equal(1.0))
		})
	})

	Context("with several uploaded sources", func() {
		It("pins the layer count to the number of sources", func() {
			sources := []render.Source{src, render.NewStarfield(32, 0.05, 8)}
			comp, err := render.NewCompositor(sources, 6)
			Expect(err).NotTo(HaveOccurred())
			Expect(comp.Pinned()).To(BeTrue())
			Expect(comp.LayerCount()).To(Equal(2))
			Expect(comp.SetLayerCount(4)).To(MatchError(render.ErrLayersPinned))
		})
	})

	It("never produces NaN channels", func() {
		comp, err := render.NewCompositor([]render.Source{src}, 4)
		Expect(err).NotTo(HaveOccurred())
		ev := lens.NewEvaluator(lens.Params{Model: lens.PointMass, Mass: 2, Spread: 0}, nil)
		for _, off := range []lens.Vec2{{}, {X: 1e-9}, {X: math.Inf(1)}} {
			c := comp.Sample(ev, lens.Vec2{X: 0.5, Y: 0.5}, off, 1)
			Expect(math.IsNaN(c.R) || math.IsNaN(c.G) || math.IsNaN(c.B)).To(BeFalse())
		}
	})
})
