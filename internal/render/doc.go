// Package render composites lensed background layers into frames.
//
// A [Compositor] holds up to [MaxLayers] depth layers. For every output sample
// each layer transforms the sample coordinate by its zoom and parallax offset,
// subtracts the lens deflection scaled by the layer depth, resamples its
// [Source] bilinearly and adds its decayed brightness to the pixel:
//
//	ev := lens.NewEvaluator(params, table)
//	comp, _ := render.NewCompositor([]render.Source{render.NewStarfield(512, 0.004, 1)}, 3)
//	img := render.NewRenderer(comp, 640, 360).Render(ev, lens.Vec2{X: 0.5, Y: 0.5})
//
// Overlays (halo ring, void boundary, center cross, caption) are drawn on the
// finished frame and never feed back into the deflection.
package render
