// Package viz provides a terminal live view of a gravitational lens.
//
// The lensed sky is rendered at Braille-dot resolution and thresholded onto a
// [Canvas]; a side panel shows the active sliders and the radial deflection
// profile. [RunInteractive] adds a model picker in front of the live [Model].
//
// # Key Bindings
//
//	Tab     - Next slider
//	Up/Down - Tune the selected slider
//	M       - Cycle lens models
//	W/A/S/D - Move the lens
//	+/-     - Layer count (fixed when several sources are loaded)
//	Space   - Drift the lens along a Lissajous path
//	T       - Cycle color themes
//	G       - Toggle GIF recording
//	?       - Show help overlay
package viz
