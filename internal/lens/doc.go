// Package lens provides the thin-lens deflection-field engine.
//
// The package turns a sky offset from a lens center into a deflection vector
// for one of four mass models:
//
//   - [PointMass]: deflection ∝ 1/r with additive softening
//   - [NFW]: projected Navarro-Frenk-White halo, closed form
//   - [VoidToy]: piecewise quadratic void profile, closed form
//   - [HSWVoid]: Hamaus-Sutter-Wandelt void, tabulated by [BuildTable]
//
// # Example
//
//	p := lens.DefaultParams(lens.NFW)
//	ev := lens.NewEvaluator(p, nil)
//	d := ev.Deflect(lens.Vec2{X: 0.2, Y: 0.1}, 1.0)
//
// # Sessions
//
// A [Session] owns the live parameter set and the HSW lookup table. The table is
// rebuilt synchronously whenever a parameter it depends on changes and is
// published atomically, so evaluators never observe a partially written table.
//
// # Thread Safety
//
// Evaluators are immutable and safe to share between goroutines. Session.Apply
// must be called from a single goroutine (the redraw loop).
package lens
