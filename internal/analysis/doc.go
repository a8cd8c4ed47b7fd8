// Package analysis characterizes deflection fields and HSW lookup tables.
//
//   - [RadialProfile]: signed deflection magnitude against radius
//   - [SummarizeTable]: extrema and sign changes of an HSW table
//   - [Spectrum], [Roughness]: FFT diagnostics for sampling artifacts
//
// # Compensation Radius
//
// For void profiles the enclosed projected mass is negative inside the void
// and recovers across the overdense wall. The first zero crossing of the
// profile is the compensation radius:
//
//	prof := analysis.RadialProfile(ev, 1.0, 512)
//	if r, ok := prof.CompensationRadius(); ok {
//	    // deflection turns from diverging to converging at r
//	}
package analysis
