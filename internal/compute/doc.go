// Package compute provides the worker backends used for data-parallel loops.
//
// Two backends are available:
//
//   - CPU: splits a range into contiguous chunks, one goroutine per core
//   - Serial: runs the whole range on the calling goroutine
//
// # Usage
//
// Per-row frame rendering and per-bin table integration both go through
// [ParallelFor]:
//
//	compute.ParallelFor(height, 8, func(start, end int) {
//	    for y := start; y < end; y++ {
//	        // each index is visited by exactly one worker
//	    }
//	})
//
// Each index in [0, n) is visited exactly once, so callers that write only to
// their own index need no locking and produce deterministic output.
package compute
