// Package coord implements lazy, zero-copy delay-coordinate (Takens) embeddings.
//
// Given a series x[0..N) a delay τ and a dimension d, the forward embedding
// produces for every t in [(d-1)τ, N) the point
//
//	(x[t], x[t-τ], x[t-2τ], ..., x[t-(d-1)τ])
//
// ordered from the newest sample to the oldest.
//
// # Structure
//
// The package separates how coordinates map onto samples from how windows
// slide over the series:
//
//   - Geometry: parameters and index law of a delay scheme. Forward is the
//     only scheme implemented; new schemes only need to implement Geometry.
//   - Mapping: slides a window of Geometry.WindowSize() samples over the
//     series, one sample per step, producing a View per position.
//   - View: the embedded point. It reads through to the source slice and
//     never copies data until ToSlice, AppendTo, Flatten or AppendFlatten is
//     called.
//   - ViewIter: pull iterator over the elements of a View.
//
// # Basic Usage
//
//	samples := []float64{0, 1, 2, 3, 4, 5, 6, 7, 8, 9}
//	m := coord.Map(coord.NewForward(3, 2), samples)
//	for view := range m.All() {
//	    fmt.Println(view.ToSlice()) // [4 2 0], [5 3 1], ..., [9 7 5]
//	}
//
// # Multivariate Series
//
// Samples may themselves be slices. Flatten concatenates the components of
// every coordinate, which is how a multivariate series is embedded into a
// single flat vector:
//
//	pairs := [][]float64{{0, 0}, {1, 1}, {2, 2}, ...}
//	for view := range coord.Map(coord.NewForward(2, 5), pairs).All() {
//	    row := coord.Flatten(view) // [5 5 0 0], [6 6 1 1], ...
//	}
//
// # Indexing
//
// View.Get and View.Ref report an invalid logical index as an absent result.
// View.At panics on an invalid index and is meant for code where such an
// index is a bug.
//
// # Degenerate Parameters
//
// Forward accepts any parameters. Dimension 0 yields one empty view per
// sample; delay 0 makes every coordinate refer to the same sample. Validate
// rejects dimensions below 1 and negative delays for callers that want to
// refuse such input up front.
//
// # Concurrency
//
// Mapping and ViewIter hold iteration state and are not safe for concurrent
// use. Views are read-only and may be shared between goroutines as long as the
// source slice is not modified.
package coord
