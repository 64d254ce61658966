// Package takens computes delay-coordinate (Takens) embeddings of time series.
//
// An embedding of dimension d and delay τ turns a series x into the points
//
//	(x[t], x[t-τ], ..., x[t-(d-1)τ])
//
// newest sample first, one point per valid t. It reconstructs a phase-space
// trajectory from a scalar or multivariate series for nonlinear dynamics
// analysis.
//
// # Core Features
//
//   - Lazy, zero-copy windows over the input slice (package coord)
//   - Scalar and multivariate samples; multivariate points can be flattened
//   - Text and mebo blob input, optionally compressed (package series)
//   - Delimited text output, optionally compressed (package record)
//
// # Basic Usage
//
//	samples := []float64{0, 1, 2, 3, 4, 5, 6, 7, 8, 9}
//	for p := range takens.Embed(samples, 3, 2) {
//	    fmt.Println(p) // [4 2 0], [5 3 1], ..., [9 7 5]
//	}
//
// Multivariate series are flattened into one vector per point:
//
//	for p := range takens.EmbedFlat(pairs, 2, 5) {
//	    fmt.Println(p) // [5 5 0 0], ...
//	}
//
// # Package Structure
//
// This package wraps the coord package for the common cases and ties it to
// the record writer. Use coord directly to work with views without copying,
// or to plug in a custom Geometry.
package takens

import (
	"iter"

	"github.com/arloliu/takens/coord"
	"github.com/arloliu/takens/internal/pool"
	"github.com/arloliu/takens/record"
)

// Embed returns an iterator over the forward embedding points of samples.
//
// Every point is a newly allocated slice of length dimension. The iterator
// yields nothing when samples is shorter than one window.
func Embed[T any](samples []T, dimension, delay int) iter.Seq[[]T] {
	return func(yield func([]T) bool) {
		for view := range coord.Map(coord.NewForward(dimension, delay), samples).All() {
			if !yield(view.ToSlice()) {
				return
			}
		}
	}
}

// EmbedFlat returns an iterator over the flattened forward embedding points of
// a multivariate series. For samples of c components every point has length
// dimension*c.
func EmbedFlat[S ~[]E, E any](samples []S, dimension, delay int) iter.Seq[[]E] {
	return func(yield func([]E) bool) {
		for view := range coord.Map(coord.NewForward(dimension, delay), samples).All() {
			if !yield(coord.Flatten(view)) {
				return
			}
		}
	}
}

// Points collects all forward embedding points of samples.
func Points[T any](samples []T, dimension, delay int) [][]T {
	m := coord.Map(coord.NewForward(dimension, delay), samples)
	out := make([][]T, 0, m.Len())
	for view := range m.All() {
		out = append(out, view.ToSlice())
	}

	return out
}

// Write embeds rows with geometry g and writes every flattened point to w as
// one record. It returns the number of records written. w is not closed.
func Write(w *record.Writer, rows [][]float64, g coord.Geometry) (int, error) {
	width := 0
	if len(rows) > 0 {
		width = len(rows[0])
	}

	row, cleanup := pool.GetFloat64Slice(max(g.Dimension(), 0) * width)
	defer cleanup()

	count := 0
	for view := range coord.Map(g, rows).All() {
		row = coord.AppendFlatten(row[:0], view)
		if err := w.WriteRow(row); err != nil {
			return count, err
		}
		count++
	}

	return count, nil
}
