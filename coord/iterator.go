package coord

import "iter"

// ViewIter is a pull iterator over the logical elements of a View.
//
// It yields elements in increasing logical index order and stops at the
// view's dimension, or earlier if the geometry reports an index out of range.
// Once exhausted it stays exhausted.
type ViewIter[T any] struct {
	view  View[T]
	index int
	done  bool
}

// Next returns the next element. When ok is false, iteration is complete.
func (it *ViewIter[T]) Next() (T, bool) {
	var zero T
	if it.done || it.index >= it.view.Len() {
		it.done = true
		return zero, false
	}

	elem, ok := it.view.Get(it.index)
	if !ok {
		it.done = true
		return zero, false
	}
	it.index++

	return elem, true
}

// Mapping slides a window of the geometry's WindowSize() over a source slice,
// one sample at a time, and produces a View per position.
//
// For a source of N samples and a window of size W >= 1 it produces
// max(0, N-W+1) views whose start offsets are 0, 1, 2, ... A zero window size
// produces N empty views when the dimension is 0 and no views otherwise, since
// such a geometry (a negative delay) cannot place its coordinates.
//
// Mapping is not safe for concurrent use and cannot be rewound; call Map again
// on the original slice to start over. The views it produces may be used
// concurrently.
type Mapping[T any] struct {
	geom       Geometry
	remaining  []T
	offset     int
	windowSize int
}

// Map creates a Mapping over data using geometry g.
//
// The WindowSize of g is read once here; g must not change afterwards.
func Map[T any](g Geometry, data []T) *Mapping[T] {
	ws := max(g.WindowSize(), 0)
	if ws == 0 && g.Dimension() > 0 {
		data = nil
	}

	return &Mapping[T]{
		geom:       g,
		remaining:  data,
		windowSize: ws,
	}
}

// Next returns the view at the current position and advances by one sample.
// When ok is false, iteration is complete.
func (m *Mapping[T]) Next() (View[T], bool) {
	if len(m.remaining) == 0 || len(m.remaining) < m.windowSize {
		m.remaining = nil
		return View[T]{}, false
	}

	ws := m.windowSize
	view := newView(m.geom, m.remaining[:ws:ws], m.offset)
	m.remaining = m.remaining[1:]
	m.offset++

	return view, true
}

// Len returns the number of views that Next will still produce.
func (m *Mapping[T]) Len() int {
	n := len(m.remaining)
	if n == 0 || n < m.windowSize {
		return 0
	}
	if m.windowSize == 0 {
		return n
	}

	return n - m.windowSize + 1
}

// All returns an iterator that drains the mapping.
//
// Stopping a range loop early leaves the remaining views to later calls of
// Next or All.
//
// Example:
//
//	for view := range coord.Map(coord.NewForward(3, 2), samples).All() {
//	    fmt.Println(view.ToSlice())
//	}
func (m *Mapping[T]) All() iter.Seq[View[T]] {
	return func(yield func(View[T]) bool) {
		for {
			view, ok := m.Next()
			if !ok || !yield(view) {
				return
			}
		}
	}
}
