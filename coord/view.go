package coord

import (
	"fmt"
	"iter"
)

// View is one embedded point: a window of WindowSize() consecutive samples
// interpreted through a Geometry.
//
// A View never copies sample data. Its window shares the backing array of the
// slice passed to Map, so the source must not be modified while views are in
// use. The window capacity is capped at its length, so appending to slices
// obtained from a View can never overwrite the source.
type View[T any] struct {
	geom   Geometry
	window []T
	offset int
}

func newView[T any](geom Geometry, window []T, offset int) View[T] {
	return View[T]{geom: geom, window: window, offset: offset}
}

// Geometry returns the geometry the view is interpreted through.
func (v View[T]) Geometry() Geometry {
	return v.geom
}

// Len returns the number of logical elements, i.e. the embedding dimension.
func (v View[T]) Len() int {
	return max(v.geom.Dimension(), 0)
}

// Offset returns the position of the window's first (oldest) sample in the source.
func (v View[T]) Offset() int {
	return v.offset
}

// Get returns the element at the given logical index.
//
// It returns false when the index is outside [0, Len()) or when the geometry
// maps it outside the window.
func (v View[T]) Get(index int) (T, bool) {
	pos, ok := v.position(index)
	if !ok {
		var zero T
		return zero, false
	}

	return v.window[pos], true
}

// Ref returns a pointer to the element at the given logical index, or nil when
// the index is out of range. The pointer refers to the source slice itself.
func (v View[T]) Ref(index int) *T {
	pos, ok := v.position(index)
	if !ok {
		return nil
	}

	return &v.window[pos]
}

// At returns the element at the given logical index.
//
// At panics if the index is out of range. Use Get when an invalid index is a
// condition to handle rather than a bug.
func (v View[T]) At(index int) T {
	pos, ok := v.position(index)
	if !ok {
		panic(fmt.Sprintf("coord: logical index %d out of range for %d-dimensional view", index, v.Len()))
	}

	return v.window[pos]
}

// ToSlice returns a newly allocated slice with the view's elements in logical order.
func (v View[T]) ToSlice() []T {
	return v.AppendTo(make([]T, 0, v.Len()))
}

// AppendTo appends the view's elements in logical order to dst and returns the
// extended slice.
func (v View[T]) AppendTo(dst []T) []T {
	for _, elem := range v.All() {
		dst = append(dst, elem)
	}

	return dst
}

// Iter returns a pull iterator over the view's elements.
func (v View[T]) Iter() *ViewIter[T] {
	return &ViewIter[T]{view: v}
}

// All returns an iterator over (logical index, element) pairs.
//
// Example:
//
//	for i, x := range view.All() {
//	    fmt.Printf("x[t-%d] = %v\n", i*view.Geometry().Delay(), x)
//	}
func (v View[T]) All() iter.Seq2[int, T] {
	return func(yield func(int, T) bool) {
		it := v.Iter()
		for i := 0; ; i++ {
			elem, ok := it.Next()
			if !ok || !yield(i, elem) {
				return
			}
		}
	}
}

func (v View[T]) position(index int) (int, bool) {
	pos, ok := v.geom.MapCoord(index)
	if !ok || pos < 0 || pos >= len(v.window) {
		return 0, false
	}

	return pos, true
}

// Flatten returns the concatenation of the components of every element of a
// view over compound samples, in logical order and then per-element order.
//
// For a multivariate series whose samples all have c components the result
// has length Len()*c.
func Flatten[S ~[]E, E any](v View[S]) []E {
	size := 0
	for _, elem := range v.All() {
		size += len(elem)
	}

	return AppendFlatten(make([]E, 0, size), v)
}

// AppendFlatten appends the flattened components of v to dst and returns the
// extended slice. It lets callers reuse one row buffer across many views.
func AppendFlatten[S ~[]E, E any](dst []E, v View[S]) []E {
	for _, elem := range v.All() {
		dst = append(dst, elem...)
	}

	return dst
}
