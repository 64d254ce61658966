package pool

import "sync"

var float64SlicePool = sync.Pool{
	New: func() any { return &[]float64{} },
}

// GetFloat64Slice returns an empty float64 slice with at least the given
// capacity. The caller must call the returned cleanup function once the slice
// is no longer used; the slice must not be retained after that.
//
// Example:
//
//	row, cleanup := pool.GetFloat64Slice(dim * width)
//	defer cleanup()
//	for view := range m.All() {
//	    row = coord.AppendFlatten(row[:0], view)
//	}
func GetFloat64Slice(capacity int) ([]float64, func()) {
	ptr, _ := float64SlicePool.Get().(*[]float64)
	if cap(*ptr) < capacity {
		*ptr = make([]float64, 0, capacity)
	}

	return (*ptr)[:0], func() { float64SlicePool.Put(ptr) }
}
