package coord

import (
	"fmt"
	"math"

	"github.com/arloliu/takens/errs"
)

// Geometry describes how the logical coordinates of an embedded point map onto
// physical offsets inside a window of consecutive samples.
//
// All methods must be pure and depend only on the geometry's own parameters,
// never on the data being embedded. Mapping and View rely on that: they slide
// and index windows without knowing which delay scheme produced the offsets.
type Geometry interface {
	// Delay returns the number of sampling steps between consecutive coordinates.
	Delay() int
	// Dimension returns the number of logical coordinates per embedded point.
	Dimension() int
	// WindowSize returns the number of consecutive samples spanned by one point.
	WindowSize() int
	// MapCoord maps a logical index in [0, Dimension()) to a physical offset in
	// [0, WindowSize()). It reports false for any other index.
	//
	// MapCoord must be injective over [0, Dimension()).
	MapCoord(index int) (int, bool)
}

// Forward is the forward delay geometry: logical index 0 is the newest sample
// of the window and logical index Dimension()-1 is the oldest.
//
// For dimension 3 and delay 2 the window spans 5 samples and the coordinates
// map as:
//
//	logical  0  1  2
//	offset   4  2  0
//
// Forward performs no validation. A zero dimension yields empty windows and a
// zero delay collapses every coordinate onto offset 0. Use Validate to reject
// such parameters before constructing an embedding.
type Forward struct {
	dimension int
	delay     int
}

var _ Geometry = Forward{}

// NewForward creates a forward delay geometry.
func NewForward(dimension, delay int) Forward {
	return Forward{dimension: dimension, delay: delay}
}

// Delay returns the time delay in steps.
func (f Forward) Delay() int {
	return f.delay
}

// Dimension returns the embedding dimension.
func (f Forward) Dimension() int {
	return f.dimension
}

// WindowSize returns (dimension-1)*delay + 1, or 0 when the dimension is not
// positive or a negative delay spreads more than one coordinate. A window too
// large for int saturates at math.MaxInt, which no slice can fill.
func (f Forward) WindowSize() int {
	switch {
	case f.dimension <= 0:
		return 0
	case f.dimension == 1 || f.delay == 0:
		return 1
	case f.delay < 0:
		return 0
	case f.dimension-1 > (math.MaxInt-1)/f.delay:
		return math.MaxInt
	}

	return (f.dimension-1)*f.delay + 1
}

// MapCoord returns (dimension - index - 1) * delay for index in [0, dimension).
// It reports false when that offset does not lie in [0, WindowSize()), which
// happens only for negative delays or offsets beyond the range of int.
func (f Forward) MapCoord(index int) (int, bool) {
	if index < 0 || index >= f.dimension {
		return 0, false
	}

	steps := f.dimension - index - 1
	if f.delay > 0 && steps > (math.MaxInt-1)/f.delay {
		return 0, false
	}

	offset := steps * f.delay
	if offset < 0 || offset >= f.WindowSize() {
		return 0, false
	}

	return offset, true
}

// String implements fmt.Stringer.
func (f Forward) String() string {
	return fmt.Sprintf("Forward(dim=%d, delay=%d)", f.dimension, f.delay)
}

// Validate reports whether g has parameters that produce a meaningful embedding.
//
// It returns errs.ErrInvalidDimension when the dimension is below 1 and
// errs.ErrInvalidDelay when the delay is negative. A zero delay is accepted;
// callers that consider it degenerate must check for it themselves.
//
// The embedding types never call Validate; it is meant for configuration layers.
func Validate(g Geometry) error {
	if g.Dimension() < 1 {
		return fmt.Errorf("%w: %d, must be at least 1", errs.ErrInvalidDimension, g.Dimension())
	}

	if g.Delay() < 0 {
		return fmt.Errorf("%w: %d, must not be negative", errs.ErrInvalidDelay, g.Delay())
	}

	return nil
}
