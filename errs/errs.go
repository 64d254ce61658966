// Package errs defines the sentinel errors returned by takens packages.
//
// Errors are wrapped with context using fmt.Errorf("%w: ...", errs.ErrX, ...),
// so callers should compare with errors.Is rather than equality.
package errs

import "errors"

// Geometry errors.
var (
	// ErrInvalidDimension indicates an embedding dimension below 1.
	ErrInvalidDimension = errors.New("invalid embedding dimension")
	// ErrInvalidDelay indicates a negative time delay.
	ErrInvalidDelay = errors.New("invalid time delay")
)

// Input errors.
var (
	ErrInvalidSample        = errors.New("invalid sample")
	ErrRaggedRow            = errors.New("row width differs from first row")
	ErrNoMetrics            = errors.New("no metrics specified")
	ErrMetricNotFound       = errors.New("metric not found in blob")
	ErrMetricLengthMismatch = errors.New("metrics have different number of data points")
	ErrUnknownSourceFormat  = errors.New("unknown source format")
	ErrColumnOutOfRange     = errors.New("column index out of range")
)

// Codec errors.
var (
	ErrUnsupportedCompression = errors.New("unsupported compression type")
)

// Configuration errors.
var (
	ErrInvalidConfig = errors.New("invalid configuration")
)

// Writer errors.
var (
	ErrWriterClosed = errors.New("writer is closed")
)
