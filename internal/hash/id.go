// Package hash provides the xxHash64 helpers used to identify metrics and loaded series.
package hash

import (
	"encoding/binary"
	"math"

	"github.com/cespare/xxhash/v2"
)

// MetricID computes the mebo metric ID of a metric name.
func MetricID(name string) uint64 {
	return xxhash.Sum64String(name)
}

// Fingerprint computes a digest of a loaded series.
//
// Every row contributes its width followed by the IEEE-754 bits of its values,
// so [[1, 2]] and [[1], [2]] produce different fingerprints.
func Fingerprint(rows [][]float64) uint64 {
	d := xxhash.New()

	var buf [8]byte
	for _, row := range rows {
		binary.LittleEndian.PutUint64(buf[:], uint64(len(row)))
		_, _ = d.Write(buf[:])
		for _, v := range row {
			binary.LittleEndian.PutUint64(buf[:], math.Float64bits(v))
			_, _ = d.Write(buf[:])
		}
	}

	return d.Sum64()
}
