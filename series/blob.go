package series

import (
	"fmt"

	"github.com/arloliu/mebo/blob"

	"github.com/arloliu/takens/errs"
	"github.com/arloliu/takens/internal/hash"
)

// ReadBlob decodes a mebo numeric blob and zips the values of the named
// metrics into rows: row i holds the i-th value of every metric, in the order
// the metrics are given. A single metric gives a scalar series.
//
// Every metric must exist and all metrics must have the same number of data
// points. Timestamps and tags are ignored; samples are taken in storage order.
func ReadBlob(data []byte, metrics ...string) ([][]float64, error) {
	if len(metrics) == 0 {
		return nil, errs.ErrNoMetrics
	}

	decoder, err := blob.NewNumericDecoder(data)
	if err != nil {
		return nil, fmt.Errorf("invalid mebo blob: %w", err)
	}

	b, err := decoder.Decode()
	if err != nil {
		return nil, fmt.Errorf("invalid mebo blob: %w", err)
	}

	var rows [][]float64
	for col, name := range metrics {
		values, ok := metricValues(b, name)
		if !ok {
			return nil, fmt.Errorf("%w: %q", errs.ErrMetricNotFound, name)
		}

		if col == 0 {
			rows = make([][]float64, len(values))
			for i := range rows {
				rows[i] = make([]float64, 0, len(metrics))
			}
		} else if len(values) != len(rows) {
			return nil, fmt.Errorf("%w: %q has %d points, %q has %d",
				errs.ErrMetricLengthMismatch, name, len(values), metrics[0], len(rows))
		}

		for i, v := range values {
			rows[i] = append(rows[i], v)
		}
	}

	return rows, nil
}

// metricValues looks a metric up by name when the blob carries metric names
// (it does after a hash collision) and by its xxHash64 ID otherwise.
func metricValues(b blob.NumericBlob, name string) ([]float64, bool) {
	if b.HasMetricName(name) {
		values := make([]float64, 0, b.LenByName(name))
		for v := range b.AllValuesByName(name) {
			values = append(values, v)
		}

		return values, true
	}

	id := hash.MetricID(name)
	if !b.HasMetricID(id) {
		return nil, false
	}

	values := make([]float64, 0, b.Len(id))
	for v := range b.AllValues(id) {
		values = append(values, v)
	}

	return values, true
}
