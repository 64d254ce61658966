// Package series loads the input series of an embedding.
//
// A series is returned as [][]float64: one row per sample, one value per
// component. Scalar series have rows of width one; Column extracts a single
// component as []float64.
//
// Two encodings are supported:
//
//   - Text (format.SourceCSV): one sample per line, components separated by a
//     delimiter (',' by default). See ReadText.
//   - mebo numeric blobs (format.SourceMebo): each named metric becomes one
//     component. See ReadBlob.
//
// Either may be compressed with any codec of package compress. Load handles
// files and standard input:
//
//	rows, err := series.Load(series.Source{
//	    Path:        "lorenz.csv.zst",
//	    Compression: format.CompressionAuto,
//	})
package series
