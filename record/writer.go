// Package record writes embedded points as delimited text records.
//
// Every point becomes one line: its components joined by a delimiter (','
// by default) and terminated by '\n'. Values use the shortest decimal
// representation that round-trips and never exponent notation, so 4.0 is
// written as "4" and 0.1 as "0.1". Infinities are written as "inf" and "-inf".
package record

import (
	"fmt"
	"io"
	"math"
	"strconv"

	"github.com/arloliu/takens/compress"
	"github.com/arloliu/takens/errs"
	"github.com/arloliu/takens/format"
	"github.com/arloliu/takens/internal/options"
	"github.com/arloliu/takens/internal/pool"
)

// flushThreshold is the buffered size at which uncompressed output is written through.
const flushThreshold = pool.RecordBufferDefaultSize - 512

type writerConfig struct {
	delimiter   byte
	precision   int
	compression format.CompressionType
}

// WriterOption configures a Writer.
type WriterOption = options.Option[*writerConfig]

// WithDelimiter sets the field delimiter. The default is ','.
func WithDelimiter(delim byte) WriterOption {
	return options.New(func(c *writerConfig) error {
		if delim == '\n' || delim == '\r' || delim == '-' || delim == '.' || (delim >= '0' && delim <= '9') {
			return fmt.Errorf("invalid record delimiter %q", delim)
		}
		c.delimiter = delim

		return nil
	})
}

// WithPrecision sets the number of digits after the decimal point.
// A negative precision, the default, selects the shortest exact representation.
func WithPrecision(prec int) WriterOption {
	return options.NoError(func(c *writerConfig) {
		c.precision = prec
	})
}

// WithCompression compresses the whole output with the given codec when the
// writer is closed. format.CompressionNone, the default, streams records.
func WithCompression(ct format.CompressionType) WriterOption {
	return options.New(func(c *writerConfig) error {
		if _, err := compress.GetCodec(ct); err != nil {
			return err
		}
		c.compression = ct

		return nil
	})
}

// Writer formats embedded points as text records.
//
// Uncompressed output is buffered and written through in chunks. Compressed
// output is accumulated and compressed as a single block by Close.
//
// Writer is not safe for concurrent use. Close must be called to flush.
type Writer struct {
	w      io.Writer
	buf    *pool.ByteBuffer
	cfg    writerConfig
	rows   int
	stats  compress.Stats
	closed bool
}

// NewWriter creates a Writer that writes to w.
func NewWriter(w io.Writer, opts ...WriterOption) (*Writer, error) {
	cfg := &writerConfig{
		delimiter:   ',',
		precision:   -1,
		compression: format.CompressionNone,
	}
	if err := options.Apply(cfg, opts...); err != nil {
		return nil, err
	}

	return &Writer{
		w:   w,
		buf: pool.GetRecordBuffer(),
		cfg: *cfg,
	}, nil
}

// WriteRow writes one record.
func (w *Writer) WriteRow(values []float64) error {
	if w.closed {
		return errs.ErrWriterClosed
	}

	b := w.buf.B
	for i, v := range values {
		if i > 0 {
			b = append(b, w.cfg.delimiter)
		}
		b = appendValue(b, v, w.cfg.precision)
	}
	w.buf.B = append(b, '\n')
	w.rows++

	if w.cfg.compression == format.CompressionNone && w.buf.Len() >= flushThreshold {
		return w.flush()
	}

	return nil
}

// appendValue formats v without exponent. Infinities are written as "inf" and
// "-inf", NaN as "NaN"; ParseFloat reads all three back.
func appendValue(b []byte, v float64, prec int) []byte {
	switch {
	case math.IsInf(v, 1):
		return append(b, "inf"...)
	case math.IsInf(v, -1):
		return append(b, "-inf"...)
	}

	return strconv.AppendFloat(b, v, 'f', prec, 64)
}

// Rows returns the number of records written so far.
func (w *Writer) Rows() int {
	return w.rows
}

// Stats returns the compression statistics of the output. It is only
// populated after Close and only when compression is enabled.
func (w *Writer) Stats() compress.Stats {
	return w.stats
}

// Close flushes buffered records, compressing them first if configured, and
// releases the writer's buffer. It does not close the underlying io.Writer.
// Calling Close more than once is a no-op.
func (w *Writer) Close() error {
	if w.closed {
		return nil
	}
	w.closed = true
	defer func() {
		pool.PutRecordBuffer(w.buf)
		w.buf = nil
	}()

	if w.cfg.compression == format.CompressionNone {
		return w.flush()
	}

	packed, stats, err := compress.CompressWithStats(w.cfg.compression, w.buf.Bytes())
	if err != nil {
		return err
	}
	w.stats = stats

	if _, err := w.w.Write(packed); err != nil {
		return fmt.Errorf("write compressed records: %w", err)
	}

	return nil
}

func (w *Writer) flush() error {
	if w.buf.Len() == 0 {
		return nil
	}
	if _, err := w.buf.WriteTo(w.w); err != nil {
		return fmt.Errorf("write records: %w", err)
	}

	return nil
}
