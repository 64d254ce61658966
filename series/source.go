package series

import (
	"bytes"
	"fmt"
	"io"
	"os"

	"github.com/arloliu/takens/compress"
	"github.com/arloliu/takens/errs"
	"github.com/arloliu/takens/format"
	"github.com/arloliu/takens/internal/hash"
)

// Source describes where a series comes from and how it is encoded.
type Source struct {
	// Path is the input file. An empty path or "-" reads standard input.
	Path string
	// Format selects the decoder. Zero means format.SourceCSV.
	Format format.SourceFormat
	// Compression of the input. format.CompressionAuto resolves it from the
	// file extension; standard input is then read uncompressed.
	Compression format.CompressionType
	// Metrics lists the metric names to read from a mebo blob.
	Metrics []string
	// Reader options for text input.
	ReaderOptions []ReaderOption
}

// IsStdin reports whether the source reads standard input.
func (s Source) IsStdin() bool {
	return s.Path == "" || s.Path == "-"
}

// ResolvedCompression returns the codec that will be used for the source.
func (s Source) ResolvedCompression() format.CompressionType {
	if s.Compression != format.CompressionAuto {
		return s.Compression
	}
	if s.IsStdin() {
		return format.CompressionNone
	}

	return format.CompressionFromPath(s.Path)
}

// Load reads, decompresses and decodes the source.
func Load(src Source) ([][]float64, error) {
	var in io.Reader = os.Stdin
	if !src.IsStdin() {
		f, err := os.Open(src.Path)
		if err != nil {
			return nil, err
		}
		defer f.Close()
		in = f
	}

	return Decode(in, src)
}

// Decode decompresses and decodes the series read from r according to src.
// src.Path is only used to resolve automatic compression.
func Decode(r io.Reader, src Source) ([][]float64, error) {
	ct := src.ResolvedCompression()
	codec, err := compress.GetCodec(ct)
	if err != nil {
		return nil, err
	}

	raw, err := io.ReadAll(r)
	if err != nil {
		return nil, err
	}

	data, err := codec.Decompress(raw)
	if err != nil {
		return nil, fmt.Errorf("decompress %s input: %w", ct, err)
	}

	switch src.Format {
	case 0, format.SourceCSV:
		return ReadText(bytes.NewReader(data), src.ReaderOptions...)
	case format.SourceMebo:
		return ReadBlob(data, src.Metrics...)
	default:
		return nil, fmt.Errorf("%w: %s", errs.ErrUnknownSourceFormat, src.Format)
	}
}

// Fingerprint returns an xxHash64 digest of a loaded series, for logging and
// for checking that two runs embedded the same data.
func Fingerprint(rows [][]float64) uint64 {
	return hash.Fingerprint(rows)
}
