package compress

import (
	"fmt"

	"github.com/arloliu/takens/errs"
	"github.com/arloliu/takens/format"
)

// Compressor compresses a complete block of data.
//
// takens compresses whole documents at once: an input series file before it
// is parsed, or the full text of the embedded points when the output stream
// is closed. Codecs therefore work on blocks, not streams.
type Compressor interface {
	// Compress returns the compressed form of data. The input is not modified.
	Compress(data []byte) ([]byte, error)
}

// Decompressor restores a block produced by the matching Compressor.
type Decompressor interface {
	// Decompress returns the original data, or an error if data is corrupted
	// or was produced by another algorithm.
	Decompress(data []byte) ([]byte, error)
}

// Codec combines both directions. All built-in codecs are safe for concurrent use.
type Codec interface {
	Compressor
	Decompressor
}

// Stats describes the result of compressing one block.
type Stats struct {
	// Algorithm identifies the codec used.
	Algorithm format.CompressionType
	// OriginalSize is the size of the input in bytes.
	OriginalSize int64
	// CompressedSize is the size of the output in bytes.
	CompressedSize int64
}

// Ratio returns CompressedSize / OriginalSize, or 0 if nothing was compressed.
func (s Stats) Ratio() float64 {
	if s.OriginalSize == 0 {
		return 0.0
	}

	return float64(s.CompressedSize) / float64(s.OriginalSize)
}

// SpaceSavings returns the saved space as a percentage of the original size.
func (s Stats) SpaceSavings() float64 {
	return (1.0 - s.Ratio()) * 100.0
}

var builtinCodecs = map[format.CompressionType]Codec{
	format.CompressionNone: NewNoOpCompressor(),
	format.CompressionZstd: NewZstdCompressor(),
	format.CompressionS2:   NewS2Compressor(),
	format.CompressionLZ4:  NewLZ4Compressor(),
}

// GetCodec returns the built-in codec for a concrete compression type.
// CompressionAuto must be resolved by the caller first.
func GetCodec(compressionType format.CompressionType) (Codec, error) {
	if codec, ok := builtinCodecs[compressionType]; ok {
		return codec, nil
	}

	return nil, fmt.Errorf("%w: %s", errs.ErrUnsupportedCompression, compressionType)
}

// CompressWithStats compresses data and reports the sizes involved.
func CompressWithStats(compressionType format.CompressionType, data []byte) ([]byte, Stats, error) {
	codec, err := GetCodec(compressionType)
	if err != nil {
		return nil, Stats{}, err
	}

	out, err := codec.Compress(data)
	if err != nil {
		return nil, Stats{}, fmt.Errorf("%s compression failed: %w", compressionType, err)
	}

	return out, Stats{
		Algorithm:      compressionType,
		OriginalSize:   int64(len(data)),
		CompressedSize: int64(len(out)),
	}, nil
}
