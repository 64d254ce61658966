package compress

import (
	"fmt"

	"github.com/klauspost/compress/s2"
)

// S2Compressor implements format.CompressionS2.
//
// It is the fastest codec for embedding output: records are written once and
// usually streamed to another tool, so throughput matters more than ratio.
// Inputs with a .s2 extension are read with the same block format.
type S2Compressor struct{}

var _ Codec = (*S2Compressor)(nil)

// NewS2Compressor creates an S2 codec.
func NewS2Compressor() S2Compressor {
	return S2Compressor{}
}

// Compress encodes the whole record buffer as one S2 block. The block header
// carries the decoded length, so Decompress allocates exactly once.
func (c S2Compressor) Compress(data []byte) ([]byte, error) {
	if len(data) == 0 {
		return nil, nil
	}

	return s2.Encode(nil, data), nil
}

// Decompress decodes one S2 block, such as a compressed series file.
func (c S2Compressor) Decompress(data []byte) ([]byte, error) {
	if len(data) == 0 {
		return nil, nil
	}

	out, err := s2.Decode(nil, data)
	if err != nil {
		return nil, fmt.Errorf("s2 decompression failed: %w", err)
	}

	return out, nil
}
