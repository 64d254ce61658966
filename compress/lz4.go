package compress

import (
	"errors"
	"fmt"
	"sync"

	"github.com/pierrec/lz4/v4"
)

// lz4CompressorPool keeps lz4.Compressor hash tables warm between calls.
var lz4CompressorPool = sync.Pool{
	New: func() any {
		return &lz4.Compressor{}
	},
}

const (
	// maxLZ4Output bounds the buffer used when decompressing an LZ4 block.
	maxLZ4Output = 256 * 1024 * 1024
	// lz4MaxExpansion is the largest decoded/encoded size ratio of an LZ4
	// block: every extra match length byte adds at most 255 output bytes.
	lz4MaxExpansion = 255
	// lz4ExpansionSlack covers the fixed token overhead of very small blocks.
	lz4ExpansionSlack = 64
)

// LZ4Compressor implements format.CompressionLZ4 using raw LZ4 blocks.
//
// LZ4 blocks do not record their uncompressed size, so Decompress grows its
// output buffer until the block fits. Growth stops at the largest size the
// block could possibly decode to, bounded by maxLZ4Output.
type LZ4Compressor struct{}

var _ Codec = (*LZ4Compressor)(nil)

// NewLZ4Compressor creates an LZ4 codec.
func NewLZ4Compressor() LZ4Compressor {
	return LZ4Compressor{}
}

// Compress compresses data as a single LZ4 block.
func (c LZ4Compressor) Compress(data []byte) ([]byte, error) {
	if len(data) == 0 {
		return nil, nil
	}
	dst := make([]byte, lz4.CompressBlockBound(len(data)))

	lc, _ := lz4CompressorPool.Get().(*lz4.Compressor)
	defer lz4CompressorPool.Put(lc)

	n, err := lc.CompressBlock(data, dst)
	if err != nil {
		return nil, err
	}

	return dst[:n], nil
}

// Decompress decodes a single LZ4 block.
//
// Text series compress well, so the first attempt uses 8x the input size and
// the buffer doubles on lz4.ErrInvalidSourceShortBuffer. The library reports
// corrupt blocks with the same error, so a block that still fails at the
// largest possible output size is rejected as corrupt.
func (c LZ4Compressor) Decompress(data []byte) ([]byte, error) {
	if len(data) == 0 {
		return nil, nil
	}

	limit := lz4OutputLimit(len(data))
	bufSize := min(len(data)*8, limit)
	for {
		buf := make([]byte, bufSize)
		n, err := lz4.UncompressBlock(data, buf)
		if err == nil {
			return buf[:n], nil
		}
		if !errors.Is(err, lz4.ErrInvalidSourceShortBuffer) || bufSize >= limit {
			return nil, fmt.Errorf("lz4 decompression failed: %w", err)
		}
		bufSize = min(bufSize*2, limit)
	}
}

// lz4OutputLimit returns the largest size a block of n bytes can decode to.
func lz4OutputLimit(n int) int {
	if n > (maxLZ4Output-lz4ExpansionSlack)/lz4MaxExpansion {
		return maxLZ4Output
	}

	return n*lz4MaxExpansion + lz4ExpansionSlack
}
