package compress

// ZstdCompressor implements format.CompressionZstd.
//
// The default build uses the pure Go encoder from klauspost/compress. Building
// with cgo and the gozstd tag switches to the libzstd binding from
// valyala/gozstd; both produce standard zstd frames and read each other's output.
type ZstdCompressor struct{}

var _ Codec = (*ZstdCompressor)(nil)

// NewZstdCompressor creates a Zstd codec.
func NewZstdCompressor() ZstdCompressor {
	return ZstdCompressor{}
}
