// Package compress provides the block codecs takens applies to input series
// files and to the embedded-point output.
//
// Supported algorithms, selected by format.CompressionType:
//   - None: pass-through
//   - Zstd: best ratio; pure Go (klauspost/compress) by default, libzstd via
//     valyala/gozstd when built with cgo and the gozstd tag
//   - S2: fast Snappy-compatible compression (klauspost/compress/s2)
//   - LZ4: raw LZ4 blocks (pierrec/lz4)
//
// A whole document is compressed as one block:
//
//	codec, err := compress.GetCodec(format.CompressionZstd)
//	if err != nil {
//	    return err
//	}
//	packed, err := codec.Compress(csvBytes)
//
// CompressWithStats additionally reports the original and compressed sizes,
// which the command-line tool logs at debug level.
package compress
