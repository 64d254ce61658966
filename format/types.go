// Package format defines the enumerations shared by the takens input and output layers.
package format

import (
	"fmt"
	"path/filepath"
	"strings"

	"github.com/arloliu/takens/errs"
)

type (
	// CompressionType selects the block codec applied to an input file or to the output stream.
	CompressionType uint8
	// SourceFormat selects how an input series is decoded.
	SourceFormat uint8
)

const (
	CompressionAuto CompressionType = 0x0 // CompressionAuto resolves the codec from the file extension.
	CompressionNone CompressionType = 0x1 // CompressionNone represents no compression.
	CompressionZstd CompressionType = 0x2 // CompressionZstd represents Zstandard compression.
	CompressionS2   CompressionType = 0x3 // CompressionS2 represents S2 compression.
	CompressionLZ4  CompressionType = 0x4 // CompressionLZ4 represents LZ4 block compression.
)

const (
	SourceCSV  SourceFormat = 0x1 // SourceCSV is one delimited sample per line.
	SourceMebo SourceFormat = 0x2 // SourceMebo is a mebo numeric blob.
)

func (c CompressionType) String() string {
	switch c {
	case CompressionAuto:
		return "Auto"
	case CompressionNone:
		return "None"
	case CompressionZstd:
		return "Zstd"
	case CompressionS2:
		return "S2"
	case CompressionLZ4:
		return "LZ4"
	default:
		return "Unknown"
	}
}

// Extension returns the conventional file extension for c, including the dot.
// It returns "" for CompressionNone, CompressionAuto and unknown values.
func (c CompressionType) Extension() string {
	switch c {
	case CompressionZstd:
		return ".zst"
	case CompressionS2:
		return ".s2"
	case CompressionLZ4:
		return ".lz4"
	default:
		return ""
	}
}

// ParseCompression parses a case-insensitive compression name
// ("auto", "none", "zstd", "s2" or "lz4"). An empty string means auto.
func ParseCompression(s string) (CompressionType, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "", "auto":
		return CompressionAuto, nil
	case "none":
		return CompressionNone, nil
	case "zstd", "zst":
		return CompressionZstd, nil
	case "s2":
		return CompressionS2, nil
	case "lz4":
		return CompressionLZ4, nil
	default:
		return 0, fmt.Errorf("%w: %q", errs.ErrUnsupportedCompression, s)
	}
}

// CompressionFromPath resolves the codec of a file from its extension.
// Paths without a known extension are treated as uncompressed.
func CompressionFromPath(path string) CompressionType {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".zst", ".zstd":
		return CompressionZstd
	case ".s2":
		return CompressionS2
	case ".lz4":
		return CompressionLZ4
	default:
		return CompressionNone
	}
}

func (f SourceFormat) String() string {
	switch f {
	case SourceCSV:
		return "CSV"
	case SourceMebo:
		return "Mebo"
	default:
		return "Unknown"
	}
}

// ParseSourceFormat parses a case-insensitive source format name ("csv" or "mebo").
// An empty string means csv.
func ParseSourceFormat(s string) (SourceFormat, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "", "csv", "text":
		return SourceCSV, nil
	case "mebo", "blob":
		return SourceMebo, nil
	default:
		return 0, fmt.Errorf("%w: %q", errs.ErrUnknownSourceFormat, s)
	}
}
