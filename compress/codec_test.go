package compress

import (
	"bytes"
	"fmt"
	"strconv"
	"strings"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/arloliu/takens/errs"
	"github.com/arloliu/takens/format"
)

var concreteTypes = []format.CompressionType{
	format.CompressionNone,
	format.CompressionZstd,
	format.CompressionS2,
	format.CompressionLZ4,
}

// embeddedRows renders n rows of a dimension-3 embedding as comma-separated text.
func embeddedRows(n int) []byte {
	var buf bytes.Buffer
	for i := range n {
		buf.WriteString(strconv.Itoa(i + 4))
		buf.WriteByte(',')
		buf.WriteString(strconv.Itoa(i + 2))
		buf.WriteByte(',')
		buf.WriteString(strconv.Itoa(i))
		buf.WriteByte('\n')
	}

	return buf.Bytes()
}

func TestGetCodec(t *testing.T) {
	for _, ct := range concreteTypes {
		codec, err := GetCodec(ct)
		require.NoError(t, err, ct.String())
		require.NotNil(t, codec)
	}

	_, err := GetCodec(format.CompressionAuto)
	require.ErrorIs(t, err, errs.ErrUnsupportedCompression)

	_, err = GetCodec(format.CompressionType(0xff))
	require.ErrorIs(t, err, errs.ErrUnsupportedCompression)
}

func TestCodecRoundTrip(t *testing.T) {
	payloads := map[string][]byte{
		"single row":  []byte("4,2,0\n"),
		"small":       embeddedRows(10),
		"large":       embeddedRows(50000),
		"binary-ish":  bytes.Repeat([]byte{0x00, 0xff, 0x10}, 4096),
		"single byte": {'7'},
	}

	for _, ct := range concreteTypes {
		codec, err := GetCodec(ct)
		require.NoError(t, err)

		for name, payload := range payloads {
			t.Run(fmt.Sprintf("%s/%s", ct, name), func(t *testing.T) {
				packed, err := codec.Compress(payload)
				require.NoError(t, err)

				unpacked, err := codec.Decompress(packed)
				require.NoError(t, err)
				require.Equal(t, payload, unpacked)
			})
		}
	}
}

func TestCodecEmptyInput(t *testing.T) {
	for _, ct := range concreteTypes {
		codec, err := GetCodec(ct)
		require.NoError(t, err)

		packed, err := codec.Compress(nil)
		require.NoError(t, err, ct.String())

		unpacked, err := codec.Decompress(packed)
		require.NoError(t, err, ct.String())
		require.Empty(t, unpacked, ct.String())
	}
}

func TestCodecCompressesText(t *testing.T) {
	payload := embeddedRows(20000)

	// s2 trades ratio for speed, so it gets a looser bound.
	maxRatio := map[format.CompressionType]float64{
		format.CompressionZstd: 0.5,
		format.CompressionS2:   0.7,
		format.CompressionLZ4:  0.5,
	}

	for ct, bound := range maxRatio {
		_, stats, err := CompressWithStats(ct, payload)
		require.NoError(t, err)
		require.Equal(t, ct, stats.Algorithm)
		require.Equal(t, int64(len(payload)), stats.OriginalSize)
		require.Less(t, stats.CompressedSize, stats.OriginalSize, ct.String())
		require.Less(t, stats.Ratio(), bound, ct.String())
		require.InDelta(t, (1-stats.Ratio())*100, stats.SpaceSavings(), 1e-9, ct.String())
	}
}

func TestCodecRejectsGarbage(t *testing.T) {
	garbage := []byte("definitely not a compressed block, just some text")

	for _, ct := range []format.CompressionType{format.CompressionZstd, format.CompressionS2, format.CompressionLZ4} {
		codec, err := GetCodec(ct)
		require.NoError(t, err)

		_, err = codec.Decompress(garbage)
		require.ErrorContains(t, err, strings.ToLower(ct.String())+" decompression failed")
	}
}

func TestNoOpSharesMemory(t *testing.T) {
	data := []byte("1,2,3\n")
	out, err := NewNoOpCompressor().Compress(data)
	require.NoError(t, err)
	require.Same(t, &data[0], &out[0])
}

func TestStats(t *testing.T) {
	tests := []struct {
		name        string
		stats       Stats
		wantRatio   float64
		wantSavings float64
	}{
		{"good compression", Stats{format.CompressionZstd, 1000, 300}, 0.3, 70.0},
		{"no benefit", Stats{format.CompressionNone, 500, 500}, 1.0, 0.0},
		{"overhead", Stats{format.CompressionS2, 100, 120}, 1.2, -20.0},
		{"zero original size", Stats{format.CompressionLZ4, 0, 10}, 0.0, 100.0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			require.InDelta(t, tt.wantRatio, tt.stats.Ratio(), 0.001)
			require.InDelta(t, tt.wantSavings, tt.stats.SpaceSavings(), 0.001)
		})
	}
}

func TestCompressWithStatsUnknownType(t *testing.T) {
	_, _, err := CompressWithStats(format.CompressionAuto, []byte("x"))
	require.ErrorIs(t, err, errs.ErrUnsupportedCompression)
}
