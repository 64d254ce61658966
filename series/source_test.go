package series

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/arloliu/takens/compress"
	"github.com/arloliu/takens/errs"
	"github.com/arloliu/takens/format"
)

const sampleCSV = "0,0\n1,1\n2,2\n3,3\n"

var sampleRows = [][]float64{{0, 0}, {1, 1}, {2, 2}, {3, 3}}

func writeFile(t *testing.T, name string, data []byte) string {
	t.Helper()

	path := filepath.Join(t.TempDir(), name)
	require.NoError(t, os.WriteFile(path, data, 0o600))

	return path
}

func TestSourceResolvedCompression(t *testing.T) {
	require.Equal(t, format.CompressionNone, Source{}.ResolvedCompression())
	require.Equal(t, format.CompressionNone, Source{Path: "-"}.ResolvedCompression())
	require.Equal(t, format.CompressionZstd, Source{Path: "a.csv.zst"}.ResolvedCompression())
	require.Equal(t, format.CompressionLZ4, Source{Path: "a.csv.zst", Compression: format.CompressionLZ4}.ResolvedCompression())
	require.True(t, Source{Path: "-"}.IsStdin())
	require.False(t, Source{Path: "a.csv"}.IsStdin())
}

func TestLoadPlainFile(t *testing.T) {
	path := writeFile(t, "series.csv", []byte(sampleCSV))

	rows, err := Load(Source{Path: path})
	require.NoError(t, err)
	require.Equal(t, sampleRows, rows)
}

func TestLoadCompressedFiles(t *testing.T) {
	for _, ct := range []format.CompressionType{format.CompressionZstd, format.CompressionS2, format.CompressionLZ4} {
		t.Run(ct.String(), func(t *testing.T) {
			codec, err := compress.GetCodec(ct)
			require.NoError(t, err)
			packed, err := codec.Compress([]byte(sampleCSV))
			require.NoError(t, err)

			path := writeFile(t, "series.csv"+ct.Extension(), packed)

			rows, err := Load(Source{Path: path, Compression: format.CompressionAuto})
			require.NoError(t, err)
			require.Equal(t, sampleRows, rows)
		})
	}
}

func TestLoadMeboFile(t *testing.T) {
	data := encodeMetrics(t, map[string][]float64{
		"a": {1, 2, 3},
		"b": {4, 5, 6},
	}, "a", "b")

	codec, err := compress.GetCodec(format.CompressionS2)
	require.NoError(t, err)
	packed, err := codec.Compress(data)
	require.NoError(t, err)

	path := writeFile(t, "metrics.mebo.s2", packed)

	rows, err := Load(Source{Path: path, Format: format.SourceMebo, Metrics: []string{"b", "a"}})
	require.NoError(t, err)
	require.Equal(t, [][]float64{{4, 1}, {5, 2}, {6, 3}}, rows)
}

func TestLoadErrors(t *testing.T) {
	t.Run("missing file", func(t *testing.T) {
		_, err := Load(Source{Path: filepath.Join(t.TempDir(), "nope.csv")})
		require.ErrorIs(t, err, os.ErrNotExist)
	})

	t.Run("corrupted compressed input", func(t *testing.T) {
		path := writeFile(t, "bad.csv.zst", []byte("not zstd"))
		_, err := Load(Source{Path: path})
		require.Error(t, err)
		require.Contains(t, err.Error(), "decompress Zstd input")
	})

	t.Run("unknown format", func(t *testing.T) {
		_, err := Decode(strings.NewReader(sampleCSV), Source{Format: format.SourceFormat(0x7f)})
		require.ErrorIs(t, err, errs.ErrUnknownSourceFormat)
	})

	t.Run("unknown compression", func(t *testing.T) {
		_, err := Decode(strings.NewReader(sampleCSV), Source{Compression: format.CompressionType(0x7f)})
		require.ErrorIs(t, err, errs.ErrUnsupportedCompression)
	})
}

func TestDecodeReaderOptions(t *testing.T) {
	rows, err := Decode(strings.NewReader("1;2\n3;4\n"), Source{
		ReaderOptions: []ReaderOption{WithDelimiter(';')},
	})
	require.NoError(t, err)
	require.Equal(t, [][]float64{{1, 2}, {3, 4}}, rows)
}

func TestFingerprintStableAcrossEncodings(t *testing.T) {
	fromText, err := Decode(strings.NewReader("1\n2\n3\n"), Source{})
	require.NoError(t, err)

	data := encodeMetrics(t, map[string][]float64{"m": {1, 2, 3}}, "m")
	fromBlob, err := ReadBlob(data, "m")
	require.NoError(t, err)

	require.Equal(t, Fingerprint(fromText), Fingerprint(fromBlob))
}
