package main

import (
	"bytes"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/arloliu/mebo/blob"
	"github.com/stretchr/testify/require"

	"github.com/arloliu/takens/compress"
	"github.com/arloliu/takens/errs"
	"github.com/arloliu/takens/format"
)

const scalarSeries = "0\n1\n2\n3\n4\n5\n6\n7\n8\n9\n"

const scalarPoints = "4,2,0\n5,3,1\n6,4,2\n7,5,3\n8,6,4\n9,7,5\n"

func execute(t *testing.T, stdin string, args ...string) (string, string, error) {
	t.Helper()

	var stdout, stderr bytes.Buffer
	cmd := newRootCmd()
	cmd.SetArgs(args)
	cmd.SetIn(strings.NewReader(stdin))
	cmd.SetOut(&stdout)
	cmd.SetErr(&stderr)

	err := cmd.Execute()

	return stdout.String(), stderr.String(), err
}

func writeFile(t *testing.T, name string, data []byte) string {
	t.Helper()

	path := filepath.Join(t.TempDir(), name)
	require.NoError(t, os.WriteFile(path, data, 0o600))

	return path
}

func TestScalarFromFile(t *testing.T) {
	path := writeFile(t, "series.csv", []byte(scalarSeries))

	out, _, err := execute(t, "", "-m", "3", "-d", "2", path)
	require.NoError(t, err)
	require.Equal(t, scalarPoints, out)
}

func TestScalarFromStdin(t *testing.T) {
	for _, args := range [][]string{
		{"--dimension", "3", "--delay", "2"},
		{"--dimension", "3", "--delay", "2", "-"},
	} {
		out, _, err := execute(t, scalarSeries, args...)
		require.NoError(t, err)
		require.Equal(t, scalarPoints, out)
	}
}

func TestMultivariateText(t *testing.T) {
	var in strings.Builder
	for i := range 10 {
		fmt.Fprintf(&in, "%d;%d\n", i, i)
	}

	out, _, err := execute(t, in.String(), "-m", "2", "-d", "5", "--delimiter", ";")
	require.NoError(t, err)
	require.Equal(t, "5;5;0;0\n6;6;1;1\n7;7;2;2\n8;8;3;3\n9;9;4;4\n", out)
}

func TestShortSeriesWritesNothing(t *testing.T) {
	out, stderr, err := execute(t, "0\n1\n", "-m", "3", "-d", "2")
	require.NoError(t, err)
	require.Empty(t, out)
	require.Contains(t, stderr, "shorter than one embedding window")
}

func TestHugeDelayWritesNothing(t *testing.T) {
	out, stderr, err := execute(t, "1\n2\n3\n", "-m", "2", "-d", "9223372036854775807")
	require.NoError(t, err)
	require.Empty(t, out)
	require.Contains(t, stderr, "shorter than one embedding window")
}

func TestZeroDelayWarns(t *testing.T) {
	out, stderr, err := execute(t, "1\n2\n", "-m", "2", "-d", "0")
	require.NoError(t, err)
	require.Equal(t, "1,1\n2,2\n", out)
	require.Contains(t, stderr, "delay 0")
}

func TestPrecision(t *testing.T) {
	out, _, err := execute(t, "0.5\n1.25\n", "-m", "2", "-d", "1", "--precision", "1")
	require.NoError(t, err)
	require.Equal(t, "1.2,0.5\n", out)
}

func TestCompressedOutputFile(t *testing.T) {
	input := writeFile(t, "series.csv", []byte(scalarSeries))
	output := filepath.Join(t.TempDir(), "points.csv.zst")

	out, stderr, err := execute(t, "", "-m", "3", "-d", "2", "-v", "-o", output, input)
	require.NoError(t, err)
	require.Empty(t, out)
	require.Contains(t, stderr, "embedding written")
	require.Contains(t, stderr, "points=6")

	packed, err := os.ReadFile(output)
	require.NoError(t, err)

	codec, err := compress.GetCodec(format.CompressionZstd)
	require.NoError(t, err)
	plain, err := codec.Decompress(packed)
	require.NoError(t, err)
	require.Equal(t, scalarPoints, string(plain))
}

func TestCompressedInput(t *testing.T) {
	codec, err := compress.GetCodec(format.CompressionLZ4)
	require.NoError(t, err)
	packed, err := codec.Compress([]byte(scalarSeries))
	require.NoError(t, err)

	path := writeFile(t, "series.csv.lz4", packed)
	out, _, err := execute(t, "", "-m", "3", "-d", "2", path)
	require.NoError(t, err)
	require.Equal(t, scalarPoints, out)

	out, _, err = execute(t, string(packed), "-m", "3", "-d", "2", "--compression", "lz4")
	require.NoError(t, err)
	require.Equal(t, scalarPoints, out)
}

func TestMeboInput(t *testing.T) {
	start := time.Unix(1700000000, 0)
	encoder, err := blob.NewNumericEncoder(start)
	require.NoError(t, err)
	for _, name := range []string{"sensor.x", "sensor.y"} {
		require.NoError(t, encoder.StartMetricName(name, 10))
		for i := range 10 {
			ts := start.Add(time.Duration(i) * time.Second).UnixMicro()
			require.NoError(t, encoder.AddDataPoint(ts, float64(i), ""))
		}
		require.NoError(t, encoder.EndMetric())
	}
	data, err := encoder.Finish()
	require.NoError(t, err)

	codec, err := compress.GetCodec(format.CompressionS2)
	require.NoError(t, err)
	packed, err := codec.Compress(data)
	require.NoError(t, err)
	path := writeFile(t, "series.mebo.s2", packed)

	out, _, err := execute(t, "", "-m", "2", "-d", "5",
		"--format", "mebo", "--metric", "sensor.x", "--metric", "sensor.y", path)
	require.NoError(t, err)
	require.Equal(t, "5,5,0,0\n6,6,1,1\n7,7,2,2\n8,8,3,3\n9,9,4,4\n", out)

	_, _, err = execute(t, "", "-m", "2", "-d", "5", "--format", "mebo", "--metric", "sensor.w", path)
	require.ErrorIs(t, err, errs.ErrMetricNotFound)
}

func TestConfigFile(t *testing.T) {
	input := writeFile(t, "series.csv", []byte(scalarSeries))
	cfgPath := writeFile(t, "takens.yaml", []byte("dimension: 3\ndelay: 2\ninput: "+input+"\n"))

	out, _, err := execute(t, "", "--config", cfgPath)
	require.NoError(t, err)
	require.Equal(t, scalarPoints, out)

	out, _, err = execute(t, "", "--config", cfgPath, "-d", "4")
	require.NoError(t, err)
	require.Equal(t, "8,4,0\n9,5,1\n", out, "flags override the config file")
}

func TestInvalidArguments(t *testing.T) {
	tests := []struct {
		name    string
		args    []string
		wantErr error
	}{
		{name: "missing dimension", args: []string{"-d", "2"}, wantErr: errs.ErrInvalidDimension},
		{name: "missing delay", args: []string{"-m", "2"}, wantErr: errs.ErrInvalidDelay},
		{name: "zero dimension", args: []string{"-m", "0", "-d", "1"}, wantErr: errs.ErrInvalidDimension},
		{name: "negative delay", args: []string{"-m", "2", "-d", "-1"}, wantErr: errs.ErrInvalidDelay},
		{name: "unknown format", args: []string{"-m", "2", "-d", "1", "--format", "xml"}, wantErr: errs.ErrInvalidConfig},
		{name: "mebo without metric", args: []string{"-m", "2", "-d", "1", "--format", "mebo"}, wantErr: errs.ErrNoMetrics},
		{name: "bad sample", args: []string{"-m", "2", "-d", "1"}, wantErr: errs.ErrInvalidSample},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, stderr, err := execute(t, "1\nabc\n", tt.args...)
			require.ErrorIs(t, err, tt.wantErr)
			require.Contains(t, stderr, "Error:")
		})
	}
}

func TestMissingInputFile(t *testing.T) {
	_, _, err := execute(t, "", "-m", "2", "-d", "1", filepath.Join(t.TempDir(), "nope.csv"))
	require.ErrorIs(t, err, os.ErrNotExist)
}

func TestTooManyArguments(t *testing.T) {
	_, _, err := execute(t, "", "-m", "2", "-d", "1", "a.csv", "b.csv")
	require.Error(t, err)
}
