package main

import (
	"fmt"
	"io"
	"log/slog"
	"os"

	"github.com/spf13/cobra"
	"github.com/spf13/pflag"

	"github.com/arloliu/takens"
	"github.com/arloliu/takens/compress"
	"github.com/arloliu/takens/coord"
	"github.com/arloliu/takens/format"
	"github.com/arloliu/takens/internal/config"
	"github.com/arloliu/takens/record"
	"github.com/arloliu/takens/series"
)

type flagValues struct {
	configPath        string
	verbose           bool
	dimension         int
	delay             int
	format            string
	metrics           []string
	compression       string
	output            string
	outputCompression string
	delimiter         string
	precision         int
}

func newRootCmd() *cobra.Command {
	var fv flagValues

	cmd := &cobra.Command{
		Use:   "takens [flags] [INPUT]",
		Short: "Delay-coordinate embedding of a time series",
		Long: `takens reconstructs a phase-space trajectory from a time series.

Each output line is one embedded point (x[t], x[t-d], ..., x[t-(m-1)d]),
newest sample first. Multivariate samples are flattened, so a point of a
series with c components has m*c fields.

INPUT is a file path; standard input is read when it is absent or "-".`,
		Args:         cobra.MaximumNArgs(1),
		SilenceUsage: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			logger := newLogger(cmd.ErrOrStderr(), fv.verbose)

			cfg, err := resolveConfig(cmd.Flags(), fv, args)
			if err != nil {
				return err
			}
			for _, w := range cfg.Warnings() {
				logger.Warn(w, "dimension", cfg.Dimension, "delay", cfg.Delay)
			}

			return run(cfg, cmd.InOrStdin(), cmd.OutOrStdout(), logger)
		},
	}

	fs := cmd.Flags()
	fs.StringVar(&fv.configPath, "config", "", "YAML configuration file; flags given on the command line override it")
	fs.BoolVarP(&fv.verbose, "verbose", "v", false, "Log debug information to stderr")
	fs.IntVarP(&fv.dimension, "dimension", "m", 0, "Embedding dimension (number of delayed coordinates)")
	fs.IntVarP(&fv.delay, "delay", "d", 0, "Time delay in samples between coordinates")
	fs.StringVar(&fv.format, "format", "csv", "Input format: csv or mebo")
	fs.StringArrayVar(&fv.metrics, "metric", nil, "Metric name to read from a mebo blob, repeatable; each becomes one component")
	fs.StringVar(&fv.compression, "compression", "auto", "Input compression: auto, none, zstd, s2 or lz4")
	fs.StringVarP(&fv.output, "output", "o", "", "Output file (default stdout)")
	fs.StringVar(&fv.outputCompression, "output-compression", "auto", "Output compression: auto, none, zstd, s2 or lz4")
	fs.StringVar(&fv.delimiter, "delimiter", ",", "Field delimiter of input and output records")
	fs.IntVar(&fv.precision, "precision", -1, "Digits after the decimal point, -1 for the shortest exact form")

	return cmd
}

func newLogger(w io.Writer, verbose bool) *slog.Logger {
	level := slog.LevelWarn
	if verbose {
		level = slog.LevelDebug
	}

	return slog.New(slog.NewTextHandler(w, &slog.HandlerOptions{Level: level}))
}

// resolveConfig layers defaults, the config file and the flags that were set
// explicitly, then validates the result.
func resolveConfig(fs *pflag.FlagSet, fv flagValues, args []string) (config.Config, error) {
	cfg := config.Default()
	if fv.configPath != "" {
		loaded, err := config.Load(fv.configPath)
		if err != nil {
			return config.Config{}, err
		}
		cfg = loaded
	}

	if fs.Changed("dimension") {
		cfg.Dimension = fv.dimension
	}
	if fs.Changed("delay") {
		cfg.Delay = fv.delay
	}
	if fs.Changed("format") {
		cfg.Format = fv.format
	}
	if fs.Changed("metric") {
		cfg.Metrics = fv.metrics
	}
	if fs.Changed("compression") {
		cfg.Compression = fv.compression
	}
	if fs.Changed("output") {
		cfg.Output = fv.output
	}
	if fs.Changed("output-compression") {
		cfg.OutputCompression = fv.outputCompression
	}
	if fs.Changed("delimiter") {
		cfg.Delimiter = fv.delimiter
	}
	if fs.Changed("precision") {
		cfg.Precision = fv.precision
	}
	if len(args) > 0 {
		cfg.Input = args[0]
	}

	if err := cfg.Validate(); err != nil {
		return config.Config{}, err
	}

	return cfg, nil
}

func run(cfg config.Config, stdin io.Reader, stdout io.Writer, logger *slog.Logger) error {
	src, err := cfg.Source()
	if err != nil {
		return err
	}
	opts, err := cfg.WriterOptions()
	if err != nil {
		return err
	}

	rows, err := loadRows(src, stdin)
	if err != nil {
		return fmt.Errorf("load %s: %w", inputName(src), err)
	}

	g := cfg.Geometry()
	logger.Debug("series loaded",
		"input", inputName(src),
		"format", src.Format,
		"compression", src.ResolvedCompression(),
		"samples", len(rows),
		"fingerprint", fmt.Sprintf("%016x", series.Fingerprint(rows)),
	)
	if len(rows) < g.WindowSize() {
		logger.Warn("series shorter than one embedding window, no points written",
			"samples", len(rows), "window", g.WindowSize())
	}

	out, closeOut, err := openOutput(cfg.Output, stdout)
	if err != nil {
		return err
	}

	w, err := record.NewWriter(out, opts...)
	if err != nil {
		_ = closeOut()
		return err
	}

	n, err := takens.Write(w, rows, g)
	if err != nil {
		_ = w.Close()
		_ = closeOut()

		return err
	}
	if err := w.Close(); err != nil {
		_ = closeOut()
		return err
	}
	if err := closeOut(); err != nil {
		return err
	}

	logEmbedding(logger, g, n, w.Stats())

	return nil
}

func loadRows(src series.Source, stdin io.Reader) ([][]float64, error) {
	if src.IsStdin() {
		return series.Decode(stdin, src)
	}

	return series.Load(src)
}

func inputName(src series.Source) string {
	if src.IsStdin() {
		return "stdin"
	}

	return src.Path
}

func openOutput(path string, stdout io.Writer) (io.Writer, func() error, error) {
	if path == "" || path == "-" {
		return stdout, func() error { return nil }, nil
	}

	f, err := os.Create(path)
	if err != nil {
		return nil, nil, err
	}

	return f, f.Close, nil
}

func logEmbedding(logger *slog.Logger, g coord.Geometry, points int, stats compress.Stats) {
	attrs := []any{"geometry", g, "window", g.WindowSize(), "points", points}
	if stats.Algorithm != format.CompressionAuto && stats.Algorithm != format.CompressionNone {
		attrs = append(attrs,
			"compression", stats.Algorithm,
			"bytes", stats.OriginalSize,
			"compressed", stats.CompressedSize,
			"ratio", fmt.Sprintf("%.3f", stats.Ratio()),
		)
	}
	logger.Debug("embedding written", attrs...)
}
