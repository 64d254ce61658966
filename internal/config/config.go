// Package config holds the settings of the takens command.
//
// Settings come from defaults, an optional YAML file and command line flags,
// in increasing order of precedence. Validate must pass before any data is read.
package config

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"os"
	"reflect"
	"strings"

	"github.com/go-playground/validator/v10"
	"gopkg.in/yaml.v3"

	"github.com/arloliu/takens/coord"
	"github.com/arloliu/takens/errs"
	"github.com/arloliu/takens/format"
	"github.com/arloliu/takens/record"
	"github.com/arloliu/takens/series"
)

// UnsetDelay marks a delay that was given neither in a file nor as a flag.
const UnsetDelay = -1

// Config is the complete configuration of one embedding run.
type Config struct {
	Dimension         int      `yaml:"dimension" validate:"min=1"`
	Delay             int      `yaml:"delay" validate:"min=0"`
	Input             string   `yaml:"input"`
	Format            string   `yaml:"format" validate:"oneof=csv mebo"`
	Metrics           []string `yaml:"metrics" validate:"required_if=Format mebo,dive,required"`
	Compression       string   `yaml:"compression" validate:"oneof=auto none zstd s2 lz4"`
	Output            string   `yaml:"output"`
	OutputCompression string   `yaml:"output_compression" validate:"oneof=auto none zstd s2 lz4"`
	Delimiter         string   `yaml:"delimiter" validate:"len=1,ascii"`
	Precision         int      `yaml:"precision" validate:"min=-1,max=64"`
}

var validate = newValidator()

func newValidator() *validator.Validate {
	v := validator.New(validator.WithRequiredStructEnabled())
	v.RegisterTagNameFunc(func(fld reflect.StructField) string {
		name, _, _ := strings.Cut(fld.Tag.Get("yaml"), ",")
		if name == "" || name == "-" {
			return fld.Name
		}

		return name
	})

	return v
}

// Default returns the configuration used when nothing else is given.
// Dimension and delay have no usable default.
func Default() Config {
	return Config{
		Delay:             UnsetDelay,
		Format:            "csv",
		Compression:       "auto",
		OutputCompression: "auto",
		Delimiter:         ",",
		Precision:         -1,
	}
}

// Load reads a YAML file over the defaults. Unknown keys are rejected.
func Load(path string) (Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return Config{}, fmt.Errorf("read config: %w", err)
	}

	return Parse(data)
}

// Parse decodes YAML over the defaults. An empty document yields Default().
func Parse(data []byte) (Config, error) {
	cfg := Default()

	dec := yaml.NewDecoder(bytes.NewReader(data))
	dec.KnownFields(true)
	if err := dec.Decode(&cfg); err != nil && !errors.Is(err, io.EOF) {
		return Config{}, fmt.Errorf("%w: %w", errs.ErrInvalidConfig, err)
	}

	return cfg, nil
}

// Validate checks the configuration. Geometry failures wrap
// errs.ErrInvalidDimension or errs.ErrInvalidDelay, a mebo source without
// metrics wraps errs.ErrNoMetrics and everything else errs.ErrInvalidConfig.
func (c *Config) Validate() error {
	err := validate.Struct(c)
	if err == nil {
		return nil
	}

	var verrs validator.ValidationErrors
	if !errors.As(err, &verrs) {
		return fmt.Errorf("%w: %w", errs.ErrInvalidConfig, err)
	}

	fe := verrs[0]
	switch fe.StructField() {
	case "Dimension":
		return coord.Validate(c.Geometry())
	case "Delay":
		if c.Delay == UnsetDelay {
			return fmt.Errorf("%w: not set", errs.ErrInvalidDelay)
		}

		return coord.Validate(c.Geometry())
	case "Metrics":
		if fe.Tag() == "required_if" {
			return fmt.Errorf("%w: mebo input needs at least one metric", errs.ErrNoMetrics)
		}
	}

	return fmt.Errorf("%w: %s=%v fails %q", errs.ErrInvalidConfig, fe.Field(), fe.Value(), fe.Tag())
}

// Warnings reports settings that are valid but probably not intended.
func (c *Config) Warnings() []string {
	var warnings []string
	if c.Delay == 0 && c.Dimension > 1 {
		warnings = append(warnings, "delay 0 repeats the same sample in every coordinate")
	}

	return warnings
}

// Geometry returns the forward embedding geometry of the run.
func (c *Config) Geometry() coord.Forward {
	return coord.NewForward(c.Dimension, c.Delay)
}

// Source describes the input of the run. It assumes a validated Config.
func (c *Config) Source() (series.Source, error) {
	sf, err := format.ParseSourceFormat(c.Format)
	if err != nil {
		return series.Source{}, err
	}

	ct, err := format.ParseCompression(c.Compression)
	if err != nil {
		return series.Source{}, err
	}

	return series.Source{
		Path:        c.Input,
		Format:      sf,
		Compression: ct,
		Metrics:     c.Metrics,
		ReaderOptions: []series.ReaderOption{
			series.WithDelimiter(rune(c.Delimiter[0])),
			series.WithUniformWidth(),
		},
	}, nil
}

// ResolvedOutputCompression resolves the output codec. Automatic compression follows
// the output file extension and is none for standard output.
func (c *Config) ResolvedOutputCompression() (format.CompressionType, error) {
	ct, err := format.ParseCompression(c.OutputCompression)
	if err != nil {
		return 0, err
	}
	if ct != format.CompressionAuto {
		return ct, nil
	}
	if c.Output == "" || c.Output == "-" {
		return format.CompressionNone, nil
	}

	return format.CompressionFromPath(c.Output), nil
}

// WriterOptions returns the record writer options of the run.
func (c *Config) WriterOptions() ([]record.WriterOption, error) {
	ct, err := c.ResolvedOutputCompression()
	if err != nil {
		return nil, err
	}

	return []record.WriterOption{
		record.WithDelimiter(c.Delimiter[0]),
		record.WithPrecision(c.Precision),
		record.WithCompression(ct),
	}, nil
}
