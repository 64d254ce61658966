package series

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/arloliu/takens/errs"
	"github.com/arloliu/takens/internal/options"
)

// maxLineSize bounds a single input line.
const maxLineSize = 1024 * 1024

type readerConfig struct {
	delimiter rune
	uniform   bool
}

// ReaderOption configures ReadText.
type ReaderOption = options.Option[*readerConfig]

// WithDelimiter sets the field delimiter. The default is ','.
func WithDelimiter(delim rune) ReaderOption {
	return options.New(func(c *readerConfig) error {
		if delim == '\n' || delim == '\r' || delim == 0 {
			return fmt.Errorf("invalid field delimiter %q", delim)
		}
		c.delimiter = delim

		return nil
	})
}

// WithUniformWidth rejects rows whose field count differs from the first row.
func WithUniformWidth() ReaderOption {
	return options.NoError(func(c *readerConfig) {
		c.uniform = true
	})
}

// ReadText reads a series with one sample per line.
//
// Each line is trimmed and split on the delimiter, and every field is parsed
// as a float64, so a line holds one sample of one or more components. Blank
// lines are skipped. Parse failures wrap errs.ErrInvalidSample with the line
// and field number.
func ReadText(r io.Reader, opts ...ReaderOption) ([][]float64, error) {
	cfg := &readerConfig{delimiter: ','}
	if err := options.Apply(cfg, opts...); err != nil {
		return nil, err
	}

	scanner := bufio.NewScanner(r)
	scanner.Buffer(make([]byte, 0, 64*1024), maxLineSize)

	var rows [][]float64
	width := -1
	lineNo := 0
	for scanner.Scan() {
		lineNo++
		line := strings.TrimSpace(scanner.Text())
		if line == "" {
			continue
		}

		row, err := parseRow(line, cfg.delimiter)
		if err != nil {
			return nil, fmt.Errorf("line %d: %w", lineNo, err)
		}

		if width < 0 {
			width = len(row)
		} else if cfg.uniform && len(row) != width {
			return nil, fmt.Errorf("%w: line %d has %d fields, expected %d", errs.ErrRaggedRow, lineNo, len(row), width)
		}
		rows = append(rows, row)
	}

	if err := scanner.Err(); err != nil {
		if errors.Is(err, bufio.ErrTooLong) {
			return nil, fmt.Errorf("line %d: %w", lineNo+1, err)
		}

		return nil, err
	}

	return rows, nil
}

func parseRow(line string, delim rune) ([]float64, error) {
	fields := strings.Split(line, string(delim))
	row := make([]float64, len(fields))
	for i, field := range fields {
		v, err := strconv.ParseFloat(strings.TrimSpace(field), 64)
		if err != nil {
			return nil, fmt.Errorf("%w: field %d %q", errs.ErrInvalidSample, i+1, field)
		}
		row[i] = v
	}

	return row, nil
}

// Column extracts component idx of every row as a scalar series.
func Column(rows [][]float64, idx int) ([]float64, error) {
	out := make([]float64, len(rows))
	for i, row := range rows {
		if idx < 0 || idx >= len(row) {
			return nil, fmt.Errorf("%w: column %d, row %d has %d fields", errs.ErrColumnOutOfRange, idx, i, len(row))
		}
		out[i] = row[idx]
	}

	return out, nil
}
