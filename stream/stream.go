// Package stream runs a compiled pattern over line-oriented input of any
// size. Input is read in chunks and every line is searched on its own, so
// memory use is bounded by the longest line rather than the input size.
//
// Example usage with a compiled pattern:
//
//	file, _ := os.Open("ledger.txt")
//	defer file.Close()
//
//	err := stream.FindLines(ctx, file, matcher, stream.DefaultConfig(), func(l stream.Line) bool {
//	    fmt.Printf("%d: %s\n", l.Number, l.Matches[0].Text())
//	    return true // continue
//	})
package stream

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"io"

	"github.com/KromDaniel/regkit/pkg/engine"
)

const (
	// MinBufferSize is the smallest accepted Config.BufferSize.
	MinBufferSize = 64
	defaultBuffer = 64 * 1024
	defaultMaxLen = 1024 * 1024
)

// Config configures line scanning.
type Config struct {
	// BufferSize is the initial size of the read buffer.
	// Default: 64KB.
	BufferSize int

	// MaxLineLength is the longest line accepted, in bytes. Longer lines
	// fail the scan with ErrLineTooLong.
	// Default: 1MB. Must not be smaller than BufferSize.
	MaxLineLength int
}

// DefaultConfig returns a Config with a 64KB buffer and 1MB lines.
func DefaultConfig() Config {
	return Config{
		BufferSize:    defaultBuffer,
		MaxLineLength: defaultMaxLen,
	}
}

// ErrBufferTooSmall is returned when Config.BufferSize is below
// MinBufferSize or Config.MaxLineLength is below the buffer size.
type ErrBufferTooSmall struct {
	Field     string
	Requested int
	Minimum   int
}

func (e ErrBufferTooSmall) Error() string {
	return fmt.Sprintf("stream: %s %d is below the minimum %d", e.Field, e.Requested, e.Minimum)
}

// ErrLineTooLong is returned when a line exceeds Config.MaxLineLength.
var ErrLineTooLong = errors.New("stream: line too long")

// Validate checks the explicitly set fields. Zero values select defaults.
func (c Config) Validate() error {
	if c.BufferSize != 0 && c.BufferSize < MinBufferSize {
		return ErrBufferTooSmall{Field: "BufferSize", Requested: c.BufferSize, Minimum: MinBufferSize}
	}
	cfg := c.ApplyDefaults()
	if cfg.MaxLineLength < cfg.BufferSize {
		return ErrBufferTooSmall{Field: "MaxLineLength", Requested: cfg.MaxLineLength, Minimum: cfg.BufferSize}
	}
	return nil
}

// ApplyDefaults returns a Config with defaults applied for any zero values.
func (c Config) ApplyDefaults() Config {
	result := c
	if result.BufferSize == 0 {
		result.BufferSize = defaultBuffer
	}
	if result.MaxLineLength == 0 {
		result.MaxLineLength = max(defaultMaxLen, result.BufferSize)
	}
	return result
}

// Line is one input line with at least one match.
type Line struct {
	// Number is the 1-based line number.
	Number int
	// Offset is the byte position of the line start within the stream.
	Offset int64
	// Text is the line without its terminator ("\n" or "\r\n").
	Text string
	// Matches holds every match in Text. Offsets are relative to Text.
	Matches []*engine.Match
}

// FindLines calls fn for every line of r that m matches, in input order.
// It stops when fn returns false, when ctx is done, or at the end of r.
func FindLines(ctx context.Context, r io.Reader, m *engine.Matcher, cfg Config, fn func(Line) bool) error {
	return scan(ctx, r, cfg, func(number int, offset int64, text string) (bool, error) {
		matches, err := m.FindAll(text, -1)
		if err != nil || len(matches) == 0 {
			return true, err
		}
		return fn(Line{Number: number, Offset: offset, Text: text, Matches: matches}), nil
	})
}

// scan calls fn with every line of r.
func scan(ctx context.Context, r io.Reader, cfg Config, fn func(number int, offset int64, text string) (bool, error)) error {
	if err := cfg.Validate(); err != nil {
		return err
	}
	cfg = cfg.ApplyDefaults()

	var consumed, lineStart int64
	scanner := bufio.NewScanner(r)
	scanner.Buffer(make([]byte, 0, cfg.BufferSize), cfg.MaxLineLength)
	scanner.Split(func(data []byte, atEOF bool) (int, []byte, error) {
		advance, token, err := bufio.ScanLines(data, atEOF)
		if token != nil {
			lineStart = consumed
		}
		consumed += int64(advance)
		return advance, token, err
	})

	number := 0
	for scanner.Scan() {
		number++
		if err := ctx.Err(); err != nil {
			return err
		}
		more, err := fn(number, lineStart, scanner.Text())
		if err != nil {
			return fmt.Errorf("line %d: %w", number, err)
		}
		if !more {
			return nil
		}
	}
	if err := scanner.Err(); err != nil {
		if errors.Is(err, bufio.ErrTooLong) {
			return fmt.Errorf("%w: line %d exceeds %d bytes", ErrLineTooLong, number+1, cfg.MaxLineLength)
		}
		return err
	}
	return nil
}

// Filter copies the lines of r that m matches to w, each followed by "\n",
// and returns the number of lines written.
func Filter(ctx context.Context, r io.Reader, w io.Writer, m *engine.Matcher, cfg Config) (int, error) {
	bw := bufio.NewWriter(w)
	written := 0
	var werr error
	err := FindLines(ctx, r, m, cfg, func(l Line) bool {
		if _, werr = bw.WriteString(l.Text + "\n"); werr != nil {
			return false
		}
		written++
		return true
	})
	if err == nil {
		err = werr
	}
	if ferr := bw.Flush(); err == nil {
		err = ferr
	}
	return written, err
}

// Replace copies every line of r to w, each followed by "\n", with the
// matches of m substituted by template (see engine.Matcher.Substitute).
// It returns the number of lines that changed.
func Replace(ctx context.Context, r io.Reader, w io.Writer, m *engine.Matcher, template string, cfg Config) (int, error) {
	// Reject bad templates before reading any input.
	if _, err := m.Substitute("", template, 0); err != nil {
		return 0, err
	}
	bw := bufio.NewWriter(w)
	changed := 0
	err := scan(ctx, r, cfg, func(_ int, _ int64, text string) (bool, error) {
		out, err := m.Substitute(text, template, 0)
		if err != nil {
			return false, err
		}
		if out != text {
			changed++
		}
		_, err = bw.WriteString(out + "\n")
		return err == nil, err
	})
	if ferr := bw.Flush(); err == nil {
		err = ferr
	}
	return changed, err
}
