package lineshape

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"io"

	"github.com/lineshape/lineshape-go/internal/safefile"
	"github.com/lineshape/lineshape-go/pkg/lineshape/event"
)

// ParseFile parses every line of a regular file.
//
// Lines the parser does not recognize are skipped. Parser errors skip the
// line too, unless WithParseStopOnError is set.
//
// Example:
//
//	events, err := lineshape.ParseFile(ctx, "app.log",
//	    lineshape.WithParseParser(parser),
//	    lineshape.WithParseIncludeTypes("access"),
//	)
func ParseFile(ctx context.Context, path string, opts ...ParseOption) ([]event.Event, error) {
	f, _, err := safefile.OpenRegular(path)
	if err != nil {
		return nil, fmt.Errorf("opening log file: %w", err)
	}
	defer f.Close()

	return ParseReader(ctx, f, opts...)
}

// ParseReader parses every line read from r. See ParseFile.
func ParseReader(ctx context.Context, r io.Reader, opts ...ParseOption) ([]event.Event, error) {
	cfg := applyParseOptions(opts)
	if cfg.maxLineBytes < 0 {
		return nil, fmt.Errorf("max line bytes must be non-negative, got %d", cfg.maxLineBytes)
	}
	maxLine := cfg.maxLineBytes
	if maxLine == 0 {
		maxLine = DefaultMaxLineBytes
	}

	sc := bufio.NewScanner(r)
	sc.Buffer(make([]byte, 0, min(64*1024, maxLine)), maxLine)

	var events []event.Event
	lineNum := 0
	for sc.Scan() {
		if err := ctx.Err(); err != nil {
			return events, err
		}
		lineNum++
		line := sc.Text()
		if line == "" {
			continue
		}

		result, err := cfg.parser.ParseLine(ctx, line)
		if err != nil {
			perr := &ParseError{Line: line, LineNum: lineNum, Err: err}
			if cfg.stopOnError {
				return events, perr
			}
			if cfg.logger != nil {
				cfg.logger.Debug("skipping line", "line", lineNum, "error", err)
			}
		}
		for _, ev := range result.Events {
			if !cfg.filter.Allows(ev.Type) {
				continue
			}
			if cfg.includeRawLine {
				ev.RawLine = line
			}
			events = append(events, ev)
		}
	}

	if err := sc.Err(); err != nil {
		if errors.Is(err, bufio.ErrTooLong) {
			return events, fmt.Errorf("%w: line %d exceeds %d bytes", ErrLineTooLong, lineNum+1, maxLine)
		}
		return events, err
	}
	return events, nil
}
