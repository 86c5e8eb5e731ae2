package lineshape

import (
	"context"
	"errors"

	"github.com/lineshape/lineshape-go/pkg/lineshape/event"
)

// ParseResult represents the result of parsing a line.
type ParseResult struct {
	// Events contains the parsed events.
	Events []event.Event

	// Matched indicates whether the parser recognized the line.
	// It can be true while Events is empty.
	Matched bool
}

// Parser is the interface for line parsers.
// Implementations include DefaultParser (built-in formats), FormatParser
// (one compiled format) and pattern.FormatParser (YAML pattern files).
type Parser interface {
	// ParseLine parses a single line.
	// Returns ParseResult with Matched=true if the line was recognized.
	// Returns error only for unexpected failures, not for unrecognized lines.
	ParseLine(ctx context.Context, line string) (ParseResult, error)
}

// ParserFunc is an adapter to allow ordinary functions to be used as Parsers.
type ParserFunc func(ctx context.Context, line string) (ParseResult, error)

// ParseLine implements the Parser interface.
func (f ParserFunc) ParseLine(ctx context.Context, line string) (ParseResult, error) {
	return f(ctx, line)
}

// ChainMode specifies how ParserChain executes parsers.
type ChainMode int

const (
	// ChainAll executes all parsers and combines results (default).
	ChainAll ChainMode = iota

	// ChainFirst stops at the first parser that matches.
	ChainFirst

	// ChainContinueOnError skips parsers that return errors and continues.
	// Errors are joined and returned after the last parser.
	ChainContinueOnError
)

// ParserChain combines multiple parsers.
type ParserChain struct {
	Mode    ChainMode
	Parsers []Parser
}

// ParseLine implements the Parser interface.
//
// If ctx is cancelled between parsers, ParseLine returns the events collected
// so far together with the context error.
func (c *ParserChain) ParseLine(ctx context.Context, line string) (ParseResult, error) {
	var out ParseResult
	var errs []error

	for _, p := range c.Parsers {
		if err := ctx.Err(); err != nil {
			return out, err
		}
		if p == nil {
			continue
		}

		result, err := p.ParseLine(ctx, line)
		if err != nil {
			if c.Mode != ChainContinueOnError {
				return ParseResult{}, err
			}
			errs = append(errs, err)
			continue
		}
		if !result.Matched {
			continue
		}

		out.Matched = true
		out.Events = append(out.Events, result.Events...)
		if c.Mode == ChainFirst {
			return out, nil
		}
	}

	return out, errors.Join(errs...)
}
