package lineshape

import (
	"context"

	"github.com/lineshape/lineshape-go/internal/builtin"
	"github.com/lineshape/lineshape-go/pkg/lineshape/event"
)

// DefaultParser recognizes the built-in formats: syslog-style
// "<priority>facility: message" lines and "[level] message" lines.
type DefaultParser struct{}

// ParseLine implements the Parser interface.
func (DefaultParser) ParseLine(ctx context.Context, line string) (ParseResult, error) {
	ev, err := builtin.Parse(line)
	if err != nil {
		return ParseResult{}, err
	}
	if ev == nil {
		return ParseResult{Matched: false}, nil
	}
	return ParseResult{Events: []event.Event{*ev}, Matched: true}, nil
}

var _ Parser = DefaultParser{}
