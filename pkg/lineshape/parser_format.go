package lineshape

import (
	"context"
	"errors"
	"strings"

	"github.com/lineshape/lineshape-go/pkg/lineshape/event"
	"github.com/lineshape/lineshape-go/pkg/lineshape/format"
)

// FormatParser turns lines matching one compiled format into events.
//
// FormatParser is safe for concurrent use.
type FormatParser struct {
	// Type is the event type assigned to matching lines.
	Type event.Type

	// Bound is the compiled format.
	Bound *format.Bound

	// Strict reports lines that do not match as a *format.MatchError
	// instead of Matched=false.
	Strict bool
}

// NewFormatParser compiles spec against schema.
//
// Example:
//
//	p, err := lineshape.NewFormatParser("kv", `key "=" value`, format.Schema{
//	    {Name: "key", Type: convert.String},
//	    {Name: "value", Type: convert.Int},
//	})
func NewFormatParser(t event.Type, spec string, schema format.Schema) (*FormatParser, error) {
	b, err := format.Compile(spec, schema)
	if err != nil {
		return nil, err
	}
	return &FormatParser{Type: t, Bound: b}, nil
}

// ParseLine implements the Parser interface. A trailing CR is ignored.
func (p *FormatParser) ParseLine(ctx context.Context, line string) (ParseResult, error) {
	if p.Bound == nil {
		return ParseResult{}, errors.New("format parser has no compiled format")
	}

	res, err := p.Bound.Match(strings.TrimSuffix(line, "\r"))
	if err != nil {
		if p.Strict {
			return ParseResult{}, err
		}
		return ParseResult{Matched: false}, nil
	}

	return ParseResult{
		Events:  []event.Event{{Type: p.Type, Fields: res.Map()}},
		Matched: true,
	}, nil
}

var _ Parser = (*FormatParser)(nil)
