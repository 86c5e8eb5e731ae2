package pattern

import (
	"context"
	"fmt"
	"strings"

	"github.com/lineshape/lineshape-go/pkg/lineshape"
	"github.com/lineshape/lineshape-go/pkg/lineshape/convert"
	"github.com/lineshape/lineshape-go/pkg/lineshape/event"
	"github.com/lineshape/lineshape-go/pkg/lineshape/format"
)

// FormatParser is a lineshape.Parser built from a pattern file.
//
// Every pattern is tried against every line, so one line can produce several
// events. Events are returned in file order.
//
// FormatParser is safe for concurrent use by multiple goroutines.
type FormatParser struct {
	patterns []compiledPattern
}

type compiledPattern struct {
	id        string
	eventType event.Type
	bound     *format.Bound
}

// NewFormatParser compiles every pattern in pf. Grammar and binding errors
// are returned as *PatternError wrapping the format error.
//
// Example:
//
//	pf, err := pattern.Load("patterns.yaml")
//	if err != nil {
//	    log.Fatal(err)
//	}
//	parser, err := pattern.NewFormatParser(pf)
func NewFormatParser(pf *PatternFile) (*FormatParser, error) {
	if pf == nil {
		return nil, fmt.Errorf("pattern file is nil")
	}

	patterns := make([]compiledPattern, 0, len(pf.Patterns))
	for i, p := range pf.Patterns {
		schema := make(format.Schema, 0, len(p.Fields))
		for j, f := range p.Fields {
			typ, err := fieldType(f.Type)
			if err != nil {
				return nil, &PatternError{
					Index:   i,
					ID:      p.ID,
					Field:   fmt.Sprintf("fields[%d].type", j),
					Message: err.Error(),
					Cause:   err,
				}
			}
			schema = append(schema, format.Field{Name: f.Name, Type: typ})
		}

		b, err := format.Compile(p.Format, schema)
		if err != nil {
			return nil, &PatternError{
				Index:   i,
				ID:      p.ID,
				Field:   "format",
				Message: fmt.Sprintf("invalid format: %v", err),
				Cause:   err,
			}
		}

		patterns = append(patterns, compiledPattern{
			id:        p.ID,
			eventType: event.Type(p.EventType),
			bound:     b,
		})
	}

	return &FormatParser{patterns: patterns}, nil
}

// NewFormatParserFromFile loads a pattern file and compiles it.
func NewFormatParserFromFile(path string) (*FormatParser, error) {
	pf, err := Load(path)
	if err != nil {
		return nil, err
	}
	return NewFormatParser(pf)
}

func fieldType(name string) (convert.Type, error) {
	if name == "" {
		return convert.String, nil
	}
	return convert.ParseType(name)
}

// ParseLine implements lineshape.Parser. A trailing CR is ignored. Lines that
// match no pattern return Matched=false and no error.
func (p *FormatParser) ParseLine(ctx context.Context, line string) (lineshape.ParseResult, error) {
	line = strings.TrimSuffix(line, "\r")

	var events []event.Event
	for _, cp := range p.patterns {
		res, err := cp.bound.Match(line)
		if err != nil {
			continue
		}
		events = append(events, event.Event{
			Type:   cp.eventType,
			Fields: res.Map(),
		})
	}

	if len(events) == 0 {
		return lineshape.ParseResult{Matched: false}, nil
	}
	return lineshape.ParseResult{Events: events, Matched: true}, nil
}

// IDs returns the pattern ids in file order.
func (p *FormatParser) IDs() []string {
	ids := make([]string, len(p.patterns))
	for i, cp := range p.patterns {
		ids[i] = cp.id
	}
	return ids
}

// Format returns the compiled format for the pattern with the given id.
func (p *FormatParser) Format(id string) (*format.Bound, bool) {
	for _, cp := range p.patterns {
		if cp.id == id {
			return cp.bound, true
		}
	}
	return nil, false
}

var _ lineshape.Parser = (*FormatParser)(nil)
