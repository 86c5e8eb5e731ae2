package main

import (
	"fmt"
	"strings"

	"github.com/lineshape/lineshape-go/pkg/lineshape"
	"github.com/lineshape/lineshape-go/pkg/lineshape/convert"
	"github.com/lineshape/lineshape-go/pkg/lineshape/event"
	"github.com/lineshape/lineshape-go/pkg/lineshape/format"
	"github.com/lineshape/lineshape-go/pkg/lineshape/pattern"
)

// buildParser chains the built-in formats with every pattern file in order.
// Returns a nil parser if no pattern files are given (use the default parser).
func buildParser(patternFiles []string) (lineshape.Parser, error) {
	if len(patternFiles) == 0 {
		return nil, nil
	}

	parsers := []lineshape.Parser{lineshape.DefaultParser{}}
	for i, path := range patternFiles {
		fp, err := pattern.NewFormatParserFromFile(path)
		if err != nil {
			// Errors from the pattern package carry no path.
			return nil, fmt.Errorf("pattern file %d: %w", i+1, err)
		}
		parsers = append(parsers, fp)
	}

	return &lineshape.ParserChain{
		Mode:    lineshape.ChainAll,
		Parsers: parsers,
	}, nil
}

// parseSchema turns --field flags into a schema. Each flag is "name" or
// "name:type"; the type may itself contain colons ("at:time:15:04:05").
func parseSchema(specs []string) (format.Schema, error) {
	schema := make(format.Schema, 0, len(specs))
	for _, spec := range specs {
		name, typeName, hasType := strings.Cut(spec, ":")
		if name == "" {
			return nil, fmt.Errorf("invalid --field %q: missing name", spec)
		}
		typ := convert.String
		if hasType {
			t, err := convert.ParseType(typeName)
			if err != nil {
				return nil, fmt.Errorf("invalid --field %q: %w", spec, err)
			}
			typ = t
		}
		schema = append(schema, format.Field{Name: name, Type: typ})
	}
	return schema, nil
}

// eventTypes converts --types values. Names of types defined in pattern
// files pass through unchanged.
func eventTypes(names []string) []event.Type {
	if len(names) == 0 {
		return nil
	}
	types := make([]event.Type, 0, len(names))
	for _, name := range names {
		if t, ok := ValidEventTypes[name]; ok {
			types = append(types, t)
			continue
		}
		types = append(types, event.Type(name))
	}
	return types
}
