// Package builtin provides the line formats recognized without any pattern
// file.
package builtin

import (
	"strings"

	"github.com/lineshape/lineshape-go/pkg/lineshape/event"
)

// Parse matches a line against the built-in formats.
//
// Returns:
//   - (*Event, nil): a format matched
//   - (nil, nil): no format matched
//
// The first matching format wins.
func Parse(line string) (*event.Event, error) {
	// Trim trailing CR for CRLF input
	line = strings.TrimRight(line, "\r")
	if line == "" {
		return nil, nil
	}

	for _, f := range Formats {
		res, err := f.Bound.Match(line)
		if err != nil {
			continue
		}
		return &event.Event{Type: f.Type, Fields: res.Map()}, nil
	}
	return nil, nil
}
