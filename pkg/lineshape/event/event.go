// Package event defines the record emitted by line parsers.
package event

// Type identifies the kind of line an event was parsed from.
type Type string

// Event types produced by the built-in formats.
const (
	// Syslog is a line of the form "<priority>facility: message".
	Syslog Type = "syslog"

	// Bracket is a line of the form "[level] message".
	Bracket Type = "bracket"
)

// Event is a parsed log line.
type Event struct {
	// Type names the format that matched.
	Type Type `json:"type"`

	// Fields holds the converted field values keyed by field name.
	Fields map[string]any `json:"fields,omitempty"`

	// RawLine is the original line, set only when requested.
	RawLine string `json:"raw_line,omitempty"`
}

// Field returns the named field value.
func (e Event) Field(name string) (any, bool) {
	v, ok := e.Fields[name]
	return v, ok
}
