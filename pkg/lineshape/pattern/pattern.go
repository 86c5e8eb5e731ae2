// Package pattern loads line formats from YAML pattern files.
//
// A pattern file names several formats at once. Each entry pairs a format
// specification with the fields it captures and the event type to emit:
//
//	version: 1
//	patterns:
//	  - id: access
//	    event_type: access
//	    format: 'ip " - " user " [" time "] " request'
//	    fields:
//	      - {name: ip}
//	      - {name: user}
//	      - {name: time, type: "time:02/Jan/2006:15:04:05 -0700"}
//	      - {name: request}
//
// Field types are names understood by convert.Lookup ("int", "uint16",
// "float64", "bool", "duration", "rfc3339", ...) or "time:" followed by a
// Go time layout. A missing type means "string".
package pattern

// PatternFile is the top-level structure of a pattern file.
type PatternFile struct {
	// Version is the file format version. Only version 1 is supported.
	Version int `yaml:"version"`

	// Patterns lists the formats in the order they are tried.
	Patterns []Pattern `yaml:"patterns"`
}

// Pattern is one format definition.
type Pattern struct {
	// ID is unique within a file.
	ID string `yaml:"id"`

	// EventType is set as Event.Type when the format matches.
	EventType string `yaml:"event_type"`

	// Format is the format specification, e.g. `key "=" value`.
	Format string `yaml:"format"`

	// Fields declares every captured field. Each captured name must be
	// declared and each declared name must be captured.
	Fields []Field `yaml:"fields"`
}

// Field declares a captured field and its value type.
type Field struct {
	Name string `yaml:"name"`
	Type string `yaml:"type,omitempty"`
}
