package builtin

import (
	"github.com/lineshape/lineshape-go/pkg/lineshape/convert"
	"github.com/lineshape/lineshape-go/pkg/lineshape/event"
	"github.com/lineshape/lineshape-go/pkg/lineshape/format"
)

// Format is a named, precompiled line format.
type Format struct {
	Type  event.Type
	Bound *format.Bound
}

// Formats lists the built-in formats in the order they are tried.
var Formats = []Format{
	// Matches: "<5>httpd: GET '/'"
	// Fields: priority (int), facility, message
	{
		Type: event.Syslog,
		Bound: format.MustCompile(`"<" priority ">" facility ": " message`, format.Schema{
			{Name: "priority", Type: convert.Int},
			{Name: "facility", Type: convert.String},
			{Name: "message", Type: convert.String},
		}),
	},

	// Matches: "[WARN] disk almost full"
	// Fields: level, message
	{
		Type: event.Bracket,
		Bound: format.MustCompile(`"[" level "] " message`, format.Schema{
			{Name: "level", Type: convert.String},
			{Name: "message", Type: convert.String},
		}),
	},
}

// Lookup returns the built-in format with the given event type.
func Lookup(t event.Type) (Format, bool) {
	for _, f := range Formats {
		if f.Type == t {
			return f, true
		}
	}
	return Format{}, false
}
