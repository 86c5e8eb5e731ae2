package main

import (
	"encoding/json"
	"fmt"
	"io"
	"maps"
	"math"
	"slices"
	"strconv"
	"strings"

	"github.com/lineshape/lineshape-go/pkg/lineshape/event"
)

// ValidFormats lists all valid output formats.
var ValidFormats = map[string]bool{
	"jsonl":  true,
	"pretty": true,
}

// ValidEventTypes maps --types values for the built-in formats. Pattern
// files may add more types; those are accepted as given.
var ValidEventTypes = map[string]event.Type{
	"syslog":  event.Syslog,
	"bracket": event.Bracket,
}

// ValidEventTypeNames returns the built-in event type names, sorted.
func ValidEventTypeNames() []string {
	names := make([]string, 0, len(ValidEventTypes))
	for name := range ValidEventTypes {
		names = append(names, name)
	}
	slices.Sort(names)
	return names
}

func checkFormat(format string) error {
	if !ValidFormats[format] {
		return fmt.Errorf("unknown format: %s (valid: jsonl, pretty)", format)
	}
	return nil
}

// OutputEvent writes an event in the specified format to the writer.
func OutputEvent(format string, ev event.Event, out io.Writer) error {
	switch format {
	case "jsonl":
		ev.Fields = jsonFields(ev.Fields)
		return OutputJSON(ev, out)
	case "pretty":
		return OutputPretty(ev, out)
	default:
		return fmt.Errorf("unknown format: %s", format)
	}
}

// jsonFields returns fields with NaN and infinite floats replaced by their
// strconv text ("NaN", "+Inf", "-Inf"), which JSON cannot represent as
// numbers. fields is returned as is when there is nothing to replace.
func jsonFields(fields map[string]any) map[string]any {
	var out map[string]any
	for k, v := range fields {
		var f float64
		switch x := v.(type) {
		case float64:
			f = x
		case float32:
			f = float64(x)
		default:
			continue
		}
		if !math.IsNaN(f) && !math.IsInf(f, 0) {
			continue
		}
		if out == nil {
			out = maps.Clone(fields)
		}
		out[k] = strconv.FormatFloat(f, 'g', -1, 64)
	}
	if out == nil {
		return fields
	}
	return out
}

// OutputJSON writes any value as one JSON line.
func OutputJSON(v any, out io.Writer) error {
	data, err := json.Marshal(v)
	if err != nil {
		return err
	}
	_, err = fmt.Fprintln(out, string(data))
	return err
}

// OutputPretty writes an event in human-readable form:
//
//	* syslog: facility=httpd message="GET /" priority=5
func OutputPretty(ev event.Event, out io.Writer) error {
	var err error
	if len(ev.Fields) > 0 {
		_, err = fmt.Fprintf(out, "* %s: %s\n", ev.Type, formatData(ev.Fields))
	} else {
		_, err = fmt.Fprintf(out, "* %s\n", ev.Type)
	}
	if err == nil && ev.RawLine != "" {
		_, err = fmt.Fprintf(out, "  raw: %s\n", quoteIfNeeded(ev.RawLine))
	}
	return err
}

// formatData formats a map as key=value pairs sorted by key.
func formatData(data map[string]any) string {
	if len(data) == 0 {
		return ""
	}

	keys := make([]string, 0, len(data))
	for k := range data {
		keys = append(keys, k)
	}
	slices.Sort(keys)

	parts := make([]string, 0, len(data))
	for _, k := range keys {
		parts = append(parts, fmt.Sprintf("%s=%s", quoteIfNeeded(k), quoteIfNeeded(fmt.Sprint(data[k]))))
	}
	return strings.Join(parts, " ")
}

// quoteIfNeeded quotes a value containing spaces, equals signs, quotes,
// backslashes or control characters.
func quoteIfNeeded(v string) string {
	if v == "" {
		return `""`
	}

	needsQuote := false
	for _, c := range v {
		if c == ' ' || c == '=' || c == '"' || c == '\\' || c < 0x20 || c == 0x7F {
			needsQuote = true
			break
		}
	}
	if !needsQuote {
		return v
	}

	var sb strings.Builder
	sb.WriteByte('"')
	for _, c := range v {
		switch {
		case c == '\\':
			sb.WriteString(`\\`)
		case c == '"':
			sb.WriteString(`\"`)
		case c == '\n':
			sb.WriteString(`\n`)
		case c == '\r':
			sb.WriteString(`\r`)
		case c == '\t':
			sb.WriteString(`\t`)
		case c < 0x20 || c == 0x7F:
			fmt.Fprintf(&sb, `\x%02x`, c)
		default:
			sb.WriteRune(c)
		}
	}
	sb.WriteByte('"')
	return sb.String()
}
