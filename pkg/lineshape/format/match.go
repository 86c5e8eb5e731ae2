package format

import "strings"

// Value is one converted field of a Result.
type Value struct {
	Name  string
	Raw   string // captured substring before conversion
	Value any
}

// Result holds the fields extracted by a successful match, in schema order.
type Result struct {
	Values []Value

	// Consumed is the number of input bytes consumed by the pattern. It
	// equals len(input) whenever the pattern ends with a capture.
	Consumed int
}

// Get returns the value of the named field.
func (r *Result) Get(name string) (any, bool) {
	for _, v := range r.Values {
		if v.Name == name {
			return v.Value, true
		}
	}
	return nil, false
}

// Map returns the values keyed by field name.
func (r *Result) Map() map[string]any {
	m := make(map[string]any, len(r.Values))
	for _, v := range r.Values {
		m[v.Name] = v.Value
	}
	return m
}

// Match runs the pattern over input in a single left-to-right pass and stops
// at the first failing section. A failure is always a *MatchError.
//
// Literals and delimiters are valid UTF-8, so every prefix test and every
// leftmost search lands on a character boundary of valid input.
func (b *Bound) Match(input string) (*Result, error) {
	values := make([]Value, len(b.schema))
	rest := input
	pos := 0

	for i, s := range b.pattern.sections {
		switch s.Kind {
		case LiteralMatch:
			if !strings.HasPrefix(rest, s.Text) {
				return nil, &MatchError{Kind: ErrLiteralMismatch, Section: i, Offset: pos, Expected: s.Text}
			}
			rest = rest[len(s.Text):]
			pos += len(s.Text)

		case FinalCapture:
			v, err := b.types[i].Convert(rest)
			if err != nil {
				return nil, &MatchError{Kind: ErrValueConversion, Section: i, Offset: pos, Field: s.Field, Raw: rest, Err: err}
			}
			values[b.slot[i]] = Value{Name: s.Field, Raw: rest, Value: v}
			pos += len(rest)
			rest = ""

		case LookaheadCapture:
			n := strings.Index(rest, s.Text)
			if n < 0 {
				return nil, &MatchError{Kind: ErrLookaheadNotFound, Section: i, Offset: pos, Field: s.Field, Expected: s.Text}
			}
			raw := rest[:n]
			v, err := b.types[i].Convert(raw)
			if err != nil {
				return nil, &MatchError{Kind: ErrValueConversion, Section: i, Offset: pos, Field: s.Field, Raw: raw, Err: err}
			}
			values[b.slot[i]] = Value{Name: s.Field, Raw: raw, Value: v}
			rest = rest[n+len(s.Text):]
			pos += n + len(s.Text)
		}
	}

	return &Result{Values: values, Consumed: pos}, nil
}

// MatchString reports whether input matches the pattern.
func (b *Bound) MatchString(input string) bool {
	_, err := b.Match(input)
	return err == nil
}
