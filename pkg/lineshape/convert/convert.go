// Package convert provides strict string-to-value conversions for captured
// fields.
//
// Every conversion uses whole-string semantics: it succeeds only when the
// entire raw substring is consumed. "5x6" is not an integer, "35  " is not an
// integer, "000" is 0 and "-45" is -45. Text fields never fail.
package convert

import (
	"errors"
	"fmt"
	"slices"
	"strconv"
	"strings"
	"time"
)

// Type is the declared value type of a field. Convert must reject raw input
// that is not consumed in full.
type Type interface {
	// Name returns the type name used in pattern files and diagnostics.
	Name() string

	// Convert parses raw into a value of this type.
	Convert(raw string) (any, error)
}

// ErrUnknownType is returned by ParseType for a name that is neither a
// built-in type nor a time layout.
var ErrUnknownType = errors.New("unknown type")

// Error is returned when a raw substring cannot be converted to a Type.
type Error struct {
	Type string // type name
	Raw  string // the rejected input
	Err  error  // underlying parse error, may be nil
}

func (e *Error) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("cannot convert %q to %s: %v", e.Raw, e.Type, unwrapNum(e.Err))
	}
	return fmt.Sprintf("cannot convert %q to %s", e.Raw, e.Type)
}

// Unwrap returns the underlying parse error.
func (e *Error) Unwrap() error {
	return e.Err
}

// unwrapNum strips the strconv.NumError wrapper, which repeats the input.
func unwrapNum(err error) error {
	if ne, ok := err.(*strconv.NumError); ok {
		return ne.Err
	}
	return err
}

// Func adapts an ordinary function into a Type. fn must follow whole-string
// semantics itself.
func Func(name string, fn func(raw string) (any, error)) Type {
	return funcType{name: name, fn: fn}
}

type funcType struct {
	name string
	fn   func(string) (any, error)
}

func (f funcType) Name() string { return f.name }

func (f funcType) Convert(raw string) (any, error) {
	v, err := f.fn(raw)
	if err != nil {
		return nil, &Error{Type: f.name, Raw: raw, Err: err}
	}
	return v, nil
}

type stringType struct{}

func (stringType) Name() string                    { return "string" }
func (stringType) Convert(raw string) (any, error) { return raw, nil }

type intType struct {
	name string
	bits int
	wrap func(int64) any
}

func (t intType) Name() string { return t.name }

func (t intType) Convert(raw string) (any, error) {
	n, err := strconv.ParseInt(raw, 10, t.bits)
	if err != nil {
		return nil, &Error{Type: t.name, Raw: raw, Err: err}
	}
	return t.wrap(n), nil
}

type uintType struct {
	name string
	bits int
	wrap func(uint64) any
}

func (t uintType) Name() string { return t.name }

func (t uintType) Convert(raw string) (any, error) {
	n, err := strconv.ParseUint(raw, 10, t.bits)
	if err != nil {
		return nil, &Error{Type: t.name, Raw: raw, Err: err}
	}
	return t.wrap(n), nil
}

type floatType struct {
	name string
	bits int
}

func (t floatType) Name() string { return t.name }

func (t floatType) Convert(raw string) (any, error) {
	f, err := strconv.ParseFloat(raw, t.bits)
	if err != nil {
		return nil, &Error{Type: t.name, Raw: raw, Err: err}
	}
	if t.bits == 32 {
		return float32(f), nil
	}
	return f, nil
}

type boolType struct{}

func (boolType) Name() string { return "bool" }

func (boolType) Convert(raw string) (any, error) {
	b, err := strconv.ParseBool(raw)
	if err != nil {
		return nil, &Error{Type: "bool", Raw: raw, Err: err}
	}
	return b, nil
}

type durationType struct{}

func (durationType) Name() string { return "duration" }

func (durationType) Convert(raw string) (any, error) {
	d, err := time.ParseDuration(raw)
	if err != nil {
		return nil, &Error{Type: "duration", Raw: raw, Err: err}
	}
	return d, nil
}

type timeType struct {
	layout string
}

func (t timeType) Name() string { return "time(" + t.layout + ")" }

// time.Parse already rejects trailing text ("extra text" error).
func (t timeType) Convert(raw string) (any, error) {
	ts, err := time.Parse(t.layout, raw)
	if err != nil {
		return nil, &Error{Type: t.Name(), Raw: raw, Err: err}
	}
	return ts, nil
}

// Time returns a Type parsing timestamps with the given time.Parse layout.
func Time(layout string) Type {
	return timeType{layout: layout}
}

// Built-in types.
var (
	String   Type = stringType{}
	Bool     Type = boolType{}
	Duration Type = durationType{}

	Int   Type = intType{"int", strconv.IntSize, func(n int64) any { return int(n) }}
	Int8  Type = intType{"int8", 8, func(n int64) any { return int8(n) }}
	Int16 Type = intType{"int16", 16, func(n int64) any { return int16(n) }}
	Int32 Type = intType{"int32", 32, func(n int64) any { return int32(n) }}
	Int64 Type = intType{"int64", 64, func(n int64) any { return n }}

	Uint   Type = uintType{"uint", strconv.IntSize, func(n uint64) any { return uint(n) }}
	Uint8  Type = uintType{"uint8", 8, func(n uint64) any { return uint8(n) }}
	Uint16 Type = uintType{"uint16", 16, func(n uint64) any { return uint16(n) }}
	Uint32 Type = uintType{"uint32", 32, func(n uint64) any { return uint32(n) }}
	Uint64 Type = uintType{"uint64", 64, func(n uint64) any { return n }}

	Float32 Type = floatType{"float32", 32}
	Float64 Type = floatType{"float64", 64}
)

var byName = map[string]Type{
	"string":   String,
	"text":     String,
	"bool":     Bool,
	"duration": Duration,
	"int":      Int,
	"int8":     Int8,
	"int16":    Int16,
	"int32":    Int32,
	"int64":    Int64,
	"uint":     Uint,
	"uint8":    Uint8,
	"uint16":   Uint16,
	"uint32":   Uint32,
	"uint64":   Uint64,
	"float":    Float64,
	"float32":  Float32,
	"float64":  Float64,
	"rfc3339":  Time(time.RFC3339),
}

// Lookup returns the built-in Type registered under name.
func Lookup(name string) (Type, bool) {
	t, ok := byName[name]
	return t, ok
}

// Names returns the names accepted by Lookup, unsorted.
func Names() []string {
	names := make([]string, 0, len(byName))
	for n := range byName {
		names = append(names, n)
	}
	return names
}

// timePrefix introduces a time layout in ParseType, as in
// "time:2006-01-02 15:04:05".
const timePrefix = "time:"

// ParseType resolves a type name as written in pattern files and on the
// command line: a name accepted by Lookup, or "time:" followed by a
// time.Parse layout.
func ParseType(name string) (Type, error) {
	if layout, ok := strings.CutPrefix(name, timePrefix); ok {
		if layout == "" {
			return nil, fmt.Errorf("empty time layout")
		}
		return Time(layout), nil
	}
	if t, ok := Lookup(name); ok {
		return t, nil
	}
	known := Names()
	slices.Sort(known)
	return nil, fmt.Errorf("%w %q (known: %s, time:LAYOUT)", ErrUnknownType, name, strings.Join(known, ", "))
}
