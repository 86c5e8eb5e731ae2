package format

import (
	"errors"
	"fmt"
)

// Grammar errors, raised while tokenizing or parsing a specification.
var (
	// ErrAmbiguousCapture means two captures follow each other with no
	// delimiting literal between them.
	ErrAmbiguousCapture = errors.New("ambiguous capture")

	// ErrUnexpectedToken means the token stream contains a token of an
	// unknown kind.
	ErrUnexpectedToken = errors.New("unexpected token")

	// ErrDuplicateCapture means a field name is captured more than once.
	ErrDuplicateCapture = errors.New("duplicate capture")

	// ErrUnexpectedChar means the specification text contains a character
	// that starts neither a literal nor an identifier.
	ErrUnexpectedChar = errors.New("unexpected character")

	// ErrBadLiteral means a quoted literal is unterminated, badly escaped
	// or not valid UTF-8.
	ErrBadLiteral = errors.New("malformed literal")

	// ErrEmptyLiteral means a literal has no text.
	ErrEmptyLiteral = errors.New("empty literal")
)

// Binding errors, raised when a pattern is bound to a schema.
var (
	// ErrUnknownField means the pattern captures a field the schema does
	// not declare.
	ErrUnknownField = errors.New("unknown field")

	// ErrUnboundField means the schema declares a field the pattern never
	// captures.
	ErrUnboundField = errors.New("unbound field")

	// ErrDuplicateField means two schema fields share a name.
	ErrDuplicateField = errors.New("duplicate schema field")

	// ErrUntypedField means a schema field has a nil Type.
	ErrUntypedField = errors.New("schema field has no type")
)

// Matching errors, raised per input.
var (
	// ErrLiteralMismatch means the input does not continue with the
	// expected literal.
	ErrLiteralMismatch = errors.New("literal mismatch")

	// ErrLookaheadNotFound means the delimiter that ends a capture does not
	// occur in the rest of the input.
	ErrLookaheadNotFound = errors.New("lookahead not found")

	// ErrValueConversion means a captured substring is not a valid value of
	// the field's type. The MatchError also wraps the *convert.Error.
	ErrValueConversion = errors.New("value conversion failed")
)

// GrammarError describes a malformed specification.
type GrammarError struct {
	Kind  error  // one of the grammar sentinel errors
	Pos   int    // byte offset in the specification text, -1 if unknown
	Token int    // index of the offending token, -1 if raised by the lexer
	Text  string // offending token or character
}

// Error formats the error with the offset in the specification text when
// known, otherwise with the token index.
func (e *GrammarError) Error() string {
	if e.Pos >= 0 {
		return fmt.Sprintf("format: %v at offset %d: %q", e.Kind, e.Pos, e.Text)
	}
	return fmt.Sprintf("format: %v at token %d: %q", e.Kind, e.Token, e.Text)
}

// Unwrap returns Kind.
func (e *GrammarError) Unwrap() error {
	return e.Kind
}

// BindingError describes a mismatch between the fields captured by a
// pattern and the fields declared by a schema.
type BindingError struct {
	Kind  error  // one of the binding sentinel errors
	Field string // name of the offending field
}

// Error formats the error as "format: <kind> <field>".
func (e *BindingError) Error() string {
	return fmt.Sprintf("format: %v %q", e.Kind, e.Field)
}

// Unwrap returns Kind.
func (e *BindingError) Unwrap() error {
	return e.Kind
}

// MatchError describes where and why an input failed to match.
type MatchError struct {
	Kind     error  // ErrLiteralMismatch, ErrLookaheadNotFound or ErrValueConversion
	Section  int    // index of the failing section
	Offset   int    // byte offset in the input where the section started
	Field    string // captured field, empty for literal sections
	Expected string // expected literal or delimiter
	Raw      string // rejected substring for conversion failures
	Err      error  // conversion error
}

// Error describes the failing section. Literal and delimiter failures quote
// the expected text; conversion failures include the conversion error.
func (e *MatchError) Error() string {
	switch e.Kind {
	case ErrLiteralMismatch:
		return fmt.Sprintf("section %d: expected %q at offset %d", e.Section, e.Expected, e.Offset)
	case ErrLookaheadNotFound:
		return fmt.Sprintf("section %d: delimiter %q for field %q not found after offset %d",
			e.Section, e.Expected, e.Field, e.Offset)
	default:
		return fmt.Sprintf("section %d: field %q: %v", e.Section, e.Field, e.Err)
	}
}

// Unwrap exposes both the kind and the conversion cause to errors.Is/As.
func (e *MatchError) Unwrap() []error {
	if e.Err != nil {
		return []error{e.Kind, e.Err}
	}
	return []error{e.Kind}
}
