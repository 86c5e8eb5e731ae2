package pattern

import "fmt"

// ValidationError is a file-level problem, such as an unsupported version or
// an empty pattern list. Problems with a single entry are PatternErrors.
type ValidationError struct {
	Field   string // top-level key, e.g. "version" or "patterns"
	Message string
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("validation error: %s: %s", e.Field, e.Message)
}

// PatternError is a problem with a single pattern entry.
type PatternError struct {
	Index   int    // 0-based index of the pattern in the file
	ID      string // may be empty if the id is missing
	Field   string // key within the entry, e.g. "format" or "fields[1].type"
	Message string
	Cause   error // e.g. a *format.GrammarError, *format.BindingError or convert.ErrUnknownType
}

func (e *PatternError) Error() string {
	if e.ID != "" {
		return fmt.Sprintf("pattern %q: %s: %s", e.ID, e.Field, e.Message)
	}
	return fmt.Sprintf("pattern[%d]: %s: %s", e.Index, e.Field, e.Message)
}

// Unwrap returns the underlying cause so errors.Is can reach format
// sentinels such as format.ErrAmbiguousCapture.
func (e *PatternError) Unwrap() error {
	return e.Cause
}
