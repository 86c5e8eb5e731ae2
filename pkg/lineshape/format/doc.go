// Package format compiles line format specifications into matchers.
//
// A specification is a sequence of quoted literals and bare field names:
//
//	"<" level ">" facility ": " msg
//
// A literal must appear verbatim. A field followed by a literal captures the
// text up to the leftmost occurrence of that literal. A field at the end
// captures everything that remains. Two fields in a row are rejected, since
// nothing would tell where the first one ends.
//
// Compiling happens in two steps. [Parse] turns the text into a [Pattern],
// and [Bind] checks it against a [Schema] so that every captured name is
// declared and every declared name is captured. The resulting [Bound] is
// immutable and matches input in a single left-to-right pass without
// backtracking:
//
//	b, err := format.Compile(`"value: " v`, format.Schema{{Name: "v", Type: convert.Int}})
//	if err != nil {
//	    log.Fatal(err)
//	}
//	res, err := b.Match("value: 65") // res.Map() == map[v:65]
//
// Errors from each stage are distinct types: [GrammarError], [BindingError]
// and [MatchError]. Each unwraps to a sentinel such as [ErrAmbiguousCapture]
// or [ErrLiteralMismatch] for use with errors.Is.
package format
