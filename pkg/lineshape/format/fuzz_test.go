package format

import (
	"errors"
	"testing"

	"github.com/lineshape/lineshape-go/pkg/lineshape/convert"
)

// FuzzMatch checks that matching never panics and that a success accounts
// for exactly the consumed prefix of the input.
func FuzzMatch(f *testing.F) {
	b := MustCompile(`"<" level ">" name ": " msg`, Schema{
		{Name: "level", Type: convert.Int},
		{Name: "name", Type: convert.String},
		{Name: "msg", Type: convert.String},
	})

	f.Add("<43>func<>name: this<>is the msg")
	f.Add("<5>httpd: GET '/'")
	f.Add("")
	f.Add("<")
	f.Add("<>: ")
	f.Add("<1>\xff\xfe: \x00")
	f.Add("<９>ü: é")

	f.Fuzz(func(t *testing.T, input string) {
		res, err := b.Match(input)
		if err != nil {
			var mErr *MatchError
			if !errors.As(err, &mErr) {
				t.Fatalf("Match returned %T, want *MatchError", err)
			}
			if mErr.Offset < 0 || mErr.Offset > len(input) {
				t.Errorf("offset %d out of range for %q", mErr.Offset, input)
			}
			return
		}
		if res.Consumed != len(input) {
			t.Errorf("Consumed = %d, want %d", res.Consumed, len(input))
		}
		if len(res.Values) != 3 {
			t.Errorf("got %d values, want 3", len(res.Values))
		}
	})
}

// FuzzParse checks that Parse either fails with a GrammarError or returns a
// pattern whose canonical form parses back to the same sections.
func FuzzParse(f *testing.F) {
	f.Add(`"<" level ">" name ": " msg`)
	f.Add(`a b`)
	f.Add(`"unterminated`)
	f.Add("`raw` x")
	f.Add(`"\xff"`)
	f.Add("")

	f.Fuzz(func(t *testing.T, src string) {
		p, err := Parse(src)
		if err != nil {
			var gErr *GrammarError
			if !errors.As(err, &gErr) {
				t.Fatalf("Parse returned %T, want *GrammarError", err)
			}
			return
		}
		for i, s := range p.sections {
			if s.Kind == FinalCapture && i != len(p.sections)-1 {
				t.Fatalf("final capture at %d of %d", i, len(p.sections))
			}
		}
		again, err := Parse(p.String())
		if err != nil {
			t.Fatalf("reparse of %q: %v", p.String(), err)
		}
		if len(again.sections) != len(p.sections) {
			t.Fatalf("reparse changed section count: %d != %d", len(again.sections), len(p.sections))
		}
		for i := range p.sections {
			if again.sections[i] != p.sections[i] {
				t.Fatalf("section %d: %+v != %+v", i, again.sections[i], p.sections[i])
			}
		}
	})
}
