package format

import (
	"strconv"
	"strings"
	"unicode/utf8"
)

// SectionKind identifies the action a Section performs.
type SectionKind int

const (
	// LiteralMatch requires the input to continue with Text.
	LiteralMatch SectionKind = iota + 1

	// FinalCapture converts the whole remaining input into Field.
	FinalCapture

	// LookaheadCapture converts the input up to the leftmost occurrence of
	// Text into Field and resumes after Text.
	LookaheadCapture
)

func (k SectionKind) String() string {
	switch k {
	case LiteralMatch:
		return "literal"
	case FinalCapture:
		return "capture"
	case LookaheadCapture:
		return "capture-until"
	}
	return "section(" + strconv.Itoa(int(k)) + ")"
}

// Section is one compiled step of a Pattern.
type Section struct {
	Kind  SectionKind
	Field string // captured field; empty for LiteralMatch
	Text  string // literal for LiteralMatch, delimiter for LookaheadCapture
}

// Pattern is a parsed specification. It is immutable.
type Pattern struct {
	sections []Section
}

// Parse tokenizes and parses a specification such as
//
//	"<" level ">" name ": " msg
func Parse(src string) (*Pattern, error) {
	tokens, err := Tokenize(src)
	if err != nil {
		return nil, err
	}
	return ParseTokens(tokens)
}

// ParseTokens assembles tokens into a Pattern using one token of lookahead.
// A literal is a LiteralMatch. An identifier is a FinalCapture when it is the
// last token, and otherwise must be followed by a literal that becomes its
// delimiter. Two identifiers in a row are rejected with ErrAmbiguousCapture.
func ParseTokens(tokens []Token) (*Pattern, error) {
	sections := make([]Section, 0, len(tokens))
	seen := make(map[string]struct{})

	for i := 0; i < len(tokens); i++ {
		tok := tokens[i]
		if err := checkToken(tok, i); err != nil {
			return nil, err
		}

		if tok.Kind == TokenLiteral {
			sections = append(sections, Section{Kind: LiteralMatch, Text: tok.Text})
			continue
		}

		if _, dup := seen[tok.Text]; dup {
			return nil, &GrammarError{Kind: ErrDuplicateCapture, Pos: tok.Pos, Token: i, Text: tok.Text}
		}
		seen[tok.Text] = struct{}{}

		if i == len(tokens)-1 {
			sections = append(sections, Section{Kind: FinalCapture, Field: tok.Text})
			break
		}

		next := tokens[i+1]
		if err := checkToken(next, i+1); err != nil {
			return nil, err
		}
		if next.Kind == TokenIdent {
			return nil, &GrammarError{Kind: ErrAmbiguousCapture, Pos: next.Pos, Token: i + 1, Text: next.Text}
		}
		sections = append(sections, Section{Kind: LookaheadCapture, Field: tok.Text, Text: next.Text})
		i++
	}

	return &Pattern{sections: sections}, nil
}

// checkToken validates a token that may not have come from Tokenize.
func checkToken(tok Token, index int) error {
	switch tok.Kind {
	case TokenLiteral:
		if tok.Text == "" {
			return &GrammarError{Kind: ErrEmptyLiteral, Pos: tok.Pos, Token: index}
		}
		if !utf8.ValidString(tok.Text) {
			return &GrammarError{Kind: ErrBadLiteral, Pos: tok.Pos, Token: index, Text: tok.Text}
		}
		return nil
	case TokenIdent:
		if isIdent(tok.Text) {
			return nil
		}
	}
	return &GrammarError{Kind: ErrUnexpectedToken, Pos: tok.Pos, Token: index, Text: tok.Text}
}

// Sections returns a copy of the pattern's sections.
func (p *Pattern) Sections() []Section {
	return append([]Section(nil), p.sections...)
}

// Len returns the number of sections.
func (p *Pattern) Len() int {
	return len(p.sections)
}

// Fields returns the captured field names in capture order.
func (p *Pattern) Fields() []string {
	var names []string
	for _, s := range p.sections {
		if s.Kind != LiteralMatch {
			names = append(names, s.Field)
		}
	}
	return names
}

// String renders the pattern in canonical specification syntax. Parsing the
// result yields an equal pattern.
func (p *Pattern) String() string {
	var sb strings.Builder
	for i, s := range p.sections {
		if i > 0 {
			sb.WriteByte(' ')
		}
		switch s.Kind {
		case LiteralMatch:
			sb.WriteString(strconv.Quote(s.Text))
		case FinalCapture:
			sb.WriteString(s.Field)
		case LookaheadCapture:
			sb.WriteString(s.Field)
			sb.WriteByte(' ')
			sb.WriteString(strconv.Quote(s.Text))
		}
	}
	return sb.String()
}
