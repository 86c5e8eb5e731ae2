package format

import (
	"strconv"
	"strings"
	"unicode"
	"unicode/utf8"
)

// TokenKind identifies the lexical class of a Token.
type TokenKind int

const (
	// TokenLiteral is a quoted literal; Text holds the decoded text.
	TokenLiteral TokenKind = iota + 1

	// TokenIdent is a bare identifier naming a field.
	TokenIdent
)

func (k TokenKind) String() string {
	switch k {
	case TokenLiteral:
		return "literal"
	case TokenIdent:
		return "identifier"
	}
	return "token(" + strconv.Itoa(int(k)) + ")"
}

// Token is a lexical unit of a specification.
type Token struct {
	Kind TokenKind
	Text string
	Pos  int // byte offset in the source, -1 for synthesized tokens
}

// Lit returns a literal token with no source position.
func Lit(text string) Token {
	return Token{Kind: TokenLiteral, Text: text, Pos: -1}
}

// Ident returns an identifier token with no source position.
func Ident(name string) Token {
	return Token{Kind: TokenIdent, Text: name, Pos: -1}
}

// Tokenize splits a specification into tokens.
//
// Literals are written in Go syntax, either interpreted ("a\tb") or raw
// (`a\tb`). Identifiers start with a letter or underscore. Whitespace between
// tokens is ignored.
func Tokenize(src string) ([]Token, error) {
	var tokens []Token
	i := 0
	for i < len(src) {
		r, size := utf8.DecodeRuneInString(src[i:])
		switch {
		case unicode.IsSpace(r):
			i += size

		case r == '"' || r == '`':
			end, err := literalEnd(src, i)
			if err != nil {
				return nil, err
			}
			text, uerr := strconv.Unquote(src[i:end])
			if uerr != nil || !utf8.ValidString(text) {
				return nil, &GrammarError{Kind: ErrBadLiteral, Pos: i, Token: -1, Text: src[i:end]}
			}
			if text == "" {
				return nil, &GrammarError{Kind: ErrEmptyLiteral, Pos: i, Token: -1, Text: src[i:end]}
			}
			tokens = append(tokens, Token{Kind: TokenLiteral, Text: text, Pos: i})
			i = end

		case isIdentStart(r):
			start := i
			for i < len(src) {
				r, size := utf8.DecodeRuneInString(src[i:])
				if !isIdentStart(r) && !unicode.IsDigit(r) {
					break
				}
				i += size
			}
			tokens = append(tokens, Token{Kind: TokenIdent, Text: src[start:i], Pos: start})

		default:
			return nil, &GrammarError{Kind: ErrUnexpectedChar, Pos: i, Token: -1, Text: string(r)}
		}
	}
	return tokens, nil
}

// literalEnd returns the offset just past the literal starting at src[start].
func literalEnd(src string, start int) (int, error) {
	quote := src[start]
	if quote == '`' {
		if n := strings.IndexByte(src[start+1:], '`'); n >= 0 {
			return start + 1 + n + 1, nil
		}
		return 0, &GrammarError{Kind: ErrBadLiteral, Pos: start, Token: -1, Text: src[start:]}
	}
	for i := start + 1; i < len(src); i++ {
		switch src[i] {
		case '\\':
			i++
		case '\n':
			return 0, &GrammarError{Kind: ErrBadLiteral, Pos: start, Token: -1, Text: src[start:i]}
		case '"':
			return i + 1, nil
		}
	}
	return 0, &GrammarError{Kind: ErrBadLiteral, Pos: start, Token: -1, Text: src[start:]}
}

func isIdentStart(r rune) bool {
	return r == '_' || unicode.IsLetter(r)
}

// isIdent reports whether s is a valid identifier.
func isIdent(s string) bool {
	if s == "" {
		return false
	}
	for i, r := range s {
		if !isIdentStart(r) && (i == 0 || !unicode.IsDigit(r)) {
			return false
		}
	}
	return true
}
