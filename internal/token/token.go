package token

import (
	"copper/internal/source"
)

// Token represents a single source token with its location and trivia.
type Token struct {
	Kind    Kind
	Span    source.Span
	Text    string
	Leading []Trivia
}

// IsLiteral reports whether the token is a numeric, string or symbol literal.
func (t Token) IsLiteral() bool {
	switch t.Kind {
	case IntLit, FloatLit, StringLit, SymbolLit:
		return true
	default:
		return false
	}
}

// IsIdent reports whether the token is an identifier.
func (t Token) IsIdent() bool { return t.Kind == Ident }

// SpaceBefore reports whether whitespace or a comment precedes the token.
func (t Token) SpaceBefore() bool { return len(t.Leading) > 0 }

// IsTerminator reports whether the token ends a statement.
func (t Token) IsTerminator() bool {
	return t.Kind == Newline || t.Kind == Semicolon || t.Kind == EOF
}
