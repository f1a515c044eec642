package lexer

import (
	"copper/internal/token"
)

// scanIdentOrKeyword сканирует [a-z_][A-Za-z0-9_]*[?!]? и проверяет LookupKeyword.
// Суффикс ? или ! входит в имя метода, если за ним не идёт '=' (кроме '==').
func (lx *Lexer) scanIdentOrKeyword() token.Token {
	start := lx.cursor.Mark()
	lx.scanWord()
	tok := lx.emit(token.Ident, start)
	if k, ok := token.LookupKeyword(tok.Text); ok && lx.prev != token.Dot && lx.prev != token.AmpDot {
		// после точки `end`, `self` и т.п. — обычные имена методов
		tok.Kind = k
	}
	return tok
}

// scanConst сканирует имя константы. `Foo?`/`Foo!` — тоже методы.
func (lx *Lexer) scanConst() token.Token {
	start := lx.cursor.Mark()
	lx.cursor.Bump()
	for isIdentContinueByte(lx.cursor.Peek()) {
		lx.cursor.Bump()
	}
	if lx.eatMethodSuffix() {
		return lx.emit(token.Ident, start)
	}
	return lx.emit(token.Const, start)
}

// scanIvar сканирует @name.
func (lx *Lexer) scanIvar() token.Token {
	start := lx.cursor.Mark()
	lx.cursor.Bump() // '@'
	if !isLowerStart(lx.cursor.Peek()) && !isUpper(lx.cursor.Peek()) {
		tok := lx.emit(token.Invalid, start)
		lx.errLex(tok.Span, "`@` must be followed by an instance variable name")
		return tok
	}
	for isIdentContinueByte(lx.cursor.Peek()) {
		lx.cursor.Bump()
	}
	return lx.emit(token.Ivar, start)
}

func (lx *Lexer) scanWord() {
	lx.cursor.Bump()
	for isIdentContinueByte(lx.cursor.Peek()) {
		lx.cursor.Bump()
	}
	lx.eatMethodSuffix()
}

func (lx *Lexer) eatMethodSuffix() bool {
	b := lx.cursor.Peek()
	if b != '?' && b != '!' {
		return false
	}
	next := lx.cursor.PeekAt(1)
	if next == '=' && lx.cursor.PeekAt(2) != '=' {
		// `a!= b`, `a?=` — это оператор, не суффикс
		return false
	}
	lx.cursor.Bump()
	return true
}
