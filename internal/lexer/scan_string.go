package lexer

import (
	"copper/internal/token"
)

// scanString сканирует '...' и "...". Экранирование и интерполяция #{...}
// остаются в тексте как есть; строки могут занимать несколько строк.
func (lx *Lexer) scanString() token.Token {
	start := lx.cursor.Mark()
	quote := lx.cursor.Bump()
	if lx.scanQuoted(quote) {
		return lx.emit(token.StringLit, start)
	}
	tok := lx.emit(token.Invalid, start)
	lx.errLex(tok.Span, "unterminated string meets end of file")
	return tok
}

// scanSymbol сканирует :name, :Name, :name?, :"str".
func (lx *Lexer) scanSymbol() token.Token {
	start := lx.cursor.Mark()
	lx.cursor.Bump() // ':'
	b := lx.cursor.Peek()
	switch {
	case isLowerStart(b) || isUpper(b):
		lx.scanWord()
		if lx.cursor.Peek() == '=' && lx.cursor.PeekAt(1) != '=' && lx.cursor.PeekAt(1) != '>' {
			lx.cursor.Bump() // :name=
		}
		return lx.emit(token.SymbolLit, start)
	case b == '"' || b == '\'':
		lx.cursor.Bump()
		if lx.scanQuoted(b) {
			return lx.emit(token.SymbolLit, start)
		}
		tok := lx.emit(token.Invalid, start)
		lx.errLex(tok.Span, "unterminated quoted symbol meets end of file")
		return tok
	}
	tok := lx.emit(token.Invalid, start)
	lx.errLex(tok.Span, "unexpected `:`")
	return tok
}

// scanQuoted съедает тело строки после открывающей кавычки, включая закрывающую.
func (lx *Lexer) scanQuoted(quote byte) bool {
	for !lx.cursor.EOF() {
		b := lx.cursor.Bump()
		switch {
		case b == quote:
			return true
		case b == '\\':
			lx.cursor.Bump()
		case b == '#' && quote == '"' && lx.cursor.Peek() == '{':
			lx.cursor.Bump()
			if !lx.skipInterpolation() {
				return false
			}
		}
	}
	return false
}

// skipInterpolation пропускает #{ ... } с учётом вложенных скобок и строк.
func (lx *Lexer) skipInterpolation() bool {
	depth := 1
	for !lx.cursor.EOF() {
		b := lx.cursor.Bump()
		switch b {
		case '{':
			depth++
		case '}':
			depth--
			if depth == 0 {
				return true
			}
		case '"', '\'':
			if !lx.scanQuoted(b) {
				return false
			}
		}
	}
	return false
}
