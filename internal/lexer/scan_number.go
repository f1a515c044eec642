package lexer

import (
	"copper/internal/token"
)

// Поддержка: 0, 1_000, 0b..., 0o..., 0x..., 1.5, 1e-3, 1.0e+10.
// `1.foo` и `1..2` — целое, точка не входит в число.
// Неверные формы — в Reporter, токен по возможности завершаем.
func (lx *Lexer) scanNumber() token.Token {
	start := lx.cursor.Mark()

	if lx.cursor.Peek() == '0' {
		switch lx.cursor.PeekAt(1) {
		case 'b', 'B':
			return lx.scanRadix(start, func(b byte) bool { return b == '0' || b == '1' })
		case 'o', 'O':
			return lx.scanRadix(start, func(b byte) bool { return b >= '0' && b <= '7' })
		case 'x', 'X':
			return lx.scanRadix(start, isHex)
		}
	}

	kind := token.IntLit
	lx.eatDigits()

	// дробная часть только если после точки цифра
	if lx.cursor.Peek() == '.' && isDec(lx.cursor.PeekAt(1)) {
		kind = token.FloatLit
		lx.cursor.Bump()
		lx.eatDigits()
	}

	if b := lx.cursor.Peek(); b == 'e' || b == 'E' {
		mark := lx.cursor.Mark()
		lx.cursor.Bump()
		if s := lx.cursor.Peek(); s == '+' || s == '-' {
			lx.cursor.Bump()
		}
		if !isDec(lx.cursor.Peek()) {
			// `2.even?`-подобное не ломаем: `e` — начало метода
			lx.cursor.Reset(mark)
		} else {
			kind = token.FloatLit
			lx.eatDigits()
		}
	}

	return lx.emit(kind, start)
}

func (lx *Lexer) scanRadix(start Mark, digit func(byte) bool) token.Token {
	lx.cursor.Bump() // 0
	lx.cursor.Bump() // b/o/x
	n := 0
	for b := lx.cursor.Peek(); digit(b) || b == '_'; b = lx.cursor.Peek() {
		lx.cursor.Bump()
		n++
	}
	tok := lx.emit(token.IntLit, start)
	if n == 0 {
		tok.Kind = token.Invalid
		lx.errLex(tok.Span, "numeric literal without digits")
	}
	return tok
}

func (lx *Lexer) eatDigits() {
	for b := lx.cursor.Peek(); isDec(b) || b == '_'; b = lx.cursor.Peek() {
		lx.cursor.Bump()
	}
}
