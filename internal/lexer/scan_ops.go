package lexer

import (
	"copper/internal/token"
)

var multiOps = []struct {
	text string
	kind token.Kind
}{
	{"...", token.DotDotDot},
	{"..", token.DotDot},
	{"::", token.ColonColon},
	{"&.", token.AmpDot},
	{"&&", token.AndAnd},
	{"||", token.OrOr},
	{"==", token.EqEq},
	{"!=", token.BangEq},
	{"<=", token.LtEq},
	{">=", token.GtEq},
	{"=>", token.FatArrow},
}

var singleOps = map[byte]token.Kind{
	'.': token.Dot,
	'=': token.Assign,
	'<': token.Lt,
	'>': token.Gt,
	'+': token.Plus,
	'-': token.Minus,
	'*': token.Star,
	'/': token.Slash,
	'%': token.Percent,
	'!': token.Bang,
	',': token.Comma,
	'(': token.LParen,
	')': token.RParen,
	'[': token.LBracket,
	']': token.RBracket,
	';': token.Semicolon,
}

// Жадность: сначала длинные последовательности, затем односимвольные.
func (lx *Lexer) scanOperatorOrPunct() token.Token {
	start := lx.cursor.Mark()
	for _, op := range multiOps {
		if lx.cursor.EatSeq(op.text) {
			return lx.emit(op.kind, start)
		}
	}

	ch := lx.cursor.Bump()
	if k, ok := singleOps[ch]; ok {
		return lx.emit(k, start)
	}
	// неизвестный символ; многобайтовые руны съедаем целиком
	for ch >= 0x80 && lx.cursor.Peek()&0xC0 == 0x80 {
		lx.cursor.Bump()
	}
	tok := lx.emit(token.Invalid, start)
	lx.errLex(tok.Span, "unexpected character `"+tok.Text+"`")
	return tok
}
