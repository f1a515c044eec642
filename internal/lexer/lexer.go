package lexer

import (
	"copper/internal/source"
	"copper/internal/token"
)

type Lexer struct {
	file   *source.File
	cursor Cursor
	opts   Options
	look   *token.Token   // 1 элементный буфер для токена
	hold   []token.Trivia // накопленные leading trivia
	prev   token.Kind     // последний значимый токен
	depth  int            // вложенность ( и [
}

func New(file *source.File, opts Options) *Lexer {
	return &Lexer{
		file:   file,
		cursor: NewCursor(file),
		opts:   opts,
		prev:   token.Newline, // ведущие пустые строки — trivia
	}
}

// Next возвращает следующий значимый токен с уже собранным Leading.
// После EOF всегда возвращает EOF.
func (lx *Lexer) Next() token.Token {
	if lx.look != nil {
		tok := *lx.look
		lx.look = nil
		return tok
	}

	lx.collectLeadingTrivia()

	if lx.cursor.EOF() {
		return token.Token{Kind: token.EOF, Span: lx.emptySpan(), Leading: lx.takeHold()}
	}

	ch := lx.cursor.Peek()
	var tok token.Token

	switch {
	case ch == '\n':
		tok = lx.scanNewline()
	case isLowerStart(ch):
		tok = lx.scanIdentOrKeyword()
	case isUpper(ch):
		tok = lx.scanConst()
	case ch == '@':
		tok = lx.scanIvar()
	case isDec(ch):
		tok = lx.scanNumber()
	case ch == '"' || ch == '\'':
		tok = lx.scanString()
	case ch == ':' && lx.cursor.PeekAt(1) != ':':
		tok = lx.scanSymbol()
	default:
		tok = lx.scanOperatorOrPunct()
	}

	tok.Leading = lx.takeHold()
	lx.track(tok.Kind)
	return tok
}

// Peek возвращает следующий токен, не потребляя его.
func (lx *Lexer) Peek() token.Token {
	t := lx.Next()
	lx.look = &t
	return t
}

// All lexes the whole file; the last token is EOF.
func (lx *Lexer) All() []token.Token {
	var out []token.Token
	for {
		tok := lx.Next()
		out = append(out, tok)
		if tok.Kind == token.EOF {
			return out
		}
	}
}

func (lx *Lexer) track(k token.Kind) {
	switch k {
	case token.LParen, token.LBracket:
		lx.depth++
	case token.RParen, token.RBracket:
		if lx.depth > 0 {
			lx.depth--
		}
	}
	lx.prev = k
}

func (lx *Lexer) takeHold() []token.Trivia {
	if len(lx.hold) == 0 {
		return nil
	}
	h := lx.hold
	lx.hold = nil
	return h
}

func (lx *Lexer) emptySpan() source.Span {
	return source.Span{File: lx.file.ID, Start: lx.cursor.Off, End: lx.cursor.Off}
}

func (lx *Lexer) emit(k token.Kind, start Mark) token.Token {
	sp := lx.cursor.SpanFrom(start)
	return token.Token{Kind: k, Span: sp, Text: string(lx.file.Content[sp.Start:sp.End])}
}
