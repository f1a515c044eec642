package lexer

import (
	"copper/internal/token"
)

// collectLeadingTrivia собирает подряд идущие trivia перед значимым токеном.
//   - ' ', '\t', '\r' коалесцируются в один TriviaSpace
//   - # ... до \n -> TriviaComment
//   - '\' + '\n' -> TriviaContinuation
//   - '\n', который не может завершить выражение, -> TriviaNewline
//
// Newline, завершающий выражение, остаётся для Next.
func (lx *Lexer) collectLeadingTrivia() {
	for !lx.cursor.EOF() {
		start := lx.cursor.Mark()
		b := lx.cursor.Peek()

		switch {
		case b == ' ' || b == '\t' || b == '\r':
			for {
				b2 := lx.cursor.Peek()
				if b2 != ' ' && b2 != '\t' && b2 != '\r' {
					break
				}
				lx.cursor.Bump()
			}
			lx.pushTrivia(token.TriviaSpace, start)

		case b == '#':
			for !lx.cursor.EOF() && lx.cursor.Peek() != '\n' {
				lx.cursor.Bump()
			}
			lx.pushTrivia(token.TriviaComment, start)

		case b == '\\' && lx.cursor.PeekAt(1) == '\n':
			lx.cursor.Bump()
			lx.cursor.Bump()
			lx.pushTrivia(token.TriviaContinuation, start)

		case b == '\n' && !lx.newlineTerminates():
			lx.cursor.Bump()
			lx.pushTrivia(token.TriviaNewline, start)

		default:
			return
		}
	}
}

func (lx *Lexer) pushTrivia(k token.TriviaKind, start Mark) {
	sp := lx.cursor.SpanFrom(start)
	lx.hold = append(lx.hold, token.Trivia{
		Kind: k,
		Span: sp,
		Text: string(lx.file.Content[sp.Start:sp.End]),
	})
}

// newlineTerminates решает, завершает ли '\n' под курсором выражение.
func (lx *Lexer) newlineTerminates() bool {
	if lx.depth > 0 {
		return false
	}
	if lx.prev == token.Newline || lx.prev == token.Semicolon || lx.prev.ContinuesLine() {
		return false
	}
	return !lx.leadingDotFollows()
}

// leadingDotFollows reports whether the next code line starts with `.foo`
// or `&.foo`, continuing a method chain.
func (lx *Lexer) leadingDotFollows() bool {
	var n uint32 = 1
	for {
		switch lx.cursor.PeekAt(n) {
		case ' ', '\t', '\r', '\n':
			n++
			continue
		case '#':
			for b := lx.cursor.PeekAt(n); b != '\n' && b != 0; b = lx.cursor.PeekAt(n) {
				n++
			}
			continue
		case '.':
			return lx.cursor.PeekAt(n+1) != '.'
		case '&':
			return lx.cursor.PeekAt(n+1) == '.'
		}
		return false
	}
}

func (lx *Lexer) scanNewline() token.Token {
	start := lx.cursor.Mark()
	lx.cursor.Bump()
	return lx.emit(token.Newline, start)
}
