package token

import "copper/internal/source"

type TriviaKind uint8

const (
	TriviaSpace TriviaKind = iota
	// TriviaNewline is a newline that does not terminate a statement.
	TriviaNewline
	TriviaComment
	// TriviaContinuation is a backslash-newline pair.
	TriviaContinuation
)

type Trivia struct {
	Kind TriviaKind
	Span source.Span
	Text string
}
