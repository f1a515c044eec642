// Package token defines lexical token kinds and trivia for the Ruby subset
// copper understands.
// Invariants:
//   - Token.Text is exactly the source bytes covered by Token.Span.
//   - Newlines that end a statement are real tokens (Newline); newlines the
//     lexer knows cannot end a statement (after an operator, a comma or an
//     opening bracket) are trivia.
//   - Comments never appear in the main token stream; they are leading trivia.
//   - Keywords are case sensitive; Const covers every identifier starting with
//     an uppercase letter.
package token
