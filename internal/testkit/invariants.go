// Package testkit holds structural checks shared by fuzz harnesses and
// package tests.
package testkit

import (
	"fmt"

	"fortio.org/safecast"

	"copper/internal/diag"
	"copper/internal/source"
	"copper/internal/token"
)

// CheckTokens verifies a lexer stream for file:
// 1) every span lies in the file and points at it
// 2) starts never go backwards
// 3) the stream ends with exactly one EOF
func CheckTokens(file *source.File, toks []token.Token) error {
	if file == nil {
		return fmt.Errorf("nil file")
	}
	if len(toks) == 0 {
		return fmt.Errorf("empty token stream")
	}
	size, err := contentLen(file)
	if err != nil {
		return err
	}
	var prev uint32
	for i, tok := range toks {
		if err := checkSpan(tok.Span, file.ID, size); err != nil {
			return fmt.Errorf("token %d (%s): %w", i, tok.Kind, err)
		}
		if tok.Span.Start < prev {
			return fmt.Errorf("token %d (%s) starts at %d before previous start %d", i, tok.Kind, tok.Span.Start, prev)
		}
		prev = tok.Span.Start
		if tok.Kind == token.EOF && i != len(toks)-1 {
			return fmt.Errorf("EOF at %d of %d tokens", i, len(toks))
		}
	}
	if last := toks[len(toks)-1]; last.Kind != token.EOF {
		return fmt.Errorf("stream ends with %s, not EOF", last.Kind)
	}
	return nil
}

// CheckOffenses verifies that offenses reported for file carry a cop name,
// a message and a span inside the file.
func CheckOffenses(file *source.File, offs []diag.Offense) error {
	if file == nil {
		return fmt.Errorf("nil file")
	}
	size, err := contentLen(file)
	if err != nil {
		return err
	}
	for i, o := range offs {
		if o.Cop == "" || o.Message == "" {
			return fmt.Errorf("offense %d: missing cop or message: %+v", i, o)
		}
		if err := checkSpan(o.Span, file.ID, size); err != nil {
			return fmt.Errorf("offense %d (%s): %w", i, o.Cop, err)
		}
		if o.Corrected && !o.Correctable {
			return fmt.Errorf("offense %d (%s): corrected but not correctable", i, o.Cop)
		}
	}
	return nil
}

func checkSpan(sp source.Span, file source.FileID, size uint32) error {
	if sp.File != file {
		return fmt.Errorf("span points to file %d, want %d", sp.File, file)
	}
	if sp.Start > sp.End {
		return fmt.Errorf("inverted span %v", sp)
	}
	if sp.End > size {
		return fmt.Errorf("span %v beyond content (%d bytes)", sp, size)
	}
	return nil
}

func contentLen(file *source.File) (uint32, error) {
	n, err := safecast.Conv[uint32](len(file.Content))
	if err != nil {
		return 0, fmt.Errorf("len content overflow: %w", err)
	}
	return n, nil
}
