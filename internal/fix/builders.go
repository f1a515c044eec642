package fix

import (
	"copper/internal/source"
)

// Replacement is one text edit: the bytes under Span become NewText.
// An empty Span inserts, an empty NewText deletes.
type Replacement struct {
	Span    source.Span
	NewText string
	// OldText, when set, must equal the current text under Span; otherwise
	// the replacement is skipped.
	OldText string
	// Cop that registered the replacement.
	Cop string
}

// Option mutates a replacement during construction.
type Option func(*Replacement)

// Guard requires the current text under the span to equal expect.
func Guard(expect string) Option {
	return func(r *Replacement) {
		r.OldText = expect
	}
}

// ByCop attributes the replacement to a cop.
func ByCop(name string) Option {
	return func(r *Replacement) {
		r.Cop = name
	}
}

func applyOptions(r Replacement, opts []Option) Replacement {
	for _, opt := range opts {
		if opt != nil {
			opt(&r)
		}
	}
	return r
}

// ReplaceSpan replaces text covered by span with newText.
func ReplaceSpan(span source.Span, newText string, opts ...Option) Replacement {
	return applyOptions(Replacement{Span: span, NewText: newText}, opts)
}

// DeleteSpan removes text covered by span.
func DeleteSpan(span source.Span, opts ...Option) Replacement {
	return applyOptions(Replacement{Span: span}, opts)
}

// InsertText inserts text at position at.Start.
func InsertText(at source.Span, text string, opts ...Option) Replacement {
	return applyOptions(Replacement{Span: at.ZeroideToStart(), NewText: text}, opts)
}

// WrapWith surrounds span with prefix and suffix insertions.
func WrapWith(span source.Span, prefix, suffix string, opts ...Option) []Replacement {
	return []Replacement{
		applyOptions(Replacement{Span: span.ZeroideToStart(), NewText: prefix}, opts),
		applyOptions(Replacement{Span: span.ZeroideToEnd(), NewText: suffix}, opts),
	}
}
