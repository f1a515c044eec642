package fix

import (
	"sync"

	"copper/internal/source"
)

// Policy decides what Apply does with overlapping replacements.
type Policy uint8

const (
	// PolicySkipLater keeps the earlier replacement and records the later
	// one in Result.Skipped.
	PolicySkipLater Policy = iota
	// PolicyRejectAll fails Apply with ErrEditConflict on the first overlap.
	PolicyRejectAll
)

func (p Policy) String() string {
	switch p {
	case PolicySkipLater:
		return "skip-later"
	case PolicyRejectAll:
		return "reject-all"
	}
	return "unknown"
}

// Corrector accumulates replacements for one file. Registration is safe for
// concurrent use; Apply works on a snapshot.
type Corrector struct {
	file   source.FileID
	policy Policy

	mu   sync.Mutex
	reps []Replacement
}

// NewCorrector returns a corrector for file with the given conflict policy.
func NewCorrector(file source.FileID, policy Policy) *Corrector {
	return &Corrector{file: file, policy: policy}
}

// File returns the file the corrector edits.
func (c *Corrector) File() source.FileID { return c.file }

// Policy returns the conflict policy.
func (c *Corrector) Policy() Policy { return c.policy }

// Add registers replacements in order.
func (c *Corrector) Add(reps ...Replacement) {
	c.mu.Lock()
	c.reps = append(c.reps, reps...)
	c.mu.Unlock()
}

// Replace registers a replacement of span with text.
func (c *Corrector) Replace(span source.Span, text string, opts ...Option) {
	c.Add(ReplaceSpan(span, text, opts...))
}

// Remove registers a deletion of span.
func (c *Corrector) Remove(span source.Span, opts ...Option) {
	c.Add(DeleteSpan(span, opts...))
}

// InsertBefore inserts text right before span.
func (c *Corrector) InsertBefore(span source.Span, text string, opts ...Option) {
	c.Add(InsertText(span.ZeroideToStart(), text, opts...))
}

// InsertAfter inserts text right after span.
func (c *Corrector) InsertAfter(span source.Span, text string, opts ...Option) {
	c.Add(InsertText(span.ZeroideToEnd(), text, opts...))
}

// Len returns the number of registered replacements.
func (c *Corrector) Len() int {
	c.mu.Lock()
	defer c.mu.Unlock()
	return len(c.reps)
}

// Replacements returns a copy in registration order.
func (c *Corrector) Replacements() []Replacement {
	c.mu.Lock()
	defer c.mu.Unlock()
	return append([]Replacement(nil), c.reps...)
}
