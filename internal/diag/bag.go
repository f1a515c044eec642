package diag

import (
	"slices"
	"sync"
)

// Bag collects offenses for one unit. Add is safe for concurrent use.
type Bag struct {
	mu    sync.Mutex
	items []Offense
}

func NewBag() *Bag {
	return &Bag{}
}

// Add appends an offense. Nothing is merged or dropped.
func (b *Bag) Add(o Offense) {
	b.mu.Lock()
	b.items = append(b.items, o)
	b.mu.Unlock()
}

// длина
func (b *Bag) Len() int {
	b.mu.Lock()
	defer b.mu.Unlock()
	return len(b.items)
}

// Items returns a copy of the offenses in document order: by file, then
// ascending start offset; equal starts keep registration order.
func (b *Bag) Items() []Offense {
	b.mu.Lock()
	out := slices.Clone(b.items)
	b.mu.Unlock()
	slices.SortStableFunc(out, compareOffenses)
	return out
}

// Merge appends all offenses of other in their registration order.
func (b *Bag) Merge(other *Bag) {
	if other == nil || other == b {
		return
	}
	other.mu.Lock()
	items := slices.Clone(other.items)
	other.mu.Unlock()

	b.mu.Lock()
	b.items = append(b.items, items...)
	b.mu.Unlock()
}

// HasErrors возвращает true, если есть хотя бы одно offense с Severity >= Error.
func (b *Bag) HasErrors() bool {
	b.mu.Lock()
	defer b.mu.Unlock()
	for i := range b.items {
		if b.items[i].IsError() {
			return true
		}
	}
	return false
}

// HasSyntaxErrors reports whether the lexer or parser reported anything.
func (b *Bag) HasSyntaxErrors() bool {
	b.mu.Lock()
	defer b.mu.Unlock()
	for i := range b.items {
		if b.items[i].Cop == SyntaxCop {
			return true
		}
	}
	return false
}

func compareOffenses(a, b Offense) int {
	if a.Span.File != b.Span.File {
		if a.Span.File < b.Span.File {
			return -1
		}
		return 1
	}
	switch {
	case a.Span.Start < b.Span.Start:
		return -1
	case a.Span.Start > b.Span.Start:
		return 1
	}
	return 0
}
