package source

import (
	"fmt"
)

// Span is a half-open byte interval [Start, End) inside one file.
type Span struct {
	File  FileID
	Start uint32 // в байтах включительно
	End   uint32 // в байтах не включительно
}

func (s Span) Empty() bool {
	return s.Start == s.End
}

func (s Span) Len() uint32 {
	return s.End - s.Start
}

func (s Span) String() string {
	return fmt.Sprintf("%d:%d-%d", s.File, s.Start, s.End)
}

// Cover returns the smallest span that contains both s and other.
func (s Span) Cover(other Span) Span {
	if s.File != other.File {
		return s
	}
	if other.Start < s.Start {
		s.Start = other.Start
	}
	if other.End > s.End {
		s.End = other.End
	}
	return s
}

// Contains reports whether other lies entirely within s.
func (s Span) Contains(other Span) bool {
	return s.File == other.File && s.Start <= other.Start && other.End <= s.End
}

// Overlaps reports whether the open intervals of s and other intersect.
// Touching spans (s.End == other.Start) do not overlap. A zero-length span
// overlaps a non-empty one only when it lies strictly inside it; two
// zero-length spans never overlap.
func (s Span) Overlaps(other Span) bool {
	if s.File != other.File {
		return false
	}
	if s.Empty() && other.Empty() {
		return false
	}
	if s.Empty() {
		return other.Start < s.Start && s.Start < other.End
	}
	if other.Empty() {
		return s.Start < other.Start && other.Start < s.End
	}
	return s.Start < other.End && other.Start < s.End
}

// ZeroideToStart collapses the span to its start position.
func (s Span) ZeroideToStart() Span {
	return Span{File: s.File, Start: s.Start, End: s.Start}
}

// ZeroideToEnd collapses the span to its end position.
func (s Span) ZeroideToEnd() Span {
	return Span{File: s.File, Start: s.End, End: s.End}
}

// Between returns the span from the end of s to the start of next.
// It returns an empty span at s.End when next starts before s ends.
func (s Span) Between(next Span) Span {
	if next.Start < s.End {
		return s.ZeroideToEnd()
	}
	return Span{File: s.File, Start: s.End, End: next.Start}
}
