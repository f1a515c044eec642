package fix

import (
	"bytes"
	"errors"
	"fmt"
	"sort"
)

// ErrEditConflict is returned by Apply under PolicyRejectAll when two
// replacements overlap.
var ErrEditConflict = errors.New("overlapping replacements")

// Skip reasons recorded in Skipped.Reason.
const (
	ReasonOutOfRange = "span out of range"
	ReasonOtherFile  = "span belongs to another file"
	ReasonMismatch   = "existing text does not match expected content"
	ReasonConflict   = "conflicts with an earlier replacement"
)

// Applied is a replacement that made it into the output. Index is its
// registration order in the corrector.
type Applied struct {
	Index int
	Replacement
}

// Skipped is a replacement dropped by Apply, with the reason.
type Skipped struct {
	Index int
	Replacement
	Reason string
}

// Result is the outcome of Apply.
type Result struct {
	Text    []byte
	Applied []Applied
	Skipped []Skipped
}

// Changed reports whether any replacement was applied.
func (r *Result) Changed() bool {
	return r != nil && len(r.Applied) > 0
}

// AppliedIndex reports whether the replacement registered at idx was applied.
func (r *Result) AppliedIndex(idx int) bool {
	if r == nil {
		return false
	}
	for _, a := range r.Applied {
		if a.Index == idx {
			return true
		}
	}
	return false
}

type candidate struct {
	rep   Replacement
	order int
}

// Apply applies the registered replacements to original and returns the new
// text. Replacements are ordered by start, then end, then registration order.
// The corrector itself is not modified, so Apply may be called again.
func (c *Corrector) Apply(original []byte) (*Result, error) {
	cands := c.candidates()
	sortCandidates(cands)

	res := &Result{}
	accepted := make([]candidate, 0, len(cands))
	for _, cand := range cands {
		if reason := c.check(cand.rep, original); reason != "" {
			res.Skipped = append(res.Skipped, Skipped{Index: cand.order, Replacement: cand.rep, Reason: reason})
			continue
		}
		if prev, ok := conflictsWithAccepted(accepted, cand.rep); ok {
			if c.policy == PolicyRejectAll {
				return nil, fmt.Errorf("%w: %s and %s", ErrEditConflict, prev.rep.Span, cand.rep.Span)
			}
			res.Skipped = append(res.Skipped, Skipped{Index: cand.order, Replacement: cand.rep, Reason: ReasonConflict})
			continue
		}
		accepted = append(accepted, cand)
	}

	var out bytes.Buffer
	out.Grow(len(original))
	pos := uint32(0)
	for _, cand := range accepted {
		out.Write(original[pos:cand.rep.Span.Start])
		out.WriteString(cand.rep.NewText)
		pos = cand.rep.Span.End
		res.Applied = append(res.Applied, Applied{Index: cand.order, Replacement: cand.rep})
	}
	out.Write(original[pos:])
	res.Text = out.Bytes()

	// отчёт в порядке регистрации
	sort.Slice(res.Applied, func(i, j int) bool { return res.Applied[i].Index < res.Applied[j].Index })
	sort.Slice(res.Skipped, func(i, j int) bool { return res.Skipped[i].Index < res.Skipped[j].Index })
	return res, nil
}

func (c *Corrector) candidates() []candidate {
	reps := c.Replacements()
	cands := make([]candidate, len(reps))
	for i, r := range reps {
		cands[i] = candidate{rep: r, order: i}
	}
	return cands
}

// check returns a skip reason or "".
func (c *Corrector) check(r Replacement, original []byte) string {
	switch {
	case r.Span.File != c.file:
		return ReasonOtherFile
	case r.Span.Start > r.Span.End || int(r.Span.End) > len(original):
		return ReasonOutOfRange
	case r.OldText != "" && string(original[r.Span.Start:r.Span.End]) != r.OldText:
		return ReasonMismatch
	}
	return ""
}

// sortCandidates sorts by span start, span end, then registration order.
func sortCandidates(cands []candidate) {
	sort.SliceStable(cands, func(i, j int) bool {
		a, b := cands[i].rep.Span, cands[j].rep.Span
		if a.Start != b.Start {
			return a.Start < b.Start
		}
		if a.End != b.End {
			return a.End < b.End
		}
		return cands[i].order < cands[j].order
	})
}

func conflictsWithAccepted(accepted []candidate, r Replacement) (candidate, bool) {
	for _, prev := range accepted {
		if prev.rep.Span.Overlaps(r.Span) {
			return prev, true
		}
	}
	return candidate{}, false
}
