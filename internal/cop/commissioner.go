package cop

import (
	"errors"
	"fmt"

	"copper/internal/ast"
	"copper/internal/diag"
	"copper/internal/fix"
	"copper/internal/trace"
)

// ErrCopPanicked wraps a panic recovered from a cop.
var ErrCopPanicked = errors.New("cop panicked")

// CopError is a failure of one cop on one unit. Other cops are unaffected.
type CopError struct {
	Cop string
	Err error
}

func (e *CopError) Error() string { return e.Cop + ": " + e.Err.Error() }

func (e *CopError) Unwrap() error { return e.Err }

// Options control one commissioner run.
type Options struct {
	// Autocorrect offers correctable offenses to their cops.
	Autocorrect bool
	// Policy for overlapping replacements.
	Policy fix.Policy
	Tracer trace.Tracer
	// ParentSpan is the trace span the per-cop spans hang off.
	ParentSpan uint64
}

// Report is the outcome of running the cops over one tree.
type Report struct {
	// Offenses in document order; Corrected is set on the ones whose
	// replacements were all applied.
	Offenses []diag.Offense
	// Errors are per-cop failures (*CopError) and, under PolicyRejectAll,
	// the edit conflict that aborted the correction.
	Errors []error
	// Correction is nil unless autocorrect ran and produced replacements.
	Correction *fix.Result
}

// Corrected returns the corrected text, or nil when nothing changed.
func (r *Report) Corrected() []byte {
	if r == nil || !r.Correction.Changed() {
		return nil
	}
	return r.Correction.Text
}

// Commissioner runs a fixed set of cops over trees. It holds no per-unit
// state and may be shared between goroutines.
type Commissioner struct {
	cops   []Cop
	byName map[string]Cop
}

func NewCommissioner(cops []Cop) *Commissioner {
	byName := make(map[string]Cop, len(cops))
	for _, c := range cops {
		byName[c.Name()] = c
	}
	return &Commissioner{cops: cops, byName: byName}
}

// Cops returns the cops in run order.
func (c *Commissioner) Cops() []Cop {
	return c.cops
}

// Investigate runs every cop over tree. Each cop reports into its own bag;
// a panicking cop loses its offenses and yields a CopError.
func (c *Commissioner) Investigate(tree *ast.Tree, opts Options) *Report {
	tracer := opts.Tracer
	if tracer == nil {
		tracer = trace.Nop
	}
	rep := &Report{}
	all := diag.NewBag()
	for _, cp := range c.cops {
		span := trace.Begin(tracer, trace.ScopeCop, "cop:"+cp.Name(), opts.ParentSpan)
		bag := diag.NewBag()
		if err := inspectSafely(cp, tree, bag); err != nil {
			rep.Errors = append(rep.Errors, err)
			span.WithExtra("error", err.Error())
			span.End("failed")
			continue
		}
		all.Merge(bag)
		span.End(fmt.Sprintf("%d offenses", bag.Len()))
	}
	rep.Offenses = all.Items()

	if opts.Autocorrect {
		c.autocorrect(tree, rep, opts, tracer)
	}
	return rep
}

func (c *Commissioner) autocorrect(tree *ast.Tree, rep *Report, opts Options, tracer trace.Tracer) {
	corrector := fix.NewCorrector(tree.File.ID, opts.Policy)
	// owners[i] — индексы замен, зарегистрированных для offense i
	owners := make([][2]int, len(rep.Offenses))
	for i, o := range rep.Offenses {
		owners[i] = [2]int{-1, -1}
		if !o.Correctable {
			continue
		}
		ac, ok := c.byName[o.Cop].(Autocorrector)
		if !ok || !autocorrectEnabled(c.byName[o.Cop]) {
			continue
		}
		// каждая правка сначала в отдельный корректор: упавший или
		// отказавшийся cop не оставляет полузаписанных замен
		scratch := fix.NewCorrector(tree.File.ID, opts.Policy)
		done, err := autocorrectSafely(ac, o, tree, scratch)
		if err != nil {
			rep.Errors = append(rep.Errors, err)
			continue
		}
		if !done || scratch.Len() == 0 {
			continue
		}
		from := corrector.Len()
		corrector.Add(scratch.Replacements()...)
		owners[i] = [2]int{from, corrector.Len()}
	}
	if corrector.Len() == 0 {
		return
	}

	res, err := corrector.Apply(tree.File.Content)
	if err != nil {
		rep.Errors = append(rep.Errors, fmt.Errorf("autocorrect %s: %w", tree.File.Path, err))
		return
	}
	for _, s := range res.Skipped {
		trace.Point(tracer, trace.ScopeCop, "edit_skipped", fmt.Sprintf("%s %s: %s", s.Cop, s.Span, s.Reason), opts.ParentSpan)
	}
	for i, own := range owners {
		if own[0] < 0 {
			continue
		}
		all := true
		for idx := own[0]; idx < own[1]; idx++ {
			if !res.AppliedIndex(idx) {
				all = false
				break
			}
		}
		if all {
			rep.Offenses[i] = rep.Offenses[i].WithCorrected()
		}
	}
	rep.Correction = res
}

func autocorrectEnabled(c Cop) bool {
	t, ok := c.(interface{ AutocorrectEnabled() bool })
	return !ok || t.AutocorrectEnabled()
}

func inspectSafely(c Cop, tree *ast.Tree, bag *diag.Bag) (err error) {
	defer func() {
		if r := recover(); r != nil {
			err = &CopError{Cop: c.Name(), Err: fmt.Errorf("%w: %v", ErrCopPanicked, r)}
		}
	}()
	c.Inspect(tree, diag.BagReporter{Bag: bag})
	return nil
}

func autocorrectSafely(ac Autocorrector, o diag.Offense, tree *ast.Tree, c *fix.Corrector) (done bool, err error) {
	defer func() {
		if r := recover(); r != nil {
			err = &CopError{Cop: o.Cop, Err: fmt.Errorf("%w during autocorrect: %v", ErrCopPanicked, r)}
		}
	}()
	return ac.Autocorrect(tree, o, c), nil
}
