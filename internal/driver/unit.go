package driver

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"path/filepath"

	"copper/internal/ast"
	"copper/internal/cop"
	"copper/internal/diag"
	"copper/internal/fix"
	"copper/internal/parser"
	"copper/internal/source"
	"copper/internal/trace"
)

var (
	// ErrInfiniteLoop: corrections kept changing the file for MaxIterations
	// passes or brought it back to an earlier version.
	ErrInfiniteLoop = errors.New("infinite loop detected during autocorrection")
	// ErrCorrectionBroke: a correction produced text that no longer parses.
	ErrCorrectionBroke = errors.New("autocorrection produced invalid syntax")
)

// Pass is one autocorrect round. Spans of Applied refer to File.
type Pass struct {
	File    *source.File
	Applied []fix.Applied
	Skipped []fix.Skipped
}

// Result is the outcome of inspecting one file.
type Result struct {
	Path string
	// File is the version the offenses refer to; nil when loading failed.
	File     *source.File
	Offenses []diag.Offense
	// Errors do not stop other files: cop failures, edit conflicts,
	// correction loops, load and write failures.
	Errors []error
	Passes []Pass
	// Corrected is the final text when autocorrection changed the file.
	Corrected []byte
	Written   bool
}

// SyntaxError reports whether the file failed to parse.
func (r *Result) SyntaxError() bool {
	for _, o := range r.Offenses {
		if o.Cop == diag.SyntaxCop {
			return true
		}
	}
	return false
}

// CorrectedCount returns how many offenses were fixed.
func (r *Result) CorrectedCount() int {
	n := 0
	for _, o := range r.Offenses {
		if o.Corrected {
			n++
		}
	}
	return n
}

// discardCorrections drops every correction of the file.
func (r *Result) discardCorrections() {
	r.Corrected = nil
	r.Passes = nil
	for i := range r.Offenses {
		r.Offenses[i].Corrected = false
	}
}

// InspectSource inspects in-memory content registered in fs under path.
// The file is virtual: Options.Write never touches disk for it.
func InspectSource(ctx context.Context, fs *source.FileSet, path string, content []byte, opts Options) (*Result, error) {
	file := fs.Get(fs.AddVirtual(path, content))
	return inspectFile(ctx, fs, file, opts)
}

// inspectFile runs parse -> cops -> autocorrect loop -> write for one file.
// The returned error is reserved for malformed trees and cancellation.
func inspectFile(ctx context.Context, fs *source.FileSet, file *source.File, opts Options) (*Result, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	tracer := opts.tracer()
	span := trace.BeginUnit(tracer, file.Path, trace.CurrentSpan(ctx).SpanID)
	res := &Result{Path: file.Path, File: file}

	opts.Sink.emit(Event{File: file.Path, Stage: StageParse, Status: StatusStarted})
	tree, syntax, err := parseFile(file, opts)
	if err != nil {
		trace.Error(tracer, trace.ScopeUnit, "malformed-tree", err, span.ID())
		opts.Sink.emit(Event{File: file.Path, Stage: StageParse, Status: StatusFailed})
		span.End("malformed")
		return nil, err
	}
	if syntax.Len() > 0 {
		res.Offenses = syntax.Items()
		opts.Sink.emit(Event{File: file.Path, Stage: StageParse, Status: StatusFailed, Offenses: len(res.Offenses)})
		span.End(fmt.Sprintf("%d syntax errors", len(res.Offenses)))
		return res, nil
	}
	opts.Sink.emit(Event{File: file.Path, Stage: StageParse, Status: StatusDone})

	comm := cop.NewCommissioner(opts.copsFor(file.Path))
	copOpts := cop.Options{
		Autocorrect: opts.Autocorrect,
		Policy:      opts.Policy,
		Tracer:      tracer,
		ParentSpan:  span.ID(),
	}
	rep := comm.Investigate(tree, copOpts)
	res.Offenses = rep.Offenses
	res.addErrors(tracer, span.ID(), rep.Errors)
	opts.Sink.emit(Event{File: file.Path, Stage: StageInspect, Status: StatusDone, Offenses: len(res.Offenses)})

	if rep.Correction != nil {
		res.Passes = append(res.Passes, Pass{File: file, Applied: rep.Correction.Applied, Skipped: rep.Correction.Skipped})
	}
	if next := rep.Corrected(); next != nil && !bytes.Equal(next, file.Content) {
		opts.Sink.emit(Event{File: file.Path, Stage: StageCorrect, Status: StatusStarted})
		if err := res.correctLoop(ctx, fs, comm, copOpts, next, opts); err != nil {
			if ctxErr := ctx.Err(); ctxErr != nil {
				return nil, ctxErr
			}
			res.discardCorrections()
			res.addErrors(tracer, span.ID(), []error{err})
			opts.Sink.emit(Event{File: file.Path, Stage: StageCorrect, Status: StatusFailed})
		} else {
			opts.Sink.emit(Event{File: file.Path, Stage: StageCorrect, Status: StatusDone})
		}
	}

	if opts.Write && res.Corrected != nil && file.Flags&source.FileVirtual == 0 {
		if err := fix.WriteFile(filepath.FromSlash(file.Path), source.Denormalize(res.Corrected, file.Flags)); err != nil {
			res.addErrors(tracer, span.ID(), []error{err})
			opts.Sink.emit(Event{File: file.Path, Stage: StageWrite, Status: StatusFailed})
		} else {
			res.Written = true
			opts.Sink.emit(Event{File: file.Path, Stage: StageWrite, Status: StatusDone})
		}
	}

	span.WithExtra("corrected", fmt.Sprint(res.CorrectedCount()))
	span.End(fmt.Sprintf("%d offenses", len(res.Offenses)))
	return res, nil
}

// correctLoop re-parses and re-inspects corrected text until no replacement
// applies. Offenses stay those of the first pass.
func (r *Result) correctLoop(ctx context.Context, fs *source.FileSet, comm *cop.Commissioner, copOpts cop.Options, text []byte, opts Options) error {
	seen := map[[32]byte]struct{}{r.File.Hash: {}}
	for pass := 2; ; pass++ {
		if err := ctx.Err(); err != nil {
			return err
		}
		next := fs.Get(fs.Add(r.File.Path, text, r.File.Flags|source.FileCorrected))
		if _, dup := seen[next.Hash]; dup {
			return fmt.Errorf("%w: pass %d restored an earlier version", ErrInfiniteLoop, pass)
		}
		seen[next.Hash] = struct{}{}

		tree, syntax, err := parseFile(next, opts)
		if err != nil {
			return err
		}
		if syntax.Len() > 0 {
			first := syntax.Items()[0]
			return fmt.Errorf("%w: %s", ErrCorrectionBroke, first.Message)
		}
		r.Corrected = text
		if pass > MaxIterations {
			return fmt.Errorf("%w after %d passes", ErrInfiniteLoop, MaxIterations)
		}

		rep := comm.Investigate(tree, copOpts)
		r.addErrors(copOpts.Tracer, copOpts.ParentSpan, rep.Errors)
		if rep.Correction != nil {
			r.Passes = append(r.Passes, Pass{File: next, Applied: rep.Correction.Applied, Skipped: rep.Correction.Skipped})
		}
		text = rep.Corrected()
		if text == nil || bytes.Equal(text, next.Content) {
			return nil
		}
	}
}

func (r *Result) addErrors(tracer trace.Tracer, parent uint64, errs []error) {
	for _, err := range errs {
		trace.Error(tracer, trace.ScopeUnit, errorName(err), err, parent)
		r.Errors = append(r.Errors, err)
	}
}

func errorName(err error) string {
	var copErr *cop.CopError
	switch {
	case errors.As(err, &copErr):
		return "cop-failure"
	case errors.Is(err, fix.ErrEditConflict):
		return "edit-conflict"
	default:
		return "unit-error"
	}
}

func parseFile(file *source.File, opts Options) (*ast.Tree, *diag.Bag, error) {
	bag := diag.NewBag()
	res, err := parser.ParseFile(file, parser.Options{
		MaxErrors: opts.MaxSyntaxErrors,
		Reporter:  diag.BagReporter{Bag: bag},
	})
	if err != nil {
		return nil, bag, err
	}
	return res.Tree, bag, nil
}
