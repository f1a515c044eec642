package driver

import (
	"context"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"runtime"
	"slices"
	"strings"

	"golang.org/x/sync/errgroup"

	"copper/internal/config"
	"copper/internal/diag"
	"copper/internal/source"
	"copper/internal/trace"
)

var (
	rubyExts  = []string{".rb", ".rake", ".ru", ".gemspec"}
	rubyNames = []string{"Gemfile", "Rakefile"}
)

// IsRubyFile reports whether a directory walk should pick up path.
func IsRubyFile(path string) bool {
	base := filepath.Base(path)
	return slices.Contains(rubyExts, filepath.Ext(base)) || slices.Contains(rubyNames, base)
}

// ExpandPaths turns command-line paths into a sorted list of files.
// Directories are walked for Ruby files, skipping hidden directories and
// whatever cfg excludes; files named explicitly are always kept.
func ExpandPaths(paths []string, cfg *config.Resolved) ([]string, error) {
	if len(paths) == 0 {
		paths = []string{"."}
	}
	seen := make(map[string]struct{})
	var files []string
	add := func(p string) {
		p = filepath.Clean(p)
		if _, ok := seen[p]; !ok {
			seen[p] = struct{}{}
			files = append(files, p)
		}
	}
	for _, root := range paths {
		info, err := os.Stat(root)
		if err != nil {
			return nil, err
		}
		if !info.IsDir() {
			add(root)
			continue
		}
		err = filepath.WalkDir(root, func(path string, d fs.DirEntry, err error) error {
			if err != nil {
				return err
			}
			if d.IsDir() {
				if path != root && strings.HasPrefix(d.Name(), ".") {
					return filepath.SkipDir
				}
				return nil
			}
			if IsRubyFile(path) && (cfg == nil || !cfg.Excluded(path)) {
				add(path)
			}
			return nil
		})
		if err != nil {
			return nil, err
		}
	}
	// порядок детерминирован независимо от порядка аргументов
	slices.Sort(files)
	return files, nil
}

// Run is the outcome of InspectPaths.
type Run struct {
	FileSet *source.FileSet
	// Results follow the sorted file list.
	Results []*Result
}

// Offenses returns every offense of the run in file order.
func (r *Run) Offenses() []diag.Offense {
	var out []diag.Offense
	for _, res := range r.Results {
		out = append(out, res.Offenses...)
	}
	return out
}

// Totals returns inspected files, offenses and corrected offenses.
func (r *Run) Totals() (files, offenses, corrected int) {
	for _, res := range r.Results {
		files++
		offenses += len(res.Offenses)
		corrected += res.CorrectedCount()
	}
	return files, offenses, corrected
}

// InspectPaths inspects every file under paths in parallel. Each file gets
// its own tree, bag and corrector; the cops are shared.
func InspectPaths(ctx context.Context, paths []string, opts Options) (*Run, error) {
	files, err := ExpandPaths(paths, opts.Config)
	if err != nil {
		return nil, err
	}
	base := ""
	if opts.Config != nil {
		base = opts.Config.Root
	}
	run := &Run{
		FileSet: source.NewFileSetWithBase(base),
		Results: make([]*Result, len(files)),
	}
	if len(files) == 0 {
		return run, nil
	}

	tracer := opts.tracer()
	span := trace.Begin(tracer, trace.ScopePass, "inspect_paths", trace.CurrentSpan(ctx).SpanID)
	span.WithExtra("files", fmt.Sprint(len(files)))
	defer span.End("")
	ctx = trace.WithSpanContext(ctx, trace.SpanContext{SpanID: span.ID()})

	jobs := opts.Jobs
	if jobs <= 0 {
		jobs = runtime.GOMAXPROCS(0)
	}

	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(min(jobs, len(files)))
	for i, path := range files {
		g.Go(func() error {
			select {
			case <-gctx.Done():
				return gctx.Err()
			default:
			}
			// индекс i уникален для горутины, мьютекс не нужен
			run.Results[i] = inspectPath(gctx, run.FileSet, path, opts)
			return gctx.Err()
		})
	}
	if err := g.Wait(); err != nil {
		return run, err
	}
	return run, nil
}

func inspectPath(ctx context.Context, fset *source.FileSet, path string, opts Options) *Result {
	opts.Sink.emit(Event{File: path, Stage: StageLoad, Status: StatusStarted})
	id, err := fset.Load(path)
	if err != nil {
		opts.Sink.emit(Event{File: path, Stage: StageLoad, Status: StatusFailed})
		return &Result{Path: path, Errors: []error{fmt.Errorf("failed to load file: %w", err)}}
	}
	file := fset.Get(id)
	res, err := inspectFile(ctx, fset, file, opts)
	if err != nil {
		return &Result{Path: path, File: file, Errors: []error{err}}
	}
	return res
}

// ExitCode maps results to the process status: 2 when any file had errors,
// 1 when an offense was left uncorrected, 0 otherwise.
func ExitCode(results []*Result) int {
	code := 0
	for _, res := range results {
		if res == nil {
			continue
		}
		if len(res.Errors) > 0 {
			return 2
		}
		if res.CorrectedCount() < len(res.Offenses) {
			code = 1
		}
	}
	return code
}
