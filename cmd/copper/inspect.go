package main

import (
	"context"
	"fmt"
	"io"
	"os"

	"github.com/spf13/cobra"

	"copper/internal/diagfmt"
	"copper/internal/driver"
	"copper/internal/fix"
	"copper/internal/observ"
	"copper/internal/trace"
	"copper/internal/version"
)

var inspectCmd = &cobra.Command{
	Use:   "inspect [flags] [paths...]",
	Short: "Inspect Ruby files and report offenses",
	Long:  `Inspect Ruby files (or every Ruby file under the given directories) and report offenses. Exits 1 when offenses remain, 2 on errors.`,
	RunE:  runInspectCmd,
}

func init() {
	inspectCmd.Flags().String("format", "pretty", "output format (pretty|short|json|msgpack)")
	inspectCmd.Flags().BoolP("autocorrect", "a", false, "apply safe corrections and write them back")
	inspectCmd.Flags().StringSlice("only", nil, "run only the named cops (comma-separated)")
	inspectCmd.Flags().Int("jobs", 0, "max parallel workers (0=auto)")
	inspectCmd.Flags().String("config", "", "configuration file (.copper.toml or .rubocop.yml)")
	inspectCmd.Flags().String("ui", "auto", "progress view (auto|on|off)")
	inspectCmd.Flags().Bool("fullpath", false, "emit absolute file paths in output")
	inspectCmd.Flags().Bool("reject-conflicts", false, "fail a file when two corrections overlap instead of skipping the later one")
}

// inspectRequest is everything one inspect or fix run needs besides the
// context and the writers.
type inspectRequest struct {
	paths       []string
	format      diagfmt.Format
	autocorrect bool
	write       bool
	dryRun      bool
	only        []string
	jobs        int
	configPath  string
	ui          uiMode
	pathMode    diagfmt.PathMode
	policy      fix.Policy

	quiet       bool
	timings     bool
	maxOffenses int
	color       bool

	sink driver.Sink
}

func runInspectCmd(cmd *cobra.Command, args []string) error {
	req, err := readInspectFlags(cmd, args)
	if err != nil {
		return err
	}
	autocorrect, err := cmd.Flags().GetBool("autocorrect")
	if err != nil {
		return fmt.Errorf("failed to get autocorrect flag: %w", err)
	}
	req.autocorrect = autocorrect
	req.write = autocorrect
	return runWithSetup(cmd, req)
}

// readInspectFlags reads the flags shared by inspect and fix.
func readInspectFlags(cmd *cobra.Command, args []string) (inspectRequest, error) {
	req := inspectRequest{paths: args}
	if len(req.paths) == 0 {
		req.paths = []string{"."}
	}

	formatStr, err := cmd.Flags().GetString("format")
	if err != nil {
		return req, fmt.Errorf("failed to get format flag: %w", err)
	}
	if req.format, err = diagfmt.ParseFormat(formatStr); err != nil {
		return req, err
	}
	only, err := cmd.Flags().GetStringSlice("only")
	if err != nil {
		return req, fmt.Errorf("failed to get only flag: %w", err)
	}
	req.only = splitList(only)
	if req.jobs, err = cmd.Flags().GetInt("jobs"); err != nil {
		return req, fmt.Errorf("failed to get jobs flag: %w", err)
	}
	if req.configPath, err = cmd.Flags().GetString("config"); err != nil {
		return req, fmt.Errorf("failed to get config flag: %w", err)
	}
	uiStr, err := cmd.Flags().GetString("ui")
	if err != nil {
		return req, fmt.Errorf("failed to get ui flag: %w", err)
	}
	if req.ui, err = readUIMode(uiStr); err != nil {
		return req, err
	}
	fullPath, err := cmd.Flags().GetBool("fullpath")
	if err != nil {
		return req, fmt.Errorf("failed to get fullpath flag: %w", err)
	}
	if fullPath {
		req.pathMode = diagfmt.PathModeAbsolute
	}
	reject, err := cmd.Flags().GetBool("reject-conflicts")
	if err != nil {
		return req, fmt.Errorf("failed to get reject-conflicts flag: %w", err)
	}
	if reject {
		req.policy = fix.PolicyRejectAll
	}

	root := cmd.Root().PersistentFlags()
	if req.quiet, err = root.GetBool("quiet"); err != nil {
		return req, fmt.Errorf("failed to get quiet flag: %w", err)
	}
	if req.timings, err = root.GetBool("timings"); err != nil {
		return req, fmt.Errorf("failed to get timings flag: %w", err)
	}
	if req.maxOffenses, err = root.GetInt("max-offenses"); err != nil {
		return req, fmt.Errorf("failed to get max-offenses flag: %w", err)
	}
	req.color = colorEnabled()
	return req, nil
}

// runWithSetup wraps runInspection with profiling and tracing.
func runWithSetup(cmd *cobra.Command, req inspectRequest) error {
	stopProfiling, err := setupProfiling(cmd)
	if err != nil {
		return err
	}
	defer stopProfiling()

	progress := &runProgress{}
	tracer, stopTracing, err := setupTracing(cmd, progress.status)
	if err != nil {
		return err
	}
	defer stopTracing()

	req.sink = progress.observe
	code, err := runInspection(cmd.Context(), cmd.OutOrStdout(), cmd.ErrOrStderr(), req, tracer)
	if err != nil {
		dumpTraceRing(cmd.ErrOrStderr(), tracer)
		return err
	}
	if code == 2 {
		dumpTraceRing(cmd.ErrOrStderr(), tracer)
	}
	if code != 0 {
		return &exitError{code: code}
	}
	return nil
}

// runInspection loads the configuration, inspects req.paths and writes the
// report. It returns the process exit status.
func runInspection(ctx context.Context, out, errOut io.Writer, req inspectRequest, tracer trace.Tracer) (int, error) {
	var timer *observ.Timer
	if req.timings {
		timer = observ.NewTimer()
	}

	var sess *session
	err := timer.Measure("config", func() error {
		var err error
		sess, err = loadSession(errOut, req.configPath, req.paths, req.only)
		return err
	})
	if err != nil {
		return 2, err
	}

	opts := driver.Options{
		Cops:        sess.cops,
		Config:      sess.config,
		Autocorrect: req.autocorrect,
		Write:       req.write && !req.dryRun,
		Policy:      req.policy,
		Jobs:        req.jobs,
		Tracer:      tracer,
		Sink:        req.sink,
	}

	var run *driver.Run
	err = timer.Measure("inspect", func() error {
		var err error
		if req.wantsProgress(isTerminal(os.Stdout), isTerminal(os.Stderr)) {
			files, expandErr := driver.ExpandPaths(req.paths, sess.config)
			if expandErr != nil {
				return expandErr
			}
			title := "copper inspect"
			if req.autocorrect {
				title = "copper fix"
			}
			run, err = runInspectWithUI(ctx, title, req.paths, files, opts)
			return err
		}
		run, err = driver.InspectPaths(ctx, req.paths, opts)
		return err
	})
	if err != nil {
		return 2, err
	}

	err = timer.Measure("report", func() error {
		return writeReport(out, errOut, run, req)
	})
	if err != nil {
		return 2, err
	}
	if timer != nil {
		fmt.Fprint(errOut, timer.Summary())
	}

	code := driver.ExitCode(run.Results)
	if len(sess.problems) > 0 {
		code = 2
	}
	return code, nil
}

// writeReport prints offenses in req.format, per-file errors and the
// summary line.
func writeReport(out, errOut io.Writer, run *driver.Run, req inspectRequest) error {
	switch req.format {
	case diagfmt.FormatJSON, diagfmt.FormatMsgpack:
		files := make([]diagfmt.FileOffenses, 0, len(run.Results))
		for _, res := range run.Results {
			files = append(files, diagfmt.FileOffenses{Path: res.Path, File: res.File, Offenses: res.Offenses})
		}
		opts := diagfmt.JSONOpts{PathMode: req.pathMode, Max: req.maxOffenses, Indent: true, Version: version.Version}
		var err error
		if req.format == diagfmt.FormatJSON {
			err = diagfmt.JSON(out, files, run.FileSet, opts)
		} else {
			err = diagfmt.Msgpack(out, files, run.FileSet, opts)
		}
		if err != nil {
			return err
		}
	case diagfmt.FormatShort:
		if err := diagfmt.Short(out, run.Offenses(), run.FileSet, req.pathMode); err != nil {
			return err
		}
	default:
		if req.dryRun {
			if err := writeCorrections(out, run, req.pathMode); err != nil {
				return err
			}
		}
		opts := diagfmt.PrettyOpts{Color: req.color, PathMode: req.pathMode, Max: req.maxOffenses}
		if err := diagfmt.Pretty(out, run.Offenses(), run.FileSet, opts); err != nil {
			return err
		}
	}

	if err := writeSkipped(errOut, run, req.pathMode); err != nil {
		return err
	}
	for _, res := range run.Results {
		for _, e := range res.Errors {
			fmt.Fprintf(errOut, "%s: error: %v\n", res.Path, e)
		}
	}

	if req.quiet || req.format == diagfmt.FormatJSON || req.format == diagfmt.FormatMsgpack {
		return nil
	}
	_, err := fmt.Fprintln(out, diagfmt.Summary(totals(run)))
	return err
}

// writeCorrections lists every replacement applied in every pass.
func writeCorrections(out io.Writer, run *driver.Run, mode diagfmt.PathMode) error {
	for _, res := range run.Results {
		for _, pass := range res.Passes {
			if err := diagfmt.Corrections(out, pass.File, pass.Applied, run.FileSet, mode); err != nil {
				return err
			}
		}
	}
	return nil
}

// writeSkipped warns about edits dropped because they conflicted with an
// earlier one.
func writeSkipped(errOut io.Writer, run *driver.Run, mode diagfmt.PathMode) error {
	for _, res := range run.Results {
		for _, pass := range res.Passes {
			if err := diagfmt.SkippedEdits(errOut, pass.File, pass.Skipped, run.FileSet, mode); err != nil {
				return err
			}
		}
	}
	return nil
}

func totals(run *driver.Run) diagfmt.Totals {
	files, offenses, corrected := run.Totals()
	t := diagfmt.Totals{Files: files, Offenses: offenses, Corrected: corrected}
	for _, o := range run.Offenses() {
		if o.Correctable && !o.Corrected {
			t.Correctable++
		}
	}
	return t
}
