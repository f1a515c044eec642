package main

import (
	"errors"
	"fmt"
	"os"

	"github.com/fatih/color"
	"github.com/spf13/cobra"
	"golang.org/x/term"

	"copper/internal/version"
)

var rootCmd = &cobra.Command{
	Use:   "copper",
	Short: "Ruby static analyzer and autocorrector",
	Long:  `copper inspects Ruby sources with a set of cops and can rewrite the offending code`,

	SilenceUsage:  true,
	SilenceErrors: true,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		return applyColorFlag(cmd)
	},
}

// exitError carries a process status without an error message: offenses
// were printed already.
type exitError struct{ code int }

func (e *exitError) Error() string { return fmt.Sprintf("exit status %d", e.code) }

// main registers subcommands and global flags and runs the root command.
// Exit status: 0 clean, 1 offenses left, 2 errors.
func main() {
	rootCmd.Version = version.Version

	rootCmd.AddCommand(inspectCmd)
	rootCmd.AddCommand(fixCmd)
	rootCmd.AddCommand(copsCmd)
	rootCmd.AddCommand(parseCmd)
	rootCmd.AddCommand(versionCmd)

	// Глобальные флаги
	rootCmd.PersistentFlags().String("color", "auto", "colorize output (auto|on|off)")
	rootCmd.PersistentFlags().Bool("quiet", false, "suppress non-essential output")
	rootCmd.PersistentFlags().Bool("timings", false, "show timing information")
	rootCmd.PersistentFlags().Int("max-offenses", 0, "maximum number of offenses to print (0 = all)")

	rootCmd.PersistentFlags().String("trace", "", "trace output file (- for stderr)")
	rootCmd.PersistentFlags().String("trace-level", "off", "trace level (off|error|phase|detail|debug)")
	rootCmd.PersistentFlags().String("trace-format", "auto", "trace format (auto|text|ndjson)")
	rootCmd.PersistentFlags().String("trace-mode", "stream", "trace storage (stream|ring|both)")
	rootCmd.PersistentFlags().Int("trace-ring-size", 4096, "events kept by the ring tracer")
	rootCmd.PersistentFlags().Duration("trace-heartbeat", 0, "heartbeat interval (0 = off)")

	rootCmd.PersistentFlags().String("cpu-profile", "", "write a CPU profile to file")
	rootCmd.PersistentFlags().String("mem-profile", "", "write a heap profile to file")
	rootCmd.PersistentFlags().String("runtime-trace", "", "write a Go runtime trace to file")

	os.Exit(execute(rootCmd))
}

func execute(cmd *cobra.Command) int {
	err := cmd.Execute()
	if err == nil {
		return 0
	}
	var exit *exitError
	if errors.As(err, &exit) {
		return exit.code
	}
	fmt.Fprintf(cmd.ErrOrStderr(), "copper: %v\n", err)
	return 2
}

// applyColorFlag переключает fatih/color по --color.
func applyColorFlag(cmd *cobra.Command) error {
	mode, err := cmd.Root().PersistentFlags().GetString("color")
	if err != nil {
		return fmt.Errorf("failed to get color flag: %w", err)
	}
	switch mode {
	case "on":
		color.NoColor = false
	case "off":
		color.NoColor = true
	case "auto", "":
		color.NoColor = !isTerminal(os.Stdout)
	default:
		return fmt.Errorf("invalid --color value %q (expected auto|on|off)", mode)
	}
	return nil
}

// isTerminal проверяет, является ли файл терминалом
func isTerminal(f *os.File) bool {
	return term.IsTerminal(int(f.Fd()))
}

// colorEnabled reports the state applyColorFlag left fatih/color in.
func colorEnabled() bool {
	return !color.NoColor
}
