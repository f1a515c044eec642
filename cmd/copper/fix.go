package main

import (
	"fmt"

	"github.com/spf13/cobra"
)

var fixCmd = &cobra.Command{
	Use:   "fix [flags] [paths...]",
	Short: "Autocorrect offenses and write the files back",
	Long:  "Inspect with autocorrection on and write corrected files. With --dry-run the applied replacements are listed and nothing is written.",
	RunE:  runFix,
}

func init() {
	fixCmd.Flags().String("format", "pretty", "output format (pretty|short|json|msgpack)")
	fixCmd.Flags().Bool("dry-run", false, "list replacements without modifying files")
	fixCmd.Flags().StringSlice("only", nil, "run only the named cops (comma-separated)")
	fixCmd.Flags().Int("jobs", 0, "max parallel workers (0=auto)")
	fixCmd.Flags().String("config", "", "configuration file (.copper.toml or .rubocop.yml)")
	fixCmd.Flags().String("ui", "auto", "progress view (auto|on|off)")
	fixCmd.Flags().Bool("fullpath", false, "emit absolute file paths in output")
	fixCmd.Flags().Bool("reject-conflicts", false, "fail a file when two corrections overlap instead of skipping the later one")
}

func runFix(cmd *cobra.Command, args []string) error {
	req, err := readInspectFlags(cmd, args)
	if err != nil {
		return err
	}
	dryRun, err := cmd.Flags().GetBool("dry-run")
	if err != nil {
		return fmt.Errorf("failed to get dry-run flag: %w", err)
	}
	req.autocorrect = true
	req.write = true
	req.dryRun = dryRun
	return runWithSetup(cmd, req)
}
