package main

import (
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/BurntSushi/toml"
	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/lipgloss/table"
	"github.com/spf13/cobra"
	"gopkg.in/yaml.v3"

	"copper/internal/cop"
)

var copsCmd = &cobra.Command{
	Use:   "cops [flags]",
	Short: "List registered cops and their configuration",
	Long:  "List every registered cop. yaml and toml print the effective configuration, defaults merged with the discovered configuration file.",
	Args:  cobra.NoArgs,
	RunE:  runCops,
}

func init() {
	copsCmd.Flags().String("format", "table", "output format (table|yaml|toml)")
	copsCmd.Flags().String("config", "", "configuration file (.copper.toml or .rubocop.yml)")
}

func runCops(cmd *cobra.Command, args []string) error {
	format, err := cmd.Flags().GetString("format")
	if err != nil {
		return fmt.Errorf("failed to get format flag: %w", err)
	}
	configPath, err := cmd.Flags().GetString("config")
	if err != nil {
		return fmt.Errorf("failed to get config flag: %w", err)
	}
	sess, err := loadSession(cmd.ErrOrStderr(), configPath, nil, nil)
	if err != nil {
		return err
	}
	return writeCops(cmd.OutOrStdout(), strings.ToLower(format), sess)
}

func writeCops(w io.Writer, format string, sess *session) error {
	switch format {
	case "table":
		_, err := fmt.Fprintln(w, copsTable(sess))
		return err
	case "yaml":
		enc := yaml.NewEncoder(w)
		enc.SetIndent(2)
		if err := enc.Encode(sess.config.Cops); err != nil {
			return err
		}
		return enc.Close()
	case "toml":
		return toml.NewEncoder(w).Encode(sess.config.Cops)
	default:
		return fmt.Errorf("unsupported format %q (must be table, yaml or toml)", format)
	}
}

func copsTable(sess *session) string {
	t := table.New().
		Border(lipgloss.NormalBorder()).
		Headers("Cop", "Enabled", "Safe", "Autocorrect", "Description")
	for _, reg := range sess.registry.All() {
		cfg, ok := sess.config.Cops[reg.Name]
		if !ok {
			cfg = reg.Defaults
		}
		t.Row(reg.Name, boolCell(cfg.Enabled()), boolCell(reg.Safe), boolCell(reg.Autocorrects && cfg.Bool(cop.KeyAutoCorrect, true)), reg.Description)
	}
	return t.String()
}

func boolCell(b bool) string {
	return strconv.FormatBool(b)
}
