package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"copper/internal/ast"
	"copper/internal/diag"
	"copper/internal/diagfmt"
	"copper/internal/lexer"
	"copper/internal/parser"
	"copper/internal/source"
)

var parseCmd = &cobra.Command{
	Use:   "parse [flags] <file.rb>",
	Short: "Dump the syntax tree of a Ruby file",
	Args:  cobra.ExactArgs(1),
	RunE:  runParse,
}

func init() {
	parseCmd.Flags().Bool("tokens", false, "dump tokens instead of the tree")
}

func runParse(cmd *cobra.Command, args []string) error {
	tokens, err := cmd.Flags().GetBool("tokens")
	if err != nil {
		return fmt.Errorf("failed to get tokens flag: %w", err)
	}

	fs := source.NewFileSet()
	id, err := fs.Load(args[0])
	if err != nil {
		return fmt.Errorf("parse: %w", err)
	}
	file := fs.Get(id)
	bag := diag.NewBag()
	out := cmd.OutOrStdout()

	if tokens {
		lx := lexer.New(file, lexer.Options{Reporter: diag.BagReporter{Bag: bag}})
		for _, tok := range lx.All() {
			start, _ := file.Resolve(tok.Span)
			if _, err := fmt.Fprintf(out, "%d:%d\t%s\t%q\n", start.Line, start.Col, tok.Kind, tok.Text); err != nil {
				return err
			}
		}
	} else {
		res, err := parser.ParseFile(file, parser.Options{Reporter: diag.BagReporter{Bag: bag}})
		if err != nil {
			return err
		}
		if res.Tree.Root != nil {
			if err := ast.Dump(out, res.Tree.Root); err != nil {
				return err
			}
		}
	}

	if bag.Len() == 0 {
		return nil
	}
	if err := diagfmt.Pretty(cmd.ErrOrStderr(), bag.Items(), fs, diagfmt.PrettyOpts{Color: colorEnabled()}); err != nil {
		return err
	}
	return &exitError{code: 1}
}
