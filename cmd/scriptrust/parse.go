package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"scriptrust/internal/diagfmt"
	"scriptrust/internal/driver"
)

var parseCmd = &cobra.Command{
	Use:   "parse [flags] file.srs",
	Short: "Parse a ScriptRust source file and dump its syntax tree",
	Args:  cobra.ExactArgs(1),
	RunE:  runParse,
}

func init() {
	parseCmd.Flags().Bool("json-diagnostics", false, "emit diagnostics as JSON on stderr")
}

func runParse(cmd *cobra.Command, args []string) error {
	jsonDiags, err := cmd.Flags().GetBool("json-diagnostics")
	if err != nil {
		return fmt.Errorf("failed to get json-diagnostics flag: %w", err)
	}

	result, err := driver.ParseFile(args[0], maxDiagnostics(cmd))
	if err != nil {
		return fmt.Errorf("parse failed: %w", err)
	}

	if result.Bag.Len() > 0 {
		if jsonDiags {
			if err := diagfmt.JSON(os.Stderr, result.Bag, result.FileSet, diagfmt.JSONOpts{
				IncludePositions: true,
				IncludeNotes:     true,
			}); err != nil {
				return err
			}
		} else {
			diagfmt.Pretty(os.Stderr, result.Bag, result.FileSet, diagfmt.PrettyOpts{
				Color:     useColor(cmd, os.Stderr),
				ShowNotes: true,
			})
		}
	}
	if result.Bag.HasErrors() {
		return fmt.Errorf("%s: parse failed", args[0])
	}

	diagfmt.DumpAST(os.Stdout, result.Program)
	return nil
}
