package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
	"github.com/yacobolo/cssprune"
)

var checkCmd = &cobra.Command{
	Use:   "check",
	Short: "Resolve every detected class without writing output",
	Long: `Run the full scan-and-resolve pipeline and report diagnostics
without writing the stylesheet. Intended for CI and pre-commit hooks.`,
	PreRunE: func(cmd *cobra.Command, _ []string) error {
		return loadConfig(cmd)
	},
	RunE: func(cmd *cobra.Command, _ []string) error {
		config := buildConfig()

		result, err := cssprune.Check(cmd.Context(), config)
		if err != nil {
			return fmt.Errorf("check failed: %w", err)
		}

		quiet := getBoolWithFallback("quiet", "quiet", false)
		outputFormat := getStringWithFallback("output-format", "check.output-format", "")
		format := cssprune.DetermineOutputFormat(outputFormat, quiet)
		if max := getIntWithFallback("max-issues", "check.max-issues", 0); max > 0 && len(result.Issues) > max {
			result.Issues = result.Issues[:max]
		}
		if !quiet {
			cssprune.WriteOutput(os.Stdout, result, format, config)
		}

		// Soft gate by default: only errors fail the run. Strict mode
		// fails on any issue.
		strict := getBoolWithFallback("strict", "check.strict", false)
		if strict && len(result.Issues) > 0 {
			os.Exit(1)
		}
		if result.HasErrors() {
			os.Exit(1)
		}
		return nil
	},
}

func init() {
	f := checkCmd.Flags()
	f.StringSlice("content", nil, "Glob patterns for content files to scan")
	f.String("base", "", "Base stylesheet to tree-shake")
	f.String("definitions", "", "YAML class/variable definition file")
	f.String("properties", "", "Known CSS property list (JSON or line-oriented)")
	f.StringSlice("include", nil, "Class names to always include")
	f.Bool("strict", false, "Exit 1 on any issue (CI mode)")
	f.Int("max-issues", 0, "Limit reported issues (0 = unlimited)")
	f.String("output-format", "", "Output format: issues|summary|full|json")
	f.Bool("warn-unmatched-elements", false, "Warn on elements with no base rule")
	f.Bool("print-lines", true, "Show source lines with issues")
	f.Bool("print-linter-name", true, "Show (cssprune) suffix on issues")
}
