package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
	"github.com/yacobolo/cssprune"
)

var buildCmd = &cobra.Command{
	Use:   "build",
	Short: "Build the pruned stylesheet",
	Long: `Scan content files, resolve every detected class, and write the
assembled stylesheet. Resolution errors block the write; warnings do not.`,
	PreRunE: func(cmd *cobra.Command, _ []string) error {
		return loadConfig(cmd)
	},
	RunE: runBuild,
}

func init() {
	f := buildCmd.Flags()
	f.StringSlice("content", nil, "Glob patterns for content files to scan")
	f.String("base", "", "Base stylesheet to tree-shake")
	f.String("definitions", "", "YAML class/variable definition file")
	f.String("properties", "", "Known CSS property list (JSON or line-oriented)")
	f.StringP("output", "o", "dist/site.css", "Output stylesheet path")
	f.StringSlice("include", nil, "Class names to always include")
	f.StringSlice("force-variables", nil, "Variables to always include")
	f.Bool("no-theme", false, "Omit the theme variables section")
	f.Bool("no-base", false, "Omit the base styles section")
	f.Bool("no-utilities", false, "Omit the utility classes section")
	f.Int("theme-specificity", 1, "Repeat :root in theme selectors")
	f.Bool("warn-unmatched-elements", false, "Warn on elements with no base rule")
	f.Bool("print-lines", true, "Show source lines with issues")
	f.Bool("print-linter-name", true, "Show (cssprune) suffix on issues")
}

func runBuild(cmd *cobra.Command, _ []string) error {
	config := buildConfig()

	result, err := cssprune.Build(cmd.Context(), config)
	if err != nil {
		return fmt.Errorf("build failed: %w", err)
	}

	quiet := getBoolWithFallback("quiet", "quiet", false)
	if !quiet {
		cssprune.WriteOutput(os.Stdout, result, cssprune.OutputFull, config)
		if result.HasErrors() {
			fmt.Fprintln(os.Stderr, "\nBuild failed: fix the errors above, nothing was written")
		}
	}

	if result.HasErrors() {
		os.Exit(1)
	}
	return nil
}
