package cssprune

import (
	"context"
	"fmt"
	"os"
	"path/filepath"

	"github.com/yacobolo/cssprune/internal/csslang"
)

// Config controls a build or check run.
type Config struct {
	// ContentGlobs select the markup files to scan for usage.
	ContentGlobs []string
	// BaseStylesheet is the path of the base CSS to tree-shake.
	// Optional; empty disables the base section.
	BaseStylesheet string
	// Definitions is the path of the YAML class/variable definition
	// file, merged over the built-in definitions. Optional.
	Definitions string
	// PropertyList is the path of the known CSS property list (JSON
	// array or line-oriented). Optional; absent disables property
	// validation.
	PropertyList string
	// Output is where the generated stylesheet is written. Empty means
	// the caller handles the CSS itself.
	Output string

	// IncludeClasses are always resolved, independent of scanning.
	IncludeClasses []string
	// ForceVariables are always seeded into the variable closure.
	ForceVariables []string

	NoTheme     bool
	NoBase      bool
	NoUtilities bool
	// ThemeSpecificity repeats :root in theme selectors; 0 means 1.
	ThemeSpecificity int
	// WarnUnmatchedElements reports markup elements the base stylesheet
	// has no rule for.
	WarnUnmatchedElements bool

	// PrintIssuedLines and PrintLinterName control reporter output.
	PrintIssuedLines bool
	PrintLinterName  bool
	UseColors        bool
}

// BuildResult is the outcome of a build or check run.
type BuildResult struct {
	// CSS is the assembled stylesheet.
	CSS string
	// Issues holds every diagnostic, sorted by position.
	Issues []Issue
	// Written is the output path, empty when nothing was written.
	Written string

	Stats             ScanStats
	ClassesDetected   int
	ClassesResolved   int
	ClassesUnknown    int
	VariablesResolved int
	BaseRulesMatched  int
	Errors            int
	Warnings          int
}

// HasErrors reports whether the run produced error-level issues.
func (r *BuildResult) HasErrors() bool { return r.Errors > 0 }

// Build scans, resolves, assembles, and writes the stylesheet. A
// returned error means the pipeline itself failed (bad globs, missing
// inputs); resolution problems are Issues in the result, and the
// output is still written unless errors occurred.
func Build(ctx context.Context, config Config) (*BuildResult, error) {
	result, err := run(ctx, config)
	if err != nil {
		return nil, err
	}
	if config.Output != "" && !result.HasErrors() {
		if err := writeOutputFile(config.Output, result.CSS); err != nil {
			return nil, err
		}
		result.Written = config.Output
	}
	return result, nil
}

// Check runs the full pipeline without writing anything.
func Check(ctx context.Context, config Config) (*BuildResult, error) {
	config.Output = ""
	return run(ctx, config)
}

func run(ctx context.Context, config Config) (*BuildResult, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	if len(config.ContentGlobs) == 0 && len(config.IncludeClasses) == 0 {
		return nil, fmt.Errorf("nothing to do: no content globs and no included classes")
	}

	acc := NewUsageAccumulator()
	var stats ScanStats
	if len(config.ContentGlobs) > 0 {
		usages, scanStats, err := ScanFiles(config.ContentGlobs)
		if err != nil {
			return nil, fmt.Errorf("scanning content: %w", err)
		}
		stats = scanStats
		for _, usage := range usages {
			acc.Update(usage)
		}
	}
	merged := acc.Merged()

	defs, vars, err := loadTables(ctx, config)
	if err != nil {
		return nil, err
	}

	var props *csslang.PropertySet
	if config.PropertyList != "" {
		props, err = csslang.LoadPropertySet(ctx, config.PropertyList)
		if err != nil {
			return nil, err
		}
	}

	var baseIndex *csslang.StyleRuleIndex
	if config.BaseStylesheet != "" {
		content, err := os.ReadFile(config.BaseStylesheet)
		if err != nil {
			return nil, fmt.Errorf("reading base stylesheet: %w", err)
		}
		text := string(content)
		baseIndex = csslang.ParseStyleCSS(text, csslang.HashContent(text))
	}

	explicit := append(append([]string{}, config.IncludeClasses...), merged.KeepClasses...)
	forced := append(append([]string{}, config.ForceVariables...), merged.KeepVariables...)

	input := csslang.ResolveInput{
		Explicit:        explicit,
		Implicit:        merged.ClassNames(),
		Elements:        merged.Elements,
		Classes:         usedClassSet(merged),
		Definitions:     defs,
		Variables:       vars,
		KnownProperties: props,
		BaseIndex:       baseIndex,
		ForcedVariables: forced,
	}
	opts := csslang.Options{
		IncludeTheme:          !config.NoTheme,
		IncludeBase:           !config.NoBase,
		IncludeUtilities:      !config.NoUtilities,
		ThemeSpecificity:      config.ThemeSpecificity,
		WarnUnmatchedElements: config.WarnUnmatchedElements,
	}

	resolved := csslang.ResolveCSS(input, opts)

	result := &BuildResult{
		CSS:               csslang.GenerateUnifiedCSS(resolved),
		Issues:            issuesFromDiagnostics(resolved.Diagnostics, merged.Classes),
		Stats:             stats,
		ClassesDetected:   len(merged.Classes),
		ClassesResolved:   len(resolved.Classes),
		ClassesUnknown:    len(resolved.Unknown),
		VariablesResolved: len(resolved.Variables.Resolved),
	}
	if baseIndex != nil {
		result.BaseRulesMatched = len(baseIndex.MatchingRules(input.Elements, input.Classes))
	}
	result.Errors, result.Warnings = countBySeverity(result.Issues)
	return result, nil
}

// loadTables merges the built-in definitions with the optional
// definition file, file entries winning.
func loadTables(ctx context.Context, config Config) (*csslang.ClassMap, csslang.VariableTable, error) {
	defs := csslang.DefaultDefinitions()
	vars := csslang.DefaultVariables()
	if config.Definitions == "" {
		return defs, vars, nil
	}
	fileDefs, fileVars, err := csslang.LoadDefinitions(ctx, config.Definitions)
	if err != nil {
		return nil, nil, err
	}
	return csslang.MergeDefinitions(defs, fileDefs), csslang.MergeVariables(vars, fileVars), nil
}

func usedClassSet(merged *MergedUsage) map[string]bool {
	set := make(map[string]bool, len(merged.Classes))
	for name := range merged.Classes {
		set[name] = true
	}
	return set
}

func writeOutputFile(path, css string) error {
	if dir := filepath.Dir(path); dir != "." {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return fmt.Errorf("creating output directory: %w", err)
		}
	}
	if err := os.WriteFile(path, []byte(css), 0o644); err != nil {
		return fmt.Errorf("writing output: %w", err)
	}
	return nil
}
