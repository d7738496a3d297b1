package cssprune

import (
	"fmt"
	"io"
	"os"
	"strings"
)

// Reporter handles formatting and outputting build results.
type Reporter struct {
	w               io.Writer
	useColors       bool
	printLines      bool
	printLinterName bool
}

// NewReporter creates a new reporter with the given configuration.
func NewReporter(w io.Writer, config Config) *Reporter {
	return &Reporter{
		w:               w,
		useColors:       shouldUseColors(config),
		printLines:      config.PrintIssuedLines,
		printLinterName: config.PrintLinterName,
	}
}

// shouldUseColors determines if colors should be enabled.
func shouldUseColors(config Config) bool {
	if config.UseColors {
		return true
	}
	// FORCE_COLOR covers CI systems that support color without a TTY.
	if os.Getenv("FORCE_COLOR") != "" {
		return true
	}
	if os.Getenv("GITHUB_ACTIONS") == "true" {
		return true
	}
	if fileInfo, _ := os.Stdout.Stat(); fileInfo != nil && (fileInfo.Mode()&os.ModeCharDevice) != 0 {
		return true
	}
	return false
}

// UseColors returns whether colors are enabled.
func (r *Reporter) UseColors() bool { return r.useColors }

// PrintIssues outputs issues in golangci-lint format, pre-sorted by
// file, line, and column.
func (r *Reporter) PrintIssues(issues []Issue) {
	for _, issue := range issues {
		r.printIssue(issue)
	}
}

// printIssue formats a single issue: file:line:col: message (linter).
func (r *Reporter) printIssue(issue Issue) {
	location := fmt.Sprintf("%s:%d:%d:", issue.Pos.Filename, issue.Pos.Line, issue.Pos.Column)
	if issue.Pos.Filename == "" {
		location = fmt.Sprintf("%s:", linterName)
	}

	linterSuffix := ""
	if r.printLinterName {
		linterSuffix = fmt.Sprintf(" (%s)", linterName)
	}

	fmt.Fprintf(r.w, "%s %s%s\n",
		RenderStyle(StyleCyan, location, r.useColors),
		issue.Text,
		RenderStyle(StyleGray, linterSuffix, r.useColors))

	if issue.Suggestion != "" {
		fmt.Fprintf(r.w, "\t%s\n",
			RenderStyle(StyleGray, "suggestion: "+issue.Suggestion, r.useColors))
	}

	if r.printLines && len(issue.SourceLines) > 0 {
		for _, line := range issue.SourceLines {
			fmt.Fprintf(r.w, "\t%s\n", line)
		}
		caret := buildCaretIndicator(issue.SourceLines[0], issue.Pos.Column)
		fmt.Fprintf(r.w, "\t%s\n", RenderStyle(StyleYellow, caret, r.useColors))
	}
}

// buildCaretIndicator creates the "^" indicator aligned with the
// column. Tabs in the prefix are preserved so alignment survives any
// tab width.
func buildCaretIndicator(sourceLine string, column int) string {
	if column <= 0 {
		return "^"
	}

	prefixLen := column - 1
	if prefixLen > len(sourceLine) {
		prefixLen = len(sourceLine)
	}

	var padding strings.Builder
	for _, ch := range sourceLine[:prefixLen] {
		if ch == '\t' {
			padding.WriteRune('\t')
		} else {
			padding.WriteRune(' ')
		}
	}
	return padding.String() + "^"
}

// PrintSummary outputs the issue count summary.
func (r *Reporter) PrintSummary(result *BuildResult) {
	total := len(result.Issues)

	fmt.Fprintln(r.w, "")
	if result.Errors > 0 && result.Warnings > 0 {
		fmt.Fprintf(r.w, "%s (%s, %s)\n",
			pluralizeCount(total, "issue", "issues"),
			pluralizeCount(result.Errors, "error", "errors"),
			pluralizeCount(result.Warnings, "warning", "warnings"))
	} else {
		fmt.Fprintf(r.w, "%s\n", pluralizeCount(total, "issue", "issues"))
	}

	if total > 0 {
		fmt.Fprintln(r.w, RenderStyle(StyleGray,
			"Hint: Run with --output-format full to see resolution statistics", r.useColors))
	}
}

// PrintStatistics outputs resolution statistics.
func (r *Reporter) PrintStatistics(result *BuildResult) {
	header := func(s string) string { return RenderStyle(StyleCyan, s, r.useColors) }

	fmt.Fprintln(r.w, "")
	fmt.Fprintln(r.w, header("Statistics"))
	fmt.Fprintf(r.w, "  Files scanned:      %d (%d skipped)\n", result.Stats.FilesScanned, result.Stats.FilesSkipped)
	fmt.Fprintf(r.w, "  Classes detected:   %d\n", result.ClassesDetected)
	fmt.Fprintf(r.w, "  Classes resolved:   %d\n", result.ClassesResolved)
	fmt.Fprintf(r.w, "  Classes unknown:    %d\n", result.ClassesUnknown)
	fmt.Fprintf(r.w, "  Variables resolved: %d\n", result.VariablesResolved)
	fmt.Fprintf(r.w, "  Base rules matched: %d\n", result.BaseRulesMatched)
	fmt.Fprintf(r.w, "  Output size:        %d bytes\n", len(result.CSS))

	if result.Written != "" {
		fmt.Fprintln(r.w, "")
		fmt.Fprintln(r.w, RenderStyle(StyleGreen, "✓ Wrote "+result.Written, r.useColors))
	}
}

// pluralizeCount returns a formatted string with count and form.
func pluralizeCount(count int, singular, plural string) string {
	if count == 1 {
		return fmt.Sprintf("%d %s", count, singular)
	}
	return fmt.Sprintf("%d %s", count, plural)
}
