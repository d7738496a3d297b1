package cssprune

import (
	"io"
)

// OutputFormat selects how build results are rendered.
type OutputFormat string

// Output formats.
const (
	OutputIssues  OutputFormat = "issues"
	OutputSummary OutputFormat = "summary"
	OutputFull    OutputFormat = "full"
	OutputJSON    OutputFormat = "json"
)

// DetermineOutputFormat selects the output format based on flags.
// Issues-only is the default: clean, fast, consistent everywhere.
func DetermineOutputFormat(formatFlag string, quiet bool) OutputFormat {
	if quiet {
		return OutputIssues // suppressed by the caller, exit code only
	}
	switch formatFlag {
	case "issues":
		return OutputIssues
	case "summary":
		return OutputSummary
	case "full":
		return OutputFull
	case "json":
		return OutputJSON
	default:
		return OutputIssues
	}
}

// WriteOutput writes the build result in the specified format.
func WriteOutput(w io.Writer, result *BuildResult, format OutputFormat, config Config) {
	switch format {
	case OutputSummary:
		reporter := NewReporter(w, config)
		reporter.PrintStatistics(result)

	case OutputFull:
		reporter := NewReporter(w, config)
		reporter.PrintIssues(result.Issues)
		reporter.PrintSummary(result)
		reporter.PrintStatistics(result)

	case OutputJSON:
		// Encoding failure is reported through the writer's own error
		// path; nothing useful to print here.
		_ = WriteJSON(w, result)

	default:
		reporter := NewReporter(w, config)
		reporter.PrintIssues(result.Issues)
		reporter.PrintSummary(result)
	}
}
