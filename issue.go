package cssprune

import (
	"sort"

	"github.com/yacobolo/cssprune/internal/csslang"
)

// Issue is a single build diagnostic in golangci-lint format.
type Issue struct {
	FromLinter  string   `json:"FromLinter"` // "cssprune"
	Text        string   `json:"Text"`       // "unknown CSS property \"dipslay\""
	Severity    string   `json:"Severity"`   // "warning", "error"
	Suggestion  string   `json:"Suggestion,omitempty"`
	ClassName   string   `json:"ClassName,omitempty"`
	SourceLines []string `json:"SourceLines"` // Lines of code with the issue
	Pos         IssuePos `json:"Pos"`         // File location
}

// IssuePos specifies the exact location of an issue.
type IssuePos struct {
	Filename string `json:"Filename"`
	Line     int    `json:"Line"`
	Column   int    `json:"Column"` // 1-based, exact start of the class name
}

// Issue severity constants.
const (
	SeverityError   = "error"
	SeverityWarning = "warning"
)

const linterName = "cssprune"

// issuesFromDiagnostics converts resolver diagnostics into issues,
// attaching every known source location of the offending class name. A
// diagnostic with no recorded location (explicit names from config,
// variable warnings) becomes a single position-less issue.
func issuesFromDiagnostics(diags []csslang.Diagnostic, locations map[string][]FileLocation) []Issue {
	var issues []Issue
	for _, d := range diags {
		text := d.Message
		base := Issue{
			FromLinter: linterName,
			Text:       text,
			Severity:   string(d.Level),
			Suggestion: d.Suggestion,
			ClassName:  d.ClassName,
		}

		locs := locations[d.ClassName]
		if len(locs) == 0 {
			issues = append(issues, base)
			continue
		}
		for _, loc := range locs {
			issue := base
			issue.Pos = IssuePos{Filename: loc.File, Line: loc.Line, Column: loc.Column}
			if loc.Text != "" {
				issue.SourceLines = []string{loc.Text}
			}
			issues = append(issues, issue)
		}
	}

	sortIssues(issues)
	return issues
}

// sortIssues orders issues by file, line, column, then message.
func sortIssues(issues []Issue) {
	sort.Slice(issues, func(i, j int) bool {
		a, b := issues[i], issues[j]
		if a.Pos.Filename != b.Pos.Filename {
			return a.Pos.Filename < b.Pos.Filename
		}
		if a.Pos.Line != b.Pos.Line {
			return a.Pos.Line < b.Pos.Line
		}
		if a.Pos.Column != b.Pos.Column {
			return a.Pos.Column < b.Pos.Column
		}
		return a.Text < b.Text
	})
}

// countBySeverity tallies errors and warnings.
func countBySeverity(issues []Issue) (errors, warnings int) {
	for _, issue := range issues {
		switch issue.Severity {
		case SeverityError:
			errors++
		case SeverityWarning:
			warnings++
		}
	}
	return errors, warnings
}
