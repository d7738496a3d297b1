package cssprune

import (
	"encoding/json"
	"io"
	"time"
)

// JSONOutput is the structured JSON export schema.
type JSONOutput struct {
	Version   string      `json:"version"`
	Timestamp string      `json:"timestamp"`
	Summary   JSONSummary `json:"summary"`
	Stats     JSONStats   `json:"stats"`
	Issues    []JSONIssue `json:"issues"`
}

// JSONSummary contains high-level issue counts.
type JSONSummary struct {
	TotalIssues  int `json:"total_issues"`
	Errors       int `json:"errors"`
	Warnings     int `json:"warnings"`
	FilesScanned int `json:"files_scanned"`
}

// JSONStats contains resolution statistics.
type JSONStats struct {
	ClassesDetected   int `json:"classes_detected"`
	ClassesResolved   int `json:"classes_resolved"`
	ClassesUnknown    int `json:"classes_unknown"`
	VariablesResolved int `json:"variables_resolved"`
	BaseRulesMatched  int `json:"base_rules_matched"`
	OutputBytes       int `json:"output_bytes"`
}

// JSONIssue is a single diagnostic.
type JSONIssue struct {
	File       string `json:"file,omitempty"`
	Line       int    `json:"line,omitempty"`
	Column     int    `json:"column,omitempty"`
	Severity   string `json:"severity"`
	Message    string `json:"message"`
	Suggestion string `json:"suggestion,omitempty"`
	ClassName  string `json:"class_name,omitempty"`
	Source     string `json:"source,omitempty"`
}

// WriteJSON writes the build result as indented JSON.
func WriteJSON(w io.Writer, result *BuildResult) error {
	encoder := json.NewEncoder(w)
	encoder.SetIndent("", "  ")
	return encoder.Encode(buildJSONOutput(result))
}

func buildJSONOutput(result *BuildResult) JSONOutput {
	jsonIssues := make([]JSONIssue, len(result.Issues))
	for i, issue := range result.Issues {
		source := ""
		if len(issue.SourceLines) > 0 {
			source = issue.SourceLines[0]
		}
		jsonIssues[i] = JSONIssue{
			File:       issue.Pos.Filename,
			Line:       issue.Pos.Line,
			Column:     issue.Pos.Column,
			Severity:   issue.Severity,
			Message:    issue.Text,
			Suggestion: issue.Suggestion,
			ClassName:  issue.ClassName,
			Source:     source,
		}
	}

	return JSONOutput{
		Version:   "1.0",
		Timestamp: time.Now().Format(time.RFC3339),
		Summary: JSONSummary{
			TotalIssues:  len(result.Issues),
			Errors:       result.Errors,
			Warnings:     result.Warnings,
			FilesScanned: result.Stats.FilesScanned,
		},
		Stats: JSONStats{
			ClassesDetected:   result.ClassesDetected,
			ClassesResolved:   result.ClassesResolved,
			ClassesUnknown:    result.ClassesUnknown,
			VariablesResolved: result.VariablesResolved,
			BaseRulesMatched:  result.BaseRulesMatched,
			OutputBytes:       len(result.CSS),
		},
		Issues: jsonIssues,
	}
}
