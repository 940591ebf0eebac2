package pretty

import (
	"fmt"
	"strings"

	"github.com/yaklabco/gomdedit/pkg/document"
)

// FormatValidation formats the outcome of validating one file.
func (s *Styles) FormatValidation(path string, result document.Validation) string {
	var builder strings.Builder

	for _, issue := range result.Errors {
		builder.WriteString(s.formatIssue(path, issue, s.Error.Render("error")))
	}
	for _, issue := range result.Warnings {
		builder.WriteString(s.formatIssue(path, issue, s.Warning.Render("warning")))
	}

	builder.WriteString(s.FormatValidationSummary(path, result))
	return builder.String()
}

func (s *Styles) formatIssue(path string, issue document.Issue, severity string) string {
	location := s.FilePath.Render(path)
	if issue.Line > 0 {
		location += s.Location.Render(fmt.Sprintf(":%d", issue.Line))
	}
	return fmt.Sprintf("  %s  %s  %s\n", location, severity, s.Message.Render(issue.Message))
}

// FormatValidationSummary formats a one-line verdict for a file.
func (s *Styles) FormatValidationSummary(path string, result document.Validation) string {
	if !result.Valid {
		return s.Failure.Render("invalid") + " " + s.FilePath.Render(path) +
			s.Dim.Render(fmt.Sprintf(" (%s, %s)",
				pluralize(len(result.Errors), "error", "errors"),
				pluralize(len(result.Warnings), "warning", "warnings"))) + "\n"
	}
	if len(result.Warnings) > 0 {
		return s.Warning.Render("valid") + " " + s.FilePath.Render(path) +
			s.Dim.Render(fmt.Sprintf(" (%s)", pluralize(len(result.Warnings), "warning", "warnings"))) + "\n"
	}
	return s.Success.Render("valid") + " " + s.FilePath.Render(path) + "\n"
}

func pluralize(n int, singular, plural string) string {
	if n == 1 {
		return fmt.Sprintf("%d %s", n, singular)
	}
	return fmt.Sprintf("%d %s", n, plural)
}
