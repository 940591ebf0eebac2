package pretty

import (
	"fmt"
	"strings"

	"github.com/yaklabco/gomdedit/pkg/fix"
)

// FormatDiff renders a unified diff in git style. A nil diff renders as "".
func (s *Styles) FormatDiff(diff *fix.Diff) string {
	if diff == nil || !diff.HasChanges() {
		return ""
	}

	var builder strings.Builder
	name := strings.TrimPrefix(diff.Name, "/")
	if name == "" {
		name = "document"
	}

	builder.WriteString(s.DiffHeader.Render(fmt.Sprintf("diff --git a/%s b/%s", name, name)) + "\n")
	builder.WriteString(s.DiffRemove.Render("--- a/"+name) + "\n")
	builder.WriteString(s.DiffAdd.Render("+++ b/"+name) + "\n")

	for _, hunk := range diff.Hunks {
		header := fmt.Sprintf("@@ -%d,%d +%d,%d @@",
			hunk.OriginalStart, hunk.OriginalCount, hunk.ModifiedStart, hunk.ModifiedCount)
		builder.WriteString(s.DiffHunk.Render(header) + "\n")
		for _, line := range hunk.Lines {
			builder.WriteString(s.formatDiffLine(line) + "\n")
		}
	}

	return builder.String()
}

func (s *Styles) formatDiffLine(line fix.DiffLine) string {
	switch line.Kind {
	case fix.DiffLineAdd:
		return s.DiffAdd.Render("+" + line.Content)
	case fix.DiffLineRemove:
		return s.DiffRemove.Render("-" + line.Content)
	default:
		return s.DiffContext.Render(" " + line.Content)
	}
}

// FormatDiffSummary formats "N insertions(+), M deletions(-)".
func (s *Styles) FormatDiffSummary(diff *fix.Diff) string {
	if diff == nil || !diff.HasChanges() {
		return s.Success.Render("already formatted") + "\n"
	}

	var parts []string
	if diff.Additions > 0 {
		parts = append(parts, s.DiffAdd.Render(pluralize(diff.Additions, "insertion(+)", "insertions(+)")))
	}
	if diff.Deletions > 0 {
		parts = append(parts, s.DiffRemove.Render(pluralize(diff.Deletions, "deletion(-)", "deletions(-)")))
	}
	return strings.Join(parts, ", ") + "\n"
}
