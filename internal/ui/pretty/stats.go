package pretty

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/yaklabco/gomdedit/pkg/document"
)

const summaryDividerWidth = 40

// FormatStats formats document statistics as a titled key/value block.
func (s *Styles) FormatStats(path string, stats document.Stats) string {
	rows := []struct {
		label string
		value int
	}{
		{"Characters", stats.Characters},
		{"Words", stats.Words},
		{"Blocks", stats.Blocks},
		{"Headings", stats.Headings},
		{"Paragraphs", stats.Paragraphs},
		{"Lists", stats.Lists},
		{"List items", stats.ListItems},
		{"Code blocks", stats.CodeBlocks},
		{"Quotes", stats.Quotes},
	}

	labelWidth := 0
	for _, row := range rows {
		labelWidth = max(labelWidth, len(row.label))
	}

	var builder strings.Builder
	builder.WriteString(s.SummaryTitle.Render(path) + "\n")
	builder.WriteString(s.Dim.Render(strings.Repeat("-", summaryDividerWidth)) + "\n")
	for _, row := range rows {
		builder.WriteString(fmt.Sprintf("  %-*s  %s\n",
			labelWidth, row.label, s.SummaryValue.Render(strconv.Itoa(row.value))))
	}
	return builder.String()
}
