package pretty

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/rivo/uniseg"

	"github.com/yaklabco/gomdedit/pkg/mdast"
)

// Table formatting constants.
const (
	tablePadding    = 2
	minPreviewWidth = 20
	heavySeparator  = "="
	ellipsis        = "..."
)

// BlockRow is one row of the block table.
type BlockRow struct {
	Index   int
	Type    string
	Lines   string
	Preview string
}

// BlockRows builds table rows for every block of doc. Line ranges are
// 1-based and come from the parsed source.
func BlockRows(doc *mdast.Document) []BlockRow {
	rows := make([]BlockRow, 0, doc.Len())
	for i := range doc.Blocks {
		block := &doc.Blocks[i]
		row := BlockRow{
			Index:   i,
			Type:    block.Type().String(),
			Preview: strings.ReplaceAll(block.PlainText(), "\n", " / "),
		}
		if block.Type().Kind == mdast.TypeCodeBlock && block.Language != "" {
			row.Type += " (" + block.Language + ")"
		}
		if len(block.Lines) > 0 && len(doc.Lines) > 0 {
			first := doc.LineAt(block.Lines[0].StartOffset) + 1
			last := doc.LineAt(block.Lines[len(block.Lines)-1].StartOffset) + 1
			row.Lines = strconv.Itoa(first)
			if last != first {
				row.Lines += "-" + strconv.Itoa(last)
			}
		}
		rows = append(rows, row)
	}
	return rows
}

// TableFormatter formats block rows as an aligned table.
type TableFormatter struct {
	styles    *Styles
	termWidth int
}

// NewTableFormatter creates a new table formatter.
func NewTableFormatter(styles *Styles, termWidth int) *TableFormatter {
	if termWidth <= 0 {
		termWidth = defaultTermWidth
	}
	return &TableFormatter{styles: styles, termWidth: termWidth}
}

// FormatBlocks formats rows with columns #, TYPE, LINES and TEXT. The text
// column is truncated to fit the terminal width.
func (t *TableFormatter) FormatBlocks(rows []BlockRow) string {
	headers := [3]string{"#", "TYPE", "LINES"}
	widths := [3]int{len(headers[0]), len(headers[1]), len(headers[2])}
	for _, row := range rows {
		widths[0] = max(widths[0], len(strconv.Itoa(row.Index)))
		widths[1] = max(widths[1], len(row.Type))
		widths[2] = max(widths[2], len(row.Lines))
	}
	fixed := widths[0] + widths[1] + widths[2] + 3*tablePadding
	previewWidth := max(minPreviewWidth, t.termWidth-fixed)

	var builder strings.Builder
	header := fmt.Sprintf("%-*s  %-*s  %-*s  %s",
		widths[0], headers[0], widths[1], headers[1], widths[2], headers[2], "TEXT")
	builder.WriteString(t.styles.TableHeader.Render(header) + "\n")
	builder.WriteString(t.styles.TableSeparator.Render(strings.Repeat(heavySeparator, fixed+len("TEXT"))) + "\n")

	for _, row := range rows {
		builder.WriteString(fmt.Sprintf("%-*d  %s  %-*s  %s\n",
			widths[0], row.Index,
			t.styles.BlockType.Render(fmt.Sprintf("%-*s", widths[1], row.Type)),
			widths[2], row.Lines,
			t.styles.Preview.Render(truncateString(row.Preview, previewWidth)),
		))
	}

	return builder.String()
}

// truncateString truncates a string to maxWidth user-perceived characters,
// adding "..." if truncated.
func truncateString(str string, maxWidth int) string {
	if uniseg.GraphemeClusterCount(str) <= maxWidth {
		return str
	}
	limit := maxWidth - len(ellipsis)
	if maxWidth <= len(ellipsis) {
		limit = maxWidth
	}

	var builder strings.Builder
	graphemes := uniseg.NewGraphemes(str)
	for count := 0; count < limit && graphemes.Next(); count++ {
		builder.WriteString(graphemes.Str())
	}
	if maxWidth > len(ellipsis) {
		builder.WriteString(ellipsis)
	}
	return builder.String()
}
