package document

import (
	"strconv"
	"strings"

	"github.com/yaklabco/gomdedit/pkg/mdast"
)

// DefaultBulletMarker is the marker used for generated unordered lists.
const DefaultBulletMarker = "-"

// blockSeparator joins generated blocks.
const blockSeparator = "\n\n"

// Generate renders a document to canonical markdown. Blocks are joined by
// one blank line. Parsing the output reproduces the same block types and
// plain text for any document that Parse produced.
func (s *Service) Generate(doc *mdast.Document) string {
	if doc == nil {
		return ""
	}
	parts := make([]string, len(doc.Blocks))
	for i := range doc.Blocks {
		parts[i] = s.generateBlock(&doc.Blocks[i])
	}
	return strings.Join(parts, blockSeparator)
}

func (s *Service) generateBlock(block *mdast.Block) string {
	switch block.Kind {
	case mdast.NodeHeading:
		return s.Render(block.Type(), []string{block.Text}, "").Text
	case mdast.NodeList:
		lines := make([]string, len(block.Items))
		for i, item := range block.Items {
			lines[i] = item.Text
		}
		start := 1
		if block.List != nil && block.List.Ordered {
			start = block.List.Start
		}
		return s.renderList(block.Type(), lines, start).Text
	case mdast.NodeCodeBlock:
		return s.Render(mdast.CodeBlock(), strings.Split(block.Content, "\n"), block.Language).Text
	case mdast.NodeQuote:
		return s.Render(mdast.Quote(), strings.Split(block.Text, "\n"), "").Text
	default:
		return block.Text
	}
}

// Rendered is the markdown for one block together with where each source
// line's text landed in it.
type Rendered struct {
	Text string

	// LineStarts holds, for every input line, the offset in Text where the
	// line's text begins.
	LineStarts []int
}

// Render produces the markdown for a block of type t holding the given
// logical lines. Headings join their lines with spaces. Language applies to
// code blocks only.
func (s *Service) Render(t mdast.BlockType, lines []string, language string) Rendered {
	if len(lines) == 0 {
		lines = []string{""}
	}

	switch t.Kind {
	case mdast.TypeHeading:
		prefix := strings.Repeat("#", t.Level) + " "
		var out Rendered
		var texts []string
		offset := len(prefix)
		for _, line := range lines {
			trimmed := strings.TrimSpace(line)
			out.LineStarts = append(out.LineStarts, offset)
			if trimmed == "" {
				continue
			}
			texts = append(texts, trimmed)
			offset += len(trimmed) + 1
		}
		out.Text = prefix + strings.Join(texts, " ")
		return out

	case mdast.TypeCodeBlock:
		opening := "```" + language + "\n"
		out := Rendered{LineStarts: lineStarts(lines, len(opening), 0)}
		out.Text = opening + strings.Join(lines, "\n") + "\n```"
		return out

	case mdast.TypeQuote:
		return prefixLines(lines, func(int) string { return "> " })

	case mdast.TypeUnorderedList, mdast.TypeOrderedList:
		return s.renderList(t, lines, 1)

	default:
		return Rendered{
			Text:       strings.Join(lines, "\n"),
			LineStarts: lineStarts(lines, 0, 0),
		}
	}
}

func (s *Service) renderList(t mdast.BlockType, lines []string, start int) Rendered {
	if t.Kind == mdast.TypeOrderedList {
		return prefixLines(lines, func(i int) string { return strconv.Itoa(min(start+i, mdast.MaxListNumber)) + ". " })
	}
	return prefixLines(lines, func(int) string { return s.bulletMarker + " " })
}

func prefixLines(lines []string, prefix func(i int) string) Rendered {
	var out Rendered
	var sb strings.Builder
	for i, line := range lines {
		if i > 0 {
			sb.WriteByte('\n')
		}
		p := prefix(i)
		sb.WriteString(p)
		out.LineStarts = append(out.LineStarts, sb.Len())
		sb.WriteString(line)
	}
	out.Text = sb.String()
	return out
}

func lineStarts(lines []string, base, prefixLen int) []int {
	starts := make([]int, len(lines))
	offset := base
	for i, line := range lines {
		starts[i] = offset + prefixLen
		offset += prefixLen + len(line) + 1
	}
	return starts
}

// BlockLines returns the logical text lines of a block: list items,
// paragraph or quote lines, the heading text or code content lines.
func BlockLines(block *mdast.Block) []string {
	switch block.Kind {
	case mdast.NodeList:
		lines := make([]string, len(block.Items))
		for i, item := range block.Items {
			lines[i] = item.Text
		}
		return lines
	case mdast.NodeCodeBlock:
		return strings.Split(block.Content, "\n")
	default:
		return strings.Split(block.Text, "\n")
	}
}
