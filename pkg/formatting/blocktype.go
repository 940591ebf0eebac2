package formatting

import (
	"strings"

	"github.com/yaklabco/gomdedit/pkg/document"
	"github.com/yaklabco/gomdedit/pkg/editerr"
	"github.com/yaklabco/gomdedit/pkg/mdast"
)

// SetBlockType converts the block containing pos to type t and returns the
// new state with the cursor at the same text.
//
// Choosing a list's own type again turns the whole list back into
// paragraph text, one line per item. Choosing a non-list type converts only
// the item at pos, and switching between list kinds converts the whole
// list. Any other block converts as a whole, and choosing its current type
// is a no-op.
func (s *Service) SetBlockType(t mdast.BlockType, pos mdast.Position, st mdast.EditorState) (mdast.EditorState, error) {
	if !t.IsValid() {
		return mdast.EditorState{}, editerr.Unsupported("invalid block type %s", t)
	}

	doc := s.docs.Parse(st.Content)
	if err := s.docs.ValidatePosition(doc, pos); err != nil {
		return mdast.EditorState{}, err
	}
	block := doc.Block(pos.Block)
	current := block.Type()

	var (
		replaced   mdast.SourceRange
		rendered   document.Rendered
		line       int
		lineOffset int
	)

	switch {
	case block.Kind == mdast.NodeList && t == current:
		return s.unlist(block, pos, st)

	case block.Kind == mdast.NodeList && !t.IsList():
		item, rel := block.ItemAt(pos.Offset)
		text := block.Items[item].Text
		replaced = block.Lines[item]
		rendered = s.docs.Render(t, []string{text}, s.language(t, text))
		lineOffset = rel

	case t == current:
		return s.Recompute(st), nil

	default:
		lines := document.BlockLines(block)
		replaced = block.Span
		rendered = s.docs.Render(t, lines, s.language(t, strings.Join(lines, "\n")))
		line, lineOffset = lineAt(lines, pos.Offset)
	}

	raw := replaced.StartOffset + min(rendered.LineStarts[line]+lineOffset, len(rendered.Text))
	next := document.ReplaceSpan(st.Content, replaced, rendered.Text)
	cursor := s.docs.PositionAt(s.docs.Parse(next), raw)
	return s.Derive(st, next, mdast.Cursor(cursor))
}

// unlist turns every item of a list into a paragraph line, keeping each
// item's indentation. Items holding only whitespace are dropped; a list of
// nothing but empty items leaves the target item's indentation as an empty
// paragraph.
func (s *Service) unlist(block *mdast.Block, pos mdast.Position, st mdast.EditorState) (mdast.EditorState, error) {
	target, rel := block.ItemAt(pos.Offset)

	var (
		lines        []string
		cursor       int
		length       int
		targetIndent string
	)
	for i, item := range block.Items {
		lineRange := block.Lines[i]
		rawLine := st.Content[lineRange.StartOffset:lineRange.EndOffset]
		indent := rawLine[:len(rawLine)-len(strings.TrimLeft(rawLine, " \t"))]
		empty := strings.TrimSpace(item.Text) == ""

		if i == target {
			targetIndent = indent
			cursor = length
			if !empty {
				cursor += len(indent) + rel
			}
		}
		if empty {
			continue
		}
		line := indent + item.Text
		lines = append(lines, line)
		length += len(line) + 1
	}

	if len(lines) == 0 {
		lines = []string{targetIndent}
		cursor = len(targetIndent)
	}
	text := strings.Join(lines, "\n")
	raw := block.Span.StartOffset + min(cursor, len(text))

	next := document.ReplaceSpan(st.Content, block.Span, text)
	at := s.docs.PositionAt(s.docs.Parse(next), raw)
	return s.Derive(st, next, mdast.Cursor(at))
}

func (s *Service) language(t mdast.BlockType, content string) string {
	if t.Kind != mdast.TypeCodeBlock || s.detect == nil {
		return ""
	}
	return s.detect(content)
}

// lineAt finds the line holding a text offset within lines joined by "\n".
func lineAt(lines []string, offset int) (int, int) {
	start := 0
	for i, line := range lines {
		if offset <= start+len(line) {
			return i, offset - start
		}
		start += len(line) + 1
	}
	last := len(lines) - 1
	return last, len(lines[last])
}
