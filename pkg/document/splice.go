package document

import (
	"slices"
	"strings"

	"github.com/yaklabco/gomdedit/pkg/editerr"
	"github.com/yaklabco/gomdedit/pkg/fix"
	"github.com/yaklabco/gomdedit/pkg/mdast"
)

// InsertText inserts text at a position and returns the new content.
// Newlines inserted into a quote continue the quote. Lists and headings
// reject free text: their line structure is owned by the list and
// block-type commands. An insertion that would change the block structure
// is refused so that DeleteText can always undo it.
func (s *Service) InsertText(content, text string, at mdast.Position) (string, error) {
	doc := Parse(content)
	if err := s.ValidatePosition(doc, at); err != nil {
		return "", err
	}
	block := doc.Block(at.Block)
	if err := checkEditable(block); err != nil {
		return "", err
	}
	if text == "" {
		return content, nil
	}

	raw := rawOffset(block, at.Offset)
	insert := text
	switch {
	case block.Kind == mdast.NodeQuote:
		insert = strings.ReplaceAll(text, "\n", "\n> ")
	case block.Kind == mdast.NodeCodeBlock && len(block.Segments) == 0:
		insert = text + "\n"
	}

	out := fix.ApplyEdits(content, []fix.TextEdit{{StartOffset: raw, EndOffset: raw, NewText: insert}})
	old := block.PlainText()
	if !editPreserved(doc, Parse(out), at.Block, old[:at.Offset]+text+old[at.Offset:]) {
		return "", editerr.Unsupported("inserting %q would change the block structure", text)
	}
	return out, nil
}

// DeleteText removes the text covered by r and returns the new content.
// The range must lie within a single block. Deleting all of a code block's
// content leaves a bare fence.
func (s *Service) DeleteText(content string, r mdast.Range) (string, error) {
	r = r.Normalized()
	if r.IsMultiBlock() {
		return "", editerr.MultiBlockNotSupported("delete across blocks %d..%d", r.Start.Block, r.End.Block)
	}

	doc := Parse(content)
	if err := s.ValidateRange(doc, r); err != nil {
		return "", err
	}
	block := doc.Block(r.Start.Block)
	if err := checkEditable(block); err != nil {
		return "", err
	}
	if r.IsCursor() {
		return content, nil
	}

	start := rawOffset(block, r.Start.Offset)
	end := rawOffset(block, r.End.Offset)
	if block.Kind == mdast.NodeCodeBlock && r.Start.Offset == 0 && r.End.Offset == len(block.Content) {
		// Emptying a fence removes its content lines, leaving the bare
		// fence that InsertText grows from.
		end = block.Lines[len(block.Lines)-1].StartOffset
	}
	out := fix.ApplyEdits(content, []fix.TextEdit{{StartOffset: start, EndOffset: end}})
	old := block.PlainText()
	if !editPreserved(doc, Parse(out), r.Start.Block, old[:r.Start.Offset]+old[r.End.Offset:]) {
		return "", editerr.Unsupported("deleting %s would change the block structure", r)
	}
	return out, nil
}

// TextIn returns the block text covered by a single-block range.
func (s *Service) TextIn(doc *mdast.Document, r mdast.Range) (string, error) {
	r = r.Normalized()
	if r.IsMultiBlock() {
		return "", editerr.MultiBlockNotSupported("text across blocks %d..%d", r.Start.Block, r.End.Block)
	}
	if err := s.ValidateRange(doc, r); err != nil {
		return "", err
	}
	return doc.Block(r.Start.Block).PlainText()[r.Start.Offset:r.End.Offset], nil
}

// ReplaceBlock re-renders the whole block at index as type t, keeping its
// text, and returns the new content.
func (s *Service) ReplaceBlock(content string, index int, t mdast.BlockType, language string) (string, error) {
	doc := Parse(content)
	block := doc.Block(index)
	if block == nil {
		return "", editerr.InvalidPosition("block %d out of range (document has %d blocks)", index, doc.Len())
	}
	if !t.IsValid() {
		return "", editerr.Unsupported("invalid block type %s", t)
	}

	rendered := s.Render(t, BlockLines(block), language)
	return ReplaceSpan(content, block.Span, rendered.Text), nil
}

// ReplaceSpan replaces a raw byte range of content.
func ReplaceSpan(content string, span mdast.SourceRange, text string) string {
	return content[:span.StartOffset] + text + content[span.EndOffset:]
}

func checkEditable(block *mdast.Block) error {
	switch block.Kind {
	case mdast.NodeList:
		return editerr.Unsupported("free text editing is not available in list blocks")
	case mdast.NodeHeading:
		return editerr.Unsupported("free text editing is not available in heading blocks")
	default:
		return nil
	}
}

// editPreserved reports whether an edit kept the block kinds in order and
// left the edited block holding exactly the expected text.
func editPreserved(before, after *mdast.Document, index int, expected string) bool {
	if !slices.Equal(before.Kinds(), after.Kinds()) {
		return false
	}
	return after.Block(index).PlainText() == expected
}
