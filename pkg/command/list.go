package command

import (
	"strconv"
	"strings"

	"github.com/yaklabco/gomdedit/pkg/editerr"
	"github.com/yaklabco/gomdedit/pkg/fix"
	"github.com/yaklabco/gomdedit/pkg/mdast"
)

// SmartEnter applies list-aware Enter at Position:
//
//   - an empty last item leaves the list: the item is removed and the
//     cursor moves to the paragraph after the list
//   - any other item is split at the cursor into a new item after it,
//     renumbering the items that follow in ordered lists
//
// Outside lists SmartEnter is not engaged.
type SmartEnter struct {
	Position mdast.Position
}

func (SmartEnter) command() {}

// Name implements Command.
func (SmartEnter) Name() string { return "smart enter" }

// CanExecute implements Command.
func (c SmartEnter) CanExecute(svc *Services, st mdast.EditorState) bool {
	_, err := listBlockAt(svc, st, c.Position)
	return err == nil
}

// Execute implements Command.
func (c SmartEnter) Execute(svc *Services, st mdast.EditorState) (mdast.EditorState, error) {
	doc, err := listBlockAt(svc, st, c.Position)
	if err != nil {
		return mdast.EditorState{}, err
	}
	block := doc.Block(c.Position.Block)
	item, rel := block.ItemAt(c.Position.Offset)

	if isEmptyItem(block.Items[item].Text) && item == len(block.Items)-1 {
		content, cursor := exitList(svc, st.Content, block, c.Position.Block)
		return svc.State.Derive(st, content, mdast.Cursor(cursor))
	}

	line := block.Lines[item]
	contentStart := block.Segments[item].RawStart
	prefix := st.Content[line.StartOffset:contentStart]
	split := contentStart + rel

	edits := fix.NewEditBuilder()
	if block.IsOrdered() {
		prefix = withNumber(prefix, block.Items[item].Number+1)
		renumber(edits, st.Content, block, item+1, 1)
	}
	moved := strings.TrimLeft(st.Content[split:line.EndOffset], " \t")
	edits.ReplaceRange(split, line.EndOffset, "\n"+prefix+moved)

	content, _, err := edits.Apply(st.Content)
	if err != nil {
		return mdast.EditorState{}, editerr.Unsupported("split list item: %v", err)
	}
	cursor := mdast.Pos(c.Position.Block, block.ItemStart(item)+rel+1)
	return svc.State.Derive(st, content, mdast.Cursor(cursor))
}

// IsUndoable implements Command.
func (SmartEnter) IsUndoable() bool { return true }

// CreateUndo restores the pre-execution snapshot.
func (c SmartEnter) CreateUndo(svc *Services, st mdast.EditorState) (Command, error) {
	if _, err := c.Execute(svc, st); err != nil {
		return nil, err
	}
	return Restore{Content: st.Content, Selection: st.Selection}, nil
}

// exitList removes the empty last item of the list at index. At the end of
// the document the cursor lands on a trailing empty paragraph; otherwise it
// lands on the start of the block after the list.
func exitList(svc *Services, content string, block *mdast.Block, index int) (string, mdast.Position) {
	last := len(block.Items) - 1
	line := block.Lines[last]
	rest := content[line.EndOffset:]

	keep := block.Span.StartOffset
	next := index
	if last > 0 {
		keep = block.Lines[last-1].EndOffset
		next = index + 1
	}

	if strings.TrimSpace(rest) != "" {
		if last == 0 {
			rest = strings.TrimLeft(rest, " \t\r\n")
		}
		return content[:keep] + rest, mdast.Pos(next, 0)
	}

	out := strings.TrimRight(content[:keep], " \t\r\n")
	if out != "" {
		out += "\n\n"
	}
	return out, mdast.Pos(svc.Documents.Parse(out).Len()-1, 0)
}

// SmartBackspace applies list-aware Backspace at offset 0 of an empty list
// item. The only item of a list turns into an empty paragraph. An empty
// first item followed by others is dropped with the cursor at the start of
// the next item; any other item is deleted and the cursor moves to the end
// of the previous item. Elsewhere SmartBackspace is not engaged.
type SmartBackspace struct {
	Position mdast.Position
}

func (SmartBackspace) command() {}

// Name implements Command.
func (SmartBackspace) Name() string { return "smart backspace" }

// CanExecute implements Command.
func (c SmartBackspace) CanExecute(svc *Services, st mdast.EditorState) bool {
	_, err := c.target(svc, st)
	return err == nil
}

// Execute implements Command.
func (c SmartBackspace) Execute(svc *Services, st mdast.EditorState) (mdast.EditorState, error) {
	block, err := c.target(svc, st)
	if err != nil {
		return mdast.EditorState{}, err
	}
	item, _ := block.ItemAt(c.Position.Offset)
	if len(block.Items) == 1 {
		return svc.Formatting.SetBlockType(block.Type(), c.Position, st)
	}

	edits := fix.NewEditBuilder()
	cursor := mdast.Pos(c.Position.Block, 0)
	if item == 0 {
		// An empty paragraph cannot precede a list without merging into
		// it, so the leading item is dropped and the list stays.
		edits.Delete(block.Lines[0].StartOffset, block.Lines[1].StartOffset)
	} else {
		edits.Delete(block.Lines[item-1].EndOffset, block.Lines[item].EndOffset)
		cursor.Offset = block.ItemStart(item-1) + len(block.Items[item-1].Text)
	}
	if block.IsOrdered() {
		renumber(edits, st.Content, block, item+1, -1)
	}
	content, _, err := edits.Apply(st.Content)
	if err != nil {
		return mdast.EditorState{}, editerr.Unsupported("remove list item: %v", err)
	}
	return svc.State.Derive(st, content, mdast.Cursor(cursor))
}

// IsUndoable implements Command.
func (SmartBackspace) IsUndoable() bool { return true }

// CreateUndo restores the pre-execution snapshot.
func (c SmartBackspace) CreateUndo(svc *Services, st mdast.EditorState) (Command, error) {
	if _, err := c.Execute(svc, st); err != nil {
		return nil, err
	}
	return Restore{Content: st.Content, Selection: st.Selection}, nil
}

func (c SmartBackspace) target(svc *Services, st mdast.EditorState) (*mdast.Block, error) {
	doc, err := listBlockAt(svc, st, c.Position)
	if err != nil {
		return nil, err
	}
	block := doc.Block(c.Position.Block)
	item, rel := block.ItemAt(c.Position.Offset)
	if rel != 0 || !isEmptyItem(block.Items[item].Text) {
		return nil, editerr.Unsupported("smart backspace needs the start of an empty list item")
	}
	return block, nil
}

// listBlockAt parses st and checks that pos lies in a list.
func listBlockAt(svc *Services, st mdast.EditorState, pos mdast.Position) (*mdast.Document, error) {
	doc := svc.Documents.Parse(st.Content)
	if err := svc.Documents.ValidatePosition(doc, pos); err != nil {
		return nil, err
	}
	if block := doc.Block(pos.Block); block.Kind != mdast.NodeList {
		return nil, editerr.Unsupported("smart list editing is not available in %s blocks", block.Type())
	}
	return doc, nil
}

// isEmptyItem reports whether an item holds no text besides whitespace.
func isEmptyItem(text string) bool {
	return strings.TrimSpace(text) == ""
}

// renumber shifts the numbers of ordered items from index on by delta.
func renumber(edits *fix.EditBuilder, content string, block *mdast.Block, from, delta int) {
	for idx := from; idx < len(block.Items); idx++ {
		line := block.Lines[idx]
		prefix := content[line.StartOffset:block.Segments[idx].RawStart]
		edits.ReplaceRange(line.StartOffset, block.Segments[idx].RawStart,
			withNumber(prefix, block.Items[idx].Number+delta))
	}
}

// withNumber replaces the number of an ordered item prefix such as "2. ".
func withNumber(prefix string, number int) string {
	indent := len(prefix) - len(strings.TrimLeft(prefix, " \t"))
	rest := prefix[indent:]
	digits := len(rest) - len(strings.TrimLeft(rest, "0123456789"))
	return prefix[:indent] + strconv.Itoa(min(number, mdast.MaxListNumber)) + rest[digits:]
}
