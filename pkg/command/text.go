package command

import (
	"fmt"

	"github.com/yaklabco/gomdedit/pkg/mdast"
)

// InsertText inserts Text at Position. The cursor ends after the text.
type InsertText struct {
	Text     string
	Position mdast.Position
}

func (InsertText) command() {}

// Name implements Command.
func (c InsertText) Name() string {
	return fmt.Sprintf("insert %d bytes", len(c.Text))
}

// CanExecute implements Command.
func (c InsertText) CanExecute(svc *Services, st mdast.EditorState) bool {
	_, err := c.Execute(svc, st)
	return err == nil
}

// Execute implements Command.
func (c InsertText) Execute(svc *Services, st mdast.EditorState) (mdast.EditorState, error) {
	content, err := svc.Documents.InsertText(st.Content, c.Text, c.Position)
	if err != nil {
		return mdast.EditorState{}, err
	}
	cursor := mdast.Pos(c.Position.Block, c.Position.Offset+len(c.Text))
	return svc.State.Derive(st, content, mdast.Cursor(cursor))
}

// IsUndoable implements Command.
func (InsertText) IsUndoable() bool { return true }

// CreateUndo deletes the inserted text.
func (c InsertText) CreateUndo(svc *Services, st mdast.EditorState) (Command, error) {
	post, err := c.Execute(svc, st)
	if err != nil {
		return nil, err
	}
	span := mdast.Span(c.Position.Block, c.Position.Offset, c.Position.Offset+len(c.Text))
	return verifiedUndo(svc, DeleteText{Range: span}, st, post), nil
}

// DeleteText removes the text in Range. The cursor ends at the range start.
type DeleteText struct {
	Range mdast.Range
}

func (DeleteText) command() {}

// Name implements Command.
func (c DeleteText) Name() string {
	return "delete " + c.Range.String()
}

// CanExecute implements Command.
func (c DeleteText) CanExecute(svc *Services, st mdast.EditorState) bool {
	_, err := c.Execute(svc, st)
	return err == nil
}

// Execute implements Command.
func (c DeleteText) Execute(svc *Services, st mdast.EditorState) (mdast.EditorState, error) {
	content, err := svc.Documents.DeleteText(st.Content, c.Range)
	if err != nil {
		return mdast.EditorState{}, err
	}
	return svc.State.Derive(st, content, mdast.Cursor(c.Range.Normalized().Start))
}

// IsUndoable implements Command.
func (DeleteText) IsUndoable() bool { return true }

// CreateUndo re-inserts the removed text.
func (c DeleteText) CreateUndo(svc *Services, st mdast.EditorState) (Command, error) {
	removed, err := svc.Documents.TextIn(svc.Documents.Parse(st.Content), c.Range)
	if err != nil {
		return nil, err
	}
	post, err := c.Execute(svc, st)
	if err != nil {
		return nil, err
	}
	return verifiedUndo(svc, InsertText{Text: removed, Position: c.Range.Normalized().Start}, st, post), nil
}
