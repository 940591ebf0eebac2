package command

import (
	"fmt"

	"github.com/yaklabco/gomdedit/pkg/formatting"
	"github.com/yaklabco/gomdedit/pkg/mdast"
)

// SetBlockType converts the block at Position to Type.
type SetBlockType struct {
	Type     mdast.BlockType
	Position mdast.Position
}

func (SetBlockType) command() {}

// Name implements Command.
func (c SetBlockType) Name() string {
	return "set block type " + c.Type.String()
}

// CanExecute implements Command.
func (c SetBlockType) CanExecute(svc *Services, st mdast.EditorState) bool {
	return svc.Formatting.CanSetBlockType(c.Type, c.Position, st)
}

// Execute implements Command.
func (c SetBlockType) Execute(svc *Services, st mdast.EditorState) (mdast.EditorState, error) {
	return svc.Formatting.SetBlockType(c.Type, c.Position, st)
}

// IsUndoable implements Command.
func (SetBlockType) IsUndoable() bool { return true }

// CreateUndo converts back to the original type at the cursor left by
// Execute. Conversions without a structural inverse, such as dropping an
// empty list item, are undone by restoring the snapshot.
func (c SetBlockType) CreateUndo(svc *Services, st mdast.EditorState) (Command, error) {
	original, err := svc.Formatting.BlockTypeAt(c.Position, st)
	if err != nil {
		return nil, err
	}
	post, err := c.Execute(svc, st)
	if err != nil {
		return nil, err
	}
	return verifiedUndo(svc, SetBlockType{Type: original, Position: post.Cursor()}, st, post), nil
}

// ApplyFormatting changes the inline formatting of Range.
type ApplyFormatting struct {
	Formatting mdast.InlineFormatting
	Range      mdast.Range
	Operation  formatting.Operation
}

func (ApplyFormatting) command() {}

// Name implements Command.
func (c ApplyFormatting) Name() string {
	return fmt.Sprintf("%s %s", c.Operation, c.Formatting)
}

// CanExecute implements Command.
func (c ApplyFormatting) CanExecute(svc *Services, st mdast.EditorState) bool {
	_, err := c.Execute(svc, st)
	return err == nil
}

// Execute implements Command.
func (c ApplyFormatting) Execute(svc *Services, st mdast.EditorState) (mdast.EditorState, error) {
	return svc.Formatting.ApplyInlineFormatting(c.Formatting, c.Range, st, c.Operation)
}

// IsUndoable implements Command.
func (ApplyFormatting) IsUndoable() bool { return true }

// CreateUndo sets the formatting the range carried before Execute over the
// selection Execute leaves behind. A cursor only changes the typing hint,
// so its inverse restores the previous hint.
func (c ApplyFormatting) CreateUndo(svc *Services, st mdast.EditorState) (Command, error) {
	post, err := c.Execute(svc, st)
	if err != nil {
		return nil, err
	}

	if c.Range.IsCursor() {
		return ApplyFormatting{Formatting: st.CurrentFormatting, Range: c.Range, Operation: formatting.OperationSet}, nil
	}

	previous, err := svc.Formatting.FormattingIn(c.Range, st)
	if err != nil {
		return nil, err
	}
	candidate := ApplyFormatting{Formatting: previous, Range: post.Selection, Operation: formatting.OperationSet}
	return verifiedUndo(svc, candidate, st, post), nil
}
