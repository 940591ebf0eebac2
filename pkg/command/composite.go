package command

import (
	"fmt"
	"slices"

	"github.com/yaklabco/gomdedit/pkg/editerr"
	"github.com/yaklabco/gomdedit/pkg/mdast"
)

// Restore replaces the content and selection with a snapshot. It is the
// inverse of commands whose effect has no structural undo.
type Restore struct {
	Content   string
	Selection mdast.Range
}

func (Restore) command() {}

// Name implements Command.
func (Restore) Name() string { return "restore" }

// CanExecute implements Command.
func (c Restore) CanExecute(svc *Services, st mdast.EditorState) bool {
	_, err := c.Execute(svc, st)
	return err == nil
}

// Execute implements Command.
func (c Restore) Execute(svc *Services, st mdast.EditorState) (mdast.EditorState, error) {
	doc := svc.Documents.Parse(c.Content)
	if err := svc.Documents.ValidateRange(doc, c.Selection.Normalized()); err != nil {
		return mdast.EditorState{}, err
	}
	return svc.State.Derive(st, c.Content, c.Selection)
}

// IsUndoable implements Command.
func (Restore) IsUndoable() bool { return true }

// CreateUndo restores the snapshot of st.
func (c Restore) CreateUndo(svc *Services, st mdast.EditorState) (Command, error) {
	if _, err := c.Execute(svc, st); err != nil {
		return nil, err
	}
	return Restore{Content: st.Content, Selection: st.Selection}, nil
}

// Composite runs Commands in order, each against the state produced by the
// one before it.
//
// A failing step fails the composite with the step's error. Steps that
// already ran are not rolled back, but since states are values the caller's
// pre-composite state is unaffected and can be kept for atomicity.
type Composite struct {
	Label    string
	Commands []Command
}

func (Composite) command() {}

// Name implements Command.
func (c Composite) Name() string {
	if c.Label == "" {
		return "composite"
	}
	return c.Label
}

// CanExecute implements Command.
func (c Composite) CanExecute(svc *Services, st mdast.EditorState) bool {
	_, err := c.Execute(svc, st)
	return err == nil
}

// Execute implements Command.
func (c Composite) Execute(svc *Services, st mdast.EditorState) (mdast.EditorState, error) {
	if len(c.Commands) == 0 {
		return mdast.EditorState{}, editerr.Unsupported("composite %q has no commands", c.Name())
	}
	for idx, cmd := range c.Commands {
		next, err := cmd.Execute(svc, st)
		if err != nil {
			return mdast.EditorState{}, fmt.Errorf("%s: step %d (%s): %w", c.Name(), idx+1, cmd.Name(), err)
		}
		st = next
	}
	return st, nil
}

// IsUndoable reports whether every step is undoable.
func (c Composite) IsUndoable() bool {
	for _, cmd := range c.Commands {
		if !cmd.IsUndoable() {
			return false
		}
	}
	return len(c.Commands) > 0
}

// CreateUndo returns the undos of the steps in reverse order. Each undo is
// built from the intermediate state its step ran against.
func (c Composite) CreateUndo(svc *Services, st mdast.EditorState) (Command, error) {
	if len(c.Commands) == 0 {
		return nil, editerr.Unsupported("composite %q has no commands", c.Name())
	}

	undos := make([]Command, 0, len(c.Commands))
	for idx, cmd := range c.Commands {
		undo, err := cmd.CreateUndo(svc, st)
		if err != nil {
			return nil, fmt.Errorf("%s: step %d (%s): %w", c.Name(), idx+1, cmd.Name(), err)
		}
		undos = append(undos, undo)

		next, err := cmd.Execute(svc, st)
		if err != nil {
			return nil, fmt.Errorf("%s: step %d (%s): %w", c.Name(), idx+1, cmd.Name(), err)
		}
		st = next
	}
	slices.Reverse(undos)
	return Composite{Label: "undo " + c.Name(), Commands: undos}, nil
}
