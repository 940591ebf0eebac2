package script

import (
	"fmt"

	"github.com/yaklabco/gomdedit/pkg/command"
	"github.com/yaklabco/gomdedit/pkg/formatting"
	"github.com/yaklabco/gomdedit/pkg/mdast"
	"github.com/yaklabco/gomdedit/pkg/session"
)

// StepResult records the state after one step.
type StepResult struct {
	Op      Op
	Name    string
	Version int
	Cursor  mdast.Position
}

// Result is the outcome of a run.
type Result struct {
	Steps []StepResult
	Final mdast.EditorState
}

// Run replays the script on sess, stopping at the first failing step.
// The returned result covers the steps that succeeded.
func Run(sess *session.Session, sc *Script) (Result, error) {
	var result Result
	for i, step := range sc.Steps {
		name, st, err := runStep(sess, step)
		if err != nil {
			result.Final = sess.State()
			return result, fmt.Errorf("step %d (%s): %w", i+1, step.Op, err)
		}
		result.Steps = append(result.Steps, StepResult{
			Op:      step.Op,
			Name:    name,
			Version: st.Metadata.Version,
			Cursor:  st.Cursor(),
		})
	}
	result.Final = sess.State()
	return result, nil
}

func runStep(sess *session.Session, step Step) (string, mdast.EditorState, error) {
	switch step.Op {
	case OpSelect:
		st, err := sess.Select(*step.Range)
		return "select " + step.Range.String(), st, err
	case OpUndo:
		name := sess.History().UndoName()
		st, err := sess.Undo()
		return "undo " + name, st, err
	case OpRedo:
		name := sess.History().RedoName()
		st, err := sess.Redo()
		return "redo " + name, st, err
	case OpMarkSaved:
		return "mark saved", sess.MarkSaved(), nil
	}

	cmd, err := Build(step, sess.State())
	if err != nil {
		return "", mdast.EditorState{}, err
	}
	st, err := sess.Execute(cmd)
	return cmd.Name(), st, err
}

// Build converts a command step into a command, filling omitted positions
// and ranges from st. Steps inside a group all default against st.
func Build(step Step, st mdast.EditorState) (command.Command, error) {
	at := st.Cursor()
	if step.At != nil {
		at = *step.At
	}
	sel := st.Selection
	if step.Range != nil {
		sel = *step.Range
	}

	switch step.Op {
	case OpInsertText:
		return command.InsertText{Text: step.Text, Position: at}, nil
	case OpDeleteText:
		return command.DeleteText{Range: sel}, nil
	case OpSetBlockType:
		blockType, err := mdast.ParseBlockType(step.Type)
		if err != nil {
			return nil, err
		}
		return command.SetBlockType{Type: blockType, Position: at}, nil
	case OpApplyFormatting:
		op, err := formatting.ParseOperation(step.Operation)
		if err != nil {
			return nil, err
		}
		return command.ApplyFormatting{Formatting: step.Formats, Range: sel, Operation: op}, nil
	case OpSmartEnter:
		return command.SmartEnter{Position: at}, nil
	case OpSmartBackspace:
		return command.SmartBackspace{Position: at}, nil
	case OpGroup:
		cmds := make([]command.Command, 0, len(step.Steps))
		for i, sub := range step.Steps {
			cmd, err := Build(sub, st)
			if err != nil {
				return nil, fmt.Errorf("group step %d: %w", i+1, err)
			}
			cmds = append(cmds, cmd)
		}
		return command.Composite{Label: step.Label, Commands: cmds}, nil
	default:
		return nil, fmt.Errorf("%w: %s is not a command", ErrInvalidScript, step.Op)
	}
}
