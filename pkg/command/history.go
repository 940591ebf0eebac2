package command

import (
	"time"

	"github.com/yaklabco/gomdedit/pkg/editerr"
	"github.com/yaklabco/gomdedit/pkg/mdast"
)

// DefaultHistoryLimit is the number of undo steps kept by default.
const DefaultHistoryLimit = 100

// entry pairs a command with the inverse built before it ran.
type entry struct {
	forward Command
	inverse Command
}

// History is a linear undo/redo stack. Executing a new command discards
// everything that could be redone. History is not safe for concurrent use.
type History struct {
	svc      *Services
	limit    int
	observer Observer
	clock    func() time.Time

	undo []entry
	redo []entry
}

// HistoryOption configures a History.
type HistoryOption func(*History)

// WithLimit bounds the number of undo steps. The oldest steps are dropped
// first. A limit of zero or less means unbounded.
func WithLimit(limit int) HistoryOption {
	return func(h *History) {
		h.limit = limit
	}
}

// WithObserver installs an observer called around every command.
func WithObserver(observer Observer) HistoryOption {
	return func(h *History) {
		h.observer = observer
	}
}

// NewHistory creates an empty history running commands with svc.
func NewHistory(svc *Services, opts ...HistoryOption) *History {
	h := &History{
		svc:   svc,
		limit: DefaultHistoryLimit,
		clock: time.Now,
	}
	for _, opt := range opts {
		opt(h)
	}
	return h
}

// Execute runs cmd against st. On success an undoable command is pushed
// onto the undo stack and the redo stack is cleared.
func (h *History) Execute(cmd Command, st mdast.EditorState) (mdast.EditorState, error) {
	var inverse Command
	if cmd.IsUndoable() {
		var err error
		inverse, err = cmd.CreateUndo(h.svc, st)
		if err != nil {
			h.notifyFailure(ActionExecute, cmd, st, err)
			return mdast.EditorState{}, err
		}
	}

	next, err := h.run(ActionExecute, cmd, st)
	if err != nil {
		return mdast.EditorState{}, err
	}

	h.redo = nil
	if inverse != nil {
		h.push(entry{forward: cmd, inverse: inverse})
	}
	return next, nil
}

// Undo runs the inverse of the most recent command against st and moves
// the command to the redo stack. A failed undo leaves both stacks intact.
func (h *History) Undo(st mdast.EditorState) (mdast.EditorState, error) {
	if len(h.undo) == 0 {
		return mdast.EditorState{}, editerr.Unsupported("nothing to undo")
	}
	top := h.undo[len(h.undo)-1]

	next, err := h.run(ActionUndo, top.inverse, st)
	if err != nil {
		return mdast.EditorState{}, err
	}

	h.undo = h.undo[:len(h.undo)-1]
	h.redo = append(h.redo, top)
	return next, nil
}

// Redo re-runs the most recently undone command against st.
func (h *History) Redo(st mdast.EditorState) (mdast.EditorState, error) {
	if len(h.redo) == 0 {
		return mdast.EditorState{}, editerr.Unsupported("nothing to redo")
	}
	top := h.redo[len(h.redo)-1]

	// The inverse is rebuilt because st may differ from the state the
	// command first ran against.
	inverse, err := top.forward.CreateUndo(h.svc, st)
	if err != nil {
		h.notifyFailure(ActionRedo, top.forward, st, err)
		return mdast.EditorState{}, err
	}
	next, err := h.run(ActionRedo, top.forward, st)
	if err != nil {
		return mdast.EditorState{}, err
	}

	h.redo = h.redo[:len(h.redo)-1]
	h.push(entry{forward: top.forward, inverse: inverse})
	return next, nil
}

// CanUndo reports whether there is a command to undo.
func (h *History) CanUndo() bool { return len(h.undo) > 0 }

// CanRedo reports whether there is a command to redo.
func (h *History) CanRedo() bool { return len(h.redo) > 0 }

// UndoName returns the name of the command Undo would revert, or "".
func (h *History) UndoName() string {
	if len(h.undo) == 0 {
		return ""
	}
	return h.undo[len(h.undo)-1].forward.Name()
}

// RedoName returns the name of the command Redo would re-run, or "".
func (h *History) RedoName() string {
	if len(h.redo) == 0 {
		return ""
	}
	return h.redo[len(h.redo)-1].forward.Name()
}

// Len returns the sizes of the undo and redo stacks.
func (h *History) Len() (int, int) {
	return len(h.undo), len(h.redo)
}

// Clear empties both stacks.
func (h *History) Clear() {
	h.undo = nil
	h.redo = nil
}

func (h *History) push(e entry) {
	h.undo = append(h.undo, e)
	if h.limit > 0 && len(h.undo) > h.limit {
		h.undo = h.undo[len(h.undo)-h.limit:]
	}
}

// run executes cmd and reports it to the observer.
func (h *History) run(action Action, cmd Command, st mdast.EditorState) (mdast.EditorState, error) {
	if h.observer == nil {
		return cmd.Execute(h.svc, st)
	}

	h.observer(Event{Action: action, Phase: PhaseBefore, Command: cmd.Name(), Before: st})
	start := h.clock()
	next, err := cmd.Execute(h.svc, st)
	h.observer(Event{
		Action:   action,
		Phase:    PhaseAfter,
		Command:  cmd.Name(),
		Before:   st,
		After:    next,
		Err:      err,
		Duration: h.clock().Sub(start),
	})
	return next, err
}

// notifyFailure reports a command that failed before it could run.
func (h *History) notifyFailure(action Action, cmd Command, st mdast.EditorState, err error) {
	if h.observer == nil {
		return
	}
	h.observer(Event{Action: action, Phase: PhaseAfter, Command: cmd.Name(), Before: st, Err: err})
}
