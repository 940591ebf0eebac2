package command

import (
	"time"

	"github.com/yaklabco/gomdedit/pkg/mdast"
)

// Action is the history operation an event belongs to.
type Action uint8

// History actions.
const (
	ActionExecute Action = iota
	ActionUndo
	ActionRedo
)

// String returns the action name.
func (a Action) String() string {
	switch a {
	case ActionExecute:
		return "execute"
	case ActionUndo:
		return "undo"
	case ActionRedo:
		return "redo"
	default:
		return "unknown"
	}
}

// Phase tells whether an event precedes or follows the command.
type Phase uint8

// Event phases.
const (
	PhaseBefore Phase = iota
	PhaseAfter
)

// Event describes one command run by a History.
type Event struct {
	Action  Action
	Phase   Phase
	Command string

	// Before is the state the command runs against.
	Before mdast.EditorState

	// After, Err and Duration are set in the PhaseAfter event only.
	After    mdast.EditorState
	Err      error
	Duration time.Duration
}

// Observer receives an event before and after every command a History
// runs. Observers must not retain or modify history.
type Observer func(Event)
