// Package command implements the editing commands and the undo history.
//
// A Command transforms one editor state into another. Commands are values:
// they hold their arguments only and read everything else from the state
// they are given, so the same command can be executed against any state.
// The set of commands is closed.
//
// Every command can build its own inverse from the state it is about to be
// executed against. History relies on this to undo without replaying.
package command

import (
	"github.com/yaklabco/gomdedit/pkg/document"
	"github.com/yaklabco/gomdedit/pkg/formatting"
	"github.com/yaklabco/gomdedit/pkg/mdast"
	"github.com/yaklabco/gomdedit/pkg/state"
)

// Services bundles the services commands delegate to.
type Services struct {
	Documents  *document.Service
	Formatting *formatting.Service
	State      *state.Service
}

// NewServices wires the state service on top of the given services.
func NewServices(docs *document.Service, fmtService *formatting.Service) *Services {
	return &Services{
		Documents:  docs,
		Formatting: fmtService,
		State:      state.New(docs, fmtService),
	}
}

// DefaultServices returns services with default options.
func DefaultServices() *Services {
	docs := document.New()
	return NewServices(docs, formatting.New(docs))
}

// Command is an editing operation on an editor state.
type Command interface {
	// Name returns a short label for logs and undo menus.
	Name() string

	// CanExecute reports whether Execute would succeed on st.
	CanExecute(svc *Services, st mdast.EditorState) bool

	// Execute returns the state produced by applying the command to st.
	Execute(svc *Services, st mdast.EditorState) (mdast.EditorState, error)

	// IsUndoable reports whether CreateUndo yields an inverse.
	IsUndoable() bool

	// CreateUndo returns the command that reverts Execute(st). It is built
	// from the pre-execution state st.
	CreateUndo(svc *Services, st mdast.EditorState) (Command, error)

	command()
}

// verifiedUndo returns candidate if running it on post reproduces the
// content of pre, and a snapshot restore otherwise.
func verifiedUndo(svc *Services, candidate Command, pre, post mdast.EditorState) Command {
	if got, err := candidate.Execute(svc, post); err == nil && got.Content == pre.Content {
		return candidate
	}
	return Restore{Content: pre.Content, Selection: pre.Selection}
}
