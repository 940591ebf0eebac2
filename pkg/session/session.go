// Package session ties the editing services, a command history and an
// external editing surface together into one editing session.
//
// The domain layer never reaches into the surface: a Session pulls the
// current text and selection through a Bridge before every command and
// pushes the resulting state back afterwards.
package session

import (
	"fmt"

	"github.com/yaklabco/gomdedit/pkg/command"
	"github.com/yaklabco/gomdedit/pkg/mdast"
)

// Bridge connects a session to the surface that displays and edits the
// document. It is implemented by the caller.
type Bridge interface {
	// ExtractState returns the surface's current content and selection.
	// Formatting hints and metadata in the result are ignored.
	ExtractState() (mdast.EditorState, error)

	// ApplyState replaces the surface's content and selection.
	ApplyState(st mdast.EditorState) error
}

// Session is a single-writer editing session. It is not safe for
// concurrent use.
type Session struct {
	svc     *command.Services
	history *command.History
	bridge  Bridge
	state   mdast.EditorState
}

type options struct {
	services    *command.Services
	historyOpts []command.HistoryOption
	bridge      Bridge
}

// Option configures a Session.
type Option func(*options)

// WithServices sets the services commands run with.
func WithServices(svc *command.Services) Option {
	return func(o *options) {
		o.services = svc
	}
}

// WithHistory passes options to the session's command history.
func WithHistory(opts ...command.HistoryOption) Option {
	return func(o *options) {
		o.historyOpts = append(o.historyOpts, opts...)
	}
}

// WithBridge connects the session to an editing surface.
func WithBridge(b Bridge) Option {
	return func(o *options) {
		o.bridge = b
	}
}

func build(opts []Option) *Session {
	var o options
	for _, opt := range opts {
		opt(&o)
	}
	if o.services == nil {
		o.services = command.DefaultServices()
	}
	return &Session{
		svc:     o.services,
		history: command.NewHistory(o.services, o.historyOpts...),
		bridge:  o.bridge,
	}
}

// New starts a session on content with the cursor at the document start.
func New(content string, opts ...Option) (*Session, error) {
	s := build(opts)
	st, err := s.svc.State.Create(content, mdast.Pos(0, 0))
	if err != nil {
		return nil, fmt.Errorf("create state: %w", err)
	}
	s.state = st
	return s, nil
}

// Open starts a session on the state held by bridge.
func Open(bridge Bridge, opts ...Option) (*Session, error) {
	s := build(append(opts, WithBridge(bridge)))
	extracted, err := bridge.ExtractState()
	if err != nil {
		return nil, fmt.Errorf("extract state: %w", err)
	}

	st, err := s.svc.State.Create(extracted.Content, extracted.Selection.Start)
	if err != nil {
		return nil, fmt.Errorf("create state: %w", err)
	}
	if st, err = s.svc.State.UpdateSelection(st, extracted.Selection); err != nil {
		return nil, fmt.Errorf("create state: %w", err)
	}
	s.state = st
	return s, nil
}

// State returns the current state.
func (s *Session) State() mdast.EditorState {
	return s.state
}

// Services returns the services the session runs commands with.
func (s *Session) Services() *command.Services {
	return s.svc
}

// History returns the session's command history.
func (s *Session) History() *command.History {
	return s.history
}

// Execute runs cmd against the current state and records it for undo.
func (s *Session) Execute(cmd command.Command) (mdast.EditorState, error) {
	return s.step(func(st mdast.EditorState) (mdast.EditorState, error) {
		return s.history.Execute(cmd, st)
	})
}

// Undo reverts the most recent command.
func (s *Session) Undo() (mdast.EditorState, error) {
	return s.step(s.history.Undo)
}

// Redo re-runs the most recently undone command.
func (s *Session) Redo() (mdast.EditorState, error) {
	return s.step(s.history.Redo)
}

// CanUndo reports whether Undo has anything to revert.
func (s *Session) CanUndo() bool { return s.history.CanUndo() }

// CanRedo reports whether Redo has anything to re-run.
func (s *Session) CanRedo() bool { return s.history.CanRedo() }

// Select moves the selection without touching content or history.
func (s *Session) Select(r mdast.Range) (mdast.EditorState, error) {
	st, err := s.svc.State.UpdateSelection(s.state, r)
	if err != nil {
		return mdast.EditorState{}, err
	}
	s.state = st
	return st, nil
}

// MarkSaved clears the unsaved-changes flag of the current state.
func (s *Session) MarkSaved() mdast.EditorState {
	s.state = s.state.MarkSaved()
	return s.state
}

// ValidFormattingOptions lists the inline formats that can be toggled on
// the current selection.
func (s *Session) ValidFormattingOptions() []mdast.InlineFormat {
	return s.svc.Formatting.ValidFormattingOptions(s.state.Selection, s.state)
}

// ValidBlockTypeOptions lists the block types the block under the cursor
// can be converted to.
func (s *Session) ValidBlockTypeOptions() []mdast.BlockType {
	return s.svc.Formatting.ValidBlockTypeOptions(s.state.Cursor(), s.state)
}

// step syncs from the bridge, runs fn and pushes the result back. Once fn
// succeeds the session keeps its result, in step with the history, even if
// the bridge then fails to apply it; the state is returned with the error
// so the caller can push it again.
func (s *Session) step(fn func(mdast.EditorState) (mdast.EditorState, error)) (mdast.EditorState, error) {
	current, err := s.sync()
	if err != nil {
		return mdast.EditorState{}, err
	}

	next, err := fn(current)
	if err != nil {
		return mdast.EditorState{}, err
	}
	s.state = next

	if s.bridge != nil {
		if err := s.bridge.ApplyState(next); err != nil {
			return next, fmt.Errorf("apply state: %w", err)
		}
	}
	return next, nil
}

// sync folds the bridge's current content and selection into the session
// state. Content edited on the surface becomes a new version.
func (s *Session) sync() (mdast.EditorState, error) {
	if s.bridge == nil {
		return s.state, nil
	}

	extracted, err := s.bridge.ExtractState()
	if err != nil {
		return mdast.EditorState{}, fmt.Errorf("extract state: %w", err)
	}

	doc := s.svc.Documents.Parse(extracted.Content)
	if err := s.svc.Documents.ValidateRange(doc, extracted.Selection.Normalized()); err != nil {
		return mdast.EditorState{}, fmt.Errorf("extract state: %w", err)
	}
	next, err := s.svc.State.Derive(s.state, extracted.Content, extracted.Selection)
	if err != nil {
		return mdast.EditorState{}, fmt.Errorf("extract state: %w", err)
	}
	s.state = next
	return s.state, nil
}
