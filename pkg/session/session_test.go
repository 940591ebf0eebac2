package session_test

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/yaklabco/gomdedit/pkg/command"
	"github.com/yaklabco/gomdedit/pkg/editerr"
	"github.com/yaklabco/gomdedit/pkg/formatting"
	"github.com/yaklabco/gomdedit/pkg/mdast"
	"github.com/yaklabco/gomdedit/pkg/session"
)

// surface is an in-memory editing surface.
type surface struct {
	content    string
	selection  mdast.Range
	applied    int
	extractErr error
	applyErr   error
}

func (s *surface) ExtractState() (mdast.EditorState, error) {
	if s.extractErr != nil {
		return mdast.EditorState{}, s.extractErr
	}
	return mdast.EditorState{Content: s.content, Selection: s.selection}, nil
}

func (s *surface) ApplyState(st mdast.EditorState) error {
	if s.applyErr != nil {
		return s.applyErr
	}
	s.content = st.Content
	s.selection = st.Selection
	s.applied++
	return nil
}

func TestSession_ExecuteUndoRedo(t *testing.T) {
	t.Parallel()

	s, err := session.New("Hello")
	require.NoError(t, err)
	assert.Equal(t, mdast.Cursor(mdast.Pos(0, 0)), s.State().Selection)
	assert.False(t, s.CanUndo())

	st, err := s.Execute(command.SetBlockType{Type: mdast.Heading(1), Position: mdast.Pos(0, 0)})
	require.NoError(t, err)
	assert.Equal(t, "# Hello", st.Content)
	assert.Equal(t, st, s.State())
	assert.True(t, st.HasUnsavedChanges)
	assert.True(t, s.CanUndo())

	st, err = s.Undo()
	require.NoError(t, err)
	assert.Equal(t, "Hello", st.Content)
	assert.True(t, s.CanRedo())

	st, err = s.Redo()
	require.NoError(t, err)
	assert.Equal(t, "# Hello", st.Content)

	saved := s.MarkSaved()
	assert.False(t, saved.HasUnsavedChanges)
	assert.False(t, s.State().HasUnsavedChanges)
}

func TestSession_FailedCommandKeepsState(t *testing.T) {
	t.Parallel()

	s, err := session.New("# Title")
	require.NoError(t, err)
	before := s.State()

	_, err = s.Execute(command.InsertText{Text: "x", Position: mdast.Pos(0, 0)})
	require.ErrorIs(t, err, editerr.ErrUnsupportedOperation)
	assert.Equal(t, before, s.State())
	assert.False(t, s.CanUndo())

	_, err = s.Undo()
	require.ErrorIs(t, err, editerr.ErrUnsupportedOperation)
}

func TestSession_Options(t *testing.T) {
	t.Parallel()

	s, err := session.New("`abc` and text")
	require.NoError(t, err)

	_, err = s.Select(mdast.Span(0, 1, 4))
	require.NoError(t, err)
	assert.Equal(t, []mdast.InlineFormat{mdast.FormatCode}, s.ValidFormattingOptions())

	_, err = s.Select(mdast.Span(0, 6, 9))
	require.NoError(t, err)
	assert.Equal(t, mdast.AllFormats, s.ValidFormattingOptions())
	assert.Equal(t, mdast.AllBlockTypes(), s.ValidBlockTypeOptions())

	_, err = s.Select(mdast.Span(0, 0, 99))
	require.ErrorIs(t, err, editerr.ErrInvalidRange)
}

func TestSession_Bridge(t *testing.T) {
	t.Parallel()

	surf := &surface{content: "- First\n- \n- Third", selection: mdast.Cursor(mdast.Pos(0, 6))}
	s, err := session.Open(surf)
	require.NoError(t, err)
	assert.Equal(t, mdast.UnorderedList(), s.State().CurrentBlockType)

	st, err := s.Execute(command.SmartEnter{Position: mdast.Pos(0, 6)})
	require.NoError(t, err)
	assert.Equal(t, "- First\n- \n- \n- Third", surf.content)
	assert.Equal(t, st.Selection, surf.selection)
	assert.Equal(t, 1, surf.applied)

	// Edits made on the surface are picked up before the next command.
	surf.content = "Hello world"
	surf.selection = mdast.Span(0, 0, 5)
	st, err = s.Execute(command.ApplyFormatting{
		Formatting: mdast.Formatting(mdast.FormatBold),
		Range:      mdast.Span(0, 0, 5),
		Operation:  formatting.OperationToggle,
	})
	require.NoError(t, err)
	assert.Equal(t, "**Hello** world", surf.content)
	assert.Equal(t, 3, st.Metadata.Version)

	_, err = s.Undo()
	require.NoError(t, err)
	assert.Equal(t, "Hello world", surf.content)
}

func TestSession_BridgeErrors(t *testing.T) {
	t.Parallel()

	errSurface := errors.New("surface unavailable")

	t.Run("open", func(t *testing.T) {
		t.Parallel()

		_, err := session.Open(&surface{extractErr: errSurface})
		require.ErrorIs(t, err, errSurface)

		_, err = session.Open(&surface{content: "abc", selection: mdast.Cursor(mdast.Pos(0, 9))})
		require.ErrorIs(t, err, editerr.ErrInvalidPosition)
	})

	t.Run("extract", func(t *testing.T) {
		t.Parallel()

		surf := &surface{content: "Hello"}
		s, err := session.Open(surf)
		require.NoError(t, err)

		surf.extractErr = errSurface
		_, err = s.Execute(command.SetBlockType{Type: mdast.Quote(), Position: mdast.Pos(0, 0)})
		require.ErrorIs(t, err, errSurface)
		assert.False(t, s.CanUndo())
		assert.Equal(t, "Hello", s.State().Content)
	})

	t.Run("stale selection", func(t *testing.T) {
		t.Parallel()

		surf := &surface{content: "Hello"}
		s, err := session.Open(surf)
		require.NoError(t, err)

		surf.selection = mdast.Cursor(mdast.Pos(3, 0))
		_, err = s.Execute(command.SetBlockType{Type: mdast.Quote(), Position: mdast.Pos(0, 0)})
		require.ErrorIs(t, err, editerr.ErrInvalidRange)
	})

	t.Run("apply", func(t *testing.T) {
		t.Parallel()

		surf := &surface{content: "Hello"}
		s, err := session.Open(surf)
		require.NoError(t, err)

		surf.applyErr = errSurface
		st, err := s.Execute(command.SetBlockType{Type: mdast.Quote(), Position: mdast.Pos(0, 0)})
		require.ErrorIs(t, err, errSurface)
		assert.Equal(t, "> Hello", st.Content)
		assert.Equal(t, st, s.State())
		assert.True(t, s.CanUndo())
	})
}

func TestSession_Observer(t *testing.T) {
	t.Parallel()

	var names []string
	s, err := session.New("Hello", session.WithHistory(
		command.WithLimit(5),
		command.WithObserver(func(e command.Event) {
			if e.Phase == command.PhaseAfter {
				names = append(names, e.Action.String()+" "+e.Command)
			}
		}),
	))
	require.NoError(t, err)

	_, err = s.Execute(command.SetBlockType{Type: mdast.Quote(), Position: mdast.Pos(0, 0)})
	require.NoError(t, err)
	_, err = s.Undo()
	require.NoError(t, err)

	assert.Equal(t, []string{"execute set block type quote", "undo set block type paragraph"}, names)
}
