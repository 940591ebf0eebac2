package command_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/yaklabco/gomdedit/pkg/command"
	"github.com/yaklabco/gomdedit/pkg/editerr"
	"github.com/yaklabco/gomdedit/pkg/formatting"
	"github.com/yaklabco/gomdedit/pkg/mdast"
)

func TestComposite(t *testing.T) {
	t.Parallel()

	svc := newServices()
	st := newState(t, svc, "Hello", mdast.Span(0, 0, 5))

	cmd := command.Composite{
		Label: "make title",
		Commands: []command.Command{
			command.SetBlockType{Type: mdast.Heading(1), Position: mdast.Pos(0, 0)},
			command.ApplyFormatting{
				Formatting: mdast.Formatting(mdast.FormatBold),
				Range:      mdast.Span(0, 0, 5),
				Operation:  formatting.OperationApply,
			},
		},
	}
	assert.Equal(t, "make title", cmd.Name())
	assert.True(t, cmd.IsUndoable())
	assert.True(t, cmd.CanExecute(svc, st))

	undo, err := cmd.CreateUndo(svc, st)
	require.NoError(t, err)
	assert.Equal(t, "undo make title", undo.Name())

	post, err := cmd.Execute(svc, st)
	require.NoError(t, err)
	assert.Equal(t, "# **Hello**", post.Content)
	assert.Equal(t, 2, post.Metadata.Version)

	back, err := undo.Execute(svc, post)
	require.NoError(t, err)
	assert.Equal(t, "Hello", back.Content)
}

func TestComposite_UndoReverses(t *testing.T) {
	t.Parallel()

	svc := newServices()
	st := newState(t, svc, "Hello world", mdast.Span(0, 0, 5))

	cmd := command.Composite{
		Commands: []command.Command{
			command.ApplyFormatting{
				Formatting: mdast.Formatting(mdast.FormatBold),
				Range:      mdast.Span(0, 0, 5),
				Operation:  formatting.OperationApply,
			},
			command.InsertText{Text: " big", Position: mdast.Pos(0, 9)},
			command.SetBlockType{Type: mdast.Quote(), Position: mdast.Pos(0, 0)},
		},
	}
	assert.Equal(t, "composite", cmd.Name())

	post, back := executeAndUndo(t, svc, cmd, st)
	assert.Equal(t, "> **Hello** big world", post.Content)
	assert.Equal(t, st.Content, back.Content)
}

func TestComposite_Failure(t *testing.T) {
	t.Parallel()

	svc := newServices()
	st := newState(t, svc, "Hello", mdast.Cursor(mdast.Pos(0, 0)))

	cmd := command.Composite{
		Label: "broken",
		Commands: []command.Command{
			command.SetBlockType{Type: mdast.Heading(1), Position: mdast.Pos(0, 0)},
			command.InsertText{Text: "x", Position: mdast.Pos(0, 0)},
		},
	}

	assert.False(t, cmd.CanExecute(svc, st))
	_, err := cmd.Execute(svc, st)
	require.ErrorIs(t, err, editerr.ErrUnsupportedOperation)
	assert.Contains(t, err.Error(), "broken: step 2")

	_, err = cmd.CreateUndo(svc, st)
	require.ErrorIs(t, err, editerr.ErrUnsupportedOperation)

	// The caller's state value is untouched.
	assert.Equal(t, "Hello", st.Content)
}

func TestComposite_Empty(t *testing.T) {
	t.Parallel()

	svc := newServices()
	st := newState(t, svc, "Hello", mdast.Cursor(mdast.Pos(0, 0)))

	cmd := command.Composite{}
	assert.False(t, cmd.IsUndoable())
	_, err := cmd.Execute(svc, st)
	require.ErrorIs(t, err, editerr.ErrUnsupportedOperation)
}
