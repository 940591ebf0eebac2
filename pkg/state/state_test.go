package state_test

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/yaklabco/gomdedit/pkg/document"
	"github.com/yaklabco/gomdedit/pkg/editerr"
	"github.com/yaklabco/gomdedit/pkg/fix"
	"github.com/yaklabco/gomdedit/pkg/formatting"
	"github.com/yaklabco/gomdedit/pkg/mdast"
	"github.com/yaklabco/gomdedit/pkg/state"
)

var testNow = time.Date(2024, 3, 1, 12, 0, 0, 0, time.UTC)

func newService() *state.Service {
	docs := document.New()
	return state.New(docs, formatting.New(docs, formatting.WithClock(func() time.Time { return testNow })))
}

func TestService_Create(t *testing.T) {
	t.Parallel()

	svc := newService()

	st, err := svc.Create("# Title\n\nSome **bold** text", mdast.Pos(1, 7))
	require.NoError(t, err)
	assert.Equal(t, mdast.Cursor(mdast.Pos(1, 7)), st.Selection)
	assert.Equal(t, mdast.Paragraph(), st.CurrentBlockType)
	assert.Equal(t, mdast.Formatting(mdast.FormatBold), st.CurrentFormatting)
	assert.Equal(t, testNow, st.Metadata.CreatedAt)
	assert.Equal(t, testNow, st.Metadata.ModifiedAt)
	assert.Zero(t, st.Metadata.Version)
	assert.False(t, st.HasUnsavedChanges)

	empty, err := svc.Create("", mdast.Pos(0, 0))
	require.NoError(t, err)
	assert.Equal(t, mdast.Paragraph(), empty.CurrentBlockType)

	_, err = svc.Create("abc", mdast.Pos(0, 4))
	require.ErrorIs(t, err, editerr.ErrInvalidPosition)

	_, err = svc.Create("abc", mdast.Pos(2, 0))
	require.ErrorIs(t, err, editerr.ErrInvalidPosition)
}

func TestService_Validate(t *testing.T) {
	t.Parallel()

	svc := newService()
	st, err := svc.Create("# Title\n\nBody", mdast.Pos(0, 0))
	require.NoError(t, err)

	tests := []struct {
		name      string
		mutate    func(mdast.EditorState) mdast.EditorState
		wantValid bool
		wantErr   error
		wantCount int
	}{
		{
			name:      "valid",
			mutate:    func(s mdast.EditorState) mdast.EditorState { return s },
			wantValid: true,
		},
		{
			name: "block out of range",
			mutate: func(s mdast.EditorState) mdast.EditorState {
				return s.WithSelection(mdast.Cursor(mdast.Pos(5, 0)))
			},
			wantErr:   editerr.ErrInvalidPosition,
			wantCount: 2,
		},
		{
			name: "end offset out of range",
			mutate: func(s mdast.EditorState) mdast.EditorState {
				return s.WithSelection(mdast.Span(1, 0, 10))
			},
			wantErr:   editerr.ErrInvalidPosition,
			wantCount: 1,
		},
		{
			name: "invalid block type",
			mutate: func(s mdast.EditorState) mdast.EditorState {
				return s.WithHints(0, mdast.BlockType{Kind: mdast.TypeHeading, Level: 9})
			},
			wantErr:   editerr.ErrEditorStateCorrupted,
			wantCount: 1,
		},
		{
			name: "modified before created",
			mutate: func(s mdast.EditorState) mdast.EditorState {
				s.Metadata.ModifiedAt = s.Metadata.CreatedAt.Add(-time.Minute)
				return s
			},
			wantErr:   editerr.ErrEditorStateCorrupted,
			wantCount: 1,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			got := svc.Validate(tt.mutate(st))
			assert.Equal(t, tt.wantValid, got.Valid)
			assert.Len(t, got.Errors, tt.wantCount)
			if tt.wantErr != nil {
				require.ErrorIs(t, got.Err(), tt.wantErr)
			} else {
				require.NoError(t, got.Err())
			}
		})
	}
}

func TestService_UpdateSelection(t *testing.T) {
	t.Parallel()

	svc := newService()
	st, err := svc.Create("# Title\n\nplain *it* `code`", mdast.Pos(0, 0))
	require.NoError(t, err)
	assert.Equal(t, mdast.Heading(1), st.CurrentBlockType)

	moved, err := svc.UpdateSelection(st, mdast.Span(1, 7, 9))
	require.NoError(t, err)
	assert.Equal(t, st.Content, moved.Content)
	assert.Equal(t, st.Metadata, moved.Metadata)
	assert.Equal(t, mdast.Paragraph(), moved.CurrentBlockType)
	assert.Equal(t, mdast.Formatting(mdast.FormatItalic), moved.CurrentFormatting)

	// Backwards selections keep their direction.
	back, err := svc.UpdateSelection(st, mdast.Span(1, 15, 12))
	require.NoError(t, err)
	assert.Equal(t, mdast.Span(1, 15, 12), back.Selection)
	assert.Equal(t, mdast.Formatting(mdast.FormatCode), back.CurrentFormatting)

	_, err = svc.UpdateSelection(st, mdast.Span(1, 0, 99))
	require.ErrorIs(t, err, editerr.ErrInvalidRange)
}

func TestService_Equivalent(t *testing.T) {
	t.Parallel()

	svc := newService()
	a, err := svc.Create("Hello", mdast.Pos(0, 0))
	require.NoError(t, err)

	b := a
	b.HasUnsavedChanges = true
	b.Metadata.Version = 7
	assert.True(t, svc.Equivalent(a, b))

	assert.False(t, svc.Equivalent(a, a.WithSelection(mdast.Cursor(mdast.Pos(0, 1)))))
	assert.False(t, svc.Equivalent(a, a.WithHints(mdast.Formatting(mdast.FormatBold), a.CurrentBlockType)))
	changed, err := svc.Derive(a, "Hello!", a.Selection)
	require.NoError(t, err)
	assert.False(t, svc.Equivalent(a, changed))
}

func TestService_Derive(t *testing.T) {
	t.Parallel()

	svc := newService()
	from, err := svc.Create("**Hello**", mdast.Pos(0, 4))
	require.NoError(t, err)

	to, err := svc.Derive(from, "# Hello", mdast.Cursor(mdast.Pos(0, 2)))
	require.NoError(t, err)
	assert.Equal(t, mdast.Heading(1), to.CurrentBlockType)
	assert.True(t, to.CurrentFormatting.IsEmpty())
	assert.Equal(t, 1, to.Metadata.Version)

	_, err = svc.Derive(from, "Hi", mdast.Cursor(mdast.Pos(0, 9)))
	require.ErrorIs(t, err, editerr.ErrEditorStateCorrupted)

	_, err = svc.Derive(from, "Hi", mdast.Cursor(mdast.Pos(3, 0)))
	require.ErrorIs(t, err, editerr.ErrEditorStateCorrupted)
}

func TestService_Diff(t *testing.T) {
	t.Parallel()

	svc := newService()
	from, err := svc.Create("Hello\n\nWorld", mdast.Pos(0, 0))
	require.NoError(t, err)

	t.Run("no change", func(t *testing.T) {
		t.Parallel()

		d := svc.Diff(from, from)
		assert.True(t, d.IsEmpty())
		assert.False(t, d.IsSignificant)
		assert.Empty(t, d.ContentChanges)
	})

	t.Run("selection only", func(t *testing.T) {
		t.Parallel()

		to, err := svc.UpdateSelection(from, mdast.Cursor(mdast.Pos(1, 2)))
		require.NoError(t, err)

		d := svc.Diff(from, to)
		assert.True(t, d.SelectionChanged)
		assert.False(t, d.ContentChanged)
		assert.False(t, d.IsSignificant)
	})

	t.Run("content", func(t *testing.T) {
		t.Parallel()

		to, err := svc.Derive(from, "Hello\n\nThere", from.Selection)
		require.NoError(t, err)

		d := svc.Diff(from, to)
		assert.True(t, d.ContentChanged)
		assert.True(t, d.IsSignificant)
		require.Len(t, d.ContentChanges, 1)
		assert.Contains(t, d.ContentChanges[0].Lines, fix.DiffLine{Kind: fix.DiffLineRemove, Content: "World"})
		assert.Contains(t, d.ContentChanges[0].Lines, fix.DiffLine{Kind: fix.DiffLineAdd, Content: "There"})
	})

	t.Run("block type", func(t *testing.T) {
		t.Parallel()

		to, err := svc.Derive(from, "# Hello\n\nWorld", mdast.Cursor(mdast.Pos(0, 0)))
		require.NoError(t, err)

		d := svc.Diff(from, to)
		assert.True(t, d.BlockTypeChanged)
		assert.True(t, d.IsSignificant)
	})
}
