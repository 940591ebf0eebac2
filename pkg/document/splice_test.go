package document

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/yaklabco/gomdedit/pkg/editerr"
	"github.com/yaklabco/gomdedit/pkg/mdast"
)

func TestService_InsertText(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name     string
		content  string
		text     string
		at       mdast.Position
		want     string
		wantKind editerr.Kind
	}{
		{name: "append", content: "Hello", text: " world", at: mdast.Pos(0, 5), want: "Hello world"},
		{name: "prepend", content: "a\n\nworld", text: "big ", at: mdast.Pos(1, 0), want: "a\n\nbig world"},
		{name: "empty text", content: "Hello", text: "", at: mdast.Pos(0, 2), want: "Hello"},
		{name: "soft break", content: "ab", text: "\n", at: mdast.Pos(0, 1), want: "a\nb"},
		{name: "quote continues", content: "> a", text: "\nb", at: mdast.Pos(0, 1), want: "> a\n> b"},
		{name: "code block", content: "```\nx\n```", text: "y", at: mdast.Pos(0, 1), want: "```\nxy\n```"},
		{name: "empty code block", content: "```\n```", text: "x", at: mdast.Pos(0, 0), want: "```\nx\n```"},
		{name: "trailing paragraph", content: "a\n\n", text: "b", at: mdast.Pos(1, 0), want: "a\n\nb"},
		{name: "empty document", content: "", text: "hi", at: mdast.Pos(0, 0), want: "hi"},
		{name: "heading", content: "# T", text: "x", at: mdast.Pos(0, 1), wantKind: editerr.KindUnsupportedOperation},
		{name: "list", content: "- a", text: "x", at: mdast.Pos(0, 1), wantKind: editerr.KindUnsupportedOperation},
		{
			name: "split paragraph", content: "Hello", text: "\n\nX", at: mdast.Pos(0, 5),
			wantKind: editerr.KindUnsupportedOperation,
		},
		{
			name: "become heading", content: "Hello", text: "# ", at: mdast.Pos(0, 0),
			wantKind: editerr.KindUnsupportedOperation,
		},
		{
			name: "trailing newline", content: "ab", text: "\n", at: mdast.Pos(0, 2),
			wantKind: editerr.KindUnsupportedOperation,
		},
		{name: "bad position", content: "ab", text: "x", at: mdast.Pos(0, 3), wantKind: editerr.KindInvalidPosition},
	}

	svc := New()
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			got, err := svc.InsertText(tt.content, tt.text, tt.at)
			if tt.wantKind != 0 {
				require.Error(t, err)
				assert.Equal(t, tt.wantKind, editerr.KindOf(err))
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestService_DeleteText(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name     string
		content  string
		r        mdast.Range
		want     string
		wantKind editerr.Kind
	}{
		{name: "suffix", content: "Hello world", r: mdast.Span(0, 5, 11), want: "Hello"},
		{name: "reversed", content: "Hello world", r: mdast.Range{Start: mdast.Pos(0, 11), End: mdast.Pos(0, 5)}, want: "Hello"},
		{name: "cursor", content: "Hello", r: mdast.Cursor(mdast.Pos(0, 2)), want: "Hello"},
		{name: "quote line", content: "> a\n> b", r: mdast.Span(0, 1, 3), want: "> a"},
		{name: "code text", content: "```\nxy\n```", r: mdast.Span(0, 0, 1), want: "```\ny\n```"},
		{name: "all code", content: "```\nx\n```", r: mdast.Span(0, 0, 1), want: "```\n```"},
		{name: "all code lines", content: "```go\na\nb\n```", r: mdast.Span(0, 0, 3), want: "```go\n```"},
		{
			name: "multi block", content: "a\n\nb", r: mdast.Range{Start: mdast.Pos(0, 0), End: mdast.Pos(1, 1)},
			wantKind: editerr.KindMultiBlockNotSupported,
		},
		{name: "list", content: "- abc", r: mdast.Span(0, 0, 1), wantKind: editerr.KindUnsupportedOperation},
		{name: "out of range", content: "abc", r: mdast.Span(0, 1, 9), wantKind: editerr.KindInvalidRange},
	}

	svc := New()
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			got, err := svc.DeleteText(tt.content, tt.r)
			if tt.wantKind != 0 {
				require.Error(t, err)
				assert.Equal(t, tt.wantKind, editerr.KindOf(err))
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

// Deleting what was inserted restores the original content byte for byte.
func TestService_InsertDeleteInverse(t *testing.T) {
	t.Parallel()

	svc := New()
	cases := []struct {
		content string
		text    string
		at      mdast.Position
	}{
		{"Hello", " world", mdast.Pos(0, 5)},
		{"> a", "\nb", mdast.Pos(0, 1)},
		{"```\n```", "x", mdast.Pos(0, 0)},
		{"```go\n```", "a\nb", mdast.Pos(0, 0)},
		{"```\nab\n```", "x", mdast.Pos(0, 1)},
		{"a\n\n", "b", mdast.Pos(1, 0)},
		{"para\n\n> q", "héllo", mdast.Pos(1, 1)},
	}

	for _, c := range cases {
		inserted, err := svc.InsertText(c.content, c.text, c.at)
		require.NoError(t, err)

		r := mdast.Span(c.at.Block, c.at.Offset, c.at.Offset+len(c.text))
		restored, err := svc.DeleteText(inserted, r)
		require.NoError(t, err)
		assert.Equal(t, c.content, restored)
	}
}

func TestService_TextIn(t *testing.T) {
	t.Parallel()

	svc := New()
	doc := Parse("- one\n- two")

	got, err := svc.TextIn(doc, mdast.Span(0, 2, 6))
	require.NoError(t, err)
	assert.Equal(t, "e\ntw", got)

	_, err = svc.TextIn(Parse("a\n\nb"), mdast.Range{Start: mdast.Pos(0, 0), End: mdast.Pos(1, 0)})
	require.ErrorIs(t, err, editerr.ErrMultiBlockNotSupported)
}

func TestService_ReplaceBlock(t *testing.T) {
	t.Parallel()

	svc := New()

	got, err := svc.ReplaceBlock("intro\n\nline one\nline two\n\nend", 1, mdast.Quote(), "")
	require.NoError(t, err)
	assert.Equal(t, "intro\n\n> line one\n> line two\n\nend", got)

	got, err = svc.ReplaceBlock("- a\n- b", 0, mdast.CodeBlock(), "go")
	require.NoError(t, err)
	assert.Equal(t, "```go\na\nb\n```", got)

	_, err = svc.ReplaceBlock("a", 3, mdast.Quote(), "")
	require.ErrorIs(t, err, editerr.ErrInvalidPosition)

	_, err = svc.ReplaceBlock("a", 0, mdast.Heading(9), "")
	require.ErrorIs(t, err, editerr.ErrUnsupportedOperation)
}
