package document

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/yaklabco/gomdedit/pkg/editerr"
	"github.com/yaklabco/gomdedit/pkg/mdast"
)

func TestService_ValidatePosition(t *testing.T) {
	t.Parallel()

	svc := New()
	doc := Parse("héllo\n\n- a\n- b")

	tests := []struct {
		name    string
		pos     mdast.Position
		wantErr bool
	}{
		{"start", mdast.Pos(0, 0), false},
		{"end of text", mdast.Pos(0, 6), false},
		{"past end", mdast.Pos(0, 7), true},
		{"negative", mdast.Pos(0, -1), true},
		{"inside multibyte", mdast.Pos(0, 2), true},
		{"after multibyte", mdast.Pos(0, 3), false},
		{"list text end", mdast.Pos(1, 3), false},
		{"missing block", mdast.Pos(5, 0), true},
		{"negative block", mdast.Pos(-1, 0), true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			err := svc.ValidatePosition(doc, tt.pos)
			if tt.wantErr {
				require.ErrorIs(t, err, editerr.ErrInvalidPosition)
				return
			}
			require.NoError(t, err)
		})
	}
}

func TestService_ValidateRange(t *testing.T) {
	t.Parallel()

	svc := New()
	doc := Parse("hello\n\nworld")

	require.NoError(t, svc.ValidateRange(doc, mdast.Span(0, 1, 3)))
	require.NoError(t, svc.ValidateRange(doc, mdast.Range{Start: mdast.Pos(0, 2), End: mdast.Pos(1, 1)}))
	require.ErrorIs(t, svc.ValidateRange(doc, mdast.Span(0, 3, 1)), editerr.ErrInvalidRange)
	require.ErrorIs(t, svc.ValidateRange(doc, mdast.Span(0, 1, 9)), editerr.ErrInvalidRange)
}

func TestService_RawOffset(t *testing.T) {
	t.Parallel()

	svc := New()
	content := "# Title\n\n- a\n- bc\n\n> q\n> r"
	doc := Parse(content)

	tests := []struct {
		pos  mdast.Position
		want int
	}{
		{mdast.Pos(0, 0), 2},
		{mdast.Pos(0, 5), 7},
		{mdast.Pos(1, 0), 11},
		{mdast.Pos(1, 1), 12},
		{mdast.Pos(1, 2), 15},
		{mdast.Pos(1, 4), 17},
		{mdast.Pos(2, 0), 21},
		{mdast.Pos(2, 2), 25},
	}

	for _, tt := range tests {
		got, err := svc.RawOffset(doc, tt.pos)
		require.NoError(t, err)
		assert.Equal(t, tt.want, got, "position %s", tt.pos)
	}

	_, err := svc.RawOffset(doc, mdast.Pos(9, 0))
	require.ErrorIs(t, err, editerr.ErrInvalidPosition)
}

func TestService_PositionAt(t *testing.T) {
	t.Parallel()

	svc := New()
	doc := Parse("# Title\n\nbody")

	tests := []struct {
		raw  int
		want mdast.Position
	}{
		{0, mdast.Pos(0, 0)},
		{4, mdast.Pos(0, 2)},
		{7, mdast.Pos(0, 5)},
		{8, mdast.Pos(1, 0)},
		{11, mdast.Pos(1, 2)},
		{100, mdast.Pos(1, 4)},
	}

	for _, tt := range tests {
		assert.Equal(t, tt.want, svc.PositionAt(doc, tt.raw), "raw %d", tt.raw)
	}
}

func TestService_PositionAtRoundTrip(t *testing.T) {
	t.Parallel()

	svc := New()
	doc := Parse("para one\nline two\n\n1. x\n2. yz\n\n```\ncode\n```")

	for idx := range doc.Blocks {
		block := &doc.Blocks[idx]
		for offset := 0; offset <= block.TextLen(); offset++ {
			pos := mdast.Pos(idx, offset)
			raw, err := svc.RawOffset(doc, pos)
			require.NoError(t, err)
			assert.Equal(t, pos, svc.PositionAt(doc, raw))
		}
	}
}
