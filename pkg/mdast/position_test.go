package mdast_test

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/yaklabco/gomdedit/pkg/mdast"
)

func TestRange(t *testing.T) {
	t.Parallel()

	cursor := mdast.Cursor(mdast.Pos(1, 4))
	assert.True(t, cursor.IsCursor())
	assert.False(t, cursor.IsMultiBlock())
	assert.Equal(t, "1:4", cursor.String())

	span := mdast.Span(0, 2, 5)
	assert.False(t, span.IsCursor())
	assert.Equal(t, "0:2-0:5", span.String())

	reversed := mdast.Range{Start: mdast.Pos(2, 0), End: mdast.Pos(1, 3)}
	assert.True(t, reversed.IsMultiBlock())
	assert.Equal(t, mdast.Range{Start: mdast.Pos(1, 3), End: mdast.Pos(2, 0)}, reversed.Normalized())
}

func TestPosition_Before(t *testing.T) {
	t.Parallel()

	assert.True(t, mdast.Pos(0, 9).Before(mdast.Pos(1, 0)))
	assert.True(t, mdast.Pos(1, 2).Before(mdast.Pos(1, 3)))
	assert.False(t, mdast.Pos(1, 3).Before(mdast.Pos(1, 3)))
}

func TestSourceRange(t *testing.T) {
	t.Parallel()

	r := mdast.SourceRange{StartOffset: 2, EndOffset: 5}
	assert.Equal(t, 3, r.Len())
	assert.False(t, r.IsEmpty())
	assert.True(t, r.Contains(2))
	assert.False(t, r.Contains(5))
}
