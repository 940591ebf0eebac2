package mdast_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gopkg.in/yaml.v3"

	"github.com/yaklabco/gomdedit/pkg/mdast"
)

func TestBlockType_String(t *testing.T) {
	t.Parallel()

	names := make([]string, 0, len(mdast.AllBlockTypes()))
	for _, bt := range mdast.AllBlockTypes() {
		names = append(names, bt.String())
	}
	assert.Equal(t, []string{"paragraph", "h1", "h2", "h3", "h4", "h5", "h6", "code", "quote", "ul", "ol"}, names)
}

func TestBlockType_IsValid(t *testing.T) {
	t.Parallel()

	assert.True(t, mdast.Heading(6).IsValid())
	assert.False(t, mdast.Heading(0).IsValid())
	assert.False(t, mdast.Heading(7).IsValid())
	assert.False(t, mdast.BlockType{Kind: mdast.TypeQuote, Level: 2}.IsValid())
	assert.False(t, mdast.BlockType{Kind: 99}.IsValid())
}

func TestParseBlockType(t *testing.T) {
	t.Parallel()

	tests := []struct {
		input   string
		want    mdast.BlockType
		wantErr bool
	}{
		{"paragraph", mdast.Paragraph(), false},
		{"H2", mdast.Heading(2), false},
		{"heading3", mdast.Heading(3), false},
		{"code-block", mdast.CodeBlock(), false},
		{"blockquote", mdast.Quote(), false},
		{"bullet", mdast.UnorderedList(), false},
		{"ol", mdast.OrderedList(), false},
		{"h7", mdast.BlockType{}, true},
		{"table", mdast.BlockType{}, true},
	}

	for _, tt := range tests {
		got, err := mdast.ParseBlockType(tt.input)
		if tt.wantErr {
			require.Error(t, err, tt.input)
			continue
		}
		require.NoError(t, err, tt.input)
		assert.Equal(t, tt.want, got, tt.input)
	}
}

func TestBlock_Type(t *testing.T) {
	t.Parallel()

	tests := []struct {
		block mdast.Block
		want  mdast.BlockType
	}{
		{mdast.NewParagraph("p"), mdast.Paragraph()},
		{mdast.NewHeading(2, "h"), mdast.Heading(2)},
		{mdast.NewBulletList("a"), mdast.UnorderedList()},
		{mdast.NewOrderedList(1, "a"), mdast.OrderedList()},
		{mdast.NewCodeBlock("go", "x"), mdast.CodeBlock()},
		{mdast.NewQuote("q"), mdast.Quote()},
	}

	for _, tt := range tests {
		assert.Equal(t, tt.want, tt.block.Type())
	}
}

func TestBlock_PlainText(t *testing.T) {
	t.Parallel()

	list := mdast.NewOrderedList(4, "one", "", "three")
	assert.Equal(t, "one\n\nthree", list.PlainText())
	assert.Equal(t, 10, list.TextLen())
	assert.Equal(t, 5, list.Items[1].Number)

	code := mdast.NewCodeBlock("go", "x := 1")
	assert.Equal(t, "x := 1", code.PlainText())
}

func TestBlock_ItemAt(t *testing.T) {
	t.Parallel()

	list := mdast.NewBulletList("one", "", "three")

	tests := []struct {
		offset   int
		wantItem int
		wantRel  int
	}{
		{0, 0, 0},
		{3, 0, 3},
		{4, 1, 0},
		{5, 2, 0},
		{10, 2, 5},
		{11, -1, 0},
	}

	for _, tt := range tests {
		item, rel := list.ItemAt(tt.offset)
		assert.Equal(t, tt.wantItem, item, "offset %d", tt.offset)
		assert.Equal(t, tt.wantRel, rel, "offset %d", tt.offset)
	}

	assert.Equal(t, 5, list.ItemStart(2))

	para := mdast.NewParagraph("x")
	item, _ := para.ItemAt(0)
	assert.Equal(t, -1, item)
}

func TestBlock_YAML(t *testing.T) {
	t.Parallel()

	out, err := yaml.Marshal(mdast.NewHeading(2, "Title"))
	require.NoError(t, err)
	assert.Equal(t, "kind: heading\nlevel: 2\ntext: Title\n", string(out))
}
