package document

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestService_Stats(t *testing.T) {
	t.Parallel()

	svc := New()
	got := svc.Stats("# Title\n\nHello world\n\n- a\n- b\n\n```\nx := 1\n```\n\n> quoted text")

	assert.Equal(t, Stats{
		Characters: 60,
		Words:      10,
		Blocks:     5,
		Headings:   1,
		Paragraphs: 1,
		Lists:      1,
		ListItems:  2,
		CodeBlocks: 1,
		Quotes:     1,
	}, got)
}

func TestService_Stats_Graphemes(t *testing.T) {
	t.Parallel()

	svc := New()
	assert.Equal(t, 1, svc.Stats("👍🏽").Characters)
	assert.Equal(t, 5, svc.Stats("héllo").Characters)
}

func TestService_Stats_Empty(t *testing.T) {
	t.Parallel()

	got := New().Stats("")
	assert.Zero(t, got.Characters)
	assert.Zero(t, got.Paragraphs)
	assert.Zero(t, got.Blocks)
}
