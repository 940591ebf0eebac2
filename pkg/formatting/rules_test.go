package formatting

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/yaklabco/gomdedit/pkg/editerr"
	"github.com/yaklabco/gomdedit/pkg/mdast"
)

func TestRules_Compatible(t *testing.T) {
	t.Parallel()

	rules := DefaultRules()
	assert.True(t, rules.Compatible(mdast.FormatBold, mdast.FormatItalic))
	assert.True(t, rules.Compatible(mdast.FormatItalic, mdast.FormatStrikethrough))
	assert.False(t, rules.Compatible(mdast.FormatCode, mdast.FormatBold))
	assert.False(t, rules.Compatible(mdast.FormatItalic, mdast.FormatCode))
}

func TestRules_AllowsInline(t *testing.T) {
	t.Parallel()

	rules := DefaultRules()
	assert.True(t, rules.AllowsInline(mdast.Paragraph()))
	assert.True(t, rules.AllowsInline(mdast.Heading(3)))
	assert.True(t, rules.AllowsInline(mdast.OrderedList()))
	assert.False(t, rules.AllowsInline(mdast.CodeBlock()))
}

func TestRules_CheckSet(t *testing.T) {
	t.Parallel()

	rules := DefaultRules()
	require.NoError(t, rules.CheckSet(mdast.Formatting(mdast.FormatBold, mdast.FormatItalic, mdast.FormatStrikethrough)))
	require.ErrorIs(t, rules.CheckSet(mdast.Formatting(mdast.FormatBold, mdast.FormatCode)), editerr.ErrIncompatibleFormatting)
}

func TestRules_Resolve(t *testing.T) {
	t.Parallel()

	bold := mdast.Formatting(mdast.FormatBold)
	code := mdast.Formatting(mdast.FormatCode)

	tests := []struct {
		name      string
		existing  mdast.InlineFormatting
		adding    mdast.InlineFormatting
		wantStrip mdast.InlineFormatting
		wantErr   bool
	}{
		{name: "nothing present", existing: 0, adding: bold},
		{name: "compatible", existing: mdast.Formatting(mdast.FormatItalic), adding: bold},
		{name: "code wins over bold", existing: bold, adding: code, wantStrip: bold},
		{
			name:      "code strips every loser",
			existing:  mdast.Formatting(mdast.FormatBold, mdast.FormatItalic, mdast.FormatStrikethrough),
			adding:    code,
			wantStrip: mdast.Formatting(mdast.FormatBold, mdast.FormatItalic, mdast.FormatStrikethrough),
		},
		{name: "bold loses to code", existing: code, adding: bold, wantErr: true},
		{name: "conflicting request", existing: 0, adding: bold.Union(code), wantErr: true},
		{name: "re-adding present format", existing: code, adding: code},
	}

	rules := DefaultRules()
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			strip, err := rules.Resolve(tt.existing, tt.adding)
			if tt.wantErr {
				require.ErrorIs(t, err, editerr.ErrIncompatibleFormatting)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.wantStrip, strip)
		})
	}
}

func TestNewRules(t *testing.T) {
	t.Parallel()

	rules := NewRules([]Conflict{{A: mdast.FormatBold, B: mdast.FormatItalic, Winner: mdast.FormatBold}}, mdast.TypeQuote)
	assert.False(t, rules.Compatible(mdast.FormatItalic, mdast.FormatBold))
	assert.True(t, rules.Compatible(mdast.FormatCode, mdast.FormatBold))
	assert.False(t, rules.AllowsInline(mdast.Quote()))
	assert.True(t, rules.AllowsInline(mdast.CodeBlock()))
}
