package formatting

import (
	"slices"

	"github.com/yaklabco/gomdedit/pkg/editerr"
	"github.com/yaklabco/gomdedit/pkg/mdast"
)

// Conflict declares two inline formats that cannot be combined. When one is
// added to text carrying the other, Winner stays and the loser is stripped.
// Adding the loser to text carrying the winner is refused.
type Conflict struct {
	A, B   mdast.InlineFormat
	Winner mdast.InlineFormat
}

// Rules is the static formatting policy: which inline formats conflict and
// which block types accept inline formatting at all.
type Rules struct {
	conflicts []Conflict
	noInline  []mdast.TypeKind
}

// DefaultRules returns the editor's policy: inline code excludes every other
// inline format and code blocks take no inline formatting.
func DefaultRules() Rules {
	return Rules{
		conflicts: []Conflict{
			{A: mdast.FormatCode, B: mdast.FormatBold, Winner: mdast.FormatCode},
			{A: mdast.FormatCode, B: mdast.FormatItalic, Winner: mdast.FormatCode},
			{A: mdast.FormatCode, B: mdast.FormatStrikethrough, Winner: mdast.FormatCode},
		},
		noInline: []mdast.TypeKind{mdast.TypeCodeBlock},
	}
}

// NewRules builds a custom policy.
func NewRules(conflicts []Conflict, noInline ...mdast.TypeKind) Rules {
	return Rules{conflicts: slices.Clone(conflicts), noInline: slices.Clone(noInline)}
}

// AllowsInline reports whether blocks of type t accept inline formatting.
func (r Rules) AllowsInline(t mdast.BlockType) bool {
	return !slices.Contains(r.noInline, t.Kind)
}

// Compatible reports whether a and b may be applied to the same text.
func (r Rules) Compatible(a, b mdast.InlineFormat) bool {
	_, conflict := r.conflict(a, b)
	return !conflict
}

func (r Rules) conflict(a, b mdast.InlineFormat) (Conflict, bool) {
	for _, c := range r.conflicts {
		if (c.A == a && c.B == b) || (c.A == b && c.B == a) {
			return c, true
		}
	}
	return Conflict{}, false
}

// CheckSet fails when the set itself holds conflicting formats.
func (r Rules) CheckSet(set mdast.InlineFormatting) error {
	formats := set.Formats()
	for i, a := range formats {
		for _, b := range formats[i+1:] {
			if !r.Compatible(a, b) {
				return editerr.Incompatible("%s cannot be combined with %s", a, b)
			}
		}
	}
	return nil
}

// Resolve decides how adding formats to text that carries existing formats
// plays out. It returns the existing formats that must be stripped, or an
// incompatibleFormatting error when an existing format wins over an added
// one.
func (r Rules) Resolve(existing, adding mdast.InlineFormatting) (mdast.InlineFormatting, error) {
	if err := r.CheckSet(adding); err != nil {
		return 0, err
	}

	var strip mdast.InlineFormatting
	for _, add := range adding.Formats() {
		for _, have := range existing.Minus(adding).Formats() {
			c, conflict := r.conflict(add, have)
			if !conflict {
				continue
			}
			if c.Winner != add {
				return 0, editerr.Incompatible("%s cannot be applied to %s text", add, have)
			}
			strip = strip.With(have)
		}
	}
	return strip, nil
}
