package fix

import "strings"

// ApplyEdits applies a sorted, validated slice of edits to content.
// Edits must be prepared with PrepareEdits before calling.
func ApplyEdits(content string, edits []TextEdit) string {
	if len(edits) == 0 {
		return content
	}

	delta := 0
	for _, e := range edits {
		delta += e.Delta()
	}

	var out strings.Builder
	out.Grow(len(content) + delta)

	cursor := 0
	for _, e := range edits {
		out.WriteString(content[cursor:e.StartOffset])
		out.WriteString(e.NewText)
		cursor = e.EndOffset
	}
	out.WriteString(content[cursor:])

	return out.String()
}

// Bias selects which side of an insertion an offset sticks to.
type Bias int

const (
	// BiasLeft keeps an offset before text inserted exactly at it.
	BiasLeft Bias = iota

	// BiasRight moves an offset past text inserted exactly at it.
	BiasRight
)

// MapOffset translates an offset in the original content into the content
// produced by applying edits. Edits must be prepared. An offset inside a
// replaced range lands at the end of the replacement.
func MapOffset(edits []TextEdit, offset int, bias Bias) int {
	shift := 0
	for _, e := range edits {
		switch {
		case e.StartOffset > offset:
			return offset + shift
		case e.IsInsert() && e.StartOffset == offset:
			if bias == BiasLeft {
				return offset + shift
			}
			shift += len(e.NewText)
		case e.EndOffset <= offset:
			shift += e.Delta()
		default:
			// Offset falls inside the replaced range.
			return e.StartOffset + shift + len(e.NewText)
		}
	}
	return offset + shift
}
