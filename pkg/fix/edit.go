// Package fix provides byte-range text edits over raw markdown content:
// building, validating, ordering, applying, and mapping offsets through them.
package fix

// TextEdit represents a single text replacement in raw content.
type TextEdit struct {
	// StartOffset is the byte index where the edit begins (inclusive).
	StartOffset int

	// EndOffset is the byte index where the edit ends (exclusive).
	EndOffset int

	// NewText is the replacement text.
	NewText string
}

// Delta returns the change in content length caused by the edit.
func (e TextEdit) Delta() int {
	return len(e.NewText) - (e.EndOffset - e.StartOffset)
}

// IsInsert returns true if the edit replaces nothing.
func (e TextEdit) IsInsert() bool {
	return e.StartOffset == e.EndOffset
}

// EditBuilder accumulates text edits against one content string.
type EditBuilder struct {
	Edits []TextEdit
}

// NewEditBuilder creates a new EditBuilder.
func NewEditBuilder() *EditBuilder {
	return &EditBuilder{
		Edits: make([]TextEdit, 0),
	}
}

// ReplaceRange adds an edit that replaces bytes [start, end) with newText.
func (b *EditBuilder) ReplaceRange(start, end int, newText string) {
	b.Edits = append(b.Edits, TextEdit{
		StartOffset: start,
		EndOffset:   end,
		NewText:     newText,
	})
}

// Insert adds an edit that inserts text at the given offset.
func (b *EditBuilder) Insert(offset int, text string) {
	b.ReplaceRange(offset, offset, text)
}

// Delete adds an edit that deletes bytes [start, end).
func (b *EditBuilder) Delete(start, end int) {
	b.ReplaceRange(start, end, "")
}

// Len returns the number of accumulated edits.
func (b *EditBuilder) Len() int {
	return len(b.Edits)
}

// Apply prepares the accumulated edits and applies them to content.
// It returns the new content and the prepared (sorted) edits.
func (b *EditBuilder) Apply(content string) (string, []TextEdit, error) {
	prepared, err := PrepareEdits(b.Edits, len(content))
	if err != nil {
		return "", nil, err
	}
	return ApplyEdits(content, prepared), prepared, nil
}
