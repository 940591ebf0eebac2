package formatting

import (
	"slices"

	"github.com/yaklabco/gomdedit/pkg/document"
	"github.com/yaklabco/gomdedit/pkg/editerr"
	"github.com/yaklabco/gomdedit/pkg/fix"
	"github.com/yaklabco/gomdedit/pkg/mdast"
)

// ApplyInlineFormatting applies set to the text in r according to op and
// returns the new state.
//
// A cursor range changes only the state's formatting hint, which governs
// text typed next. A non-empty range rewrites the markers in the content:
// formats being removed are lifted from the selected text, splitting any
// span that runs past it, and formats being added wrap the selection. Adding a format
// that loses to one already present fails with incompatibleFormatting;
// adding one that wins strips the loser.
func (s *Service) ApplyInlineFormatting(
	set mdast.InlineFormatting, r mdast.Range, st mdast.EditorState, op Operation,
) (mdast.EditorState, error) {
	r = r.Normalized()
	if r.IsMultiBlock() {
		return mdast.EditorState{}, editerr.Unsupported(
			"inline formatting across blocks %d..%d is not supported", r.Start.Block, r.End.Block)
	}

	doc := s.docs.Parse(st.Content)
	if err := s.docs.ValidateRange(doc, r); err != nil {
		return mdast.EditorState{}, err
	}
	block := doc.Block(r.Start.Block)
	if !s.rules.AllowsInline(block.Type()) {
		return mdast.EditorState{}, editerr.Unsupported("inline formatting is not available in %s blocks", block.Type())
	}

	u := unitAt(block, r.Start.Offset)
	start, end := r.Start.Offset-u.base, r.End.Offset-u.base
	if end > len(u.text) {
		return mdast.EditorState{}, editerr.Unsupported("selection %s spans more than one list item", r)
	}
	spans := document.ParseInline(u.text)

	present := document.FormatsIn(spans, start, end)
	if r.IsCursor() || r == st.Selection.Normalized() {
		present = st.CurrentFormatting
	}

	add, remove := plan(op, set, present)
	strip, err := s.rules.Resolve(present.Minus(remove), add)
	if err != nil {
		return mdast.EditorState{}, err
	}
	remove = remove.Union(strip)

	if r.IsCursor() {
		return st.WithHints(present.Minus(remove).Union(add), block.Type()), nil
	}

	content := document.FormatsIn(spans, start, end)
	add = add.Minus(content)
	remove = remove.Intersect(content.Union(formatsTouching(spans, start, end)))
	if add.IsEmpty() && remove.IsEmpty() {
		return s.Recompute(st.WithSelection(r)), nil
	}

	builder, start, end := markerEdits(u.text, spans, start, end, add, remove)
	_, edits, err := builder.Apply(u.text)
	if err != nil {
		return mdast.EditorState{}, editerr.Unsupported("cannot format %s: %v", r, err)
	}

	raw := make([]fix.TextEdit, len(edits))
	for i, e := range edits {
		rawStart, err := s.docs.RawOffset(doc, mdast.Pos(r.Start.Block, u.base+e.StartOffset))
		if err != nil {
			return mdast.EditorState{}, err
		}
		rawEnd, err := s.docs.RawOffset(doc, mdast.Pos(r.Start.Block, u.base+e.EndOffset))
		if err != nil {
			return mdast.EditorState{}, err
		}
		raw[i] = fix.TextEdit{StartOffset: rawStart, EndOffset: rawEnd, NewText: e.NewText}
	}

	next := fix.ApplyEdits(st.Content, raw)
	if !slices.Equal(doc.Kinds(), s.docs.Parse(next).Kinds()) {
		return mdast.EditorState{}, editerr.Unsupported("formatting %s would change the block structure", r)
	}

	selection := mdast.Span(r.Start.Block,
		u.base+fix.MapOffset(edits, start, fix.BiasRight),
		u.base+fix.MapOffset(edits, end, fix.BiasLeft))
	return s.Derive(st, next, selection)
}

// plan splits the requested formats into those to add and those to remove.
func plan(op Operation, set, present mdast.InlineFormatting) (mdast.InlineFormatting, mdast.InlineFormatting) {
	switch op {
	case OperationToggle:
		return set.Minus(present), set.Intersect(present)
	case OperationSet:
		return set.Minus(present), present.Minus(set)
	default:
		return set, 0
	}
}

// formatsTouching collects the formats of spans overlapping [start, end).
func formatsTouching(spans []document.InlineSpan, start, end int) mdast.InlineFormatting {
	var touching mdast.InlineFormatting
	for _, span := range spans {
		if span.ContentStart < end && span.ContentEnd > start {
			touching = touching.With(span.Format)
		}
	}
	return touching
}

// markerEdits builds the marker deletions and insertions for a selection.
// The selection ends are first moved out of marker runs so that insertions
// never land inside a deleted marker. A removed span keeps its unselected
// text formatted: it is closed before the selection and reopened after it
// with its own markers. It returns the adjusted ends.
func markerEdits(
	text string, spans []document.InlineSpan, start, end int, add, remove mdast.InlineFormatting,
) (*fix.EditBuilder, int, int) {
	for _, span := range spans {
		switch {
		case span.Start < start && start < span.ContentStart:
			start = span.Start
		case span.ContentEnd < start && start < span.End:
			start = span.End
		}
		switch {
		case span.ContentEnd < end && end < span.End:
			end = span.End
		case span.Start < end && end < span.ContentStart:
			end = span.Start
		}
	}

	builder := fix.NewEditBuilder()
	var closeAt, reopenAt []document.InlineSpan
	for _, span := range spans {
		touches := span.ContentStart < end && span.ContentEnd > start
		inside := span.Start >= start && span.End <= end
		if !(remove.Has(span.Format) && touches) && !(add.Has(span.Format) && inside) {
			continue
		}
		if !inside && span.ContentStart < start && hasText(spans, span.ContentStart, start) {
			closeAt = append(closeAt, span)
		} else {
			builder.Delete(span.Start, span.ContentStart)
		}
		if !inside && end < span.ContentEnd && hasText(spans, end, span.ContentEnd) {
			reopenAt = append(reopenAt, span)
		} else {
			builder.Delete(span.ContentEnd, span.End)
		}
	}

	// Spans come outer before inner, so inner spans close first.
	for i := len(closeAt) - 1; i >= 0; i-- {
		builder.Insert(start, text[closeAt[i].ContentEnd:closeAt[i].End])
	}
	formats := add.Formats()
	for _, f := range formats {
		builder.Insert(start, f.Marker())
	}
	for i := len(formats) - 1; i >= 0; i-- {
		builder.Insert(end, formats[i].Marker())
	}
	for _, span := range reopenAt {
		builder.Insert(end, text[span.Start:span.ContentStart])
	}
	return builder, start, end
}

// hasText reports whether [from, to) holds anything besides span markers.
func hasText(spans []document.InlineSpan, from, to int) bool {
	for i := from; i < to; i++ {
		if !document.IsMarker(spans, i) {
			return true
		}
	}
	return false
}
