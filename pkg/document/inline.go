package document

import (
	"strings"

	"github.com/yaklabco/gomdedit/pkg/mdast"
)

// InlineSpan is one delimited run of inline formatting within a text unit.
// Offsets are byte offsets into the text that was parsed.
type InlineSpan struct {
	Format mdast.InlineFormat

	// Start and End cover the span including its markers.
	Start int
	End   int

	// ContentStart and ContentEnd cover the text between the markers.
	ContentStart int
	ContentEnd   int

	// Depth is the nesting depth; top-level spans have depth 0.
	Depth int
}

// OpenMarker returns the range of the opening marker.
func (s InlineSpan) OpenMarker() (int, int) { return s.Start, s.ContentStart }

// CloseMarker returns the range of the closing marker.
func (s InlineSpan) CloseMarker() (int, int) { return s.ContentEnd, s.End }

// ParseInline finds the inline formatting spans of a single text unit: a
// paragraph, heading, quote or one list item. Spans are returned outer
// before inner, in document order. Unmatched markers are plain text.
// Code span content is literal and never contains nested spans.
func ParseInline(text string) []InlineSpan {
	var spans []InlineSpan
	scanInline(text, 0, 0, &spans)
	return spans
}

func scanInline(text string, base, depth int, spans *[]InlineSpan) {
	for idx := 0; idx < len(text); {
		span, ok := matchSpan(text, idx)
		if !ok {
			idx++
			continue
		}

		shifted := InlineSpan{
			Format:       span.Format,
			Start:        base + span.Start,
			End:          base + span.End,
			ContentStart: base + span.ContentStart,
			ContentEnd:   base + span.ContentEnd,
			Depth:        depth,
		}
		*spans = append(*spans, shifted)

		if span.Format != mdast.FormatCode {
			scanInline(text[span.ContentStart:span.ContentEnd], shifted.ContentStart, depth+1, spans)
		}
		idx = span.End
	}
}

// matchSpan tries each delimiter at idx. Code is tried first so that its
// content shields other markers.
func matchSpan(text string, idx int) (InlineSpan, bool) {
	switch text[idx] {
	case '`':
		return matchCode(text, idx)
	case '~':
		return matchDouble(text, idx, "~~", mdast.FormatStrikethrough)
	case '*':
		if span, ok := matchDouble(text, idx, "**", mdast.FormatBold); ok {
			return span, true
		}
		return matchItalic(text, idx)
	default:
		return InlineSpan{}, false
	}
}

func matchCode(text string, idx int) (InlineSpan, bool) {
	closing := strings.IndexByte(text[idx+1:], '`')
	if closing <= 0 {
		return InlineSpan{}, false
	}
	end := idx + 1 + closing
	return InlineSpan{
		Format:       mdast.FormatCode,
		Start:        idx,
		End:          end + 1,
		ContentStart: idx + 1,
		ContentEnd:   end,
	}, true
}

// matchDouble matches a two-character delimiter such as "**" or "~~".
// The content must not begin or end with whitespace.
func matchDouble(text string, idx int, marker string, format mdast.InlineFormat) (InlineSpan, bool) {
	size := len(marker)
	if !strings.HasPrefix(text[idx:], marker) {
		return InlineSpan{}, false
	}
	contentStart := idx + size
	if contentStart >= len(text) || isSpace(text[contentStart]) {
		return InlineSpan{}, false
	}

	for pos := contentStart + 1; pos+size <= len(text); pos++ {
		if !strings.HasPrefix(text[pos:], marker) || isSpace(text[pos-1]) {
			continue
		}
		// A longer delimiter run closes at its last position.
		if pos+size < len(text) && text[pos+size] == marker[0] {
			continue
		}
		return InlineSpan{
			Format:       format,
			Start:        idx,
			End:          pos + size,
			ContentStart: contentStart,
			ContentEnd:   pos,
		}, true
	}
	return InlineSpan{}, false
}

func matchItalic(text string, idx int) (InlineSpan, bool) {
	contentStart := idx + 1
	if contentStart >= len(text) || isSpace(text[contentStart]) || text[contentStart] == '*' {
		return InlineSpan{}, false
	}

	for pos := contentStart + 1; pos < len(text); pos++ {
		if text[pos] != '*' {
			continue
		}
		// Skip over bold delimiters nested in the italic run.
		if pos+1 < len(text) && text[pos+1] == '*' {
			pos++
			continue
		}
		if isSpace(text[pos-1]) {
			continue
		}
		return InlineSpan{
			Format:       mdast.FormatItalic,
			Start:        idx,
			End:          pos + 1,
			ContentStart: contentStart,
			ContentEnd:   pos,
		}, true
	}
	return InlineSpan{}, false
}

func isSpace(c byte) bool {
	return c == ' ' || c == '\t' || c == '\n'
}

// FormatsAt returns the formatting active at a cursor offset. A cursor at
// either edge of a span's content counts as inside the span.
func FormatsAt(spans []InlineSpan, offset int) mdast.InlineFormatting {
	var active mdast.InlineFormatting
	for _, span := range spans {
		if offset >= span.ContentStart && offset <= span.ContentEnd {
			active = active.With(span.Format)
		}
	}
	return active
}

// FormatsIn returns the formatting shared by every character in
// [start, end). Marker characters are ignored. An empty or marker-only
// range falls back to FormatsAt(start).
func FormatsIn(spans []InlineSpan, start, end int) mdast.InlineFormatting {
	if start >= end {
		return FormatsAt(spans, start)
	}

	shared := mdast.Formatting(mdast.AllFormats...)
	seen := false
	for pos := start; pos < end; pos++ {
		if IsMarker(spans, pos) {
			continue
		}
		seen = true
		var active mdast.InlineFormatting
		for _, span := range spans {
			if pos >= span.ContentStart && pos < span.ContentEnd {
				active = active.With(span.Format)
			}
		}
		shared = shared.Intersect(active)
	}

	if !seen {
		return FormatsAt(spans, start)
	}
	return shared
}

// IsMarker reports whether the byte at offset belongs to a span delimiter.
func IsMarker(spans []InlineSpan, offset int) bool {
	for _, span := range spans {
		if (offset >= span.Start && offset < span.ContentStart) ||
			(offset >= span.ContentEnd && offset < span.End) {
			return true
		}
	}
	return false
}
