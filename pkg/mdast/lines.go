package mdast

import "sort"

// BuildLines constructs line metadata from raw content.
// It handles both LF (\n) and CRLF (\r\n) line endings.
// Empty content has a single empty line so that an empty document is still
// addressable.
func BuildLines(content string) []LineInfo {
	var lines []LineInfo
	lineStart := 0

	for idx := 0; idx < len(content); idx++ {
		if content[idx] != '\n' {
			continue
		}
		newlineStart := idx
		if idx > 0 && content[idx-1] == '\r' {
			newlineStart = idx - 1
		}
		lines = append(lines, LineInfo{
			StartOffset:  lineStart,
			NewlineStart: newlineStart,
			EndOffset:    idx + 1,
		})
		lineStart = idx + 1
	}

	// Last line (may be empty, may lack a trailing newline).
	lines = append(lines, LineInfo{
		StartOffset:  lineStart,
		NewlineStart: len(content),
		EndOffset:    len(content),
	})

	return lines
}

// LineCount returns the number of lines in the source.
func (d *Document) LineCount() int {
	return len(d.Lines)
}

// LineAt converts a byte offset to a 0-based line index.
// Returns -1 if the offset is out of range.
func (d *Document) LineAt(offset int) int {
	if offset < 0 || offset > len(d.Source) || len(d.Lines) == 0 {
		return -1
	}
	idx := sort.Search(len(d.Lines), func(i int) bool {
		return d.Lines[i].EndOffset > offset
	})
	if idx >= len(d.Lines) {
		idx = len(d.Lines) - 1
	}
	return idx
}

// LineContent returns the content of a 0-based line index, excluding the newline.
func (d *Document) LineContent(line int) string {
	if line < 0 || line >= len(d.Lines) {
		return ""
	}
	info := d.Lines[line]
	return d.Source[info.StartOffset:info.NewlineStart]
}

// LineRange returns the raw range of a 0-based line, excluding the newline.
func (d *Document) LineRange(line int) SourceRange {
	if line < 0 || line >= len(d.Lines) {
		return SourceRange{}
	}
	info := d.Lines[line]
	return SourceRange{StartOffset: info.StartOffset, EndOffset: info.NewlineStart}
}
