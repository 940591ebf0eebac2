package mdast

import "fmt"

// SourceRange represents a byte range in the raw markdown content.
type SourceRange struct {
	// StartOffset is the byte index where the range begins (inclusive).
	StartOffset int

	// EndOffset is the byte index where the range ends (exclusive).
	EndOffset int
}

// Len returns the length of the range in bytes.
func (r SourceRange) Len() int {
	return r.EndOffset - r.StartOffset
}

// IsEmpty returns true if the range has zero length.
func (r SourceRange) IsEmpty() bool {
	return r.StartOffset == r.EndOffset
}

// Contains returns true if the given offset is within this range.
func (r SourceRange) Contains(offset int) bool {
	return offset >= r.StartOffset && offset < r.EndOffset
}

// Position addresses a byte offset within the text content of one block of
// the parsed block sequence. It is block-indexed, not line-indexed, and is
// only meaningful against the parse of the content it was computed from.
type Position struct {
	Block  int `yaml:"block"`
	Offset int `yaml:"offset"`
}

// Pos is shorthand for Position{Block: block, Offset: offset}.
func Pos(block, offset int) Position {
	return Position{Block: block, Offset: offset}
}

// Before reports whether p sorts before other in document order.
func (p Position) Before(other Position) bool {
	if p.Block != other.Block {
		return p.Block < other.Block
	}
	return p.Offset < other.Offset
}

func (p Position) String() string {
	return fmt.Sprintf("%d:%d", p.Block, p.Offset)
}

// Range is a selection between two positions. A cursor is a range whose
// start equals its end.
type Range struct {
	Start Position `yaml:"start"`
	End   Position `yaml:"end"`
}

// Cursor returns the empty range at p.
func Cursor(p Position) Range {
	return Range{Start: p, End: p}
}

// Span returns the range [start, end) inside a single block.
func Span(block, start, end int) Range {
	return Range{Start: Pos(block, start), End: Pos(block, end)}
}

// IsCursor returns true if the range is empty.
func (r Range) IsCursor() bool {
	return r.Start == r.End
}

// IsMultiBlock returns true if the range crosses a block boundary.
func (r Range) IsMultiBlock() bool {
	return r.Start.Block != r.End.Block
}

// Normalized returns the range with Start ordered before End.
func (r Range) Normalized() Range {
	if r.End.Before(r.Start) {
		return Range{Start: r.End, End: r.Start}
	}
	return r
}

func (r Range) String() string {
	if r.IsCursor() {
		return r.Start.String()
	}
	return r.Start.String() + "-" + r.End.String()
}
