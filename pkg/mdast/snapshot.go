// Package mdast provides the renderer-agnostic model of an editable Markdown
// document:
//   - Document: the ordered block sequence produced by parsing
//   - Block: one structural unit (paragraph, heading, list, code, quote)
//   - Position and Range: block-indexed addressing of text
//   - InlineFormatting and BlockType: the formatting vocabulary
//   - EditorState: the immutable snapshot commands transform
package mdast

// Document is the parsed form of raw markdown. Block order is significant
// and positional: a block's index is its address.
type Document struct {
	Blocks []Block

	// Source is the raw content the document was parsed from, if any.
	Source string

	// Lines contains metadata for each line of Source.
	Lines []LineInfo
}

// LineInfo holds metadata for a single line of raw content.
type LineInfo struct {
	// StartOffset is the byte index of the line start.
	StartOffset int

	// NewlineStart is the byte index where newline characters begin.
	// For lines without a trailing newline (e.g., last line), this equals EndOffset.
	NewlineStart int

	// EndOffset is the byte index just after the newline (or end of content).
	EndOffset int
}

// NewDocument creates a document from hand-built blocks.
func NewDocument(blocks ...Block) *Document {
	return &Document{Blocks: blocks}
}

// Len returns the number of blocks.
func (d *Document) Len() int {
	return len(d.Blocks)
}

// Block returns the block at index, or nil if out of range.
func (d *Document) Block(index int) *Block {
	if index < 0 || index >= len(d.Blocks) {
		return nil
	}
	return &d.Blocks[index]
}

// Types returns the block type of every block in order.
func (d *Document) Types() []BlockType {
	types := make([]BlockType, len(d.Blocks))
	for i := range d.Blocks {
		types[i] = d.Blocks[i].Type()
	}
	return types
}

// Kinds returns the node kind of every block in order.
func (d *Document) Kinds() []NodeKind {
	kinds := make([]NodeKind, len(d.Blocks))
	for i := range d.Blocks {
		kinds[i] = d.Blocks[i].Kind
	}
	return kinds
}
