// Package document implements the document service: it converts raw
// markdown to and from the block model, addresses text by block position
// and performs text edits inside a block.
package document

import (
	"unicode/utf8"

	"github.com/yaklabco/gomdedit/pkg/editerr"
	"github.com/yaklabco/gomdedit/pkg/mdast"
)

// Service parses, generates and edits markdown content. It holds no
// document state and is safe for concurrent use.
type Service struct {
	bulletMarker string
	inspector    Inspector
}

// Option configures a Service.
type Option func(*Service)

// WithBulletMarker sets the marker used for generated bullet lists.
// Markers other than "-", "*" and "+" are ignored.
func WithBulletMarker(marker string) Option {
	return func(s *Service) {
		switch marker {
		case "-", "*", "+":
			s.bulletMarker = marker
		}
	}
}

// WithInspector enables detection of constructs this editor does not model.
func WithInspector(p Inspector) Option {
	return func(s *Service) {
		s.inspector = p
	}
}

// New creates a document service.
func New(opts ...Option) *Service {
	s := &Service{bulletMarker: DefaultBulletMarker}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// BulletMarker returns the marker used for generated bullet lists.
func (s *Service) BulletMarker() string {
	return s.bulletMarker
}

// Parse converts raw markdown into a document.
func (s *Service) Parse(text string) *mdast.Document {
	return Parse(text)
}

// ValidatePosition checks that pos addresses an existing block and a UTF-8
// boundary within the block's text.
func (s *Service) ValidatePosition(doc *mdast.Document, pos mdast.Position) error {
	block := doc.Block(pos.Block)
	if block == nil {
		return editerr.InvalidPosition("block %d out of range (document has %d blocks)", pos.Block, doc.Len())
	}

	text := block.PlainText()
	if pos.Offset < 0 || pos.Offset > len(text) {
		return editerr.InvalidPosition("offset %d out of range for block %d (length %d)", pos.Offset, pos.Block, len(text))
	}
	if pos.Offset < len(text) && !utf8.RuneStart(text[pos.Offset]) {
		return editerr.InvalidPosition("offset %d splits a character in block %d", pos.Offset, pos.Block)
	}
	return nil
}

// ValidateRange checks both ends of r and that start does not come after end.
func (s *Service) ValidateRange(doc *mdast.Document, r mdast.Range) error {
	if r.End.Before(r.Start) {
		return editerr.InvalidRange("start %s is after end %s", r.Start, r.End)
	}
	if err := s.ValidatePosition(doc, r.Start); err != nil {
		return editerr.InvalidRange("start: %v", err)
	}
	if err := s.ValidatePosition(doc, r.End); err != nil {
		return editerr.InvalidRange("end: %v", err)
	}
	return nil
}

// RawOffset converts a block position to a byte offset in the content the
// document was parsed from.
func (s *Service) RawOffset(doc *mdast.Document, pos mdast.Position) (int, error) {
	if err := s.ValidatePosition(doc, pos); err != nil {
		return 0, err
	}
	return rawOffset(doc.Block(pos.Block), pos.Offset), nil
}

func rawOffset(block *mdast.Block, offset int) int {
	if len(block.Segments) == 0 {
		// Empty code blocks address the start of their closing fence.
		if n := len(block.Lines); n > 0 {
			return block.Lines[n-1].StartOffset
		}
		return block.Span.StartOffset
	}
	for _, seg := range block.Segments {
		if offset >= seg.TextStart && offset <= seg.TextStart+seg.Len {
			return seg.RawStart + offset - seg.TextStart
		}
	}
	last := block.Segments[len(block.Segments)-1]
	return last.RawStart + last.Len
}

// PositionAt converts a raw byte offset to the nearest block position.
// Offsets inside markup map to the next addressable text; offsets between
// blocks map to the start of the following block.
func (s *Service) PositionAt(doc *mdast.Document, raw int) mdast.Position {
	for idx := range doc.Blocks {
		block := &doc.Blocks[idx]
		if raw < block.Span.StartOffset {
			return mdast.Pos(idx, 0)
		}
		if raw > block.Span.EndOffset {
			continue
		}
		for _, seg := range block.Segments {
			if raw < seg.RawStart {
				return mdast.Pos(idx, seg.TextStart)
			}
			if raw <= seg.RawStart+seg.Len {
				return mdast.Pos(idx, seg.TextStart+raw-seg.RawStart)
			}
		}
		return mdast.Pos(idx, block.TextLen())
	}

	last := doc.Len() - 1
	if last < 0 {
		return mdast.Pos(0, 0)
	}
	return mdast.Pos(last, doc.Blocks[last].TextLen())
}
