package document

import (
	"strconv"
	"strings"

	"github.com/yaklabco/gomdedit/pkg/mdast"
)

// lineKind classifies a raw line by its markdown prefix.
type lineKind uint8

const (
	lineBlank lineKind = iota
	lineText
	lineHeading
	lineBullet
	lineOrdered
	lineQuote
	lineFence
)

// maxFenceIndent is the number of spaces allowed before a fence or quote marker.
const maxFenceIndent = 3

// maxOrderedDigits bounds ordered list numbers, as CommonMark does.
const maxOrderedDigits = 9

// scannedLine is one classified line of raw content.
type scannedLine struct {
	kind lineKind

	// raw is the line's byte range, excluding the newline.
	raw mdast.SourceRange

	// contentStart is the raw offset where the block text of the line begins.
	contentStart int

	// text is the line's block text after the prefix is stripped.
	text string

	level    int    // heading level
	marker   string // bullet character or "N."
	number   int    // ordered list number
	language string // fence info token

	// overflowHeading is set for "#######" lines that degrade to text.
	overflowHeading bool
}

// note records a permissive-parse degradation, reported by ValidateDocument.
type note struct {
	line    int
	message string
}

// Parse converts raw markdown into a block sequence. Parsing never fails:
// malformed or unterminated markup degrades to paragraph text. The result
// always holds at least one block.
func Parse(text string) *mdast.Document {
	doc, _ := parse(text)
	return doc
}

func parse(text string) (*mdast.Document, []note) {
	doc := &mdast.Document{
		Source: text,
		Lines:  mdast.BuildLines(text),
	}

	lines := make([]scannedLine, len(doc.Lines))
	for i, info := range doc.Lines {
		lines[i] = classifyLine(text, info)
	}

	var notes []note
	fenceEnd := resolveFences(text, lines, &notes)

	for idx := 0; idx < len(lines); {
		line := lines[idx]
		switch line.kind {
		case lineBlank:
			idx++
		case lineFence:
			end := fenceEnd[idx]
			doc.Blocks = append(doc.Blocks, buildCodeBlock(text, lines[idx:end+1]))
			idx = end + 1
		case lineHeading:
			doc.Blocks = append(doc.Blocks, buildHeading(line))
			idx++
		case lineBullet, lineOrdered:
			end := runEnd(lines, idx, line.kind)
			doc.Blocks = append(doc.Blocks, buildList(lines[idx:end]))
			idx = end
		case lineQuote:
			end := runEnd(lines, idx, lineQuote)
			doc.Blocks = append(doc.Blocks, buildTextBlock(mdast.NodeQuote, lines[idx:end]))
			idx = end
		default:
			end := runEnd(lines, idx, lineText)
			doc.Blocks = append(doc.Blocks, buildTextBlock(mdast.NodeParagraph, lines[idx:end]))
			idx = end
		}
	}

	for i, line := range lines {
		switch {
		case line.kind == lineHeading && line.text == "":
			notes = append(notes, note{line: i, message: "heading has no text"})
		case line.overflowHeading:
			notes = append(notes, note{line: i, message: "more than six '#' characters; kept as paragraph text"})
		}
	}

	switch {
	case len(doc.Blocks) == 0:
		doc.Blocks = []mdast.Block{emptyParagraph(0)}
	case endsWithBlankLine(lines):
		// The cursor on a trailing empty line sits in an empty paragraph.
		last := doc.Lines[len(doc.Lines)-1]
		doc.Blocks = append(doc.Blocks, emptyParagraph(last.StartOffset))
	}

	return doc, notes
}

// classifyLine determines the kind of a single raw line.
func classifyLine(text string, info mdast.LineInfo) scannedLine {
	raw := text[info.StartOffset:info.NewlineStart]
	line := scannedLine{
		kind: lineText,
		raw:  mdast.SourceRange{StartOffset: info.StartOffset, EndOffset: info.NewlineStart},
		text: raw,
	}
	line.contentStart = info.StartOffset

	if strings.TrimSpace(raw) == "" {
		line.kind = lineBlank
		return line
	}

	indent := len(raw) - len(strings.TrimLeft(raw, " \t"))
	body := raw[indent:]

	switch {
	case indent <= maxFenceIndent && strings.HasPrefix(body, "```"):
		line.kind = lineFence
		info := strings.TrimSpace(strings.TrimLeft(body, "`"))
		if fields := strings.Fields(info); len(fields) > 0 {
			line.language = fields[0]
		}
	case indent == 0 && strings.HasPrefix(body, "#"):
		classifyHeading(&line, raw)
	case indent <= maxFenceIndent && strings.HasPrefix(body, ">"):
		rest := body[1:]
		if strings.HasPrefix(rest, " ") {
			rest = rest[1:]
		}
		line.kind = lineQuote
		line.text = rest
		line.contentStart = info.NewlineStart - len(rest)
	default:
		classifyListItem(&line, raw, indent)
	}

	return line
}

func classifyHeading(line *scannedLine, raw string) {
	hashes := len(raw) - len(strings.TrimLeft(raw, "#"))
	rest := raw[hashes:]
	if rest != "" && rest[0] != ' ' && rest[0] != '\t' {
		return
	}
	if hashes > mdast.MaxHeadingLevel {
		line.overflowHeading = true
		return
	}

	text := strings.TrimSpace(rest)
	line.kind = lineHeading
	line.level = hashes
	line.text = text
	if text == "" {
		line.contentStart = line.raw.EndOffset
		return
	}
	line.contentStart = line.raw.StartOffset + hashes + strings.Index(rest, text)
}

func classifyListItem(line *scannedLine, raw string, indent int) {
	body := raw[indent:]

	var markerLen int
	switch {
	case body[0] == '-' || body[0] == '*' || body[0] == '+':
		markerLen = 1
		line.kind = lineBullet
	default:
		digits := len(body) - len(strings.TrimLeft(body, "0123456789"))
		if digits == 0 || digits > maxOrderedDigits || digits >= len(body) || body[digits] != '.' {
			return
		}
		number, err := strconv.Atoi(body[:digits])
		if err != nil {
			return
		}
		markerLen = digits + 1
		line.kind = lineOrdered
		line.number = number
	}

	rest := body[markerLen:]
	if rest != "" && rest[0] != ' ' && rest[0] != '\t' {
		line.kind = lineText
		line.number = 0
		return
	}

	line.marker = body[:markerLen]
	line.text = strings.TrimLeft(rest, " \t")
	line.contentStart = line.raw.EndOffset - len(line.text)
}

// resolveFences pairs opening and closing fence lines. Unterminated fences
// degrade to text. The returned map sends an opening line index to its
// closing line index.
func resolveFences(text string, lines []scannedLine, notes *[]note) map[int]int {
	fenceEnd := make(map[int]int)
	for idx := 0; idx < len(lines); idx++ {
		if lines[idx].kind != lineFence {
			continue
		}
		closing := -1
		for j := idx + 1; j < len(lines); j++ {
			if lines[j].kind == lineFence {
				closing = j
				break
			}
		}
		if closing < 0 {
			lines[idx].kind = lineText
			lines[idx].text = text[lines[idx].raw.StartOffset:lines[idx].raw.EndOffset]
			lines[idx].contentStart = lines[idx].raw.StartOffset
			*notes = append(*notes, note{line: idx, message: "unterminated code fence; kept as paragraph text"})
			continue
		}
		fenceEnd[idx] = closing
		idx = closing
	}
	return fenceEnd
}

// runEnd returns the index just past the run of lines of the given kind
// starting at start.
func runEnd(lines []scannedLine, start int, kind lineKind) int {
	end := start + 1
	for end < len(lines) && lines[end].kind == kind {
		end++
	}
	return end
}

func endsWithBlankLine(lines []scannedLine) bool {
	n := len(lines)
	return n >= 2 && lines[n-1].kind == lineBlank && lines[n-2].kind == lineBlank
}

func emptyParagraph(offset int) mdast.Block {
	return mdast.Block{
		Kind:     mdast.NodeParagraph,
		Span:     mdast.SourceRange{StartOffset: offset, EndOffset: offset},
		Lines:    []mdast.SourceRange{{StartOffset: offset, EndOffset: offset}},
		Segments: []mdast.Segment{{TextStart: 0, RawStart: offset, Len: 0}},
	}
}

func buildHeading(line scannedLine) mdast.Block {
	return mdast.Block{
		Kind:     mdast.NodeHeading,
		Level:    line.level,
		Text:     line.text,
		Span:     line.raw,
		Lines:    []mdast.SourceRange{line.raw},
		Segments: []mdast.Segment{{TextStart: 0, RawStart: line.contentStart, Len: len(line.text)}},
	}
}

// buildTextBlock joins the text of a run of paragraph or quote lines.
func buildTextBlock(kind mdast.NodeKind, run []scannedLine) mdast.Block {
	block := mdast.Block{Kind: kind, Span: spanOf(run)}
	texts := make([]string, len(run))
	textStart := 0
	for i, line := range run {
		texts[i] = line.text
		block.Lines = append(block.Lines, line.raw)
		block.Segments = append(block.Segments, mdast.Segment{
			TextStart: textStart,
			RawStart:  line.contentStart,
			Len:       len(line.text),
		})
		textStart += len(line.text) + 1
	}
	block.Text = strings.Join(texts, "\n")
	return block
}

func buildList(run []scannedLine) mdast.Block {
	first := run[0]
	attrs := &mdast.ListAttrs{Ordered: first.kind == lineOrdered}
	if attrs.Ordered {
		attrs.Start = first.number
	} else {
		attrs.Marker = first.marker
	}

	block := mdast.Block{Kind: mdast.NodeList, List: attrs, Span: spanOf(run)}
	textStart := 0
	for _, line := range run {
		block.Items = append(block.Items, mdast.ListItem{Text: line.text, Number: line.number})
		block.Lines = append(block.Lines, line.raw)
		block.Segments = append(block.Segments, mdast.Segment{
			TextStart: textStart,
			RawStart:  line.contentStart,
			Len:       len(line.text),
		})
		textStart += len(line.text) + 1
	}
	return block
}

// buildCodeBlock builds a fenced block from its opening line through its
// closing line. A block without content lines has no segments.
func buildCodeBlock(text string, run []scannedLine) mdast.Block {
	block := mdast.Block{
		Kind:     mdast.NodeCodeBlock,
		Language: run[0].language,
		Span:     spanOf(run),
	}
	for _, line := range run {
		block.Lines = append(block.Lines, line.raw)
	}

	body := run[1 : len(run)-1]
	contents := make([]string, len(body))
	textStart := 0
	for i, line := range body {
		raw := text[line.raw.StartOffset:line.raw.EndOffset]
		contents[i] = raw
		block.Segments = append(block.Segments, mdast.Segment{
			TextStart: textStart,
			RawStart:  line.raw.StartOffset,
			Len:       len(raw),
		})
		textStart += len(raw) + 1
	}
	block.Content = strings.Join(contents, "\n")
	return block
}

func spanOf(run []scannedLine) mdast.SourceRange {
	return mdast.SourceRange{
		StartOffset: run[0].raw.StartOffset,
		EndOffset:   run[len(run)-1].raw.EndOffset,
	}
}
