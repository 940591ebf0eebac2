package mdast

import (
	"fmt"
	"strconv"
	"strings"
)

// NodeKind classifies the payload of a parsed block.
type NodeKind uint8

// Block node kinds.
const (
	NodeParagraph NodeKind = iota
	NodeHeading
	NodeList
	NodeCodeBlock
	NodeQuote
)

// String returns the node kind name.
func (k NodeKind) String() string {
	switch k {
	case NodeParagraph:
		return "paragraph"
	case NodeHeading:
		return "heading"
	case NodeList:
		return "list"
	case NodeCodeBlock:
		return "codeBlock"
	case NodeQuote:
		return "quote"
	default:
		return "unknown"
	}
}

// MarshalYAML encodes the kind by name.
func (k NodeKind) MarshalYAML() (any, error) {
	return k.String(), nil
}

// TypeKind enumerates the user-facing block types.
type TypeKind uint8

// Block type kinds.
const (
	TypeParagraph TypeKind = iota
	TypeHeading
	TypeCodeBlock
	TypeQuote
	TypeUnorderedList
	TypeOrderedList
)

// Heading levels.
const (
	MinHeadingLevel = 1
	MaxHeadingLevel = 6
)

// MaxListNumber is the largest ordered list number markdown accepts: nine
// digits, as in CommonMark.
const MaxListNumber = 999_999_999

// BlockType is the closed set of block types a block can be converted to.
// Level is meaningful only for headings.
type BlockType struct {
	Kind  TypeKind
	Level int
}

// Paragraph returns the paragraph block type.
func Paragraph() BlockType { return BlockType{Kind: TypeParagraph} }

// Heading returns the heading block type of the given level.
func Heading(level int) BlockType { return BlockType{Kind: TypeHeading, Level: level} }

// CodeBlock returns the fenced code block type.
func CodeBlock() BlockType { return BlockType{Kind: TypeCodeBlock} }

// Quote returns the block quote type.
func Quote() BlockType { return BlockType{Kind: TypeQuote} }

// UnorderedList returns the bullet list type.
func UnorderedList() BlockType { return BlockType{Kind: TypeUnorderedList} }

// OrderedList returns the numbered list type.
func OrderedList() BlockType { return BlockType{Kind: TypeOrderedList} }

// AllBlockTypes lists every block type in toolbar order.
func AllBlockTypes() []BlockType {
	types := []BlockType{Paragraph()}
	for level := MinHeadingLevel; level <= MaxHeadingLevel; level++ {
		types = append(types, Heading(level))
	}
	return append(types, CodeBlock(), Quote(), UnorderedList(), OrderedList())
}

// IsList returns true for both list kinds.
func (t BlockType) IsList() bool {
	return t.Kind == TypeUnorderedList || t.Kind == TypeOrderedList
}

// IsValid returns true if the type is well formed.
func (t BlockType) IsValid() bool {
	switch t.Kind {
	case TypeHeading:
		return t.Level >= MinHeadingLevel && t.Level <= MaxHeadingLevel
	case TypeParagraph, TypeCodeBlock, TypeQuote, TypeUnorderedList, TypeOrderedList:
		return t.Level == 0
	default:
		return false
	}
}

// String returns a short name: paragraph, h1..h6, code, quote, ul, ol.
func (t BlockType) String() string {
	switch t.Kind {
	case TypeParagraph:
		return "paragraph"
	case TypeHeading:
		return "h" + strconv.Itoa(t.Level)
	case TypeCodeBlock:
		return "code"
	case TypeQuote:
		return "quote"
	case TypeUnorderedList:
		return "ul"
	case TypeOrderedList:
		return "ol"
	default:
		return "unknown"
	}
}

// MarshalYAML encodes the type by name.
func (t BlockType) MarshalYAML() (any, error) {
	return t.String(), nil
}

// UnmarshalYAML decodes a type name.
func (t *BlockType) UnmarshalYAML(unmarshal func(any) error) error {
	var name string
	if err := unmarshal(&name); err != nil {
		return err
	}
	parsed, err := ParseBlockType(name)
	if err != nil {
		return err
	}
	*t = parsed
	return nil
}

// ParseBlockType converts a block type name to a BlockType.
func ParseBlockType(name string) (BlockType, error) {
	normalized := strings.ToLower(strings.TrimSpace(name))
	switch normalized {
	case "paragraph", "p", "text":
		return Paragraph(), nil
	case "code", "codeblock", "code-block":
		return CodeBlock(), nil
	case "quote", "blockquote":
		return Quote(), nil
	case "ul", "unordered", "unordered-list", "bullet":
		return UnorderedList(), nil
	case "ol", "ordered", "ordered-list", "numbered":
		return OrderedList(), nil
	}

	digits := strings.TrimPrefix(strings.TrimPrefix(normalized, "heading"), "h")
	if digits != normalized {
		level, err := strconv.Atoi(digits)
		if err == nil && level >= MinHeadingLevel && level <= MaxHeadingLevel {
			return Heading(level), nil
		}
	}

	return BlockType{}, fmt.Errorf("unknown block type %q", name)
}

// ListItem is one entry of a list block.
type ListItem struct {
	Text string `yaml:"text"`

	// Number is the item's literal number in ordered lists.
	Number int `yaml:"number,omitempty"`
}

// ListAttrs holds list-specific attributes.
type ListAttrs struct {
	// Ordered is true for numbered lists.
	Ordered bool `yaml:"ordered"`

	// Start is the first item's number for ordered lists.
	Start int `yaml:"start,omitempty"`

	// Marker is the bullet character for unordered lists ("-", "*", "+").
	Marker string `yaml:"marker,omitempty"`
}

// Segment maps a run of block text onto the raw content.
// Text offsets [TextStart, TextStart+Len] correspond to raw offsets
// [RawStart, RawStart+Len].
type Segment struct {
	TextStart int
	RawStart  int
	Len       int
}

// Block is one structural unit of a parsed document. Kind selects which
// payload fields are meaningful:
//
//   - NodeParagraph: Text
//   - NodeHeading:   Level, Text
//   - NodeList:      List, Items
//   - NodeCodeBlock: Language, Content
//   - NodeQuote:     Text
//
// Span, Lines and Segments describe where the block lives in the content it
// was parsed from. They are zero for blocks built by hand.
type Block struct {
	Kind NodeKind `yaml:"kind"`

	Level    int        `yaml:"level,omitempty"`
	Text     string     `yaml:"text,omitempty"`
	List     *ListAttrs `yaml:"list,omitempty"`
	Items    []ListItem `yaml:"items,omitempty"`
	Language string     `yaml:"language,omitempty"`
	Content  string     `yaml:"content,omitempty"`

	Span     SourceRange   `yaml:"-"`
	Lines    []SourceRange `yaml:"-"`
	Segments []Segment     `yaml:"-"`
}

// NewParagraph builds a paragraph block.
func NewParagraph(text string) Block {
	return Block{Kind: NodeParagraph, Text: text}
}

// NewHeading builds a heading block.
func NewHeading(level int, text string) Block {
	return Block{Kind: NodeHeading, Level: level, Text: text}
}

// NewBulletList builds an unordered list block.
func NewBulletList(items ...string) Block {
	return Block{Kind: NodeList, List: &ListAttrs{Marker: "-"}, Items: listItems(items, 0)}
}

// NewOrderedList builds an ordered list block numbered from start.
func NewOrderedList(start int, items ...string) Block {
	return Block{Kind: NodeList, List: &ListAttrs{Ordered: true, Start: start}, Items: listItems(items, start)}
}

// NewCodeBlock builds a fenced code block.
func NewCodeBlock(language, content string) Block {
	return Block{Kind: NodeCodeBlock, Language: language, Content: content}
}

// NewQuote builds a quote block.
func NewQuote(text string) Block {
	return Block{Kind: NodeQuote, Text: text}
}

func listItems(texts []string, start int) []ListItem {
	items := make([]ListItem, len(texts))
	for i, text := range texts {
		items[i] = ListItem{Text: text}
		if start > 0 {
			items[i].Number = start + i
		}
	}
	return items
}

// Type returns the user-facing block type.
func (b *Block) Type() BlockType {
	switch b.Kind {
	case NodeHeading:
		return Heading(b.Level)
	case NodeList:
		if b.List != nil && b.List.Ordered {
			return OrderedList()
		}
		return UnorderedList()
	case NodeCodeBlock:
		return CodeBlock()
	case NodeQuote:
		return Quote()
	default:
		return Paragraph()
	}
}

// IsOrdered returns true for ordered list blocks.
func (b *Block) IsOrdered() bool {
	return b.Kind == NodeList && b.List != nil && b.List.Ordered
}

// PlainText returns the addressable text of the block: list item texts are
// joined by newlines and code blocks expose their content.
func (b *Block) PlainText() string {
	switch b.Kind {
	case NodeList:
		texts := make([]string, len(b.Items))
		for i, item := range b.Items {
			texts[i] = item.Text
		}
		return strings.Join(texts, "\n")
	case NodeCodeBlock:
		return b.Content
	default:
		return b.Text
	}
}

// TextLen returns the length of PlainText in bytes.
func (b *Block) TextLen() int {
	return len(b.PlainText())
}

// ItemAt returns the index of the list item containing the text offset and
// the offset relative to the start of that item. It returns -1 for non-list
// blocks or offsets beyond the text.
func (b *Block) ItemAt(offset int) (int, int) {
	if b.Kind != NodeList {
		return -1, 0
	}
	start := 0
	for i, item := range b.Items {
		end := start + len(item.Text)
		if offset >= start && offset <= end {
			return i, offset - start
		}
		start = end + 1
	}
	return -1, 0
}

// ItemStart returns the text offset at which item index begins.
func (b *Block) ItemStart(index int) int {
	start := 0
	for i := 0; i < index && i < len(b.Items); i++ {
		start += len(b.Items[i].Text) + 1
	}
	return start
}
