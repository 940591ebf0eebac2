package document

import (
	"strings"

	"github.com/rivo/uniseg"

	"github.com/yaklabco/gomdedit/pkg/mdast"
)

// Stats summarizes a document.
type Stats struct {
	// Characters counts user-perceived characters (grapheme clusters) of
	// the raw content.
	Characters int `yaml:"characters"`

	// Words counts whitespace-separated words of the block text.
	Words int `yaml:"words"`

	Blocks     int `yaml:"blocks"`
	Headings   int `yaml:"headings"`
	Paragraphs int `yaml:"paragraphs"`
	Lists      int `yaml:"lists"`
	ListItems  int `yaml:"list_items"`
	CodeBlocks int `yaml:"code_blocks"`
	Quotes     int `yaml:"quotes"`
}

// Stats computes document statistics. Empty paragraphs are not counted.
func (s *Service) Stats(text string) Stats {
	doc := Parse(text)
	stats := Stats{Characters: uniseg.GraphemeClusterCount(text)}

	for i := range doc.Blocks {
		block := &doc.Blocks[i]
		plain := block.PlainText()
		stats.Words += len(strings.Fields(plain))

		switch block.Kind {
		case mdast.NodeParagraph:
			if plain == "" {
				continue
			}
			stats.Paragraphs++
		case mdast.NodeHeading:
			stats.Headings++
		case mdast.NodeList:
			stats.Lists++
			stats.ListItems += len(block.Items)
		case mdast.NodeCodeBlock:
			stats.CodeBlocks++
		case mdast.NodeQuote:
			stats.Quotes++
		}
		stats.Blocks++
	}

	return stats
}
