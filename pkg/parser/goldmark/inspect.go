package goldmark

import (
	"bytes"

	"github.com/yuin/goldmark/ast"
	east "github.com/yuin/goldmark/extension/ast"

	"github.com/yaklabco/gomdedit/pkg/document"
)

// Construct names reported by Inspect.
const (
	ConstructThematicBreak = "thematic break"
	ConstructHTMLBlock     = "HTML block"
	ConstructIndentedCode  = "indented code block"
	ConstructSetextHeading = "setext heading"
	ConstructTable         = "table"
	ConstructNestedList    = "nested list"
)

// inspector walks a goldmark AST looking for block constructs that the line
// based editor model flattens into paragraphs.
type inspector struct {
	content  []byte
	findings []document.Finding
}

func newInspector(content []byte) *inspector {
	return &inspector{content: content}
}

func (p *inspector) collect(root ast.Node) []document.Finding {
	_ = ast.Walk(root, func(node ast.Node, entering bool) (ast.WalkStatus, error) {
		if !entering {
			return ast.WalkContinue, nil
		}
		if construct, ok := p.classify(node); ok {
			p.findings = append(p.findings, document.Finding{
				Line:      p.lineOf(node),
				Construct: construct,
			})
		}
		return ast.WalkContinue, nil
	})
	return p.findings
}

func (p *inspector) classify(node ast.Node) (string, bool) {
	switch n := node.(type) {
	case *ast.ThematicBreak:
		return ConstructThematicBreak, true
	case *ast.HTMLBlock:
		return ConstructHTMLBlock, true
	case *ast.CodeBlock:
		return ConstructIndentedCode, true
	case *ast.Heading:
		if p.isSetext(n) {
			return ConstructSetextHeading, true
		}
	case *east.Table:
		return ConstructTable, true
	case *ast.List:
		if _, nested := n.Parent().(*ast.ListItem); nested {
			return ConstructNestedList, true
		}
	}
	return "", false
}

// isSetext reports whether a heading was written with an underline rather
// than a '#' prefix.
func (p *inspector) isSetext(heading *ast.Heading) bool {
	start := p.startOf(heading)
	if start < 0 {
		return false
	}
	lineStart := bytes.LastIndexByte(p.content[:start], '\n') + 1
	return !bytes.HasPrefix(bytes.TrimLeft(p.content[lineStart:], " \t"), []byte("#"))
}

// lineOf returns the 1-based line of a node, or 0 when goldmark recorded no
// source position for it.
func (p *inspector) lineOf(node ast.Node) int {
	start := p.startOf(node)
	if start < 0 {
		return 0
	}
	return bytes.Count(p.content[:start], []byte("\n")) + 1
}

// startOf finds the first byte offset recorded for node or its descendants.
func (p *inspector) startOf(node ast.Node) int {
	if node.Type() == ast.TypeBlock {
		if lines := node.Lines(); lines.Len() > 0 {
			return lines.At(0).Start
		}
	}
	if t, ok := node.(*ast.Text); ok {
		return t.Segment.Start
	}
	for child := node.FirstChild(); child != nil; child = child.NextSibling() {
		if start := p.startOf(child); start >= 0 {
			return start
		}
	}
	return -1
}
