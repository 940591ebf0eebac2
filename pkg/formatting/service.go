// Package formatting implements the formatting service: inline formatting
// of selections, block type conversion, and the formatting and block type
// hints carried by editor states.
package formatting

import (
	"fmt"
	"strings"
	"time"

	"github.com/yaklabco/gomdedit/pkg/document"
	"github.com/yaklabco/gomdedit/pkg/editerr"
	"github.com/yaklabco/gomdedit/pkg/mdast"
)

// Operation selects how ApplyInlineFormatting treats the requested formats.
type Operation uint8

const (
	// OperationApply adds every requested format.
	OperationApply Operation = iota

	// OperationToggle removes requested formats the selection already
	// carries and adds the others.
	OperationToggle

	// OperationSet makes the selection carry exactly the requested formats.
	OperationSet
)

// String returns the operation name.
func (o Operation) String() string {
	switch o {
	case OperationApply:
		return "apply"
	case OperationToggle:
		return "toggle"
	case OperationSet:
		return "set"
	default:
		return "unknown"
	}
}

// ParseOperation converts an operation name.
func ParseOperation(name string) (Operation, error) {
	switch strings.ToLower(strings.TrimSpace(name)) {
	case "apply", "add":
		return OperationApply, nil
	case "", "toggle":
		return OperationToggle, nil
	case "set":
		return OperationSet, nil
	default:
		return 0, fmt.Errorf("unknown formatting operation %q", name)
	}
}

// LanguageDetector guesses a fence tag for code block content.
// It returns "" when unsure.
type LanguageDetector func(content string) string

// Service applies formatting to editor states. It is stateless apart from
// its configuration and safe for concurrent use.
type Service struct {
	docs   *document.Service
	rules  Rules
	now    func() time.Time
	detect LanguageDetector
}

// Option configures a Service.
type Option func(*Service)

// WithRules replaces the default formatting rules.
func WithRules(rules Rules) Option {
	return func(s *Service) {
		s.rules = rules
	}
}

// WithClock sets the time source used for state metadata.
func WithClock(now func() time.Time) Option {
	return func(s *Service) {
		s.now = now
	}
}

// WithLanguageDetector tags code blocks created by SetBlockType.
func WithLanguageDetector(detect LanguageDetector) Option {
	return func(s *Service) {
		s.detect = detect
	}
}

// New creates a formatting service backed by docs.
func New(docs *document.Service, opts ...Option) *Service {
	s := &Service{
		docs:  docs,
		rules: DefaultRules(),
		now:   time.Now,
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Rules returns the active formatting rules.
func (s *Service) Rules() Rules {
	return s.rules
}

// Now returns the current time from the configured clock.
func (s *Service) Now() time.Time {
	return s.now()
}

// Recompute refreshes the formatting and block type hints of st from its
// content. A state whose selection does not address its content is
// returned unchanged.
func (s *Service) Recompute(st mdast.EditorState) mdast.EditorState {
	doc := s.docs.Parse(st.Content)
	r := st.Selection.Normalized()
	if s.docs.ValidateRange(doc, r) != nil {
		return st
	}
	return st.WithHints(s.formattingIn(doc, r), doc.Block(r.Start.Block).Type())
}

// Derive advances prev to new content and selection and recomputes hints.
// A selection that does not address the new content is reported as a
// corrupted state rather than carried forward with stale hints.
func (s *Service) Derive(prev mdast.EditorState, content string, selection mdast.Range) (mdast.EditorState, error) {
	doc := s.docs.Parse(content)
	r := selection.Normalized()
	if err := s.docs.ValidateRange(doc, r); err != nil {
		return mdast.EditorState{}, editerr.New(editerr.KindEditorStateCorrupted,
			"selection %s does not address the new content: %v", selection, err)
	}
	next := prev.Advance(content, selection, s.now())
	return next.WithHints(s.formattingIn(doc, r), doc.Block(r.Start.Block).Type()), nil
}

// FormattingAt returns the inline formatting active at pos.
func (s *Service) FormattingAt(pos mdast.Position, st mdast.EditorState) (mdast.InlineFormatting, error) {
	return s.FormattingIn(mdast.Cursor(pos), st)
}

// FormattingIn returns the inline formatting shared by the whole range.
// Ranges across blocks share nothing.
func (s *Service) FormattingIn(r mdast.Range, st mdast.EditorState) (mdast.InlineFormatting, error) {
	doc := s.docs.Parse(st.Content)
	r = r.Normalized()
	if err := s.docs.ValidateRange(doc, r); err != nil {
		return 0, err
	}
	return s.formattingIn(doc, r), nil
}

// BlockTypeAt returns the type of the block containing pos.
func (s *Service) BlockTypeAt(pos mdast.Position, st mdast.EditorState) (mdast.BlockType, error) {
	doc := s.docs.Parse(st.Content)
	if err := s.docs.ValidatePosition(doc, pos); err != nil {
		return mdast.BlockType{}, err
	}
	return doc.Block(pos.Block).Type(), nil
}

func (s *Service) formattingIn(doc *mdast.Document, r mdast.Range) mdast.InlineFormatting {
	if r.IsMultiBlock() {
		return 0
	}
	block := doc.Block(r.Start.Block)
	if !s.rules.AllowsInline(block.Type()) {
		return 0
	}
	u := unitAt(block, r.Start.Offset)
	start := r.Start.Offset - u.base
	end := min(r.End.Offset-u.base, len(u.text))
	return document.FormatsIn(document.ParseInline(u.text), start, end)
}

// unit is the text that inline spans live in: a whole block, or one list
// item. base is the block text offset where the unit starts.
type unit struct {
	text string
	base int
	item int
}

func unitAt(block *mdast.Block, offset int) unit {
	if block.Kind != mdast.NodeList {
		return unit{text: block.PlainText(), item: -1}
	}
	item, _ := block.ItemAt(offset)
	if item < 0 {
		item = len(block.Items) - 1
	}
	return unit{text: block.Items[item].Text, base: block.ItemStart(item), item: item}
}

// CanApplyFormatting reports whether ApplyInlineFormatting with
// OperationToggle would succeed for set over r.
func (s *Service) CanApplyFormatting(set mdast.InlineFormatting, r mdast.Range, st mdast.EditorState) bool {
	_, err := s.ApplyInlineFormatting(set, r, st, OperationToggle)
	return err == nil
}

// ValidFormattingOptions lists the inline formats that can be toggled over
// r in canonical order.
func (s *Service) ValidFormattingOptions(r mdast.Range, st mdast.EditorState) []mdast.InlineFormat {
	var options []mdast.InlineFormat
	for _, f := range mdast.AllFormats {
		if s.CanApplyFormatting(mdast.Formatting(f), r, st) {
			options = append(options, f)
		}
	}
	return options
}

// CanSetBlockType reports whether SetBlockType would succeed.
func (s *Service) CanSetBlockType(t mdast.BlockType, pos mdast.Position, st mdast.EditorState) bool {
	_, err := s.SetBlockType(t, pos, st)
	return err == nil
}

// ValidBlockTypeOptions lists the block types the block at pos can take.
func (s *Service) ValidBlockTypeOptions(pos mdast.Position, st mdast.EditorState) []mdast.BlockType {
	var options []mdast.BlockType
	for _, t := range mdast.AllBlockTypes() {
		if s.CanSetBlockType(t, pos, st) {
			options = append(options, t)
		}
	}
	return options
}
