// Package state creates, validates and compares editor state snapshots.
package state

import (
	"errors"
	"fmt"

	"github.com/yaklabco/gomdedit/pkg/document"
	"github.com/yaklabco/gomdedit/pkg/editerr"
	"github.com/yaklabco/gomdedit/pkg/fix"
	"github.com/yaklabco/gomdedit/pkg/formatting"
	"github.com/yaklabco/gomdedit/pkg/mdast"
)

// Service builds and inspects editor states. It is safe for concurrent use.
type Service struct {
	docs       *document.Service
	formatting *formatting.Service
}

// New creates a state service.
func New(docs *document.Service, fmtService *formatting.Service) *Service {
	return &Service{docs: docs, formatting: fmtService}
}

// Validation is the outcome of Validate.
type Validation struct {
	Valid  bool
	Errors []error
}

// Err joins the validation errors, or returns nil for a valid state.
func (v Validation) Err() error {
	return errors.Join(v.Errors...)
}

// Validate checks a state against a fresh parse of its content.
func (s *Service) Validate(st mdast.EditorState) Validation {
	var result Validation

	doc := s.docs.Parse(st.Content)
	if err := s.docs.ValidatePosition(doc, st.Selection.Start); err != nil {
		result.Errors = append(result.Errors, fmt.Errorf("selection start: %w", err))
	}
	if err := s.docs.ValidatePosition(doc, st.Selection.End); err != nil {
		result.Errors = append(result.Errors, fmt.Errorf("selection end: %w", err))
	}
	if !st.CurrentBlockType.IsValid() {
		result.Errors = append(result.Errors,
			editerr.New(editerr.KindEditorStateCorrupted, "invalid block type %s", st.CurrentBlockType))
	}
	if st.Metadata.Version < 0 {
		result.Errors = append(result.Errors,
			editerr.New(editerr.KindEditorStateCorrupted, "negative version %d", st.Metadata.Version))
	}
	if st.Metadata.ModifiedAt.Before(st.Metadata.CreatedAt) {
		result.Errors = append(result.Errors,
			editerr.New(editerr.KindEditorStateCorrupted, "modified before created"))
	}

	result.Valid = len(result.Errors) == 0
	return result
}

// Create builds the initial state for content with the cursor at pos.
func (s *Service) Create(content string, cursor mdast.Position) (mdast.EditorState, error) {
	doc := s.docs.Parse(content)
	if err := s.docs.ValidatePosition(doc, cursor); err != nil {
		return mdast.EditorState{}, err
	}

	now := s.formatting.Now()
	st := mdast.EditorState{
		Content:   content,
		Selection: mdast.Cursor(cursor),
		Metadata:  mdast.Metadata{CreatedAt: now, ModifiedAt: now},
	}
	return s.formatting.Recompute(st), nil
}

// UpdateSelection moves the selection and refreshes the formatting and
// block type hints. Content is unchanged.
func (s *Service) UpdateSelection(st mdast.EditorState, r mdast.Range) (mdast.EditorState, error) {
	doc := s.docs.Parse(st.Content)
	if err := s.docs.ValidateRange(doc, r.Normalized()); err != nil {
		return mdast.EditorState{}, err
	}
	return s.formatting.Recompute(st.WithSelection(r)), nil
}

// Derive builds the successor of prev holding new content and selection.
func (s *Service) Derive(prev mdast.EditorState, content string, selection mdast.Range) (mdast.EditorState, error) {
	return s.formatting.Derive(prev, content, selection)
}

// Equivalent compares content, selection, formatting and block type.
func (s *Service) Equivalent(a, b mdast.EditorState) bool {
	return a.Equivalent(b)
}

// Diff is a coarse description of the change between two states, used for
// change notification rather than patching.
type Diff struct {
	ContentChanged    bool
	SelectionChanged  bool
	FormattingChanged bool
	BlockTypeChanged  bool

	// ContentChanges holds the line hunks of the content change.
	ContentChanges []fix.DiffHunk

	// IsSignificant is set when the document itself changed: its content
	// or the type of the block under the cursor.
	IsSignificant bool
}

// IsEmpty returns true if nothing changed.
func (d Diff) IsEmpty() bool {
	return !d.ContentChanged && !d.SelectionChanged && !d.FormattingChanged && !d.BlockTypeChanged
}

// Diff describes the change from one state to another.
func (s *Service) Diff(from, to mdast.EditorState) Diff {
	d := Diff{
		ContentChanged:    from.Content != to.Content,
		SelectionChanged:  from.Selection != to.Selection,
		FormattingChanged: from.CurrentFormatting != to.CurrentFormatting,
		BlockTypeChanged:  from.CurrentBlockType != to.CurrentBlockType,
	}
	if diff := fix.GenerateDiff("", from.Content, to.Content); diff != nil {
		d.ContentChanges = diff.Hunks
	}
	d.IsSignificant = d.ContentChanged || d.BlockTypeChanged
	return d
}
