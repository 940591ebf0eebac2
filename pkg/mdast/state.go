package mdast

import "time"

// Metadata records the lifecycle of an editor state.
type Metadata struct {
	CreatedAt  time.Time `yaml:"created_at"`
	ModifiedAt time.Time `yaml:"modified_at"`
	Version    int       `yaml:"version"`
}

// EditorState is an immutable snapshot of an editable document.
//
// Content is the single source of truth. CurrentFormatting and
// CurrentBlockType describe the selection's context at the time the state
// was produced and are recomputed from Content after every command.
// EditorState holds no references, so copies never observe each other.
type EditorState struct {
	Content           string           `yaml:"content"`
	Selection         Range            `yaml:"selection"`
	CurrentFormatting InlineFormatting `yaml:"current_formatting"`
	CurrentBlockType  BlockType        `yaml:"current_block_type"`
	HasUnsavedChanges bool             `yaml:"has_unsaved_changes"`
	Metadata          Metadata         `yaml:"metadata"`
}

// Cursor returns the selection start.
func (s EditorState) Cursor() Position {
	return s.Selection.Start
}

// WithSelection returns a copy with a different selection.
func (s EditorState) WithSelection(r Range) EditorState {
	s.Selection = r
	return s
}

// WithHints returns a copy with the given formatting and block type hints.
func (s EditorState) WithHints(formatting InlineFormatting, blockType BlockType) EditorState {
	s.CurrentFormatting = formatting
	s.CurrentBlockType = blockType
	return s
}

// Advance returns the successor of s holding new content and selection.
// The version is bumped and the state is marked unsaved when the content
// changes.
func (s EditorState) Advance(content string, selection Range, now time.Time) EditorState {
	next := s
	next.Selection = selection
	if content != s.Content {
		next.Content = content
		next.HasUnsavedChanges = true
		next.Metadata.Version = s.Metadata.Version + 1
		next.Metadata.ModifiedAt = now
	}
	return next
}

// MarkSaved returns a copy with HasUnsavedChanges cleared.
func (s EditorState) MarkSaved() EditorState {
	s.HasUnsavedChanges = false
	return s
}

// Equivalent compares content, selection, formatting and block type,
// ignoring save status and metadata.
func (s EditorState) Equivalent(other EditorState) bool {
	return s.Content == other.Content &&
		s.Selection == other.Selection &&
		s.CurrentFormatting == other.CurrentFormatting &&
		s.CurrentBlockType == other.CurrentBlockType
}
