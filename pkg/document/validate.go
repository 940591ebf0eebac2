package document

import (
	"context"
	"fmt"
	"unicode/utf8"
)

// Finding is a construct recognized by a full markdown parser.
// Line is 1-based; 0 means the parser recorded no position.
type Finding struct {
	Line      int
	Construct string
}

// Inspector detects constructs that the block model keeps as paragraph text.
type Inspector interface {
	Inspect(ctx context.Context, content []byte) ([]Finding, error)
}

// Issue is one validation message. Line is 1-based; 0 applies to the whole
// document.
type Issue struct {
	Line    int    `yaml:"line,omitempty"`
	Message string `yaml:"message"`
}

// String formats the issue as "line N: message".
func (i Issue) String() string {
	if i.Line == 0 {
		return i.Message
	}
	return fmt.Sprintf("line %d: %s", i.Line, i.Message)
}

// Validation is the outcome of ValidateDocument. Valid is false only when
// Errors is non-empty; warnings describe lossy but legal input.
type Validation struct {
	Valid    bool    `yaml:"valid"`
	Errors   []Issue `yaml:"errors,omitempty"`
	Warnings []Issue `yaml:"warnings,omitempty"`
}

// ValidateDocument reports whether text can be edited without loss.
// Parsing itself never fails; degradations found while parsing and
// constructs reported by the configured Inspector become warnings.
func (s *Service) ValidateDocument(ctx context.Context, text string) (Validation, error) {
	var result Validation

	if !utf8.ValidString(text) {
		result.Errors = append(result.Errors, Issue{Message: "content is not valid UTF-8"})
	}

	_, notes := parse(text)
	for _, n := range notes {
		result.Warnings = append(result.Warnings, Issue{Line: n.line + 1, Message: n.message})
	}

	if s.inspector != nil {
		findings, err := s.inspector.Inspect(ctx, []byte(text))
		if err != nil {
			return Validation{}, fmt.Errorf("inspect document: %w", err)
		}
		for _, f := range findings {
			result.Warnings = append(result.Warnings, Issue{
				Line:    f.Line,
				Message: f.Construct + " is not supported by the editor and is kept as text",
			})
		}
	}

	result.Valid = len(result.Errors) == 0
	return result, nil
}
