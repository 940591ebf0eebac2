// Package script decodes and runs edit scripts: YAML lists of editing steps
// replayed through a session. Scripts drive the apply command and give
// tests a compact way to describe editing sequences.
package script

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"os"
	"strings"

	"gopkg.in/yaml.v3"

	"github.com/yaklabco/gomdedit/pkg/mdast"
)

// Op names a script step.
type Op string

// Step operations.
const (
	OpInsertText      Op = "insert_text"
	OpDeleteText      Op = "delete_text"
	OpSetBlockType    Op = "set_block_type"
	OpApplyFormatting Op = "apply_formatting"
	OpSmartEnter      Op = "smart_enter"
	OpSmartBackspace  Op = "smart_backspace"
	OpGroup           Op = "group"
	OpSelect          Op = "select"
	OpUndo            Op = "undo"
	OpRedo            Op = "redo"
	OpMarkSaved       Op = "mark_saved"
)

var knownOps = []Op{
	OpInsertText, OpDeleteText, OpSetBlockType, OpApplyFormatting,
	OpSmartEnter, OpSmartBackspace, OpGroup, OpSelect, OpUndo, OpRedo, OpMarkSaved,
}

// ErrInvalidScript is returned for scripts that decode but cannot run.
var ErrInvalidScript = errors.New("invalid script")

// Script is a named sequence of steps.
type Script struct {
	Name  string `yaml:"name,omitempty"`
	Steps []Step `yaml:"steps"`
}

// Step is one scripted action. Which fields apply depends on Op. Omitted
// positions and ranges default to the cursor and selection of the state
// the step runs against.
type Step struct {
	Op Op `yaml:"op"`

	// At is the position for insert_text, set_block_type and the smart
	// commands.
	At *mdast.Position `yaml:"at,omitempty"`

	// Range is the range for delete_text, apply_formatting and select.
	Range *mdast.Range `yaml:"range,omitempty"`

	// Text is inserted by insert_text.
	Text string `yaml:"text,omitempty"`

	// Type is the block type name for set_block_type, such as "h2" or "ul".
	Type string `yaml:"type,omitempty"`

	// Formats and Operation configure apply_formatting. Operation
	// defaults to toggle.
	Formats   mdast.InlineFormatting `yaml:"formats,omitempty"`
	Operation string                 `yaml:"operation,omitempty"`

	// Label and Steps describe a group, run as one undoable command.
	Label string `yaml:"label,omitempty"`
	Steps []Step `yaml:"steps,omitempty"`
}

// Parse decodes a script. Unknown keys and operations are errors.
func Parse(data []byte) (*Script, error) {
	sc := &Script{}
	decoder := yaml.NewDecoder(bytes.NewReader(data))
	decoder.KnownFields(true)
	if err := decoder.Decode(sc); err != nil {
		if errors.Is(err, io.EOF) {
			return sc, nil
		}
		return nil, fmt.Errorf("parse script: %w", err)
	}
	if err := sc.Validate(); err != nil {
		return nil, err
	}
	return sc, nil
}

// Load reads and decodes a script file.
func Load(path string) (*Script, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read script: %w", err)
	}
	sc, err := Parse(data)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	return sc, nil
}

// Validate checks step operations and their required fields.
func (s *Script) Validate() error {
	return validateSteps(s.Steps, "")
}

func validateSteps(steps []Step, prefix string) error {
	for i, step := range steps {
		where := fmt.Sprintf("%sstep %d", prefix, i+1)
		if err := step.validate(); err != nil {
			return fmt.Errorf("%w: %s: %w", ErrInvalidScript, where, err)
		}
		if step.Op == OpGroup {
			if err := validateSteps(step.Steps, where+"."); err != nil {
				return err
			}
		}
	}
	return nil
}

func (s Step) validate() error {
	switch s.Op {
	case OpInsertText:
		if s.Text == "" {
			return errors.New("insert_text needs text")
		}
	case OpSetBlockType:
		if _, err := mdast.ParseBlockType(s.Type); err != nil {
			return err
		}
	case OpApplyFormatting:
		if s.Formats.IsEmpty() && !strings.EqualFold(strings.TrimSpace(s.Operation), "set") {
			return errors.New("apply_formatting needs formats")
		}
	case OpSelect:
		if s.Range == nil {
			return errors.New("select needs a range")
		}
	case OpGroup:
		if len(s.Steps) == 0 {
			return errors.New("group needs steps")
		}
		for _, sub := range s.Steps {
			if !sub.Op.isCommand() {
				return fmt.Errorf("%s cannot be grouped", sub.Op)
			}
		}
	case OpDeleteText, OpSmartEnter, OpSmartBackspace, OpUndo, OpRedo, OpMarkSaved:
	default:
		return fmt.Errorf("unknown op %q (want one of %s)", s.Op, opList())
	}
	return nil
}

// isCommand reports whether the op maps to an editing command.
func (o Op) isCommand() bool {
	switch o {
	case OpInsertText, OpDeleteText, OpSetBlockType, OpApplyFormatting,
		OpSmartEnter, OpSmartBackspace, OpGroup:
		return true
	default:
		return false
	}
}

func opList() string {
	names := make([]string, len(knownOps))
	for i, op := range knownOps {
		names[i] = string(op)
	}
	return strings.Join(names, ", ")
}
