package mdast

import (
	"fmt"
	"strings"
)

// InlineFormat is a single inline formatting attribute.
type InlineFormat uint8

// Inline formats. Values are bit flags so they can be combined in an
// InlineFormatting set.
const (
	FormatBold InlineFormat = 1 << iota
	FormatItalic
	FormatStrikethrough
	FormatCode
)

// AllFormats lists every inline format in canonical order.
//
//nolint:gochecknoglobals // Read-only lookup table.
var AllFormats = []InlineFormat{FormatBold, FormatItalic, FormatStrikethrough, FormatCode}

// String returns the format name.
func (f InlineFormat) String() string {
	switch f {
	case FormatBold:
		return "bold"
	case FormatItalic:
		return "italic"
	case FormatStrikethrough:
		return "strikethrough"
	case FormatCode:
		return "code"
	default:
		return "unknown"
	}
}

// Marker returns the markdown delimiter for the format.
func (f InlineFormat) Marker() string {
	switch f {
	case FormatBold:
		return "**"
	case FormatItalic:
		return "*"
	case FormatStrikethrough:
		return "~~"
	case FormatCode:
		return "`"
	default:
		return ""
	}
}

// ParseInlineFormat converts a name such as "bold" or "strike" to a format.
func ParseInlineFormat(name string) (InlineFormat, bool) {
	switch strings.ToLower(strings.TrimSpace(name)) {
	case "bold", "strong":
		return FormatBold, true
	case "italic", "emphasis", "em":
		return FormatItalic, true
	case "strikethrough", "strike":
		return FormatStrikethrough, true
	case "code":
		return FormatCode, true
	default:
		return 0, false
	}
}

// InlineFormatting is a set of inline formats. The zero value is the empty set.
// Compatibility between members is not enforced here.
type InlineFormatting uint8

// Formatting builds a set from the given formats.
func Formatting(formats ...InlineFormat) InlineFormatting {
	var set InlineFormatting
	for _, f := range formats {
		set |= InlineFormatting(f)
	}
	return set
}

// Has returns true if f is a member of the set.
func (s InlineFormatting) Has(f InlineFormat) bool {
	return s&InlineFormatting(f) != 0
}

// With returns the set plus f.
func (s InlineFormatting) With(f InlineFormat) InlineFormatting {
	return s | InlineFormatting(f)
}

// Without returns the set minus f.
func (s InlineFormatting) Without(f InlineFormat) InlineFormatting {
	return s &^ InlineFormatting(f)
}

// Union returns the members of either set.
func (s InlineFormatting) Union(other InlineFormatting) InlineFormatting {
	return s | other
}

// Intersect returns the members of both sets.
func (s InlineFormatting) Intersect(other InlineFormatting) InlineFormatting {
	return s & other
}

// Minus returns the members of s not in other.
func (s InlineFormatting) Minus(other InlineFormatting) InlineFormatting {
	return s &^ other
}

// IsEmpty returns true if the set has no members.
func (s InlineFormatting) IsEmpty() bool {
	return s == 0
}

// Formats returns the members in canonical order.
func (s InlineFormatting) Formats() []InlineFormat {
	var out []InlineFormat
	for _, f := range AllFormats {
		if s.Has(f) {
			out = append(out, f)
		}
	}
	return out
}

// String returns the members joined by "+", or "none".
func (s InlineFormatting) String() string {
	formats := s.Formats()
	if len(formats) == 0 {
		return "none"
	}
	names := make([]string, len(formats))
	for i, f := range formats {
		names[i] = f.String()
	}
	return strings.Join(names, "+")
}

// ParseInlineFormatting parses names joined by "+" or ",", such as
// "bold+italic". "none" and the empty string yield the empty set.
func ParseInlineFormatting(spec string) (InlineFormatting, error) {
	var set InlineFormatting
	trimmed := strings.TrimSpace(spec)
	if trimmed == "" || strings.EqualFold(trimmed, "none") {
		return set, nil
	}
	for _, name := range strings.FieldsFunc(trimmed, func(r rune) bool { return r == '+' || r == ',' }) {
		f, ok := ParseInlineFormat(name)
		if !ok {
			return 0, fmt.Errorf("unknown inline format %q", name)
		}
		set = set.With(f)
	}
	return set, nil
}

// MarshalYAML encodes the set as a list of format names.
func (s InlineFormatting) MarshalYAML() (any, error) {
	names := make([]string, 0, len(AllFormats))
	for _, f := range s.Formats() {
		names = append(names, f.String())
	}
	return names, nil
}

// UnmarshalYAML accepts a list of names or a single "bold+italic" string.
func (s *InlineFormatting) UnmarshalYAML(unmarshal func(any) error) error {
	var names []string
	if err := unmarshal(&names); err != nil {
		var spec string
		if err := unmarshal(&spec); err != nil {
			return err
		}
		parsed, err := ParseInlineFormatting(spec)
		if err != nil {
			return err
		}
		*s = parsed
		return nil
	}

	parsed, err := ParseInlineFormatting(strings.Join(names, "+"))
	if err != nil {
		return err
	}
	*s = parsed
	return nil
}
