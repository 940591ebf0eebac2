// Package langdetect guesses the fence tag of code block content. Shebangs
// and a small table of telltale patterns are checked first; go-enry's
// classifier handles the rest.
package langdetect

import (
	"regexp"
	"strings"

	"github.com/go-enry/go-enry/v2"
)

// Fence tags produced by pattern hints.
const (
	TagGo         = "go"
	TagPython     = "python"
	TagJavaScript = "javascript"
	TagJSON       = "json"
	TagYAML       = "yaml"
	TagHTML       = "html"
	TagSQL        = "sql"
	TagRust       = "rust"
	TagDockerfile = "dockerfile"
	TagBash       = "bash"
)

// minYAMLKeys is the number of "key: value" lines that marks content as YAML.
const minYAMLKeys = 2

// hint maps a cheap textual test to a fence tag.
type hint struct {
	tag     string
	matches func(code string) bool
}

//nolint:gochecknoglobals // Read-only lookup tables.
var (
	// hints run in order; the first match wins.
	hints = []hint{
		{TagGo, func(code string) bool { return strings.HasPrefix(code, "package ") }},
		{TagPython, isPython},
		{TagHTML, containsAny(strings.ToLower, "<!doctype html", "<html", "<head>", "<body>")},
		{TagJSON, func(code string) bool {
			return (strings.HasPrefix(code, "{") || strings.HasPrefix(code, "[")) && strings.Contains(code, `"`)
		}},
		{TagDockerfile, isDockerfile},
		{TagSQL, sqlStatement.MatchString},
		{TagRust, containsAny(nil, "fn main()", "println!", "let mut ")},
		{TagJavaScript, containsAny(nil, "=>", "const ", "let ", "console.log")},
		{TagYAML, isYAML},
	}

	sqlStatement = regexp.MustCompile(`(?i)^(SELECT|INSERT|UPDATE|DELETE|CREATE)\s`)

	// classifierCandidates bounds go-enry's classifier to common languages.
	classifierCandidates = []string{
		"Go", "Python", "Shell", "JavaScript", "TypeScript",
		"Ruby", "Rust", "Java", "C", "C++", "SQL", "JSON",
		"YAML", "HTML", "CSS", "Dockerfile",
	}
)

// FenceTag returns the language tag for a code block holding content, or
// "" when no language is recognized with confidence.
func FenceTag(content string) string {
	code := strings.TrimSpace(content)
	if code == "" {
		return ""
	}

	if lang, safe := enry.GetLanguageByShebang([]byte(code)); safe {
		return tagFor(lang)
	}

	for _, h := range hints {
		if h.matches(code) {
			return h.tag
		}
	}

	if lang, safe := enry.GetLanguageByClassifier([]byte(code), classifierCandidates); safe && lang != "" {
		return tagFor(lang)
	}
	return ""
}

func isPython(code string) bool {
	if strings.Contains(code, "def ") && strings.Contains(code, "):") {
		return true
	}
	if strings.Contains(code, "__name__") || strings.Contains(code, "__main__") {
		return true
	}
	// Go groups imports with "import (".
	if strings.Contains(code, "import ") && !strings.Contains(code, "import (") {
		return strings.Contains(code, "from ") || strings.HasPrefix(code, "import ")
	}
	return false
}

func isDockerfile(code string) bool {
	return strings.HasPrefix(code, "FROM ") ||
		(strings.Contains(code, "\nFROM ") && strings.Contains(code, "\nRUN ")) ||
		(strings.Contains(code, "WORKDIR ") && strings.Contains(code, "COPY "))
}

// isYAML counts "key: value" and root list lines, skipping lines that look
// like code.
func isYAML(code string) bool {
	keys := 0
	for _, line := range strings.Split(code, "\n") {
		line = strings.TrimSpace(line)
		if line == "" || strings.HasPrefix(line, "#") {
			continue
		}
		if strings.Contains(line, ": ") && !strings.ContainsAny(line, "({") && !strings.HasPrefix(line, `"`) {
			keys++
		}
		if strings.HasPrefix(line, "- ") {
			keys++
		}
	}
	return keys >= minYAMLKeys
}

// containsAny builds a matcher for any of the needles, applied after fold
// when fold is non-nil.
func containsAny(fold func(string) string, needles ...string) func(string) bool {
	return func(code string) bool {
		if fold != nil {
			code = fold(code)
		}
		for _, needle := range needles {
			if strings.Contains(code, needle) {
				return true
			}
		}
		return false
	}
}

// tagFor converts a go-enry language name to a fence tag.
func tagFor(lang string) string {
	if lang == "Shell" {
		return TagBash
	}
	return strings.ToLower(lang)
}
