package cli

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/spf13/cobra"
	"github.com/spf13/pflag"

	"github.com/yaklabco/gomdedit/internal/ui/pretty"
)

// HelpStyles contains Lipgloss styles for command help formatting.
type HelpStyles struct {
	Command    lipgloss.Style
	Heading    lipgloss.Style
	Subcommand lipgloss.Style
	Flag       lipgloss.Style
	Dim        lipgloss.Style
}

// NewHelpStyles creates help styles based on color mode.
func NewHelpStyles(colorEnabled bool) *HelpStyles {
	if !colorEnabled {
		plain := lipgloss.NewStyle()
		return &HelpStyles{Command: plain, Heading: plain, Subcommand: plain, Flag: plain, Dim: plain}
	}
	return &HelpStyles{
		Command:    lipgloss.NewStyle().Foreground(lipgloss.Color("14")).Bold(true),
		Heading:    lipgloss.NewStyle().Foreground(lipgloss.Color("11")).Bold(true),
		Subcommand: lipgloss.NewStyle().Foreground(lipgloss.Color("10")),
		Flag:       lipgloss.NewStyle().Foreground(lipgloss.Color("12")),
		Dim:        lipgloss.NewStyle().Foreground(lipgloss.Color("8")),
	}
}

// HelpFormatter renders styled help and usage for Cobra commands.
type HelpFormatter struct {
	styles *HelpStyles
}

// NewHelpFormatter creates a help formatter. With nil styles, colors are
// chosen per invocation from the --color flag and the output writer.
func NewHelpFormatter(styles *HelpStyles) *HelpFormatter {
	return &HelpFormatter{styles: styles}
}

// ApplyToCommand installs the formatter on cmd. Subcommands inherit it.
func (h *HelpFormatter) ApplyToCommand(cmd *cobra.Command) {
	cmd.SetHelpFunc(func(command *cobra.Command, _ []string) {
		if _, err := fmt.Fprint(command.OutOrStdout(), h.forCommand(command).Help(command)); err != nil {
			command.PrintErrln(err)
		}
	})
	cmd.SetUsageFunc(func(command *cobra.Command) error {
		_, err := fmt.Fprint(command.OutOrStderr(), h.forCommand(command).Usage(command))
		return err
	})
}

func (h *HelpFormatter) forCommand(cmd *cobra.Command) *HelpFormatter {
	if h.styles != nil {
		return h
	}
	mode, err := cmd.Flags().GetString("color")
	if err != nil {
		mode = "auto"
	}
	return &HelpFormatter{styles: NewHelpStyles(pretty.IsColorEnabled(mode, cmd.OutOrStdout()))}
}

// Help renders the full help of cmd: its description followed by usage.
func (h *HelpFormatter) Help(cmd *cobra.Command) string {
	var b strings.Builder
	b.WriteString(h.styles.Command.Render(cmd.CommandPath()))
	if cmd.Version != "" {
		b.WriteString(" " + h.styles.Dim.Render(cmd.Version))
	}
	b.WriteString("\n\n")

	desc := cmd.Long
	if desc == "" {
		desc = cmd.Short
	}
	if desc != "" {
		b.WriteString(trimTrailingWhitespaces(desc) + "\n\n")
	}

	b.WriteString(h.Usage(cmd))
	return b.String()
}

// Usage renders the usage line, subcommands and flags of cmd.
func (h *HelpFormatter) Usage(cmd *cobra.Command) string {
	var sections []string

	var usage strings.Builder
	usage.WriteString(h.styles.Heading.Render("Usage:"))
	if cmd.Runnable() {
		usage.WriteString("\n  " + h.styles.Command.Render(cmd.UseLine()))
	}
	if cmd.HasAvailableSubCommands() {
		usage.WriteString("\n  " + h.styles.Command.Render(cmd.CommandPath()+" [command]"))
	}
	sections = append(sections, usage.String())

	if len(cmd.Aliases) > 0 {
		sections = append(sections, h.styles.Heading.Render("Aliases:")+"\n  "+
			h.styles.Dim.Render(strings.Join(cmd.Aliases, ", ")))
	}

	if cmd.HasAvailableSubCommands() {
		sections = append(sections, h.subcommands(cmd))
	}
	if cmd.HasAvailableLocalFlags() {
		sections = append(sections, h.styles.Heading.Render("Flags:")+"\n"+h.flags(cmd.LocalFlags()))
	}
	if cmd.HasAvailableInheritedFlags() {
		sections = append(sections, h.styles.Heading.Render("Global Flags:")+"\n"+h.flags(cmd.InheritedFlags()))
	}
	if cmd.HasAvailableSubCommands() {
		sections = append(sections, fmt.Sprintf("Use %q for more information about a command.",
			cmd.CommandPath()+" [command] --help"))
	}

	return strings.Join(sections, "\n\n") + "\n"
}

func (h *HelpFormatter) subcommands(cmd *cobra.Command) string {
	var available []*cobra.Command
	width := 0
	for _, sub := range cmd.Commands() {
		if sub.IsAvailableCommand() || sub.Name() == "help" {
			available = append(available, sub)
			width = max(width, len(sub.Name()))
		}
	}

	var b strings.Builder
	b.WriteString(h.styles.Heading.Render("Available Commands:"))
	for _, sub := range available {
		b.WriteString("\n  " + h.styles.Subcommand.Render(rpad(sub.Name(), width)) + "   " + sub.Short)
	}
	return b.String()
}

// flags styles pflag's aligned usage lines: flag names in color, value
// types dimmed.
func (h *HelpFormatter) flags(set *pflag.FlagSet) string {
	usages := strings.TrimSuffix(set.FlagUsages(), "\n")
	lines := strings.Split(usages, "\n")
	for i, line := range lines {
		lines[i] = h.styleFlagLine(line)
	}
	return strings.Join(lines, "\n")
}

func (h *HelpFormatter) styleFlagLine(line string) string {
	trimmed := strings.TrimLeft(line, " ")
	if trimmed == "" {
		return line
	}
	indent := line[:len(line)-len(trimmed)]

	// pflag separates the flag column from the description with at least
	// two spaces; the padding is kept so descriptions stay aligned.
	split := strings.Index(trimmed, "  ")
	if split < 0 {
		return line
	}
	flagPart := trimmed[:split]
	rest := trimmed[split:]

	tokens := strings.Fields(flagPart)
	for i, token := range tokens {
		if strings.HasPrefix(token, "-") {
			clean := strings.TrimSuffix(token, ",")
			tokens[i] = h.styles.Flag.Render(clean) + strings.TrimPrefix(token, clean)
		} else {
			tokens[i] = h.styles.Dim.Render(token)
		}
	}
	return indent + strings.Join(tokens, " ") + rest
}

// rpad adds padding to the right of a string.
func rpad(str string, padding int) string {
	if len(str) >= padding {
		return str
	}
	return str + strings.Repeat(" ", padding-len(str))
}

// trimTrailingWhitespaces removes trailing whitespace from lines.
func trimTrailingWhitespaces(s string) string {
	lines := strings.Split(strings.TrimRight(s, "\n"), "\n")
	for i, line := range lines {
		lines[i] = strings.TrimRight(line, " \t")
	}
	return strings.Join(lines, "\n")
}
