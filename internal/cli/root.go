// Package cli provides the Cobra command structure for mdedit.
package cli

import (
	"fmt"

	"github.com/spf13/cobra"
)

// BuildInfo holds build-time version information.
type BuildInfo struct {
	Version string
	Commit  string
	Date    string
}

// NewRootCommand creates the root mdedit command with all subcommands.
func NewRootCommand(info BuildInfo) *cobra.Command {
	var debug bool
	var configPath string
	var color string

	rootCmd := &cobra.Command{
		Use:   "mdedit",
		Short: "Structure-aware Markdown editing from the command line",
		Long: `mdedit edits Markdown documents through a block model of headings,
paragraphs, lists, fenced code and quotes.

It normalizes documents, reports statistics and lossy constructs, renders
HTML previews and replays edit scripts through the same commands an
interactive editor uses, with full undo history.`,
		SilenceUsage:  true,
		SilenceErrors: true,
	}

	rootCmd.PersistentFlags().BoolVar(&debug, "debug", false, "enable debug logging")
	rootCmd.PersistentFlags().StringVar(&configPath, "config", "", "path to config file")
	rootCmd.PersistentFlags().StringVar(&color, "color", "auto",
		"colorize output: auto, always, never")

	// Registered before command lookup so that "--help" is known to take
	// no value and flags after it are not read as a subcommand.
	rootCmd.InitDefaultHelpFlag()

	rootCmd.SetFlagErrorFunc(func(_ *cobra.Command, err error) error {
		return fmt.Errorf("%w: %w", ErrUsage, err)
	})

	rootCmd.AddCommand(newParseCommand())
	rootCmd.AddCommand(newFmtCommand())
	rootCmd.AddCommand(newStatsCommand())
	rootCmd.AddCommand(newValidateCommand())
	rootCmd.AddCommand(newRenderCommand())
	rootCmd.AddCommand(newApplyCommand())
	rootCmd.AddCommand(newInitCommand())
	rootCmd.AddCommand(newConfigCommand())
	rootCmd.AddCommand(newVersionCommand(info))

	NewHelpFormatter(nil).ApplyToCommand(rootCmd)

	return rootCmd
}
