package cli

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/spf13/cobra"

	"github.com/yaklabco/gomdedit/internal/configloader"
	"github.com/yaklabco/gomdedit/internal/logging"
	"github.com/yaklabco/gomdedit/pkg/config"
)

// configFilePermissions is the file mode for configuration files (world-readable).
const configFilePermissions = 0644

// defaultConfigFile is the project configuration file created by init.
const defaultConfigFile = ".mdedit.yml"

const configHeader = `# mdedit configuration.
#
# Settings are layered: defaults, then the user config, then the nearest
# .mdedit.yml above the working directory, then --config, then MDEDIT_*
# environment variables, then command-line flags.`

// initFlags holds the flags for the init command.
type initFlags struct {
	force  bool
	output string
}

func newInitCommand() *cobra.Command {
	flags := &initFlags{}

	cmd := &cobra.Command{
		Use:   "init",
		Short: "Create a configuration file with the defaults",
		Long: `Create a .mdedit.yml configuration file in the current directory
holding every setting at its default value.

Examples:
  mdedit init                       Create .mdedit.yml
  mdedit init --output custom.yml   Write to a custom file path
  mdedit init --force               Overwrite an existing file`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return runInit(cmd, flags)
		},
	}

	cmd.Flags().BoolVarP(&flags.force, "force", "f", false, "Overwrite existing configuration file")
	cmd.Flags().StringVarP(&flags.output, "output", "o", defaultConfigFile, "Output file path")

	return cmd
}

func runInit(cmd *cobra.Command, flags *initFlags) error {
	logger := logging.NewWithWriter(cmd.ErrOrStderr(), config.LogLevelInfo)

	absPath, err := filepath.Abs(flags.output)
	if err != nil {
		return fmt.Errorf("resolve path: %w", err)
	}

	if _, err := os.Stat(absPath); err == nil {
		if !flags.force {
			return fmt.Errorf("%w: file %q already exists; use --force to overwrite", ErrUsage, flags.output)
		}
		logger.Warn("overwriting existing file", logging.FieldPath, flags.output)
	}

	content, err := config.NewConfig().ToYAMLWithHeader(configHeader)
	if err != nil {
		return fmt.Errorf("generate config: %w", err)
	}

	if err := os.WriteFile(absPath, content, configFilePermissions); err != nil {
		return fmt.Errorf("write file: %w", err)
	}

	logger.Info("created configuration file", logging.FieldPath, flags.output)
	if dir := configloader.UserConfigDir(); dir != "" {
		logger.Info("user-wide settings can go in", logging.FieldPath, filepath.Join(dir, "config.yaml"))
	}

	return nil
}
