package cli

import (
	"fmt"

	"github.com/spf13/cobra"
	"gopkg.in/yaml.v3"

	"github.com/yaklabco/gomdedit/internal/logging"
	"github.com/yaklabco/gomdedit/pkg/config"
)

type validateFlags struct {
	strict bool
	yaml   bool
	flavor string
}

func newValidateCommand() *cobra.Command {
	flags := &validateFlags{}

	cmd := &cobra.Command{
		Use:   "validate FILE",
		Short: "Check that a document can be edited without loss",
		Long: `Check that a Markdown document can be edited without loss.

Errors make a document unusable, such as content that is not UTF-8.
Warnings name constructs the editor keeps as plain paragraph text, such as
tables, setext headings or unterminated fences. Editing around them is
safe, but they cannot be converted or formatted.

Exit status is 1 when errors are found, or warnings with --strict.`,
		Args: fileArg,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runValidate(cmd, args[0], flags)
		},
	}

	cmd.Flags().BoolVar(&flags.strict, "strict", false, "treat warnings as errors for exit code")
	cmd.Flags().BoolVar(&flags.yaml, "yaml", false, "print the result as YAML")
	cmd.Flags().StringVar(&flags.flavor, "flavor", "", "Markdown flavor: commonmark, gfm")

	return cmd
}

func runValidate(cmd *cobra.Command, path string, flags *validateFlags) error {
	e, err := loadEnv(cmd, &config.Config{Flavor: config.Flavor(flags.flavor)})
	if err != nil {
		return err
	}
	content, _, err := e.readInput(cmd, path)
	if err != nil {
		return err
	}

	result, err := e.svc.Documents.ValidateDocument(e.ctx, content)
	if err != nil {
		return fmt.Errorf("validate: %w", err)
	}
	name := displayName(path)
	logging.FromContext(e.ctx).Debug("validated document",
		logging.FieldIssues, len(result.Errors)+len(result.Warnings),
	)

	out := cmd.OutOrStdout()
	if flags.yaml {
		data, err := yaml.Marshal(result)
		if err != nil {
			return fmt.Errorf("encode validation: %w", err)
		}
		if _, err := out.Write(data); err != nil {
			return err
		}
	} else {
		if _, err := fmt.Fprint(out, e.styles.FormatValidation(name, result)); err != nil {
			return err
		}
	}

	if !result.Valid || (flags.strict && len(result.Warnings) > 0) {
		return ErrIssuesFound
	}
	return nil
}
