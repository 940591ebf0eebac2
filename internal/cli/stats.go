package cli

import (
	"fmt"

	"github.com/spf13/cobra"
	"gopkg.in/yaml.v3"
)

type statsFlags struct {
	yaml bool
}

func newStatsCommand() *cobra.Command {
	flags := &statsFlags{}

	cmd := &cobra.Command{
		Use:   "stats FILE",
		Short: "Count characters, words and blocks",
		Long: `Print statistics for a Markdown document.

Characters are user-perceived characters of the raw content. Words are
counted over block text, so markup does not count.`,
		Args: fileArg,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runStats(cmd, args[0], flags)
		},
	}

	cmd.Flags().BoolVar(&flags.yaml, "yaml", false, "print statistics as YAML")

	return cmd
}

func runStats(cmd *cobra.Command, path string, flags *statsFlags) error {
	e, err := loadEnv(cmd, nil)
	if err != nil {
		return err
	}
	content, _, err := e.readInput(cmd, path)
	if err != nil {
		return err
	}

	stats := e.svc.Documents.Stats(content)
	out := cmd.OutOrStdout()

	if flags.yaml {
		data, err := yaml.Marshal(stats)
		if err != nil {
			return fmt.Errorf("encode stats: %w", err)
		}
		_, err = out.Write(data)
		return err
	}

	_, err = fmt.Fprint(out, e.styles.FormatStats(displayName(path), stats))
	return err
}
