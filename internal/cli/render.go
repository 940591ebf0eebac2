package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/yaklabco/gomdedit/pkg/config"
)

type renderFlags struct {
	flavor    string
	normalize bool
}

func newRenderCommand() *cobra.Command {
	flags := &renderFlags{}

	cmd := &cobra.Command{
		Use:   "render FILE",
		Short: "Render a document to HTML",
		Long: `Render a Markdown document to an HTML fragment.

Examples:
  mdedit render README.md                 # CommonMark HTML
  mdedit render --flavor gfm README.md    # with tables and strikethrough
  mdedit render --normalize README.md     # render the fmt output instead`,
		Args: fileArg,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runRender(cmd, args[0], flags)
		},
	}

	cmd.Flags().StringVar(&flags.flavor, "flavor", "", "Markdown flavor: commonmark, gfm")
	cmd.Flags().BoolVar(&flags.normalize, "normalize", false, "normalize the document before rendering")

	return cmd
}

func runRender(cmd *cobra.Command, path string, flags *renderFlags) error {
	e, err := loadEnv(cmd, &config.Config{Flavor: config.Flavor(flags.flavor)})
	if err != nil {
		return err
	}
	content, _, err := e.readInput(cmd, path)
	if err != nil {
		return err
	}
	if flags.normalize {
		content = normalize(e.svc.Documents, content)
	}

	html, err := e.parser.RenderHTML(e.ctx, []byte(content))
	if err != nil {
		return fmt.Errorf("render %s: %w", displayName(path), err)
	}
	_, err = cmd.OutOrStdout().Write(html)
	return err
}
