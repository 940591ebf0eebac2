package cli

import (
	"fmt"

	"github.com/spf13/cobra"
	"gopkg.in/yaml.v3"

	"github.com/yaklabco/gomdedit/internal/logging"
	"github.com/yaklabco/gomdedit/internal/ui/pretty"
	"github.com/yaklabco/gomdedit/pkg/mdast"
)

type parseFlags struct {
	table bool
}

func newParseCommand() *cobra.Command {
	flags := &parseFlags{}

	cmd := &cobra.Command{
		Use:   "parse FILE",
		Short: "Show the block structure of a document",
		Long: `Parse a Markdown document into blocks and print them as YAML.

Examples:
  mdedit parse README.md            # YAML block dump
  mdedit parse --table README.md    # one row per block
  cat notes.md | mdedit parse -     # read standard input`,
		Args: fileArg,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runParse(cmd, args[0], flags)
		},
	}

	cmd.Flags().BoolVar(&flags.table, "table", false, "print a table instead of YAML")

	return cmd
}

// parseOutput is the YAML form of a parsed document.
type parseOutput struct {
	Blocks []mdast.Block `yaml:"blocks"`
}

func runParse(cmd *cobra.Command, path string, flags *parseFlags) error {
	e, err := loadEnv(cmd, nil)
	if err != nil {
		return err
	}
	content, _, err := e.readInput(cmd, path)
	if err != nil {
		return err
	}

	doc := e.svc.Documents.Parse(content)
	logging.FromContext(e.ctx).Debug("parsed document", logging.FieldBlocks, doc.Len())

	out := cmd.OutOrStdout()
	if flags.table {
		table := pretty.NewTableFormatter(e.styles, pretty.TerminalWidth(out))
		_, err := fmt.Fprint(out, table.FormatBlocks(pretty.BlockRows(doc)))
		return err
	}

	data, err := yaml.Marshal(parseOutput{Blocks: doc.Blocks})
	if err != nil {
		return fmt.Errorf("encode blocks: %w", err)
	}
	_, err = out.Write(data)
	return err
}
