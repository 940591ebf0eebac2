package cli

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/yaklabco/gomdedit/internal/logging"
	"github.com/yaklabco/gomdedit/pkg/config"
	"github.com/yaklabco/gomdedit/pkg/document"
	"github.com/yaklabco/gomdedit/pkg/fix"
)

type fmtFlags struct {
	write     bool
	diff      bool
	check     bool
	bullet    string
	noBackups bool
}

func newFmtCommand() *cobra.Command {
	flags := &fmtFlags{}

	cmd := &cobra.Command{
		Use:   "fmt FILE",
		Short: "Normalize a document",
		Long: `Normalize a Markdown document by regenerating it from its block model.

Blank lines between blocks, heading spacing, list markers and numbering and
fence syntax are rewritten in one canonical form. By default the result is
printed to standard output.

Examples:
  mdedit fmt README.md              # print the normalized document
  mdedit fmt --diff README.md       # show what would change
  mdedit fmt --check README.md      # exit 1 if the file is not normalized
  mdedit fmt --write README.md      # rewrite the file in place
  mdedit fmt --bullet '*' notes.md  # use * for bullet lists`,
		Args: fileArg,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runFmt(cmd, args[0], flags)
		},
	}

	cmd.Flags().BoolVarP(&flags.write, "write", "w", false, "write the result back to the file")
	cmd.Flags().BoolVar(&flags.diff, "diff", false, "print a unified diff instead of the document")
	cmd.Flags().BoolVar(&flags.check, "check", false, "exit with status 1 if the document is not normalized")
	cmd.Flags().StringVar(&flags.bullet, "bullet", "", "bullet list marker: -, * or +")
	cmd.Flags().BoolVar(&flags.noBackups, "no-backups", false, "disable backup creation when writing")
	cmd.MarkFlagsMutuallyExclusive("write", "check")

	return cmd
}

func runFmt(cmd *cobra.Command, path string, flags *fmtFlags) error {
	if flags.write {
		if err := ensureFile(path, "--write"); err != nil {
			return err
		}
	}

	e, err := loadEnv(cmd, &config.Config{BulletMarker: flags.bullet, NoBackups: flags.noBackups})
	if err != nil {
		return err
	}
	content, info, err := e.readInput(cmd, path)
	if err != nil {
		return err
	}

	formatted := normalize(e.svc.Documents, content)
	name := displayName(path)
	out := cmd.OutOrStdout()

	if flags.diff {
		diff := fix.GenerateDiff(name, content, formatted)
		if diff.HasChanges() {
			if _, err := fmt.Fprint(out, e.styles.FormatDiff(diff)); err != nil {
				return err
			}
		}
		logging.FromContext(e.ctx).Info(e.styles.FormatDiffSummary(diff))
	}

	switch {
	case flags.check:
		if formatted != content {
			if _, err := fmt.Fprintf(out, "%s is not formatted\n", name); err != nil {
				return err
			}
			return ErrIssuesFound
		}
		return nil
	case flags.write:
		return e.save(info, formatted)
	case flags.diff:
		return nil
	default:
		_, err := fmt.Fprint(out, formatted)
		return err
	}
}

// normalize regenerates content from its parse. A trailing newline on the
// input is kept.
func normalize(docs *document.Service, content string) string {
	formatted := docs.Generate(docs.Parse(content))
	if strings.HasSuffix(content, "\n") && !strings.HasSuffix(formatted, "\n") {
		formatted += "\n"
	}
	return formatted
}
