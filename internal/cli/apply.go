package cli

import (
	"errors"
	"fmt"

	"github.com/spf13/cobra"
	"gopkg.in/yaml.v3"

	"github.com/yaklabco/gomdedit/internal/logging"
	"github.com/yaklabco/gomdedit/internal/script"
	"github.com/yaklabco/gomdedit/pkg/command"
	"github.com/yaklabco/gomdedit/pkg/config"
	"github.com/yaklabco/gomdedit/pkg/mdast"
	"github.com/yaklabco/gomdedit/pkg/session"
)

type applyFlags struct {
	script    string
	write     bool
	state     bool
	noBackups bool
}

func newApplyCommand() *cobra.Command {
	flags := &applyFlags{}

	cmd := &cobra.Command{
		Use:   "apply FILE --script SCRIPT",
		Short: "Replay an edit script on a document",
		Long: `Replay a YAML edit script on a Markdown document.

Each step runs through an editing session with undo history, exactly as an
interactive editor would run it. The session starts with the cursor at the
start of the first block.

Script format:
  name: make title
  steps:
    - op: set_block_type
      type: h1
      at: {block: 0, offset: 0}
    - op: select
      range: {start: {block: 0, offset: 0}, end: {block: 0, offset: 5}}
    - op: apply_formatting
      formats: [bold]
    - op: undo

Operations: insert_text, delete_text, set_block_type, apply_formatting,
smart_enter, smart_backspace, group, select, undo, redo, mark_saved.

Examples:
  mdedit apply notes.md --script edit.yml           # print the result
  mdedit apply notes.md --script edit.yml --write   # rewrite the file
  mdedit apply notes.md --script edit.yml --state   # print the editor state`,
		Args: fileArg,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runApply(cmd, args[0], flags)
		},
	}

	cmd.Flags().StringVarP(&flags.script, "script", "s", "", "edit script file (required)")
	cmd.Flags().BoolVarP(&flags.write, "write", "w", false, "write the result back to the file")
	cmd.Flags().BoolVar(&flags.state, "state", false, "print the final editor state as YAML")
	cmd.Flags().BoolVar(&flags.noBackups, "no-backups", false, "disable backup creation when writing")
	_ = cmd.MarkFlagRequired("script")

	return cmd
}

// applyOutput is the YAML form of a finished run.
type applyOutput struct {
	State   mdast.EditorState `yaml:"state"`
	Steps   int               `yaml:"steps"`
	CanUndo bool              `yaml:"can_undo"`
	CanRedo bool              `yaml:"can_redo"`
}

func runApply(cmd *cobra.Command, path string, flags *applyFlags) error {
	if flags.write {
		if err := ensureFile(path, "--write"); err != nil {
			return err
		}
	}

	e, err := loadEnv(cmd, &config.Config{NoBackups: flags.noBackups})
	if err != nil {
		return err
	}
	sc, err := script.Load(flags.script)
	if err != nil {
		return err
	}
	content, info, err := e.readInput(cmd, path)
	if err != nil {
		return err
	}

	sess, err := session.New(content,
		session.WithServices(e.svc),
		session.WithHistory(
			command.WithLimit(e.cfg.HistoryLimit),
			command.WithObserver(logging.CommandObserver(logging.FromContext(e.ctx))),
		),
	)
	if err != nil {
		return fmt.Errorf("start session: %w", err)
	}

	result, err := script.Run(sess, sc)
	if err != nil {
		return fmt.Errorf("apply %s: %w", flags.script, err)
	}
	logging.FromContext(e.ctx).Debug("script finished",
		logging.FieldSteps, len(result.Steps),
		logging.FieldVersion, result.Final.Metadata.Version,
	)

	if flags.write {
		if err := e.save(info, result.Final.Content); err != nil {
			return err
		}
		result.Final = sess.MarkSaved()
	}

	out := cmd.OutOrStdout()
	switch {
	case flags.state:
		data, err := yaml.Marshal(applyOutput{
			State:   result.Final,
			Steps:   len(result.Steps),
			CanUndo: sess.CanUndo(),
			CanRedo: sess.CanRedo(),
		})
		if err != nil {
			return errors.Join(errors.New("encode state"), err)
		}
		_, err = out.Write(data)
		return err
	case flags.write:
		return nil
	default:
		_, err := fmt.Fprint(out, result.Final.Content)
		return err
	}
}
