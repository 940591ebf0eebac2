package cli

import (
	"context"
	"fmt"
	"io"

	"github.com/spf13/cobra"

	"github.com/yaklabco/gomdedit/internal/configloader"
	"github.com/yaklabco/gomdedit/internal/logging"
	"github.com/yaklabco/gomdedit/internal/ui/pretty"
	"github.com/yaklabco/gomdedit/pkg/command"
	"github.com/yaklabco/gomdedit/pkg/config"
	"github.com/yaklabco/gomdedit/pkg/document"
	"github.com/yaklabco/gomdedit/pkg/formatting"
	"github.com/yaklabco/gomdedit/pkg/fsutil"
	"github.com/yaklabco/gomdedit/pkg/langdetect"
	goldmarkparser "github.com/yaklabco/gomdedit/pkg/parser/goldmark"
)

// stdinPath is the file argument that reads from standard input.
const stdinPath = "-"

// env is what every subcommand runs with: the resolved configuration,
// a context carrying a logger that writes to the command's stderr and
// services built from both.
type env struct {
	ctx    context.Context
	cfg    *config.Config
	styles *pretty.Styles
	parser *goldmarkparser.Parser
	svc    *command.Services

	// loaded reports where cfg came from.
	loaded *configloader.LoadResult
}

// loadEnv resolves configuration for cmd, layering overrides from the
// command's own flags on top.
func loadEnv(cmd *cobra.Command, overrides *config.Config) (*env, error) {
	ctx := cmd.Context()
	if ctx == nil {
		ctx = context.Background()
	}

	if overrides == nil {
		overrides = &config.Config{}
	}
	debug, err := cmd.Flags().GetBool("debug")
	if err != nil {
		return nil, fmt.Errorf("get debug flag: %w", err)
	}
	overrides.Debug = overrides.Debug || debug

	configPath, err := cmd.Flags().GetString("config")
	if err != nil {
		return nil, fmt.Errorf("get config flag: %w", err)
	}

	loadResult, err := configloader.Load(ctx, configloader.LoadOptions{
		ExplicitPath: configPath,
		CLIConfig:    overrides,
	})
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrConfig, err)
	}
	cfg := loadResult.Config

	logger := logging.NewWithWriter(cmd.ErrOrStderr(), cfg.EffectiveLogLevel())
	for _, warning := range loadResult.Warnings {
		logger.Warn(warning)
	}
	if len(loadResult.LoadedFrom) > 0 {
		logger.Debug("loaded configuration", logging.FieldConfigFiles, loadResult.LoadedFrom)
	}
	logger.Debug("configuration resolved",
		logging.FieldFlavor, cfg.Flavor,
		logging.FieldHistoryLimit, cfg.HistoryLimit,
	)

	colorMode, err := cmd.Flags().GetString("color")
	if err != nil {
		colorMode = "auto"
	}

	parser := goldmarkparser.New(string(cfg.Flavor))
	docs := document.New(
		document.WithBulletMarker(cfg.BulletMarker),
		document.WithInspector(parser),
	)
	var fmtOpts []formatting.Option
	if cfg.DetectLanguage() {
		fmtOpts = append(fmtOpts, formatting.WithLanguageDetector(langdetect.FenceTag))
	}

	return &env{
		ctx:    logging.WithLogger(ctx, logger),
		cfg:    cfg,
		styles: pretty.NewStyles(pretty.IsColorEnabled(colorMode, cmd.OutOrStdout())),
		parser: parser,
		svc:    command.NewServices(docs, formatting.New(docs, fmtOpts...)),
		loaded: loadResult,
	}, nil
}

// backups returns the backup settings for writes.
func (e *env) backups() fsutil.BackupConfig {
	return fsutil.BackupConfig{
		Enabled: e.cfg.BackupsEnabled(),
		Mode:    fsutil.BackupMode(e.cfg.Backups.Mode),
	}
}

// readInput reads the file argument and scopes the env's logging context
// to it. Standard input has no FileInfo.
func (e *env) readInput(cmd *cobra.Command, path string) (string, *fsutil.FileInfo, error) {
	e.ctx = logging.WithDocument(e.ctx, displayName(path))
	if path == stdinPath {
		data, err := io.ReadAll(cmd.InOrStdin())
		if err != nil {
			return "", nil, fmt.Errorf("read stdin: %w", err)
		}
		return string(data), nil, nil
	}

	data, info, err := fsutil.ReadFile(e.ctx, path)
	if err != nil {
		return "", nil, err
	}
	logging.FromContext(e.ctx).Debug("read input", logging.FieldBytes, len(data))
	return string(data), info, nil
}

// save writes content back over the file described by info.
func (e *env) save(info *fsutil.FileInfo, content string) error {
	result, err := fsutil.Save(e.ctx, info, []byte(content), e.backups())
	if err != nil {
		return err
	}
	logger := logging.FromContext(e.ctx)
	if result.BackupPath != "" {
		logger.Info("created backup", logging.FieldBackup, result.BackupPath)
	}
	if result.Written {
		logger.Info("wrote file")
	} else {
		logger.Debug("file unchanged")
	}
	return nil
}

// fileArg accepts exactly one file argument; "-" reads standard input.
func fileArg(cmd *cobra.Command, args []string) error {
	if err := cobra.ExactArgs(1)(cmd, args); err != nil {
		return fmt.Errorf("%w: %w", ErrUsage, err)
	}
	return nil
}

// displayName names the input in output.
func displayName(path string) string {
	if path == stdinPath {
		return "<stdin>"
	}
	return path
}

// ensureFile rejects writes to standard input.
func ensureFile(path, flag string) error {
	if path == stdinPath {
		return fmt.Errorf("%w: %s needs a file argument", ErrUsage, flag)
	}
	return nil
}
