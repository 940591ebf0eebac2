package cli

import (
	"fmt"
	"slices"
	"strings"

	"github.com/spf13/cobra"

	"github.com/yaklabco/gomdedit/internal/configloader"
)

type configFlags struct {
	env   bool
	paths bool
}

func newConfigCommand() *cobra.Command {
	flags := &configFlags{}

	cmd := &cobra.Command{
		Use:   "config",
		Short: "Show the resolved configuration",
		Long: `Print the configuration after all layers are merged, as YAML.

Examples:
  mdedit config           # resolved settings
  mdedit config --paths   # where settings are looked up
  mdedit config --env     # supported environment variables`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return runConfig(cmd, flags)
		},
	}

	cmd.Flags().BoolVar(&flags.env, "env", false, "list supported environment variables")
	cmd.Flags().BoolVar(&flags.paths, "paths", false, "list configuration file locations")

	return cmd
}

func runConfig(cmd *cobra.Command, flags *configFlags) error {
	out := cmd.OutOrStdout()

	if flags.env {
		vars := configloader.ListEnvVars()
		names := make([]string, 0, len(vars))
		width := 0
		for name := range vars {
			names = append(names, name)
			width = max(width, len(name))
		}
		slices.Sort(names)
		for _, name := range names {
			if _, err := fmt.Fprintf(out, "%-*s  %s\n", width, name, vars[name]); err != nil {
				return err
			}
		}
		return nil
	}

	e, err := loadEnv(cmd, nil)
	if err != nil {
		return err
	}

	if flags.paths {
		paths := e.loaded.Paths
		for _, entry := range []struct{ layer, path string }{
			{"system", paths.System},
			{"user", paths.User},
			{"project", paths.Project},
			{"explicit", paths.Explicit},
		} {
			status := "-"
			if entry.path != "" {
				status = entry.path
				if slices.Contains(e.loaded.LoadedFrom, entry.path) {
					status += " (loaded)"
				}
			}
			if _, err := fmt.Fprintf(out, "%-8s  %s\n", entry.layer, status); err != nil {
				return err
			}
		}
		return nil
	}

	data, err := e.cfg.ToYAML()
	if err != nil {
		return err
	}
	if len(e.loaded.LoadedFrom) > 0 {
		if _, err := fmt.Fprintf(out, "# sources: %s\n", strings.Join(e.loaded.LoadedFrom, ", ")); err != nil {
			return err
		}
	}
	_, err = out.Write(data)
	return err
}
