package cli_test

import (
	"bytes"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/yaklabco/gomdedit/internal/cli"
)

var testInfo = cli.BuildInfo{
	Version: "test-version",
	Commit:  "test-commit",
	Date:    "test-date",
}

type result struct {
	stdout string
	stderr string
	err    error
}

// execute runs the root command with an isolated config file holding
// configYAML.
func execute(t *testing.T, configYAML string, stdin string, args ...string) result {
	t.Helper()

	cfgFile := filepath.Join(t.TempDir(), ".mdedit.yml")
	require.NoError(t, os.WriteFile(cfgFile, []byte(configYAML), 0o644))

	cmd := cli.NewRootCommand(testInfo)
	var stdout, stderr bytes.Buffer
	cmd.SetOut(&stdout)
	cmd.SetErr(&stderr)
	cmd.SetIn(strings.NewReader(stdin))
	cmd.SetArgs(append(args, "--config", cfgFile, "--color", "never"))

	err := cmd.Execute()
	return result{stdout: stdout.String(), stderr: stderr.String(), err: err}
}

func writeMarkdown(t *testing.T, content string) string {
	t.Helper()

	path := filepath.Join(t.TempDir(), "doc.md")
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
	return path
}

func TestNewRootCommand(t *testing.T) {
	t.Parallel()

	cmd := cli.NewRootCommand(testInfo)
	assert.Equal(t, "mdedit", cmd.Use)
	assert.NotEmpty(t, cmd.Short)
	assert.NotEmpty(t, cmd.Long)

	for _, name := range []string{"parse", "fmt", "stats", "validate", "render", "apply", "init", "config", "version"} {
		sub, _, err := cmd.Find([]string{name})
		if assert.NoError(t, err, name) {
			assert.Equal(t, name, sub.Name())
		}
	}

	for _, name := range []string{"debug", "config", "color"} {
		assert.NotNil(t, cmd.PersistentFlags().Lookup(name), name)
	}
}

func TestHelp(t *testing.T) {
	t.Parallel()

	res := execute(t, "", "", "--help")
	require.NoError(t, res.err)
	assert.Contains(t, res.stdout, "Usage:\n  mdedit [command]")
	assert.Contains(t, res.stdout, "Available Commands:")
	assert.Contains(t, res.stdout, "apply")
	assert.Contains(t, res.stdout, `Use "mdedit [command] --help"`)

	res = execute(t, "", "", "fmt", "--help")
	require.NoError(t, res.err)
	assert.Contains(t, res.stdout, "mdedit fmt FILE [flags]")
	assert.Contains(t, res.stdout, "--write")
	assert.Contains(t, res.stdout, "Global Flags:")
	assert.Contains(t, res.stdout, "--debug")
}

func TestHelp_GlobalFlagsAnyOrder(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name string
		args []string
	}{
		{"flags after help", []string{"--help", "--debug"}},
		{"flags before help", []string{"--debug", "--help"}},
		{"short help", []string{"-h", "--color", "never"}},
		{"subcommand help", []string{"stats", "--help", "--debug"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			res := execute(t, "", "", tt.args...)
			require.NoError(t, res.err)
			assert.Contains(t, res.stdout, "Usage:")
			assert.Contains(t, res.stdout, "--config")
		})
	}
}

func TestVersion(t *testing.T) {
	t.Parallel()

	res := execute(t, "", "", "version")
	require.NoError(t, res.err)
	assert.Contains(t, res.stdout, "mdedit")
	assert.Contains(t, res.stdout, "version=test-version")
	assert.Contains(t, res.stdout, "commit=test-commit")
}

func TestParse(t *testing.T) {
	t.Parallel()

	path := writeMarkdown(t, "# Title\n\n- a\n- b\n")

	t.Run("yaml", func(t *testing.T) {
		t.Parallel()

		res := execute(t, "", "", "parse", path)
		require.NoError(t, res.err)
		assert.Contains(t, res.stdout, "kind: heading")
		assert.Contains(t, res.stdout, "text: Title")
		assert.Contains(t, res.stdout, "kind: list")
		assert.Contains(t, res.stdout, "text: b")
	})

	t.Run("table", func(t *testing.T) {
		t.Parallel()

		res := execute(t, "", "", "parse", "--table", path)
		require.NoError(t, res.err)
		assert.Contains(t, res.stdout, "TYPE")
		assert.Contains(t, res.stdout, "h1")
		assert.Contains(t, res.stdout, "a / b")
	})

	t.Run("stdin", func(t *testing.T) {
		t.Parallel()

		res := execute(t, "", "> quoted", "parse", "-")
		require.NoError(t, res.err)
		assert.Contains(t, res.stdout, "kind: quote")
		assert.Contains(t, res.stdout, "text: quoted")
	})

	t.Run("missing file", func(t *testing.T) {
		t.Parallel()

		res := execute(t, "", "", "parse", filepath.Join(t.TempDir(), "missing.md"))
		require.Error(t, res.err)
		assert.Equal(t, cli.ExitIOError, cli.ExitCode(res.err))
	})

	t.Run("no argument", func(t *testing.T) {
		t.Parallel()

		res := execute(t, "", "", "parse")
		require.Error(t, res.err)
		assert.Equal(t, cli.ExitInvalidUsage, cli.ExitCode(res.err))
	})
}

const unformatted = "#  Title\nText\n* a\n* b\n"

func TestFmt(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name   string
		config string
		args   []string
		want   string
	}{
		{name: "default marker", want: "# Title\n\nText\n\n- a\n- b\n"},
		{name: "marker flag", args: []string{"--bullet", "*"}, want: "# Title\n\nText\n\n* a\n* b\n"},
		{name: "marker from config", config: "bullet_marker: '+'\n", want: "# Title\n\nText\n\n+ a\n+ b\n"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			path := writeMarkdown(t, unformatted)
			res := execute(t, tt.config, "", append([]string{"fmt", path}, tt.args...)...)
			require.NoError(t, res.err)
			assert.Equal(t, tt.want, res.stdout)
		})
	}
}

func TestFmt_Check(t *testing.T) {
	t.Parallel()

	res := execute(t, "", "", "fmt", "--check", writeMarkdown(t, unformatted))
	require.ErrorIs(t, res.err, cli.ErrIssuesFound)
	assert.Equal(t, cli.ExitIssuesFound, cli.ExitCode(res.err))
	assert.Contains(t, res.stdout, "is not formatted")

	res = execute(t, "", "", "fmt", "--check", writeMarkdown(t, "# Title\n\nText\n"))
	require.NoError(t, res.err)
	assert.Empty(t, res.stdout)
}

func TestFmt_Diff(t *testing.T) {
	t.Parallel()

	res := execute(t, "", "", "fmt", "--diff", writeMarkdown(t, unformatted))
	require.NoError(t, res.err)
	assert.Contains(t, res.stdout, "-* a")
	assert.Contains(t, res.stdout, "+- a")
	assert.Contains(t, res.stderr, "insertion")
}

func TestFmt_Write(t *testing.T) {
	t.Parallel()

	path := writeMarkdown(t, unformatted)
	res := execute(t, "backups:\n  enabled: true\n", "", "fmt", "--write", path)
	require.NoError(t, res.err)
	assert.Empty(t, res.stdout)

	got, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Equal(t, "# Title\n\nText\n\n- a\n- b\n", string(got))

	backup, err := os.ReadFile(path + ".mdedit.bak")
	require.NoError(t, err)
	assert.Equal(t, unformatted, string(backup))

	res = execute(t, "", "x", "fmt", "--write", "-")
	require.Error(t, res.err)
	assert.Equal(t, cli.ExitInvalidUsage, cli.ExitCode(res.err))
}

func TestStats(t *testing.T) {
	t.Parallel()

	path := writeMarkdown(t, "# Title\n\nHello world\n")

	res := execute(t, "", "", "stats", path)
	require.NoError(t, res.err)
	assert.Contains(t, res.stdout, path)
	assert.Contains(t, res.stdout, "Words")

	res = execute(t, "", "", "stats", "--yaml", path)
	require.NoError(t, res.err)
	assert.Contains(t, res.stdout, "words: 3\n")
	assert.Contains(t, res.stdout, "headings: 1\n")
	assert.Contains(t, res.stdout, "paragraphs: 1\n")
}

func TestValidate(t *testing.T) {
	t.Parallel()

	t.Run("clean", func(t *testing.T) {
		t.Parallel()

		path := writeMarkdown(t, "# ok\n")
		res := execute(t, "", "", "validate", "--strict", path)
		require.NoError(t, res.err)
		assert.Equal(t, "valid "+path+"\n", res.stdout)
	})

	t.Run("warnings", func(t *testing.T) {
		t.Parallel()

		path := writeMarkdown(t, "Text\n\n---\n")
		res := execute(t, "", "", "validate", path)
		require.NoError(t, res.err)
		assert.Contains(t, res.stdout, "warning")
		assert.Contains(t, res.stdout, "(1 warning)")

		res = execute(t, "", "", "validate", "--strict", path)
		require.ErrorIs(t, res.err, cli.ErrIssuesFound)
	})

	t.Run("invalid utf8", func(t *testing.T) {
		t.Parallel()

		res := execute(t, "", "", "validate", "--yaml", writeMarkdown(t, "bad \xff\n"))
		require.ErrorIs(t, res.err, cli.ErrIssuesFound)
		assert.Contains(t, res.stdout, "valid: false")
		assert.Contains(t, res.stdout, "not valid UTF-8")
	})

	t.Run("bad flavor", func(t *testing.T) {
		t.Parallel()

		res := execute(t, "", "", "validate", "--flavor", "rst", writeMarkdown(t, "x"))
		require.Error(t, res.err)
		assert.Equal(t, cli.ExitConfigError, cli.ExitCode(res.err))
	})
}

func TestRender(t *testing.T) {
	t.Parallel()

	res := execute(t, "", "", "render", writeMarkdown(t, "# Hi\n"))
	require.NoError(t, res.err)
	assert.Equal(t, "<h1>Hi</h1>\n", res.stdout)

	res = execute(t, "", "", "render", "--flavor", "gfm", writeMarkdown(t, "~~gone~~\n"))
	require.NoError(t, res.err)
	assert.Contains(t, res.stdout, "<del>gone</del>")
}

func TestFmt_WriteNoBackups(t *testing.T) {
	t.Parallel()

	path := writeMarkdown(t, unformatted)
	res := execute(t, "backups:\n  enabled: true\n", "", "fmt", "--write", "--no-backups", path)
	require.NoError(t, res.err)

	_, err := os.Stat(path + ".mdedit.bak")
	assert.True(t, os.IsNotExist(err), "backup should not exist")
}
