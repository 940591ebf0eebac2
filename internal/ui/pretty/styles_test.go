package pretty_test

import (
	"bytes"
	"os"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/yaklabco/gomdedit/internal/ui/pretty"
)

func TestNewStyles_ColorEnabled(t *testing.T) {
	t.Parallel()

	styles := pretty.NewStyles(true)
	require.NotNil(t, styles)
	assert.True(t, styles.Error.GetBold())
	assert.True(t, styles.Bold.GetBold())
}

func TestNewStyles_ColorDisabled(t *testing.T) {
	t.Parallel()

	styles := pretty.NewStyles(false)
	require.NotNil(t, styles)

	// With color disabled, styles should return unmodified text
	text := "test"
	assert.Equal(t, text, styles.Bold.Render(text), "No-color Bold should not add formatting")
	assert.Equal(t, text, styles.Error.Render(text), "No-color Error should not add formatting")
	assert.Equal(t, text, styles.BlockType.Render(text))
}

func TestIsColorEnabled_AlwaysMode(t *testing.T) {
	t.Parallel()

	var buf bytes.Buffer
	assert.True(t, pretty.IsColorEnabled("always", &buf), "always mode should return true")
}

func TestIsColorEnabled_NeverMode(t *testing.T) {
	t.Parallel()

	assert.False(t, pretty.IsColorEnabled("never", os.Stdout), "never mode should return false")
}

func TestIsColorEnabled_AutoMode_NonTTY(t *testing.T) {
	t.Parallel()

	var buf bytes.Buffer
	assert.False(t, pretty.IsColorEnabled("auto", &buf), "auto mode with non-TTY should return false")
}

func TestIsColorEnabled_AutoMode_NoColorEnv(t *testing.T) {
	t.Setenv("NO_COLOR", "1")

	assert.False(t, pretty.IsColorEnabled("auto", os.Stdout), "NO_COLOR should disable color")
}

func TestTerminalWidth_NonTTY(t *testing.T) {
	t.Parallel()

	var buf bytes.Buffer
	assert.Equal(t, 100, pretty.TerminalWidth(&buf))
}
