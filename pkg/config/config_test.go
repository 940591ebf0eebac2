package config_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/yaklabco/gomdedit/pkg/config"
)

func TestNewConfig(t *testing.T) {
	t.Parallel()

	cfg := config.NewConfig()
	assert.Equal(t, config.FlavorCommonMark, cfg.Flavor)
	assert.Equal(t, "-", cfg.BulletMarker)
	assert.True(t, cfg.DetectLanguage())
	assert.Equal(t, config.DefaultHistoryLimit, cfg.HistoryLimit)
	assert.Equal(t, config.LogLevelInfo, cfg.EffectiveLogLevel())
	assert.False(t, cfg.BackupsEnabled())
}

func TestFlavor_IsValid(t *testing.T) {
	t.Parallel()

	assert.True(t, config.FlavorCommonMark.IsValid())
	assert.True(t, config.FlavorGFM.IsValid())
	assert.False(t, config.Flavor("mmd").IsValid())
	assert.False(t, config.Flavor("").IsValid())
}

func TestConfig_EffectiveLogLevel(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name string
		cfg  config.Config
		want string
	}{
		{name: "unset", cfg: config.Config{}, want: "info"},
		{name: "explicit", cfg: config.Config{LogLevel: "WARN"}, want: "warn"},
		{name: "debug wins", cfg: config.Config{LogLevel: "error", Debug: true}, want: "debug"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			assert.Equal(t, tt.want, tt.cfg.EffectiveLogLevel())
		})
	}
}

func TestConfig_BackupsEnabled(t *testing.T) {
	t.Parallel()

	cfg := config.NewConfig()
	cfg.Backups.Enabled = true
	assert.True(t, cfg.BackupsEnabled())

	cfg.NoBackups = true
	assert.False(t, cfg.BackupsEnabled())

	cfg.NoBackups = false
	cfg.Backups.Mode = config.BackupModeNone
	assert.False(t, cfg.BackupsEnabled())
}

func TestConfigClone(t *testing.T) {
	t.Parallel()

	t.Run("nil config returns nil", func(t *testing.T) {
		t.Parallel()
		var c *config.Config
		assert.Nil(t, c.Clone())
	})

	t.Run("copies pointer fields", func(t *testing.T) {
		t.Parallel()
		original := config.NewConfig()
		original.Debug = true

		clone := original.Clone()
		require.NotNil(t, clone)
		assert.NotSame(t, original, clone)
		assert.Equal(t, original, clone)

		*clone.AutoDetectLanguage = false
		assert.True(t, original.DetectLanguage())
		assert.False(t, clone.DetectLanguage())
	})
}

func TestConfigToYAML(t *testing.T) {
	t.Parallel()

	t.Run("nil config returns nil", func(t *testing.T) {
		t.Parallel()
		var cfg *config.Config
		data, err := cfg.ToYAML()
		require.NoError(t, err)
		assert.Nil(t, data)
	})

	t.Run("defaults serialize", func(t *testing.T) {
		t.Parallel()
		data, err := config.NewConfig().ToYAML()
		require.NoError(t, err)
		assert.Contains(t, string(data), "flavor: commonmark")
		assert.Contains(t, string(data), "bullet_marker:")
		assert.Contains(t, string(data), "history_limit: 100")
		assert.NotContains(t, string(data), "debug")
	})

	t.Run("header is prepended", func(t *testing.T) {
		t.Parallel()
		data, err := config.NewConfig().ToYAMLWithHeader("# mdedit configuration")
		require.NoError(t, err)
		assert.Contains(t, string(data), "# mdedit configuration\n\nflavor:")
	})
}

func TestFromYAML(t *testing.T) {
	t.Parallel()

	t.Run("parses valid YAML", func(t *testing.T) {
		t.Parallel()
		cfg, err := config.FromYAML([]byte(`
flavor: gfm
bullet_marker: "*"
auto_detect_language: false
history_limit: 20
log_level: debug
backups:
  enabled: true
  mode: sidecar
`))
		require.NoError(t, err)
		assert.Equal(t, config.FlavorGFM, cfg.Flavor)
		assert.Equal(t, "*", cfg.BulletMarker)
		assert.False(t, cfg.DetectLanguage())
		assert.Equal(t, 20, cfg.HistoryLimit)
		assert.Equal(t, "debug", cfg.LogLevel)
		assert.True(t, cfg.BackupsEnabled())
	})

	t.Run("empty document", func(t *testing.T) {
		t.Parallel()
		cfg, err := config.FromYAML(nil)
		require.NoError(t, err)
		assert.Nil(t, cfg.AutoDetectLanguage)
	})

	t.Run("unknown key", func(t *testing.T) {
		t.Parallel()
		_, err := config.FromYAML([]byte("rules: {}\n"))
		require.Error(t, err)
		assert.Contains(t, err.Error(), "parse yaml")
	})

	t.Run("round trip", func(t *testing.T) {
		t.Parallel()
		original := config.NewConfig()
		original.Flavor = config.FlavorGFM
		data, err := original.ToYAML()
		require.NoError(t, err)

		parsed, err := config.FromYAML(data)
		require.NoError(t, err)
		assert.Equal(t, original, parsed)
	})
}
