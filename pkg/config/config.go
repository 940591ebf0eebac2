// Package config defines the configuration types for mdedit.
// These types are pure data structures; loading and merging live in
// internal/configloader.
package config

import "strings"

// Flavor specifies the Markdown flavor used when probing and rendering.
type Flavor string

const (
	FlavorCommonMark Flavor = "commonmark"
	FlavorGFM        Flavor = "gfm"
)

// IsValid returns true if the flavor is known.
func (f Flavor) IsValid() bool {
	switch f {
	case FlavorCommonMark, FlavorGFM:
		return true
	default:
		return false
	}
}

// BackupMode selects where backups of rewritten files are kept.
type BackupMode string

const (
	BackupModeSidecar BackupMode = "sidecar" // file.md.bak next to the original
	BackupModeNone    BackupMode = "none"
)

// Log levels accepted by LogLevel.
const (
	LogLevelDebug = "debug"
	LogLevelInfo  = "info"
	LogLevelWarn  = "warn"
	LogLevelError = "error"
)

// DefaultHistoryLimit is the default undo depth of an editing session.
const DefaultHistoryLimit = 100

// BackupsConfig controls backup behavior when files are rewritten.
type BackupsConfig struct {
	Enabled bool       `yaml:"enabled"`
	Mode    BackupMode `yaml:"mode"`
}

// Config is the root configuration structure for mdedit.
type Config struct {
	// Flavor specifies the Markdown flavor ("commonmark" or "gfm").
	Flavor Flavor `yaml:"flavor"`

	// BulletMarker is the marker written for unordered list items ("-", "*" or "+").
	BulletMarker string `yaml:"bullet_marker"`

	// AutoDetectLanguage fills in the fence language when text becomes a
	// code block. Nil means unset.
	AutoDetectLanguage *bool `yaml:"auto_detect_language,omitempty"`

	// HistoryLimit bounds the number of undoable steps kept per session.
	HistoryLimit int `yaml:"history_limit"`

	// LogLevel is the minimum level logged ("debug", "info", "warn", "error").
	LogLevel string `yaml:"log_level"`

	// Backups configures backup behavior when --write rewrites a file.
	Backups BackupsConfig `yaml:"backups"`

	// CLI-level options (not persisted to config files).

	// Debug forces debug logging.
	Debug bool `yaml:"-"`

	// NoBackups disables backup creation when writing.
	NoBackups bool `yaml:"-"`
}

// NewConfig returns a Config with sensible defaults.
func NewConfig() *Config {
	detect := true
	return &Config{
		Flavor:             FlavorCommonMark,
		BulletMarker:       "-",
		AutoDetectLanguage: &detect,
		HistoryLimit:       DefaultHistoryLimit,
		LogLevel:           LogLevelInfo,
		Backups: BackupsConfig{
			Enabled: false,
			Mode:    BackupModeSidecar,
		},
	}
}

// DetectLanguage reports whether fence language detection is enabled.
// Unset means enabled.
func (c *Config) DetectLanguage() bool {
	return c.AutoDetectLanguage == nil || *c.AutoDetectLanguage
}

// EffectiveLogLevel returns the level to log at, honoring Debug.
func (c *Config) EffectiveLogLevel() string {
	if c.Debug {
		return LogLevelDebug
	}
	if c.LogLevel == "" {
		return LogLevelInfo
	}
	return strings.ToLower(c.LogLevel)
}

// BackupsEnabled reports whether rewritten files should be backed up.
func (c *Config) BackupsEnabled() bool {
	return c.Backups.Enabled && !c.NoBackups && c.Backups.Mode != BackupModeNone
}
