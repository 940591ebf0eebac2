package configloader

import (
	"fmt"
	"strings"

	"github.com/yaklabco/gomdedit/pkg/config"
)

// maxHistoryLimit bounds history_limit to keep sessions from holding
// unbounded snapshots.
const maxHistoryLimit = 10000

// ValidationError represents a configuration validation error.
type ValidationError struct {
	// Field is the path to the invalid field (e.g., "backups.mode").
	Field string

	// Value is the invalid value.
	Value any

	// Message describes the validation error.
	Message string

	// FilePath is the config file containing the error (if known).
	FilePath string
}

// Error implements the error interface.
func (e *ValidationError) Error() string {
	var parts []string

	if e.FilePath != "" {
		parts = append(parts, e.FilePath)
	}

	if e.Field != "" {
		parts = append(parts, e.Field)
	}

	parts = append(parts, e.Message)

	return strings.Join(parts, ": ")
}

// ValidationResult contains all validation findings.
type ValidationResult struct {
	// Errors are validation failures that prevent loading.
	Errors []ValidationError

	// Warnings are non-fatal issues.
	Warnings []ValidationError
}

// Valid returns true if there are no errors.
func (r *ValidationResult) Valid() bool {
	return len(r.Errors) == 0
}

// HasWarnings returns true if there are any warnings.
func (r *ValidationResult) HasWarnings() bool {
	return len(r.Warnings) > 0
}

// AllMessages returns all error and warning messages combined.
func (r *ValidationResult) AllMessages() []string {
	messages := make([]string, 0, len(r.Errors)+len(r.Warnings))
	for _, e := range r.Errors {
		messages = append(messages, "error: "+e.Error())
	}
	for _, w := range r.Warnings {
		messages = append(messages, "warning: "+w.Error())
	}
	return messages
}

// knownBulletMarkers lists valid bullet_marker values.
//
//nolint:gochecknoglobals // Read-only lookup table.
var knownBulletMarkers = map[string]bool{
	"-": true,
	"*": true,
	"+": true,
}

// knownLogLevels lists valid log_level values.
//
//nolint:gochecknoglobals // Read-only lookup table.
var knownLogLevels = map[string]bool{
	config.LogLevelDebug: true,
	config.LogLevelInfo:  true,
	config.LogLevelWarn:  true,
	config.LogLevelError: true,
}

// knownBackupModes lists valid backup mode values.
//
//nolint:gochecknoglobals // Read-only lookup table.
var knownBackupModes = map[config.BackupMode]bool{
	config.BackupModeSidecar: true,
	config.BackupModeNone:    true,
}

// Validate checks a configuration for errors and warnings.
func Validate(cfg *config.Config) *ValidationResult {
	result := &ValidationResult{}
	if cfg == nil {
		return result
	}

	if cfg.Flavor != "" && !cfg.Flavor.IsValid() {
		result.Errors = append(result.Errors, ValidationError{
			Field:   "flavor",
			Value:   cfg.Flavor,
			Message: fmt.Sprintf("invalid flavor %q; must be one of: commonmark, gfm", cfg.Flavor),
		})
	}

	if cfg.BulletMarker != "" && !knownBulletMarkers[cfg.BulletMarker] {
		result.Errors = append(result.Errors, ValidationError{
			Field:   "bullet_marker",
			Value:   cfg.BulletMarker,
			Message: fmt.Sprintf("invalid bullet marker %q; must be one of: -, *, +", cfg.BulletMarker),
		})
	}

	switch {
	case cfg.HistoryLimit < 0:
		result.Errors = append(result.Errors, ValidationError{
			Field:   "history_limit",
			Value:   cfg.HistoryLimit,
			Message: "history_limit must be >= 0 (0 means the default)",
		})
	case cfg.HistoryLimit > maxHistoryLimit:
		result.Warnings = append(result.Warnings, ValidationError{
			Field:   "history_limit",
			Value:   cfg.HistoryLimit,
			Message: fmt.Sprintf("history_limit %d is unusually large; every step keeps a snapshot", cfg.HistoryLimit),
		})
	}

	if cfg.LogLevel != "" && !knownLogLevels[strings.ToLower(cfg.LogLevel)] {
		result.Errors = append(result.Errors, ValidationError{
			Field:   "log_level",
			Value:   cfg.LogLevel,
			Message: fmt.Sprintf("invalid log level %q; must be one of: debug, info, warn, error", cfg.LogLevel),
		})
	}

	if cfg.Backups.Mode != "" && !knownBackupModes[cfg.Backups.Mode] {
		result.Errors = append(result.Errors, ValidationError{
			Field:   "backups.mode",
			Value:   cfg.Backups.Mode,
			Message: fmt.Sprintf("invalid backup mode %q; must be one of: sidecar, none", cfg.Backups.Mode),
		})
	}

	return result
}

// ValidateWithFile validates configuration and includes file path in errors.
func ValidateWithFile(cfg *config.Config, filePath string) *ValidationResult {
	result := Validate(cfg)

	for i := range result.Errors {
		result.Errors[i].FilePath = filePath
	}
	for i := range result.Warnings {
		result.Warnings[i].FilePath = filePath
	}

	return result
}
