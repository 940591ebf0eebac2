package configloader

import (
	"fmt"
	"os"
	"sort"
	"strconv"

	"github.com/yaklabco/gomdedit/pkg/config"
)

// envVarPrefix is the prefix for all mdedit environment variables.
const envVarPrefix = "MDEDIT_"

// envFieldType represents the type of a configuration field.
type envFieldType int

const (
	envTypeString envFieldType = iota
	envTypeBool
	envTypeInt
)

// envMapping defines an environment variable to config field mapping.
type envMapping struct {
	field       string
	typ         envFieldType
	description string
}

// envMappings maps environment variable names (without prefix) to config fields.
//
//nolint:gochecknoglobals // Read-only lookup table.
var envMappings = map[string]envMapping{
	"FLAVOR":               {field: "flavor", typ: envTypeString, description: "Markdown flavor: commonmark or gfm"},
	"BULLET_MARKER":        {field: "bullet_marker", typ: envTypeString, description: "Unordered list marker: -, * or +"},
	"AUTO_DETECT_LANGUAGE": {field: "auto_detect_language", typ: envTypeBool, description: "Detect code block languages: true or false"},
	"HISTORY_LIMIT":        {field: "history_limit", typ: envTypeInt, description: "Maximum number of undo steps"},
	"LOG_LEVEL":            {field: "log_level", typ: envTypeString, description: "Log level: debug, info, warn or error"},
	"BACKUPS_ENABLED":      {field: "backups.enabled", typ: envTypeBool, description: "Back up files before --write: true or false"},
	"BACKUPS_MODE":         {field: "backups.mode", typ: envTypeString, description: "Backup mode: sidecar or none"},
	"NO_BACKUPS":           {field: "no_backups", typ: envTypeBool, description: "Disable backups: true or false"},
}

// LoadFromEnv applies environment variable overrides to the configuration.
// Environment variables are prefixed with MDEDIT_ (e.g., MDEDIT_FLAVOR).
func LoadFromEnv(cfg *config.Config) error {
	return loadFromLookup(cfg, os.LookupEnv)
}

// loadFromLookup applies overrides read through lookup, in a stable order.
func loadFromLookup(cfg *config.Config, lookup func(string) (string, bool)) error {
	if cfg == nil {
		return nil
	}

	suffixes := make([]string, 0, len(envMappings))
	for suffix := range envMappings {
		suffixes = append(suffixes, suffix)
	}
	sort.Strings(suffixes)

	for _, envSuffix := range suffixes {
		envVar := envVarPrefix + envSuffix
		value, ok := lookup(envVar)
		if !ok || value == "" {
			continue
		}

		if err := applyEnvValue(cfg, envMappings[envSuffix], value, envVar); err != nil {
			return err
		}
	}

	return nil
}

// applyEnvValue applies a single environment variable value to the config.
func applyEnvValue(cfg *config.Config, mapping envMapping, value, envVar string) error {
	switch mapping.typ {
	case envTypeString:
		return setStringField(cfg, mapping.field, value)
	case envTypeBool:
		b, err := strconv.ParseBool(value)
		if err != nil {
			return fmt.Errorf("invalid boolean for %s: %q (expected true/false/1/0)", envVar, value)
		}
		return setBoolField(cfg, mapping.field, b)
	case envTypeInt:
		i, err := strconv.Atoi(value)
		if err != nil {
			return fmt.Errorf("invalid integer for %s: %q", envVar, value)
		}
		return setIntField(cfg, mapping.field, i)
	default:
		return fmt.Errorf("unknown field type for %s", envVar)
	}
}

// setStringField sets a string field on the config by field path.
func setStringField(cfg *config.Config, field, value string) error {
	switch field {
	case "flavor":
		cfg.Flavor = config.Flavor(value)
	case "bullet_marker":
		cfg.BulletMarker = value
	case "log_level":
		cfg.LogLevel = value
	case "backups.mode":
		cfg.Backups.Mode = config.BackupMode(value)
	default:
		return fmt.Errorf("unknown string field: %s", field)
	}
	return nil
}

// setBoolField sets a boolean field on the config by field path.
func setBoolField(cfg *config.Config, field string, value bool) error {
	switch field {
	case "auto_detect_language":
		cfg.AutoDetectLanguage = &value
	case "backups.enabled":
		cfg.Backups.Enabled = value
	case "no_backups":
		cfg.NoBackups = value
	default:
		return fmt.Errorf("unknown boolean field: %s", field)
	}
	return nil
}

// setIntField sets an integer field on the config by field path.
func setIntField(cfg *config.Config, field string, value int) error {
	switch field {
	case "history_limit":
		cfg.HistoryLimit = value
	default:
		return fmt.Errorf("unknown integer field: %s", field)
	}
	return nil
}

// GetEnvVarName returns the full environment variable name for a config field.
func GetEnvVarName(field string) string {
	for suffix, mapping := range envMappings {
		if mapping.field == field {
			return envVarPrefix + suffix
		}
	}
	return ""
}

// ListEnvVars returns all supported environment variables with their descriptions.
func ListEnvVars() map[string]string {
	vars := make(map[string]string, len(envMappings))
	for suffix, mapping := range envMappings {
		vars[envVarPrefix+suffix] = mapping.description
	}
	return vars
}
