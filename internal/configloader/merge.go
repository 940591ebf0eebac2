package configloader

import "github.com/yaklabco/gomdedit/pkg/config"

// merge combines two configurations, with override taking precedence over base.
// The merge follows these rules:
//   - Scalar values: override overwrites base if override is non-zero
//   - Pointer values: override overwrites base if override is non-nil
//   - Nil/unset values in override do not override values in base
func merge(base, override *config.Config) *config.Config {
	if base == nil {
		return override
	}
	if override == nil {
		return base
	}

	result := *base

	if override.Flavor != "" {
		result.Flavor = override.Flavor
	}
	if override.BulletMarker != "" {
		result.BulletMarker = override.BulletMarker
	}
	if override.HistoryLimit != 0 {
		result.HistoryLimit = override.HistoryLimit
	}
	if override.LogLevel != "" {
		result.LogLevel = override.LogLevel
	}

	// AutoDetectLanguage is a pointer so that a file can turn it off.
	if override.AutoDetectLanguage != nil {
		detect := *override.AutoDetectLanguage
		result.AutoDetectLanguage = &detect
	}

	// Booleans can only be switched on by a higher layer.
	if override.Debug {
		result.Debug = true
	}
	if override.NoBackups {
		result.NoBackups = true
	}

	if override.Backups.Mode != "" {
		result.Backups.Mode = override.Backups.Mode
	}
	if override.Backups.Enabled {
		result.Backups.Enabled = true
	}

	return &result
}

// MergeAll merges multiple configurations in order, with later configs taking precedence.
func MergeAll(configs ...*config.Config) *config.Config {
	if len(configs) == 0 {
		return nil
	}

	result := configs[0]
	for i := 1; i < len(configs); i++ {
		result = merge(result, configs[i])
	}
	return result
}
