package configloader

import (
	"slices"

	"github.com/yaklabco/jrewrite/pkg/config"
)

// merge combines two configurations, with override taking precedence over base.
// The merge follows these rules:
//   - Scalar values: override overwrites base if override is non-zero
//   - Pointer values: override overwrites base if override is non-nil
//   - Slices: override replaces base entirely if override is non-nil
//   - Nil/unset values in override do not override values in base
func merge(base, override *config.Config) *config.Config {
	if base == nil {
		return override
	}
	if override == nil {
		return base
	}

	result := base.Clone()

	result.Format = mergeFormat(base.Format, override.Format)

	if override.Rewrite.CheckSyntax != nil {
		result.Rewrite.CheckSyntax = override.Rewrite.CheckSyntax
	}
	if override.Rewrite.LogLevel != "" {
		result.Rewrite.LogLevel = override.Rewrite.LogLevel
	}

	if override.Script != "" {
		result.Script = override.Script
	}
	if override.Output != "" {
		result.Output = override.Output
	}
	if override.Jobs != 0 {
		result.Jobs = override.Jobs
	}

	// Booleans: false is the zero value, so only true overrides.
	// CLI --write wins, but a config file cannot unset it.
	if override.Write {
		result.Write = override.Write
	}
	if override.DryRun {
		result.DryRun = override.DryRun
	}
	if override.NoBackups {
		result.NoBackups = override.NoBackups
	}

	// Backups: merge individual fields
	if override.Backups.Mode != "" {
		result.Backups.Mode = override.Backups.Mode
	}
	// BackupsConfig.Enabled is a plain bool, so only "true" can be detected.
	if override.Backups.Enabled {
		result.Backups.Enabled = override.Backups.Enabled
	}

	// Slices: override replaces base entirely if non-nil
	if override.Ignore != nil {
		result.Ignore = slices.Clone(override.Ignore)
	}

	return result
}

// mergeFormat merges layout settings field by field.
func mergeFormat(base, override config.FormatConfig) config.FormatConfig {
	result := base
	if override.TabWidth != 0 {
		result.TabWidth = override.TabWidth
	}
	if override.IndentWidth != 0 {
		result.IndentWidth = override.IndentWidth
	}
	if override.UseTabs != nil {
		result.UseTabs = override.UseTabs
	}
	if override.LineDelimiter != "" {
		result.LineDelimiter = override.LineDelimiter
	}
	if override.BlankLinesBetweenMembers != nil {
		result.BlankLinesBetweenMembers = override.BlankLinesBetweenMembers
	}
	return result
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
