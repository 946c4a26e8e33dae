package configloader

import (
	"fmt"
	"os"
	"strconv"
	"strings"

	"github.com/yaklabco/jrewrite/pkg/config"
)

// envVarPrefix is the prefix for all jrewrite environment variables.
const envVarPrefix = "JREWRITE_"

// envFieldType represents the type of a configuration field.
type envFieldType int

const (
	envTypeString envFieldType = iota
	envTypeBool
	envTypeInt
	envTypeSlice
)

// envMapping defines environment variable to config field mappings.
type envMapping struct {
	field string
	typ   envFieldType
}

// envMappings maps environment variable names (without prefix) to config fields.
//
//nolint:gochecknoglobals // Read-only lookup table.
var envMappings = map[string]envMapping{
	"TAB_WIDTH":        {field: "format.tab_width", typ: envTypeInt},
	"INDENT_WIDTH":     {field: "format.indent_width", typ: envTypeInt},
	"USE_TABS":         {field: "format.use_tabs", typ: envTypeBool},
	"LINE_DELIMITER":   {field: "format.line_delimiter", typ: envTypeString},
	"BLANK_LINES":      {field: "format.blank_lines_between_members", typ: envTypeInt},
	"CHECK_SYNTAX":     {field: "rewrite.check_syntax", typ: envTypeBool},
	"LOG_LEVEL":        {field: "rewrite.log_level", typ: envTypeString},
	"SCRIPT":           {field: "script", typ: envTypeString},
	"WRITE":            {field: "write", typ: envTypeBool},
	"DRY_RUN":          {field: "dry_run", typ: envTypeBool},
	"JOBS":             {field: "jobs", typ: envTypeInt},
	"OUTPUT":           {field: "output", typ: envTypeString},
	"BACKUPS_ENABLED":  {field: "backups.enabled", typ: envTypeBool},
	"BACKUPS_MODE":     {field: "backups.mode", typ: envTypeString},
	"IGNORE":           {field: "ignore", typ: envTypeSlice},
	"NO_BACKUPS":       {field: "no_backups", typ: envTypeBool},
}

// LoadFromEnv applies environment variable overrides to the configuration.
// Environment variables are prefixed with JREWRITE_ (e.g., JREWRITE_TAB_WIDTH).
func LoadFromEnv(cfg *config.Config) error {
	if cfg == nil {
		return nil
	}

	for envSuffix, mapping := range envMappings {
		envVar := envVarPrefix + envSuffix
		value := os.Getenv(envVar)
		if value == "" {
			continue
		}

		if err := applyEnvValue(cfg, mapping, value, envVar); err != nil {
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
	case envTypeSlice:
		parts := parseSliceValue(value)
		return setSliceField(cfg, mapping.field, parts)
	default:
		return fmt.Errorf("unknown field type for %s", envVar)
	}
}

// parseSliceValue parses a comma-separated string into a slice.
// Each element is trimmed of whitespace.
func parseSliceValue(value string) []string {
	if value == "" {
		return nil
	}

	parts := strings.Split(value, ",")
	result := make([]string, 0, len(parts))
	for _, part := range parts {
		trimmed := strings.TrimSpace(part)
		if trimmed != "" {
			result = append(result, trimmed)
		}
	}
	return result
}

// setStringField sets a string field on the config by field path.
func setStringField(cfg *config.Config, field, value string) error {
	switch field {
	case "format.line_delimiter":
		cfg.Format.LineDelimiter = value
	case "rewrite.log_level":
		cfg.Rewrite.LogLevel = value
	case "script":
		cfg.Script = value
	case "output":
		cfg.Output = config.OutputFormat(value)
	case "backups.mode":
		cfg.Backups.Mode = value
	default:
		return fmt.Errorf("unknown string field: %s", field)
	}
	return nil
}

// setBoolField sets a boolean field on the config by field path.
func setBoolField(cfg *config.Config, field string, value bool) error {
	switch field {
	case "format.use_tabs":
		cfg.Format.UseTabs = &value
	case "rewrite.check_syntax":
		cfg.Rewrite.CheckSyntax = &value
	case "write":
		cfg.Write = value
	case "dry_run":
		cfg.DryRun = value
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
	case "format.tab_width":
		cfg.Format.TabWidth = value
	case "format.indent_width":
		cfg.Format.IndentWidth = value
	case "format.blank_lines_between_members":
		cfg.Format.BlankLinesBetweenMembers = &value
	case "jobs":
		cfg.Jobs = value
	default:
		return fmt.Errorf("unknown integer field: %s", field)
	}
	return nil
}

// setSliceField sets a slice field on the config by field path.
func setSliceField(cfg *config.Config, field string, value []string) error {
	switch field {
	case "ignore":
		cfg.Ignore = value
	default:
		return fmt.Errorf("unknown slice field: %s", field)
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

// ListEnvVars returns a list of all supported environment variables with their descriptions.
func ListEnvVars() map[string]string {
	return map[string]string{
		"JREWRITE_TAB_WIDTH":       "Display width of a tab",
		"JREWRITE_INDENT_WIDTH":    "Width of one indentation unit",
		"JREWRITE_USE_TABS":        "Indent inserted code with tabs: true or false",
		"JREWRITE_LINE_DELIMITER":  "Line delimiter of inserted code: lf or crlf",
		"JREWRITE_BLANK_LINES":     "Blank lines between inserted members",
		"JREWRITE_CHECK_SYNTAX":    "Re-parse rewritten output: true or false",
		"JREWRITE_LOG_LEVEL":       "Log level: debug, info, warn, or error",
		"JREWRITE_SCRIPT":          "Path of the change script",
		"JREWRITE_WRITE":           "Write rewritten files: true or false",
		"JREWRITE_DRY_RUN":         "Dry-run mode: true or false",
		"JREWRITE_JOBS":            "Number of parallel workers (0 = auto)",
		"JREWRITE_OUTPUT":          "Output format: text, json, diff, or summary",
		"JREWRITE_BACKUPS_ENABLED": "Enable backups when writing: true or false",
		"JREWRITE_BACKUPS_MODE":    "Backup mode: sidecar or none",
		"JREWRITE_IGNORE":          "Comma-separated list of ignore patterns",
		"JREWRITE_NO_BACKUPS":      "Disable backups: true or false",
	}
}
