package configloader

import (
	"fmt"
	"path/filepath"
	"strings"

	"github.com/yaklabco/jrewrite/internal/logging"
	"github.com/yaklabco/jrewrite/pkg/config"
)

// ValidationError represents a configuration validation error.
type ValidationError struct {
	// Field is the path to the invalid field (e.g., "format.tab_width").
	Field string

	// Value is the invalid value.
	Value any

	// Message describes the validation error.
	Message string

	// FilePath is the config file containing the error (if known).
	FilePath string

	// Line is the line number in the config file (if known).
	Line int
}

// Error implements the error interface.
func (e *ValidationError) Error() string {
	var parts []string

	if e.FilePath != "" {
		if e.Line > 0 {
			parts = append(parts, fmt.Sprintf("%s:%d", e.FilePath, e.Line))
		} else {
			parts = append(parts, e.FilePath)
		}
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

	// Warnings are non-fatal issues (e.g., unknown fields).
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

// knownDelimiters lists valid line delimiter names.
//
//nolint:gochecknoglobals // Read-only lookup table.
var knownDelimiters = map[string]bool{
	config.DelimiterSource: true,
	config.DelimiterLF:     true,
	config.DelimiterCRLF:   true,
}

// maxIndentWidth bounds tab and indent widths.
const maxIndentWidth = 16

// maxBlankLines bounds the blank lines between inserted members.
const maxBlankLines = 4

// knownBackupModes lists valid backup mode values.
//
//nolint:gochecknoglobals // Read-only lookup table.
var knownBackupModes = map[string]bool{
	"sidecar": true,
	"none":    true,
}

// Validate checks a configuration for errors and warnings.
func Validate(cfg *config.Config) *ValidationResult {
	if cfg == nil {
		return &ValidationResult{}
	}

	result := &ValidationResult{}

	validateFormat(cfg.Format, result)

	// Validate rewrite.log_level
	if cfg.Rewrite.LogLevel != "" && !logging.ValidLevel(cfg.Rewrite.LogLevel) {
		result.Errors = append(result.Errors, ValidationError{
			Field:   "rewrite.log_level",
			Value:   cfg.Rewrite.LogLevel,
			Message: fmt.Sprintf("invalid log level %q; must be one of: debug, info, warn, error", cfg.Rewrite.LogLevel),
		})
	}

	// Validate output
	if cfg.Output != "" && !cfg.Output.IsValid() {
		result.Errors = append(result.Errors, ValidationError{
			Field:   "output",
			Value:   cfg.Output,
			Message: fmt.Sprintf("invalid output format %q; must be one of: text, json, diff, summary", cfg.Output),
		})
	}

	// Validate jobs
	if cfg.Jobs < 0 {
		result.Errors = append(result.Errors, ValidationError{
			Field:   "jobs",
			Value:   cfg.Jobs,
			Message: "jobs must be >= 0 (0 means auto)",
		})
	}

	// Validate backups.mode
	if cfg.Backups.Mode != "" && !knownBackupModes[cfg.Backups.Mode] {
		result.Errors = append(result.Errors, ValidationError{
			Field:   "backups.mode",
			Value:   cfg.Backups.Mode,
			Message: fmt.Sprintf("invalid backup mode %q; must be one of: sidecar, none", cfg.Backups.Mode),
		})
	}

	// Validate ignore patterns
	validateIgnorePatterns(cfg, result)

	if cfg.Write && cfg.DryRun {
		result.Warnings = append(result.Warnings, ValidationError{
			Field:   "dry_run",
			Value:   true,
			Message: "dry run is set together with write; files will not be written",
		})
	}

	return result
}

// validateFormat checks layout settings.
func validateFormat(f config.FormatConfig, result *ValidationResult) {
	widths := []struct {
		field string
		value int
	}{
		{field: "format.tab_width", value: f.TabWidth},
		{field: "format.indent_width", value: f.IndentWidth},
	}
	for _, w := range widths {
		if w.value < 0 || w.value > maxIndentWidth {
			result.Errors = append(result.Errors, ValidationError{
				Field:   w.field,
				Value:   w.value,
				Message: fmt.Sprintf("width must be between 1 and %d (0 means default)", maxIndentWidth),
			})
		}
	}

	if !knownDelimiters[f.LineDelimiter] {
		result.Errors = append(result.Errors, ValidationError{
			Field:   "format.line_delimiter",
			Value:   f.LineDelimiter,
			Message: fmt.Sprintf("invalid line delimiter %q; must be one of: lf, crlf (empty keeps the source's)", f.LineDelimiter),
		})
	}

	if n := f.BlankLinesBetweenMembers; n != nil {
		switch {
		case *n < 0:
			result.Errors = append(result.Errors, ValidationError{
				Field:   "format.blank_lines_between_members",
				Value:   *n,
				Message: "blank lines must be >= 0",
			})
		case *n > maxBlankLines:
			result.Warnings = append(result.Warnings, ValidationError{
				Field:   "format.blank_lines_between_members",
				Value:   *n,
				Message: fmt.Sprintf("%d blank lines between members is unusual", *n),
			})
		}
	}
}

// validateIgnorePatterns checks that ignore patterns are valid globs.
func validateIgnorePatterns(cfg *config.Config, result *ValidationResult) {
	for i, pattern := range cfg.Ignore {
		// filepath.Match returns an error only for malformed patterns
		_, err := filepath.Match(pattern, "")
		if err != nil {
			result.Errors = append(result.Errors, ValidationError{
				Field:   fmt.Sprintf("ignore[%d]", i),
				Value:   pattern,
				Message: fmt.Sprintf("invalid glob pattern: %v", err),
			})
		}
	}
}

// ValidateWithFile validates configuration and includes file path in errors.
func ValidateWithFile(cfg *config.Config, filePath string) *ValidationResult {
	result := Validate(cfg)

	// Add file path to all errors and warnings
	for i := range result.Errors {
		result.Errors[i].FilePath = filePath
	}
	for i := range result.Warnings {
		result.Warnings[i].FilePath = filePath
	}

	return result
}

// IsValidDelimiter returns true if the line delimiter name is valid.
func IsValidDelimiter(name string) bool {
	return knownDelimiters[name]
}

// IsValidBackupMode returns true if the backup mode is valid.
func IsValidBackupMode(mode string) bool {
	return knownBackupModes[mode]
}
