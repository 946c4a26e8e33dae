// Package config defines core configuration types for jrewrite.
// These types are pure data structures with no dependency on the loader.
package config

// FormatConfig controls how inserted code is laid out.
type FormatConfig struct {
	// TabWidth is the display width of a tab.
	TabWidth int `yaml:"tab_width,omitempty" toml:"tab_width,omitempty"`

	// IndentWidth is the width of one indentation unit.
	IndentWidth int `yaml:"indent_width,omitempty" toml:"indent_width,omitempty"`

	// UseTabs indents with tabs. nil keeps the lower precedence value.
	UseTabs *bool `yaml:"use_tabs,omitempty" toml:"use_tabs,omitempty"`

	// LineDelimiter is "lf", "crlf" or empty to use the delimiter of each
	// source.
	LineDelimiter string `yaml:"line_delimiter,omitempty" toml:"line_delimiter,omitempty"`

	// BlankLinesBetweenMembers separates new members from their neighbours
	// when no original spacing can be inferred.
	BlankLinesBetweenMembers *int `yaml:"blank_lines_between_members,omitempty" toml:"blank_lines_between_members,omitempty"`
}

// RewriteConfig controls the rewrite of each file.
type RewriteConfig struct {
	// CheckSyntax re-parses rewritten output with tree-sitter and skips
	// files whose output does not parse.
	CheckSyntax *bool `yaml:"check_syntax,omitempty" toml:"check_syntax,omitempty"`

	// LogLevel is debug, info, warn or error.
	LogLevel string `yaml:"log_level,omitempty" toml:"log_level,omitempty"`
}

// BackupsConfig controls backup behavior when writing files.
type BackupsConfig struct {
	Enabled bool   `yaml:"enabled" toml:"enabled"`
	Mode    string `yaml:"mode" toml:"mode"` // "sidecar" or "none"
}

// OutputFormat specifies the output format for results.
type OutputFormat string

const (
	FormatText    OutputFormat = "text"
	FormatJSON    OutputFormat = "json"
	FormatDiff    OutputFormat = "diff"
	FormatSummary OutputFormat = "summary"
)

// Line delimiter names.
const (
	DelimiterSource = ""
	DelimiterLF     = "lf"
	DelimiterCRLF   = "crlf"
)

// Config is the root configuration structure for jrewrite.
type Config struct {
	// Format controls the layout of inserted code.
	Format FormatConfig `yaml:"format" toml:"format"`

	// Rewrite controls per-file processing.
	Rewrite RewriteConfig `yaml:"rewrite" toml:"rewrite"`

	// Ignore contains glob patterns for files to ignore.
	Ignore []string `yaml:"ignore,omitempty" toml:"ignore,omitempty"`

	// Backups configures backup behavior when writing.
	Backups BackupsConfig `yaml:"backups" toml:"backups"`

	// CLI-level options (not persisted to config files).

	// Script is the path of the change script.
	Script string `yaml:"-" toml:"-"`

	// Write writes rewritten files back to disk.
	Write bool `yaml:"-" toml:"-"`

	// DryRun shows diffs without making changes.
	DryRun bool `yaml:"-" toml:"-"`

	// Output specifies the output format.
	Output OutputFormat `yaml:"-" toml:"-"`

	// Jobs specifies the number of parallel workers.
	Jobs int `yaml:"-" toml:"-"`

	// NoBackups disables backup creation when writing.
	NoBackups bool `yaml:"-" toml:"-"`
}

// Default values.
const (
	DefaultTabWidth                 = 4
	DefaultIndentWidth              = 4
	DefaultBlankLinesBetweenMembers = 1
)

// NewConfig returns a Config with sensible defaults.
func NewConfig() *Config {
	useTabs := true
	checkSyntax := false
	blank := DefaultBlankLinesBetweenMembers
	return &Config{
		Format: FormatConfig{
			TabWidth:                 DefaultTabWidth,
			IndentWidth:              DefaultIndentWidth,
			UseTabs:                  &useTabs,
			BlankLinesBetweenMembers: &blank,
		},
		Rewrite: RewriteConfig{
			CheckSyntax: &checkSyntax,
			LogLevel:    "info",
		},
		Backups: BackupsConfig{
			Enabled: true,
			Mode:    "sidecar",
		},
		Output: FormatText,
		Jobs:   0, // 0 means use GOMAXPROCS
	}
}

// UsesTabs reports whether indentation uses tabs. Unset means tabs.
func (f FormatConfig) UsesTabs() bool {
	return f.UseTabs == nil || *f.UseTabs
}

// MemberSpacing returns the blank lines between new members.
func (f FormatConfig) MemberSpacing() int {
	if f.BlankLinesBetweenMembers == nil {
		return DefaultBlankLinesBetweenMembers
	}
	return *f.BlankLinesBetweenMembers
}

// Delimiter returns the line delimiter text, or "" for the source's own.
func (f FormatConfig) Delimiter() string {
	switch f.LineDelimiter {
	case DelimiterLF:
		return "\n"
	case DelimiterCRLF:
		return "\r\n"
	default:
		return ""
	}
}

// ChecksSyntax reports whether rewritten output is re-parsed.
func (r RewriteConfig) ChecksSyntax() bool {
	return r.CheckSyntax != nil && *r.CheckSyntax
}
