package config

import (
	"bytes"
	"fmt"
)

// TemplateOptions controls configuration template generation.
type TemplateOptions struct {
	// Full writes every setting uncommented with its default value.
	// If false, generates a minimal commented template.
	Full bool

	// Format is the output format: "yaml" or "toml".
	Format string
}

// DefaultTemplateHeader returns the header comment for generated files.
func DefaultTemplateHeader() string {
	return "# jrewrite configuration\n# See: https://github.com/yaklabco/jrewrite\n"
}

// GenerateTemplate creates a configuration file template.
func GenerateTemplate(opts TemplateOptions) ([]byte, error) {
	switch opts.Format {
	case "", "yaml":
	case "toml":
		return generateTOMLTemplate()
	default:
		return nil, fmt.Errorf("unsupported template format %q", opts.Format)
	}
	if opts.Full {
		return NewConfig().ToYAMLWithHeader(DefaultTemplateHeader())
	}
	return generateMinimalTemplate(), nil
}

func generateMinimalTemplate() []byte {
	var buf bytes.Buffer
	buf.WriteString(DefaultTemplateHeader())
	buf.WriteString(`
# Layout of inserted code
format:
  # Display width of a tab
  tab_width: 4
  # Width of one indentation unit
  indent_width: 4
  # Indent with tabs instead of spaces
  use_tabs: true
  # lf, crlf, or empty to keep the delimiter of each file
  # line_delimiter: lf
  # Blank lines around new members when none can be inferred
  # blank_lines_between_members: 1

rewrite:
  # Re-parse rewritten output with tree-sitter before writing
  check_syntax: false
  # log_level: info

# Backups taken before a file is overwritten
backups:
  enabled: true
  mode: sidecar

# File patterns to ignore (glob patterns)
# ignore:
#   - "build/**"
#   - "**/generated/**"
`)
	return buf.Bytes()
}

func generateTOMLTemplate() ([]byte, error) {
	body, err := NewConfig().ToTOML()
	if err != nil {
		return nil, err
	}
	var buf bytes.Buffer
	buf.WriteString(DefaultTemplateHeader())
	buf.WriteByte('\n')
	buf.Write(body)
	return buf.Bytes(), nil
}
