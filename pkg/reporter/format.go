package reporter

import (
	"fmt"

	"github.com/yaklabco/jrewrite/pkg/config"
)

// Format selects a renderer. The names are those accepted for the output
// setting of the configuration.
type Format string

// Output formats supported by the reporter.
const (
	FormatText    = Format(config.FormatText)
	FormatJSON    = Format(config.FormatJSON)
	FormatDiff    = Format(config.FormatDiff)
	FormatSummary = Format(config.FormatSummary)
)

// ParseFormat parses a format name. The empty name is text.
func ParseFormat(name string) (Format, error) {
	if name == "" {
		return FormatText, nil
	}
	if f := Format(name); f.IsValid() {
		return f, nil
	}
	return "", fmt.Errorf("unknown format %q; valid formats: text, json, diff, summary", name)
}

// IsValid reports whether f names a renderer.
func (f Format) IsValid() bool {
	return config.OutputFormat(f).IsValid()
}
