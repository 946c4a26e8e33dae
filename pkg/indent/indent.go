// Package indent measures and rewrites leading indentation.
//
// Indentation is expressed in units of indentWidth columns; a tab advances
// to the next multiple of tabWidth. All functions treat only spaces and tabs
// as indentation.
package indent

import "strings"

// Options describes how indentation is measured and written.
type Options struct {
	TabWidth    int
	IndentWidth int
	UseTabs     bool
}

// DefaultOptions returns four-column indentation written with tabs.
func DefaultOptions() Options {
	return Options{TabWidth: 4, IndentWidth: 4, UseTabs: true}
}

func (o Options) normalized() Options {
	if o.TabWidth <= 0 {
		o.TabWidth = 4
	}
	if o.IndentWidth <= 0 {
		o.IndentWidth = o.TabWidth
	}
	return o
}

// Leading returns the leading spaces and tabs of line.
func Leading(line string) string {
	i := 0
	for i < len(line) && (line[i] == ' ' || line[i] == '\t') {
		i++
	}
	return line[:i]
}

// Columns returns the display width of the leading whitespace of line.
func Columns(line string, tabWidth int) int {
	if tabWidth <= 0 {
		tabWidth = 4
	}
	cols := 0
	for i := 0; i < len(line); i++ {
		switch line[i] {
		case '\t':
			cols += tabWidth - cols%tabWidth
		case ' ':
			cols++
		default:
			return cols
		}
	}
	return cols
}

// ComputeIndentUnits returns the number of whole indent units that start line.
func ComputeIndentUnits(line string, opts Options) int {
	opts = opts.normalized()
	return Columns(line, opts.TabWidth) / opts.IndentWidth
}

// CreateIndentString returns the indentation for units indent units.
func CreateIndentString(units int, opts Options) string {
	if units <= 0 {
		return ""
	}
	opts = opts.normalized()
	cols := units * opts.IndentWidth
	if !opts.UseTabs {
		return strings.Repeat(" ", cols)
	}
	return strings.Repeat("\t", cols/opts.TabWidth) + strings.Repeat(" ", cols%opts.TabWidth)
}

// TrimIndent removes units indent units from the start of line. A tab that
// would overshoot the requested width is removed as well.
func TrimIndent(line string, units int, opts Options) string {
	if units <= 0 {
		return line
	}
	opts = opts.normalized()
	toRemove := units * opts.IndentWidth
	cols := 0
	for i := 0; i < len(line); i++ {
		switch line[i] {
		case '\t':
			cols += opts.TabWidth - cols%opts.TabWidth
		case ' ':
			cols++
		default:
			return line[i:]
		}
		if cols >= toRemove {
			return line[i+1:]
		}
	}
	return ""
}

// ChangeIndent re-bases a multi-line fragment. The first line is kept as
// is; every following line loses unitsToRemove indent units and gains
// newIndent. Lines holding only whitespace become empty.
func ChangeIndent(code string, unitsToRemove int, opts Options, newIndent string) string {
	if !strings.ContainsAny(code, "\r\n") {
		return code
	}
	var b strings.Builder
	b.Grow(len(code))
	first := true
	for len(code) > 0 {
		line, delim, rest := splitLine(code)
		code = rest
		switch {
		case first:
			b.WriteString(line)
			first = false
		case strings.TrimLeft(line, " \t") == "":
		default:
			b.WriteString(newIndent)
			b.WriteString(TrimIndent(line, unitsToRemove, opts))
		}
		b.WriteString(delim)
	}
	return b.String()
}

// splitLine returns the first line of s, its delimiter and the remainder.
func splitLine(s string) (string, string, string) {
	for i := 0; i < len(s); i++ {
		switch s[i] {
		case '\n':
			return s[:i], "\n", s[i+1:]
		case '\r':
			if i+1 < len(s) && s[i+1] == '\n' {
				return s[:i], "\r\n", s[i+2:]
			}
			return s[:i], "\r", s[i+1:]
		}
	}
	return s, "", ""
}

// Lines splits s into lines without their delimiters.
func Lines(s string) []string {
	var out []string
	for {
		line, delim, rest := splitLine(s)
		out = append(out, line)
		if delim == "" {
			return out
		}
		s = rest
	}
}
