package indent_test

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/yaklabco/jrewrite/pkg/indent"
)

func TestComputeIndentUnits(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name string
		line string
		opts indent.Options
		want int
	}{
		{"empty", "", indent.DefaultOptions(), 0},
		{"one tab", "\tx", indent.DefaultOptions(), 1},
		{"tab and spaces", "\t    x", indent.DefaultOptions(), 2},
		{"partial unit", "      x", indent.DefaultOptions(), 1},
		{"two space units", "    x", indent.Options{TabWidth: 8, IndentWidth: 2}, 2},
		{"tab to next stop", "  \tx", indent.Options{TabWidth: 4, IndentWidth: 4}, 1},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			assert.Equal(t, tt.want, indent.ComputeIndentUnits(tt.line, tt.opts))
		})
	}
}

func TestCreateIndentString(t *testing.T) {
	t.Parallel()

	assert.Equal(t, "", indent.CreateIndentString(0, indent.DefaultOptions()))
	assert.Equal(t, "\t\t", indent.CreateIndentString(2, indent.DefaultOptions()))
	assert.Equal(t, "        ", indent.CreateIndentString(2, indent.Options{TabWidth: 4, IndentWidth: 4}))
	assert.Equal(t, "\t  ", indent.CreateIndentString(3, indent.Options{TabWidth: 4, IndentWidth: 2, UseTabs: true}))
}

func TestTrimIndent(t *testing.T) {
	t.Parallel()

	opts := indent.DefaultOptions()
	assert.Equal(t, "\tx", indent.TrimIndent("\t\tx", 1, opts))
	assert.Equal(t, "x", indent.TrimIndent("    x", 1, opts))
	assert.Equal(t, "x", indent.TrimIndent("  x", 1, opts))
	assert.Equal(t, "", indent.TrimIndent("  ", 2, opts))
	assert.Equal(t, "  x", indent.TrimIndent("  x", 0, opts))
}

func TestChangeIndent(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name   string
		code   string
		remove int
		indent string
		want   string
	}{
		{
			name:   "single line untouched",
			code:   "foo();",
			remove: 2,
			indent: "\t\t\t",
			want:   "foo();",
		},
		{
			name:   "deeper destination",
			code:   "if (a) {\n\t\tfoo();\n\t}",
			remove: 1,
			indent: "\t\t",
			want:   "if (a) {\n\t\t\tfoo();\n\t\t}",
		},
		{
			name:   "shallower destination with crlf",
			code:   "{\r\n\t\t\tx();\r\n\t\t}",
			remove: 2,
			indent: "",
			want:   "{\r\n\tx();\r\n}",
		},
		{
			name:   "blank lines stay empty",
			code:   "a\n\t\t\n\tb",
			remove: 1,
			indent: "  ",
			want:   "a\n\n  b",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			got := indent.ChangeIndent(tt.code, tt.remove, indent.DefaultOptions(), tt.indent)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestLines(t *testing.T) {
	t.Parallel()

	assert.Equal(t, []string{"a", "b", ""}, indent.Lines("a\r\nb\n"))
	assert.Equal(t, []string{""}, indent.Lines(""))
}
