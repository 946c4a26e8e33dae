package langdetect_test

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/yaklabco/jrewrite/pkg/langdetect"
)

func TestDetect(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name     string
		path     string
		content  string
		expected string
	}{
		{
			name:     "java by extension",
			path:     "src/A.java",
			content:  "garbage",
			expected: "java",
		},
		{
			name:     "java package clause",
			content:  "package com.example;\n\nclass A {}\n",
			expected: "java",
		},
		{
			name:     "java import",
			content:  "import java.util.*;\nclass A {}\n",
			expected: "java",
		},
		{
			name:     "java type without package",
			content:  "public final class A {\n    int x;\n}\n",
			expected: "java",
		},
		{
			name:     "go package",
			content:  "package main\n\nfunc main() {}\n",
			expected: "go",
		},
		{
			name:     "kotlin",
			content:  "fun main() {\n    val x = 1\n}\n",
			expected: "kotlin",
		},
		{
			name:     "shebang",
			content:  "#!/bin/sh\necho hello",
			expected: "bash",
		},
		{
			name:     "json object",
			content:  `{"key": "value", "number": 123}`,
			expected: "json",
		},
		{
			name:     "yaml",
			content:  "name: x\nsteps:\n  - match: y\n",
			expected: "yaml",
		},
		{
			name:     "empty",
			content:  "",
			expected: "text",
		},
		{
			name:     "whitespace",
			content:  "   \n\t\n",
			expected: "text",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			assert.Equal(t, tt.expected, langdetect.Detect(tt.path, []byte(tt.content)))
		})
	}
}

func TestIsJava(t *testing.T) {
	t.Parallel()

	assert.True(t, langdetect.IsJava("Main.java", []byte("class Main {}")))
	assert.True(t, langdetect.IsJava("", []byte("package p;\nclass A {}\n")))
	assert.False(t, langdetect.IsJava("script.py", []byte("class A {}")))
	assert.False(t, langdetect.IsJava("", []byte("def f():\n    pass\n")))
}
