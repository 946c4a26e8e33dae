// Package langdetect decides whether input is Java source.
// It uses go-enry to classify content, primarily for stdin input and files
// whose extension does not name a language.
package langdetect

import (
	"bytes"
	"path/filepath"
	"regexp"
	"strings"

	"github.com/go-enry/go-enry/v2"
)

// Language constants for the languages told apart from Java.
const (
	LangJava   = "java"
	LangText   = "text"
	langGo     = "go"
	langKotlin = "kotlin"
	langPython = "python"
	langJSON   = "json"
	langYAML   = "yaml"
	langBash   = "bash"
)

// candidates are the classifier languages. Java sits among its closest
// neighbours so that a safe answer means something.
//
//nolint:gochecknoglobals // Read-only lookup table.
var candidates = []string{
	"Java", "Kotlin", "Scala", "Groovy", "C#", "C++", "Go",
	"JavaScript", "TypeScript", "Python", "Shell", "JSON", "YAML",
}

//nolint:gochecknoglobals // Compiled once.
var (
	javaPackage = regexp.MustCompile(`(?m)^\s*package\s+[\w.]+\s*;`)
	javaImport  = regexp.MustCompile(`(?m)^\s*import\s+(static\s+)?[\w.]+(\.\*)?\s*;`)
	javaType    = regexp.MustCompile(`(?m)^\s*((public|protected|private|abstract|final|static|strictfp)\s+)*(class|interface|enum|@interface)\s+\w+`)
)

// Detect returns the lower-case language of content. path may be empty;
// when it has an extension enry knows, the extension decides.
// Returns "text" if detection fails or confidence is low.
func Detect(path string, content []byte) string {
	if path != "" && filepath.Ext(path) != "" {
		if lang, safe := enry.GetLanguageByExtension(path); safe && lang != "" {
			return normalize(lang)
		}
	}
	if len(bytes.TrimSpace(content)) == 0 {
		return LangText
	}

	// Shebang first (most reliable).
	if lang, safe := enry.GetLanguageByShebang(content); safe {
		return normalize(lang)
	}

	if lang := detectByPattern(content); lang != "" {
		return lang
	}

	// Only use the classifier result if confidence is high (safe == true).
	if lang, safe := enry.GetLanguageByClassifier(content, candidates); safe && lang != "" {
		return normalize(lang)
	}

	return LangText
}

// IsJava reports whether content at path is Java source.
func IsJava(path string, content []byte) bool {
	return Detect(path, content) == LangJava
}

// detectByPattern checks for patterns that are highly indicative.
func detectByPattern(content []byte) string {
	trimmed := bytes.TrimSpace(content)

	switch {
	case javaPackage.Match(content), javaImport.Match(content):
		return LangJava
	case bytes.HasPrefix(trimmed, []byte("package ")):
		// A package clause without a semicolon.
		return langGo
	case isKotlin(string(content)):
		return langKotlin
	case javaType.Match(content) && bytes.Contains(content, []byte("{")):
		return LangJava
	case isJSON(trimmed):
		return langJSON
	case isPython(string(content)):
		return langPython
	case isYAML(content):
		return langYAML
	}
	return ""
}

// isKotlin checks for Kotlin declarations that Java lacks.
func isKotlin(s string) bool {
	return strings.Contains(s, "fun ") &&
		(strings.Contains(s, "val ") || strings.Contains(s, "): ") || !strings.Contains(s, ";"))
}

// isJSON checks for JSON documents.
func isJSON(trimmed []byte) bool {
	return (bytes.HasPrefix(trimmed, []byte("{")) || bytes.HasPrefix(trimmed, []byte("["))) &&
		bytes.Contains(trimmed, []byte(`":`))
}

// isPython checks for Python definitions.
func isPython(s string) bool {
	return (strings.Contains(s, "def ") && strings.Contains(s, "):")) ||
		strings.Contains(s, "__name__")
}

// isYAML counts key: value pairs outside code-like lines.
func isYAML(content []byte) bool {
	keys := 0
	for _, line := range bytes.Split(content, []byte("\n")) {
		line = bytes.TrimSpace(line)
		if len(line) == 0 || bytes.HasPrefix(line, []byte("#")) {
			continue
		}
		if bytes.ContainsAny(line, "(){};") {
			return false
		}
		if bytes.Contains(line, []byte(": ")) || bytes.HasPrefix(line, []byte("- ")) {
			keys++
		}
	}
	return keys >= 2
}

// normalize converts go-enry language names to lower case identifiers.
func normalize(lang string) string {
	if lang == "Shell" {
		return langBash
	}
	return strings.ToLower(lang)
}
